// Package repository declares the store interfaces consumed by the
// comparison services. The sqlite subpackage provides the implementation.
package repository

import (
	"context"
	"time"

	"github.com/avrek/wb-radar/internal/models"
)

// GroupRepository owns article groups and their membership lists. Every
// operation that reads or writes a specific group takes the calling user's
// id and fails with a not-found error when the group does not belong to
// that user, so data can never leak across users.
type GroupRepository interface {
	// CreateGroup creates an empty group of the given type.
	CreateGroup(ctx context.Context, userID int64, name string, groupType models.GroupType) (*models.ArticleGroup, error)
	// GetGroup returns the group, checking ownership.
	GetGroup(ctx context.Context, groupID string, userID int64) (*models.ArticleGroup, error)
	// DeleteGroup removes the group and cascades to members and snapshots.
	DeleteGroup(ctx context.Context, groupID string, userID int64) error
	// AddMember appends an article to the group, enforcing the role
	// invariants for the group's type.
	AddMember(ctx context.Context, groupID string, userID int64, articleNumber string, role models.Role) (*models.GroupMember, error)
	// RemoveMember deletes one member by id.
	RemoveMember(ctx context.Context, groupID string, userID int64, memberID string) error
	// ListMembers returns the group's members in insertion order.
	ListMembers(ctx context.Context, groupID string) ([]models.GroupMember, error)
	// ListStaleComparisonGroups returns comparison groups whose newest
	// snapshot is older than the given cutoff.
	ListStaleComparisonGroups(ctx context.Context, olderThan time.Time) ([]models.ArticleGroup, error)
	// UserStats aggregates the user's groups and snapshot standing.
	UserStats(ctx context.Context, userID int64) (*models.UserStats, error)
}

// SnapshotRepository persists immutable comparison snapshots and answers
// historical range queries.
type SnapshotRepository interface {
	// CreateSnapshot writes a new snapshot dated now. Snapshots are
	// write-once; there is no update operation.
	CreateSnapshot(ctx context.Context, groupID string, data []models.ArticleComparisonData, metrics *models.ComparisonMetrics) (*models.ComparisonSnapshot, error)
	// LatestSnapshot returns the group's newest snapshot, or nil when the
	// group has none.
	LatestSnapshot(ctx context.Context, groupID string) (*models.ComparisonSnapshot, error)
	// History returns snapshots within [from, to] inclusive, ordered by
	// snapshot date ascending.
	History(ctx context.Context, groupID string, from, to time.Time) ([]models.ComparisonSnapshot, error)
}
