package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avrek/wb-radar/internal/apperr"
	"github.com/avrek/wb-radar/internal/models"
)

// CreateGroup inserts a new, empty article group.
func (r *Repository) CreateGroup(ctx context.Context, userID int64, name string, groupType models.GroupType) (*models.ArticleGroup, error) {
	const opn = "repository.sqlite.CreateGroup"

	if !groupType.Valid() {
		return nil, apperr.Validation("unknown group type %q", groupType)
	}

	now := time.Now().UTC()
	group := &models.ArticleGroup{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		GroupType: groupType,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO groups (id, user_id, name, group_type, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		group.ID, group.UserID, group.Name, string(group.GroupType), group.CreatedAt, group.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	return group, nil
}

// GetGroup returns the group by id, checking that it belongs to userID.
func (r *Repository) GetGroup(ctx context.Context, groupID string, userID int64) (*models.ArticleGroup, error) {
	const opn = "repository.sqlite.GetGroup"

	var (
		group     models.ArticleGroup
		groupType string
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, name, group_type, created_at, updated_at FROM groups WHERE id = ? AND user_id = ?",
		groupID, userID,
	).Scan(&group.ID, &group.UserID, &group.Name, &groupType, &group.CreatedAt, &group.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("group %s not found", groupID)
		}
		return nil, fmt.Errorf("%s: %w", opn, err)
	}
	group.GroupType = models.GroupType(groupType)

	return &group, nil
}

// DeleteGroup removes the group; member and snapshot rows cascade through
// foreign keys. Deleting an absent (or foreign) group is a not-found error.
func (r *Repository) DeleteGroup(ctx context.Context, groupID string, userID int64) error {
	const opn = "repository.sqlite.DeleteGroup"

	res, err := r.db.ExecContext(ctx, "DELETE FROM groups WHERE id = ? AND user_id = ?", groupID, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to read affected rows: %w", opn, err)
	}
	if affected == 0 {
		return apperr.NotFound("group %s not found", groupID)
	}

	return nil
}

// AddMember appends an article to the group, enforcing the membership
// invariants: comparison groups take "own" or "competitor" roles and at most
// one "own" member; other group types take only "item" members.
func (r *Repository) AddMember(ctx context.Context, groupID string, userID int64, articleNumber string, role models.Role) (*models.GroupMember, error) {
	const opn = "repository.sqlite.AddMember"

	if articleNumber == "" {
		return nil, apperr.Validation("article number must not be empty")
	}

	tx, err := r.db.BeginTx(ctx, nil) //nolint:varnamelen // tx its a default naming for transaction
	if err != nil {
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", opn, err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit only returns sql.ErrTxDone

	// 1. Resolve the group and its type under the ownership check.
	var groupType string
	err = tx.QueryRowContext(ctx,
		"SELECT group_type FROM groups WHERE id = ? AND user_id = ?", groupID, userID,
	).Scan(&groupType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("group %s not found", groupID)
		}
		return nil, fmt.Errorf("%s: failed to get group: %w", opn, err)
	}

	// 2. Role must be consistent with the group type.
	if err = validateRole(models.GroupType(groupType), role); err != nil {
		return nil, err
	}

	// 3. A comparison group holds at most one "own" member.
	if role == models.RoleOwn {
		var ownCount int
		err = tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM group_members WHERE group_id = ? AND role = ?", groupID, string(models.RoleOwn),
		).Scan(&ownCount)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to count own members: %w", opn, err)
		}
		if ownCount > 0 {
			return nil, apperr.Conflict("group %s already has an own member", groupID)
		}
	}

	// 4. Next insertion position.
	var position int
	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position) + 1, 0) FROM group_members WHERE group_id = ?", groupID,
	).Scan(&position)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to compute position: %w", opn, err)
	}

	member := &models.GroupMember{
		ID:            uuid.NewString(),
		GroupID:       groupID,
		ArticleNumber: articleNumber,
		Role:          role,
		Position:      position,
		CreatedAt:     time.Now().UTC(),
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO group_members (id, group_id, article_number, role, position, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		member.ID, member.GroupID, member.ArticleNumber, string(member.Role), member.Position, member.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, apperr.Conflict("article %s is already in group %s", articleNumber, groupID)
		}
		return nil, fmt.Errorf("%s: failed to insert member: %w", opn, err)
	}

	_, err = tx.ExecContext(ctx, "UPDATE groups SET updated_at = ? WHERE id = ?", member.CreatedAt, groupID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to touch group: %w", opn, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", opn, err)
	}

	return member, nil
}

// RemoveMember deletes one member by id under the ownership check.
func (r *Repository) RemoveMember(ctx context.Context, groupID string, userID int64, memberID string) error {
	const opn = "repository.sqlite.RemoveMember"

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM group_members WHERE id = ? AND group_id IN (SELECT id FROM groups WHERE id = ? AND user_id = ?)`,
		memberID, groupID, userID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to read affected rows: %w", opn, err)
	}
	if affected == 0 {
		return apperr.NotFound("member %s not found in group %s", memberID, groupID)
	}

	return nil
}

// ListMembers returns the group's members in insertion order.
func (r *Repository) ListMembers(ctx context.Context, groupID string) ([]models.GroupMember, error) {
	const opn = "repository.sqlite.ListMembers"

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, group_id, article_number, role, position, created_at FROM group_members WHERE group_id = ? ORDER BY position ASC",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}
	defer rows.Close()

	var members []models.GroupMember
	for rows.Next() {
		var (
			m    models.GroupMember
			role string
		)
		if err = rows.Scan(&m.ID, &m.GroupID, &m.ArticleNumber, &role, &m.Position, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: failed to scan member: %w", opn, err)
		}
		m.Role = models.Role(role)
		members = append(members, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", opn, err)
	}

	return members, nil
}

// ListStaleComparisonGroups returns comparison groups whose newest snapshot
// is older than the cutoff. Groups that were never compared are skipped.
func (r *Repository) ListStaleComparisonGroups(ctx context.Context, olderThan time.Time) ([]models.ArticleGroup, error) {
	const opn = "repository.sqlite.ListStaleComparisonGroups"

	rows, err := r.db.QueryContext(ctx, `
		SELECT g.id, g.user_id, g.name, g.group_type, g.created_at, g.updated_at
		FROM groups g
		JOIN comparison_snapshots s ON s.group_id = g.id
		WHERE g.group_type = ?
		GROUP BY g.id
		HAVING MAX(s.snapshot_date) < ?
		ORDER BY g.created_at ASC`,
		string(models.GroupTypeComparison), olderThan,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}
	defer rows.Close()

	var groups []models.ArticleGroup
	for rows.Next() {
		var (
			g         models.ArticleGroup
			groupType string
		)
		if err = rows.Scan(&g.ID, &g.UserID, &g.Name, &groupType, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: failed to scan group: %w", opn, err)
		}
		g.GroupType = models.GroupType(groupType)
		groups = append(groups, g)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", opn, err)
	}

	return groups, nil
}

// validateRole checks role consistency against the group type.
func validateRole(groupType models.GroupType, role models.Role) error {
	switch groupType {
	case models.GroupTypeComparison:
		if role != models.RoleOwn && role != models.RoleCompetitor {
			return apperr.Validation("role %q is not allowed in a comparison group", role)
		}
	default:
		if role != models.RoleItem {
			return apperr.Validation("role %q is not allowed in a %s group", role, groupType)
		}
	}

	return nil
}
