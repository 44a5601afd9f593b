// Package comparator orchestrates comparison requests: it applies the
// freshness policy, fans out listing fetches, normalizes the results,
// computes metrics and persists an immutable snapshot.
package comparator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/avrek/wb-radar/internal/apperr"
	"github.com/avrek/wb-radar/internal/models"
	"github.com/avrek/wb-radar/internal/repository"
	"github.com/avrek/wb-radar/internal/services/metrics"
	"github.com/avrek/wb-radar/internal/services/normalizer"
	"github.com/avrek/wb-radar/internal/wbclient"
)

// averagePriceWindow is the trailing window for the 7-day average price
// derived from the group's snapshot history.
const averagePriceWindow = 7 * 24 * time.Hour

// Interface is the orchestrator surface consumed by the delivery layers.
type Interface interface {
	// CreateGroup creates an empty group.
	CreateGroup(ctx context.Context, userID int64, name string, groupType models.GroupType) (*models.ArticleGroup, error)
	// DeleteGroup removes a group with its members and snapshots.
	DeleteGroup(ctx context.Context, groupID string, userID int64) error
	// Compare answers a "compare now" request, reusing a fresh snapshot
	// unless refresh forces a new fetch.
	Compare(ctx context.Context, groupID string, userID int64, refresh bool) (*models.ComparisonResponse, error)
	// QuickCompare creates a comparison group with one own and one
	// competitor member, optionally comparing immediately.
	QuickCompare(ctx context.Context, userID int64, ownArticle, competitorArticle, groupName string, scrapeNow bool) (*models.ComparisonResponse, error)
	// History returns the group's snapshots over the trailing days.
	History(ctx context.Context, groupID string, userID int64, days int) (*models.HistoryResponse, error)
	// UserStats summarizes the user's groups and standing.
	UserStats(ctx context.Context, userID int64) (*models.UserStats, error)
}

// Comparator coordinates the stores, the fetch client and the calculator.
type Comparator struct {
	log        *slog.Logger
	groups     repository.GroupRepository
	snapshots  repository.SnapshotRepository
	fetcher    wbclient.Fetcher
	calc       *metrics.Calculator
	ttl        time.Duration
	fetchLimit int
}

// NewComparator creates a Comparator. ttl is the snapshot age below which a
// prior snapshot is reused; fetchLimit caps concurrent listing fetches
// within one request.
func NewComparator(
	log *slog.Logger,
	groups repository.GroupRepository,
	snapshots repository.SnapshotRepository,
	fetcher wbclient.Fetcher,
	calc *metrics.Calculator,
	ttl time.Duration,
	fetchLimit int,
) *Comparator {
	if fetchLimit < 1 {
		fetchLimit = 1
	}
	return &Comparator{
		log:        log,
		groups:     groups,
		snapshots:  snapshots,
		fetcher:    fetcher,
		calc:       calc,
		ttl:        ttl,
		fetchLimit: fetchLimit,
	}
}

// CreateGroup creates an empty group of the given type.
func (c *Comparator) CreateGroup(ctx context.Context, userID int64, name string, groupType models.GroupType) (*models.ArticleGroup, error) {
	const opn = "comparator.CreateGroup"

	group, err := c.groups.CreateGroup(ctx, userID, name, groupType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	return group, nil
}

// DeleteGroup removes a group; its members and snapshots go with it.
func (c *Comparator) DeleteGroup(ctx context.Context, groupID string, userID int64) error {
	const opn = "comparator.DeleteGroup"

	if err := c.groups.DeleteGroup(ctx, groupID, userID); err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	return nil
}

// Compare runs the comparison cycle for one group.
func (c *Comparator) Compare(ctx context.Context, groupID string, userID int64, refresh bool) (*models.ComparisonResponse, error) {
	const opn = "comparator.Compare"
	log := c.log.With("op", opn, "group_id", groupID)

	// 1. Resolve the group under the ownership check.
	group, err := c.groups.GetGroup(ctx, groupID, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	members, err := c.groups.ListMembers(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}
	if len(members) == 0 {
		return nil, apperr.Validation("group %s has no members to compare", groupID)
	}

	// 2. Freshness check: a young enough snapshot is reused.
	if !refresh {
		snapshot, err := c.snapshots.LatestSnapshot(ctx, groupID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opn, err)
		}
		if snapshot != nil && time.Since(snapshot.SnapshotDate) <= c.ttl {
			log.InfoContext(ctx, "Reusing fresh snapshot", "snapshot_id", snapshot.ID, "age", time.Since(snapshot.SnapshotDate))
			return c.assembleResponse(group, snapshot, nil), nil
		}
	}

	// 3. Fetch every member's listing, bounded fan-out.
	log.InfoContext(ctx, "Fetching listings", "members", len(members))
	data, warnings, fetchErrs := c.fetchMembers(ctx, members)

	if len(fetchErrs) == len(members) {
		return nil, &apperr.Error{
			Kind: apperr.KindExternalFetch,
			Msg:  fmt.Sprintf("all %d member fetches failed for group %s", len(members), groupID),
			Err:  errors.Join(fetchErrs...),
		}
	}

	// 4. Derive trailing average prices from the group's own history.
	c.fillAveragePrices(ctx, groupID, data)

	// 5. Compute metrics.
	own, competitors, items := splitByRole(data)
	var computed *models.ComparisonMetrics
	if group.GroupType == models.GroupTypeComparison {
		computed = c.calc.Compute(own, competitors)
	} else {
		computed = c.calc.Compute(nil, items)
	}
	if computed.InsufficientData {
		warnings = append(warnings, metrics.InsufficientDataRecommendation)
	}

	// 6. Persist the snapshot.
	snapshot, err := c.snapshots.CreateSnapshot(ctx, groupID, data, computed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}
	log.InfoContext(ctx, "Comparison complete",
		"snapshot_id", snapshot.ID,
		"grade", computed.Grade,
		"failed_members", len(fetchErrs),
	)

	return c.assembleResponse(group, snapshot, warnings), nil
}

// QuickCompare creates a comparison group with one own and one competitor
// member in a single logical operation. With scrapeNow false the group is
// created without a snapshot and the caller compares later.
func (c *Comparator) QuickCompare(ctx context.Context, userID int64, ownArticle, competitorArticle, groupName string, scrapeNow bool) (*models.ComparisonResponse, error) {
	const opn = "comparator.QuickCompare"

	if ownArticle == "" || competitorArticle == "" {
		return nil, apperr.Validation("both article numbers are required")
	}
	if ownArticle == competitorArticle {
		return nil, apperr.Validation("own and competitor article numbers must differ")
	}

	group, err := c.groups.CreateGroup(ctx, userID, groupName, models.GroupTypeComparison)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	if _, err = c.groups.AddMember(ctx, group.ID, userID, ownArticle, models.RoleOwn); err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}
	if _, err = c.groups.AddMember(ctx, group.ID, userID, competitorArticle, models.RoleCompetitor); err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	if !scrapeNow {
		return &models.ComparisonResponse{
			GroupID:   group.ID,
			GroupName: group.Name,
			GroupType: group.GroupType,
		}, nil
	}

	resp, err := c.Compare(ctx, group.ID, userID, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	return resp, nil
}

// History returns the group's snapshots over the trailing days.
func (c *Comparator) History(ctx context.Context, groupID string, userID int64, days int) (*models.HistoryResponse, error) {
	const opn = "comparator.History"

	if days <= 0 {
		return nil, apperr.Validation("days must be positive, got %d", days)
	}

	if _, err := c.groups.GetGroup(ctx, groupID, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	to := time.Now().UTC()
	from := to.Add(-time.Duration(days) * 24 * time.Hour)

	snapshots, err := c.snapshots.History(ctx, groupID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	return &models.HistoryResponse{
		GroupID:    groupID,
		Snapshots:  snapshots,
		TotalCount: len(snapshots),
		DateFrom:   from,
		DateTo:     to,
	}, nil
}

// UserStats summarizes the user's groups and standing.
func (c *Comparator) UserStats(ctx context.Context, userID int64) (*models.UserStats, error) {
	const opn = "comparator.UserStats"

	stats, err := c.groups.UserStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	return stats, nil
}

// fetchMembers fetches and normalizes every member's listing concurrently,
// bounded by the fetch limit. A failed fetch never aborts the rest: the
// member is recorded as unavailable and reported through a warning.
func (c *Comparator) fetchMembers(ctx context.Context, members []models.GroupMember) ([]models.ArticleComparisonData, []string, []error) {
	results := make([]models.ArticleComparisonData, len(members))
	fetchErrs := make([]error, len(members))

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(c.fetchLimit)

	for i, member := range members {
		grp.Go(func() error {
			raw, err := c.fetcher.FetchListing(gctx, member.ArticleNumber)
			if err == nil {
				var data models.ArticleComparisonData
				data, err = normalizer.Normalize(raw, member.Role, member.Position)
				if err == nil {
					data.ArticleID = member.ID
					results[i] = data
					return nil
				}
			}

			fetchErrs[i] = fmt.Errorf("article %s: %w", member.ArticleNumber, err)
			results[i] = normalizer.Unavailable(member.ArticleNumber, member.Role, member.Position)
			results[i].ArticleID = member.ID
			// Errors are collected per member, never propagated: a single
			// unreachable competitor must not cancel sibling fetches.
			return nil
		})
	}
	_ = grp.Wait()

	var (
		warnings []string
		errs     []error
	)
	for i, err := range fetchErrs {
		if err == nil {
			continue
		}
		c.log.Warn("Member fetch failed", "article", members[i].ArticleNumber, "error", err)
		warnings = append(warnings, fmt.Sprintf("failed to fetch article %s; it is excluded from metrics", members[i].ArticleNumber))
		errs = append(errs, err)
	}

	return results, warnings, errs
}

// fillAveragePrices sets each member's trailing average price from the
// group's snapshot history. Best effort: a history failure only logs.
func (c *Comparator) fillAveragePrices(ctx context.Context, groupID string, data []models.ArticleComparisonData) {
	now := time.Now().UTC()
	history, err := c.snapshots.History(ctx, groupID, now.Add(-averagePriceWindow), now)
	if err != nil {
		c.log.Warn("Failed to load history for average prices", "group_id", groupID, "error", err)
		return
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, snapshot := range history {
		for _, record := range snapshot.ComparisonData {
			if record.Price == nil {
				continue
			}
			sums[record.ArticleNumber] += *record.Price
			counts[record.ArticleNumber]++
		}
	}

	for i := range data {
		sum, count := sums[data[i].ArticleNumber], counts[data[i].ArticleNumber]
		if data[i].Price != nil {
			sum += *data[i].Price
			count++
		}
		if count > 0 {
			avg := sum / float64(count)
			data[i].AveragePrice7Days = &avg
		}
	}
}

// assembleResponse builds the API response from a snapshot. is_fresh
// reflects the snapshot's age against the TTL at response time.
func (c *Comparator) assembleResponse(group *models.ArticleGroup, snapshot *models.ComparisonSnapshot, warnings []string) *models.ComparisonResponse {
	own, competitors, items := splitByRole(snapshot.ComparisonData)

	return &models.ComparisonResponse{
		GroupID:     group.ID,
		GroupName:   group.Name,
		GroupType:   group.GroupType,
		OwnProduct:  own,
		Competitors: competitors,
		OtherItems:  items,
		Metrics:     snapshot.Metrics,
		ComparedAt:  snapshot.SnapshotDate,
		IsFresh:     time.Since(snapshot.SnapshotDate) <= c.ttl,
		Warnings:    warnings,
	}
}

// splitByRole partitions comparison data into the own listing, competitors
// and plain items.
func splitByRole(data []models.ArticleComparisonData) (*models.ArticleComparisonData, []models.ArticleComparisonData, []models.ArticleComparisonData) {
	var (
		own         *models.ArticleComparisonData
		competitors []models.ArticleComparisonData
		items       []models.ArticleComparisonData
	)
	for i := range data {
		switch data[i].Role {
		case models.RoleOwn:
			record := data[i]
			own = &record
		case models.RoleCompetitor:
			competitors = append(competitors, data[i])
		default:
			items = append(items, data[i])
		}
	}

	return own, competitors, items
}
