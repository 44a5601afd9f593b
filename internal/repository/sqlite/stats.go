package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avrek/wb-radar/internal/models"
)

// UserStats aggregates the user's groups, tracked articles and the current
// competitiveness standing. The average index covers only the latest
// snapshot of each group, so old history does not dilute the current state.
func (r *Repository) UserStats(ctx context.Context, userID int64) (*models.UserStats, error) {
	const opn = "repository.sqlite.UserStats"

	stats := &models.UserStats{}

	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN group_type = ? THEN 1 ELSE 0 END), 0)
		FROM groups WHERE user_id = ?`,
		string(models.GroupTypeComparison), userID,
	).Scan(&stats.TotalGroups, &stats.ComparisonGroups)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to count groups: %w", opn, err)
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT m.article_number)
		FROM group_members m
		JOIN groups g ON g.id = m.group_id
		WHERE g.user_id = ?`,
		userID,
	).Scan(&stats.TotalArticles)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to count articles: %w", opn, err)
	}

	// Average over the latest snapshot per group only.
	var avgIndex sql.NullFloat64
	err = r.db.QueryRowContext(ctx, `
		SELECT AVG(s.competitiveness_index)
		FROM comparison_snapshots s
		JOIN groups g ON g.id = s.group_id
		WHERE g.user_id = ?
		  AND s.snapshot_date = (
			SELECT MAX(s2.snapshot_date) FROM comparison_snapshots s2 WHERE s2.group_id = s.group_id
		  )`,
		userID,
	).Scan(&avgIndex)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to aggregate snapshots: %w", opn, err)
	}
	if avgIndex.Valid {
		value := avgIndex.Float64
		stats.AvgCompetitivenessIndex = &value
	}

	var lastDate sql.NullTime
	err = r.db.QueryRowContext(ctx, `
		SELECT MAX(s.snapshot_date)
		FROM comparison_snapshots s
		JOIN groups g ON g.id = s.group_id
		WHERE g.user_id = ?`,
		userID,
	).Scan(&lastDate)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get last comparison date: %w", opn, err)
	}
	if lastDate.Valid {
		date := lastDate.Time.UTC()
		stats.LastComparisonDate = &date
	}

	return stats, nil
}
