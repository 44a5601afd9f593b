package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avrek/wb-radar/internal/apperr"
	"github.com/avrek/wb-radar/internal/models"
)

// CreateSnapshot inserts a new snapshot dated now. The comparison data and
// metrics are stored as JSON so the snapshot stays a self-contained copy.
func (r *Repository) CreateSnapshot(ctx context.Context, groupID string, data []models.ArticleComparisonData, metrics *models.ComparisonMetrics) (*models.ComparisonSnapshot, error) {
	const opn = "repository.sqlite.CreateSnapshot"

	now := time.Now().UTC()
	snapshot := &models.ComparisonSnapshot{
		ID:             uuid.NewString(),
		GroupID:        groupID,
		SnapshotDate:   now,
		ComparisonData: data,
		Metrics:        metrics,
		CreatedAt:      now,
	}
	if metrics != nil {
		snapshot.CompetitivenessIndex = metrics.CompetitivenessIndex
	}

	dataJSON, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to marshal comparison data: %w", opn, err)
	}

	var metricsJSON []byte
	if metrics != nil {
		if metricsJSON, err = json.Marshal(metrics); err != nil {
			return nil, fmt.Errorf("%s: failed to marshal metrics: %w", opn, err)
		}
	}

	var index sql.NullFloat64
	if snapshot.CompetitivenessIndex != nil {
		index = sql.NullFloat64{Float64: *snapshot.CompetitivenessIndex, Valid: true}
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO comparison_snapshots (id, group_id, snapshot_date, comparison_data, metrics, competitiveness_index, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		snapshot.ID, snapshot.GroupID, snapshot.SnapshotDate, string(dataJSON), nullableString(metricsJSON), index, snapshot.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	return snapshot, nil
}

// LatestSnapshot returns the group's newest snapshot, or nil when the group
// has none.
func (r *Repository) LatestSnapshot(ctx context.Context, groupID string) (*models.ComparisonSnapshot, error) {
	const opn = "repository.sqlite.LatestSnapshot"

	row := r.db.QueryRowContext(ctx,
		"SELECT id, group_id, snapshot_date, comparison_data, metrics, competitiveness_index, created_at FROM comparison_snapshots WHERE group_id = ? ORDER BY snapshot_date DESC LIMIT 1",
		groupID,
	)

	snapshot, err := scanSnapshot(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	return snapshot, nil
}

// History returns the group's snapshots within [from, to] inclusive, ordered
// by snapshot date ascending.
func (r *Repository) History(ctx context.Context, groupID string, from, to time.Time) ([]models.ComparisonSnapshot, error) {
	const opn = "repository.sqlite.History"

	if from.After(to) {
		return nil, apperr.Validation("date_from %s is after date_to %s", from.Format(time.RFC3339), to.Format(time.RFC3339))
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, group_id, snapshot_date, comparison_data, metrics, competitiveness_index, created_at FROM comparison_snapshots WHERE group_id = ? AND snapshot_date >= ? AND snapshot_date <= ? ORDER BY snapshot_date ASC",
		groupID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}
	defer rows.Close()

	var snapshots []models.ComparisonSnapshot
	for rows.Next() {
		snapshot, err := scanSnapshot(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan snapshot: %w", opn, err)
		}
		snapshots = append(snapshots, *snapshot)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", opn, err)
	}

	return snapshots, nil
}

// scanSnapshot reads one snapshot row and unmarshals the JSON columns.
func scanSnapshot(scan func(dest ...any) error) (*models.ComparisonSnapshot, error) {
	var (
		snapshot    models.ComparisonSnapshot
		dataJSON    string
		metricsJSON sql.NullString
		index       sql.NullFloat64
	)
	if err := scan(&snapshot.ID, &snapshot.GroupID, &snapshot.SnapshotDate, &dataJSON, &metricsJSON, &index, &snapshot.CreatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(dataJSON), &snapshot.ComparisonData); err != nil {
		return nil, fmt.Errorf("failed to unmarshal comparison data: %w", err)
	}
	if metricsJSON.Valid && metricsJSON.String != "" {
		snapshot.Metrics = &models.ComparisonMetrics{}
		if err := json.Unmarshal([]byte(metricsJSON.String), snapshot.Metrics); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metrics: %w", err)
		}
	}
	if index.Valid {
		value := index.Float64
		snapshot.CompetitivenessIndex = &value
	}

	return &snapshot, nil
}

// nullableString converts an optional JSON blob to a nullable column value.
func nullableString(b []byte) sql.NullString {
	if len(b) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: string(b), Valid: true}
}
