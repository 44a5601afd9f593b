package models

import "time"

// ComparisonSnapshot is an immutable record of one comparison computation.
// ComparisonData is a complete, self-contained copy of every listing
// involved, so the snapshot stays meaningful even after the articles'
// canonical data changes. Snapshots are append-only and never mutated.
type ComparisonSnapshot struct {
	ID                   string                  `json:"id"`
	GroupID              string                  `json:"group_id"`
	SnapshotDate         time.Time               `json:"snapshot_date"`
	ComparisonData       []ArticleComparisonData `json:"comparison_data"`
	Metrics              *ComparisonMetrics      `json:"metrics,omitempty"`
	CompetitivenessIndex *float64                `json:"competitiveness_index,omitempty"`
	CreatedAt            time.Time               `json:"created_at"`
}
