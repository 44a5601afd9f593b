package models

import "time"

// ComparisonResponse is the assembled answer to a compare or quick-compare
// request. Warnings carries non-fatal degradations, e.g. members whose
// listing could not be fetched.
type ComparisonResponse struct {
	GroupID     string                  `json:"group_id"`
	GroupName   string                  `json:"group_name,omitempty"`
	GroupType   GroupType               `json:"group_type"`
	OwnProduct  *ArticleComparisonData  `json:"own_product,omitempty"`
	Competitors []ArticleComparisonData `json:"competitors"`
	OtherItems  []ArticleComparisonData `json:"other_items"`
	Metrics     *ComparisonMetrics      `json:"metrics,omitempty"`
	ComparedAt  time.Time               `json:"compared_at"`
	IsFresh     bool                    `json:"is_fresh"`
	Warnings    []string                `json:"warnings,omitempty"`
}

// HistoryResponse lists a group's snapshots within a date range, ordered by
// snapshot date ascending.
type HistoryResponse struct {
	GroupID    string               `json:"group_id"`
	Snapshots  []ComparisonSnapshot `json:"snapshots"`
	TotalCount int                  `json:"total_count"`
	DateFrom   time.Time            `json:"date_from"`
	DateTo     time.Time            `json:"date_to"`
}

// UserStats summarizes one user's tracked groups and their current standing.
// AvgCompetitivenessIndex averages the latest snapshot of each group and is
// nil when the user has no scored snapshots yet.
type UserStats struct {
	TotalGroups             int        `json:"total_groups"`
	ComparisonGroups        int        `json:"comparison_groups"`
	TotalArticles           int        `json:"total_articles"`
	AvgCompetitivenessIndex *float64   `json:"avg_competitiveness_index,omitempty"`
	LastComparisonDate      *time.Time `json:"last_comparison_date,omitempty"`
}
