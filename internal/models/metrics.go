package models

// Winner names the side that wins one comparison dimension.
type Winner string

const (
	WinnerOwn        Winner = "own"
	WinnerCompetitor Winner = "competitor"
	WinnerEqual      Winner = "equal"
)

// Grade is the letter bucketing of the competitiveness index.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// MetricDiff is the comparison result for a single dimension. Absolute and
// Percentage are nil when either side of the dimension is unknown.
// Percentage is relative to the own value and nil when that value is zero.
// WinnerArticleID is only set for groups without an "own" member, where the
// categorical result names the winning article instead of a side.
type MetricDiff struct {
	Absolute        *float64 `json:"absolute,omitempty"`
	Percentage      *float64 `json:"percentage,omitempty"`
	Winner          Winner   `json:"winner"`
	WinnerArticleID string   `json:"winner_article_id,omitempty"`
	Recommendation  string   `json:"recommendation"`
}

// ComparisonMetrics aggregates the four dimension diffs into a single
// competitiveness index and grade. CompetitivenessIndex is nil when every
// dimension is unknown; the grade then defaults to F and InsufficientData
// is set.
type ComparisonMetrics struct {
	Price                MetricDiff `json:"price"`
	Rating               MetricDiff `json:"rating"`
	SPP                  MetricDiff `json:"spp"`
	Reviews              MetricDiff `json:"reviews"`
	CompetitivenessIndex *float64   `json:"competitiveness_index,omitempty"`
	Grade                Grade      `json:"grade"`
	InsufficientData     bool       `json:"insufficient_data,omitempty"`
}
