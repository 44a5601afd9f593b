// Package metrics computes comparison metrics and the competitiveness grade.
// Compute is a pure function: identical inputs always produce identical
// output, which keeps snapshots reproducible.
package metrics

import (
	"math"
	"sort"

	"github.com/avrek/wb-radar/internal/models"
)

// Weights distributes the competitiveness index across the four dimensions.
type Weights struct {
	Price   float64
	Rating  float64
	SPP     float64
	Reviews float64
}

// Scales convert a per-dimension advantage into score points around the
// 50-point parity baseline.
type Scales struct {
	Price   float64
	Rating  float64
	SPP     float64
	Reviews float64
}

// GradeThresholds are the lower bounds of the letter grades; anything below
// D is an F.
type GradeThresholds struct {
	A float64
	B float64
	C float64
	D float64
}

// Config holds every tunable of the calculator, so tests can override the
// constants without touching the calculation logic.
type Config struct {
	Weights Weights
	Scales  Scales
	Grades  GradeThresholds
	// PriceEpsilon is the currency-unit tolerance within which two prices
	// count as equal.
	PriceEpsilon float64
}

// DefaultConfig returns the production weighting scheme.
func DefaultConfig() Config {
	return Config{
		Weights:      Weights{Price: 0.35, Rating: 0.25, SPP: 0.2, Reviews: 0.2},
		Scales:       Scales{Price: 250, Rating: 50, SPP: 5, Reviews: 50},
		Grades:       GradeThresholds{A: 85, B: 70, C: 55, D: 40},
		PriceEpsilon: 0.01,
	}
}

// tieEpsilon is the tolerance for the non-price dimensions.
const tieEpsilon = 1e-9

type dimension string

const (
	dimPrice   dimension = "price"
	dimRating  dimension = "rating"
	dimSPP     dimension = "spp"
	dimReviews dimension = "reviews"
)

// recNoData keys the template used when a dimension cannot be compared.
const recNoData models.Winner = "no_data"

// recommendations holds the fixed template per (dimension, winner) pair.
var recommendations = map[dimension]map[models.Winner]string{
	dimPrice: {
		models.WinnerOwn:        "Your price is lower than the competitors'. Good position.",
		models.WinnerCompetitor: "Competitor is cheaper; consider a price adjustment.",
		models.WinnerEqual:      "Prices are on par with the competitors.",
		recNoData:               "Not enough price data to compare.",
	},
	dimRating: {
		models.WinnerOwn:        "Your rating beats the competitors'.",
		models.WinnerCompetitor: "Competitors are rated higher; work on product quality and reviews.",
		models.WinnerEqual:      "Ratings are on par with the competitors.",
		recNoData:               "Not enough rating data to compare.",
	},
	dimSPP: {
		models.WinnerOwn:        "Your total discount is deeper than the competitors'.",
		models.WinnerCompetitor: "Competitors offer a deeper discount; review your promo participation.",
		models.WinnerEqual:      "Discounts are on par with the competitors.",
		recNoData:               "Not enough discount data to compare.",
	},
	dimReviews: {
		models.WinnerOwn:        "You have more reviews than the competitors.",
		models.WinnerCompetitor: "Competitors have more reviews; consider stimulating feedback.",
		models.WinnerEqual:      "Review counts are on par with the competitors.",
		recNoData:               "Not enough review data to compare.",
	},
}

// InsufficientDataRecommendation flags a result where no dimension could be
// compared at all. The orchestrator surfaces it as a warning on an otherwise
// successful response.
const InsufficientDataRecommendation = "Insufficient data: none of the listings could be compared."

// Calculator computes comparison metrics with a fixed configuration.
type Calculator struct {
	cfg Config
}

// NewCalculator creates a calculator with the given configuration.
func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// Compute derives the four dimension diffs, the competitiveness index and
// the grade. own may be nil for groups without an "own" member; the
// reference listing is then the first of others by position, each dimension
// compares it against the best value among the rest instead of the average,
// and the categorical results carry article ids instead of sides. Listings
// with unknown values for a dimension drop out of that dimension's
// aggregate; a dimension unknown on either side is excluded from the index
// and the weights are renormalized over the rest.
func (c *Calculator) Compute(own *models.ArticleComparisonData, others []models.ArticleComparisonData) *models.ComparisonMetrics {
	rest := make([]models.ArticleComparisonData, len(others))
	copy(rest, others)
	sort.SliceStable(rest, func(i, j int) bool { return rest[i].Position < rest[j].Position })

	referenceMode := own == nil
	if referenceMode {
		if len(rest) == 0 {
			return insufficient()
		}
		own = &rest[0]
		rest = rest[1:]
	}

	price := c.block(dimPrice, own.Price, rest, priceOf, false, c.cfg.PriceEpsilon, referenceMode, own.ArticleID)
	rating := c.block(dimRating, own.Rating, rest, ratingOf, true, tieEpsilon, referenceMode, own.ArticleID)
	spp := c.block(dimSPP, own.SPPTotal, rest, sppOf, true, tieEpsilon, referenceMode, own.ArticleID)
	reviews := c.block(dimReviews, reviewsOf(own), rest, reviewsOf, true, tieEpsilon, referenceMode, own.ArticleID)

	result := &models.ComparisonMetrics{
		Price:   price.diff,
		Rating:  rating.diff,
		SPP:     spp.diff,
		Reviews: reviews.diff,
	}

	var weightedSum, weightSum float64
	for _, b := range []struct {
		block  block
		weight float64
	}{
		{price, c.cfg.Weights.Price},
		{rating, c.cfg.Weights.Rating},
		{spp, c.cfg.Weights.SPP},
		{reviews, c.cfg.Weights.Reviews},
	} {
		if b.block.score == nil {
			continue
		}
		weightedSum += *b.block.score * b.weight
		weightSum += b.weight
	}

	if weightSum == 0 {
		result.Grade = models.GradeF
		result.InsufficientData = true
		return result
	}

	index := weightedSum / weightSum
	result.CompetitivenessIndex = &index
	result.Grade = c.grade(index)

	return result
}

// block bundles a dimension diff with its normalized score; a nil score
// excludes the dimension from the index.
type block struct {
	diff  models.MetricDiff
	score *float64
}

// block compares the own value against the aggregate of the others' known
// values for one dimension: their average in the own-centric case, the best
// of them in reference mode.
func (c *Calculator) block(
	dim dimension,
	ownVal *float64,
	others []models.ArticleComparisonData,
	valueOf func(*models.ArticleComparisonData) *float64,
	higherBetter bool,
	epsilon float64,
	referenceMode bool,
	ownArticleID string,
) block {
	avg, best, bestID := aggregate(others, valueOf, higherBetter)

	if ownVal == nil || avg == nil {
		return block{diff: models.MetricDiff{
			Winner:         models.WinnerEqual,
			Recommendation: recommendations[dim][recNoData],
		}}
	}

	target := *avg
	if referenceMode {
		target = best
	}

	absolute := *ownVal - target
	diff := models.MetricDiff{Absolute: &absolute}
	if *ownVal != 0 {
		percentage := absolute / *ownVal * 100
		diff.Percentage = &percentage
	}

	switch {
	case math.Abs(absolute) <= epsilon:
		diff.Winner = models.WinnerEqual
	case higherBetter == (absolute > 0):
		diff.Winner = models.WinnerOwn
	default:
		diff.Winner = models.WinnerCompetitor
	}
	diff.Recommendation = recommendations[dim][diff.Winner]

	if referenceMode {
		switch diff.Winner {
		case models.WinnerOwn:
			diff.WinnerArticleID = ownArticleID
		case models.WinnerCompetitor:
			diff.WinnerArticleID = bestID
		}
	}

	score := clamp(50+c.advantage(dim, *ownVal, target)*c.scale(dim), 0, 100)

	return block{diff: diff, score: &score}
}

// advantage measures how far ahead the own value is, in dimension-specific
// units: relative price gap, rating points, discount percentage points,
// relative review-count gap.
func (c *Calculator) advantage(dim dimension, own, avg float64) float64 {
	switch dim {
	case dimPrice:
		denom := avg
		if denom <= 0 {
			denom = c.cfg.PriceEpsilon
		}
		return (avg - own) / denom
	case dimReviews:
		denom := math.Max(math.Max(own, avg), 1)
		return (own - avg) / denom
	default:
		return own - avg
	}
}

func (c *Calculator) scale(dim dimension) float64 {
	switch dim {
	case dimPrice:
		return c.cfg.Scales.Price
	case dimRating:
		return c.cfg.Scales.Rating
	case dimSPP:
		return c.cfg.Scales.SPP
	default:
		return c.cfg.Scales.Reviews
	}
}

func (c *Calculator) grade(index float64) models.Grade {
	switch {
	case index >= c.cfg.Grades.A:
		return models.GradeA
	case index >= c.cfg.Grades.B:
		return models.GradeB
	case index >= c.cfg.Grades.C:
		return models.GradeC
	case index >= c.cfg.Grades.D:
		return models.GradeD
	default:
		return models.GradeF
	}
}

// aggregate computes the mean over the known values and the best of them,
// with the article holding it. A nil mean marks the dimension unknown on
// the others' side; best carries no meaning then.
func aggregate(
	others []models.ArticleComparisonData,
	valueOf func(*models.ArticleComparisonData) *float64,
	higherBetter bool,
) (*float64, float64, string) {
	var (
		sum    float64
		count  int
		best   float64
		bestID string
	)
	for i := range others {
		v := valueOf(&others[i])
		if v == nil {
			continue
		}
		sum += *v
		count++
		better := higherBetter && *v > best || !higherBetter && *v < best
		if count == 1 || better {
			best = *v
			bestID = others[i].ArticleID
		}
	}
	if count == 0 {
		return nil, 0, ""
	}
	avg := sum / float64(count)
	return &avg, best, bestID
}

func insufficient() *models.ComparisonMetrics {
	noData := func(dim dimension) models.MetricDiff {
		return models.MetricDiff{Winner: models.WinnerEqual, Recommendation: recommendations[dim][recNoData]}
	}
	return &models.ComparisonMetrics{
		Price:            noData(dimPrice),
		Rating:           noData(dimRating),
		SPP:              noData(dimSPP),
		Reviews:          noData(dimReviews),
		Grade:            models.GradeF,
		InsufficientData: true,
	}
}

func priceOf(d *models.ArticleComparisonData) *float64  { return d.Price }
func ratingOf(d *models.ArticleComparisonData) *float64 { return d.Rating }
func sppOf(d *models.ArticleComparisonData) *float64    { return d.SPPTotal }

func reviewsOf(d *models.ArticleComparisonData) *float64 {
	if d.ReviewsCount == nil {
		return nil
	}
	v := float64(*d.ReviewsCount)
	return &v
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
