package models

// ArticleComparisonData is a normalized, point-in-time view of one listing.
// Numeric fields are pointers: a nil value means "unknown" and must never be
// collapsed to zero, because zero is a legal price or rating delta input.
type ArticleComparisonData struct {
	ArticleID         string   `json:"article_id"`
	ArticleNumber     string   `json:"article_number"`
	Role              Role     `json:"role"`
	Name              string   `json:"name,omitempty"`
	Price             *float64 `json:"price,omitempty"`
	OldPrice          *float64 `json:"old_price,omitempty"`
	NormalPrice       *float64 `json:"normal_price,omitempty"`
	PlatformCardPrice *float64 `json:"platform_card_price,omitempty"`
	AveragePrice7Days *float64 `json:"average_price_7days,omitempty"`
	Rating            *float64 `json:"rating,omitempty"`
	ReviewsCount      *int     `json:"reviews_count,omitempty"`
	SPP1              *float64 `json:"spp1,omitempty"`
	SPP2              *float64 `json:"spp2,omitempty"`
	SPPTotal          *float64 `json:"spp_total,omitempty"`
	Available         bool     `json:"available"`
	ImageURL          string   `json:"image_url,omitempty"`
	ProductURL        string   `json:"product_url,omitempty"`
	Position          int      `json:"position"`
}
