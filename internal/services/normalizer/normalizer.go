// Package normalizer converts raw external listing payloads into the
// canonical comparison schema. It is the single boundary where untyped
// external data is mapped; everything downstream sees only the canonical
// types.
package normalizer

import (
	"github.com/avrek/wb-radar/internal/apperr"
	"github.com/avrek/wb-radar/internal/models"
	"github.com/avrek/wb-radar/internal/wbclient"
)

// Normalize maps a raw listing into ArticleComparisonData. Missing optional
// fields stay unknown (nil); only a missing article number is an error.
// When the listing is reported as removed or out of stock, the record is
// marked unavailable and the numeric fields are left unknown instead of
// carrying over stale values.
func Normalize(raw *wbclient.RawListing, role models.Role, position int) (models.ArticleComparisonData, error) {
	if raw == nil || raw.ArticleNumber == "" {
		return models.ArticleComparisonData{}, apperr.MalformedData("raw listing has no article number")
	}

	data := models.ArticleComparisonData{
		ArticleNumber: raw.ArticleNumber,
		Role:          role,
		Name:          raw.Name,
		Available:     raw.InStock,
		ImageURL:      raw.ImageURL,
		ProductURL:    raw.ProductURL,
		Position:      position,
	}

	if !raw.InStock {
		return data, nil
	}

	data.OldPrice = raw.PriceBasic
	data.NormalPrice = raw.PriceProduct
	data.PlatformCardPrice = raw.PriceClient
	// The effective price is the card price when present, the discounted
	// price otherwise.
	if raw.PriceClient != nil {
		data.Price = raw.PriceClient
	} else {
		data.Price = raw.PriceProduct
	}

	data.Rating = raw.Rating
	data.ReviewsCount = raw.ReviewsCount
	data.SPP1 = raw.SellerDiscount
	data.SPP2 = raw.ClientDiscount
	data.SPPTotal = CompoundSPP(raw.SellerDiscount, raw.ClientDiscount)

	return data, nil
}

// Unavailable builds a placeholder record for a member whose listing could
// not be fetched. All numeric fields stay unknown.
func Unavailable(articleNumber string, role models.Role, position int) models.ArticleComparisonData {
	return models.ArticleComparisonData{
		ArticleNumber: articleNumber,
		Role:          role,
		Available:     false,
		Position:      position,
	}
}

// CompoundSPP combines two stacked discount percentages. Discounts stack
// multiplicatively: 10% on top of 5% is 14.5%, not 15%. With only one
// discount present the total equals it; with neither, the total is unknown.
func CompoundSPP(spp1, spp2 *float64) *float64 {
	switch {
	case spp1 == nil && spp2 == nil:
		return nil
	case spp1 == nil:
		v := *spp2
		return &v
	case spp2 == nil:
		v := *spp1
		return &v
	default:
		total := (1 - (1-*spp1/100)*(1-*spp2/100)) * 100
		return &total
	}
}
