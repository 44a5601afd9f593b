package normalizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avrek/wb-radar/internal/apperr"
	"github.com/avrek/wb-radar/internal/models"
	"github.com/avrek/wb-radar/internal/services/normalizer"
	"github.com/avrek/wb-radar/internal/wbclient"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func TestNormalize_Success(t *testing.T) {
	t.Parallel()

	raw := &wbclient.RawListing{
		ArticleNumber:  "12345678",
		Name:           "Test product",
		PriceBasic:     fptr(2000),
		PriceProduct:   fptr(1500),
		PriceClient:    fptr(1350),
		Rating:         fptr(4.7),
		ReviewsCount:   iptr(321),
		SellerDiscount: fptr(10),
		ClientDiscount: fptr(5),
		TotalQuantity:  12,
		InStock:        true,
		ProductURL:     "https://example.com/12345678",
	}

	data, err := normalizer.Normalize(raw, models.RoleOwn, 0)
	require.NoError(t, err)

	assert.Equal(t, "12345678", data.ArticleNumber)
	assert.Equal(t, models.RoleOwn, data.Role)
	assert.True(t, data.Available)
	require.NotNil(t, data.Price)
	assert.InDelta(t, 1350, *data.Price, 1e-9) // card price preferred
	require.NotNil(t, data.OldPrice)
	assert.InDelta(t, 2000, *data.OldPrice, 1e-9)
	require.NotNil(t, data.NormalPrice)
	assert.InDelta(t, 1500, *data.NormalPrice, 1e-9)
	require.NotNil(t, data.Rating)
	assert.InDelta(t, 4.7, *data.Rating, 1e-9)
	require.NotNil(t, data.ReviewsCount)
	assert.Equal(t, 321, *data.ReviewsCount)
	require.NotNil(t, data.SPPTotal)
	assert.InDelta(t, 14.5, *data.SPPTotal, 1e-9)
}

func TestNormalize_NoCardPriceFallsBackToProductPrice(t *testing.T) {
	t.Parallel()

	raw := &wbclient.RawListing{
		ArticleNumber: "12345678",
		PriceProduct:  fptr(1500),
		InStock:       true,
	}

	data, err := normalizer.Normalize(raw, models.RoleCompetitor, 1)
	require.NoError(t, err)

	require.NotNil(t, data.Price)
	assert.InDelta(t, 1500, *data.Price, 1e-9)
	assert.Nil(t, data.PlatformCardPrice)
}

func TestNormalize_OutOfStockLeavesNumericsUnknown(t *testing.T) {
	t.Parallel()

	raw := &wbclient.RawListing{
		ArticleNumber: "12345678",
		Name:          "Gone product",
		PriceProduct:  fptr(1500),
		Rating:        fptr(4.2),
		InStock:       false,
	}

	data, err := normalizer.Normalize(raw, models.RoleCompetitor, 2)
	require.NoError(t, err)

	assert.False(t, data.Available)
	assert.Nil(t, data.Price)
	assert.Nil(t, data.Rating)
	assert.Nil(t, data.SPPTotal)
	assert.Equal(t, "Gone product", data.Name)
}

func TestNormalize_MissingArticleNumber(t *testing.T) {
	t.Parallel()

	_, err := normalizer.Normalize(&wbclient.RawListing{}, models.RoleOwn, 0)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindMalformedData))

	_, err = normalizer.Normalize(nil, models.RoleOwn, 0)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindMalformedData))
}

func TestCompoundSPP(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		spp1     *float64
		spp2     *float64
		expected *float64
	}{
		{name: "both present compound multiplicatively", spp1: fptr(10), spp2: fptr(5), expected: fptr(14.5)},
		{name: "only first", spp1: fptr(10), spp2: nil, expected: fptr(10)},
		{name: "only second", spp1: nil, spp2: fptr(5), expected: fptr(5)},
		{name: "neither", spp1: nil, spp2: nil, expected: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			total := normalizer.CompoundSPP(tc.spp1, tc.spp2)
			if tc.expected == nil {
				assert.Nil(t, total)
				return
			}
			require.NotNil(t, total)
			assert.InDelta(t, *tc.expected, *total, 1e-9)
		})
	}
}

func TestUnavailable(t *testing.T) {
	t.Parallel()

	data := normalizer.Unavailable("999", models.RoleCompetitor, 3)

	assert.Equal(t, "999", data.ArticleNumber)
	assert.Equal(t, models.RoleCompetitor, data.Role)
	assert.Equal(t, 3, data.Position)
	assert.False(t, data.Available)
	assert.Nil(t, data.Price)
	assert.Nil(t, data.Rating)
}
