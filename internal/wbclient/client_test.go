package wbclient_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avrek/wb-radar/internal/wbclient"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *wbclient.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return wbclient.NewClient(logger, srv.URL, 5*time.Second, 100)
}

func TestFetchListing_Success(t *testing.T) {
	ctx := t.Context()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cards/v2/detail", r.URL.Path)
		assert.Equal(t, "123456", r.URL.Query().Get("nm"))
		assert.Equal(t, "rub", r.URL.Query().Get("curr"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": {
				"products": [{
					"id": 123456,
					"name": "Steel pan 24cm",
					"reviewRating": 4.7,
					"feedbacks": 1532,
					"totalQuantity": 42,
					"sale": 30,
					"clientSale": 5,
					"priceU": 250000,
					"salePriceU": 175000,
					"clientPriceU": 166250
				}]
			}
		}`))
	})

	listing, err := client.FetchListing(ctx, "123456")
	require.NoError(t, err)

	assert.Equal(t, "123456", listing.ArticleNumber)
	assert.Equal(t, "Steel pan 24cm", listing.Name)
	assert.True(t, listing.InStock)
	assert.Equal(t, 42, listing.TotalQuantity)

	require.NotNil(t, listing.PriceBasic)
	assert.InDelta(t, 2500, *listing.PriceBasic, 1e-9)
	require.NotNil(t, listing.PriceProduct)
	assert.InDelta(t, 1750, *listing.PriceProduct, 1e-9)
	require.NotNil(t, listing.PriceClient)
	assert.InDelta(t, 1662.5, *listing.PriceClient, 1e-9)

	require.NotNil(t, listing.SellerDiscount)
	assert.InDelta(t, 30, *listing.SellerDiscount, 1e-9)
	require.NotNil(t, listing.ClientDiscount)
	assert.InDelta(t, 5, *listing.ClientDiscount, 1e-9)

	require.NotNil(t, listing.Rating)
	assert.InDelta(t, 4.7, *listing.Rating, 1e-9)
	require.NotNil(t, listing.ReviewsCount)
	assert.Equal(t, 1532, *listing.ReviewsCount)

	assert.Equal(t, "https://www.wildberries.ru/catalog/123456/detail.aspx", listing.ProductURL)
}

func TestFetchListing_OmittedFields(t *testing.T) {
	ctx := t.Context()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		// Out of stock, no prices, no rating yet.
		_, _ = w.Write([]byte(`{"data":{"products":[{"id":1,"name":"New item","totalQuantity":0,"feedbacks":0}]}}`))
	})

	listing, err := client.FetchListing(ctx, "1")
	require.NoError(t, err)

	assert.False(t, listing.InStock)
	assert.Nil(t, listing.PriceBasic)
	assert.Nil(t, listing.PriceProduct)
	assert.Nil(t, listing.PriceClient)
	assert.Nil(t, listing.SellerDiscount)
	assert.Nil(t, listing.Rating)
	require.NotNil(t, listing.ReviewsCount)
	assert.Zero(t, *listing.ReviewsCount)
}

func TestFetchListing_NotFound(t *testing.T) {
	ctx := t.Context()

	t.Run("http 404", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := client.FetchListing(ctx, "999")
		require.ErrorIs(t, err, wbclient.ErrListingNotFound)
	})

	t.Run("empty products list", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"data":{"products":[]}}`))
		})

		_, err := client.FetchListing(ctx, "999")
		require.ErrorIs(t, err, wbclient.ErrListingNotFound)
	})
}

func TestFetchListing_ServerErrors(t *testing.T) {
	ctx := t.Context()

	t.Run("error: unexpected status", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := client.FetchListing(ctx, "1")
		require.Error(t, err)
		assert.ErrorContains(t, err, "status code error")
		assert.NotErrorIs(t, err, wbclient.ErrListingNotFound)
	})

	t.Run("error: malformed body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html>maintenance</html>`))
		})

		_, err := client.FetchListing(ctx, "1")
		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to decode card response")
	})

	t.Run("error: unreachable host", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		client := wbclient.NewClient(logger, "http://127.0.0.1:1", time.Second, 100)

		_, err := client.FetchListing(ctx, "1")
		require.Error(t, err)
		assert.ErrorContains(t, err, "request failed")
	})
}
