// Package wbclient is the boundary to the external product-data service.
// It turns an article number into a raw listing payload; everything
// downstream operates on the normalized schema instead.
package wbclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// ErrListingNotFound is returned when the card API knows nothing about the
// requested article number.
var ErrListingNotFound = errors.New("listing not found")

// RawListing is the untyped-world view of one listing, already decoded from
// the card API response but not yet normalized. Pointer fields are nil when
// the API omitted them.
type RawListing struct {
	ArticleNumber  string
	Name           string
	PriceBasic     *float64 // crossed-out price before discounts
	PriceProduct   *float64 // price after the seller discount
	PriceClient    *float64 // price with the platform card discount
	Rating         *float64
	ReviewsCount   *int
	SellerDiscount *float64 // percent
	ClientDiscount *float64 // percent
	TotalQuantity  int
	InStock        bool
	ImageURL       string
	ProductURL     string
}

// Fetcher retrieves listings from the external product-data service.
type Fetcher interface {
	FetchListing(ctx context.Context, articleNumber string) (*RawListing, error)
}

// Client calls the public card JSON API through a rate limiter so bursts of
// group fetches stay within the service's tolerance.
type Client struct {
	log     *slog.Logger
	http    *resty.Client
	limiter *rate.Limiter
}

// NewClient creates a card API client. rps caps outgoing requests per
// second across all concurrent fetches.
func NewClient(log *slog.Logger, baseURL string, timeout time.Duration, rps float64) *Client {
	return &Client{
		log:     log,
		http:    resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// cardResponse mirrors the card API detail endpoint shape. Prices come in
// minor currency units (kopecks).
type cardResponse struct {
	Data struct {
		Products []cardProduct `json:"products"`
	} `json:"data"`
}

type cardProduct struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	ReviewRating  float64 `json:"reviewRating"`
	Feedbacks     int     `json:"feedbacks"`
	TotalQuantity int     `json:"totalQuantity"`
	Sale          *int    `json:"sale,omitempty"`       // seller discount, percent
	ClientSale    *int    `json:"clientSale,omitempty"` // platform card discount, percent
	PriceU        *int64  `json:"priceU,omitempty"`
	SalePriceU    *int64  `json:"salePriceU,omitempty"`
	ClientPriceU  *int64  `json:"clientPriceU,omitempty"`
	Pics          int     `json:"pics"`
}

// FetchListing requests the card for one article number.
func (c *Client) FetchListing(ctx context.Context, articleNumber string) (*RawListing, error) {
	const opn = "wbclient.FetchListing"
	log := c.log.With("op", opn, "article", articleNumber)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: rate limiter: %w", opn, err)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("nm", articleNumber).
		SetQueryParam("dest", "-1257786").
		SetQueryParam("curr", "rub").
		Get("/cards/v2/detail")
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", opn, err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", opn, ErrListingNotFound)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%s: status code error: [%d] %s", opn, resp.StatusCode(), resp.Status())
	}

	var card cardResponse
	if err = json.Unmarshal(resp.Body(), &card); err != nil {
		return nil, fmt.Errorf("%s: failed to decode card response: %w", opn, err)
	}

	if len(card.Data.Products) == 0 {
		return nil, fmt.Errorf("%s: %w", opn, ErrListingNotFound)
	}

	listing := toRawListing(articleNumber, card.Data.Products[0])
	log.DebugContext(ctx, "Fetched listing", "name", listing.Name, "in_stock", listing.InStock)

	return listing, nil
}

// toRawListing maps one card product onto the raw listing shape.
func toRawListing(articleNumber string, p cardProduct) *RawListing {
	listing := &RawListing{
		ArticleNumber: articleNumber,
		Name:          p.Name,
		TotalQuantity: p.TotalQuantity,
		InStock:       p.TotalQuantity > 0,
		ProductURL:    fmt.Sprintf("https://www.wildberries.ru/catalog/%s/detail.aspx", articleNumber),
	}

	if p.ReviewRating > 0 {
		rating := p.ReviewRating
		listing.Rating = &rating
	}
	reviews := p.Feedbacks
	listing.ReviewsCount = &reviews

	listing.PriceBasic = kopecksToRubles(p.PriceU)
	listing.PriceProduct = kopecksToRubles(p.SalePriceU)
	listing.PriceClient = kopecksToRubles(p.ClientPriceU)
	listing.SellerDiscount = percent(p.Sale)
	listing.ClientDiscount = percent(p.ClientSale)

	return listing
}

func kopecksToRubles(v *int64) *float64 {
	if v == nil {
		return nil
	}
	r := float64(*v) / 100
	return &r
}

func percent(v *int) *float64 {
	if v == nil {
		return nil
	}
	p := float64(*v)
	return &p
}
