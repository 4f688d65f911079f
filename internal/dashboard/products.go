package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

var ErrFeedUnavailable = errors.New("products feed unavailable")

// Product is one entry of the manufacturing feed. Only the fields the
// summary cards read are decoded.
type Product struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	CurrentStatus string `json:"status"`
	Division      string `json:"division,omitempty"`
	Manufacturer  string `json:"manufacturer,omitempty"`
}

type productsEnvelope struct {
	Products []Product `json:"products"`
}

// Config carries the products feed endpoint settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// ProductsClient fetches the manufacturing feed consumed by the dashboard
// summary cards.
type ProductsClient struct {
	http *resty.Client
}

func NewProductsClient(cfg Config) *ProductsClient {
	return &ProductsClient{
		http: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(cfg.Timeout).
			SetHeader("Accept", "application/json"),
	}
}

func (c *ProductsClient) FetchProducts(ctx context.Context) ([]Product, error) {
	var envelope productsEnvelope

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&envelope).
		Get("/api/getProductsFast")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d", ErrFeedUnavailable, resp.StatusCode())
	}

	return envelope.Products, nil
}
