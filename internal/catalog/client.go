package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"

	"github.com/lavenshop/cart-service/internal/pricing"
	apperrors "github.com/lavenshop/cart-service/pkg/errors"
	"github.com/lavenshop/cart-service/pkg/httpclient"
)

// Product is the catalog's view of a sellable product. Price carries the
// catalog's representation verbatim, whether the catalog sent a number or a
// display string.
type Product struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	ImageURL string           `json:"image_url"`
	Price    pricing.RawPrice `json:"price"`
	Sizes    []string         `json:"sizes"`
	Colors   []string         `json:"colors"`
}

// HasVariant reports whether the catalog declares the given size and color
// for this product. An empty declared list means the product has no variants
// on that axis and any value is rejected except the empty string.
func (p *Product) HasVariant(size, color string) bool {
	if len(p.Sizes) > 0 && !slices.Contains(p.Sizes, size) {
		return false
	}
	if len(p.Sizes) == 0 && size != "" {
		return false
	}
	if len(p.Colors) > 0 && !slices.Contains(p.Colors, color) {
		return false
	}
	if len(p.Colors) == 0 && color != "" {
		return false
	}
	return true
}

// HTTPDoer is the subset of the HTTP client used by the catalog client.
// Both httpclient.Client and httpclient.CircuitBreakerClient satisfy it.
type HTTPDoer interface {
	Get(ctx context.Context, url string) (*http.Response, error)
}

// Client fetches products from the catalog service.
type Client struct {
	baseURL string
	http    HTTPDoer
}

// NewClient creates a catalog client against the given base URL.
func NewClient(baseURL string, doer HTTPDoer) *Client {
	return &Client{
		baseURL: baseURL,
		http:    doer,
	}
}

// GetProduct fetches a single product by id. A 404 from the catalog maps to
// a not-found AppError so the cart can reject adds of unknown products.
func (c *Client) GetProduct(ctx context.Context, productID string) (*Product, error) {
	endpoint := fmt.Sprintf("%s/api/v1/products/%s", c.baseURL, url.PathEscape(productID))

	resp, err := c.http.Get(ctx, endpoint)
	if err != nil {
		return nil, apperrors.ServiceUnavailable(fmt.Sprintf("catalog service unreachable: %v", err))
	}

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusNotFound {
			_ = resp.Body.Close()
			return nil, apperrors.NotFound("product", productID)
		}
		return nil, httpclient.ParseResponseError(resp, "catalog-service")
	}
	defer func() { _ = resp.Body.Close() }()

	var envelope struct {
		Data *Product `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("catalog response has no product payload")
	}

	return envelope.Data, nil
}
