package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/angelmondragon/storefront-api/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront-api/pkg/errors"
	"github.com/angelmondragon/storefront-api/pkg/metrics"
)

const maxUpstreamBodyBytes = 8 << 20

// Client fetches the product catalog from the configured demo product API.
// It owns response-shape normalization: nothing past this boundary sees the
// upstream wire format.
type Client struct {
	baseURL string
	http    *http.Client
	metrics *metrics.StorefrontMetrics
}

func NewClient(cfg config.UpstreamConfig, m *metrics.StorefrontMetrics) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		metrics: m,
	}
}

// FetchCatalog retrieves the full product list. A failure is all-or-nothing:
// no partial catalog is ever returned.
func (c *Client) FetchCatalog(ctx context.Context) ([]Product, error) {
	start := time.Now()
	products, err := c.fetchCatalog(ctx)
	c.metrics.ObserveFetch("catalog", time.Since(start), err)
	return products, err
}

func (c *Client) fetchCatalog(ctx context.Context) ([]Product, error) {
	raw, status, err := c.get(ctx, c.baseURL)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "fetch catalog")
	}
	if status < 200 || status > 299 {
		return nil, pkgerrors.New(pkgerrors.CodeUpstream, fmt.Sprintf("catalog source returned status %d", status))
	}
	products, err := normalizePayload(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "decode catalog payload")
	}
	return products, nil
}

// FetchProduct retrieves a single product by id. An upstream 404 is a
// distinct not-found error, everything else non-2xx is an upstream failure.
func (c *Client) FetchProduct(ctx context.Context, id int64) (*Product, error) {
	start := time.Now()
	product, err := c.fetchProduct(ctx, id)
	c.metrics.ObserveFetch("detail", time.Since(start), err)
	return product, err
}

func (c *Client) fetchProduct(ctx context.Context, id int64) (*Product, error) {
	raw, status, err := c.get(ctx, fmt.Sprintf("%s/%d", c.baseURL, id))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "fetch product detail")
	}
	if status == http.StatusNotFound {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if status < 200 || status > 299 {
		return nil, pkgerrors.New(pkgerrors.CodeUpstream, fmt.Sprintf("catalog source returned status %d", status))
	}
	products, err := normalizePayload(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "decode product payload")
	}
	if len(products) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return &products[0], nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

// normalizePayload accepts the three source shapes (a wrapper object with
// a "products" field, a bare array, or a single product object) and
// returns a uniform ordered list. Unknown upstream fields are dropped by
// the decoder.
func normalizePayload(raw []byte) ([]Product, error) {
	var envelope struct {
		Products []Product `json:"products"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Products != nil {
		return envelope.Products, nil
	}

	var list []Product
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var single Product
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, fmt.Errorf("payload matches no accepted shape: %w", err)
	}
	return []Product{single}, nil
}
