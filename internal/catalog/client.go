// Package catalog provides the client for the external public product
// catalog API and the display formatters for its data.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/vitrinebr/vitrine/internal/domain"
)

// DefaultBaseURL is the catalog API origin. It is fixed: the catalog is a
// public third-party service and is not configurable at runtime.
const DefaultBaseURL = "https://fakestoreapi.com"

// Client fetches products and categories from the catalog API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a catalog client against the public catalog API.
// A nil httpClient gets a client with a sane timeout.
func New(httpClient *http.Client) *Client {
	return NewWithBaseURL(DefaultBaseURL, httpClient)
}

// NewWithBaseURL creates a catalog client against an explicit origin.
// Used by tests to point at a local stub server.
func NewWithBaseURL(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// ListProducts fetches the full product list. A positive limit caps the
// number of products returned by the API.
func (c *Client) ListProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	endpoint := c.baseURL + "/products"
	if limit > 0 {
		endpoint += "?limit=" + url.QueryEscape(fmt.Sprintf("%d", limit))
	}

	var products []domain.Product
	if err := c.getJSON(ctx, endpoint, "catalog.list", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single product by its catalog-assigned ID.
func (c *Client) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	var product domain.Product
	if err := c.getJSON(ctx, fmt.Sprintf("%s/products/%d", c.baseURL, id), "catalog.get", &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListCategories fetches the category name list.
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.getJSON(ctx, c.baseURL+"/products/categories", "catalog.categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ListByCategory fetches the products of one category.
func (c *Client) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	endpoint := c.baseURL + "/products/category/" + url.PathEscape(category)

	var products []domain.Product
	if err := c.getJSON(ctx, endpoint, "catalog.by_category", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, op string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Internal(err, op, "failed to build catalog request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Unavailable(err, op, "Catálogo de produtos indisponível")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.NotFound(op, "Produto não encontrado")
	case resp.StatusCode != http.StatusOK:
		return domain.Errorf(domain.EINTERNAL, op, "catalog responded with status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.Internal(err, op, "failed to decode catalog response")
	}
	return nil
}
