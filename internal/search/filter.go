// Package search implements the free-text product filter shared across
// listing pages.
package search

import (
	"strings"
	"sync"

	"github.com/vitrinebr/vitrine/internal/domain"
)

// Filter holds a free-text query and matches it against product title and
// description, case-insensitively. The zero value matches everything.
type Filter struct {
	mu    sync.Mutex
	query string
}

// NewFilter creates a filter with an initial query.
func NewFilter(query string) *Filter {
	return &Filter{query: query}
}

// SetQuery replaces the current query.
func (f *Filter) SetQuery(query string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.query = query
}

// Query returns the current query.
func (f *Filter) Query() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.query
}

// Match reports whether a product matches the current query.
// An empty or whitespace-only query matches every product.
func (f *Filter) Match(p domain.Product) bool {
	return Matches(p, f.Query())
}

// Apply returns the products matching the current query, preserving order.
func (f *Filter) Apply(products []domain.Product) []domain.Product {
	query := f.Query()
	if strings.TrimSpace(query) == "" {
		return products
	}

	matched := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if Matches(p, query) {
			matched = append(matched, p)
		}
	}
	return matched
}

// Matches is the pure filter predicate: true when the query appears in the
// product title or description, ignoring case.
func Matches(p domain.Product, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), query) ||
		strings.Contains(strings.ToLower(p.Description), query)
}
