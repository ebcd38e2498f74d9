package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CatalogQuery configures catalog listing requests. Zero values mean
// "no filter".
type CatalogQuery struct {
	Skip      int
	Limit     int
	BrandSlug string
	Search    string
	MinPrice  decimal.Decimal
	MaxPrice  decimal.Decimal
	SortBy    string // name, price, created_at
	SortDesc  bool
}

func (q CatalogQuery) values() url.Values {
	values := url.Values{}
	if q.Skip > 0 {
		values.Set("skip", strconv.Itoa(q.Skip))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if slug := strings.TrimSpace(q.BrandSlug); slug != "" {
		values.Set("brand_slug", slug)
	}
	if search := strings.TrimSpace(q.Search); search != "" {
		values.Set("search", search)
	}
	if q.MinPrice.IsPositive() {
		values.Set("min_price", q.MinPrice.String())
	}
	if q.MaxPrice.IsPositive() {
		values.Set("max_price", q.MaxPrice.String())
	}
	if sortBy := strings.TrimSpace(q.SortBy); sortBy != "" {
		values.Set("sort_by", sortBy)
		order := "asc"
		if q.SortDesc {
			order = "desc"
		}
		values.Set("sort_order", order)
	}
	return values
}

// Catalog lists products with the given filters.
func (c *Client) Catalog(ctx context.Context, query CatalogQuery) ([]CatalogProduct, error) {
	var payload []CatalogProduct
	if err := c.get(ctx, "/api/catalog/", query.values(), &payload); err != nil {
		return nil, err
	}
	for _, p := range payload {
		if err := p.Validate(); err != nil {
			return nil, validationError(err.Error())
		}
	}
	return payload, nil
}

// ProductDetail returns one product by id.
func (c *Client) ProductDetail(ctx context.Context, productID int64) (CatalogProduct, error) {
	var payload CatalogProduct
	if err := c.get(ctx, fmt.Sprintf("/api/products/%d", productID), nil, &payload); err != nil {
		return CatalogProduct{}, err
	}
	if err := payload.Validate(); err != nil {
		return CatalogProduct{}, validationError(err.Error())
	}
	return payload, nil
}

// Brands lists storefront brands.
func (c *Client) Brands(ctx context.Context) ([]Brand, error) {
	var payload []Brand
	if err := c.get(ctx, "/api/brands/", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Categories lists storefront categories.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var payload []Category
	if err := c.get(ctx, "/api/categories/", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}
