package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product is the read-only product snapshot embedded in cart and favorites
// payloads. Catalog listings reuse the same shape with a few extra fields.
type Product struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	MainImage  string          `json:"main_image"`
	PartNumber string          `json:"part_number"`
}

// Validate rejects products missing the fields the snapshot invariants
// depend on.
func (p Product) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("product id %d is not positive", p.ID)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("product %d has no name", p.ID)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("product %d has negative price %s", p.ID, p.Price)
	}
	return nil
}

// CatalogProduct extends Product with listing-only fields.
type CatalogProduct struct {
	Product
	Description string `json:"description"`
	BrandSlug   string `json:"brand_slug"`
	IsActive    bool   `json:"is_active"`
}

// Brand describes a storefront brand.
type Brand struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Category describes a storefront category.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CartItem is one cart row as the server reports it.
type CartItem struct {
	ProductID       int64           `json:"product_id"`
	Quantity        int             `json:"quantity"`
	PriceAtAddition decimal.Decimal `json:"price_at_addition"`
	Product         Product         `json:"product"`
}

// Validate rejects cart rows that would break the cart invariants.
func (i CartItem) Validate() error {
	if i.ProductID <= 0 {
		return fmt.Errorf("cart item product id %d is not positive", i.ProductID)
	}
	if i.Quantity < 1 {
		return fmt.Errorf("cart item %d has quantity %d", i.ProductID, i.Quantity)
	}
	if i.PriceAtAddition.IsNegative() {
		return fmt.Errorf("cart item %d has negative price %s", i.ProductID, i.PriceAtAddition)
	}
	return i.Product.Validate()
}

// Cart mirrors the cart payload. Totals are server-computed conveniences;
// the local cache recomputes its own from items.
type Cart struct {
	Items      []CartItem      `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// Validate checks every row and the one-row-per-product invariant.
func (c Cart) Validate() error {
	seen := make(map[int64]struct{}, len(c.Items))
	for _, item := range c.Items {
		if err := item.Validate(); err != nil {
			return err
		}
		if _, dup := seen[item.ProductID]; dup {
			return fmt.Errorf("cart has duplicate rows for product %d", item.ProductID)
		}
		seen[item.ProductID] = struct{}{}
	}
	return nil
}

// favoriteItem is the wire row; only the embedded product matters to callers.
type favoriteItem struct {
	ProductID int64   `json:"product_id"`
	Product   Product `json:"product"`
}

type favoritesResponse struct {
	Items      []favoriteItem `json:"items"`
	TotalItems int            `json:"total_items"`
}

type toggleResponse struct {
	IsFavorite bool `json:"is_favorite"`
}

// User is the authenticated account as reported by the backend.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// OrderStatus values reported by the backend.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderItem is one line of a placed order. Price and name are captured at
// purchase time and never track later product changes.
type OrderItem struct {
	ProductID       int64           `json:"product_id"`
	ProductName     string          `json:"product_name"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase"`
}

// Order is a placed order with its lines.
type Order struct {
	ID          int64           `json:"id"`
	OrderNumber string          `json:"order_number"`
	Status      string          `json:"status"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	CreatedAt   time.Time       `json:"created_at"`
	Items       []OrderItem     `json:"items"`
}

// OrderDraft carries the customer information required to place an order
// from the current cart.
type OrderDraft struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Notes      string `json:"notes,omitempty"`
}

// Validate checks the fields the backend would reject anyway, so the UI can
// surface problems before issuing the request.
func (d OrderDraft) Validate() error {
	for name, value := range map[string]string{
		"first_name":  d.FirstName,
		"last_name":   d.LastName,
		"city":        d.City,
		"postal_code": d.PostalCode,
		"address":     d.Address,
		"phone":       d.Phone,
		"email":       d.Email,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("order field %s is required", name)
		}
	}
	return nil
}
