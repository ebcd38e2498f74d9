package state

import (
	"github.com/shopspring/decimal"

	"github.com/Filichkin/OnlineShop-sub001/internal/api"
)

// CartItem is one cart row as the UI sees it. PriceAtAddition is the price
// captured when the item entered the cart; it never tracks later product
// price changes.
type CartItem struct {
	Product         api.Product
	Quantity        int
	PriceAtAddition decimal.Decimal
}

// Subtotal is always recomputed from quantity and the captured price. It is
// deliberately not a stored field, so it cannot drift.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.PriceAtAddition.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartSnapshot is the UI's view of the cart. Loaded distinguishes "never
// fetched" from "fetched and empty". Items keep server order and contain at
// most one row per product.
type CartSnapshot struct {
	Items  []CartItem
	Loaded bool
}

// TotalQuantity sums quantities across all rows.
func (s CartSnapshot) TotalQuantity() int {
	total := 0
	for _, item := range s.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums subtotals across all rows.
func (s CartSnapshot) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Item returns the row for a product, if present.
func (s CartSnapshot) Item(productID int64) (CartItem, bool) {
	for _, item := range s.Items {
		if item.Product.ID == productID {
			return item, true
		}
	}
	return CartItem{}, false
}

// FavoritesSnapshot is the UI's view of the favorites set. IsGuest is true
// when the set is backed by the local guest store instead of the backend.
type FavoritesSnapshot struct {
	Items   []api.Product
	Loaded  bool
	IsGuest bool
}

// IsFavorite reports membership by product id.
func (s FavoritesSnapshot) IsFavorite(productID int64) bool {
	for _, p := range s.Items {
		if p.ID == productID {
			return true
		}
	}
	return false
}

func cloneCartItems(items []CartItem) []CartItem {
	if len(items) == 0 {
		return nil
	}
	dup := make([]CartItem, len(items))
	copy(dup, items)
	return dup
}

func cloneProducts(items []api.Product) []api.Product {
	if len(items) == 0 {
		return nil
	}
	dup := make([]api.Product, len(items))
	copy(dup, items)
	return dup
}
