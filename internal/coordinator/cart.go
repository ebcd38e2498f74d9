package coordinator

import (
	"context"

	"github.com/Filichkin/OnlineShop-sub001/internal/api"
	"github.com/Filichkin/OnlineShop-sub001/internal/state"
)

// AddToCart puts a product in the cart, or bumps its quantity when already
// present. The optimistic row captures the product's current price; the
// server response replaces it with the authoritative captured price.
func (c *Coordinator) AddToCart(product api.Product, quantity int) {
	if quantity < 1 {
		return
	}
	prev, _, existed := c.store.CartItem(product.ID)
	if existed {
		c.store.SetQuantity(product.ID, prev.Quantity+quantity)
	} else {
		c.store.UpsertCartItem(state.CartItem{
			Product:         product,
			Quantity:        quantity,
			PriceAtAddition: product.Price,
		})
	}
	c.store.BeginPending(product.ID)

	rollback := func() {
		if existed {
			c.store.UpsertCartItem(prev)
		} else {
			c.store.RemoveCartItem(product.ID)
		}
	}
	c.settle(opAdd, product.ID, func(ctx context.Context) error {
		row, err := c.remote.AddItem(ctx, product.ID, quantity)
		if err != nil {
			return err
		}
		c.store.UpsertCartItem(fromAPI(row))
		return nil
	}, rollback)
}

// SetQuantity changes a row's quantity. Values below 1 are rejected before
// any state change: removal is a distinct operation, never quantity zero.
func (c *Coordinator) SetQuantity(productID int64, quantity int) {
	if quantity < 1 {
		return
	}
	prev, _, ok := c.store.CartItem(productID)
	if !ok {
		return
	}
	c.store.SetQuantity(productID, quantity)
	c.store.BeginPending(productID)

	c.settle(opUpdate, productID, func(ctx context.Context) error {
		row, err := c.remote.UpdateItem(ctx, productID, quantity)
		if err != nil {
			return err
		}
		c.store.UpsertCartItem(fromAPI(row))
		return nil
	}, func() {
		c.store.UpsertCartItem(prev)
	})
}

// IncrementQuantity bumps a row's quantity by one.
func (c *Coordinator) IncrementQuantity(productID int64) {
	item, _, ok := c.store.CartItem(productID)
	if !ok {
		return
	}
	c.SetQuantity(productID, item.Quantity+1)
}

// DecrementQuantity lowers a row's quantity by one. At quantity 1 this is a
// no-op and no network call is issued; the UI disables the control there.
func (c *Coordinator) DecrementQuantity(productID int64) {
	item, _, ok := c.store.CartItem(productID)
	if !ok || item.Quantity <= 1 {
		return
	}
	c.SetQuantity(productID, item.Quantity-1)
}

// RemoveFromCart deletes a row. A 404 from the server means the row was
// already gone, which is the state the user asked for.
func (c *Coordinator) RemoveFromCart(productID int64) {
	removed, index, ok := c.store.RemoveCartItem(productID)
	if !ok {
		return
	}
	c.store.BeginPending(productID)

	c.settle(opRemove, productID, func(ctx context.Context) error {
		err := c.remote.RemoveItem(ctx, productID)
		if err != nil && api.IsNotFound(err) {
			return nil
		}
		return err
	}, func() {
		c.store.InsertCartItem(removed, index)
	})
}

// ClearCart empties the cart. Rollback restores the full captured item list.
func (c *Coordinator) ClearCart() {
	previous := c.store.ClearCartItems()
	if len(previous) == 0 {
		return
	}
	c.settle(opClear, 0, func(ctx context.Context) error {
		err := c.remote.ClearCart(ctx)
		if err != nil && api.IsNotFound(err) {
			return nil
		}
		return err
	}, func() {
		c.store.ReplaceCartItems(previous)
	})
}
