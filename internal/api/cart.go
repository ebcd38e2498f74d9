package api

import (
	"context"
	"fmt"
	"net/http"
)

// GetCart retrieves the current cart for this session.
func (c *Client) GetCart(ctx context.Context) (Cart, error) {
	var payload Cart
	if err := c.get(ctx, "/api/cart/", nil, &payload); err != nil {
		return Cart{}, err
	}
	if err := payload.Validate(); err != nil {
		return Cart{}, validationError(err.Error())
	}
	return payload, nil
}

// AddItem adds a product to the cart, or increases its quantity when the
// product is already present. The returned row is the server's authoritative
// state, including the captured price_at_addition.
func (c *Client) AddItem(ctx context.Context, productID int64, quantity int) (CartItem, error) {
	if productID <= 0 {
		return CartItem{}, validationError(fmt.Sprintf("product id %d is not positive", productID))
	}
	if quantity < 1 {
		return CartItem{}, validationError(fmt.Sprintf("quantity %d is below 1", quantity))
	}
	body := struct {
		ProductID int64 `json:"product_id"`
		Quantity  int   `json:"quantity"`
	}{productID, quantity}
	var payload CartItem
	if err := c.send(ctx, http.MethodPost, "/api/cart/items", body, &payload); err != nil {
		return CartItem{}, err
	}
	if err := payload.Validate(); err != nil {
		return CartItem{}, validationError(err.Error())
	}
	return payload, nil
}

// UpdateItem sets the quantity of an existing cart row.
func (c *Client) UpdateItem(ctx context.Context, productID int64, quantity int) (CartItem, error) {
	if quantity < 1 {
		return CartItem{}, validationError(fmt.Sprintf("quantity %d is below 1", quantity))
	}
	body := struct {
		Quantity int `json:"quantity"`
	}{quantity}
	var payload CartItem
	path := fmt.Sprintf("/api/cart/items/%d", productID)
	if err := c.send(ctx, http.MethodPatch, path, body, &payload); err != nil {
		return CartItem{}, err
	}
	if err := payload.Validate(); err != nil {
		return CartItem{}, validationError(err.Error())
	}
	return payload, nil
}

// RemoveItem deletes one product from the cart.
func (c *Client) RemoveItem(ctx context.Context, productID int64) error {
	path := fmt.Sprintf("/api/cart/items/%d", productID)
	return c.send(ctx, http.MethodDelete, path, nil, nil)
}

// ClearCart removes every item from the cart.
func (c *Client) ClearCart(ctx context.Context) error {
	return c.send(ctx, http.MethodDelete, "/api/cart/", nil, nil)
}
