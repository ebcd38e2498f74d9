package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderReceipt is the acknowledgement for a newly placed order.
type OrderReceipt struct {
	OrderID    int64           `json:"order_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// CreateOrder places an order from the current cart contents. The request
// carries a client-generated idempotency key so a retried submission after a
// network failure cannot place the order twice.
func (c *Client) CreateOrder(ctx context.Context, draft OrderDraft) (OrderReceipt, error) {
	if err := draft.Validate(); err != nil {
		return OrderReceipt{}, validationError(err.Error())
	}
	body := struct {
		OrderDraft
		IdempotencyKey string `json:"idempotency_key"`
	}{draft, uuid.NewString()}
	var payload OrderReceipt
	if err := c.send(ctx, http.MethodPost, "/api/orders/", body, &payload); err != nil {
		return OrderReceipt{}, err
	}
	return payload, nil
}

// ListOrders returns the user's orders, newest first.
func (c *Client) ListOrders(ctx context.Context, skip, limit int) ([]Order, error) {
	query := url.Values{}
	if skip > 0 {
		query.Set("skip", strconv.Itoa(skip))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var payload []Order
	if err := c.get(ctx, "/api/orders/", query, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GetOrder returns a single order with its line items.
func (c *Client) GetOrder(ctx context.Context, orderID int64) (Order, error) {
	var payload Order
	if err := c.get(ctx, fmt.Sprintf("/api/orders/%d", orderID), nil, &payload); err != nil {
		return Order{}, err
	}
	return payload, nil
}

// CancelOrder cancels a pending order.
func (c *Client) CancelOrder(ctx context.Context, orderID int64) error {
	return c.send(ctx, http.MethodPost, fmt.Sprintf("/api/orders/%d/cancel", orderID), nil, nil)
}
