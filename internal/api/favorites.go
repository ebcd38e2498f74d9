package api

import (
	"context"
	"fmt"
	"net/http"
)

// GetFavorites retrieves the favorites list for this session.
func (c *Client) GetFavorites(ctx context.Context) ([]Product, error) {
	var payload favoritesResponse
	if err := c.get(ctx, "/api/favorites/", nil, &payload); err != nil {
		return nil, err
	}
	products := make([]Product, 0, len(payload.Items))
	seen := make(map[int64]struct{}, len(payload.Items))
	for _, item := range payload.Items {
		if err := item.Product.Validate(); err != nil {
			return nil, validationError(err.Error())
		}
		// Membership is a set; a duplicate row would corrupt it.
		if _, dup := seen[item.Product.ID]; dup {
			continue
		}
		seen[item.Product.ID] = struct{}{}
		products = append(products, item.Product)
	}
	return products, nil
}

// ToggleFavorite flips the product's membership in the favorites list and
// returns the server's authoritative state. The response, not the local
// guess, decides the final membership: a concurrent change elsewhere may
// have flipped it already.
func (c *Client) ToggleFavorite(ctx context.Context, productID int64) (bool, error) {
	path := fmt.Sprintf("/api/favorites/%d/toggle", productID)
	var payload toggleResponse
	if err := c.send(ctx, http.MethodPost, path, nil, &payload); err != nil {
		return false, err
	}
	return payload.IsFavorite, nil
}

// AddFavorite ensures the product is present in the favorites list. A 409
// means it already was, which is the state the caller asked for. Used by the
// guest-to-account migration, where a blind toggle could remove entries.
func (c *Client) AddFavorite(ctx context.Context, productID int64) error {
	path := fmt.Sprintf("/api/favorites/%d", productID)
	if err := c.send(ctx, http.MethodPost, path, nil, nil); err != nil {
		if IsConflict(err) {
			return nil
		}
		return err
	}
	return nil
}
