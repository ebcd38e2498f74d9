package coordinator

import (
	"context"

	"github.com/Filichkin/OnlineShop-sub001/internal/api"
)

// ToggleFavorite flips a product's favorite state. For a guest the change is
// purely local and persisted to the guest store. For an authenticated user
// the flip is optimistic; the server's answer is authoritative and wins over
// the local guess if they disagree. A second toggle for the same product
// while one is still in flight is suppressed, so a double-press cannot
// flicker the state.
func (c *Coordinator) ToggleFavorite(product api.Product) {
	was := c.store.Favorites().IsFavorite(product.ID)

	if !c.authed() {
		c.store.SetFavorite(product, !was)
		var err error
		if was {
			err = c.guest.Remove(product.ID)
		} else {
			err = c.guest.Add(product)
		}
		if err != nil {
			c.log.Warn().Err(err).Int64("product_id", product.ID).Msg("guest favorites write failed")
		}
		return
	}

	if !c.store.TryBeginPending(product.ID) {
		return
	}
	c.store.SetFavorite(product, !was)

	c.settle(opToggle, product.ID, func(ctx context.Context) error {
		isFavorite, err := c.remote.ToggleFavorite(ctx, product.ID)
		if err != nil {
			return err
		}
		// Server truth may differ from the optimistic guess when another
		// session flipped the same product concurrently.
		c.store.SetFavorite(product, isFavorite)
		return nil
	}, func() {
		c.store.SetFavorite(product, was)
	})
}
