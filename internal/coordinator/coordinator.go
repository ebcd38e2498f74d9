package coordinator

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Filichkin/OnlineShop-sub001/internal/api"
	"github.com/Filichkin/OnlineShop-sub001/internal/guest"
	"github.com/Filichkin/OnlineShop-sub001/internal/state"
)

// RemoteStore is the slice of the API client the coordinator mutates
// through. Implemented by *api.Client; tests substitute a fake.
type RemoteStore interface {
	GetCart(ctx context.Context) (api.Cart, error)
	AddItem(ctx context.Context, productID int64, quantity int) (api.CartItem, error)
	UpdateItem(ctx context.Context, productID int64, quantity int) (api.CartItem, error)
	RemoveItem(ctx context.Context, productID int64) error
	ClearCart(ctx context.Context) error
	GetFavorites(ctx context.Context) ([]api.Product, error)
	ToggleFavorite(ctx context.Context, productID int64) (bool, error)
}

var _ RemoteStore = (*api.Client)(nil)

// noticeTTL matches the storefront's auto-dismiss delay for failure toasts.
const noticeTTL = 4 * time.Second

// Config wires a Coordinator.
type Config struct {
	Store  *state.Store
	Remote RemoteStore
	Guest  *guest.Store
	// Authenticated reports whether favorites should go to the backend or
	// the guest store. Provided by the session manager.
	Authenticated func() bool
	Log           zerolog.Logger
}

// Coordinator applies every cart and favorites mutation optimistically:
// local state changes on the caller's tick, the remote call settles in the
// background, and a failure restores the captured pre-mutation state and
// raises a transient notice. The local snapshot never stays diverged from
// the server.
type Coordinator struct {
	store  *state.Store
	remote RemoteStore
	guest  *guest.Store
	authed func() bool
	log    zerolog.Logger

	onAuthExpired func()
	notify        func()

	wg sync.WaitGroup
}

// New builds a Coordinator.
func New(cfg Config) *Coordinator {
	authed := cfg.Authenticated
	if authed == nil {
		authed = func() bool { return false }
	}
	return &Coordinator{
		store:  cfg.Store,
		remote: cfg.Remote,
		guest:  cfg.Guest,
		authed: authed,
		log:    cfg.Log,
	}
}

// SetNotify registers a hook invoked after every settle, so the UI can
// re-render without polling.
func (c *Coordinator) SetNotify(fn func()) { c.notify = fn }

// SetOnAuthExpired registers the session manager's expiry handler. A 401 on
// any mutation means the session silently died mid-use.
func (c *Coordinator) SetOnAuthExpired(fn func()) { c.onAuthExpired = fn }

// Flush waits for all in-flight mutations to settle. Used by tests and by
// logout, which must not leave a mutation racing the state reset.
func (c *Coordinator) Flush() { c.wg.Wait() }

// RefreshCart fetches the cart and replaces the local snapshot.
func (c *Coordinator) RefreshCart(ctx context.Context) error {
	cart, err := c.remote.GetCart(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("cart refresh failed")
		return err
	}
	items := make([]state.CartItem, 0, len(cart.Items))
	for _, row := range cart.Items {
		items = append(items, fromAPI(row))
	}
	c.store.SetCart(items)
	return nil
}

// RefreshFavorites fetches favorites from the backend, or loads the guest
// store when no session exists.
func (c *Coordinator) RefreshFavorites(ctx context.Context) error {
	if !c.authed() {
		c.store.SetFavorites(c.guest.Products(), true)
		return nil
	}
	products, err := c.remote.GetFavorites(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("favorites refresh failed")
		return err
	}
	c.store.SetFavorites(products, false)
	return nil
}

// settle runs the remote half of a mutation in the background. Mutations
// are not cancellable once issued; the call runs on a fresh context and is
// bounded by the client's own request timeout. On failure the rollback runs
// unconditionally (full restore, never a partial merge) and a notice is
// raised, except for intentional cancellation which stays silent.
func (c *Coordinator) settle(op string, productID int64, call func(context.Context) error, rollback func()) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		err := call(context.Background())
		if productID != 0 {
			c.store.EndPending(productID)
		}
		if err != nil {
			rollback()
			kind := api.KindOf(err)
			switch kind {
			case api.KindAborted:
				// Intentional cancellation is never user-visible.
			case api.KindAuthExpired:
				// The session manager resets state and raises its own
				// "session expired" notice.
				if c.onAuthExpired != nil {
					c.onAuthExpired()
				}
			default:
				c.store.PushNotice(failureMessage(op, err), state.NoticeError, noticeTTL)
			}
			c.log.Warn().
				Err(err).
				Str("op", op).
				Int64("product_id", productID).
				Str("kind", kind.String()).
				Msg("mutation rolled back")
		}
		if c.notify != nil {
			c.notify()
		}
	}()
}

func fromAPI(row api.CartItem) state.CartItem {
	return state.CartItem{
		Product:         row.Product,
		Quantity:        row.Quantity,
		PriceAtAddition: row.PriceAtAddition,
	}
}
