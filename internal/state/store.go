package state

import (
	"sync"
	"time"

	"github.com/Filichkin/OnlineShop-sub001/internal/api"
)

// Store holds the cart and favorites snapshots plus the per-product pending
// set and transient notices. Reads return defensive copies. Writes come only
// from the mutation coordinator and the session manager; the UI never writes
// directly, which is what keeps the rollback paths self-contained.
type Store struct {
	mu           sync.RWMutex
	cart         CartSnapshot
	favorites    FavoritesSnapshot
	pending      map[int64]int
	notices      []Notice
	nextNoticeID int64
	now          func() time.Time
}

// NewStore returns an empty store: both snapshots unloaded, nothing pending.
func NewStore() *Store {
	return &Store{
		pending: make(map[int64]int),
		now:     time.Now,
	}
}

// SetClock overrides the time source. Tests use it to control notice expiry.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Cart returns a copy of the cart snapshot.
func (s *Store) Cart() CartSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.cart
	snap.Items = cloneCartItems(s.cart.Items)
	return snap
}

// Favorites returns a copy of the favorites snapshot.
func (s *Store) Favorites() FavoritesSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.favorites
	snap.Items = cloneProducts(s.favorites.Items)
	return snap
}

// SetCart replaces the cart contents and marks it loaded.
func (s *Store) SetCart(items []CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = CartSnapshot{Items: cloneCartItems(items), Loaded: true}
}

// ReplaceCartItems swaps the item list without touching Loaded. Rollback of
// a failed clear uses this to restore the captured list verbatim.
func (s *Store) ReplaceCartItems(items []CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Items = cloneCartItems(items)
}

// CartItem returns the row and its position for a product.
func (s *Store) CartItem(productID int64) (CartItem, int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i, item := range s.cart.Items {
		if item.Product.ID == productID {
			return item, i, true
		}
	}
	return CartItem{}, -1, false
}

// UpsertCartItem replaces the row for the item's product, or appends it.
func (s *Store) UpsertCartItem(item CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart.Items {
		if s.cart.Items[i].Product.ID == item.Product.ID {
			s.cart.Items[i] = item
			return
		}
	}
	s.cart.Items = append(s.cart.Items, item)
}

// InsertCartItem puts a row back at its original position. Used by rollback
// after a failed removal; index is clamped to the current list bounds.
func (s *Store) InsertCartItem(item CartItem, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 {
		index = 0
	}
	if index > len(s.cart.Items) {
		index = len(s.cart.Items)
	}
	items := append(s.cart.Items[:index:index], item)
	s.cart.Items = append(items, s.cart.Items[index:]...)
}

// SetQuantity updates a row's quantity in place.
func (s *Store) SetQuantity(productID int64, quantity int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart.Items {
		if s.cart.Items[i].Product.ID == productID {
			s.cart.Items[i].Quantity = quantity
			return true
		}
	}
	return false
}

// RemoveCartItem splices out a row, returning it and its position so a
// failed remote call can restore it.
func (s *Store) RemoveCartItem(productID int64) (CartItem, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.cart.Items {
		if item.Product.ID == productID {
			s.cart.Items = append(s.cart.Items[:i], s.cart.Items[i+1:]...)
			return item, i, true
		}
	}
	return CartItem{}, -1, false
}

// ClearCartItems empties the cart and returns the previous list.
func (s *Store) ClearCartItems() []CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous := s.cart.Items
	s.cart.Items = nil
	return previous
}

// SetFavorites replaces the favorites set and marks it loaded.
func (s *Store) SetFavorites(items []api.Product, isGuest bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.favorites = FavoritesSnapshot{
		Items:   cloneProducts(items),
		Loaded:  true,
		IsGuest: isGuest,
	}
}

// SetFavorite flips a single membership bit. Adding appends in insertion
// order; order is display-stable only and carries no meaning.
func (s *Store) SetFavorite(product api.Product, favorite bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.favorites.Items {
		if p.ID == product.ID {
			if !favorite {
				s.favorites.Items = append(s.favorites.Items[:i], s.favorites.Items[i+1:]...)
			}
			return
		}
	}
	if favorite {
		s.favorites.Items = append(s.favorites.Items, product)
	}
}

// BeginPending records an in-flight mutation for a product. Concurrent
// mutations on the same product are allowed, so this is a counter.
func (s *Store) BeginPending(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[productID]++
}

// TryBeginPending records an in-flight mutation only when none is in flight
// for the product. The favorite toggle uses it to enforce at most one
// in-flight toggle per product.
func (s *Store) TryBeginPending(productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending[productID] > 0 {
		return false
	}
	s.pending[productID] = 1
	return true
}

// EndPending releases one in-flight mark.
func (s *Store) EndPending(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending[productID] <= 1 {
		delete(s.pending, productID)
		return
	}
	s.pending[productID]--
}

// IsPending reports whether a mutation for the product is still in flight.
// The UI uses it to disable just that row's controls.
func (s *Store) IsPending(productID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending[productID] > 0
}

// Reset returns both snapshots to empty and unloaded and forgets pending
// marks and notices. Called on logout and on detected session expiry, before
// and after the network call, so an in-flight mutation settling late cannot
// repopulate a stranger's data.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = CartSnapshot{}
	s.favorites = FavoritesSnapshot{}
	s.pending = make(map[int64]int)
	s.notices = nil
}
