// Package session tracks authentication state and owns the login/logout
// transitions where guest-local and account state must be reconciled or
// destroyed.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Filichkin/OnlineShop-sub001/internal/api"
	"github.com/Filichkin/OnlineShop-sub001/internal/guest"
	"github.com/Filichkin/OnlineShop-sub001/internal/state"
)

// AuthState is the auth-dependent loading state machine:
// unchecked → checking → {authenticated, unauthenticated}.
// While unchecked or checking the UI shows a neutral loading state, never an
// error and never a premature "please sign in".
type AuthState int

const (
	Unchecked AuthState = iota
	Checking
	Authenticated
	Unauthenticated
)

// String returns a short label for logging.
func (s AuthState) String() string {
	switch s {
	case Unchecked:
		return "unchecked"
	case Checking:
		return "checking"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Client is the slice of the API client the session manager needs.
type Client interface {
	CurrentUser(ctx context.Context) (api.User, error)
	Login(ctx context.Context, emailOrPhone, password string) (api.User, error)
	Logout(ctx context.Context) error
	AddFavorite(ctx context.Context, productID int64) error
}

var _ Client = (*api.Client)(nil)

// Refresher forces fresh snapshot fetches after a session transition.
// Implemented by the mutation coordinator.
type Refresher interface {
	RefreshCart(ctx context.Context) error
	RefreshFavorites(ctx context.Context) error
	Flush()
}

const msgSessionExpired = "Сессия истекла, войдите снова"

const sessionNoticeTTL = 4 * time.Second

// Config wires a Manager.
type Config struct {
	Client Client
	Store  *state.Store
	Guest  *guest.Store
	Log    zerolog.Logger
}

// Manager owns the session lifecycle. It is the only writer of auth state
// and, together with the coordinator, one of the two writers of the local
// snapshot store.
type Manager struct {
	mu      sync.Mutex
	st      AuthState
	user    api.User
	expired bool // last transition to unauthenticated was a silent expiry

	client Client
	store  *state.Store
	guest  *guest.Store
	coord  Refresher
	log    zerolog.Logger
}

// New builds a Manager. The Refresher is attached separately because the
// coordinator needs the manager's Authenticated callback first.
func New(cfg Config) *Manager {
	return &Manager{
		st:     Unchecked,
		client: cfg.Client,
		store:  cfg.Store,
		guest:  cfg.Guest,
		log:    cfg.Log,
	}
}

// SetRefresher attaches the coordinator once both sides exist.
func (m *Manager) SetRefresher(r Refresher) { m.coord = r }

// State returns the current auth state and user.
func (m *Manager) State() (AuthState, api.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st, m.user
}

// Authenticated reports whether an account session is active. Passed to the
// coordinator to route favorites between backend and guest store.
func (m *Manager) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st == Authenticated
}

// Expired reports whether the session died silently rather than by explicit
// logout, so the UI can word the two cases differently.
func (m *Manager) Expired() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.expired
}

// Check resolves the unchecked state by asking the backend who we are, then
// triggers the initial snapshot fetches. It runs the fetch exactly once per
// session: calling it again after the state is resolved is a no-op.
func (m *Manager) Check(ctx context.Context) AuthState {
	m.mu.Lock()
	if m.st != Unchecked {
		st := m.st
		m.mu.Unlock()
		return st
	}
	m.st = Checking
	m.mu.Unlock()

	user, err := m.client.CurrentUser(ctx)

	m.mu.Lock()
	if err != nil {
		m.st = Unauthenticated
		m.user = api.User{}
		if !api.IsAuthExpired(err) {
			m.log.Warn().Err(err).Msg("auth check failed, treating as guest")
		}
	} else {
		m.st = Authenticated
		m.user = user
	}
	st := m.st
	m.mu.Unlock()

	// The guest cart rides the same session cookie, so both snapshots load
	// in either state; favorites fall back to the guest store when needed.
	if err := m.coord.RefreshCart(ctx); err != nil {
		m.log.Warn().Err(err).Msg("initial cart fetch failed")
	}
	if err := m.coord.RefreshFavorites(ctx); err != nil {
		m.log.Warn().Err(err).Msg("initial favorites fetch failed")
	}
	return st
}

// Login authenticates, migrates guest favorites into the account, clears
// the guest store, and forces fresh fetches of both snapshots. Migration is
// best-effort: an entry that fails to transfer is logged and skipped, never
// fatal to the login itself.
func (m *Manager) Login(ctx context.Context, emailOrPhone, password string) error {
	user, err := m.client.Login(ctx, emailOrPhone, password)
	if err != nil {
		return err
	}

	for _, entry := range m.guest.List() {
		if err := m.client.AddFavorite(ctx, entry.ID); err != nil {
			m.log.Warn().
				Err(err).
				Int64("product_id", entry.ID).
				Msg("guest favorite migration failed for item")
		}
	}
	if err := m.guest.Clear(); err != nil {
		m.log.Warn().Err(err).Msg("guest store clear failed after migration")
	}

	m.mu.Lock()
	m.st = Authenticated
	m.user = user
	m.expired = false
	m.mu.Unlock()

	// Do not trust any guest-mode snapshot: refetch both from the backend.
	if err := m.coord.RefreshCart(ctx); err != nil {
		m.log.Warn().Err(err).Msg("cart fetch after login failed")
	}
	if err := m.coord.RefreshFavorites(ctx); err != nil {
		m.log.Warn().Err(err).Msg("favorites fetch after login failed")
	}
	return nil
}

// Logout ends the session. Local state is reset before the network call and
// again after the last in-flight mutation settles, closing the race where a
// late completion repopulates stale data. The guest store is cleared
// unconditionally so the next user of this machine inherits nothing.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.st = Unauthenticated
	m.user = api.User{}
	m.expired = false
	m.mu.Unlock()

	m.store.Reset()
	if err := m.guest.Clear(); err != nil {
		m.log.Warn().Err(err).Msg("guest store clear failed on logout")
	}

	if err := m.client.Logout(ctx); err != nil {
		m.log.Warn().Err(err).Msg("remote logout failed")
	}

	m.coord.Flush()
	m.store.Reset()
}

// HandleAuthExpired performs the logout-like reset for a session that died
// mid-use. No remote logout call: the session is already gone. The distinct
// notice tells the user what happened, unlike an explicit logout which
// needs none.
func (m *Manager) HandleAuthExpired() {
	m.mu.Lock()
	already := m.st == Unauthenticated
	m.st = Unauthenticated
	m.user = api.User{}
	m.expired = true
	m.mu.Unlock()
	if already {
		return
	}

	m.store.Reset()
	if err := m.guest.Clear(); err != nil {
		m.log.Warn().Err(err).Msg("guest store clear failed on expiry")
	}
	m.store.PushNotice(msgSessionExpired, state.NoticeError, sessionNoticeTTL)
	m.log.Info().Msg("session expired, local state reset")
}
