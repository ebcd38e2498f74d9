package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Filichkin/OnlineShop-sub001/internal/api"
	"github.com/Filichkin/OnlineShop-sub001/internal/guest"
	"github.com/Filichkin/OnlineShop-sub001/internal/state"
)

type fakeClient struct {
	user             api.User
	currentUserErr   error
	currentUserCalls int

	loginErr   error
	loginCalls int

	addFavErr   map[int64]error
	addFavCalls []int64

	logoutCalls int
}

func (f *fakeClient) CurrentUser(ctx context.Context) (api.User, error) {
	f.currentUserCalls++
	if f.currentUserErr != nil {
		return api.User{}, f.currentUserErr
	}
	return f.user, nil
}

func (f *fakeClient) Login(ctx context.Context, emailOrPhone, password string) (api.User, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return api.User{}, f.loginErr
	}
	return f.user, nil
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.logoutCalls++
	return nil
}

func (f *fakeClient) AddFavorite(ctx context.Context, productID int64) error {
	f.addFavCalls = append(f.addFavCalls, productID)
	return f.addFavErr[productID]
}

type fakeRefresher struct {
	cartCalls int
	favCalls  int
	flushed   int
}

func (f *fakeRefresher) RefreshCart(ctx context.Context) error      { f.cartCalls++; return nil }
func (f *fakeRefresher) RefreshFavorites(ctx context.Context) error { f.favCalls++; return nil }
func (f *fakeRefresher) Flush()                                     { f.flushed++ }

func newTestManager(t *testing.T, client *fakeClient) (*Manager, *state.Store, *guest.Store, *fakeRefresher) {
	t.Helper()
	store := state.NewStore()
	guestStore, err := guest.Open(filepath.Join(t.TempDir(), "favorites.toml"))
	require.NoError(t, err)

	m := New(Config{
		Client: client,
		Store:  store,
		Guest:  guestStore,
		Log:    zerolog.Nop(),
	})
	refresher := &fakeRefresher{}
	m.SetRefresher(refresher)
	return m, store, guestStore, refresher
}

func testProduct(id int64) api.Product {
	return api.Product{ID: id, Name: "товар", Price: decimal.NewFromInt(100)}
}

func TestCheckResolvesAuthenticated(t *testing.T) {
	client := &fakeClient{user: api.User{ID: 1, Email: "user@example.com"}}
	m, _, _, refresher := newTestManager(t, client)

	initial, _ := m.State()
	require.Equal(t, Unchecked, initial)

	st := m.Check(context.Background())
	assert.Equal(t, Authenticated, st)
	assert.True(t, m.Authenticated())

	_, user := m.State()
	assert.Equal(t, "user@example.com", user.Email)
	assert.Equal(t, 1, refresher.cartCalls)
	assert.Equal(t, 1, refresher.favCalls)
}

func TestCheckRunsOncePerSession(t *testing.T) {
	client := &fakeClient{currentUserErr: &api.Error{Kind: api.KindAuthExpired, StatusCode: 401}}
	m, _, _, refresher := newTestManager(t, client)

	first := m.Check(context.Background())
	second := m.Check(context.Background())

	assert.Equal(t, Unauthenticated, first)
	assert.Equal(t, Unauthenticated, second)
	assert.Equal(t, 1, client.currentUserCalls, "resolved state is never re-fetched")
	assert.Equal(t, 1, refresher.cartCalls, "snapshot fetch also runs once")
}

func TestCheckNetworkFailureFallsBackToGuest(t *testing.T) {
	client := &fakeClient{currentUserErr: &api.Error{Kind: api.KindNetwork}}
	m, _, _, _ := newTestManager(t, client)

	st := m.Check(context.Background())
	assert.Equal(t, Unauthenticated, st)
	assert.False(t, m.Expired(), "an unreachable backend is not an expired session")
}

func TestLoginMigratesGuestFavoritesBestEffort(t *testing.T) {
	client := &fakeClient{
		user:      api.User{ID: 1, Email: "user@example.com"},
		addFavErr: map[int64]error{2: &api.Error{Kind: api.KindServer, StatusCode: 500}},
	}
	m, _, guestStore, refresher := newTestManager(t, client)
	require.NoError(t, guestStore.Add(testProduct(1)))
	require.NoError(t, guestStore.Add(testProduct(2)))
	require.NoError(t, guestStore.Add(testProduct(3)))

	require.NoError(t, m.Login(context.Background(), "user@example.com", "secret"))

	assert.ElementsMatch(t, []int64{1, 2, 3}, client.addFavCalls,
		"every entry is attempted even when one fails")
	assert.Empty(t, guestStore.List(), "guest store cleared after migration")
	assert.True(t, m.Authenticated())
	assert.Equal(t, 1, refresher.cartCalls)
	assert.Equal(t, 1, refresher.favCalls)
}

func TestLoginDuplicateFavoriteIsNotFatal(t *testing.T) {
	client := &fakeClient{
		user:      api.User{ID: 1},
		addFavErr: map[int64]error{1: &api.Error{Kind: api.KindValidation, StatusCode: 409}},
	}
	m, _, guestStore, _ := newTestManager(t, client)
	require.NoError(t, guestStore.Add(testProduct(1)))

	require.NoError(t, m.Login(context.Background(), "user@example.com", "secret"))
	assert.True(t, m.Authenticated())
}

func TestLoginFailureLeavesGuestStateIntact(t *testing.T) {
	client := &fakeClient{loginErr: &api.Error{Kind: api.KindValidation, StatusCode: 400}}
	m, _, guestStore, _ := newTestManager(t, client)
	require.NoError(t, guestStore.Add(testProduct(1)))

	err := m.Login(context.Background(), "user@example.com", "wrong")
	require.Error(t, err)

	assert.False(t, m.Authenticated())
	assert.Len(t, guestStore.List(), 1, "nothing migrated on a failed login")
	assert.Empty(t, client.addFavCalls)
}

func TestLogoutResetsLocalStateAndGuestStore(t *testing.T) {
	client := &fakeClient{user: api.User{ID: 1}}
	m, store, guestStore, refresher := newTestManager(t, client)
	m.Check(context.Background())

	store.SetCart([]state.CartItem{{
		Product:         testProduct(1),
		Quantity:        2,
		PriceAtAddition: decimal.NewFromInt(100),
	}})
	store.SetFavorites([]api.Product{testProduct(2)}, false)
	require.NoError(t, guestStore.Add(testProduct(3)))

	m.Logout(context.Background())

	assert.False(t, m.Authenticated())
	assert.False(t, store.Cart().Loaded, "snapshot returned to never-fetched")
	assert.False(t, store.Favorites().Loaded)
	assert.Empty(t, guestStore.List())
	assert.Equal(t, 1, client.logoutCalls)
	assert.Equal(t, 1, refresher.flushed, "in-flight mutations settle before the final reset")
	assert.False(t, m.Expired())
}

func TestHandleAuthExpiredResetsOnceAndNotifies(t *testing.T) {
	client := &fakeClient{user: api.User{ID: 1}}
	m, store, _, _ := newTestManager(t, client)
	m.Check(context.Background())
	require.True(t, m.Authenticated())

	store.SetCart([]state.CartItem{{
		Product:         testProduct(1),
		Quantity:        1,
		PriceAtAddition: decimal.NewFromInt(100),
	}})

	m.HandleAuthExpired()

	assert.False(t, m.Authenticated())
	assert.True(t, m.Expired())
	assert.False(t, store.Cart().Loaded)

	notices := store.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, "Сессия истекла, войдите снова", notices[0].Text)

	// A second 401 settling later must not stack another notice.
	m.HandleAuthExpired()
	assert.Len(t, store.Notices(), 1)
}

func TestAuthStateStrings(t *testing.T) {
	assert.Equal(t, "unchecked", Unchecked.String())
	assert.Equal(t, "checking", Checking.String())
	assert.Equal(t, "authenticated", Authenticated.String())
	assert.Equal(t, "unauthenticated", Unauthenticated.String())
}
