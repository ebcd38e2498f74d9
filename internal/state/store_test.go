package state

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Filichkin/OnlineShop-sub001/internal/api"
)

func product(id int64, name, price string) api.Product {
	return api.Product{
		ID:    id,
		Name:  name,
		Price: decimal.RequireFromString(price),
	}
}

func row(id int64, name, price string, quantity int) CartItem {
	p := product(id, name, price)
	return CartItem{Product: p, Quantity: quantity, PriceAtAddition: p.Price}
}

func TestSubtotalRecomputedFromCapturedPrice(t *testing.T) {
	item := row(1, "Фильтр масляный", "450.50", 3)
	assert.True(t, item.Subtotal().Equal(decimal.RequireFromString("1351.50")))

	// The captured price stays fixed even if the product price moves.
	item.Product.Price = decimal.RequireFromString("999.99")
	assert.True(t, item.Subtotal().Equal(decimal.RequireFromString("1351.50")))
}

func TestCartSnapshotTotals(t *testing.T) {
	s := NewStore()
	s.SetCart([]CartItem{
		row(1, "Свеча зажигания", "120", 4),
		row(2, "Ремень ГРМ", "2300", 1),
	})

	cart := s.Cart()
	require.True(t, cart.Loaded)
	assert.Equal(t, 5, cart.TotalQuantity())
	assert.True(t, cart.TotalPrice().Equal(decimal.RequireFromString("2780")))
}

func TestLoadedDistinguishesEmptyFromUnfetched(t *testing.T) {
	s := NewStore()
	assert.False(t, s.Cart().Loaded)
	assert.False(t, s.Favorites().Loaded)

	s.SetCart(nil)
	s.SetFavorites(nil, false)
	assert.True(t, s.Cart().Loaded)
	assert.True(t, s.Favorites().Loaded)
	assert.Empty(t, s.Cart().Items)
}

func TestSnapshotsAreDefensiveCopies(t *testing.T) {
	s := NewStore()
	s.SetCart([]CartItem{row(1, "Диск тормозной", "1500", 1)})

	cart := s.Cart()
	cart.Items[0].Quantity = 99

	assert.Equal(t, 1, s.Cart().Items[0].Quantity)
}

func TestUpsertReplacesExistingRow(t *testing.T) {
	s := NewStore()
	s.SetCart([]CartItem{row(1, "Свеча зажигания", "120", 1), row(2, "Ремень ГРМ", "2300", 1)})

	s.UpsertCartItem(row(1, "Свеча зажигания", "120", 7))

	cart := s.Cart()
	require.Len(t, cart.Items, 2)
	assert.Equal(t, int64(1), cart.Items[0].Product.ID)
	assert.Equal(t, 7, cart.Items[0].Quantity)
}

func TestRemoveAndInsertRestorePosition(t *testing.T) {
	s := NewStore()
	s.SetCart([]CartItem{
		row(1, "a", "1", 1),
		row(2, "b", "1", 1),
		row(3, "c", "1", 1),
	})

	removed, index, ok := s.RemoveCartItem(2)
	require.True(t, ok)
	assert.Equal(t, 1, index)
	assert.Len(t, s.Cart().Items, 2)

	s.InsertCartItem(removed, index)
	ids := []int64{}
	for _, item := range s.Cart().Items {
		ids = append(ids, item.Product.ID)
	}
	assert.Equal(t, []int64{1, 2, 3}, ids)
}

func TestInsertClampsOutOfRangeIndex(t *testing.T) {
	s := NewStore()
	s.InsertCartItem(row(1, "a", "1", 1), 10)
	s.InsertCartItem(row(2, "b", "1", 1), -5)

	items := s.Cart().Items
	require.Len(t, items, 2)
	assert.Equal(t, int64(2), items[0].Product.ID)
}

func TestClearAndReplaceRoundTrip(t *testing.T) {
	s := NewStore()
	original := []CartItem{row(1, "a", "1", 2), row(2, "b", "2", 3)}
	s.SetCart(original)

	previous := s.ClearCartItems()
	assert.Empty(t, s.Cart().Items)
	assert.True(t, s.Cart().Loaded)

	s.ReplaceCartItems(previous)
	assert.Len(t, s.Cart().Items, 2)
}

func TestSetFavoriteIsIdempotent(t *testing.T) {
	s := NewStore()
	p := product(5, "Амортизатор", "3200")

	s.SetFavorite(p, true)
	s.SetFavorite(p, true)
	assert.Len(t, s.Favorites().Items, 1)
	assert.True(t, s.Favorites().IsFavorite(5))

	s.SetFavorite(p, false)
	s.SetFavorite(p, false)
	assert.False(t, s.Favorites().IsFavorite(5))
}

func TestPendingIsACounter(t *testing.T) {
	s := NewStore()

	s.BeginPending(1)
	s.BeginPending(1)
	assert.True(t, s.IsPending(1))

	s.EndPending(1)
	assert.True(t, s.IsPending(1), "one mutation still in flight")

	s.EndPending(1)
	assert.False(t, s.IsPending(1))
}

func TestTryBeginPendingSuppressesConcurrentMark(t *testing.T) {
	s := NewStore()

	require.True(t, s.TryBeginPending(7))
	assert.False(t, s.TryBeginPending(7))

	s.EndPending(7)
	assert.True(t, s.TryBeginPending(7))
}

func TestResetForgetsEverything(t *testing.T) {
	s := NewStore()
	s.SetCart([]CartItem{row(1, "a", "1", 1)})
	s.SetFavorites([]api.Product{product(2, "b", "2")}, false)
	s.BeginPending(1)
	s.PushNotice("что-то пошло не так", NoticeError, time.Minute)

	s.Reset()

	assert.False(t, s.Cart().Loaded)
	assert.False(t, s.Favorites().Loaded)
	assert.False(t, s.IsPending(1))
	assert.Empty(t, s.Notices())
}

func TestNoticesExpireAgainstInjectedClock(t *testing.T) {
	s := NewStore()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return now })

	s.PushNotice("Не удалось обновить количество товара", NoticeError, 4*time.Second)
	require.Len(t, s.Notices(), 1)

	now = now.Add(3 * time.Second)
	require.Len(t, s.Notices(), 1)

	now = now.Add(2 * time.Second)
	assert.Empty(t, s.Notices())
}

func TestDismissNoticeEarly(t *testing.T) {
	s := NewStore()
	id := s.PushNotice("уведомление", NoticeInfo, time.Minute)
	other := s.PushNotice("второе", NoticeError, time.Minute)

	s.DismissNotice(id)

	notices := s.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, other, notices[0].ID)
}
