package guest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Filichkin/OnlineShop-sub001/internal/api"
)

func testProduct(id int64, name, price string) api.Product {
	return api.Product{
		ID:         id,
		Name:       name,
		Price:      decimal.RequireFromString(price),
		PartNumber: "PN-001",
	}
}

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "favorites.toml")
	s, err := Open(path)
	require.NoError(t, err)
	return s, path
}

func TestAddListRemoveRoundTrip(t *testing.T) {
	s, _ := openTestStore(t)

	require.NoError(t, s.Add(testProduct(1, "Фильтр масляный", "450.50")))
	require.NoError(t, s.Add(testProduct(2, "Ремень ГРМ", "2300")))

	entries := s.List()
	require.Len(t, entries, 2)
	assert.Equal(t, "Фильтр масляный", entries[0].Name)
	assert.True(t, s.Contains(1))
	assert.True(t, s.Contains(2))

	require.NoError(t, s.Remove(1))
	assert.False(t, s.Contains(1))
	assert.True(t, s.Contains(2))
}

func TestEntriesSurviveReopen(t *testing.T) {
	s, path := openTestStore(t)
	require.NoError(t, s.Add(testProduct(1, "Свеча зажигания", "120")))

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.True(t, reopened.Contains(1))

	products := reopened.Products()
	require.Len(t, products, 1)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("120")))
	assert.Equal(t, "PN-001", products[0].PartNumber)
}

func TestDuplicateAddIsNoop(t *testing.T) {
	s, _ := openTestStore(t)
	p := testProduct(1, "Свеча зажигания", "120")

	require.NoError(t, s.Add(p))
	require.NoError(t, s.Add(p))
	assert.Len(t, s.List(), 1)
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	s, _ := openTestStore(t)
	require.NoError(t, s.Remove(42))
}

func TestClearRemovesFile(t *testing.T) {
	s, path := openTestStore(t)
	require.NoError(t, s.Add(testProduct(1, "a", "1")))

	require.NoError(t, s.Clear())
	assert.Empty(t, s.List())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing again with no file present is fine.
	require.NoError(t, s.Clear())
}

func TestMalformedFileDegradesToEmpty(t *testing.T) {
	s, path := openTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{{не toml"), 0o644))

	assert.Empty(t, s.List(), "unreadable store must not fail a render")

	// Writing through the store replaces the broken file.
	require.NoError(t, s.Add(testProduct(1, "a", "1")))
	assert.True(t, s.Contains(1))
}

func TestEntryWithBadPriceConvertsToZero(t *testing.T) {
	e := Entry{ID: 1, Name: "a", Price: "не число"}
	assert.True(t, e.Product().Price.IsZero())
}
