package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(server.URL, time.Second)
	require.NoError(t, err)
	return client, server
}

func respond(t *testing.T, w http.ResponseWriter, status int, payload any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		require.NoError(t, json.NewEncoder(w).Encode(payload))
	}
}

func TestUnauthorizedClassifiesAsAuthExpired(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, http.StatusUnauthorized, map[string]string{"detail": "Not authenticated"})
	}))

	_, err := client.CurrentUser(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindAuthExpired, KindOf(err))
	assert.True(t, IsAuthExpired(err))
}

func TestRateLimitedCarriesRetryAfter(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		respond(t, w, http.StatusTooManyRequests, map[string]string{"detail": "Too many requests"})
	}))

	_, err := client.GetCart(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindRateLimited, apiErr.Kind)
	assert.Equal(t, 7*time.Second, apiErr.RetryAfter)
}

func TestServerErrorClassification(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, http.StatusInternalServerError, nil)
	}))

	_, err := client.GetCart(context.Background())
	assert.Equal(t, KindServer, KindOf(err))
}

func TestValidationDetailExtracted(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, http.StatusUnprocessableEntity, map[string]string{"detail": "Товар не найден"})
	}))

	_, err := client.AddItem(context.Background(), 1, 1)
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindValidation, apiErr.Kind)
	assert.Equal(t, "Товар не найден", apiErr.Detail)
}

func TestUnreachableServerClassifiesAsNetwork(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // nothing listens anymore

	client, err := NewClient(server.URL, time.Second)
	require.NoError(t, err)

	_, err = client.GetCart(context.Background())
	assert.Equal(t, KindNetwork, KindOf(err))
}

func TestCancelledRequestClassifiesAsAborted(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := client.GetCart(ctx)
		done <- err
	}()
	cancel()

	err := <-done
	require.Error(t, err)
	assert.Equal(t, KindAborted, KindOf(err))
}

func TestKindOfForeignErrorIsNetwork(t *testing.T) {
	assert.Equal(t, KindNetwork, KindOf(assert.AnError))
}

func TestCartPayloadValidationRejectsBadRows(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, http.StatusOK, map[string]any{
			"items": []map[string]any{{
				"product_id":        1,
				"quantity":          0, // below the floor
				"price_at_addition": "100",
				"product":           map[string]any{"id": 1, "name": "товар", "price": "100"},
			}},
		})
	}))

	_, err := client.GetCart(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestCartPayloadValidationRejectsDuplicateRows(t *testing.T) {
	row := map[string]any{
		"product_id":        1,
		"quantity":          1,
		"price_at_addition": "100",
		"product":           map[string]any{"id": 1, "name": "товар", "price": "100"},
	}
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, http.StatusOK, map[string]any{"items": []map[string]any{row, row}})
	}))

	_, err := client.GetCart(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestGetFavoritesDeduplicates(t *testing.T) {
	item := map[string]any{
		"product_id": 1,
		"product":    map[string]any{"id": 1, "name": "товар", "price": "100"},
	}
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, http.StatusOK, map[string]any{"items": []map[string]any{item, item}})
	}))

	products, err := client.GetFavorites(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestToggleFavoriteReturnsServerState(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/favorites/5/toggle", r.URL.Path)
		respond(t, w, http.StatusOK, map[string]bool{"is_favorite": false})
	}))

	isFavorite, err := client.ToggleFavorite(context.Background(), 5)
	require.NoError(t, err)
	assert.False(t, isFavorite)
}

func TestAddFavoriteTreatsConflictAsSuccess(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, http.StatusConflict, map[string]string{"detail": "Товар уже в избранном"})
	}))

	assert.NoError(t, client.AddFavorite(context.Background(), 5))
}

func TestLoginSendsEmailOrPhoneField(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "+79001234567", body["email_or_phone"])
		assert.Equal(t, "secret", body["password"])
		respond(t, w, http.StatusOK, map[string]any{"id": 1, "email": "user@example.com"})
	}))

	user, err := client.Login(context.Background(), "+79001234567", "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
}

func TestSessionCookiePersistsAcrossRequests(t *testing.T) {
	var sawCookie bool
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie("session_id"); err == nil && cookie.Value == "abc" {
			sawCookie = true
		}
		http.SetCookie(w, &http.Cookie{Name: "session_id", Value: "abc", Path: "/"})
		respond(t, w, http.StatusOK, map[string]any{"items": []any{}})
	}))

	_, err := client.GetCart(context.Background())
	require.NoError(t, err)
	_, err = client.GetCart(context.Background())
	require.NoError(t, err)
	assert.True(t, sawCookie, "second request carries the cookie set by the first")
}

func TestAddItemRejectsBadArgumentsLocally(t *testing.T) {
	// No server: the request must never be issued.
	client, err := NewClient("http://127.0.0.1:1", time.Second)
	require.NoError(t, err)

	_, err = client.AddItem(context.Background(), 0, 1)
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = client.AddItem(context.Background(), 1, 0)
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = client.UpdateItem(context.Background(), 1, 0)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestParseBaseURLNormalizes(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"", "http://127.0.0.1:8000"},
		{"localhost:8000", "http://localhost:8000"},
		{"https://shop.example.com/", "https://shop.example.com"},
		{"https://shop.example.com/api/?x=1#frag", "https://shop.example.com/api"},
	}
	for _, tc := range cases {
		u, err := parseBaseURL(tc.raw)
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, u.String(), tc.raw)
	}
}
