package api

import (
	"context"
	"net/http"
)

// CurrentUser returns the account behind the session cookie. A 401 means
// there is no authenticated session; callers treat that as the normal guest
// state, not a failure.
func (c *Client) CurrentUser(ctx context.Context) (User, error) {
	var payload User
	if err := c.get(ctx, "/api/users/me", nil, &payload); err != nil {
		return User{}, err
	}
	return payload, nil
}

// Login authenticates with an email or phone number. On success the backend
// sets the session cookie on this client's jar; subsequent cart and
// favorites calls run as the account.
func (c *Client) Login(ctx context.Context, emailOrPhone, password string) (User, error) {
	body := struct {
		EmailOrPhone string `json:"email_or_phone"`
		Password     string `json:"password"`
	}{emailOrPhone, password}
	var payload User
	if err := c.send(ctx, http.MethodPost, "/api/auth/login", body, &payload); err != nil {
		return User{}, err
	}
	return payload, nil
}

// Logout invalidates the server-side session. The caller resets local state
// regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.send(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}
