// Package api provides the typed HTTP client for the OnlineShop backend.
//
// # Overview
//
// Every remote interaction of the storefront goes through the Client: cart,
// favorites, auth, orders, and catalog reads. Session identity is carried in
// cookies held by the client's jar, so one Client instance represents one
// user session (guest or authenticated) for its whole lifetime.
//
// # Error Classification
//
// Every failed call returns an *Error carrying an ErrorKind:
//
//   - KindNetwork: the request produced no HTTP response
//   - KindValidation: 4xx (other than 401/429), or a response body that
//     failed boundary validation
//   - KindAuthExpired: 401, the session is gone
//   - KindRateLimited: 429, with the Retry-After cooldown when provided
//   - KindServer: 5xx
//   - KindAborted: intentional context cancellation
//
// The classification changes which message the user sees and whether the
// session layer reacts; it never changes rollback behavior upstream.
//
// # Boundary Validation
//
// Responses are validated before they are returned: cart rows must have a
// positive product id, quantity >= 1, and a non-negative captured price; the
// cart must have at most one row per product; favorites are de-duplicated
// into a proper set. Anything that fails these checks is rejected as a
// KindValidation error, so the snapshot invariants hold unconditionally in
// the state layer.
//
// # What the Client Does Not Do
//
// No automatic retries, no caching, no request queueing. The optimistic
// mutation coordinator decides what a failure means; this package only
// reports it accurately.
package api
