package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ErrorKind classifies a failed API call. The classification drives message
// selection and session handling in the caller; rollback behavior is the
// same for every kind.
type ErrorKind int

const (
	// KindNetwork means the request never produced an HTTP response.
	KindNetwork ErrorKind = iota
	// KindValidation covers 4xx responses other than 401 and 429.
	KindValidation
	// KindAuthExpired is a 401: the session cookie is no longer valid.
	KindAuthExpired
	// KindRateLimited is a 429, optionally carrying a Retry-After cooldown.
	KindRateLimited
	// KindServer covers 5xx responses.
	KindServer
	// KindAborted is an intentional context cancellation, not a failure
	// the user should ever see.
	KindAborted
)

// String returns a short label for logging.
func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindValidation:
		return "validation"
	case KindAuthExpired:
		return "auth_expired"
	case KindRateLimited:
		return "rate_limited"
	case KindServer:
		return "server"
	case KindAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Error is the classified failure returned by every Client method.
type Error struct {
	Kind       ErrorKind
	StatusCode int           // zero when no response was received
	Detail     string        // server-provided detail, when present
	RetryAfter time.Duration // only set for KindRateLimited
	Err        error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %s (%s)", e.Detail, e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("api: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Kind, e.StatusCode)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the classification from err. Errors that did not originate
// in this package count as network failures: the caller got no usable
// response either way.
func KindOf(err error) ErrorKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	if errors.Is(err, context.Canceled) {
		return KindAborted
	}
	return KindNetwork
}

// IsAuthExpired reports whether err is a 401 session failure.
func IsAuthExpired(err error) bool { return KindOf(err) == KindAuthExpired }

// IsConflict reports whether err is a 409 response. The favorites endpoints
// answer 409 when an item is already present, which callers treat as
// confirmation rather than failure.
func IsConflict(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// classifyTransport wraps an error from http.Client.Do.
func classifyTransport(err error) *Error {
	kind := KindNetwork
	if errors.Is(err, context.Canceled) {
		kind = KindAborted
	}
	return &Error{Kind: kind, Err: err}
}

// classifyStatus builds an Error for a non-2xx response.
func classifyStatus(resp *http.Response, detail string) *Error {
	e := &Error{StatusCode: resp.StatusCode, Detail: detail}
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		e.Kind = KindAuthExpired
	case resp.StatusCode == http.StatusTooManyRequests:
		e.Kind = KindRateLimited
		if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
			e.RetryAfter = time.Duration(secs) * time.Second
		}
	case resp.StatusCode >= 500:
		e.Kind = KindServer
	default:
		e.Kind = KindValidation
	}
	return e
}

// validationError reports a response body that failed boundary validation.
// Payloads that do not satisfy the snapshot invariants never reach the
// local cache.
func validationError(detail string) *Error {
	return &Error{Kind: KindValidation, Detail: detail}
}
