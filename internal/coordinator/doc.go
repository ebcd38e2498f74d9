// Package coordinator implements optimistic cart and favorites mutations.
//
// # Overview
//
// Every mutation follows the same shape:
//
//  1. Capture the pre-mutation state of the affected slice: the single cart
//     row being changed, the full item list for a clear, or the single
//     favorite membership bit.
//  2. Apply the change to the local store synchronously, so the UI updates
//     on the same tick.
//  3. Mark the product id pending, so the UI can disable that row's
//     controls while other rows stay interactive.
//  4. Issue the remote call in the background.
//  5. On success, keep the optimistic state — or, where the response carries
//     authoritative data, reconcile any divergence in the server's favor.
//  6. On failure, restore the captured state verbatim and raise a transient
//     notice that expires on its own.
//
// # Failure Handling
//
// Rollback is unconditional on any failure kind; classification only picks
// the message. A 401 additionally hands control to the session manager,
// which performs the logout-like reset for a silently expired session.
// Intentional cancellation rolls back silently.
//
// # Concurrency
//
// Mutations are fire-and-forget: once issued they are not cancellable, and
// their completions may arrive in any order. Each completion reconciles
// against the store as it is at settle time, not as it was at issue time —
// a rollback restores the state just before that one mutation, which is the
// accepted imprecision for a shopping cart. The one guarded case is the
// favorite toggle: a second toggle for a product is suppressed while one is
// in flight, preventing double-submission flicker.
//
// # Guest Mode
//
// When no session exists, favorite toggles never touch the network: the
// membership flips locally and persists to the guest store. Cart operations
// always go to the backend, which tracks guest carts by session cookie.
package coordinator
