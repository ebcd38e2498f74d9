// Package state provides the local snapshot cache for the storefront UI.
//
// # Overview
//
// The Store is the single shared mutable resource of the application. It
// holds the cart snapshot, the favorites snapshot, the set of product ids
// with an in-flight mutation, and the transient notices shown after failed
// operations. The UI reads from it on every render; the mutation coordinator
// and the session manager are the only writers.
//
// # Snapshot Semantics
//
// Both snapshots carry a Loaded flag distinguishing "never fetched" from
// "fetched and empty" — the UI renders a loading placeholder for the former
// and an empty-state message for the latter.
//
// Derived values (subtotal, total quantity, total price) are methods
// computed on read, never stored. There is no cached aggregate to go stale
// when an unrelated row mutates.
//
// # Concurrency Model
//
// An RWMutex guards everything. Writes are short, synchronous critical
// sections; no lock is ever held across network I/O. The only concurrency
// in the application is multiple in-flight HTTP requests whose completions
// may interleave in any order, and each completion reconciles against
// whatever the store looks like at that moment.
//
// Reads return defensive copies so the UI can hold a snapshot across a
// render without racing with a settling mutation.
//
// # Rollback Support
//
// Mutating methods that destroy information return what they destroyed:
// RemoveCartItem hands back the row and its index, ClearCartItems hands back
// the previous list. A mutation's rollback path restores exactly the state
// captured before that mutation; it deliberately does not try to account for
// other mutations that interleaved, which is an accepted imprecision for a
// shopping cart.
//
// # Notices
//
// Notices auto-expire. Expiry is computed against the injected clock on
// read, so tests drive it deterministically and no background timer exists.
package state
