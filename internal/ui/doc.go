// Package ui provides the terminal user interface for the shopfront
// application.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. The root Model holds the active view and
// per-view state; Update routes key presses and async results; View renders
// the current screen from the state store's snapshots. The UI never mutates
// cart or favorites state directly: every change goes through the mutation
// coordinator, and the screen simply re-reads the snapshots on the next
// render.
//
// # Package Structure
//
//   - app.go: root Model, message routing, and the Run function
//   - messages.go: message types, async commands, and user-facing error text
//   - theme.go: color palettes and lipgloss styles
//   - header.go: tab bar, auth status, notices, and the key help footer
//   - catalog.go, cart.go, favorites.go, orders.go: list views
//   - login.go, checkout.go: text-entry forms
//
// # Views
//
// Six views are available, switched with the number keys:
//
//   - Catalog: searchable, sortable product listing; enter adds to cart,
//     f toggles favorite
//   - Cart: quantity controls, row removal, clear, and checkout entry
//   - Favorites: the account or guest favorites set
//   - Orders: order history with line items and cancellation
//   - Login and Checkout: modal-style forms reached from the other views
//
// # Event Flow
//
//  1. Run() builds the program and wires the coordinator's settle hook to
//     inject a refresh message, so rollbacks appear without polling
//  2. Init() starts the auth check and the initial catalog fetch
//  3. Optimistic mutations update the store synchronously, so the very next
//     render already shows the change; a per-second tick repaints the screen
//     so expiring notices disappear on time
//  4. Context cancellation quits the program cleanly
package ui
