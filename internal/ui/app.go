package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Filichkin/OnlineShop-sub001/internal/api"
	"github.com/Filichkin/OnlineShop-sub001/internal/coordinator"
	"github.com/Filichkin/OnlineShop-sub001/internal/session"
	"github.com/Filichkin/OnlineShop-sub001/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewCatalog View = iota
	ViewCart
	ViewFavorites
	ViewOrders
	ViewLogin
	ViewCheckout
)

const uiTick = time.Second

// Options configures the UI.
type Options struct {
	Context     context.Context
	Client      *api.Client
	Store       *state.Store
	Coordinator *coordinator.Coordinator
	Session     *session.Manager
	ThemeName   string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx    context.Context
	client *api.Client
	store  *state.Store
	coord  *coordinator.Coordinator
	sess   *session.Manager

	theme  Theme
	view   View
	width  int
	height int
	ready  bool

	authState session.AuthState
	user      api.User

	catalog  catalogState
	cart     cartState
	favs     favoritesState
	orders   ordersState
	login    loginState
	checkout checkoutState
}

// New creates the root model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	return Model{
		ctx:      ctx,
		client:   opts.Client,
		store:    opts.Store,
		coord:    opts.Coordinator,
		sess:     opts.Session,
		theme:    GetTheme(opts.ThemeName),
		view:     ViewCatalog,
		catalog:  newCatalogState(),
		login:    newLoginState(),
		checkout: newCheckoutState(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		checkAuthCmd(m.ctx, m.sess),
		loadCatalogCmd(m.ctx, m.client, m.catalog.query),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		// Re-render: notices expire, pending marks settle.
		return m, tickCmd()

	case refreshMsg:
		// A mutation settled; snapshots are re-read on render.
		return m, nil

	case authCheckedMsg:
		m.authState = msg.state
		_, m.user = m.sess.State()
		return m, nil

	case catalogMsg:
		m.catalog.loading = false
		if msg.err != nil {
			m.catalog.errText = loadErrorText(msg.err)
			return m, nil
		}
		m.catalog.errText = ""
		m.catalog.products = msg.products
		m.catalog.clampSelection()
		return m, nil

	case ordersMsg:
		m.orders.loading = false
		if msg.err != nil {
			m.orders.errText = loadErrorText(msg.err)
			return m, nil
		}
		m.orders.errText = ""
		m.orders.orders = msg.orders
		m.orders.clampSelection()
		return m, nil

	case loginResultMsg:
		m.login.submitting = false
		if msg.err != nil {
			m.login.errText = loginErrorText(msg.err)
			return m, nil
		}
		m.authState = session.Authenticated
		_, m.user = m.sess.State()
		m.login = newLoginState()
		m.view = ViewCatalog
		return m, nil

	case loggedOutMsg:
		m.authState = session.Unauthenticated
		m.user = api.User{}
		m.view = ViewCatalog
		return m, nil

	case orderPlacedMsg:
		m.checkout.submitting = false
		if msg.err != nil {
			m.checkout.errText = orderErrorText(msg.err)
			return m, nil
		}
		m.checkout = newCheckoutState()
		m.view = ViewOrders
		m.orders.loading = true
		return m, tea.Batch(
			loadOrdersCmd(m.ctx, m.client),
			refreshCartCmd(m.ctx, m.coord),
		)

	case orderCancelledMsg:
		m.orders.loading = true
		return m, loadOrdersCmd(m.ctx, m.client)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	body := ""
	switch m.view {
	case ViewCatalog:
		body = m.renderCatalog()
	case ViewCart:
		body = m.renderCart()
	case ViewFavorites:
		body = m.renderFavorites()
	case ViewOrders:
		body = m.renderOrders()
	case ViewLogin:
		body = m.renderLogin()
	case ViewCheckout:
		body = m.renderCheckout()
	}
	return m.renderHeader() + "\n" + body + "\n" + m.renderFooter()
}

// handleKey routes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Text-entry views swallow most keys.
	switch m.view {
	case ViewLogin:
		return m.handleLoginKey(msg)
	case ViewCheckout:
		return m.handleCheckoutKey(msg)
	}
	if m.catalog.searching {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "1":
		m.view = ViewCatalog
		return m, nil

	case "2":
		m.view = ViewCart
		return m, nil

	case "3":
		m.view = ViewFavorites
		return m, nil

	case "4":
		m.view = ViewOrders
		if m.authState == session.Authenticated && !m.orders.loading {
			m.orders.loading = true
			return m, loadOrdersCmd(m.ctx, m.client)
		}
		return m, nil

	case "L":
		if m.authState == session.Authenticated {
			return m, logoutCmd(m.ctx, m.sess)
		}
		m.view = ViewLogin
		m.login = newLoginState()
		return m, m.login.inputs[0].Focus()

	case "n":
		// Dismiss the oldest notice early.
		if notices := m.store.Notices(); len(notices) > 0 {
			m.store.DismissNotice(notices[0].ID)
		}
		return m, nil
	}

	switch m.view {
	case ViewCatalog:
		return m.handleCatalogKey(msg)
	case ViewCart:
		return m.handleCartKey(msg)
	case ViewFavorites:
		return m.handleFavoritesKey(msg)
	case ViewOrders:
		return m.handleOrdersKey(msg)
	}
	return m, nil
}

// Run starts the Bubble Tea program and wires the coordinator's settle
// notifications into the message loop.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	opts.Coordinator.SetNotify(func() { p.Send(refreshMsg{}) })
	go func() {
		<-m.ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// focusFirst focuses input i within a set, blurring the rest.
func focusFirst(inputs []textinput.Model, focus int) []tea.Cmd {
	var cmds []tea.Cmd
	for i := range inputs {
		if i == focus {
			cmds = append(cmds, inputs[i].Focus())
		} else {
			inputs[i].Blur()
		}
	}
	return cmds
}
