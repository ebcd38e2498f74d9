package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Filichkin/OnlineShop-sub001/internal/session"
)

type cartState struct {
	selected int
}

func (m Model) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cart := m.store.Cart()

	switch msg.String() {
	case "j", "down":
		if m.cart.selected < len(cart.Items)-1 {
			m.cart.selected++
		}
		return m, nil

	case "k", "up":
		if m.cart.selected > 0 {
			m.cart.selected--
		}
		return m, nil

	case "+", "=":
		if item, ok := m.selectedCartItem(); ok {
			m.coord.IncrementQuantity(item)
		}
		return m, nil

	case "-":
		// A no-op at quantity 1: removal is an explicit, separate action.
		if item, ok := m.selectedCartItem(); ok {
			m.coord.DecrementQuantity(item)
		}
		return m, nil

	case "x", "delete":
		if item, ok := m.selectedCartItem(); ok {
			m.coord.RemoveFromCart(item)
			if m.cart.selected > 0 {
				m.cart.selected--
			}
		}
		return m, nil

	case "X":
		m.coord.ClearCart()
		m.cart.selected = 0
		return m, nil

	case "o":
		if len(cart.Items) == 0 {
			return m, nil
		}
		if m.authState != session.Authenticated {
			m.view = ViewLogin
			m.login = newLoginState()
			return m, m.login.inputs[0].Focus()
		}
		m.view = ViewCheckout
		m.checkout = newCheckoutState()
		m.checkout.prefill(m.user)
		return m, tea.Batch(focusFirst(m.checkout.inputs, 0)...)
	}
	return m, nil
}

func (m Model) selectedCartItem() (int64, bool) {
	cart := m.store.Cart()
	if len(cart.Items) == 0 {
		return 0, false
	}
	i := m.cart.selected
	if i >= len(cart.Items) {
		i = len(cart.Items) - 1
	}
	return cart.Items[i].Product.ID, true
}

func (m Model) renderCart() string {
	styles := m.theme.Styles()
	cart := m.store.Cart()

	if !cart.Loaded {
		return styles.Muted.Render("Загрузка корзины…")
	}
	if len(cart.Items) == 0 {
		return styles.Muted.Render("Корзина пуста")
	}

	var b strings.Builder
	for i, item := range cart.Items {
		pending := ""
		if m.store.IsPending(item.Product.ID) {
			pending = " …"
		}
		line := fmt.Sprintf("%-40s %3d × %10s ₽ = %10s ₽%s",
			truncate(item.Product.Name, 40),
			item.Quantity,
			item.PriceAtAddition.StringFixed(2),
			item.Subtotal().StringFixed(2),
			pending)
		if i == m.cart.selected {
			line = styles.Selected.Render(line)
		} else {
			line = styles.Text.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.Accent.Render(fmt.Sprintf("Итого: %d шт · %s ₽",
		cart.TotalQuantity(), cart.TotalPrice().StringFixed(2))))
	return b.String()
}
