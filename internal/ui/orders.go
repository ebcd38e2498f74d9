package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Filichkin/OnlineShop-sub001/internal/api"
	"github.com/Filichkin/OnlineShop-sub001/internal/session"
)

type ordersState struct {
	orders   []api.Order
	selected int
	loading  bool
	errText  string
}

func (s *ordersState) clampSelection() {
	if s.selected >= len(s.orders) {
		s.selected = len(s.orders) - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
}

func (m Model) handleOrdersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.orders.selected < len(m.orders.orders)-1 {
			m.orders.selected++
		}
		return m, nil

	case "k", "up":
		if m.orders.selected > 0 {
			m.orders.selected--
		}
		return m, nil

	case "c":
		if len(m.orders.orders) == 0 {
			return m, nil
		}
		order := m.orders.orders[m.orders.selected]
		if order.Status != api.OrderStatusPending {
			return m, nil
		}
		return m, cancelOrderCmd(m.ctx, m.client, order.ID)

	case "r":
		if m.authState == session.Authenticated && !m.orders.loading {
			m.orders.loading = true
			return m, loadOrdersCmd(m.ctx, m.client)
		}
		return m, nil
	}
	return m, nil
}

var orderStatusLabels = map[string]string{
	api.OrderStatusPending:   "ожидает",
	api.OrderStatusConfirmed: "подтверждён",
	api.OrderStatusShipped:   "отправлен",
	api.OrderStatusDelivered: "доставлен",
	api.OrderStatusCancelled: "отменён",
}

func (m Model) renderOrders() string {
	styles := m.theme.Styles()

	if m.authState != session.Authenticated {
		return styles.Muted.Render("Войдите в аккаунт, чтобы видеть заказы (L)")
	}
	if m.orders.errText != "" {
		return styles.Danger.Render(m.orders.errText)
	}
	if m.orders.loading {
		return styles.Muted.Render("Загрузка заказов…")
	}
	if len(m.orders.orders) == 0 {
		return styles.Muted.Render("Заказов пока нет")
	}

	var b strings.Builder
	for i, order := range m.orders.orders {
		status := orderStatusLabels[order.Status]
		if status == "" {
			status = order.Status
		}
		line := fmt.Sprintf("%-14s %s  %-12s %10s ₽  (%d поз.)",
			order.OrderNumber,
			order.CreatedAt.Format("02.01.2006"),
			status,
			order.TotalPrice.StringFixed(2),
			len(order.Items))
		if i == m.orders.selected {
			line = styles.Selected.Render(line)
		} else if order.Status == api.OrderStatusCancelled {
			line = styles.Muted.Render(line)
		} else {
			line = styles.Text.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	// Expand the selected order's lines below the list.
	selected := m.orders.orders[m.orders.selected]
	if len(selected.Items) > 0 {
		b.WriteString("\n")
		for _, item := range selected.Items {
			b.WriteString(styles.Muted.Render(fmt.Sprintf("  %-40s %3d × %10s ₽",
				truncate(item.ProductName, 40), item.Quantity, item.PriceAtPurchase.StringFixed(2))))
			b.WriteString("\n")
		}
	}
	return b.String()
}
