package ui

import (
	"fmt"
	"strings"

	"github.com/Filichkin/OnlineShop-sub001/internal/session"
	"github.com/Filichkin/OnlineShop-sub001/internal/state"
)

var tabs = []struct {
	view  View
	label string
}{
	{ViewCatalog, "1 Каталог"},
	{ViewCart, "2 Корзина"},
	{ViewFavorites, "3 Избранное"},
	{ViewOrders, "4 Заказы"},
}

// renderHeader draws the tab bar, auth status and any active notices.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	var parts []string
	for _, tab := range tabs {
		label := tab.label
		if tab.view == ViewCart {
			if n := m.store.Cart().TotalQuantity(); n > 0 {
				label = fmt.Sprintf("%s (%d)", label, n)
			}
		}
		if tab.view == m.view {
			parts = append(parts, styles.ActiveTab.Render(label))
		} else {
			parts = append(parts, styles.Tab.Render(label))
		}
	}
	line := strings.Join(parts, " ") + "  " + styles.Muted.Render(m.authLabel())

	if notices := m.store.Notices(); len(notices) > 0 {
		var rendered []string
		for _, notice := range notices {
			if notice.Level == state.NoticeError {
				rendered = append(rendered, styles.Notice.Render(notice.Text))
			} else {
				rendered = append(rendered, styles.NoticeInfo.Render(notice.Text))
			}
		}
		line += "\n" + strings.Join(rendered, "\n")
	}
	return line
}

func (m Model) authLabel() string {
	switch m.authState {
	case session.Unchecked, session.Checking:
		return "…"
	case session.Authenticated:
		name := strings.TrimSpace(m.user.FirstName)
		if name == "" {
			name = m.user.Email
		}
		return name
	default:
		return "гость"
	}
}

// renderFooter draws the context-sensitive key help line.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	var help string
	switch m.view {
	case ViewCatalog:
		help = "j/k выбор · enter в корзину · f избранное · / поиск · s сортировка · L вход · q выход"
	case ViewCart:
		help = "j/k выбор · + / - количество · x удалить · X очистить · o оформить · q выход"
	case ViewFavorites:
		help = "j/k выбор · enter в корзину · f убрать · q выход"
	case ViewOrders:
		help = "j/k выбор · c отменить заказ · r обновить · q выход"
	case ViewLogin:
		help = "tab следующее поле · enter войти · esc отмена"
	case ViewCheckout:
		help = "tab следующее поле · enter отправить · esc отмена"
	}
	return styles.Muted.Render(help)
}
