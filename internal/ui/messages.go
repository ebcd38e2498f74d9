package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Filichkin/OnlineShop-sub001/internal/api"
	"github.com/Filichkin/OnlineShop-sub001/internal/coordinator"
	"github.com/Filichkin/OnlineShop-sub001/internal/session"
)

type tickMsg time.Time

// refreshMsg is injected by the coordinator whenever a mutation settles.
type refreshMsg struct{}

type authCheckedMsg struct {
	state session.AuthState
}

type catalogMsg struct {
	products []api.CatalogProduct
	err      error
}

type ordersMsg struct {
	orders []api.Order
	err    error
}

type loginResultMsg struct {
	err error
}

type loggedOutMsg struct{}

type orderPlacedMsg struct {
	receipt api.OrderReceipt
	err     error
}

type orderCancelledMsg struct {
	err error
}

func tickCmd() tea.Cmd {
	return tea.Tick(uiTick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func checkAuthCmd(ctx context.Context, sess *session.Manager) tea.Cmd {
	return func() tea.Msg {
		return authCheckedMsg{state: sess.Check(ctx)}
	}
}

func loadCatalogCmd(ctx context.Context, client *api.Client, query api.CatalogQuery) tea.Cmd {
	return func() tea.Msg {
		products, err := client.Catalog(ctx, query)
		return catalogMsg{products: products, err: err}
	}
}

func loadOrdersCmd(ctx context.Context, client *api.Client) tea.Cmd {
	return func() tea.Msg {
		orders, err := client.ListOrders(ctx, 0, 50)
		return ordersMsg{orders: orders, err: err}
	}
}

func loginCmd(ctx context.Context, sess *session.Manager, emailOrPhone, password string) tea.Cmd {
	return func() tea.Msg {
		return loginResultMsg{err: sess.Login(ctx, emailOrPhone, password)}
	}
}

func logoutCmd(ctx context.Context, sess *session.Manager) tea.Cmd {
	return func() tea.Msg {
		sess.Logout(ctx)
		return loggedOutMsg{}
	}
}

func placeOrderCmd(ctx context.Context, client *api.Client, draft api.OrderDraft) tea.Cmd {
	return func() tea.Msg {
		receipt, err := client.CreateOrder(ctx, draft)
		return orderPlacedMsg{receipt: receipt, err: err}
	}
}

func cancelOrderCmd(ctx context.Context, client *api.Client, orderID int64) tea.Cmd {
	return func() tea.Msg {
		return orderCancelledMsg{err: client.CancelOrder(ctx, orderID)}
	}
}

func refreshCartCmd(ctx context.Context, coord *coordinator.Coordinator) tea.Cmd {
	return func() tea.Msg {
		_ = coord.RefreshCart(ctx)
		return refreshMsg{}
	}
}

func loadErrorText(err error) string {
	switch api.KindOf(err) {
	case api.KindNetwork:
		return "Сервер недоступен, проверьте подключение"
	case api.KindAuthExpired:
		return "Требуется вход в аккаунт"
	case api.KindRateLimited:
		return "Слишком много запросов, попробуйте позже"
	default:
		return "Не удалось загрузить данные"
	}
}

func loginErrorText(err error) string {
	switch api.KindOf(err) {
	case api.KindValidation, api.KindAuthExpired:
		return "Неверный логин или пароль"
	case api.KindNetwork:
		return "Сервер недоступен, проверьте подключение"
	default:
		return "Не удалось войти, попробуйте ещё раз"
	}
}

func orderErrorText(err error) string {
	switch api.KindOf(err) {
	case api.KindValidation:
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Detail != "" {
			return apiErr.Detail
		}
		return "Проверьте поля формы"
	case api.KindNetwork:
		return "Сервер недоступен, заказ не оформлен"
	default:
		return "Не удалось оформить заказ"
	}
}
