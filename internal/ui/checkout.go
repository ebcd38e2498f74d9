package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Filichkin/OnlineShop-sub001/internal/api"
)

// Checkout form field order. Notes is optional, everything else required.
const (
	fieldFirstName = iota
	fieldLastName
	fieldCity
	fieldPostalCode
	fieldAddress
	fieldPhone
	fieldEmail
	fieldNotes
	fieldCount
)

var checkoutPlaceholders = [fieldCount]string{
	"имя",
	"фамилия",
	"город",
	"индекс",
	"адрес",
	"телефон",
	"email",
	"комментарий (необязательно)",
}

type checkoutState struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
	errText    string
}

func newCheckoutState() checkoutState {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		input := textinput.New()
		input.Placeholder = checkoutPlaceholders[i]
		input.CharLimit = 200
		inputs[i] = input
	}
	return checkoutState{inputs: inputs}
}

// prefill copies known account fields into the form.
func (s *checkoutState) prefill(user api.User) {
	s.inputs[fieldFirstName].SetValue(user.FirstName)
	s.inputs[fieldLastName].SetValue(user.LastName)
	s.inputs[fieldPhone].SetValue(user.Phone)
	s.inputs[fieldEmail].SetValue(user.Email)
}

func (s checkoutState) draft() api.OrderDraft {
	get := func(i int) string { return strings.TrimSpace(s.inputs[i].Value()) }
	return api.OrderDraft{
		FirstName:  get(fieldFirstName),
		LastName:   get(fieldLastName),
		City:       get(fieldCity),
		PostalCode: get(fieldPostalCode),
		Address:    get(fieldAddress),
		Phone:      get(fieldPhone),
		Email:      get(fieldEmail),
		Notes:      get(fieldNotes),
	}
}

func (m Model) handleCheckoutKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = ViewCart
		m.checkout = newCheckoutState()
		return m, nil

	case "tab", "down":
		m.checkout.focus = (m.checkout.focus + 1) % len(m.checkout.inputs)
		return m, tea.Batch(focusFirst(m.checkout.inputs, m.checkout.focus)...)

	case "shift+tab", "up":
		m.checkout.focus = (m.checkout.focus + len(m.checkout.inputs) - 1) % len(m.checkout.inputs)
		return m, tea.Batch(focusFirst(m.checkout.inputs, m.checkout.focus)...)

	case "enter":
		if m.checkout.submitting {
			return m, nil
		}
		draft := m.checkout.draft()
		if err := draft.Validate(); err != nil {
			m.checkout.errText = "Заполните все обязательные поля"
			return m, nil
		}
		m.checkout.submitting = true
		m.checkout.errText = ""
		return m, placeOrderCmd(m.ctx, m.client, draft)
	}

	var cmd tea.Cmd
	m.checkout.inputs[m.checkout.focus], cmd = m.checkout.inputs[m.checkout.focus].Update(msg)
	return m, cmd
}

func (m Model) renderCheckout() string {
	styles := m.theme.Styles()
	cart := m.store.Cart()

	var b strings.Builder
	b.WriteString(styles.Accent.Render("Оформление заказа"))
	b.WriteString("  ")
	b.WriteString(styles.Muted.Render(
		"на сумму " + cart.TotalPrice().StringFixed(2) + " ₽"))
	b.WriteString("\n\n")
	for _, input := range m.checkout.inputs {
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	if m.checkout.submitting {
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render("Отправляем заказ…"))
	}
	if m.checkout.errText != "" {
		b.WriteString("\n")
		b.WriteString(styles.Danger.Render(m.checkout.errText))
	}
	return b.String()
}
