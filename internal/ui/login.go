package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type loginState struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
	errText    string
}

func newLoginState() loginState {
	login := textinput.New()
	login.Placeholder = "email или телефон"
	login.CharLimit = 120

	password := textinput.New()
	password.Placeholder = "пароль"
	password.CharLimit = 120
	password.EchoMode = textinput.EchoPassword

	return loginState{inputs: []textinput.Model{login, password}}
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = ViewCatalog
		m.login = newLoginState()
		return m, nil

	case "tab", "shift+tab", "down", "up":
		if msg.String() == "tab" || msg.String() == "down" {
			m.login.focus = (m.login.focus + 1) % len(m.login.inputs)
		} else {
			m.login.focus = (m.login.focus + len(m.login.inputs) - 1) % len(m.login.inputs)
		}
		return m, tea.Batch(focusFirst(m.login.inputs, m.login.focus)...)

	case "enter":
		if m.login.submitting {
			return m, nil
		}
		emailOrPhone := strings.TrimSpace(m.login.inputs[0].Value())
		password := m.login.inputs[1].Value()
		if emailOrPhone == "" || password == "" {
			m.login.errText = "Заполните оба поля"
			return m, nil
		}
		m.login.submitting = true
		m.login.errText = ""
		return m, loginCmd(m.ctx, m.sess, emailOrPhone, password)
	}

	var cmd tea.Cmd
	m.login.inputs[m.login.focus], cmd = m.login.inputs[m.login.focus].Update(msg)
	return m, cmd
}

func (m Model) renderLogin() string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.Accent.Render("Вход в аккаунт"))
	b.WriteString("\n\n")
	for _, input := range m.login.inputs {
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	if m.login.submitting {
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render("Входим…"))
	}
	if m.login.errText != "" {
		b.WriteString("\n")
		b.WriteString(styles.Danger.Render(m.login.errText))
	}
	return b.String()
}
