package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Filichkin/OnlineShop-sub001/internal/api"
)

type favoritesState struct {
	selected int
}

func (m Model) handleFavoritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	favs := m.store.Favorites()

	switch msg.String() {
	case "j", "down":
		if m.favs.selected < len(favs.Items)-1 {
			m.favs.selected++
		}
		return m, nil

	case "k", "up":
		if m.favs.selected > 0 {
			m.favs.selected--
		}
		return m, nil

	case "enter":
		if p, ok := m.selectedFavorite(); ok {
			m.coord.AddToCart(p, 1)
		}
		return m, nil

	case "f":
		if p, ok := m.selectedFavorite(); ok {
			m.coord.ToggleFavorite(p)
			if m.favs.selected > 0 {
				m.favs.selected--
			}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) selectedFavorite() (api.Product, bool) {
	favs := m.store.Favorites()
	if len(favs.Items) == 0 {
		return api.Product{}, false
	}
	i := m.favs.selected
	if i >= len(favs.Items) {
		i = len(favs.Items) - 1
	}
	return favs.Items[i], true
}

func (m Model) renderFavorites() string {
	styles := m.theme.Styles()
	favs := m.store.Favorites()

	if !favs.Loaded {
		return styles.Muted.Render("Загрузка избранного…")
	}

	var b strings.Builder
	if favs.IsGuest {
		b.WriteString(styles.Muted.Render("Избранное хранится локально. Войдите, чтобы сохранить его в аккаунте."))
		b.WriteString("\n\n")
	}
	if len(favs.Items) == 0 {
		b.WriteString(styles.Muted.Render("В избранном пусто"))
		return b.String()
	}

	for i, p := range favs.Items {
		pending := ""
		if m.store.IsPending(p.ID) {
			pending = " …"
		}
		line := fmt.Sprintf("♥ %-40s %10s ₽  %s%s",
			truncate(p.Name, 40), p.Price.StringFixed(2), p.PartNumber, pending)
		if i == m.favs.selected {
			line = styles.Selected.Render(line)
		} else {
			line = styles.Text.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
