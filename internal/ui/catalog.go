package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Filichkin/OnlineShop-sub001/internal/api"
)

const catalogPageSize = 50

type catalogState struct {
	query    api.CatalogQuery
	products []api.CatalogProduct
	selected int
	loading  bool
	errText  string

	searching bool
	search    textinput.Model
}

func newCatalogState() catalogState {
	search := textinput.New()
	search.Placeholder = "поиск по названию или артикулу"
	search.CharLimit = 120
	return catalogState{
		query:   api.CatalogQuery{Limit: catalogPageSize},
		loading: true,
		search:  search,
	}
}

func (s *catalogState) clampSelection() {
	if s.selected >= len(s.products) {
		s.selected = len(s.products) - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
}

func (m Model) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.catalog.selected < len(m.catalog.products)-1 {
			m.catalog.selected++
		}
		return m, nil

	case "k", "up":
		if m.catalog.selected > 0 {
			m.catalog.selected--
		}
		return m, nil

	case "g":
		m.catalog.selected = 0
		return m, nil

	case "G":
		m.catalog.selected = len(m.catalog.products) - 1
		m.catalog.clampSelection()
		return m, nil

	case "enter":
		if p, ok := m.selectedCatalogProduct(); ok {
			m.coord.AddToCart(p.Product, 1)
		}
		return m, nil

	case "f":
		if p, ok := m.selectedCatalogProduct(); ok {
			m.coord.ToggleFavorite(p.Product)
		}
		return m, nil

	case "/":
		m.catalog.searching = true
		m.catalog.search.SetValue(m.catalog.query.Search)
		return m, m.catalog.search.Focus()

	case "s":
		m.catalog.query = cycleSort(m.catalog.query)
		m.catalog.loading = true
		return m, loadCatalogCmd(m.ctx, m.client, m.catalog.query)

	case "r":
		m.catalog.loading = true
		return m, loadCatalogCmd(m.ctx, m.client, m.catalog.query)
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.catalog.searching = false
		m.catalog.search.Blur()
		return m, nil

	case "enter":
		m.catalog.searching = false
		m.catalog.search.Blur()
		m.catalog.query.Search = strings.TrimSpace(m.catalog.search.Value())
		m.catalog.query.Skip = 0
		m.catalog.loading = true
		m.catalog.selected = 0
		return m, loadCatalogCmd(m.ctx, m.client, m.catalog.query)
	}
	var cmd tea.Cmd
	m.catalog.search, cmd = m.catalog.search.Update(msg)
	return m, cmd
}

func (m Model) selectedCatalogProduct() (api.CatalogProduct, bool) {
	if len(m.catalog.products) == 0 {
		return api.CatalogProduct{}, false
	}
	return m.catalog.products[m.catalog.selected], true
}

// cycleSort rotates name asc → price asc → price desc → default.
func cycleSort(q api.CatalogQuery) api.CatalogQuery {
	switch {
	case q.SortBy == "":
		q.SortBy, q.SortDesc = "name", false
	case q.SortBy == "name":
		q.SortBy, q.SortDesc = "price", false
	case q.SortBy == "price" && !q.SortDesc:
		q.SortDesc = true
	default:
		q.SortBy, q.SortDesc = "", false
	}
	return q
}

func (m Model) renderCatalog() string {
	styles := m.theme.Styles()
	var b strings.Builder

	if m.catalog.searching {
		b.WriteString(m.catalog.search.View())
		b.WriteString("\n")
	} else if m.catalog.query.Search != "" {
		b.WriteString(styles.Muted.Render("поиск: " + m.catalog.query.Search))
		b.WriteString("\n")
	}

	switch {
	case m.catalog.errText != "":
		b.WriteString(styles.Danger.Render(m.catalog.errText))
	case m.catalog.loading:
		b.WriteString(styles.Muted.Render("Загрузка каталога…"))
	case len(m.catalog.products) == 0:
		b.WriteString(styles.Muted.Render("Ничего не найдено"))
	default:
		favs := m.store.Favorites()
		cart := m.store.Cart()
		for i, p := range m.catalog.products {
			marks := " "
			if favs.IsFavorite(p.ID) {
				marks = "♥"
			}
			inCart := ""
			if row, ok := cart.Item(p.ID); ok {
				inCart = fmt.Sprintf(" [в корзине ×%d]", row.Quantity)
			}
			pending := ""
			if m.store.IsPending(p.ID) {
				pending = " …"
			}
			line := fmt.Sprintf("%s %-40s %10s ₽  %s%s%s",
				marks, truncate(p.Name, 40), p.Price.StringFixed(2), p.PartNumber, inCart, pending)
			if i == m.catalog.selected {
				line = styles.Selected.Render(line)
			} else {
				line = styles.Text.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
