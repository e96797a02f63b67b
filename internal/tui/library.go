package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/inventorly/internal/database/repository"
	"github.com/jask/inventorly/internal/forms"
	"github.com/jask/inventorly/internal/nav"
)

// statusFilters cycles the library filter; "" shows everything.
var statusFilters = append([]string{""}, repository.ItemStatuses...)

type libraryState struct {
	items     []repository.Item
	shown     []repository.Item
	filter    int
	search    textinput.Model
	searching bool
	table     table.Model
}

func newLibraryState() libraryState {
	in := textinput.New()
	in.Prompt = "/"
	in.Placeholder = "search name, category, location, tag"
	in.CharLimit = 64

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 4},
			{Title: "Name", Width: 30},
			{Title: "Category", Width: 18},
			{Title: "Location", Width: 16},
			{Title: "Qty", Width: 4},
			{Title: "Value", Width: 11},
			{Title: "Status", Width: 11},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.BorderStyle(lipgloss.NormalBorder()).BorderForeground(colorBorder).BorderBottom(true).Bold(true)
	st.Selected = st.Selected.Foreground(colorText).Background(colorSurface0).Bold(true)
	t.SetStyles(st)
	return libraryState{search: in, table: t}
}

func (a *App) enterLibrary() tea.Cmd {
	a.library.searching = false
	a.library.search.Blur()
	return a.loadLibrary()
}

func (a *App) loadLibrary() tea.Cmd {
	items, status := a.services.Items, statusFilters[a.library.filter]
	return a.run(func(ctx context.Context) tea.Msg {
		list, err := items.FilterByStatus(ctx, status)
		if err != nil {
			return errMsg{err}
		}
		return libraryMsg(list)
	})
}

// refreshLibrary applies the search query to the loaded items and redraws the table.
func (a *App) refreshLibrary() {
	a.library.shown = a.services.Items.Search(a.library.items, a.library.search.Value())
	rows := make([]table.Row, 0, len(a.library.shown))
	for _, it := range a.library.shown {
		rows = append(rows, table.Row{
			strconv.FormatInt(it.ID, 10),
			it.Name,
			it.Category,
			it.Location,
			strconv.Itoa(it.Quantity),
			forms.FormatCents(a.cfg.UI.CurrencySymbol, it.ValueCents()),
			it.Status,
		})
	}
	a.library.table.SetRows(rows)
	if a.library.table.Cursor() >= len(rows) {
		a.library.table.SetCursor(max(0, len(rows)-1))
	}
}

func (a *App) handleLibraryKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Back):
		return a, a.fire(nav.Back{})
	case key.Matches(m, a.keys.Submit):
		var id int64
		if c := a.library.table.Cursor(); c >= 0 && c < len(a.library.shown) {
			id = a.library.shown[c].ID
		}
		return a, a.fire(nav.ViewItem{ItemID: id})
	case key.Matches(m, a.keys.Filter):
		a.library.filter = (a.library.filter + 1) % len(statusFilters)
		return a, a.loadLibrary()
	case key.Matches(m, a.keys.Search):
		a.library.searching = true
		return a, a.library.search.Focus()
	}
	var cmd tea.Cmd
	a.library.table, cmd = a.library.table.Update(m)
	return a, cmd
}

func (a *App) handleSearchKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(m, a.keys.Back) || key.Matches(m, a.keys.Submit) {
		a.library.searching = false
		a.library.search.Blur()
		return a, nil
	}
	var cmd tea.Cmd
	a.library.search, cmd = a.library.search.Update(m)
	a.refreshLibrary()
	return a, cmd
}

func (a *App) renderLibrary() string {
	filter := "all"
	if f := statusFilters[a.library.filter]; f != "" {
		filter = statusLabel(itemStatusStyle, f)
	}
	head := fmt.Sprintf("%s  %s %s  %s",
		titleStyle.Render("Library"),
		mutedStyle.Render("status:"), filter,
		mutedStyle.Render(fmt.Sprintf("%d of %d items", len(a.library.shown), len(a.library.items))))
	out := head + "\n"
	if a.library.searching || a.library.search.Value() != "" {
		out += a.library.search.View() + "\n"
	}
	if len(a.library.shown) == 0 {
		return out + mutedStyle.Render("No items match.")
	}
	return out + a.library.table.View()
}
