package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jask/inventorly/internal/database/repository"
	"github.com/jask/inventorly/internal/forms"
	"github.com/jask/inventorly/internal/nav"
	"github.com/jask/inventorly/internal/service"
)

type dashboardState struct {
	summary service.Summary
	loaded  bool
	cursor  int
}

func (a *App) enterDashboard() tea.Cmd {
	a.dash.loaded = false
	return a.loadSummary()
}

func (a *App) loadSummary() tea.Cmd {
	items := a.services.Items
	return a.run(func(ctx context.Context) tea.Msg {
		sum, err := items.Summary(ctx)
		if err != nil {
			return errMsg{err}
		}
		return summaryMsg(sum)
	})
}

func (a *App) onSummary(sum service.Summary) {
	a.dash.summary = sum
	a.dash.loaded = true
	if a.dash.cursor >= len(sum.Recent) {
		a.dash.cursor = 0
	}
}

func (a *App) handleDashboardKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	recent := a.dash.summary.Recent
	switch {
	case key.Matches(m, a.keys.Up):
		if a.dash.cursor > 0 {
			a.dash.cursor--
		}
	case key.Matches(m, a.keys.Down):
		if a.dash.cursor < len(recent)-1 {
			a.dash.cursor++
		}
	case key.Matches(m, a.keys.Submit):
		var id int64
		if a.dash.cursor < len(recent) {
			id = recent[a.dash.cursor].ID
		}
		return a, a.fire(nav.ViewItem{ItemID: id})
	case key.Matches(m, a.keys.Reset):
		if a.services.Maintenance == nil {
			a.setStatus("Demo data lives in memory; restart to reset it")
			return a, nil
		}
		a.confirmReset = true
	}
	return a, nil
}

func (a *App) renderDashboard() string {
	if !a.dash.loaded {
		return mutedStyle.Render("Loading inventory...")
	}
	sum := a.dash.summary
	stat := func(label, value string) string {
		return boxStyle.Render(mutedStyle.Render(label) + "\n" + labelStyle.Render(value))
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		stat("Items", humanize.Comma(int64(sum.TotalItems))),
		stat("Units", humanize.Comma(int64(sum.TotalUnits))),
		stat("Value", forms.FormatCents(a.cfg.UI.CurrencySymbol, sum.ValueCents)),
		stat("In the field", humanize.Comma(int64(sum.ByStatus[repository.StatusAssigned]))),
	)

	var counts []string
	for _, st := range repository.ItemStatuses {
		counts = append(counts, fmt.Sprintf("%s %d", statusLabel(itemStatusStyle, st), sum.ByStatus[st]))
	}

	out := cards + "\n" + strings.Join(counts, "   ") + "\n\n" + titleStyle.Render("Recently added") + "\n"
	if len(sum.Recent) == 0 {
		return out + mutedStyle.Render("No items yet. Press a to add one.")
	}
	for i, it := range sum.Recent {
		marker := " "
		if i == a.dash.cursor {
			marker = cursorStyle.Render("▶")
		}
		out += fmt.Sprintf("%s %-32s %-18s %3d  %s  %s\n", marker, it.Name, it.Category, it.Quantity,
			statusLabel(itemStatusStyle, it.Status), mutedStyle.Render(humanize.Time(it.CreatedAt)))
	}
	return strings.TrimRight(out, "\n")
}
