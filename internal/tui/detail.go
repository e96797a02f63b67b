package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/jask/inventorly/internal/database/repository"
	"github.com/jask/inventorly/internal/forms"
	"github.com/jask/inventorly/internal/nav"
	"github.com/jask/inventorly/internal/service"
)

type detailState struct {
	item          *repository.Item
	history       []service.AssignmentLine
	confirmDelete bool
}

func (a *App) enterDetail(s nav.ItemDetail) tea.Cmd {
	a.detail = detailState{}
	items, jobs, id := a.services.Items, a.services.Jobs, s.ItemID
	return a.run(func(ctx context.Context) tea.Msg {
		it, err := items.Get(ctx, id)
		if err != nil {
			return errMsg{err}
		}
		hist, err := jobs.History(ctx, id)
		if err != nil {
			return errMsg{err}
		}
		return detailMsg{item: it, history: hist}
	})
}

func (a *App) handleDetailKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Back):
		return a, a.fire(nav.Back{})
	case key.Matches(m, a.keys.Assign):
		return a, a.fire(nav.RequestAssign{})
	case key.Matches(m, a.keys.Report):
		return a, a.fire(nav.ViewReport{})
	}
	if a.detail.item == nil || a.busy {
		return a, nil
	}
	switch {
	case key.Matches(m, a.keys.Status):
		items, id, next := a.services.Items, a.detail.item.ID, service.NextStatus(a.detail.item.Status)
		a.busy = true
		return a, a.run(func(ctx context.Context) tea.Msg {
			if err := items.SetStatus(ctx, id, next); err != nil {
				return errMsg{err}
			}
			it, err := items.Get(ctx, id)
			if err != nil {
				return errMsg{err}
			}
			return statusChangedMsg{item: it}
		})
	case key.Matches(m, a.keys.Delete):
		a.detail.confirmDelete = true
	}
	return a, nil
}

func (a *App) handleDeleteConfirmKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Yes):
		a.detail.confirmDelete = false
		items, it := a.services.Items, *a.detail.item
		a.busy = true
		return a, a.run(func(ctx context.Context) tea.Msg {
			if err := items.Delete(ctx, it.ID); err != nil {
				return errMsg{err}
			}
			return deletedMsg{name: it.Name}
		})
	case key.Matches(m, a.keys.No):
		a.detail.confirmDelete = false
	}
	return a, nil
}

func (a *App) renderDetail() string {
	it := a.detail.item
	if it == nil {
		return mutedStyle.Render("Loading item...")
	}
	field := func(label, value string) string {
		return fmt.Sprintf("%s %s\n", mutedStyle.Render(fmt.Sprintf("%-14s", label)), value)
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(it.Name) + "\n\n")
	b.WriteString(field("Status", statusLabel(itemStatusStyle, it.Status)))
	b.WriteString(field("Category", it.Category))
	b.WriteString(field("Location", it.Location))
	b.WriteString(field("Quantity", humanize.Comma(int64(it.Quantity))))
	b.WriteString(field("Unit cost", forms.FormatCents(a.cfg.UI.CurrencySymbol, it.PurchaseCostCents)))
	b.WriteString(field("Total value", forms.FormatCents(a.cfg.UI.CurrencySymbol, it.ValueCents())))
	if len(it.Tags) > 0 {
		b.WriteString(field("Tags", strings.Join(it.Tags, ", ")))
	}
	if it.SerialNumber != nil {
		b.WriteString(field("Serial", *it.SerialNumber))
	}
	if it.Notes != nil {
		b.WriteString(field("Notes", *it.Notes))
	}
	b.WriteString(field("Added", it.CreatedAt.Local().Format(a.cfg.UI.DateFormat)))

	b.WriteString("\n" + labelStyle.Render("Job history") + "\n")
	if len(a.detail.history) == 0 {
		b.WriteString(mutedStyle.Render("Never assigned") + "\n")
	}
	for _, h := range a.detail.history {
		line := fmt.Sprintf("  %s  %d × %s", h.AssignedAt.Local().Format(a.cfg.UI.DateFormat), h.Quantity, h.ProjectName)
		if h.Note != "" {
			line += mutedStyle.Render("  " + h.Note)
		}
		b.WriteString(line + "\n")
	}
	if a.detail.confirmDelete {
		b.WriteString("\n" + modalStyle.Render(fmt.Sprintf("Delete %s and its job history?\n[y] Yes  [n] No", it.Name)))
	}
	return strings.TrimRight(b.String(), "\n")
}
