package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/jask/inventorly/internal/forms"
	"github.com/jask/inventorly/internal/nav"
	"github.com/jask/inventorly/internal/service"
)

type reportsState struct {
	report *service.Report
	item   *service.ItemReport
}

func (a *App) enterReports(s nav.Reports) tea.Cmd {
	a.reports = reportsState{}
	reports, id := a.services.Reports, s.ItemID
	return a.run(func(ctx context.Context) tea.Msg {
		if id != 0 {
			r, err := reports.ForItem(ctx, id)
			if err != nil {
				return errMsg{err}
			}
			return itemReportMsg(r)
		}
		r, err := reports.Build(ctx)
		if err != nil {
			return errMsg{err}
		}
		return reportMsg(r)
	})
}

func (a *App) handleReportsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Back):
		return a, a.fire(nav.Back{})
	case key.Matches(m, a.keys.Export):
		var (
			report any
			prefix string
		)
		switch {
		case a.reports.item != nil:
			report, prefix = *a.reports.item, fmt.Sprintf("item-%d", a.reports.item.ItemID)
		case a.reports.report != nil:
			report, prefix = *a.reports.report, "inventory"
		default:
			return a, nil
		}
		reports, dir := a.services.Reports, a.cfg.Reports.ExportDir
		return a, a.run(func(context.Context) tea.Msg {
			path, err := reports.ExportFile(dir, prefix, report)
			if err != nil {
				return errMsg{err}
			}
			return exportedMsg{path: path}
		})
	}
	return a, nil
}

func (a *App) renderReports(s nav.Reports) string {
	if s.ItemID != 0 {
		if a.reports.item == nil {
			return mutedStyle.Render("Building report...")
		}
		return a.renderItemReport(*a.reports.item)
	}
	if a.reports.report == nil {
		return mutedStyle.Render("Building report...")
	}
	r := *a.reports.report
	money := func(c int64) string { return forms.FormatCents(a.cfg.UI.CurrencySymbol, c) }

	var b strings.Builder
	b.WriteString(titleStyle.Render("Inventory report") + "\n")
	b.WriteString(fmt.Sprintf("%s items  ·  %s units  ·  %s\n\n",
		humanize.Comma(int64(r.TotalItems)), humanize.Comma(int64(r.TotalUnits)), money(r.ValueCents)))

	width := max(20, min(a.width, 100))
	b.WriteString(renderBars("Items by status", r.ByStatus, width, func(x service.Bucket) (float64, string) {
		return float64(x.Items), humanize.Comma(int64(x.Items))
	}) + "\n\n")
	b.WriteString(renderBars("Value by category", r.ByCategory, width, func(x service.Bucket) (float64, string) {
		return float64(x.ValueCents), money(x.ValueCents)
	}) + "\n\n")
	b.WriteString(renderBars("Units by location", r.ByLocation, width, func(x service.Bucket) (float64, string) {
		return float64(x.Units), humanize.Comma(int64(x.Units))
	}) + "\n\n")

	b.WriteString(labelStyle.Render("Active jobs") + "\n")
	if len(r.ActiveJobs) == 0 {
		b.WriteString(mutedStyle.Render("  none"))
	}
	for _, j := range r.ActiveJobs {
		b.WriteString("  " + j + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) renderItemReport(r service.ItemReport) string {
	money := func(c int64) string { return forms.FormatCents(a.cfg.UI.CurrencySymbol, c) }
	var b strings.Builder
	b.WriteString(titleStyle.Render("Report: "+r.Name) + "\n")
	b.WriteString(fmt.Sprintf("%s · %s · %s\n\n", r.Category, r.Location, statusLabel(itemStatusStyle, r.Status)))
	b.WriteString(fmt.Sprintf("Units on record   %d\n", r.Quantity))
	b.WriteString(fmt.Sprintf("Units assigned    %d\n", r.Assigned))
	b.WriteString(fmt.Sprintf("Total value       %s\n\n", money(r.ValueCents)))
	b.WriteString(labelStyle.Render("Assignments") + "\n")
	if len(r.History) == 0 {
		b.WriteString(mutedStyle.Render("  never assigned"))
	}
	for _, h := range r.History {
		b.WriteString(fmt.Sprintf("  %s  %d × %s\n", h.AssignedAt.Local().Format(a.cfg.UI.DateFormat), h.Quantity, h.ProjectName))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderBars draws one horizontal bar per bucket, scaled to the largest value.
func renderBars(title string, data []service.Bucket, width int, value func(service.Bucket) (float64, string)) string {
	lines := []string{labelStyle.Render(title)}
	if len(data) == 0 {
		return lines[0] + "\n(no data)"
	}
	maxV := 0.0
	for _, d := range data {
		if v, _ := value(d); v > maxV {
			maxV = v
		}
	}
	if maxV <= 0 {
		maxV = 1
	}
	const labelW, valueW = 18, 12
	barW := max(1, width-labelW-valueW-2)
	for _, d := range data {
		v, text := value(d)
		w := int((v / maxV) * float64(barW))
		if v > 0 && w < 1 {
			w = 1
		}
		label := ansi.Truncate(d.Label, labelW, "…")
		lines = append(lines, fmt.Sprintf("%-*s %s %s", labelW, label,
			cursorStyle.Render(strings.Repeat("█", w))+strings.Repeat(" ", barW-w), text))
	}
	return strings.Join(lines, "\n")
}
