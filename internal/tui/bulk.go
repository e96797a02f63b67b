package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/inventorly/internal/nav"
	"github.com/jask/inventorly/internal/service"
)

type bulkState struct {
	session service.UploadSession
	path    textinput.Model
}

func newBulkState() bulkState {
	in := textinput.New()
	in.Prompt = "File: "
	in.Placeholder = "inventory.csv"
	in.CharLimit = 256
	return bulkState{path: in}
}

func (a *App) enterBulk() tea.Cmd {
	a.bulk.session.Reset()
	a.bulk.path.SetValue(a.cfg.Import.TemplatePath)
	a.bulk.path.CursorEnd()
	return a.bulk.path.Focus()
}

func (a *App) handleBulkKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.bulk.session.Stage() {
	case service.StagePreview:
		switch {
		case key.Matches(m, a.keys.Back):
			a.bulk.session.Reset()
			return a, a.bulk.path.Focus()
		case key.Matches(m, a.keys.Submit):
			return a.commitUpload()
		}
		return a, nil
	case service.StageProcessing:
		return a, nil
	}

	switch {
	case key.Matches(m, a.keys.Back):
		return a, a.fire(nav.Back{})
	case key.Matches(m, a.keys.Template):
		return a.writeTemplate()
	case key.Matches(m, a.keys.Submit):
		return a.startPreview()
	}
	if a.bulk.session.Parsing() {
		return a, nil
	}
	var cmd tea.Cmd
	a.bulk.path, cmd = a.bulk.path.Update(m)
	return a, cmd
}

// writeTemplate always targets the configured template path; the File input
// may name a spreadsheet the user is about to import.
func (a *App) writeTemplate() (tea.Model, tea.Cmd) {
	path := a.cfg.Import.TemplatePath
	return a, a.run(func(context.Context) tea.Msg {
		f, err := os.Create(path)
		if err != nil {
			return errMsg{fmt.Errorf("write template: %w", err)}
		}
		if err := service.WriteTemplate(f); err != nil {
			_ = f.Close()
			return errMsg{err}
		}
		if err := f.Close(); err != nil {
			return errMsg{fmt.Errorf("write template: %w", err)}
		}
		return templateWrittenMsg{path: path}
	})
}

func (a *App) startPreview() (tea.Model, tea.Cmd) {
	path := strings.TrimSpace(a.bulk.path.Value())
	if path == "" {
		a.setStatus("Enter the path of a CSV file")
		return a, nil
	}
	if err := a.bulk.session.Select(); err != nil {
		return a, nil
	}
	bulk := a.services.Bulk
	a.setStatus("Reading " + filepath.Base(path) + "...")
	return a, a.run(func(ctx context.Context) tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return errMsg{fmt.Errorf("open %s: %w", path, err)}
		}
		defer f.Close()
		p, err := bulk.Preview(ctx, filepath.Base(path), f)
		if err != nil {
			return errMsg{err}
		}
		return previewMsg(p)
	})
}

func (a *App) onPreview(p service.Preview) {
	if err := a.bulk.session.Parsed(p); err != nil {
		return
	}
	a.bulk.path.Blur()
	c := p.Counts()
	a.setStatus(fmt.Sprintf("%s: %d rows ready to review", p.FileName, c[service.RowValid]+c[service.RowWarning]))
}

func (a *App) commitUpload() (tea.Model, tea.Cmd) {
	rows, err := a.bulk.session.Commit()
	if err != nil {
		return a, nil
	}
	bulk := a.services.Bulk
	a.busy = true
	return a, a.run(func(ctx context.Context) tea.Msg {
		res, err := bulk.Commit(ctx, rows)
		if err != nil {
			return errMsg{err}
		}
		return committedMsg(res)
	})
}

func (a *App) onCommitted(res service.CommitResult) {
	a.setStatus(fmt.Sprintf("Imported %d items, skipped %d", res.Imported, res.Skipped))
}

func (a *App) renderBulk() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Bulk upload") + "\n")
	s := &a.bulk.session
	switch s.Stage() {
	case service.StageUpload:
		b.WriteString(mutedStyle.Render("Columns: "+strings.Join(service.TemplateHeader, ", ")) + "\n\n")
		b.WriteString(a.bulk.path.View() + "\n")
		if s.Parsing() {
			b.WriteString("\n" + mutedStyle.Render("Parsing file..."))
		}
	case service.StagePreview:
		p := s.Preview()
		c := p.Counts()
		b.WriteString(fmt.Sprintf("%s  %s  %s  %s\n\n",
			labelStyle.Render(p.FileName),
			statusLabel(rowStatusStyle, "valid")+fmt.Sprintf(" %d", c[service.RowValid]),
			statusLabel(rowStatusStyle, "warning")+fmt.Sprintf(" %d", c[service.RowWarning]),
			statusLabel(rowStatusStyle, "error")+fmt.Sprintf(" %d", c[service.RowError])))
		for _, r := range p.Rows {
			name := r.Input.Name
			if strings.TrimSpace(name) == "" {
				name = "(no name)"
			}
			b.WriteString(fmt.Sprintf("%-8s line %-3d %-30s %-18s qty %-4s %s\n",
				statusLabel(rowStatusStyle, string(r.Status)), r.Line, name, r.Input.Category, r.Input.Quantity, r.Input.PurchaseCost))
			for _, prob := range r.Problems {
				b.WriteString(mutedStyle.Render("           - "+prob) + "\n")
			}
		}
		b.WriteString("\n" + mutedStyle.Render("Rows with errors are skipped."))
	case service.StageProcessing:
		b.WriteString(mutedStyle.Render("Importing items..."))
	}
	return strings.TrimRight(b.String(), "\n")
}
