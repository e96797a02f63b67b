package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/inventorly/internal/database/repository"
	"github.com/jask/inventorly/internal/nav"
)

type assignState struct {
	item     *repository.Item
	free     int // units not already out on a job
	projects []repository.Project
	cursor   int
	qty      textinput.Model
	creating bool
	name     textinput.Model
	err      string
}

func newAssignState() assignState {
	qty := textinput.New()
	qty.Prompt = "Quantity: "
	qty.CharLimit = 6
	name := textinput.New()
	name.Prompt = "Project name: "
	name.Placeholder = "Harbor Deck Repair"
	name.CharLimit = 80
	return assignState{qty: qty, name: name}
}

func (a *App) enterAssign(s nav.AssignToJob) tea.Cmd {
	a.assign.item = nil
	a.assign.free = 0
	a.assign.projects = nil
	a.assign.cursor = 0
	a.assign.creating = false
	a.assign.err = ""
	a.assign.name.Reset()
	a.assign.name.Blur()
	a.assign.qty.SetValue("1")
	a.assign.qty.CursorEnd()

	items, jobs, id := a.services.Items, a.services.Jobs, s.ItemID
	load := a.run(func(ctx context.Context) tea.Msg {
		it, err := items.Get(ctx, id)
		if err != nil {
			return errMsg{err}
		}
		free, err := jobs.Available(ctx, id)
		if err != nil {
			return errMsg{err}
		}
		ps, err := jobs.Active(ctx)
		if err != nil {
			return errMsg{err}
		}
		return assignDataMsg{item: it, free: free, projects: ps}
	})
	return tea.Batch(a.assign.qty.Focus(), load)
}

func (a *App) onAssignData(m assignDataMsg) {
	a.assign.item = &m.item
	a.assign.free = m.free
	a.assign.projects = m.projects
	if a.assign.cursor >= len(m.projects) {
		a.assign.cursor = 0
	}
}

func (a *App) handleAssignKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Back):
		return a, a.fire(nav.Back{})
	case key.Matches(m, a.keys.NewProject):
		a.assign.creating = true
		a.assign.qty.Blur()
		return a, a.assign.name.Focus()
	case key.Matches(m, a.keys.Up):
		if a.assign.cursor > 0 {
			a.assign.cursor--
		}
		return a, nil
	case key.Matches(m, a.keys.Down):
		if a.assign.cursor < len(a.assign.projects)-1 {
			a.assign.cursor++
		}
		return a, nil
	case key.Matches(m, a.keys.Submit):
		return a.submitAssign()
	}
	if m.Type == tea.KeyRunes && strings.Trim(string(m.Runes), "0123456789") != "" {
		return a, nil
	}
	var cmd tea.Cmd
	a.assign.qty, cmd = a.assign.qty.Update(m)
	a.assign.err = ""
	return a, cmd
}

func (a *App) submitAssign() (tea.Model, tea.Cmd) {
	if a.busy || a.assign.item == nil {
		return a, nil
	}
	if len(a.assign.projects) == 0 {
		a.assign.err = "No active projects. Press ctrl+n to create one."
		return a, nil
	}
	qty, err := strconv.Atoi(strings.TrimSpace(a.assign.qty.Value()))
	if err != nil || qty < 1 {
		a.assign.err = "Quantity must be a whole number of at least 1"
		return a, nil
	}
	if qty > a.assign.free {
		a.assign.err = fmt.Sprintf("Only %d of %d available", a.assign.free, a.assign.item.Quantity)
		return a, nil
	}
	jobs, it, p := a.services.Jobs, *a.assign.item, a.assign.projects[a.assign.cursor]
	a.busy = true
	a.setStatus("Assigning...")
	return a, a.run(func(ctx context.Context) tea.Msg {
		if _, err := jobs.Assign(ctx, it.ID, p.ID, qty); err != nil {
			return errMsg{err}
		}
		return assignedMsg{item: it.Name, project: p.Name, qty: qty}
	})
}

func (a *App) onAssigned(m assignedMsg) {
	a.setStatus(fmt.Sprintf("Assigned %d × %s to %s", m.qty, m.item, m.project))
}

func (a *App) handleNewProjectKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Back):
		a.assign.creating = false
		a.assign.name.Blur()
		return a, a.assign.qty.Focus()
	case key.Matches(m, a.keys.Submit):
		if a.busy {
			return a, nil
		}
		jobs, name := a.services.Jobs, a.assign.name.Value()
		a.busy = true
		return a, a.run(func(ctx context.Context) tea.Msg {
			p, err := jobs.CreateProject(ctx, name, "")
			if err != nil {
				return errMsg{err}
			}
			return projectCreatedMsg{project: p}
		})
	}
	var cmd tea.Cmd
	a.assign.name, cmd = a.assign.name.Update(m)
	a.assign.err = ""
	return a, cmd
}

func (a *App) onProjectCreated(p repository.Project) {
	a.assign.projects = append(a.assign.projects, p)
	a.assign.cursor = len(a.assign.projects) - 1
	a.assign.creating = false
	a.assign.name.Reset()
	a.assign.name.Blur()
	a.assign.qty.Focus()
	a.setStatus("Created project " + p.Name)
}

func (a *App) renderAssign() string {
	it := a.assign.item
	if it == nil {
		return mutedStyle.Render("Loading projects...")
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Assign "+it.Name) + "\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d of %d available at %s", a.assign.free, it.Quantity, it.Location)) + "\n\n")
	b.WriteString(labelStyle.Render("Active projects") + "\n")
	if len(a.assign.projects) == 0 {
		b.WriteString(mutedStyle.Render("  none") + "\n")
	}
	for i, p := range a.assign.projects {
		marker := " "
		if i == a.assign.cursor {
			marker = cursorStyle.Render("▶")
		}
		line := fmt.Sprintf("%s %s", marker, p.Name)
		if p.Client != "" {
			line += mutedStyle.Render("  " + p.Client)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
	if a.assign.creating {
		b.WriteString(a.assign.name.View() + "\n")
	} else {
		b.WriteString(a.assign.qty.View() + "\n")
	}
	if a.assign.err != "" {
		b.WriteString(errorStyle.Render("  "+a.assign.err) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
