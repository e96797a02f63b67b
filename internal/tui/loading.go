package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func (a *App) enterLoading() tea.Cmd {
	delay := a.cfg.Auth.LoadingDelay
	done := a.run(func(ctx context.Context) tea.Msg {
		if delay > 0 {
			t := time.NewTimer(delay)
			defer t.Stop()
			select {
			case <-ctx.Done():
				return errMsg{ctx.Err()}
			case <-t.C:
			}
		}
		return loadingDoneMsg{}
	})
	return tea.Batch(done, a.spinner.Tick)
}

func (a *App) renderLoading() string {
	greeting := "Setting up your workspace"
	if who := a.currentUser(); who != "" {
		greeting += " for " + who
	}
	return "\n" + a.spinner.View() + " " + greeting + "...\n"
}
