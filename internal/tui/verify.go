package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/inventorly/internal/forms"
	"github.com/jask/inventorly/internal/nav"
)

type verifyState struct {
	phone string
	input textinput.Model
	err   string
	timer forms.ResendTimer
	// gen identifies the running countdown; ticks from an older one are ignored
	gen int
}

func newVerifyState(resendSeconds int) verifyState {
	in := textinput.New()
	in.Prompt = "Code: "
	in.Placeholder = strings.Repeat("0", forms.CodeLength)
	in.CharLimit = forms.CodeLength
	return verifyState{input: in, timer: forms.NewResendTimer(resendSeconds)}
}

func (a *App) enterVerify(s nav.Verify) tea.Cmd {
	a.verify.phone = s.Phone
	a.verify.input.Reset()
	a.verify.err = ""
	a.verify.timer.Start()
	a.verify.gen++
	return tea.Batch(a.verify.input.Focus(), a.resendTick())
}

func (a *App) resendTick() tea.Cmd {
	seq, gen := a.seq, a.verify.gen
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return screenMsg{seq: seq, msg: resendTickMsg{gen: gen}}
	})
}

func (a *App) onResendTick(m resendTickMsg) tea.Cmd {
	if m.gen != a.verify.gen {
		return nil
	}
	if a.verify.timer.Tick() {
		return a.resendTick()
	}
	return nil
}

func (a *App) handleVerifyKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Back):
		return a, a.fire(nav.Back{})
	case key.Matches(m, a.keys.Resend):
		return a.resendCode()
	case key.Matches(m, a.keys.Submit):
		return a.submitCode()
	}
	if a.busy {
		return a, nil
	}
	if m.Type == tea.KeyRunes && strings.Trim(string(m.Runes), "0123456789") != "" {
		return a, nil
	}
	before := a.verify.input.Value()
	var cmd tea.Cmd
	a.verify.input, cmd = a.verify.input.Update(m)
	if a.verify.input.Value() != before {
		a.verify.err = ""
	}
	return a, cmd
}

func (a *App) resendCode() (tea.Model, tea.Cmd) {
	if err := a.verify.timer.Resend(); err != nil {
		a.setStatus(fmt.Sprintf("You can request a new code in %ds", a.verify.timer.Remaining()))
		return a, nil
	}
	a.verify.gen++
	phone, auth := a.verify.phone, a.services.Auth
	send := a.run(func(ctx context.Context) tea.Msg {
		if err := auth.SendCode(ctx, phone); err != nil {
			return errMsg{err}
		}
		return codeResentMsg{}
	})
	return a, tea.Batch(a.resendTick(), send)
}

func (a *App) submitCode() (tea.Model, tea.Cmd) {
	if a.busy {
		return a, nil
	}
	code := a.verify.input.Value()
	if !forms.ValidCode(code) {
		a.verify.err = fmt.Sprintf("Enter the %d-digit code we sent you", forms.CodeLength)
		return a, nil
	}
	mode, reg, auth := a.auth.mode, a.reg, a.services.Auth
	a.busy = true
	a.setStatus("Verifying...")
	return a, a.run(func(ctx context.Context) tea.Msg {
		u, err := auth.Complete(ctx, mode, reg, code)
		if err != nil {
			return errMsg{err}
		}
		return verifiedMsg{user: u}
	})
}

func (a *App) renderVerify(s nav.Verify) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Verify your phone") + "\n")
	b.WriteString(mutedStyle.Render("We sent a code to "+forms.FormatPhone(s.Phone)) + "\n\n")
	b.WriteString(a.verify.input.View() + "\n")
	if a.verify.err != "" {
		b.WriteString(errorStyle.Render("  "+a.verify.err) + "\n")
	}
	b.WriteString("\n")
	if a.verify.timer.CanResend() {
		b.WriteString(labelStyle.Render("Didn't get it? ctrl+r to resend"))
	} else {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Resend code in %ds", a.verify.timer.Remaining())))
	}
	return b.String()
}
