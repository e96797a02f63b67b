package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/inventorly/internal/forms"
)

const (
	authFullName = iota
	authPhone
	authBusiness
)

var authFieldKeys = [...]string{
	authFullName: forms.FieldFullName,
	authPhone:    forms.FieldPhoneNumber,
	authBusiness: forms.FieldBusinessName,
}

type authState struct {
	mode   forms.Mode
	inputs []textinput.Model
	focus  int
	errs   forms.Errors
}

func newAuthState() authState {
	specs := []struct{ label, placeholder string }{
		authFullName: {"Full name", "Jane Smith"},
		authPhone:    {"Phone number", "(555) 123-4567"},
		authBusiness: {"Business name", "Smith Contracting"},
	}
	inputs := make([]textinput.Model, len(specs))
	for i, s := range specs {
		in := textinput.New()
		in.Prompt = s.label + ": "
		in.Placeholder = s.placeholder
		in.CharLimit = 64
		inputs[i] = in
	}
	// room for a pasted "+1 (555) 123-4567"; the value is reformatted to 14 runes after every key
	inputs[authPhone].CharLimit = 32
	return authState{inputs: inputs, errs: forms.Errors{}}
}

// fields are the inputs shown for the current mode, in focus order.
func (s *authState) fields() []int {
	if s.mode == forms.ModeSignin {
		return []int{authPhone}
	}
	return []int{authFullName, authPhone, authBusiness}
}

func (s *authState) setFocus(field int) tea.Cmd {
	for i := range s.inputs {
		s.inputs[i].Blur()
	}
	s.focus = field
	return s.inputs[field].Focus()
}

func (s *authState) move(dir int) tea.Cmd {
	fields := s.fields()
	pos := 0
	for i, f := range fields {
		if f == s.focus {
			pos = i
		}
	}
	pos = (pos + dir + len(fields)) % len(fields)
	return s.setFocus(fields[pos])
}

func (a *App) enterAuth() tea.Cmd {
	a.auth.errs = forms.Errors{}
	return a.auth.setFocus(a.auth.fields()[0])
}

func (a *App) handleAuthKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.ToggleMode):
		a.auth.mode = a.auth.mode.Toggle()
		a.auth.errs = forms.Errors{}
		return a, a.auth.setFocus(a.auth.fields()[0])
	case key.Matches(m, a.keys.Submit):
		return a.submitAuth()
	case key.Matches(m, a.keys.Next):
		return a, a.auth.move(1)
	case key.Matches(m, a.keys.Prev):
		return a, a.auth.move(-1)
	}
	if a.busy {
		return a, nil
	}

	f := a.auth.focus
	before := a.auth.inputs[f].Value()
	var cmd tea.Cmd
	a.auth.inputs[f], cmd = a.auth.inputs[f].Update(m)
	if f == authPhone {
		raw := a.auth.inputs[f].Value()
		if m.Paste || len(m.Runes) > 1 {
			raw = forms.TrimCountryCode(raw)
		}
		a.auth.inputs[f].SetValue(forms.FormatPhone(raw))
		a.auth.inputs[f].CursorEnd()
	}
	if a.auth.inputs[f].Value() != before {
		a.auth.errs.Clear(authFieldKeys[f])
		a.syncRegistration()
	}
	return a, cmd
}

func (a *App) syncRegistration() {
	a.reg = forms.Registration{
		FullName:     a.auth.inputs[authFullName].Value(),
		PhoneNumber:  a.auth.inputs[authPhone].Value(),
		BusinessName: a.auth.inputs[authBusiness].Value(),
	}
}

func (a *App) submitAuth() (tea.Model, tea.Cmd) {
	if a.busy {
		return a, nil
	}
	a.auth.errs = a.reg.Validate(a.auth.mode)
	if a.auth.errs.Any() {
		return a, nil
	}
	phone := a.reg.Phone()
	auth := a.services.Auth
	a.busy = true
	a.setStatus("Sending a code to " + a.reg.PhoneNumber + "...")
	return a, a.run(func(ctx context.Context) tea.Msg {
		if err := auth.SendCode(ctx, phone); err != nil {
			return errMsg{err}
		}
		return codeSentMsg{phone: phone}
	})
}

func (a *App) renderAuth() string {
	var b strings.Builder
	if a.auth.mode == forms.ModeSignin {
		b.WriteString(titleStyle.Render("Welcome back") + "\n")
		b.WriteString(mutedStyle.Render("Sign in with the phone number on your account.") + "\n\n")
	} else {
		b.WriteString(titleStyle.Render("Create your account") + "\n")
		b.WriteString(mutedStyle.Render("Track tools and equipment across every job.") + "\n\n")
	}
	for _, f := range a.auth.fields() {
		b.WriteString(a.auth.inputs[f].View() + "\n")
		if msg := a.auth.errs.Get(authFieldKeys[f]); msg != "" {
			b.WriteString(errorStyle.Render("  "+msg) + "\n")
		}
	}
	b.WriteString("\n")
	if a.auth.mode == forms.ModeSignin {
		b.WriteString(mutedStyle.Render("New to Inventorly? ctrl+t to create an account"))
	} else {
		b.WriteString(mutedStyle.Render("Already have an account? ctrl+t to sign in"))
	}
	return b.String()
}
