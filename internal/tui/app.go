package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"github.com/jask/inventorly/internal/config"
	"github.com/jask/inventorly/internal/database/repository"
	"github.com/jask/inventorly/internal/forms"
	"github.com/jask/inventorly/internal/nav"
	"github.com/jask/inventorly/internal/service"
)

const defaultWidth = 80

// Services are the backends the screens call.
type Services struct {
	Auth        *service.AuthService
	Items       *service.ItemService
	Jobs        *service.JobService
	Reports     *service.ReportService
	Bulk        *service.BulkService
	Maintenance *service.MaintenanceService // nil unless the sqlite store is in use
}

// App is the application shell. It owns the navigation machine and renders
// the one screen that is current.
type App struct {
	ctx      context.Context
	cfg      config.Config
	services Services
	log      *zap.Logger
	keys     keyMap
	help     help.Model

	machine   *nav.Machine
	screenCtx context.Context
	cancel    context.CancelFunc
	seq       int
	busy      bool

	width     int
	status    string
	statusErr bool

	// reg is the pending registration typed into the auth form. It is kept
	// for the whole session and shown as the current user.
	reg  forms.Registration
	user *repository.User

	auth         authState
	verify       verifyState
	spinner      spinner.Model
	dash         dashboardState
	itemForm     itemFormState
	bulk         bulkState
	library      libraryState
	detail       detailState
	assign       assignState
	reports      reportsState
	confirmReset bool
}

func New(ctx context.Context, cfg config.Config, services Services, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		ctx:      ctx,
		cfg:      cfg,
		services: services,
		log:      log,
		keys:     defaultKeys(),
		help:     help.New(),
		machine:  nav.NewMachine(),
		width:    defaultWidth,
		auth:     newAuthState(),
		verify:   newVerifyState(cfg.Auth.ResendSeconds),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(cursorStyle)),
		itemForm: newItemFormState(),
		bulk:     newBulkState(),
		library:  newLibraryState(),
		assign:   newAssignState(),
	}
	a.enter(a.machine.Current())
	return a
}

func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// run starts fn on the current screen's context. Its result is delivered only
// while that screen is still current.
func (a *App) run(fn func(ctx context.Context) tea.Msg) tea.Cmd {
	ctx, seq := a.screenCtx, a.seq
	return func() tea.Msg {
		return screenMsg{seq: seq, msg: fn(ctx)}
	}
}

// fire applies a navigation event and sets up the screen it lands on.
func (a *App) fire(ev nav.Event) tea.Cmd {
	from := a.machine.Current()
	next, err := a.machine.Fire(ev)
	if err != nil {
		a.setErr(err)
		return nil
	}
	a.log.Debug("transition",
		zap.Stringer("from", from.Kind()),
		zap.Stringer("to", next.Kind()),
		zap.Int("history", a.machine.Depth()))
	return a.enter(next)
}

// enter cancels whatever the previous screen had in flight and initializes s.
func (a *App) enter(s nav.Screen) tea.Cmd {
	if a.cancel != nil {
		a.cancel()
	}
	a.screenCtx, a.cancel = context.WithCancel(a.ctx)
	a.seq++
	a.busy = false
	a.confirmReset = false

	switch s := s.(type) {
	case nav.Auth:
		return a.enterAuth()
	case nav.Verify:
		return a.enterVerify(s)
	case nav.Loading:
		return a.enterLoading()
	case nav.Dashboard:
		return a.enterDashboard()
	case nav.AddItem:
		return a.enterItemForm()
	case nav.BulkUpload:
		return a.enterBulk()
	case nav.Library:
		return a.enterLibrary()
	case nav.ItemDetail:
		return a.enterDetail(s)
	case nav.AssignToJob:
		return a.enterAssign(s)
	case nav.Reports:
		return a.enterReports(s)
	}
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.help.Width = m.Width
		a.library.table.SetWidth(min(m.Width, 100))
	case tea.KeyMsg:
		return a.handleKey(m)
	case screenMsg:
		if m.seq != a.seq {
			return a, nil
		}
		if _, tick := m.msg.(resendTickMsg); !tick {
			a.busy = false
		}
		return a.handleResult(m.msg)
	case spinner.TickMsg:
		if a.machine.Current().Kind() != nav.KindLoading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(m)
		return a, cmd
	case statusMsg:
		a.setStatus(string(m))
	case errMsg:
		a.applyError(m.error)
	}
	return a, nil
}

func (a *App) handleResult(msg any) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case errMsg:
		a.applyError(m.error)
	case statusMsg:
		a.setStatus(string(m))
	case codeSentMsg:
		return a, a.fire(nav.SubmitAuth{Phone: m.phone})
	case codeResentMsg:
		a.setStatus("A new code is on its way")
	case resendTickMsg:
		return a, a.onResendTick(m)
	case verifiedMsg:
		a.user = m.user
		return a, a.fire(nav.ConfirmCode{Code: a.verify.input.Value()})
	case loadingDoneMsg:
		return a, a.fire(nav.LoadingDone{})
	case summaryMsg:
		a.onSummary(service.Summary(m))
	case itemSavedMsg:
		a.onItemSaved(m)
		return a, a.fire(nav.Save{})
	case templateWrittenMsg:
		a.setStatus("Template written to " + m.path)
	case previewMsg:
		a.onPreview(service.Preview(m))
	case committedMsg:
		a.onCommitted(service.CommitResult(m))
		return a, a.fire(nav.Save{})
	case libraryMsg:
		a.library.items = []repository.Item(m)
		a.refreshLibrary()
	case detailMsg:
		a.detail.item = &m.item
		a.detail.history = m.history
	case statusChangedMsg:
		a.detail.item = &m.item
		a.setStatus(m.item.Name + " is now " + m.item.Status)
	case deletedMsg:
		a.setStatus("Deleted " + m.name)
		return a, a.fire(nav.Navigate{Target: nav.KindLibrary})
	case assignDataMsg:
		a.onAssignData(m)
	case projectCreatedMsg:
		a.onProjectCreated(m.project)
	case assignedMsg:
		a.onAssigned(m)
		return a, a.fire(nav.Back{})
	case reportMsg:
		r := service.Report(m)
		a.reports.report = &r
	case itemReportMsg:
		r := service.ItemReport(m)
		a.reports.item = &r
	case exportedMsg:
		a.setStatus("Report exported to " + m.path)
	case resetDoneMsg:
		a.setStatus("Demo data restored")
		return a, a.loadSummary()
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(m, a.keys.ForceQuit) {
		a.shutdown()
		return a, tea.Quit
	}
	if a.confirmReset {
		return a.handleResetKey(m)
	}

	// screens that take free text own every key
	switch a.machine.Current().Kind() {
	case nav.KindAuth:
		return a.handleAuthKey(m)
	case nav.KindVerify:
		return a.handleVerifyKey(m)
	case nav.KindAddItem:
		return a.handleItemFormKey(m)
	case nav.KindBulkUpload:
		return a.handleBulkKey(m)
	case nav.KindLibrary:
		if a.library.searching {
			return a.handleSearchKey(m)
		}
	case nav.KindAssignToJob:
		if a.assign.creating {
			return a.handleNewProjectKey(m)
		}
	case nav.KindItemDetail:
		if a.detail.confirmDelete {
			return a.handleDeleteConfirmKey(m)
		}
	}

	if key.Matches(m, a.keys.Quit) {
		a.shutdown()
		return a, tea.Quit
	}
	if a.machine.Current().Kind() == nav.KindLoading {
		return a, nil
	}
	if target, ok := a.rootTarget(m); ok {
		if target == nav.KindAddItem && a.machine.Current().Kind() == nav.KindDashboard {
			return a, a.fire(nav.RequestAddItem{})
		}
		return a, a.fire(nav.Navigate{Target: target})
	}

	switch a.machine.Current().Kind() {
	case nav.KindDashboard:
		return a.handleDashboardKey(m)
	case nav.KindLibrary:
		return a.handleLibraryKey(m)
	case nav.KindItemDetail:
		return a.handleDetailKey(m)
	case nav.KindAssignToJob:
		return a.handleAssignKey(m)
	case nav.KindReports:
		return a.handleReportsKey(m)
	}
	return a, nil
}

func (a *App) rootTarget(m tea.KeyMsg) (nav.Kind, bool) {
	switch {
	case key.Matches(m, a.keys.Dashboard):
		return nav.KindDashboard, true
	case key.Matches(m, a.keys.Library):
		return nav.KindLibrary, true
	case key.Matches(m, a.keys.Reports):
		return nav.KindReports, true
	case key.Matches(m, a.keys.AddItem):
		return nav.KindAddItem, true
	}
	return 0, false
}

func (a *App) handleResetKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Yes):
		a.confirmReset = false
		maint := a.services.Maintenance
		a.busy = true
		a.setStatus("Resetting...")
		return a, a.run(func(ctx context.Context) tea.Msg {
			if err := maint.Reset(ctx); err != nil {
				return errMsg{err}
			}
			return resetDoneMsg{}
		})
	case key.Matches(m, a.keys.No):
		a.confirmReset = false
	}
	return a, nil
}

func (a *App) shutdown() {
	if a.cancel != nil {
		a.cancel()
	}
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusErr = false
}

func (a *App) setErr(err error) {
	a.status = "error: " + err.Error()
	a.statusErr = true
	a.log.Warn("screen error", zap.Stringer("screen", a.machine.Current().Kind()), zap.Error(err))
}

// applyError routes field errors to the form on screen and everything else to
// the status line. Cancellation is the screen going away, not a failure.
func (a *App) applyError(err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		switch a.machine.Current().Kind() {
		case nav.KindAuth:
			a.auth.errs = verr.Fields
			return
		case nav.KindAddItem:
			a.itemForm.errs = verr.Fields
			return
		case nav.KindVerify:
			a.verify.err = verr.Fields.Get("code")
			return
		case nav.KindAssignToJob:
			a.assign.err = verr.Fields.Get("project")
			return
		}
	}
	if a.machine.Current().Kind() == nav.KindBulkUpload {
		a.bulk.session.Reset()
	}
	if a.machine.Current().Kind() == nav.KindAssignToJob {
		a.assign.err = err.Error()
	}
	a.setErr(err)
}

func (a *App) View() string {
	var body string
	switch s := a.machine.Current().(type) {
	case nav.Auth:
		body = a.renderAuth()
	case nav.Verify:
		body = a.renderVerify(s)
	case nav.Loading:
		body = a.renderLoading()
	case nav.Dashboard:
		body = a.renderDashboard()
	case nav.AddItem:
		body = a.renderItemForm()
	case nav.BulkUpload:
		body = a.renderBulk()
	case nav.Library:
		body = a.renderLibrary()
	case nav.ItemDetail:
		body = a.renderDetail()
	case nav.AssignToJob:
		body = a.renderAssign()
	case nav.Reports:
		body = a.renderReports(s)
	}
	if a.confirmReset {
		body += "\n\n" + modalStyle.Render(titleStyle.Render("Reset demo data?")+"\nEvery item, project and account is deleted and the demo data reloaded.\n[y] Yes  [n] No")
	}
	return strings.Join([]string{a.renderHeader(), body, "", a.renderStatus(), a.renderFooter()}, "\n")
}

func (a *App) renderHeader() string {
	cur := a.machine.Current()
	title := headerStyle.Render("Inventorly")
	if !nav.SignedIn(cur) {
		return title
	}
	left := title + mutedStyle.Render("  ·  "+screenTitle(cur.Kind()))
	right := userStyle.Render(a.currentUser())
	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", gap) + right
}

// currentUser prefers the stored account and falls back to what was typed.
func (a *App) currentUser() string {
	name, business := strings.TrimSpace(a.reg.FullName), strings.TrimSpace(a.reg.BusinessName)
	if a.user != nil {
		name, business = a.user.FullName, a.user.BusinessName
	}
	switch {
	case name != "" && business != "":
		return name + " · " + business
	case name != "":
		return name
	case business != "":
		return business
	}
	return a.reg.PhoneNumber
}

func (a *App) renderStatus() string {
	msg := strings.TrimSpace(a.status)
	if msg == "" {
		msg = "Ready"
	}
	width := max(1, a.width)
	line := ansi.Truncate(strings.ReplaceAll(msg, "\n", " "), width, "…")
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	if a.statusErr {
		return statusErrBarStyle.Render(line)
	}
	return statusBarStyle.Render(line)
}

func (a *App) renderFooter() string {
	return a.help.ShortHelpView(a.bindings())
}

// bindings lists the keys shown in the footer for the current screen.
func (a *App) bindings() []key.Binding {
	k := a.keys
	if a.confirmReset {
		return []key.Binding{k.Yes, k.No}
	}
	switch a.machine.Current().Kind() {
	case nav.KindAuth:
		return []key.Binding{k.Submit, k.Next, k.ToggleMode, k.ForceQuit}
	case nav.KindVerify:
		return []key.Binding{k.Submit, k.Resend, k.Back, k.ForceQuit}
	case nav.KindLoading:
		return []key.Binding{k.Quit}
	case nav.KindDashboard:
		out := []key.Binding{k.Up, k.Down, withHelp(k.Submit, "open item")}
		out = append(out, k.root()...)
		if a.services.Maintenance != nil {
			out = append(out, k.Reset)
		}
		return append(out, k.Quit)
	case nav.KindAddItem:
		return []key.Binding{k.Next, withHelp(k.Submit, "next/save"), k.Save, k.Bulk, k.Back}
	case nav.KindBulkUpload:
		if a.bulk.session.Stage() == service.StagePreview {
			return []key.Binding{withHelp(k.Submit, "import"), withHelp(k.Back, "choose another file")}
		}
		return []key.Binding{withHelp(k.Submit, "preview"), k.Template, k.Back}
	case nav.KindLibrary:
		if a.library.searching {
			return []key.Binding{withHelp(k.Submit, "done"), withHelp(k.Back, "done")}
		}
		out := []key.Binding{k.Up, k.Down, withHelp(k.Submit, "open"), k.Filter, k.Search, k.Back}
		return append(append(out, k.root()...), k.Quit)
	case nav.KindItemDetail:
		if a.detail.confirmDelete {
			return []key.Binding{k.Yes, k.No}
		}
		out := []key.Binding{k.Assign, k.Report, k.Status, k.Delete, k.Back}
		return append(append(out, k.root()...), k.Quit)
	case nav.KindAssignToJob:
		if a.assign.creating {
			return []key.Binding{withHelp(k.Submit, "create"), withHelp(k.Back, "cancel")}
		}
		return []key.Binding{withHelp(k.Up, "project"), withHelp(k.Submit, "assign"), k.NewProject, k.Back}
	case nav.KindReports:
		out := []key.Binding{k.Export, k.Back}
		return append(append(out, k.root()...), k.Quit)
	}
	return nil
}

func withHelp(b key.Binding, desc string) key.Binding {
	h := b.Help()
	b.SetHelp(h.Key, desc)
	return b
}

func screenTitle(k nav.Kind) string {
	switch k {
	case nav.KindDashboard:
		return "Dashboard"
	case nav.KindAddItem:
		return "Add item"
	case nav.KindBulkUpload:
		return "Bulk upload"
	case nav.KindLibrary:
		return "Library"
	case nav.KindItemDetail:
		return "Item"
	case nav.KindAssignToJob:
		return "Assign to job"
	case nav.KindReports:
		return "Reports"
	}
	return k.String()
}
