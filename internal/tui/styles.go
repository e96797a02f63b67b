package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText     lipgloss.Color = "#cdd6f4"
	colorMuted    lipgloss.Color = "#a6adc8"
	colorBorder   lipgloss.Color = "#585b70"
	colorAccent   lipgloss.Color = "#89b4fa"
	colorSuccess  lipgloss.Color = "#a6e3a1"
	colorWarning  lipgloss.Color = "#f9e2af"
	colorError    lipgloss.Color = "#f38ba8"
	colorSurface0 lipgloss.Color = "#313244"
	colorMantle   lipgloss.Color = "#181825"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	headerStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	userStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	labelStyle  = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(colorError)
	cursorStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	statusBarStyle    = lipgloss.NewStyle().Foreground(colorSuccess).Background(colorSurface0)
	statusErrBarStyle = lipgloss.NewStyle().Foreground(colorError).Background(colorSurface0)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorError).
			Padding(0, 1)

	rowStatusStyle = map[string]lipgloss.Style{
		"valid":   lipgloss.NewStyle().Foreground(colorSuccess),
		"warning": lipgloss.NewStyle().Foreground(colorWarning),
		"error":   lipgloss.NewStyle().Foreground(colorError),
	}
	itemStatusStyle = map[string]lipgloss.Style{
		"available":   lipgloss.NewStyle().Foreground(colorSuccess),
		"assigned":    lipgloss.NewStyle().Foreground(colorAccent),
		"maintenance": lipgloss.NewStyle().Foreground(colorWarning),
		"retired":     lipgloss.NewStyle().Foreground(colorMuted),
	}
)

func statusLabel(styles map[string]lipgloss.Style, s string) string {
	if st, ok := styles[s]; ok {
		return st.Render(s)
	}
	return s
}
