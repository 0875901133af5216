package iostreams

import "github.com/charmbracelet/lipgloss"

var (
	colorSuccess = lipgloss.Color("#04B575")
	colorWarning = lipgloss.Color("#FFCC00")
	colorError   = lipgloss.Color("#FF5F87")
	colorInfo    = lipgloss.Color("#00B7EB")
	colorMuted   = lipgloss.Color("#626262")
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	infoStyle    = lipgloss.NewStyle().Foreground(colorInfo)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	boldStyle    = lipgloss.NewStyle().Bold(true)
)
