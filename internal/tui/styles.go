package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mlemay/eventfind/internal/ui"
)

// Style variables for the interactive search screen.
// Initialized from the ui theme system via initTUIStyles().
var (
	headerStyle     lipgloss.Style
	titleStyle      lipgloss.Style
	clockStyle      lipgloss.Style
	labelStyle      lipgloss.Style
	panelStyle      lipgloss.Style
	hintStyle       lipgloss.Style
	searchingStyle  lipgloss.Style
	resultsStyle    lipgloss.Style
	noResultsStyle  lipgloss.Style
	errorStyle      lipgloss.Style
	footerKeyStyle  lipgloss.Style
	footerDescStyle lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all TUI styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	clockStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	labelStyle = lipgloss.NewStyle().
		Foreground(t.Info)

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)

	hintStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	searchingStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	resultsStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	noResultsStyle = lipgloss.NewStyle().
		Foreground(t.Warning)

	errorStyle = lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true)

	footerKeyStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	footerDescStyle = lipgloss.NewStyle().
		Foreground(t.Dim)
}
