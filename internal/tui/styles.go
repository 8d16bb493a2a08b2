package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/digitcalc/internal/ui"
)

// Styles are rebuilt from the ui theme by initTUIStyles.
var (
	panelStyle      lipgloss.Style
	headerStyle     lipgloss.Style
	titleStyle      lipgloss.Style
	versionStyle    lipgloss.Style
	statusStyle     lipgloss.Style
	labelStyle      lipgloss.Style
	valueStyle      lipgloss.Style
	selectedStyle   lipgloss.Style
	unselectedStyle lipgloss.Style
	successStyle    lipgloss.Style
	errorStyle      lipgloss.Style
	warningStyle    lipgloss.Style
	dimStyle        lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui theme. Run calls it
// again after the application has chosen a theme.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	statusStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	labelStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	valueStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	selectedStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true).
		Underline(true)

	unselectedStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	successStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	errorStyle = lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true)

	warningStyle = lipgloss.NewStyle().
		Foreground(t.Warning)

	dimStyle = lipgloss.NewStyle().
		Foreground(t.Dim)
}
