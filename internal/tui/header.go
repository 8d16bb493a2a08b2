package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HeaderModel renders the top bar: title, version and run status.
type HeaderModel struct {
	version string
	status  string
	width   int
}

func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{version: version, status: "Ready"}
}

func (h *HeaderModel) SetStatus(s string) { h.status = s }

func (h *HeaderModel) SetWidth(w int) { h.width = w }

func (h HeaderModel) View() string {
	titleText := "Digit Chain Calculator"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	left := titleStyle.Render(titleText) + versionStyle.Render(" | ") + statusStyle.Render(h.status)

	gap := max(h.width-2-lipgloss.Width(left), 0)
	return headerStyle.Width(h.width).Render(left + strings.Repeat(" ", gap))
}
