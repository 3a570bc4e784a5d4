package tui

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// HeaderModel renders the top bar: title, version and a live wall clock.
type HeaderModel struct {
	now     time.Time
	version string
	width   int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{now: time.Now(), version: version}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// Tick advances the wall clock.
func (h *HeaderModel) Tick(t time.Time) {
	h.now = t
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "Event Finder"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	title := titleStyle.Render(titleText)

	pipe := clockStyle.Render(" | ")
	clock := clockStyle.Render(h.now.Format("15:04:05"))

	leftPart := title + pipe + clock
	leftLen := lipgloss.Width(leftPart)

	gap := h.width - 2 - leftLen
	if gap < 0 {
		gap = 0
	}

	return headerStyle.Width(h.width).Render(leftPart + spaces(gap))
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
