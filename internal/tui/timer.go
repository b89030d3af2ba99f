package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/focusboard/internal/timer"
)

// clockStyle picks the countdown style for the timer's state and phase.
func clockStyle(t *timer.Timer) lipgloss.Style {
	switch {
	case t.State() == timer.Paused:
		return timerPausedStyle
	case t.State() == timer.Running && t.Phase() == timer.Break:
		return timerBreakStyle
	case t.State() == timer.Running:
		return timerRunningStyle
	}
	return timerStyle
}

// stateIndicator is the one-line state label under the countdown.
func stateIndicator(t *timer.Timer) string {
	label := t.Phase().String()
	switch t.State() {
	case timer.Running:
		return successStyle.Render("●  " + label)
	case timer.Paused:
		return warningStyle.Render("⏸  " + label + " PAUSED")
	}
	if t.Phase() == timer.Break {
		return highlightStyle.Render("☕  BREAK READY")
	}
	return mutedStyle.Render("■  IDLE")
}

// progressBar renders the elapsed fraction of the current phase.
func progressBar(t *timer.Timer, width int) string {
	if width < 4 {
		width = 4
	}
	filled := int(t.Progress() * float64(width))
	if filled > width {
		filled = width
	}
	return successStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled))
}

// footerIndicator is the compact countdown shown on every view while a
// session is active.
func footerIndicator(t *timer.Timer) string {
	if t == nil {
		return ""
	}
	switch t.State() {
	case timer.Running:
		return successStyle.Render(" ● " + t.Phase().String() + " " + t.Display())
	case timer.Paused:
		return warningStyle.Render(" ⏸ " + t.Display())
	}
	return ""
}
