package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/focusboard/internal/badges"
	"github.com/sadopc/focusboard/internal/tasks"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewTasks
	viewPomodoro
	viewAnalytics
	viewDiary
	viewBadges
	viewChat
	viewSettings
)

var viewNames = []string{"Dashboard", "Tasks", "Pomodoro", "Analytics", "Diary", "Badges", "Chat", "Settings"}

// insightsInterval is how often the performance insights are recomputed.
const insightsInterval = 5 * time.Minute

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type insightsTickMsg time.Time

type badgesUnlockedMsg struct {
	badges []badges.Badge
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func statusCmd(text string, isError bool) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, isError: isError} }
}

// notify reports the outcome of a dashboard mutation: newly unlocked badges
// first, then any persistence error.
func notify(unlocked []badges.Badge, err error) tea.Cmd {
	var cmds []tea.Cmd
	if len(unlocked) > 0 {
		cmds = append(cmds, func() tea.Msg { return badgesUnlockedMsg{badges: unlocked} })
	}
	if err != nil {
		cmds = append(cmds, statusCmd(fmt.Sprintf("Error: %v", err), true))
	}
	return tea.Batch(cmds...)
}

func unlockedText(bs []badges.Badge) string {
	names := make([]string, len(bs))
	for i, b := range bs {
		names[i] = b.Icon + " " + b.Name
	}
	return "Badge unlocked: " + strings.Join(names, ", ")
}

func formatDue(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	return t.In(loc).Format("Jan 02 15:04")
}

func validateDue(s string) error {
	_, err := tasks.ParseDue(s, time.Local)
	return err
}

// unavailable renders the placeholder shown when a component is missing.
func unavailable(what string, w int) string {
	return panelStyle.Width(w).Render(
		titleStyle.Render(what) + "\n\n" +
			warningStyle.Render(what+" is unavailable in this session."),
	)
}
