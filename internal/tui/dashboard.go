package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/focusboard/internal/analytics"
	"github.com/sadopc/focusboard/internal/app"
	"github.com/sadopc/focusboard/internal/badges"
	"github.com/sadopc/focusboard/internal/timer"
)

// recentBadges is how many of the latest earned badges the overview lists.
const recentBadges = 3

// overviewModel is the landing view: timer, today's numbers, latest badges
// and the performance insights.
type overviewModel struct {
	dash   *app.Dashboard
	now    func() time.Time
	width  int
	height int
}

func newOverviewModel(d *app.Dashboard, now func() time.Time) overviewModel {
	return overviewModel{dash: d, now: now}
}

func (o *overviewModel) setSize(w, h int) {
	o.width = w
	o.height = h
}

func (o overviewModel) update(msg tea.Msg) (overviewModel, tea.Cmd) {
	t := o.dash.Timer()
	km, ok := msg.(tea.KeyMsg)
	if !ok || t == nil {
		return o, nil
	}

	switch {
	case key.Matches(km, keys.Start):
		if t.State() != timer.Running {
			t.Start()
			return o, statusCmd(t.Phase().String()+" started", false)
		}
	case key.Matches(km, keys.Pause):
		switch t.State() {
		case timer.Running:
			t.Pause()
			return o, statusCmd("Timer paused", false)
		case timer.Paused:
			t.Start()
			return o, statusCmd("Timer resumed", false)
		}
	}
	return o, nil
}

// today counts the tasks completed and sessions finished on the local day
// containing now.
func (o overviewModel) today() (done, sessions int) {
	now := o.now().Local()
	y, m, d := now.Date()
	sameDay := func(t time.Time) bool {
		ty, tm, td := t.Local().Date()
		return ty == y && tm == m && td == d
	}
	for _, t := range o.dash.Tasks().All() {
		if t.Completed && t.CompletedAt != nil && sameDay(*t.CompletedAt) {
			done++
		}
	}
	for _, s := range o.dash.Analytics().Sessions() {
		if sameDay(s.CompletedAt) {
			sessions++
		}
	}
	return done, sessions
}

func (o overviewModel) view(in analytics.Insights) string {
	if o.width < 20 {
		return "Terminal too small"
	}

	w := o.width - 4
	return lipgloss.JoinVertical(lipgloss.Left,
		o.renderTimerPanel(w),
		o.renderSummaryPanel(w, in),
		o.renderBadgesPanel(w),
		panelStyle.Width(w).Render(renderInsights(in, w-4)),
	)
}

func (o overviewModel) renderTimerPanel(w int) string {
	t := o.dash.Timer()
	if t == nil {
		return unavailable("Pomodoro Timer", w)
	}

	clock := clockStyle(t).Width(w - 6).Render(t.Display())
	content := lipgloss.JoinVertical(lipgloss.Center, clock, stateIndicator(t))
	if t.State() == timer.Idle {
		content = lipgloss.JoinVertical(lipgloss.Center, content,
			mutedStyle.Render("Press s to start a "+strings.ToLower(t.Phase().String())+" session"))
		return panelStyle.Width(w).Render(content)
	}
	return activePanelStyle.Width(w).Render(content)
}

func (o overviewModel) renderSummaryPanel(w int, in analytics.Insights) string {
	completed, total := o.dash.Tasks().Counts()
	doneToday, sessionsToday := o.today()

	title := titleStyle.Render("Today")
	rate := highlightStyle.Render(fmt.Sprintf("%.0f%%", o.dash.Analytics().CompletionRate()))

	rows := []string{
		fmt.Sprintf("%s  %s", title, rate),
		fmt.Sprintf("  Tasks done today   %d", doneToday),
		fmt.Sprintf("  All tasks          %d of %d completed", completed, total),
		fmt.Sprintf("  Focus sessions     %d today, %d total", sessionsToday, o.dash.Analytics().TotalSessions()),
		fmt.Sprintf("  Overdue            %s", overdueText(in.Overdue)),
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (o overviewModel) renderBadgesPanel(w int) string {
	eng := o.dash.Badges()
	title := titleStyle.Render("Recent Badges")
	earned := eng.Earned()
	if len(earned) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No badges yet. Complete a task to earn your first."),
		))
	}

	rows := []string{title + "  " + mutedStyle.Render(fmt.Sprintf("%d of %d", eng.Count(), len(badges.Catalog)))}
	for i := len(earned) - 1; i >= 0 && i >= len(earned)-recentBadges; i-- {
		b, ok := badges.Lookup(earned[i])
		if !ok {
			continue
		}
		rows = append(rows, earnedBadgeStyle.Render(fmt.Sprintf("  %s %s", b.Icon, b.Name)))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
