package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/focusboard/internal/app"
	"github.com/sadopc/focusboard/internal/timer"
)

type pomodoroModel struct {
	dash   *app.Dashboard
	width  int
	height int
}

func newPomodoroModel(d *app.Dashboard) pomodoroModel {
	return pomodoroModel{dash: d}
}

func (p *pomodoroModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p pomodoroModel) update(msg tea.Msg) (pomodoroModel, tea.Cmd) {
	t := p.dash.Timer()
	if t == nil {
		return p, nil
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch {
	case key.Matches(km, keys.Start):
		if t.State() != timer.Running {
			t.Start()
			return p, statusCmd(t.Phase().String()+" started", false)
		}
	case key.Matches(km, keys.Pause):
		switch t.State() {
		case timer.Running:
			t.Pause()
			return p, statusCmd("Timer paused", false)
		case timer.Paused:
			t.Start()
			return p, statusCmd("Timer resumed", false)
		}
	case key.Matches(km, keys.Reset):
		t.Reset()
		return p, statusCmd("Timer reset", false)
	case key.Matches(km, keys.Duration):
		next := nextDuration(t.WorkSeconds() / 60)
		applied, err := p.dash.SelectDuration(next)
		if err != nil {
			return p, statusCmd(fmt.Sprintf("Error: %v", err), true)
		}
		if !applied {
			return p, statusCmd("Reset the timer to change its length", true)
		}
		return p, statusCmd(fmt.Sprintf("Work length set to %d min", next), false)
	}
	return p, nil
}

// nextDuration cycles through the offered work lengths.
func nextDuration(current int) int {
	for i, m := range timer.DurationOptions {
		if m == current {
			return timer.DurationOptions[(i+1)%len(timer.DurationOptions)]
		}
	}
	return timer.DurationOptions[0]
}

func (p pomodoroModel) view() string {
	w := p.width - 4
	t := p.dash.Timer()
	if t == nil {
		return unavailable("Pomodoro Timer", w)
	}

	title := titleStyle.Render("Pomodoro Timer")
	clock := clockStyle(t).Width(w - 6).Render(t.Display())

	var opts []string
	for _, m := range timer.DurationOptions {
		label := fmt.Sprintf("%d min", m)
		if m*60 == t.WorkSeconds() {
			opts = append(opts, selectedItemStyle.Render("["+label+"]"))
		} else {
			opts = append(opts, mutedStyle.Render(" "+label+" "))
		}
	}

	sessions := mutedStyle.Render(fmt.Sprintf("Completed sessions: %d", p.dash.Analytics().TotalSessions()))

	var controls string
	switch t.State() {
	case timer.Idle:
		controls = mutedStyle.Render("s: start  c: cycle length  x: reset")
	case timer.Running:
		controls = mutedStyle.Render("space: pause  x: reset")
	case timer.Paused:
		controls = mutedStyle.Render("space/s: resume  x: reset")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		clock,
		stateIndicator(t),
		"",
		progressBar(t, min(w-10, 40)),
		"",
		strings.Join(opts, " "),
		sessions,
	)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, content, "", controls),
	)
}
