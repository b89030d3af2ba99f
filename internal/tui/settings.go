package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/focusboard/internal/app"
	"github.com/sadopc/focusboard/internal/store"
)

type settingsModel struct {
	store  *store.Store
	dash   *app.Dashboard
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	pomodoroWork  *string
	pomodoroBreak *string
	weekStart     *string
}

func newSettingsModel(s *store.Store, d *app.Dashboard) settingsModel {
	pw, pb, ws := "", "", ""
	return settingsModel{
		store:         s,
		dash:          d,
		pomodoroWork:  &pw,
		pomodoroBreak: &pb,
		weekStart:     &ws,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

// reload re-reads the settings table.
func (s *settingsModel) reload() {
	if s.store == nil {
		return
	}
	s.settings, _ = s.store.GetAllSettings()
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.store == nil {
		return s, nil
	}
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	// Load current values
	*s.pomodoroWork = secsToMin(s.getVal(store.SettingPomodoroWork, "1500"))
	*s.pomodoroBreak = secsToMin(s.getVal(store.SettingPomodoroBreak, "300"))
	*s.weekStart = s.getVal(store.SettingWeekStart, "monday")

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Pomodoro work (min)").Value(s.pomodoroWork).Validate(positiveMinutes),
			huh.NewInput().Title("Pomodoro break (min)").Value(s.pomodoroBreak).Validate(positiveMinutes),
		).Title("Pomodoro"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Week starts on").
				Options(
					huh.NewOption("Monday", "monday"),
					huh.NewOption("Sunday", "sunday"),
				).Value(s.weekStart),
		).Title("General"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		err := s.saveSettings()
		s.reload()
		if err != nil {
			return s, statusCmd(fmt.Sprintf("Error: %v", err), true)
		}
		return s, s.applyToTimer()
	}

	return s, cmd
}

func (s settingsModel) saveSettings() error {
	return errors.Join(
		s.store.SetSetting(store.SettingPomodoroWork, minToSecs(*s.pomodoroWork)),
		s.store.SetSetting(store.SettingPomodoroBreak, minToSecs(*s.pomodoroBreak)),
		s.store.SetSetting(store.SettingWeekStart, *s.weekStart),
	)
}

// applyToTimer pushes the saved lengths into an idle timer.
func (s settingsModel) applyToTimer() tea.Cmd {
	t := s.dash.Timer()
	if t == nil {
		return statusCmd("Settings saved", false)
	}
	work, _ := strconv.Atoi(strings.TrimSpace(*s.pomodoroWork))
	brk, _ := strconv.Atoi(strings.TrimSpace(*s.pomodoroBreak))
	applied, err := s.dash.SelectDuration(work)
	if err != nil {
		return statusCmd(fmt.Sprintf("Error: %v", err), true)
	}
	if !applied || !t.SetBreak(brk) {
		return statusCmd("Settings saved; reset the timer to use the new lengths", false)
	}
	return statusCmd("Settings saved", false)
}

func (s settingsModel) getVal(k, fallback string) string {
	v, err := s.store.GetSetting(k)
	if err != nil {
		return fallback
	}
	return v
}

func (s settingsModel) view() string {
	w := s.width - 4
	if s.store == nil {
		return unavailable("Settings", w)
	}

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		formView := s.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(24).Render(setting.Key)
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func formatSettingValue(k, v string) string {
	switch k {
	case store.SettingPomodoroWork, store.SettingPomodoroBreak:
		if secs, err := strconv.Atoi(v); err == nil {
			return fmt.Sprintf("%d min", secs/60)
		}
	}
	return v
}

func positiveMinutes(s string) error {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err != nil || n <= 0 {
		return errors.New("enter a positive number of minutes")
	}
	return nil
}

func secsToMin(s string) string {
	if secs, err := strconv.Atoi(s); err == nil {
		return strconv.Itoa(secs / 60)
	}
	return s
}

func minToSecs(s string) string {
	if mins, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return strconv.Itoa(mins * 60)
	}
	return s
}
