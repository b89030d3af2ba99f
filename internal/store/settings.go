package store

import (
	"strconv"
	"time"
)

type Setting struct {
	Key   string
	Value string
}

// Setting keys understood by the dashboard.
const (
	SettingPomodoroWork  = "pomodoro_work"
	SettingPomodoroBreak = "pomodoro_break"
	SettingWeekStart     = "week_start"
)

// DefaultSettings returns the settings seeded into a fresh store.
func DefaultSettings() map[string]string {
	return map[string]string{
		SettingPomodoroWork:  "1500",
		SettingPomodoroBreak: "300",
		SettingWeekStart:     "monday",
	}
}

func (s *Store) GetSetting(key string) (string, error) {
	return s.backend.GetSetting(key)
}

func (s *Store) SetSetting(key, value string) error {
	return s.backend.SetSetting(key, value)
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	return s.backend.AllSettings()
}

// SettingDuration reads a setting holding whole seconds, falling back when
// the value is missing or malformed.
func (s *Store) SettingDuration(key string, fallback time.Duration) time.Duration {
	if v, err := s.GetSetting(key); err == nil {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return fallback
}
