package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sadopc/focusboard/internal/store"
)

// Config aggregates all runtime settings required by the application.
type Config struct {
	Store    StoreConfig
	Logger   LoggerConfig
	Timer    TimerConfig
	MediaDir string
	Beta     bool
}

type StoreConfig struct {
	Backend string
	Path    string
}

type LoggerConfig struct {
	Level    string
	Encoding string
	File     string
}

type TimerConfig struct {
	Work  time.Duration
	Break time.Duration
}

// Load reads configuration from environment variables, optionally seeded
// from a .env file in the working directory and one in the config
// directory. Variables already set in the environment win.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	cfg := &Config{
		Store: StoreConfig{
			Backend: getString("FOCUSBOARD_BACKEND", store.BackendSQLite),
			Path:    getString("FOCUSBOARD_DB", filepath.Join(dir, "focusboard.db")),
		},
		Logger: LoggerConfig{
			Level:    getString("FOCUSBOARD_LOG_LEVEL", "info"),
			Encoding: getString("FOCUSBOARD_LOG_ENCODING", "json"),
			File:     getString("FOCUSBOARD_LOG_FILE", filepath.Join(dir, "focusboard.log")),
		},
		Timer: TimerConfig{
			Work:  time.Duration(getInt("FOCUSBOARD_WORK_MINUTES", 25)) * time.Minute,
			Break: time.Duration(getInt("FOCUSBOARD_BREAK_MINUTES", 5)) * time.Minute,
		},
		MediaDir: getString("FOCUSBOARD_MEDIA_DIR", filepath.Join(dir, "media")),
		Beta:     getBool("FOCUSBOARD_BETA", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Backend {
	case store.BackendSQLite, store.BackendBolt:
	default:
		return fmt.Errorf("FOCUSBOARD_BACKEND: unknown backend %q", c.Store.Backend)
	}
	if c.Timer.Work <= 0 {
		return fmt.Errorf("FOCUSBOARD_WORK_MINUTES must be positive")
	}
	if c.Timer.Break <= 0 {
		return fmt.Errorf("FOCUSBOARD_BREAK_MINUTES must be positive")
	}
	return nil
}

// Settings returns the default settings to seed into a new store.
func (c *Config) Settings() map[string]string {
	s := store.DefaultSettings()
	s[store.SettingPomodoroWork] = strconv.Itoa(int(c.Timer.Work / time.Second))
	s[store.SettingPomodoroBreak] = strconv.Itoa(int(c.Timer.Break / time.Second))
	return s
}

// Dir returns ~/.config/focusboard
func Dir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config directory: %w", err)
	}
	return filepath.Join(cfg, "focusboard"), nil
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}
