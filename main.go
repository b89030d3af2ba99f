package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/sadopc/focusboard/internal/analytics"
	"github.com/sadopc/focusboard/internal/app"
	"github.com/sadopc/focusboard/internal/badges"
	"github.com/sadopc/focusboard/internal/cli"
	"github.com/sadopc/focusboard/internal/config"
	"github.com/sadopc/focusboard/internal/diary"
	"github.com/sadopc/focusboard/internal/logger"
	"github.com/sadopc/focusboard/internal/store"
	"github.com/sadopc/focusboard/internal/tasks"
	"github.com/sadopc/focusboard/internal/timer"
	"github.com/sadopc/focusboard/internal/tui"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, closer, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		File:     cfg.Logger.File,
	})
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer closer.Close()
	defer log.Sync()

	s, err := store.Open(store.Options{
		Backend:  cfg.Store.Backend,
		Path:     cfg.Store.Path,
		Defaults: cfg.Settings(),
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer s.Close()

	tm := timer.New(
		s.SettingDuration(store.SettingPomodoroWork, cfg.Timer.Work),
		s.SettingDuration(store.SettingPomodoroBreak, cfg.Timer.Break),
	)
	dash, err := app.New(app.Deps{
		Tasks:     tasks.New(s),
		Diary:     diary.New(s),
		Analytics: analytics.New(s),
		Badges:    badges.New(s),
		Timer:     tm,
		Settings:  s,
		Log:       log,
		Beta:      cfg.Beta,
	})
	if err != nil {
		return err
	}
	unlocked, loadErr := dash.Load()
	if loadErr != nil {
		log.Error("load state", zap.Error(loadErr))
	}

	a := &cli.App{
		Dash:  dash,
		Store: s,
		Media: diary.MediaLibrary{Dir: cfg.MediaDir},
	}
	a.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
	a.RunTUI = func() error {
		m := tui.NewApp(dash, s,
			tui.WithUnlocked(unlocked),
			tui.WithLoadError(loadErr),
			tui.WithMedia(a.Media),
		)
		p := tea.NewProgram(m, tea.WithAltScreen())
		_, runErr := p.Run()
		return runErr
	}

	return cli.NewRootCmd(a).Execute()
}
