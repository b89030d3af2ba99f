package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/sadopc/focusboard/internal/app"
	"github.com/sadopc/focusboard/internal/badges"
	"github.com/sadopc/focusboard/internal/diary"
	"github.com/sadopc/focusboard/internal/store"
	"github.com/spf13/cobra"
)

// App holds everything the commands act on.
type App struct {
	Dash  *app.Dashboard
	Store *store.Store
	Media diary.MediaLibrary

	// IsInteractive reports whether stdin is a terminal. The root command
	// starts the TUI only when it is.
	IsInteractive func() bool
	// RunTUI starts the full-screen interface.
	RunTUI func() error

	// TickInterval drives the headless timer. Zero means one second.
	TickInterval time.Duration
	Now          func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "focusboard" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "focusboard",
		Short:         "Tasks, pomodoro, diary and badges in one dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() && app.RunTUI != nil {
				return app.RunTUI()
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newTaskCmd(app),
		newDiaryCmd(app),
		newTimerCmd(app),
		newStatsCmd(app),
		newInsightsCmd(app),
		newBadgesCmd(app),
		newChatCmd(app),
		newExportCmd(app),
		newSettingsCmd(app),
	)

	return root
}

func printUnlocked(w io.Writer, unlocked []badges.Badge) {
	for _, b := range unlocked {
		fmt.Fprintf(w, "%s Badge unlocked: %s (%s)\n", b.Icon, b.Name, b.Description)
	}
}
