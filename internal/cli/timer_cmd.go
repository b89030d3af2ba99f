package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sadopc/focusboard/internal/timer"
	"github.com/spf13/cobra"
)

func newTimerCmd(app *App) *cobra.Command {
	var minutes int
	var quiet bool

	cmd := &cobra.Command{
		Use:     "timer",
		Aliases: []string{"pomodoro"},
		Short:   "Run one work interval in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			tm := app.Dash.Timer()
			if tm == nil {
				return fmt.Errorf("timer is unavailable")
			}
			if tm.Phase() == timer.Break {
				tm.Reset()
			}
			// A one-off length; the saved pomodoro_work setting stays as is.
			if minutes > 0 && !tm.SelectDuration(minutes) {
				return fmt.Errorf("timer is %s; reset it before changing the length", tm.State())
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runTimer(ctx, app, quiet, cmd)
		},
	}

	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "Work length in minutes for this run only (defaults to the pomodoro_work setting)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print when the session ends")

	return cmd
}

func runTimer(ctx context.Context, app *App, quiet bool, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	tm := app.Dash.Timer()
	interval := app.TickInterval
	if interval <= 0 {
		interval = time.Second
	}

	fmt.Fprintf(out, "Focus for %s. Press Ctrl+C to stop.\n", timer.Format(tm.WorkSeconds()))
	tm.Start()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			tm.Pause()
			fmt.Fprintf(out, "\nStopped with %s left.\n", tm.Display())
			return nil
		case <-ticker.C:
			res := app.Dash.Tick()
			if res.SessionCompleted {
				if !quiet {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "Session complete: %d minutes. Time for a %s break.\n",
					tm.WorkSeconds()/60, timer.Format(tm.BreakSeconds()))
				printUnlocked(out, res.Unlocked)
				return res.Err
			}
			if !quiet {
				fmt.Fprintf(out, "\r%s %s", tm.Phase(), tm.Display())
			}
		}
	}
}
