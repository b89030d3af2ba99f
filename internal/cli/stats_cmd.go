package cli

import (
	"fmt"
	"strings"

	"github.com/sadopc/focusboard/internal/analytics"
	"github.com/sadopc/focusboard/internal/store"
	"github.com/spf13/cobra"
)

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task completion and weekly focus sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			a := app.Dash.Analytics()
			snap := a.Snapshot()
			c := snap.TaskCompletion

			fmt.Fprintf(out, "Tasks: %d completed, %d pending (%.0f%%)\n",
				c.Completed, c.Pending, a.CompletionRate())
			trend := a.Trend()
			fmt.Fprintf(out, "Trend: %s %s\n", trend.Emoji(), trend.Message())
			fmt.Fprintf(out, "Pomodoro sessions: %d\n\n", a.TotalSessions())

			peak := 0
			for _, n := range snap.Productivity {
				if n > peak {
					peak = n
				}
			}
			labels, counts := snap.Week(app.sundayFirst())
			for i, day := range labels {
				fmt.Fprintf(out, "%s %s %d\n", day, bar(counts[i], peak, 20), counts[i])
			}
			return nil
		},
	}
}

func (a *App) sundayFirst() bool {
	if a.Store == nil {
		return false
	}
	v, err := a.Store.GetSetting(store.SettingWeekStart)
	return err == nil && v == "sunday"
}

// bar scales n against peak into a row of at most width blocks.
func bar(n, peak, width int) string {
	if peak == 0 || n <= 0 {
		return ""
	}
	w := n * width / peak
	if w == 0 {
		w = 1
	}
	return strings.Repeat("█", w)
}

func newInsightsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Analyze your task habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			in := app.Dash.Insights()

			fmt.Fprintf(out, "Completion rate: %.0f%% %s\n", in.CompletionRate, in.Trend.Emoji())
			if in.HasPeakHour {
				fmt.Fprintf(out, "Most productive hour: %02d:00\n", in.PeakHour)
			} else {
				fmt.Fprintln(out, "Most productive hour: not enough data")
			}
			fmt.Fprintf(out, "Overdue tasks: %d\n", in.Overdue)
			fmt.Fprintf(out, "Procrastination: %s\n", analytics.ProcrastinationMessage(in.ProcrastinationRate))
			if len(in.Recommendations) > 0 {
				fmt.Fprintln(out, "\nRecommendations:")
				for _, r := range in.Recommendations {
					fmt.Fprintf(out, "- %s\n", r)
				}
			}
			return nil
		},
	}
}
