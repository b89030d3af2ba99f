package cli

import (
	"fmt"

	"github.com/sadopc/focusboard/internal/badges"
	"github.com/spf13/cobra"
)

func newBadgesCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "badges",
		Aliases: []string{"achievements"},
		Short:   "Show earned badges",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			eng := app.Dash.Badges()
			fmt.Fprintf(out, "%d of %d badges earned\n", eng.Count(), len(badges.Catalog))

			for _, c := range badges.Categories {
				var lines []string
				for _, b := range badges.ByCategory(c) {
					switch {
					case eng.Has(b.ID):
						lines = append(lines, fmt.Sprintf("  %s %s: %s", b.Icon, b.Name, b.Description))
					case all:
						lines = append(lines, fmt.Sprintf("  🔒 %s: %s", b.Name, b.Description))
					}
				}
				if len(lines) == 0 {
					continue
				}
				fmt.Fprintf(out, "\n%s\n", c.Title())
				for _, l := range lines {
					fmt.Fprintln(out, l)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include locked badges")

	return cmd
}
