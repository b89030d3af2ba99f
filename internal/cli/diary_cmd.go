package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/sadopc/focusboard/internal/analytics"
	"github.com/sadopc/focusboard/internal/diary"
	"github.com/spf13/cobra"
)

func newDiaryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "diary",
		Aliases: []string{"journal"},
		Short:   "Write and read diary entries",
	}

	cmd.AddCommand(
		newDiaryAddCmd(app),
		newDiaryListCmd(app),
		newDiaryPromptsCmd(),
		newDiaryClearCmd(app),
	)

	return cmd
}

func newDiaryAddCmd(app *App) *cobra.Command {
	var mood, prompt string
	var rating int
	var media []string

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Append a diary entry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolvePrompt(prompt)
			if err != nil {
				return err
			}
			text := strings.Join(args, " ")
			if p != "" {
				text = p + "\n\n" + text
			}
			in := diary.NewEntry{Text: text, Prompt: p}

			if mood != "" || rating != 0 || len(media) > 0 {
				ext := &diary.Extension{Mood: diary.Mood(mood), ProductivityRating: rating}
				for _, path := range media {
					m, err := app.Media.Import(path)
					if err != nil {
						return err
					}
					ext.MediaFiles = append(ext.MediaFiles, m)
				}
				in.Extension = ext
			}

			e, unlocked, err := app.Dash.AddEntry(in)
			if e.ID != 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Saved diary entry %d\n", e.ID)
			}
			printUnlocked(cmd.OutOrStdout(), unlocked)
			return err
		},
	}

	cmd.Flags().StringVar(&mood, "mood", "", "Mood: happy, neutral, sad, angry or excited")
	cmd.Flags().IntVar(&rating, "rating", 0, "Productivity rating from 0 to 5")
	cmd.Flags().StringVar(&prompt, "prompt", "", "Reflection prompt, by number (see 'diary prompts') or text")
	cmd.Flags().StringSliceVar(&media, "media", nil, "Image, video or audio files to attach")

	return cmd
}

// resolvePrompt maps "1".."5" to the built-in reflection prompts and passes
// any other text through.
func resolvePrompt(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return s, nil
	}
	if n < 1 || n > len(analytics.ReflectionPrompts) {
		return "", fmt.Errorf("prompt number must be between 1 and %d", len(analytics.ReflectionPrompts))
	}
	return analytics.ReflectionPrompts[n-1], nil
}

func newDiaryListCmd(app *App) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show diary entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Dash.Diary() == nil {
				return fmt.Errorf("diary is unavailable")
			}
			entries := app.Dash.Diary().Filter(filter)
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No diary entries.")
				return nil
			}

			md := diaryMarkdown(entries)
			if !app.interactive() {
				fmt.Fprint(cmd.OutOrStdout(), md)
				return nil
			}
			out, err := glamour.Render(md, "dark")
			if err != nil {
				return fmt.Errorf("render diary: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", diary.FilterAll, "all, happy, productive or recent")

	return cmd
}

func diaryMarkdown(entries []diary.Entry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "## %s", e.Date.Local().Format("Mon Jan 2 2006, 15:04"))
		if e.Extension != nil {
			fmt.Fprintf(&b, " %s %s", e.Mood.Emoji(), e.Stars())
		}
		b.WriteString("\n\n")
		b.WriteString(e.Text)
		b.WriteString("\n\n")
		if e.Extension != nil {
			for _, m := range e.MediaFiles {
				fmt.Fprintf(&b, "- %s: %s\n", m.Type, m.Name)
			}
			if len(e.MediaFiles) > 0 {
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func newDiaryPromptsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prompts",
		Short: "List the reflection prompts",
		Run: func(cmd *cobra.Command, args []string) {
			for i, p := range analytics.ReflectionPrompts {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, p)
			}
		},
	}
}

func newDiaryClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every diary entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear the diary without --yes")
			}
			if err := app.Dash.ClearDiary(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Diary cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion")

	return cmd
}
