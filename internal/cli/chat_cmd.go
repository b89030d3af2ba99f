package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/sadopc/focusboard/internal/chat"
	"github.com/spf13/cobra"
)

func newChatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat [message]",
		Short: "Ask the assistant; without a message, read questions from stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) > 0 {
				fmt.Fprintln(out, app.Dash.Reply(strings.Join(args, " ")))
				return nil
			}

			if app.interactive() {
				fmt.Fprintln(out, chat.Greeting)
			}
			sc := bufio.NewScanner(cmd.InOrStdin())
			for sc.Scan() {
				msg := strings.TrimSpace(sc.Text())
				if msg == "" {
					continue
				}
				if msg == "exit" || msg == "quit" {
					return nil
				}
				fmt.Fprintln(out, app.Dash.Reply(msg))
			}
			return sc.Err()
		},
	}
}
