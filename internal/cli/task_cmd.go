package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sadopc/focusboard/internal/tasks"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks", "t"},
		Short:   "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskDoneCmd(app),
		newTaskRescheduleCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var priority, workType, due string
	var estimate int

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := tasks.NewTask{
				Text:          strings.Join(args, " "),
				Priority:      tasks.Priority(priority),
				WorkType:      workType,
				EstimatedTime: estimate,
			}
			d, err := tasks.ParseDue(due, app.now().Location())
			if err != nil {
				return err
			}
			in.DueDate = d

			t, unlocked, err := app.Dash.AddTask(in)
			if t.ID != 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Added task %d: %s\n", t.ID, t.Text)
			}
			printUnlocked(cmd.OutOrStdout(), unlocked)
			return err
		},
	}

	cmd.Flags().StringVarP(&priority, "priority", "p", string(tasks.PriorityLow), "Priority: low, medium or high")
	cmd.Flags().StringVar(&workType, "type", tasks.DefaultWorkType, "Work type, e.g. work, study, personal, collaboration")
	cmd.Flags().IntVar(&estimate, "estimate", 0, "Estimated time in minutes")
	cmd.Flags().StringVar(&due, "due", "", "Deadline (YYYY-MM-DD, 'YYYY-MM-DD HH:MM' or RFC3339)")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var priority string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ts := app.Dash.Tasks().Filter(priority)
			if len(ts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks.")
				return nil
			}
			writeTasks(cmd.OutOrStdout(), ts, app.now())
			return nil
		},
	}

	cmd.Flags().StringVarP(&priority, "priority", "p", tasks.FilterAll, "Only show tasks of this priority")

	return cmd
}

func newTaskDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task's completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, unlocked, err := app.Dash.ToggleTask(id)
			if t.ID == 0 {
				return err
			}
			state := "pending"
			if t.Completed {
				state = "completed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %d marked %s\n", t.ID, state)
			printUnlocked(cmd.OutOrStdout(), unlocked)
			return err
		},
	}
}

func newTaskRescheduleCmd(app *App) *cobra.Command {
	var due string

	cmd := &cobra.Command{
		Use:   "reschedule <id>",
		Short: "Change or clear a task's deadline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			d, err := tasks.ParseDue(due, app.now().Location())
			if err != nil {
				return err
			}
			t, _, err := app.Dash.RescheduleTask(id, d)
			if t.ID == 0 {
				return err
			}
			if d == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared deadline of task %d\n", t.ID)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Task %d now due %s\n", t.ID, d.Format("2006-01-02 15:04"))
			}
			return err
		},
	}

	cmd.Flags().StringVar(&due, "due", "", "New deadline; empty clears it")

	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := app.Dash.DeleteTask(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %d\n", id)
			return nil
		},
	}
}

func writeTasks(w io.Writer, ts []tasks.Task, now time.Time) {
	for _, t := range ts {
		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %d  %-6s %s", check, t.ID, t.Priority, t.Text)
		if t.WorkType != "" {
			line += "  #" + t.WorkType
		}
		if t.EstimatedTime > 0 {
			line += fmt.Sprintf("  ~%dm", t.EstimatedTime)
		}
		if t.DueDate != nil {
			line += "  due " + t.DueDate.In(now.Location()).Format("2006-01-02 15:04")
			if t.Overdue(now) {
				line += " (overdue)"
			}
		}
		fmt.Fprintln(w, line)
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}
