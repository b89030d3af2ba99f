package cli

import (
	"fmt"
	"strconv"

	"github.com/sadopc/focusboard/internal/store"
	"github.com/spf13/cobra"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Store == nil {
				return fmt.Errorf("settings are unavailable")
			}
			all, err := app.Store.GetAllSettings()
			if err != nil {
				return err
			}
			for _, s := range all {
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", s.Key, s.Value)
			}
			return nil
		},
	}

	cmd.AddCommand(newSettingsSetCmd(app))

	return cmd
}

func newSettingsSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Store == nil {
				return fmt.Errorf("settings are unavailable")
			}
			key, value := args[0], args[1]
			if err := validateSetting(key, value); err != nil {
				return err
			}
			if err := app.Store.SetSetting(key, value); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
			return nil
		},
	}
}

func validateSetting(key, value string) error {
	switch key {
	case store.SettingPomodoroWork, store.SettingPomodoroBreak:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive number of seconds", key)
		}
	case store.SettingWeekStart:
		if value != "monday" && value != "sunday" {
			return fmt.Errorf("%s must be monday or sunday", key)
		}
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}
