package cli

import (
	"fmt"
	"strings"

	"planner-cli/internal/model"
	"planner-cli/internal/tui"

	"github.com/spf13/cobra"
)

func newEventCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Manage event reminders",
	}
	cmd.AddCommand(newEventRemindCmd(app))
	return cmd
}

func newEventRemindCmd(app *App) *cobra.Command {
	var (
		message string
		medium  string
		times   []string
	)

	cmd := &cobra.Command{
		Use:   "remind <event-id>",
		Short: "Create reminders for an event",
		Long: "Create reminders for an event. Times accumulate locally and are saved\n" +
			"in one request. Omit --at to build the list interactively.\n" +
			"Valid mediums: " + mediumValues() + ".",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := loadClient(app, true)
			if err != nil {
				return err
			}
			if message == "" {
				return fmt.Errorf("--message is required")
			}
			if medium == "" {
				medium = cfg.DefaultMedium
			}
			if !model.ValidReminderMedium(medium) {
				return fmt.Errorf("invalid medium %q (valid: %s)", medium, mediumValues())
			}
			med := model.ReminderMedium(medium)

			if len(times) == 0 {
				n, ok, err := tui.RunReminderForm(client, args[0], message, med)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %d reminder(s) for %s.\n", n, args[0])
				return nil
			}

			reminder := model.EventReminder{Message: message, Medium: med}
			for _, t := range times {
				t = strings.TrimSpace(t)
				if t == "" {
					continue
				}
				reminder.ReminderTimes = append(reminder.ReminderTimes, model.ReminderTime{ReminderTime: t, Triggered: true})
			}
			if len(reminder.ReminderTimes) == 0 {
				return fmt.Errorf("no reminder times given")
			}
			if err := client.CreateEventReminder(cmd.Context(), args[0], reminder); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d reminder(s) for %s.\n", len(reminder.ReminderTimes), args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&message, "message", "", "Reminder message")
	cmd.Flags().StringVar(&medium, "medium", "", "Delivery medium (default: config default_medium)")
	cmd.Flags().StringArrayVar(&times, "at", nil, "Reminder time (repeatable)")

	return cmd
}

func mediumValues() string {
	var vals []string
	for _, m := range model.ReminderMediums() {
		vals = append(vals, string(m))
	}
	return strings.Join(vals, ", ")
}
