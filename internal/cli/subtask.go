package cli

import (
	"fmt"
	"strings"

	"planner-cli/internal/model"
	"planner-cli/internal/tui"

	"github.com/spf13/cobra"
)

func newSubtaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtask",
		Short: "Manage subtasks",
	}
	cmd.AddCommand(newSubtaskStatusCmd(app))
	return cmd
}

func newSubtaskStatusCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "status <sub-task-id> [status]",
		Short: "Update a subtask's status",
		Long: "Update a subtask's status. Omit the status to pick interactively.\n" +
			"Valid values: " + statusValues() + ".",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := loadClient(app, true)
			if err != nil {
				return err
			}

			if len(args) == 2 {
				if !model.ValidSubtaskStatus(args[1]) {
					return fmt.Errorf("invalid status %q (valid: %s)", args[1], statusValues())
				}
				status := model.SubtaskStatus(args[1])
				if err := client.UpdateSubtaskStatus(cmd.Context(), args[0], status); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Subtask %s is now %s.\n", args[0], status.Label())
				return nil
			}

			subtask := model.Subtask{ID: args[0], Name: name}
			status, ok, err := tui.RunStatusForm(client, subtask)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Subtask %s is now %s.\n", args[0], status.Label())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Subtask name shown in the picker (optional)")
	return cmd
}

func statusValues() string {
	var vals []string
	for _, s := range model.SubtaskStatuses() {
		vals = append(vals, string(s))
	}
	return strings.Join(vals, ", ")
}
