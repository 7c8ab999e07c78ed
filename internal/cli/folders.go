package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"planner-cli/internal/api"

	"github.com/spf13/cobra"
)

func newFoldersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folders",
		Short: "Manage folders in a workspace",
	}
	cmd.AddCommand(newFoldersListCmd(app))
	cmd.AddCommand(newFoldersRenameCmd(app))
	cmd.AddCommand(newFoldersDeleteCmd(app))
	cmd.AddCommand(newFoldersShareCmd(app))
	cmd.AddCommand(newFoldersAddUsersCmd(app))
	return cmd
}

func newFoldersListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List folders in the workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := loadClient(app, true)
			if err != nil {
				return err
			}
			ws, err := app.requireWorkspace(cfg)
			if err != nil {
				return err
			}
			folders, err := client.ListFolders(cmd.Context(), ws)
			if err != nil {
				var nf api.NotFoundError
				if errors.As(err, &nf) {
					// An empty workspace is a state, not a failure.
					fmt.Fprintln(cmd.OutOrStdout(), "No folders found. Create a folder to get started.")
					return nil
				}
				return err
			}
			for _, f := range folders {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", f.ID, f.Name)
			}
			return nil
		},
	}
}

func newFoldersRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <folder-id> <name>",
		Short: "Rename a folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := loadClient(app, true)
			if err != nil {
				return err
			}
			name := strings.TrimSpace(args[1])
			if name == "" {
				return fmt.Errorf("folder name must not be empty")
			}
			updated, err := client.UpdateFolder(cmd.Context(), args[0], name)
			if err != nil {
				return err
			}
			// Report the server's version of the record, not what was typed.
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %q.\n", updated.ID, updated.Name)
			return nil
		},
	}
}

func newFoldersDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <folder-id>",
		Short: "Delete a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := loadClient(app, true)
			if err != nil {
				return err
			}
			if !yes {
				ok, err := confirm(cmd, fmt.Sprintf("Delete folder %s? This cannot be undone. [y/N] ", args[0]))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			if err := client.DeleteFolder(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Folder deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	return cmd
}

func newFoldersShareCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "share <folder-id> <email>",
		Short: "Share a folder with a user by email",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := loadClient(app, true)
			if err != nil {
				return err
			}
			if err := client.ShareFolder(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Shared %s with %s.\n", args[0], args[1])
			return nil
		},
	}
}

func newFoldersAddUsersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add-users <folder-id> <user-id>...",
		Short: "Add users to a folder by id",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := loadClient(app, true)
			if err != nil {
				return err
			}
			if err := client.AddFolderUsers(cmd.Context(), args[0], args[1:]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d user(s) to %s.\n", len(args)-1, args[0])
			return nil
		},
	}
}

func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
