package cli

import (
	"fmt"
	"path/filepath"

	"planner-cli/internal/config"
	"planner-cli/internal/model"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and change settings",
	}
	cmd.AddCommand(newConfigShowCmd(app))
	cmd.AddCommand(newConfigPathCmd(app))
	cmd.AddCommand(newConfigSetCmd(app))
	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the active settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewStore(app.configDir()).LoadOrInit()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "base_url = %q\n", cfg.BaseURL)
			fmt.Fprintf(cmd.OutOrStdout(), "default_medium = %q\n", cfg.DefaultMedium)
			fmt.Fprintf(cmd.OutOrStdout(), "default_workspace = %q\n", cfg.DefaultWorkspace)
			return nil
		},
	}
}

func newConfigPathCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(app.configDir(), "config.toml"))
			return nil
		},
	}
}

func newConfigSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config key (base_url, default_medium, default_workspace)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := config.NewStore(app.configDir())
			cfg, err := store.LoadOrInit()
			if err != nil {
				return err
			}
			switch args[0] {
			case "base_url":
				cfg.BaseURL = args[1]
			case "default_medium":
				if !model.ValidReminderMedium(args[1]) {
					return fmt.Errorf("invalid medium %q (valid: %s)", args[1], mediumValues())
				}
				cfg.DefaultMedium = args[1]
			case "default_workspace":
				cfg.DefaultWorkspace = args[1]
			default:
				return fmt.Errorf("unknown config key %q", args[0])
			}
			if err := store.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %q\n", args[0], args[1])
			return nil
		},
	}
}
