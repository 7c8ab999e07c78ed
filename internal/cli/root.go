package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"planner-cli/internal/api"
	"planner-cli/internal/config"
	"planner-cli/internal/session"
	"planner-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	BaseURL   string
	ConfigDir string
	Workspace string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "planner",
		Short:        "Timeless Planner terminal client",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive workspace browser
  planner

  # Scriptable commands
  planner folders list --workspace ws-123
  planner subtask status st-7 completed
  planner event remind ev-9 --message "Standup" --medium email --at 2026-09-01T09:00
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive browser.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runBrowser(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.BaseURL, "base-url", envOr("PLANNER_BASE_URL", ""), "API base URL (overrides config)")
	cmd.PersistentFlags().StringVar(&app.ConfigDir, "config-dir", envOr("PLANNER_CONFIG_DIR", ""), "Config and state directory")
	cmd.PersistentFlags().StringVar(&app.Workspace, "workspace", envOr("PLANNER_WORKSPACE", ""), "Workspace id (default: config default_workspace)")

	cmd.AddCommand(newAuthCmd(app))
	cmd.AddCommand(newFoldersCmd(app))
	cmd.AddCommand(newSubtaskCmd(app))
	cmd.AddCommand(newEventCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runBrowser(app *App) error {
	client, cfg, err := loadClient(app, true)
	if err != nil {
		return err
	}
	ws := app.Workspace
	if ws == "" {
		ws = cfg.DefaultWorkspace
	}
	return tui.Run(client, app.configDir(), ws)
}

func (app *App) configDir() string {
	if app.ConfigDir != "" {
		return app.ConfigDir
	}
	return config.DefaultDir()
}

func (app *App) sessionStore() session.Store {
	return session.Store{Dir: app.configDir()}
}

// loadClient builds an API client from config plus the stored session.
// requireAuth fails fast with a login hint instead of letting a request
// bounce off the server unauthenticated.
func loadClient(app *App, requireAuth bool) (*api.Client, config.Config, error) {
	cfg, err := config.NewStore(app.configDir()).LoadOrInit()
	if err != nil {
		return nil, config.Config{}, err
	}
	baseURL := cfg.BaseURL
	if app.BaseURL != "" {
		baseURL = strings.TrimRight(app.BaseURL, "/")
	}

	store := app.sessionStore()
	sess, err := store.Load(context.Background())
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("load session: %w", err)
	}
	if requireAuth && !sess.Authenticated() {
		return nil, config.Config{}, fmt.Errorf("not signed in (run `planner auth login --email <email>`)")
	}

	client := api.New(baseURL, func() string { return sess.AccessToken })
	return client, cfg, nil
}

func (app *App) requireWorkspace(cfg config.Config) (string, error) {
	if app.Workspace != "" {
		return app.Workspace, nil
	}
	if cfg.DefaultWorkspace != "" {
		return cfg.DefaultWorkspace, nil
	}
	return "", fmt.Errorf("no workspace selected (pass --workspace or set default_workspace in config)")
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
