package cli

import (
	"fmt"
	"os"
	"strings"

	"planner-cli/internal/docs"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show on-demand documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Topics:")
				for _, t := range docs.Topics() {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", t)
				}
				return nil
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return fmt.Errorf("unknown docs topic: %q (run `planner docs` to list topics)", topic)
			}

			if raw {
				fmt.Fprint(cmd.OutOrStdout(), body)
				return nil
			}

			// Avoid WithAutoStyle: it can block waiting on terminal queries in some setups.
			r, err := glamour.NewTermRenderer(
				glamour.WithStandardStyle(markdownStyle()),
				glamour.WithWordWrap(100),
			)
			if err != nil {
				fmt.Fprint(cmd.OutOrStdout(), body)
				return nil
			}
			out, err := r.Render(strings.TrimSpace(body))
			if err != nil {
				fmt.Fprint(cmd.OutOrStdout(), body)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown")
	return cmd
}

func markdownStyle() string {
	// Explicit override for debugging / accessibility.
	switch strings.ToLower(strings.TrimSpace(os.Getenv("PLANNER_MD_STYLE"))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	if os.Getenv("NO_COLOR") != "" {
		return "notty"
	}
	return "dark"
}
