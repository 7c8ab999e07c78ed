package tui

import (
	"fmt"

	"planner-cli/internal/api"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive folder browser. workspaceID may be empty, in
// which case the last-used workspace is restored if one was saved.
func Run(client *api.Client, stateDir, workspaceID string) error {
	applyColorProfilePreference()
	p := tea.NewProgram(newAppModel(client, stateDir, workspaceID), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
