package tui

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const uiStateFileName = "ui_state.json"

// uiState restores the last screen on relaunch. Best effort: callers tolerate
// missing or invalid data.
type uiState struct {
	Version     int    `json:"version"`
	WorkspaceID string `json:"workspaceId,omitempty"`
}

func loadUIState(dir string) uiState {
	b, err := os.ReadFile(filepath.Join(dir, uiStateFileName))
	if err != nil {
		return uiState{Version: 1}
	}
	var st uiState
	if err := json.Unmarshal(b, &st); err != nil {
		// Treat corrupted state as missing.
		return uiState{Version: 1}
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return st
}

func saveUIState(dir string, st uiState) {
	if dir == "" {
		return
	}
	st.Version = 1
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(filepath.Join(dir, uiStateFileName), b, 0o644)
}
