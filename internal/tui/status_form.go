package tui

import (
	"context"
	"fmt"
	"strings"

	"planner-cli/internal/api"
	"planner-cli/internal/model"
	"planner-cli/internal/overlay"
	"planner-cli/internal/workflow"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type statusDoneMsg struct{ done workflow.StatusDone }

type statusFormModel struct {
	updater  *workflow.StatusUpdater
	subtask  model.Subtask
	statuses []model.SubtaskStatus
	cursor   int
	width    int
	height   int
	quitting bool
	err      error
}

func newStatusFormModel(client *api.Client, subtask model.Subtask) statusFormModel {
	scope := workflow.NewScope()
	updater := workflow.NewStatusUpdater(scope, client, overlay.New())
	updater.Open(subtask)
	statuses := model.SubtaskStatuses()
	cursor := 0
	for i, s := range statuses {
		if s == subtask.Status {
			cursor = i
		}
	}
	return statusFormModel{updater: updater, subtask: subtask, statuses: statuses, cursor: cursor}
}

func (m statusFormModel) Init() tea.Cmd { return nil }

func (m statusFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case statusDoneMsg:
		m.updater.Apply(msg.done)
		if m.updater.Pending().Succeeded() {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		if m.updater.Pending().InFlight() {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.updater.Close()
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.statuses)-1 {
				m.cursor++
			}
		case "enter":
			run := m.updater.Submit(context.Background(), m.statuses[m.cursor])
			return m, func() tea.Msg { return statusDoneMsg{done: run()} }
		}
	}
	return m, nil
}

func (m statusFormModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(styleTitle().Render("Update subtask status"))
	b.WriteString("\n\n")
	b.WriteString(m.subtask.Name + "\n\n")
	for i, s := range m.statuses {
		row := "  " + s.Label() + "  "
		if i == m.cursor {
			row = lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorSelectedFg).Render(row)
		}
		b.WriteString(row + "\n")
	}
	b.WriteString("\n")
	if m.updater.Pending().InFlight() {
		b.WriteString(styleMuted().Render("Updating...") + "\n")
	}
	if m.updater.Pending().Failed() {
		b.WriteString(styleError().Render(m.updater.Pending().Err) + "\n")
	}
	b.WriteString(styleMuted().Render("enter update · esc cancel"))
	return b.String()
}

// RunStatusForm opens an interactive picker for the subtask's status and
// submits the chosen value. Returns the confirmed status, or ok=false when
// the user cancelled.
func RunStatusForm(client *api.Client, subtask model.Subtask) (model.SubtaskStatus, bool, error) {
	applyColorProfilePreference()
	p := tea.NewProgram(newStatusFormModel(client, subtask))
	final, err := p.Run()
	if err != nil {
		return "", false, fmt.Errorf("run status form: %w", err)
	}
	m := final.(statusFormModel)
	if !m.updater.Pending().Succeeded() {
		return "", false, nil
	}
	return m.statuses[m.cursor], true, nil
}
