package tui

import (
	"context"
	"fmt"
	"strings"

	"planner-cli/internal/api"
	"planner-cli/internal/model"
	"planner-cli/internal/overlay"
	"planner-cli/internal/workflow"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type reminderDoneMsg struct{ done workflow.ReminderDone }

type reminderFormModel struct {
	form    *workflow.ReminderForm
	message string
	medium  model.ReminderMedium

	timeInput textinput.Model
	cursor    int
	quitting  bool
	localErr  string
}

func newReminderFormModel(client *api.Client, eventID, message string, medium model.ReminderMedium) reminderFormModel {
	scope := workflow.NewScope()
	form := workflow.NewReminderForm(scope, client, overlay.New())
	form.Open(eventID)

	ti := textinput.New()
	ti.Placeholder = "e.g. 2026-09-01T09:00"
	ti.CharLimit = 64
	ti.Width = 32
	ti.Focus()

	return reminderFormModel{form: form, message: message, medium: medium, timeInput: ti}
}

func (m reminderFormModel) Init() tea.Cmd { return textinput.Blink }

func (m reminderFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reminderDoneMsg:
		m.form.Apply(msg.done)
		if m.form.Pending().Succeeded() {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		if m.form.Pending().InFlight() {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}
		m.localErr = ""
		switch msg.String() {
		case "ctrl+c", "esc":
			m.form.Close()
			return m, tea.Quit
		case "enter":
			t := strings.TrimSpace(m.timeInput.Value())
			if t == "" {
				m.localErr = "Enter a reminder time first."
				return m, nil
			}
			m.form.Add(t)
			m.timeInput.SetValue("")
			return m, nil
		case "ctrl+d":
			entries := m.form.Entries()
			if m.cursor < len(entries) {
				m.form.Remove(entries[m.cursor].ID)
				if m.cursor > 0 && m.cursor >= len(entries)-1 {
					m.cursor--
				}
			}
			return m, nil
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down":
			if m.cursor < len(m.form.Entries())-1 {
				m.cursor++
			}
			return m, nil
		case "ctrl+s":
			if len(m.form.Entries()) == 0 {
				m.localErr = "Add at least one reminder time."
				return m, nil
			}
			run := m.form.Submit(context.Background(), m.message, m.medium)
			return m, func() tea.Msg { return reminderDoneMsg{done: run()} }
		}
	}
	var cmd tea.Cmd
	m.timeInput, cmd = m.timeInput.Update(msg)
	return m, cmd
}

func (m reminderFormModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(styleTitle().Render("Event reminders"))
	b.WriteString("\n\n")
	b.WriteString(m.message + "  " + styleMuted().Render("via "+string(m.medium)))
	b.WriteString("\n\n")
	b.WriteString(m.timeInput.View())
	b.WriteString("\n\n")

	entries := m.form.Entries()
	if len(entries) == 0 {
		b.WriteString(styleMuted().Render("No reminder times yet.") + "\n")
	}
	for i, e := range entries {
		row := "  " + e.Time + "  "
		if i == m.cursor {
			row = lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorSelectedFg).Render(row)
		}
		b.WriteString(row + "\n")
	}
	b.WriteString("\n")
	if m.localErr != "" {
		b.WriteString(styleError().Render(m.localErr) + "\n")
	}
	if m.form.Pending().InFlight() {
		b.WriteString(styleMuted().Render("Saving reminders...") + "\n")
	}
	if m.form.Pending().Failed() {
		b.WriteString(styleError().Render(m.form.Pending().Err) + "\n")
	}
	b.WriteString(styleMuted().Render("enter add · ctrl+d remove · ctrl+s save · esc cancel"))
	return b.String()
}

// RunReminderForm opens an interactive form that accumulates reminder times
// locally and saves them as one request. Returns the number of times saved,
// or ok=false when the user cancelled without saving.
func RunReminderForm(client *api.Client, eventID, message string, medium model.ReminderMedium) (int, bool, error) {
	applyColorProfilePreference()
	p := tea.NewProgram(newReminderFormModel(client, eventID, message, medium))
	final, err := p.Run()
	if err != nil {
		return 0, false, fmt.Errorf("run reminder form: %w", err)
	}
	m := final.(reminderFormModel)
	if !m.form.Pending().Succeeded() {
		return 0, false, nil
	}
	return len(m.form.Entries()), true, nil
}
