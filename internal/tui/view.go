package tui

import (
	"fmt"
	"strings"

	"planner-cli/internal/overlay"
	"planner-cli/internal/workflow"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.screen == screenWorkspaces {
		return m.viewWorkspaces()
	}
	return m.viewFolders()
}

func (m appModel) viewWorkspaces() string {
	var b strings.Builder
	b.WriteString(styleTitle().Render("Workspaces"))
	b.WriteString("\n\n")
	if m.workspaceErr != "" {
		b.WriteString(styleError().Render(m.workspaceErr))
		b.WriteString("\n\n")
	}
	b.WriteString(m.workspaceList.View())
	b.WriteString("\n")
	b.WriteString(styleMuted().Render("enter open · r refresh · q quit"))
	return normalizePane(b.String(), m.width, m.height)
}

func (m appModel) viewFolders() string {
	base := m.renderFoldersBase()

	st := m.overlays.State()
	switch st.Kind {
	case overlay.KindDropdown:
		return overlayCenter(base, m.renderDropdown(st), m.width, m.height)
	case overlay.KindModal:
		return overlayCenter(base, m.renderModal(st), m.width, m.height)
	}
	return base
}

func (m appModel) renderFoldersBase() string {
	var b strings.Builder
	b.WriteString(styleTitle().Render("Folders"))
	b.WriteString("\n\n")

	switch {
	case m.lister.Pending().InFlight():
		b.WriteString(styleMuted().Render("Loading folders..."))
		b.WriteString("\n")
	case m.lister.Pending().Failed():
		b.WriteString(styleError().Render(m.lister.Pending().Err))
		b.WriteString("\n")
	case m.folders.Len() == 0 && m.lister.EmptyMessage() != "":
		b.WriteString(styleMuted().Render(m.lister.EmptyMessage()))
		b.WriteString("\n")
	default:
		b.WriteString(m.folderList.View())
	}

	b.WriteString("\n")
	if m.flash != "" {
		b.WriteString(styleSuccess().Render(m.flash))
		b.WriteString("\n")
	}
	b.WriteString(styleMuted().Render("enter actions · r refresh · esc workspaces · q quit"))
	return normalizePane(b.String(), m.width, m.height)
}

func (m appModel) renderDropdown(st overlay.State) string {
	name := st.TargetID
	if f, ok := m.folders.Get(st.TargetID); ok {
		name = f.Name
	}
	var rows []string
	for i, action := range dropdownActions {
		row := "  " + action + "  "
		if i == m.dropdownIdx {
			row = lipgloss.NewStyle().
				Background(colorSelectedBg).
				Foreground(colorSelectedFg).
				Render(row)
		}
		rows = append(rows, row)
	}
	return renderModalBox(m.width, name, strings.Join(rows, "\n"))
}

func (m appModel) renderModal(st overlay.State) string {
	switch st.Modal {
	case overlay.ModalDeleteConfirm:
		return m.renderDeleteConfirm()
	case overlay.ModalEdit:
		return m.renderInputModal("Edit Folder", m.editor.Pending(), "enter save · esc cancel")
	case overlay.ModalShare:
		return m.renderShareModal("Share to user", m.sharer.Pending(), "Folder shared.")
	case overlay.ModalAddUsers:
		return m.renderShareModal("Add users to folder", m.userAdder.Pending(), "Users added to folder.")
	}
	return ""
}

func (m appModel) renderDeleteConfirm() string {
	name := m.deleter.TargetID()
	if f, ok := m.folders.Get(m.deleter.TargetID()); ok {
		name = f.Name
	}
	body := fmt.Sprintf("Delete %q? This cannot be undone.", name)
	if m.deleter.Pending().InFlight() {
		body += "\n\n" + styleMuted().Render("Deleting...")
	}
	if m.deleter.Pending().Failed() {
		body += "\n\n" + styleError().Render(m.deleter.Pending().Err)
	}
	return renderConfirmModal(m.width, "Delete Folder", body, "Delete", "Cancel", m.confirmFocus)
}

func (m appModel) renderInputModal(title string, p workflow.Pending, help string) string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if p.InFlight() {
		b.WriteString("\n" + styleMuted().Render("Saving...") + "\n")
	}
	if p.Failed() {
		b.WriteString("\n" + styleError().Render(p.Err) + "\n")
	}
	b.WriteString("\n" + styleMuted().Render(help))
	return renderModalBox(m.width, title, b.String())
}

func (m appModel) renderShareModal(title string, p workflow.Pending, successMsg string) string {
	if p.Succeeded() {
		return renderModalBox(m.width, title, styleSuccess().Render(successMsg))
	}
	return m.renderInputModal(title, p, "enter submit · esc cancel")
}
