package tui

import (
	"context"
	"strings"
	"time"

	"planner-cli/internal/api"
	"planner-cli/internal/cache"
	"planner-cli/internal/model"
	"planner-cli/internal/overlay"
	"planner-cli/internal/workflow"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenWorkspaces screen = iota
	screenFolders
)

// successDismissDelay keeps the confirmation visible before the surface
// auto-closes, matching the product's two-second flash.
const successDismissDelay = 2 * time.Second

type workspacesLoadedMsg struct {
	workspaces []model.Workspace
	err        error
}

type foldersLoadedMsg struct{ done workflow.ListDone }
type deleteDoneMsg struct{ done workflow.DeleteDone }
type editDoneMsg struct{ done workflow.EditDone }
type shareDoneMsg struct{ done workflow.ShareDone }
type addUsersDoneMsg struct{ done workflow.AddUsersDone }

type dismissTickMsg struct{ seq int }

var dropdownActions = []string{
	"Share to user",
	"Add users to folder",
	"Edit Folder",
	"Delete Folder",
}

type appModel struct {
	client   *api.Client
	stateDir string

	width  int
	height int
	screen screen

	workspaceList list.Model
	workspaceErr  string
	workspaceID   string

	folderList list.Model

	// Per-mounted-workspace state; rebuilt on every mount, discarded on unmount.
	scope     *workflow.Scope
	folders   *cache.Collection[model.Folder]
	overlays  *overlay.Coordinator
	lister    *workflow.Lister
	deleter   *workflow.Deleter
	editor    *workflow.Editor
	sharer    *workflow.Sharer
	userAdder *workflow.UserAdder

	dropdownIdx  int
	confirmFocus confirmModalFocus
	input        textinput.Model

	dismissSeq int
	flash      string
}

func newAppModel(client *api.Client, stateDir, workspaceID string) appModel {
	m := appModel{
		client:   client,
		stateDir: stateDir,
		screen:   screenWorkspaces,
	}

	m.workspaceList = newList("Workspaces", "workspace", []list.Item{})
	m.folderList = newList("Folders", "folder", []list.Item{})

	m.input = textinput.New()
	m.input.CharLimit = 200
	m.input.Width = 40

	if workspaceID == "" {
		workspaceID = loadUIState(stateDir).WorkspaceID
	}
	if workspaceID != "" {
		m.mountWorkspace(workspaceID)
	}
	return m
}

// mountWorkspace creates the scope-owned state for one workspace: its cache,
// its overlay coordinator, and the workflows that mutate them.
func (m *appModel) mountWorkspace(workspaceID string) {
	m.workspaceID = workspaceID
	m.screen = screenFolders

	m.scope = workflow.NewScope()
	m.folders = cache.New[model.Folder]()
	m.overlays = overlay.New()
	m.lister = workflow.NewLister(m.scope, m.client, m.folders)
	m.deleter = workflow.NewDeleter(m.scope, m.client, m.folders, m.overlays)
	m.editor = workflow.NewEditor(m.scope, m.client, m.folders, m.overlays)
	m.sharer = workflow.NewSharer(m.scope, m.client, m.overlays)
	m.userAdder = workflow.NewUserAdder(m.scope, m.client, m.overlays)

	saveUIState(m.stateDir, uiState{WorkspaceID: workspaceID})
}

// unmountWorkspace closes the scope so in-flight completions become no-ops.
func (m *appModel) unmountWorkspace() {
	if m.scope != nil {
		m.scope.Close()
	}
	m.workspaceID = ""
	m.screen = screenWorkspaces
	m.flash = ""
	saveUIState(m.stateDir, uiState{})
}

func (m appModel) Init() tea.Cmd {
	if m.screen == screenFolders {
		return m.loadFoldersCmd()
	}
	return m.loadWorkspacesCmd()
}

func (m appModel) loadWorkspacesCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ws, err := client.ListWorkspaces(context.Background())
		return workspacesLoadedMsg{workspaces: ws, err: err}
	}
}

func (m appModel) loadFoldersCmd() tea.Cmd {
	run := m.lister.Start(context.Background(), m.workspaceID)
	return func() tea.Msg { return foldersLoadedMsg{done: run()} }
}

func (m *appModel) scheduleDismiss() tea.Cmd {
	m.dismissSeq++
	seq := m.dismissSeq
	return tea.Tick(successDismissDelay, func(time.Time) tea.Msg { return dismissTickMsg{seq: seq} })
}

func (m *appModel) syncFolderList() {
	var items []list.Item
	for _, f := range m.folders.Records() {
		items = append(items, folderItem{folder: f})
	}
	m.folderList.SetItems(items)
}

func (m *appModel) selectedFolder() (model.Folder, bool) {
	it, ok := m.folderList.SelectedItem().(folderItem)
	if !ok {
		return model.Folder{}, false
	}
	return it.folder, true
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.workspaceList.SetSize(msg.Width-4, msg.Height-6)
		m.folderList.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case workspacesLoadedMsg:
		if msg.err != nil {
			m.workspaceErr = "Failed to fetch workspaces. Please try again."
			return m, nil
		}
		m.workspaceErr = ""
		var items []list.Item
		for _, w := range msg.workspaces {
			items = append(items, workspaceItem{workspace: w})
		}
		m.workspaceList.SetItems(items)
		return m, nil

	case foldersLoadedMsg:
		if m.lister == nil {
			return m, nil
		}
		m.lister.Apply(msg.done)
		m.syncFolderList()
		return m, nil

	case deleteDoneMsg:
		if m.deleter == nil {
			return m, nil
		}
		m.deleter.Apply(msg.done)
		if m.deleter.Pending().Succeeded() {
			m.syncFolderList()
			m.flash = "Folder deleted."
		}
		return m, nil

	case editDoneMsg:
		if m.editor == nil {
			return m, nil
		}
		m.editor.Apply(msg.done)
		if m.editor.Pending().Succeeded() {
			m.syncFolderList()
			m.flash = "Folder updated."
		}
		return m, nil

	case shareDoneMsg:
		if m.sharer == nil {
			return m, nil
		}
		m.sharer.Apply(msg.done)
		if m.sharer.Pending().Succeeded() {
			return m, m.scheduleDismiss()
		}
		return m, nil

	case addUsersDoneMsg:
		if m.userAdder == nil {
			return m, nil
		}
		m.userAdder.Apply(msg.done)
		if m.userAdder.Pending().Succeeded() {
			return m, m.scheduleDismiss()
		}
		return m, nil

	case dismissTickMsg:
		// Debounce: only the latest scheduled dismiss closes the surface.
		if msg.seq != m.dismissSeq {
			return m, nil
		}
		if m.sharer != nil && m.sharer.Pending().Succeeded() {
			m.sharer.Close()
		}
		if m.userAdder != nil && m.userAdder.Pending().Succeeded() {
			m.userAdder.Close()
		}
		return m, nil

	case tea.MouseMsg:
		// Any pointer interaction counts as outside the active surface; precise
		// hit testing is not worth it in a cell grid.
		if m.overlays != nil && !m.overlays.State().IsNone() {
			m.dismissActiveSurface()
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

// dismissActiveSurface routes an outside interaction to whichever workflow
// owns the active surface so its pending state resets with it.
func (m *appModel) dismissActiveSurface() {
	st := m.overlays.State()
	switch st.Kind {
	case overlay.KindDropdown:
		m.overlays.OutsideInteraction()
	case overlay.KindModal:
		switch st.Modal {
		case overlay.ModalDeleteConfirm:
			m.deleter.Cancel()
		case overlay.ModalEdit:
			m.editor.Cancel()
		case overlay.ModalShare:
			m.sharer.Close()
		case overlay.ModalAddUsers:
			m.userAdder.Close()
		default:
			m.overlays.OutsideInteraction()
		}
	}
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		if m.scope != nil {
			m.scope.Close()
		}
		return m, tea.Quit
	}

	if m.screen == screenWorkspaces {
		return m.updateWorkspacesKey(msg)
	}

	st := m.overlays.State()
	switch st.Kind {
	case overlay.KindModal:
		return m.updateModalKey(msg, st)
	case overlay.KindDropdown:
		return m.updateDropdownKey(msg, st)
	}
	return m.updateFoldersKey(msg)
}

func (m appModel) updateWorkspacesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "r":
		return m, m.loadWorkspacesCmd()
	case "enter":
		if it, ok := m.workspaceList.SelectedItem().(workspaceItem); ok {
			m.mountWorkspace(it.workspace.ID)
			return m, m.loadFoldersCmd()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.workspaceList, cmd = m.workspaceList.Update(msg)
	return m, cmd
}

func (m appModel) updateFoldersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.flash = ""
	switch msg.String() {
	case "q":
		if m.scope != nil {
			m.scope.Close()
		}
		return m, tea.Quit
	case "esc", "backspace":
		m.unmountWorkspace()
		return m, m.loadWorkspacesCmd()
	case "r":
		return m, m.loadFoldersCmd()
	case "enter", "m":
		if f, ok := m.selectedFolder(); ok {
			m.dropdownIdx = 0
			m.overlays.OpenDropdown(f.ID)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.folderList, cmd = m.folderList.Update(msg)
	return m, cmd
}

func (m appModel) updateDropdownKey(msg tea.KeyMsg, st overlay.State) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.dropdownIdx > 0 {
			m.dropdownIdx--
		}
		return m, nil
	case "down", "j":
		if m.dropdownIdx < len(dropdownActions)-1 {
			m.dropdownIdx++
		}
		return m, nil
	case "m":
		// Toggle-close on the key that opened it.
		m.overlays.OpenDropdown(st.TargetID)
		return m, nil
	case "esc":
		m.overlays.OutsideInteraction()
		return m, nil
	case "enter":
		return m.applyDropdownAction(st.TargetID)
	}
	// Every other key is an interaction outside the dropdown's bounds.
	m.overlays.OutsideInteraction()
	return m, nil
}

func (m appModel) applyDropdownAction(folderID string) (tea.Model, tea.Cmd) {
	folder, ok := m.folders.Get(folderID)
	if !ok {
		m.overlays.Dismiss()
		return m, nil
	}
	switch m.dropdownIdx {
	case 0:
		m.sharer.Open(folderID)
		m.input.SetValue("")
		m.input.Placeholder = "user@example.com"
		m.input.Focus()
	case 1:
		m.userAdder.Open(folderID)
		m.input.SetValue("")
		m.input.Placeholder = "user ids, comma separated"
		m.input.Focus()
	case 2:
		m.editor.Open(folder)
		m.input.SetValue(folder.Name)
		m.input.Placeholder = "Folder name"
		m.input.Focus()
	case 3:
		m.deleter.Request(folderID)
		m.confirmFocus = confirmFocusCancel
	}
	return m, nil
}

func (m appModel) updateModalKey(msg tea.KeyMsg, st overlay.State) (tea.Model, tea.Cmd) {
	switch st.Modal {
	case overlay.ModalDeleteConfirm:
		return m.updateDeleteConfirmKey(msg)
	case overlay.ModalEdit:
		return m.updateEditKey(msg)
	case overlay.ModalShare:
		return m.updateShareKey(msg)
	case overlay.ModalAddUsers:
		return m.updateAddUsersKey(msg)
	}
	if msg.String() == "esc" {
		m.overlays.Dismiss()
	}
	return m, nil
}

func (m appModel) updateDeleteConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.deleter.Pending().InFlight() {
		return m, nil
	}
	switch msg.String() {
	case "tab", "left", "right":
		if m.confirmFocus == confirmFocusCancel {
			m.confirmFocus = confirmFocusConfirm
		} else {
			m.confirmFocus = confirmFocusCancel
		}
		return m, nil
	case "y":
		m.confirmFocus = confirmFocusConfirm
		return m, m.confirmDeleteCmd()
	case "n", "esc":
		m.deleter.Cancel()
		return m, nil
	case "enter":
		if m.confirmFocus == confirmFocusConfirm {
			return m, m.confirmDeleteCmd()
		}
		m.deleter.Cancel()
		return m, nil
	}
	return m, nil
}

func (m appModel) confirmDeleteCmd() tea.Cmd {
	run := m.deleter.Confirm(context.Background())
	return func() tea.Msg { return deleteDoneMsg{done: run()} }
}

func (m appModel) updateEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editor.Pending().InFlight() {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.editor.Cancel()
		m.input.Blur()
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			return m, nil
		}
		run := m.editor.Submit(context.Background(), name)
		return m, func() tea.Msg { return editDoneMsg{done: run()} }
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateShareKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.sharer.Pending().InFlight() {
		return m, nil
	}
	if m.sharer.Pending().Succeeded() {
		// Success flash is up; any key closes early.
		m.sharer.Close()
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.sharer.Close()
		m.input.Blur()
		return m, nil
	case "enter":
		email := strings.TrimSpace(m.input.Value())
		if email == "" {
			return m, nil
		}
		run := m.sharer.Submit(context.Background(), email)
		return m, func() tea.Msg { return shareDoneMsg{done: run()} }
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateAddUsersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.userAdder.Pending().InFlight() {
		return m, nil
	}
	if m.userAdder.Pending().Succeeded() {
		m.userAdder.Close()
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.userAdder.Close()
		m.input.Blur()
		return m, nil
	case "enter":
		var ids []string
		for _, part := range strings.Split(m.input.Value(), ",") {
			if p := strings.TrimSpace(part); p != "" {
				ids = append(ids, p)
			}
		}
		if len(ids) == 0 {
			return m, nil
		}
		run := m.userAdder.Submit(context.Background(), ids)
		return m, func() tea.Msg { return addUsersDoneMsg{done: run()} }
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}
