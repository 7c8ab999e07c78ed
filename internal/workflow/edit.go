package workflow

import (
	"context"

	"planner-cli/internal/cache"
	"planner-cli/internal/model"
	"planner-cli/internal/overlay"
)

const msgEditFailed = "Failed to update folder."

type FolderUpdater interface {
	UpdateFolder(ctx context.Context, folderID, name string) (model.Folder, error)
}

// Editor renames a folder through the edit modal. On failure the modal stays
// open with the user's input intact so they can retry; on success the server's
// record replaces the cached one and the modal closes.
type Editor struct {
	scope    *Scope
	client   FolderUpdater
	cache    *cache.Collection[model.Folder]
	overlays *overlay.Coordinator

	pending Pending
	target  model.Folder
}

func NewEditor(scope *Scope, client FolderUpdater, c *cache.Collection[model.Folder], o *overlay.Coordinator) *Editor {
	return &Editor{scope: scope, client: client, cache: c, overlays: o}
}

func (e *Editor) Pending() Pending     { return e.pending }
func (e *Editor) Target() model.Folder { return e.target }

// Open shows the edit modal prefilled with the folder being edited.
func (e *Editor) Open(folder model.Folder) {
	e.target = folder
	e.pending = Pending{}
	e.overlays.OpenModal(overlay.ModalEdit, folder)
}

type EditDone struct {
	gen     int
	updated model.Folder
	err     error
}

func (e *Editor) Submit(ctx context.Context, name string) func() EditDone {
	gen := e.scope.Generation()
	id := e.target.ID
	e.pending = Pending{Phase: PhaseInFlight}
	client := e.client
	return func() EditDone {
		updated, err := client.UpdateFolder(ctx, id, name)
		return EditDone{gen: gen, updated: updated, err: err}
	}
}

func (e *Editor) Apply(done EditDone) {
	if !e.scope.Live(done.gen) {
		return
	}
	if done.err != nil {
		// Keep the modal open; the inline message allows retry without re-entering data.
		e.pending = Pending{Phase: PhaseFailed, Err: userMessage(done.err, msgEditFailed)}
		return
	}
	e.cache.Upsert(done.updated)
	e.pending = Pending{Phase: PhaseSucceeded}
	e.target = model.Folder{}
	e.overlays.Dismiss()
}

func (e *Editor) Cancel() {
	e.target = model.Folder{}
	e.pending = Pending{}
	e.overlays.Dismiss()
}
