package workflow

import (
	"context"

	"planner-cli/internal/cache"
	"planner-cli/internal/model"
	"planner-cli/internal/overlay"
)

const msgDeleteFailed = "Failed to delete folder."

type FolderDeleter interface {
	DeleteFolder(ctx context.Context, folderID string) error
}

// Deleter removes a folder after an explicit confirmation step. The record
// stays in the cache until the server confirms; there is no optimistic
// removal for an irreversible action.
type Deleter struct {
	scope    *Scope
	client   FolderDeleter
	cache    *cache.Collection[model.Folder]
	overlays *overlay.Coordinator

	pending  Pending
	targetID string
}

func NewDeleter(scope *Scope, client FolderDeleter, c *cache.Collection[model.Folder], o *overlay.Coordinator) *Deleter {
	return &Deleter{scope: scope, client: client, cache: c, overlays: o}
}

func (d *Deleter) Pending() Pending { return d.pending }

// TargetID is the folder awaiting confirmation or deletion.
func (d *Deleter) TargetID() string { return d.targetID }

// Request opens the confirmation modal for the folder; nothing is sent yet.
func (d *Deleter) Request(folderID string) {
	d.targetID = folderID
	d.pending = Pending{}
	d.overlays.OpenModal(overlay.ModalDeleteConfirm, folderID)
}

type DeleteDone struct {
	gen      int
	folderID string
	err      error
}

// Confirm fires the remote delete for the requested folder.
func (d *Deleter) Confirm(ctx context.Context) func() DeleteDone {
	gen := d.scope.Generation()
	id := d.targetID
	d.pending = Pending{Phase: PhaseInFlight}
	client := d.client
	return func() DeleteDone {
		return DeleteDone{gen: gen, folderID: id, err: client.DeleteFolder(ctx, id)}
	}
}

func (d *Deleter) Apply(done DeleteDone) {
	if !d.scope.Live(done.gen) {
		return
	}
	if done.err != nil {
		// Record stays put; the confirm surface shows the error and allows retry.
		d.pending = Pending{Phase: PhaseFailed, Err: userMessage(done.err, msgDeleteFailed)}
		return
	}
	d.cache.RemoveByID(done.folderID)
	d.pending = Pending{Phase: PhaseSucceeded}
	d.targetID = ""
	// Close the confirm modal and any dropdown still targeting the row.
	d.overlays.Dismiss()
}

// Cancel backs out of the confirmation without calling the server.
func (d *Deleter) Cancel() {
	d.targetID = ""
	d.pending = Pending{}
	d.overlays.Dismiss()
}
