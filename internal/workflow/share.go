package workflow

import (
	"context"

	"planner-cli/internal/overlay"
)

const (
	msgShareFailed    = "Failed to share folder."
	msgAddUsersFailed = "Failed to add users to folder."
)

type FolderSharer interface {
	ShareFolder(ctx context.Context, folderID, email string) error
}

type FolderUserAdder interface {
	AddFolderUsers(ctx context.Context, folderID string, userIDs []string) error
}

// Sharer grants one user access to a folder by email. The share relationship
// is not part of the cached folder shape, so success changes no cache state;
// it just reports succeeded and the surface dismisses after the confirmation
// delay.
type Sharer struct {
	scope    *Scope
	client   FolderSharer
	overlays *overlay.Coordinator

	pending  Pending
	targetID string
}

func NewSharer(scope *Scope, client FolderSharer, o *overlay.Coordinator) *Sharer {
	return &Sharer{scope: scope, client: client, overlays: o}
}

func (s *Sharer) Pending() Pending { return s.pending }
func (s *Sharer) TargetID() string { return s.targetID }

func (s *Sharer) Open(folderID string) {
	s.targetID = folderID
	s.pending = Pending{}
	s.overlays.OpenModal(overlay.ModalShare, folderID)
}

type ShareDone struct {
	gen int
	err error
}

func (s *Sharer) Submit(ctx context.Context, email string) func() ShareDone {
	gen := s.scope.Generation()
	id := s.targetID
	s.pending = Pending{Phase: PhaseInFlight}
	client := s.client
	return func() ShareDone {
		return ShareDone{gen: gen, err: client.ShareFolder(ctx, id, email)}
	}
}

func (s *Sharer) Apply(done ShareDone) {
	if !s.scope.Live(done.gen) {
		return
	}
	if done.err != nil {
		s.pending = Pending{Phase: PhaseFailed, Err: userMessage(done.err, msgShareFailed)}
		return
	}
	s.pending = Pending{Phase: PhaseSucceeded}
}

// Close resets the workflow when its surface goes away.
func (s *Sharer) Close() {
	s.targetID = ""
	s.pending = Pending{}
	s.overlays.Dismiss()
}

// UserAdder attaches existing users to a folder by id. Same surface contract
// as Sharer: inline error keeps the modal open, success dismisses it.
type UserAdder struct {
	scope    *Scope
	client   FolderUserAdder
	overlays *overlay.Coordinator

	pending  Pending
	targetID string
}

func NewUserAdder(scope *Scope, client FolderUserAdder, o *overlay.Coordinator) *UserAdder {
	return &UserAdder{scope: scope, client: client, overlays: o}
}

func (u *UserAdder) Pending() Pending { return u.pending }
func (u *UserAdder) TargetID() string { return u.targetID }

func (u *UserAdder) Open(folderID string) {
	u.targetID = folderID
	u.pending = Pending{}
	u.overlays.OpenModal(overlay.ModalAddUsers, folderID)
}

type AddUsersDone struct {
	gen int
	err error
}

func (u *UserAdder) Submit(ctx context.Context, userIDs []string) func() AddUsersDone {
	gen := u.scope.Generation()
	id := u.targetID
	u.pending = Pending{Phase: PhaseInFlight}
	client := u.client
	return func() AddUsersDone {
		return AddUsersDone{gen: gen, err: client.AddFolderUsers(ctx, id, userIDs)}
	}
}

func (u *UserAdder) Apply(done AddUsersDone) {
	if !u.scope.Live(done.gen) {
		return
	}
	if done.err != nil {
		u.pending = Pending{Phase: PhaseFailed, Err: userMessage(done.err, msgAddUsersFailed)}
		return
	}
	u.pending = Pending{Phase: PhaseSucceeded}
}

func (u *UserAdder) Close() {
	u.targetID = ""
	u.pending = Pending{}
	u.overlays.Dismiss()
}
