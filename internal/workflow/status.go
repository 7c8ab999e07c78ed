package workflow

import (
	"context"

	"planner-cli/internal/model"
	"planner-cli/internal/overlay"
)

const msgStatusFailed = "Failed to update status."

type SubtaskStatusUpdater interface {
	UpdateSubtaskStatus(ctx context.Context, subtaskID string, status model.SubtaskStatus) error
}

// StatusUpdater patches a single subtask's status. The endpoint returns no
// record, so instead of touching a cache the workflow fires OnChanged and the
// surrounding screen refreshes itself.
type StatusUpdater struct {
	scope    *Scope
	client   SubtaskStatusUpdater
	overlays *overlay.Coordinator

	// OnChanged signals "data changed, refresh the screen" after a confirmed
	// update. Optional.
	OnChanged func()

	pending Pending
	target  model.Subtask
}

func NewStatusUpdater(scope *Scope, client SubtaskStatusUpdater, o *overlay.Coordinator) *StatusUpdater {
	return &StatusUpdater{scope: scope, client: client, overlays: o}
}

func (s *StatusUpdater) Pending() Pending      { return s.pending }
func (s *StatusUpdater) Target() model.Subtask { return s.target }

func (s *StatusUpdater) Open(subtask model.Subtask) {
	s.target = subtask
	s.pending = Pending{}
	s.overlays.OpenModal(overlay.ModalSubtaskStatus, subtask)
}

type StatusDone struct {
	gen    int
	status model.SubtaskStatus
	err    error
}

func (s *StatusUpdater) Submit(ctx context.Context, status model.SubtaskStatus) func() StatusDone {
	gen := s.scope.Generation()
	id := s.target.ID
	s.pending = Pending{Phase: PhaseInFlight}
	client := s.client
	return func() StatusDone {
		return StatusDone{gen: gen, status: status, err: client.UpdateSubtaskStatus(ctx, id, status)}
	}
}

func (s *StatusUpdater) Apply(done StatusDone) {
	if !s.scope.Live(done.gen) {
		return
	}
	if done.err != nil {
		s.pending = Pending{Phase: PhaseFailed, Err: userMessage(done.err, msgStatusFailed)}
		return
	}
	s.target.Status = done.status
	s.pending = Pending{Phase: PhaseSucceeded}
	if s.OnChanged != nil {
		s.OnChanged()
	}
}

func (s *StatusUpdater) Close() {
	s.target = model.Subtask{}
	s.pending = Pending{}
	s.overlays.Dismiss()
}
