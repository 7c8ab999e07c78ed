package workflow

import (
	"context"

	"github.com/google/uuid"

	"planner-cli/internal/model"
	"planner-cli/internal/overlay"
)

const msgReminderFailed = "Failed to create reminder."

type EventReminderCreator interface {
	CreateEventReminder(ctx context.Context, eventID string, reminder model.EventReminder) error
}

// PendingReminder is one locally accumulated reminder time. ID is a local
// handle for the form's list rows; it never goes over the wire.
type PendingReminder struct {
	ID        string
	Time      string
	Triggered bool
}

// ReminderForm accumulates reminder times client-side and submits them in one
// request. Entries are never validated against the server before submit and
// duplicate timestamps are kept as entered.
type ReminderForm struct {
	scope    *Scope
	client   EventReminderCreator
	overlays *overlay.Coordinator

	eventID string
	entries []PendingReminder
	pending Pending
}

func NewReminderForm(scope *Scope, client EventReminderCreator, o *overlay.Coordinator) *ReminderForm {
	return &ReminderForm{scope: scope, client: client, overlays: o}
}

func (r *ReminderForm) Pending() Pending { return r.pending }
func (r *ReminderForm) EventID() string  { return r.eventID }

func (r *ReminderForm) Open(eventID string) {
	r.eventID = eventID
	r.entries = nil
	r.pending = Pending{}
	r.overlays.OpenModal(overlay.ModalEventReminder, eventID)
}

// Add appends a reminder time locally; no network call happens here.
func (r *ReminderForm) Add(timeStr string) {
	if timeStr == "" {
		return
	}
	r.entries = append(r.entries, PendingReminder{
		ID:        uuid.NewString(),
		Time:      timeStr,
		Triggered: true,
	})
}

// Remove drops one accumulated entry by its local id.
func (r *ReminderForm) Remove(id string) {
	for i, e := range r.entries {
		if e.ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}

// Entries returns the accumulated list in insertion order.
func (r *ReminderForm) Entries() []PendingReminder {
	out := make([]PendingReminder, len(r.entries))
	copy(out, r.entries)
	return out
}

type ReminderDone struct {
	gen int
	err error
}

// Submit sends the whole accumulated list atomically.
func (r *ReminderForm) Submit(ctx context.Context, message string, medium model.ReminderMedium) func() ReminderDone {
	gen := r.scope.Generation()
	eventID := r.eventID
	times := make([]model.ReminderTime, 0, len(r.entries))
	for _, e := range r.entries {
		times = append(times, model.ReminderTime{ReminderTime: e.Time, Triggered: e.Triggered})
	}
	r.pending = Pending{Phase: PhaseInFlight}
	client := r.client
	return func() ReminderDone {
		err := client.CreateEventReminder(ctx, eventID, model.EventReminder{
			Message:       message,
			Medium:        medium,
			ReminderTimes: times,
		})
		return ReminderDone{gen: gen, err: err}
	}
}

func (r *ReminderForm) Apply(done ReminderDone) {
	if !r.scope.Live(done.gen) {
		return
	}
	if done.err != nil {
		r.pending = Pending{Phase: PhaseFailed, Err: userMessage(done.err, msgReminderFailed)}
		return
	}
	r.pending = Pending{Phase: PhaseSucceeded}
}

func (r *ReminderForm) Close() {
	r.eventID = ""
	r.entries = nil
	r.pending = Pending{}
	r.overlays.Dismiss()
}
