// Package workflow implements the per-action state machines that tie remote
// calls to the collection cache and the overlay coordinator. Each workflow
// follows idle -> inFlight -> succeeded|failed -> idle; failures are absorbed
// here and exposed as user-visible strings, never propagated upward.
package workflow

import (
	"errors"

	"planner-cli/internal/api"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInFlight
	PhaseSucceeded
	PhaseFailed
)

// Pending is the presentation state of one workflow: what phase it is in and,
// when failed, the message to render inline.
type Pending struct {
	Phase Phase
	Err   string
}

func (p Pending) InFlight() bool  { return p.Phase == PhaseInFlight }
func (p Pending) Succeeded() bool { return p.Phase == PhaseSucceeded }
func (p Pending) Failed() bool    { return p.Phase == PhaseFailed }

// userMessage converts a client error into the inline banner text. Server
// messages are surfaced verbatim when present; transport failures get a
// generic retry message.
func userMessage(err error, fallback string) string {
	var ve api.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	var se api.ServerError
	if errors.As(err, &se) {
		if se.Message != "" {
			return se.Message
		}
		return fallback
	}
	var te api.TransportError
	if errors.As(err, &te) {
		return fallback + " Please check your connection and try again."
	}
	return fallback
}
