// Package overlay tracks the single active disclosure surface for a screen:
// one dropdown menu or one modal, never both, never two of either.
package overlay

type Kind int

const (
	KindNone Kind = iota
	KindDropdown
	KindModal
)

type ModalKind int

const (
	ModalShare ModalKind = iota
	ModalAddUsers
	ModalEdit
	ModalDeleteConfirm
	ModalSubtaskStatus
	ModalEventReminder
)

// State is a tagged value; exactly one surface (or none) is active.
// TargetID is set for dropdowns, Modal+Payload for modals.
type State struct {
	Kind     Kind
	TargetID string
	Modal    ModalKind
	Payload  any
}

func (s State) IsNone() bool { return s.Kind == KindNone }

// DropdownFor reports whether the dropdown for id is the active surface.
func (s State) DropdownFor(id string) bool {
	return s.Kind == KindDropdown && s.TargetID == id
}

// Coordinator owns the overlay state for one screen. Setting a new surface
// implicitly clears the previous one; there is no queue.
type Coordinator struct {
	state State
}

func New() *Coordinator { return &Coordinator{} }

func (c *Coordinator) State() State { return c.state }

// OpenDropdown toggles: opening the already-open dropdown closes it, opening
// any other replaces whatever surface was active.
func (c *Coordinator) OpenDropdown(targetID string) {
	if c.state.DropdownFor(targetID) {
		c.state = State{}
		return
	}
	c.state = State{Kind: KindDropdown, TargetID: targetID}
}

// OpenModal activates a modal from any state, closing any open dropdown.
func (c *Coordinator) OpenModal(kind ModalKind, payload any) {
	c.state = State{Kind: KindModal, Modal: kind, Payload: payload}
}

// Dismiss returns to the resting state. Hosts call it on explicit cancel, on
// outside interaction, and after the success confirmation delay.
func (c *Coordinator) Dismiss() {
	c.state = State{}
}

// OutsideInteraction is the hosting environment's "pointer/key event outside
// the surface bounds" signal. How that event is detected is the host's concern.
func (c *Coordinator) OutsideInteraction() {
	c.Dismiss()
}
