package workorder

import (
	"fmt"

	"workorders/internal/pkg/errs"
)

// State is the lifecycle position of a work order.
type State int

const (
	// Unknown catches uninitialised State values.
	Unknown State = iota
	Draft
	PendingApproval
	Active
	Rejected
	CompletionRequested
	DoneOnTime
	DoneLate
	Cancelled
)

func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:             "UNKNOWN",
		Draft:               "DRAFT",
		PendingApproval:     "PENDING_APPROVAL",
		Active:              "ACTIVE",
		Rejected:            "REJECTED",
		CompletionRequested: "COMPLETION_REQUESTED",
		DoneOnTime:          "DONE_ON_TIME",
		DoneLate:            "DONE_LATE",
		Cancelled:           "CANCELLED",
	}
}

// AllStates lists every valid state in lifecycle order.
func AllStates() []State {
	return []State{Draft, PendingApproval, Active, Rejected, CompletionRequested, DoneOnTime, DoneLate, Cancelled}
}

// ParseState converts the persisted name back to a State.
func ParseState(s string) (State, error) {
	for state, name := range getStateStrings() {
		if name == s && state != Unknown {
			return state, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%q is not a valid state", s))
}

func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate accepts only the eight declared states.
func (s State) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}

// IsTerminal reports whether no further transition can leave s.
func (s State) IsTerminal() bool {
	return s == Rejected || s == DoneOnTime || s == DoneLate || s == Cancelled
}

// IsCompleted reports whether s is one of the two settled states.
func (s State) IsCompleted() bool {
	return s == DoneOnTime || s == DoneLate
}

// SendForApproval moves DRAFT to PENDING_APPROVAL.
func (s State) SendForApproval() (State, error) {
	return s.transition(Draft, PendingApproval)
}

// Accept moves PENDING_APPROVAL to ACTIVE.
func (s State) Accept() (State, error) {
	return s.transition(PendingApproval, Active)
}

// Reject moves PENDING_APPROVAL to REJECTED.
func (s State) Reject() (State, error) {
	return s.transition(PendingApproval, Rejected)
}

// RequestCompletion moves ACTIVE to COMPLETION_REQUESTED.
func (s State) RequestCompletion() (State, error) {
	return s.transition(Active, CompletionRequested)
}

// Complete moves COMPLETION_REQUESTED to DONE_ON_TIME or DONE_LATE.
func (s State) Complete(onTime bool) (State, error) {
	to := DoneLate
	if onTime {
		to = DoneOnTime
	}
	return s.transition(CompletionRequested, to)
}

func (s State) transition(from, to State) (State, error) {
	if s != from {
		return Unknown, errs.NewTransitionIsInvalidError(s.String(), to.String())
	}
	return to, nil
}

// ValidateEditable allows edits only in DRAFT.
func (s State) ValidateEditable(action string) error {
	if s != Draft {
		return errs.NewStateIsInvalidError(s.String(), action)
	}
	return nil
}

// ValidateDeadlineExtendable allows deadline extensions in every non-terminal state.
func (s State) ValidateDeadlineExtendable() error {
	if s.IsTerminal() || s.Validate() != nil {
		return errs.NewStateIsInvalidError(s.String(), "extend deadline")
	}
	return nil
}
