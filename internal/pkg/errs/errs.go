package errs

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrObjectNotFound       = errors.New("object not found")
	ErrValueIsInvalid       = errors.New("value is invalid")
	ErrValueIsOutOfRange    = errors.New("value is out of range")
	ErrValueIsRequired      = errors.New("value is required")
	ErrVersionIsInvalid     = errors.New("version is invalid")
	ErrTransitionIsInvalid  = errors.New("transition is invalid")
	ErrActorIsUnauthorized  = errors.New("actor is unauthorized")
	ErrStateIsInvalid       = errors.New("state is invalid")
	ErrDeadlineIsInvalid    = errors.New("deadline is invalid")
	ErrPaymentIsNotEligible = errors.New("payment is not eligible")
)

// IsValidation reports whether err describes malformed input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsOutOfRange)
}

func sanitize(v any) string {
	return strings.NewReplacer("\n", " ", "\r", " ").Replace(fmt.Sprintf("%v", v))
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

// ObjectNotFoundError is returned when an entity with the given ID does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError is returned when a value fails a domain rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError is returned when a value lies outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError is returned when a mandatory value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// VersionIsInvalidError is returned by repositories when the stored version of
// an aggregate no longer matches the version it was loaded with.
type VersionIsInvalidError struct {
	ParamName string
	Expected  int
	Cause     error
}

func NewVersionIsInvalidError(paramName string, expected int) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Expected: expected}
}

func NewVersionIsInvalidErrorWithCause(paramName string, expected int, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Expected: expected, Cause: cause}
}

func (e *VersionIsInvalidError) Error() string {
	msg := fmt.Sprintf("%s: %s, expected version %d", ErrVersionIsInvalid, e.ParamName, e.Expected)
	return withCause(msg, e.Cause)
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// TransitionIsInvalidError is returned when a lifecycle transition is not
// allowed from the current state, or the state moved on concurrently.
type TransitionIsInvalidError struct {
	From  string
	To    string
	Cause error
}

func NewTransitionIsInvalidError(from, to string) *TransitionIsInvalidError {
	return &TransitionIsInvalidError{From: from, To: to}
}

func NewTransitionIsInvalidErrorWithCause(from, to string, cause error) *TransitionIsInvalidError {
	return &TransitionIsInvalidError{From: from, To: to, Cause: cause}
}

func (e *TransitionIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s -> %s", ErrTransitionIsInvalid, e.From, e.To), e.Cause)
}

func (e *TransitionIsInvalidError) Unwrap() error {
	return ErrTransitionIsInvalid
}

// ActorIsUnauthorizedError is returned when the actor's role or identity does
// not permit the requested action.
type ActorIsUnauthorizedError struct {
	ActorID string
	Action  string
	Reason  string
}

func NewActorIsUnauthorizedError(actorID, action, reason string) *ActorIsUnauthorizedError {
	return &ActorIsUnauthorizedError{ActorID: actorID, Action: action, Reason: reason}
}

func (e *ActorIsUnauthorizedError) Error() string {
	return fmt.Sprintf("%s: %s may not %s: %s", ErrActorIsUnauthorized, e.ActorID, e.Action, e.Reason)
}

func (e *ActorIsUnauthorizedError) Unwrap() error {
	return ErrActorIsUnauthorized
}

// StateIsInvalidError is returned when an edit is attempted in a state that
// does not allow it.
type StateIsInvalidError struct {
	State  string
	Action string
}

func NewStateIsInvalidError(state, action string) *StateIsInvalidError {
	return &StateIsInvalidError{State: state, Action: action}
}

func (e *StateIsInvalidError) Error() string {
	return fmt.Sprintf("%s: cannot %s in %s", ErrStateIsInvalid, e.Action, e.State)
}

func (e *StateIsInvalidError) Unwrap() error {
	return ErrStateIsInvalid
}

// DeadlineIsInvalidError is returned when a deadline extension does not move
// the deadline strictly later.
type DeadlineIsInvalidError struct {
	Current   time.Time
	Requested time.Time
}

func NewDeadlineIsInvalidError(current, requested time.Time) *DeadlineIsInvalidError {
	return &DeadlineIsInvalidError{Current: current, Requested: requested}
}

func (e *DeadlineIsInvalidError) Error() string {
	return fmt.Sprintf("%s: %s is not after %s",
		ErrDeadlineIsInvalid, e.Requested.Format(time.RFC3339), e.Current.Format(time.RFC3339))
}

func (e *DeadlineIsInvalidError) Unwrap() error {
	return ErrDeadlineIsInvalid
}

// PaymentIsNotEligibleError is returned when a payment operation targets a
// work order that has not reached a completed state.
type PaymentIsNotEligibleError struct {
	WorkOrderID string
	State       string
}

func NewPaymentIsNotEligibleError(workOrderID, state string) *PaymentIsNotEligibleError {
	return &PaymentIsNotEligibleError{WorkOrderID: workOrderID, State: state}
}

func (e *PaymentIsNotEligibleError) Error() string {
	return fmt.Sprintf("%s: work order %s is %s", ErrPaymentIsNotEligible, e.WorkOrderID, e.State)
}

func (e *PaymentIsNotEligibleError) Unwrap() error {
	return ErrPaymentIsNotEligible
}
