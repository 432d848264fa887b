// Package errs provides the typed errors shared by the domain, application and
// adapter layers of the work-order service.
//
// Every error kind follows the same pattern:
//   - a sentinel (ErrObjectNotFound, ErrTransitionIsInvalid, ...) for errors.Is
//   - a struct carrying the details (ParamName, From, To, ...) for errors.As
//   - constructors with and without a cause
//   - Error() for the message and Unwrap() returning the sentinel
//
// The kinds map onto the outcomes callers are expected to handle:
//   - ErrTransitionIsInvalid: wrong from-state or a stale version
//   - ErrActorIsUnauthorized: the actor may not perform the action
//   - ErrStateIsInvalid: an edit attempted outside the allowed state
//   - ErrDeadlineIsInvalid: a new deadline that is not later than the current one
//   - ErrObjectNotFound: unknown work order, worker or payment record
//   - ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange: malformed input
//   - ErrPaymentIsNotEligible: a payment operation on an order that is not completed
//   - ErrVersionIsInvalid: an optimistic concurrency conflict at the storage boundary
package errs
