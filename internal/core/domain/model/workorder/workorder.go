package workorder

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/errs"
)

var (
	// ErrWorkOrderIsNotConstructed is returned when a WorkOrder was not created
	// through NewWorkOrder or RestoreWorkOrder.
	ErrWorkOrderIsNotConstructed = errors.New("WorkOrder must be created via NewWorkOrder constructor")
)

// Brief is the part of a work order shared by every order of one fan-out
// request: what to do and by when.
type Brief struct {
	Title        string
	Description  string
	Deadline     time.Time
	Requirements []string
}

// Changes lists the fields an admin wants to edit. Nil fields are left as they are.
type Changes struct {
	Title        *string
	Description  *string
	Value        *kernel.Money
	Deadline     *time.Time
	Requirements *[]string
	WorkerID     *kernel.UUID
}

// OnlyDeadline reports whether the deadline is the sole field being changed.
func (c Changes) OnlyDeadline() bool {
	return c.Deadline != nil &&
		c.Title == nil && c.Description == nil && c.Value == nil &&
		c.Requirements == nil && c.WorkerID == nil
}

// IsEmpty reports whether no field is being changed.
func (c Changes) IsEmpty() bool {
	return c.Deadline == nil && c.Title == nil && c.Description == nil &&
		c.Value == nil && c.Requirements == nil && c.WorkerID == nil
}

// WorkOrder is the aggregate root of the lifecycle. It owns its state and the
// settlement computed at completion. A WorkOrder is assigned to exactly one
// worker; a request naming several workers produces several WorkOrders that
// share a batch ID.
type WorkOrder struct {
	id        kernel.UUID
	batchID   kernel.UUID
	createdBy kernel.UUID
	workerID  kernel.UUID

	title        string
	description  string
	value        kernel.Money
	deadline     time.Time
	requirements []string

	state                 State
	completionRequestedAt *time.Time
	completedAt           *time.Time
	settlement            *Settlement

	createdAt time.Time
	updatedAt time.Time

	// version is the optimistic concurrency counter the order was loaded with.
	version int

	isConstructed bool
}

// NewWorkOrder issues a DRAFT order. This is the only way to create a new
// WorkOrder; RestoreWorkOrder rebuilds stored ones.
//
// Parameters:
//   - id: identifier of the new order
//   - batchID: shared by every order of one fan-out request
//   - issuer: must be an admin
//   - workerID: the single assignee
//   - brief: title, description, deadline and requirements; the deadline must lie after now
//   - value: original amount, must be positive
//   - now: creation time, also the reference for the deadline check
//
// Returns the order, or every invalid field joined into one error.
//
// Example:
//
//	brief := Brief{Title: "Paint the hall", Deadline: now.Add(72 * time.Hour)}
//	value, _ := kernel.MoneyFromString("1500.50")
//	order, err := NewWorkOrder(kernel.NewUUID(), batchID, admin, workerID, brief, value, now)
//	if errs.IsValidation(err) {
//	    // report the invalid fields
//	}
func NewWorkOrder(
	id kernel.UUID,
	batchID kernel.UUID,
	issuer kernel.Actor,
	workerID kernel.UUID,
	brief Brief,
	value kernel.Money,
	now time.Time,
) (*WorkOrder, error) {
	if err := issuer.Validate(); err != nil {
		return nil, err
	}
	if !issuer.IsAdmin() {
		return nil, errs.NewActorIsUnauthorizedError(issuer.ID().String(), "issue work order", "only an admin issues work orders")
	}

	o := &WorkOrder{
		createdBy:     issuer.ID(),
		state:         Draft,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setBatchID(batchID),
		o.setWorkerID(workerID),
		o.setTitle(brief.Title),
		o.setDescription(brief.Description),
		o.setValue(value),
		o.setDeadline(brief.Deadline, now),
		o.setRequirements(brief.Requirements),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot carries every persisted field of a WorkOrder. It is used by
// repositories to rebuild the aggregate.
type Snapshot struct {
	ID                    kernel.UUID
	BatchID               kernel.UUID
	CreatedBy             kernel.UUID
	WorkerID              kernel.UUID
	Title                 string
	Description           string
	Value                 kernel.Money
	Deadline              time.Time
	Requirements          []string
	State                 State
	CompletionRequestedAt *time.Time
	CompletedAt           *time.Time
	Settlement            *Settlement
	CreatedAt             time.Time
	UpdatedAt             time.Time
	Version               int
}

// RestoreWorkOrder rebuilds a WorkOrder from storage. Past deadlines are
// accepted, the state and completion invariants are checked.
func RestoreWorkOrder(s Snapshot) (*WorkOrder, error) {
	o := &WorkOrder{
		createdBy:             s.CreatedBy,
		completionRequestedAt: s.CompletionRequestedAt,
		completedAt:           s.CompletedAt,
		settlement:            s.Settlement,
		deadline:              s.Deadline,
		createdAt:             s.CreatedAt,
		updatedAt:             s.UpdatedAt,
		version:               s.Version,
		isConstructed:         true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setBatchID(s.BatchID),
		o.setWorkerID(s.WorkerID),
		s.CreatedBy.Validate(),
		o.setTitle(s.Title),
		o.setDescription(s.Description),
		o.setValue(s.Value),
		o.setRequirements(s.Requirements),
		o.setState(s.State),
	); err != nil {
		return nil, err
	}

	if err := o.validateCompletion(); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the WorkOrder was built through a constructor.
func (o *WorkOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrWorkOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by ID. A nil other is never equal.
func (o *WorkOrder) IsEqual(other *WorkOrder) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *WorkOrder) ID() kernel.UUID {
	return o.id
}

// BatchID groups the orders created by one fan-out request.
func (o *WorkOrder) BatchID() kernel.UUID {
	return o.batchID
}

// CreatedBy is the admin that issued the order.
func (o *WorkOrder) CreatedBy() kernel.UUID {
	return o.createdBy
}

// WorkerID is the single worker the order is assigned to.
func (o *WorkOrder) WorkerID() kernel.UUID {
	return o.workerID
}

// Title is the short name of the job, never empty.
func (o *WorkOrder) Title() string {
	return o.title
}

// Description is the free-form detail of the job. It may be empty.
func (o *WorkOrder) Description() string {
	return o.description
}

// Value is the original, pre-penalty amount.
func (o *WorkOrder) Value() kernel.Money {
	return o.value
}

// Deadline is the instant by which completion must be approved to count as on
// time. It only moves later once the order is issued.
func (o *WorkOrder) Deadline() time.Time {
	return o.deadline
}

// Requirements returns a copy of the ordered requirement list.
func (o *WorkOrder) Requirements() []string {
	return slices.Clone(o.requirements)
}

// State returns the current lifecycle state.
func (o *WorkOrder) State() State {
	return o.state
}

// CompletionRequestedAt is when the worker asked for completion. It is kept
// for audit only; lateness is measured at approval time.
func (o *WorkOrder) CompletionRequestedAt() *time.Time {
	return o.completionRequestedAt
}

// CompletedAt is set only in DONE_ON_TIME and DONE_LATE.
func (o *WorkOrder) CompletedAt() *time.Time {
	return o.completedAt
}

// Settlement is set only in DONE_ON_TIME and DONE_LATE.
func (o *WorkOrder) Settlement() *Settlement {
	return o.settlement
}

// FinalValue is the payable amount: the settled value once completed, the
// original value before that.
func (o *WorkOrder) FinalValue() kernel.Money {
	if o.settlement != nil {
		return o.settlement.FinalValue()
	}
	return o.value
}

// CreatedAt is when the order was issued.
func (o *WorkOrder) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt is the time of the last state change or edit.
func (o *WorkOrder) UpdatedAt() time.Time {
	return o.updatedAt
}

// Version is the optimistic concurrency counter the order was loaded with.
func (o *WorkOrder) Version() int {
	return o.version
}

// SyncVersion records the version written by a successful save.
func (o *WorkOrder) SyncVersion(version int) {
	o.version = version
}

// CounterpartOf returns who should hear about an action taken by actor:
// the assigned worker for admin actions, the issuing admin for worker actions.
func (o *WorkOrder) CounterpartOf(actor kernel.Actor) kernel.UUID {
	if actor.IsAdmin() {
		return o.workerID
	}
	return o.createdBy
}

// SendForApproval offers a DRAFT order to its worker.
func (o *WorkOrder) SendForApproval(actor kernel.Actor, now time.Time) error {
	if err := o.requireAdmin(actor, "send work order for approval"); err != nil {
		return err
	}
	if err := o.workerID.Validate(); err != nil {
		return errs.NewTransitionIsInvalidErrorWithCause(o.state.String(), PendingApproval.String(), err)
	}

	next, err := o.state.SendForApproval()
	if err != nil {
		return err
	}

	o.moveTo(next, now)
	return nil
}

// RespondToApproval lets the assigned worker accept (ACTIVE) or reject
// (REJECTED) a PENDING_APPROVAL order.
func (o *WorkOrder) RespondToApproval(actor kernel.Actor, accept bool, now time.Time) error {
	action := "reject work order"
	if accept {
		action = "accept work order"
	}
	if err := o.requireAssignee(actor, action); err != nil {
		return err
	}

	var (
		next State
		err  error
	)
	if accept {
		next, err = o.state.Accept()
	} else {
		next, err = o.state.Reject()
	}
	if err != nil {
		return err
	}

	o.moveTo(next, now)
	return nil
}

// RequestCompletion lets the assigned worker report an ACTIVE order as done.
func (o *WorkOrder) RequestCompletion(actor kernel.Actor, now time.Time) error {
	if err := o.requireAssignee(actor, "request completion"); err != nil {
		return err
	}

	next, err := o.state.RequestCompletion()
	if err != nil {
		return err
	}

	o.completionRequestedAt = &now
	o.moveTo(next, now)
	return nil
}

// ApproveCompletion settles a COMPLETION_REQUESTED order. The settlement must
// have been computed for this order's value; its lateness picks the terminal state.
func (o *WorkOrder) ApproveCompletion(actor kernel.Actor, settlement Settlement, now time.Time) error {
	if err := o.requireAdmin(actor, "approve completion"); err != nil {
		return err
	}
	if err := settlement.Validate(); err != nil {
		return err
	}
	if !settlement.OriginalValue().IsEqual(o.value) {
		return errs.NewValueIsInvalidErrorWithCause(
			"settlement",
			fmt.Errorf("settled value %s does not match order value %s", settlement.OriginalValue(), o.value),
		)
	}

	next, err := o.state.Complete(settlement.OnTime())
	if err != nil {
		return err
	}

	o.settlement = &settlement
	o.completedAt = &now
	o.moveTo(next, now)
	return nil
}

// ExtendDeadline moves the deadline strictly later. Allowed in every
// non-terminal state.
func (o *WorkOrder) ExtendDeadline(actor kernel.Actor, deadline time.Time, now time.Time) error {
	if err := o.requireAdmin(actor, "extend deadline"); err != nil {
		return err
	}
	if err := o.state.ValidateDeadlineExtendable(); err != nil {
		return err
	}
	if !deadline.After(o.deadline) {
		return errs.NewDeadlineIsInvalidError(o.deadline, deadline)
	}

	o.deadline = deadline
	o.updatedAt = now
	return nil
}

// Edit applies changes atomically: either every change is valid and applied,
// or the order is left untouched. Outside DRAFT only a deadline-only change is
// accepted, and it follows ExtendDeadline rules.
func (o *WorkOrder) Edit(actor kernel.Actor, changes Changes, now time.Time) error {
	if err := o.requireAdmin(actor, "edit work order"); err != nil {
		return err
	}
	if changes.IsEmpty() {
		return errs.NewValueIsRequiredError("changes")
	}
	if o.state != Draft && changes.OnlyDeadline() {
		return o.ExtendDeadline(actor, *changes.Deadline, now)
	}
	if err := o.state.ValidateEditable("edit " + changes.describe()); err != nil {
		return err
	}

	draft := *o
	draft.requirements = slices.Clone(o.requirements)

	var errList []error
	if changes.Title != nil {
		errList = append(errList, draft.setTitle(*changes.Title))
	}
	if changes.Description != nil {
		errList = append(errList, draft.setDescription(*changes.Description))
	}
	if changes.Value != nil {
		errList = append(errList, draft.setValue(*changes.Value))
	}
	if changes.Deadline != nil {
		errList = append(errList, draft.setDeadline(*changes.Deadline, now))
	}
	if changes.Requirements != nil {
		errList = append(errList, draft.setRequirements(*changes.Requirements))
	}
	if changes.WorkerID != nil {
		errList = append(errList, draft.setWorkerID(*changes.WorkerID))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	draft.updatedAt = now
	*o = draft
	return nil
}

func (c Changes) describe() string {
	var fields []string
	if c.Title != nil {
		fields = append(fields, "title")
	}
	if c.Description != nil {
		fields = append(fields, "description")
	}
	if c.Value != nil {
		fields = append(fields, "value")
	}
	if c.Deadline != nil {
		fields = append(fields, "deadline")
	}
	if c.Requirements != nil {
		fields = append(fields, "requirements")
	}
	if c.WorkerID != nil {
		fields = append(fields, "assignee")
	}
	return strings.Join(fields, ", ")
}

func (o *WorkOrder) moveTo(next State, now time.Time) {
	o.state = next
	o.updatedAt = now
}

func (o *WorkOrder) requireAdmin(actor kernel.Actor, action string) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return errs.NewActorIsUnauthorizedError(actor.ID().String(), action, "admin only")
	}
	return nil
}

func (o *WorkOrder) requireAssignee(actor kernel.Actor, action string) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !actor.IsWorker() {
		return errs.NewActorIsUnauthorizedError(actor.ID().String(), action, "assigned worker only")
	}
	if !actor.Is(o.workerID) {
		return errs.NewActorIsUnauthorizedError(actor.ID().String(), action, "not the assigned worker")
	}
	return nil
}

func (o *WorkOrder) validateCompletion() error {
	completed := o.state.IsCompleted()
	if completed != (o.completedAt != nil) {
		return errs.NewValueIsInvalidErrorWithCause(
			"completed at", fmt.Errorf("%s does not match completion timestamp presence", o.state),
		)
	}
	if completed != (o.settlement != nil) {
		return errs.NewValueIsInvalidErrorWithCause(
			"settlement", fmt.Errorf("%s does not match settlement presence", o.state),
		)
	}
	if o.settlement != nil && o.settlement.TerminalState() != o.state {
		return errs.NewValueIsInvalidErrorWithCause(
			"settlement", fmt.Errorf("settlement resolves to %s, order is %s", o.settlement.TerminalState(), o.state),
		)
	}
	return nil
}

func (o *WorkOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *WorkOrder) setBatchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("batch id", err)
	}
	o.batchID = id
	return nil
}

func (o *WorkOrder) setWorkerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("assigned worker", err)
	}
	o.workerID = id
	return nil
}

func (o *WorkOrder) setTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	o.title = title
	return nil
}

func (o *WorkOrder) setDescription(description string) error {
	o.description = strings.TrimSpace(description)
	return nil
}

func (o *WorkOrder) setValue(value kernel.Money) error {
	if err := value.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("value", err)
	}
	if !value.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("value", fmt.Errorf("%s is not greater than 0", value))
	}
	o.value = value
	return nil
}

func (o *WorkOrder) setDeadline(deadline time.Time, now time.Time) error {
	if deadline.IsZero() {
		return errs.NewValueIsRequiredError("deadline")
	}
	if !deadline.After(now) {
		return errs.NewValueIsInvalidErrorWithCause(
			"deadline", fmt.Errorf("%s is not in the future", deadline.Format(time.RFC3339)),
		)
	}
	o.deadline = deadline
	return nil
}

// setRequirements keeps the order of items and drops blank ones.
func (o *WorkOrder) setRequirements(requirements []string) error {
	cleaned := make([]string, 0, len(requirements))
	for _, r := range requirements {
		if r = strings.TrimSpace(r); r != "" {
			cleaned = append(cleaned, r)
		}
	}
	o.requirements = cleaned
	return nil
}

func (o *WorkOrder) setState(state State) error {
	if err := state.Validate(); err != nil {
		return err
	}
	o.state = state
	return nil
}
