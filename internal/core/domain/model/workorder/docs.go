// Package workorder implements the WorkOrder aggregate (SPK): a paid task issued
// by an admin to exactly one worker and tracked from draft to settlement.
//
// The package includes:
//   - WorkOrder: the aggregate root with identity, assignment, value, deadline and lifecycle
//   - State: the lifecycle state machine
//   - Settlement: the payable outcome persisted when completion is approved
//
// Lifecycle:
//
//	DRAFT ──admin──> PENDING_APPROVAL ──worker──> ACTIVE ──worker──> COMPLETION_REQUESTED
//	                         │                                              │
//	                         └──worker──> REJECTED                  admin ──┴──> DONE_ON_TIME | DONE_LATE
//
// CANCELLED is terminal and can be restored from storage, but no action leads to it.
//
// Key business rules:
//   - Only the admin issues, edits, sends for approval, extends and approves orders
//   - Only the assigned worker accepts, rejects and requests completion
//   - Everything but a deadline extension is editable only in DRAFT
//   - A deadline extension must move the deadline strictly later and is refused on terminal orders
//   - completedAt and the settlement are present exactly when the order is DONE_ON_TIME or DONE_LATE
package workorder
