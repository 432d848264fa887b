// Package payment implements the payment ledger entry of a completed work order.
//
// A PaymentRecord is created lazily, on the first payment status change, and only
// for orders that reached DONE_ON_TIME or DONE_LATE. Records are never deleted.
// Marking a record paid twice keeps the first payment date; reverting it to
// pending clears the date.
package payment
