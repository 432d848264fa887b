// Package kernel holds the shared value objects of the work-order domain:
//   - UUID: identifiers for work orders, workers, batches and notifications
//   - Money: non-negative monetary amounts backed by an exact decimal
//   - Actor: the resolved (id, role) pair every command is executed on behalf of
//
// All values are immutable and must be created through their constructors;
// their zero values fail Validate.
package kernel
