// Package services provides domain services that hold business rules which do not
// belong to a single aggregate.
//
// The package includes:
//   - PenaltyCalculator: turns a deadline, an approval time and a value into a Settlement
//
// Services here are pure: no I/O, no clock, no randomness. Callers pass the time in.
package services
