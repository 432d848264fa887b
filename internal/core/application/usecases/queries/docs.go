// Package queries holds the read side: work order lookups and listings, the
// worker registry listing and the payroll summary. Handlers read straight from
// the database with raw SQL and never open a write transaction.
package queries
