// Package history persists drop records to PostgreSQL.
//
// The writer accumulates rows in memory and flushes them in batches,
// either when the batch fills or on a timer. Inserts are idempotent:
// rows carry the drop's event ID and conflicts are silently skipped,
// so replaying a feed never double-counts a drop.
package history
