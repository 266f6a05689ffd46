// Package repositories implements SQLite persistence for the session history.
//
// [SessionRepository] handles CRUD for [models.SessionRecord] with atomic
// sequence generation for human-readable ordering. Soft deletes via
// deleted_at timestamps exclude records from queries by default.
//
// Sequence numbers provide stable, human-readable ordering (session #42)
// independent of UUIDs and creation timestamps. The [NextSequence] function
// atomically increments per-table sequence counters in dedicated sequence
// tables.
package repositories
