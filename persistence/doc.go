// Package persistence stores economy snapshots in SQLite.
//
// A save is keyed by a run id (UUID) and holds one row per economy (owner,
// kind, request-timer serial) plus one row per target quantity. Everything
// else an economy knows is rebuilt from flags, roads and buildings when a
// scenario is replayed, so a save stays small.
//
// The database is opened through sqlx with the pure-Go modernc.org/sqlite
// driver in WAL mode. A Store is safe for concurrent use; saves run in one
// transaction each and replace any earlier save of the same run.
package persistence
