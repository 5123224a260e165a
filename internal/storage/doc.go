// Package storage persists the audit log of generation runs in SQLite.
//
// Every operation that touches or previews store data records one Run row:
// what was requested, how much succeeded, and the serialized outcome. The
// audit log is best-effort — callers log save failures and keep going —
// and queryable through the history surface.
//
// # Drivers
//
// Two SQLite drivers are supported through build tags:
//   - default / purego: modernc.org/sqlite, no C compiler required
//   - sqlite_cgo: github.com/mattn/go-sqlite3
//
// The database runs in WAL mode with a single writer connection. Schema
// changes go through versioned migrations (see ApplyMigrations).
package storage
