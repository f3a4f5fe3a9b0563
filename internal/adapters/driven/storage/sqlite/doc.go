// Package sqlite provides the SQLite-backed run journal.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Every sync decision of an import run is appended to the
// journal_entries table together with the run it belongs to.
//
// # Schema
//
// The schema is managed through versioned migrations stored in the
// migrations/ directory. Applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.chatvault/data/journal.db
package sqlite
