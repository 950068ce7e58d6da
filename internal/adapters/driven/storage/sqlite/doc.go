// Package sqlite persists extraction results across runs.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. Each CLI invocation starts a fresh process, so without it every command
// would re-read every PDF and re-transcribe every recording it is given.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.studydeck/data/cache.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
