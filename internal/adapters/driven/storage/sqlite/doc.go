// Package sqlite provides a SQLite-based history of ingestion runs.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Every ingestion run, dry runs included,
// is recorded with its counts so the CLI can show past runs.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Applied versions are tracked in the schema_migrations table.
//
// # Data Location
//
// By default, the database is stored at ~/.sops-ai/data/runs.db
package sqlite
