// Package sqlite persists captures in a single SQLite file using the
// pure Go modernc.org/sqlite driver.
//
// # Schema
//
// Migrations live in migrations/ as NNN_name.up.sql. Each pending script runs
// in its own transaction together with its schema_migrations row.
//
// Blocks and annotations are stored as JSON columns. Times are stored as Unix
// milliseconds.
//
// # Data Location
//
// By default the database is $SHOTBRAIN_HOME/data/captures.db
// (~/.shotbrain/data/captures.db).
//
// Query filtering runs in Go after a category pre-filter: SQLite LIKE only
// folds ASCII case, which breaks Vietnamese matches.
package sqlite
