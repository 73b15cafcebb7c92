// Package sqlite provides a SQLite-based implementation of driven.UserStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Each user document is a row in users plus one row per
// top-level field in user_fields, holding the field's JSON value.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.courtfinder/data/courtfinder.db
package sqlite
