// Package database provides SQLite-based storage for nanumcorp.
//
// This package implements the HistoryDB, which keeps one row per completed
// collection run: when it ran, with which filters, how many records it
// collected and where the snapshot was written, together with a digest of
// the snapshot so later runs can tell whether the registry changed.
//
// The history is append-only. It never stores the records themselves and
// is never used to resume or merge collections.
//
// We use SQLite (via modernc.org/sqlite) because the database is a single
// CGO-free file in the XDG data directory.
package database
