// Package event provides types and functions for course registration events.
//
// Each event's identity is its canonical absolute URL with query string and
// fragment stripped, which keeps identities stable across session or
// tracking parameters. Diff partitions a run's discoveries against the
// persisted seen-set while preserving page order.
package event
