// Package cli implements the course-events command.
//
// One invocation is one check run: fetch the listing page, extract events,
// diff against the seen-set, notify, publish the feed, and persist the
// updated seen-set. The process exits 0 on success (including runs with
// zero new events) and non-zero on fetch or persistence-write failure.
package cli
