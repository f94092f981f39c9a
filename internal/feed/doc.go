// Package feed renders new events as an RSS 2.0 feed, prepending them to
// entries recovered from the existing feed file.
//
// Recovery of prior entries is intentionally a tolerant, lossy boundary
// split rather than strict XML parsing, so a malformed or hand-edited feed
// file can never fail a run.
package feed
