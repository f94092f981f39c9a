// Package storage provides JSON-based persistence for the seen-set.
//
// The seen-set is the set of event identities announced in any prior run,
// stored as a sorted JSON array of strings. It only ever grows: identities
// are added after an event is published, never removed.
package storage
