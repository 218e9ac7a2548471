// Package reconcile merges per-source record lists into one authoritative
// snapshot for a cycle.
package reconcile

import (
	"parking-vacancy-backend/internal/store"
)

// Merge builds a snapshot by applying record lists in ascending precedence:
// a garage named by a later list overwrites its entry from an earlier one.
// Garages absent from every list are absent from the snapshot; read-time
// defaulting is the query facade's job. Merging the same inputs in the same
// order always yields the same snapshot.
func Merge(ordered [][]store.Record) store.Snapshot {
	snap := make(store.Snapshot)
	for _, records := range ordered {
		for _, rec := range records {
			snap[rec.GarageName] = rec
		}
	}
	return snap
}
