package store

import "time"

// Record is one normalized availability observation: a garage name, the
// upstream's free-text stall count, and the timestamp the producing adapter
// attached at normalization time.
type Record struct {
	GarageName   string    `json:"garage_name"`
	VacantStalls string    `json:"vacant_stalls"`
	ObservedAt   time.Time `json:"timestamp"`
}

// Snapshot maps garage name to its latest record for one reconciliation
// cycle. Absent entries mean the garage was not observed this cycle.
type Snapshot map[string]Record
