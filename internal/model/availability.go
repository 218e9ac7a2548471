package model

import "time"

// AvailabilityCurrent is the hot row for one garage: its latest observation.
// Rows are upserted per key each cycle, so a garage that drops out of a feed
// keeps showing its last known reading.
type AvailabilityCurrent struct {
	GarageName string `gorm:"primaryKey;size:256"`
	// VacantStalls is upstream free text ("142", "Full"), never coerced.
	VacantStalls string    `gorm:"size:64;not null"`
	ObservedAt   time.Time `gorm:"not null"`
}

// AvailabilityHistory is the append-only log of observations (cold table).
// Insertion order is cycle order; rows are never updated or deleted.
type AvailabilityHistory struct {
	ID           int64     `gorm:"autoIncrement;primaryKey"`
	GarageName   string    `gorm:"index;size:256;not null"`
	VacantStalls string    `gorm:"size:64;not null"`
	ObservedAt   time.Time `gorm:"not null"`
}
