package model

import "time"

// Garage source tags. A garage's Source says which upstream feed identifies
// it by lot number.
const (
	SourceUW   = "UW"
	SourceCity = "City"
)

// Garage is a static reference entry for one parking facility. Rows are
// written once by the seed command and treated as read-only afterwards.
type Garage struct {
	ID          int64   `gorm:"primaryKey" json:"-"`
	LotNumber   int     `gorm:"index;not null" json:"id"`
	Name        string  `gorm:"uniqueIndex;size:256;not null" json:"name"`
	Address     string  `gorm:"size:512" json:"address"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DaytimeRate string  `gorm:"size:512" json:"daytime_rate"`
	EveningRate string  `gorm:"size:512" json:"evening_rate"`
	Notes       string  `gorm:"size:512" json:"notes"`
	Source      string  `gorm:"size:32" json:"source"`
	// Position preserves the seed file's ordering; API output follows it.
	Position  int       `gorm:"index;not null" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
