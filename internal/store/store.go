package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"parking-vacancy-backend/internal/model"
)

// Store defines the persistence boundary for reference data, current state
// and the availability history. Any backend implementing these operations
// with the documented atomicity is a valid substitute.
type Store interface {
	// SeedGarages upserts reference rows keyed on name.
	SeedGarages(ctx context.Context, garages []model.Garage) error
	// LoadGarages returns all reference rows in seed order.
	LoadGarages(ctx context.Context) ([]model.Garage, error)

	// UpsertCurrent replaces the current row for every garage present in the
	// snapshot, atomically with respect to concurrent readers. Garages absent
	// from the snapshot keep their last row.
	UpsertCurrent(ctx context.Context, snap Snapshot) error
	// AppendHistory appends every record unconditionally.
	AppendHistory(ctx context.Context, records []Record) error

	// QueryCurrentAll returns the whole current-state table.
	QueryCurrentAll(ctx context.Context) (Snapshot, error)
	// QueryHistory returns a garage's history in insertion order. Unknown
	// names yield an empty slice.
	QueryHistory(ctx context.Context, garageName string) ([]Record, error)
}

// gormStore implements Store using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) SeedGarages(ctx context.Context, garages []model.Garage) error {
	if len(garages) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"lot_number", "address", "latitude", "longitude",
			"daytime_rate", "evening_rate", "notes", "source", "position", "updated_at",
		}),
	}).Create(&garages).Error
	if err != nil {
		return fmt.Errorf("failed to seed garages: %w", err)
	}
	return nil
}

func (s *gormStore) LoadGarages(ctx context.Context) ([]model.Garage, error) {
	var garages []model.Garage
	if err := s.db.WithContext(ctx).Order("position asc").Find(&garages).Error; err != nil {
		return nil, fmt.Errorf("failed to load garages: %w", err)
	}
	return garages, nil
}

// UpsertCurrent writes the cycle's rows in one transaction so readers observe
// all-old or all-new values, never a mix of two cycles.
func (s *gormStore) UpsertCurrent(ctx context.Context, snap Snapshot) error {
	if len(snap) == 0 {
		return nil
	}
	rows := make([]model.AvailabilityCurrent, 0, len(snap))
	for _, rec := range snap {
		rows = append(rows, model.AvailabilityCurrent{
			GarageName:   rec.GarageName,
			VacantStalls: rec.VacantStalls,
			ObservedAt:   rec.ObservedAt,
		})
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "garage_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"vacant_stalls", "observed_at"}),
		}).Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("failed to upsert current availability: %w", err)
	}
	return nil
}

func (s *gormStore) AppendHistory(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]model.AvailabilityHistory, 0, len(records))
	for _, rec := range records {
		rows = append(rows, model.AvailabilityHistory{
			GarageName:   rec.GarageName,
			VacantStalls: rec.VacantStalls,
			ObservedAt:   rec.ObservedAt,
		})
	}
	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	return nil
}

func (s *gormStore) QueryCurrentAll(ctx context.Context) (Snapshot, error) {
	var rows []model.AvailabilityCurrent
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query current availability: %w", err)
	}
	snap := make(Snapshot, len(rows))
	for _, row := range rows {
		snap[row.GarageName] = Record{
			GarageName:   row.GarageName,
			VacantStalls: row.VacantStalls,
			ObservedAt:   row.ObservedAt,
		}
	}
	return snap, nil
}

func (s *gormStore) QueryHistory(ctx context.Context, garageName string) ([]Record, error) {
	var rows []model.AvailabilityHistory
	if err := s.db.WithContext(ctx).
		Where("garage_name = ?", garageName).
		Order("id asc").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query history for %q: %w", garageName, err)
	}
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, Record{
			GarageName:   row.GarageName,
			VacantStalls: row.VacantStalls,
			ObservedAt:   row.ObservedAt,
		})
	}
	return records, nil
}
