// Package query is the read path: it joins static reference data with the
// reconciled state on demand, fully decoupled from the write cycle.
package query

import (
	"context"
	"time"

	"parking-vacancy-backend/internal/model"
	"parking-vacancy-backend/internal/ref"
	"parking-vacancy-backend/internal/store"
)

// GarageStatus is one reference garage joined with its latest observation.
type GarageStatus struct {
	model.Garage
	VacantStalls string     `json:"vacant_stalls"`
	ObservedAt   *time.Time `json:"timestamp"`
}

// Facade serves reads over the registry and the state store.
type Facade struct {
	registry *ref.Registry
	store    store.Store
}

// NewFacade creates a read facade.
func NewFacade(registry *ref.Registry, st store.Store) *Facade {
	return &Facade{registry: registry, store: st}
}

// ListGarages left-joins the reference data with current state, in reference
// order. Garages with no observation yet report "N/A" and a null timestamp.
// Observations for names outside the reference are reachable via history only.
func (f *Facade) ListGarages(ctx context.Context) ([]GarageStatus, error) {
	current, err := f.store.QueryCurrentAll(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]GarageStatus, 0, f.registry.Len())
	for _, g := range f.registry.All() {
		status := GarageStatus{Garage: g, VacantStalls: "N/A"}
		if rec, ok := current[g.Name]; ok {
			observedAt := rec.ObservedAt
			status.VacantStalls = rec.VacantStalls
			status.ObservedAt = &observedAt
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// ListHistory returns a garage's observations in insertion order. Unknown
// names yield an empty slice, not an error.
func (f *Facade) ListHistory(ctx context.Context, garageName string) ([]store.Record, error) {
	return f.store.QueryHistory(ctx, garageName)
}
