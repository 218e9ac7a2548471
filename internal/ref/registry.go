// Package ref holds the static garage reference data, loaded once at startup
// and read-only afterwards.
package ref

import (
	"parking-vacancy-backend/internal/model"
)

// Registry is an in-memory view over the seeded garage reference rows.
type Registry struct {
	garages []model.Garage
	byName  map[string]model.Garage
}

// NewRegistry builds a registry from reference rows in seed order.
func NewRegistry(garages []model.Garage) *Registry {
	byName := make(map[string]model.Garage, len(garages))
	for _, g := range garages {
		byName[g.Name] = g
	}
	return &Registry{garages: garages, byName: byName}
}

// All returns every garage in seed order.
func (r *Registry) All() []model.Garage {
	return r.garages
}

// ByName looks a garage up by its unique name.
func (r *Registry) ByName(name string) (model.Garage, bool) {
	g, ok := r.byName[name]
	return g, ok
}

// Len reports the number of garages.
func (r *Registry) Len() int {
	return len(r.garages)
}

// LotIndex maps lot number to canonical garage name for garages tagged with
// the given source. Split decks share a lot number; the first garage in seed
// order wins.
func (r *Registry) LotIndex(source string) map[int]string {
	idx := make(map[int]string)
	for _, g := range r.garages {
		if g.Source != source {
			continue
		}
		if _, taken := idx[g.LotNumber]; !taken {
			idx[g.LotNumber] = g.Name
		}
	}
	return idx
}
