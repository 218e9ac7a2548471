// Package poller drives the periodic fetch→merge→persist cycle.
package poller

import (
	"context"
	"log"
	"sort"
	"time"

	"parking-vacancy-backend/config"
	"parking-vacancy-backend/internal/reconcile"
	"parking-vacancy-backend/internal/source"
	"parking-vacancy-backend/internal/store"
)

// Service owns the background reconciliation loop. It is bound to the context
// passed to Run and stops cleanly when that context is cancelled.
type Service struct {
	cfg      *config.Config
	store    store.Store
	adapters []source.Adapter // ascending precedence
}

// NewService creates a poller over the given adapters, ordered by the
// configured precedence. Adapters not named in the precedence list run at
// lowest precedence, in their given order.
func NewService(cfg *config.Config, st store.Store, adapters []source.Adapter) *Service {
	return &Service{
		cfg:      cfg,
		store:    st,
		adapters: orderByPrecedence(adapters, cfg.Sources.Precedence),
	}
}

func orderByPrecedence(adapters []source.Adapter, precedence []string) []source.Adapter {
	ranked := make(map[string]source.Adapter, len(adapters))
	for _, a := range adapters {
		ranked[a.Name()] = a
	}

	ordered := make([]source.Adapter, 0, len(adapters))
	for _, a := range adapters {
		listed := false
		for _, name := range precedence {
			if a.Name() == name {
				listed = true
				break
			}
		}
		if !listed {
			log.Printf("Warning: source %s is not in sources.precedence; treating it as lowest precedence", a.Name())
			ordered = append(ordered, a)
		}
	}
	for _, name := range precedence {
		if a, ok := ranked[name]; ok {
			ordered = append(ordered, a)
		}
	}
	return ordered
}

// Run executes one cycle immediately, then one per interval measured from
// cycle start to cycle start. An overrunning cycle delays the next tick but
// is never overlapped or doubled.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Poller.Enabled {
		log.Println("Poller is disabled. Not starting.")
		return
	}
	log.Println("Starting poller service...")

	s.RunCycle(ctx)

	ticker := time.NewTicker(s.cfg.Poller.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Poller service shutting down.")
			return
		case <-ticker.C:
			s.RunCycle(ctx)
		}
	}
}

// RunCycle performs a single fetch→merge→persist cycle. Source failures only
// shrink the cycle's input; store failures abort the persist step and leave
// the previously committed state untouched until the next interval.
func (s *Service) RunCycle(ctx context.Context) {
	log.Println("Executing reconciliation cycle...")

	results := source.FetchAll(ctx, s.adapters, s.cfg.Poller.FetchTimeout)
	snapshot := reconcile.Merge(results)
	if len(snapshot) == 0 {
		log.Println("Cycle finished: no source produced records; keeping previous state.")
		return
	}

	records := make([]store.Record, 0, len(snapshot))
	for _, rec := range snapshot {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].GarageName < records[j].GarageName
	})

	if err := s.store.AppendHistory(ctx, records); err != nil {
		log.Printf("Error appending history, retrying next interval: %v", err)
		return
	}
	if err := s.store.UpsertCurrent(ctx, snapshot); err != nil {
		log.Printf("Error upserting current availability, retrying next interval: %v", err)
		return
	}

	log.Printf("Cycle finished: reconciled %d garages.", len(snapshot))
}
