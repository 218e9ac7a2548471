// Package source fetches upstream occupancy data and normalizes it into
// availability records. Each adapter owns one URL and one parsing strategy;
// adapter failures are warnings, never cycle aborts.
package source

import (
	"context"
	"log"
	"sync"
	"time"

	"parking-vacancy-backend/internal/store"
)

// Adapter fetches one upstream source and normalizes its payload.
type Adapter interface {
	// Name identifies the adapter in precedence configuration and logs.
	Name() string
	// Fetch retrieves and normalizes the upstream payload. Every returned
	// record carries an observed_at assigned here, never by the store.
	Fetch(ctx context.Context) ([]store.Record, error)
}

// FetchAll runs every adapter concurrently with a per-fetch timeout and
// returns their results positionally. A failed adapter contributes an empty
// list and a logged warning; the cycle always proceeds.
func FetchAll(ctx context.Context, adapters []Adapter, timeout time.Duration) [][]store.Record {
	results := make([][]store.Record, len(adapters))

	var wg sync.WaitGroup
	for i, a := range adapters {
		wg.Add(1)
		go func(i int, a Adapter) {
			defer wg.Done()

			fetchCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			records, err := a.Fetch(fetchCtx)
			if err != nil {
				log.Printf("Warning: source %s failed, skipping for this cycle: %v", a.Name(), err)
				return
			}
			results[i] = records
		}(i, a)
	}
	wg.Wait()

	return results
}
