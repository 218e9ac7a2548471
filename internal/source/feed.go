package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"parking-vacancy-backend/config"
	"parking-vacancy-backend/internal/parse"
	"parking-vacancy-backend/internal/ref"
	"parking-vacancy-backend/internal/store"
)

// modifiedLayout matches the feed's human-readable timestamp,
// e.g. "August 29, 2026 - 3:05PM".
const modifiedLayout = "January 2, 2006 - 3:04PM"

// feedPayload models the JSON vacancy feed. Vacancy values arrive as numbers
// in most revisions but as strings ("Full") in some, so both are accepted.
type feedPayload struct {
	Modified  string         `json:"modified"`
	Vacancies map[string]any `json:"vacancies"`
}

func vacancyText(v any) (string, bool) {
	switch val := v.(type) {
	case json.Number:
		return val.String(), true
	case string:
		return strings.TrimSpace(val), true
	default:
		return "", false
	}
}

// FeedAdapter reads the JSON vacancy feed. Upstream keys vacancies by lot id;
// the adapter maps them to canonical garage names through the reference
// registry's lot index for the configured origin.
type FeedAdapter struct {
	url      string
	lots     map[int]string
	location *time.Location
	client   *fetchClient
}

// NewFeedAdapter creates the JSON feed adapter. The registry supplies the
// lot-id lookup; timezone interprets the feed's zone-less timestamp.
func NewFeedAdapter(cfg config.FeedSourceConfig, registry *ref.Registry, timezone string, client *http.Client) (*FeedAdapter, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", timezone, err)
	}
	return &FeedAdapter{
		url:      cfg.URL,
		lots:     registry.LotIndex(cfg.Origin),
		location: loc,
		client:   newFetchClient("feed", client),
	}, nil
}

// Name implements Adapter.
func (a *FeedAdapter) Name() string { return "feed" }

// Fetch implements Adapter. The feed's single "modified" timestamp applies
// uniformly to every record in the response.
func (a *FeedAdapter) Fetch(ctx context.Context) ([]store.Record, error) {
	body, err := a.client.get(ctx, a.url)
	if err != nil {
		return nil, err
	}

	var payload feedPayload
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal feed response: %w", err)
	}
	if payload.Modified == "" {
		return nil, fmt.Errorf("feed response is missing the modified field")
	}

	observedAt, err := a.parseModified(payload.Modified)
	if err != nil {
		return nil, err
	}

	records := make([]store.Record, 0, len(payload.Vacancies))
	for lotID, raw := range payload.Vacancies {
		count, ok := vacancyText(raw)
		if !ok {
			log.Printf("Warning: dropping feed entry %q: unsupported vacancy value %v", lotID, raw)
			continue
		}
		lot, err := parse.LotNumber(lotID)
		if err != nil {
			log.Printf("Warning: dropping feed entry %q: %v", lotID, err)
			continue
		}
		name, ok := a.lots[lot]
		if !ok {
			log.Printf("Warning: dropping feed entry %q: no garage mapped to lot %d", lotID, lot)
			continue
		}
		records = append(records, store.Record{
			GarageName:   name,
			VacantStalls: count,
			ObservedAt:   observedAt,
		})
	}

	return records, nil
}

// parseModified converts the feed timestamp into UTC, interpreting it in the
// configured timezone. Some feed revisions use an en dash as the separator.
func (a *FeedAdapter) parseModified(modified string) (time.Time, error) {
	normalized := strings.ReplaceAll(modified, "–", "-")
	normalized = strings.Join(strings.Fields(normalized), " ")
	t, err := time.ParseInLocation(modifiedLayout, normalized, a.location)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse modified timestamp %q: %w", modified, err)
	}
	return t.UTC(), nil
}
