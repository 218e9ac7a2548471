package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parking-vacancy-backend/config"
	"parking-vacancy-backend/internal/model"
	"parking-vacancy-backend/internal/ref"
)

func testRegistry() *ref.Registry {
	return ref.NewRegistry([]model.Garage{
		{Name: "020  UNIVERSITY AVE RAMP", LotNumber: 20, Source: model.SourceUW, Position: 0},
		{Name: "007  GRAINGER HALL GARAGE", LotNumber: 7, Source: model.SourceUW, Position: 1},
		{Name: "CITY CENTER RAMP", LotNumber: 3, Source: model.SourceCity, Position: 2},
	})
}

func newTestFeedAdapter(t *testing.T, url string) *FeedAdapter {
	t.Helper()
	cfg := config.FeedSourceConfig{URL: url, Origin: model.SourceUW}
	adapter, err := NewFeedAdapter(cfg, testRegistry(), "America/Chicago", &http.Client{Timeout: 5 * time.Second})
	require.NoError(t, err)
	return adapter
}

func TestFeedAdapter_Fetch(t *testing.T) {
	body := `{
		"modified": "August 29, 2026 - 3:05PM",
		"vacancies": {"20_uw": 142, "7_uw": "Full", "99_uw": 10, "3_city": 4, "abc": 1}
	}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer server.Close()

	records, err := newTestFeedAdapter(t, server.URL).Fetch(context.Background())
	require.NoError(t, err)

	// 99 has no garage, 3 belongs to the City origin, "abc" has no numeric
	// component; all three are dropped with warnings, not errors.
	byName := make(map[string]string, len(records))
	for _, rec := range records {
		byName[rec.GarageName] = rec.VacantStalls
	}
	assert.Len(t, records, 2)
	assert.Equal(t, "142", byName["020  UNIVERSITY AVE RAMP"])
	assert.Equal(t, "Full", byName["007  GRAINGER HALL GARAGE"])

	// The single modified timestamp applies to every record, normalized to
	// UTC from the configured zone (CDT is UTC-5 on that date).
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	want := time.Date(2026, time.August, 29, 15, 5, 0, 0, chicago).UTC()
	for _, rec := range records {
		assert.Equal(t, want, rec.ObservedAt)
	}
}

func TestFeedAdapter_EnDashModified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"modified": "August 29, 2026 – 3:05PM", "vacancies": {"20_uw": 1}}`))
	}))
	defer server.Close()

	records, err := newTestFeedAdapter(t, server.URL).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestFeedAdapter_MissingModified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"vacancies": {"20_uw": 1}}`))
	}))
	defer server.Close()

	_, err := newTestFeedAdapter(t, server.URL).Fetch(context.Background())
	assert.Error(t, err)
}

func TestFeedAdapter_MalformedTimestamp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"modified": "yesterday-ish", "vacancies": {"20_uw": 1}}`))
	}))
	defer server.Close()

	_, err := newTestFeedAdapter(t, server.URL).Fetch(context.Background())
	assert.Error(t, err)
}
