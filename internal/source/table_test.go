package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parking-vacancy-backend/config"
)

const occupancyPage = `<html><body>
<table><tbody><tr><td>unrelated navigation table</td></tr></tbody></table>
<table>
  <thead><tr><th>Lot</th><th>Garage/Ramp</th><th>Open Stalls</th></tr></thead>
  <tbody>
    <tr><td>20</td><td> 020  UNIVERSITY AVE RAMP </td><td> 142 </td></tr>
    <tr><td colspan="3">Counts update every few minutes.</td></tr>
    <tr><td></td><td>  </td><td>12</td></tr>
    <tr><td>7</td><td>007  GRAINGER HALL GARAGE</td><td>Full</td></tr>
  </tbody>
</table>
</body></html>`

func newTableAdapter(t *testing.T, url string) *TableAdapter {
	t.Helper()
	return NewTableAdapter(config.TableSourceConfig{URL: url, Marker: "Garage/Ramp"}, &http.Client{Timeout: 5 * time.Second})
}

func TestTableAdapter_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(occupancyPage))
	}))
	defer server.Close()

	records, err := newTableAdapter(t, server.URL).Fetch(context.Background())
	require.NoError(t, err)

	// The short notice row and the blank-name row are skipped, not errors.
	require.Len(t, records, 2)
	assert.Equal(t, "020  UNIVERSITY AVE RAMP", records[0].GarageName)
	assert.Equal(t, "142", records[0].VacantStalls)
	assert.Equal(t, "007  GRAINGER HALL GARAGE", records[1].GarageName)
	assert.Equal(t, "Full", records[1].VacantStalls)

	// One fetch-time timestamp shared by every row.
	assert.Equal(t, records[0].ObservedAt, records[1].ObservedAt)
	assert.WithinDuration(t, time.Now().UTC(), records[0].ObservedAt, 5*time.Second)
}

func TestTableAdapter_MarkerNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><table><tbody><tr><td>nothing here</td></tr></tbody></table></body></html>`))
	}))
	defer server.Close()

	records, err := newTableAdapter(t, server.URL).Fetch(context.Background())
	assert.Error(t, err)
	assert.Nil(t, records)
}

func TestTableAdapter_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newTableAdapter(t, server.URL).Fetch(context.Background())
	assert.Error(t, err)
}

func TestTableAdapter_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	adapter := newTableAdapter(t, server.URL)
	for i := 0; i < 5; i++ {
		_, err := adapter.Fetch(context.Background())
		require.Error(t, err)
	}
	require.Equal(t, 5, hits)

	// The fifth consecutive failure trips the breaker; from then on fetches
	// fail fast without reaching upstream.
	_, err := adapter.Fetch(context.Background())
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 5, hits)
}

func TestFetchAll_OpenBreakerSkipsOnlyThatSource(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(occupancyPage))
	}))
	defer healthy.Close()

	brokenAdapter := newTableAdapter(t, broken.URL)
	for i := 0; i < 5; i++ {
		_, err := brokenAdapter.Fetch(context.Background())
		require.Error(t, err)
	}

	// An open breaker reads as an ordinary fetch failure: the tripped source
	// contributes nothing and the healthy one is unaffected.
	results := FetchAll(context.Background(), []Adapter{brokenAdapter, newTableAdapter(t, healthy.URL)}, time.Second)
	assert.Empty(t, results[0])
	require.Len(t, results[1], 2)
	assert.Equal(t, "020  UNIVERSITY AVE RAMP", results[1][0].GarageName)
}
