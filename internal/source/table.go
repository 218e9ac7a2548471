package source

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"parking-vacancy-backend/config"
	"parking-vacancy-backend/internal/store"
)

// TableAdapter scrapes the HTML occupancy table. It locates the first table
// whose text contains the configured marker, then reads garage name and
// vacancy from columns 1 and 2 of every body row with at least 3 cells.
type TableAdapter struct {
	url    string
	marker string
	client *fetchClient
}

// NewTableAdapter creates the HTML table adapter.
func NewTableAdapter(cfg config.TableSourceConfig, client *http.Client) *TableAdapter {
	return &TableAdapter{
		url:    cfg.URL,
		marker: cfg.Marker,
		client: newFetchClient("table", client),
	}
}

// Name implements Adapter.
func (a *TableAdapter) Name() string { return "table" }

// Fetch implements Adapter. All rows in one response share a single
// fetch-time timestamp.
func (a *TableAdapter) Fetch(ctx context.Context) ([]store.Record, error) {
	body, err := a.client.get(ctx, a.url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML document: %w", err)
	}

	var table *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if strings.Contains(sel.Text(), a.marker) {
			table = sel
			return false
		}
		return true
	})
	if table == nil {
		return nil, fmt.Errorf("could not find a table containing marker %q", a.marker)
	}

	observedAt := time.Now().UTC()

	var records []store.Record
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		// Rows without the expected cell count are layout noise, not errors.
		if cells.Length() < 3 {
			return
		}
		name := strings.TrimSpace(cells.Eq(1).Text())
		vacancy := strings.TrimSpace(cells.Eq(2).Text())
		if name == "" {
			return
		}
		records = append(records, store.Record{
			GarageName:   name,
			VacantStalls: vacancy,
			ObservedAt:   observedAt,
		})
	})

	return records, nil
}
