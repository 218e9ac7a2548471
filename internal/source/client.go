package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// fetchClient performs upstream GETs behind a circuit breaker. A tripped
// breaker reads as an ordinary fetch failure; the polling interval is the
// only retry mechanism.
type fetchClient struct {
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

func newFetchClient(name string, client *http.Client) *fetchClient {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &fetchClient{client: client, breaker: cb}
}

// get fetches the URL and returns the response body.
func (c *fetchClient) get(ctx context.Context, url string) ([]byte, error) {
	body, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("http request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
		}

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return body.([]byte), nil
}
