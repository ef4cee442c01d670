package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const defaultUserAgent = "sphere-viewer/1.0"

// MaxBodySize caps how many bytes Fetch will read from a response.
const MaxBodySize = 16 << 20

// ErrTooLarge is returned when a response body exceeds MaxBodySize.
var ErrTooLarge = errors.New("download: response too large")

// StatusError reports a non-200 response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("download: %s: HTTP %d", e.URL, e.Code)
}

// Client fetches remote resources. The zero value uses http.DefaultClient.
type Client struct {
	HTTP      *http.Client
	UserAgent string
}

// Fetch GETs url and returns the response body. Cancellation and deadlines
// come from ctx; Client itself sets no timeout.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	ua := c.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "application/json")

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	if len(body) > MaxBodySize {
		return nil, ErrTooLarge
	}
	return body, nil
}
