// Package geocode is a thin client for the Nominatim reverse-geocoding API.
package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/go-faster/errors"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// Config holds the reverse-geocoding client settings.
type Config struct {
	// BaseURL overrides the Nominatim endpoint, mainly for tests.
	BaseURL string
	// UserAgent identifies this service to Nominatim, which requires a
	// descriptive agent string for API access.
	UserAgent string
	Timeout   time.Duration
}

// Client resolves coordinates to a display address.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
}

// NewClient creates a reverse-geocoding Client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		http:      &http.Client{Timeout: cfg.Timeout},
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
	}
}

// Reverse resolves lat/lng to a human-readable address. It returns an empty
// string when Nominatim has no display name for the coordinates.
func (c *Client) Reverse(ctx context.Context, lat, lng string) (string, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", lat)
	q.Set("lon", lng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return "", errors.Wrap(err, "build request")
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "reverse geocode")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("reverse geocode: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", errors.Wrap(err, "decode response")
	}
	return body.DisplayName, nil
}
