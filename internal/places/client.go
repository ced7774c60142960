// Package places looks up candidate locations by name and driving routes
// between two points.
package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// API endpoint paths.
const (
	pathSearch = "/api/common/elastic/search"
	pathRoute  = "/route/v1/driving/"
)

// ErrNoRoute is returned when the routing service finds no path.
var ErrNoRoute = errors.New("no route found")

// Coord is a WGS84 position.
type Coord struct {
	Lat float64 `json:"latitude"`
	Lng float64 `json:"longitude"`
}

// Place is one search candidate.
type Place struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Coord
}

// Route is a driving route's polyline.
type Route struct {
	Coords    []Coord
	DistanceM float64
	DurationS float64
}

// Client is a lightweight HTTP client for the place-search and routing APIs.
type Client struct {
	searchURL  string
	routeURL   string
	httpClient *http.Client
	inflight   singleflight.Group
}

// NewClient creates a client. Either base URL may omit its scheme.
func NewClient(searchURL, routeURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		searchURL:  normalizeURL(searchURL),
		routeURL:   normalizeURL(routeURL),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func normalizeURL(baseURL string) string {
	baseURL = strings.TrimSpace(baseURL)
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}
	return strings.TrimRight(baseURL, "/")
}

// get performs a GET request and decodes the JSON response into dst.
func (c *Client) get(ctx context.Context, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("API error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(resp.Body).Decode(dst)
}
