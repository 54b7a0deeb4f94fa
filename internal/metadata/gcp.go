// Package metadata fetches deployment placement information from the GCP
// metadata server. Every lookup is best effort with a short timeout: callers
// get a value or an "absent" flag, never an error, because the server only
// exists when running on Google Cloud.
package metadata

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	metadataPathPrefix = "/computeMetadata/v1/"
	requestTimeout     = time.Second
)

// Client queries the instance metadata server.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a metadata client. baseURL is normally
// http://metadata.google.internal; tests point it at a local server.
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Region returns the instance region, or false when unavailable.
func (c *Client) Region(ctx context.Context) (string, bool) {
	return c.lookup(ctx, "instance/region")
}

// Zone returns the instance zone, or false when unavailable.
func (c *Client) Zone(ctx context.Context) (string, bool) {
	return c.lookup(ctx, "instance/zone")
}

func (c *Client) lookup(ctx context.Context, path string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	url := c.baseURL + metadataPathPrefix + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", false
	}
	req.Header.Set("Metadata-Flavor", "Google")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false
	}

	value := strings.TrimSpace(string(body))
	if value == "" {
		return "", false
	}

	// The server returns full paths like projects/123/zones/us-east1-b;
	// only the final element is meaningful here
	if idx := strings.LastIndex(value, "/"); idx >= 0 {
		value = value[idx+1:]
	}
	return value, value != ""
}
