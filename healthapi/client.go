// Package healthapi is the HTTP client for the device telemetry API: the
// upstream service that aggregates the desktop agent's window/mouse
// telemetry and the wearable's heart-rate stream.
//
// Both endpoints return a JSON array of per-user records; the dashboard
// tracks a single user, so callers get the first element. The upstream
// heart-rate timestamp field is epoch nanoseconds (the producer multiplies
// a millisecond clock by 1e6); this package converts to milliseconds here,
// at the boundary, so the rest of the system only ever sees milliseconds.
package healthapi

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"status_backend/activity"
)

// ErrNoData indicates the upstream answered with an empty record array,
// which happens while the device agent has not reported yet.
var ErrNoData = errors.New("healthapi: no records in response")

const userAgent = "StatusBackend/1.0"

// ClientConfig contains configuration for the Client.
type ClientConfig struct {
	// BaseURL is the telemetry API root, e.g. "https://health.example.com".
	// Required - no default.
	BaseURL string

	// Timeout bounds each request. Defaults to 5 seconds, matching the
	// upstream's own abort window.
	Timeout time.Duration

	// AllowSelfSigned disables TLS certificate verification for
	// self-hosted deployments with self-signed certificates.
	AllowSelfSigned bool
}

// DefaultClientConfig returns a ClientConfig with default values.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Timeout: 5 * time.Second,
	}
}

// Client talks to the device telemetry API. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client from the given configuration.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("healthapi: BaseURL is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultClientConfig().Timeout
	}

	transport := http.DefaultTransport
	if cfg.AllowSelfSigned {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		transport = t
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
	}, nil
}

// activityRecord is the wire shape of one /api/v1/activity element.
type activityRecord struct {
	UserID           string `json:"user_id"`
	Timestamp        int64  `json:"timestamp"`
	ProcessName      string `json:"process_name"`
	WindowTitle      string `json:"window_title"`
	MouseIdleSeconds int    `json:"mouse_idle_seconds"`
	IsFullscreen     bool   `json:"is_fullscreen"`
	ExtraInfo        string `json:"extra_info"`
}

// statusRecord is the wire shape of one /api/v1/status element.
type statusRecord struct {
	UserID        string `json:"user_id"`
	DeviceID      string `json:"device_id"`
	AlarmState    string `json:"alarm_state"`
	LastNonZeroHR int    `json:"last_non_zero_hr"`
	// LastTimestamp is epoch NANOSECONDS on the wire.
	LastTimestamp int64 `json:"last_timestamp"`
	IsWatchOff    bool  `json:"is_watch_off"`
	RecentHRs     []struct {
		HeartRate int   `json:"HeartRate"`
		Timestamp int64 `json:"Timestamp"`
	} `json:"recent_hrs"`
}

// GetActivity fetches the latest telemetry snapshot for the tracked user.
// Returns ErrNoData when the upstream has no records yet.
func (c *Client) GetActivity(ctx context.Context) (*activity.TelemetrySnapshot, error) {
	var records []activityRecord
	if err := c.getJSON(ctx, "/api/v1/activity", &records); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoData
	}

	first := records[0]
	return &activity.TelemetrySnapshot{
		WindowTitle:      first.WindowTitle,
		ProcessName:      first.ProcessName,
		MouseIdleSeconds: first.MouseIdleSeconds,
	}, nil
}

// GetHeartRate fetches the latest heart-rate snapshot for the tracked
// user, converting the upstream nanosecond timestamp to milliseconds.
// Returns ErrNoData when the upstream has no records yet.
func (c *Client) GetHeartRate(ctx context.Context) (*activity.HeartRateSnapshot, error) {
	var records []statusRecord
	if err := c.getJSON(ctx, "/api/v1/status", &records); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoData
	}

	first := records[0]
	return &activity.HeartRateSnapshot{
		LastNonZeroHR:       first.LastNonZeroHR,
		LastTimestampMillis: first.LastTimestamp / 1_000_000,
		IsWatchOff:          first.IsWatchOff,
	}, nil
}

// EndpointProbe is a lightweight health check for one telemetry endpoint.
// It satisfies the dashboard's upstream-checker interface.
type EndpointProbe struct {
	client *Client
	id     string
	path   string
}

// ActivityProbe returns a probe for the activity telemetry endpoint.
func (c *Client) ActivityProbe() EndpointProbe {
	return EndpointProbe{client: c, id: "activity", path: "/api/v1/activity"}
}

// HeartRateProbe returns a probe for the heart-rate endpoint.
func (c *Client) HeartRateProbe() EndpointProbe {
	return EndpointProbe{client: c, id: "heartrate", path: "/api/v1/status"}
}

// Check performs a GET against the probed endpoint and reports whether it
// answered with parseable JSON. An empty record array still counts as
// reachable.
func (p EndpointProbe) Check(ctx context.Context) error {
	var records []json.RawMessage
	return p.client.getJSON(ctx, p.path, &records)
}

// EndpointID returns the endpoint identifier.
func (p EndpointProbe) EndpointID() string {
	return p.id
}

// EndpointURL returns the full endpoint URL for display.
func (p EndpointProbe) EndpointURL() string {
	return p.client.baseURL + p.path
}

// getJSON performs a GET against the given path and decodes the body.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s response: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned HTTP %d: %s", path, resp.StatusCode, truncateBody(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing %s response: %w", path, err)
	}
	return nil
}

// truncateBody keeps error messages readable when the upstream returns an
// HTML error page.
func truncateBody(body []byte) string {
	const max = 200
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
