package validation

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"status_backend/core"
)

// ConnectivityResult represents the result of a connectivity check.
type ConnectivityResult struct {
	Reachable  bool
	StatusCode int
	Message    string
	Latency    time.Duration
	Error      error
}

// ConnectivityChecker provides methods to verify network connectivity.
// This is a molecule that composes URL validation with HTTP connectivity tests.
type ConnectivityChecker struct {
	timeout              time.Duration
	allowSelfSignedCerts bool
}

// NewConnectivityChecker creates a new ConnectivityChecker with default settings.
// Default timeout is 10 seconds.
func NewConnectivityChecker() *ConnectivityChecker {
	return &ConnectivityChecker{
		timeout:              10 * time.Second,
		allowSelfSignedCerts: false,
	}
}

// WithTimeout sets the timeout for connectivity checks.
func (c *ConnectivityChecker) WithTimeout(timeout time.Duration) *ConnectivityChecker {
	c.timeout = timeout
	return c
}

// WithAllowSelfSignedCerts configures whether to allow self-signed certificates.
func (c *ConnectivityChecker) WithAllowSelfSignedCerts(allow bool) *ConnectivityChecker {
	c.allowSelfSignedCerts = allow
	return c
}

// CheckServerConnectivity tests if a server is reachable using an HTTP HEAD
// request. The URL format is validated first, then a network connection is
// attempted.
//
// Returns a ConnectivityResult with detailed information about the check.
func (c *ConnectivityChecker) CheckServerConnectivity(serverURL string) ConnectivityResult {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	return c.CheckServerConnectivityWithContext(ctx, serverURL)
}

// CheckServerConnectivityWithContext tests server connectivity with a custom context.
func (c *ConnectivityChecker) CheckServerConnectivityWithContext(ctx context.Context, serverURL string) ConnectivityResult {
	if err := ValidateServerURL(serverURL); err != nil {
		return ConnectivityResult{
			Reachable: false,
			Message:   "Invalid URL format",
			Error:     core.ErrInvalidServerURL(serverURL, err.Error()),
		}
	}

	client := c.createHTTPClient()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, serverURL, nil)
	if err != nil {
		return ConnectivityResult{
			Reachable: false,
			Message:   "Failed to create request",
			Error:     core.ErrServerUnreachable(serverURL, err.Error()),
		}
	}

	startTime := time.Now()
	resp, err := client.Do(req)
	latency := time.Since(startTime)

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded || ctx.Err() == context.Canceled {
			return ConnectivityResult{
				Reachable: false,
				Message:   "Request cancelled or timed out",
				Latency:   latency,
				Error:     core.ErrServerUnreachable(serverURL, ctx.Err().Error()),
			}
		}
		return ConnectivityResult{
			Reachable: false,
			Message:   "Connection failed",
			Latency:   latency,
			Error:     core.ErrServerUnreachable(serverURL, err.Error()),
		}
	}
	defer resp.Body.Close()

	// Any response counts as reachable; 4xx/5xx means the server is up but
	// may be misconfigured, which later checks surface.
	return ConnectivityResult{
		Reachable:  true,
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("Server reachable (status: %d)", resp.StatusCode),
		Latency:    latency,
	}
}

// createHTTPClient creates an HTTP client with the configured TLS settings.
func (c *ConnectivityChecker) createHTTPClient() *http.Client {
	client := &http.Client{
		Timeout: c.timeout,
	}

	if c.allowSelfSignedCerts {
		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return client
}

// IsReachable is a convenience function to check if a server is reachable.
// Returns true if the server responds, false otherwise.
func (c *ConnectivityChecker) IsReachable(serverURL string) bool {
	result := c.CheckServerConnectivity(serverURL)
	return result.Reachable
}

// CheckTelemetryAPIConnectivity checks connectivity to the device telemetry
// API using the API_BASE environment variable.
func (c *ConnectivityChecker) CheckTelemetryAPIConnectivity() ConnectivityResult {
	apiBase := core.GetEnvOrDefault("API_BASE", "")
	if apiBase == "" {
		return ConnectivityResult{
			Reachable: false,
			Message:   "API_BASE not configured",
			Error:     core.ErrMissingConfig("API_BASE"),
		}
	}
	return c.CheckServerConnectivity(apiBase)
}
