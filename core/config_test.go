package core

import (
	"os"
	"testing"
	"time"
)

// configEnvVars lists every environment variable LoadConfig reads, so tests
// can save and restore a clean slate.
var configEnvVars = []string{
	"API_BASE",
	"POLL_INTERVAL_SECONDS",
	"REQUEST_TIMEOUT_SECONDS",
	"PORT",
	"WEBUI_PWD",
	"ALLOW_SELF_SIGNED_CERTS",
	"DB_PATH",
	"RULES_FILE",
	"LOG_FILE",
	"DEV_MODE",
}

func withCleanConfigEnv(t *testing.T, set map[string]string) {
	t.Helper()
	saved := make(map[string]string, len(configEnvVars))
	for _, key := range configEnvVars {
		saved[key] = os.Getenv(key)
		os.Unsetenv(key)
	}
	t.Cleanup(func() {
		for _, key := range configEnvVars {
			os.Setenv(key, saved[key])
		}
	})
	for key, value := range set {
		os.Setenv(key, value)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	withCleanConfigEnv(t, map[string]string{
		"API_BASE": "https://health.example.com",
	})

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.HealthAPIBase != "https://health.example.com" {
		t.Errorf("HealthAPIBase = %q, want %q", cfg.HealthAPIBase, "https://health.example.com")
	}
	if cfg.PollInterval != 10*time.Second {
		t.Errorf("PollInterval = %v, want 10s", cfg.PollInterval)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v, want 5s", cfg.RequestTimeout)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.WebUIPassword != "" {
		t.Errorf("WebUIPassword = %q, want empty", cfg.WebUIPassword)
	}
	if cfg.AllowSelfSignedCerts {
		t.Error("AllowSelfSignedCerts = true, want false")
	}
	if cfg.DBPath == "" {
		t.Error("DBPath should default to the data directory")
	}
	if cfg.RulesFile != "" {
		t.Errorf("RulesFile = %q, want empty", cfg.RulesFile)
	}
	if cfg.DevMode {
		t.Error("DevMode = true, want false")
	}
}

func TestLoadConfig_CustomValues(t *testing.T) {
	withCleanConfigEnv(t, map[string]string{
		"API_BASE":                "http://localhost:3000",
		"POLL_INTERVAL_SECONDS":   "30",
		"REQUEST_TIMEOUT_SECONDS": "15",
		"PORT":                    "9090",
		"WEBUI_PWD":               "secret",
		"ALLOW_SELF_SIGNED_CERTS": "true",
		"DB_PATH":                 "/tmp/test-status.db",
		"RULES_FILE":              "/tmp/rules.yaml",
		"DEV_MODE":                "true",
	})

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.HealthAPIBase != "http://localhost:3000" {
		t.Errorf("HealthAPIBase = %q, want http://localhost:3000", cfg.HealthAPIBase)
	}
	if cfg.PollInterval != 30*time.Second {
		t.Errorf("PollInterval = %v, want 30s", cfg.PollInterval)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Errorf("RequestTimeout = %v, want 15s", cfg.RequestTimeout)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.WebUIPassword != "secret" {
		t.Errorf("WebUIPassword = %q, want secret", cfg.WebUIPassword)
	}
	if !cfg.AllowSelfSignedCerts {
		t.Error("AllowSelfSignedCerts = false, want true")
	}
	if cfg.DBPath != "/tmp/test-status.db" {
		t.Errorf("DBPath = %q, want /tmp/test-status.db", cfg.DBPath)
	}
	if cfg.RulesFile != "/tmp/rules.yaml" {
		t.Errorf("RulesFile = %q, want /tmp/rules.yaml", cfg.RulesFile)
	}
	if !cfg.DevMode {
		t.Error("DevMode = false, want true")
	}
}

func TestLoadConfig_MissingAPIBase(t *testing.T) {
	withCleanConfigEnv(t, nil)

	_, err := LoadConfig()
	if err == nil {
		t.Fatal("LoadConfig() should fail without API_BASE")
	}
	if GetErrorCode(err) != ErrCodeMissingConfig {
		t.Errorf("error code = %q, want %q", GetErrorCode(err), ErrCodeMissingConfig)
	}
}

func TestLoadConfig_InvalidAPIBase(t *testing.T) {
	tests := []struct {
		name    string
		apiBase string
	}{
		{"no scheme", "health.example.com"},
		{"ftp scheme", "ftp://health.example.com"},
		{"missing host", "http://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withCleanConfigEnv(t, map[string]string{"API_BASE": tt.apiBase})

			_, err := LoadConfig()
			if err == nil {
				t.Fatalf("LoadConfig() should fail for API_BASE=%q", tt.apiBase)
			}
			if GetErrorCode(err) != ErrCodeInvalidServerURL {
				t.Errorf("error code = %q, want %q", GetErrorCode(err), ErrCodeInvalidServerURL)
			}
		})
	}
}

func TestLoadConfig_InvalidPort(t *testing.T) {
	tests := []struct {
		name string
		port string
	}{
		{"zero", "0"},
		{"negative", "-1"},
		{"out of range", "70000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withCleanConfigEnv(t, map[string]string{
				"API_BASE": "https://health.example.com",
				"PORT":     tt.port,
			})

			if _, err := LoadConfig(); err == nil {
				t.Fatalf("LoadConfig() should fail for PORT=%q", tt.port)
			}
		})
	}
}

func TestLoadConfig_PollIntervalTooShort(t *testing.T) {
	withCleanConfigEnv(t, map[string]string{
		"API_BASE":              "https://health.example.com",
		"POLL_INTERVAL_SECONDS": "0",
	})

	if _, err := LoadConfig(); err == nil {
		t.Fatal("LoadConfig() should reject a zero poll interval")
	}
}
