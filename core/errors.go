package core

import (
	"fmt"
)

// ConfigError represents a configuration-related error with actionable instructions.
type ConfigError struct {
	Code    string // Error code for programmatic handling
	Message string // Human-readable error message
	Action  string // Actionable instruction for resolution
}

func (e *ConfigError) Error() string {
	if e.Action != "" {
		return fmt.Sprintf("%s. %s", e.Message, e.Action)
	}
	return e.Message
}

// Error codes for configuration errors
const (
	ErrCodeEnvFileMissing    = "ENV_FILE_MISSING"
	ErrCodeInvalidServerURL  = "INVALID_SERVER_URL"
	ErrCodeServerUnreachable = "SERVER_UNREACHABLE"
	ErrCodeMissingConfig     = "MISSING_CONFIG"
	ErrCodeInvalidRulesFile  = "INVALID_RULES_FILE"
	ErrCodeDatabaseUnusable  = "DATABASE_UNUSABLE"
)

// ErrEnvFileMissing returns an error for missing .env file
func ErrEnvFileMissing(path string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeEnvFileMissing,
		Message: fmt.Sprintf("Configuration file not found: %s", path),
		Action:  "Copy example.env to .env and configure the required values",
	}
}

// ErrInvalidServerURL returns an error for invalid server URL format
func ErrInvalidServerURL(url string, reason string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidServerURL,
		Message: fmt.Sprintf("Invalid API_BASE URL '%s': %s", url, reason),
		Action:  "Set API_BASE to a valid URL (e.g., https://health.example.com)",
	}
}

// ErrServerUnreachable returns an error when the telemetry API cannot be reached
func ErrServerUnreachable(url string, reason string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeServerUnreachable,
		Message: fmt.Sprintf("Cannot connect to telemetry API at %s: %s", url, reason),
		Action:  "Check that API_BASE is correct and the server is running. For self-signed certificates, set ALLOW_SELF_SIGNED_CERTS=true",
	}
}

// ErrMissingConfig returns an error for missing required configuration
func ErrMissingConfig(varName string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeMissingConfig,
		Message: fmt.Sprintf("Missing required configuration: %s", varName),
		Action:  fmt.Sprintf("Set %s in your .env file", varName),
	}
}

// ErrInvalidRulesFile returns an error for an unusable RULES_FILE
func ErrInvalidRulesFile(path string, reason string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidRulesFile,
		Message: fmt.Sprintf("Cannot load rules file %s: %s", path, reason),
		Action:  "Fix the rules file or unset RULES_FILE to use the built-in table only",
	}
}

// ErrDatabaseUnusable returns an error when the SQLite database cannot be opened
func ErrDatabaseUnusable(path string, reason string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeDatabaseUnusable,
		Message: fmt.Sprintf("Cannot open database at %s: %s", path, reason),
		Action:  "Check DB_PATH points to a writable location",
	}
}

// IsConfigError checks if an error is a ConfigError and returns it if so
func IsConfigError(err error) (*ConfigError, bool) {
	if configErr, ok := err.(*ConfigError); ok {
		return configErr, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from an error if it's a ConfigError
func GetErrorCode(err error) string {
	if configErr, ok := IsConfigError(err); ok {
		return configErr.Code
	}
	return ""
}
