package validation

import (
	"os"
	"path/filepath"
	"strconv"

	"status_backend/core"
)

// ValidationResult represents the result of a configuration validation check.
type ValidationResult struct {
	Valid   bool
	Message string
	Error   error
}

// ConfigValidator composes validation atoms to provide comprehensive configuration checking.
// This is a molecule that orchestrates URL validation, file existence, and path checks.
type ConfigValidator struct {
	envPath string // Path to .env file (default: ".env")
}

// NewConfigValidator creates a new ConfigValidator with default settings.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{
		envPath: ".env",
	}
}

// WithEnvPath sets a custom path for the .env file.
func (v *ConfigValidator) WithEnvPath(path string) *ConfigValidator {
	v.envPath = path
	return v
}

// CheckEnvFile validates that the .env file exists.
// Returns a ValidationResult with error details if the file is missing.
func (v *ConfigValidator) CheckEnvFile() ValidationResult {
	if err := CheckFileExists(v.envPath); err != nil {
		return ValidationResult{
			Valid:   false,
			Message: "Configuration file not found. Copy example.env to .env and set API_BASE.",
			Error:   core.ErrEnvFileMissing(v.envPath),
		}
	}
	return ValidationResult{
		Valid:   true,
		Message: "Environment file found",
	}
}

// CheckAPIBase validates the API_BASE environment variable.
// Returns a ValidationResult with error details if the URL is invalid.
func (v *ConfigValidator) CheckAPIBase() ValidationResult {
	apiBase := core.GetEnvOrDefault("API_BASE", "")

	if apiBase == "" {
		return ValidationResult{
			Valid:   false,
			Message: "API_BASE required. Set your telemetry API URL (e.g., https://health.example.com)",
			Error:   core.ErrMissingConfig("API_BASE"),
		}
	}

	if err := ValidateServerURL(apiBase); err != nil {
		return ValidationResult{
			Valid:   false,
			Message: "Invalid API_BASE URL: " + apiBase + ". Example: https://health.example.com",
			Error:   core.ErrInvalidServerURL(apiBase, err.Error()),
		}
	}

	return ValidationResult{
		Valid:   true,
		Message: "API base URL valid",
	}
}

// CheckDatabasePath validates that the DB_PATH location is usable: its
// parent directory must exist or be creatable.
func (v *ConfigValidator) CheckDatabasePath() ValidationResult {
	dbPath := core.GetEnvOrDefault("DB_PATH", core.GetDataFilePath("status.db"))

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return ValidationResult{
			Valid:   false,
			Message: "Database directory not writable: " + dir,
			Error:   core.ErrDatabaseUnusable(dbPath, err.Error()),
		}
	}

	return ValidationResult{
		Valid:   true,
		Message: "Database path usable",
	}
}

// CheckRulesFile validates the optional RULES_FILE environment variable.
// An unset variable is valid (the built-in table is used); a set variable
// must point at an existing file.
func (v *ConfigValidator) CheckRulesFile() ValidationResult {
	rulesFile := core.GetEnvOrDefault("RULES_FILE", "")
	if rulesFile == "" {
		return ValidationResult{
			Valid:   true,
			Message: "No extra rules file configured (built-in table only)",
		}
	}

	if err := CheckFileExists(rulesFile); err != nil {
		return ValidationResult{
			Valid:   false,
			Message: "Rules file not found: " + rulesFile,
			Error:   core.ErrInvalidRulesFile(rulesFile, "file not found"),
		}
	}

	return ValidationResult{
		Valid:   true,
		Message: "Rules file found",
	}
}

// CheckPort validates the PORT environment variable when set.
func (v *ConfigValidator) CheckPort() ValidationResult {
	raw := core.GetEnvOrDefault("PORT", "")
	if raw == "" {
		return ValidationResult{
			Valid:   true,
			Message: "Using default port",
		}
	}

	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return ValidationResult{
			Valid:   false,
			Message: "PORT must be a number between 1 and 65535, got: " + raw,
			Error:   core.ErrMissingConfig("PORT"),
		}
	}

	return ValidationResult{
		Valid:   true,
		Message: "Port valid",
	}
}

// ValidateAll runs all configuration checks and returns all results.
// This provides a comprehensive view of the configuration state.
func (v *ConfigValidator) ValidateAll() []ValidationResult {
	return []ValidationResult{
		v.CheckEnvFile(),
		v.CheckAPIBase(),
		v.CheckDatabasePath(),
		v.CheckRulesFile(),
		v.CheckPort(),
	}
}

// ValidateRequired runs only the required configuration checks.
// Returns the first validation failure, or nil if all required checks pass.
func (v *ConfigValidator) ValidateRequired() error {
	if result := v.CheckEnvFile(); !result.Valid {
		return result.Error
	}
	if result := v.CheckAPIBase(); !result.Valid {
		return result.Error
	}
	if result := v.CheckDatabasePath(); !result.Valid {
		return result.Error
	}
	return nil
}

// IsValid returns true if all required configuration is valid.
func (v *ConfigValidator) IsValid() bool {
	return v.ValidateRequired() == nil
}

// GetFirstError returns the first validation error, or nil if all checks pass.
func (v *ConfigValidator) GetFirstError() error {
	return v.ValidateRequired()
}

// CountValid returns the number of valid configuration items.
func (v *ConfigValidator) CountValid() int {
	results := v.ValidateAll()
	count := 0
	for _, r := range results {
		if r.Valid {
			count++
		}
	}
	return count
}

// CountInvalid returns the number of invalid configuration items.
func (v *ConfigValidator) CountInvalid() int {
	results := v.ValidateAll()
	return len(results) - v.CountValid()
}
