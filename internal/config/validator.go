package config

import (
	"fmt"
	"os"
	"strings"
)

// RequiredPostgresEnvVars lists the variables that must be set when the
// postgres storage backend is selected
var RequiredPostgresEnvVars = []string{
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
}

// ValidateEnv checks that all required environment variables are set for
// the selected storage backend
func ValidateEnv() error {
	backend := strings.ToLower(os.Getenv("STORAGE_BACKEND"))
	if backend == StorageBackendMemory {
		return nil
	}

	var missing []string
	for _, envVar := range RequiredPostgresEnvVars {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}

// ValidateEnvWithWarnings checks environment variables and returns warnings
// for non-critical issues (like using default values)
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string

	if os.Getenv("DB_PASSWORD") == "postgres" {
		warnings = append(warnings, "DB_PASSWORD is the default value - please use a secure password")
	}
	if os.Getenv("COINS_PER_MINUTE") == "" {
		warnings = append(warnings, "COINS_PER_MINUTE not set - using 1 coin per minute")
	}

	return warnings, nil
}
