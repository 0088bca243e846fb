package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config captures environment driven configuration for the booker service.
type Config struct {
	HTTPPort    int
	SQLiteDSN   string
	AdminMarker string
	SeedDemo    bool
}

// Load parses configuration values from the current process environment.
//
// Every field has a default; set values are validated and invalid entries
// are reported together in a single error.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:    8080,
		SQLiteDSN:   "file:booker.db?_foreign_keys=on",
		AdminMarker: "admin",
		SeedDemo:    true,
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("BOOKER_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "BOOKER_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("BOOKER_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if marker := strings.TrimSpace(os.Getenv("BOOKER_ADMIN_MARKER")); marker != "" {
		cfg.AdminMarker = marker
	}

	if seedValue := strings.TrimSpace(os.Getenv("BOOKER_SEED_DEMO")); seedValue != "" {
		seed, err := strconv.ParseBool(seedValue)
		if err != nil {
			invalid = append(invalid, "BOOKER_SEED_DEMO")
		} else {
			cfg.SeedDemo = seed
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
