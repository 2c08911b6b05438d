package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/example/shift-calendar/internal/account"
)

// Config captures environment driven configuration values for the shift
// calendar service.
type Config struct {
	HTTPPort        int
	ManusBaseURL    string
	RefreshInterval time.Duration
	Timezone        string
	Credentials     []account.Credential
}

// Load parses configuration values from the current process environment.
//
// The loader applies defaults for optional fields while validating required
// values. SHIFTCAL_USERS is required and holds comma-separated
// `username:secret` pairs; a malformed pair fails the load, which is fatal at
// startup.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:        3069,
		ManusBaseURL:    "https://server.manus.plus/intergamma",
		RefreshInterval: 24 * time.Hour,
		Timezone:        "Europe/Amsterdam",
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("SHIFTCAL_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "SHIFTCAL_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if baseURL := strings.TrimSpace(os.Getenv("SHIFTCAL_MANUS_BASE_URL")); baseURL != "" {
		cfg.ManusBaseURL = baseURL
	}

	if intervalValue := strings.TrimSpace(os.Getenv("SHIFTCAL_REFRESH_INTERVAL")); intervalValue != "" {
		interval, err := time.ParseDuration(intervalValue)
		if err != nil || interval <= 0 {
			invalid = append(invalid, "SHIFTCAL_REFRESH_INTERVAL")
		} else {
			cfg.RefreshInterval = interval
		}
	}

	if timezone := strings.TrimSpace(os.Getenv("SHIFTCAL_TIMEZONE")); timezone != "" {
		cfg.Timezone = timezone
	}

	if users := strings.TrimSpace(os.Getenv("SHIFTCAL_USERS")); users == "" {
		missing = append(missing, "SHIFTCAL_USERS")
	} else {
		credentials, err := parseCredentials(users)
		if err != nil {
			invalid = append(invalid, fmt.Sprintf("SHIFTCAL_USERS (%v)", err))
		} else {
			cfg.Credentials = credentials
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables are not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("environment variables have invalid values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// parseCredentials splits a comma-separated list of username:secret pairs.
// Error messages reference entries by position so secrets never reach logs.
func parseCredentials(raw string) ([]account.Credential, error) {
	entries := strings.Split(raw, ",")
	credentials := make([]account.Credential, 0, len(entries))
	for i, entry := range entries {
		entry = strings.TrimSpace(entry)
		username, secret, found := strings.Cut(entry, ":")
		if !found || username == "" || secret == "" {
			return nil, fmt.Errorf("entry %d is not a username:secret pair", i+1)
		}
		credentials = append(credentials, account.Credential{Username: username, Secret: secret})
	}
	return credentials, nil
}
