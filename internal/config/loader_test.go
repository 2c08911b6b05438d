package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/example/shift-calendar/internal/account"
)

func TestLoader_ParseEnvironment(t *testing.T) {

	t.Run("applies defaults when variables are missing", func(t *testing.T) {
		unset := []string{
			"SHIFTCAL_HTTP_PORT",
			"SHIFTCAL_MANUS_BASE_URL",
			"SHIFTCAL_REFRESH_INTERVAL",
			"SHIFTCAL_TIMEZONE",
		}
		for _, key := range unset {
			if err := os.Unsetenv(key); err != nil {
				t.Fatalf("failed to unset %s: %v", key, err)
			}
		}

		t.Setenv("SHIFTCAL_USERS", "jdoe:hunter2")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 3069 {
			t.Fatalf("expected default HTTP port 3069, got %d", cfg.HTTPPort)
		}
		if cfg.ManusBaseURL != "https://server.manus.plus/intergamma" {
			t.Fatalf("unexpected default base URL: %q", cfg.ManusBaseURL)
		}
		if cfg.RefreshInterval != 24*time.Hour {
			t.Fatalf("expected default refresh interval 24h, got %s", cfg.RefreshInterval)
		}
		if cfg.Timezone != "Europe/Amsterdam" {
			t.Fatalf("unexpected default timezone: %q", cfg.Timezone)
		}
	})

	t.Run("errors when required values are missing", func(t *testing.T) {
		if err := os.Unsetenv("SHIFTCAL_USERS"); err != nil {
			t.Fatalf("failed to unset SHIFTCAL_USERS: %v", err)
		}

		_, err := Load()
		if err == nil {
			t.Fatalf("expected error when required values are missing")
		}
		expected := "required environment variables are not set: SHIFTCAL_USERS"
		if err.Error() != expected {
			t.Fatalf("unexpected error message: %q", err.Error())
		}
	})

	t.Run("parses overrides and credential pairs", func(t *testing.T) {
		t.Setenv("SHIFTCAL_USERS", "jdoe:hunter2,asmith:s3cret")
		t.Setenv("SHIFTCAL_HTTP_PORT", "9090")
		t.Setenv("SHIFTCAL_MANUS_BASE_URL", "https://manus.test/acme")
		t.Setenv("SHIFTCAL_REFRESH_INTERVAL", "12h")
		t.Setenv("SHIFTCAL_TIMEZONE", "Europe/Brussels")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 9090 {
			t.Fatalf("expected port 9090, got %d", cfg.HTTPPort)
		}
		if cfg.RefreshInterval != 12*time.Hour {
			t.Fatalf("expected refresh interval 12h, got %s", cfg.RefreshInterval)
		}
		if cfg.Timezone != "Europe/Brussels" {
			t.Fatalf("unexpected timezone: %q", cfg.Timezone)
		}

		want := []account.Credential{
			{Username: "jdoe", Secret: "hunter2"},
			{Username: "asmith", Secret: "s3cret"},
		}
		if diff := cmp.Diff(want, cfg.Credentials); diff != "" {
			t.Fatalf("credentials mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("a secret containing separators stays intact", func(t *testing.T) {
		t.Setenv("SHIFTCAL_USERS", "jdoe:pa:ss")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if len(cfg.Credentials) != 1 || cfg.Credentials[0].Secret != "pa:ss" {
			t.Fatalf("unexpected credentials: %+v", cfg.Credentials)
		}
	})

	t.Run("a malformed credential pair fails the load", func(t *testing.T) {
		for _, raw := range []string{"jdoe", "jdoe:hunter2,nosecret", ":s3cret", "jdoe:"} {
			t.Setenv("SHIFTCAL_USERS", raw)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for SHIFTCAL_USERS=%q", raw)
			}
		}
	})

	t.Run("rejects invalid numeric and duration values", func(t *testing.T) {
		t.Setenv("SHIFTCAL_USERS", "jdoe:hunter2")
		t.Setenv("SHIFTCAL_HTTP_PORT", "not-a-port")

		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid port")
		}

		t.Setenv("SHIFTCAL_HTTP_PORT", "3069")
		t.Setenv("SHIFTCAL_REFRESH_INTERVAL", "-1h")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for negative refresh interval")
		}
	})
}
