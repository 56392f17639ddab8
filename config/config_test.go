package config_test

import (
	"strings"
	"testing"

	"github.com/rpupo63/student-showcase-backend/config"
)

func TestGetString(t *testing.T) {
	cfg := map[string]string{"PORT": "8080", "EMPTY": ""}

	if got := config.GetString(cfg, "PORT", "3000"); got != "8080" {
		t.Fatalf("GetString = %q, want 8080", got)
	}
	if got := config.GetString(cfg, "MISSING", "3000"); got != "3000" {
		t.Fatalf("GetString fallback = %q, want 3000", got)
	}
	if got := config.GetString(cfg, "EMPTY", "3000"); got != "" {
		t.Fatalf("present-but-empty must win over the default, got %q", got)
	}
	if got := config.GetString(nil, "PORT", "3000"); got != "3000" {
		t.Fatalf("nil config must fall back, got %q", got)
	}
}

func TestGetInt(t *testing.T) {
	cfg := map[string]string{"BCRYPT_COST": "4", "BAD": "ten"}

	if got := config.GetInt(cfg, "BCRYPT_COST", 10); got != 4 {
		t.Fatalf("GetInt = %d, want 4", got)
	}
	if got := config.GetInt(cfg, "MISSING", 10); got != 10 {
		t.Fatalf("GetInt fallback = %d, want 10", got)
	}
	if got := config.GetInt(cfg, "BAD", 10); got != 10 {
		t.Fatalf("unparsable value must fall back, got %d", got)
	}
}

func TestRequireString(t *testing.T) {
	cfg := map[string]string{"AIRTABLE_API_KEY": "key123", "EMPTY": ""}

	got, err := config.RequireString(cfg, "AIRTABLE_API_KEY")
	if err != nil || got != "key123" {
		t.Fatalf("RequireString = %q, %v", got, err)
	}

	if _, err := config.RequireString(cfg, "MISSING"); err == nil {
		t.Fatal("expected error for missing key")
	} else if !strings.Contains(err.Error(), "MISSING") {
		t.Fatalf("error should name the variable: %v", err)
	}

	if _, err := config.RequireString(cfg, "EMPTY"); err == nil {
		t.Fatal("expected error for empty value")
	}
}

func TestGetStoreCredentials(t *testing.T) {
	t.Run("both present", func(t *testing.T) {
		credentials, err := config.GetStoreCredentials(map[string]string{
			config.KeyAirtableAPIKey: "key123",
			config.KeyAirtableBase:   "appBase",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if credentials.APIKey != "key123" || credentials.BaseID != "appBase" {
			t.Fatalf("unexpected credentials: %+v", credentials)
		}
	})

	t.Run("missing base", func(t *testing.T) {
		_, err := config.GetStoreCredentials(map[string]string{
			config.KeyAirtableAPIKey: "key123",
		})
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), config.KeyAirtableBase) {
			t.Fatalf("error should name the missing variable: %v", err)
		}
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := config.GetStoreCredentials(map[string]string{
			config.KeyAirtableBase: "appBase",
		})
		if err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestNew_SnapshotsEnvironment(t *testing.T) {
	t.Setenv("SHOWCASE_TEST_VAR", "set-for-test")

	cfg := config.New()
	if cfg["SHOWCASE_TEST_VAR"] != "set-for-test" {
		t.Fatal("expected environment variable in snapshot")
	}
}
