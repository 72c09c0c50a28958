package config

import (
	"testing"
	"time"
)

func TestLoadDisplayZone(t *testing.T) {
	t.Setenv("DISPLAY_TZ", "")
	if cfg := Load(); cfg.DisplayZone != time.UTC {
		t.Fatalf("default zone = %v", cfg.DisplayZone)
	}

	t.Setenv("DISPLAY_TZ", "America/New_York")
	if cfg := Load(); cfg.DisplayZone.String() != "America/New_York" {
		t.Fatalf("zone = %v", cfg.DisplayZone)
	}

	t.Setenv("DISPLAY_TZ", "Mars/Olympus")
	if cfg := Load(); cfg.DisplayZone != time.UTC {
		t.Fatalf("invalid zone should fall back to UTC, got %v", cfg.DisplayZone)
	}
}
