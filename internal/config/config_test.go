package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.StorageDriver != DriverSQLite {
		t.Errorf("StorageDriver = %q, want %q", cfg.StorageDriver, DriverSQLite)
	}
	if cfg.SaveSlot != "mazecrawl-save" {
		t.Errorf("SaveSlot = %q, want mazecrawl-save", cfg.SaveSlot)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("log settings = %q/%q, want info/text", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.OTelEnabled {
		t.Error("telemetry should be off by default")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("MAZECRAWL_STORAGE_DRIVER", "file")
	t.Setenv("MAZECRAWL_STORAGE_PATH", "/tmp/saves")
	t.Setenv("MAZECRAWL_SAVE_SLOT", "slot-2")
	t.Setenv("MAZECRAWL_OTEL_ENABLED", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StorageDriver != DriverFile || cfg.StoragePath != "/tmp/saves" || cfg.SaveSlot != "slot-2" {
		t.Errorf("unexpected storage settings: %+v", cfg)
	}
	if !cfg.OTelEnabled {
		t.Error("OTelEnabled = false, want true")
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "MAZECRAWL_LOG_LEVEL=debug\nMAZECRAWL_SAVE_SLOT=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	// The environment wins over the file.
	t.Setenv("MAZECRAWL_SAVE_SLOT", "from-env")
	// Registered so the variable the file sets is restored afterwards.
	t.Setenv("MAZECRAWL_LOG_LEVEL", "")
	os.Unsetenv("MAZECRAWL_LOG_LEVEL")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.SaveSlot != "from-env" {
		t.Errorf("SaveSlot = %q, want from-env", cfg.SaveSlot)
	}
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name, key, value, want string
	}{
		{"driver", "MAZECRAWL_STORAGE_DRIVER", "postgres", "invalid storage driver"},
		{"format", "MAZECRAWL_LOG_FORMAT", "xml", "invalid log format"},
		{"bool", "MAZECRAWL_OTEL_ENABLED", "maybe", "parse env:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	base := Config{StorageDriver: DriverMemory, SaveSlot: "s", LogFormat: "json"}
	if err := base.Validate(); err != nil {
		t.Fatalf("memory driver needs no path: %v", err)
	}

	noPath := base
	noPath.StorageDriver = DriverSQLite
	if err := noPath.Validate(); err == nil {
		t.Error("sqlite without a path should be invalid")
	}

	noSlot := base
	noSlot.SaveSlot = ""
	if err := noSlot.Validate(); err == nil {
		t.Error("an empty save slot should be invalid")
	}
}

func TestTelemetryHeaders(t *testing.T) {
	cfg := Config{OTelEnabled: true, OTelEndpoint: "https://example.test"}
	if got := cfg.Telemetry(); got.Headers != nil {
		t.Errorf("headers without an API key = %v, want nil", got.Headers)
	}

	cfg.HoneycombAPIKey = "key"
	cfg.HoneycombDataset = "ds"
	got := cfg.Telemetry()
	if !got.Enabled || got.Endpoint != "https://example.test" {
		t.Errorf("unexpected telemetry config: %+v", got)
	}
	if got.Headers["x-honeycomb-team"] != "key" || got.Headers["x-honeycomb-dataset"] != "ds" {
		t.Errorf("headers = %v", got.Headers)
	}
}
