package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Sensor.BaseTemp != 40.0 || cfg.Sensor.TempRate != 3.0 {
		t.Errorf("sensor defaults: got %+v", cfg.Sensor)
	}
	if cfg.Limits.CriticalTemp != 100.0 || cfg.Limits.CriticalVibration != 50.0 {
		t.Errorf("limit defaults: got %+v", cfg.Limits)
	}
	if cfg.Monitor.Interval != time.Second {
		t.Errorf("interval default: got %v, want 1s", cfg.Monitor.Interval)
	}
	if cfg.Log.DataFile != "machine_logs.csv" {
		t.Errorf("data file default: got %q", cfg.Log.DataFile)
	}

	lim := cfg.SensorLimits()
	if lim.WarningTemp() != 80.0 {
		t.Errorf("warning temp: got %f, want 80.0", lim.WarningTemp())
	}
}

func TestLoadFileOverrides(t *testing.T) {
	dir := t.TempDir()
	yaml := `
sensor:
  temp_rate: 5.0
limits:
  critical_temp: 120.0
monitor:
  interval: 250ms
`
	if err := os.WriteFile(filepath.Join(dir, "motorwatch.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Sensor.TempRate != 5.0 {
		t.Errorf("temp_rate: got %f, want 5.0", cfg.Sensor.TempRate)
	}
	if cfg.Limits.CriticalTemp != 120.0 {
		t.Errorf("critical_temp: got %f, want 120.0", cfg.Limits.CriticalTemp)
	}
	if cfg.Monitor.Interval != 250*time.Millisecond {
		t.Errorf("interval: got %v, want 250ms", cfg.Monitor.Interval)
	}

	// untouched keys keep their defaults
	if cfg.Sensor.BaseTemp != 40.0 {
		t.Errorf("base_temp: got %f, want default 40.0", cfg.Sensor.BaseTemp)
	}
}
