package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arlo/motorwatch/internal/sensor"
)

func TestMachineLogRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "machine_logs.csv")

	ml, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	readings := []sensor.Reading{
		{Tick: 1, Temperature: 43.37, Vibration: 11.52, Status: sensor.StatusOK},
		{Tick: 2, Temperature: 46.81, Vibration: 13.09, Status: sensor.StatusOK},
		{Tick: 3, Temperature: 85.20, Vibration: 20.44, Status: sensor.StatusWarning},
		{Tick: 4, Temperature: 101.93, Vibration: 22.17, Status: sensor.StatusCritical},
	}
	for _, r := range readings {
		if err := ml.Append(r); err != nil {
			t.Fatalf("Append tick %d: %v", r.Tick, err)
		}
	}

	rows, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(rows) != len(readings) {
		t.Fatalf("expected %d rows, got %d", len(readings), len(rows))
	}

	for i, row := range rows {
		if row.Tick != readings[i].Tick {
			t.Errorf("row %d: tick %d, want %d", i, row.Tick, readings[i].Tick)
		}
		if row.Status != readings[i].Status {
			t.Errorf("row %d: status %v, want %v", i, row.Status, readings[i].Status)
		}
	}

	if rows[3].Temperature != 101.93 {
		t.Errorf("last temperature: got %f, want 101.93", rows[3].Temperature)
	}
}

func TestNewTruncatesPreviousSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "machine_logs.csv")

	if err := os.WriteFile(path, []byte("stale content\n1,2,3,4\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := New(path); err != nil {
		t.Fatalf("New: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected header only, got %d lines", len(lines))
	}
	if lines[0] != "Timestamp,Temperature,Vibration,Status" {
		t.Errorf("header: got %q", lines[0])
	}
}

func TestAppendReportsOpenFailure(t *testing.T) {
	ml := &MachineLog{path: filepath.Join(t.TempDir(), "missing", "machine_logs.csv")}

	err := ml.Append(sensor.Reading{Tick: 1, Temperature: 43.0, Vibration: 11.0})
	if err == nil {
		t.Fatal("expected error appending to unopenable path")
	}
}

func TestLoadFileSkipsMalformedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "machine_logs.csv")
	content := "Timestamp,Temperature,Vibration,Status\n" +
		"1,43.00,11.00,0\n" +
		"not-a-tick,43.00,11.00,0\n" +
		"2,46.00,12.50,0\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	rows, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1].Tick != 2 {
		t.Errorf("second row tick: got %d, want 2", rows[1].Tick)
	}
}
