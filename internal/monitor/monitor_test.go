package monitor

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arlo/motorwatch/internal/config"
	"github.com/arlo/motorwatch/internal/forecast"
	"github.com/arlo/motorwatch/internal/logging"
	"github.com/arlo/motorwatch/internal/store"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	cfg.Log.DataFile = filepath.Join(dir, "machine_logs.csv")
	cfg.Log.OpsFile = filepath.Join(dir, "motorwatch.log")
	return cfg
}

func step(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	nm, cmd := m.Update(tickMsg(time.Now()))
	return nm.(Model), cmd
}

func TestHaltsOnFirstCriticalTick(t *testing.T) {
	cfg := testConfig(t)
	// Any reading exceeds these limits, so tick 1 is CRITICAL.
	cfg.Limits.CriticalTemp = 10.0
	cfg.Limits.CriticalVibration = 1.0

	m := NewSeeded(cfg, logging.Nop(), 1)

	m, cmd := step(t, m)

	if !m.Halted() {
		t.Fatal("expected halt on first critical tick")
	}
	if m.Ticks() != 1 {
		t.Errorf("ticks: got %d, want 1", m.Ticks())
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg, got %T", cmd())
	}

	// The halting tick is still logged.
	rows, err := store.LoadFile(cfg.Log.DataFile)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("logged rows: got %d, want 1", len(rows))
	}
}

func TestLoggedRowsMatchExecutedTicks(t *testing.T) {
	cfg := testConfig(t)
	// Limits far above the trend, so no tick halts the loop.
	cfg.Limits.CriticalTemp = 10000.0
	cfg.Limits.CriticalVibration = 10000.0

	m := NewSeeded(cfg, logging.Nop(), 1)

	const ticks = 8
	for i := 0; i < ticks; i++ {
		var cmd tea.Cmd
		m, cmd = step(t, m)
		if m.Halted() {
			t.Fatalf("unexpected halt at tick %d", m.Ticks())
		}
		if cmd == nil {
			t.Fatalf("tick %d: expected a rescheduled tick", m.Ticks())
		}
	}

	rows, err := store.LoadFile(cfg.Log.DataFile)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(rows) != ticks {
		t.Fatalf("logged rows: got %d, want %d", len(rows), ticks)
	}
	for i, row := range rows {
		if row.Tick != i+1 {
			t.Errorf("row %d: tick %d, want %d", i, row.Tick, i+1)
		}
	}
}

func TestForecastNeedsTwoReadings(t *testing.T) {
	cfg := testConfig(t)
	cfg.Limits.CriticalTemp = 10000.0
	cfg.Limits.CriticalVibration = 10000.0

	m := NewSeeded(cfg, logging.Nop(), 1)

	m, _ = step(t, m)
	if m.hasProj {
		t.Error("no forecast expected after a single reading")
	}

	m, _ = step(t, m)
	if !m.hasProj {
		t.Fatal("forecast expected after two readings")
	}
	// The default trend rises every tick, so the projection cannot be
	// stable.
	if m.proj.Level == forecast.Stable {
		t.Errorf("projection: got Stable with a rising trend: %+v", m.proj)
	}
	if m.proj.Rate <= 0 {
		t.Errorf("rate: got %f, want > 0", m.proj.Rate)
	}
}

func TestPauseSuspendsTheLoop(t *testing.T) {
	cfg := testConfig(t)
	m := NewSeeded(cfg, logging.Nop(), 1)

	m, _ = step(t, m)
	before := m.Ticks()

	nm, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	m = nm.(Model)

	m, cmd := step(t, m)
	if m.Ticks() != before {
		t.Errorf("paused tick advanced the loop: %d -> %d", before, m.Ticks())
	}
	if cmd == nil {
		t.Error("paused loop should keep rescheduling")
	}

	rows, err := store.LoadFile(cfg.Log.DataFile)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(rows) != before {
		t.Errorf("paused tick was logged: %d rows, want %d", len(rows), before)
	}
}

func TestLogFailureIsNonFatal(t *testing.T) {
	cfg := testConfig(t)
	cfg.Log.DataFile = filepath.Join(t.TempDir(), "missing", "machine_logs.csv")
	cfg.Limits.CriticalTemp = 10000.0
	cfg.Limits.CriticalVibration = 10000.0

	m := NewSeeded(cfg, logging.Nop(), 1)
	if m.err == nil {
		t.Fatal("expected a reported machine log error")
	}

	m, cmd := step(t, m)
	if m.Halted() {
		t.Error("log failure must not halt the loop")
	}
	if m.Ticks() != 1 {
		t.Errorf("ticks: got %d, want 1", m.Ticks())
	}
	if cmd == nil {
		t.Error("loop should keep running without the machine log")
	}
}
