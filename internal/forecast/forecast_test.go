package forecast

import (
	"testing"

	"github.com/arlo/motorwatch/internal/sensor"
)

func TestProjectUrgent(t *testing.T) {
	prev := sensor.Reading{Tick: 1, Temperature: 70.0}
	cur := sensor.Reading{Tick: 2, Temperature: 75.0}

	p := Project(cur, prev, 100.0)

	if p.Level != Urgent {
		t.Errorf("level: got %v, want Urgent", p.Level)
	}
	if p.Rate != 5.0 {
		t.Errorf("rate: got %f, want 5.0", p.Rate)
	}
	if p.Steps != 5.0 {
		t.Errorf("steps: got %f, want 5.0", p.Steps)
	}
}

func TestProjectSafe(t *testing.T) {
	prev := sensor.Reading{Tick: 1, Temperature: 40.0}
	cur := sensor.Reading{Tick: 2, Temperature: 42.0}

	p := Project(cur, prev, 100.0)

	if p.Level != Safe {
		t.Errorf("level: got %v, want Safe", p.Level)
	}
	if p.Steps != 29.0 {
		t.Errorf("steps: got %f, want 29.0", p.Steps)
	}
}

func TestProjectStable(t *testing.T) {
	prev := sensor.Reading{Tick: 1, Temperature: 75.0}

	for _, curTemp := range []float64{75.0, 74.0} {
		cur := sensor.Reading{Tick: 2, Temperature: curTemp}
		p := Project(cur, prev, 100.0)
		if p.Level != Stable {
			t.Errorf("cur=%.1f: got %v, want Stable", curTemp, p.Level)
		}
		if p.Rate != 0 || p.Steps != 0 {
			t.Errorf("cur=%.1f: stable projection carries numbers: %+v", curTemp, p)
		}
	}
}

func TestProjectClampsPastLimit(t *testing.T) {
	prev := sensor.Reading{Tick: 1, Temperature: 99.0}
	cur := sensor.Reading{Tick: 2, Temperature: 103.0}

	p := Project(cur, prev, 100.0)

	if p.Steps != 0 {
		t.Errorf("steps: got %f, want 0 (clamped)", p.Steps)
	}
	if p.Level != Urgent {
		t.Errorf("level: got %v, want Urgent", p.Level)
	}
}
