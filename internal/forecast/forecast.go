// Package forecast projects the motor's time-to-failure from two
// consecutive readings using a single-interval linear slope.
package forecast

import "github.com/arlo/motorwatch/internal/sensor"

// urgentSteps is the projection below which the forecast recommends
// an emergency shutdown.
const urgentSteps = 10

// Level is the severity of a projection.
type Level int

const (
	// Stable means the temperature is flat or falling.
	Stable Level = iota
	// Safe means failure is projected, but not soon.
	Safe
	// Urgent means failure is projected within urgentSteps ticks.
	Urgent
)

// Projection is the extrapolated temperature trend.
type Projection struct {
	Level Level
	Rate  float64 // degrees per tick; zero-valued when Stable
	Steps float64 // ticks until the critical limit; zero-valued when Stable
}

// Project extrapolates when cur's temperature reaches criticalTemp.
// The rate is the plain difference between the two readings, not a
// regression over history.
func Project(cur, prev sensor.Reading, criticalTemp float64) Projection {
	rate := cur.Temperature - prev.Temperature
	if rate <= 0 {
		return Projection{Level: Stable}
	}

	steps := (criticalTemp - cur.Temperature) / rate
	if steps < 0 {
		steps = 0
	}

	level := Safe
	if steps < urgentSteps {
		level = Urgent
	}
	return Projection{Level: level, Rate: rate, Steps: steps}
}
