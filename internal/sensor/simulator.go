package sensor

import "math/rand"

// Degradation describes the simulated wear trend of the motor: each
// channel climbs linearly per tick with a small bounded perturbation
// on top.
type Degradation struct {
	BaseTemp  float64 // starting temperature
	TempRate  float64 // degrees gained per tick
	TempNoise float64 // upper bound of the temperature perturbation
	BaseVib   float64 // starting vibration
	VibRate   float64 // Hz gained per tick
	VibNoise  float64 // upper bound of the vibration perturbation
}

// Simulator produces one Reading per tick.
type Simulator struct {
	deg Degradation
	lim Limits
	rng *rand.Rand
}

// NewSimulator creates a simulator with its own random source so test
// runs can be reproduced from a seed.
func NewSimulator(deg Degradation, lim Limits, seed int64) *Simulator {
	return &Simulator{
		deg: deg,
		lim: lim,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Read samples the sensors at the given tick. The deterministic trend
// never decreases with the tick; only the noise varies between runs.
func (s *Simulator) Read(tick int) Reading {
	temp := s.deg.BaseTemp + float64(tick)*s.deg.TempRate + s.rng.Float64()*s.deg.TempNoise
	vib := s.deg.BaseVib + float64(tick)*s.deg.VibRate + s.rng.Float64()*s.deg.VibNoise

	return Reading{
		Tick:        tick,
		Temperature: temp,
		Vibration:   vib,
		Status:      Classify(temp, vib, s.lim),
	}
}
