package sensor

// Limits holds the fixed classification thresholds.
type Limits struct {
	CriticalTemp      float64 // degrees Celsius
	CriticalVibration float64 // Hz
	WarningRatio      float64 // fraction of CriticalTemp where WARNING begins
}

// WarningTemp returns the temperature above which a reading is at
// least WARNING.
func (l Limits) WarningTemp() float64 {
	return l.CriticalTemp * l.WarningRatio
}

// Classify maps a temperature/vibration pair to a status tier.
// Comparisons are strictly greater-than: a value exactly at a limit
// stays in the lower tier.
func Classify(temp, vib float64, lim Limits) Status {
	switch {
	case temp > lim.CriticalTemp || vib > lim.CriticalVibration:
		return StatusCritical
	case temp > lim.WarningTemp():
		return StatusWarning
	default:
		return StatusOK
	}
}
