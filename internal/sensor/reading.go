// Package sensor models the motor's simulated temperature and
// vibration sensors and the status classification of each reading.
package sensor

// Status is the severity tier of a reading.
type Status int

const (
	StatusOK Status = iota
	StatusWarning
	StatusCritical
)

// Code returns the numeric status code written to the machine log.
func (s Status) Code() int { return int(s) }

func (s Status) String() string {
	switch s {
	case StatusWarning:
		return "WARNING"
	case StatusCritical:
		return "CRITICAL"
	default:
		return "OK"
	}
}

// Reading is a single sample of the motor's sensors at one tick.
type Reading struct {
	Tick        int
	Temperature float64 // degrees Celsius
	Vibration   float64 // Hz
	Status      Status
}
