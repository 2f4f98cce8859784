// Package store handles the append-only CSV machine log: one header
// line written at startup, then one row per executed tick.
package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/arlo/motorwatch/internal/sensor"
)

var header = []string{"Timestamp", "Temperature", "Vibration", "Status"}

// MachineLog appends readings to a CSV file. The file is not held
// open between ticks: each append opens it, writes one row, and
// closes it again.
type MachineLog struct {
	path string
}

// Row is one parsed line of a machine log.
type Row struct {
	Tick        int
	Temperature float64
	Vibration   float64
	Status      sensor.Status
}

// New truncates the file at path and writes the header line. Any
// previous session's content is discarded.
func New(path string) (*MachineLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create machine log: %w", err)
	}

	w := csv.NewWriter(f)
	w.Write(header)
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close machine log: %w", err)
	}

	return &MachineLog{path: path}, nil
}

// Path returns the log file location.
func (l *MachineLog) Path() string { return l.path }

// Append writes one reading as a CSV row.
func (l *MachineLog) Append(r sensor.Reading) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open machine log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Write([]string{
		strconv.Itoa(r.Tick),
		fmt.Sprintf("%.2f", r.Temperature),
		fmt.Sprintf("%.2f", r.Vibration),
		strconv.Itoa(r.Status.Code()),
	})
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("append reading: %w", err)
	}
	return nil
}

// LoadFile reads all rows from a recorded machine log.
func LoadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	var rows []Row
	for i, rec := range records {
		if i == 0 && len(rec) > 0 && rec[0] == header[0] {
			continue
		}
		if len(rec) < 4 {
			continue
		}

		tick, err := strconv.Atoi(rec[0])
		if err != nil {
			continue
		}
		temp, _ := strconv.ParseFloat(rec[1], 64)
		vib, _ := strconv.ParseFloat(rec[2], 64)
		code, _ := strconv.Atoi(rec[3])

		rows = append(rows, Row{
			Tick:        tick,
			Temperature: temp,
			Vibration:   vib,
			Status:      sensor.Status(code),
		})
	}

	return rows, nil
}
