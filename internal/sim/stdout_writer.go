// Writer implementation printing telemetry to STDOUT
package sim

import (
	"encoding/json"
	"fmt"

	"rocketsim/internal/telemetry"
)

// StdoutWriter prints telemetry rows to STDOUT as JSON lines.
type StdoutWriter struct{}

// Write outputs a single telemetry row.
func (w *StdoutWriter) Write(row telemetry.TelemetryRow) error {
	data, _ := json.Marshal(row)
	fmt.Println(string(data))
	return nil
}

// WriteBatch outputs multiple telemetry rows.
func (w *StdoutWriter) WriteBatch(rows []telemetry.TelemetryRow) error {
	for _, r := range rows {
		_ = w.Write(r)
	}
	return nil
}

// WriteEvent prints a flight event to STDOUT.
func (w *StdoutWriter) WriteEvent(e telemetry.FlightEventRow) error {
	data, _ := json.Marshal(e)
	fmt.Println(string(data))
	return nil
}

// WriteEvents prints multiple flight events.
func (w *StdoutWriter) WriteEvents(rows []telemetry.FlightEventRow) error {
	for _, e := range rows {
		_ = w.WriteEvent(e)
	}
	return nil
}
