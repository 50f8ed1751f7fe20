package sim

import "rocketsim/internal/telemetry"

// TelemetryWriter is an interface to support different output writers.
type TelemetryWriter interface {
	Write(telemetry.TelemetryRow) error
}

// EventWriter handles flight milestone events.
type EventWriter interface {
	WriteEvent(telemetry.FlightEventRow) error
}

// Optional: writers can also support batch mode.
type batchWriter interface {
	WriteBatch([]telemetry.TelemetryRow) error
}

// Optional: event writers may support batch mode.
type batchEventWriter interface {
	WriteEvents([]telemetry.FlightEventRow) error
}
