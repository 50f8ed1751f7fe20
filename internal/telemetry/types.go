// Telemetry structs with greptime tags
package telemetry

import (
	"os"
	"time"
)

// Mode selects how much of a sample is populated.
type Mode string

const (
	ModeGPS          Mode = "gps"
	ModeAltitudeOnly Mode = "altitude_only"
	ModeNone         Mode = "none"
)

// TelemetryRow represents one playback sample for GreptimeDB. Optional fields
// are nil when the mode does not provide them.
type TelemetryRow struct {
	FlightID     string    `json:"flight_id"` // TAG
	Mode         Mode      `json:"mode"`      // FIELD
	Phase        string    `json:"phase"`     // FIELD
	FlightTimeS  float64   `json:"flight_time_s"`
	Lat          *float64  `json:"lat,omitempty"`
	Lon          *float64  `json:"lon,omitempty"`
	AltitudeM    *float64  `json:"altitude_m,omitempty"`
	VelocityMPS  *float64  `json:"velocity_mps,omitempty"`
	TemperatureC *float64  `json:"temperature_c,omitempty"`
	PressureHPa  *float64  `json:"pressure_hpa,omitempty"`
	Timestamp    time.Time `json:"ts"` // TIME INDEX
}

// TelemetryTableName holds the table name used when writing to GreptimeDB.
// It defaults to "rocket_telemetry" but can be overridden via the
// GREPTIMEDB_TABLE environment variable.
var TelemetryTableName = func() string {
	if env := os.Getenv("GREPTIMEDB_TABLE"); env != "" {
		return env
	}
	return "rocket_telemetry"
}()

func (TelemetryRow) TableName() string {
	return TelemetryTableName
}

// Flight event types.
const (
	EventLiftoff = "liftoff"
	EventBurnout = "burnout"
	EventApogee  = "apogee"
	EventLanding = "landing"
)

// FlightEventRow marks a flight milestone alongside the telemetry stream.
type FlightEventRow struct {
	FlightID    string    `json:"flight_id"` // TAG
	Event       string    `json:"event"`     // FIELD
	FlightTimeS float64   `json:"flight_time_s"`
	AltitudeM   float64   `json:"altitude_m"`
	Timestamp   time.Time `json:"ts"` // TIME INDEX
}

// EventTableName holds the flight-event table, overridable via
// FLIGHT_EVENT_TABLE.
var EventTableName = func() string {
	if env := os.Getenv("FLIGHT_EVENT_TABLE"); env != "" {
		return env
	}
	return "flight_events"
}()

func (FlightEventRow) TableName() string {
	return EventTableName
}
