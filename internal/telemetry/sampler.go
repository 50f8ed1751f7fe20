package telemetry

import (
	"time"

	"rocketsim/internal/atmosphere"
	"rocketsim/internal/flight"
)

// Sampler turns interpolated trajectory points into telemetry rows. Display
// temperature and pressure come from the atmosphere model at the sample's
// altitude; GPS mode also resolves the geographic coordinate.
type Sampler struct {
	FlightID string
	Mode     Mode
	Site     flight.LaunchSite
	Atmos    atmosphere.Model
}

// Sample builds the row for one trajectory point stamped at now.
func (s *Sampler) Sample(pt flight.Point, now time.Time) TelemetryRow {
	row := TelemetryRow{
		FlightID:    s.FlightID,
		Mode:        s.Mode,
		Phase:       string(pt.Phase),
		FlightTimeS: pt.TimeS,
		Timestamp:   now,
	}
	if s.Mode == ModeNone {
		return row
	}

	alt := pt.Position.Up
	speed := pt.Velocity.Norm()
	tempC := s.Atmos.TemperatureAt(alt) - 273.15
	pressHPa := s.Atmos.PressureAt(alt) / 100

	row.AltitudeM = &alt
	row.VelocityMPS = &speed
	row.TemperatureC = &tempC
	row.PressureHPa = &pressHPa

	if s.Mode == ModeGPS {
		coord := flight.LocalToGeo(
			flight.Coordinate{Latitude: s.Site.Latitude, Longitude: s.Site.Longitude},
			pt.Position.East, pt.Position.North,
		)
		row.Lat = &coord.Latitude
		row.Lon = &coord.Longitude
	}
	return row
}

// EventsFromResult derives the milestone rows for a predicted flight. The
// wall-clock stamp is the same for all rows; flight time orders them.
func EventsFromResult(res *flight.Result, now time.Time) []FlightEventRow {
	s := res.Stats
	return []FlightEventRow{
		{FlightID: res.FlightID, Event: EventLiftoff, FlightTimeS: 0, AltitudeM: 0, Timestamp: now},
		{FlightID: res.FlightID, Event: EventBurnout, FlightTimeS: s.BurnoutTimeS, AltitudeM: s.BurnoutAltitudeM, Timestamp: now},
		{FlightID: res.FlightID, Event: EventApogee, FlightTimeS: s.ApogeeTimeS, AltitudeM: s.MaxAltitudeM, Timestamp: now},
		{FlightID: res.FlightID, Event: EventLanding, FlightTimeS: s.FlightTimeS, AltitudeM: 0, Timestamp: now},
	}
}
