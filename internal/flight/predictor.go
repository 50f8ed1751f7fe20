package flight

import (
	"rocketsim/internal/weather"
	"rocketsim/internal/wind"

	"github.com/google/uuid"
)

// windReferenceHeight is the height the surface reading is assumed to be
// taken at, matching the usual 10 m anemometer convention.
const windReferenceHeight = 10.0

// Options tunes a prediction run. The zero value selects all defaults.
type Options struct {
	Ascent      AscentConfig
	Descent     DescentConfig
	Terrain     wind.Terrain
	Uncertainty *wind.Uncertainty // nil selects wind.DefaultUncertainty
}

// Predict computes a complete trajectory: powered ascent and coast to apogee,
// recovery descent to the ground, landing coordinate, flight statistics and
// the wind-uncertainty footprint. It is a pure function of its inputs and
// safe to call concurrently.
func Predict(rocket RocketParams, rec Recovery, site LaunchSite, wx weather.Data, opts Options) (*Result, error) {
	if err := validate(rocket, rec); err != nil {
		return nil, err
	}

	atm := wx.Atmosphere()
	terrain := opts.Terrain
	if terrain == "" {
		terrain = wind.TerrainGrass
	}
	profile := wx.Profile(terrain, windReferenceHeight)

	ascent := IntegrateAscent(rocket, site, profile, atm, opts.Ascent)
	descent := IntegrateDescent(rocket, rec, ascent.ApogeeTimeS, ascent.ApogeePosition, ascent.ApogeeVelocity,
		profile, atm, site.ElevationM, opts.Descent)

	points := make([]Point, 0, len(ascent.Points)+len(descent.Points))
	points = append(points, ascent.Points...)
	points = append(points, descent.Points...)

	siteCoord := Coordinate{Latitude: site.Latitude, Longitude: site.Longitude}
	landingPos := descent.LandingPosition
	landing := LocalToGeo(siteCoord, landingPos.East, landingPos.North)
	distance, bearing := DistanceBearing(landingPos.East, landingPos.North)

	unc := wind.DefaultUncertainty()
	if opts.Uncertainty != nil {
		unc = *opts.Uncertainty
	}
	footprint := FootprintAt(landing, distance, wx.WindDirectionDeg, unc)

	return &Result{
		FlightID:  uuid.New().String(),
		Points:    points,
		Landing:   landing,
		Footprint: footprint,
		Stats: Stats{
			MaxAltitudeM:       ascent.ApogeePosition.Up - site.ElevationM,
			ApogeeTimeS:        ascent.ApogeeTimeS,
			FlightTimeS:        descent.LandingTimeS,
			MaxVelocityMPS:     ascent.MaxVelocityMPS,
			BurnoutTimeS:       ascent.BurnoutTimeS,
			BurnoutAltitudeM:   ascent.BurnoutAltitudeM,
			LandingVelocityMPS: descent.LandingSpeedMPS,
			LandingDistanceM:   distance,
			LandingBearingDeg:  bearing,
		},
		Site: siteCoord,
	}, nil
}

// FootprintAt derives the landing uncertainty ellipse centered on the
// predicted landing coordinate.
func FootprintAt(center Coordinate, drift, windDirection float64, unc wind.Uncertainty) Footprint {
	return Footprint{
		Center:  center,
		Ellipse: wind.FootprintEllipse(drift, windDirection, unc),
	}
}

func validate(rocket RocketParams, rec Recovery) error {
	switch {
	case rocket.DryMassKg <= 0:
		return &ConfigurationError{Field: "dry mass", Reason: "must be positive"}
	case rocket.PropellantMassKg < 0:
		return &ConfigurationError{Field: "propellant mass", Reason: "must not be negative"}
	case rocket.DiameterM <= 0:
		return &ConfigurationError{Field: "diameter", Reason: "must be positive"}
	case rocket.DragCoefficient <= 0:
		return &ConfigurationError{Field: "drag coefficient", Reason: "must be positive"}
	case rocket.BurnTimeS <= 0:
		return &ConfigurationError{Field: "burn time", Reason: "must be positive"}
	case rocket.TotalImpulseNs <= 0:
		return &ConfigurationError{Field: "total impulse", Reason: "must be positive"}
	}
	switch rec.Kind {
	case RecoveryParachute:
		if rec.DiameterM <= 0 {
			return &ConfigurationError{Field: "parachute diameter", Reason: "must be positive"}
		}
	case RecoveryStreamer:
		if rec.AreaM2 <= 0 {
			return &ConfigurationError{Field: "streamer area", Reason: "must be positive"}
		}
	}
	return nil
}
