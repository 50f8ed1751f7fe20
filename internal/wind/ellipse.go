package wind

import "math"

// Footprint floors keep the ellipse visible even in near-calm conditions.
const (
	minSemiMajor = 10.0 // m
	minSemiMinor = 5.0  // m
)

// Uncertainty describes how well the wind estimate is trusted.
type Uncertainty struct {
	SpeedFraction float64 // fractional, e.g. 0.3 = +/-30%
	DirectionDeg  float64 // degrees
}

// DefaultUncertainty is a reasonable envelope for a manual surface reading.
func DefaultUncertainty() Uncertainty {
	return Uncertainty{SpeedFraction: 0.3, DirectionDeg: 15}
}

// Ellipse is a landing-footprint confidence region. Rotation is degrees from
// north; the major axis points downwind.
type Ellipse struct {
	SemiMajor  float64 `json:"semi_major_m"`
	SemiMinor  float64 `json:"semi_minor_m"`
	Rotation   float64 `json:"rotation_deg"`
	Confidence float64 `json:"confidence"`
}

// FootprintEllipse converts a nominal downwind drift distance and the surface
// wind direction into an error ellipse. Speed uncertainty stretches the
// ellipse along the drift axis; direction uncertainty widens it across.
func FootprintEllipse(drift, windDirection float64, u Uncertainty) Ellipse {
	semiMajor := math.Max(drift*u.SpeedFraction, minSemiMajor)
	semiMinor := math.Max(drift*math.Sin(u.DirectionDeg*math.Pi/180), minSemiMinor)
	rotation := math.Mod(windDirection+180, 360)
	if rotation < 0 {
		rotation += 360
	}
	return Ellipse{
		SemiMajor:  semiMajor,
		SemiMinor:  semiMinor,
		Rotation:   rotation,
		Confidence: 0.95,
	}
}
