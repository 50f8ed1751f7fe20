// International Standard Atmosphere property lookup.
package atmosphere

import "math"

// Physical constants (SI units).
const (
	SeaLevelTemperature = 288.15   // K
	SeaLevelPressure    = 101325.0 // Pa
	SeaLevelGravity     = 9.80665  // m/s^2
	TroposphereLapse    = -0.0065  // K/m
	TropopauseAltitude  = 11000.0  // m
	GasConstantAir      = 287.05   // J/(kg K)
	HeatCapacityRatio   = 1.4
	EarthRadius         = 6371000.0 // m
)

// Model holds the surface conditions the profile is anchored to.
// The zero value is not usable; start from Standard().
type Model struct {
	SurfaceTemperature float64 // K at sea level
	SurfacePressure    float64 // Pa at sea level
}

// Standard returns a model anchored to ISA sea-level conditions.
func Standard() Model {
	return Model{
		SurfaceTemperature: SeaLevelTemperature,
		SurfacePressure:    SeaLevelPressure,
	}
}

// Conditions bundles the atmospheric properties at one altitude.
type Conditions struct {
	Temperature  float64 // K
	Pressure     float64 // Pa
	Density      float64 // kg/m^3
	SpeedOfSound float64 // m/s
	Gravity      float64 // m/s^2
}

// TemperatureAt returns the air temperature in K at altitude (m above sea level).
// Linear lapse in the troposphere, isothermal above the tropopause.
func (m Model) TemperatureAt(altitude float64) float64 {
	if altitude <= TropopauseAltitude {
		return m.SurfaceTemperature + TroposphereLapse*altitude
	}
	return m.SurfaceTemperature + TroposphereLapse*TropopauseAltitude
}

// PressureAt returns the air pressure in Pa at altitude (m above sea level).
func (m Model) PressureAt(altitude float64) float64 {
	t0 := m.SurfaceTemperature
	if altitude <= TropopauseAltitude {
		t := m.TemperatureAt(altitude)
		return m.SurfacePressure * math.Pow(t/t0, -SeaLevelGravity/(TroposphereLapse*GasConstantAir))
	}
	// Barometric decay on top of the tropopause pressure.
	tTrop := m.TemperatureAt(TropopauseAltitude)
	pTrop := m.SurfacePressure * math.Pow(tTrop/t0, -SeaLevelGravity/(TroposphereLapse*GasConstantAir))
	return pTrop * math.Exp(-SeaLevelGravity*(altitude-TropopauseAltitude)/(GasConstantAir*tTrop))
}

// DensityAt returns the air density in kg/m^3, derived from the ideal-gas law
// so it stays consistent with TemperatureAt and PressureAt.
func (m Model) DensityAt(altitude float64) float64 {
	return m.PressureAt(altitude) / (GasConstantAir * m.TemperatureAt(altitude))
}

// SpeedOfSoundAt returns the local speed of sound in m/s.
func (m Model) SpeedOfSoundAt(altitude float64) float64 {
	return math.Sqrt(HeatCapacityRatio * GasConstantAir * m.TemperatureAt(altitude))
}

// GravityAt returns gravitational acceleration in m/s^2 with inverse-square falloff.
func GravityAt(altitude float64) float64 {
	r := EarthRadius / (EarthRadius + altitude)
	return SeaLevelGravity * r * r
}

// At returns all properties at one altitude.
func (m Model) At(altitude float64) Conditions {
	return Conditions{
		Temperature:  m.TemperatureAt(altitude),
		Pressure:     m.PressureAt(altitude),
		Density:      m.DensityAt(altitude),
		SpeedOfSound: m.SpeedOfSoundAt(altitude),
		Gravity:      GravityAt(altitude),
	}
}
