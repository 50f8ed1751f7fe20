// Weather data contract for the simulation.
package weather

import (
	"context"
	"fmt"
	"time"

	"rocketsim/internal/atmosphere"
	"rocketsim/internal/wind"
)

// Origin marks where a weather reading came from.
type Origin string

const (
	OriginManual Origin = "manual"
	OriginAPI    Origin = "api"
)

// WindLayer is an upper-air wind sample supplied by a weather source.
type WindLayer struct {
	AltitudeM    float64 // m above ground
	SpeedMPS     float64
	DirectionDeg float64 // meteorological "from"
}

// Data holds the surface conditions and optional wind layers for one site.
type Data struct {
	WindSpeedMPS     float64
	WindDirectionDeg float64 // meteorological "from"
	TemperatureC     float64
	PressureHPa      float64
	Layers           []WindLayer
	Origin           Origin
	CapturedAt       time.Time
}

// SurfaceWind returns the surface reading as a wind vector.
func (d Data) SurfaceWind() wind.Vector {
	return wind.Vector{Speed: d.WindSpeedMPS, Direction: d.WindDirectionDeg}
}

// Atmosphere anchors an atmosphere model to the reported surface conditions.
// Missing pressure falls back to the standard atmosphere.
func (d Data) Atmosphere() atmosphere.Model {
	m := atmosphere.Standard()
	m.SurfaceTemperature = d.TemperatureC + 273.15
	if d.PressureHPa > 0 {
		m.SurfacePressure = d.PressureHPa * 100
	}
	return m
}

// Profile builds the wind profile the integrators query: a layered profile
// when upper-air data is present, otherwise a log-law profile scaled from the
// surface reading at the given reference height.
func (d Data) Profile(terrain wind.Terrain, referenceHeight float64) wind.Profile {
	if len(d.Layers) > 0 {
		layers := make([]wind.Layer, len(d.Layers))
		for i, l := range d.Layers {
			layers[i] = wind.Layer{Height: l.AltitudeM, Speed: l.SpeedMPS, Direction: l.DirectionDeg}
		}
		return wind.NewLayeredProfile(d.SurfaceWind(), layers)
	}
	return wind.LogLawProfile{
		Reference: d.SurfaceWind(),
		Height:    referenceHeight,
		Roughness: wind.RoughnessLength(terrain),
	}
}

// Source supplies weather for a location. Implementations backed by a remote
// API must set Origin to OriginAPI and stamp CapturedAt.
type Source interface {
	Fetch(ctx context.Context, lat, lon float64) (Data, error)
}

// FetchError reports a failed weather fetch with a human-readable status.
type FetchError struct {
	Status string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("weather fetch failed (%s): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("weather fetch failed (%s)", e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ManualSource serves a fixed reading, typically loaded from configuration.
type ManualSource struct {
	Data Data
}

// Fetch returns the configured reading regardless of location.
func (s ManualSource) Fetch(ctx context.Context, lat, lon float64) (Data, error) {
	d := s.Data
	d.Origin = OriginManual
	return d, nil
}
