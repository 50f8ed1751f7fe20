package weather

import (
	"context"
	"errors"
	"math"
	"testing"

	"rocketsim/internal/wind"
)

func TestAtmosphereFromSurfaceReading(t *testing.T) {
	d := Data{TemperatureC: 20, PressureHPa: 1000}
	m := d.Atmosphere()
	if math.Abs(m.SurfaceTemperature-293.15) > 1e-9 {
		t.Errorf("surface temperature = %v, want 293.15", m.SurfaceTemperature)
	}
	if math.Abs(m.SurfacePressure-100000) > 1e-9 {
		t.Errorf("surface pressure = %v, want 100000", m.SurfacePressure)
	}
}

func TestAtmosphereMissingPressureFallsBack(t *testing.T) {
	d := Data{TemperatureC: 15}
	m := d.Atmosphere()
	if math.Abs(m.SurfacePressure-101325) > 1e-9 {
		t.Errorf("surface pressure = %v, want standard 101325", m.SurfacePressure)
	}
}

func TestProfileSelection(t *testing.T) {
	surfaceOnly := Data{WindSpeedMPS: 4, WindDirectionDeg: 270}
	if _, ok := surfaceOnly.Profile(wind.TerrainGrass, 10).(wind.LogLawProfile); !ok {
		t.Errorf("expected log-law profile without layers, got %T", surfaceOnly.Profile(wind.TerrainGrass, 10))
	}

	layered := Data{
		WindSpeedMPS:     4,
		WindDirectionDeg: 270,
		Layers:           []WindLayer{{AltitudeM: 100, SpeedMPS: 6, DirectionDeg: 260}},
	}
	if _, ok := layered.Profile(wind.TerrainGrass, 10).(*wind.LayeredProfile); !ok {
		t.Errorf("expected layered profile with layers, got %T", layered.Profile(wind.TerrainGrass, 10))
	}
}

func TestManualSourceStampsOrigin(t *testing.T) {
	src := ManualSource{Data: Data{WindSpeedMPS: 3}}
	d, err := src.Fetch(context.Background(), 48.2, 16.4)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if d.Origin != OriginManual {
		t.Errorf("origin = %v, want manual", d.Origin)
	}
	if d.WindSpeedMPS != 3 {
		t.Errorf("wind speed = %v, want 3", d.WindSpeedMPS)
	}
}

func TestFetchErrorUnwrap(t *testing.T) {
	base := errors.New("connection refused")
	err := &FetchError{Status: "503 Service Unavailable", Err: base}
	if !errors.Is(err, base) {
		t.Error("expected FetchError to unwrap to its cause")
	}
	var fe *FetchError
	if !errors.As(error(err), &fe) {
		t.Error("expected errors.As to match *FetchError")
	}
}
