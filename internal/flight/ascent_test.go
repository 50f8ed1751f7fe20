package flight

import (
	"testing"

	"rocketsim/internal/atmosphere"
	"rocketsim/internal/wind"
)

// testRocket is a small A-impulse-class vehicle used across the tests.
func testRocket() RocketParams {
	return RocketParams{
		DryMassKg:        0.08,
		PropellantMassKg: 0.01,
		DiameterM:        0.025,
		LengthM:          0.4,
		DragCoefficient:  0.5,
		TotalImpulseNs:   5,
		BurnTimeS:        0.5,
		DeployDelayS:     3,
	}
}

func verticalSite() LaunchSite {
	return LaunchSite{Latitude: 48.2, Longitude: 16.4, ElevationM: 0, AngleDeg: 90, AzimuthDeg: 0}
}

func calm() wind.Profile {
	return wind.LogLawProfile{Reference: wind.Vector{}, Height: 10, Roughness: 0.03}
}

func TestAscentVerticalNoWind(t *testing.T) {
	res := IntegrateAscent(testRocket(), verticalSite(), calm(), atmosphere.Standard(), AscentConfig{})

	apogee := res.ApogeePosition.Up
	if apogee < 30 || apogee > 200 {
		t.Errorf("apogee altitude = %v m, want between 30 and 200", apogee)
	}
	if res.BurnoutAltitudeM >= apogee {
		t.Errorf("burnout altitude %v should be below apogee %v", res.BurnoutAltitudeM, apogee)
	}
	if res.MaxVelocityMPS < res.BurnoutVelocityMPS {
		t.Errorf("max velocity %v should be >= burnout velocity %v", res.MaxVelocityMPS, res.BurnoutVelocityMPS)
	}
	if res.Truncated {
		t.Errorf("ascent should reach apogee well inside the iteration cap")
	}

	var sawThrust, sawCoast bool
	for _, p := range res.Points {
		switch p.Phase {
		case PhaseThrust:
			sawThrust = true
		case PhaseCoast:
			sawCoast = true
		}
	}
	if !sawThrust || !sawCoast {
		t.Errorf("want both thrust and coast phases, got thrust=%v coast=%v", sawThrust, sawCoast)
	}

	// Essentially no horizontal drift without wind on a vertical launch.
	if d := res.ApogeePosition; d.East*d.East+d.North*d.North > 1 {
		t.Errorf("unexpected horizontal drift without wind: %+v", d)
	}
}

func TestAscentPointsTimeOrdered(t *testing.T) {
	res := IntegrateAscent(testRocket(), verticalSite(), calm(), atmosphere.Standard(), AscentConfig{})
	if len(res.Points) < 3 {
		t.Fatalf("expected several sampled points, got %d", len(res.Points))
	}
	for i := 1; i < len(res.Points); i++ {
		if res.Points[i].TimeS < res.Points[i-1].TimeS {
			t.Fatalf("points out of order at %d", i)
		}
	}
	if res.Points[0].TimeS != 0 {
		t.Errorf("first point time = %v, want 0", res.Points[0].TimeS)
	}
	last := res.Points[len(res.Points)-1]
	if last.TimeS != res.ApogeeTimeS {
		t.Errorf("last point time = %v, want apogee time %v", last.TimeS, res.ApogeeTimeS)
	}
}

func TestAscentWindCausesDrift(t *testing.T) {
	windy := wind.LogLawProfile{
		Reference: wind.Vector{Speed: 8, Direction: 270},
		Height:    10,
		Roughness: 0.03,
	}
	res := IntegrateAscent(testRocket(), verticalSite(), windy, atmosphere.Standard(), AscentConfig{})
	if res.ApogeePosition.East == 0 && res.ApogeePosition.North == 0 {
		t.Errorf("wind should cause horizontal drift during ascent")
	}
}

func TestAscentCustomTimeStep(t *testing.T) {
	fine := IntegrateAscent(testRocket(), verticalSite(), calm(), atmosphere.Standard(), AscentConfig{TimeStep: 0.005})
	coarse := IntegrateAscent(testRocket(), verticalSite(), calm(), atmosphere.Standard(), AscentConfig{})
	diff := fine.ApogeePosition.Up - coarse.ApogeePosition.Up
	if diff < 0 {
		diff = -diff
	}
	// Different step sizes must agree on the apogee within a few meters.
	if diff > 5 {
		t.Errorf("apogee differs too much across step sizes: %v vs %v", fine.ApogeePosition.Up, coarse.ApogeePosition.Up)
	}
}

func TestAscentIterationCap(t *testing.T) {
	// An absurdly small step cannot reach apogee within the cap.
	res := IntegrateAscent(testRocket(), verticalSite(), calm(), atmosphere.Standard(), AscentConfig{TimeStep: 1e-6, MaxSteps: 100})
	if !res.Truncated {
		t.Errorf("expected truncation flag when the cap is exhausted")
	}
	if len(res.Points) == 0 {
		t.Errorf("truncated run should still return the accumulated trajectory")
	}
}
