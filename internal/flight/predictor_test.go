package flight

import (
	"errors"
	"math"
	"testing"

	"rocketsim/internal/weather"
	"rocketsim/internal/wind"
)

func calmWeather() weather.Data {
	return weather.Data{TemperatureC: 15, PressureHPa: 1013.25, Origin: weather.OriginManual}
}

func TestPredictFullFlight(t *testing.T) {
	res, err := Predict(testRocket(), Parachute(0.3, 0), verticalSite(), calmWeather(), Options{})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if res.FlightID == "" {
		t.Errorf("flight ID should be set")
	}
	if res.Stats.MaxAltitudeM < 30 || res.Stats.MaxAltitudeM > 200 {
		t.Errorf("max altitude = %v, want between 30 and 200", res.Stats.MaxAltitudeM)
	}
	if res.Stats.FlightTimeS <= res.Stats.ApogeeTimeS {
		t.Errorf("flight time %v should exceed apogee time %v", res.Stats.FlightTimeS, res.Stats.ApogeeTimeS)
	}
	last := res.Points[len(res.Points)-1]
	if last.Position.Up != verticalSite().ElevationM {
		t.Errorf("final altitude = %v, want ground level", last.Position.Up)
	}
}

func TestPredictPhaseMonotonic(t *testing.T) {
	res, err := Predict(testRocket(), Parachute(0.3, 0), verticalSite(), calmWeather(), Options{})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	order := map[Phase]int{PhaseThrust: 0, PhaseCoast: 1, PhaseDescent: 2}
	prev := 0
	for i, p := range res.Points {
		o, ok := order[p.Phase]
		if !ok {
			t.Fatalf("unknown phase %q at point %d", p.Phase, i)
		}
		if o < prev {
			t.Fatalf("phase went backwards at point %d: %v", i, p.Phase)
		}
		prev = o
		if i > 0 && p.TimeS < res.Points[i-1].TimeS {
			t.Fatalf("time went backwards at point %d", i)
		}
	}
}

func TestPredictDescentStartsAtApogee(t *testing.T) {
	res, err := Predict(testRocket(), Parachute(0.3, 0), verticalSite(), calmWeather(), Options{})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	for _, p := range res.Points {
		if p.Phase == PhaseDescent {
			if math.Abs(p.TimeS-res.Stats.ApogeeTimeS) > 1e-9 {
				t.Errorf("first descent point time = %v, want apogee time %v", p.TimeS, res.Stats.ApogeeTimeS)
			}
			break
		}
	}
}

func TestPredictWindShiftsLanding(t *testing.T) {
	windy := calmWeather()
	windy.WindSpeedMPS = 7
	windy.WindDirectionDeg = 270

	calmRes, err := Predict(testRocket(), Parachute(0.3, 0), verticalSite(), calmWeather(), Options{})
	if err != nil {
		t.Fatalf("Predict calm: %v", err)
	}
	windyRes, err := Predict(testRocket(), Parachute(0.3, 0), verticalSite(), windy, Options{})
	if err != nil {
		t.Fatalf("Predict windy: %v", err)
	}
	if windyRes.Stats.LandingDistanceM <= calmRes.Stats.LandingDistanceM {
		t.Errorf("wind should increase landing distance: calm %v, windy %v",
			calmRes.Stats.LandingDistanceM, windyRes.Stats.LandingDistanceM)
	}
	// West wind drifts the rocket east of the pad.
	if windyRes.Landing.Longitude <= windyRes.Site.Longitude {
		t.Errorf("west wind should land east of the site: %v vs %v",
			windyRes.Landing.Longitude, windyRes.Site.Longitude)
	}
}

func TestPredictFootprint(t *testing.T) {
	windy := calmWeather()
	windy.WindSpeedMPS = 7
	windy.WindDirectionDeg = 90
	unc := wind.Uncertainty{SpeedFraction: 0.25, DirectionDeg: 20}

	res, err := Predict(testRocket(), Parachute(0.3, 0), verticalSite(), windy, Options{Uncertainty: &unc})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	drift := res.Stats.LandingDistanceM
	wantMajor := math.Max(drift*0.25, 10)
	wantMinor := math.Max(drift*math.Sin(20*math.Pi/180), 5)
	if math.Abs(res.Footprint.SemiMajor-wantMajor) > 1e-9 {
		t.Errorf("semi-major = %v, want %v", res.Footprint.SemiMajor, wantMajor)
	}
	if math.Abs(res.Footprint.SemiMinor-wantMinor) > 1e-9 {
		t.Errorf("semi-minor = %v, want %v", res.Footprint.SemiMinor, wantMinor)
	}
	if res.Footprint.Rotation != 270 {
		t.Errorf("rotation = %v, want 270", res.Footprint.Rotation)
	}
	if res.Footprint.Center != res.Landing {
		t.Errorf("footprint center should be the landing coordinate")
	}
}

func TestPredictLayeredWeatherUsesLayers(t *testing.T) {
	layered := calmWeather()
	layered.WindSpeedMPS = 1
	layered.WindDirectionDeg = 270
	layered.Layers = []weather.WindLayer{
		{AltitudeM: 50, SpeedMPS: 12, DirectionDeg: 270},
	}
	surfaceOnly := calmWeather()
	surfaceOnly.WindSpeedMPS = 1
	surfaceOnly.WindDirectionDeg = 270

	withLayers, err := Predict(testRocket(), Parachute(0.3, 0), verticalSite(), layered, Options{})
	if err != nil {
		t.Fatalf("Predict layered: %v", err)
	}
	without, err := Predict(testRocket(), Parachute(0.3, 0), verticalSite(), surfaceOnly, Options{})
	if err != nil {
		t.Fatalf("Predict surface: %v", err)
	}
	if withLayers.Stats.LandingDistanceM <= without.Stats.LandingDistanceM {
		t.Errorf("strong upper winds should drift further: %v vs %v",
			withLayers.Stats.LandingDistanceM, without.Stats.LandingDistanceM)
	}
}

func TestPredictRejectsDegenerateInputs(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RocketParams, *Recovery)
	}{
		{"zero dry mass", func(r *RocketParams, _ *Recovery) { r.DryMassKg = 0 }},
		{"zero burn time", func(r *RocketParams, _ *Recovery) { r.BurnTimeS = 0 }},
		{"zero diameter", func(r *RocketParams, _ *Recovery) { r.DiameterM = 0 }},
		{"negative propellant", func(r *RocketParams, _ *Recovery) { r.PropellantMassKg = -1 }},
		{"zero impulse", func(r *RocketParams, _ *Recovery) { r.TotalImpulseNs = 0 }},
		{"zero parachute", func(_ *RocketParams, rec *Recovery) { rec.DiameterM = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rocket := testRocket()
			rec := Parachute(0.3, 0)
			tc.mutate(&rocket, &rec)
			_, err := Predict(rocket, rec, verticalSite(), calmWeather(), Options{})
			if err == nil {
				t.Fatalf("expected a configuration error")
			}
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("error type = %T, want *ConfigurationError", err)
			}
		})
	}
}

func TestLocalToGeo(t *testing.T) {
	site := Coordinate{Latitude: 0, Longitude: 0}
	c := LocalToGeo(site, 0, 111320)
	if math.Abs(c.Latitude-1) > 1e-9 {
		t.Errorf("111320m north = %v deg lat, want 1", c.Latitude)
	}
	site60 := Coordinate{Latitude: 60, Longitude: 0}
	c = LocalToGeo(site60, 111320, 0)
	if math.Abs(c.Longitude-2) > 0.01 {
		t.Errorf("longitude at 60N = %v, want ~2 (cos scaling)", c.Longitude)
	}
}

func TestDistanceBearing(t *testing.T) {
	d, b := DistanceBearing(100, 0)
	if math.Abs(d-100) > 1e-9 || math.Abs(b-90) > 1e-9 {
		t.Errorf("east displacement: dist=%v bearing=%v, want 100, 90", d, b)
	}
	_, b = DistanceBearing(-100, 0)
	if math.Abs(b-270) > 1e-9 {
		t.Errorf("west displacement bearing = %v, want 270", b)
	}
}
