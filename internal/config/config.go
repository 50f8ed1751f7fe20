// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"rocketsim/internal/flight"
	"rocketsim/internal/weather"
	"rocketsim/internal/wind"
)

// Rocket describes the vehicle and motor.
type Rocket struct {
	DryMassKg        float64 `yaml:"dry_mass_kg"`
	PropellantMassKg float64 `yaml:"propellant_mass_kg"`
	DiameterM        float64 `yaml:"diameter_m"`
	LengthM          float64 `yaml:"length_m"`
	DragCoefficient  float64 `yaml:"drag_coefficient"`
	TotalImpulseNs   float64 `yaml:"total_impulse_ns"`
	BurnTimeS        float64 `yaml:"burn_time_s"`
	DeployDelayS     float64 `yaml:"deploy_delay_s"`
}

// Recovery selects the descent device.
type Recovery struct {
	Type            string  `yaml:"type"` // parachute | streamer | freefall
	DiameterM       float64 `yaml:"diameter_m"`
	AreaM2          float64 `yaml:"area_m2"`
	DragCoefficient float64 `yaml:"drag_coefficient"`
}

// Site describes the launch pad and rail orientation.
type Site struct {
	Latitude   float64 `yaml:"latitude"`
	Longitude  float64 `yaml:"longitude"`
	ElevationM float64 `yaml:"elevation_m"`
	AngleDeg   float64 `yaml:"angle_deg"`
	AzimuthDeg float64 `yaml:"azimuth_deg"`
	Terrain    string  `yaml:"terrain"`
}

// WindLayer is one upper-air wind sample.
type WindLayer struct {
	AltitudeM    float64 `yaml:"altitude_m"`
	SpeedMPS     float64 `yaml:"speed_mps"`
	DirectionDeg float64 `yaml:"direction_deg"`
}

// Weather holds the manual surface reading and optional wind layers.
type Weather struct {
	WindSpeedMPS     float64     `yaml:"wind_speed_mps"`
	WindDirectionDeg float64     `yaml:"wind_direction_deg"`
	TemperatureC     float64     `yaml:"temperature_c"`
	PressureHPa      float64     `yaml:"pressure_hpa"`
	Layers           []WindLayer `yaml:"layers"`
}

// Uncertainty bounds the wind estimate for the landing footprint.
type Uncertainty struct {
	SpeedFraction float64 `yaml:"speed_fraction"`
	DirectionDeg  float64 `yaml:"direction_deg"`
}

// Playback holds replay defaults.
type Playback struct {
	Mode           string  `yaml:"mode"` // gps | altitude_only | none
	Speed          float64 `yaml:"speed"`
	UpdateInterval string  `yaml:"update_interval"`
}

// FlightConfig is the root configuration for one prediction run.
type FlightConfig struct {
	Rocket      Rocket       `yaml:"rocket"`
	Recovery    Recovery     `yaml:"recovery"`
	Site        Site         `yaml:"site"`
	Weather     Weather      `yaml:"weather"`
	Uncertainty *Uncertainty `yaml:"uncertainty"`
	Playback    Playback     `yaml:"playback"`
}

// Load loads YAML config and validates it against a CUE schema.
func Load(configPath, cueSchemaPath string) (*FlightConfig, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg FlightConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// RocketParams converts the rocket section to simulation parameters.
func (c *FlightConfig) RocketParams() flight.RocketParams {
	r := c.Rocket
	return flight.RocketParams{
		DryMassKg:        r.DryMassKg,
		PropellantMassKg: r.PropellantMassKg,
		DiameterM:        r.DiameterM,
		LengthM:          r.LengthM,
		DragCoefficient:  r.DragCoefficient,
		TotalImpulseNs:   r.TotalImpulseNs,
		BurnTimeS:        r.BurnTimeS,
		DeployDelayS:     r.DeployDelayS,
	}
}

// RecoveryDevice converts the recovery section to its closed variant type.
func (c *FlightConfig) RecoveryDevice() (flight.Recovery, error) {
	r := c.Recovery
	switch r.Type {
	case "parachute":
		return flight.Parachute(r.DiameterM, r.DragCoefficient), nil
	case "streamer":
		return flight.Streamer(r.AreaM2, r.DragCoefficient), nil
	case "freefall":
		return flight.Freefall(), nil
	default:
		return flight.Recovery{}, fmt.Errorf("unknown recovery type %q", r.Type)
	}
}

// LaunchSite converts the site section.
func (c *FlightConfig) LaunchSite() flight.LaunchSite {
	s := c.Site
	return flight.LaunchSite{
		Latitude:   s.Latitude,
		Longitude:  s.Longitude,
		ElevationM: s.ElevationM,
		AngleDeg:   s.AngleDeg,
		AzimuthDeg: s.AzimuthDeg,
	}
}

// Terrain returns the configured surface type for the log-law wind profile.
func (c *FlightConfig) Terrain() wind.Terrain {
	return wind.Terrain(c.Site.Terrain)
}

// WeatherData converts the weather section to the manual data contract.
func (c *FlightConfig) WeatherData() weather.Data {
	w := c.Weather
	layers := make([]weather.WindLayer, len(w.Layers))
	for i, l := range w.Layers {
		layers[i] = weather.WindLayer{AltitudeM: l.AltitudeM, SpeedMPS: l.SpeedMPS, DirectionDeg: l.DirectionDeg}
	}
	return weather.Data{
		WindSpeedMPS:     w.WindSpeedMPS,
		WindDirectionDeg: w.WindDirectionDeg,
		TemperatureC:     w.TemperatureC,
		PressureHPa:      w.PressureHPa,
		Layers:           layers,
		Origin:           weather.OriginManual,
	}
}

// WindUncertainty converts the optional uncertainty section, nil when absent.
func (c *FlightConfig) WindUncertainty() *wind.Uncertainty {
	if c.Uncertainty == nil {
		return nil
	}
	return &wind.Uncertainty{
		SpeedFraction: c.Uncertainty.SpeedFraction,
		DirectionDeg:  c.Uncertainty.DirectionDeg,
	}
}

// UpdateInterval parses the playback cadence, 0 when unset.
func (c *FlightConfig) UpdateInterval() (time.Duration, error) {
	if c.Playback.UpdateInterval == "" {
		return 0, nil
	}
	return time.ParseDuration(c.Playback.UpdateInterval)
}
