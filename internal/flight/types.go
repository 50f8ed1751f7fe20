// Flight parameter and trajectory types.
package flight

import (
	"fmt"
	"math"

	"rocketsim/internal/wind"
)

// RocketParams describes the vehicle. Immutable input to a simulation run.
type RocketParams struct {
	DryMassKg        float64
	PropellantMassKg float64
	DiameterM        float64
	LengthM          float64
	DragCoefficient  float64
	TotalImpulseNs   float64
	BurnTimeS        float64
	DeployDelayS     float64
}

// CrossSection returns the frontal reference area in m^2.
func (r RocketParams) CrossSection() float64 {
	return math.Pi * r.DiameterM * r.DiameterM / 4
}

// LiftoffMass returns the pad mass in kg.
func (r RocketParams) LiftoffMass() float64 {
	return r.DryMassKg + r.PropellantMassKg
}

// RecoveryKind tags the recovery-device variant.
type RecoveryKind int

const (
	RecoveryParachute RecoveryKind = iota
	RecoveryStreamer
	RecoveryFreefall
)

func (k RecoveryKind) String() string {
	switch k {
	case RecoveryParachute:
		return "parachute"
	case RecoveryStreamer:
		return "streamer"
	case RecoveryFreefall:
		return "freefall"
	}
	return "unknown"
}

// Default drag coefficients for recovery devices.
const (
	DefaultParachuteCd = 1.75
	DefaultStreamerCd  = 1.2
)

// Recovery selects the descent drag model. Build values with Parachute,
// Streamer, or Freefall.
type Recovery struct {
	Kind            RecoveryKind
	DiameterM       float64 // parachute
	AreaM2          float64 // streamer
	DragCoefficient float64
}

// Parachute returns a round-canopy recovery device. A non-positive cd selects
// the default of 1.75.
func Parachute(diameter, cd float64) Recovery {
	if cd <= 0 {
		cd = DefaultParachuteCd
	}
	return Recovery{Kind: RecoveryParachute, DiameterM: diameter, DragCoefficient: cd}
}

// Streamer returns a streamer recovery device. A non-positive cd selects the
// default of 1.2.
func Streamer(area, cd float64) Recovery {
	if cd <= 0 {
		cd = DefaultStreamerCd
	}
	return Recovery{Kind: RecoveryStreamer, AreaM2: area, DragCoefficient: cd}
}

// Freefall returns a recovery "device" that is no device at all: the body
// falls on its own drag.
func Freefall() Recovery {
	return Recovery{Kind: RecoveryFreefall}
}

// dragParams resolves the descent drag coefficient and reference area. This is
// the single site that matches on the recovery variant.
func (rec Recovery) dragParams(rocket RocketParams) (cd, area float64) {
	switch rec.Kind {
	case RecoveryParachute:
		return rec.DragCoefficient, math.Pi * rec.DiameterM * rec.DiameterM / 4
	case RecoveryStreamer:
		return rec.DragCoefficient, rec.AreaM2
	default: // RecoveryFreefall
		return rocket.DragCoefficient, rocket.CrossSection()
	}
}

// LaunchSite holds the pad location and rail orientation. Angle is measured
// from horizontal (90 = vertical); azimuth from north, clockwise.
type LaunchSite struct {
	Latitude   float64
	Longitude  float64
	ElevationM float64
	AngleDeg   float64
	AzimuthDeg float64
}

// Phase tags a trajectory point with its flight phase.
type Phase string

const (
	PhaseThrust  Phase = "thrust"
	PhaseCoast   Phase = "coast"
	PhaseDescent Phase = "descent"
)

// Vec3 is a local east/north/up vector. East and north are meters from the
// launch site; Up is meters above sea level.
type Vec3 struct {
	East  float64
	North float64
	Up    float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.East + o.East, v.North + o.North, v.Up + o.Up}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.East * s, v.North * s, v.Up * s}
}

// Norm returns the euclidean magnitude of v.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.East*v.East + v.North*v.North + v.Up*v.Up)
}

// Point is one sampled trajectory state. Immutable once produced.
type Point struct {
	TimeS    float64 `json:"time_s"`
	Position Vec3    `json:"position"`
	Velocity Vec3    `json:"velocity"`
	Phase    Phase   `json:"phase"`
}

// Coordinate is a geographic position in degrees.
type Coordinate struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// Stats summarizes a predicted flight. Altitudes are meters above the launch
// site.
type Stats struct {
	MaxAltitudeM       float64 `json:"max_altitude_m"`
	ApogeeTimeS        float64 `json:"apogee_time_s"`
	FlightTimeS        float64 `json:"flight_time_s"`
	MaxVelocityMPS     float64 `json:"max_velocity_mps"`
	BurnoutTimeS       float64 `json:"burnout_time_s"`
	BurnoutAltitudeM   float64 `json:"burnout_altitude_m"`
	LandingVelocityMPS float64 `json:"landing_velocity_mps"`
	LandingDistanceM   float64 `json:"landing_distance_m"`
	LandingBearingDeg  float64 `json:"landing_bearing_deg"`
}

// Footprint is the landing uncertainty ellipse anchored to its geographic
// center.
type Footprint struct {
	Center Coordinate `json:"center"`
	wind.Ellipse
}

// Result is a complete trajectory prediction. Produced once per run and never
// mutated; rerunning with changed inputs produces a new Result.
type Result struct {
	FlightID  string     `json:"flight_id"`
	Points    []Point    `json:"points"`
	Landing   Coordinate `json:"landing"`
	Footprint Footprint  `json:"footprint"`
	Stats     Stats      `json:"stats"`
	Site      Coordinate `json:"site"`
}

// TotalTime returns the simulated flight duration in seconds.
func (r *Result) TotalTime() float64 {
	return r.Stats.FlightTimeS
}

// ConfigurationError reports a physically degenerate input caught before
// integration.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
