package flight

import (
	"math"

	"rocketsim/internal/aero"
	"rocketsim/internal/atmosphere"
	"rocketsim/internal/wind"
)

// Integrator defaults shared by ascent and descent.
const (
	DefaultTimeStep = 0.02 // s
	MaxIterations   = 10000

	ascentSampleInterval  = 0.1 // s between diagnostic samples
	descentSampleInterval = 0.2

	// apogeeAltitudeGuard avoids declaring apogee while the rocket is still
	// sitting on the pad with numerically negative vertical velocity.
	apogeeAltitudeGuard = 1.0 // m above site elevation

	// thrustAlignSpeed is the speed above which thrust follows the velocity
	// vector instead of the launch rail.
	thrustAlignSpeed = 0.1 // m/s
)

// AscentConfig tunes the powered/coast integrator. Zero values select the
// defaults.
type AscentConfig struct {
	TimeStep       float64
	MaxSteps       int
	SampleInterval float64
}

func (c AscentConfig) withDefaults() AscentConfig {
	if c.TimeStep <= 0 {
		c.TimeStep = DefaultTimeStep
	}
	if c.MaxSteps <= 0 {
		c.MaxSteps = MaxIterations
	}
	if c.SampleInterval <= 0 {
		c.SampleInterval = ascentSampleInterval
	}
	return c
}

// AscentResult reports the powered and coast phases up to apogee.
type AscentResult struct {
	Points             []Point
	ApogeeTimeS        float64
	ApogeePosition     Vec3
	ApogeeVelocity     Vec3
	MaxVelocityMPS     float64
	BurnoutTimeS       float64
	BurnoutAltitudeM   float64 // above site elevation
	BurnoutVelocityMPS float64
	Truncated          bool // iteration cap hit before apogee
}

// IntegrateAscent marches the rocket from the pad to apogee with fixed-step
// explicit Euler integration. Thrust acts while elapsed time is inside the
// motor burn, along the rail until the rocket is moving and along the velocity
// vector after. Apogee is declared when vertical velocity turns negative above
// the guard altitude.
func IntegrateAscent(rocket RocketParams, site LaunchSite, profile wind.Profile, atm atmosphere.Model, cfg AscentConfig) AscentResult {
	cfg = cfg.withDefaults()
	dt := cfg.TimeStep

	angle := site.AngleDeg * math.Pi / 180
	azimuth := site.AzimuthDeg * math.Pi / 180
	rail := Vec3{
		East:  math.Cos(angle) * math.Sin(azimuth),
		North: math.Cos(angle) * math.Cos(azimuth),
		Up:    math.Sin(angle),
	}

	thrustMag := rocket.TotalImpulseNs / rocket.BurnTimeS
	area := rocket.CrossSection()

	pos := Vec3{Up: site.ElevationM}
	vel := Vec3{}
	t := 0.0

	res := AscentResult{}
	phase := PhaseThrust
	res.Points = append(res.Points, Point{TimeS: t, Position: pos, Velocity: vel, Phase: phase})
	lastSample := t
	burnedOut := false

	for i := 0; i < cfg.MaxSteps; i++ {
		burning := t < rocket.BurnTimeS
		if burning {
			phase = PhaseThrust
		} else {
			phase = PhaseCoast
			if !burnedOut {
				burnedOut = true
				res.BurnoutTimeS = t
				res.BurnoutAltitudeM = pos.Up - site.ElevationM
				res.BurnoutVelocityMPS = vel.Norm()
			}
		}

		mass := rocket.DryMassKg
		if burning {
			mass += rocket.PropellantMassKg * (1 - t/rocket.BurnTimeS)
		}

		we, wn := profile.WindAt(math.Max(pos.Up-site.ElevationM, 0)).Components()
		air := Vec3{East: vel.East - we, North: vel.North - wn, Up: vel.Up}
		airSpeed := air.Norm()

		accel := Vec3{Up: -atmosphere.GravityAt(pos.Up)}

		if burning {
			dir := rail
			if vel.Norm() > thrustAlignSpeed {
				dir = vel.Scale(1 / vel.Norm())
			}
			accel = accel.Add(dir.Scale(thrustMag / mass))
		}

		if airSpeed > 0 {
			cd := aero.EffectiveCd(rocket.DragCoefficient, airSpeed, pos.Up, atm)
			drag := aero.Drag(airSpeed, cd, area, pos.Up, atm)
			accel = accel.Add(air.Scale(-drag / (airSpeed * mass)))
		}

		vel = vel.Add(accel.Scale(dt))
		pos = pos.Add(vel.Scale(dt))
		t += dt

		speed := vel.Norm()
		if speed > res.MaxVelocityMPS {
			res.MaxVelocityMPS = speed
		}

		if t-lastSample >= cfg.SampleInterval {
			res.Points = append(res.Points, Point{TimeS: t, Position: pos, Velocity: vel, Phase: phase})
			lastSample = t
		}

		if vel.Up < 0 && pos.Up > site.ElevationM+apogeeAltitudeGuard {
			break
		}
		if i == cfg.MaxSteps-1 {
			res.Truncated = true
		}
	}

	res.ApogeeTimeS = t
	res.ApogeePosition = pos
	res.ApogeeVelocity = vel
	last := res.Points[len(res.Points)-1]
	if last.TimeS != t {
		res.Points = append(res.Points, Point{TimeS: t, Position: pos, Velocity: vel, Phase: phase})
	}
	return res
}
