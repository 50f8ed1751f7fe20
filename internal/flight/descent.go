package flight

import (
	"math"

	"rocketsim/internal/aero"
	"rocketsim/internal/atmosphere"
	"rocketsim/internal/wind"
)

// descentSeedVelocity avoids an undefined drag direction at an exactly-zero
// starting velocity.
const descentSeedVelocity = 0.1 // m/s downward

// DescentConfig tunes the recovery integrator. Zero values select defaults.
type DescentConfig struct {
	TimeStep       float64
	MaxSteps       int
	SampleInterval float64
}

func (c DescentConfig) withDefaults() DescentConfig {
	if c.TimeStep <= 0 {
		c.TimeStep = DefaultTimeStep
	}
	if c.MaxSteps <= 0 {
		c.MaxSteps = MaxIterations
	}
	if c.SampleInterval <= 0 {
		c.SampleInterval = descentSampleInterval
	}
	return c
}

// DescentResult reports the recovery phase from apogee to ground.
type DescentResult struct {
	Points             []Point
	LandingTimeS       float64
	LandingPosition    Vec3
	LandingSpeedMPS    float64
	DurationS          float64
	AverageDescentRate float64 // mean downward speed, m/s
	Truncated          bool    // iteration cap hit before reaching ground
}

// IntegrateDescent marches the rocket from the apogee state down to ground
// level under the drag of the selected recovery device. The wind profile is
// queried at the current height above ground. When the descent reaches the
// ground, the final point is forced to ground level exactly; a descent cut off
// by the step cap keeps its last integrated position and is marked Truncated.
func IntegrateDescent(rocket RocketParams, rec Recovery, startTime float64, startPos, startVel Vec3, profile wind.Profile, atm atmosphere.Model, groundLevel float64, cfg DescentConfig) DescentResult {
	cfg = cfg.withDefaults()
	dt := cfg.TimeStep

	cd, area := rec.dragParams(rocket)
	mass := rocket.DryMassKg

	pos := startPos
	vel := startVel
	if vel.Up > -descentSeedVelocity {
		vel.Up = -descentSeedVelocity
	}
	t := startTime

	res := DescentResult{}
	res.Points = append(res.Points, Point{TimeS: t, Position: pos, Velocity: vel, Phase: PhaseDescent})
	lastSample := t

	var rateSum float64
	var rateCount int

	for i := 0; i < cfg.MaxSteps; i++ {
		we, wn := profile.WindAt(math.Max(pos.Up-groundLevel, 0)).Components()
		air := Vec3{East: vel.East - we, North: vel.North - wn, Up: vel.Up}
		airSpeed := air.Norm()

		accel := Vec3{Up: -atmosphere.GravityAt(pos.Up)}
		if airSpeed > 0 {
			drag := aero.Drag(airSpeed, cd, area, pos.Up, atm)
			accel = accel.Add(air.Scale(-drag / (airSpeed * mass)))
		}

		vel = vel.Add(accel.Scale(dt))
		pos = pos.Add(vel.Scale(dt))
		t += dt

		if vel.Up < 0 {
			rateSum += -vel.Up
			rateCount++
		}

		if pos.Up <= groundLevel {
			break
		}

		if t-lastSample >= cfg.SampleInterval {
			res.Points = append(res.Points, Point{TimeS: t, Position: pos, Velocity: vel, Phase: PhaseDescent})
			lastSample = t
		}
		if i == cfg.MaxSteps-1 {
			res.Truncated = true
		}
	}

	if !res.Truncated {
		pos.Up = groundLevel
	}
	res.Points = append(res.Points, Point{TimeS: t, Position: pos, Velocity: vel, Phase: PhaseDescent})

	res.LandingTimeS = t
	res.LandingPosition = pos
	res.LandingSpeedMPS = vel.Norm()
	res.DurationS = t - startTime
	if rateCount > 0 {
		res.AverageDescentRate = rateSum / float64(rateCount)
	}
	return res
}
