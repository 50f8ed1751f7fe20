// Aerodynamic force and terminal-velocity formulas.
package aero

import (
	"math"

	"rocketsim/internal/atmosphere"
)

// Transonic drag-rise band, in Mach number.
const (
	transonicStart = 0.8
	transonicEnd   = 1.2
	transonicGain  = 0.2
)

// Drag returns the drag force in N for speed v (m/s) at the given altitude.
// Zero speed yields zero drag.
func Drag(v, cd, area, altitude float64, atm atmosphere.Model) float64 {
	return 0.5 * atm.DensityAt(altitude) * v * v * cd * area
}

// EffectiveCd adjusts a subsonic base drag coefficient for compressibility.
// The coefficient ramps up quadratically through Mach 0.8-1.2 and is capped
// at 1.2x base beyond. Model rockets rarely get there, but the integrators
// stay well behaved if one does.
func EffectiveCd(baseCd, v, altitude float64, atm atmosphere.Model) float64 {
	mach := math.Abs(v) / atm.SpeedOfSoundAt(altitude)
	switch {
	case mach <= transonicStart:
		return baseCd
	case mach >= transonicEnd:
		return baseCd * (1 + transonicGain)
	default:
		frac := (mach - transonicStart) / (transonicEnd - transonicStart)
		return baseCd * (1 + transonicGain*frac*frac)
	}
}

// TerminalVelocity returns the steady-state descent speed in m/s at which
// drag balances weight.
func TerminalVelocity(mass, cd, area, altitude float64, atm atmosphere.Model) float64 {
	g := atmosphere.GravityAt(altitude)
	rho := atm.DensityAt(altitude)
	return math.Sqrt(2 * mass * g / (rho * cd * area))
}

// DynamicPressure returns q = 0.5*rho*v^2 in Pa.
func DynamicPressure(v, altitude float64, atm atmosphere.Model) float64 {
	return 0.5 * atm.DensityAt(altitude) * v * v
}
