// Altitude-dependent wind profiles.
package wind

import (
	"math"
	"sort"
)

// Vector is a wind reading: speed in m/s and the meteorological "from"
// direction in degrees (0 = from north, clockwise).
type Vector struct {
	Speed     float64
	Direction float64
}

// Components resolves the reading into the eastward and northward velocity of
// the air itself (the "to" direction, i.e. Direction+180).
func (v Vector) Components() (east, north float64) {
	to := (v.Direction + 180) * math.Pi / 180
	return v.Speed * math.Sin(to), v.Speed * math.Cos(to)
}

// Profile exposes wind as a function of height above ground.
type Profile interface {
	WindAt(height float64) Vector
}

// Terrain selects a roughness length for the log-law profile.
type Terrain string

const (
	TerrainWater  Terrain = "water"
	TerrainGrass  Terrain = "grass"
	TerrainCrops  Terrain = "crops"
	TerrainScrub  Terrain = "scrub"
	TerrainForest Terrain = "forest"
	TerrainUrban  Terrain = "urban"
)

var roughnessLengths = map[Terrain]float64{
	TerrainWater:  0.0002,
	TerrainGrass:  0.03,
	TerrainCrops:  0.1,
	TerrainScrub:  0.25,
	TerrainForest: 1.0,
	TerrainUrban:  1.5,
}

// RoughnessLength returns the roughness length in m for a terrain type,
// defaulting to grass for unknown values.
func RoughnessLength(t Terrain) float64 {
	if z0, ok := roughnessLengths[t]; ok {
		return z0
	}
	return roughnessLengths[TerrainGrass]
}

// minQueryHeight keeps the log profile defined near the ground.
const minQueryHeight = 0.5

// LogLawProfile scales a reference reading with the logarithmic wind profile.
// Direction is constant with height.
type LogLawProfile struct {
	Reference Vector  // reading at ReferenceHeight
	Height    float64 // reference height in m, typically 10
	Roughness float64 // roughness length z0 in m
}

// WindAt returns the log-law wind at the given height above ground.
func (p LogLawProfile) WindAt(height float64) Vector {
	h := math.Max(height, minQueryHeight)
	speed := p.Reference.Speed * math.Log(h/p.Roughness) / math.Log(p.Height/p.Roughness)
	if speed < 0 {
		speed = 0
	}
	return Vector{Speed: speed, Direction: p.Reference.Direction}
}

// Layer is one wind sample of a layered profile.
type Layer struct {
	Height    float64 // m above ground
	Speed     float64 // m/s
	Direction float64 // deg "from"
}

// LayeredProfile interpolates between discrete wind layers. A synthetic 0 m
// layer built from the surface reading is always present.
type LayeredProfile struct {
	layers []Layer
}

// NewLayeredProfile builds a profile from a surface reading and optional
// upper-air layers. Layers are sorted by height.
func NewLayeredProfile(surface Vector, layers []Layer) *LayeredProfile {
	all := make([]Layer, 0, len(layers)+1)
	all = append(all, Layer{Height: 0, Speed: surface.Speed, Direction: surface.Direction})
	all = append(all, layers...)
	sort.Slice(all, func(i, j int) bool { return all[i].Height < all[j].Height })
	return &LayeredProfile{layers: all}
}

// WindAt returns the interpolated wind at the given height above ground.
// Queries below the lowest layer return the lowest layer, above the highest
// the highest. Direction interpolates along the shorter angular path so it
// never spins the long way across 0/360.
func (p *LayeredProfile) WindAt(height float64) Vector {
	ls := p.layers
	if height <= ls[0].Height {
		return Vector{Speed: ls[0].Speed, Direction: ls[0].Direction}
	}
	last := ls[len(ls)-1]
	if height >= last.Height {
		return Vector{Speed: last.Speed, Direction: last.Direction}
	}
	i := sort.Search(len(ls), func(i int) bool { return ls[i].Height > height }) - 1
	lo, hi := ls[i], ls[i+1]
	frac := (height - lo.Height) / (hi.Height - lo.Height)
	return Vector{
		Speed:     lo.Speed + frac*(hi.Speed-lo.Speed),
		Direction: interpolateDirection(lo.Direction, hi.Direction, frac),
	}
}

// interpolateDirection blends two bearings along the shorter arc.
func interpolateDirection(a, b, frac float64) float64 {
	delta := math.Mod(b-a, 360)
	if delta > 180 {
		delta -= 360
	} else if delta < -180 {
		delta += 360
	}
	dir := math.Mod(a+frac*delta, 360)
	if dir < 0 {
		dir += 360
	}
	return dir
}
