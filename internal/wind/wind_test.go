package wind

import (
	"math"
	"testing"
)

func TestLogLawProfile(t *testing.T) {
	p := LogLawProfile{
		Reference: Vector{Speed: 5, Direction: 270},
		Height:    10,
		Roughness: RoughnessLength(TerrainGrass),
	}
	at10 := p.WindAt(10)
	if math.Abs(at10.Speed-5) > 1e-9 {
		t.Errorf("speed at reference height = %v, want 5", at10.Speed)
	}
	if p.WindAt(2).Speed >= at10.Speed {
		t.Errorf("speed should decrease toward the ground")
	}
	if p.WindAt(100).Speed <= at10.Speed {
		t.Errorf("speed should increase aloft")
	}
	// Below the minimum query height the profile clamps rather than diverging.
	if got := p.WindAt(0); got.Speed != p.WindAt(0.5).Speed {
		t.Errorf("query below 0.5m should clamp, got %v", got.Speed)
	}
	if got := p.WindAt(50).Direction; got != 270 {
		t.Errorf("direction should be constant with height, got %v", got)
	}
}

func TestLogLawNeverNegative(t *testing.T) {
	p := LogLawProfile{Reference: Vector{Speed: 3, Direction: 0}, Height: 10, Roughness: 1.5}
	for h := 0.0; h <= 20; h += 0.5 {
		if p.WindAt(h).Speed < 0 {
			t.Fatalf("negative speed at height %v", h)
		}
	}
}

func TestLayeredProfileInterpolation(t *testing.T) {
	p := NewLayeredProfile(Vector{Speed: 2, Direction: 180}, []Layer{
		{Height: 100, Speed: 6, Direction: 200},
		{Height: 300, Speed: 10, Direction: 220},
	})
	if got := p.WindAt(0).Speed; got != 2 {
		t.Errorf("surface speed = %v, want 2", got)
	}
	if got := p.WindAt(500); got.Speed != 10 || got.Direction != 220 {
		t.Errorf("above top layer should clamp, got %+v", got)
	}
	mid := p.WindAt(200)
	if math.Abs(mid.Speed-8) > 1e-9 {
		t.Errorf("midpoint speed = %v, want 8", mid.Speed)
	}
	if math.Abs(mid.Direction-210) > 1e-9 {
		t.Errorf("midpoint direction = %v, want 210", mid.Direction)
	}
}

func TestLayeredDirectionWrap(t *testing.T) {
	p := NewLayeredProfile(Vector{Speed: 5, Direction: 350}, []Layer{
		{Height: 100, Speed: 5, Direction: 10},
	})
	got := p.WindAt(50).Direction
	if math.Abs(got) > 1e-9 && math.Abs(got-360) > 1e-9 {
		t.Errorf("midpoint between 350 and 10 = %v, want ~0", got)
	}
}

func TestVectorComponents(t *testing.T) {
	// Wind from the north blows toward the south.
	east, north := (Vector{Speed: 10, Direction: 0}).Components()
	if math.Abs(east) > 1e-9 || math.Abs(north+10) > 1e-9 {
		t.Errorf("north wind components = (%v, %v), want (0, -10)", east, north)
	}
	// Wind from the west blows toward the east.
	east, north = (Vector{Speed: 10, Direction: 270}).Components()
	if math.Abs(east-10) > 1e-9 || math.Abs(north) > 1e-9 {
		t.Errorf("west wind components = (%v, %v), want (10, 0)", east, north)
	}
}

func TestRoughnessLengthDefault(t *testing.T) {
	if RoughnessLength("swamp") != RoughnessLength(TerrainGrass) {
		t.Errorf("unknown terrain should default to grass")
	}
}

func TestRoughnessLengthIncreasesWithTerrain(t *testing.T) {
	ordered := []Terrain{TerrainWater, TerrainGrass, TerrainCrops, TerrainScrub, TerrainForest, TerrainUrban}
	for i := 1; i < len(ordered); i++ {
		if RoughnessLength(ordered[i]) <= RoughnessLength(ordered[i-1]) {
			t.Errorf("roughness for %s should exceed %s", ordered[i], ordered[i-1])
		}
	}
}

func TestFootprintEllipse(t *testing.T) {
	u := Uncertainty{SpeedFraction: 0.3, DirectionDeg: 15}
	e := FootprintEllipse(500, 90, u)
	if math.Abs(e.SemiMajor-150) > 1e-9 {
		t.Errorf("semi-major = %v, want 150", e.SemiMajor)
	}
	want := 500 * math.Sin(15*math.Pi/180)
	if math.Abs(e.SemiMinor-want) > 1e-9 {
		t.Errorf("semi-minor = %v, want %v", e.SemiMinor, want)
	}
	if e.Rotation != 270 {
		t.Errorf("rotation = %v, want 270", e.Rotation)
	}
	if e.Confidence != 0.95 {
		t.Errorf("confidence = %v, want 0.95", e.Confidence)
	}
}

func TestFootprintEllipseFloors(t *testing.T) {
	e := FootprintEllipse(1, 0, DefaultUncertainty())
	if e.SemiMajor != 10 || e.SemiMinor != 5 {
		t.Errorf("near-calm ellipse = %v x %v, want floors 10 x 5", e.SemiMajor, e.SemiMinor)
	}
	if e.Rotation != 180 {
		t.Errorf("rotation = %v, want 180", e.Rotation)
	}
}
