package levelgen

import (
	"math/rand"

	"github.com/vovakirdan/jaimp/internal/games/jaimp/world"
)

// Def describes one platform before placement. Offset is the gap, in
// player widths, from the end of the previous platform.
type Def struct {
	Offset  float64
	Elev    Elevation
	Width   Width
	Kind    world.PlatformKind
	PowerUp bool
}

// Feature emits platform definitions starting at an elevation and
// returns the elevation the terrain continues from.
type Feature struct {
	Name  string
	Build func(r *rand.Rand, at Elevation, withPowerUp bool) ([]Def, Elevation)
}

// ends returns defs with the elevation of the last one.
func ends(defs []Def) ([]Def, Elevation) {
	return defs, defs[len(defs)-1].Elev
}

// Features is the grammar the generator picks from uniformly.
var Features = []Feature{
	{Name: "steps", Build: simpleSteps},
	{Name: "hazard_pit", Build: hazardPit},
	{Name: "bounce", Build: bounceSequence},
	{Name: "floating_run", Build: floatingHazardRun},
	{Name: "shield_path", Build: shieldJumpPath},
	{Name: "weave", Build: verticalWeave},
}

// simpleSteps climbs or descends by at most one band per step.
func simpleSteps(r *rand.Rand, at Elevation, _ bool) ([]Def, Elevation) {
	count := 2 + r.Intn(2)
	defs := make([]Def, 0, count)
	cur := at
	for i := 0; i < count; i++ {
		offset := 0.4 + r.Float64()*0.4
		w := randomWidth(r, true)
		cur = step(r, cur, 1, false)
		defs = append(defs, Def{Offset: offset, Elev: cur, Width: w, Kind: world.Solid})
	}
	return ends(defs)
}

// hazardPit puts a hazard on the floor followed by a wide landing
// no more than two bands away from the current height.
func hazardPit(r *rand.Rand, at Elevation, _ bool) ([]Def, Elevation) {
	landing := randomNormal(r)
	if d := landing - at; d > 2 || d < -2 {
		landing = step(r, at, 1, false)
	}
	pitOffset := 0.5 + r.Float64()*0.2
	landOffset := 0.1 + r.Float64()*0.15
	return ends([]Def{
		{Offset: pitOffset, Elev: Ground, Width: X3, Kind: world.Hazard},
		{Offset: landOffset, Elev: landing, Width: randomWidth(r, false), Kind: world.Solid},
	})
}

// bounceSequence launches the player from a bounce pad to a high landing.
func bounceSequence(r *rand.Rand, at Elevation, withPowerUp bool) ([]Def, Elevation) {
	padOffset := 0.2 + r.Float64()*0.2
	landOffset := 0.5 + r.Float64()*0.4
	landing := raise(at, 4+r.Intn(2))
	return ends([]Def{
		{Offset: padOffset, Elev: at, Width: X1_5, Kind: world.Bounce},
		{Offset: landOffset, Elev: landing, Width: randomWidth(r, false), Kind: world.Solid, PowerUp: withPowerUp},
	})
}

// floatingHazardRun is a long platform with a hazard hanging two bands above it.
func floatingHazardRun(r *rand.Rand, _ Elevation, withPowerUp bool) ([]Def, Elevation) {
	run := randomNormal(r)
	runOffset := 0.5 + r.Float64()*0.4
	hazardOffset := 1.2 + r.Float64()*0.8
	return ends([]Def{
		{Offset: runOffset, Elev: run, Width: X6, Kind: world.Solid, PowerUp: withPowerUp},
		{Offset: hazardOffset, Elev: raise(run, 2), Width: X1_5, Kind: world.Hazard},
	})
}

// shieldJumpPath offers a small ledge too high for a double jump alone.
func shieldJumpPath(r *rand.Rand, _ Elevation, withPowerUp bool) ([]Def, Elevation) {
	main := clampElevation(randomNormal(r), Ground, HighF)
	mainOffset := 0.4 + r.Float64()*0.4
	mainWidth := randomWidth(r, false)
	high := raise(main, 5+r.Intn(2))
	highOffset := 0.2 + r.Float64()*0.2
	return ends([]Def{
		{Offset: mainOffset, Elev: main, Width: mainWidth, Kind: world.Solid},
		{Offset: highOffset, Elev: high, Width: randomWidth(r, true), Kind: world.Solid, PowerUp: withPowerUp},
	})
}

// verticalWeave alternates a high and a low route, sometimes guarding
// the floor with a hazard.
func verticalWeave(r *rand.Rand, at Elevation, withPowerUp bool) ([]Def, Elevation) {
	start := step(r, at, 1, false)
	high := step(r, start, 2, true)
	low := step(r, start, 2, false)

	defs := []Def{
		{Offset: 0.5, Elev: start, Width: X3, Kind: world.Solid},
		{Offset: 0.8, Elev: high, Width: X2, Kind: world.Solid},
	}
	if r.Float64() < 0.4 {
		defs = append(defs, Def{Offset: 0.7, Elev: Ground, Width: X1_5, Kind: world.Hazard})
	}
	defs = append(defs, Def{Offset: 0.7, Elev: low, Width: X3, Kind: world.Solid, PowerUp: withPowerUp})
	defs = append(defs, Def{Offset: 0.8, Elev: step(r, low, 2, false), Width: X3, Kind: world.Solid})
	return ends(defs)
}
