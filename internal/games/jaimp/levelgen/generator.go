package levelgen

import (
	"math/rand"

	"github.com/vovakirdan/jaimp/internal/config"
	"github.com/vovakirdan/jaimp/internal/games/jaimp/world"
)

const (
	maxFeatures   = 12
	fillFraction  = 0.9
	powerUpChance = 0.6
	minSliver     = 0.5 // platforms trimmed below this many player widths are dropped
)

// Params fixes the geometry of generated chunks.
type Params struct {
	ViewportHeight float64
	ChunkLength    float64
	PowerUpSize    float64
	PlatformHeight float64
	PlayerWidth    float64
	PowerUpOffset  float64
}

// ChunkData is a generated chunk's content with chunk-relative x.
type ChunkData struct {
	Platforms []world.Platform
	PowerUps  []world.PowerUp
	Features  []string // names of the features used, in order
}

// Generate builds one chunk. The same rng state and params always
// produce the same chunk.
func Generate(r *rand.Rand, p Params) ChunkData {
	defs, features := Plan(r, p)
	data := Place(defs, p)
	data.Features = features
	return data
}

// Plan folds random features into a list of definitions whose
// estimated extent reaches most of the chunk length.
func Plan(r *rand.Rand, p Params) ([]Def, []string) {
	unit := p.PlayerWidth
	target := 2 + r.Intn(2)
	placed := 0

	start := Def{Offset: 0.2, Elev: Ground, Width: randomWidth(r, false), Kind: world.Solid}
	defs := []Def{start}
	elev := Ground
	extent := unit * (start.Offset + start.Width.Units())

	var names []string
	for len(names) < maxFeatures && extent < p.ChunkLength*fillFraction {
		f := Features[r.Intn(len(Features))]
		tryPowerUp := placed < target && r.Float64() < powerUpChance

		added, next := f.Build(r, elev, tryPowerUp)
		for _, d := range added {
			if d.PowerUp {
				placed++
			}
			extent += unit * (d.Offset + d.Width.Units())
		}
		defs = append(defs, added...)
		elev = next
		names = append(names, f.Name)
	}

	for placed < target {
		slots := layout(defs, p)
		var hosts []int
		for i := 1; i < len(defs); i++ {
			if defs[i].Kind == world.Solid && !defs[i].PowerUp && slots[i].ok {
				hosts = append(hosts, i)
			}
		}
		if len(hosts) == 0 {
			break
		}
		defs[hosts[r.Intn(len(hosts))]].PowerUp = true
		placed++
	}

	if extent < p.ChunkLength-unit*X6.Units() {
		gap := 1.0 + r.Float64()*0.5
		defs = append(defs, Def{Offset: gap, Elev: elev, Width: X8, Kind: world.Solid})
	}

	return defs, names
}

// slot is where a definition lands; ok is false when it was cut off.
type slot struct {
	x, w float64
	ok   bool
}

// layout walks the definitions the same way placement does.
func layout(defs []Def, p Params) []slot {
	unit := p.PlayerWidth
	slots := make([]slot, len(defs))
	tracker := 0.0

	for i, d := range defs {
		x := tracker + d.Offset*unit
		tracker = x
		if x >= p.ChunkLength {
			continue
		}

		w := d.Width.Units() * unit
		if x+w > p.ChunkLength {
			w = p.ChunkLength - x
			if w < minSliver*unit {
				continue
			}
		}
		slots[i] = slot{x: x, w: w, ok: true}
		tracker = x + w
	}

	return slots
}

// Place turns definitions into platforms and power-ups, trimming
// anything that would spill past the chunk length.
func Place(defs []Def, p Params) ChunkData {
	var data ChunkData

	for i, s := range layout(defs, p) {
		if !s.ok {
			continue
		}
		d := defs[i]
		y := d.Elev.Y(p.ViewportHeight)

		data.Platforms = append(data.Platforms, world.Platform{
			X: s.x, Y: y, W: s.w, H: p.PlatformHeight, Kind: d.Kind,
		})

		if d.PowerUp {
			data.PowerUps = append(data.PowerUps, world.NewPowerUp(
				s.x+s.w/2-p.PowerUpSize/2,
				y-p.PlatformHeight-p.PowerUpOffset,
				p.PowerUpSize,
				world.Shield,
			))
		}
	}

	return data
}

// NewParams derives generator parameters from the game configuration.
func NewParams(cfg config.JaimpConfig) Params {
	return Params{
		ViewportHeight: cfg.Viewport.Height,
		ChunkLength:    cfg.ChunkLength(),
		PowerUpSize:    cfg.Generator.PowerUpSize,
		PlatformHeight: cfg.Generator.PlatformHeight,
		PlayerWidth:    cfg.Player.Width,
		PowerUpOffset:  cfg.Generator.PowerUpOffset,
	}
}
