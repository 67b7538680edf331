package levelgen

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/jaimp/internal/config"
	"github.com/vovakirdan/jaimp/internal/games/jaimp/world"
)

func defaultParams() Params {
	return NewParams(config.DefaultJaimpConfig())
}

func TestNewParams(t *testing.T) {
	p := defaultParams()
	want := Params{
		ViewportHeight: 550,
		ChunkLength:    3600,
		PowerUpSize:    25,
		PlatformHeight: 20,
		PlayerWidth:    30,
		PowerUpOffset:  30,
	}
	if p != want {
		t.Errorf("NewParams() = %+v, expected %+v", p, want)
	}
}

func TestGenerateBounds(t *testing.T) {
	p := defaultParams()

	for seed := int64(0); seed < 300; seed++ {
		data := Generate(rand.New(rand.NewSource(seed)), p)

		if len(data.Platforms) == 0 {
			t.Fatalf("seed %d: no platforms generated", seed)
		}
		for i, pl := range data.Platforms {
			if pl.X < 0 || pl.X > p.ChunkLength {
				t.Errorf("seed %d: platform %d x = %v outside [0, %v]", seed, i, pl.X, p.ChunkLength)
			}
			if pl.X+pl.W > p.ChunkLength+1e-9 {
				t.Errorf("seed %d: platform %d ends at %v past the chunk", seed, i, pl.X+pl.W)
			}
			if pl.W < p.PlayerWidth*minSliver {
				t.Errorf("seed %d: platform %d width %v is a sliver", seed, i, pl.W)
			}
			if pl.Kind == world.Goal {
				t.Errorf("seed %d: goal platforms are never generated", seed)
			}
		}
		if len(data.Features) > maxFeatures {
			t.Errorf("seed %d: %d features exceed the bound", seed, len(data.Features))
		}
	}
}

func TestGenerateStartsOnGround(t *testing.T) {
	p := defaultParams()
	data := Generate(rand.New(rand.NewSource(7)), p)

	first := data.Platforms[0]
	if first.Kind != world.Solid || first.Y != Ground.Y(p.ViewportHeight) {
		t.Errorf("first platform = %+v, expected solid ground", first)
	}
	if math.Abs(first.X-0.2*p.PlayerWidth) > 1e-9 {
		t.Errorf("first platform x = %v, expected %v", first.X, 0.2*p.PlayerWidth)
	}
}

func TestGenerateDeterminism(t *testing.T) {
	p := defaultParams()

	for _, seed := range []int64{1, 42, 12345} {
		a := Generate(rand.New(rand.NewSource(seed)), p)
		b := Generate(rand.New(rand.NewSource(seed)), p)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("seed %d: generation is not deterministic", seed)
		}
	}

	// Consecutive chunks from one stream also repeat
	r1 := rand.New(rand.NewSource(99))
	r2 := rand.New(rand.NewSource(99))
	for i := 0; i < 5; i++ {
		if !reflect.DeepEqual(Generate(r1, p), Generate(r2, p)) {
			t.Fatalf("chunk %d differs between identical streams", i)
		}
	}
}

func TestGeneratePowerUpBudget(t *testing.T) {
	p := defaultParams()

	for seed := int64(0); seed < 300; seed++ {
		data := Generate(rand.New(rand.NewSource(seed)), p)
		n := len(data.PowerUps)

		// Default geometry always leaves enough solid hosts for the budget
		if n < 2 || n > 3 {
			t.Errorf("seed %d: %d power-ups, expected 2 or 3", seed, n)
		}
		for _, pu := range data.PowerUps {
			if pu.Collected() || pu.Kind != world.Shield {
				t.Errorf("seed %d: power-up %+v should be an uncollected shield", seed, pu)
			}
		}
	}
}

func TestStep(t *testing.T) {
	r := rand.New(rand.NewSource(3))

	for i := 0; i < 500; i++ {
		cur := Elevation(r.Intn(int(SkyB) + 1))

		next := step(r, cur, 2, false)
		if next > normalTop {
			t.Fatalf("step without sky reached %v", next)
		}
		if d := int(next - cur); cur <= normalTop && (d > 2 || d < -2) {
			t.Fatalf("step from %v to %v moved more than 2 bands", cur, next)
		}

		sky := step(r, cur, 1, true)
		if d := int(sky - cur); d > 1 || d < -1 {
			t.Fatalf("sky step from %v to %v moved more than 1 band", cur, sky)
		}
	}

	if got := step(r, MidC, 0, false); got != MidC {
		t.Errorf("step with zero magnitude = %v, expected %v", got, MidC)
	}
	if got := step(r, SkyB, 0, false); got != normalTop {
		t.Errorf("step from the sky without sky = %v, expected %v", got, normalTop)
	}
}

func TestRandomWidth(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	seenLarge := map[Width]bool{}

	for i := 0; i < 500; i++ {
		if w := randomWidth(r, true); w > X3 {
			t.Fatalf("small width %v out of range", w)
		}
		w := randomWidth(r, false)
		if w < X3 || w > X8 {
			t.Fatalf("large width %v out of range", w)
		}
		seenLarge[w] = true
	}
	if len(seenLarge) != 5 {
		t.Errorf("large widths seen = %v, expected all of X3..X8", seenLarge)
	}
}

func TestElevationY(t *testing.T) {
	tests := []struct {
		elev     Elevation
		expected float64
	}{
		{Ground, 510},
		{MidC, 405},
		{HighF, 290},
		{SkyB, 150},
	}

	for _, tc := range tests {
		t.Run(tc.elev.String(), func(t *testing.T) {
			if got := tc.elev.Y(550); got != tc.expected {
				t.Errorf("Y(550) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestFeatures(t *testing.T) {
	if len(Features) != 6 {
		t.Fatalf("len(Features) = %d, expected 6", len(Features))
	}

	for _, f := range Features {
		t.Run(f.Name, func(t *testing.T) {
			r := rand.New(rand.NewSource(11))
			for i := 0; i < 200; i++ {
				at := Elevation(r.Intn(int(normalTop) + 1))
				withPU := i%2 == 0

				defs, next := f.Build(r, at, withPU)
				if len(defs) == 0 {
					t.Fatal("feature produced no definitions")
				}
				if next != defs[len(defs)-1].Elev {
					t.Fatalf("exit elevation %v, expected last definition's %v", next, defs[len(defs)-1].Elev)
				}

				pus := 0
				for _, d := range defs {
					if d.PowerUp {
						pus++
						if d.Kind != world.Solid {
							t.Fatalf("power-up on a %v platform", d.Kind)
						}
					}
					if d.Elev < Ground || d.Elev > SkyB {
						t.Fatalf("elevation %d out of range", d.Elev)
					}
				}
				if pus > 1 || (!withPU && pus != 0) {
					t.Fatalf("withPowerUp=%v produced %d power-ups", withPU, pus)
				}
			}
		})
	}
}

func TestBounceLandingIsHigh(t *testing.T) {
	r := rand.New(rand.NewSource(8))

	defs, _ := bounceSequence(r, LowA, false)
	if defs[0].Kind != world.Bounce || defs[0].Elev != LowA {
		t.Errorf("bounce pad = %+v, expected at the current elevation", defs[0])
	}
	if got := defs[1].Elev; got != MidE && got != HighF {
		t.Errorf("landing elevation = %v, expected 4 or 5 bands higher", got)
	}
}

func TestShieldPathMainCapped(t *testing.T) {
	r := rand.New(rand.NewSource(21))

	for i := 0; i < 200; i++ {
		defs, _ := shieldJumpPath(r, Ground, true)
		if defs[0].Elev > HighF {
			t.Fatalf("main path at %v, expected at most %v", defs[0].Elev, HighF)
		}
		if !defs[1].PowerUp || defs[1].Width > X3 {
			t.Fatalf("high option = %+v, expected a small ledge with a power-up", defs[1])
		}
	}
}

func TestPlaceTrimsAndDrops(t *testing.T) {
	p := Params{ViewportHeight: 550, ChunkLength: 100, PowerUpSize: 25, PlatformHeight: 20, PlayerWidth: 10, PowerUpOffset: 30}

	tests := []struct {
		name   string
		defs   []Def
		expect []world.Platform
	}{
		{
			name:   "fits exactly",
			defs:   []Def{{Offset: 1, Elev: Ground, Width: X10}},
			expect: []world.Platform{{X: 10, Y: 510, W: 90, H: 20}},
		},
		{
			name:   "past the end is dropped",
			defs:   []Def{{Offset: 1, Elev: Ground, Width: X10}, {Offset: 0.2, Elev: Ground, Width: X2}},
			expect: []world.Platform{{X: 10, Y: 510, W: 90, H: 20}},
		},
		{
			name:   "overhang is trimmed",
			defs:   []Def{{Offset: 9.2, Elev: LowA, Width: X2}},
			expect: []world.Platform{{X: 92, Y: 475, W: 8, H: 20}},
		},
		{
			name:   "sliver is dropped",
			defs:   []Def{{Offset: 9.7, Elev: Ground, Width: X2}},
			expect: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Place(tc.defs, p).Platforms
			if len(got) != len(tc.expect) {
				t.Fatalf("placed %d platforms, expected %d: %+v", len(got), len(tc.expect), got)
			}
			for i := range got {
				if math.Abs(got[i].X-tc.expect[i].X) > 1e-9 || math.Abs(got[i].W-tc.expect[i].W) > 1e-9 ||
					got[i].Y != tc.expect[i].Y || got[i].H != tc.expect[i].H {
					t.Errorf("platform %d = %+v, expected %+v", i, got[i], tc.expect[i])
				}
			}
		})
	}
}

func TestPlacePowerUpAboveHost(t *testing.T) {
	p := Params{ViewportHeight: 550, ChunkLength: 1000, PowerUpSize: 25, PlatformHeight: 20, PlayerWidth: 10, PowerUpOffset: 30}

	data := Place([]Def{{Offset: 1, Elev: Ground, Width: X10, PowerUp: true}}, p)
	if len(data.PowerUps) != 1 {
		t.Fatalf("placed %d power-ups, expected 1", len(data.PowerUps))
	}
	pu := data.PowerUps[0]
	if pu.X != 42.5 || pu.Y != 460 || pu.Size != 25 {
		t.Errorf("power-up = %+v, expected centred at x 42.5, y 460", pu)
	}
}

func TestGenerateDegenerateChunk(t *testing.T) {
	p := defaultParams()
	p.ChunkLength = 50

	data := Generate(rand.New(rand.NewSource(1)), p)

	if len(data.Features) != 0 {
		t.Errorf("features = %v, expected none in a tiny chunk", data.Features)
	}
	if len(data.Platforms) != 1 {
		t.Fatalf("platforms = %+v, expected only the trimmed start", data.Platforms)
	}
	if len(data.PowerUps) != 0 {
		t.Errorf("power-ups = %d, expected none without eligible hosts", len(data.PowerUps))
	}
	if got := data.Platforms[0].X + data.Platforms[0].W; math.Abs(got-50) > 1e-9 {
		t.Errorf("start platform ends at %v, expected 50", got)
	}
}
