// Package levelgen builds JAIMP level chunks from a small grammar of
// platform features driven by a seeded random stream.
package levelgen

import "math/rand"

// Elevation is a named height band, ordered from the floor upwards.
type Elevation int

const (
	Ground Elevation = iota
	LowA
	LowB
	MidC
	MidD
	MidE
	HighF
	HighG
	SkyA
	SkyB
)

// normalTop is the highest band reachable without sky moves.
const normalTop = HighG

var elevationLift = [...]float64{40, 75, 110, 145, 180, 215, 260, 305, 350, 400}

var elevationNames = [...]string{
	"ground", "low_a", "low_b", "mid_c", "mid_d", "mid_e", "high_f", "high_g", "sky_a", "sky_b",
}

// String returns the band name.
func (e Elevation) String() string {
	if e < Ground || e > SkyB {
		return "unknown"
	}
	return elevationNames[e]
}

// Y returns the platform top for this band in a viewport of the given height.
func (e Elevation) Y(viewportHeight float64) float64 {
	return viewportHeight - elevationLift[clampElevation(e, Ground, SkyB)]
}

// Sky reports whether the band is above the normal range.
func (e Elevation) Sky() bool {
	return e > normalTop
}

func clampElevation(e, lo, hi Elevation) Elevation {
	if e < lo {
		return lo
	}
	if e > hi {
		return hi
	}
	return e
}

// raise moves up by n bands, capped at the top of the sky.
func raise(e Elevation, n int) Elevation {
	return clampElevation(e+Elevation(n), Ground, SkyB)
}

// step moves up to maxStep bands in either direction, uniformly.
// Without allowSky the result stays inside the normal bands.
func step(r *rand.Rand, cur Elevation, maxStep int, allowSky bool) Elevation {
	change := 0
	if maxStep > 0 {
		change = r.Intn(2*maxStep+1) - maxStep
	}
	next := clampElevation(cur+Elevation(change), Ground, SkyB)
	if !allowSky {
		next = clampElevation(next, Ground, normalTop)
	}
	return next
}

// randomNormal picks any non-sky band.
func randomNormal(r *rand.Rand) Elevation {
	return Elevation(r.Intn(int(normalTop) + 1))
}

// Width is a named platform width in multiples of the player width.
type Width int

const (
	X1_5 Width = iota
	X2
	X3
	X4
	X5
	X6
	X8
	X10
)

var widthUnits = [...]float64{1.5, 2, 3, 4, 5, 6, 7.5, 9}

// Units returns the width as a multiple of the player width.
func (w Width) Units() float64 {
	if w < X1_5 || w > X10 {
		return 2.5
	}
	return widthUnits[w]
}

// randomWidth picks one of the three smallest widths, or a large one
// from X3 through X8.
func randomWidth(r *rand.Rand, small bool) Width {
	if small {
		return Width(r.Intn(3))
	}
	return X3 + Width(r.Intn(len(widthUnits)-3))
}
