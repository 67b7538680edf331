// Package world holds the entity primitives of a JAIMP level:
// platforms, power-ups, chunks and fireballs.
package world

import "github.com/vovakirdan/jaimp/internal/core"

// PlatformKind tags how a platform interacts with the player.
type PlatformKind int

const (
	Solid PlatformKind = iota
	Hazard
	Goal
	Bounce
)

// String returns the kind name.
func (k PlatformKind) String() string {
	switch k {
	case Solid:
		return "solid"
	case Hazard:
		return "hazard"
	case Goal:
		return "goal"
	case Bounce:
		return "bounce"
	default:
		return "unknown"
	}
}

// Blocks reports whether the kind stops horizontal movement and
// blocks a crouching player from standing up.
func (k PlatformKind) Blocks() bool {
	switch k {
	case Solid, Bounce, Goal:
		return true
	default:
		return false
	}
}

// Platform is an immutable box. X is relative to the owning chunk,
// Y is a world coordinate.
type Platform struct {
	X, Y, W, H float64
	Kind       PlatformKind
}

// Box returns the platform's world-space box for a chunk starting at originX.
func (p Platform) Box(originX float64) core.Box {
	return core.Box{X: originX + p.X, Y: p.Y, W: p.W, H: p.H}
}

// PowerUpKind tags a collectible.
type PowerUpKind int

const (
	Shield PowerUpKind = iota
)

// String returns the kind name.
func (k PowerUpKind) String() string {
	switch k {
	case Shield:
		return "shield"
	default:
		return "unknown"
	}
}

// PowerUp is a collectible square. X is chunk-relative, Y is world.
type PowerUp struct {
	X, Y, Size float64
	Kind       PowerUpKind
	collected  bool
}

// NewPowerUp creates an uncollected power-up.
func NewPowerUp(x, y, size float64, kind PowerUpKind) PowerUp {
	return PowerUp{X: x, Y: y, Size: size, Kind: kind}
}

// Collected reports whether the power-up has been picked up.
func (p *PowerUp) Collected() bool {
	return p.collected
}

// Collect marks the power-up collected. It returns false when it already was.
func (p *PowerUp) Collect() bool {
	if p.collected {
		return false
	}
	p.collected = true
	return true
}

// Box returns the power-up's world-space box for a chunk starting at originX.
func (p *PowerUp) Box(originX float64) core.Box {
	return core.Box{X: originX + p.X, Y: p.Y, W: p.Size, H: p.Size}
}
