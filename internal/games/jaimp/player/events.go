package player

import "github.com/vovakirdan/jaimp/internal/games/jaimp/world"

// Event is raised by the controller and drained by the session, which
// turns it into particles and sound.
type Event interface {
	isEvent()
}

// Landed is raised on the first grounded tick after being airborne.
type Landed struct {
	X, Y  float64 // feet position
	Kind  world.PlatformKind
	Top   float64 // platform top
	Width float64 // platform width
}

func (Landed) isEvent() {}

// Bounced is raised when a bounce pad or a hazard launches the player.
type Bounced struct {
	X, Y   float64
	Hazard bool
}

func (Bounced) isEvent() {}

// JumpKind distinguishes the three ways to jump.
type JumpKind int

const (
	GroundJump JumpKind = iota
	AirJump
	ShieldJump
)

// Jumped is raised for every successful jump.
type Jumped struct {
	X, Y float64
	Kind JumpKind
}

func (Jumped) isEvent() {}

// ShieldSpent is raised when a shield layer pops, by a shield jump or a hit.
type ShieldSpent struct {
	X, Y  float64 // body centre
	Layer int     // the level that popped, 1..max
}

func (ShieldSpent) isEvent() {}

// Hurt is raised by every hit. A fatal hit ends the run.
type Hurt struct {
	Fatal bool
}

func (Hurt) isEvent() {}
