// Package player integrates the player's body against the current chunk
// and runs the jump, shield and crouch state machine.
package player

import (
	"math/rand"

	"github.com/vovakirdan/jaimp/internal/config"
	"github.com/vovakirdan/jaimp/internal/core"
	"github.com/vovakirdan/jaimp/internal/games/jaimp/world"
)

const (
	landTolerance   = 1.0
	bounceTolerance = 5.0
)

// Controller is the player body. X and Y are the top-left corner in world units.
type Controller struct {
	X, Y   float64
	VX, VY float64

	cfg  config.PlayerConfig
	phys config.PhysicsConfig

	height    float64
	onGround  bool
	jumps     int
	shield    int
	crouching bool

	visual Visual
	events []Event
}

// New creates a controller. cosmetic drives blink timing only.
func New(cfg config.PlayerConfig, phys config.PhysicsConfig, cosmetic *rand.Rand) *Controller {
	c := &Controller{
		cfg:    cfg,
		phys:   phys,
		visual: newVisual(cfg.Width, cfg.Height, cosmetic),
	}
	c.Spawn(0, 0)
	return c
}

// Spawn places a fresh player at (x, y): standing, airborne, full jumps
// and the starting shield.
func (c *Controller) Spawn(x, y float64) {
	c.X, c.Y = x, y
	c.VX, c.VY = 0, 0
	c.height = c.cfg.Height
	c.onGround = false
	c.jumps = c.cfg.MaxJumps
	c.shield = c.cfg.StartShield
	c.crouching = false
	c.visual.reset()
	c.events = c.events[:0]
}

// Width returns the collision width.
func (c *Controller) Width() float64 { return c.cfg.Width }

// Height returns the current collision height.
func (c *Controller) Height() float64 { return c.height }

// OnGround reports whether the player stood on a platform after the last update.
func (c *Controller) OnGround() bool { return c.onGround }

// Jumps returns the remaining jump charges.
func (c *Controller) Jumps() int { return c.jumps }

// Shield returns the shield level.
func (c *Controller) Shield() int { return c.shield }

// Crouching reports whether the player is crouched.
func (c *Controller) Crouching() bool { return c.crouching }

// Visual returns the cosmetic state for rendering.
func (c *Controller) Visual() *Visual { return &c.visual }

// Box returns the collision box.
func (c *Controller) Box() core.Box {
	return core.Box{X: c.X, Y: c.Y, W: c.cfg.Width, H: c.height}
}

// CenterX returns the horizontal centre of the body.
func (c *Controller) CenterX() float64 {
	return c.X + c.cfg.Width/2
}

// Events returns and clears the events raised since the last call.
func (c *Controller) Events() []Event {
	out := c.events
	c.events = nil
	return out
}

func (c *Controller) emit(e Event) {
	c.events = append(c.events, e)
}

// Move sets the horizontal velocity from held directions. Left wins.
func (c *Controller) Move(left, right bool) {
	switch {
	case left:
		c.VX = -c.cfg.MoveSpeed
	case right:
		c.VX = c.cfg.MoveSpeed
	default:
		c.VX = 0
	}
}

// Halt zeroes horizontal velocity.
func (c *Controller) Halt() {
	c.VX = 0
}

// Update integrates dt seconds against the platforms of chunk, which may be nil.
// The vertical pass moves along y at the old x; the horizontal pass moves
// along x at the old y.
func (c *Controller) Update(dt float64, chunk *world.Chunk) {
	c.visual.update(dt, c.VX)

	c.VY += c.phys.Gravity * dt
	if c.VY > c.phys.MaxFallSpeed {
		c.VY = c.phys.MaxFallSpeed
	}

	nextX := c.X + c.VX*dt
	nextY := c.Y + c.VY*dt
	w := c.cfg.Width

	wasOnGround := c.onGround
	c.onGround = false
	var landed *world.Platform

	if chunk != nil {
		for i := range chunk.Platforms {
			p := &chunk.Platforms[i]
			px := chunk.StartX + p.X

			if c.X+w > px && c.X < px+p.W && nextY+c.height > p.Y && nextY < p.Y+p.H {
				switch p.Kind {
				case world.Solid, world.Goal:
					if c.VY >= 0 && c.Y+c.height <= p.Y+landTolerance {
						nextY = p.Y - c.height
						c.VY = 0
						c.onGround = true
						landed = p
					} else if c.VY < 0 && c.Y >= p.Y+p.H-landTolerance {
						nextY = p.Y + p.H
						c.VY = 0
					}
				case world.Bounce, world.Hazard:
					if c.VY >= 0 && c.Y+c.height <= p.Y+bounceTolerance {
						if c.crouching {
							c.SetCrouching(false, chunk)
						}
						nextY = p.Y - c.height
						if c.crouching {
							c.VY = 0
							c.onGround = true
							landed = p
						} else {
							c.launch(p.Kind == world.Hazard)
						}
					}
				}
			}

			if p.Kind.Blocks() && nextX+w > px && nextX < px+p.W && c.Y+c.height > p.Y && c.Y < p.Y+p.H {
				if c.VX > 0 && c.X+w <= px+landTolerance {
					nextX = px - w
					c.VX = 0
				} else if c.VX < 0 && c.X >= px+p.W-landTolerance {
					nextX = px + p.W
					c.VX = 0
				}
			}
		}
	}

	c.X, c.Y = nextX, nextY

	if c.onGround && !wasOnGround {
		c.jumps = c.cfg.MaxJumps
		if !c.crouching && c.visual.State != Squashing {
			c.visual.apply(Squashing, squashDuration)
		}
		c.emit(Landed{
			X:     c.CenterX(),
			Y:     c.Y + c.height,
			Kind:  landed.Kind,
			Top:   landed.Y,
			Width: landed.W,
		})
	}

	if c.X < 0 {
		c.X = 0
		if c.VX < 0 {
			c.VX = 0
		}
	}
}

// launch throws the player upwards off a bounce pad or a hazard.
func (c *Controller) launch(hazard bool) {
	c.VY = c.cfg.BounceStrength
	stretch := 1.2
	if hazard {
		c.VY *= c.cfg.HazardBounceMultiplier
		stretch = 1.3
	}
	c.onGround = false
	c.jumps = c.cfg.MaxJumps
	c.visual.apply(Stretching, stretchDuration*stretch)
	c.emit(Bounced{X: c.CenterX(), Y: c.Y + c.height, Hazard: hazard})
}

// Jump spends a jump charge, or a shield layer when airborne without charges.
// It does nothing while crouching.
func (c *Controller) Jump() {
	if c.crouching {
		return
	}

	if c.jumps > 0 {
		first := c.jumps == c.cfg.MaxJumps && c.onGround
		kind := AirJump
		stretch := 1.1
		c.VY = c.cfg.DoubleJumpStrength
		if first {
			kind = GroundJump
			stretch = 1.0
			c.VY = c.cfg.JumpStrength
		}
		c.onGround = false
		c.jumps--
		c.visual.apply(Stretching, stretchDuration*stretch)
		c.emit(Jumped{X: c.CenterX(), Y: c.Y + c.height, Kind: kind})
		return
	}

	if c.shield > 0 && !c.onGround {
		c.popShield()
		c.VY = c.cfg.ShieldJumpStrength
		c.onGround = false
		c.visual.apply(Stretching, stretchDuration*1.15)
		c.emit(Jumped{X: c.CenterX(), Y: c.Y + c.height, Kind: ShieldJump})
	}
}

// SetCrouching enters or leaves the crouch. Standing up is refused while a
// blocking platform of chunk overlaps the standing box.
func (c *Controller) SetCrouching(crouch bool, chunk *world.Chunk) {
	if c.crouching == crouch {
		return
	}
	delta := c.cfg.Height - c.cfg.CrouchHeight

	if crouch {
		if c.onGround {
			c.Y += delta
		}
		c.height = c.cfg.CrouchHeight
		c.crouching = true
		c.visual.apply(CrouchSquash, 0)
		return
	}

	standing := core.Box{X: c.X, Y: c.Y - delta, W: c.cfg.Width, H: c.cfg.Height}
	if chunk != nil {
		for i := range chunk.Platforms {
			p := &chunk.Platforms[i]
			if p.Kind.Blocks() && standing.Overlaps(p.Box(chunk.StartX)) {
				return
			}
		}
	}

	c.Y = standing.Y
	c.height = c.cfg.Height
	c.crouching = false
	c.visual.State = Normal
}

// TakeHit spends a shield layer if there is one. It reports whether the hit is fatal.
func (c *Controller) TakeHit() bool {
	if c.shield > 0 {
		c.popShield()
		c.emit(Hurt{Fatal: false})
		return false
	}
	c.emit(Hurt{Fatal: true})
	return true
}

// AddShield adds one shield layer up to the maximum.
func (c *Controller) AddShield() {
	if c.shield < c.cfg.MaxShield {
		c.shield++
	}
}

func (c *Controller) popShield() {
	layer := c.shield
	c.shield--
	c.emit(ShieldSpent{X: c.CenterX(), Y: c.Y + c.height/2, Layer: layer})
}

// LandingTone maps a landing to a chord tone: higher platforms sound
// higher and wider platforms ring longer.
func LandingTone(top, width, viewportH float64) (freq float64, durationMs int) {
	const (
		minFreq     = 110.0
		maxFreq     = 880.0
		minWidth    = 20.0
		maxWidth    = 500.0
		minDuration = 900.0
		maxDuration = 2500.0
	)
	if viewportH <= 0 {
		viewportH = 550
	}
	freq = core.ClampF(maxFreq-(top/viewportH)*(maxFreq-minFreq), minFreq, maxFreq)
	norm := core.ClampF((width-minWidth)/(maxWidth-minWidth), 0, 1)
	return freq, int(minDuration + norm*(maxDuration-minDuration))
}
