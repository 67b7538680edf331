package player

import "math/rand"

// VisualState is the cosmetic body deformation.
type VisualState int

const (
	Normal VisualState = iota
	Squashing
	Stretching
	CrouchSquash
)

// Facing is the cosmetic look direction.
type Facing int

const (
	FacingFront Facing = iota
	FacingLeft
	FacingRight
)

const (
	squashDuration   = 0.12
	stretchDuration  = 0.15
	crouchSquash     = 0.60
	sideSquish       = 0.80
	blinkDuration    = 0.15
	minBlinkInterval = 1.5
	maxBlinkInterval = 5.0
	facingThreshold  = 0.1
)

type eye struct {
	blinking bool
	timer    float64
	next     float64
	scale    float64
}

// Visual holds the cosmetic state. It never affects gameplay and draws
// randomness from its own source.
type Visual struct {
	State  VisualState
	Facing Facing
	W, H   float64

	timer float64
	baseW float64
	baseH float64
	eyes  [2]eye
	rng   *rand.Rand
}

func newVisual(baseW, baseH float64, rng *rand.Rand) Visual {
	v := Visual{baseW: baseW, baseH: baseH, rng: rng}
	v.reset()
	return v
}

func (v *Visual) reset() {
	v.State = Normal
	v.Facing = FacingFront
	v.W, v.H = v.baseW, v.baseH
	v.timer = 0
	for i := range v.eyes {
		v.eyes[i] = eye{next: v.blinkInterval(), scale: 1}
	}
}

func (v *Visual) blinkInterval() float64 {
	return minBlinkInterval + v.rng.Float64()*(maxBlinkInterval-minBlinkInterval)
}

// EyeScale returns the vertical eye opening, 1 open and 0.1 shut.
func (v *Visual) EyeScale(i int) float64 {
	return v.eyes[i].scale
}

func (v *Visual) apply(s VisualState, duration float64) {
	v.State = s
	v.timer = duration
	switch s {
	case Squashing:
		v.W, v.H = v.baseW*1.30, v.baseH*0.70
	case Stretching:
		v.W, v.H = v.baseW*0.75, v.baseH*1.25
	case CrouchSquash:
		v.W, v.H = v.baseW*(1+(1-crouchSquash)*0.5), v.baseH*crouchSquash
		v.timer = 0
	}
}

func (v *Visual) update(dt, vx float64) {
	switch {
	case vx > facingThreshold:
		v.Facing = FacingRight
	case vx < -facingThreshold:
		v.Facing = FacingLeft
	default:
		v.Facing = FacingFront
	}

	if v.State != CrouchSquash && v.timer > 0 {
		v.timer -= dt
		if v.timer <= 0 {
			v.State = Normal
			v.timer = 0
		}
	}

	switch v.State {
	case Normal:
		v.W, v.H = v.baseW, v.baseH
		if v.Facing != FacingFront {
			v.W = v.baseW * sideSquish
		}
	case CrouchSquash:
		v.W, v.H = v.baseW*(1+(1-crouchSquash)*0.5), v.baseH*crouchSquash
	}

	for i := range v.eyes {
		v.blink(&v.eyes[i], dt)
	}
}

func (v *Visual) blink(e *eye, dt float64) {
	if !e.blinking {
		e.next -= dt
		if e.next <= 0 {
			e.blinking = true
			e.timer = blinkDuration
		}
		return
	}

	e.timer -= dt
	if e.timer <= 0 {
		e.blinking = false
		e.scale = 1
		e.next = v.blinkInterval()
		return
	}

	progress := 1 - e.timer/blinkDuration
	if progress < 0.5 {
		e.scale = 1 - (progress/0.5)*0.9
	} else {
		e.scale = 0.1 + ((progress-0.5)/0.5)*0.9
	}
	if e.scale < 0.1 {
		e.scale = 0.1
	}
}
