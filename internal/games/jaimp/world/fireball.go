package world

import "github.com/vovakirdan/jaimp/internal/core"

// Fireball is a circular hazard flying leftwards at a constant speed.
type Fireball struct {
	X, Y   float64 // world centre
	Radius float64
	Speed  float64 // units/s, positive means leftwards
}

// Update moves the fireball by dt seconds.
func (f *Fireball) Update(dt float64) {
	f.X -= f.Speed * dt
}

// Collides reports whether the circle strictly intersects the box.
func (f *Fireball) Collides(b core.Box) bool {
	cx, cy := b.ClosestPoint(f.X, f.Y)
	dx := f.X - cx
	dy := f.Y - cy
	return dx*dx+dy*dy < f.Radius*f.Radius
}

// Behind reports whether the fireball is entirely left of limitX.
func (f *Fireball) Behind(limitX float64) bool {
	return f.X+f.Radius < limitX
}
