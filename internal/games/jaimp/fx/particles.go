// Package fx implements short-lived particle bursts.
package fx

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/jaimp/internal/core"
)

// Kind selects a particle's motion and size curve.
type Kind int

const (
	ShieldPop Kind = iota
	JumpLand
	FireballHit
)

// Particle is a square that drifts, falls and fades until its life runs out.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Color  core.Color
	Kind   Kind

	life        float64
	initialLife float64
	size        float64
	initialSize float64
	peakSize    float64
}

// Size returns the current edge length.
func (p *Particle) Size() float64 { return p.size }

// Alive reports whether the particle still has life left.
func (p *Particle) Alive() bool { return p.life > 0 }

// Alpha returns the opacity for the remaining life.
func (p *Particle) Alpha() uint8 {
	ratio := p.life / p.initialLife
	peak := 255.0
	if p.Kind == JumpLand {
		peak = 150
	}
	return uint8(core.ClampF(peak*ratio, 0, 255))
}

func (p *Particle) update(dt float64) bool {
	p.X += p.VX * dt
	p.Y += p.VY * dt
	p.life -= dt
	progress := 1 - p.life/p.initialLife

	switch p.Kind {
	case ShieldPop:
		if progress < 0.2 {
			p.size = p.initialSize + (p.peakSize-p.initialSize)*(progress/0.2)
		} else {
			p.size = p.peakSize * (1 - (progress-0.2)/0.8)
		}
		p.VY += 180 * dt
	case JumpLand:
		p.size = p.initialSize * (1 - math.Pow(core.ClampF(progress, 0, 1), 0.7))
		p.VY += 280 * dt
		p.VX *= 1 - 0.3*dt
	case FireballHit:
		if progress < 0.3 {
			p.size = p.initialSize + (p.peakSize-p.initialSize)*(progress/0.3)
		} else {
			p.size = p.peakSize * (1 - (progress-0.3)/0.7)
		}
		p.VY += 120 * dt
	}

	p.size = math.Max(0, p.size)
	return p.life > 0
}

// System owns all live particles.
type System struct {
	rng       *rand.Rand
	particles []Particle
}

// NewSystem creates an empty system drawing randomness from rng.
func NewSystem(rng *rand.Rand) *System {
	return &System{rng: rng}
}

// Len returns the number of live particles.
func (s *System) Len() int { return len(s.particles) }

// Particles returns the live particles. The slice must not be modified.
func (s *System) Particles() []Particle { return s.particles }

// Reset removes every particle.
func (s *System) Reset() {
	s.particles = s.particles[:0]
}

// Update advances every particle and drops the expired ones.
func (s *System) Update(dt float64) {
	live := s.particles[:0]
	for i := range s.particles {
		p := s.particles[i]
		if p.update(dt) {
			live = append(live, p)
		}
	}
	s.particles = live
}

// SpawnShieldPop bursts 20-34 particles tinted from the popped layer's colour.
func (s *System) SpawnShieldPop(x, y float64, base core.Color) {
	n := 20 + s.rng.Intn(15)
	for i := 0; i < n; i++ {
		c := core.RGB(
			core.ClampChannel(int(base.R)+s.rng.Intn(40)-20),
			core.ClampChannel(int(base.G)+s.rng.Intn(40)-20),
			core.ClampChannel(int(base.B)-s.rng.Intn(50)-20),
		)
		life := 0.4 + s.rng.Float64()*0.35
		size := 3 + s.rng.Float64()*3
		p := Particle{
			X: x, Y: y, Color: c, Kind: ShieldPop,
			life: life, initialLife: life,
			size: size, initialSize: size,
			peakSize: size * (2 + s.rng.Float64()),
		}
		s.radial(&p, 110, 70)
		s.particles = append(s.particles, p)
	}
}

// SpawnJumpLand puffs 7-11 grey particles upwards from the feet.
func (s *System) SpawnJumpLand(x, bottomY float64) {
	const spread = math.Pi / 1.8
	n := 7 + s.rng.Intn(5)
	for i := 0; i < n; i++ {
		grey := uint8(180 + s.rng.Intn(40))
		angle := -math.Pi/2 - spread/2 + s.rng.Float64()*spread
		speed := 25 + s.rng.Float64()*25
		life := 0.35 + s.rng.Float64()*0.25
		size := 6 + s.rng.Float64()*4
		s.particles = append(s.particles, Particle{
			X: x, Y: bottomY - 5,
			VX: math.Cos(angle) * speed, VY: math.Sin(angle) * speed,
			Color: core.RGBA(grey, grey, grey, 180), Kind: JumpLand,
			life: life, initialLife: life,
			size: size, initialSize: size,
		})
	}
}

// SpawnFireballHit bursts 15-24 orange particles.
func (s *System) SpawnFireballHit(x, y float64) {
	n := 15 + s.rng.Intn(10)
	for i := 0; i < n; i++ {
		c := core.RGB(uint8(220+s.rng.Intn(36)), uint8(80+s.rng.Intn(100)), 0)
		life := 0.45 + s.rng.Float64()*0.35
		size := 8 + s.rng.Float64()*6
		p := Particle{
			X: x, Y: y, Color: c, Kind: FireballHit,
			life: life, initialLife: life,
			size: size, initialSize: size,
			peakSize: size * 1.8,
		}
		s.radial(&p, 90, 70)
		s.particles = append(s.particles, p)
	}
}

// radial gives p a uniformly random direction and a speed in [base, base+variation).
func (s *System) radial(p *Particle, base, variation float64) {
	angle := s.rng.Float64() * 2 * math.Pi
	speed := base + s.rng.Float64()*variation
	p.VX = math.Cos(angle) * speed
	p.VY = math.Sin(angle) * speed
}

// Render draws every visible particle shifted by cameraX.
func (s *System) Render(dst core.Canvas, cameraX float64) {
	for i := range s.particles {
		p := &s.particles[i]
		if !p.Alive() || p.size <= 0 {
			continue
		}
		dst.SetColor(p.Color.WithAlpha(p.Alpha()))
		dst.FillRect(p.X-p.size/2-cameraX, p.Y-p.size/2, p.size, p.size)
	}
}
