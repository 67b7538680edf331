package world

import (
	"testing"

	"github.com/vovakirdan/jaimp/internal/core"
)

func TestPlatformKindBlocks(t *testing.T) {
	tests := []struct {
		kind     PlatformKind
		expected bool
	}{
		{Solid, true},
		{Bounce, true},
		{Goal, true},
		{Hazard, false},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			if got := tc.kind.Blocks(); got != tc.expected {
				t.Errorf("%v.Blocks() = %v, expected %v", tc.kind, got, tc.expected)
			}
		})
	}
}

func TestPlatformBox(t *testing.T) {
	p := Platform{X: 10, Y: 400, W: 90, H: 20, Kind: Solid}
	got := p.Box(3600)
	want := core.Box{X: 3610, Y: 400, W: 90, H: 20}
	if got != want {
		t.Errorf("Box() = %+v, expected %+v", got, want)
	}
}

func TestPowerUpCollectOnce(t *testing.T) {
	p := NewPowerUp(5, 100, 25, Shield)

	if p.Collected() {
		t.Fatal("new power-up should not be collected")
	}
	if !p.Collect() {
		t.Error("first Collect() should report a transition")
	}
	if p.Collect() {
		t.Error("second Collect() should be a no-op")
	}
	if !p.Collected() {
		t.Error("collected flag should never revert")
	}
}

func TestChunkContains(t *testing.T) {
	c := &Chunk{StartX: 3600, Width: 3600}

	tests := []struct {
		x        float64
		expected bool
	}{
		{3599.9, false},
		{3600, true},
		{5000, true},
		{7200, false},
	}

	for _, tc := range tests {
		if got := c.Contains(tc.x); got != tc.expected {
			t.Errorf("Contains(%v) = %v, expected %v", tc.x, got, tc.expected)
		}
	}
	if c.End() != 7200 {
		t.Errorf("End() = %v, expected 7200", c.End())
	}
}

func TestChunkActivePowerUps(t *testing.T) {
	c := &Chunk{PowerUps: []PowerUp{
		NewPowerUp(0, 0, 25, Shield),
		NewPowerUp(100, 0, 25, Shield),
	}}

	c.ActivePowerUps()[0].Collect()

	active := c.ActivePowerUps()
	if len(active) != 1 || active[0].X != 100 {
		t.Errorf("ActivePowerUps() = %v, expected only the second power-up", active)
	}
	if !c.PowerUps[0].Collected() {
		t.Error("collecting through the pointer should mark the chunk's power-up")
	}
}

func TestFireballCollides(t *testing.T) {
	player := core.Box{X: 100, Y: 100, W: 30, H: 45}

	tests := []struct {
		name     string
		ball     Fireball
		expected bool
	}{
		{"overlapping centre", Fireball{X: 115, Y: 120, Radius: 10}, true},
		{"touching from the left", Fireball{X: 95, Y: 120, Radius: 10}, true},
		{"11 units beyond the right edge", Fireball{X: 141, Y: 120, Radius: 10}, false},
		{"exactly radius away", Fireball{X: 140, Y: 120, Radius: 10}, false},
		{"near corner", Fireball{X: 135, Y: 150, Radius: 10}, true},
		{"far corner", Fireball{X: 138, Y: 153, Radius: 10}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.ball.Collides(player); got != tc.expected {
				t.Errorf("Collides() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestFireballUpdateAndBehind(t *testing.T) {
	f := Fireball{X: 500, Y: 100, Radius: 10, Speed: 200}

	f.Update(0.5)
	if f.X != 400 {
		t.Errorf("X after update = %v, expected 400", f.X)
	}
	if f.Behind(410) {
		t.Error("fireball touching the limit should not be behind")
	}
	if !f.Behind(411) {
		t.Error("fireball fully left of the limit should be behind")
	}
}
