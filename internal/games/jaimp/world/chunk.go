package world

// Chunk is one generated stretch of level. Its contents are immutable
// apart from power-up collected flags.
type Chunk struct {
	Index     int     // sequence number since the session started
	StartX    float64 // absolute world offset
	Width     float64
	Platforms []Platform
	PowerUps  []PowerUp
}

// End returns the world x where the chunk stops.
func (c *Chunk) End() float64 {
	return c.StartX + c.Width
}

// Contains reports whether world x falls inside [StartX, End).
func (c *Chunk) Contains(x float64) bool {
	return x >= c.StartX && x < c.End()
}

// ActivePowerUps returns pointers to the power-ups not yet collected.
func (c *Chunk) ActivePowerUps() []*PowerUp {
	var out []*PowerUp
	for i := range c.PowerUps {
		if !c.PowerUps[i].Collected() {
			out = append(out, &c.PowerUps[i])
		}
	}
	return out
}
