// Package stream keeps a sliding window of generated chunks around the
// player: new chunks are generated ahead of the camera and old ones are
// evicted from behind.
package stream

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/jaimp/internal/config"
	"github.com/vovakirdan/jaimp/internal/games/jaimp/levelgen"
	"github.com/vovakirdan/jaimp/internal/games/jaimp/world"
)

// Manager owns the active chunk window. The front of the window is the oldest chunk.
type Manager struct {
	params levelgen.Params
	window config.StreamingConfig
	seed   int64
	rng    *rand.Rand
	logger *log.Logger

	chunks       []*world.Chunk
	current      int // -1 when unknown
	generatedEnd float64
	completed    int
	nextIndex    int
}

// New creates an empty manager. Chunks are generated from a stream seeded with seed.
func New(seed int64, params levelgen.Params, window config.StreamingConfig, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := &Manager{
		params: params,
		window: window,
		seed:   seed,
		logger: logger,
	}
	m.Reset()
	return m
}

// Reset empties the window and rewinds the generator to the seed.
func (m *Manager) Reset() {
	m.rng = rand.New(rand.NewSource(m.seed))
	m.chunks = nil
	m.current = -1
	m.generatedEnd = 0
	m.completed = 0
	m.nextIndex = 0
}

// Prime resets and generates the initial 1 + ahead chunks.
func (m *Manager) Prime() {
	m.Reset()
	for i := 0; i < 1+m.window.Ahead; i++ {
		m.generate()
	}
}

// EnsureCoverage generates one chunk when the lookahead edge passes the
// generated end and the buffer has room. It reports whether a chunk was added.
func (m *Manager) EnsureCoverage(cameraX, viewportW float64) bool {
	lookahead := cameraX + viewportW + viewportW*float64(m.window.Ahead-1)
	if lookahead <= m.generatedEnd || len(m.chunks) >= m.window.Buffer {
		return false
	}
	m.generate()
	return true
}

// EvictTrailing drops chunks from the front while the window is over
// target and more than behind chunks trail the player. It returns the
// number of chunks evicted.
func (m *Manager) EvictTrailing() int {
	evicted := 0
	for len(m.chunks) > m.window.Target && m.current > m.window.Behind {
		dropped := m.chunks[0]
		m.chunks[0] = nil
		m.chunks = m.chunks[1:]
		m.current--
		evicted++

		m.logger.Debug("chunk evicted",
			"index", dropped.Index,
			"start", dropped.StartX,
			"window", len(m.chunks),
		)
	}
	return evicted
}

// Locate updates the current chunk from the player's centre x and returns its
// window index. A centre past the trailing edge selects the last chunk;
// a centre before the window keeps the previous index.
func (m *Manager) Locate(centerX float64) int {
	if len(m.chunks) == 0 {
		m.current = -1
		return m.current
	}
	for i, c := range m.chunks {
		if c.Contains(centerX) {
			m.current = i
			return m.current
		}
	}
	if last := m.chunks[len(m.chunks)-1]; centerX >= last.End() {
		m.current = len(m.chunks) - 1
	}
	return m.current
}

// Current returns the player's chunk, falling back to the last chunk when the
// index is out of range. It returns nil on an empty window.
func (m *Manager) Current() *world.Chunk {
	if len(m.chunks) == 0 {
		return nil
	}
	if m.current < 0 || m.current >= len(m.chunks) {
		return m.chunks[len(m.chunks)-1]
	}
	return m.chunks[m.current]
}

// TrackProgress counts a chunk as completed once playerX reaches its end.
// At most one chunk is counted per call.
func (m *Manager) TrackProgress(playerX float64) bool {
	if playerX >= float64(m.completed+1)*m.params.ChunkLength {
		m.completed++
		return true
	}
	return false
}

// Chunks returns the window, oldest first. The slice must not be modified.
func (m *Manager) Chunks() []*world.Chunk { return m.chunks }

// CurrentIndex returns the window index of the player's chunk, or -1.
func (m *Manager) CurrentIndex() int { return m.current }

// GeneratedEnd returns the world x where generated terrain stops.
func (m *Manager) GeneratedEnd() float64 { return m.generatedEnd }

// Completed returns the number of chunks the player has passed.
func (m *Manager) Completed() int { return m.completed }

// ChunkLength returns the length of every chunk.
func (m *Manager) ChunkLength() float64 { return m.params.ChunkLength }

func (m *Manager) generate() {
	data := levelgen.Generate(m.rng, m.params)
	c := &world.Chunk{
		Index:     m.nextIndex,
		StartX:    m.generatedEnd,
		Width:     m.params.ChunkLength,
		Platforms: data.Platforms,
		PowerUps:  data.PowerUps,
	}
	m.chunks = append(m.chunks, c)
	m.generatedEnd += m.params.ChunkLength
	m.nextIndex++

	m.logger.Debug("chunk generated",
		"index", c.Index,
		"start", c.StartX,
		"platforms", len(c.Platforms),
		"powerups", len(c.PowerUps),
		"features", data.Features,
		"window", len(m.chunks),
	)
}
