package stream

import (
	"bytes"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/jaimp/internal/config"
	"github.com/vovakirdan/jaimp/internal/games/jaimp/levelgen"
)

const viewportW = 900.0

func newTestManager(seed int64) *Manager {
	cfg := config.DefaultJaimpConfig()
	return New(seed, levelgen.NewParams(cfg), cfg.Streaming, nil)
}

func TestPrime(t *testing.T) {
	m := newTestManager(1)
	m.Prime()

	chunks := m.Chunks()
	if len(chunks) != 3 {
		t.Fatalf("Prime() generated %d chunks, expected 3", len(chunks))
	}
	for i, c := range chunks {
		if c.Index != i || c.StartX != float64(i)*3600 || c.Width != 3600 {
			t.Errorf("chunk %d = index %d start %v width %v", i, c.Index, c.StartX, c.Width)
		}
	}
	if m.GeneratedEnd() != 3*3600 {
		t.Errorf("GeneratedEnd() = %v, expected %v", m.GeneratedEnd(), 3*3600)
	}
	if m.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d before Locate, expected -1", m.CurrentIndex())
	}
}

func TestEmptyWindow(t *testing.T) {
	m := newTestManager(1)

	if m.Current() != nil {
		t.Error("Current() on an empty window should be nil")
	}
	if got := m.Locate(100); got != -1 {
		t.Errorf("Locate() on an empty window = %d, expected -1", got)
	}
	if m.EvictTrailing() != 0 {
		t.Error("EvictTrailing() on an empty window should do nothing")
	}
}

func TestEnsureCoverage(t *testing.T) {
	m := newTestManager(2)
	m.Prime()

	// Lookahead edge = camera + 2 viewports
	if m.EnsureCoverage(10800-1800, viewportW) {
		t.Error("lookahead exactly at the generated end should not generate")
	}
	if !m.EnsureCoverage(10800-1800+1, viewportW) {
		t.Fatal("lookahead past the generated end should generate")
	}
	if m.GeneratedEnd() != 4*3600 {
		t.Errorf("GeneratedEnd() = %v, expected %v", m.GeneratedEnd(), 4*3600)
	}

	// Only one chunk per call
	if !m.EnsureCoverage(1e6, viewportW) {
		t.Fatal("second call should add the fifth chunk")
	}
	if m.EnsureCoverage(1e6, viewportW) {
		t.Error("full buffer should block generation")
	}
	if len(m.Chunks()) != 5 {
		t.Errorf("window size = %d, expected buffer cap 5", len(m.Chunks()))
	}
}

func TestLocate(t *testing.T) {
	m := newTestManager(3)
	m.Prime()

	tests := []struct {
		name     string
		x        float64
		expected int
	}{
		{"first chunk", 65, 0},
		{"boundary belongs to the next chunk", 3600, 1},
		{"just before boundary", 3599.99, 0},
		{"last chunk", 9000, 2},
		{"past the trailing edge", 20000, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := m.Locate(tc.x); got != tc.expected {
				t.Errorf("Locate(%v) = %d, expected %d", tc.x, got, tc.expected)
			}
		})
	}

	m.Locate(4000)
	if got := m.Locate(-50); got != 1 {
		t.Errorf("Locate() before the window = %d, expected previous index 1", got)
	}
	if m.Current() != m.Chunks()[1] {
		t.Error("Current() should follow the located index")
	}
}

func TestTrackProgress(t *testing.T) {
	m := newTestManager(4)
	m.Prime()

	if m.TrackProgress(3599) {
		t.Error("progress counted before the chunk end")
	}
	if !m.TrackProgress(3600) || m.Completed() != 1 {
		t.Errorf("Completed() = %d after the first boundary, expected 1", m.Completed())
	}
	m.TrackProgress(3 * 3600)
	if m.Completed() != 2 {
		t.Errorf("Completed() = %d, expected one increment per call", m.Completed())
	}
}

// walk drives the manager the way the session does each tick.
func walk(m *Manager, x float64) {
	m.Locate(x)
	m.TrackProgress(x)
	camera := math.Max(0, x-viewportW/3.2)
	m.EnsureCoverage(camera, viewportW)
	m.EvictTrailing()
}

func TestWindowInvariantsWhileWalking(t *testing.T) {
	m := newTestManager(5)
	m.Prime()

	for x := 65.0; x < 40*3600; x += 37 {
		walk(m, x)
		chunks := m.Chunks()

		if len(chunks) > 5 {
			t.Fatalf("x=%v: window size %d exceeds the buffer", x, len(chunks))
		}

		containing := 0
		for i, c := range chunks {
			if c.Contains(x) {
				containing++
			}
			if i > 0 && c.StartX != chunks[i-1].End() {
				t.Fatalf("x=%v: chunk %d is not contiguous", x, i)
			}
		}
		if containing != 1 {
			t.Fatalf("x=%v: %d chunks contain the player, expected 1", x, containing)
		}
		if !m.Current().Contains(x) {
			t.Fatalf("x=%v: current chunk %d does not contain the player", x, m.Current().Index)
		}
		if m.CurrentIndex() > 1 && len(chunks) > 4 {
			t.Fatalf("x=%v: eviction left %d trailing chunks in a window of %d", x, m.CurrentIndex(), len(chunks))
		}
		if m.GeneratedEnd() != chunks[len(chunks)-1].End() {
			t.Fatalf("x=%v: generated end %v does not match last chunk end", x, m.GeneratedEnd())
		}
		if lookahead := math.Max(0, x-viewportW/3.2) + 2*viewportW; lookahead > m.GeneratedEnd()+3600 {
			t.Fatalf("x=%v: generation fell behind the lookahead", x)
		}
	}

	if m.Completed() != 39 {
		t.Errorf("Completed() = %d, expected 39", m.Completed())
	}
}

func TestResetReplaysSameChunks(t *testing.T) {
	m := newTestManager(6)
	m.Prime()
	first := m.Chunks()[2].Platforms

	for x := 65.0; x < 5*3600; x += 50 {
		walk(m, x)
	}

	m.Prime()
	if !reflect.DeepEqual(m.Chunks()[2].Platforms, first) {
		t.Error("Prime() after play should regenerate the same chunks")
	}
	if m.Completed() != 0 || m.CurrentIndex() != -1 {
		t.Error("Prime() should reset progress and the current index")
	}
}

func TestManagerLogsLifecycle(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	cfg := config.DefaultJaimpConfig()
	m := New(7, levelgen.NewParams(cfg), cfg.Streaming, logger)
	m.Prime()
	for x := 65.0; x < 4*3600; x += 50 {
		walk(m, x)
	}

	out := buf.String()
	if !strings.Contains(out, "chunk generated") {
		t.Error("expected a debug line for generation")
	}
	if !strings.Contains(out, "chunk evicted") {
		t.Error("expected a debug line for eviction")
	}
}
