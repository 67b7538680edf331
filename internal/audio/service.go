package audio

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/jaimp/internal/config"
	"github.com/vovakirdan/jaimp/internal/core"
)

// Service implements core.AudioSink on a bounded worker pool.
// Requests beyond the pool size are dropped.
type Service struct {
	cfg    config.AudioConfig
	rate   beep.SampleRate
	out    Output
	logger *log.Logger

	group  *errgroup.Group
	ctx    context.Context
	cancel context.CancelFunc

	rngMu sync.Mutex
	rng   *rand.Rand

	silent  atomic.Bool
	closed  atomic.Bool
	played  atomic.Int64
	dropped atomic.Int64
}

// New creates a service playing through the speaker. A disabled config or
// a speaker that fails to initialize yields a silent service.
func New(cfg config.AudioConfig, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if !cfg.Enabled {
		s := NewWithOutput(cfg, nil, logger)
		s.silent.Store(true)
		return s
	}

	out, err := NewSpeaker(beep.SampleRate(cfg.SampleRate))
	if err != nil {
		logger.Warn("audio disabled", "err", err)
		s := NewWithOutput(cfg, nil, logger)
		s.silent.Store(true)
		return s
	}
	return NewWithOutput(cfg, out, logger)
}

// NewWithOutput creates a service playing through out. A nil out is silent.
func NewWithOutput(cfg config.AudioConfig, out Output, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 44100
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	g := new(errgroup.Group)
	g.SetLimit(workers)

	s := &Service{
		cfg:    cfg,
		rate:   beep.SampleRate(cfg.SampleRate),
		out:    out,
		logger: logger,
		group:  g,
		ctx:    ctx,
		cancel: cancel,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	s.silent.Store(out == nil)
	return s
}

// Silent reports whether requests are discarded.
func (s *Service) Silent() bool { return s.silent.Load() }

// Played returns the number of sounds that finished playing.
func (s *Service) Played() int64 { return s.played.Load() }

// Dropped returns the number of requests refused by a saturated pool.
func (s *Service) Dropped() int64 { return s.dropped.Load() }

// PlayTone plays the landing chord selected by freq.
func (s *Service) PlayTone(freq float64, durationMs int) {
	s.submit("tone", func(*rand.Rand) beep.Streamer {
		return Tone(freq, durationMs, s.rate)
	})
}

// Play plays a one-shot effect.
func (s *Service) Play(sound core.Sound) {
	s.submit(sound.String(), func(rng *rand.Rand) beep.Streamer {
		return Effect(sound, s.rate, rng)
	})
}

func (s *Service) submit(name string, build func(*rand.Rand) beep.Streamer) {
	if s.silent.Load() || s.closed.Load() {
		return
	}

	s.rngMu.Lock()
	rng := rand.New(rand.NewSource(s.rng.Int63()))
	s.rngMu.Unlock()

	ok := s.group.TryGo(func() error {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Warn("sound failed", "sound", name, "panic", r)
			}
		}()

		st := build(rng)
		if st == nil {
			return nil
		}
		done := make(chan struct{})
		s.out.Play(beep.Seq(withVolume(st, s.cfg.Volume), beep.Callback(func() {
			close(done)
		})))

		select {
		case <-done:
			s.played.Add(1)
		case <-s.ctx.Done():
		}
		return nil
	})
	if !ok {
		s.dropped.Add(1)
		s.logger.Debug("audio pool saturated", "sound", name)
	}
}

// Shutdown stops accepting requests and waits for playing sounds until ctx
// expires. The output is cleared either way.
func (s *Service) Shutdown(ctx context.Context) error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	drained := make(chan struct{})
	go func() {
		_ = s.group.Wait()
		close(drained)
	}()

	var err error
	select {
	case <-drained:
	case <-ctx.Done():
		err = fmt.Errorf("audio: cannot drain playback: %w", ctx.Err())
	}

	s.cancel()
	if s.out != nil {
		s.out.Clear()
	}
	return err
}

// ShutdownTimeout is the configured drain budget.
func (s *Service) ShutdownTimeout() time.Duration {
	if s.cfg.ShutdownTimeoutMs <= 0 {
		return time.Second
	}
	return time.Duration(s.cfg.ShutdownTimeoutMs) * time.Millisecond
}

var _ core.AudioSink = (*Service)(nil)
