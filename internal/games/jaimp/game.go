// Package jaimp implements the endless side-scrolling platformer session:
// the title, playing and game-over screens, fireballs, the follow camera
// and the glue between the chunk stream, the player and the effects.
package jaimp

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/jaimp/internal/config"
	"github.com/vovakirdan/jaimp/internal/core"
	"github.com/vovakirdan/jaimp/internal/games/jaimp/fx"
	"github.com/vovakirdan/jaimp/internal/games/jaimp/levelgen"
	"github.com/vovakirdan/jaimp/internal/games/jaimp/player"
	"github.com/vovakirdan/jaimp/internal/games/jaimp/stream"
	"github.com/vovakirdan/jaimp/internal/games/jaimp/world"
	"github.com/vovakirdan/jaimp/internal/registry"
)

// Mode identifiers.
const (
	ModeClassic = "jaimp"
	ModeRush    = "jaimp_rush"
)

func init() {
	registry.Register(ModeClassic, "JAIMP", func(env registry.Env) registry.Game {
		return New(ModeClassic, "JAIMP", env)
	})
	registry.Register(ModeRush, "JAIMP Rush", func(env registry.Env) registry.Game {
		cfg := *env.Config
		cfg.Difficulty.Enabled = true
		env.Config = &cfg
		return New(ModeRush, "JAIMP Rush", env)
	})
}

// Phase is the screen the session is on.
type Phase int

const (
	PhaseTitle Phase = iota
	PhasePlaying
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseTitle:
		return "title"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Game is one play session. It is not safe for concurrent use.
type Game struct {
	id    string
	title string

	cfg        config.JaimpConfig
	params     levelgen.Params
	audio      core.AudioSink
	logger     *log.Logger
	difficulty *config.DifficultyManager
	runtime    core.RuntimeConfig

	rng       *rand.Rand // run seeds and fireballs
	cosmetic  *rand.Rand
	stream    *stream.Manager
	player    *player.Controller
	particles *fx.System
	fireballs []world.Fireball

	phase        Phase
	paused       bool
	cameraX      float64
	fireTimer    float64
	fireInterval float64
	jumpHeld     bool
	runSeed      int64
	runs         int
	ticks        int
	elapsed      float64
	runTime      float64
	cause        string
	best         int
}

// New creates a session for the resolved environment. Reset must be called
// before the first Update.
func New(id, title string, env registry.Env) *Game {
	env = env.Resolve()
	g := &Game{
		id:         id,
		title:      title,
		cfg:        *env.Config,
		params:     levelgen.NewParams(*env.Config),
		audio:      env.Audio,
		logger:     env.Logger,
		difficulty: config.NewDifficultyManager(env.Config.Difficulty),
	}
	g.Reset(core.DefaultConfig())
	return g
}

// ID returns the mode identifier.
func (g *Game) ID() string { return g.id }

// Title returns the display name.
func (g *Game) Title() string { return g.title }

// Reset returns to the title screen and reseeds every random source from cfg.Seed.
// The best run survives a reset.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.cosmetic = rand.New(rand.NewSource(cfg.Seed + 1))
	g.particles = fx.NewSystem(rand.New(rand.NewSource(cfg.Seed + 2)))
	g.player = player.New(g.cfg.Player, g.cfg.Physics, g.cosmetic)
	g.runSeed = cfg.Seed
	g.runs = 0
	g.stream = stream.New(g.runSeed, g.params, g.cfg.Streaming, g.logger)
	g.phase = PhaseTitle
	g.paused = false
	g.resetRun()
}

// resetRun puts the player on the spawn point and clears the camera,
// hazards and effects. The chunk window is left to the caller.
func (g *Game) resetRun() {
	g.player.Spawn(g.cfg.Player.SpawnX, g.spawnY())
	g.cameraX = 0
	g.fireballs = g.fireballs[:0]
	g.particles.Reset()
	g.fireTimer = 0
	g.fireInterval = g.nextFireInterval()
	g.jumpHeld = false
	g.ticks = 0
	g.runTime = 0
	g.cause = ""
}

func (g *Game) spawnY() float64 {
	return g.cfg.Viewport.Height - g.cfg.Player.SpawnFloorOffset - g.cfg.Player.Height
}

// start leaves the title screen with the window primed.
func (g *Game) start() {
	g.phase = PhasePlaying
	g.stream.Prime()
	g.logger.Info("run started", "mode", g.id, "seed", g.runSeed)
}

// respawn begins a new run on a freshly seeded level.
func (g *Game) respawn() {
	g.runs++
	g.runSeed = g.rng.Int63()
	g.stream = stream.New(g.runSeed, g.params, g.cfg.Streaming, g.logger)
	g.resetRun()
	g.start()
}

// Update advances the session by dt seconds.
func (g *Game) Update(in core.InputFrame, dt float64) core.StepResult {
	if g.phase == PhasePlaying && in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.elapsed += dt
	g.particles.Update(dt)
	g.updateFireballs(dt)

	switch g.phase {
	case PhaseTitle:
		if in.Has(core.ActionAnyKey) {
			g.start()
		}
		g.jumpHeld = in.Has(core.ActionJump)
	case PhaseGameOver:
		if in.Has(core.ActionAnyKey) {
			g.respawn()
			g.jumpHeld = in.Has(core.ActionJump)
			break
		}
		p := g.player
		p.Halt()
		p.VY += g.cfg.Physics.Gravity * dt
		p.Y += p.VY * dt
	case PhasePlaying:
		g.tick(in, dt)
	}

	return core.StepResult{State: g.State()}
}

// tick runs one PLAYING step.
func (g *Game) tick(in core.InputFrame, dt float64) {
	p := g.player
	w, h := g.cfg.Viewport.Width, g.cfg.Viewport.Height
	g.ticks++
	g.runTime += dt

	p.Move(in.Has(core.ActionLeft), in.Has(core.ActionRight))

	jump := in.Has(core.ActionJump)
	if jump && !g.jumpHeld {
		p.Jump()
	}
	g.jumpHeld = jump

	p.SetCrouching(in.Has(core.ActionCrouch), g.stream.Current())

	g.stream.Locate(p.CenterX())
	if g.stream.TrackProgress(p.X) {
		g.logger.Debug("chunk passed", "completed", g.stream.Completed())
	}
	g.stream.EnsureCoverage(g.cameraX, w)
	g.stream.EvictTrailing()

	chunk := g.stream.Current()
	p.Update(dt, chunk)
	g.handleEvents()

	if p.Y > h+3*p.Height() {
		g.die("fall")
	}

	if g.phase == PhasePlaying && chunk != nil {
		g.checkHazards(chunk)
	}
	if g.phase == PhasePlaying && chunk != nil {
		g.collectPowerUps(chunk)
	}

	if g.phase == PhasePlaying {
		g.spawnFireballs(dt)
		g.checkFireballs()
	}
	g.handleEvents()

	target := p.X - w/g.cfg.Camera.LeadDivisor
	g.cameraX += (target - g.cameraX) * g.cfg.Camera.Smoothing
	if g.cameraX < 0 {
		g.cameraX = 0
	}
}

// checkHazards hurts the player while touching a hazard. Contact at the
// hazard's top edge counts.
func (g *Game) checkHazards(chunk *world.Chunk) {
	b := g.player.Box()
	for i := range chunk.Platforms {
		pl := &chunk.Platforms[i]
		if pl.Kind != world.Hazard {
			continue
		}
		hb := pl.Box(chunk.StartX)
		if b.X < hb.Right() && b.Right() > hb.X && b.Y < hb.Bottom() && b.Bottom() >= hb.Y {
			if g.player.TakeHit() {
				g.die("hazard")
				return
			}
		}
	}
}

func (g *Game) collectPowerUps(chunk *world.Chunk) {
	b := g.player.Box()
	for _, pu := range chunk.ActivePowerUps() {
		if !b.Overlaps(pu.Box(chunk.StartX)) {
			continue
		}
		if pu.Collect() {
			g.player.AddShield()
			g.audio.Play(core.SoundShieldCollect)
		}
	}
}

// updateFireballs moves every fireball and drops those far behind the camera.
func (g *Game) updateFireballs(dt float64) {
	limit := g.cameraX - g.cfg.Fireballs.DespawnScreens*g.cfg.Viewport.Width
	live := g.fireballs[:0]
	for _, f := range g.fireballs {
		f.Update(dt)
		if !f.Behind(limit) {
			live = append(live, f)
		}
	}
	g.fireballs = live
}

func (g *Game) nextFireInterval() float64 {
	fc := g.cfg.Fireballs
	base := fc.MinInterval + g.rng.Float64()*fc.IntervalJitter
	return g.difficulty.Interval(base, g.stream.Completed(), g.ticks)
}

func (g *Game) spawnFireballs(dt float64) {
	fc := g.cfg.Fireballs
	if !fc.Enabled {
		return
	}
	g.fireTimer += dt
	if g.fireTimer < g.fireInterval {
		return
	}
	g.fireTimer = 0

	w, h := g.cfg.Viewport.Width, g.cfg.Viewport.Height
	y := h*0.1 + g.rng.Float64()*h*0.8
	speed := fc.MinSpeed + g.rng.Float64()*fc.SpeedJitter
	radius := fc.MinRadius + g.rng.Float64()*fc.RadiusJitter
	g.fireballs = append(g.fireballs, world.Fireball{
		X:      g.cameraX + w + radius + fc.SpawnMargin,
		Y:      y,
		Radius: radius,
		Speed:  g.difficulty.Speed(speed, g.stream.Completed(), g.ticks),
	})
	g.fireInterval = g.nextFireInterval()
}

// checkFireballs resolves fireball hits. A survived hit consumes the fireball.
func (g *Game) checkFireballs() {
	b := g.player.Box()
	live := g.fireballs[:0]
	for i, f := range g.fireballs {
		if !f.Collides(b) {
			live = append(live, f)
			continue
		}
		g.particles.SpawnFireballHit(b.CenterX(), b.CenterY())
		if g.player.TakeHit() {
			g.die("fireball")
			live = append(live, g.fireballs[i:]...)
			break
		}
	}
	g.fireballs = live
}

// die ends the run once.
func (g *Game) die(cause string) {
	if g.phase != PhasePlaying {
		return
	}
	g.phase = PhaseGameOver
	g.cause = cause
	g.player.Halt()
	g.audio.Play(core.SoundDeath)

	chunks := g.stream.Completed()
	if chunks > g.best {
		g.best = chunks
	}
	g.logger.Info("run over", "mode", g.id, "cause", cause, "chunks", chunks, "seed", g.runSeed)
}

// handleEvents turns player events into particles and sound.
func (g *Game) handleEvents() {
	for _, e := range g.player.Events() {
		switch ev := e.(type) {
		case player.Jumped:
			g.particles.SpawnJumpLand(ev.X, ev.Y)
			if ev.Kind == player.GroundJump {
				g.audio.Play(core.SoundGroundJump)
			} else {
				g.audio.Play(core.SoundMidAirJump)
			}
		case player.Bounced:
			g.particles.SpawnJumpLand(ev.X, ev.Y)
			if !ev.Hazard {
				g.audio.Play(core.SoundBoing)
			}
		case player.Landed:
			g.particles.SpawnJumpLand(ev.X, ev.Y)
			if ev.Kind == world.Solid {
				g.audio.PlayTone(player.LandingTone(ev.Top, ev.Width, g.cfg.Viewport.Height))
			} else {
				g.audio.Play(core.SoundGroundLanding)
			}
		case player.ShieldSpent:
			g.particles.SpawnShieldPop(ev.X, ev.Y, shieldColor(ev.Layer))
		case player.Hurt:
			g.audio.Play(core.SoundHit)
		}
	}
}

// State returns the session state. Score is the number of chunks passed.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.stream.Completed(),
		GameOver: g.phase == PhaseGameOver,
		Paused:   g.paused,
		Playing:  g.phase != PhaseTitle,
	}
}

// Phase returns the current screen.
func (g *Game) Phase() Phase { return g.phase }

// Best returns the most chunks passed in a single run.
func (g *Game) Best() int { return g.best }

// SetBest seeds the best run, typically from stored history.
func (g *Game) SetBest(n int) {
	if n > g.best {
		g.best = n
	}
}

// RunSeed returns the seed of the current run's level.
func (g *Game) RunSeed() int64 { return g.runSeed }

// Runs returns how many times the player has respawned since Reset.
func (g *Game) Runs() int { return g.runs }

// Cause names what ended the last run: fall, hazard or fireball.
// It is empty while a run is in progress.
func (g *Game) Cause() string { return g.cause }

// RunDuration returns the simulated time spent playing the current run.
func (g *Game) RunDuration() time.Duration {
	return time.Duration(g.runTime * float64(time.Second))
}

// CameraX returns the left edge of the view in world units.
func (g *Game) CameraX() float64 { return g.cameraX }

// Player exposes the player body.
func (g *Game) Player() *player.Controller { return g.player }

// Stream exposes the chunk window.
func (g *Game) Stream() *stream.Manager { return g.stream }

// Fireballs returns the live fireballs. The slice must not be modified.
func (g *Game) Fireballs() []world.Fireball { return g.fireballs }
