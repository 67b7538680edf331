package jaimp

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/jaimp/internal/config"
	"github.com/vovakirdan/jaimp/internal/core"
	"github.com/vovakirdan/jaimp/internal/games/jaimp/world"
	"github.com/vovakirdan/jaimp/internal/registry"
)

const dt = 1.0 / 60

type recordingAudio struct {
	sounds []core.Sound
	tones  []float64
}

func (a *recordingAudio) PlayTone(freq float64, _ int) { a.tones = append(a.tones, freq) }
func (a *recordingAudio) Play(s core.Sound)            { a.sounds = append(a.sounds, s) }

func (a *recordingAudio) count(s core.Sound) int {
	n := 0
	for _, got := range a.sounds {
		if got == s {
			n++
		}
	}
	return n
}

func newTestGame(t *testing.T, seed int64, mutate func(*config.JaimpConfig)) (*Game, *recordingAudio) {
	t.Helper()
	cfg := config.DefaultJaimpConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	audio := &recordingAudio{}
	g := New(ModeClassic, "JAIMP", registry.Env{Config: &cfg, Audio: audio})
	rc := core.DefaultConfig()
	rc.Seed = seed
	g.Reset(rc)
	return g, audio
}

func noFireballs(cfg *config.JaimpConfig) {
	cfg.Fireballs.Enabled = false
}

func idle() core.InputFrame { return core.NewInputFrame() }

func TestModesRegistered(t *testing.T) {
	for _, id := range []string{ModeClassic, ModeRush} {
		if !registry.Exists(id) {
			t.Errorf("mode %q not registered", id)
		}
	}

	g, err := registry.Create(ModeRush, registry.Env{})
	if err != nil {
		t.Fatalf("Create(%q) error: %v", ModeRush, err)
	}
	if !g.(*Game).difficulty.IsEnabled() {
		t.Error("rush mode should enable difficulty progression")
	}

	g, _ = registry.Create(ModeClassic, registry.Env{})
	if g.(*Game).difficulty.IsEnabled() {
		t.Error("classic mode should keep difficulty disabled by default")
	}
}

func TestTitleToPlaying(t *testing.T) {
	g, _ := newTestGame(t, 1, noFireballs)

	if g.Phase() != PhaseTitle || g.State().Playing {
		t.Fatalf("new session phase = %v, expected title", g.Phase())
	}

	g.Update(idle(), dt)
	if g.Phase() != PhaseTitle {
		t.Fatal("title should wait for a key")
	}
	if len(g.Stream().Chunks()) != 0 {
		t.Error("window should stay empty on the title screen")
	}

	res := g.Update(core.FrameOf(core.ActionAnyKey), dt)
	if g.Phase() != PhasePlaying || !res.State.Playing {
		t.Fatalf("phase after key = %v, expected playing", g.Phase())
	}
	if got := len(g.Stream().Chunks()); got != 1+config.DefaultJaimpConfig().Streaming.Ahead {
		t.Errorf("primed window has %d chunks, expected 3", got)
	}
}

func TestStartKeyDoesNotJump(t *testing.T) {
	g, _ := newTestGame(t, 1, noFireballs)

	g.Update(core.FrameOf(core.ActionAnyKey, core.ActionJump), dt)
	g.Update(core.FrameOf(core.ActionJump), dt)

	if got := g.Player().Jumps(); got != 2 {
		t.Errorf("jumps after holding the start key = %d, expected 2", got)
	}
}

func TestPlayerLandsOnFirstPlatform(t *testing.T) {
	g, audio := newTestGame(t, 7, noFireballs)
	g.Update(core.FrameOf(core.ActionAnyKey), dt)

	for i := 0; i < 60; i++ {
		g.Update(idle(), dt)
	}

	p := g.Player()
	if !p.OnGround() {
		t.Fatal("player should stand on the first platform after a second")
	}
	if p.Y != 465 {
		t.Errorf("player y = %v, expected 465 on the ground band", p.Y)
	}
	if len(audio.tones) != 1 {
		t.Errorf("landing tones = %d, expected 1", len(audio.tones))
	}
	if g.CameraX() != 0 {
		t.Errorf("camera = %v, expected clamped to 0 near the start", g.CameraX())
	}
}

func TestGroundJumpSound(t *testing.T) {
	g, audio := newTestGame(t, 7, noFireballs)
	g.Update(core.FrameOf(core.ActionAnyKey), dt)
	for i := 0; i < 60; i++ {
		g.Update(idle(), dt)
	}

	g.Update(core.FrameOf(core.ActionJump), dt)
	g.Update(core.FrameOf(core.ActionJump), dt)
	g.Update(idle(), dt)
	g.Update(core.FrameOf(core.ActionJump), dt)

	if audio.count(core.SoundGroundJump) != 1 {
		t.Errorf("ground jump sounds = %d, expected 1", audio.count(core.SoundGroundJump))
	}
	if audio.count(core.SoundMidAirJump) != 1 {
		t.Errorf("mid-air jump sounds = %d, expected 1", audio.count(core.SoundMidAirJump))
	}
	if g.Player().Jumps() != 0 {
		t.Errorf("jumps = %d, expected 0 after two presses", g.Player().Jumps())
	}
	if g.particles.Len() == 0 {
		t.Error("jumps should puff particles")
	}
}

func TestHeldJumpJumpsOnce(t *testing.T) {
	g, audio := newTestGame(t, 7, noFireballs)
	g.Update(core.FrameOf(core.ActionAnyKey), dt)
	for i := 0; i < 60; i++ {
		g.Update(idle(), dt)
	}
	p := g.Player()
	if !p.OnGround() || p.Jumps() != 2 {
		t.Fatalf("setup: on ground = %v, jumps = %d", p.OnGround(), p.Jumps())
	}
	// Nothing above the feet to land on mid-jump.
	chunk := g.Stream().Current()
	var below []world.Platform
	for _, pl := range chunk.Platforms {
		if pl.Y >= p.Y+p.Height() {
			below = append(below, pl)
		}
	}
	chunk.Platforms = below
	chunk.PowerUps = nil

	for i := 0; i < 25; i++ {
		g.Update(core.FrameOf(core.ActionJump), dt)
	}
	if p.Jumps() != 1 {
		t.Errorf("jumps after holding = %d, expected 1", p.Jumps())
	}

	g.Update(idle(), dt)
	for i := 0; i < 5; i++ {
		g.Update(core.FrameOf(core.ActionJump), dt)
	}
	if p.Jumps() != 0 {
		t.Errorf("jumps after pressing again = %d, expected 0", p.Jumps())
	}

	spent := audio.count(core.SoundGroundJump) + audio.count(core.SoundMidAirJump)
	if spent != 2 {
		t.Errorf("jump sounds = %d, expected 2", spent)
	}
}

func TestNoFireballAfterDeathTick(t *testing.T) {
	g, _ := newTestGame(t, 3, nil)
	g.Update(core.FrameOf(core.ActionAnyKey), dt)

	p := g.Player()
	p.Y = 550 + 3*p.Height() + 10
	g.fireTimer = g.fireInterval
	interval := g.fireInterval

	g.Update(idle(), dt)
	if g.Phase() != PhaseGameOver {
		t.Fatal("falling below the screen should end the run")
	}
	if n := len(g.Fireballs()); n != 0 {
		t.Errorf("fireballs after death = %d, expected 0", n)
	}
	if g.fireTimer != interval || g.fireInterval != interval {
		t.Errorf("timer %v / interval %v changed on the fatal tick", g.fireTimer, g.fireInterval)
	}

	for i := 0; i < 200; i++ {
		g.Update(idle(), dt)
	}
	if n := len(g.Fireballs()); n != 0 {
		t.Errorf("fireballs on the game over screen = %d, expected 0", n)
	}
}

func TestFallDeath(t *testing.T) {
	g, audio := newTestGame(t, 3, noFireballs)
	g.Update(core.FrameOf(core.ActionAnyKey), dt)

	p := g.Player()
	p.Y = 550 + 3*p.Height() + 10
	p.VX = 240

	res := g.Update(core.FrameOf(core.ActionRight), dt)
	if !res.State.GameOver || g.Phase() != PhaseGameOver {
		t.Fatal("falling below the screen should end the run")
	}
	if p.VX != 0 {
		t.Errorf("vx after death = %v, expected 0", p.VX)
	}
	if g.Cause() != "fall" {
		t.Errorf("cause = %q, expected fall", g.Cause())
	}
	if got := g.RunDuration(); got <= 0 || got > time.Second {
		t.Errorf("run duration = %v, expected one tick", got)
	}

	y := p.Y
	for i := 0; i < 10; i++ {
		g.Update(idle(), dt)
	}
	if p.Y <= y {
		t.Error("player should keep falling on the game over screen")
	}
	if got := audio.count(core.SoundDeath); got != 1 {
		t.Errorf("death sounds = %d, expected exactly 1", got)
	}
}

func TestRespawnResets(t *testing.T) {
	g, _ := newTestGame(t, 5, nil)
	g.Update(core.FrameOf(core.ActionAnyKey), dt)
	firstSeed := g.RunSeed()

	g.fireballs = append(g.fireballs, world.Fireball{X: 5000, Y: 100, Radius: 10, Speed: 0})
	g.particles.SpawnFireballHit(0, 0)
	g.cameraX = 300
	g.die("test")

	g.Update(core.FrameOf(core.ActionAnyKey), dt)

	if g.Phase() != PhasePlaying {
		t.Fatalf("phase after key = %v, expected playing", g.Phase())
	}
	p := g.Player()
	if p.X != 50 || p.Y != 405 || p.VX != 0 || p.VY != 0 {
		t.Errorf("player after respawn = (%v, %v) v=(%v, %v), expected (50, 405) at rest", p.X, p.Y, p.VX, p.VY)
	}
	if p.Shield() != 1 || p.Jumps() != 2 {
		t.Errorf("shield/jumps after respawn = %d/%d, expected 1/2", p.Shield(), p.Jumps())
	}
	if g.CameraX() != 0 {
		t.Errorf("camera after respawn = %v, expected 0", g.CameraX())
	}
	if len(g.Fireballs()) != 0 || g.particles.Len() != 0 {
		t.Error("fireballs and particles should be cleared on respawn")
	}
	if g.State().Score != 0 || len(g.Stream().Chunks()) != 3 {
		t.Errorf("score %d, window %d after respawn, expected 0 and 3", g.State().Score, len(g.Stream().Chunks()))
	}
	if g.Cause() != "" || g.RunDuration() != 0 {
		t.Errorf("cause %q, duration %v after respawn, expected a fresh run", g.Cause(), g.RunDuration())
	}
	if g.Runs() != 1 || g.RunSeed() == firstSeed {
		t.Errorf("runs = %d, seed %d, expected a new level for run 1", g.Runs(), g.RunSeed())
	}
}

func TestHazardContact(t *testing.T) {
	g, audio := newTestGame(t, 1, noFireballs)
	g.phase = PhasePlaying

	p := g.Player()
	p.Spawn(50, 455)
	chunk := &world.Chunk{
		Width: 3600,
		Platforms: []world.Platform{
			{X: 40, Y: 500, W: 60, H: 20, Kind: world.Hazard},
		},
	}

	g.checkHazards(chunk)
	if g.Phase() != PhasePlaying || p.Shield() != 0 {
		t.Fatalf("first touch: phase %v shield %d, expected playing with shield spent", g.Phase(), p.Shield())
	}

	g.checkHazards(chunk)
	if g.Phase() != PhaseGameOver {
		t.Fatal("touching a hazard without shield should end the run")
	}

	g.handleEvents()
	if audio.count(core.SoundHit) != 2 || audio.count(core.SoundDeath) != 1 {
		t.Errorf("hit/death sounds = %d/%d, expected 2/1", audio.count(core.SoundHit), audio.count(core.SoundDeath))
	}
}

func TestHazardBelowIsMissed(t *testing.T) {
	g, _ := newTestGame(t, 1, noFireballs)
	g.phase = PhasePlaying

	p := g.Player()
	p.Spawn(50, 400) // bottom at 445
	chunk := &world.Chunk{
		Width:     3600,
		Platforms: []world.Platform{{X: 40, Y: 500, W: 60, H: 20, Kind: world.Hazard}},
	}

	g.checkHazards(chunk)
	if p.Shield() != 1 {
		t.Errorf("shield = %d, expected 1 when above the hazard", p.Shield())
	}
}

func TestCollectPowerUp(t *testing.T) {
	g, audio := newTestGame(t, 1, noFireballs)
	g.phase = PhasePlaying

	p := g.Player()
	p.Spawn(50, 400)
	chunk := &world.Chunk{
		StartX:   0,
		Width:    3600,
		PowerUps: []world.PowerUp{world.NewPowerUp(55, 410, 25, world.Shield)},
	}

	g.collectPowerUps(chunk)
	g.collectPowerUps(chunk)

	if p.Shield() != 2 {
		t.Errorf("shield = %d, expected 2", p.Shield())
	}
	if !chunk.PowerUps[0].Collected() {
		t.Error("power-up should be collected")
	}
	if got := audio.count(core.SoundShieldCollect); got != 1 {
		t.Errorf("collect sounds = %d, expected 1", got)
	}
}

func TestFireballHit(t *testing.T) {
	g, _ := newTestGame(t, 1, noFireballs)
	g.phase = PhasePlaying

	p := g.Player()
	p.Spawn(50, 400)
	b := p.Box()
	g.fireballs = []world.Fireball{{X: b.CenterX(), Y: b.CenterY(), Radius: 10}}

	g.checkFireballs()
	if p.Shield() != 0 || g.Phase() != PhasePlaying {
		t.Fatal("first fireball should only cost the shield")
	}
	if len(g.fireballs) != 0 {
		t.Error("a survived fireball should be removed")
	}
	if g.particles.Len() == 0 {
		t.Error("a fireball hit should burst particles")
	}

	g.fireballs = []world.Fireball{{X: b.CenterX(), Y: b.CenterY(), Radius: 10}}
	g.checkFireballs()
	if g.Phase() != PhaseGameOver {
		t.Fatal("second fireball should end the run")
	}
	if len(g.fireballs) != 1 {
		t.Errorf("fatal fireball count = %d, expected it kept", len(g.fireballs))
	}
}

func TestFireballSpawnRanges(t *testing.T) {
	for seed := int64(0); seed < 30; seed++ {
		g, _ := newTestGame(t, seed, nil)
		g.phase = PhasePlaying
		g.cameraX = 1000

		if g.fireInterval < 1.0 || g.fireInterval >= 2.5 {
			t.Fatalf("seed %d: interval %v outside [1, 2.5)", seed, g.fireInterval)
		}

		g.fireTimer = g.fireInterval
		g.spawnFireballs(0)
		if len(g.fireballs) != 1 {
			t.Fatalf("seed %d: %d fireballs, expected 1", seed, len(g.fireballs))
		}

		f := g.fireballs[0]
		if f.Radius < 10 || f.Radius >= 18 {
			t.Errorf("radius %v outside [10, 18)", f.Radius)
		}
		if f.Speed < 180 || f.Speed >= 400 {
			t.Errorf("speed %v outside [180, 400)", f.Speed)
		}
		if f.Y < 55 || f.Y >= 495 {
			t.Errorf("y %v outside [55, 495)", f.Y)
		}
		if f.X != 1000+900+f.Radius+30 {
			t.Errorf("x = %v, expected just past the right edge", f.X)
		}
		if g.fireTimer != 0 {
			t.Errorf("timer = %v, expected reset to 0", g.fireTimer)
		}
	}
}

func TestFireballDespawn(t *testing.T) {
	g, _ := newTestGame(t, 1, nil)
	g.cameraX = 2000
	g.fireballs = []world.Fireball{
		{X: 600, Y: 100, Radius: 10, Speed: 0},  // 610 < 2000 - 1350
		{X: 700, Y: 100, Radius: 10, Speed: 0},  // still within range
		{X: 2500, Y: 100, Radius: 10, Speed: 0}, // on screen
	}

	g.updateFireballs(dt)

	if len(g.fireballs) != 2 || g.fireballs[0].X != 700 {
		t.Errorf("fireballs after update = %+v, expected the first one dropped", g.fireballs)
	}
}

func TestCameraFollows(t *testing.T) {
	g, _ := newTestGame(t, 1, noFireballs)
	g.Update(core.FrameOf(core.ActionAnyKey), dt)

	g.Player().X = 2000
	g.Update(idle(), dt)

	target := g.Player().X - 900/3.2
	if g.CameraX() <= 0 || g.CameraX() >= target {
		t.Errorf("camera = %v, expected between 0 and target %v", g.CameraX(), target)
	}
}

func TestPause(t *testing.T) {
	g, _ := newTestGame(t, 1, noFireballs)
	g.Update(core.FrameOf(core.ActionAnyKey), dt)

	res := g.Update(core.FrameOf(core.ActionPause), dt)
	if !res.State.Paused {
		t.Fatal("pause key should pause the run")
	}

	x, y := g.Player().X, g.Player().Y
	g.Update(core.FrameOf(core.ActionRight), dt)
	if g.Player().X != x || g.Player().Y != y {
		t.Error("paused session should not move the player")
	}

	res = g.Update(core.FrameOf(core.ActionPause), dt)
	if res.State.Paused {
		t.Error("second pause key should resume")
	}
}

func TestDeterminism(t *testing.T) {
	script := make([]core.InputFrame, 900)
	for i := range script {
		script[i] = core.FrameOf(core.ActionRight)
		if i == 0 {
			script[i].Set(core.ActionAnyKey)
		}
		if i%40 < 3 {
			script[i].Set(core.ActionJump)
		}
	}

	run := func() *Game {
		g, _ := newTestGame(t, 2024, nil)
		for _, in := range script {
			g.Update(in, dt)
		}
		return g
	}

	a, b := run(), run()

	if a.Player().X != b.Player().X || a.Player().Y != b.Player().Y {
		t.Errorf("player differs: (%v, %v) vs (%v, %v)", a.Player().X, a.Player().Y, b.Player().X, b.Player().Y)
	}
	if a.State() != b.State() {
		t.Errorf("state differs: %+v vs %+v", a.State(), b.State())
	}
	if a.CameraX() != b.CameraX() || len(a.Fireballs()) != len(b.Fireballs()) {
		t.Error("camera or fireballs differ between identical runs")
	}
	if a.Stream().GeneratedEnd() != b.Stream().GeneratedEnd() {
		t.Error("generated terrain differs between identical runs")
	}
}

func TestWindowInvariants(t *testing.T) {
	g, _ := newTestGame(t, 99, noFireballs)
	g.Update(core.FrameOf(core.ActionAnyKey), dt)

	// Walk the player across the world without physics interfering.
	for x := 50.0; x < 40000; x += 120 {
		p := g.Player()
		p.Spawn(x, 100)
		g.Update(idle(), dt)
		if g.Phase() != PhasePlaying {
			g.phase = PhasePlaying
		}

		chunks := g.Stream().Chunks()
		if len(chunks) > g.cfg.Streaming.Buffer {
			t.Fatalf("window size %d exceeds buffer", len(chunks))
		}
		containing := 0
		for _, c := range chunks {
			if c.Contains(p.CenterX()) {
				containing++
			}
		}
		if containing != 1 {
			t.Fatalf("player centre %v in %d chunks, expected 1", p.CenterX(), containing)
		}
	}
}

func TestRender(t *testing.T) {
	g, _ := newTestGame(t, 1, noFireballs)
	screen := core.NewScreen(90, 28)
	screen.SetViewport(900, 550)

	g.Render(screen)
	if !strings.Contains(screen.String(), "JAIMP") {
		t.Error("title screen should show JAIMP")
	}

	g.Update(core.FrameOf(core.ActionAnyKey), dt)
	screen.Clear()
	g.Render(screen)
	text := screen.String()
	if !strings.Contains(text, "Chunks: 0") || !strings.Contains(text, "Jumps: 2/2") {
		t.Errorf("HUD missing from frame:\n%s", text)
	}
	if !strings.Contains(text, "Shield: 1/3") {
		t.Error("HUD should show the starting shield")
	}

	g.die("test")
	screen.Clear()
	g.Render(screen)
	if !strings.Contains(screen.String(), "Chunks Passed: 0") {
		t.Error("game over screen should show the chunk count")
	}
}

func TestBestRun(t *testing.T) {
	g, _ := newTestGame(t, 1, noFireballs)
	g.SetBest(4)
	g.SetBest(2)
	if g.Best() != 4 {
		t.Errorf("Best() = %d, expected 4", g.Best())
	}

	g.Reset(core.DefaultConfig())
	if g.Best() != 4 {
		t.Error("best run should survive Reset")
	}
}
