// Package config provides YAML-based game configuration loading and
// difficulty management for JAIMP.
package config

import (
	"errors"
	"fmt"
	"time"
)

// JaimpConfig contains all tunables for the platformer.
type JaimpConfig struct {
	Viewport   ViewportConfig   `yaml:"viewport"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Generator  GeneratorConfig  `yaml:"generator"`
	Streaming  StreamingConfig  `yaml:"streaming"`
	Fireballs  FireballConfig   `yaml:"fireballs"`
	Camera     CameraConfig     `yaml:"camera"`
	Audio      AudioConfig      `yaml:"audio"`
	Input      InputConfig      `yaml:"input"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ViewportConfig is the logical playfield size in world units.
// The terminal renderer scales it to whatever grid is available.
type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig defines world-wide integration parameters.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`        // units/s^2
	MaxFallSpeed float64 `yaml:"max_fall_speed"` // units/s
}

// PlayerConfig defines the player's body and movement.
// Launch strengths are negative (upward).
type PlayerConfig struct {
	Width                  float64 `yaml:"width"`
	Height                 float64 `yaml:"height"`
	CrouchHeight           float64 `yaml:"crouch_height"`
	MoveSpeed              float64 `yaml:"move_speed"`
	JumpStrength           float64 `yaml:"jump_strength"`
	DoubleJumpStrength     float64 `yaml:"double_jump_strength"`
	ShieldJumpStrength     float64 `yaml:"shield_jump_strength"`
	BounceStrength         float64 `yaml:"bounce_strength"`
	HazardBounceMultiplier float64 `yaml:"hazard_bounce_multiplier"`
	MaxJumps               int     `yaml:"max_jumps"`
	MaxShield              int     `yaml:"max_shield"`
	StartShield            int     `yaml:"start_shield"`
	SpawnX                 float64 `yaml:"spawn_x"`
	SpawnFloorOffset       float64 `yaml:"spawn_floor_offset"` // spawn feet this far above the viewport bottom
}

// GeneratorConfig defines chunk geometry handed to the level generator.
type GeneratorConfig struct {
	ChunkScreens   float64 `yaml:"chunk_screens"` // chunk length in viewport widths
	PlatformHeight float64 `yaml:"platform_height"`
	PowerUpSize    float64 `yaml:"powerup_size"`
	PowerUpOffset  float64 `yaml:"powerup_offset"` // extra lift above the host platform
}

// StreamingConfig defines the active chunk window.
type StreamingConfig struct {
	Ahead  int `yaml:"ahead"`  // chunks kept ahead of the camera
	Behind int `yaml:"behind"` // chunks kept behind the player
	Target int `yaml:"target"` // window size eviction shrinks to
	Buffer int `yaml:"buffer"` // hard cap on window size
}

// FireballConfig defines the randomized hazard spawner.
type FireballConfig struct {
	Enabled        bool    `yaml:"enabled"`
	MinInterval    float64 `yaml:"min_interval"`    // seconds
	IntervalJitter float64 `yaml:"interval_jitter"` // seconds added at random
	MinSpeed       float64 `yaml:"min_speed"`
	SpeedJitter    float64 `yaml:"speed_jitter"`
	MinRadius      float64 `yaml:"min_radius"`
	RadiusJitter   float64 `yaml:"radius_jitter"`
	SpawnMargin    float64 `yaml:"spawn_margin"`    // distance past the right screen edge
	DespawnScreens float64 `yaml:"despawn_screens"` // viewport widths behind the camera
}

// CameraConfig defines the follow camera.
type CameraConfig struct {
	LeadDivisor float64 `yaml:"lead_divisor"` // player sits at width/LeadDivisor from the left
	Smoothing   float64 `yaml:"smoothing"`    // fraction of the gap closed per tick
}

// AudioConfig defines the synthesized sound service.
type AudioConfig struct {
	Enabled           bool    `yaml:"enabled"`
	Workers           int     `yaml:"workers"`
	SampleRate        int     `yaml:"sample_rate"`
	Volume            float64 `yaml:"volume"` // 0.0 - 1.0
	ShutdownTimeoutMs int     `yaml:"shutdown_timeout_ms"`
}

// InputConfig defines terminal input handling.
type InputConfig struct {
	// HoldMs is how long a key counts as held after an auto-repeat event.
	// Terminals report presses only; auto-repeat keeps refreshing the window.
	HoldMs int `yaml:"hold_ms"`
	// InitialHoldMs is the hold after a fresh press. It must outlast the
	// keyboard's auto-repeat delay so a held key never drops before the
	// first repeat arrives.
	InitialHoldMs int `yaml:"initial_hold_ms"`
	// RepeatGapMs is the longest gap between two auto-repeat events. A
	// longer silence before a press marks it as a new press.
	RepeatGapMs int `yaml:"repeat_gap_ms"`
}

// Hold returns the repeat hold window.
func (c InputConfig) Hold() time.Duration { return time.Duration(c.HoldMs) * time.Millisecond }

// InitialHold returns the hold window after a fresh press.
func (c InputConfig) InitialHold() time.Duration {
	return time.Duration(c.InitialHoldMs) * time.Millisecond
}

// RepeatGap returns the longest gap between auto-repeat events.
func (c InputConfig) RepeatGap() time.Duration { return time.Duration(c.RepeatGapMs) * time.Millisecond }

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Chunks/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // Added to fireball speed factor at max difficulty
	IntervalReduction float64 `yaml:"interval_reduction"` // Fraction cut from the spawn interval at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value to a preset. Empty means "use the config".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *JaimpConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}

// ChunkLength returns the chunk length in world units.
func (c JaimpConfig) ChunkLength() float64 {
	return c.Viewport.Width * c.Generator.ChunkScreens
}

// Validate reports every value that would break the simulation.
func (c JaimpConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("viewport.width", c.Viewport.Width)
	positive("viewport.height", c.Viewport.Height)
	positive("physics.gravity", c.Physics.Gravity)
	positive("physics.max_fall_speed", c.Physics.MaxFallSpeed)
	positive("player.width", c.Player.Width)
	positive("player.height", c.Player.Height)
	positive("player.crouch_height", c.Player.CrouchHeight)
	positive("generator.chunk_screens", c.Generator.ChunkScreens)
	positive("generator.platform_height", c.Generator.PlatformHeight)
	positive("generator.powerup_size", c.Generator.PowerUpSize)
	positive("camera.lead_divisor", c.Camera.LeadDivisor)
	positive("input.hold_ms", float64(c.Input.HoldMs))
	positive("input.repeat_gap_ms", float64(c.Input.RepeatGapMs))

	if c.Player.CrouchHeight > c.Player.Height {
		errs = append(errs, fmt.Errorf("player.crouch_height %v exceeds player.height %v",
			c.Player.CrouchHeight, c.Player.Height))
	}
	if c.Player.MaxJumps < 1 {
		errs = append(errs, fmt.Errorf("player.max_jumps must be at least 1, got %d", c.Player.MaxJumps))
	}
	if c.Player.StartShield < 0 || c.Player.StartShield > c.Player.MaxShield {
		errs = append(errs, fmt.Errorf("player.start_shield %d outside 0..%d", c.Player.StartShield, c.Player.MaxShield))
	}
	if c.Streaming.Ahead < 1 || c.Streaming.Behind < 0 {
		errs = append(errs, fmt.Errorf("streaming.ahead must be >= 1 and streaming.behind >= 0"))
	}
	if c.Streaming.Target < 1+c.Streaming.Behind || c.Streaming.Buffer < c.Streaming.Target {
		errs = append(errs, fmt.Errorf("streaming window needs behind+1 <= target <= buffer, got %d/%d/%d",
			c.Streaming.Behind, c.Streaming.Target, c.Streaming.Buffer))
	}
	if c.Input.InitialHoldMs < c.Input.HoldMs {
		errs = append(errs, fmt.Errorf("input.initial_hold_ms %d is shorter than input.hold_ms %d",
			c.Input.InitialHoldMs, c.Input.HoldMs))
	}
	if c.Camera.Smoothing <= 0 || c.Camera.Smoothing > 1 {
		errs = append(errs, fmt.Errorf("camera.smoothing must be in (0, 1], got %v", c.Camera.Smoothing))
	}
	if c.Audio.Enabled && c.Audio.Workers < 1 {
		errs = append(errs, fmt.Errorf("audio.workers must be at least 1, got %d", c.Audio.Workers))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
