package config

import (
	_ "embed"
)

//go:embed defaults/jaimp.yaml
var defaultJaimpYAML []byte

// DefaultJaimpConfig returns the built-in configuration.
// It mirrors defaults/jaimp.yaml and is the last fallback of Load.
func DefaultJaimpConfig() JaimpConfig {
	return JaimpConfig{
		Viewport: ViewportConfig{
			Width:  900,
			Height: 550,
		},
		Physics: PhysicsConfig{
			Gravity:      2200,
			MaxFallSpeed: 950,
		},
		Player: PlayerConfig{
			Width:                  30,
			Height:                 45,
			CrouchHeight:           25,
			MoveSpeed:              240,
			JumpStrength:           -620,
			DoubleJumpStrength:     -520,
			ShieldJumpStrength:     -480,
			BounceStrength:         -850,
			HazardBounceMultiplier: 1.5,
			MaxJumps:               2,
			MaxShield:              3,
			StartShield:            1,
			SpawnX:                 50,
			SpawnFloorOffset:       100,
		},
		Generator: GeneratorConfig{
			ChunkScreens:   4.0,
			PlatformHeight: 20,
			PowerUpSize:    25,
			PowerUpOffset:  30,
		},
		Streaming: StreamingConfig{
			Ahead:  2,
			Behind: 1,
			Target: 4,
			Buffer: 5,
		},
		Fireballs: FireballConfig{
			Enabled:        true,
			MinInterval:    1.0,
			IntervalJitter: 1.5,
			MinSpeed:       180,
			SpeedJitter:    220,
			MinRadius:      10,
			RadiusJitter:   8,
			SpawnMargin:    30,
			DespawnScreens: 1.5,
		},
		Camera: CameraConfig{
			LeadDivisor: 3.2,
			Smoothing:   0.09,
		},
		Audio: AudioConfig{
			Enabled:           true,
			Workers:           12,
			SampleRate:        44100,
			Volume:            0.5,
			ShutdownTimeoutMs: 1000,
		},
		Input: InputConfig{
			HoldMs:        160,
			InitialHoldMs: 600,
			RepeatGapMs:   100,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 25,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   0.8,
				IntervalReduction: 0.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultJaimpYAML
}
