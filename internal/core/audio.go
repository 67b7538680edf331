package core

// Sound identifies a one-shot synthesized effect.
type Sound int

const (
	SoundMidAirJump Sound = iota
	SoundGroundJump
	SoundGroundLanding
	SoundShieldCollect
	SoundBoing
	SoundHit
	SoundDeath
)

// Sounds lists every effect in declaration order.
var Sounds = []Sound{
	SoundMidAirJump,
	SoundGroundJump,
	SoundGroundLanding,
	SoundShieldCollect,
	SoundBoing,
	SoundHit,
	SoundDeath,
}

// String returns the effect name.
func (s Sound) String() string {
	switch s {
	case SoundMidAirJump:
		return "midair_jump"
	case SoundGroundJump:
		return "ground_jump"
	case SoundGroundLanding:
		return "ground_landing"
	case SoundShieldCollect:
		return "shield_collect"
	case SoundBoing:
		return "boing"
	case SoundHit:
		return "hit"
	case SoundDeath:
		return "death"
	default:
		return "unknown"
	}
}

// AudioSink accepts fire-and-forget sound requests.
// Implementations must return immediately and never report failures back.
type AudioSink interface {
	// PlayTone plays a pitched tone selected by freq (Hz) for durationMs.
	PlayTone(freq float64, durationMs int)

	// Play triggers a one-shot effect.
	Play(s Sound)
}

// NopAudio discards every request.
type NopAudio struct{}

func (NopAudio) PlayTone(float64, int) {}
func (NopAudio) Play(Sound)            {}
