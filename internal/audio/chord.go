package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/jaimp/internal/core"
)

// Note frequencies in Hz.
const (
	noteA1  = 55.00
	noteE2  = 82.41
	noteF2  = 87.31
	noteG2  = 98.00
	noteGs2 = 103.83
	noteA2  = 110.00
	noteB2  = 123.47
	noteC3  = 130.81
	noteD3  = 146.83
	noteE3  = 164.81
	noteF3  = 174.61
	noteG3  = 196.00
	noteGs3 = 207.65
	noteA3  = 220.00
	noteB3  = 246.94
	noteC4  = 261.63
	noteD4  = 293.66
	noteE4  = 329.63
)

// chords run from the highest voicing to the lowest, all around A minor.
var chords = [][]float64{
	{noteA3, noteC4, noteE4},
	{noteG3, noteB3, noteD4},
	{noteF3, noteA3, noteC4},
	{noteE3, noteGs3, noteB3},
	{noteD3, noteF3, noteA3},
	{noteC3, noteE3, noteG3},
	{noteA2, noteC3, noteE3},
	{noteG2, noteB2, noteD3},
	{noteF2, noteA2, noteC3},
	{noteE2, noteGs2, noteB2},
	{noteA1, noteC3, noteE3},
}

const (
	minToneFreq     = 110.0
	maxToneFreq     = 880.0
	minToneDuration = 50
)

// ChordIndex selects a chord for a landing tone frequency. Higher
// frequencies select lower indices, which are higher voicings.
func ChordIndex(freq float64) int {
	norm := core.ClampF((freq-minToneFreq)/(maxToneFreq-minToneFreq), 0, 1)
	idx := len(chords) - 1 - int(norm*float64(len(chords)-1))
	return core.Clamp(idx, 0, len(chords)-1)
}

// Chord returns the notes of the chord at idx.
func Chord(idx int) []float64 {
	return chords[core.Clamp(idx, 0, len(chords)-1)]
}

// Tone synthesizes a detuned saw-ish chord for freq lasting durationMs.
func Tone(freq float64, durationMs int, rate beep.SampleRate) beep.Streamer {
	if durationMs < minToneDuration {
		durationMs = minToneDuration
	}
	notes := Chord(ChordIndex(freq))

	const (
		detune  = 1.006
		sustain = 0.70
		gain    = 0.17
	)
	total := float64(durationMs) / 1000
	attack := 0.008 * total
	decay := 0.15 * total
	release := 0.25 * total
	norm := 1.0 + 1.0/2 + 1.0/3 + 1.0/4 + 1.0/5
	r := float64(rate)

	saw := func(angle float64) float64 {
		v := 0.0
		for k := 1.0; k <= 5; k++ {
			v += math.Sin(k*angle) / k
		}
		return v / norm
	}

	n := rate.N(time.Duration(durationMs) * time.Millisecond)
	return newVoice(n, func(i, _ int) float64 {
		t := float64(i) / r
		s := 0.0
		for _, f := range notes {
			s += (saw(2*math.Pi*f*t) + saw(2*math.Pi*f*detune*t)) * 0.5
		}

		var env float64
		switch {
		case t < attack:
			env = t / attack
		case t < attack+decay:
			env = 1 - (t-attack)/decay*(1-sustain)
		case t < total-release:
			env = sustain
		default:
			env = sustain * (1 - (t-(total-release))/release)
		}
		return s * gain * core.ClampF(env, 0, 1)
	})
}
