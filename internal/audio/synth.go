// Package audio synthesizes the game's sound effects and plays them on a
// bounded pool of workers so the tick loop never waits for sound.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/jaimp/internal/core"
)

// sampleFunc returns the sample at index i of an n-sample sound, in [-1, 1].
type sampleFunc func(i, n int) float64

// voice is a finite mono streamer driven by a sampleFunc.
type voice struct {
	fn  sampleFunc
	pos int
	n   int
}

func newVoice(n int, fn sampleFunc) beep.Streamer {
	return &voice{fn: fn, n: n}
}

func (v *voice) Stream(samples [][2]float64) (int, bool) {
	if v.pos >= v.n {
		return 0, false
	}
	for i := range samples {
		if v.pos >= v.n {
			return i, true
		}
		s := core.ClampF(v.fn(v.pos, v.n), -1, 1)
		samples[i][0] = s
		samples[i][1] = s
		v.pos++
	}
	return len(samples), true
}

func (v *voice) Err() error { return nil }

// withVolume scales a streamer by a linear volume in [0, 1].
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// effect builds the streamer for a one-shot sound.
type effect func(rate beep.SampleRate, rng *rand.Rand) beep.Streamer

var effectTable = map[core.Sound]effect{
	core.SoundMidAirJump:    midAirJump,
	core.SoundGroundJump:    groundJumpPuff,
	core.SoundGroundLanding: groundLandingPfft,
	core.SoundShieldCollect: shieldCollect,
	core.SoundBoing:         boing,
	core.SoundHit:           hit,
	core.SoundDeath:         death,
}

// Duration returns the length of a one-shot sound.
func Duration(s core.Sound) time.Duration {
	switch s {
	case core.SoundMidAirJump, core.SoundHit:
		return 180 * time.Millisecond
	case core.SoundGroundJump:
		return 120 * time.Millisecond
	case core.SoundGroundLanding:
		return 90 * time.Millisecond
	case core.SoundShieldCollect:
		return 200 * time.Millisecond
	case core.SoundBoing:
		return 250 * time.Millisecond
	case core.SoundDeath:
		return 800 * time.Millisecond
	default:
		return 0
	}
}

// Effect returns the streamer for s, or nil for an unknown sound.
func Effect(s core.Sound, rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	build, ok := effectTable[s]
	if !ok {
		return nil
	}
	return build(rate, rng)
}

// sweep is the phase of a tone whose frequency changes per sample.
type sweep struct {
	rate  float64
	phase float64
}

func (w *sweep) advance(freq float64) float64 {
	w.phase += 2 * math.Pi * freq / w.rate
	if w.phase > 2*math.Pi {
		w.phase -= 2 * math.Pi
	}
	return w.phase
}

func midAirJump(rate beep.SampleRate, _ *rand.Rand) beep.Streamer {
	const start, end = 380.0, 250.0
	w := &sweep{rate: float64(rate)}
	return newVoice(rate.N(Duration(core.SoundMidAirJump)), func(i, n int) float64 {
		p := float64(i) / float64(n)
		a := w.advance(start - math.Pow(p, 0.6)*(start-end))
		s := 0.7*math.Sin(a) + 0.3*math.Sin(1.8*a+0.15)
		env := math.Exp(-(p - 0.1) * 12)
		if p < 0.1 {
			env = p / 0.1
		}
		return s * 0.47 * core.ClampF(env, 0, 1)
	})
}

func groundJumpPuff(rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	return newVoice(rate.N(Duration(core.SoundGroundJump)), func(i, n int) float64 {
		p := float64(i) / float64(n)
		noise := rng.Float64()*0.63 - 0.315
		env := math.Sin(p*math.Pi*0.9+0.05*math.Pi) * math.Exp(-p*7)
		return noise * env * 0.3
	})
}

func groundLandingPfft(rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	return newVoice(rate.N(Duration(core.SoundGroundLanding)), func(i, n int) float64 {
		p := float64(i) / float64(n)
		noise := rng.Float64()*0.63 - 0.315
		env := math.Exp(-(p - 0.05) * 25)
		if p < 0.05 {
			env = p / 0.05
		}
		return noise * env * 0.2
	})
}

func shieldCollect(rate beep.SampleRate, _ *rand.Rand) beep.Streamer {
	const start, end = 350.0, 120.0
	w := &sweep{rate: float64(rate)}
	return newVoice(rate.N(Duration(core.SoundShieldCollect)), func(i, n int) float64 {
		p := float64(i) / float64(n)
		a := w.advance(start - math.Pow(p, 0.6)*(start-end))
		mod := math.Sin(2 * math.Pi * p * 12)
		s := math.Sin(a+mod*0.08) * (1 - p*0.4)
		var env float64
		switch {
		case p < 0.08:
			env = p / 0.08
		case p < 0.6:
			env = 1 - (p-0.08)*0.4
		default:
			env = (1 - (p-0.6)/0.4) * 0.6
		}
		return s * 0.59 * core.ClampF(env, 0, 1)
	})
}

func boing(rate beep.SampleRate, _ *rand.Rand) beep.Streamer {
	const start, peak, end = 120.0, 550.0, 120.0
	w := &sweep{rate: float64(rate)}
	return newVoice(rate.N(Duration(core.SoundBoing)), func(i, n int) float64 {
		p := float64(i) / float64(n)
		freq := peak - (peak-end)*((p-0.25)/0.75)
		if p < 0.25 {
			freq = start + (peak-start)*(p/0.25)
		}
		a := w.advance(math.Max(20, freq))
		s := 0.6*math.Sin(a) + 0.25*math.Sin(1.9*a) + 0.15*math.Sin(0.55*a+0.1)
		env := math.Exp(-(p - 0.03) * 9)
		if p < 0.03 {
			env = p / 0.03
		}
		return s * 0.63 * core.ClampF(env, 0, 1)
	})
}

func hit(rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	const base, noiseFactor = 90.0, 0.4
	r := float64(rate)
	return newVoice(rate.N(Duration(core.SoundHit)), func(i, _ int) float64 {
		t := float64(i) / r
		env := math.Exp(-t * 30)
		sine := math.Sin(2 * math.Pi * base * t * (1 + 0.3*math.Sin(2*math.Pi*5*t+0.1)))
		square := -0.3
		if math.Sin(2*math.Pi*base*0.5*t) > 0 {
			square = 0.3
		}
		noise := (rng.Float64()*2 - 1) * noiseFactor
		return (sine*(1-noiseFactor-0.1) + square + noise) * 0.67 * env
	})
}

func death(rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	const start, end = 700.0, 60.0
	w := &sweep{rate: float64(rate)}
	return newVoice(rate.N(Duration(core.SoundDeath)), func(i, n int) float64 {
		p := float64(i) / float64(n)
		a := w.advance(start * math.Pow(end/start, p*p))
		s := 0.4*math.Sin(a) + 0.2*math.Sin(2*a+0.5) + 0.15*math.Sin(3*a+1) +
			0.1*(rng.Float64()*0.5-0.25)
		return s * 0.71 * math.Pow(1-p, 0.75)
	})
}
