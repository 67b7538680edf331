package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Output plays streamers. Play must not block until the streamer drains.
type Output interface {
	Play(s beep.Streamer)
	Clear()
}

// speakerOutput plays through the system audio device.
type speakerOutput struct{}

// NewSpeaker initializes the audio device at rate with a 100ms buffer.
func NewSpeaker(rate beep.SampleRate) (Output, error) {
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: cannot initialize speaker: %w", err)
	}
	return speakerOutput{}, nil
}

func (speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }
func (speakerOutput) Clear()               { speaker.Clear() }
