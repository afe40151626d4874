// Package audio plays short synthesized feedback tones for cursor events.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/xwill007/cursor"
)

const sampleRate = beep.SampleRate(48000)

// Tone frequencies and lengths.
const (
	SelectFreq     = 880.0
	SelectDuration = 60 * time.Millisecond
	HoverFreq      = 440.0
	HoverDuration  = 20 * time.Millisecond
)

// Feedback plays a click on select and a faint tick on hover-enter.
// Until Initialize succeeds every Play call is a no-op, so hosts without an
// audio device keep working.
type Feedback struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	// Hover enables the hover tick.
	Hover bool
}

// NewFeedback creates an uninitialized player.
func NewFeedback() *Feedback {
	return &Feedback{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker.
func (f *Feedback) Initialize() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(f.mixer)
	f.initialized = true
	return nil
}

// Cleanup silences queued tones.
func (f *Feedback) Cleanup() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.initialized {
		return
	}
	speaker.Lock()
	f.mixer.Clear()
	speaker.Unlock()
	f.initialized = false
}

// Attach subscribes the player to c. Remove the returned handles to detach.
func (f *Feedback) Attach(c *cursor.Cursor) []cursor.CallbackHandle {
	return []cursor.CallbackHandle{
		c.OnSelect(func(cursor.SelectEvent) { f.PlaySelect() }),
		c.OnHoverEnter(func(cursor.HoverEvent) {
			if f.Hover {
				f.PlayHover()
			}
		}),
	}
}

// PlaySelect plays the select click.
func (f *Feedback) PlaySelect() { f.play(Tone(SelectFreq, SelectDuration, sampleRate)) }

// PlayHover plays the hover tick.
func (f *Feedback) PlayHover() { f.play(Tone(HoverFreq, HoverDuration, sampleRate)) }

func (f *Feedback) play(s beep.Streamer) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.initialized {
		return
	}
	speaker.Lock()
	f.mixer.Add(s)
	speaker.Unlock()
}

// Tone returns a sine tone of the given length with a linear fade-out.
func Tone(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return beep.Take(rate.N(d), &decayingSine{freq: freq, rate: rate, total: rate.N(d)})
}

type decayingSine struct {
	freq  float64
	rate  beep.SampleRate
	phase float64
	pos   int
	total int
}

func (s *decayingSine) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		vol := 1.0
		if s.total > 0 {
			vol = 1 - float64(s.pos)/float64(s.total)
			if vol < 0 {
				vol = 0
			}
		}
		v := math.Sin(2*math.Pi*s.phase) * vol
		samples[i][0] = v
		samples[i][1] = v
		s.phase += s.freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *decayingSine) Err() error { return nil }
