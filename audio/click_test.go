package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/xwill007/cursor"
)

func TestToneLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	s := Tone(880, 10*time.Millisecond, rate)

	want := rate.N(10 * time.Millisecond)
	buf := make([][2]float64, 128)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 {
				t.Fatalf("sample %d out of range: %f", i, buf[i][0])
			}
		}
		if !ok {
			break
		}
	}
	if total != want {
		t.Errorf("streamed %d samples, want %d", total, want)
	}
}

func TestToneFadesOut(t *testing.T) {
	rate := beep.SampleRate(1000)
	s := &decayingSine{freq: 250, rate: rate, total: 100}
	buf := make([][2]float64, 100)
	s.Stream(buf)

	// At 250 Hz and 1 kHz the sine peaks every fourth sample.
	first, last := buf[1][0], buf[97][0]
	if first <= last {
		t.Errorf("peak did not decay: first %f, last %f", first, last)
	}
}

func TestFeedback_UninitializedIsSilent(t *testing.T) {
	f := NewFeedback()
	f.PlaySelect()
	f.PlayHover()
	if n := f.mixer.Len(); n != 0 {
		t.Errorf("mixer has %d streamers, want 0", n)
	}
	f.Cleanup()
}

func TestFeedback_Attach(t *testing.T) {
	scene := cursor.NewScene()
	scene.Add(cursor.NewObject("btn", "selectable"))
	c := cursor.New("main", scene, cursor.DefaultConfig())
	defer c.Dispose()

	f := NewFeedback()
	f.Hover = true
	handles := f.Attach(c)
	if len(handles) != 2 {
		t.Fatalf("got %d handles, want 2", len(handles))
	}

	// Uninitialized: the callbacks run without touching the speaker.
	c.HitTestUpdate("btn", cursor.Vec3{})
	c.Click()

	for _, h := range handles {
		h.Remove()
	}
}
