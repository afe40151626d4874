package cursor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestMatchPhrase(t *testing.T) {
	vocab := []string{"select", "click", "go now"}
	tests := []struct {
		text string
		want bool
	}{
		{"select", true},
		{"Select!", true},
		{"please click it", true},
		{"let's go now, thanks", true},
		{"selection", false},
		{"go", false},
		{"now go", false},
		{"", false},
		{"   ", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := matchPhrase(tt.text, vocab); got != tt.want {
				t.Errorf("matchPhrase(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestNormalizePhrase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Select  This! ", "select this"},
		{"ÉLAN", "élan"},
		{"go-now", "gonow"},
		{"...", ""},
	}
	for _, tt := range tests {
		if got := normalizePhrase(tt.in); got != tt.want {
			t.Errorf("normalizePhrase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestVoiceSelectsOnFinalResult(t *testing.T) {
	rec := &ManualRecognizer{}
	c, selected := newTestCursor(t, testConfig(ModeVoice), WithSpeechRecognizer(rec))
	if rec.Starts() != 1 || !rec.Listening() {
		t.Fatalf("Starts, Listening = %d, %v, want 1, true", rec.Starts(), rec.Listening())
	}
	c.HitTestUpdate("a", Vec3{})

	rec.Say("please select")
	if len(*selected) != 0 {
		t.Fatal("speech results must wait for Update")
	}
	c.Update(0)
	if len(*selected) != 1 {
		t.Fatalf("selected = %v, want [a]", *selected)
	}

	rec.Hear("select")
	rec.Say("selection")
	c.Update(0)
	if len(*selected) != 1 {
		t.Errorf("selected = %v, interim and non-matching results must not select", *selected)
	}
}

func TestVoiceNothingIntersected(t *testing.T) {
	rec := &ManualRecognizer{}
	c, selected := newTestCursor(t, testConfig(ModeVoice), WithSpeechRecognizer(rec))
	rec.Say("select")
	c.Update(0)
	c.HitTestUpdate("deco", Vec3{})
	rec.Say("select")
	c.Update(0)
	if len(*selected) != 0 {
		t.Errorf("selected = %v, want none", *selected)
	}
}

func TestVoiceDropsStaleSession(t *testing.T) {
	rec := &ManualRecognizer{}
	c, selected := newTestCursor(t, testConfig(ModeVoice), WithSpeechRecognizer(rec))
	c.HitTestUpdate("a", Vec3{})

	rec.Say("select")
	c.SetMode(ModePointer)
	c.SetMode(ModeVoice)
	c.Update(0)
	if len(*selected) != 0 {
		t.Errorf("selected = %v, result from a stopped session was applied", *selected)
	}

	rec.Say("select")
	c.Update(0)
	if len(*selected) != 1 {
		t.Errorf("selected = %v, want [a] from the new session", *selected)
	}
}

func TestVoiceStopsOnTeardown(t *testing.T) {
	rec := &ManualRecognizer{}
	c, _ := newTestCursor(t, testConfig(ModeVoice), WithSpeechRecognizer(rec))
	c.SetMode(ModeKey)
	if rec.Listening() {
		t.Error("speech session still running")
	}
	if rec.Say("select") {
		t.Error("Say reported delivery to a stopped session")
	}
	if c.liveSpeech != 0 {
		t.Errorf("liveSpeech = %d, want 0", c.liveSpeech)
	}
}

type failingRecognizer struct {
	err    error
	panics bool
}

func (f failingRecognizer) Start(context.Context, func(SpeechResult)) error {
	if f.panics {
		panic("no microphone")
	}
	return f.err
}

func TestVoiceRecognizerFailures(t *testing.T) {
	tests := []struct {
		name string
		rec  SpeechRecognizer
	}{
		{"unavailable", &ManualRecognizer{Unavailable: true}},
		{"error", failingRecognizer{err: errors.New("denied")}},
		{"panic", failingRecognizer{panics: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			c := New("test", newTestScene(), testConfig(ModeVoice),
				WithLogger(zerolog.New(&buf)), WithSpeechRecognizer(tt.rec))
			defer c.Dispose()

			if !strings.Contains(buf.String(), "failed to start") {
				t.Errorf("log = %q, want a start failure warning", buf.String())
			}
			if c.liveSpeech != 0 {
				t.Errorf("liveSpeech = %d, want 0", c.liveSpeech)
			}
			// Everything else keeps working.
			c.SetMode(ModePointer)
			c.HitTestUpdate("a", Vec3{})
			c.Click()
			if c.Appearance().Clicks != 1 {
				t.Errorf("Clicks = %d, want 1", c.Appearance().Clicks)
			}
		})
	}
}

func TestLineRecognizer(t *testing.T) {
	if err := (&LineRecognizer{}).Start(context.Background(), func(SpeechResult) {}); !errors.Is(err, ErrSpeechUnavailable) {
		t.Fatalf("Start without reader = %v, want ErrSpeechUnavailable", err)
	}

	results := make(chan SpeechResult, 4)
	rec := &LineRecognizer{R: strings.NewReader("select\n\n  click  \n")}
	if err := rec.Start(context.Background(), func(r SpeechResult) { results <- r }); err != nil {
		t.Fatalf("Start: %v", err)
	}
	var got []string
	for len(got) < 2 {
		select {
		case r := <-results:
			if !r.IsFinal {
				t.Errorf("result %q not final", r.Text)
			}
			got = append(got, r.Text)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out, got %v", got)
		}
	}
	if strings.Join(got, ",") != "select,click" {
		t.Errorf("results = %v, want select,click", got)
	}
}

func TestLineRecognizerDrivesCursor(t *testing.T) {
	pr, pw := io.Pipe()
	rec := &LineRecognizer{R: pr}
	c, selected := newTestCursor(t, testConfig(ModeVoice), WithSpeechRecognizer(rec))
	c.HitTestUpdate("a", Vec3{})

	pw.Write([]byte("select\n"))
	pw.Close()
	deadline := time.Now().Add(2 * time.Second)
	for len(*selected) == 0 && time.Now().Before(deadline) {
		c.Update(DefaultFrame)
		time.Sleep(time.Millisecond)
	}
	if len(*selected) != 1 {
		t.Errorf("selected = %v, want [a]", *selected)
	}
}
