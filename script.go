package cursor

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DefaultFrame is the frame step Runner uses when none is set (60 TPS).
const DefaultFrame = time.Second / 60

// Step is a single action in a script.
type Step struct {
	Action string `json:"action"`
	Target string `json:"target,omitempty"`
	Point  Vec3   `json:"point,omitempty"`
	Key    string `json:"key,omitempty"`
	Text   string `json:"text,omitempty"`
	Mode   string `json:"mode,omitempty"`
	Ms     int    `json:"ms,omitempty"`
	Frames int    `json:"frames,omitempty"`
}

// Script is the top-level JSON structure for a scripted interaction.
//
//	{"steps": [
//	  {"action": "hover", "target": "play"},
//	  {"action": "wait", "ms": 3000},
//	  {"action": "say", "text": "select"}
//	]}
type Script struct {
	Steps []Step `json:"steps"`
}

// LoadScript parses a JSON script.
func LoadScript(data []byte) (*Script, error) {
	var s Script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, errors.New("parse script: no steps")
	}
	return &s, nil
}

// Runner plays a Script against a cursor, advancing it with a fixed frame
// step. Actions:
//
//	hover   HitTestUpdate(target, point)
//	leave   HitTestUpdate("", point)
//	wait    run frames for ms milliseconds (or frames frames)
//	key     key down, keyup: key up
//	say     final speech result through Speech; hear: interim result
//	click   native pointer click
//	enter   immersive session enter; exit: session exit
//	mode    SetMode(mode)
type Runner struct {
	Cursor *Cursor
	// Speech receives say/hear steps. It must be the recognizer the cursor
	// was built with.
	Speech *ManualRecognizer
	Frame  time.Duration

	// OnStep, if set, is called before each step.
	OnStep func(i int, st Step)
}

// Run executes every step in order. It stops at the first invalid step.
func (r *Runner) Run(s *Script) error {
	for i, st := range s.Steps {
		if r.OnStep != nil {
			r.OnStep(i, st)
		}
		if err := r.step(st); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, st.Action, err)
		}
	}
	return nil
}

func (r *Runner) frame() time.Duration {
	if r.Frame <= 0 {
		return DefaultFrame
	}
	return r.Frame
}

func (r *Runner) step(st Step) error {
	c := r.Cursor
	switch st.Action {
	case "hover":
		if st.Target == "" {
			return errors.New("hover needs a target")
		}
		c.HitTestUpdate(st.Target, st.Point)
	case "leave":
		c.HitTestUpdate("", st.Point)
	case "wait":
		r.wait(st)
	case "key":
		c.HandleKey(KeyEvent{Key: st.Key, Down: true})
	case "keyup":
		c.HandleKey(KeyEvent{Key: st.Key})
	case "say", "hear":
		if r.Speech == nil {
			return errors.New("no speech recognizer")
		}
		if st.Action == "say" {
			r.Speech.Say(st.Text)
		} else {
			r.Speech.Hear(st.Text)
		}
		// Recognizer results are queued; apply them now.
		c.Update(0)
	case "click":
		c.Click()
	case "enter":
		c.Session().Enter()
	case "exit":
		c.Session().Exit()
	case "mode":
		m, err := ParseMode(st.Mode)
		if err != nil {
			return err
		}
		c.SetMode(m)
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

func (r *Runner) wait(st Step) {
	frame := r.frame()
	if st.Frames > 0 {
		for i := 0; i < st.Frames; i++ {
			r.Cursor.Update(frame)
		}
		return
	}
	remaining := time.Duration(st.Ms) * time.Millisecond
	for remaining > 0 {
		dt := min(frame, remaining)
		r.Cursor.Update(dt)
		remaining -= dt
	}
}
