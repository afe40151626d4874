package cursor

import (
	"fmt"
	"math"
	"strings"
)

// Vec3 is a 3D vector used for positions, directions and intersection points.
// The coordinate system is right-handed with -Z pointing forward.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Ray is a half-line starting at Origin and extending along Dir.
// Dir is expected to be unit length; Scene.Raycast normalizes it.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// Mode selects which input modality triggers selection.
type Mode uint8

const (
	ModePointer Mode = iota // native pointer clicks on the intersected object
	ModeFuse                // dwell on a selectable object for FuseTimeoutMs
	ModeKey                 // a single keyboard trigger key
	ModeVoice               // short spoken commands
	ModeGaze                // polled dwell for GazeDwellMs
	ModeAuto                // fuse while immersive, pointer otherwise

	modeCount
)

var modeNames = [modeCount]string{
	ModePointer: "pointer",
	ModeFuse:    "fuse",
	ModeKey:     "key",
	ModeVoice:   "voice",
	ModeGaze:    "gaze",
	ModeAuto:    "auto",
}

// String returns the lower-case mode name.
func (m Mode) String() string {
	if m < modeCount {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool { return m < modeCount }

// ParseMode converts a mode name (case-insensitive) into a Mode.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return ModePointer, fmt.Errorf("unknown cursor mode %q", s)
}

// Next returns the mode after m in declaration order, wrapping to pointer.
// Hosts use it to cycle modes from a single key.
func (m Mode) Next() Mode {
	if m >= modeCount-1 {
		return ModePointer
	}
	return m + 1
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Phase is the externally observable selection state of a cursor.
type Phase uint8

const (
	PhaseIdle      Phase = iota // nothing selectable intersected
	PhaseHovering               // a selectable object is intersected
	PhaseDwelling               // a dwell is running against the intersected object
	PhaseTriggered              // a selection is being emitted (transient)
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseHovering:
		return "hovering"
	case PhaseDwelling:
		return "dwelling"
	case PhaseTriggered:
		return "triggered"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// EventType identifies a kind of cursor event.
type EventType uint8

const (
	EventHoverEnter EventType = iota // the cursor started intersecting an object
	EventHoverLeave                  // the cursor stopped intersecting an object
	EventSelect                      // the cursor selected an object
)

func (e EventType) String() string {
	switch e {
	case EventHoverEnter:
		return "hover-enter"
	case EventHoverLeave:
		return "hover-leave"
	case EventSelect:
		return "select"
	default:
		return fmt.Sprintf("EventType(%d)", uint8(e))
	}
}
