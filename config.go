package cursor

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Configuration defaults.
const (
	DefaultFuseTimeoutMs = 3000
	DefaultGazeDwellMs   = 1500
	DefaultGazePollMs    = 100
	DefaultKeyTrigger    = "space"
	DefaultRaycastFar    = 30.0
	DefaultSelectableTag = "selectable"
)

// DefaultVoiceCommands is the vocabulary the voice adapter listens for.
var DefaultVoiceCommands = []string{"select", "click", "choose", "pick"}

// Config is the per-cursor configuration. It is normalized once in New and
// read-only afterwards.
type Config struct {
	// Mode is the initial input mode.
	Mode Mode `mapstructure:"mode" env:"MODE"`
	// FuseTimeoutMs is how long a fuse dwell lasts before selecting.
	FuseTimeoutMs int `mapstructure:"fuse_timeout_ms" env:"FUSE_TIMEOUT_MS"`
	// GazeDwellMs is the accumulated gaze time needed to select.
	GazeDwellMs int `mapstructure:"gaze_dwell_ms" env:"GAZE_DWELL_MS"`
	// GazePollMs is the gaze adapter's polling interval.
	GazePollMs int `mapstructure:"gaze_poll_ms" env:"GAZE_POLL_MS"`
	// KeyTrigger names the key that selects in key mode (e.g. "space", "enter", "e").
	KeyTrigger string `mapstructure:"key_trigger" env:"KEY_TRIGGER"`
	// RaycastFar limits how far the cursor ray reaches, in scene units.
	RaycastFar float64 `mapstructure:"raycast_far" env:"RAYCAST_FAR"`
	// SelectableTag marks objects eligible for selection. CSS-like forms
	// such as ".selectable" or "[selectable]" are accepted.
	SelectableTag string `mapstructure:"selectable_tag" env:"SELECTABLE_TAG"`
	// AutoSwitchToFuseInSession forces fuse mode while an immersive session is active.
	AutoSwitchToFuseInSession bool `mapstructure:"auto_switch_to_fuse_in_session" env:"AUTO_SWITCH_TO_FUSE_IN_SESSION"`
	// VoiceCommands are the phrases that select in voice mode.
	VoiceCommands []string `mapstructure:"voice_commands" env:"VOICE_COMMANDS" envSeparator:","`
	// NativeEvents forwards cursor events to the scene's EntityStore.
	NativeEvents bool `mapstructure:"native_events" env:"NATIVE_EVENTS"`
}

// DefaultConfig returns a Config with all defaults applied.
func DefaultConfig() Config {
	return Config{
		Mode:          ModePointer,
		FuseTimeoutMs: DefaultFuseTimeoutMs,
		GazeDwellMs:   DefaultGazeDwellMs,
		GazePollMs:    DefaultGazePollMs,
		KeyTrigger:    DefaultKeyTrigger,
		RaycastFar:    DefaultRaycastFar,
		SelectableTag: DefaultSelectableTag,
		VoiceCommands: append([]string(nil), DefaultVoiceCommands...),
		NativeEvents:  true,
	}
}

// ParseEnv overlays CURSOR_-prefixed environment variables onto cfg.
// Unset variables leave the current values in place.
func ParseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "CURSOR_"}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// FuseTimeout returns FuseTimeoutMs as a duration.
func (c Config) FuseTimeout() time.Duration {
	return time.Duration(c.FuseTimeoutMs) * time.Millisecond
}

// GazeDwell returns GazeDwellMs as a duration.
func (c Config) GazeDwell() time.Duration {
	return time.Duration(c.GazeDwellMs) * time.Millisecond
}

// GazePoll returns GazePollMs as a duration.
func (c Config) GazePoll() time.Duration {
	return time.Duration(c.GazePollMs) * time.Millisecond
}

// ValidationError describes a configuration value that was replaced.
type ValidationError struct {
	Field   string // config key, e.g. "fuse_timeout_ms"
	Value   any    // the rejected value
	Message string // what was done about it
}

// Error implements the error interface for ValidationError.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

var tagPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// Normalize clamps invalid values to their documented defaults and returns
// the corrected config with one ValidationError per replaced value.
func (c Config) Normalize() (Config, []ValidationError) {
	var errs []ValidationError
	d := DefaultConfig()

	if !c.Mode.Valid() {
		errs = append(errs, ValidationError{"mode", c.Mode, "unknown mode, using pointer"})
		c.Mode = d.Mode
	}
	if c.FuseTimeoutMs <= 0 {
		errs = append(errs, ValidationError{"fuse_timeout_ms", c.FuseTimeoutMs, fmt.Sprintf("must be positive, using %d", d.FuseTimeoutMs)})
		c.FuseTimeoutMs = d.FuseTimeoutMs
	}
	if c.GazeDwellMs <= 0 {
		errs = append(errs, ValidationError{"gaze_dwell_ms", c.GazeDwellMs, fmt.Sprintf("must be positive, using %d", d.GazeDwellMs)})
		c.GazeDwellMs = d.GazeDwellMs
	}
	if c.GazePollMs <= 0 {
		errs = append(errs, ValidationError{"gaze_poll_ms", c.GazePollMs, fmt.Sprintf("must be positive, using %d", d.GazePollMs)})
		c.GazePollMs = d.GazePollMs
	}
	if c.GazePollMs > c.GazeDwellMs {
		errs = append(errs, ValidationError{"gaze_poll_ms", c.GazePollMs, "exceeds gaze_dwell_ms, clamped"})
		c.GazePollMs = c.GazeDwellMs
	}

	key := NormalizeKey(c.KeyTrigger)
	if key == "" {
		errs = append(errs, ValidationError{"key_trigger", c.KeyTrigger, "empty key, using " + d.KeyTrigger})
		key = d.KeyTrigger
	}
	c.KeyTrigger = key

	if c.RaycastFar <= 0 || math.IsNaN(c.RaycastFar) || math.IsInf(c.RaycastFar, 0) {
		errs = append(errs, ValidationError{"raycast_far", c.RaycastFar, fmt.Sprintf("must be positive and finite, using %v", d.RaycastFar)})
		c.RaycastFar = d.RaycastFar
	}

	tag := parseSelector(c.SelectableTag)
	if !tagPattern.MatchString(tag) {
		errs = append(errs, ValidationError{"selectable_tag", c.SelectableTag, "malformed selector, using " + d.SelectableTag})
		tag = d.SelectableTag
	}
	c.SelectableTag = tag

	var words []string
	for _, w := range c.VoiceCommands {
		if w = normalizePhrase(w); w != "" {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		if len(c.VoiceCommands) > 0 {
			errs = append(errs, ValidationError{"voice_commands", c.VoiceCommands, "no usable phrases, using defaults"})
		}
		words = d.VoiceCommands
	}
	c.VoiceCommands = words

	return c, errs
}

// parseSelector reduces ".tag", "[tag]" and "tag" to the bare tag name.
func parseSelector(s string) string {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "."):
		return s[1:]
	case strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"):
		return strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

var keyAliases = map[string]string{
	" ":        "space",
	"spacebar": "space",
	"return":   "enter",
	"esc":      "escape",
}

// NormalizeKey lower-cases a key name and folds common aliases, so that
// "Space", " " and "spacebar" all compare equal.
func NormalizeKey(key string) string {
	if key == " " {
		return "space"
	}
	k := strings.ToLower(strings.TrimSpace(key))
	if alias, ok := keyAliases[k]; ok {
		return alias
	}
	return k
}
