package cursor

import (
	"math"
	"slices"
	"testing"
	"time"
)

func TestDefaultConfigIsNormal(t *testing.T) {
	cfg, errs := DefaultConfig().Normalize()
	if len(errs) != 0 {
		t.Fatalf("Normalize(DefaultConfig) errors = %v", errs)
	}
	if cfg.FuseTimeout() != 3*time.Second {
		t.Errorf("FuseTimeout = %v, want 3s", cfg.FuseTimeout())
	}
	if cfg.GazeDwell() != 1500*time.Millisecond || cfg.GazePoll() != 100*time.Millisecond {
		t.Errorf("GazeDwell, GazePoll = %v, %v", cfg.GazeDwell(), cfg.GazePoll())
	}
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string // expected ValidationError field, "" for none
		check  func(Config) bool
	}{
		{"bad mode", func(c *Config) { c.Mode = Mode(42) }, "mode",
			func(c Config) bool { return c.Mode == ModePointer }},
		{"zero fuse", func(c *Config) { c.FuseTimeoutMs = 0 }, "fuse_timeout_ms",
			func(c Config) bool { return c.FuseTimeoutMs == DefaultFuseTimeoutMs }},
		{"negative gaze dwell", func(c *Config) { c.GazeDwellMs = -5 }, "gaze_dwell_ms",
			func(c Config) bool { return c.GazeDwellMs == DefaultGazeDwellMs }},
		{"zero gaze poll", func(c *Config) { c.GazePollMs = 0 }, "gaze_poll_ms",
			func(c Config) bool { return c.GazePollMs == DefaultGazePollMs }},
		{"poll longer than dwell", func(c *Config) { c.GazePollMs = 2000 }, "gaze_poll_ms",
			func(c Config) bool { return c.GazePollMs == c.GazeDwellMs }},
		{"blank key", func(c *Config) { c.KeyTrigger = "  " }, "key_trigger",
			func(c Config) bool { return c.KeyTrigger == "space" }},
		{"space character", func(c *Config) { c.KeyTrigger = " " }, "",
			func(c Config) bool { return c.KeyTrigger == "space" }},
		{"key alias", func(c *Config) { c.KeyTrigger = "Return" }, "",
			func(c Config) bool { return c.KeyTrigger == "enter" }},
		{"NaN far", func(c *Config) { c.RaycastFar = math.NaN() }, "raycast_far",
			func(c Config) bool { return c.RaycastFar == DefaultRaycastFar }},
		{"infinite far", func(c *Config) { c.RaycastFar = math.Inf(1) }, "raycast_far",
			func(c Config) bool { return c.RaycastFar == DefaultRaycastFar }},
		{"class selector", func(c *Config) { c.SelectableTag = ".button" }, "",
			func(c Config) bool { return c.SelectableTag == "button" }},
		{"attribute selector", func(c *Config) { c.SelectableTag = "[clickable]" }, "",
			func(c Config) bool { return c.SelectableTag == "clickable" }},
		{"malformed selector", func(c *Config) { c.SelectableTag = "a b!" }, "selectable_tag",
			func(c Config) bool { return c.SelectableTag == DefaultSelectableTag }},
		{"voice phrases cleaned", func(c *Config) { c.VoiceCommands = []string{"Select!", " Go  Now ", ""} }, "",
			func(c Config) bool { return slices.Equal(c.VoiceCommands, []string{"select", "go now"}) }},
		{"voice phrases unusable", func(c *Config) { c.VoiceCommands = []string{"!!", " "} }, "voice_commands",
			func(c Config) bool { return slices.Equal(c.VoiceCommands, DefaultVoiceCommands) }},
		{"voice phrases empty", func(c *Config) { c.VoiceCommands = nil }, "",
			func(c Config) bool { return slices.Equal(c.VoiceCommands, DefaultVoiceCommands) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			got, errs := cfg.Normalize()
			switch {
			case tt.field == "" && len(errs) != 0:
				t.Errorf("errors = %v, want none", errs)
			case tt.field != "" && (len(errs) != 1 || errs[0].Field != tt.field):
				t.Errorf("errors = %v, want one for %s", errs, tt.field)
			}
			if !tt.check(got) {
				t.Errorf("normalized config = %+v", got)
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := ValidationError{Field: "fuse_timeout_ms", Value: -1, Message: "must be positive"}
	want := "fuse_timeout_ms: must be positive (got: -1)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestParseEnv(t *testing.T) {
	t.Setenv("CURSOR_MODE", "fuse")
	t.Setenv("CURSOR_FUSE_TIMEOUT_MS", "1200")
	t.Setenv("CURSOR_VOICE_COMMANDS", "go,tap")
	t.Setenv("CURSOR_AUTO_SWITCH_TO_FUSE_IN_SESSION", "true")

	cfg := DefaultConfig()
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("ParseEnv: %v", err)
	}
	if cfg.Mode != ModeFuse {
		t.Errorf("Mode = %v, want fuse", cfg.Mode)
	}
	if cfg.FuseTimeoutMs != 1200 {
		t.Errorf("FuseTimeoutMs = %d, want 1200", cfg.FuseTimeoutMs)
	}
	if !slices.Equal(cfg.VoiceCommands, []string{"go", "tap"}) {
		t.Errorf("VoiceCommands = %v", cfg.VoiceCommands)
	}
	if !cfg.AutoSwitchToFuseInSession {
		t.Error("AutoSwitchToFuseInSession = false")
	}
	if cfg.GazeDwellMs != DefaultGazeDwellMs {
		t.Errorf("GazeDwellMs = %d, unset variables must keep defaults", cfg.GazeDwellMs)
	}
}

func TestParseEnvBadMode(t *testing.T) {
	t.Setenv("CURSOR_MODE", "laser")
	cfg := DefaultConfig()
	if err := ParseEnv(&cfg); err == nil {
		t.Error("ParseEnv with CURSOR_MODE=laser should fail")
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{" ", "space"},
		{"Space", "space"},
		{"spacebar", "space"},
		{"Return", "enter"},
		{"ESC", "escape"},
		{" E ", "e"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeKey(tt.in); got != tt.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
