// Package cmd implements the cursorsim command line.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xwill007/cursor"
)

var rootCmd = &cobra.Command{
	Use:   "cursorsim",
	Short: "Drive a pointer-agnostic selection cursor",
	Long: `cursorsim runs selection cursor scenarios: scripted runs that report
hover and select events, an interactive terminal scene, and a history of
recorded selections.

Configuration comes from (lowest to highest priority) built-in defaults,
a config file, CURSOR_* environment variables (also read from .env) and
command line flags.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is ./cursor.yaml or $HOME/.config/cursor/cursor.yaml)")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("mode", "", "input mode (pointer, fuse, key, voice, gaze, auto)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("env_file", rootCmd.PersistentFlags().Lookup("env-file"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("mode", rootCmd.PersistentFlags().Lookup("mode"))
}

// setDefaults registers every cursor option so that env variables for
// keys absent from the config file are still picked up.
func setDefaults() {
	d := cursor.DefaultConfig()
	viper.SetDefault("mode", d.Mode.String())
	viper.SetDefault("fuse_timeout_ms", d.FuseTimeoutMs)
	viper.SetDefault("gaze_dwell_ms", d.GazeDwellMs)
	viper.SetDefault("gaze_poll_ms", d.GazePollMs)
	viper.SetDefault("key_trigger", d.KeyTrigger)
	viper.SetDefault("raycast_far", d.RaycastFar)
	viper.SetDefault("selectable_tag", d.SelectableTag)
	viper.SetDefault("auto_switch_to_fuse_in_session", d.AutoSwitchToFuseInSession)
	viper.SetDefault("voice_commands", d.VoiceCommands)
	viper.SetDefault("native_events", d.NativeEvents)
}

func initConfig() {
	if envFile := viper.GetString("env_file"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "warning: load %s: %v\n", envFile, err)
		}
	}

	setDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cursor")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.config/cursor")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("CURSOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// cursorKeys are the viper keys decoded into cursor.Config.
var cursorKeys = []string{
	"mode", "fuse_timeout_ms", "gaze_dwell_ms", "gaze_poll_ms", "key_trigger",
	"raycast_far", "selectable_tag", "auto_switch_to_fuse_in_session",
	"voice_commands", "native_events",
}

// loadCursorConfig decodes the effective cursor configuration. overrides
// (e.g. a scenario's config block) win over every other source; an empty
// --mode flag leaves the configured mode alone.
func loadCursorConfig(overrides map[string]any) (cursor.Config, error) {
	settings := make(map[string]any, len(cursorKeys))
	for _, k := range cursorKeys {
		settings[k] = viper.Get(k)
	}
	if m, _ := settings["mode"].(string); m == "" {
		settings["mode"] = cursor.DefaultConfig().Mode.String()
	}
	maps.Copy(settings, overrides)
	return decodeCursorConfig(settings)
}

func decodeCursorConfig(settings map[string]any) (cursor.Config, error) {
	cfg := cursor.DefaultConfig()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return cfg, fmt.Errorf("create config decoder: %w", err)
	}
	if err := dec.Decode(settings); err != nil {
		return cfg, fmt.Errorf("decode cursor config: %w", err)
	}
	return cfg, nil
}

// newLogger returns a console logger at the configured level.
func newLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(viper.GetString("log_level"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}
