package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/xwill007/cursor"
	"github.com/xwill007/cursor/audio"
	"github.com/xwill007/cursor/hook"
	"github.com/xwill007/cursor/internal/termhost"
	"github.com/xwill007/cursor/selectlog"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [scenario.json]",
	Short: "Explore a scene in the terminal",
	Long: `Tui draws the scenario's scene (or a built-in demo scene) in the terminal.
The mouse aims the cursor, Tab cycles input modes, F2 toggles a simulated
immersive session and the arrow keys turn the view.

Voice mode reads one phrase per line from --speech (for example a named
pipe fed by a speech-to-text tool).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

var (
	tuiSpeech     string
	tuiGlobalKeys bool
	tuiSound      bool
	tuiHistory    string
	tuiTickMs     int
	tuiLogFile    string
)

func init() {
	tuiCmd.Flags().StringVar(&tuiSpeech, "speech", "", "file or pipe with one spoken phrase per line")
	tuiCmd.Flags().BoolVar(&tuiGlobalKeys, "global-keys", false, "also listen for keys system-wide")
	tuiCmd.Flags().BoolVar(&tuiSound, "sound", false, "play a click on select")
	tuiCmd.Flags().StringVar(&tuiHistory, "history", "", "record selections into this SQLite database")
	tuiCmd.Flags().IntVar(&tuiTickMs, "tick-ms", 33, "frame interval in milliseconds")
	tuiCmd.Flags().StringVar(&tuiLogFile, "log-file", "", "write logs to this file")
	rootCmd.AddCommand(tuiCmd)
}

const demoScenario = `{
  "objects": [
    {"id": "left",   "name": "left",   "tags": ["selectable"], "position": {"x": -2, "z": -6}, "radius": 0.6},
    {"id": "center", "name": "center", "tags": ["selectable"], "position": {"z": -6}, "radius": 0.6},
    {"id": "right",  "name": "right",  "tags": ["selectable"], "position": {"x": 2, "z": -6}, "radius": 0.6},
    {"id": "wall",   "name": "wall",   "position": {"y": 2, "z": -8}, "radius": 0.8},
    {"id": "bar",    "name": "scrub",  "tags": ["selectable"], "position": {"y": -2, "z": -6},
     "box": [{"x": -3, "y": -0.2, "z": -0.2}, {"x": 3, "y": 0.2, "z": 0.2}], "seek": true}
  ]
}`

func runTUI(cmd *cobra.Command, args []string) error {
	var (
		sc  *Scenario
		err error
	)
	if len(args) == 1 {
		sc, err = LoadScenario(args[0])
	} else {
		sc, err = ParseScenario([]byte(demoScenario))
	}
	if err != nil {
		return err
	}

	// Stderr shares the terminal with the screen; log to a file or nowhere.
	log := zerolog.Nop()
	if tuiLogFile != "" {
		f, err := os.OpenFile(tuiLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		log = newLogger().Output(f)
	}
	cfg, err := loadCursorConfig(sc.Config)
	if err != nil {
		return err
	}
	scene, _, err := sc.BuildScene()
	if err != nil {
		return err
	}

	opts := []cursor.Option{cursor.WithLogger(log)}
	if tuiSpeech != "" {
		f, err := os.Open(tuiSpeech)
		if err != nil {
			return fmt.Errorf("open speech source: %w", err)
		}
		defer f.Close()
		opts = append(opts, cursor.WithSpeechRecognizer(&cursor.LineRecognizer{R: f}))
	}
	c := cursor.New("tui", scene, cfg, opts...)
	defer c.Dispose()

	if tuiHistory != "" {
		store, err := selectlog.Open(tuiHistory)
		if err != nil {
			return err
		}
		defer store.Close()
		store.Attach(c, log)
	}

	if tuiSound {
		sound := audio.NewFeedback()
		if err := sound.Initialize(); err != nil {
			log.Warn().Err(err).Msg("audio unavailable")
		} else {
			defer sound.Cleanup()
			sound.Attach(c)
		}
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if tuiGlobalKeys {
		hook.Listen(ctx, c, log)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	termhost.New(screen, c, log).Run(time.Duration(tuiTickMs) * time.Millisecond)
	return nil
}
