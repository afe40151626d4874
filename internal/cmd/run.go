package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/xwill007/cursor"
	"github.com/xwill007/cursor/ecs"
	"github.com/xwill007/cursor/internal/telemetry"
	"github.com/xwill007/cursor/selectlog"

	"github.com/yohamta/donburi"
)

var runCmd = &cobra.Command{
	Use:   "run <scenario.json>",
	Short: "Play a scripted scenario and report cursor events",
	Long: `Run builds the scenario's scene, plays its steps against a cursor with a
fixed frame step and prints every hover, select and seek as it happens.

If the scenario has an "expect" block the command fails when the observed
selections differ.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

var (
	runFrameMs int
	runHistory string
	runQuiet   bool
)

func init() {
	runCmd.Flags().IntVar(&runFrameMs, "frame-ms", 16, "frame step in milliseconds")
	runCmd.Flags().StringVar(&runHistory, "history", "", "record selections into this SQLite database")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "print only the summary")
	rootCmd.AddCommand(runCmd)
}

var (
	styleStep    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleHover   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleSelect  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	styleSeek    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleFail    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	styleHeading = lipgloss.NewStyle().Bold(true).Underline(true)
)

// RunResult is what a scenario run observed.
type RunResult struct {
	Selects []string
	Seeks   []string
	Final   cursor.CursorState
}

func runRun(cmd *cobra.Command, args []string) error {
	sc, err := LoadScenario(args[0])
	if err != nil {
		return err
	}
	log := newLogger()

	tcfg, err := telemetry.ConfigFromEnv()
	if err != nil {
		return err
	}
	shutdown, err := telemetry.Setup(cmd.Context(), tcfg)
	if err != nil {
		log.Warn().Err(err).Msg("tracing disabled")
	}
	defer func() { _ = shutdown(context.Background()) }()

	var history *selectlog.Store
	if runHistory != "" {
		history, err = selectlog.Open(runHistory)
		if err != nil {
			return err
		}
		defer history.Close()
	}

	out := cmd.OutOrStdout()
	if runQuiet {
		out = io.Discard
	}
	res, err := RunScenario(sc, RunOptions{
		Frame:   time.Duration(runFrameMs) * time.Millisecond,
		Out:     out,
		Log:     log,
		History: history,
	})
	if err != nil {
		return err
	}

	summary := cmd.OutOrStdout()
	fmt.Fprintln(summary, styleHeading.Render("summary"))
	fmt.Fprintf(summary, "selects: %v\nseeks:   %v\nfinal:   mode=%s phase=%s target=%q\n",
		res.Selects, res.Seeks, res.Final.Mode, res.Final.Phase, res.Final.Intersected)
	if err := sc.Expect.Check(res.Selects, res.Seeks); err != nil {
		fmt.Fprintln(summary, styleFail.Render("FAIL: "+err.Error()))
		return err
	}
	if sc.Expect != nil {
		fmt.Fprintln(summary, styleSelect.Render("PASS"))
	}
	return nil
}

// RunOptions configures RunScenario.
type RunOptions struct {
	Frame   time.Duration
	Out     io.Writer
	Log     zerolog.Logger
	History *selectlog.Store
}

// RunScenario plays sc against a fresh cursor and returns what it observed.
// Selections are also counted through a Donburi world, the way an ECS
// system would see them.
func RunScenario(sc *Scenario, opts RunOptions) (RunResult, error) {
	var res RunResult
	if opts.Out == nil {
		opts.Out = io.Discard
	}

	cfg, err := loadCursorConfig(sc.Config)
	if err != nil {
		return res, err
	}
	scene, seeks, err := sc.BuildScene()
	if err != nil {
		return res, err
	}

	world := donburi.NewWorld()
	scene.SetEntityStore(ecs.NewDonburiStore(world))
	ecsSelects := 0
	ecs.OnSelect(world, func(donburi.World, cursor.InteractionEvent) { ecsSelects++ })

	speech := &cursor.ManualRecognizer{}
	c := cursor.New("sim", scene, cfg,
		cursor.WithLogger(opts.Log),
		cursor.WithSpeechRecognizer(speech),
	)
	defer c.Dispose()

	if opts.History != nil {
		opts.History.Attach(c, opts.Log)
	}

	out := opts.Out
	seen := 0
	c.OnHoverEnter(func(ev cursor.HoverEvent) {
		fmt.Fprintln(out, styleHover.Render("  hover-enter "+ev.TargetID))
	})
	c.OnHoverLeave(func(ev cursor.HoverEvent) {
		fmt.Fprintln(out, styleHover.Render("  hover-leave "+ev.TargetID))
	})
	c.OnSelect(func(ev cursor.SelectEvent) {
		res.Selects = append(res.Selects, ev.TargetID)
		fmt.Fprintln(out, styleSelect.Render(fmt.Sprintf("  select %s (%s)", ev.TargetID, ev.Mode)))
		// Seek requests are made before the select is delivered.
		for ; seen < len(seeks.Requests); seen++ {
			req := seeks.Requests[seen]
			res.Seeks = append(res.Seeks, req.TargetID)
			fmt.Fprintln(out, styleSeek.Render(fmt.Sprintf("  seek %s at (%.2f, %.2f, %.2f)", req.TargetID, req.Point.X, req.Point.Y, req.Point.Z)))
		}
	})

	runner := &cursor.Runner{
		Cursor: c,
		Speech: speech,
		Frame:  opts.Frame,
		OnStep: func(i int, st cursor.Step) {
			fmt.Fprintln(out, styleStep.Render(fmt.Sprintf("#%d %s", i, describeStep(st))))
		},
	}
	if err := runner.Run(&cursor.Script{Steps: sc.Steps}); err != nil {
		return res, err
	}

	ecs.InteractionEventType.ProcessEvents(world)
	if c.Config().NativeEvents && ecsSelects != len(res.Selects) {
		opts.Log.Warn().Int("ecs", ecsSelects).Int("cursor", len(res.Selects)).Msg("ECS bridge saw a different number of selects")
	}

	res.Final = c.State()
	return res, nil
}

func describeStep(st cursor.Step) string {
	switch st.Action {
	case "hover":
		return "hover " + st.Target
	case "wait":
		if st.Frames > 0 {
			return fmt.Sprintf("wait %d frames", st.Frames)
		}
		return fmt.Sprintf("wait %dms", st.Ms)
	case "key", "keyup":
		return st.Action + " " + st.Key
	case "say", "hear":
		return fmt.Sprintf("%s %q", st.Action, st.Text)
	case "mode":
		return "mode " + st.Mode
	}
	return st.Action
}
