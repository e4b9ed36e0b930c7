package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/bounce/internal/automation"
	"github.com/san-kum/bounce/internal/config"
	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/export"
	"github.com/san-kum/bounce/internal/gui"
	"github.com/san-kum/bounce/internal/logging"
	"github.com/san-kum/bounce/internal/metrics"
	"github.com/san-kum/bounce/internal/sim"
	"github.com/san-kum/bounce/internal/storage"
	"github.com/san-kum/bounce/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	width      int
	height     int
	fps        int
	runFrames  int
	svgFrames  int
	noSave     bool
	jsonOut    string
	svgOut     string
	dumpOut    string
	trails     bool
	entityIdx  int
	theme      string

	log = zap.NewNop()
)

func main() {
	err := newRootCmd().Execute()
	_ = log.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bounce",
		Short:         "bouncing shapes with a live control panel",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(logLevel)
			if err != nil {
				return err
			}
			log = l
			return nil
		},
		RunE: runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".bounce", "data directory")
	pf.StringVar(&configFile, "config", "", "scene file (yaml or text)")
	pf.StringVar(&preset, "preset", "", "built-in scene (see presets)")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "debug, info, warn or error")
	pf.IntVar(&width, "width", 0, "override window width")
	pf.IntVar(&height, "height", 0, "override window height")
	pf.IntVar(&fps, "fps", 0, "override frame rate")
	rootCmd.MarkFlagsMutuallyExclusive("config", "preset")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the scene in a window",
		RunE:  runGUI,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the scene in the terminal",
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&theme, "theme", "minimal", fmt.Sprintf("color theme %v", viz.ThemeNames()))

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and record the trajectory",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&runFrames, "frames", 600, "frames to simulate")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not record the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot an entity's trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&entityIdx, "entity", 0, "entity index")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&jsonOut, "output", "o", "", "output file (default stdout)")

	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "render a frame to svg",
		RunE:  renderSVG,
	}
	svgCmd.Flags().IntVar(&svgFrames, "frames", 0, "frames to simulate before rendering")
	svgCmd.Flags().StringVarP(&svgOut, "output", "o", "bounce.svg", "output file")
	svgCmd.Flags().BoolVar(&trails, "trails", false, "draw each entity's path")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenes",
		RunE:  listPresets,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted scenario and record it",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&noSave, "no-save", false, "do not record the run")

	validateCmd := &cobra.Command{
		Use:   "validate [config]",
		Short: "check a scene file",
		Args:  cobra.ExactArgs(1),
		RunE:  validateConfig,
	}

	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "write the resolved scene as yaml",
		RunE:  dumpScene,
	}
	dumpCmd.Flags().StringVarP(&dumpOut, "output", "o", "scene.yaml", "output file")

	rootCmd.AddCommand(guiCmd, tuiCmd, runCmd, listCmd, plotCmd, exportJSONCmd, svgCmd, presetsCmd, scenarioCmd, validateCmd, dumpCmd)
	return rootCmd
}

// loadScene resolves the scene from a config file or a preset, then applies
// flag overrides. With neither, the demo preset is used.
func loadScene(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error

	switch {
	case configFile != "":
		cfg, err = config.Load(configFile, log)
	case preset != "":
		cfg, err = config.GetPreset(preset)
	default:
		cfg, err = config.GetPreset("demo")
	}
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("width") {
		cfg.Window.Width = width
	}
	if cmd.Flags().Changed("height") {
		cfg.Window.Height = height
	}
	if cmd.Flags().Changed("fps") {
		cfg.FPS = fps
	}
	if cfg.FPS <= 0 {
		cfg.FPS = config.DefaultFPS
	}
	if !cmd.Flags().Changed("log-level") && cfg.LogLevel != "" && cfg.LogLevel != logLevel {
		l, err := logging.New(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		log = l
	}
	return cfg, cfg.Validate()
}

func sceneName() string {
	if configFile != "" {
		return strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
	}
	if preset != "" {
		return preset
	}
	return "demo"
}

func newSimulator(cmd *cobra.Command) (*sim.Simulator, *config.Config, error) {
	cfg, err := loadScene(cmd)
	if err != nil {
		return nil, nil, err
	}
	s := sim.New(cfg.WindowDescriptor(), cfg.FontDescriptor(), cfg.Templates(log), log)
	log.Debug("scene loaded",
		zap.String("scene", sceneName()),
		zap.Int("entities", s.Store().Len()),
		zap.Int("fps", cfg.FPS))
	return s, cfg, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	s, cfg, err := newSimulator(cmd)
	if err != nil {
		return err
	}
	return gui.Run(s, gui.Options{FPS: cfg.FPS, Log: log})
}

func runTUI(cmd *cobra.Command, args []string) error {
	s, cfg, err := newSimulator(cmd)
	if err != nil {
		return err
	}
	// the alternate screen owns the terminal, keep stderr quiet
	quiet := log.WithOptions(zap.IncreaseLevel(zap.ErrorLevel))
	return viz.Run(s, viz.Options{FPS: cfg.FPS, Theme: theme, Log: quiet})
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	s, _, err := newSimulator(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	return record(ctx, s, sceneName(), func(ctx context.Context) error {
		return s.Run(ctx, runFrames)
	})
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	s, err := sc.Simulator(log)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	name := sc.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	}
	return record(ctx, s, name, func(ctx context.Context) error {
		return automation.Run(ctx, sc, s, log)
	})
}

// record attaches metrics and a recorder to s, runs it, and saves the run
// unless --no-save is set.
func record(ctx context.Context, s *sim.Simulator, scene string, run func(context.Context) error) error {
	ms := metrics.Default(s.Window())
	rec := storage.NewRecorder()
	s.AddObserver(ms)
	s.AddObserver(rec)

	fmt.Printf("running %s (%d entities)...\n", scene, s.Store().Len())
	start := time.Now()
	if err := run(ctx); err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed %d frames in %v\n", rec.Frames(), elapsed)
	values := ms.Values()
	fmt.Println("\nmetrics:")
	for _, name := range ms.Names() {
		fmt.Printf("  %s: %.4f\n", name, values[name])
	}

	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Scene:    scene,
		Window:   s.Window(),
		Frames:   rec.Frames(),
		Entities: s.Store().Len(),
		Metrics:  values,
	}, rec.Samples())
	if err != nil {
		return err
	}
	log.Info("run saved", zap.String("id", runID), zap.Int("samples", len(rec.Samples())))
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tFRAMES\tENTITIES\tBOUNCES\tFINGERPRINT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.0f\t%s\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Entities,
			run.Metrics["bounces"],
			run.Fingerprint,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	xs, ys := storage.Series(samples, entityIdx)
	if len(xs) == 0 {
		return fmt.Errorf("no samples for entity %d in run %s", entityIdx, runID)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("samples: %d\n\n", len(xs))

	for _, series := range []struct {
		data    []float64
		caption string
	}{
		{xs, fmt.Sprintf("entity %d x (window width %d)", entityIdx, meta.Window.Width)},
		{ys, fmt.Sprintf("entity %d y (window height %d)", entityIdx, meta.Window.Height)},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if jsonOut == "" {
		return st.ExportJSON(os.Stdout, args[0])
	}

	f, err := os.Create(jsonOut)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := st.ExportJSON(f, args[0]); err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", args[0], jsonOut)
	return nil
}

func renderSVG(cmd *cobra.Command, args []string) error {
	s, _, err := newSimulator(cmd)
	if err != nil {
		return err
	}

	rec := storage.NewRecorder()
	s.AddObserver(rec)
	// Run treats 0 as "until cancelled"
	if svgFrames > 0 {
		if err := s.Run(context.Background(), svgFrames); err != nil {
			return err
		}
	}

	r := export.NewSVGRenderer(s.Window(), dynamo.Black)
	if trails {
		for i, e := range s.Store() {
			xs, ys := storage.Series(rec.Samples(), i)
			points := make([]dynamo.Vec2, len(xs))
			for j := range xs {
				points[j] = dynamo.Vec2{X: xs[j], Y: ys[j]}
			}
			r.Trail(points, e.Color)
		}
	}
	s.Render(r)

	if err := os.WriteFile(svgOut, []byte(r.String()), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote frame %d to %s\n", s.FrameNumber(), svgOut)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tWINDOW\tENTITIES")
	for _, name := range config.ListPresets() {
		cfg, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%dx%d\t%d\n", name, cfg.Window.Width, cfg.Window.Height, len(cfg.Entities))
	}
	return w.Flush()
}

func validateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(args[0], log)
	if err != nil {
		return err
	}
	templates := cfg.Templates(log)

	fmt.Printf("window: %q %dx%d\n", cfg.Window.Caption, cfg.Window.Width, cfg.Window.Height)
	fmt.Printf("font: size %d\n", cfg.FontDescriptor().Size)
	fmt.Printf("entities: %d usable of %d\n", len(templates), len(cfg.Entities))
	if len(templates) < len(cfg.Entities) {
		return fmt.Errorf("%d entities rejected", len(cfg.Entities)-len(templates))
	}
	return nil
}

func dumpScene(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd)
	if err != nil {
		return err
	}

	templates := cfg.Templates(log)
	cfg.Entities = make([]config.EntityConfig, len(templates))
	for i, t := range templates {
		cfg.Entities[i] = config.FromTemplate(t)
	}

	if err := config.Save(dumpOut, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d entities)\n", dumpOut, len(templates))
	return nil
}
