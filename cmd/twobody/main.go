package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/twobody/internal/analysis"
	"github.com/san-kum/twobody/internal/automation"
	"github.com/san-kum/twobody/internal/config"
	"github.com/san-kum/twobody/internal/dynamo"
	"github.com/san-kum/twobody/internal/experiment"
	"github.com/san-kum/twobody/internal/export"
	"github.com/san-kum/twobody/internal/optim"
	"github.com/san-kum/twobody/internal/sim"
	"github.com/san-kum/twobody/internal/storage"
	"github.com/san-kum/twobody/internal/tui"
	"github.com/san-kum/twobody/internal/viz"
)

var (
	dataDir string
	verbose bool
	logger  = zap.NewNop()

	configFile string
	preset     string
	integrator string
	label      string
	g          float64
	dt         float64
	steps      int
	overrides  []string

	plotWidth  int
	plotHeight int
	series     bool

	svgOut    string
	svgWidth  int
	svgHeight int

	sweepParam  string
	sweepMin    float64
	sweepMax    float64
	sweepPoints int
	metricName  string
	gridParams  []string
	frameRate   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "twobody",
		Short:         "two-body integration lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(verbose)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".twobody", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().StringVar(&label, "label", "", "run label (defaults to preset name)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot both trajectories",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotWidth, "width", 60, "plot width in cells")
	plotCmd.Flags().IntVar(&plotHeight, "height", 20, "plot height in cells")
	plotCmd.Flags().BoolVar(&series, "series", false, "also plot each coordinate against step")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export both trajectories as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&svgOut, "output", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 600, "image height")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "separation spectrum and sensitivity",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	replayCmd := &cobra.Command{
		Use:   "replay [run_id]",
		Short: "replay a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  replayRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tINTEG\tG\tDT\tSTEPS")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%d\n", name, p.Integrator, p.G, p.Dt, p.Steps)
			}
			return w.Flush()
		},
	}

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "compare integrators on the same initial state",
		RunE:  compareIntegrators,
	}
	addSimFlags(compareCmd)
	compareCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run and store every step of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "vary one parameter and report metrics",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	sweepCmd.Flags().StringVar(&sweepParam, "param", "g", "override key to vary")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 2, "last value")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 5, "number of values")
	sweepCmd.Flags().StringVar(&metricName, "metric", "max_separation", "metric to report")

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "grid search parameters minimizing a metric",
		Args:  cobra.NoArgs,
		RunE:  runSearch,
	}
	addSimFlags(searchCmd)
	searchCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	searchCmd.Flags().StringArrayVar(&gridParams, "grid", nil, "key=v1,v2,... (repeatable)")
	searchCmd.Flags().StringVar(&metricName, "metric", "max_separation", "metric to minimize")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, analyzeCmd, replayCmd, presetsCmd, compareCmd, scenarioCmd, sweepCmd, searchCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator")
	cmd.Flags().Float64Var(&g, "g", config.DefaultG, "gravitational constant")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().StringArrayVar(&overrides, "set", nil, "override a field, e.g. --set b.mass=2 (repeatable)")
}

// resolveConfig layers defaults, preset, config file, explicit flags and
// --set overrides, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadOnto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("g") {
		cfg.G = g
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}

	if len(overrides) > 0 {
		values, err := config.ParseOverrides(overrides)
		if err != nil {
			return nil, err
		}
		if err := cfg.ApplyOverrides(values); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	runLabel := label
	if runLabel == "" {
		runLabel = preset
	}

	st := storage.New(dataDir, logger)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(runLabel, cfg, logger)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}

	fmt.Printf("running %s (%d steps, dt=%g, g=%g)...\n", cfg.Integrator, cfg.Steps, cfg.Dt, cfg.G)
	start := time.Now()

	result, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(exp.Metadata(result), result.Trajectory)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	printFinal(result.Trajectory)
	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)

	return nil
}

// runLive integrates at --fps steps per second without storing the run.
func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	stepper, err := experiment.NewRegistry().GetIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}

	title := preset
	if title == "" {
		title = cfg.Integrator
	}
	renderer := tui.NewLiveRenderer(os.Stdout, title, cfg.Steps, frameRate).Paced()

	s := sim.New(stepper)
	s.AddObserver(renderer)
	a, b := cfg.Particles()
	result, err := s.Run(cmd.Context(), a, b, cfg.SimConfig())
	if result != nil && result.StepsTaken > 0 {
		renderer.Finish(result.StepsTaken - 1)
	}
	return err
}

func printFinal(tr dynamo.Trajectory) {
	if len(tr) == 0 {
		return
	}
	last := tr[len(tr)-1]
	fmt.Println(viz.Metric("final a", last.A.String()))
	fmt.Println(viz.Metric("final b", last.B.String()))
}

func printMetrics(m map[string]float64) {
	for _, name := range sortedKeys(m) {
		fmt.Println(viz.Metric("  "+name, fmt.Sprintf("%.6f", m[name])))
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, logger)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tINTEG\tG\tDT\tSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%g\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Integrator,
			run.G,
			run.Dt,
			run.Steps,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, dynamo.Trajectory, error) {
	st := storage.New(dataDir, logger)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	tr, err := st.LoadTrajectory(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, tr, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(tr) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Println(viz.HeaderStyle.Render(meta.ID))
	fmt.Printf("integrator: %s  samples: %d\n\n", meta.Integrator, len(tr))
	fmt.Println(viz.Plot(tr, plotWidth, plotHeight))
	fmt.Println(viz.Legend())

	if !series {
		return nil
	}

	for _, body := range []dynamo.Body{dynamo.BodyA, dynamo.BodyB} {
		xs, ys := tr.Series(body)
		for _, s := range []struct {
			axis string
			data []float64
		}{{"x", xs}, {"y", ys}} {
			fmt.Println()
			fmt.Println(asciigraph.Plot(s.data,
				asciigraph.Height(10),
				asciigraph.Width(80),
				asciigraph.Caption(fmt.Sprintf("body %s %s vs step", body, s.axis)),
			))
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, tr)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(tr) == 0 {
		return fmt.Errorf("no data to export")
	}
	return storage.WriteCSV(os.Stdout, tr)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}

	if svgOut == "" {
		return export.WriteSVG(os.Stdout, tr, svgWidth, svgHeight)
	}

	f, err := os.Create(svgOut)
	if err != nil {
		return err
	}
	if err := export.WriteSVG(f, tr, svgWidth, svgHeight); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(tr) < 2 {
		return fmt.Errorf("not enough samples to analyze")
	}

	fmt.Printf("separation analysis: %s\n", meta.ID)
	fmt.Printf("integrator: %s\n\n", meta.Integrator)

	res := analysis.Spectrum(tr, meta.Dt)
	plotData := res.Power
	if len(plotData) > 8 {
		plotData = plotData[:len(plotData)/4]
	}
	fmt.Println(asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (separation)"),
	))
	fmt.Println()

	if res.Period > 0 {
		fmt.Printf("dominant period: %.3f\n", res.Period)
	} else {
		fmt.Println("no oscillation")
	}

	stepper, err := experiment.NewRegistry().GetIntegrator(meta.Integrator)
	if err != nil {
		return err
	}
	lambda := analysis.Sensitivity(stepper, meta.BodyA, meta.BodyB, meta.G, meta.Dt, meta.Steps, 1e-8)
	fmt.Printf("sensitivity: %.6f\n", lambda)

	return nil
}

func replayRun(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(tr) == 0 {
		return fmt.Errorf("no data to replay")
	}

	p := tea.NewProgram(viz.NewReplay(meta.ID, tr), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	names := args
	if len(names) == 0 {
		names = registry.ListIntegrators()
	}

	a, b := cfg.Particles()
	fmt.Printf("comparing integrators (g=%g, dt=%g, steps=%d)\n\n", cfg.G, cfg.Dt, cfg.Steps)
	fmt.Printf("%-10s  %-28s  %-28s  %-12s  %-10s\n", "integrator", "final_a", "final_b", "max_sep", "time_ms")
	fmt.Println(strings.Repeat("-", 96))

	for _, name := range names {
		stepper, err := registry.GetIntegrator(name)
		if err != nil {
			fmt.Printf("%-10s  error: %v\n", name, err)
			continue
		}

		s := sim.New(stepper)
		for _, m := range registry.DefaultMetrics(a, b) {
			s.AddMetric(m)
		}

		start := time.Now()
		result, err := s.Run(cmd.Context(), a, b, cfg.SimConfig())
		elapsed := time.Since(start)
		if err != nil {
			fmt.Printf("%-10s  error: %v\n", name, err)
			continue
		}

		finalA, finalB := a.Position, b.Position
		if n := len(result.Trajectory); n > 0 {
			finalA, finalB = result.Trajectory[n-1].A, result.Trajectory[n-1].B
		}

		fmt.Printf("%-10s  %-28s  %-28s  %12.6f  %10.2f\n",
			name, finalA, finalB, result.Metrics["max_separation"], float64(elapsed.Microseconds())/1000)
	}

	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir, logger)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario %s: %d steps\n", scenario.Name, len(scenario.Steps))
	results, runErr := automation.RunScenario(cmd.Context(), scenario, experiment.NewRegistry(), logger)

	for _, r := range results {
		runID, err := st.Save(r.Experiment.Metadata(r.Result), r.Result.Trajectory)
		if err != nil {
			return err
		}
		fmt.Printf("  %s\n", runID)
	}

	return runErr
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	results, err := automation.RunSweep(cmd.Context(), &automation.ParameterSweep{
		Base:   cfg,
		Param:  sweepParam,
		Min:    sweepMin,
		Max:    sweepMax,
		Points: sweepPoints,
	}, experiment.NewRegistry(), logger)
	if err != nil {
		return err
	}

	fmt.Printf("%-12s  %-28s  %-28s  %-12s\n", sweepParam, "final_a", "final_b", metricName)
	fmt.Println(strings.Repeat("-", 86))
	values := make([]float64, len(results))
	for i, r := range results {
		values[i] = r.Metrics[metricName]
		fmt.Printf("%12.6f  %-28s  %-28s  %12.6f\n", r.Value, r.Final.A, r.Final.B, values[i])
	}

	if len(values) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(values,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("%s vs %s", metricName, sweepParam)),
		))
	}
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if len(gridParams) == 0 {
		return fmt.Errorf("at least one --grid is required")
	}

	names, ranges, err := parseGrid(gridParams)
	if err != nil {
		return err
	}

	params, best, err := optim.NewGridSearch(names, ranges).Search(cmd.Context(), cfg, experiment.NewRegistry(), metricName)
	if err != nil {
		return err
	}

	fmt.Printf("best %s: %.6f\n", metricName, best)
	for _, name := range names {
		fmt.Println(viz.Metric("  "+name, fmt.Sprintf("%g", params[name])))
	}
	return nil
}
