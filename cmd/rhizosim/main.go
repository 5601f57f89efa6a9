package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/rhizotron/rhizosim/internal/analysis"
	"github.com/rhizotron/rhizosim/internal/batch"
	"github.com/rhizotron/rhizosim/internal/budget"
	"github.com/rhizotron/rhizosim/internal/config"
	"github.com/rhizotron/rhizosim/internal/export"
	"github.com/rhizotron/rhizosim/internal/grow"
	"github.com/rhizotron/rhizosim/internal/logging"
	"github.com/rhizotron/rhizosim/internal/metrics"
	"github.com/rhizotron/rhizosim/internal/optim"
	"github.com/rhizotron/rhizosim/internal/rootsys"
	"github.com/rhizotron/rhizosim/internal/sim"
	"github.com/rhizotron/rhizosim/internal/storage"
	"github.com/rhizotron/rhizosim/internal/viz"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	dbPath     string
	logLevel   string
	configFile string
	days       float64
	dt         float64
	maxInc     float64
	seed       int64
	growthLaw  string
	saveRun    bool
	frameRate  int
	binSize    float64
	drawWidth  int
	drawHeight int
	capMin     float64
	capMax     float64
	capSteps   int
	numRuns    int
	preDays    int
	postDays   int
	targetLen  float64
	paramSpecs []string
	traceFile  string
	outFile    string

	logger zerolog.Logger
)

// main registers the rhizosim commands and executes the root command. It
// exits the process with status 1 if command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "rhizosim",
		Short: "root system architecture growth lab",
	}
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", config.DefaultDB, "runs database")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		l, err := logging.Init("rhizosim", logLevel, os.Stderr)
		if err != nil {
			return err
		}
		logger = l
		return nil
	}

	runCmd := &cobra.Command{
		Use:   "run [plant]",
		Short: "grow a season under the daily carbon cap",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSeason,
	}
	addSeasonFlags(runCmd)
	runCmd.Flags().BoolVar(&saveRun, "save", false, "save the run to the database")
	runCmd.Flags().StringVar(&traceFile, "trace", "", "write a per-day JSONL trace to this file")
	runCmd.Flags().StringVar(&outFile, "out", "", "write the final geometry (.vtp, .rsml or .svg)")

	liveCmd := &cobra.Command{
		Use:   "live [plant]",
		Short: "grow a season with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSeasonFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 5, "committed days per second")

	drawCmd := &cobra.Command{
		Use:   "draw [plant]",
		Short: "grow a season and draw the final root system",
		Args:  cobra.MaximumNArgs(1),
		RunE:  drawSystem,
	}
	addSeasonFlags(drawCmd)
	drawCmd.Flags().IntVar(&drawWidth, "width", 72, "canvas width (chars)")
	drawCmd.Flags().IntVar(&drawHeight, "height", 26, "canvas height (chars)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [plant]",
		Short: "grow a season and report the architecture",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeSeason,
	}
	addSeasonFlags(analyzeCmd)
	analyzeCmd.Flags().Float64Var(&binSize, "bin", 5, "depth bin size (cm)")

	exportCmd := &cobra.Command{
		Use:   "export [plant] [file]",
		Short: "grow a season and export the geometry (.vtp, .rsml, .svg)",
		Args:  cobra.ExactArgs(2),
		RunE:  exportSeason,
	}
	addSeasonFlags(exportCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [plant]",
		Short: "sweep the daily cap and chart the growth response",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepCap,
	}
	addSeasonFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&capMin, "cap-min", 5, "lowest daily cap (cm)")
	sweepCmd.Flags().Float64Var(&capMax, "cap-max", 40, "highest daily cap (cm)")
	sweepCmd.Flags().IntVar(&capSteps, "steps", 8, "number of caps to sample")
	sweepCmd.Flags().IntVar(&numRuns, "runs", 1, "replicates per cap")

	cloneCmd := &cobra.Command{
		Use:   "clonecheck [plant]",
		Short: "verify a cloned system tracks the original in lockstep",
		Args:  cobra.MaximumNArgs(1),
		RunE:  cloneCheck,
	}
	addSeasonFlags(cloneCmd)
	cloneCmd.Flags().IntVar(&preDays, "pre", 15, "warmup days before cloning")
	cloneCmd.Flags().IntVar(&postDays, "post", 8, "lockstep days after cloning")

	benchCmd := &cobra.Command{
		Use:   "bench [plant]",
		Short: "benchmark season throughput",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchPlant,
	}
	addSeasonFlags(benchCmd)

	batchCmd := &cobra.Command{
		Use:   "batch [scenario]",
		Short: "run a scripted scenario of seasons",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	calibrateCmd := &cobra.Command{
		Use:   "calibrate [plant]",
		Short: "grid-search parameters to hit a target final length",
		Args:  cobra.MaximumNArgs(1),
		RunE:  calibrateSeason,
	}
	addSeasonFlags(calibrateCmd)
	calibrateCmd.Flags().Float64Var(&targetLen, "target", 300, "target final length (cm)")
	calibrateCmd.Flags().StringArrayVar(&paramSpecs, "param", []string{"max-inc:5:40:8"},
		"grid spec name:min:max:steps (max-inc, days or dt)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in plants",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTYPES\tBASALS\tSEED DEPTH")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%.1f cm\n", name, len(p.Types), p.MaxB, p.SeedDepth)
			}
			return w.Flush()
		},
	}

	plantCmd := &cobra.Command{
		Use:   "plant [preset] [file]",
		Short: "write a preset's parameters to a yaml file for editing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := config.GetPreset(args[0])
			if p == nil {
				return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
			}
			if err := config.SavePlant(args[1], p); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[1])
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "write a default config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run's day series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print a saved run's metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a saved run's day records to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	rootCmd.AddCommand(runCmd, liveCmd, drawCmd, analyzeCmd, exportCmd, sweepCmd,
		cloneCmd, benchCmd, batchCmd, calibrateCmd, presetsCmd, plantCmd, initCmd,
		listCmd, plotCmd, showCmd, exportCSVCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addSeasonFlags registers the flags shared by every command that grows a
// season. The positional [plant] argument names a preset or a parameter file.
func addSeasonFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&days, "days", config.DefaultDays, "season length in days")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep in days")
	cmd.Flags().Float64Var(&maxInc, "max-inc", config.DefaultMaxInc, "daily growth cap (cm)")
	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	cmd.Flags().StringVar(&growthLaw, "growth", "", "growth law override: negexp or linear")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
}

// buildConfig merges defaults, an optional config file, the positional plant
// argument, and any flags the user set on the command line. Flags win over
// the config file.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if len(args) > 0 {
		cfg.Plant = args[0]
	}
	if cmd.Flags().Changed("days") {
		cfg.Days = days
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("max-inc") {
		cfg.MaxInc = maxInc
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("growth") {
		cfg.Growth = growthLaw
	}
	if cmd.Flags().Changed("db") || cfg.DB == "" {
		cfg.DB = dbPath
	}
	return cfg, nil
}

// newSeason builds a fresh root system and its budget stepper from cfg. The
// scale controller is shared between the system and the controller so that
// corrected replays see the derived scale.
func newSeason(cfg *config.Config, gcfg grow.Config) (*rootsys.RootSystem, *budget.Controller, error) {
	plant, err := cfg.ResolvePlant()
	if err != nil {
		return nil, nil, err
	}
	sc := grow.NewScaleController()
	rs, err := rootsys.New(plant, cfg.Seed, sc)
	if err != nil {
		return nil, nil, err
	}
	ctrl, err := budget.New(gcfg.MaxInc, sc, rootsys.Stepper{})
	if err != nil {
		return nil, nil, err
	}
	return rs, ctrl, nil
}

// growSeason runs a full season without metrics or observers.
func growSeason(cfg *config.Config) (*rootsys.RootSystem, *grow.Result, error) {
	gcfg := cfg.GrowConfig()
	if err := gcfg.Validate(); err != nil {
		return nil, nil, err
	}
	rs, ctrl, err := newSeason(cfg, gcfg)
	if err != nil {
		return nil, nil, err
	}
	result, err := sim.New(ctrl).Run(context.Background(), rs, gcfg)
	if err != nil {
		return nil, nil, err
	}
	return rs, result, nil
}

func runSeason(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	gcfg := cfg.GrowConfig()
	if err := gcfg.Validate(); err != nil {
		return err
	}
	rs, ctrl, err := newSeason(cfg, gcfg)
	if err != nil {
		return err
	}

	runner := sim.New(ctrl)
	for _, m := range metrics.Default() {
		runner.AddMetric(m)
	}

	runner.AddObserver(sim.ObserverFunc(func(rec grow.DayRecord) {
		logger.Debug().
			Int("day", rec.Day).
			Float64("trial", rec.TrialIncrement).
			Float64("scale", rec.Scale).
			Float64("committed", rec.CommittedIncrement).
			Float64("length", rec.EndLength).
			Bool("limited", rec.Limited).
			Msg("day committed")
	}))

	if traceFile != "" {
		trace, closer, err := logging.NewTrace(traceFile)
		if err != nil {
			return err
		}
		defer closer.Close()
		runner.AddObserver(sim.ObserverFunc(func(rec grow.DayRecord) {
			trace.Info().
				Int("day", rec.Day).
				Float64("start", rec.StartLength).
				Float64("trial", rec.TrialIncrement).
				Float64("budget", rec.Budget).
				Float64("scale", rec.Scale).
				Float64("committed", rec.CommittedIncrement).
				Float64("end", rec.EndLength).
				Bool("limited", rec.Limited).
				Msg("day")
		}))
	}

	logger.Info().
		Str("plant", rs.Plant().Name).
		Float64("days", cfg.Days).
		Float64("cap", cfg.MaxInc).
		Int64("seed", cfg.Seed).
		Msg("season started")

	start := time.Now()
	result, err := runner.Run(context.Background(), rs, gcfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("plant: %s\n", rs.Plant().Name)
	fmt.Printf("final length: %.1f cm over %d days (%d limited)\n",
		result.FinalLength, len(result.Records), result.LimitedDays)
	fmt.Printf("roots: %d (%d tips), depth %.1f cm\n", rs.RootCount(), rs.TipCount(), rs.MaxDepth())
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.4f\n", name, val)
	}

	committed := make([]float64, len(result.Records))
	for i, rec := range result.Records {
		committed[i] = rec.CommittedIncrement
	}
	fmt.Println()
	graph := asciigraph.Plot(committed,
		asciigraph.Height(10),
		asciigraph.Width(70),
		asciigraph.Caption("committed growth (cm/day)"),
	)
	fmt.Println(graph)

	if outFile != "" {
		if err := export.WriteFile(outFile, rs.Polylines()); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", outFile)
	}

	if saveRun {
		st, err := storage.Open(cfg.DB)
		if err != nil {
			return err
		}
		defer st.Close()

		id, err := st.SaveRun(rs.Plant().Name, cfg.Growth, gcfg, result)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %d\n", id)
		logger.Info().Int64("run", id).Str("db", cfg.DB).Msg("run saved")
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	gcfg := cfg.GrowConfig()
	if err := gcfg.Validate(); err != nil {
		return err
	}
	rs, ctrl, err := newSeason(cfg, gcfg)
	if err != nil {
		return err
	}
	plantName := rs.Plant().Name

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The observer runs on the simulation goroutine, so reading the system's
	// geometry here is safe. The unbuffered channel paces growth to the view.
	snaps := make(chan viz.DaySnapshot)
	runner := sim.New(ctrl)
	runner.AddObserver(sim.ObserverFunc(func(rec grow.DayRecord) {
		snap := viz.DaySnapshot{
			Record: rec,
			Lines:  rs.Polylines(),
			Roots:  rs.RootCount(),
			Tips:   rs.TipCount(),
			Depth:  rs.MaxDepth(),
		}
		select {
		case snaps <- snap:
		case <-ctx.Done():
		}
	}))

	go func() {
		defer close(snaps)
		if _, err := runner.Run(ctx, rs, gcfg); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("season aborted")
		}
	}()

	interval := time.Second / time.Duration(frameRate)
	m := viz.NewLive(plantName, gcfg.Days(), snaps, interval)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return err
	}
	return nil
}

func drawSystem(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	rs, result, err := growSeason(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("%s  day %.0f  %.1f cm  %d roots\n\n",
		rs.Plant().Name, rs.Time(), result.FinalLength, rs.RootCount())
	fmt.Println(viz.RenderRootSystem(rs.Polylines(), drawWidth, drawHeight))
	return nil
}

func analyzeSeason(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	rs, result, err := growSeason(cfg)
	if err != nil {
		return err
	}
	lines := rs.Polylines()

	fmt.Printf("architecture: %s after %.0f days\n", rs.Plant().Name, rs.Time())
	fmt.Printf("total length: %.1f cm (%d limited days)\n\n", result.FinalLength, result.LimitedDays)

	prof := analysis.DepthProfile(lines, binSize)
	fmt.Println("depth profile:")
	fmt.Println(prof.ToASCII(40))

	names := make(map[int]string)
	for _, tp := range rs.Plant().Types {
		names[tp.Type] = tp.Name
	}

	groups := analysis.ByType(lines)
	var total float64
	for _, g := range groups {
		total += g.Length
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tROOTS\tLENGTH\tSHARE")
	for _, g := range groups {
		fmt.Fprintf(w, "%s\t%d\t%.1f cm\t%.0f%%\n", names[g.Key], g.Roots, g.Length, 100*g.Length/total)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "ORDER\tROOTS\tLENGTH\tSHARE")
	for _, g := range analysis.ByOrder(lines) {
		fmt.Fprintf(w, "%d\t%d\t%.1f cm\t%.0f%%\n", g.Key, g.Roots, g.Length, 100*g.Length/total)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nmax depth: %.1f cm\nspread: %.1f cm\n",
		analysis.MaxDepth(lines), analysis.Spread(lines))
	return nil
}

func exportSeason(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[:1])
	if err != nil {
		return err
	}
	out := args[1]

	rs, result, err := growSeason(cfg)
	if err != nil {
		return err
	}
	if err := export.WriteFile(out, rs.Polylines()); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d roots, %.1f cm)\n", out, rs.RootCount(), result.FinalLength)
	return nil
}

func sweepCap(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if capSteps < 2 {
		return fmt.Errorf("need at least 2 sweep steps")
	}
	if capMax <= capMin {
		return fmt.Errorf("cap-max must exceed cap-min")
	}

	fmt.Printf("sweeping daily cap for %s (%d replicates per cap)\n\n", cfg.Plant, numRuns)
	finals := make([]float64, capSteps)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CAP\tFINAL\tLIMITED\tUTIL")

	for i := 0; i < capSteps; i++ {
		c := capMin + float64(i)*(capMax-capMin)/float64(capSteps-1)
		gcfg := cfg.GrowConfig()
		gcfg.MaxInc = c
		if err := gcfg.Validate(); err != nil {
			return err
		}

		setup := func(seed int64) (grow.State, sim.DayStepper, error) {
			plant, err := cfg.ResolvePlant()
			if err != nil {
				return nil, nil, err
			}
			sc := grow.NewScaleController()
			rs, err := rootsys.New(plant, seed, sc)
			if err != nil {
				return nil, nil, err
			}
			ctrl, err := budget.New(gcfg.MaxInc, sc, rootsys.Stepper{})
			if err != nil {
				return nil, nil, err
			}
			return rs, ctrl, nil
		}

		ens := sim.NewEnsemble(setup, numRuns, cfg.Seed)
		ens.AddMetric(func() sim.Metric { return metrics.NewBudgetUtilization() })
		results, err := ens.Run(context.Background(), gcfg)
		if err != nil {
			return err
		}

		var final, util float64
		var limited int
		for _, res := range results {
			final += res.FinalLength
			limited += res.LimitedDays
			util += res.Metrics["budget_utilization"]
		}
		n := float64(len(results))
		finals[i] = final / n
		fmt.Fprintf(w, "%.1f\t%.1f\t%.1f\t%.2f\n", c, final/n, float64(limited)/n, util/n)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	graph := asciigraph.Plot(finals,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption(fmt.Sprintf("final length vs cap (%.1f to %.1f cm/day)", capMin, capMax)),
	)
	fmt.Println(graph)
	return nil
}

func cloneCheck(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	gcfg := cfg.GrowConfig()
	if err := gcfg.Validate(); err != nil {
		return err
	}
	rs, _, err := newSeason(cfg, gcfg)
	if err != nil {
		return err
	}

	fmt.Printf("clone check: %s, %d warmup + %d lockstep days\n", rs.Plant().Name, preDays, postDays)
	if err := sim.CloneCheck(rs, rootsys.Stepper{}, preDays, postDays, gcfg.Dt); err != nil {
		return err
	}
	fmt.Println("clone and original stayed identical")
	return nil
}

func benchPlant(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	durations := []float64{15, 30, 60}
	dts := []float64{0.5, 1.0}

	fmt.Printf("benchmarking %s\n\n", cfg.Plant)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DAYS\tDT\tROOTS\tNODES\tTIME\tDAYS/SEC")

	for _, dur := range durations {
		for _, step := range dts {
			gcfg := grow.Config{SimTime: dur, Dt: step, MaxInc: cfg.MaxInc, Seed: cfg.Seed}
			rs, ctrl, err := newSeason(cfg, gcfg)
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := sim.New(ctrl).Run(context.Background(), rs, gcfg)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			daysPerSec := float64(len(result.Records)) / elapsed.Seconds()
			fmt.Fprintf(w, "%.0f\t%.2f\t%d\t%d\t%v\t%.0f\n",
				dur, step, rs.RootCount(), rs.NodeCount(), elapsed, daysPerSec)
		}
	}
	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := batch.LoadScenario(args[0])
	if err != nil {
		return err
	}

	var store *storage.Store
	for _, step := range scenario.Steps {
		if step.Save {
			st, err := storage.Open(dbPath)
			if err != nil {
				return err
			}
			defer st.Close()
			store = st
			break
		}
	}

	fmt.Printf("scenario: %s (%d steps)\n", scenario.Name, len(scenario.Steps))
	results, err := batch.RunScenario(context.Background(), scenario, store)
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tPLANT\tDAYS\tFINAL\tLIMITED\tRUN")
	for i, sr := range results {
		label := sr.Step.Name
		if label == "" {
			label = fmt.Sprintf("step %d", i+1)
		}
		plant := sr.Step.Plant
		if plant == "" {
			plant = config.DefaultPlant
		}
		runID := "-"
		if sr.RunID != 0 {
			runID = strconv.FormatInt(sr.RunID, 10)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%.1f\t%d\t%s\n",
			label, plant, len(sr.Result.Records), sr.Result.FinalLength, sr.Result.LimitedDays, runID)
	}
	return w.Flush()
}

func calibrateSeason(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	params := make([]optim.Param, 0, len(paramSpecs))
	for _, spec := range paramSpecs {
		p, err := parseParamSpec(spec)
		if err != nil {
			return err
		}
		params = append(params, p)
	}
	g, err := optim.NewGridSearch(params)
	if err != nil {
		return err
	}

	fmt.Printf("calibrating %s against target %.1f cm (%d grid points)\n",
		cfg.Plant, targetLen, g.Size())

	season := func(p map[string]float64) (*grow.Result, error) {
		trial := *cfg
		for name, v := range p {
			switch name {
			case "max-inc":
				trial.MaxInc = v
			case "days":
				trial.Days = v
			case "dt":
				trial.Dt = v
			default:
				return nil, fmt.Errorf("unknown parameter %q (want max-inc, days or dt)", name)
			}
		}
		_, result, err := growSeason(&trial)
		return result, err
	}

	best, score, err := g.Search(context.Background(), func(ctx context.Context, p map[string]float64) (float64, error) {
		result, err := season(p)
		if err != nil {
			return 0, err
		}
		return math.Abs(result.FinalLength - targetLen), nil
	})
	if err != nil {
		return err
	}

	fmt.Println("\nbest parameters:")
	for name, v := range best {
		fmt.Printf("  %s: %.3f\n", name, v)
	}
	result, err := season(best)
	if err != nil {
		return err
	}
	fmt.Printf("final length: %.1f cm (target %.1f, off by %.1f)\n",
		result.FinalLength, targetLen, score)
	return nil
}

// parseParamSpec parses a grid dimension given as name:min:max:steps.
func parseParamSpec(spec string) (optim.Param, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 4 {
		return optim.Param{}, fmt.Errorf("bad param spec %q (want name:min:max:steps)", spec)
	}
	lo, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return optim.Param{}, fmt.Errorf("bad param spec %q: %v", spec, err)
	}
	hi, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return optim.Param{}, fmt.Errorf("bad param spec %q: %v", spec, err)
	}
	steps, err := strconv.Atoi(parts[3])
	if err != nil {
		return optim.Param{}, fmt.Errorf("bad param spec %q: %v", spec, err)
	}
	return optim.Param{Name: parts[0], Min: lo, Max: hi, Steps: steps}, nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPLANT\tCREATED\tSEED\tDAYS\tCAP\tFINAL\tLIMITED")
	for _, run := range runs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%.0f\t%.1f\t%.1f\t%d\n",
			run.ID,
			run.Plant,
			run.Created.Format("2006-01-02 15:04:05"),
			run.Seed,
			run.SimTime,
			run.MaxInc,
			run.FinalLength,
			run.LimitedDays,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	id, err := parseRunID(args[0])
	if err != nil {
		return err
	}
	st, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.LoadRun(id)
	if err != nil {
		return err
	}
	recs, err := st.LoadDays(id)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %d\n", meta.ID)
	fmt.Printf("plant: %s\n", meta.Plant)
	fmt.Printf("days: %d\n\n", len(recs))

	series := []struct {
		caption string
		value   func(grow.DayRecord) float64
	}{
		{"total length (cm)", func(r grow.DayRecord) float64 { return r.EndLength }},
		{"committed growth (cm/day)", func(r grow.DayRecord) float64 { return r.CommittedIncrement }},
		{"scale factor", func(r grow.DayRecord) float64 { return r.Scale }},
	}
	for _, sr := range series {
		data := make([]float64, len(recs))
		for i, rec := range recs {
			data[i] = sr.value(rec)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption(sr.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func showRun(cmd *cobra.Command, args []string) error {
	id, err := parseRunID(args[0])
	if err != nil {
		return err
	}
	st, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.LoadRun(id)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	id, err := parseRunID(args[0])
	if err != nil {
		return err
	}
	st, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	recs, err := st.LoadDays(id)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return fmt.Errorf("no data to export")
	}
	return export.WriteDaysCSV(os.Stdout, recs)
}

func parseRunID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid run id: %s", s)
	}
	return id, nil
}
