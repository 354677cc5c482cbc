package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/launchsim/internal/config"
	"github.com/san-kum/launchsim/internal/metrics"
	"github.com/san-kum/launchsim/internal/optim"
	"github.com/san-kum/launchsim/internal/sim"
	"github.com/san-kum/launchsim/internal/storage"
	"github.com/san-kum/launchsim/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	preset     string
	dt         float64
	runtime    float64
	label      string
	distance   float64
	frameRate  int
	// Sweep grids
	kvList    string
	cRateList string
	objective string
	maxAmps   float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "launchsim",
		Short: "straight-line acceleration sim for battery/motor sizing",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".launchsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a launch simulation",
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().StringVar(&label, "label", "", "run label (defaults to preset name)")
	runCmd.Flags().Float64Var(&distance, "distance", 15, "target distance for the time metric (m)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id] [channel...]",
		Short: "plot run channels",
		Args:  cobra.MinimumNArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run and replay with a live terminal view",
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep motor Kv and battery C rate for the best launch",
		RunE:  runSweep,
	}
	addConfigFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&kvList, "kv", "1500,2000,2500", "comma-separated motor Kv candidates")
	sweepCmd.Flags().StringVar(&cRateList, "crate", "2,5,10", "comma-separated battery C-rate candidates")
	sweepCmd.Flags().Float64Var(&distance, "distance", 15, "target distance (m)")
	sweepCmd.Flags().StringVar(&objective, "objective", "", "metric to minimize (default time to target distance)")
	sweepCmd.Flags().Float64Var(&maxAmps, "max-amps", 0, "peak wheel current bound (0 = unbounded)")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, liveCmd, presetsCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "frc", "preset configuration")
	cmd.Flags().Float64Var(&dt, "dt", 0, "timestep override (s)")
	cmd.Flags().Float64Var(&runtime, "time", 0, "runtime override (s)")
}

// resolveConfig applies preset, then config file, then flag overrides.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.GetPreset(preset)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Runtime = runtime
	}
	return cfg, nil
}

func buildDriver(cfg *config.Config) (*sim.Driver, float64, error) {
	veh, mot, bat, tire, err := cfg.Specs()
	if err != nil {
		return nil, 0, err
	}
	driver := sim.NewDriver(veh, mot, bat, tire)
	driver.AddMetric(metrics.NewPeakCurrent())
	driver.AddMetric(metrics.NewTopSpeed())
	driver.AddMetric(metrics.NewTimeToDistance(distance))
	driver.AddMetric(metrics.NewEnergyDrawn(bat.Voltage))
	return driver, bat.Burst, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	driver, _, err := buildDriver(cfg)
	if err != nil {
		return err
	}

	fmt.Println("running launch simulation...")
	start := time.Now()

	result, err := driver.Run(context.Background(), sim.Config{Dt: cfg.Dt, Runtime: cfg.Runtime})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	if label == "" {
		label = preset
	}
	runID, err := st.Save(label, sim.Config{Dt: cfg.Dt, Runtime: cfg.Runtime}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", result.Ticks)
	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
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
	fmt.Fprintln(w, "ID\tLABEL\tTIME\tRUNTIME\tDT\tTICKS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\n",
			run.ID,
			run.Label,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Runtime,
			run.Dt,
			run.Ticks,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	channels := args[1:]
	if len(channels) == 0 {
		channels = []string{"x_dot_mps", "x_ddot_mps2", "amps_rf", "amps_lr"}
	}

	st := storage.New(dataDir)
	columns, rows, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	index := make(map[string]int, len(columns))
	for i, name := range columns {
		index[name] = i
	}

	fmt.Printf("run: %s (%d samples)\n\n", runID, len(rows))
	for _, channel := range channels {
		col, ok := index[channel]
		if !ok {
			return fmt.Errorf("unknown channel %q (available: %s)", channel, strings.Join(columns, ", "))
		}
		data := make([]float64, len(rows))
		for i, row := range rows {
			data[i] = row[col]
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(channel),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	driver, burst, err := buildDriver(cfg)
	if err != nil {
		return err
	}

	result, err := driver.Run(context.Background(), sim.Config{Dt: cfg.Dt, Runtime: cfg.Runtime})
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(result, burst, frameRate))
	_, err = p.Run()
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	kvs, err := parseFloats(kvList)
	if err != nil {
		return fmt.Errorf("bad --kv list: %w", err)
	}
	cRates, err := parseFloats(cRateList)
	if err != nil {
		return fmt.Errorf("bad --crate list: %w", err)
	}

	if objective == "" {
		objective = fmt.Sprintf("time_to_%gm", distance)
	}

	sweep := &optim.Sweep{
		Base:      *cfg,
		Kvs:       kvs,
		CRates:    cRates,
		Objective: objective,
		Distance:  distance,
		MaxAmps:   maxAmps,
	}

	fmt.Printf("sweeping %d candidates...\n\n", len(kvs)*len(cRates))
	best, all, err := sweep.Run(context.Background())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "KV\tC\t%s\tPEAK A\tSTATUS\n", strings.ToUpper(objective))
	for _, outcome := range all {
		if outcome.Err != nil {
			fmt.Fprintf(w, "%.0f\t%.1f\t-\t-\t%v\n", outcome.Candidate.Kv, outcome.Candidate.CRate, outcome.Err)
			continue
		}
		fmt.Fprintf(w, "%.0f\t%.1f\t%.4f\t%.1f\t\n",
			outcome.Candidate.Kv,
			outcome.Candidate.CRate,
			outcome.Metrics[objective],
			outcome.Metrics["peak_amps"],
		)
	}
	w.Flush()

	if err != nil {
		return err
	}
	fmt.Printf("\nbest: Kv=%.0f C=%.1f (%s=%.4f)\n",
		best.Candidate.Kv, best.Candidate.CRate, objective, best.Metrics[objective])
	return nil
}

func parseFloats(list string) ([]float64, error) {
	parts := strings.Split(list, ",")
	vals := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}
