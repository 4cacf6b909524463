package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/joshdey/pydemic/internal/analysis"
	"github.com/joshdey/pydemic/internal/config"
	"github.com/joshdey/pydemic/internal/epi"
	"github.com/joshdey/pydemic/internal/experiment"
	"github.com/joshdey/pydemic/internal/storage"
	"github.com/joshdey/pydemic/internal/viz"
)

var (
	dataDir    string
	dt         float64
	days       float64
	population float64
	infectious float64
	configFile string
	preset     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pydemic",
		Short: "epidemic scenario simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pydemic", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	networkCmd := &cobra.Command{
		Use:   "network [model]",
		Short: "print the model's elementary reaction network",
		Args:  cobra.ExactArgs(1),
		RunE:  printNetwork,
	}
	addScenarioFlags(networkCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			sort.Strings(presets)
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	compareCmd := &cobra.Command{
		Use:   "compare [model] [dt1] [dt2] ...",
		Short: "compare step sizes on the same scenario",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareSteps,
	}
	addScenarioFlags(compareCmd)

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "run scenario and replay it in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "growth analysis of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [model] [rate1] [rate2] ...",
		Short: "sweep the transmission rate over the same scenario",
		Args:  cobra.MinimumNArgs(2),
		RunE:  sweepRates,
	}
	addScenarioFlags(sweepCmd)

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportJSONCmd, networkCmd, presetsCmd, compareCmd, liveCmd, analyzeCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep in days")
	cmd.Flags().Float64Var(&days, "days", config.DefaultDays, "scenario duration in days")
	cmd.Flags().Float64Var(&population, "population", config.DefaultPopulation, "population served")
	cmd.Flags().Float64Var(&infectious, "infectious", config.DefaultInfectious, "initially infectious individuals")
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset scenario")
}

// scenarioConfig resolves the effective configuration: preset, then config
// file, then CLI flags, later sources overriding earlier ones.
func scenarioConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	cfg.Model = model
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("days") {
		cfg.Days = days
	}
	if cmd.Flags().Changed("population") {
		cfg.Population.Total = population
	}
	if cmd.Flags().Changed("infectious") {
		cfg.Population.Infectious = infectious
	}
	return cfg, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := scenarioConfig(cmd, args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}

	fmt.Printf("running %s scenario...\n", cfg.Model)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Model, cfg.Dt, cfg.Days, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.Steps)
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

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
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tDAYS\tDT\tCOMPARTMENTS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%.4f\t%d\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Days,
			run.Dt,
			len(run.Compartments),
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

	header, _, rows, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("samples: %d\n\n", len(rows))

	numVars := len(header) - 1
	maxPlots := 8
	if numVars > maxPlots {
		numVars = maxPlots
	}

	for varIdx := 0; varIdx < numVars; varIdx++ {
		data := make([]float64, len(rows))
		for i := range rows {
			if varIdx < len(rows[i]) {
				data[i] = rows[i][varIdx]
			}
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(header[varIdx+1]),
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

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	header, times, rows, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write(header); err != nil {
		return err
	}

	for i := range rows {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range rows[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	header, times, rows, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	result := resultFromTrajectory(header, times, rows)
	result.Metrics = meta.Metrics

	return storage.ExportJSONStdout(meta.Model, meta.Dt, meta.Days, result)
}

// resultFromTrajectory rebuilds an in-memory result from the persisted CSV
// layout, folding name[j] columns back into per-age arrays.
func resultFromTrajectory(header []string, times []float64, rows [][]float64) *epi.Result {
	type column struct {
		name string
		bin  int
	}
	cols := make([]column, 0, len(header)-1)
	bins := make(map[string]int)
	for _, col := range header[1:] {
		name, bin := col, 0
		if i := strings.IndexByte(col, '['); i >= 0 {
			name = col[:i]
			bin, _ = strconv.Atoi(strings.TrimSuffix(col[i+1:], "]"))
		}
		cols = append(cols, column{name: name, bin: bin})
		if bin+1 > bins[name] {
			bins[name] = bin + 1
		}
	}

	y := make(map[string][]epi.Array, len(bins))
	for name, shape := range bins {
		series := make([]epi.Array, len(rows))
		for k := range series {
			series[k] = make(epi.Array, shape)
		}
		y[name] = series
	}
	for k, row := range rows {
		for j, col := range cols {
			if j < len(row) {
				y[col.name][k][col.bin] = row[j]
			}
		}
	}

	return &epi.Result{
		Times: times,
		Y:     y,
		Steps: len(rows) - 1,
	}
}

func printNetwork(cmd *cobra.Command, args []string) error {
	cfg, err := scenarioConfig(cmd, args[0])
	if err != nil {
		return err
	}

	scenario, err := experiment.NewRegistry().Build(cfg)
	if err != nil {
		return err
	}

	net := scenario.Sim.Network()
	fmt.Printf("model: %s\n", cfg.Model)
	fmt.Printf("reactions: %d\n\n", net.NumReactions())
	fmt.Print(net.String())
	fmt.Printf("\nvisible:  %s\n", strings.Join(net.Compartments(), ", "))
	fmt.Printf("tracked:  %s\n", strings.Join(net.HiddenCompartments(), ", "))
	return nil
}

func compareSteps(cmd *cobra.Command, args []string) error {
	cfg, err := scenarioConfig(cmd, args[0])
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()

	fmt.Printf("comparing step sizes for %s (%.1f days)\n\n", cfg.Model, cfg.Days)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tSTEPS\tPEAK_INFECTIOUS\tDRIFT\tTIME")

	for _, arg := range args[1:] {
		stepDt, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("invalid dt %q: %w", arg, err)
		}

		c := *cfg
		c.Dt = stepDt

		exp := experiment.New(&c)
		if err := exp.Setup(registry); err != nil {
			return err
		}

		start := time.Now()
		result, err := exp.Run(context.Background())
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%.4f\t%d\t%.2f\t%.2e\t%v\n",
			stepDt, result.Steps,
			result.Metrics["peak_infectious"],
			result.Metrics["conservation_drift"],
			elapsed)
	}

	return w.Flush()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	header, times, rows, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data")
	}

	result := resultFromTrajectory(header, times, rows)

	fmt.Printf("growth analysis: %s\n", meta.ID)
	fmt.Printf("model: %s\n\n", meta.Model)

	names := make([]string, 0, len(result.Y))
	for name := range result.Y {
		if strings.Contains(name, ":") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COMPARTMENT\tPEAK_DAY\tPEAK\tGROWTH/DAY\tDOUBLING")

	for _, name := range names {
		values := make([]float64, len(rows))
		peakIdx := 0
		for k := range rows {
			values[k] = result.Y[name][k].Sum()
			if values[k] > values[peakIdx] {
				peakIdx = k
			}
		}

		peakT, peakV := analysis.Peak(times, values)
		// the growth rate is fitted to the rising phase only
		rate := analysis.GrowthRate(times[:peakIdx+1], values[:peakIdx+1])

		doubling := "-"
		if d := analysis.DoublingTime(rate); !math.IsInf(d, 1) {
			doubling = fmt.Sprintf("%.2fd", d)
		}
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.4f\t%s\n", name, peakT, peakV, rate, doubling)
	}

	return w.Flush()
}

func sweepRates(cmd *cobra.Command, args []string) error {
	cfg, err := scenarioConfig(cmd, args[0])
	if err != nil {
		return err
	}

	rates := make([]float64, 0, len(args)-1)
	configs := make([]*config.Config, 0, len(args)-1)
	for _, arg := range args[1:] {
		rate, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("invalid rate %q: %w", arg, err)
		}
		c := *cfg
		if c.Model == "neher" {
			c.Epidemiology.R0 = rate
		} else {
			c.SEIR.AvgInfectionRate = rate
		}
		rates = append(rates, rate)
		configs = append(configs, &c)
	}

	results, err := experiment.NewSweep(experiment.NewRegistry(), configs).Run(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("sweeping transmission rate for %s (%.1f days)\n\n", cfg.Model, cfg.Days)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RATE\tPEAK_INFECTIOUS\tATTACK_RATE")

	for i, result := range results {
		fmt.Fprintf(w, "%.2f\t%.2f\t%.4f\n",
			rates[i],
			result.Metrics["peak_infectious"],
			result.Metrics["attack_rate"])
	}

	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := scenarioConfig(cmd, args[0])
	if err != nil {
		return err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	return viz.Run(result, cfg.Model)
}
