package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/hhsim/internal/config"
	"github.com/san-kum/hhsim/internal/experiment"
	"github.com/san-kum/hhsim/internal/metrics"
	"github.com/san-kum/hhsim/internal/neuron"
	"github.com/san-kum/hhsim/internal/report"
	"github.com/san-kum/hhsim/internal/sim"
)

var (
	configFile string
	preset     string
	validate   bool
	window     bool
	logLevel   string
	benchRuns  int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd runs the reference scenario and prints the final membrane
// voltage when no subcommand is given. Arguments to the root command are
// ignored, apart from the subcommand names and -h/--help.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:                "hhsim",
		Short:              "Hodgkin-Huxley membrane integration",
		Args:               cobra.ArbitraryArgs,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		SilenceUsage:       true,
		Run:                runReference,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the scenario with harness options",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addHarnessFlags(runCmd)

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "run the scenario and show diagnostic metrics",
		Args:  cobra.NoArgs,
		RunE:  runSummary,
	}
	addHarnessFlags(summaryCmd)

	scenarioCmd := &cobra.Command{
		Use:   "scenario",
		Short: "print the compiled-in model constants as yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.WriteScenario(cmd.OutOrStdout(), config.ReferenceScenario())
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list harness presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(out, "  %-12s trajectory=%s validate=%t log_level=%s\n", name, p.Trajectory, p.Validate, p.LogLevel)
			}
			return nil
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time repeated runs in both trajectory modes",
		Args:  cobra.NoArgs,
		RunE:  benchScenario,
	}
	benchCmd.Flags().IntVar(&benchRuns, "runs", 3, "runs per mode")

	rootCmd.AddCommand(runCmd, summaryCmd, scenarioCmd, presetsCmd, benchCmd)
	return rootCmd
}

func addHarnessFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "harness config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use harness preset")
	cmd.Flags().BoolVar(&validate, "validate", false, "fail on NaN or Inf instead of passing it through")
	cmd.Flags().BoolVar(&window, "window", false, "keep only the last two states")
	cmd.Flags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
}

// runReference is the plain scenario: one line on stdout, always exit 0.
func runReference(cmd *cobra.Command, args []string) {
	result, err := experiment.Reference(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if result == nil {
			return
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.FinalVoltage())
}

// resolveConfig applies defaults, then the preset, then the config file,
// then any flag set explicitly on the command line.
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
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("validate") {
		cfg.Validate = validate
	}
	if cmd.Flags().Changed("window") {
		if window {
			cfg.Trajectory = sim.Window.String()
		} else {
			cfg.Trajectory = sim.Full.String()
		}
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Check(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "hhsim",
		Level:           cfg.Level(),
	})
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	exp := experiment.New(cfg, logger)
	if err := exp.Setup(neuron.Default(), nil); err != nil {
		return err
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.FinalVoltage())
	return nil
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	model := neuron.Default()
	registry := experiment.NewRegistry()
	exp := experiment.New(cfg, logger)
	if err := exp.Setup(model, registry.DefaultMetrics(model, cfg)); err != nil {
		return err
	}

	start := time.Now()
	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	s := report.FromResult(result, elapsed)
	s.StimulusMs = model.Stimulus.End - model.Stimulus.Start
	for _, m := range exp.Metrics() {
		if sc, ok := m.(*metrics.SpikeCount); ok {
			s.MeanInterval = sc.MeanInterval()
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), report.Render(s))
	return nil
}

func benchScenario(cmd *cobra.Command, args []string) error {
	if benchRuns < 1 {
		return fmt.Errorf("runs must be at least 1, got %d", benchRuns)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "benchmarking %d steps\n\n", sim.NumSteps(neuron.TMax, neuron.Dt))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tRUNS\tSTEPS\tTIME/RUN\tSTEPS/SEC\tV_FINAL")

	for _, mode := range []sim.TrajectoryMode{sim.Full, sim.Window} {
		cfg := config.DefaultConfig()
		cfg.Trajectory = mode.String()

		var total time.Duration
		var last *sim.Result
		for i := 0; i < benchRuns; i++ {
			exp := experiment.New(cfg, nil)
			if err := exp.Setup(neuron.Default(), nil); err != nil {
				return err
			}

			start := time.Now()
			result, err := exp.Run(context.Background())
			if err != nil {
				return err
			}
			total += time.Since(start)
			last = result
		}

		perRun := total / time.Duration(benchRuns)
		stepsPerSec := float64(last.Steps) / perRun.Seconds()
		fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.0f\t%v\n",
			mode, benchRuns, last.Steps, perRun.Round(time.Microsecond), stepsPerSec, last.FinalVoltage())
	}

	return w.Flush()
}
