package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/cubeloop/internal/anim"
	"github.com/san-kum/cubeloop/internal/clock"
	"github.com/san-kum/cubeloop/internal/config"
	"github.com/san-kum/cubeloop/internal/cube"
	"github.com/san-kum/cubeloop/internal/scramble"
	"github.com/san-kum/cubeloop/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	verbose    bool
	logFormat  string
	logFile    string
	// run and soak
	dt         float64
	duration   float64
	saveRun    bool
	jsonOut    bool
	verify     bool
	metricList []string
	numRuns    int
	// live
	frameRate int
	theme     string
	noTumble  bool
	// export, plot and snapshot
	outPath   string
	svgPath   string
	turnIndex int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "cubeloop",
		Short:         "endless scramble and unwind of a 3x3x3 puzzle",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runInteractive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".cubeloop", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&logFormat, "log-format", "text", "log format: text or json")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the loop in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frames per second")
	liveCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	liveCmd.Flags().BoolVar(&noTumble, "no-tumble", false, "disable the idle tumble")
	liveCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the loop headless with a fixed step",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds")
	runCmd.Flags().BoolVar(&saveRun, "save", false, "save the run journal")
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "print the result as json")
	runCmd.Flags().BoolVar(&verify, "verify", false, "check puzzle invariants every frame")
	runCmd.Flags().StringSliceVar(&metricList, "metrics", nil, "metrics to collect (default all)")

	soakCmd := &cobra.Command{
		Use:   "soak",
		Short: "run many seeds in parallel and verify invariants",
		Args:  cobra.NoArgs,
		RunE:  runSoak,
	}
	soakCmd.Flags().IntVar(&numRuns, "runs", 8, "number of seeds")
	soakCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	soakCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot history depth of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the depth curve to this svg file")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [run_id]",
		Short: "render the puzzle of a saved run as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshotRun,
	}
	snapshotCmd.Flags().IntVar(&turnIndex, "turn", -1, "number of turns to replay (-1 for all)")
	snapshotCmd.Flags().StringVarP(&outPath, "output", "o", "snapshot.svg", "output file")
	snapshotCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	rootCmd.AddCommand(liveCmd, runCmd, soakCmd, listCmd, plotCmd, snapshotCmd, exportCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.InfoLevel)
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	}
	if logFormat == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l
}

// loadConfig resolves defaults, then the preset, then the config file,
// then explicit flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	return overlay(cmd, cfg)
}

// overlay applies the config file and then explicit flags on top of base.
func overlay(cmd *cobra.Command, base *config.Config) (*config.Config, error) {
	cfg := base.Clone()
	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Lookup("dt") != nil && flags.Changed("dt") {
		cfg.Run.Dt = dt
	}
	if flags.Lookup("time") != nil && flags.Changed("time") {
		cfg.Run.Duration = duration
	}
	if flags.Lookup("fps") != nil && flags.Changed("fps") {
		cfg.View.FPS = frameRate
	}
	if flags.Lookup("theme") != nil && flags.Changed("theme") {
		cfg.View.Theme = theme
	}
	if noTumble {
		cfg.View.Tumble = false
	}
}

// liveLogger keeps log output off the terminal the viewer draws on.
func liveLogger() (*logrus.Logger, func(), error) {
	if logFile == "" {
		return newLogger(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	return newLogger(f), func() { f.Close() }, nil
}

func launcher(log logrus.FieldLogger) viz.Launch {
	return func(cfg *config.Config) (*anim.Controller, clock.Clock) {
		s := cfg.Seed
		if s == 0 {
			s = time.Now().UnixNano()
		}
		log.WithField("seed", s).Info("viewer started")
		ctrl := anim.New(
			cube.NewPuzzle(),
			scramble.NewSeeded(s),
			anim.FromConfig(cfg),
			anim.WithLogger(log.WithField("seed", s)),
		)
		return ctrl, clock.NewWall()
	}
}

// pickerOverride layers the config file and flags over the preset the
// picker chose.
func pickerOverride(cmd *cobra.Command, log logrus.FieldLogger) func(*config.Config) {
	return func(cfg *config.Config) {
		resolved, err := overlay(cmd, cfg)
		if err != nil {
			log.WithError(err).Warn("keeping preset settings")
			return
		}
		*cfg = *resolved
	}
}

func runInteractive(cmd *cobra.Command, args []string) error {
	// surface a bad config file before the picker takes the screen
	if _, err := overlay(cmd, config.DefaultConfig()); err != nil {
		return err
	}

	log, closeLog, err := liveLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	return viz.RunInteractive(launcher(log), pickerOverride(cmd, log))
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, closeLog, err := liveLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	ctrl, clk := launcher(log)(cfg)
	return viz.RunLive(ctrl, clk, cfg.View)
}
