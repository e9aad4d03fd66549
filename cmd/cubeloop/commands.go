package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/cubeloop/internal/anim"
	"github.com/san-kum/cubeloop/internal/config"
	"github.com/san-kum/cubeloop/internal/experiment"
	"github.com/san-kum/cubeloop/internal/export"
	"github.com/san-kum/cubeloop/internal/sim"
	"github.com/san-kum/cubeloop/internal/storage"
	"github.com/san-kum/cubeloop/internal/viz"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

type runSummary struct {
	RunID    string             `json:"run_id,omitempty"`
	Seed     int64              `json:"seed"`
	Frames   int                `json:"frames"`
	Time     float64            `json:"time"`
	Cycles   int                `json:"cycles"`
	MaxDepth int                `json:"max_depth"`
	Turns    int                `json:"turns"`
	Scramble int                `json:"scramble_turns"`
	Metrics  map[string]float64 `json:"metrics"`
	Errors   []string           `json:"errors,omitempty"`
	Commits  []anim.Commit      `json:"commits"`
}

func summarize(res *sim.Result) runSummary {
	s := runSummary{
		Seed:     res.Seed,
		Frames:   res.Frames,
		Time:     res.Time,
		Cycles:   res.Cycles,
		MaxDepth: res.MaxDepth,
		Turns:    len(res.Commits),
		Scramble: res.Scrambles(),
		Metrics:  res.Metrics,
		Commits:  res.Commits,
	}
	for _, err := range res.Errors {
		s.Errors = append(s.Errors, err.Error())
	}
	return s
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log := newLogger(os.Stderr)
	exp := experiment.New(cfg, log)
	if err := exp.Setup(metricList...); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	res, err := exp.Run(ctx, verify)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		log.Warn("interrupted, keeping partial result")
	}
	elapsed := time.Since(start)

	summary := summarize(res)
	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		summary.RunID, err = st.Save(storage.NewMetadata(exp.Config(), preset, res), res.Commits)
		if err != nil {
			return err
		}
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summary); err != nil {
			return err
		}
	} else {
		printSummary(summary, elapsed)
	}

	if verify && len(res.Errors) > 0 {
		return fmt.Errorf("%d invariant violation(s)", len(res.Errors))
	}
	return nil
}

func printSummary(s runSummary, elapsed time.Duration) {
	fmt.Println(titleStyle.Render("cubeloop run"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if s.RunID != "" {
		fmt.Fprintf(w, "run id\t%s\n", s.RunID)
	}
	fmt.Fprintf(w, "seed\t%d\n", s.Seed)
	fmt.Fprintf(w, "wall time\t%v\n", elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "loop time\t%.2fs\n", s.Time)
	fmt.Fprintf(w, "frames\t%d\n", s.Frames)
	fmt.Fprintf(w, "turns\t%d (%d scramble)\n", s.Turns, s.Scramble)
	fmt.Fprintf(w, "cycles\t%d\n", s.Cycles)
	fmt.Fprintf(w, "max depth\t%d\n", s.MaxDepth)
	w.Flush()

	if len(s.Metrics) > 0 {
		fmt.Println("\nmetrics:")
		names := make([]string, 0, len(s.Metrics))
		for name := range s.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s: %.6g\n", name, s.Metrics[name])
		}
	}

	if len(s.Errors) > 0 {
		fmt.Println("\n" + failStyle.Render("invariant violations:"))
		for _, e := range s.Errors {
			fmt.Println("  " + e)
		}
	}
}

func runSoak(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if numRuns < 1 {
		return fmt.Errorf("--runs must be at least 1, got %d", numRuns)
	}

	log := newLogger(os.Stderr)
	exp := experiment.New(cfg, log)

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("soaking %d seeds for %.0fs of loop time each...\n", numRuns, cfg.Run.Duration)
	start := time.Now()
	results, err := exp.Ensemble(ctx, numRuns, true)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tFRAMES\tTURNS\tCYCLES\tMAX DEPTH\tMEAN LEN\tDRIFT\tSTATUS")
	failed := 0
	for _, res := range results {
		status := okStyle.Render("ok")
		if len(res.Errors) > 0 {
			failed++
			status = failStyle.Render(res.Errors[0].Error())
		}
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%.2f\t%.1e\t%s\n",
			res.Seed,
			res.Frames,
			len(res.Commits),
			res.Cycles,
			res.MaxDepth,
			res.Metrics["cycle_length"],
			res.Metrics["orientation_drift"],
			status,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\ncompleted in %v\n", time.Since(start).Round(time.Millisecond))

	if failed > 0 {
		return fmt.Errorf("%d of %d seeds violated invariants", failed, numRuns)
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tSEED\tDURATION\tTURNS\tCYCLES")

	for _, run := range runs {
		p := run.Preset
		if p == "" {
			p = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2fs\t%d\t%d\n",
			run.ID,
			p,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Seed,
			run.Duration,
			run.Turns,
			run.Cycles,
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

	turns, err := st.LoadTurns(runID)
	if err != nil {
		return err
	}

	if len(turns) == 0 {
		return fmt.Errorf("no turns to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("seed: %d\n", meta.Seed)
	fmt.Printf("turns: %d over %d cycles\n\n", len(turns), meta.Cycles)

	depth := make([]float64, len(turns)+1)
	for i, t := range turns {
		depth[i+1] = float64(t.Depth)
	}
	fmt.Println(asciigraph.Plot(depth,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("history depth per turn"),
	))

	if svgPath != "" {
		svg := export.SeriesToSVG(depth, 800, 240, string(viz.ThemeMinimal.Graph))
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
	}

	counts := make(map[string]int)
	for _, t := range turns {
		counts[t.Turn.Move.String()]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MOVE\tTURNS")
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%d\n", name, counts[name])
	}
	return w.Flush()
}

func snapshotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	turns, err := st.LoadTurns(args[0])
	if err != nil {
		return err
	}

	n := turnIndex
	if n < 0 || n > len(turns) {
		n = len(turns)
	}
	p := storage.Replay(turns, n)
	spacing := config.DefaultSpacing
	cam := viz.NewCamera()
	cam.Radius = 3 * spacing
	c := viz.NewCanvas(60, 30)
	viz.DrawPoses(c, viz.NewWireframe(), anim.RestPoses(p), spacing, cam)

	svg := export.CanvasToSVG(c, 4, viz.GetTheme(theme))
	if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
		return err
	}

	state := "scrambled"
	if p.IsSolved() {
		state = "solved"
	}
	fmt.Printf("%s: %s after %d turns, wrote %s\n", meta.ID, state, n, outPath)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	data, err := st.Export(args[0])
	if err != nil {
		return err
	}

	if outPath == "" {
		return storage.WriteJSON(os.Stdout, data)
	}
	if err := storage.ExportJSON(outPath, data); err != nil {
		return err
	}
	fmt.Printf("exported %d turns to %s\n", len(data.Turns), outPath)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTEPS\tRATE\tDWELL\tDURATION\tTHEME")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d-%d\t%.1f/s\t%.1fs\t%.0fs\t%s\n",
			name,
			p.Scramble.MinSteps,
			p.Scramble.MaxSteps,
			p.Motion.Rate,
			p.Motion.Dwell,
			p.Run.Duration,
			p.View.Theme,
		)
	}
	return w.Flush()
}
