package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/smart-cut/internal/config"
	"github.com/nguyentantai21042004/smart-cut/internal/processor"
	"github.com/nguyentantai21042004/smart-cut/internal/render"
	"github.com/nguyentantai21042004/smart-cut/internal/report"
	"github.com/nguyentantai21042004/smart-cut/internal/smartcut"
	"github.com/nguyentantai21042004/smart-cut/internal/store"
	"github.com/nguyentantai21042004/smart-cut/internal/transcript"
	"github.com/nguyentantai21042004/smart-cut/internal/watcher"
	"github.com/nguyentantai21042004/smart-cut/pkg/executor"
)

var (
	targetFlag  float64
	outFlag     string
	renderOut   string
	historySize int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [transcript]",
	Short: "Analyze one transcript and write its cut list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())
		if cmd.Flags().Changed("target") {
			target := targetFlag
			cfg.Engine.TargetReduction = &target
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		if outFlag != "" {
			cfg.Paths.Output = outFlag
		}

		proc, closeFn, err := buildProcessor(cfg)
		if err != nil {
			return err
		}
		defer closeFn()

		rep, err := proc.Analyze(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		printReport(cmd.OutOrStdout(), rep, cfg.Report.TopN)
		return nil
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch [transcripts...]",
	Short: "Process transcripts (default: every transcript in the input folder) and archive them",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		paths := args
		if len(paths) == 0 {
			found, err := listTranscripts(cfg.Paths.Input)
			if err != nil {
				return err
			}
			paths = found
		}
		if len(paths) == 0 {
			appLog.Info(cmd.Context(), "No transcripts found in %s", cfg.Paths.Input)
			return nil
		}

		proc, closeFn, err := buildProcessor(cfg)
		if err != nil {
			return err
		}
		defer closeFn()

		appLog.Info(cmd.Context(), "Processing %d transcripts (max concurrent: %d)", len(paths), cfg.Performance.MaxConcurrent)
		return proc.ProcessAll(cmd.Context(), paths)
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the input folder and process transcripts as they arrive",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.FromContext(ctx)

		appLog.Info(ctx, "========================================")
		appLog.Info(ctx, "Smart Cut Pipeline")
		appLog.Info(ctx, "========================================")
		appLog.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
		appLog.Info(ctx, "Max Concurrent Processing: %d", cfg.Performance.MaxConcurrent)

		if err := ensureDirectories(cfg.Paths.Input, cfg.Paths.Output, cfg.Paths.Archived); err != nil {
			return err
		}

		proc, closeFn, err := buildProcessor(cfg)
		if err != nil {
			return err
		}
		defer closeFn()

		// Pick up transcripts that arrived while nothing was watching
		if pending, err := listTranscripts(cfg.Paths.Input); err == nil && len(pending) > 0 {
			appLog.Info(ctx, "Processing %d pending transcripts", len(pending))
			if err := proc.ProcessAll(ctx, pending); err != nil {
				appLog.Warn(ctx, "Pending transcripts: %v", err)
			}
		}

		w, err := watcher.New(cfg.Paths.Input, proc.Process, appLog, cfg.Performance.MaxConcurrent)
		if err != nil {
			return err
		}
		defer w.Stop()

		appLog.Info(ctx, "========================================")
		appLog.Info(ctx, "Smart Cut is ready!")
		appLog.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
		appLog.Info(ctx, "Output: %s", cfg.Paths.Output)
		appLog.Info(ctx, "Press Ctrl+C to stop")
		appLog.Info(ctx, "========================================")

		if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}

		appLog.Info(context.Background(), "Smart Cut stopped")
		return nil
	},
}

var renderCmd = &cobra.Command{
	Use:   "render [result.json] [video]",
	Short: "Cut a video according to a saved result",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		rep, err := report.Read(args[0])
		if err != nil {
			return err
		}

		out := renderOut
		if out == "" {
			out = filepath.Join(cfg.Paths.Output, report.BaseName(args[1])+"_cut"+filepath.Ext(args[1]))
		}

		r := render.New(cfg.Render, cfg.Paths.Temp, executor.New(), appLog)
		if err := r.Render(cmd.Context(), rep.Merged, args[1], out); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Rendered %s (%.1fs planned)\n", out, render.ExpectedDuration(rep.Merged))
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded runs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		st, err := store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer st.Close()

		runs, err := st.ListRuns(cmd.Context(), historySize)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "WHEN\tSOURCE\tORIGINAL\tFINAL\tSAVED\tSPEED\tKEPT")
		for _, r := range runs {
			fmt.Fprintf(tw, "%s\t%s\t%.1fs\t%.1fs\t%.1f%%\t%.2fx\t%d/%d\n",
				r.CreatedAt.Format("2006-01-02 15:04"), filepath.Base(r.Source),
				r.OriginalDuration, r.FinalDuration, r.CompressionRatio*100, r.GlobalSpeed,
				r.KeptSegments, r.TotalSegments)
		}
		return tw.Flush()
	},
}

func init() {
	analyzeCmd.Flags().Float64Var(&targetFlag, "target", 0, "target reduction ratio in [0,1), e.g. 0.4 for 40% shorter")
	analyzeCmd.Flags().StringVar(&outFlag, "out", "", "output directory (default: paths.output)")
	renderCmd.Flags().StringVarP(&renderOut, "output", "o", "", "output video path")
	historyCmd.Flags().IntVar(&historySize, "limit", 20, "number of runs to show (0 for all)")
}

// buildProcessor wires the engine, renderer and optional run store. The returned func releases them.
func buildProcessor(cfg *config.Config) (processor.Processor, func(), error) {
	settings, err := cfg.EngineSettings()
	if err != nil {
		return nil, nil, err
	}

	engine, err := smartcut.New(settings, appLog)
	if err != nil {
		return nil, nil, err
	}

	var renderer render.Renderer
	if cfg.Render.Enabled {
		renderer = render.New(cfg.Render, cfg.Paths.Temp, executor.New(), appLog)
	}

	closeFn := func() {}
	var runs processor.RunStore
	if cfg.Store.Enabled {
		st, err := store.Open(cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		runs = st
		closeFn = func() { st.Close() }
	}

	return processor.New(cfg, engine, renderer, runs, appLog), closeFn, nil
}

// listTranscripts returns the transcripts directly inside dir, sorted by name
func listTranscripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if !e.IsDir() && transcript.IsTranscriptFile(e.Name()) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func printReport(w io.Writer, rep *report.Report, topN int) {
	m := rep.Metrics
	fmt.Fprintf(w, "Source:       %s\n", rep.Source)
	fmt.Fprintf(w, "Duration:     %.1fs -> %.1fs (%.1f%% shorter)\n", m.OriginalDuration, m.FinalDuration, m.CompressionRatio*100)
	fmt.Fprintf(w, "Speed:        %.2fx (%s, %s)\n", m.GlobalSpeed, rep.Mode, m.Strategy)
	if m.TargetDuration > 0 {
		fmt.Fprintf(w, "Target:       %.1fs\n", m.TargetDuration)
	}
	fmt.Fprintf(w, "Segments:     %d kept of %d, %d chunks\n", m.KeptSegments, m.TotalSegments, m.MergedSegments)
	for _, reason := range smartcut.Reasons {
		if n := m.Removed[reason]; n > 0 {
			fmt.Fprintf(w, "  %-17s %d\n", reason+":", n)
		}
	}

	top := report.Summary(rep.Decisions, topN)
	if len(top) == 0 {
		return
	}
	fmt.Fprintln(w, "Highlights:")
	for _, s := range top {
		fmt.Fprintf(w, "  [%2d] %s %s\n", s.Importance, transcript.FormatTimestamp(s.StartSec), s.Text)
	}
}
