package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/termlink/internal/lesson"
	"github.com/ziadkadry99/termlink/internal/progress"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build annotated static lesson pages",
	Long:  `Discovers lessons in the content directory, annotates glossary terms and writes static HTML pages, glossary.json and the diagram surfaces to the output directory.`,
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringP("output", "o", "", "output directory (overrides config)")
	buildCmd.Flags().Float64("dpr", 0, "device pixel ratio for diagram images (overrides config)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	start := time.Now()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.OutputDir = out
	}
	if dpr, _ := cmd.Flags().GetFloat64("dpr"); dpr > 0 {
		cfg.Canvas.DPR = dpr
	}

	eng, err := newEngine(ctx, cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Scanning lessons in %s...\n", cfg.ContentDir)
	}
	sources, err := lesson.Discover(lesson.DiscoverConfig{
		Root:    cfg.ContentDir,
		Include: cfg.Include,
		Exclude: cfg.Exclude,
	})
	if err != nil {
		return fmt.Errorf("discovering lessons: %w", err)
	}
	if len(sources) == 0 {
		return fmt.Errorf("no lessons found in %s", cfg.ContentDir)
	}

	builder := lesson.NewBuilder(eng.reg, lesson.NewRenderer(eng.ann), lesson.BuildConfig{
		Title:        cfg.Title,
		OutputDir:    cfg.OutputDir,
		DPR:          cfg.Canvas.DPR,
		CanvasWidth:  cfg.Canvas.Width,
		CanvasHeight: cfg.Canvas.Height,
	}, progress.NewReporter())

	res, err := builder.Build(ctx, sources)
	if err != nil {
		return fmt.Errorf("building lessons: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Built %d pages (%d term markers, %d surfaces) in %s\n",
		res.Pages, res.Markers, len(res.Surfaces), time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(os.Stderr, "  Output: %s\n", cfg.OutputDir)
	return nil
}
