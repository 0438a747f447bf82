package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/termlink/internal/lesson"
	"github.com/ziadkadry99/termlink/internal/server"
	"github.com/ziadkadry99/termlink/internal/session"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the live lesson server",
	Long:  `Serves annotated lessons, the glossary API, diagram surfaces and the interactive WebSocket session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}
		if allow, _ := cmd.Flags().GetBool("allow-all"); allow {
			cfg.AllowAllOrigins = true
		}

		eng, err := newEngine(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		sources, err := lesson.Discover(lesson.DiscoverConfig{
			Root:    cfg.ContentDir,
			Include: cfg.Include,
			Exclude: cfg.Exclude,
		})
		if err != nil {
			// Serve the glossary and diagrams even without lessons.
			fmt.Fprintf(os.Stderr, "Warning: could not read lessons from %s: %v\n", cfg.ContentDir, err)
		}

		srv := server.New(server.Config{
			Port:     cfg.Port,
			Title:    cfg.Title,
			DPR:      cfg.Canvas.DPR,
			AllowAll: cfg.AllowAllOrigins,
		}, eng.reg, eng.ann, sources, session.Config{
			Tooltip:           cfg.TooltipConfig(),
			HighlightDuration: cfg.HighlightDuration(),
			DPR:               cfg.Canvas.DPR,
			CanvasWidth:       cfg.Canvas.Width,
			CanvasHeight:      cfg.Canvas.Height,
		})

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "termlink server %s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Lessons: %d in %s\n", len(sources), cfg.ContentDir)
		fmt.Fprintf(os.Stderr, "  Glossary: %d terms (%s)\n", len(eng.reg.Terms()), cfg.Source())

		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on (overrides config)")
	serveCmd.Flags().Bool("allow-all", false, "allow all CORS and WebSocket origins")
	rootCmd.AddCommand(serveCmd)
}
