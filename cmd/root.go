package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/termlink/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "termlink",
	Short: "Glossary term linking for lessons and diagrams",
	Long: `termlink finds glossary terms in lesson text, wraps each mention in an
interactive marker, links diagram regions to the same terms and serves the
result as static pages, a live server or MCP tools for AI agents.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
