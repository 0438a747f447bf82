package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/termlink/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize termlink configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to choose the lesson directory, glossary source and port, and writes a .termlink.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
