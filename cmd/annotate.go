package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate [file.html]",
	Short: "Annotate glossary terms in an HTML document",
	Long:  `Reads an HTML document from a file (or stdin), wraps glossary term mentions in markers and writes the result to stdout.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		eng, err := newEngine(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		var in io.Reader = cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()
			in = f
		}

		n, err := eng.ann.AnnotateDocument(in, cmd.OutOrStdout())
		if err != nil {
			return fmt.Errorf("annotating: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Added %d term markers\n", n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(annotateCmd)
}
