package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <text>",
	Short: "Show the glossary terms mentioned in a piece of text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		eng, err := newEngine(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		text := strings.Join(args, " ")
		out := cmd.OutOrStdout()
		found := 0
		for m := range eng.idx.FindMatches(text) {
			term, ok := eng.reg.Lookup(m.Key)
			if !ok {
				continue
			}
			found++
			fmt.Fprintf(out, "%d-%d\t%s\t%s (%s)\t%s\n", m.Start, m.End, m.Text, term.Name, term.Alias, term.Plain)
		}
		if found == 0 {
			fmt.Fprintln(out, "No glossary terms found.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}
