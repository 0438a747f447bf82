package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/termlink/internal/db"
	"github.com/ziadkadry99/termlink/internal/glossary"
)

var importCmd = &cobra.Command{
	Use:   "import <glossary-file>",
	Short: "Import a glossary file into the SQLite store",
	Long:  `Validates a YAML or JSON glossary and stores it as a named set in the glossary database, replacing an earlier import of the same set.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		dbPath, _ := cmd.Flags().GetString("db")
		if dbPath == "" {
			dbPath = cfg.GlossaryDB
		}
		if dbPath == "" {
			dbPath = filepath.Join(".termlink", "glossary.db")
		}
		set, _ := cmd.Flags().GetString("set")
		if set == "" {
			set = cfg.GlossarySet
		}

		raw, err := glossary.LoadFile(args[0])
		if err != nil {
			return err
		}
		// Reject records that would fail at startup.
		if _, err := glossary.Build(raw); err != nil {
			return fmt.Errorf("validating %s: %w", args[0], err)
		}

		database, err := db.Open(dbPath)
		if err != nil {
			return err
		}
		defer database.Close()

		store := glossary.NewStore(database)
		if err := store.Import(cmd.Context(), set, args[0], raw); err != nil {
			return fmt.Errorf("importing %s: %w", args[0], err)
		}

		sets, err := store.Sets(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Imported %d terms from %s into %s\n", len(raw), args[0], dbPath)
		if verbose {
			for _, s := range sets {
				fmt.Fprintf(os.Stderr, "  %-12s %4d terms  (%s)\n", s.Name, s.Terms, s.Source)
			}
		}
		if cfg.GlossaryDB != dbPath {
			fmt.Fprintf(os.Stderr, "Set glossary_db: %s in %s to use it.\n", dbPath, cfgFile)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().String("db", "", "glossary database path (default: glossary_db from config)")
	importCmd.Flags().String("set", "", "glossary set name (default: \"default\")")
	rootCmd.AddCommand(importCmd)
}
