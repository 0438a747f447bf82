package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/ziadkadry99/termlink/internal/annotate"
	"github.com/ziadkadry99/termlink/internal/config"
	"github.com/ziadkadry99/termlink/internal/db"
	"github.com/ziadkadry99/termlink/internal/glossary"
	"github.com/ziadkadry99/termlink/internal/trigger"
)

// engine bundles the registry, trigger index and annotator every command
// works with.
type engine struct {
	reg *glossary.Registry
	idx *trigger.Index
	ann *annotate.Annotator
}

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `termlink init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// loadGlossary reads the glossary records from the source the config selects.
func loadGlossary(ctx context.Context, cfg *config.Config) ([]glossary.RawTerm, error) {
	switch cfg.Source() {
	case config.GlossaryDB:
		database, err := db.Open(cfg.GlossaryDB)
		if err != nil {
			return nil, err
		}
		defer database.Close()
		return glossary.NewStore(database).Load(ctx, cfg.GlossarySet)
	case config.GlossaryFile:
		return glossary.LoadFile(cfg.GlossaryFile)
	default:
		return glossary.Default(), nil
	}
}

// newEngine builds the registry, trigger index and annotator for cfg.
func newEngine(ctx context.Context, cfg *config.Config) (*engine, error) {
	raw, err := loadGlossary(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("loading glossary: %w", err)
	}
	reg, err := glossary.Build(raw)
	if err != nil {
		return nil, fmt.Errorf("building glossary: %w", err)
	}
	idx := trigger.Compile(reg.Terms())
	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d terms (%s glossary), %d triggers\n", len(reg.Terms()), cfg.Source(), idx.Len())
	}
	if idx.Inert() {
		fmt.Fprintln(os.Stderr, "Warning: the glossary produced no triggers; nothing will be annotated")
	}
	return &engine{
		reg: reg,
		idx: idx,
		ann: annotate.New(reg, idx, cfg.AnnotateOptions()...),
	}, nil
}
