package config

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/termlink/internal/annotate"
	"github.com/ziadkadry99/termlink/internal/tooltip"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = ".termlink.yml"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (TERMLINK_*). Nested keys use a double
// underscore: TERMLINK_CANVAS__DPR sets canvas.dpr.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: TERMLINK_PORT -> port, etc.
	if err := k.Load(env.Provider("TERMLINK_", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, "TERMLINK_"))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.ContentDir == "" {
		return fmt.Errorf("content_dir is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 0 and 65535", c.Port)
	}
	if c.HighlightMS < 0 {
		return fmt.Errorf("highlight_ms must be non-negative")
	}

	if c.Tooltip.Gap < 0 || c.Tooltip.Inset < 0 {
		return fmt.Errorf("tooltip gap and inset must be non-negative")
	}
	if c.Tooltip.Width < 0 || c.Tooltip.Height < 0 {
		return fmt.Errorf("tooltip width and height must be non-negative")
	}

	if c.Annotate.MarkerClass != "" && strings.ContainsAny(c.Annotate.MarkerClass, " \t\n\"'<>") {
		return fmt.Errorf("invalid annotate.marker_class %q: must be a single CSS class name", c.Annotate.MarkerClass)
	}

	if c.Canvas.Width < 0 || c.Canvas.Height < 0 {
		return fmt.Errorf("canvas width and height must be non-negative")
	}
	if math.IsNaN(c.Canvas.DPR) || c.Canvas.DPR < 0 || c.Canvas.DPR > 4 {
		return fmt.Errorf("invalid canvas.dpr %v: must be between 0 and 4", c.Canvas.DPR)
	}

	return nil
}

// HighlightDuration returns highlight_ms as a duration. Zero selects the
// highlight package default.
func (c *Config) HighlightDuration() time.Duration {
	return time.Duration(c.HighlightMS) * time.Millisecond
}

// TooltipConfig converts the tooltip section for the tooltip controller.
// A zero width or height selects the default tooltip size.
func (c *Config) TooltipConfig() tooltip.Config {
	return tooltip.Config{
		Gap:   c.Tooltip.Gap,
		Inset: c.Tooltip.Inset,
		Size:  tooltip.Size{W: c.Tooltip.Width, H: c.Tooltip.Height},
	}
}

// AnnotateOptions converts the annotate section into annotator options.
func (c *Config) AnnotateOptions() []annotate.Option {
	var opts []annotate.Option
	if c.Annotate.MarkerClass != "" {
		opts = append(opts, annotate.WithMarkerClass(c.Annotate.MarkerClass))
	}
	if c.Annotate.SkipIDs != nil {
		opts = append(opts, annotate.WithSkipIDs(c.Annotate.SkipIDs...))
	}
	return opts
}
