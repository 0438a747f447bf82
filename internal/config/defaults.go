package config

import (
	"github.com/ziadkadry99/termlink/internal/annotate"
	"github.com/ziadkadry99/termlink/internal/diagram"
	"github.com/ziadkadry99/termlink/internal/highlight"
	"github.com/ziadkadry99/termlink/internal/lesson"
	"github.com/ziadkadry99/termlink/internal/tooltip"
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Title:       "termlink",
		ContentDir:  "lessons",
		Include:     []string{"**"},
		Exclude:     lesson.DefaultExcludes,
		OutputDir:   "site",
		Port:        8080,
		HighlightMS: int(highlight.DefaultDuration.Milliseconds()),
		Tooltip: TooltipConfig{
			Gap:    tooltip.DefaultGap,
			Inset:  tooltip.DefaultInset,
			Width:  tooltip.DefaultWidth,
			Height: tooltip.DefaultHeight,
		},
		Annotate: AnnotateConfig{
			MarkerClass: annotate.DefaultMarkerClass,
			SkipIDs:     annotate.DefaultSkipIDs,
		},
		Canvas: CanvasConfig{
			Width:  diagram.DefaultWidth,
			Height: diagram.DefaultHeight,
			DPR:    1,
		},
	}
}
