package config

// Config is the top-level termlink configuration, corresponding to .termlink.yml.
type Config struct {
	Title           string         `yaml:"title" koanf:"title"`
	ContentDir      string         `yaml:"content_dir" koanf:"content_dir"`
	Include         []string       `yaml:"include" koanf:"include"`
	Exclude         []string       `yaml:"exclude" koanf:"exclude"`
	OutputDir       string         `yaml:"output_dir" koanf:"output_dir"`
	GlossaryFile    string         `yaml:"glossary_file" koanf:"glossary_file"`
	GlossaryDB      string         `yaml:"glossary_db" koanf:"glossary_db"`
	GlossarySet     string         `yaml:"glossary_set" koanf:"glossary_set"`
	Port            int            `yaml:"port" koanf:"port"`
	AllowAllOrigins bool           `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	HighlightMS     int            `yaml:"highlight_ms" koanf:"highlight_ms"`
	Tooltip         TooltipConfig  `yaml:"tooltip" koanf:"tooltip"`
	Annotate        AnnotateConfig `yaml:"annotate" koanf:"annotate"`
	Canvas          CanvasConfig   `yaml:"canvas" koanf:"canvas"`
}

// TooltipConfig controls tooltip placement.
type TooltipConfig struct {
	Gap    float64 `yaml:"gap" koanf:"gap"`
	Inset  float64 `yaml:"inset" koanf:"inset"`
	Width  float64 `yaml:"width" koanf:"width"`
	Height float64 `yaml:"height" koanf:"height"`
}

// AnnotateConfig controls marker generation.
type AnnotateConfig struct {
	MarkerClass string   `yaml:"marker_class" koanf:"marker_class"`
	SkipIDs     []string `yaml:"skip_ids" koanf:"skip_ids"`
}

// CanvasConfig holds the default diagram size and device pixel ratio.
type CanvasConfig struct {
	Width  float64 `yaml:"width" koanf:"width"`
	Height float64 `yaml:"height" koanf:"height"`
	DPR    float64 `yaml:"dpr" koanf:"dpr"`
}

// GlossarySource names where the glossary is loaded from.
type GlossarySource string

const (
	GlossaryBuiltin GlossarySource = "builtin"
	GlossaryFile    GlossarySource = "file"
	GlossaryDB      GlossarySource = "db"
)

// Source reports which glossary source the config selects. A database
// wins over a file; with neither, the built-in glossary is used.
func (c *Config) Source() GlossarySource {
	switch {
	case c.GlossaryDB != "":
		return GlossaryDB
	case c.GlossaryFile != "":
		return GlossaryFile
	default:
		return GlossaryBuiltin
	}
}
