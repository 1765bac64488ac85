// Package models defines data structures for configuration, page structure and preferences.
package models

// Anchor identifier styles for headings that lack an id.
const (
	AnchorStyleSequential = "sequential"
	AnchorStyleSlug       = "slug"
)

// Config holds runtime configuration.
// Values come from defaults, an optional YAML file and LDE_* environment variables.
type Config struct {
	Selectors Selectors `koanf:"selectors" yaml:"selectors"`

	// Languages are the path segments recognized as language markers.
	Languages []string `koanf:"languages" yaml:"languages"`

	ScrollMargin    float64 `koanf:"scroll_margin" yaml:"scroll_margin"`
	LookaheadMargin float64 `koanf:"lookahead_margin" yaml:"lookahead_margin"`
	AnchorStyle     string  `koanf:"anchor_style" yaml:"anchor_style"`

	DBPath  string `koanf:"db_path" yaml:"db_path"`
	Profile string `koanf:"profile" yaml:"profile"`

	Workers  int      `koanf:"workers" yaml:"workers"`
	Patterns []string `koanf:"patterns" yaml:"patterns"`

	Server ServerConfig `koanf:"server" yaml:"server"`
}

// Selectors locate the regions of a page the enhancer works on.
type Selectors struct {
	Body          string `koanf:"body" yaml:"body"`
	Main          string `koanf:"main" yaml:"main"`
	TOCList       string `koanf:"toc_list" yaml:"toc_list"`
	TOCLinks      string `koanf:"toc_links" yaml:"toc_links"`
	Nav           string `koanf:"nav" yaml:"nav"`
	LanguageLinks string `koanf:"language_links" yaml:"language_links"`
}

// ServerConfig configures `lde serve`.
type ServerConfig struct {
	Addr string `koanf:"addr" yaml:"addr"`
	Dir  string `koanf:"dir" yaml:"dir"`
}
