// Package config loads runtime configuration from defaults, a YAML file and
// environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/dtnitsch/legaldoc/models"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "lde.yaml"

// EnvPrefix prefixes environment overrides: LDE_PROFILE -> profile,
// LDE_SERVER.ADDR -> server.addr.
const EnvPrefix = "LDE_"

// Default returns the configuration matching the stock page layout.
func Default() *models.Config {
	return &models.Config{
		Selectors: models.Selectors{
			Body:          "body",
			Main:          ".document",
			TOCList:       ".toc ul",
			TOCLinks:      ".toc a",
			Nav:           ".nav",
			LanguageLinks: ".language-switch a",
		},
		Languages:       []string{"en", "ja"},
		ScrollMargin:    20,
		LookaheadMargin: 50,
		AnchorStyle:     models.AnchorStyleSequential,
		Profile:         "default",
		Workers:         4,
		Patterns:        []string{"**/*.html"},
		Server: models.ServerConfig{
			Addr: ":8080",
			Dir:  ".",
		},
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (LDE_*). A missing file is not an error.
func Load(path string) (*models.Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	// Lists replace the defaults instead of being merged index by index.
	if k.Exists("languages") {
		cfg.Languages = k.Strings("languages")
	}
	if k.Exists("patterns") {
		cfg.Patterns = k.Strings("patterns")
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration contains usable values.
func Validate(cfg *models.Config) error {
	switch cfg.AnchorStyle {
	case models.AnchorStyleSequential, models.AnchorStyleSlug:
	default:
		return fmt.Errorf("invalid anchor_style %q: must be sequential or slug", cfg.AnchorStyle)
	}
	if len(cfg.Languages) == 0 {
		return fmt.Errorf("languages must name at least one language marker")
	}
	for _, lang := range cfg.Languages {
		if lang == "" || strings.Contains(lang, "/") {
			return fmt.Errorf("invalid language marker %q", lang)
		}
	}
	if cfg.Selectors.Main == "" || cfg.Selectors.Body == "" {
		return fmt.Errorf("selectors.main and selectors.body are required")
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	if cfg.Profile == "" {
		return fmt.Errorf("profile is required")
	}
	return nil
}
