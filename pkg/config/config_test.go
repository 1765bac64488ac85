package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dtnitsch/legaldoc/models"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Selectors.TOCList != ".toc ul" {
		t.Errorf("Selectors.TOCList = %q, want %q", cfg.Selectors.TOCList, ".toc ul")
	}
	if cfg.ScrollMargin != 20 {
		t.Errorf("ScrollMargin = %v, want 20", cfg.ScrollMargin)
	}
	if cfg.LookaheadMargin != 50 {
		t.Errorf("LookaheadMargin = %v, want 50", cfg.LookaheadMargin)
	}
	if len(cfg.Languages) != 2 || cfg.Languages[0] != "en" || cfg.Languages[1] != "ja" {
		t.Errorf("Languages = %v, want [en ja]", cfg.Languages)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lde.yaml")
	content := `
anchor_style: slug
scroll_margin: 32
languages: [en, ja, fr]
selectors:
  nav: "#topbar"
server:
  addr: ":9090"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.AnchorStyle != models.AnchorStyleSlug {
		t.Errorf("AnchorStyle = %q, want slug", cfg.AnchorStyle)
	}
	if cfg.ScrollMargin != 32 {
		t.Errorf("ScrollMargin = %v, want 32", cfg.ScrollMargin)
	}
	if len(cfg.Languages) != 3 {
		t.Errorf("Languages = %v, want 3 entries", cfg.Languages)
	}
	if cfg.Selectors.Nav != "#topbar" {
		t.Errorf("Selectors.Nav = %q, want #topbar", cfg.Selectors.Nav)
	}
	// Untouched keys keep their defaults.
	if cfg.Selectors.Main != ".document" {
		t.Errorf("Selectors.Main = %q, want .document", cfg.Selectors.Main)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q, want :9090", cfg.Server.Addr)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("LDE_PROFILE", "reviewer")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Profile != "reviewer" {
		t.Errorf("Profile = %q, want reviewer", cfg.Profile)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*models.Config) {}},
		{name: "unknown anchor style", mutate: func(c *models.Config) { c.AnchorStyle = "random" }, wantErr: true},
		{name: "no languages", mutate: func(c *models.Config) { c.Languages = nil }, wantErr: true},
		{name: "language with slash", mutate: func(c *models.Config) { c.Languages = []string{"en/us"} }, wantErr: true},
		{name: "no main selector", mutate: func(c *models.Config) { c.Selectors.Main = "" }, wantErr: true},
		{name: "zero workers", mutate: func(c *models.Config) { c.Workers = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_ShorterListReplacesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lde.yaml")
	if err := os.WriteFile(path, []byte("languages: [fr]\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Languages) != 1 || cfg.Languages[0] != "fr" {
		t.Errorf("Languages = %v, want [fr]", cfg.Languages)
	}
}
