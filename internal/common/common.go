package common

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dtnitsch/legaldoc/models"
	"github.com/dtnitsch/legaldoc/pkg/config"
	"github.com/dtnitsch/legaldoc/pkg/db"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// NewLogger returns the JSON logger on stderr used by every command.
func NewLogger(quiet bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if quiet {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// Setup loads the configuration named by --config, applies the --db and
// --profile overrides and builds the logger.
func Setup(c *cli.Context) (*models.Config, *slog.Logger, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}
	if c.IsSet("profile") {
		cfg.Profile = c.String("profile")
	}
	if cfg.Profile == "" {
		return nil, nil, fmt.Errorf("profile must not be empty")
	}
	return cfg, NewLogger(c.Bool("quiet")), nil
}

// OpenStore opens the preference database for the configured profile.
// The caller closes the returned DB.
func OpenStore(cfg *models.Config) (*db.DB, *db.PreferenceStore, error) {
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, database.Preferences(cfg.Profile), nil
}

// WriteOutput marshals v as YAML (the default) or indented JSON.
func WriteOutput(w io.Writer, format string, v any) error {
	var (
		outputData []byte
		err        error
	)
	switch format {
	case "", "yaml":
		outputData, err = yaml.Marshal(v)
	case "json":
		outputData, err = json.MarshalIndent(v, "", "  ")
		outputData = append(outputData, '\n')
	default:
		return fmt.Errorf("unknown output format %q: use yaml or json", format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = w.Write(outputData)
	return err
}
