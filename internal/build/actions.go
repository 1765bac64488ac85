package build

import (
	"fmt"

	"github.com/dtnitsch/legaldoc/internal/common"
	"github.com/dtnitsch/legaldoc/pkg/prefs"
	"github.com/dtnitsch/legaldoc/pkg/site"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
)

// BuildAction enhances a whole site tree into an output directory.
func BuildAction(c *cli.Context) error {
	cfg, logger, err := common.Setup(c)
	if err != nil {
		return err
	}
	if c.IsSet("pattern") {
		cfg.Patterns = c.StringSlice("pattern")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}

	src, dst := c.String("src"), c.String("dst")
	if src == dst {
		return fmt.Errorf("--src and --dst must differ")
	}

	// Static output is the same for every reader unless stored preferences
	// are explicitly baked in.
	var store prefs.Store
	if c.Bool("with-preferences") {
		database, prefStore, err := common.OpenStore(cfg)
		if err != nil {
			return err
		}
		defer database.Close()
		store = prefStore
	}

	results, buildErr := site.NewBuilder(cfg, store, c.String("term"), logger).Build(c.Context, src, dst)
	if err := common.WriteOutput(c.App.Writer, c.String("format"), results); err != nil {
		return err
	}
	if buildErr != nil {
		return fmt.Errorf("%d of %d pages failed: %w", len(multierr.Errors(buildErr)), len(results), buildErr)
	}
	return nil
}
