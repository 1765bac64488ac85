package simulate

import (
	"bytes"
	"fmt"
	"os"

	"github.com/dtnitsch/legaldoc/internal/common"
	"github.com/dtnitsch/legaldoc/pkg/dom"
	"github.com/urfave/cli/v2"
)

// SimulateAction opens a page in a headless window, performs the --click
// actions and then the --scroll actions, and prints what the reader would see.
func SimulateAction(c *cli.Context) error {
	cfg, logger, err := common.Setup(c)
	if err != nil {
		return err
	}

	database, store, err := common.OpenStore(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	file := c.String("file")
	raw, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("error reading file: %w", err)
	}
	page, err := dom.Parse(bytes.NewReader(raw), cfg.Selectors)
	if err != nil {
		return fmt.Errorf("failed to parse HTML: %w", err)
	}

	session, err := NewSession(file, c.String("path"), page, cfg, store, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize page: %w", err)
	}
	for _, href := range c.StringSlice("click") {
		if err := session.Click(href); err != nil {
			return err
		}
	}
	for _, y := range c.Float64Slice("scroll") {
		session.Scroll(y)
	}

	return common.WriteOutput(c.App.Writer, c.String("format"), session.Report())
}
