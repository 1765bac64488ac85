package enhance

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/dtnitsch/legaldoc/internal/common"
	"github.com/dtnitsch/legaldoc/pkg/dom"
	"github.com/dtnitsch/legaldoc/pkg/enhancer"
	"github.com/dtnitsch/legaldoc/pkg/toc"
	"github.com/urfave/cli/v2"
)

// EnhanceAction enhances one page with the stored preferences of the profile
// and writes the result to --out or stdout.
func EnhanceAction(c *cli.Context) error {
	cfg, logger, err := common.Setup(c)
	if err != nil {
		return err
	}

	database, store, err := common.OpenStore(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	path := c.String("file")
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading file: %w", err)
	}
	page, err := dom.Parse(bytes.NewReader(raw), cfg.Selectors)
	if err != nil {
		return fmt.Errorf("failed to parse HTML: %w", err)
	}

	e := enhancer.New(page, enhancer.Options{
		Config: cfg,
		Store:  store,
		Logger: logger,
	})
	if err := e.Init(); err != nil {
		return fmt.Errorf("failed to enhance %s: %w", path, err)
	}

	highlights := 0
	if term := c.String("term"); term != "" {
		highlights = e.HighlightSearchTerm(term)
	}

	var out io.Writer = c.App.Writer
	if outPath := c.String("out"); outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := e.Render(out); err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}

	logger.Info("page enhanced",
		"file", path,
		"profile", cfg.Profile,
		"toc_entries", len(e.TOC()),
		"highlights", highlights,
	)
	return nil
}

// TOCAction prints the table of contents a page would get.
func TOCAction(c *cli.Context) error {
	cfg, logger, err := common.Setup(c)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(c.String("file"))
	if err != nil {
		return fmt.Errorf("error reading file: %w", err)
	}
	page, err := dom.Parse(bytes.NewReader(raw), cfg.Selectors)
	if err != nil {
		return fmt.Errorf("failed to parse HTML: %w", err)
	}

	entries := toc.New(page, cfg.AnchorStyle, logger).Generate()
	if entries == nil {
		logger.Warn("no table of contents generated: container or headings missing", "file", c.String("file"))
		return nil
	}
	return common.WriteOutput(c.App.Writer, c.String("format"), entries)
}
