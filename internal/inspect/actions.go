package inspect

import (
	"fmt"
	"net/http"

	"github.com/dtnitsch/legaldoc/internal/common"
	"github.com/dtnitsch/legaldoc/models"
	"github.com/dtnitsch/legaldoc/pkg/caching"
	"github.com/dtnitsch/legaldoc/pkg/fetcher"
	inspectpkg "github.com/dtnitsch/legaldoc/pkg/inspect"
	"github.com/urfave/cli/v2"
)

// InspectAction reports on a page read from --file or downloaded from --url.
func InspectAction(c *cli.Context) error {
	cfg, logger, err := common.Setup(c)
	if err != nil {
		return err
	}

	file, pageURL := c.String("file"), c.String("url")
	if (file == "") == (pageURL == "") {
		return fmt.Errorf("exactly one of --file or --url is required")
	}

	in := inspectpkg.New(cfg, fetcher.NewFetcherWithClient(&http.Client{Timeout: c.Duration("timeout")}), logger)
	if dir := c.String("cache-dir"); dir != "" {
		in.SetCache(caching.NewCache(dir, c.Duration("cache-ttl")))
	}

	var report *models.PageReport
	if file != "" {
		report, err = in.InspectFile(file)
	} else {
		report, err = in.InspectURL(c.Context, pageURL)
	}
	if err != nil {
		return fmt.Errorf("failed to inspect page: %w", err)
	}

	return common.WriteOutput(c.App.Writer, c.String("format"), report)
}
