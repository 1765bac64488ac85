package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dtnitsch/legaldoc/internal/build"
	"github.com/dtnitsch/legaldoc/internal/db"
	"github.com/dtnitsch/legaldoc/internal/enhance"
	"github.com/dtnitsch/legaldoc/internal/inspect"
	"github.com/dtnitsch/legaldoc/internal/preferences"
	"github.com/dtnitsch/legaldoc/internal/serve"
	"github.com/dtnitsch/legaldoc/internal/simulate"
	"github.com/dtnitsch/legaldoc/pkg/config"
	"github.com/dtnitsch/legaldoc/pkg/fetcher"
	"github.com/urfave/cli/v2"
)

func main() {
	formatFlag := &cli.StringFlag{
		Name:  "format",
		Value: "yaml",
		Usage: "Output format: yaml or json",
	}
	fileFlag := &cli.StringFlag{
		Name:     "file",
		Aliases:  []string{"f"},
		Usage:    "HTML page to read",
		Required: true,
	}

	app := &cli.App{
		Name:  "lde",
		Usage: "Enhance legal-document pages: table of contents, preferences, scrolling and search highlights",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: config.DefaultPath,
				Usage: "YAML config file (missing file means defaults)",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "SQLite preference database (default: lde.db next to the binary)",
			},
			&cli.StringFlag{
				Name:  "profile",
				Usage: "Preference profile (default from config)",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "Only log errors",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "enhance",
				Usage:  "Enhance one page with the stored preferences",
				Action: enhance.EnhanceAction,
				Flags: []cli.Flag{
					fileFlag,
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output file (default stdout)"},
					&cli.StringFlag{Name: "term", Usage: "Search term to highlight"},
				},
			},
			{
				Name:   "build",
				Usage:  "Enhance every page of a site tree into an output directory",
				Action: build.BuildAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "src", Usage: "Site source directory", Required: true},
					&cli.StringFlag{Name: "dst", Usage: "Output directory", Required: true},
					&cli.StringSliceFlag{Name: "pattern", Usage: "Glob of pages to enhance (repeatable, default from config)"},
					&cli.StringFlag{Name: "term", Usage: "Search term to highlight on every page"},
					&cli.IntFlag{Name: "workers", Usage: "Pages processed concurrently (default from config)"},
					&cli.BoolFlag{Name: "with-preferences", Usage: "Apply the profile's stored preferences to every page"},
					formatFlag,
				},
			},
			{
				Name:   "toc",
				Usage:  "Print the table of contents a page would get",
				Action: enhance.TOCAction,
				Flags:  []cli.Flag{fileFlag, formatFlag},
			},
			{
				Name:   "inspect",
				Usage:  "Report title, language, headings and TOC of a page",
				Action: inspect.InspectAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "HTML page to read"},
					&cli.StringFlag{Name: "url", Aliases: []string{"u"}, Usage: "Page URL to fetch"},
					&cli.DurationFlag{Name: "timeout", Value: fetcher.DefaultTimeout, Usage: "Fetch timeout"},
					&cli.StringFlag{Name: "cache-dir", Usage: "Directory caching fetched pages (disabled when empty)"},
					&cli.DurationFlag{Name: "cache-ttl", Value: time.Hour, Usage: "How long cached pages stay fresh"},
					formatFlag,
				},
			},
			{
				Name:  "lang",
				Usage: "Show or change the preferred language",
				Subcommands: []*cli.Command{
					{Name: "show", Usage: "Print the stored language", Action: preferences.LangShowAction},
					{Name: "set", Usage: "Store a language", ArgsUsage: "CODE", Action: preferences.LangSetAction},
					{
						Name:      "switch",
						Usage:     "Store a language and print the page's localized path",
						ArgsUsage: "CODE",
						Action:    preferences.LangSwitchAction,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "path", Usage: "Current page path", Required: true},
						},
					},
				},
			},
			{
				Name:  "dark-mode",
				Usage: "Show or toggle the dark-mode preference",
				Subcommands: []*cli.Command{
					{Name: "show", Usage: "Print enabled or disabled", Action: preferences.DarkModeShowAction},
					{Name: "toggle", Usage: "Flip the stored flag", Action: preferences.DarkModeToggleAction},
				},
			},
			{
				Name:  "db",
				Usage: "Preference database utilities",
				Subcommands: []*cli.Command{
					{Name: "list", Usage: "List the profile's stored preferences", Action: db.ListAction},
					{Name: "path", Usage: "Print the database location", Action: db.PathAction},
				},
			},
			{
				Name:   "simulate",
				Usage:  "Open a page in a headless window and replay clicks and scrolls",
				Action: simulate.SimulateAction,
				Flags: []cli.Flag{
					fileFlag,
					&cli.StringFlag{Name: "path", Value: "/", Usage: "URL path the page is opened at"},
					&cli.StringSliceFlag{Name: "click", Usage: "In-page link href to click (repeatable)"},
					&cli.Float64SliceFlag{Name: "scroll", Usage: "Scroll offset to move to (repeatable)"},
					formatFlag,
				},
			},
			{
				Name:   "serve",
				Usage:  "Serve a site directory, enhancing pages per request",
				Action: serve.ServeAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "dir", Usage: "Site directory (default from config)"},
					&cli.StringFlag{Name: "addr", Usage: "Listen address (default from config)"},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
