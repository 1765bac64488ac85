// Package enhancer runs the page initialization routine: it restores
// preferences, builds the table of contents and, for interactive pages, wires
// smooth scrolling and active-section tracking. It also exposes the entry
// points a page offers its controls.
package enhancer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dtnitsch/legaldoc/models"
	"github.com/dtnitsch/legaldoc/pkg/browser"
	"github.com/dtnitsch/legaldoc/pkg/config"
	"github.com/dtnitsch/legaldoc/pkg/dom"
	"github.com/dtnitsch/legaldoc/pkg/frame"
	"github.com/dtnitsch/legaldoc/pkg/highlight"
	"github.com/dtnitsch/legaldoc/pkg/langswitch"
	"github.com/dtnitsch/legaldoc/pkg/prefs"
	"github.com/dtnitsch/legaldoc/pkg/scroll"
	"github.com/dtnitsch/legaldoc/pkg/toc"
	"github.com/dtnitsch/legaldoc/pkg/tracker"
)

// ErrNotInteractive is returned by scroll entry points of an enhancer
// initialized without a viewport.
var ErrNotInteractive = errors.New("enhancer is not interactive")

// Options configure an Enhancer. Zero values fall back to headless defaults.
type Options struct {
	Config *models.Config
	Store  prefs.Store
	Logger *slog.Logger

	// Interactive wires the scroll navigator and the active-section tracker.
	Interactive bool

	Layout    browser.Layout
	Viewport  browser.Viewport
	History   browser.History
	Location  browser.Location
	Scheduler frame.Scheduler
}

type Enhancer struct {
	page   *dom.Page
	cfg    *models.Config
	opts   Options
	logger *slog.Logger

	prefs       *prefs.Manager
	toc         *toc.Builder
	navigator   *scroll.Navigator
	tracker     *tracker.Tracker
	switcher    *langswitch.Switcher
	highlighter *highlight.Highlighter

	state   models.Preferences
	entries []models.TOCEntry
}

// New prepares an enhancer for page. Nothing is modified until Init.
func New(page *dom.Page, opts Options) *Enhancer {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Store == nil {
		opts.Store = prefs.NewMemoryStore()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Layout == nil {
		opts.Layout = browser.AttrLayout{}
	}
	if opts.Scheduler == nil {
		opts.Scheduler = &frame.Queue{}
	}
	if opts.Viewport == nil || opts.History == nil || opts.Location == nil {
		w := browser.NewWindow("/")
		if opts.Viewport == nil {
			opts.Viewport = w
		}
		if opts.History == nil {
			opts.History = w
		}
		if opts.Location == nil {
			opts.Location = w
		}
	}

	cfg := opts.Config
	logger := opts.Logger
	manager := prefs.NewManager(opts.Store, logger)

	return &Enhancer{
		page:        page,
		cfg:         cfg,
		opts:        opts,
		logger:      logger,
		prefs:       manager,
		toc:         toc.New(page, cfg.AnchorStyle, logger),
		navigator:   scroll.NewNavigator(page, opts.Layout, opts.Viewport, opts.History, cfg.ScrollMargin, logger),
		tracker:     tracker.New(page, opts.Layout, opts.Viewport, opts.Scheduler, cfg.LookaheadMargin, logger),
		switcher:    langswitch.New(manager, opts.Location, cfg.Languages, logger),
		highlighter: highlight.New(page.Main.First(), logger),
	}
}

// Init reads the stored preferences once, applies dark mode before anything
// else, generates the table of contents, marks the preferred language and,
// when interactive, sets up scrolling behaviors.
func (e *Enhancer) Init() error {
	state, err := e.prefs.Load()
	if err != nil {
		return err
	}
	e.state = state

	prefs.ApplyDarkMode(e.page.Body, state.DarkMode)
	e.entries = e.toc.Generate()
	if state.HasLanguage {
		prefs.UpdateLanguageUI(e.page.LanguageLinks(), state.Language)
	}

	if e.opts.Interactive {
		if err := e.navigator.Setup(); err != nil {
			return fmt.Errorf("smooth scrolling: %w", err)
		}
		if err := e.tracker.Setup(); err != nil {
			return fmt.Errorf("active section: %w", err)
		}
	}

	e.logger.Debug("page initialized",
		"toc_entries", len(e.entries),
		"dark_mode", state.DarkMode,
		"language", state.Language,
		"interactive", e.opts.Interactive,
	)
	return nil
}

// SwitchLanguage stores lang and navigates to the page's variant in lang.
func (e *Enhancer) SwitchLanguage(lang string) (string, error) {
	return e.switcher.Switch(lang)
}

// ToggleDarkMode flips the theme and stores it; it returns the new state.
func (e *Enhancer) ToggleDarkMode() (bool, error) {
	on, err := e.prefs.ToggleDarkMode(e.page.Body)
	if err != nil {
		return on, err
	}
	e.state.DarkMode = on
	return on, nil
}

// HighlightSearchTerm marks every match of term in the document.
func (e *Enhancer) HighlightSearchTerm(term string) int {
	return e.highlighter.Highlight(term)
}

// Click follows an in-page link as the reader would. It reports whether the
// click became a smooth scroll.
func (e *Enhancer) Click(href string) (bool, error) {
	if !e.opts.Interactive {
		return false, ErrNotInteractive
	}
	return e.navigator.ClickHref(href), nil
}

// ActiveSection returns the id of the highlighted section, or "".
func (e *Enhancer) ActiveSection() string { return e.tracker.Active() }

// RegenerateTOC rebuilds the table of contents, keeping assigned ids.
func (e *Enhancer) RegenerateTOC() []models.TOCEntry {
	e.entries = e.toc.Generate()
	return e.entries
}

// TOC returns the entries generated by the last pass.
func (e *Enhancer) TOC() []models.TOCEntry { return e.entries }

// Preferences returns the state read at Init, updated by ToggleDarkMode.
func (e *Enhancer) Preferences() models.Preferences { return e.state }

// Page returns the enhanced page.
func (e *Enhancer) Page() *dom.Page { return e.page }

// Render writes the enhanced document.
func (e *Enhancer) Render(w io.Writer) error { return e.page.Render(w) }
