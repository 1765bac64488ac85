package simulate

import (
	"fmt"
	"log/slog"

	"github.com/dtnitsch/legaldoc/models"
	"github.com/dtnitsch/legaldoc/pkg/browser"
	"github.com/dtnitsch/legaldoc/pkg/dom"
	"github.com/dtnitsch/legaldoc/pkg/enhancer"
	"github.com/dtnitsch/legaldoc/pkg/frame"
	"github.com/dtnitsch/legaldoc/pkg/prefs"
)

// Session drives an interactive enhancer in a headless window. Frames are
// ticked after every action so the active section is current.
type Session struct {
	enh    *enhancer.Enhancer
	window *browser.Window
	frames *frame.Queue
	report models.SimulationReport
}

// NewSession initializes page as if it had been opened at path.
func NewSession(source, path string, page *dom.Page, cfg *models.Config, store prefs.Store, logger *slog.Logger) (*Session, error) {
	window := browser.NewWindow(path)
	frames := &frame.Queue{}

	enh := enhancer.New(page, enhancer.Options{
		Config:      cfg,
		Store:       store,
		Logger:      logger,
		Interactive: true,
		Viewport:    window,
		History:     window,
		Location:    window,
		Scheduler:   frames,
	})
	if err := enh.Init(); err != nil {
		return nil, err
	}

	return &Session{
		enh:    enh,
		window: window,
		frames: frames,
		report: models.SimulationReport{
			Source:      source,
			Preferences: enh.Preferences(),
			TOC:         enh.TOC(),
		},
	}, nil
}

// Click follows the in-page link with the given href.
func (s *Session) Click(href string) error {
	handled, err := s.enh.Click(href)
	if err != nil {
		return fmt.Errorf("click %s: %w", href, err)
	}
	s.record("click", href, handled)
	return nil
}

// Scroll moves the viewport to y.
func (s *Session) Scroll(y float64) {
	s.window.Scroll(y)
	s.record("scroll", fmt.Sprintf("%g", y), true)
}

func (s *Session) record(action, target string, handled bool) {
	s.frames.Tick()
	s.report.Steps = append(s.report.Steps, models.SimulationStep{
		Action:        action,
		Target:        target,
		Handled:       handled,
		ScrollY:       s.window.ScrollY(),
		Fragment:      s.window.Fragment(),
		ActiveSection: s.enh.ActiveSection(),
	})
}

// Report returns the session so far.
func (s *Session) Report() models.SimulationReport {
	r := s.report
	r.ActiveSection = s.enh.ActiveSection()
	return r
}
