// Package tracker highlights the table-of-contents entry of the section the
// reader has scrolled into.
package tracker

import (
	"log/slog"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/legaldoc/models"
	"github.com/dtnitsch/legaldoc/pkg/browser"
	"github.com/dtnitsch/legaldoc/pkg/dom"
	"github.com/dtnitsch/legaldoc/pkg/frame"
	"golang.org/x/net/html"
)

// DefaultLookahead activates a section slightly before its heading reaches
// the navigation bar.
const DefaultLookahead = 50

// Tracker marks the TOC link of the section currently being read.
type Tracker struct {
	page      *dom.Page
	layout    browser.Layout
	viewport  browser.Viewport
	sched     frame.Scheduler
	lookahead float64
	logger    *slog.Logger

	headings []*html.Node
	throttle *frame.SingleFlight
	active   string
}

func New(page *dom.Page, layout browser.Layout, viewport browser.Viewport, sched frame.Scheduler, lookahead float64, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		page:      page,
		layout:    layout,
		viewport:  viewport,
		sched:     sched,
		lookahead: lookahead,
		logger:    logger,
	}
}

// Setup starts tracking the level 2 headings that carry an id. Without such
// headings it does nothing. Scroll events are coalesced to at most one
// update per frame, and the initial position is reflected right away.
func (t *Tracker) Setup() error {
	headings := t.page.TrackedHeadings()
	if headings.Length() == 0 {
		t.logger.Debug("no tracked headings, active section disabled")
		return nil
	}
	if !t.page.HasNav() {
		return dom.ErrMissingNavBar
	}

	t.headings = headings.Nodes
	t.throttle = frame.NewSingleFlight(t.sched, t.Update)
	t.viewport.OnScroll(t.throttle.Trigger)

	t.Update()
	return nil
}

// Update recomputes the active section and moves the active marker.
func (t *Tracker) Update() {
	if len(t.headings) == 0 {
		return
	}

	threshold := t.Threshold()
	offsets := make([]float64, len(t.headings))
	for i, h := range t.headings {
		offsets[i] = t.layout.OffsetTop(h)
	}

	t.active = ""
	if i := ActiveIndex(offsets, threshold); i >= 0 {
		t.active = attr(t.headings[i], "id")
	}

	// The TOC may have been regenerated since Setup.
	t.page.TOCLinks().Each(func(_ int, link *goquery.Selection) {
		link.RemoveClass(models.ClassActive)
		if t.active == "" {
			return
		}
		if href, _ := link.Attr("href"); href == "#"+t.active {
			link.AddClass(models.ClassActive)
		}
	})
}

// Threshold is the document offset a heading must have reached to be active.
func (t *Tracker) Threshold() float64 {
	return t.viewport.ScrollY() + t.layout.OffsetHeight(t.page.Nav.Get(0)) + t.lookahead
}

// Active returns the id of the active heading, or "" when none is active.
func (t *Tracker) Active() string { return t.active }

// ActiveIndex returns the index of the last offset not greater than
// threshold, or -1 when every offset lies below it. Offsets are in document
// order, so later headings win ties.
func ActiveIndex(offsets []float64, threshold float64) int {
	active := -1
	for i, off := range offsets {
		if off <= threshold {
			active = i
		}
	}
	return active
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
