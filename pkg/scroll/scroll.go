// Package scroll turns in-page anchor clicks into offset-aware smooth scrolls
// that update the address bar without adding history entries.
package scroll

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/legaldoc/pkg/browser"
	"github.com/dtnitsch/legaldoc/pkg/dom"
	"golang.org/x/net/html"
)

// DefaultMargin keeps the target heading clear of the navigation bar.
const DefaultMargin = 20

// Navigator turns in-page link clicks into smooth scrolls below the navigation bar.
type Navigator struct {
	page     *dom.Page
	layout   browser.Layout
	viewport browser.Viewport
	history  browser.History
	margin   float64
	logger   *slog.Logger

	links map[*html.Node]bool
	order []*html.Node
}

func NewNavigator(page *dom.Page, layout browser.Layout, viewport browser.Viewport, history browser.History, margin float64, logger *slog.Logger) *Navigator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Navigator{
		page:     page,
		layout:   layout,
		viewport: viewport,
		history:  history,
		margin:   margin,
		logger:   logger,
		links:    make(map[*html.Node]bool),
	}
}

// Setup intercepts every link whose href starts with '#'. The page must have
// a navigation bar; dom.ErrMissingNavBar is returned otherwise.
func (n *Navigator) Setup() error {
	if !n.page.HasNav() {
		return dom.ErrMissingNavBar
	}
	n.page.FragmentLinks().Each(func(_ int, s *goquery.Selection) {
		node := s.Get(0)
		if !n.links[node] {
			n.links[node] = true
			n.order = append(n.order, node)
		}
	})
	n.logger.Debug("intercepting fragment links", "links", len(n.order))
	return nil
}

// Click handles a click on link. It returns true when the click was turned
// into a smooth scroll, false when default navigation should proceed: the
// link is not intercepted or its target does not exist.
func (n *Navigator) Click(link *html.Node) bool {
	if !n.links[link] {
		return false
	}

	id := strings.TrimPrefix(attr(link, "href"), "#")
	target := n.page.ElementByID(id)
	if target == nil {
		n.logger.Debug("fragment target not found", "id", id)
		return false
	}

	top := n.Destination(target)
	n.viewport.ScrollTo(top, browser.ScrollSmooth)
	n.history.ReplaceState("#" + id)
	return true
}

// ClickHref clicks the first intercepted link whose href equals href.
// It reports false when no such link exists.
func (n *Navigator) ClickHref(href string) bool {
	for _, link := range n.order {
		if attr(link, "href") == href {
			return n.Click(link)
		}
	}
	return false
}

// Destination is the scroll offset that places target just below the navigation bar.
func (n *Navigator) Destination(target *html.Node) float64 {
	navHeight := n.layout.OffsetHeight(n.page.Nav.Get(0))
	return n.layout.OffsetTop(target) - navHeight - n.margin
}

// Links returns the intercepted links in document order.
func (n *Navigator) Links() []*html.Node {
	return append([]*html.Node(nil), n.order...)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
