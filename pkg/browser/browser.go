// Package browser describes the host collaborators the enhancement components
// drive: the viewport, the session history, the location and element layout.
// Window and AttrLayout are headless implementations used by the CLI, the
// batch builder and tests.
package browser

import (
	"strconv"
	"strings"
	"sync"

	"golang.org/x/net/html"
)

// ScrollBehavior selects how ScrollTo moves the viewport.
type ScrollBehavior int

const (
	ScrollInstant ScrollBehavior = iota
	ScrollSmooth
)

func (b ScrollBehavior) String() string {
	if b == ScrollSmooth {
		return "smooth"
	}
	return "instant"
}

// Viewport is the scrollable window.
type Viewport interface {
	ScrollY() float64
	ScrollTo(top float64, behavior ScrollBehavior)
	// OnScroll registers fn to run on every scroll event.
	OnScroll(fn func())
}

// History updates the address bar.
type History interface {
	// ReplaceState sets the URL fragment without adding a history entry.
	ReplaceState(fragment string)
}

// Location is the current page address.
type Location interface {
	Pathname() string
	// Navigate replaces the current page with the one at path.
	Navigate(path string)
}

// Layout measures rendered elements.
type Layout interface {
	OffsetTop(n *html.Node) float64
	OffsetHeight(n *html.Node) float64
}

// ScrollRequest records one ScrollTo call.
type ScrollRequest struct {
	Top      float64
	Behavior ScrollBehavior
}

// Window is a headless Viewport, History and Location.
// Scroll positions are applied immediately and scroll listeners run synchronously.
type Window struct {
	mu          sync.Mutex
	scrollY     float64
	listeners   []func()
	path        string
	fragment    string
	navigations []string
	scrolls     []ScrollRequest
}

// NewWindow returns a window showing the page at path, scrolled to the top.
func NewWindow(path string) *Window {
	return &Window{path: path}
}

func (w *Window) ScrollY() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.scrollY
}

func (w *Window) ScrollTo(top float64, behavior ScrollBehavior) {
	w.mu.Lock()
	w.scrolls = append(w.scrolls, ScrollRequest{Top: top, Behavior: behavior})
	w.mu.Unlock()
	w.Scroll(top)
}

func (w *Window) OnScroll(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, fn)
}

// Scroll moves the viewport to y and fires a scroll event, as a user scroll would.
func (w *Window) Scroll(y float64) {
	w.mu.Lock()
	w.scrollY = y
	listeners := make([]func(), len(w.listeners))
	copy(listeners, w.listeners)
	w.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

func (w *Window) ReplaceState(fragment string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fragment = fragment
}

// Fragment returns the fragment last set through ReplaceState.
func (w *Window) Fragment() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fragment
}

func (w *Window) Pathname() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

func (w *Window) Navigate(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.navigations = append(w.navigations, path)
	w.path = path
	w.fragment = ""
}

// Navigations returns every path passed to Navigate, oldest first.
func (w *Window) Navigations() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.navigations...)
}

// ScrollRequests returns every ScrollTo call, oldest first.
func (w *Window) ScrollRequests() []ScrollRequest {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]ScrollRequest(nil), w.scrolls...)
}

// Layout attributes read by AttrLayout.
const (
	AttrOffsetTop    = "data-offset-top"
	AttrOffsetHeight = "data-offset-height"
)

// AttrLayout reads element geometry from data-offset-top and
// data-offset-height attributes, as written by a layout pass or by hand.
// Missing or malformed values measure as zero.
type AttrLayout struct{}

func (AttrLayout) OffsetTop(n *html.Node) float64 { return attrFloat(n, AttrOffsetTop) }

func (AttrLayout) OffsetHeight(n *html.Node) float64 { return attrFloat(n, AttrOffsetHeight) }

func attrFloat(n *html.Node, key string) float64 {
	if n == nil {
		return 0
	}
	for _, a := range n.Attr {
		if a.Key != key {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(a.Val), 64)
		if err != nil {
			return 0
		}
		return v
	}
	return 0
}
