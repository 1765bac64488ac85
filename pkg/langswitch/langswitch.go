// Package langswitch moves the reader to the localized variant of the
// current page and remembers the chosen language.
package langswitch

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/dtnitsch/legaldoc/pkg/browser"
	"github.com/dtnitsch/legaldoc/pkg/prefs"
)

// DefaultMarkers are the language folders of the site.
var DefaultMarkers = []string{"en", "ja"}

// Switcher stores the chosen language and navigates to the localized page.
type Switcher struct {
	prefs    *prefs.Manager
	location browser.Location
	markers  []string
	logger   *slog.Logger
}

// New returns a Switcher recognizing markers as language segments; an empty
// list means DefaultMarkers.
func New(p *prefs.Manager, location browser.Location, markers []string, logger *slog.Logger) *Switcher {
	if len(markers) == 0 {
		markers = DefaultMarkers
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Switcher{prefs: p, location: location, markers: markers, logger: logger}
}

// Switch stores lang as the preferred language and navigates to the page's
// variant in lang. The target is not checked for existence. It returns the
// new path.
func (s *Switcher) Switch(lang string) (string, error) {
	if err := s.prefs.SaveLanguage(lang); err != nil {
		return "", err
	}

	from := s.location.Pathname()
	to := RewritePath(from, lang, s.markers)
	s.logger.Info("switching language", "language", lang, "from", from, "to", to)
	s.location.Navigate(to)
	return to, nil
}

// RewritePath replaces every path segment equal to a marker with lang. A path
// without a marker segment gets lang inserted before its last segment.
func RewritePath(path, lang string, markers []string) string {
	parts := strings.Split(path, "/")

	if slices.ContainsFunc(parts, func(p string) bool { return slices.Contains(markers, p) }) {
		for i, p := range parts {
			if slices.Contains(markers, p) {
				parts[i] = lang
			}
		}
		return strings.Join(parts, "/")
	}

	base := strings.Join(parts[:len(parts)-1], "/")
	file := parts[len(parts)-1]
	return base + "/" + lang + "/" + file
}

// PathLanguage returns the first marker segment of path, or "".
func PathLanguage(path string, markers []string) string {
	for _, p := range strings.Split(path, "/") {
		if slices.Contains(markers, p) {
			return p
		}
	}
	return ""
}
