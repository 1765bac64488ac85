// Package inspect reports what the enhancer would see and do on a page:
// its title, language, headings and the table of contents it would build.
package inspect

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtnitsch/legaldoc/models"
	"github.com/dtnitsch/legaldoc/pkg/analytics"
	"github.com/dtnitsch/legaldoc/pkg/caching"
	"github.com/dtnitsch/legaldoc/pkg/dom"
	"github.com/dtnitsch/legaldoc/pkg/fetcher"
	"github.com/dtnitsch/legaldoc/pkg/langdetect"
	"github.com/dtnitsch/legaldoc/pkg/langswitch"
	"github.com/dtnitsch/legaldoc/pkg/toc"
	"github.com/go-shiori/go-readability"
)

// keywordCount is the number of keywords a report lists.
const keywordCount = 10

// Inspector builds page reports from files or URLs.
type Inspector struct {
	cfg       *models.Config
	fetcher   *fetcher.Fetcher
	cache     *caching.Cache
	detector  *langdetect.Detector
	analytics *analytics.Analytics
	logger    *slog.Logger
}

func New(cfg *models.Config, f *fetcher.Fetcher, logger *slog.Logger) *Inspector {
	if f == nil {
		f = fetcher.NewFetcher()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Inspector{
		cfg:       cfg,
		fetcher:   f,
		detector:  langdetect.New(cfg.Languages),
		analytics: &analytics.Analytics{},
		logger:    logger,
	}
}

// SetCache makes InspectURL reuse pages fetched within the cache TTL.
func (i *Inspector) SetCache(c *caching.Cache) {
	i.cache = c
}

// InspectFile reports on a page stored on disk.
func (i *Inspector) InspectFile(path string) (*models.PageReport, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return i.Inspect(path, &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}, raw)
}

// InspectURL downloads and reports on a published page.
func (i *Inspector) InspectURL(ctx context.Context, rawURL string) (*models.PageReport, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	if i.cache != nil {
		if raw, ok := i.cache.Get(rawURL); ok {
			i.logger.Debug("using cached page", "url", rawURL)
			return i.Inspect(rawURL, pageURL, raw)
		}
	}

	raw, err := i.fetcher.GetHTMLBytes(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if i.cache != nil {
		if err := i.cache.Set(rawURL, raw); err != nil {
			i.logger.Warn("failed to cache page", "url", rawURL, "error", err)
		}
	}
	return i.Inspect(rawURL, pageURL, raw)
}

// Inspect builds the report for raw HTML located at pageURL. The TOC preview
// is generated on a separate copy of the document.
func (i *Inspector) Inspect(source string, pageURL *url.URL, raw []byte) (*models.PageReport, error) {
	page, err := dom.Parse(bytes.NewReader(raw), i.cfg.Selectors)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	report := &models.PageReport{
		Source:       source,
		PathLanguage: langswitch.PathLanguage(pageURL.Path, i.cfg.Languages),
		HasTOC:       page.TOC.Length() > 0,
		HasNav:       page.HasNav(),
	}

	// Let go-readability find the title and excerpt
	parser := readability.NewParser()
	article, err := parser.Parse(bytes.NewReader(raw), pageURL)
	if err != nil {
		i.logger.Debug("readability failed, falling back to <title>", "source", source, "error", err)
	} else {
		report.Title = normalizeText(article.Title)
		report.Excerpt = normalizeText(article.Excerpt)
		report.SiteName = article.SiteName
	}
	if report.Title == "" {
		report.Title = normalizeText(page.Doc.Find("title").First().Text())
	}

	text := normalizeText(page.Main.Text())
	if text == "" {
		text = normalizeText(page.Body.Text())
	}
	report.WordCount = len(strings.Fields(text))
	report.Keywords = analytics.TopKeywords(i.analytics.WordFrequency(text), keywordCount)
	if lang, confidence, ok := i.detector.Detect(text); ok {
		report.DetectedLanguage = lang
		report.LanguageConfidence = confidence
	}

	report.Headings = toc.New(page, i.cfg.AnchorStyle, i.logger).Headings()
	for _, h := range report.Headings {
		if h.Level == 2 {
			report.SectionCount++
		}
	}

	preview, err := dom.Parse(bytes.NewReader(raw), i.cfg.Selectors)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	report.TOC = toc.New(preview, i.cfg.AnchorStyle, i.logger).Generate()

	return report, nil
}

// normalizeText cleans up a string by trimming space and removing excess newlines.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			// Write the line and a single space for separation
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	// Return the result, trimming the final space
	return strings.TrimSpace(b.String())
}
