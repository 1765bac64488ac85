// Package site enhances every page of a static site tree and writes the
// results to a mirrored output tree.
package site

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dtnitsch/legaldoc/models"
	"github.com/dtnitsch/legaldoc/pkg/dom"
	"github.com/dtnitsch/legaldoc/pkg/enhancer"
	"github.com/dtnitsch/legaldoc/pkg/prefs"
	"github.com/dtnitsch/legaldoc/pkg/storage"
	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// Builder runs the non-interactive enhancer over a set of pages.
type Builder struct {
	cfg    *models.Config
	store  prefs.Store
	term   string
	logger *slog.Logger
}

// NewBuilder returns a Builder. A nil store gives every page empty
// preferences; term, when set, is highlighted on every page.
func NewBuilder(cfg *models.Config, store prefs.Store, term string, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{cfg: cfg, store: store, term: term, logger: logger}
}

// Discover returns the slash-separated paths below src matching the
// configured patterns, in natural order.
func (b *Builder) Discover(src string) ([]string, error) {
	fsys := os.DirFS(src)
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range b.cfg.Patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q", pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("globbing %q: %w", pattern, err)
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			if info, err := os.Stat(filepath.Join(src, filepath.FromSlash(m))); err == nil && info.IsDir() {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}
	sort.Sort(natural.StringSlice(files))
	return files, nil
}

// Build enhances every page under src into dst. A failing page does not stop
// the others; all failures are returned combined, next to one result per page.
func (b *Builder) Build(ctx context.Context, src, dst string) ([]models.BuildResult, error) {
	files, err := b.Discover(src)
	if err != nil {
		return nil, err
	}

	b.logger.Info("starting site build",
		"src", src,
		"dst", dst,
		"pages", len(files),
		"workers", b.cfg.Workers,
	)
	startTime := time.Now()

	in := storage.New(src)
	out := storage.New(dst)
	results := make([]models.BuildResult, len(files))

	var (
		mu   sync.Mutex
		errs error
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.Workers)

	for i, rel := range files {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			result, err := b.buildPage(in, out, rel)
			results[i] = result
			if err != nil {
				b.logger.Warn("page failed", "path", rel, "error", err)
				results[i].Error = err.Error()
				mu.Lock()
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", rel, err))
				mu.Unlock()
				return nil
			}
			b.logger.Debug("page enhanced", "path", rel, "toc_entries", result.TOCEntries)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		errs = multierr.Append(errs, err)
	}

	b.logger.Info("site build complete",
		"pages", len(files),
		"failed", len(multierr.Errors(errs)),
		"elapsed", time.Since(startTime),
	)
	return results, errs
}

func (b *Builder) buildPage(in, out *storage.Storage, rel string) (models.BuildResult, error) {
	result := models.BuildResult{Path: rel}

	raw, err := in.ReadFile(rel)
	if err != nil {
		return result, err
	}
	page, err := dom.Parse(bytes.NewReader(raw), b.cfg.Selectors)
	if err != nil {
		return result, fmt.Errorf("failed to parse HTML: %w", err)
	}

	e := enhancer.New(page, enhancer.Options{
		Config: b.cfg,
		Store:  b.store,
		Logger: b.logger,
	})
	if err := e.Init(); err != nil {
		return result, err
	}
	result.TOCEntries = len(e.TOC())
	if b.term != "" {
		result.Highlights = e.HighlightSearchTerm(b.term)
	}

	var buf bytes.Buffer
	if err := e.Render(&buf); err != nil {
		return result, fmt.Errorf("failed to render HTML: %w", err)
	}
	if err := out.SaveFile(rel, buf.Bytes()); err != nil {
		return result, err
	}
	result.Output = out.Path(rel)
	result.SizeBytes = int64(buf.Len())
	return result, nil
}
