package inspect

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dtnitsch/legaldoc/pkg/caching"
	"github.com/dtnitsch/legaldoc/pkg/config"
	"github.com/dtnitsch/legaldoc/pkg/fetcher"
)

const englishTerms = `<!DOCTYPE html>
<html lang="en"><head><title>Terms of Service</title></head><body>
<nav class="nav"><div class="language-switch"><a data-lang="en">EN</a><a data-lang="ja">JA</a></div></nav>
<aside class="toc"><ul></ul></aside>
<article class="document">
<h1>Terms of Service</h1>
<h2 id="acceptance">Acceptance of Terms</h2>
<p>By accessing this website you agree to be bound by these terms of service and all applicable laws and regulations.
If you do not agree with any of these terms, you are prohibited from using or accessing this site.</p>
<h3>Changes</h3>
<p>We may revise these terms at any time without notice. By using this website you agree to be bound by the current version.</p>
<h2>Limitation of Liability</h2>
<p>In no event shall the company or its suppliers be liable for any damages arising out of the use of the materials on this website.</p>
</article>
</body></html>`

func writePage(t *testing.T, rel, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write page: %v", err)
	}
	return path
}

func TestInspectFile(t *testing.T) {
	path := writePage(t, filepath.Join("docs", "en", "terms.html"), englishTerms)

	report, err := New(config.Default(), nil, nil).InspectFile(path)
	if err != nil {
		t.Fatalf("InspectFile() error = %v", err)
	}

	if report.Title != "Terms of Service" {
		t.Errorf("Title = %q, want Terms of Service", report.Title)
	}
	if report.PathLanguage != "en" {
		t.Errorf("PathLanguage = %q, want en", report.PathLanguage)
	}
	if report.DetectedLanguage != "en" {
		t.Errorf("DetectedLanguage = %q, want en", report.DetectedLanguage)
	}
	if !report.HasTOC || !report.HasNav {
		t.Errorf("HasTOC = %v, HasNav = %v; want both true", report.HasTOC, report.HasNav)
	}
	if len(report.Headings) != 3 {
		t.Fatalf("Headings = %d, want 3", len(report.Headings))
	}
	if report.SectionCount != 2 {
		t.Errorf("SectionCount = %d, want 2", report.SectionCount)
	}
	// Headings are reported as found; ids only appear in the TOC preview.
	if report.Headings[1].ID != "" {
		t.Errorf("Headings[1].ID = %q, want empty", report.Headings[1].ID)
	}
	if len(report.TOC) != 3 || report.TOC[0].Href != "#acceptance" || report.TOC[1].Href != "#section-2" {
		t.Errorf("TOC = %+v, want #acceptance, #section-2, #section-3", report.TOC)
	}
	if report.WordCount == 0 {
		t.Error("WordCount = 0, want words")
	}
	if len(report.Keywords) == 0 || report.Keywords[0].Word != "terms" {
		t.Errorf("Keywords = %+v, want terms first", report.Keywords)
	}
}

func TestInspectURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(englishTerms))
	}))
	defer srv.Close()

	in := New(config.Default(), fetcher.NewFetcherWithClient(srv.Client()), nil)
	report, err := in.InspectURL(context.Background(), srv.URL+"/legal/ja/terms.html")
	if err != nil {
		t.Fatalf("InspectURL() error = %v", err)
	}
	if report.PathLanguage != "ja" {
		t.Errorf("PathLanguage = %q, want ja", report.PathLanguage)
	}
	if report.Source != srv.URL+"/legal/ja/terms.html" {
		t.Errorf("Source = %q, want the URL", report.Source)
	}
}

func TestInspectURL_Cached(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(englishTerms))
	}))
	defer srv.Close()

	in := New(config.Default(), fetcher.NewFetcherWithClient(srv.Client()), nil)
	in.SetCache(caching.NewCache(t.TempDir(), time.Hour))

	for range 2 {
		report, err := in.InspectURL(context.Background(), srv.URL+"/en/terms.html")
		if err != nil {
			t.Fatalf("InspectURL() error = %v", err)
		}
		if report.Title != "Terms of Service" {
			t.Errorf("Title = %q", report.Title)
		}
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("server hit %d times, want 1", n)
	}
}

func TestInspectFile_Missing(t *testing.T) {
	if _, err := New(config.Default(), nil, nil).InspectFile(filepath.Join(t.TempDir(), "nope.html")); err == nil {
		t.Error("InspectFile() error = nil, want error")
	}
}

func TestNormalizeText(t *testing.T) {
	got := normalizeText("  First line  \n\n\t second line \n")
	if got != "First line second line" {
		t.Errorf("normalizeText() = %q", got)
	}
}
