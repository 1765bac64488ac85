// Package toc generates the table of contents of a legal document from its
// level 2 and level 3 headings and gives each heading a stable anchor id.
package toc

import (
	"fmt"
	"log/slog"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/legaldoc/models"
	"github.com/dtnitsch/legaldoc/pkg/dom"
	"github.com/gosimple/slug"
	"golang.org/x/net/html"
)

// subsectionStyle indents level 3 entries and sets them smaller.
const subsectionStyle = "padding-left: 1rem; font-size: 0.9rem"

// Builder generates the table of contents of one page.
type Builder struct {
	page   *dom.Page
	style  string
	logger *slog.Logger
}

// New returns a Builder for page. style is models.AnchorStyleSequential or
// models.AnchorStyleSlug; anything else is treated as sequential.
func New(page *dom.Page, style string, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{page: page, style: style, logger: logger}
}

// Generate rebuilds the table of contents. Headings without an id receive
// one; existing ids are never changed. When the page has no TOC container or
// no headings nothing is touched and nil is returned.
func (b *Builder) Generate() []models.TOCEntry {
	container := b.page.TOC
	headings := b.page.Headings()

	if container.Length() == 0 || headings.Length() == 0 {
		b.logger.Debug("skipping table of contents",
			"has_container", container.Length() > 0,
			"headings", headings.Length(),
		)
		return nil
	}

	container.Empty()

	used := b.usedIDs()
	entries := make([]models.TOCEntry, 0, headings.Length())
	headings.Each(func(i int, h *goquery.Selection) {
		id := b.assignID(h, i, used)
		level := headingLevel(h)
		label := h.Text()

		a := &html.Node{
			Type: html.ElementNode,
			Data: "a",
			Attr: []html.Attribute{{Key: "href", Val: "#" + id}},
		}
		if level == 3 {
			a.Attr = append(a.Attr, html.Attribute{Key: "style", Val: subsectionStyle})
		}
		a.AppendChild(&html.Node{Type: html.TextNode, Data: label})

		li := &html.Node{Type: html.ElementNode, Data: "li"}
		li.AppendChild(a)
		container.AppendNodes(li)

		entries = append(entries, models.TOCEntry{Href: "#" + id, Label: label, Level: level})
	})

	b.logger.Debug("generated table of contents", "entries", len(entries))
	return entries
}

// Headings lists the headings the table of contents is built from, with the
// ids they currently carry. It does not modify the document.
func (b *Builder) Headings() []models.Heading {
	var out []models.Heading
	b.page.Headings().Each(func(_ int, h *goquery.Selection) {
		id, _ := h.Attr("id")
		out = append(out, models.Heading{ID: id, Text: h.Text(), Level: headingLevel(h)})
	})
	return out
}

func (b *Builder) assignID(h *goquery.Selection, index int, used map[string]bool) string {
	if id, ok := h.Attr("id"); ok && id != "" {
		return id
	}

	id := fmt.Sprintf("section-%d", index+1)
	if b.style == models.AnchorStyleSlug {
		if s := slug.Make(h.Text()); s != "" && !used[s] {
			id = s
		}
		for n := 2; used[id]; n++ {
			id = fmt.Sprintf("section-%d-%d", index+1, n)
		}
	}
	used[id] = true
	h.SetAttr("id", id)
	return id
}

func (b *Builder) usedIDs() map[string]bool {
	used := make(map[string]bool)
	b.page.Doc.Find("[id]").Each(func(_ int, s *goquery.Selection) {
		if id, ok := s.Attr("id"); ok {
			used[id] = true
		}
	})
	return used
}

func headingLevel(h *goquery.Selection) int {
	if goquery.NodeName(h) == "h3" {
		return 3
	}
	return 2
}
