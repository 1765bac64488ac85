// Package dom resolves the regions of a legal-document page once, so the
// enhancement components receive explicit references instead of looking
// elements up on their own.
package dom

import (
	"errors"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/legaldoc/models"
	"golang.org/x/net/html"
)

// ErrMissingNavBar is returned by components that measure the navigation bar
// when the page has none.
var ErrMissingNavBar = errors.New("page has no navigation bar")

// Page holds a parsed document and the regions the enhancer works on.
// A region that is absent from the document is an empty selection.
type Page struct {
	Doc  *goquery.Document
	Body *goquery.Selection
	Main *goquery.Selection
	TOC  *goquery.Selection
	Nav  *goquery.Selection

	sel models.Selectors
}

// Parse reads an HTML document and resolves its regions.
func Parse(r io.Reader, sel models.Selectors) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return Resolve(doc, sel), nil
}

// ParseString is Parse for an in-memory document.
func ParseString(s string, sel models.Selectors) (*Page, error) {
	return Parse(strings.NewReader(s), sel)
}

// Resolve locates the page regions in an already parsed document.
func Resolve(doc *goquery.Document, sel models.Selectors) *Page {
	return &Page{
		Doc:  doc,
		Body: find(doc, sel.Body).First(),
		Main: find(doc, sel.Main),
		TOC:  find(doc, sel.TOCList).First(),
		Nav:  find(doc, sel.Nav).First(),
		sel:  sel,
	}
}

func find(doc *goquery.Document, selector string) *goquery.Selection {
	if selector == "" {
		return doc.Selection.Slice(0, 0)
	}
	return doc.Find(selector)
}

// HasNav reports whether the navigation bar exists.
func (p *Page) HasNav() bool { return p.Nav.Length() > 0 }

// Headings returns every level 2 and level 3 heading of the main region in document order.
func (p *Page) Headings() *goquery.Selection {
	return p.Main.Find("h2, h3")
}

// TrackedHeadings returns the level 2 headings of the main region that carry an id.
func (p *Page) TrackedHeadings() *goquery.Selection {
	return p.Main.Find("h2[id]")
}

// TOCLinks returns the links of the table of contents.
func (p *Page) TOCLinks() *goquery.Selection {
	return find(p.Doc, p.sel.TOCLinks)
}

// LanguageLinks returns the language-switch links.
func (p *Page) LanguageLinks() *goquery.Selection {
	return find(p.Doc, p.sel.LanguageLinks)
}

// FragmentLinks returns every anchor whose href starts with '#'.
func (p *Page) FragmentLinks() *goquery.Selection {
	return p.Doc.Find(`a[href^="#"]`)
}

// ElementByID returns the first element whose id equals id, or nil.
// Ids are compared verbatim so they never need to be valid selectors.
func (p *Page) ElementByID(id string) *html.Node {
	if id == "" {
		return nil
	}
	match := p.Doc.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr("id")
		return v == id
	})
	if match.Length() == 0 {
		return nil
	}
	return match.Get(0)
}

// Render writes the document back out as HTML.
func (p *Page) Render(w io.Writer) error {
	for _, n := range p.Doc.Nodes {
		if err := html.Render(w, n); err != nil {
			return err
		}
	}
	return nil
}

// HTML returns the rendered document.
func (p *Page) HTML() (string, error) {
	var sb strings.Builder
	if err := p.Render(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
