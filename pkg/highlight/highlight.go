// Package highlight wraps occurrences of a search term in <mark> elements.
package highlight

import (
	"log/slog"
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Highlighter marks search term matches below a root element.
type Highlighter struct {
	root   *goquery.Selection
	logger *slog.Logger
}

// New returns a Highlighter for the text under root.
func New(root *goquery.Selection, logger *slog.Logger) *Highlighter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Highlighter{root: root, logger: logger}
}

// Pattern compiles term as a case-insensitive regular expression. A term that
// is not a valid expression is matched literally.
func Pattern(term string) *regexp.Regexp {
	re, err := regexp.Compile("(?i)(" + term + ")")
	if err == nil {
		return re
	}
	return regexp.MustCompile("(?i)(" + regexp.QuoteMeta(term) + ")")
}

// Highlight wraps every match of term found in text under the root, except
// inside <script>, and returns the number of <mark> elements created.
// Text around the matches is kept exactly. An empty term changes nothing.
func (h *Highlighter) Highlight(term string) int {
	if term == "" {
		return 0
	}
	re := Pattern(term)

	var texts []*html.Node
	for _, root := range h.root.Nodes {
		collectText(root, &texts)
	}

	marks := 0
	for _, n := range texts {
		marks += wrapMatches(n, re)
	}

	h.logger.Debug("highlighted search term", "term", term, "text_nodes", len(texts), "marks", marks)
	return marks
}

func collectText(n *html.Node, out *[]*html.Node) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Script {
		return
	}
	if n.Type == html.TextNode {
		*out = append(*out, n)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, out)
	}
}

func wrapMatches(n *html.Node, re *regexp.Regexp) int {
	text := n.Data
	var spans [][]int
	for _, m := range re.FindAllStringIndex(text, -1) {
		if m[1] > m[0] {
			spans = append(spans, m)
		}
	}
	if len(spans) == 0 || n.Parent == nil {
		return 0
	}

	parent := n.Parent
	pos := 0
	for _, m := range spans {
		if m[0] > pos {
			parent.InsertBefore(textNode(text[pos:m[0]]), n)
		}
		mark := &html.Node{Type: html.ElementNode, DataAtom: atom.Mark, Data: "mark"}
		mark.AppendChild(textNode(text[m[0]:m[1]]))
		parent.InsertBefore(mark, n)
		pos = m[1]
	}
	if pos < len(text) {
		parent.InsertBefore(textNode(text[pos:]), n)
	}
	parent.RemoveChild(n)
	return len(spans)
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
