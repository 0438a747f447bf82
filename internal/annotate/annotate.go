// Package annotate rewrites term mentions inside HTML trees into
// interactive glossary markers.
package annotate

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ziadkadry99/termlink/internal/glossary"
	"github.com/ziadkadry99/termlink/internal/trigger"
)

// Marker attributes.
const (
	DefaultMarkerClass = "tech-term"
	AttrTermKey        = "data-term-key"
)

// DefaultSkipIDs are the glossary list and tooltip containers; annotating
// them would link the glossary to itself.
var DefaultSkipIDs = []string{"termList", "termTooltip"}

// nonProse are elements whose text is never annotated.
var nonProse = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
	"textarea": true, "input": true, "button": true, "select": true, "option": true,
	"code": true, "pre": true, "kbd": true, "samp": true,
	"canvas": true, "svg": true, "math": true,
}

// Annotator decorates text nodes that mention glossary terms.
type Annotator struct {
	reg         *glossary.Registry
	idx         *trigger.Index
	markerClass string
	skipIDs     map[string]bool
}

// Option configures an Annotator.
type Option func(*Annotator)

// WithMarkerClass sets the CSS class given to markers. Existing elements
// with this class are treated as already annotated.
func WithMarkerClass(class string) Option {
	return func(a *Annotator) {
		if class != "" {
			a.markerClass = class
		}
	}
}

// WithSkipIDs replaces the ids of containers whose subtree is never
// annotated.
func WithSkipIDs(ids ...string) Option {
	return func(a *Annotator) {
		a.skipIDs = make(map[string]bool, len(ids))
		for _, id := range ids {
			a.skipIDs[id] = true
		}
	}
}

// New creates an Annotator resolving matches from idx against reg.
func New(reg *glossary.Registry, idx *trigger.Index, opts ...Option) *Annotator {
	a := &Annotator{
		reg:         reg,
		idx:         idx,
		markerClass: DefaultMarkerClass,
	}
	WithSkipIDs(DefaultSkipIDs...)(a)
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// MarkerClass returns the class carried by markers.
func (a *Annotator) MarkerClass() string { return a.markerClass }

// Annotate rewrites every eligible text node under root and returns the
// number of markers created. Text already inside a marker is skipped, so a
// second pass over the same subtree creates nothing. Callers should pass
// only freshly rendered subtrees rather than the whole document.
func (a *Annotator) Annotate(root *html.Node) int {
	if root == nil || a.idx.Inert() {
		return 0
	}
	for p := root.Parent; p != nil; p = p.Parent {
		if a.excluded(p) {
			return 0
		}
	}

	var nodes []*html.Node
	a.collect(root, &nodes)

	created := 0
	for _, n := range nodes {
		created += a.rewrite(n)
	}
	return created
}

func (a *Annotator) collect(n *html.Node, out *[]*html.Node) {
	switch n.Type {
	case html.ElementNode:
		if a.excluded(n) {
			return
		}
	case html.TextNode:
		if n.Parent != nil && strings.TrimSpace(n.Data) != "" && a.idx.HasMatch(n.Data) {
			*out = append(*out, n)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		a.collect(c, out)
	}
}

// excluded reports whether the subtree of element n must not be annotated.
func (a *Annotator) excluded(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if nonProse[n.Data] {
		return true
	}
	for _, attr := range n.Attr {
		switch attr.Key {
		case "id":
			if a.skipIDs[attr.Val] {
				return true
			}
		case "class":
			if slices.Contains(strings.Fields(attr.Val), a.markerClass) {
				return true
			}
		}
	}
	return false
}

// rewrite replaces text node n by plain fragments and markers. A node with
// no accepted match is left as is.
func (a *Annotator) rewrite(n *html.Node) int {
	text := n.Data
	parent := n.Parent

	var parts []*html.Node
	last := 0
	for m := range a.idx.FindMatches(text) {
		if m.Start > last {
			parts = append(parts, textNode(text[last:m.Start]))
		}
		parts = append(parts, a.marker(m))
		last = m.End
	}
	if len(parts) == 0 {
		return 0
	}
	if last < len(text) {
		parts = append(parts, textNode(text[last:]))
	}

	markers := 0
	for _, p := range parts {
		if p.Type == html.ElementNode {
			markers++
		}
		parent.InsertBefore(p, n)
	}
	parent.RemoveChild(n)
	return markers
}

func (a *Annotator) marker(m trigger.Match) *html.Node {
	span := &html.Node{
		Type:     html.ElementNode,
		Data:     "span",
		DataAtom: atom.Span,
		Attr: []html.Attribute{
			{Key: "class", Val: a.markerClass},
			{Key: "tabindex", Val: "0"},
			{Key: AttrTermKey, Val: m.Key},
		},
	}
	if t, ok := a.reg.Lookup(m.Key); ok {
		span.Attr = append(span.Attr, html.Attribute{Key: "aria-label", Val: t.Label()})
	}
	span.AppendChild(textNode(m.Text))
	return span
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// AnnotateHTML parses an HTML body fragment, annotates it and returns
// the rendered result with the number of markers created.
func (a *Annotator) AnnotateHTML(fragment string) (string, int, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", 0, fmt.Errorf("parsing fragment: %w", err)
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}

	created := a.Annotate(body)

	var sb strings.Builder
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return "", 0, fmt.Errorf("rendering fragment: %w", err)
		}
	}
	return sb.String(), created, nil
}

// AnnotateDocument parses a full HTML document from r, annotates its body
// and writes the document to w.
func (a *Annotator) AnnotateDocument(r io.Reader, w io.Writer) (int, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return 0, fmt.Errorf("parsing document: %w", err)
	}
	created := a.Annotate(findBody(doc))
	if err := html.Render(w, doc); err != nil {
		return 0, fmt.Errorf("rendering document: %w", err)
	}
	return created, nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

// CountMarkers returns how many markers exist under root.
func (a *Annotator) CountMarkers(root *html.Node) int {
	if root == nil {
		return 0
	}
	count := 0
	if root.Type == html.ElementNode && a.isMarker(root) {
		count++
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		count += a.CountMarkers(c)
	}
	return count
}

func (a *Annotator) isMarker(n *html.Node) bool {
	for _, attr := range n.Attr {
		if attr.Key == "class" && slices.Contains(strings.Fields(attr.Val), a.markerClass) {
			return true
		}
	}
	return false
}
