// Package lesson turns markdown and HTML lessons into annotated pages with
// the glossary panel, tooltip and diagram surfaces attached.
package lesson

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ziadkadry99/termlink/internal/annotate"
)

// Lesson is a rendered, annotated lesson body.
type Lesson struct {
	Source
	Title   string
	Body    template.HTML
	Markers int
}

// Renderer converts lesson sources to annotated HTML.
type Renderer struct {
	md  goldmark.Markdown
	ann *annotate.Annotator
}

// NewRenderer creates a Renderer that marks terms with ann.
func NewRenderer(ann *annotate.Annotator) *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
		),
	)
	return &Renderer{md: md, ann: ann}
}

// Load reads and converts a source file.
func (r *Renderer) Load(src Source) (*Lesson, error) {
	content, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", src.RelPath, err)
	}
	return r.Convert(src, content)
}

// Convert renders content as the lesson src. Markdown is converted first;
// HTML documents contribute the content of their body.
func (r *Renderer) Convert(src Source, content []byte) (*Lesson, error) {
	l := &Lesson{Source: src}

	var fragment string
	if src.IsMarkdown() {
		var buf bytes.Buffer
		if err := r.md.Convert(content, &buf); err != nil {
			return nil, fmt.Errorf("converting markdown: %w", err)
		}
		fragment = buf.String()
		l.Title = markdownTitle(string(content))
	} else {
		body, title, err := htmlBody(content)
		if err != nil {
			return nil, err
		}
		fragment = body
		l.Title = title
	}
	if l.Title == "" {
		l.Title = strings.TrimSuffix(filepath.Base(src.RelPath), filepath.Ext(src.RelPath))
	}

	annotated, n, err := r.ann.AnnotateHTML(fragment)
	if err != nil {
		return nil, err
	}
	l.Body = template.HTML(annotated)
	l.Markers = n
	return l, nil
}

// markdownTitle pulls the first # heading from markdown content.
func markdownTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return ""
}

// htmlBody returns the inner HTML of the document body and the text of its
// first h1, or of its title element.
func htmlBody(content []byte) (string, string, error) {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return "", "", fmt.Errorf("parsing html: %w", err)
	}

	var body, h1, title *html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Body:
				if body == nil {
					body = n
				}
			case atom.H1:
				if h1 == nil {
					h1 = n
				}
			case atom.Title:
				if title == nil {
					title = n
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	var sb strings.Builder
	if body != nil {
		for c := body.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&sb, c); err != nil {
				return "", "", fmt.Errorf("rendering html: %w", err)
			}
		}
	}

	name := textContent(h1)
	if name == "" {
		name = textContent(title)
	}
	return sb.String(), name, nil
}

func textContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
