package lesson

import (
	"fmt"
	"html/template"
	"io"
)

// NavItem is one entry of the lesson list.
type NavItem struct {
	Title  string
	Href   string
	Active bool
}

// Surface is a diagram canvas placed on the page.
type Surface struct {
	Name   string
	Width  float64
	Height float64
	// Image is the URL of a pre-rendered frame; empty in live mode where the
	// session streams frames.
	Image string
}

// Page is the data of one lesson page.
type Page struct {
	SiteTitle string
	Lesson    *Lesson
	Glossary  template.HTML
	Count     string
	Surfaces  []Surface
	Nav       []NavItem
	BasePath  string
	// Live pages open a WebSocket session; static pages use glossary.json
	// and surfaces.json next to them.
	Live bool
}

// Index is the data of the lesson index page.
type Index struct {
	SiteTitle string
	Nav       []NavItem
	BasePath  string
	Live      bool
}

var (
	pageTmpl  = template.Must(template.New("page").Parse(pageTemplate))
	indexTmpl = template.Must(template.New("index").Parse(indexTemplate))
)

// RenderPage writes a lesson page.
func RenderPage(w io.Writer, p Page) error {
	if p.Lesson == nil {
		return fmt.Errorf("rendering page: no lesson")
	}
	if err := pageTmpl.Execute(w, p); err != nil {
		return fmt.Errorf("rendering page %s: %w", p.Lesson.Slug, err)
	}
	return nil
}

// RenderIndex writes the lesson index.
func RenderIndex(w io.Writer, idx Index) error {
	if err := indexTmpl.Execute(w, idx); err != nil {
		return fmt.Errorf("rendering index: %w", err)
	}
	return nil
}

// Stylesheet returns the shared page stylesheet.
func Stylesheet() string { return cssContent }

// Script returns the shared page script.
func Script() string { return jsContent }

// templateHTML marks glossary markup rendered by html/template as safe.
func templateHTML(s string) template.HTML { return template.HTML(s) }
