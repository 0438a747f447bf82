package lesson

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ziadkadry99/termlink/internal/diagram"
	"github.com/ziadkadry99/termlink/internal/glossary"
	"github.com/ziadkadry99/termlink/internal/hitzone"
	"github.com/ziadkadry99/termlink/internal/progress"
)

// GlossaryEntry is one record of glossary.json.
type GlossaryEntry struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	Alias   string `json:"alias"`
	Level   string `json:"level"`
	Plain   string `json:"plain"`
	Detail  string `json:"detail"`
	Analogy string `json:"analogy"`
	Mistake string `json:"mistake"`
	Example string `json:"example"`
	Scene   string `json:"scene"`
	Code    string `json:"code"`
	Search  string `json:"search"`
}

// SurfaceEntry is one record of surfaces.json.
type SurfaceEntry struct {
	Width  float64        `json:"width"`
	Height float64        `json:"height"`
	Zones  []hitzone.Zone `json:"zones"`
}

// BuildConfig controls a static build.
type BuildConfig struct {
	Title     string
	OutputDir string
	DPR       float64
	// CanvasWidth and CanvasHeight size surfaces that have no preferred size.
	CanvasWidth  float64
	CanvasHeight float64
}

// BuildResult summarizes a static build.
type BuildResult struct {
	Pages    int
	Markers  int
	Surfaces []string
}

// Builder writes a static site: one page per lesson, an index, the glossary
// and pre-rendered diagram surfaces with their hit zones.
type Builder struct {
	reg      *glossary.Registry
	renderer *Renderer
	cfg      BuildConfig
	reporter progress.Reporter
}

// NewBuilder creates a Builder. A nil reporter discards progress.
func NewBuilder(reg *glossary.Registry, renderer *Renderer, cfg BuildConfig, reporter progress.Reporter) *Builder {
	if reporter == nil {
		reporter = progress.Nop{}
	}
	return &Builder{reg: reg, renderer: renderer, cfg: cfg, reporter: reporter}
}

// Build renders sources into the output directory.
func (b *Builder) Build(ctx context.Context, sources []Source) (*BuildResult, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("no lessons to build")
	}
	if err := os.MkdirAll(b.cfg.OutputDir, 0o755); err != nil {
		return nil, err
	}

	if err := b.writeFile("style.css", []byte(cssContent)); err != nil {
		return nil, err
	}
	if err := b.writeFile("termlink.js", []byte(jsContent)); err != nil {
		return nil, err
	}
	if err := b.writeJSON("glossary.json", GlossaryEntries(b.reg)); err != nil {
		return nil, err
	}

	surfaces, err := b.writeSurfaces()
	if err != nil {
		return nil, err
	}

	res := &BuildResult{}
	for _, s := range surfaces {
		res.Surfaces = append(res.Surfaces, s.Name)
	}

	nav := make([]NavItem, 0, len(sources))
	lessons := make([]*Lesson, 0, len(sources))
	for _, src := range sources {
		l, err := b.renderer.Load(src)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", src.RelPath, err)
		}
		lessons = append(lessons, l)
		nav = append(nav, NavItem{Title: l.Title, Href: l.Slug + ".html"})
	}

	b.reporter.Start(len(lessons))
	defer b.reporter.Finish()

	for i, l := range lessons {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b.reporter.Update(i+1, l.RelPath)

		view := glossary.NewView(b.reg)
		var list bytes.Buffer
		if err := view.Render(&list); err != nil {
			return nil, err
		}

		pageNav := make([]NavItem, len(nav))
		copy(pageNav, nav)
		pageNav[i].Active = true

		var page bytes.Buffer
		err := RenderPage(&page, Page{
			SiteTitle: b.cfg.Title,
			Lesson:    l,
			Glossary:  templateHTML(list.String()),
			Count:     view.Count(),
			Surfaces:  surfaces,
			Nav:       pageNav,
		})
		if err != nil {
			return nil, err
		}
		if err := b.writeFile(l.Slug+".html", page.Bytes()); err != nil {
			return nil, err
		}
		res.Pages++
		res.Markers += l.Markers
	}

	var index bytes.Buffer
	if err := RenderIndex(&index, Index{SiteTitle: b.cfg.Title, Nav: nav}); err != nil {
		return nil, err
	}
	if err := b.writeFile("index.html", index.Bytes()); err != nil {
		return nil, err
	}
	return res, nil
}

// writeSurfaces renders every built-in surface at its preferred size and
// records the zones next to the images.
func (b *Builder) writeSurfaces() ([]Surface, error) {
	if err := os.MkdirAll(filepath.Join(b.cfg.OutputDir, "surfaces"), 0o755); err != nil {
		return nil, err
	}

	zones := hitzone.NewRegistry()
	r := diagram.NewDefaultRenderer(zones, b.reg,
		diagram.WithDPR(b.cfg.DPR),
		diagram.WithFallbackSize(b.cfg.CanvasWidth, b.cfg.CanvasHeight),
	)
	entries := make(map[string]SurfaceEntry)
	var out []Surface
	for _, name := range r.Names() {
		frame, err := r.Render(name, 0, 0)
		if err != nil {
			return nil, err
		}
		image := "surfaces/" + name + ".png"
		if err := b.writeFile(filepath.FromSlash(image), frame.PNG); err != nil {
			return nil, err
		}
		entries[name] = SurfaceEntry{Width: frame.Width, Height: frame.Height, Zones: zones.Zones(name)}
		out = append(out, Surface{Name: name, Width: frame.Width, Height: frame.Height, Image: image})
	}
	if err := b.writeJSON("surfaces.json", entries); err != nil {
		return nil, err
	}
	return out, nil
}

// GlossaryEntries exports the registry in glossary.json form.
func GlossaryEntries(reg *glossary.Registry) []GlossaryEntry {
	terms := reg.Terms()
	out := make([]GlossaryEntry, len(terms))
	for i, t := range terms {
		out[i] = GlossaryEntry{
			Key:     t.Key,
			Name:    t.Name,
			Alias:   t.Alias,
			Level:   t.Level,
			Plain:   t.Plain,
			Detail:  t.Detail,
			Analogy: t.Analogy,
			Mistake: t.Mistake,
			Example: t.Example,
			Scene:   t.Scene,
			Code:    t.Code,
			Search:  t.SearchBlob,
		}
	}
	return out
}

func (b *Builder) writeFile(rel string, data []byte) error {
	path := filepath.Join(b.cfg.OutputDir, rel)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	return nil
}

func (b *Builder) writeJSON(rel string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", rel, err)
	}
	return b.writeFile(rel, data)
}
