// Package diagram draws the interactive lesson figures to PNG and records
// which regions of each figure relate to which glossary terms.
package diagram

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/fogleman/gg"

	"github.com/ziadkadry99/termlink/internal/glossary"
	"github.com/ziadkadry99/termlink/internal/hitzone"
)

// Fallback logical sizes used when the caller does not know the element
// size.
const (
	DefaultWidth  = 520.0
	DefaultHeight = 280.0
	maxDPR        = 4.0
	maxSide       = 4096.0
)

// ErrUnknownSurface is returned by Render for a surface name that was never
// registered.
var ErrUnknownSurface = errors.New("unknown surface")

// Surface is one drawable figure.
type Surface interface {
	Name() string
	// Size is the preferred logical size of the figure.
	Size() (w, h float64)
	// Draw paints the figure into a w by h logical area and returns the
	// hit zones of what it drew.
	Draw(c *Canvas, w, h float64) []hitzone.Zone
}

// Frame is the result of one render.
type Frame struct {
	Surface string
	Width   float64
	Height  float64
	DPR     float64
	PNG     []byte
	Zones   []hitzone.Zone
}

// Renderer owns a set of surfaces and publishes their hit zones after every
// draw. A Renderer is not safe for concurrent use; give each client its own.
type Renderer struct {
	zones    *hitzone.Registry
	surfaces map[string]Surface
	order    []string
	dpr      float64
	fallback [2]float64
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithDPR sets the device pixel ratio. Values outside (0, 4] fall back to 1.
func WithDPR(dpr float64) Option {
	return func(r *Renderer) { r.dpr = normalizeDPR(dpr) }
}

// WithFallbackSize sets the size used when neither the caller nor the
// surface provides a usable one.
func WithFallbackSize(w, h float64) Option {
	return func(r *Renderer) {
		if validSide(w) && validSide(h) {
			r.fallback = [2]float64{w, h}
		}
	}
}

// NewRenderer creates a renderer that reports zones to zones.
func NewRenderer(zones *hitzone.Registry, opts ...Option) *Renderer {
	r := &Renderer{
		zones:    zones,
		surfaces: make(map[string]Surface),
		dpr:      1,
		fallback: [2]float64{DefaultWidth, DefaultHeight},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewDefaultRenderer creates a renderer with the built-in surfaces tagged
// against reg.
func NewDefaultRenderer(zones *hitzone.Registry, reg *glossary.Registry, opts ...Option) *Renderer {
	r := NewRenderer(zones, opts...)
	groups := Groups(reg)
	r.Register(NewArchitecture(groups))
	r.Register(NewPipeline(groups))
	r.Register(NewDistribution(groups))
	return r
}

// Register adds s, replacing a surface of the same name.
func (r *Renderer) Register(s Surface) {
	name := s.Name()
	if _, ok := r.surfaces[name]; !ok {
		r.order = append(r.order, name)
	}
	r.surfaces[name] = s
}

// Surface returns a registered surface.
func (r *Renderer) Surface(name string) (Surface, bool) {
	s, ok := r.surfaces[name]
	return s, ok
}

// Names lists registered surfaces in registration order.
func (r *Renderer) Names() []string {
	return slices.Clone(r.order)
}

// SetDPR changes the device pixel ratio for later renders.
func (r *Renderer) SetDPR(dpr float64) { r.dpr = normalizeDPR(dpr) }

// Render draws the named surface at w by h logical pixels. Non-positive or
// non-finite sizes fall back to the surface's preferred size, or to the
// renderer's fallback size when the surface has none. The surface's
// hit zones are replaced before Render returns. The device pixel ratio is
// lowered for this frame when the bitmap would exceed maxSide on either side.
func (r *Renderer) Render(name string, w, h float64) (*Frame, error) {
	s, ok := r.surfaces[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSurface, name)
	}
	fw, fh := s.Size()
	if !validSide(fw) || !validSide(fh) {
		fw, fh = r.fallback[0], r.fallback[1]
	}
	if !validSide(w) {
		w = fw
	}
	if !validSide(h) {
		h = fh
	}

	f, err := loadFonts()
	if err != nil {
		return nil, err
	}

	dpr := physicalDPR(r.dpr, w, h)
	dc := gg.NewContext(int(math.Floor(w*dpr)), int(math.Floor(h*dpr)))
	dc.Scale(dpr, dpr)
	c := &Canvas{Context: dc, fonts: f}
	zones := s.Draw(c, w, h)
	if r.zones != nil {
		r.zones.SetZones(name, zones)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", name, err)
	}
	return &Frame{
		Surface: name,
		Width:   w,
		Height:  h,
		DPR:     dpr,
		PNG:     buf.Bytes(),
		Zones:   zones,
	}, nil
}

func validSide(v float64) bool {
	return v > 0 && v <= maxSide && !math.IsInf(v, 0)
}

func physicalDPR(dpr, w, h float64) float64 {
	return min(dpr, maxSide/w, maxSide/h)
}

func normalizeDPR(dpr float64) float64 {
	if math.IsNaN(dpr) || dpr <= 0 || dpr > maxDPR {
		return 1
	}
	return dpr
}
