// Package tooltip places and renders the floating term summary shown for a
// hovered or focused marker.
package tooltip

import (
	"bytes"
	"html/template"

	"github.com/ziadkadry99/termlink/internal/glossary"
)

// Defaults match the stylesheet shipped with the lesson pages.
const (
	DefaultGap    = 14.0
	DefaultInset  = 8.0
	DefaultWidth  = 280.0
	DefaultHeight = 96.0
	focusOffset   = 6.0
)

// Size is a width/height pair in CSS pixels.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Rect is an axis-aligned rectangle in viewport coordinates.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Config holds placement parameters.
type Config struct {
	Gap   float64
	Inset float64
	// Size is the tooltip size used until the client reports a measured one.
	Size Size
}

// DefaultConfig returns the standard placement parameters.
func DefaultConfig() Config {
	return Config{
		Gap:   DefaultGap,
		Inset: DefaultInset,
		Size:  Size{W: DefaultWidth, H: DefaultHeight},
	}
}

// State is what the client needs to draw the tooltip.
type State struct {
	Visible  bool          `json:"visible"`
	MarkerID string        `json:"marker_id,omitempty"`
	TermKey  string        `json:"term_key,omitempty"`
	Content  template.HTML `json:"content,omitempty"`
	Left     float64       `json:"left"`
	Top      float64       `json:"top"`
}

var contentTemplate = template.Must(template.New("tooltip").Parse(
	`<strong>{{ .Name }} <span class="term-alias">{{ .Alias }}</span></strong><div>{{ .Plain }}</div>`))

// Controller tracks the single tooltip of one client. It remembers the
// active marker only to decide between repositioning and hiding. A
// Controller is not safe for concurrent use.
type Controller struct {
	reg      *glossary.Registry
	cfg      Config
	viewport Size
	size     Size
	state    State
}

// New creates a hidden tooltip for a viewport of the given size. Marker
// events resolve term keys through reg.
func New(reg *glossary.Registry, cfg Config, viewport Size) *Controller {
	def := DefaultConfig()
	if cfg.Size.W <= 0 || cfg.Size.H <= 0 {
		cfg.Size = def.Size
	}
	if cfg.Gap < 0 {
		cfg.Gap = def.Gap
	}
	if cfg.Inset < 0 {
		cfg.Inset = def.Inset
	}
	return &Controller{reg: reg, cfg: cfg, viewport: viewport, size: cfg.Size}
}

// State returns the current tooltip state.
func (c *Controller) State() State { return c.state }

// Visible reports whether the tooltip is shown.
func (c *Controller) Visible() bool { return c.state.Visible }

// SetViewport records a new viewport size.
func (c *Controller) SetViewport(vp Size) { c.viewport = vp }

// SetSize records the measured tooltip size. Non-positive sizes are ignored.
func (c *Controller) SetSize(s Size) {
	if s.W > 0 && s.H > 0 {
		c.size = s
	}
}

// Show renders term and places the tooltip next to the anchor.
func (c *Controller) Show(term *glossary.Term, anchorX, anchorY float64) State {
	if term == nil {
		return c.state
	}
	var buf bytes.Buffer
	if err := contentTemplate.Execute(&buf, term); err != nil {
		return c.state
	}
	c.state.Visible = true
	c.state.MarkerID = ""
	c.state.TermKey = term.Key
	c.state.Content = template.HTML(buf.String())
	c.place(anchorX, anchorY)
	return c.state
}

// Reposition moves a visible tooltip to follow (x, y). It reports false and
// does nothing while hidden.
func (c *Controller) Reposition(x, y float64) (State, bool) {
	if !c.state.Visible {
		return c.state, false
	}
	c.place(x, y)
	return c.state, true
}

// Hide hides the tooltip and forgets the active marker. Safe to call when
// already hidden.
func (c *Controller) Hide() State {
	c.state = State{}
	return c.state
}

func (c *Controller) place(x, y float64) {
	r := Place(x, y, c.size, c.viewport, c.cfg.Gap, c.cfg.Inset)
	c.state.Left, c.state.Top = r.X, r.Y
}

// Place positions a tooltip of the given size next to the anchor (x, y).
// The default spot is below-right at gap distance; each axis flips to the
// other side independently when the default would overflow, and the result
// is clamped to stay inset from every viewport edge. A tooltip larger than
// the viewport is pinned to the top-left inset.
func Place(x, y float64, size, viewport Size, gap, inset float64) Rect {
	left := x + gap
	top := y + gap
	if left+size.W > viewport.W-inset {
		left = x - size.W - gap
	}
	if top+size.H > viewport.H-inset {
		top = y - size.H - gap
	}
	return Rect{
		X: clamp(left, inset, viewport.W-size.W-inset),
		Y: clamp(top, inset, viewport.H-size.H-inset),
		W: size.W,
		H: size.H,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
