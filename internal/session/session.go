// Package session drives one reader's interactive lesson over a WebSocket:
// tooltips for hovered or focused terms, glossary search and highlights,
// and clickable diagram surfaces.
package session

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/termlink/internal/diagram"
	"github.com/ziadkadry99/termlink/internal/glossary"
	"github.com/ziadkadry99/termlink/internal/highlight"
	"github.com/ziadkadry99/termlink/internal/hitzone"
	"github.com/ziadkadry99/termlink/internal/tooltip"
)

// Config is shared by all sessions and never modified by them.
type Config struct {
	Registry          *glossary.Registry
	Tooltip           tooltip.Config
	HighlightDuration time.Duration
	DPR               float64
	// CanvasWidth and CanvasHeight size surfaces that have no preferred size.
	CanvasWidth  float64
	CanvasHeight float64
	// Scheduler overrides the clock used for highlight expiry.
	Scheduler highlight.Scheduler
}

// Writer sends one JSON message to the client.
type Writer interface {
	WriteJSON(v any) error
}

var defaultViewport = tooltip.Size{W: 1024, H: 768}

// Session holds the per-client state. Events are handled one at a time by
// the connection's read loop; only the glossary view is also touched by the
// highlight timer, and the highlight controller guards it.
type Session struct {
	id  string
	cfg Config

	writeMu sync.Mutex
	out     Writer

	hl       *highlight.Controller
	tip      *tooltip.Controller
	zones    *hitzone.Registry
	diagrams *diagram.Renderer
	sizes    map[string]tooltip.Size
}

// New creates a session writing to out.
func New(cfg Config, out Writer) *Session {
	s := &Session{
		id:    uuid.NewString(),
		cfg:   cfg,
		out:   out,
		zones: hitzone.NewRegistry(),
		sizes: make(map[string]tooltip.Size),
	}

	opts := []highlight.Option{
		highlight.WithDuration(cfg.HighlightDuration),
		highlight.WithOnChange(s.sendGlossary),
	}
	if cfg.Scheduler != nil {
		opts = append(opts, highlight.WithScheduler(cfg.Scheduler))
	}
	s.hl = highlight.New(glossary.NewView(cfg.Registry), opts...)
	s.tip = tooltip.New(cfg.Registry, cfg.Tooltip, defaultViewport)
	s.diagrams = diagram.NewDefaultRenderer(s.zones, cfg.Registry,
		diagram.WithDPR(cfg.DPR),
		diagram.WithFallbackSize(cfg.CanvasWidth, cfg.CanvasHeight),
	)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Start sends the initial state: the session id, the glossary list and
// every surface at its preferred size.
func (s *Session) Start() {
	names := s.diagrams.Names()
	s.send(Response{Type: TypeReady, Surfaces: names})
	s.sendGlossary()
	for _, name := range names {
		s.renderSurface(name)
	}
}

// Close cancels pending timers.
func (s *Session) Close() {
	s.hl.Clear()
}

// Handle processes one client event.
func (s *Session) Handle(req Request) {
	switch req.Type {
	case TypeResize:
		s.handleResize(req)
	case TypeMarkerEnter:
		st := s.tip.Enter(req.Marker, req.Key, req.X, req.Y)
		s.sendTooltip(st)
	case TypeMarkerMove:
		if st, ok := s.tip.Move(req.X, req.Y); ok {
			s.sendTooltip(st)
		}
	case TypeMarkerLeave:
		s.sendTooltip(s.tip.Leave(req.Related))
	case TypeMarkerFocus:
		if req.Rect == nil {
			s.sendError("rect is required")
			return
		}
		s.sendTooltip(s.tip.FocusIn(req.Marker, req.Key, *req.Rect))
	case TypeMarkerBlur:
		s.sendTooltip(s.tip.FocusOut(req.Marker))
	case TypeClick:
		s.handleClick(req)
	case TypePointerMove:
		cursor := CursorDefault
		if _, ok := s.zones.HitTest(req.Surface, req.X, req.Y); ok {
			cursor = CursorPointer
		}
		s.send(Response{Type: TypeCursor, Surface: req.Surface, Cursor: cursor})
	case TypePointerLeave:
		s.send(Response{Type: TypeCursor, Surface: req.Surface, Cursor: CursorDefault})
	case TypeSearch:
		s.hl.WithView(func(v *glossary.View) { v.SetFilter(req.Query) })
		s.sendGlossary()
	case TypeExpandAll:
		s.hl.WithView(func(v *glossary.View) { v.ExpandAll() })
		s.sendGlossary()
	case TypeCollapseAll:
		s.hl.WithView(func(v *glossary.View) { v.CollapseAll() })
		s.sendGlossary()
	case TypeToggle:
		s.hl.WithView(func(v *glossary.View) { v.SetOpen(req.Key, req.Open) })
	case TypeDistribution:
		s.handleDistribution(req)
	default:
		s.sendError("unknown message type: " + req.Type)
	}
}

func (s *Session) handleResize(req Request) {
	if req.Viewport != nil {
		s.tip.SetViewport(*req.Viewport)
	}
	if req.Tooltip != nil {
		s.tip.SetSize(*req.Tooltip)
	}
	if req.DPR > 0 {
		s.diagrams.SetDPR(req.DPR)
	}
	for name, size := range req.Surfaces {
		if _, ok := s.diagrams.Surface(name); !ok {
			continue
		}
		s.sizes[name] = size
		s.renderSurface(name)
	}
}

func (s *Session) handleClick(req Request) {
	zone, ok := s.zones.HitTest(req.Surface, req.X, req.Y)
	if !ok || len(zone.TermKeys) == 0 {
		return
	}
	res := s.hl.Highlight(zone.TermKeys)
	if len(res.Keys) == 0 {
		return
	}
	s.sendGlossary()
	s.send(Response{Type: TypeHighlight, Surface: req.Surface, Keys: res.Keys})
}

func (s *Session) handleDistribution(req Request) {
	surface, ok := s.diagrams.Surface("distribution")
	if !ok {
		return
	}
	dist, ok := surface.(*diagram.Distribution)
	if !ok {
		return
	}

	if len(req.Bars) > diagram.MaxBars || len(req.Scores) > diagram.MaxBars {
		s.sendError(fmt.Sprintf("distribution: at most %d bars", diagram.MaxBars))
		return
	}
	bars := req.Bars
	if len(bars) == 0 && len(req.Scores) > 0 {
		probs := diagram.Softmax(req.Scores)
		bars = make([]diagram.Bar, len(probs))
		for i, p := range probs {
			label := fmt.Sprintf("#%d", i+1)
			if i < len(req.Labels) {
				label = req.Labels[i]
			}
			bars[i] = diagram.Bar{Label: label, P: p}
		}
	}
	dist.SetBars(bars)
	s.renderSurface(dist.Name())
}

func (s *Session) renderSurface(name string) {
	size := s.sizes[name]
	frame, err := s.diagrams.Render(name, size.W, size.H)
	if err != nil {
		if !errors.Is(err, diagram.ErrUnknownSurface) {
			log.Printf("session %s: render %s: %v", s.id, name, err)
			s.sendError("failed to draw " + name)
		}
		return
	}
	s.send(Response{
		Type:    TypeSurface,
		Surface: name,
		Image:   "data:image/png;base64," + base64.StdEncoding.EncodeToString(frame.PNG),
		Width:   frame.Width,
		Height:  frame.Height,
	})
}

func (s *Session) sendTooltip(st tooltip.State) {
	s.send(Response{Type: TypeTooltip, Tooltip: &st})
}

func (s *Session) sendGlossary() {
	var (
		buf bytes.Buffer
		upd GlossaryUpdate
		err error
	)
	s.hl.WithView(func(v *glossary.View) {
		err = v.Render(&buf)
		upd.Count = v.Count()
		upd.Filter = v.Filter()
	})
	if err != nil {
		log.Printf("session %s: render glossary: %v", s.id, err)
		s.sendError("failed to render glossary")
		return
	}
	upd.HTML = buf.String()
	s.send(Response{Type: TypeGlossary, Glossary: &upd})
}

func (s *Session) sendError(message string) {
	s.send(Response{Type: TypeError, Error: message})
}

func (s *Session) send(resp Response) {
	resp.SessionID = s.id
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.out.WriteJSON(resp); err != nil {
		log.Printf("session %s: websocket write: %v", s.id, err)
	}
}
