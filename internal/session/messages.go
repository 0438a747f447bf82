package session

import (
	"github.com/ziadkadry99/termlink/internal/diagram"
	"github.com/ziadkadry99/termlink/internal/tooltip"
)

// Inbound message types.
const (
	TypeResize       = "resize"
	TypeMarkerEnter  = "marker_enter"
	TypeMarkerMove   = "marker_move"
	TypeMarkerLeave  = "marker_leave"
	TypeMarkerFocus  = "marker_focus"
	TypeMarkerBlur   = "marker_blur"
	TypeClick        = "click"
	TypePointerMove  = "pointer_move"
	TypePointerLeave = "pointer_leave"
	TypeSearch       = "search"
	TypeExpandAll    = "expand_all"
	TypeCollapseAll  = "collapse_all"
	TypeToggle       = "toggle"
	TypeDistribution = "distribution"
)

// Outbound message types.
const (
	TypeReady     = "ready"
	TypeTooltip   = "tooltip"
	TypeGlossary  = "glossary"
	TypeHighlight = "highlight"
	TypeCursor    = "cursor"
	TypeSurface   = "surface"
	TypeError     = "error"
)

// Cursor values sent for pointer affordance.
const (
	CursorPointer = "pointer"
	CursorDefault = "default"
)

// Request is the incoming WebSocket message format. Which fields are used
// depends on Type.
type Request struct {
	Type string `json:"type"`

	// Marker events.
	Marker  string        `json:"marker,omitempty"`
	Key     string        `json:"key,omitempty"`
	Related string        `json:"related,omitempty"`
	Rect    *tooltip.Rect `json:"rect,omitempty"`

	// Pointer position, in viewport pixels for marker events and surface
	// logical pixels for surface events.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	Surface string `json:"surface,omitempty"`

	Query string `json:"query,omitempty"`
	Open  bool   `json:"open,omitempty"`

	// Resize.
	Viewport *tooltip.Size           `json:"viewport,omitempty"`
	Tooltip  *tooltip.Size           `json:"tooltip,omitempty"`
	DPR      float64                 `json:"dpr,omitempty"`
	Surfaces map[string]tooltip.Size `json:"surfaces,omitempty"`

	// Distribution data, either probabilities or raw scores.
	Bars   []diagram.Bar `json:"bars,omitempty"`
	Labels []string      `json:"labels,omitempty"`
	Scores []float64     `json:"scores,omitempty"`
}

// GlossaryUpdate carries a re-rendered glossary list.
type GlossaryUpdate struct {
	HTML   string `json:"html"`
	Count  string `json:"count"`
	Filter string `json:"filter"`
}

// Response is the outgoing WebSocket message format.
type Response struct {
	Type      string          `json:"type"`
	SessionID string          `json:"session_id"`
	Tooltip   *tooltip.State  `json:"tooltip,omitempty"`
	Glossary  *GlossaryUpdate `json:"glossary,omitempty"`
	Keys      []string        `json:"keys,omitempty"`
	Surface   string          `json:"surface,omitempty"`
	Cursor    string          `json:"cursor,omitempty"`
	Image     string          `json:"image,omitempty"`
	Width     float64         `json:"width,omitempty"`
	Height    float64         `json:"height,omitempty"`
	Surfaces  []string        `json:"surfaces,omitempty"`
	Error     string          `json:"error,omitempty"`
}
