package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/termlink/internal/diagram"
	"github.com/ziadkadry99/termlink/internal/glossary"
	"github.com/ziadkadry99/termlink/internal/hitzone"
	"github.com/ziadkadry99/termlink/internal/lesson"
)

const maxAnnotateBody = 1 << 20

func (s *Server) nav(active string) []lesson.NavItem {
	items := make([]lesson.NavItem, 0, len(s.sources))
	for _, src := range s.sources {
		items = append(items, lesson.NavItem{Title: s.titles[src.Slug], Href: "/lessons/" + src.Slug, Active: src.Slug == active})
	}
	return items
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := lesson.RenderIndex(&buf, lesson.Index{SiteTitle: s.cfg.Title, Nav: s.nav(""), BasePath: "/", Live: true}); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeHTML(w, buf.Bytes())
}

func (s *Server) handleLesson(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	src, ok := s.bySlug[slug]
	if !ok {
		writeError(w, http.StatusNotFound, "lesson not found: "+slug)
		return
	}

	l, err := s.renderer.Load(src)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	view := glossary.NewView(s.reg)
	var list bytes.Buffer
	if err := view.Render(&list); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	r2 := diagram.NewDefaultRenderer(nil, s.reg)
	surfaces := make([]lesson.Surface, 0, len(r2.Names()))
	for _, name := range r2.Names() {
		sf, _ := r2.Surface(name)
		width, height := sf.Size()
		surfaces = append(surfaces, lesson.Surface{Name: name, Width: width, Height: height})
	}

	var page bytes.Buffer
	err = lesson.RenderPage(&page, lesson.Page{
		SiteTitle: s.cfg.Title,
		Lesson:    l,
		Glossary:  glossaryHTML(list.String()),
		Count:     view.Count(),
		Surfaces:  surfaces,
		Nav:       s.nav(slug),
		BasePath:  "/",
		Live:      true,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeHTML(w, page.Bytes())
}

type glossaryResponse struct {
	Query string           `json:"query"`
	Count string           `json:"count"`
	Terms []*glossary.Term `json:"terms"`
}

func (s *Server) handleGlossary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	terms := s.reg.Search(q)
	if terms == nil {
		terms = []*glossary.Term{}
	}
	writeJSON(w, http.StatusOK, glossaryResponse{
		Query: q,
		Count: strconv.Itoa(len(terms)) + "/" + strconv.Itoa(s.reg.Len()),
		Terms: terms,
	})
}

func (s *Server) handleTerm(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	term, err := s.reg.Get(key)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, term)
}

type annotateRequest struct {
	HTML string `json:"html"`
}

type annotateResponse struct {
	HTML    string `json:"html"`
	Markers int    `json:"markers"`
}

func (s *Server) handleAnnotate(w http.ResponseWriter, r *http.Request) {
	var req annotateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAnnotateBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	out, n, err := s.ann.AnnotateHTML(req.HTML)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, annotateResponse{HTML: out, Markers: n})
}

func (s *Server) handleSurfaceList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, diagram.NewDefaultRenderer(nil, s.reg).Names())
}

// renderSurface draws a surface described by the request query: w, h and
// dpr set the size, and for the distribution p (probabilities) or scores
// with optional labels set the data.
func (s *Server) renderSurface(w http.ResponseWriter, r *http.Request) (*diagram.Frame, bool) {
	name := chi.URLParam(r, "name")
	q := r.URL.Query()

	zones := hitzone.NewRegistry()
	dpr := s.cfg.DPR
	if v, err := strconv.ParseFloat(q.Get("dpr"), 64); err == nil {
		dpr = v
	}
	rd := diagram.NewDefaultRenderer(zones, s.reg,
		diagram.WithDPR(dpr),
		diagram.WithFallbackSize(s.sessionCfg.CanvasWidth, s.sessionCfg.CanvasHeight),
	)

	if sf, ok := rd.Surface(name); ok {
		if dist, ok := sf.(*diagram.Distribution); ok {
			bars, err := barsFromQuery(q.Get("p"), q.Get("scores"), q.Get("labels"))
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return nil, false
			}
			dist.SetBars(bars)
		}
	}

	width, _ := strconv.ParseFloat(q.Get("w"), 64)
	height, _ := strconv.ParseFloat(q.Get("h"), 64)
	frame, err := rd.Render(name, width, height)
	if err != nil {
		if errors.Is(err, diagram.ErrUnknownSurface) {
			writeError(w, http.StatusNotFound, err.Error())
			return nil, false
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return frame, true
}

func (s *Server) handleSurfacePNG(w http.ResponseWriter, r *http.Request) {
	frame, ok := s.renderSurface(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write(frame.PNG)
}

type zonesResponse struct {
	Surface string         `json:"surface"`
	Width   float64        `json:"width"`
	Height  float64        `json:"height"`
	Zones   []hitzone.Zone `json:"zones"`
}

func (s *Server) handleSurfaceZones(w http.ResponseWriter, r *http.Request) {
	frame, ok := s.renderSurface(w, r)
	if !ok {
		return
	}
	zones := frame.Zones
	if zones == nil {
		zones = []hitzone.Zone{}
	}
	writeJSON(w, http.StatusOK, zonesResponse{Surface: frame.Surface, Width: frame.Width, Height: frame.Height, Zones: zones})
}

func barsFromQuery(p, scores, labels string) ([]diagram.Bar, error) {
	var values []float64
	var err error
	switch {
	case p != "":
		values, err = parseFloats(p)
	case scores != "":
		values, err = parseFloats(scores)
		values = diagram.Softmax(values)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(values) > diagram.MaxBars {
		return nil, fmt.Errorf("too many bars: %d (max %d)", len(values), diagram.MaxBars)
	}

	var names []string
	if labels != "" {
		names = strings.Split(labels, ",")
	}
	bars := make([]diagram.Bar, len(values))
	for i, v := range values {
		label := "#" + strconv.Itoa(i+1)
		if i < len(names) {
			label = strings.TrimSpace(names[i])
		}
		bars[i] = diagram.Bar{Label: label, P: v}
	}
	return bars, nil
}

func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, errors.New("invalid number: " + part)
		}
		out = append(out, v)
	}
	return out, nil
}

func handleAsset(contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Write([]byte(body))
	}
}

func glossaryHTML(s string) template.HTML { return template.HTML(s) }

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
