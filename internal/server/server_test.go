package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/termlink/internal/annotate"
	"github.com/ziadkadry99/termlink/internal/diagram"
	"github.com/ziadkadry99/termlink/internal/glossary"
	"github.com/ziadkadry99/termlink/internal/lesson"
	"github.com/ziadkadry99/termlink/internal/session"
	"github.com/ziadkadry99/termlink/internal/trigger"
)

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	reg, err := glossary.Build(glossary.Default())
	require.NoError(t, err)
	ann := annotate.New(reg, trigger.Compile(reg.Terms()))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "attention.md"), []byte("# 注意力入门\n\nself-attention 之后接 MLP，再做 softmax。\n"), 0o644))
	sources, err := lesson.Discover(lesson.DiscoverConfig{Root: dir})
	require.NoError(t, err)

	if cfg.Title == "" {
		cfg.Title = "Course"
	}
	return New(cfg, reg, ann, sources, session.Config{})
}

func do(t *testing.T, srv *Server, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t, Config{})
	w := do(t, srv, "GET", "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(t, Config{AllowAll: true})

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestIndexAndLesson(t *testing.T) {
	srv := newTestServer(t, Config{})

	w := do(t, srv, "GET", "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<a href="/lessons/attention">注意力入门</a>`)

	w = do(t, srv, "GET", "/lessons/attention", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := w.Body.String()
	assert.Contains(t, page, `data-live="true"`)
	assert.Contains(t, page, `class="tech-term"`)
	assert.Contains(t, page, `<div id="termList">`)
	assert.Contains(t, page, `<details class="term-card"`)
	assert.Contains(t, page, `data-surface="architecture"`)
	assert.Contains(t, page, `src="/termlink.js"`)

	w = do(t, srv, "GET", "/lessons/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssets(t *testing.T) {
	srv := newTestServer(t, Config{})
	w := do(t, srv, "GET", "/termlink.js", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "javascript")
	assert.Contains(t, w.Body.String(), "/ws/session")

	w = do(t, srv, "GET", "/style.css", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), ".term-highlight")
}

func TestGlossaryAPI(t *testing.T) {
	srv := newTestServer(t, Config{})

	w := do(t, srv, "GET", "/api/glossary?q=SOFTMAX", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp glossaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Terms)
	assert.True(t, strings.HasSuffix(resp.Count, "/54"))
	for _, term := range resp.Terms {
		text := strings.Join([]string{term.Name, term.Alias, term.Level, term.Plain, term.Detail, term.Analogy, term.Mistake, term.Example, term.Scene}, " ")
		assert.Contains(t, strings.ToLower(text), "softmax")
	}

	w = do(t, srv, "GET", "/api/glossary?q=zzz-nothing", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"terms":[]`)
}

func TestTermAPI(t *testing.T) {
	srv := newTestServer(t, Config{})

	w := do(t, srv, "GET", "/api/terms/term-0", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var term glossary.Term
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &term))
	assert.Equal(t, "字符", term.Name)

	w = do(t, srv, "GET", "/api/terms/nope", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
}

func TestAnnotateAPI(t *testing.T) {
	srv := newTestServer(t, Config{})

	payload, err := json.Marshal(annotateRequest{HTML: "<p>self-attention 之后做 softmax</p><pre>softmax</pre>"})
	require.NoError(t, err)
	w := do(t, srv, "POST", "/api/annotate", payload)
	require.Equal(t, http.StatusOK, w.Code)

	var resp annotateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Markers)
	assert.Contains(t, resp.HTML, "<pre>softmax</pre>")

	w = do(t, srv, "POST", "/api/annotate", []byte("{bad"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSurfaceEndpoints(t *testing.T) {
	srv := newTestServer(t, Config{DPR: 1})

	w := do(t, srv, "GET", "/api/surfaces/architecture.png?w=380&h=200&dpr=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 760, img.Bounds().Dx())

	w = do(t, srv, "GET", "/api/surfaces/architecture.json", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var zones zonesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &zones))
	assert.Len(t, zones.Zones, 9)

	w = do(t, srv, "GET", "/api/surfaces/distribution.json", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &zones))
	assert.Empty(t, zones.Zones)

	w = do(t, srv, "GET", "/api/surfaces/distribution.json?scores=2,1,0&labels=the,a", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &zones))
	assert.Len(t, zones.Zones, 3)

	w = do(t, srv, "GET", "/api/surfaces/distribution.png?p=0.5,x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, "GET", "/api/surfaces/nope.png", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, srv, "GET", "/api/surfaces", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["architecture","pipeline","distribution"]`, w.Body.String())
}

func TestSurfaceEndpointBoundsBitmap(t *testing.T) {
	srv := newTestServer(t, Config{DPR: 1})

	w := do(t, srv, "GET", "/api/surfaces/pipeline.png?w=4096&h=512&dpr=4", nil)
	require.Equal(t, http.StatusOK, w.Code)
	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 4096, img.Bounds().Dx())
	assert.Equal(t, 512, img.Bounds().Dy())

	p := strings.TrimSuffix(strings.Repeat("0.01,", diagram.MaxBars+1), ",")
	w = do(t, srv, "GET", "/api/surfaces/distribution.png?p="+p, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBarsFromQuery(t *testing.T) {
	bars, err := barsFromQuery("0.7, 0.3", "", "a,b")
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, "a", bars[0].Label)
	assert.Equal(t, 0.7, bars[0].P)

	bars, err = barsFromQuery("", "1,1", "")
	require.NoError(t, err)
	assert.Equal(t, "#2", bars[1].Label)
	assert.InDelta(t, 0.5, bars[1].P, 1e-12)

	bars, err = barsFromQuery("", "", "")
	require.NoError(t, err)
	assert.Nil(t, bars)
}
