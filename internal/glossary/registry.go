package glossary

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// ErrDuplicateKey is returned by Build when two records share a key.
	ErrDuplicateKey = errors.New("duplicate term key")
	// ErrNotFound is returned when a term key is not registered.
	ErrNotFound = errors.New("term not found")
)

// Registry owns the canonical, ordered list of terms and the key lookup.
// It is immutable after Build and safe for concurrent readers.
type Registry struct {
	terms []*Term
	byKey map[string]*Term
}

// Build creates a Registry from authored records. Records without a key get
// "term-<index>". Example falls back to the scene, then to a templated
// sentence naming the term.
func Build(raw []RawTerm) (*Registry, error) {
	r := &Registry{
		terms: make([]*Term, 0, len(raw)),
		byKey: make(map[string]*Term, len(raw)),
	}

	for i, rt := range raw {
		key := strings.TrimSpace(rt.Key)
		if key == "" {
			key = fmt.Sprintf("term-%d", i)
		}
		if _, ok := r.byKey[key]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, key)
		}

		t := &Term{
			Key:     key,
			Name:    rt.Name,
			Alias:   rt.Alias,
			Level:   rt.Level,
			Plain:   rt.Plain,
			Detail:  rt.Detail,
			Analogy: rt.Analogy,
			Mistake: rt.Mistake,
			Scene:   rt.Scene,
			Code:    rt.Code,
		}
		t.Example = buildExample(rt)
		t.SearchBlob = NormalizeQuery(strings.Join([]string{
			t.Name, t.Alias, t.Level, t.Plain, t.Detail,
			t.Analogy, t.Mistake, t.Example, t.Scene,
		}, " "))

		r.terms = append(r.terms, t)
		r.byKey[key] = t
	}

	return r, nil
}

func buildExample(rt RawTerm) string {
	if rt.Example != "" {
		return rt.Example
	}
	if rt.Scene != "" {
		return "例如: " + rt.Scene
	}
	return "例如: 在学习流程中，用“" + rt.Name + "”描述对应步骤。"
}

// NormalizeQuery trims and lower-cases s. It is the normalization applied to
// both search blobs and search queries.
func NormalizeQuery(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

// Terms returns the terms in registry order. The slice is shared; callers
// must not modify it.
func (r *Registry) Terms() []*Term {
	return r.terms
}

// Len returns the number of registered terms.
func (r *Registry) Len() int {
	return len(r.terms)
}

// Lookup returns the term registered under key.
func (r *Registry) Lookup(key string) (*Term, bool) {
	t, ok := r.byKey[key]
	return t, ok
}

// Get is Lookup with an error for callers that report misses.
func (r *Registry) Get(key string) (*Term, error) {
	if t, ok := r.byKey[key]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
}

// Search returns every term whose search blob contains query, preserving
// registry order. An empty query returns all terms.
func (r *Registry) Search(query string) []*Term {
	q := NormalizeQuery(query)
	if q == "" {
		out := make([]*Term, len(r.terms))
		copy(out, r.terms)
		return out
	}
	var out []*Term
	for _, t := range r.terms {
		if strings.Contains(t.SearchBlob, q) {
			out = append(out, t)
		}
	}
	return out
}

// FindKeys returns the keys of terms whose search blob contains any of the
// keywords, in registry order and without duplicates. Diagrams use it to
// tag their regions with groups of related terms.
func (r *Registry) FindKeys(keywords ...string) []string {
	var kws []string
	for _, k := range keywords {
		if n := NormalizeQuery(k); n != "" {
			kws = append(kws, n)
		}
	}
	if len(kws) == 0 {
		return nil
	}

	var out []string
	for _, t := range r.terms {
		for _, k := range kws {
			if strings.Contains(t.SearchBlob, k) {
				out = append(out, t.Key)
				break
			}
		}
	}
	return out
}
