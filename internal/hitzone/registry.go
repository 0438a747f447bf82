// Package hitzone maps rectangles of drawn diagram surfaces to glossary
// term keys.
package hitzone

import (
	"math"
	"slices"
	"sync"
)

// Zone is a rectangle in a surface's logical pixel space tagged with the
// keys of related terms. TermKeys may be empty.
type Zone struct {
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	W        float64  `json:"w"`
	H        float64  `json:"h"`
	TermKeys []string `json:"term_keys"`
}

// Contains reports whether (x, y) lies in z. Edges are inclusive.
func (z Zone) Contains(x, y float64) bool {
	return x >= z.X && x <= z.X+z.W && y >= z.Y && y <= z.Y+z.H
}

// Registry holds the latest zone list of every surface. Each SetZones call
// replaces a surface's list wholesale, so zones from an earlier draw never
// survive a redraw.
type Registry struct {
	mu    sync.RWMutex
	zones map[string][]Zone
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{zones: make(map[string][]Zone)}
}

// SetZones replaces the zone list of surface. A nil or empty list clears it.
func (r *Registry) SetZones(surface string, zones []Zone) {
	cp := make([]Zone, len(zones))
	for i, z := range zones {
		z.TermKeys = slices.Clone(z.TermKeys)
		cp[i] = z
	}

	r.mu.Lock()
	r.zones[surface] = cp
	r.mu.Unlock()
}

// HitTest returns the first registered zone of surface containing (x, y).
// Unknown surfaces and non-finite coordinates never hit.
func (r *Registry) HitTest(surface string, x, y float64) (Zone, bool) {
	if !finite(x) || !finite(y) {
		return Zone{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, z := range r.zones[surface] {
		if z.Contains(x, y) {
			z.TermKeys = slices.Clone(z.TermKeys)
			return z, true
		}
	}
	return Zone{}, false
}

// Zones returns a copy of the zone list of surface.
func (r *Registry) Zones(surface string) []Zone {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.zones[surface]
	if stored == nil {
		return nil
	}
	out := make([]Zone, len(stored))
	for i, z := range stored {
		z.TermKeys = slices.Clone(z.TermKeys)
		out[i] = z
	}
	return out
}

// Surfaces returns the names of surfaces that have been drawn, sorted.
func (r *Registry) Surfaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.zones))
	for name := range r.zones {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
