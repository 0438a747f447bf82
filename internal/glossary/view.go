package glossary

import (
	"fmt"
	"io"
)

// initiallyOpen is how many cards start expanded when no filter is active.
const initiallyOpen = 3

// Entry is one card of the glossary list.
type Entry struct {
	Term        *Term
	Open        bool
	Highlighted bool
}

// View is the glossary list state of one client: the active filter, the
// filtered entries in registry order, and per-entry open/highlight flags.
// A View is not safe for concurrent use; its owner serializes access.
type View struct {
	reg     *Registry
	filter  string
	entries []Entry
	index   map[string]int
}

// NewView creates a View over reg with an empty filter.
func NewView(reg *Registry) *View {
	v := &View{reg: reg}
	v.SetFilter("")
	return v
}

// SetFilter applies query and rebuilds the entry list. Rebuilding resets
// all open and highlight flags, like re-rendering the list from scratch.
func (v *View) SetFilter(query string) {
	v.filter = query
	terms := v.reg.Search(query)
	unfiltered := NormalizeQuery(query) == ""

	v.entries = make([]Entry, len(terms))
	v.index = make(map[string]int, len(terms))
	for i, t := range terms {
		v.entries[i] = Entry{Term: t, Open: unfiltered && i < initiallyOpen}
		v.index[t.Key] = i
	}
}

// Filter returns the active filter string.
func (v *View) Filter() string { return v.filter }

// Entries returns the current entries. The slice is owned by the View.
func (v *View) Entries() []Entry { return v.entries }

// Has reports whether key is visible under the current filter.
func (v *View) Has(key string) bool {
	_, ok := v.index[key]
	return ok
}

// Entry returns the visible entry for key.
func (v *View) Entry(key string) (Entry, bool) {
	i, ok := v.index[key]
	if !ok {
		return Entry{}, false
	}
	return v.entries[i], true
}

// Count reports the result count as "filtered/total".
func (v *View) Count() string {
	return fmt.Sprintf("%d/%d", len(v.entries), v.reg.Len())
}

// SetOpen expands or collapses the entry for key. It returns false when the
// entry is not visible.
func (v *View) SetOpen(key string, open bool) bool {
	i, ok := v.index[key]
	if !ok {
		return false
	}
	v.entries[i].Open = open
	return true
}

// SetHighlighted flags or unflags the entry for key. It returns false when
// the entry is not visible.
func (v *View) SetHighlighted(key string, on bool) bool {
	i, ok := v.index[key]
	if !ok {
		return false
	}
	v.entries[i].Highlighted = on
	return true
}

// ClearHighlights unflags every entry.
func (v *View) ClearHighlights() {
	for i := range v.entries {
		v.entries[i].Highlighted = false
	}
}

// Highlighted returns the keys of flagged entries in list order.
func (v *View) Highlighted() []string {
	var out []string
	for _, e := range v.entries {
		if e.Highlighted {
			out = append(out, e.Term.Key)
		}
	}
	return out
}

// ExpandAll opens every visible entry.
func (v *View) ExpandAll() {
	for i := range v.entries {
		v.entries[i].Open = true
	}
}

// CollapseAll closes every visible entry.
func (v *View) CollapseAll() {
	for i := range v.entries {
		v.entries[i].Open = false
	}
}

// Render writes the glossary list markup for the current state.
func (v *View) Render(w io.Writer) error {
	return listTemplate.Execute(w, v.entries)
}
