// Package trigger compiles glossary terms into a single matcher that finds
// term mentions in arbitrary text.
package trigger

import (
	"iter"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ziadkadry99/termlink/internal/glossary"
)

// Match is one accepted term mention. Start and End are byte offsets into
// the scanned text.
type Match struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
	Key   string `json:"key"`
}

// Index maps normalized trigger strings to term keys and holds the compiled
// matcher. It is read-only after Compile and safe for concurrent use.
//
// When two terms produce the same normalized trigger, the term registered
// first keeps it and the later one is dropped without notice.
type Index struct {
	keys     map[string]string
	triggers []string
	re       *regexp.Regexp // nil when no trigger was registered
}

// Compile derives every trigger of terms and builds the matcher. Triggers
// are tried longest first so that, at any position, the longest registered
// trigger wins ("self attention" over "attention").
func Compile(terms []*glossary.Term) *Index {
	idx := &Index{keys: make(map[string]string)}
	for _, t := range terms {
		for _, c := range candidates(t) {
			idx.register(c, t.Key)
		}
	}

	idx.triggers = make([]string, 0, len(idx.keys))
	for tr := range idx.keys {
		idx.triggers = append(idx.triggers, tr)
	}
	sort.Slice(idx.triggers, func(i, j int) bool {
		a, b := idx.triggers[i], idx.triggers[j]
		la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
		if la != lb {
			return la > lb
		}
		return a < b
	})

	if len(idx.triggers) == 0 {
		return idx
	}
	quoted := make([]string, len(idx.triggers))
	for i, tr := range idx.triggers {
		quoted[i] = regexp.QuoteMeta(tr)
	}
	idx.re = regexp.MustCompile(`(?i)` + strings.Join(quoted, "|"))
	return idx
}

// candidates lists the raw trigger strings of t in registration order:
// name, alias, then each alias part as written and with underscores as
// spaces.
func candidates(t *glossary.Term) []string {
	out := []string{t.Name, t.Alias}
	for _, part := range aliasSep.Split(t.Alias, -1) {
		part = strings.TrimSpace(part)
		out = append(out, part, strings.ReplaceAll(part, "_", " "))
	}
	return out
}

func (idx *Index) register(raw, key string) {
	cleaned := clean(raw)
	if cleaned == "" || tooShort(cleaned) {
		return
	}
	tr := lower(cleaned)
	if _, exists := idx.keys[tr]; exists {
		return
	}
	idx.keys[tr] = key
}

// Inert reports whether no trigger is registered. An inert index matches
// nothing and callers can skip scanning altogether.
func (idx *Index) Inert() bool {
	return idx.re == nil
}

// Len returns the number of registered triggers.
func (idx *Index) Len() int {
	return len(idx.triggers)
}

// Triggers returns the registered triggers, longest first.
func (idx *Index) Triggers() []string {
	out := make([]string, len(idx.triggers))
	copy(out, idx.triggers)
	return out
}

// Lookup resolves a trigger (normalized on the way in) to its term key.
func (idx *Index) Lookup(trigger string) (string, bool) {
	key, ok := idx.keys[Normalize(trigger)]
	return key, ok
}

// FindMatches scans text and yields accepted matches left to right. Raw
// matches never overlap; a rejected match still consumes its span.
//
// A hit made only of ASCII word characters (letters, digits, _ . / + -) is
// accepted only when the runes around it are not [A-Za-z0-9_], so "band"
// does not match inside "broadband". Other hits have no boundary rule,
// since CJK text has no spaces between words.
func (idx *Index) FindMatches(text string) iter.Seq[Match] {
	return func(yield func(Match) bool) {
		if idx.re == nil {
			return
		}
		for pos := 0; pos < len(text); {
			loc := idx.re.FindStringIndex(text[pos:])
			if loc == nil {
				return
			}
			start, end := pos+loc[0], pos+loc[1]
			pos = end
			if m, ok := idx.accept(text, start, end); ok && !yield(m) {
				return
			}
		}
	}
}

// HasMatch reports whether text contains at least one accepted match.
func (idx *Index) HasMatch(text string) bool {
	for range idx.FindMatches(text) {
		return true
	}
	return false
}

// accept resolves a regexp hit to its term. Runes where regexp case folding
// and Unicode lowercasing disagree (long s, final sigma) can match the
// pattern but miss the key map; such hits are rejected and their span is
// not rescanned.
func (idx *Index) accept(text string, start, end int) (Match, bool) {
	hit := text[start:end]
	key, ok := idx.keys[lower(hit)]
	if !ok {
		return Match{}, false
	}
	if isASCIIWordLike(hit) {
		if prev, _ := utf8.DecodeLastRuneInString(text[:start]); start > 0 && isWordRune(prev) {
			return Match{}, false
		}
		if next, _ := utf8.DecodeRuneInString(text[end:]); end < len(text) && isWordRune(next) {
			return Match{}, false
		}
	}
	return Match{Start: start, End: end, Text: hit, Key: key}, true
}
