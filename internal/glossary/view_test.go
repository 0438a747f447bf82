package glossary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestView(t *testing.T) *View {
	t.Helper()
	raw := append(sampleTerms(), RawTerm{Name: "词表", Alias: "vocab"}, RawTerm{Name: "学习率", Alias: "learning_rate"})
	reg, err := Build(raw)
	require.NoError(t, err)
	return NewView(reg)
}

func TestViewInitialState(t *testing.T) {
	v := newTestView(t)

	assert.Equal(t, "5/5", v.Count())
	entries := v.Entries()
	require.Len(t, entries, 5)
	for i, e := range entries {
		assert.Equal(t, i < 3, e.Open, "entry %d", i)
		assert.False(t, e.Highlighted)
	}
}

func TestViewFilter(t *testing.T) {
	v := newTestView(t)

	v.SetFilter("soft")
	assert.Equal(t, "soft", v.Filter())
	assert.Equal(t, "1/5", v.Count())
	assert.True(t, v.Has("term-1"))
	assert.False(t, v.Has("term-0"))

	e, ok := v.Entry("term-1")
	require.True(t, ok)
	assert.False(t, e.Open, "filtered results start collapsed")
}

func TestViewFlags(t *testing.T) {
	v := newTestView(t)

	assert.True(t, v.SetHighlighted("term-4", true))
	assert.True(t, v.SetOpen("term-4", true))
	assert.Equal(t, []string{"term-4"}, v.Highlighted())

	v.SetFilter("soft")
	assert.False(t, v.SetHighlighted("term-4", true))
	assert.False(t, v.SetOpen("term-4", true))

	v.SetFilter("")
	assert.Empty(t, v.Highlighted(), "rebuild resets flags")
}

func TestViewExpandCollapse(t *testing.T) {
	v := newTestView(t)

	v.ExpandAll()
	for _, e := range v.Entries() {
		assert.True(t, e.Open)
	}
	v.CollapseAll()
	for _, e := range v.Entries() {
		assert.False(t, e.Open)
	}
}

func TestViewRender(t *testing.T) {
	v := newTestView(t)
	v.SetHighlighted("term-0", true)

	var sb strings.Builder
	require.NoError(t, v.Render(&sb))
	out := sb.String()

	assert.Equal(t, 5, strings.Count(out, `class="term-card`))
	assert.Contains(t, out, `<details class="term-card term-highlight" data-term-key="term-0" open>`)
	assert.Contains(t, out, `data-term-key="term-4">`)
	assert.Contains(t, out, "self-attention")

	v.SetFilter("nothing matches this")
	sb.Reset()
	require.NoError(t, v.Render(&sb))
	assert.Contains(t, sb.String(), EmptyMessage)
}
