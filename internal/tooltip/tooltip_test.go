package tooltip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/termlink/internal/glossary"
)

func testRegistry(t *testing.T) *glossary.Registry {
	t.Helper()
	reg, err := glossary.Build([]glossary.RawTerm{
		{Name: "注意力", Alias: "self-attention", Plain: "让 token 看上下文。"},
		{Name: "<b>loss</b>", Alias: "a & b", Plain: "x < y"},
	})
	require.NoError(t, err)
	return reg
}

func newController(t *testing.T) *Controller {
	t.Helper()
	return New(testRegistry(t), Config{Gap: 14, Inset: 8, Size: Size{W: 280, H: 120}}, Size{W: 1024, H: 768})
}

func TestPlaceDefaultBelowRight(t *testing.T) {
	r := Place(100, 100, Size{W: 280, H: 120}, Size{W: 1024, H: 768}, 14, 8)
	assert.Equal(t, Rect{X: 114, Y: 114, W: 280, H: 120}, r)
}

func TestPlaceFlipsNearBottomRight(t *testing.T) {
	r := Place(1020, 760, Size{W: 280, H: 120}, Size{W: 1024, H: 768}, 14, 8)
	assert.Equal(t, 726.0, r.X)
	assert.Equal(t, 626.0, r.Y)
}

func TestPlaceFlipsAxesIndependently(t *testing.T) {
	r := Place(1000, 100, Size{W: 280, H: 120}, Size{W: 1024, H: 768}, 14, 8)
	assert.Equal(t, 1000.0-280-14, r.X)
	assert.Equal(t, 114.0, r.Y)
}

func TestPlaceStaysInsideViewport(t *testing.T) {
	vp := Size{W: 300, H: 200}
	size := Size{W: 280, H: 120}
	for _, anchor := range [][2]float64{{0, 0}, {100, 50}, {299, 199}, {150, 100}, {-50, 400}} {
		r := Place(anchor[0], anchor[1], size, vp, 14, 8)
		assert.GreaterOrEqual(t, r.X, 8.0, "anchor %v", anchor)
		assert.GreaterOrEqual(t, r.Y, 8.0, "anchor %v", anchor)
		assert.LessOrEqual(t, r.X+r.W, vp.W-8, "anchor %v", anchor)
		assert.LessOrEqual(t, r.Y+r.H, vp.H-8, "anchor %v", anchor)
	}
}

func TestPlaceOversizedTooltipPinsToInset(t *testing.T) {
	r := Place(50, 50, Size{W: 500, H: 500}, Size{W: 300, H: 200}, 14, 8)
	assert.Equal(t, 8.0, r.X)
	assert.Equal(t, 8.0, r.Y)
}

func TestShowRendersEscapedContent(t *testing.T) {
	c := newController(t)
	term, ok := c.reg.Lookup("term-1")
	require.True(t, ok)

	st := c.Show(term, 10, 10)
	require.True(t, st.Visible)
	assert.Equal(t, "term-1", st.TermKey)
	assert.Contains(t, string(st.Content), "&lt;b&gt;loss&lt;/b&gt;")
	assert.Contains(t, string(st.Content), "a &amp; b")
	assert.Contains(t, string(st.Content), "x &lt; y")
}

func TestRepositionWhileHiddenIsNoop(t *testing.T) {
	c := newController(t)
	st, ok := c.Reposition(500, 500)
	assert.False(t, ok)
	assert.False(t, st.Visible)
	assert.Zero(t, st.Left)
}

func TestHideIsIdempotent(t *testing.T) {
	c := newController(t)
	c.Hide()
	c.Enter("m1", "term-0", 10, 10)
	c.Hide()
	st := c.Hide()
	assert.False(t, st.Visible)
	assert.Empty(t, st.MarkerID)
}

func TestEnterMoveLeave(t *testing.T) {
	c := newController(t)

	st := c.Enter("m1", "term-0", 100, 100)
	require.True(t, st.Visible)
	assert.Equal(t, "m1", st.MarkerID)
	assert.Contains(t, string(st.Content), "self-attention")

	st, ok := c.Move(200, 150)
	require.True(t, ok)
	assert.Equal(t, 214.0, st.Left)
	assert.Equal(t, 164.0, st.Top)

	st = c.Leave("m2")
	assert.True(t, st.Visible, "moving onto another marker keeps the tooltip")

	st = c.Leave("")
	assert.False(t, st.Visible)

	_, ok = c.Move(10, 10)
	assert.False(t, ok)
}

func TestEnterUnknownKeyIgnored(t *testing.T) {
	c := newController(t)
	st := c.Enter("m1", "missing", 10, 10)
	assert.False(t, st.Visible)
}

func TestFocusAnchorsBelowCentre(t *testing.T) {
	c := newController(t)
	st := c.FocusIn("m1", "term-0", Rect{X: 100, Y: 40, W: 60, H: 20})
	require.True(t, st.Visible)
	// anchor (130, 66)
	assert.Equal(t, 144.0, st.Left)
	assert.Equal(t, 80.0, st.Top)

	st = c.FocusOut("other")
	assert.True(t, st.Visible)
	st = c.FocusOut("m1")
	assert.False(t, st.Visible)
}

func TestSetSizeUsesMeasuredSize(t *testing.T) {
	c := newController(t)
	c.SetSize(Size{W: 0, H: 10})
	c.SetSize(Size{W: 400, H: 300})
	st := c.Enter("m1", "term-0", 700, 100)
	assert.Equal(t, 700.0-400-14, st.Left)
}
