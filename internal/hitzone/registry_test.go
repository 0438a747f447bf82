package hitzone

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHitTestBeforeAnyZones(t *testing.T) {
	r := NewRegistry()

	_, ok := r.HitTest("architecture", 10, 10)
	assert.False(t, ok)
	assert.Empty(t, r.Zones("architecture"))
}

func TestHitTestFirstRegisteredWins(t *testing.T) {
	r := NewRegistry()
	r.SetZones("s", []Zone{
		{X: 0, Y: 0, W: 100, H: 100, TermKeys: []string{"outer"}},
		{X: 10, Y: 10, W: 20, H: 20, TermKeys: []string{"inner"}},
	})

	z, ok := r.HitTest("s", 15, 15)
	require.True(t, ok)
	assert.Equal(t, []string{"outer"}, z.TermKeys)
}

func TestHitTestEdgesInclusive(t *testing.T) {
	r := NewRegistry()
	r.SetZones("s", []Zone{{X: 10, Y: 20, W: 30, H: 40}})

	for _, p := range [][2]float64{{10, 20}, {40, 60}, {25, 40}} {
		_, ok := r.HitTest("s", p[0], p[1])
		assert.True(t, ok, "point %v", p)
	}
	for _, p := range [][2]float64{{9.9, 20}, {40.1, 60}, {25, 60.5}} {
		_, ok := r.HitTest("s", p[0], p[1])
		assert.False(t, ok, "point %v", p)
	}
}

func TestSetZonesReplacesAtomically(t *testing.T) {
	r := NewRegistry()
	r.SetZones("s", []Zone{{X: 0, Y: 0, W: 50, H: 50, TermKeys: []string{"v1"}}})
	r.SetZones("s", []Zone{{X: 100, Y: 100, W: 50, H: 50, TermKeys: []string{"v2"}}})

	_, ok := r.HitTest("s", 25, 25)
	assert.False(t, ok, "v1-only point must not hit after redraw")

	z, ok := r.HitTest("s", 120, 120)
	require.True(t, ok)
	assert.Equal(t, []string{"v2"}, z.TermKeys)
}

func TestSurfacesAreIndependent(t *testing.T) {
	r := NewRegistry()
	r.SetZones("a", []Zone{{X: 0, Y: 0, W: 10, H: 10, TermKeys: []string{"a"}}})
	r.SetZones("b", nil)

	_, ok := r.HitTest("b", 5, 5)
	assert.False(t, ok)
	_, ok = r.HitTest("a", 5, 5)
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, r.Surfaces())
}

func TestSetZonesCopiesInput(t *testing.T) {
	r := NewRegistry()
	zones := []Zone{{X: 0, Y: 0, W: 10, H: 10, TermKeys: []string{"k"}}}
	r.SetZones("s", zones)

	zones[0].X = 500
	zones[0].TermKeys[0] = "mutated"

	z, ok := r.HitTest("s", 5, 5)
	require.True(t, ok)
	assert.Equal(t, []string{"k"}, z.TermKeys)
}

func TestReturnedZonesDoNotAliasRegistry(t *testing.T) {
	r := NewRegistry()
	r.SetZones("s", []Zone{{X: 0, Y: 0, W: 10, H: 10, TermKeys: []string{"token"}}})

	z, ok := r.HitTest("s", 5, 5)
	require.True(t, ok)
	z.TermKeys[0] = "changed"

	zs := r.Zones("s")
	require.Len(t, zs, 1)
	assert.Equal(t, []string{"token"}, zs[0].TermKeys)
	zs[0].TermKeys[0] = "changed"

	z, ok = r.HitTest("s", 5, 5)
	require.True(t, ok)
	assert.Equal(t, []string{"token"}, z.TermKeys)
}

func TestHitTestNonFinite(t *testing.T) {
	r := NewRegistry()
	r.SetZones("s", []Zone{{X: 0, Y: 0, W: 10, H: 10}})

	_, ok := r.HitTest("s", math.NaN(), 5)
	assert.False(t, ok)
	_, ok = r.HitTest("s", 5, math.Inf(1))
	assert.False(t, ok)
}

func TestZoneWithoutKeysStillHits(t *testing.T) {
	r := NewRegistry()
	r.SetZones("s", []Zone{{X: 0, Y: 0, W: 10, H: 10}})

	z, ok := r.HitTest("s", 1, 1)
	require.True(t, ok)
	assert.Empty(t, z.TermKeys)
}
