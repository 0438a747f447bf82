package diagram

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/termlink/internal/glossary"
	"github.com/ziadkadry99/termlink/internal/hitzone"
)

func defaultRegistry(t *testing.T) *glossary.Registry {
	t.Helper()
	reg, err := glossary.Build(glossary.Default())
	require.NoError(t, err)
	return reg
}

func TestGroupsResolveAgainstDefaultGlossary(t *testing.T) {
	groups := Groups(defaultRegistry(t))
	assert.NotEmpty(t, groups[GroupBlockNorm])
	assert.NotEmpty(t, groups[GroupBlockAttn])
	assert.NotEmpty(t, groups[GroupSampling])

	empty := Groups(nil)
	assert.Len(t, empty, len(groupKeywords))
	assert.Nil(t, empty[GroupBlockNorm])
}

func TestRenderPublishesZones(t *testing.T) {
	zones := hitzone.NewRegistry()
	r := NewDefaultRenderer(zones, defaultRegistry(t), WithDPR(2))

	frame, err := r.Render("architecture", 760, 260)
	require.NoError(t, err)
	assert.Equal(t, 2.0, frame.DPR)

	img, err := png.Decode(bytes.NewReader(frame.PNG))
	require.NoError(t, err)
	assert.Equal(t, 1520, img.Bounds().Dx())
	assert.Equal(t, 520, img.Bounds().Dy())

	published := zones.Zones("architecture")
	require.Len(t, published, 9)
	assert.Equal(t, frame.Zones, published)

	// Zones are in logical pixels, not device pixels.
	for _, z := range published {
		assert.LessOrEqual(t, z.X+z.W, 760.0)
		assert.LessOrEqual(t, z.Y+z.H, 260.0)
	}

	z, ok := zones.HitTest("architecture", published[3].X+1, published[3].Y+1)
	require.True(t, ok)
	assert.NotEmpty(t, z.TermKeys)
}

func TestRenderFallsBackToPreferredSize(t *testing.T) {
	r := NewDefaultRenderer(hitzone.NewRegistry(), nil)
	for _, size := range [][2]float64{{0, 0}, {-5, 10}, {math.NaN(), math.Inf(1)}} {
		frame, err := r.Render("pipeline", size[0], size[1])
		require.NoError(t, err)
		w, h := (&Pipeline{}).Size()
		if size[0] == -5 {
			assert.Equal(t, w, frame.Width)
			assert.Equal(t, 10.0, frame.Height)
			continue
		}
		assert.Equal(t, w, frame.Width)
		assert.Equal(t, h, frame.Height)
	}
}

type sizeless struct{}

func (sizeless) Name() string                                { return "sizeless" }
func (sizeless) Size() (float64, float64)                    { return 0, 0 }
func (sizeless) Draw(c *Canvas, w, h float64) []hitzone.Zone { return nil }

func TestRenderSizelessSurfaceUsesFallback(t *testing.T) {
	r := NewRenderer(nil)
	r.Register(sizeless{})
	frame, err := r.Render("sizeless", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultWidth, frame.Width)
	assert.Equal(t, DefaultHeight, frame.Height)

	r = NewRenderer(nil, WithFallbackSize(300, 150))
	r.Register(sizeless{})
	frame, err = r.Render("sizeless", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 300.0, frame.Width)
	assert.Equal(t, 150.0, frame.Height)
}

func TestRenderCapsPhysicalSize(t *testing.T) {
	r := NewDefaultRenderer(hitzone.NewRegistry(), nil, WithDPR(4))
	frame, err := r.Render("pipeline", 4096, 40)
	require.NoError(t, err)
	assert.Equal(t, 4096.0, frame.Width)
	assert.Equal(t, 1.0, frame.DPR)

	img, err := png.Decode(bytes.NewReader(frame.PNG))
	require.NoError(t, err)
	assert.Equal(t, 4096, img.Bounds().Dx())
	assert.Equal(t, 40, img.Bounds().Dy())

	frame, err = r.Render("pipeline", 1500, 100)
	require.NoError(t, err)
	img, err = png.Decode(bytes.NewReader(frame.PNG))
	require.NoError(t, err)
	assert.LessOrEqual(t, img.Bounds().Dx(), int(maxSide))
	assert.InDelta(t, maxSide/1500, frame.DPR, 1e-9)
}

func TestDistributionKeepsAtMostMaxBars(t *testing.T) {
	d := &Distribution{}
	bars := make([]Bar, MaxBars+10)
	for i := range bars {
		bars[i] = Bar{Label: "x", P: 1}
	}
	d.SetBars(bars)
	assert.Len(t, d.Bars(), MaxBars)
}

func TestRenderUnknownSurface(t *testing.T) {
	zones := hitzone.NewRegistry()
	r := NewDefaultRenderer(zones, nil)
	_, err := r.Render("nope", 100, 100)
	require.ErrorIs(t, err, ErrUnknownSurface)
	assert.Empty(t, zones.Surfaces())
}

func TestRedrawReplacesZones(t *testing.T) {
	zones := hitzone.NewRegistry()
	r := NewDefaultRenderer(zones, defaultRegistry(t))

	_, err := r.Render("pipeline", 760, 200)
	require.NoError(t, err)
	wide := zones.Zones("pipeline")

	_, err = r.Render("pipeline", 380, 200)
	require.NoError(t, err)
	narrow := zones.Zones("pipeline")

	require.Len(t, narrow, len(wide))
	assert.Less(t, narrow[6].W, wide[6].W)
	_, ok := zones.HitTest("pipeline", wide[6].X+wide[6].W-1, wide[6].Y+1)
	assert.False(t, ok, "old geometry must not survive a redraw")
}

func TestDistributionPlaceholder(t *testing.T) {
	zones := hitzone.NewRegistry()
	r := NewDefaultRenderer(zones, defaultRegistry(t))
	s, ok := r.Surface("distribution")
	require.True(t, ok)
	dist := s.(*Distribution)

	cases := map[string][]Bar{
		"empty":    nil,
		"nan":      {{Label: "a", P: math.NaN()}},
		"inf":      {{Label: "a", P: math.Inf(1)}},
		"negative": {{Label: "a", P: -0.5}, {Label: "b", P: 1.5}},
		"zero":     {{Label: "a", P: 0}, {Label: "b", P: 0}},
	}
	for name, bars := range cases {
		t.Run(name, func(t *testing.T) {
			zones.SetZones("distribution", []hitzone.Zone{{W: 1000, H: 1000}})
			dist.SetBars(bars)
			assert.False(t, dist.Drawable())
			frame, err := r.Render("distribution", 0, 0)
			require.NoError(t, err)
			assert.Empty(t, frame.Zones)
			assert.Empty(t, zones.Zones("distribution"))
		})
	}
}

func TestDistributionBars(t *testing.T) {
	zones := hitzone.NewRegistry()
	r := NewDefaultRenderer(zones, defaultRegistry(t))
	s, _ := r.Surface("distribution")
	dist := s.(*Distribution)
	dist.SetBars([]Bar{{Label: "the", P: 0.6}, {Label: "a", P: 0.3}, {Label: "an", P: 0.1}})

	frame, err := r.Render("distribution", 520, 220)
	require.NoError(t, err)
	require.Len(t, frame.Zones, 3)
	assert.Greater(t, frame.Zones[0].H, frame.Zones[1].H)
	assert.InDelta(t, 220.0-38-14, frame.Zones[0].H, 1e-9, "tallest bar fills the plot")
	assert.NotEmpty(t, frame.Zones[0].TermKeys)
}

func TestSoftmax(t *testing.T) {
	p := Softmax([]float64{1, 1, math.Inf(-1), math.NaN()})
	assert.InDelta(t, 0.5, p[0], 1e-12)
	assert.InDelta(t, 0.5, p[1], 1e-12)
	assert.Zero(t, p[2])
	assert.Zero(t, p[3])

	assert.Equal(t, []float64{0, 0}, Softmax([]float64{math.NaN(), math.Inf(1)}))
	assert.Empty(t, Softmax(nil))
}

func TestNamesInRegistrationOrder(t *testing.T) {
	r := NewDefaultRenderer(hitzone.NewRegistry(), nil)
	assert.Equal(t, []string{"architecture", "pipeline", "distribution"}, r.Names())
}
