package diagram

import (
	"fmt"
	"math"
	"slices"

	"github.com/ziadkadry99/termlink/internal/hitzone"
)

// Bar is one outcome of a probability distribution.
type Bar struct {
	Label string  `json:"label"`
	P     float64 `json:"p"`
}

// Distribution is a bar chart of candidate probabilities. With no data, or
// data that cannot be drawn, it shows the placeholder and has no zones.
type Distribution struct {
	bars []Bar
	keys []string
}

// NewDistribution creates an empty chart tagged with the sampling group.
func NewDistribution(groups map[string][]string) *Distribution {
	return &Distribution{keys: groups[GroupSampling]}
}

// MaxBars is the most bars a distribution plots. SetBars keeps the first
// MaxBars entries.
const MaxBars = 64

// SetBars replaces the plotted data.
func (d *Distribution) SetBars(bars []Bar) {
	if len(bars) > MaxBars {
		bars = bars[:MaxBars]
	}
	d.bars = slices.Clone(bars)
}

// Bars returns the plotted data.
func (d *Distribution) Bars() []Bar { return slices.Clone(d.bars) }

func (d *Distribution) Name() string { return "distribution" }

func (d *Distribution) Size() (float64, float64) { return 520, 220 }

// Drawable reports whether the data is non-empty, finite, non-negative and
// has a positive total.
func (d *Distribution) Drawable() bool {
	if len(d.bars) == 0 {
		return false
	}
	var total float64
	for _, b := range d.bars {
		if math.IsNaN(b.P) || math.IsInf(b.P, 0) || b.P < 0 {
			return false
		}
		total += b.P
	}
	return total > 0 && !math.IsInf(total, 0)
}

func (d *Distribution) Draw(c *Canvas, w, h float64) []hitzone.Zone {
	const (
		marginL = 36.0
		marginR = 14.0
		marginT = 14.0
		marginB = 38.0
	)
	pw := w - marginL - marginR
	ph := h - marginT - marginB
	if !d.Drawable() || pw <= 0 || ph <= 0 {
		c.Empty(w, h, Placeholder)
		return nil
	}

	maxV := 1e-6
	for _, b := range d.bars {
		maxV = max(maxV, b.P)
	}

	c.Background(w, h, colorBackground)
	c.Grid(marginL, marginT, pw, ph, 4)

	n := float64(len(d.bars))
	gap := max(6, pw*0.025)
	bw := max(1, (pw-gap*(n-1))/n)
	zones := make([]hitzone.Zone, 0, len(d.bars))
	c.Mono(10)
	for i, b := range d.bars {
		x := marginL + float64(i)*(bw+gap)
		hh := b.P / maxV * ph
		y := marginT + ph - hh
		if i == 0 {
			c.SetHexColor("#d35f29")
		} else {
			c.SetHexColor("#2f8fbd")
		}
		c.DrawRectangle(x, y, bw, hh)
		c.Fill()

		c.SetHexColor("#334c63")
		c.DrawString(truncate(b.Label, 6), x, marginT+ph+12)
		c.DrawString(fmt.Sprintf("%.1f%%", b.P*100), x, y-4)
		zones = append(zones, hitzone.Zone{X: x, Y: y, W: bw, H: hh, TermKeys: d.keys})
	}
	c.SetHexColor("#bfc8cf")
	c.SetLineWidth(1)
	c.DrawRectangle(marginL, marginT, pw, ph)
	c.Stroke()
	return zones
}

// Softmax turns raw scores into probabilities. Non-finite scores get zero
// probability; all-non-finite input yields all zeros.
func Softmax(scores []float64) []float64 {
	out := make([]float64, len(scores))
	mx := math.Inf(-1)
	for _, s := range scores {
		if !math.IsNaN(s) && !math.IsInf(s, 0) {
			mx = max(mx, s)
		}
	}
	if math.IsInf(mx, -1) {
		return out
	}
	var denom float64
	for i, s := range scores {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			continue
		}
		out[i] = math.Exp(s - mx)
		denom += out[i]
	}
	for i := range out {
		out[i] /= denom
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
