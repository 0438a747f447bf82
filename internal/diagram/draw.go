package diagram

import (
	"fmt"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Placeholder is drawn on surfaces that have nothing valid to show.
const Placeholder = "暂无数据"

const (
	colorBackground  = "#fffdf6"
	colorFrame       = "#d9d7cf"
	colorMuted       = "#6f7e90"
	colorGrid        = "#d9dde1"
	colorBoxFill     = "#fff9ef"
	colorBoxStroke   = "#c7d3dc"
	colorBoxTitle    = "#2b4761"
	colorBoxSubtitle = "#5a7087"
	colorArrow       = "#54708b"
	colorCaption     = "#4e6479"
)

type fontSet struct {
	regular *truetype.Font
	mono    *truetype.Font
}

var (
	fontsOnce sync.Once
	fonts     fontSet
	fontsErr  error
)

func loadFonts() (fontSet, error) {
	fontsOnce.Do(func() {
		reg, err := truetype.Parse(goregular.TTF)
		if err != nil {
			fontsErr = fmt.Errorf("failed to parse font: %w", err)
			return
		}
		mono, err := truetype.Parse(gomono.TTF)
		if err != nil {
			fontsErr = fmt.Errorf("failed to parse font: %w", err)
			return
		}
		fonts = fontSet{regular: reg, mono: mono}
	})
	return fonts, fontsErr
}

// Canvas is the drawing context handed to surfaces. Coordinates are logical
// pixels; the device pixel ratio is applied by the underlying transform.
type Canvas struct {
	*gg.Context
	fonts fontSet
}

func (c *Canvas) setFont(f *truetype.Font, size float64) {
	c.SetFontFace(truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}))
}

// Text sets a proportional face of the given size.
func (c *Canvas) Text(size float64) { c.setFont(c.fonts.regular, size) }

// Mono sets a monospaced face of the given size.
func (c *Canvas) Mono(size float64) { c.setFont(c.fonts.mono, size) }

// Background paints the whole logical area.
func (c *Canvas) Background(w, h float64, hex string) {
	c.SetHexColor(hex)
	c.DrawRectangle(0, 0, w, h)
	c.Fill()
}

// Empty paints the placeholder frame with text.
func (c *Canvas) Empty(w, h float64, text string) {
	c.Background(w, h, colorBackground)
	c.SetHexColor(colorFrame)
	c.SetLineWidth(1)
	c.DrawRectangle(0.5, 0.5, w-1, h-1)
	c.Stroke()
	c.SetHexColor(colorMuted)
	c.Text(14)
	c.DrawString(text, math.Max(14, w/2-36), h/2)
}

// Box draws a rounded box with a title and an optional subtitle.
func (c *Canvas) Box(x, y, w, h float64, title, subtitle string) {
	c.SetLineWidth(1.2)
	c.DrawRoundedRectangle(x, y, w, h, math.Min(8, math.Min(w, h)/2))
	c.SetHexColor(colorBoxFill)
	c.FillPreserve()
	c.SetHexColor(colorBoxStroke)
	c.Stroke()

	c.SetHexColor(colorBoxTitle)
	c.Text(12)
	c.DrawString(title, x+8, y+18)
	if subtitle != "" {
		c.SetHexColor(colorBoxSubtitle)
		c.Mono(11)
		c.DrawString(subtitle, x+8, y+35)
	}
}

// Arrow draws a line from (x1, y1) to (x2, y2) with a filled head.
func (c *Canvas) Arrow(x1, y1, x2, y2 float64, hex string) {
	const headLen = 7.0
	angle := math.Atan2(y2-y1, x2-x1)

	c.SetHexColor(hex)
	c.SetLineWidth(1.4)
	c.DrawLine(x1, y1, x2, y2)
	c.Stroke()

	c.MoveTo(x2, y2)
	c.LineTo(x2-headLen*math.Cos(angle-math.Pi/6), y2-headLen*math.Sin(angle-math.Pi/6))
	c.LineTo(x2-headLen*math.Cos(angle+math.Pi/6), y2-headLen*math.Sin(angle+math.Pi/6))
	c.ClosePath()
	c.Fill()
}

// Grid draws evenly spaced horizontal lines across a plot area.
func (c *Canvas) Grid(x, y, w, h float64, lines int) {
	c.SetHexColor(colorGrid)
	c.SetLineWidth(1)
	for i := 0; i <= lines; i++ {
		yy := y + h*float64(i)/float64(lines)
		c.DrawLine(x, yy, x+w, yy)
		c.Stroke()
	}
}
