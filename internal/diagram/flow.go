package diagram

import "github.com/ziadkadry99/termlink/internal/hitzone"

// Layout width shared by the box-and-arrow figures; they scale down to fit
// narrower canvases and stay centred on wider ones.
const flowDesignWidth = 734.0

type flowBox struct {
	x, y, w, h float64
	title, sub string
	keys       []string
}

type flowLayout struct {
	scale, offsetX, offsetY float64
}

func newFlowLayout(w float64) flowLayout {
	scale := min(1, (w-20)/flowDesignWidth)
	if scale <= 0 {
		scale = 1
	}
	return flowLayout{scale: scale, offsetX: (w - flowDesignWidth*scale) / 2, offsetY: 14}
}

func (l flowLayout) x(v float64) float64 { return l.offsetX + v*l.scale }
func (l flowLayout) y(v float64) float64 { return l.offsetY + v*l.scale }
func (l flowLayout) s(v float64) float64 { return v * l.scale }

// drawBoxes paints boxes in order and returns one zone per box.
func (l flowLayout) drawBoxes(c *Canvas, boxes []flowBox) []hitzone.Zone {
	zones := make([]hitzone.Zone, 0, len(boxes))
	for _, b := range boxes {
		x, y, w, h := l.x(b.x), l.y(b.y), l.s(b.w), l.s(b.h)
		c.Box(x, y, w, h, b.title, b.sub)
		zones = append(zones, hitzone.Zone{X: x, Y: y, W: w, H: h, TermKeys: b.keys})
	}
	return zones
}

// right connects the right edge of a to the left edge of b.
func (l flowLayout) right(c *Canvas, a, b flowBox, ay, by float64) {
	c.Arrow(l.x(a.x+a.w), l.y(a.y+a.h/2+ay), l.x(b.x), l.y(b.y+b.h/2+by), colorArrow)
}

// down connects the bottom edge of a to the top edge of b.
func (l flowLayout) down(c *Canvas, a, b flowBox) {
	c.Arrow(l.x(a.x+a.w/2), l.y(a.y+a.h), l.x(b.x+b.w/2), l.y(b.y), colorArrow)
}

// Architecture is the model overview: data flows through embeddings and the
// transformer blocks into the output head and the loss.
type Architecture struct {
	boxes []flowBox
}

// NewArchitecture builds the overview tagged with groups.
func NewArchitecture(groups map[string][]string) *Architecture {
	return &Architecture{boxes: []flowBox{
		{x: 14, y: 40, w: 120, h: 56, title: "dataset", sub: "train/val.bin", keys: groups[GroupArchData]},
		{x: 160, y: 40, w: 120, h: 56, title: "get_batch", sub: "x, y", keys: groups[GroupArchData]},
		{x: 306, y: 40, w: 130, h: 56, title: "embeddings", sub: "wte + wpe", keys: groups[GroupArchModel]},
		{x: 462, y: 40, w: 120, h: 56, title: "Blocks x N", sub: "ln/attn/mlp",
			keys: concat(groups[GroupBlockNorm], groups[GroupBlockAttn], groups[GroupBlockMLP])},
		{x: 608, y: 40, w: 112, h: 56, title: "lm_head", sub: "logits", keys: groups[GroupArchTensor]},
		{x: 608, y: 150, w: 112, h: 56, title: "loss", sub: "cross entropy", keys: groups[GroupLossCurve]},
		{x: 306, y: 150, w: 84, h: 44, title: "LayerNorm", keys: groups[GroupBlockNorm]},
		{x: 400, y: 150, w: 96, h: 44, title: "attention", keys: groups[GroupBlockAttn]},
		{x: 506, y: 150, w: 76, h: 44, title: "MLP", keys: groups[GroupBlockMLP]},
	}}
}

func (a *Architecture) Name() string { return "architecture" }

func (a *Architecture) Size() (float64, float64) { return 760, 260 }

func (a *Architecture) Draw(c *Canvas, w, h float64) []hitzone.Zone {
	c.Background(w, h, colorBackground)
	l := newFlowLayout(w)
	zones := l.drawBoxes(c, a.boxes)

	b := a.boxes
	for i := 0; i < 4; i++ {
		l.right(c, b[i], b[i+1], 0, 0)
	}
	l.down(c, b[4], b[5])
	l.down(c, b[3], b[8])
	l.right(c, b[6], b[7], 0, 0)
	l.right(c, b[7], b[8], 0, 0)

	c.SetHexColor(colorCaption)
	c.Text(12)
	c.DrawString("dataset -> get_batch -> embeddings -> blocks -> lm_head -> loss", 14, h-12)
	return zones
}

// Pipeline is the training loop: batches feed the forward pass, gradients
// feed the optimizer and checkpoints are saved.
type Pipeline struct {
	boxes []flowBox
}

// NewPipeline builds the training loop figure tagged with groups.
func NewPipeline(groups map[string][]string) *Pipeline {
	return &Pipeline{boxes: []flowBox{
		{x: 14, y: 20, w: 120, h: 46, title: "train.bin", sub: "dataset", keys: groups[GroupArchData]},
		{x: 14, y: 86, w: 120, h: 46, title: "val.bin", sub: "dataset", keys: groups[GroupArchData]},
		{x: 160, y: 52, w: 128, h: 56, title: "get_batch", sub: "x,y", keys: groups[GroupArchData]},
		{x: 314, y: 52, w: 122, h: 56, title: "forward", sub: "logits, loss", keys: groups[GroupArchTensor]},
		{x: 454, y: 18, w: 122, h: 44, title: "backward", sub: "grad", keys: groups[GroupArchTrainLoop]},
		{x: 454, y: 88, w: 122, h: 44, title: "optimizer", sub: "step", keys: groups[GroupArchTrainLoop]},
		{x: 594, y: 52, w: 124, h: 56, title: "checkpoint", sub: "ckpt.pt", keys: groups[GroupArchTrainLoop]},
	}}
}

func (p *Pipeline) Name() string { return "pipeline" }

func (p *Pipeline) Size() (float64, float64) { return 760, 200 }

func (p *Pipeline) Draw(c *Canvas, w, h float64) []hitzone.Zone {
	c.Background(w, h, colorBackground)
	l := newFlowLayout(w)
	zones := l.drawBoxes(c, p.boxes)

	b := p.boxes
	l.right(c, b[0], b[2], -8, -8)
	l.right(c, b[1], b[2], 8, 8)
	l.right(c, b[2], b[3], 0, 0)
	c.Arrow(l.x(b[3].x+b[3].w), l.y(b[3].y+16), l.x(b[4].x), l.y(b[4].y+b[4].h/2), colorArrow)
	l.right(c, b[4], b[5], 0, 0)
	l.right(c, b[5], b[6], 0, 0)

	c.SetHexColor(colorCaption)
	c.Text(12)
	c.DrawString("train.py: get_batch -> model(X,Y) -> backward -> optimizer.step -> save ckpt", 14, h-12)
	return zones
}
