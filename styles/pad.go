package styles

import (
	"image/color"
	"math"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Pad is a rectangular drawing region of a canvas, together with the
// margins framing its plot.
type Pad struct {
	Canvas  draw.Canvas
	Margins Margins

	// Ww and Wh are the size of the whole canvas in pixels, AbsW and AbsH
	// the size of the pad as a fraction of it.
	Ww, Wh     float64
	AbsW, AbsH float64
}

// NewPad returns a pad covering the whole of c, with the style's margins.
func NewPad(c draw.Canvas, st *Style) *Pad {
	return &Pad{
		Canvas:  c,
		Margins: st.Pad.Margins,
		Ww:      float64(st.Canvas.DefW),
		Wh:      float64(st.Canvas.DefH),
		AbsW:    1,
		AbsH:    1,
	}
}

// Sub returns a pad for the region c of p's canvas.
func (p *Pad) Sub(c draw.Canvas) *Pad {
	sub := *p
	sub.Canvas = c
	if w := p.width(); w > 0 {
		sub.AbsW = p.AbsW * float64((c.Max.X-c.Min.X)/w)
	}
	if h := p.height(); h > 0 {
		sub.AbsH = p.AbsH * float64((c.Max.Y-c.Min.Y)/h)
	}
	return &sub
}

// FitFrame sets the margins of p to the frame of plt drawn on c, a region
// of the pad.
func (p *Pad) FitFrame(plt *plot.Plot, c draw.Canvas) {
	w, h := p.width(), p.height()
	if w <= 0 || h <= 0 {
		return
	}
	da := plt.DataCanvas(c)
	p.Margins = Margins{
		Top:    float64((p.Canvas.Max.Y - da.Max.Y) / h),
		Bottom: float64((da.Min.Y - p.Canvas.Min.Y) / h),
		Left:   float64((da.Min.X - p.Canvas.Min.X) / w),
		Right:  float64((p.Canvas.Max.X - da.Max.X) / w),
	}
}

func (p *Pad) width() vg.Length  { return p.Canvas.Max.X - p.Canvas.Min.X }
func (p *Pad) height() vg.Length { return p.Canvas.Max.Y - p.Canvas.Min.Y }

// Ratio returns the height over width ratio of the pad in pixels, at
// least 1. Label sizes are scaled by it so that they keep their size on
// wide pads.
func (p *Pad) Ratio() float64 {
	den := p.Ww * p.AbsW
	if den <= 0 {
		return 1
	}
	r := (p.Wh * p.AbsH) / den
	if r < 1 {
		return 1
	}
	return r
}

// TextItem is a piece of text in pad coordinates: X and Y are fractions of
// the pad, Align is a ROOT alignment code (10*horizontal + vertical), Angle
// is in degrees, Font a ROOT font code and Size a fraction of the pad's
// shorter side.
type TextItem struct {
	X, Y  float64
	Align int
	Angle float64
	Font  int
	Size  float64
	Color color.Color
	Text  string
}

// Draw renders items on the pad.
func (p *Pad) Draw(items ...TextItem) {
	w, h := p.width(), p.height()
	side := math.Min(float64(w), float64(h))

	for _, it := range items {
		clr := it.Color
		if clr == nil {
			clr = color.Black
		}
		sty := text.Style{
			Color:    clr,
			Font:     Font(it.Font, vg.Length(it.Size*side)),
			Rotation: it.Angle * math.Pi / 180,
			XAlign:   xAlign(it.Align / 10),
			YAlign:   yAlign(it.Align % 10),
			Handler:  plot.DefaultTextHandler,
		}
		pt := vg.Point{
			X: p.Canvas.Min.X + vg.Length(it.X)*w,
			Y: p.Canvas.Min.Y + vg.Length(it.Y)*h,
		}
		p.Canvas.FillText(sty, pt, FromLatex(it.Text))
	}
}

func xAlign(h int) text.XAlignment {
	switch h {
	case 2:
		return text.XCenter
	case 3:
		return text.XRight
	default:
		return text.XLeft
	}
}

func yAlign(v int) text.YAlignment {
	switch v {
	case 2:
		return text.YCenter
	case 3:
		return text.YTop
	default:
		return text.YBottom
	}
}

var latex = strings.NewReplacer(
	"#rightarrow", "→",
	"#leftarrow", "←",
	"#tau", "τ",
	"#mu", "μ",
	"#nu", "ν",
	"#ell", "ℓ",
	"#gamma", "γ",
	"#phi", "φ",
	"#eta", "η",
	"#pm", "±",
	"#times", "×",
	"#geq", "≥",
	"#leq", "≤",
	"#Delta", "Δ",
	"#sigma", "σ",
	"#bar{t}", "t̄",
	"#it{", "",
	"#bf{", "",
	"{", "",
	"}", "",
	"#", "",
)

// FromLatex turns the ROOT TLatex markup commonly found in labels into
// plain unicode text.
func FromLatex(s string) string {
	if !strings.ContainsAny(s, "#{}") {
		return s
	}
	return latex.Replace(s)
}
