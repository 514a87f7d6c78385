package styles

import (
	"image/color"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/dumbledraw"
)

// CanvasSize returns the default canvas size, one pixel per point.
func (s *Style) CanvasSize() (w, h vg.Length) {
	return vg.Points(float64(s.Canvas.DefW)), vg.Points(float64(s.Canvas.DefH))
}

// PadMargins returns the default pad margins.
func (s *Style) PadMargins() Margins { return s.Pad.Margins }

func (s *Style) shortSide() float64 {
	if s.Canvas.DefW < s.Canvas.DefH {
		return float64(s.Canvas.DefW)
	}
	return float64(s.Canvas.DefH)
}

// Apply projects the style onto p: fonts, text sizes, tick marks and
// lengths, log scales and the legend.
func (s *Style) Apply(p *plot.Plot) {
	px := s.shortSide()

	p.BackgroundColor = s.Canvas.Color
	p.Title.TextStyle.Font = Font(s.Title.Font, vg.Points(s.Title.FontSize*px))
	p.Title.TextStyle.Color = s.Title.TextColor

	applyAxis(&p.X, &s.X, s.OptLogX, px, s.Frame.LineWidth)
	applyAxis(&p.Y, &s.Y, s.OptLogY, px, s.Frame.LineWidth)

	p.Legend.TextStyle.Font = Font(s.Legend.Font, vg.Points(s.Y.LabelSize*px))
	p.Legend.TextStyle.Color = RootColor(1)
	p.Legend.Top = true
	p.Legend.Padding = vg.Points(s.Y.LabelSize * px / 4)
}

func applyAxis(a *plot.Axis, st *AxisStyle, logScale bool, px float64, lineWidth int) {
	titleSize := vg.Points(st.TitleSize * px)

	a.Label.TextStyle.Font = Font(st.TitleFont, titleSize)
	a.Label.TextStyle.Color = st.TitleColor
	a.Label.Position = 1 // ROOT puts axis titles at the far end
	if off := st.TitleOffset - 1; off > 0 {
		a.Label.Padding = vg.Length(off) * titleSize
	} else {
		a.Label.Padding = 0
	}

	a.Tick.Label.Font = Font(st.LabelFont, vg.Points(st.LabelSize*px))
	a.Tick.Label.Color = st.LabelColor
	a.Tick.Length = vg.Points(st.TickLength * px)
	a.Tick.Color = st.AxisColor
	a.LineStyle.Color = st.AxisColor
	a.LineStyle.Width = vg.Points(float64(lineWidth))

	if logScale {
		a.Scale = plot.LogScale{}
		a.Tick.Marker = plot.LogTicks{Prec: -1}
		return
	}
	a.Scale = plot.LinearScale{}
	a.Tick.Marker = dumbledraw.DivisionTicks{N: st.Ndivisions}
}

// Font returns the font of a ROOT font code (10*family + precision) at the
// given size. Helvetica families map to Liberation Sans, Times to
// Liberation Serif and Courier to Liberation Mono.
//
// Bold and italic shapes are selected through the variant, with a normal
// weight and style, so that they resolve to the faces registered by
// registerShapes.
func Font(code int, size vg.Length) font.Font {
	variant := "Serif"
	if n := code / 10; n >= 1 && n < len(rootFonts) {
		variant = rootFonts[n]
	}
	return font.Font{
		Typeface: "Liberation",
		Variant:  font.Variant(variant),
		Size:     size,
	}
}

var rootFonts = []string{
	1:  "SerifItalic",
	2:  "SerifBold",
	3:  "SerifBoldItalic",
	4:  "Sans",
	5:  "SansItalic",
	6:  "SansBold",
	7:  "SansBoldItalic",
	8:  "Mono",
	9:  "MonoItalic",
	10: "MonoBold",
	11: "MonoBoldItalic",
}

func init() { registerShapes() }

// registerShapes adds every bold or italic Liberation face to the default
// font cache a second time, under a variant naming its shape, and the
// regular serif face under "Serif". The PDF backend embeds faces without a
// style and then asks for them by style, which only works for regular faces.
func registerShapes() {
	var coll font.Collection
	for _, face := range liberation.Collection() {
		shape := ""
		if face.Font.Weight == xfont.WeightBold {
			shape += "Bold"
		}
		if face.Font.Style == xfont.StyleItalic {
			shape += "Italic"
		}
		variant := face.Font.Variant
		if variant == "" {
			variant = "Serif"
		} else if shape == "" {
			continue
		}
		face.Font.Variant = variant + font.Variant(shape)
		face.Font.Weight = xfont.WeightNormal
		face.Font.Style = xfont.StyleNormal
		coll = append(coll, face)
	}
	font.DefaultCache.Add(coll)
}

// RootColor returns the color of one of ROOT's predefined color indices,
// black for indices it does not know.
func RootColor(index int) color.Color {
	switch {
	case index >= 0 && index < len(rootColors):
		return rootColors[index]
	default:
		return color.NRGBA{A: 255}
	}
}

var rootColors = []color.Color{
	0:  color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	1:  color.NRGBA{A: 255},
	2:  color.NRGBA{R: 255, A: 255},
	3:  color.NRGBA{G: 255, A: 255},
	4:  color.NRGBA{B: 255, A: 255},
	5:  color.NRGBA{R: 255, G: 255, A: 255},
	6:  color.NRGBA{R: 255, B: 255, A: 255},
	7:  color.NRGBA{G: 255, B: 255, A: 255},
	8:  color.NRGBA{R: 89, G: 211, B: 84, A: 255},
	9:  color.NRGBA{R: 89, G: 84, B: 216, A: 255},
	10: color.NRGBA{R: 254, G: 254, B: 254, A: 255},
	11: color.NRGBA{R: 192, G: 182, B: 172, A: 255},
	12: color.NRGBA{R: 76, G: 76, B: 76, A: 255},
	13: color.NRGBA{R: 102, G: 102, B: 102, A: 255},
	14: color.NRGBA{R: 127, G: 127, B: 127, A: 255},
	15: color.NRGBA{R: 153, G: 153, B: 153, A: 255},
	16: color.NRGBA{R: 178, G: 178, B: 178, A: 255},
	17: color.NRGBA{R: 204, G: 204, B: 204, A: 255},
	18: color.NRGBA{R: 229, G: 229, B: 229, A: 255},
	19: color.NRGBA{R: 242, G: 242, B: 242, A: 255},
}
