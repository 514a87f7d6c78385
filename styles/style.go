// Package styles holds the plotting style of the analysis plots: the CMS
// "TDR" style presets, process colors and labels, and helpers placing text
// and the CMS logo on a pad.
//
// Sizes and positions follow the ROOT conventions the presets were written
// for: margins and coordinates are fractions of the pad, text sizes are
// fractions of the pad's shorter side and fonts are ROOT font codes.
package styles

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"os"
)

var (
	ErrUnknownStyle = errors.New("styles: unknown style")
	ErrStyleOptions = errors.New("styles: invalid style options")
)

// Logger receives style messages; fatal conditions are logged with a
// "fatal:" prefix before the error is returned.
var Logger = log.New(os.Stderr, "styles: ", 0)

// Margins of a pad, as fractions of its height (Top, Bottom) and width
// (Left, Right).
type Margins struct {
	Top, Bottom, Left, Right float64
}

// AxisStyle is the per-axis part of a Style.
type AxisStyle struct {
	TitleColor  color.Color
	TitleFont   int
	TitleSize   float64
	TitleOffset float64

	LabelColor  color.Color
	LabelFont   int
	LabelOffset float64
	LabelSize   float64

	AxisColor  color.Color
	TickLength float64
	Ndivisions int
}

// Style is the complete set of drawing parameters shared by the plots of a
// job. It is built once at startup and handed to the drawing code.
type Style struct {
	Canvas struct {
		BorderMode int
		Color      color.Color
		DefW, DefH int
		DefX, DefY int
	}

	Pad struct {
		BorderMode   int
		Color        color.Color
		GridX, GridY bool
		TickX, TickY int
		Margins      Margins
	}

	Grid struct {
		Color color.Color
		Style int
		Width int
	}

	Frame struct {
		BorderMode int
		BorderSize int
		FillColor  color.Color
		FillStyle  int
		LineColor  color.Color
		LineStyle  int
		LineWidth  int
	}

	Hist struct {
		LineColor color.Color
		LineStyle int
		LineWidth int
	}

	EndErrorSize float64

	Marker struct {
		Style int
		Size  float64
	}

	Fit struct {
		Opt       int
		Format    string
		FuncColor color.Color
		FuncStyle int
		FuncWidth int
	}

	OptDate int
	OptFile int
	OptStat int

	Stat struct {
		Color      color.Color
		Font       int
		FontSize   float64
		TextColor  color.Color
		Format     string
		BorderSize int
		H, W       float64
	}

	Title struct {
		Opt       int
		Font      int
		Color     color.Color
		TextColor color.Color
		FillColor color.Color
		FontSize  float64
	}

	X, Y, Z AxisStyle

	StripDecimals bool

	OptLogX, OptLogY, OptLogZ bool

	PaperSize [2]float64

	Hatches struct {
		LineWidth int
		Spacing   float64
	}

	Legend struct {
		BorderSize int
		Font       int
		FillColor  color.Color
	}

	// ExponentOffset moves the "×10^n" label of the Y axis, in NDC.
	ExponentOffset struct {
		X, Y float64
	}
}

// Default returns the style in effect before any preset is applied.
func Default() *Style {
	s := &Style{}

	s.Canvas.Color = RootColor(0)
	s.Canvas.DefW = 700
	s.Canvas.DefH = 500
	s.Canvas.DefX = 10
	s.Canvas.DefY = 10

	s.Pad.Color = RootColor(0)
	s.Pad.Margins = Margins{Top: 0.1, Bottom: 0.1, Left: 0.1, Right: 0.1}

	s.Grid.Color = RootColor(0)
	s.Grid.Style = 3
	s.Grid.Width = 1

	s.Frame.BorderMode = 1
	s.Frame.BorderSize = 1
	s.Frame.FillColor = RootColor(0)
	s.Frame.FillStyle = 1001
	s.Frame.LineColor = RootColor(1)
	s.Frame.LineStyle = 1
	s.Frame.LineWidth = 1

	s.Hist.LineColor = RootColor(1)
	s.Hist.LineStyle = 1
	s.Hist.LineWidth = 1

	s.EndErrorSize = 2
	s.Marker.Style = 1
	s.Marker.Size = 1

	s.Fit.Format = "5.4g"
	s.Fit.FuncColor = RootColor(2)
	s.Fit.FuncStyle = 1
	s.Fit.FuncWidth = 2

	s.OptStat = 1
	s.Stat.Color = RootColor(0)
	s.Stat.Font = 62
	s.Stat.TextColor = RootColor(1)
	s.Stat.Format = "6.4g"
	s.Stat.BorderSize = 2
	s.Stat.H = 0.16
	s.Stat.W = 0.2

	s.Title.Opt = 1
	s.Title.Font = 62
	s.Title.Color = RootColor(1)
	s.Title.TextColor = RootColor(1)
	s.Title.FillColor = RootColor(19)

	for _, a := range []*AxisStyle{&s.X, &s.Y, &s.Z} {
		*a = AxisStyle{
			TitleColor:  RootColor(1),
			TitleFont:   62,
			TitleSize:   0.035,
			TitleOffset: 1,
			LabelColor:  RootColor(1),
			LabelFont:   62,
			LabelOffset: 0.005,
			LabelSize:   0.035,
			AxisColor:   RootColor(1),
			TickLength:  0.03,
			Ndivisions:  510,
		}
	}

	s.PaperSize = [2]float64{20, 26}
	s.Hatches.LineWidth = 1
	s.Hatches.Spacing = 1

	s.Legend.BorderSize = 4
	s.Legend.Font = 62
	s.Legend.FillColor = RootColor(0)

	return s
}

// Option customises a style preset.
type Option func(*presetConfig)

type presetConfig struct {
	width, height int
	margins       Margins
}

// WithCanvasSize sets the canvas size in pixels.
func WithCanvasSize(width, height int) Option {
	return func(c *presetConfig) {
		c.width = width
		c.height = height
	}
}

// WithMargins sets the requested pad margins, as fractions of the shorter
// canvas side.
func WithMargins(top, bottom, left, right float64) Option {
	return func(c *presetConfig) {
		c.margins = Margins{Top: top, Bottom: bottom, Left: left, Right: right}
	}
}

type preset struct {
	apply   func(*Style, presetConfig)
	options bool
}

var presets = map[string]preset{
	"none":   {apply: func(*Style, presetConfig) {}},
	"TDR":    {apply: func(s *Style, _ presetConfig) { s.setTDR() }},
	"ModTDR": {apply: (*Style).setModTDR, options: true},
}

// Set applies the named preset: "none", "TDR" or "ModTDR". The style is
// left untouched when an error is returned.
func (s *Style) Set(name string, opts ...Option) error {
	p, ok := presets[name]
	if !ok {
		Logger.Printf("fatal: %s style not available!", name)
		return fmt.Errorf("%w %q", ErrUnknownStyle, name)
	}
	if len(opts) > 0 && !p.options {
		Logger.Printf("fatal: %s style does not take options", name)
		return fmt.Errorf("%w: %q takes none", ErrStyleOptions, name)
	}

	cfg := presetConfig{
		width:   600,
		height:  600,
		margins: Margins{Top: 0.06, Bottom: 0.12, Left: 0.16, Right: 0.04},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.width <= 0 || cfg.height <= 0 {
		Logger.Printf("fatal: invalid canvas size %dx%d", cfg.width, cfg.height)
		return fmt.Errorf("%w: canvas size %dx%d", ErrStyleOptions, cfg.width, cfg.height)
	}

	Logger.Printf("set plotting style to %s", name)
	next := *s
	p.apply(&next, cfg)
	*s = next
	return nil
}

func (s *Style) axes(f func(a *AxisStyle)) {
	f(&s.X)
	f(&s.Y)
	f(&s.Z)
}

// setTDR applies the PubComm recommended style (tdrstyle.C).
func (s *Style) setTDR() {
	// canvas
	s.Canvas.BorderMode = 0
	s.Canvas.Color = RootColor(0)
	s.Canvas.DefH = 600
	s.Canvas.DefW = 600
	s.Canvas.DefX = 0
	s.Canvas.DefY = 0

	// pad
	s.Pad.BorderMode = 0
	s.Pad.Color = RootColor(0)
	s.Pad.GridX = false
	s.Pad.GridY = false
	s.Grid.Color = RootColor(0)
	s.Grid.Style = 3
	s.Grid.Width = 1

	// frame
	s.Frame.BorderMode = 0
	s.Frame.BorderSize = 1
	s.Frame.FillColor = RootColor(0)
	s.Frame.FillStyle = 0
	s.Frame.LineColor = RootColor(1)
	s.Frame.LineStyle = 1
	s.Frame.LineWidth = 1

	// histograms
	s.Hist.LineColor = RootColor(1)
	s.Hist.LineStyle = 0
	s.Hist.LineWidth = 1
	s.EndErrorSize = 2
	s.Marker.Style = 20

	// fit/function
	s.Fit.Opt = 1
	s.Fit.Format = "5.4g"
	s.Fit.FuncColor = RootColor(2)
	s.Fit.FuncStyle = 1
	s.Fit.FuncWidth = 1

	s.OptDate = 0

	// statistics box
	s.OptFile = 0
	s.OptStat = 0
	s.Stat.Color = RootColor(0)
	s.Stat.Font = 42
	s.Stat.FontSize = 0.025
	s.Stat.TextColor = RootColor(1)
	s.Stat.Format = "6.4g"
	s.Stat.BorderSize = 1
	s.Stat.H = 0.1
	s.Stat.W = 0.15

	s.Pad.Margins = Margins{Top: 0.05, Bottom: 0.13, Left: 0.16, Right: 0.02}

	// global title
	s.Title.Opt = 0
	s.Title.Font = 42
	s.Title.Color = RootColor(1)
	s.Title.TextColor = RootColor(1)
	s.Title.FillColor = RootColor(10)
	s.Title.FontSize = 0.05

	s.axes(func(a *AxisStyle) {
		a.TitleColor = RootColor(1)
		a.TitleFont = 42
		a.TitleSize = 0.06

		a.LabelColor = RootColor(1)
		a.LabelFont = 42
		a.LabelOffset = 0.007
		a.LabelSize = 0.05

		a.AxisColor = RootColor(1)
		a.TickLength = 0.03
		a.Ndivisions = 510
	})
	s.X.TitleOffset = 0.9
	s.Y.TitleOffset = 1.25

	s.StripDecimals = true
	s.Pad.TickX = 1
	s.Pad.TickY = 1

	s.OptLogX = false
	s.OptLogY = false
	s.OptLogZ = false

	s.PaperSize = [2]float64{20, 20}

	s.Hatches.LineWidth = 5
	s.Hatches.Spacing = 0.05
}

// setModTDR applies the TDR style and rescales margins and axis title
// offsets for the requested canvas, so that titles keep their distance to
// the frame on non-square canvases.
func (s *Style) setModTDR(cfg presetConfig) {
	s.setTDR()

	s.Canvas.DefW = cfg.width
	s.Canvas.DefH = cfg.height

	// Margins are requested as fractions of the shortest canvas side.
	var (
		w      = float64(cfg.width)
		h      = float64(cfg.height)
		scaleH = 1.0
		scaleW = 1.0
		minWH  = w
	)
	if h > w {
		scaleH = w / h
	}
	if w > h {
		scaleW = h / w
	}
	if h < w {
		minWH = h
	}

	m := cfg.margins
	s.Pad.Margins = Margins{
		Top:    m.Top * scaleH,
		Bottom: m.Bottom * scaleH,
		Left:   m.Left * scaleW,
		Right:  m.Right * scaleW,
	}

	s.axes(func(a *AxisStyle) { a.Ndivisions = 506 })

	s.Marker.Size = 1.0

	s.Y.LabelOffset = 0.007
	s.Z.LabelOffset = 0.007
	s.X.LabelOffset = 0.005 * (3. - 2./scaleH)

	const (
		titleSize = 0.05
		labelSize = 0.04
	)
	titlePx := titleSize * minWH
	s.axes(func(a *AxisStyle) {
		a.TitleSize = titleSize
		a.LabelSize = labelSize
	})

	s.X.TitleOffset = 0.5 * scaleH * (1.2 * (h*m.Bottom*scaleH - 0.6*titlePx)) / titlePx
	s.Y.TitleOffset = 0.5 * scaleW * (1.2 * (w*m.Left*scaleW - 0.6*titlePx)) / titlePx

	// ticks only where there is an axis
	s.Pad.TickX = 0
	s.Pad.TickY = 0
	s.axes(func(a *AxisStyle) { a.TickLength = 0.02 })

	s.Legend.BorderSize = 0
	s.Legend.Font = 42
	s.Legend.FillColor = RootColor(0)

	s.ExponentOffset.X = -0.07
	s.ExponentOffset.Y = 0.0
}
