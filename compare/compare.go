// Package compare draws the usual analysis control plot: stacked
// background expectations, signal hypotheses on top and the observed data,
// optionally with the ratio of data over the total background below.
package compare

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"go-hep.org/x/hep/hbook/rootcnv"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	_ "gonum.org/v1/plot/vg/vgeps"
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"

	"github.com/decibelcooper/dumbledraw"
	"github.com/decibelcooper/dumbledraw/shapes"
	"github.com/decibelcooper/dumbledraw/styles"
)

var (
	ErrNothingToDraw = errors.New("compare: no process to draw")
	ErrBinning       = errors.New("compare: inconsistent binning")
)

// RatioFraction is the share of the canvas height given to the ratio pad.
const RatioFraction = 0.3

// Config selects the histograms of a comparison plot and its decorations.
type Config struct {
	Channel  string
	Category string
	Shape    string

	// Data adds the observed histogram as points with Poisson errors.
	Data bool
	// Backgrounds are stacked in order, the first one at the bottom.
	Backgrounds []string
	Signals     []string

	Ratio bool
	// LogY draws the main pad with a logarithmic y axis, whatever the
	// style's OptLogY says.
	LogY bool

	Title     string
	CMSText   string
	ExtraText string
	// XLabel overrides the label looked up in the palette for the
	// variable.
	XLabel string
}

func (s Config) options() []shapes.Option {
	var opts []shapes.Option
	if s.Category != "" {
		opts = append(opts, shapes.WithCategory(s.Category))
	}
	if s.Shape != "" {
		opts = append(opts, shapes.WithShape(s.Shape))
	}
	return opts
}

// Figure is a comparison plot ready to be drawn.
type Figure struct {
	Config Config
	Style  *styles.Style

	Main  *hplot.Plot
	Lower *hplot.Plot // nil without a ratio pad

	// Edges are the common bin edges, Total the summed background and
	// Observed the data in every bin.
	Edges    []float64
	Total    []float64
	Observed []float64
}

// Build reads the histograms named by cfg from p and lays them out on
// plots styled by st, with colors and labels from pal.
func Build(p *shapes.Parser, st *styles.Style, pal *styles.Palette, cfg Config) (*Figure, error) {
	if len(cfg.Backgrounds) == 0 && len(cfg.Signals) == 0 && !cfg.Data {
		return nil, ErrNothingToDraw
	}

	fig := &Figure{
		Config: cfg,
		Style:  st,
		Main:   hplot.New(),
	}
	mainStyle := *st
	mainStyle.OptLogY = cfg.LogY
	mainStyle.Apply(fig.Main.Plot)

	xlabel := cfg.XLabel
	if xlabel == "" {
		xlabel = pal.XLabel(p.Variable())
	}
	fig.Main.X.Label.Text = styles.FromLatex(xlabel)
	fig.Main.Y.Label.Text = "Events"

	var ymax float64
	ymin := math.Inf(+1)

	var stack []*hplot.H1D
	for _, name := range cfg.Backgrounds {
		h, err := fig.read(p, name)
		if err != nil {
			return nil, err
		}
		vals := shapes.Contents(h)
		if fig.Total == nil {
			fig.Total = make([]float64, len(vals))
		}
		for i, v := range vals {
			fig.Total[i] += v
		}

		hh := hplot.NewH1D(rootcnv.H1D(h), hplot.WithLogY(cfg.LogY))
		hh.FillColor = pal.Color(name)
		hh.LineStyle.Color = color.Black
		hh.LineStyle.Width = vg.Points(0.5)
		stack = append(stack, hh)
	}
	if len(stack) > 0 {
		fig.Main.Add(hplot.NewHStack(stack, hplot.WithLogY(cfg.LogY)))
		for i := len(stack) - 1; i >= 0; i-- {
			fig.Main.Legend.Add(styles.FromLatex(pal.LegendLabel(cfg.Backgrounds[i])), stack[i])
		}
		ymax, ymin = extent(fig.Total, ymax, ymin)
	}

	for _, name := range cfg.Signals {
		h, err := fig.read(p, name)
		if err != nil {
			return nil, err
		}
		hh := hplot.NewH1D(rootcnv.H1D(h), hplot.WithLogY(cfg.LogY))
		hh.LineStyle.Color = pal.Color(name)
		hh.LineStyle.Width = vg.Points(2)
		fig.Main.Add(hh)
		fig.Main.Legend.Add(styles.FromLatex(pal.LegendLabel(name)), hh)
		ymax, ymin = extent(shapes.Contents(h), ymax, ymin)
	}

	if cfg.Data {
		h, err := fig.read(p, "data")
		if err != nil {
			return nil, err
		}
		fig.Observed = shapes.Contents(h)
		pts, err := fig.points(fig.Observed, func(i int, v float64) (float64, float64, bool) {
			if cfg.LogY && v <= 0 {
				return 0, 0, false
			}
			return v, math.Sqrt(math.Max(v, 0)), true
		})
		if err != nil {
			return nil, err
		}
		pts.add(fig.Main, st)
		fig.Main.Legend.Add(styles.FromLatex(pal.LegendLabel("data")), pts.scatter)
		for _, v := range fig.Observed {
			ymax = math.Max(ymax, v+math.Sqrt(math.Max(v, 0)))
		}
		_, ymin = extent(fig.Observed, ymax, ymin)
	}

	fig.Main.X.Min = fig.Edges[0]
	fig.Main.X.Max = fig.Edges[len(fig.Edges)-1]
	switch {
	case cfg.LogY:
		if math.IsInf(ymin, +1) {
			ymin = 1
		}
		fig.Main.Y.Min = 0.5 * ymin
		fig.Main.Y.Max = math.Max(ymax, fig.Main.Y.Min) * 100
	default:
		fig.Main.Y.Min = 0
		fig.Main.Y.Max = 1.3 * ymax
		if fig.Main.Y.Max <= 0 {
			fig.Main.Y.Max = 1
		}
	}

	if cfg.Ratio && cfg.Data && fig.Total != nil {
		if err := fig.buildRatio(); err != nil {
			return nil, err
		}
	}

	return fig, nil
}

func (fig *Figure) read(p *shapes.Parser, process string) (shapes.H1, error) {
	h, err := p.H1(fig.Config.Channel, process, fig.Config.options()...)
	if err != nil {
		return nil, fmt.Errorf("compare: could not read %q: %w", process, err)
	}
	edges := shapes.Edges(h)
	switch {
	case fig.Edges == nil:
		if len(edges) < 2 {
			return nil, fmt.Errorf("%w: %q has no bins", ErrBinning, process)
		}
		fig.Edges = edges
	case !sameEdges(fig.Edges, edges):
		return nil, fmt.Errorf("%w: %q has %d bins, want %d", ErrBinning, process, len(edges)-1, len(fig.Edges)-1)
	}
	return h, nil
}

func sameEdges(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9*math.Max(1, math.Abs(a[i])) {
			return false
		}
	}
	return true
}

func extent(vals []float64, ymax, ymin float64) (float64, float64) {
	for _, v := range vals {
		ymax = math.Max(ymax, v)
		if v > 0 && v < ymin {
			ymin = v
		}
	}
	return ymax, ymin
}

type xyErrs struct {
	plotter.XYs
	plotter.YErrors
}

type markers struct {
	scatter *plotter.Scatter
	errs    *plotter.YErrorBars
}

func (m markers) add(p *hplot.Plot, st *styles.Style) {
	m.scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	m.scatter.GlyphStyle.Color = color.Black
	m.scatter.GlyphStyle.Radius = vg.Points(2.5 * st.Marker.Size)
	m.errs.LineStyle.Color = color.Black
	m.errs.CapWidth = 0
	p.Add(m.scatter, m.errs)
}

// points turns per-bin values into markers at the bin centres. value
// returns the y value and its error for bin i, or false to skip the bin.
func (fig *Figure) points(vals []float64, value func(i int, v float64) (y, err float64, ok bool)) (markers, error) {
	var pts xyErrs
	for i, v := range vals {
		y, e, ok := value(i, v)
		if !ok {
			continue
		}
		pts.XYs = append(pts.XYs, plotter.XY{X: 0.5 * (fig.Edges[i] + fig.Edges[i+1]), Y: y})
		pts.YErrors = append(pts.YErrors, struct{ Low, High float64 }{e, e})
	}

	var (
		m   markers
		err error
	)
	m.scatter, err = plotter.NewScatter(pts.XYs)
	if err != nil {
		return m, fmt.Errorf("compare: could not create markers: %w", err)
	}
	m.errs, err = plotter.NewYErrorBars(pts)
	if err != nil {
		return m, fmt.Errorf("compare: could not create error bars: %w", err)
	}
	return m, nil
}

// Ratio returns data over the total background and its error for every
// bin, NaN where the background is empty.
func (fig *Figure) Ratio() (ratio, errs []float64) {
	ratio = make([]float64, len(fig.Observed))
	errs = make([]float64, len(fig.Observed))
	for i, v := range fig.Observed {
		if i >= len(fig.Total) || fig.Total[i] <= 0 {
			ratio[i], errs[i] = math.NaN(), math.NaN()
			continue
		}
		ratio[i] = v / fig.Total[i]
		errs[i] = math.Sqrt(math.Max(v, 0)) / fig.Total[i]
	}
	return ratio, errs
}

func (fig *Figure) buildRatio() error {
	lower := hplot.New()
	st := *fig.Style
	st.OptLogY = false
	st.Apply(lower.Plot)

	ratio, errs := fig.Ratio()
	pts, err := fig.points(ratio, func(i int, v float64) (float64, float64, bool) {
		return v, errs[i], !math.IsNaN(v)
	})
	if err != nil {
		return err
	}

	lo, hi := 0.5, 1.5
	for i, v := range ratio {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v-errs[i])
		hi = math.Max(hi, v+errs[i])
	}

	unit, err := plotter.NewLine(plotter.XYs{
		{X: fig.Edges[0], Y: 1},
		{X: fig.Edges[len(fig.Edges)-1], Y: 1},
	})
	if err != nil {
		return fmt.Errorf("compare: could not create unit line: %w", err)
	}
	unit.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	lower.Add(unit)
	pts.add(lower, fig.Style)

	lower.X.Min, lower.X.Max = fig.Main.X.Min, fig.Main.X.Max
	lower.Y.Min, lower.Y.Max = math.Max(lo, 0), hi
	lower.X.Label.Text = fig.Main.X.Label.Text
	lower.Y.Label.Text = "Obs./Bkg."
	lower.Y.Tick.Marker = ratioTicks(fig.Style)

	fig.Main.X.Label.Text = ""
	fig.Main.X.Tick.Marker = unlabelled{fig.Main.X.Tick.Marker}
	fig.Lower = lower
	return nil
}

// ratioTicks keeps the secondary divisions of the style but only a handful
// of labelled ticks on the short ratio axis.
func ratioTicks(st *styles.Style) plot.Ticker {
	div := dumbledraw.DivisionTicks{N: st.Y.Ndivisions}
	return dumbledraw.DivisionTicks{N: 100*div.Secondary() + 3}
}

// unlabelled draws the ticks of a ticker without their labels.
type unlabelled struct{ plot.Ticker }

func (t unlabelled) Ticks(min, max float64) []plot.Tick {
	ticks := t.Ticker.Ticks(min, max)
	for i := range ticks {
		ticks[i].Label = ""
	}
	return ticks
}

// Draw lays out the main and ratio pads on c and adds the experiment label
// and the title.
func (fig *Figure) Draw(c draw.Canvas) error {
	pad := styles.NewPad(c, fig.Style)

	top := c
	if fig.Lower != nil {
		split := vg.Length(RatioFraction) * (c.Max.Y - c.Min.Y)
		top = draw.Crop(c, 0, 0, split, 0)
		bottom := draw.Crop(c, 0, 0, 0, split-(c.Max.Y-c.Min.Y))
		fig.Lower.Draw(fig.frame(bottom, 0))
	}

	upper := pad.Sub(top)
	frame := fig.frame(top, fig.Style.Pad.Margins.Top)
	fig.Main.Draw(frame)
	upper.FitFrame(fig.Main.Plot, frame)

	if fig.Config.CMSText != "" {
		styles.DrawCMSLogo(upper, styles.Logo{
			CMSText:    fig.Config.CMSText,
			ExtraText:  fig.Config.ExtraText,
			PosX:       11,
			RelPosX:    0.045,
			RelPosY:    0.035,
			RelExtraDY: 1.2,
		})
	}
	if fig.Config.Title != "" {
		if err := styles.DrawTitle(upper, fig.Config.Title, 3, 0); err != nil {
			return err
		}
	}
	return nil
}

// frame leaves the style's right margin and a top margin free around a
// plot drawn on c.
func (fig *Figure) frame(c draw.Canvas, top float64) draw.Canvas {
	w := c.Max.X - c.Min.X
	h := c.Max.Y - c.Min.Y
	return draw.Crop(c, 0, -vg.Length(fig.Style.Pad.Margins.Right)*w, 0, -vg.Length(top)*h)
}

// Save draws the figure at the style's canvas size and writes it to path,
// in the format given by the file extension (png, jpg, tiff, pdf, svg or
// eps).
func (fig *Figure) Save(path string) (err error) {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	w, h := fig.Style.CanvasSize()
	cw, err := draw.NewFormattedCanvas(w, h, format)
	if err != nil {
		return fmt.Errorf("compare: could not create canvas for %q: %w", path, err)
	}
	if err := fig.Draw(draw.New(cw)); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("compare: could not create output file: %w", err)
	}
	defer func() {
		if e := f.Close(); e != nil && err == nil {
			err = fmt.Errorf("compare: could not close output file: %w", e)
		}
	}()

	if _, err := cw.WriteTo(f); err != nil {
		return fmt.Errorf("compare: could not write %q: %w", path, err)
	}
	return nil
}
