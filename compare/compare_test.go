package compare

import (
	"bytes"
	"errors"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"testing"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rhist"
	"go-hep.org/x/hep/hbook"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/decibelcooper/dumbledraw/shapes"
	"github.com/decibelcooper/dumbledraw/styles"
)

func newH1D(values ...float64) *hbook.H1D {
	h := hbook.NewH1D(len(values), 0, 200)
	for i, v := range values {
		h.Fill(h.Binning.Bins[i].XMid(), v)
	}
	return h
}

func makeParser(t *testing.T) *shapes.Parser {
	t.Helper()

	fname := filepath.Join(t.TempDir(), "shapes.root")
	f, err := groot.Create(fname)
	if err != nil {
		t.Fatalf("could not create ROOT file: %+v", err)
	}
	for name, h := range map[string]*hbook.H1D{
		"DY#mt-DY-ZTT#Nominal#m_vis":  newH1D(10, 20, 30, 40),
		"TT#mt-TT-TTT#Nominal#m_vis":  newH1D(5, 5, 5, 5),
		"ggH#mt-ggH125#Nominal#m_vis": newH1D(1, 2, 1, 0),
		"data#mt#Nominal#m_vis":       newH1D(15, 30, 35, 0),
		"W#mt-W#Nominal#m_vis":        newH1D(1, 1, 1),
	} {
		h.Annotation()["name"] = name
		if err := f.Put(name, rhist.NewH1DFrom(h)); err != nil {
			t.Fatalf("could not write %q: %+v", name, err)
		}
	}
	if err := f.Close(); err != nil {
		t.Fatalf("could not close ROOT file: %+v", err)
	}

	p, err := shapes.Open(fname, "m_vis")
	if err != nil {
		t.Fatalf("could not open shapes: %+v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func setup(t *testing.T) (*shapes.Parser, *styles.Style, *styles.Palette) {
	t.Helper()

	orig := styles.Logger
	styles.Logger = log.New(io.Discard, "", 0)
	t.Cleanup(func() { styles.Logger = orig })

	st := styles.Default()
	if err := st.Set("ModTDR"); err != nil {
		t.Fatal(err)
	}
	pal, err := styles.Load(styles.Config{})
	if err != nil {
		t.Fatal(err)
	}
	return makeParser(t), st, pal
}

var fullConfig = Config{
	Channel:     "mt",
	Data:        true,
	Backgrounds: []string{"ZTT", "TTT"},
	Signals:     []string{"ggH125"},
	Ratio:       true,
	Title:       "138 fb^{-1} (13 TeV)",
	CMSText:     "CMS",
	ExtraText:   "Preliminary",
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBuild(t *testing.T) {
	p, st, pal := setup(t)

	fig, err := Build(p, st, pal, fullConfig)
	if err != nil {
		t.Fatalf("could not build figure: %+v", err)
	}

	for i, want := range []float64{15, 25, 35, 45} {
		if !near(fig.Total[i], want) {
			t.Fatalf("got total %v, want 15 25 35 45", fig.Total)
		}
	}
	if got, want := len(fig.Edges), 5; got != want {
		t.Fatalf("got %d edges, want %d", got, want)
	}
	if fig.Lower == nil {
		t.Fatal("missing ratio pad")
	}
	if fig.Main.X.Min != 0 || fig.Main.X.Max != 200 {
		t.Fatalf("got x range [%v, %v]", fig.Main.X.Min, fig.Main.X.Max)
	}
	if _, ok := fig.Main.Y.Scale.(plot.LinearScale); !ok {
		t.Fatalf("got y scale %T, want linear scale", fig.Main.Y.Scale)
	}
	if want := 1.3 * 45; fig.Main.Y.Min != 0 || !near(fig.Main.Y.Max, want) {
		t.Fatalf("got y range [%v, %v], want [0, %v]", fig.Main.Y.Min, fig.Main.Y.Max, want)
	}
	if got, want := fig.Main.X.Label.Text, ""; got != want {
		t.Fatalf("got main x label %q, want %q", got, want)
	}
	if got, want := fig.Lower.X.Label.Text, "m_vis"; got != want {
		t.Fatalf("got ratio x label %q, want %q", got, want)
	}

	ratio, errs := fig.Ratio()
	for i, want := range []float64{1, 1.2, 1, 0} {
		if !near(ratio[i], want) {
			t.Errorf("bin %d: got ratio %v, want %v", i, ratio[i], want)
		}
	}
	if want := math.Sqrt(30) / 25; !near(errs[1], want) {
		t.Errorf("got ratio error %v, want %v", errs[1], want)
	}

	c := draw.New(vgimg.New(vg.Points(600), vg.Points(600)))
	if err := fig.Draw(c); err != nil {
		t.Fatalf("could not draw figure: %+v", err)
	}
}

func TestBuildLogY(t *testing.T) {
	p, st, pal := setup(t)

	cfg := fullConfig
	cfg.LogY = true
	cfg.Ratio = false

	fig, err := Build(p, st, pal, cfg)
	if err != nil {
		t.Fatalf("could not build figure: %+v", err)
	}
	if fig.Lower != nil {
		t.Fatal("unexpected ratio pad")
	}
	if _, ok := fig.Main.Y.Scale.(plot.LogScale); !ok {
		t.Fatalf("got y scale %T, want log scale", fig.Main.Y.Scale)
	}
	if _, ok := fig.Main.Y.Tick.Marker.(plot.LogTicks); !ok {
		t.Fatalf("got y ticker %T, want log ticks", fig.Main.Y.Tick.Marker)
	}
	if st.OptLogY {
		t.Fatal("building a figure modified the style")
	}
	if got, want := fig.Main.Y.Min, 0.5; !near(got, want) {
		t.Fatalf("got y min %v, want %v", got, want)
	}
	if got, want := fig.Main.Y.Max, 4500.0; !near(got, want) {
		t.Fatalf("got y max %v, want %v", got, want)
	}

	c := draw.New(vgimg.New(vg.Points(600), vg.Points(600)))
	if err := fig.Draw(c); err != nil {
		t.Fatalf("could not draw figure: %+v", err)
	}
}

func TestBuildLinearOverridesStyle(t *testing.T) {
	p, st, pal := setup(t)
	st.OptLogY = true

	fig, err := Build(p, st, pal, fullConfig)
	if err != nil {
		t.Fatalf("could not build figure: %+v", err)
	}
	if _, ok := fig.Main.Y.Scale.(plot.LinearScale); !ok {
		t.Fatalf("got y scale %T, want linear scale", fig.Main.Y.Scale)
	}
	if fig.Main.Y.Min != 0 {
		t.Fatalf("got y min %v, want 0", fig.Main.Y.Min)
	}
}

func TestSavePDFLogo(t *testing.T) {
	p, st, pal := setup(t)

	cfg := fullConfig
	cfg.LogY = true
	fig, err := Build(p, st, pal, cfg)
	if err != nil {
		t.Fatalf("could not build figure: %+v", err)
	}

	fname := filepath.Join(t.TempDir(), "logo.pdf")
	if err := fig.Save(fname); err != nil {
		t.Fatalf("could not save pdf with the CMS logo: %+v", err)
	}
	raw, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(raw, []byte("%PDF")) {
		t.Fatalf("%s is not a pdf document", fname)
	}
}

func TestBuildRatioWithoutData(t *testing.T) {
	p, st, pal := setup(t)

	fig, err := Build(p, st, pal, Config{
		Channel:     "mt",
		Backgrounds: []string{"ZTT"},
		Ratio:       true,
		XLabel:      "m_{vis} (GeV)",
	})
	if err != nil {
		t.Fatalf("could not build figure: %+v", err)
	}
	if fig.Lower != nil {
		t.Fatal("ratio pad needs data")
	}
	if got, want := fig.Main.X.Label.Text, "m_vis (GeV)"; got != want {
		t.Fatalf("got x label %q, want %q", got, want)
	}
}

func TestBuildErrors(t *testing.T) {
	p, st, pal := setup(t)

	if _, err := Build(p, st, pal, Config{Channel: "mt"}); !errors.Is(err, ErrNothingToDraw) {
		t.Fatalf("got %v, want %v", err, ErrNothingToDraw)
	}

	_, err := Build(p, st, pal, Config{Channel: "mt", Backgrounds: []string{"ZTT", "W"}})
	if !errors.Is(err, ErrBinning) {
		t.Fatalf("got %v, want %v", err, ErrBinning)
	}

	_, err = Build(p, st, pal, Config{Channel: "et", Backgrounds: []string{"ZTT"}})
	if !errors.Is(err, shapes.ErrMissingHistogram) {
		t.Fatalf("got %v, want %v", err, shapes.ErrMissingHistogram)
	}

	_, err = Build(p, st, pal, Config{Channel: "mt", Signals: []string{"bogus"}})
	if !errors.Is(err, shapes.ErrUnknownProcess) {
		t.Fatalf("got %v, want %v", err, shapes.ErrUnknownProcess)
	}
}

func TestSave(t *testing.T) {
	p, st, pal := setup(t)

	fig, err := Build(p, st, pal, fullConfig)
	if err != nil {
		t.Fatalf("could not build figure: %+v", err)
	}

	dir := t.TempDir()
	for _, name := range []string{"plot.png", "plot.pdf", "plot.svg", "plot.eps"} {
		fname := filepath.Join(dir, name)
		if err := fig.Save(fname); err != nil {
			t.Fatalf("could not save %s: %+v", name, err)
		}
		fi, err := os.Stat(fname)
		if err != nil {
			t.Fatal(err)
		}
		if fi.Size() == 0 {
			t.Fatalf("%s is empty", name)
		}
	}

	if err := fig.Save(filepath.Join(dir, "plot.xyz")); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}
