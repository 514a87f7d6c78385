package shapes

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rbase"
	"go-hep.org/x/hep/groot/rhist"
	"go-hep.org/x/hep/groot/root"
	"go-hep.org/x/hep/hbook"
)

var (
	_ H1 = (*rhist.H1D)(nil)
	_ H1 = (*rhist.H1F)(nil)
	_ H1 = (*rhist.H1I)(nil)
)

func TestMapsConsistent(t *testing.T) {
	if got, want := len(DatasetMap), 19+2*3*3*len(SUSYggHMasses); got != want {
		t.Fatalf("dataset map has %d entries, want %d", got, want)
	}
	if len(DatasetMap) != len(ProcessMap) {
		t.Fatalf("dataset map has %d entries, process map %d", len(DatasetMap), len(ProcessMap))
	}
	for name := range DatasetMap {
		if !IsKnown(name) {
			t.Errorf("%q missing from process map", name)
		}
	}
}

func TestGeneratedSignalsUnique(t *testing.T) {
	seen := make(map[string]string)
	for name := range DatasetMap {
		if !strings.HasPrefix(name, "gg") || name == "ggH125" {
			continue
		}
		pair := DatasetMap[name] + "|" + ProcessMap[name]
		if prev, dup := seen[pair]; dup {
			t.Errorf("%q and %q both map to %q", prev, name, pair)
		}
		seen[pair] = name
	}
	if got, want := len(seen), 2*3*3*len(SUSYggHMasses); got != want {
		t.Fatalf("got %d generated signals, want %d", got, want)
	}
}

func TestGeneratedSignalNames(t *testing.T) {
	for _, tc := range []struct {
		name, dataset, process string
	}{
		{"ggA_t_80", "susyggH_80", "SUSYggH-ggA_t"},
		{"ggh_i_3200", "susyggH_3200", "SUSYggH-ggh_i"},
		{"ggH_b_1000_fraction", "susyggH_1000", "SUSYggH-ggH_b-ggH_b_fraction"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := DatasetMap[tc.name]; got != tc.dataset {
				t.Errorf("dataset: got %q, want %q", got, tc.dataset)
			}
			if got := ProcessMap[tc.name]; got != tc.process {
				t.Errorf("process: got %q, want %q", got, tc.process)
			}
		})
	}
}

func TestKey(t *testing.T) {
	for _, tc := range []struct {
		name    string
		process string
		opts    []Option
		want    string
	}{
		{
			name:    "data",
			process: "data",
			want:    "data#mt#Nominal#m_vis",
		},
		{
			name:    "data-category",
			process: "data",
			opts:    []Option{WithCategory("Njet0")},
			want:    "data#mt-Njet0#Nominal#m_vis",
		},
		{
			name:    "background",
			process: "ZTT",
			want:    "DY#mt-DY-ZTT#Nominal#m_vis",
		},
		{
			name:    "background-category",
			process: "ZTT",
			opts:    []Option{WithCategory("Njet0")},
			want:    "DY#mt-DY-ZTT-Njet0#Nominal#m_vis",
		},
		{
			name:    "shape",
			process: "EMB",
			opts:    []Option{WithShape("scale_up"), WithCategory("Njet1")},
			want:    "EMB#mt-Embedded-Njet1#scale_up#m_vis",
		},
		{
			name:    "signal",
			process: "ggA_t_500",
			want:    "susyggH_500#mt-SUSYggH-ggA_t#Nominal#m_vis",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Key("mt", tc.process, "m_vis", tc.opts...)
			if err != nil {
				t.Fatalf("could not build key: %+v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestKeyCategoryOnlyChangesItsSegment(t *testing.T) {
	a, err := Key("et", "TTT", "pt_1", WithCategory("a"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Key("et", "TTT", "pt_1", WithCategory("b"))
	if err != nil {
		t.Fatal(err)
	}

	sa, sb := strings.Split(a, "#"), strings.Split(b, "#")
	if len(sa) != 4 || len(sb) != 4 {
		t.Fatalf("invalid keys %q %q", a, b)
	}
	for i := range sa {
		switch i {
		case 1:
			if sa[i] != "et-TT-TTT-a" || sb[i] != "et-TT-TTT-b" {
				t.Fatalf("invalid channel segments %q %q", sa[i], sb[i])
			}
		default:
			if sa[i] != sb[i] {
				t.Fatalf("segment %d differs: %q %q", i, sa[i], sb[i])
			}
		}
	}
}

func TestKeyUnknownProcess(t *testing.T) {
	_, err := Key("mt", "bogus", "m_vis")
	if !errors.Is(err, ErrUnknownProcess) {
		t.Fatalf("got %v, want %v", err, ErrUnknownProcess)
	}
}

func makeShapes(t *testing.T, hists map[string]*hbook.H1D) string {
	t.Helper()

	fname := filepath.Join(t.TempDir(), "shapes.root")
	f, err := groot.Create(fname)
	if err != nil {
		t.Fatalf("could not create ROOT file: %+v", err)
	}

	names := make([]string, 0, len(hists))
	for name := range hists {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		h := hists[name]
		h.Annotation()["name"] = name
		h.Annotation()["title"] = name
		if err := f.Put(name, rhist.NewH1DFrom(h)); err != nil {
			t.Fatalf("could not write %q: %+v", name, err)
		}
	}

	if err := f.Close(); err != nil {
		t.Fatalf("could not close ROOT file: %+v", err)
	}
	return fname
}

func fill(h *hbook.H1D, values ...float64) *hbook.H1D {
	for i, v := range values {
		h.Fill(h.Binning.Bins[i].XMid(), v)
	}
	return h
}

func TestParser(t *testing.T) {
	fname := makeShapes(t, map[string]*hbook.H1D{
		"DY#mt-DY-ZTT#Nominal#m_vis":       fill(hbook.NewH1D(4, 0, 200), 1, 2, 3, 4),
		"DY#mt-DY-ZTT#scale_up#m_vis":      fill(hbook.NewH1D(4, 0, 200), 2, 3, 4, 5),
		"data#mt#Nominal#m_vis":            fill(hbook.NewH1D(4, 0, 200), 5, 6, 7, 8),
		"TT#mt-TT-TTT-Njet0#Nominal#m_vis": fill(hbook.NewH1DFromEdges([]float64{0, 10, 50, 100}), 1, 1, 1),
	})

	p, err := Open(fname, "m_vis")
	if err != nil {
		t.Fatalf("could not open shapes: %+v", err)
	}
	defer p.Close()

	if got, want := len(p.ListContents()), 4; got != want {
		t.Fatalf("got %d entries, want %d", got, want)
	}

	keys := p.Keys()
	sort.Strings(keys)
	if want := []string{
		"DY#mt-DY-ZTT#Nominal#m_vis",
		"DY#mt-DY-ZTT#scale_up#m_vis",
		"TT#mt-TT-TTT-Njet0#Nominal#m_vis",
		"data#mt#Nominal#m_vis",
	}; !reflect.DeepEqual(keys, want) {
		t.Fatalf("got keys %q, want %q", keys, want)
	}

	for _, tc := range []struct {
		process string
		opts    []Option
		bins    []float64
		values  []float64
	}{
		{"ZTT", nil, []float64{0, 50, 100, 150, 200}, []float64{1, 2, 3, 4}},
		{"ZTT", []Option{WithShape("scale_up")}, []float64{0, 50, 100, 150, 200}, []float64{2, 3, 4, 5}},
		{"data", nil, []float64{0, 50, 100, 150, 200}, []float64{5, 6, 7, 8}},
		{"TTT", []Option{WithCategory("Njet0")}, []float64{0, 10, 50, 100}, []float64{1, 1, 1}},
	} {
		t.Run(fmt.Sprintf("%s-%d", tc.process, len(tc.opts)), func(t *testing.T) {
			bins, err := p.Bins("mt", tc.process, tc.opts...)
			if err != nil {
				t.Fatalf("could not read bins: %+v", err)
			}
			if !reflect.DeepEqual(bins, tc.bins) {
				t.Fatalf("got bins %v, want %v", bins, tc.bins)
			}
			for i := 1; i < len(bins); i++ {
				if bins[i] < bins[i-1] {
					t.Fatalf("bins not sorted: %v", bins)
				}
			}

			values, err := p.Values("mt", tc.process, tc.opts...)
			if err != nil {
				t.Fatalf("could not read values: %+v", err)
			}
			if !reflect.DeepEqual(values, tc.values) {
				t.Fatalf("got values %v, want %v", values, tc.values)
			}
			if len(values)+1 != len(bins) {
				t.Fatalf("got %d values for %d edges", len(values), len(bins))
			}
		})
	}

	h, err := p.H1D("mt", "ZTT")
	if err != nil {
		t.Fatalf("could not convert histogram: %+v", err)
	}
	if got, want := h.SumW(), 10.0; got != want {
		t.Fatalf("got sumw %v, want %v", got, want)
	}
}

func TestH1Kinds(t *testing.T) {
	h := fill(hbook.NewH1DFromEdges([]float64{-1, 0, 2, 5}), 3, 4, 5)

	fname := filepath.Join(t.TempDir(), "kinds.root")
	f, err := groot.Create(fname)
	if err != nil {
		t.Fatalf("could not create ROOT file: %+v", err)
	}
	for _, obj := range []struct {
		key string
		v   root.Object
	}{
		{"ggH#mt-ggH125#Nominal#m_vis", rhist.NewH1DFrom(h)},
		{"qqH#mt-qqH125#Nominal#m_vis", rhist.NewH1FFrom(h)},
		{"W#mt-W#Nominal#m_vis", rbase.NewObjString("not a histogram")},
	} {
		if err := f.Put(obj.key, obj.v); err != nil {
			t.Fatalf("could not write %q: %+v", obj.key, err)
		}
	}
	if err := f.Close(); err != nil {
		t.Fatalf("could not close ROOT file: %+v", err)
	}

	p, err := Open(fname, "m_vis")
	if err != nil {
		t.Fatalf("could not open shapes: %+v", err)
	}
	defer p.Close()

	for _, process := range []string{"ggH125", "qqH125"} {
		h1, err := p.H1("mt", process)
		if err != nil {
			t.Fatalf("%s: could not read histogram: %+v", process, err)
		}
		if got, want := h1.NbinsX(), 3; got != want {
			t.Fatalf("%s: got %d bins, want %d", process, got, want)
		}
		if got, want := Edges(h1), []float64{-1, 0, 2, 5}; !reflect.DeepEqual(got, want) {
			t.Fatalf("%s: got edges %v, want %v", process, got, want)
		}
		if got, want := Contents(h1), []float64{3, 4, 5}; !reflect.DeepEqual(got, want) {
			t.Fatalf("%s: got contents %v, want %v", process, got, want)
		}

		hb, err := p.H1D("mt", process)
		if err != nil {
			t.Fatalf("%s: could not convert histogram: %+v", process, err)
		}
		if got, want := hb.SumW(), 12.0; got != want {
			t.Fatalf("%s: got sumw %v, want %v", process, got, want)
		}
	}

	if _, err := p.H1("mt", "W"); !errors.Is(err, ErrNotH1) {
		t.Fatalf("got %v, want %v", err, ErrNotH1)
	}
}

func TestParserMissing(t *testing.T) {
	fname := makeShapes(t, map[string]*hbook.H1D{
		"data#mt#Nominal#m_vis": fill(hbook.NewH1D(2, 0, 1), 1, 1),
	})

	p, err := Open(fname, "m_vis")
	if err != nil {
		t.Fatalf("could not open shapes: %+v", err)
	}
	defer p.Close()

	_, err = p.Get("et", "data")
	if !errors.Is(err, ErrMissingHistogram) {
		t.Fatalf("got %v, want %v", err, ErrMissingHistogram)
	}

	_, err = p.Bins("mt", "ZTT")
	if !errors.Is(err, ErrMissingHistogram) {
		t.Fatalf("got %v, want %v", err, ErrMissingHistogram)
	}

	_, err = p.Values("mt", "bogus")
	if !errors.Is(err, ErrUnknownProcess) {
		t.Fatalf("got %v, want %v", err, ErrUnknownProcess)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.root"), "m_vis")
	if err == nil {
		t.Fatal("expected an error")
	}
}
