package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pkg/profile"

	"github.com/decibelcooper/dumbledraw"
	"github.com/decibelcooper/dumbledraw/compare"
	"github.com/decibelcooper/dumbledraw/shapes"
	"github.com/decibelcooper/dumbledraw/styles"
)

var (
	variable  = flag.String("variable", "m_vis", "variable the shapes were produced for")
	channel   = flag.String("channel", "mt", "analysis channel")
	category  = flag.String("category", "", "event category")
	shape     = flag.String("shape", shapes.Nominal, "shape systematic")
	data      = flag.Bool("data", true, "draw observed data")
	style     = flag.String("style", "ModTDR", "style preset (none, TDR or ModTDR)")
	width     = flag.Int("width", 600, "canvas width in pixels (ModTDR)")
	height    = flag.Int("height", 600, "canvas height in pixels (ModTDR)")
	labels    = flag.String("labels", "", "YAML file with legend and axis labels")
	plotNames = flag.String("plotnames", "", "text file with one plot name per line to assign colors to")
	massDict  = flag.String("massdict", "", "YAML file with NMSSM signal masses to assign colors to")
	cmsText   = flag.String("cms", "CMS", "experiment label")
	extraText = flag.String("extra", "Preliminary", "text below the experiment label")
	title     = flag.String("title", "", "text above the top right corner of the frame")
	xlabel    = flag.String("xlabel", "", "x-axis title, looked up in the labels file by default")
	logY      = flag.Bool("logy", false, "logarithmic y axis")
	ratio     = flag.Bool("ratio", true, "draw the data over background ratio")
	output    = flag.String("output", "out.png", "output file")
	cpuProf   = flag.String("cpuprofile", "", "write a CPU profile to this directory")
	verbose   = flag.Bool("v", false, "log every histogram read")

	backgrounds = dumbledraw.StringArrayFlags{Array: []string{"ZTT", "ZL", "ZJ", "TTT", "TTJ", "VVT", "VVJ", "W", "QCD"}}
	signals     dumbledraw.StringArrayFlags
	margins     dumbledraw.FloatArrayFlags
)

func init() {
	flag.Var(&backgrounds, "bkg", "background process to stack, bottom first (repeatable, comma separated)")
	flag.Var(&signals, "sig", "signal process to overlay (repeatable, comma separated)")
	flag.Var(&margins, "margin", "top, bottom, left and right pad margins (ModTDR)")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <shapes-root-file>

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("shapeplot: ")
	log.SetFlags(0)

	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() != 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	if *cpuProf != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*cpuProf)).Stop()
	}
	if *verbose {
		shapes.Logger.SetOutput(os.Stderr)
	}

	st := styles.Default()
	if err := st.Set(*style, styleOptions()...); err != nil {
		log.Fatal(err)
	}

	pal, err := styles.Load(styles.Config{
		LabelsPath:    *labels,
		PlotNamesPath: *plotNames,
		MassDictPath:  *massDict,
	})
	if err != nil {
		log.Fatalf("could not load palette: %+v", err)
	}

	p, err := shapes.Open(flag.Arg(0), *variable)
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	fig, err := compare.Build(p, st, pal, compare.Config{
		Channel:     *channel,
		Category:    *category,
		Shape:       *shape,
		Data:        *data,
		Backgrounds: backgrounds.Array,
		Signals:     signals.Array,
		Ratio:       *ratio,
		LogY:        *logY,
		Title:       *title,
		CMSText:     *cmsText,
		ExtraText:   *extraText,
		XLabel:      *xlabel,
	})
	if err != nil {
		log.Fatalf("could not build plot: %+v", err)
	}

	if err := fig.Save(*output); err != nil {
		log.Fatalf("could not save plot: %+v", err)
	}
}

// styleOptions passes the canvas flags on to the ModTDR preset; the other
// presets take no options.
func styleOptions() []styles.Option {
	if *style != "ModTDR" {
		return nil
	}
	opts := []styles.Option{styles.WithCanvasSize(*width, *height)}
	if margins.IsSet() {
		m := margins.Array
		if len(m) != 4 {
			log.Fatalf("-margin needs 4 values, got %d", len(m))
		}
		opts = append(opts, styles.WithMargins(m[0], m[1], m[2], m[3]))
	}
	return opts
}
