package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/decibelcooper/dumbledraw/shapes"
)

var (
	keys     = flag.Bool("keys", false, "list key names instead of titles")
	variable = flag.String("variable", "m_vis", "variable the shapes were produced for")
	channel  = flag.String("channel", "", "analysis channel; with -process prints bins and values")
	process  = flag.String("process", "", "process to print bins and values for")
	category = flag.String("category", "", "event category")
	shape    = flag.String("shape", shapes.Nominal, "shape systematic")
	verbose  = flag.Bool("v", false, "log every histogram read")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <shapes-root-file>

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("shapelist: ")
	log.SetFlags(0)

	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() != 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	if *verbose {
		shapes.Logger.SetOutput(os.Stderr)
	}

	p, err := shapes.Open(flag.Arg(0), *variable)
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	if *channel != "" && *process != "" {
		if err := printHistogram(p); err != nil {
			log.Fatal(err)
		}
		return
	}

	entries := p.ListContents()
	if *keys {
		entries = p.Keys()
	}
	for _, entry := range entries {
		fmt.Println(entry)
	}
}

func printHistogram(p *shapes.Parser) error {
	opts := []shapes.Option{shapes.WithShape(*shape)}
	if *category != "" {
		opts = append(opts, shapes.WithCategory(*category))
	}

	key, err := p.Key(*channel, *process, opts...)
	if err != nil {
		return err
	}
	bins, err := p.Bins(*channel, *process, opts...)
	if err != nil {
		return err
	}
	values, err := p.Values(*channel, *process, opts...)
	if err != nil {
		return err
	}

	fmt.Println(key)
	fmt.Println("bins:  ", join(bins))
	fmt.Println("values:", join(values))
	return nil
}

func join(vs []float64) string {
	fields := make([]string, len(vs))
	for i, v := range vs {
		fields[i] = fmt.Sprint(v)
	}
	return strings.Join(fields, " ")
}
