// Package shapes reads the histograms ("shapes") written by the statistical
// analysis framework into a ROOT file.
//
// Histograms are stored flat under keys of the form
//
//	{dataset}#{channel}-{process}[-{category}]#{shape}#{variable}
//
// where dataset and process are translated from the short process names
// used in the analysis through DatasetMap and ProcessMap.
package shapes

import (
	"errors"
	"fmt"
	"io"
	"log"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rhist"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/root"
	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hbook/rootcnv"
)

// Nominal is the shape variation used when none is requested.
const Nominal = "Nominal"

var (
	ErrUnknownProcess   = errors.New("shapes: unknown process")
	ErrMissingHistogram = errors.New("shapes: missing histogram")
	ErrNotH1            = errors.New("shapes: not a 1D histogram")
)

// Logger receives debug messages about key lookups. It discards everything
// unless redirected.
var Logger = log.New(io.Discard, "shapes: ", 0)

// Option configures a histogram lookup.
type Option func(*query)

type query struct {
	category string
	shape    string
}

func newQuery(opts []Option) query {
	q := query{shape: Nominal}
	for _, opt := range opts {
		opt(&q)
	}
	return q
}

// WithCategory selects a category below the process.
func WithCategory(category string) Option {
	return func(q *query) { q.category = category }
}

// WithShape selects a shape variation, e.g. "scale_up".
func WithShape(shape string) Option {
	return func(q *query) { q.shape = shape }
}

// H1 is a 1D ROOT histogram (TH1D, TH1F or TH1I) with bin access. Bins are
// numbered from 1, 0 and NbinsX+1 hold the under- and overflow.
type H1 interface {
	rhist.H1
	NbinsX() int
	XBinLowEdge(i int) float64
	XBinWidth(i int) float64
	XBinContent(i int) float64
}

// Parser gives access to the shapes of one variable in one ROOT file.
type Parser struct {
	filename string
	variable string
	file     *riofs.File
}

// Open opens filename for reading. The returned Parser must be closed.
func Open(filename, variable string) (*Parser, error) {
	f, err := groot.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open shapes file %q: %w", filename, err)
	}

	return &Parser{
		filename: filename,
		variable: variable,
		file:     f,
	}, nil
}

// Close releases the underlying file.
func (p *Parser) Close() error {
	Logger.Printf("closing %s", p.filename)
	return p.file.Close()
}

// File returns the underlying ROOT file.
func (p *Parser) File() *riofs.File { return p.file }

// Variable returns the physics variable the parser was opened for.
func (p *Parser) Variable() string { return p.variable }

// Key returns the key under which the requested histogram is stored.
func (p *Parser) Key(channel, process string, opts ...Option) (string, error) {
	return Key(channel, process, p.variable, opts...)
}

// Key composes the storage key of a histogram of variable.
func Key(channel, process, variable string, opts ...Option) (string, error) {
	q := newQuery(opts)

	dataset, ok := DatasetMap[process]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownProcess, process)
	}

	var suffix string
	switch {
	case process == "data" && q.category == "":
	case process == "data":
		suffix = "-" + q.category
	case q.category == "":
		suffix = "-" + ProcessMap[process]
	default:
		suffix = "-" + ProcessMap[process] + "-" + q.category
	}

	return fmt.Sprintf("%s#%s%s#%s#%s", dataset, channel, suffix, q.shape, variable), nil
}

// Get reads the object stored for the requested histogram.
func (p *Parser) Get(channel, process string, opts ...Option) (root.Object, error) {
	key, err := p.Key(channel, process, opts...)
	if err != nil {
		return nil, err
	}
	Logger.Printf("try to access %s in %s", key, p.filename)

	obj, err := p.file.Get(key)
	if err != nil {
		return nil, fmt.Errorf("%w %q in %s: %w", ErrMissingHistogram, key, p.filename, err)
	}
	return obj, nil
}

// H1 reads the requested histogram as a 1D ROOT histogram.
func (p *Parser) H1(channel, process string, opts ...Option) (H1, error) {
	obj, err := p.Get(channel, process, opts...)
	if err != nil {
		return nil, err
	}

	h, ok := obj.(H1)
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s is a %s", ErrNotH1, channel, process, obj.Class())
	}
	return h, nil
}

// H1D reads the requested histogram and converts it for plotting.
func (p *Parser) H1D(channel, process string, opts ...Option) (*hbook.H1D, error) {
	h, err := p.H1(channel, process, opts...)
	if err != nil {
		return nil, err
	}
	return rootcnv.H1D(h), nil
}

// ListContents returns the title of every key in the file.
func (p *Parser) ListContents() []string {
	keys := p.file.Keys()
	titles := make([]string, 0, len(keys))
	for _, key := range keys {
		titles = append(titles, key.Title())
	}
	return titles
}

// Keys returns the name of every key in the file.
func (p *Parser) Keys() []string {
	keys := p.file.Keys()
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		names = append(names, key.Name())
	}
	return names
}

// Bins returns the N+1 bin edges of the requested histogram.
func (p *Parser) Bins(channel, process string, opts ...Option) ([]float64, error) {
	h, err := p.H1(channel, process, opts...)
	if err != nil {
		return nil, err
	}
	return Edges(h), nil
}

// Values returns the N bin contents of the requested histogram.
func (p *Parser) Values(channel, process string, opts ...Option) ([]float64, error) {
	h, err := p.H1(channel, process, opts...)
	if err != nil {
		return nil, err
	}
	return Contents(h), nil
}

// Edges returns the lower edge of every bin of h followed by the upper edge
// of the last one. Bins are numbered from 1 as in ROOT.
func Edges(h H1) []float64 {
	n := h.NbinsX()
	edges := make([]float64, 0, n+1)
	for i := 1; i <= n; i++ {
		edges = append(edges, h.XBinLowEdge(i))
	}
	if n > 0 {
		edges = append(edges, h.XBinLowEdge(n)+h.XBinWidth(n))
	}
	return edges
}

// Contents returns the content of every bin of h, without under- and
// overflow.
func Contents(h H1) []float64 {
	n := h.NbinsX()
	values := make([]float64, n)
	for i := range values {
		values[i] = h.XBinContent(i + 1)
	}
	return values
}
