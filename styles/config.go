package styles

import (
	"bufio"
	"fmt"
	"image/color"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// MassDict lists the signal mass points of the NMSSM model, in GeV.
type MassDict struct {
	HeavyMass       []float64 `yaml:"heavy_mass"`
	LightMassFine   []float64 `yaml:"light_mass_fine"`
	LightMassCoarse []float64 `yaml:"light_mass_coarse"`
}

// Labels holds the legend text of processes and the x-axis title of
// variables.
type Labels struct {
	Legend map[string]string `yaml:"legend_label"`
	XAxis  map[string]string `yaml:"x_label"`
}

// Config names the side files read by Load. Empty paths are skipped.
type Config struct {
	LabelsPath    string
	PlotNamesPath string
	MassDictPath  string
}

// Palette is the process color table together with the labels.
type Palette struct {
	Colors ColorTable
	Labels Labels
}

// Load builds the palette once for a plotting job.
func Load(cfg Config) (*Palette, error) {
	pal := &Palette{Colors: NewColorTable()}

	if cfg.LabelsPath != "" {
		labels, err := ReadLabels(cfg.LabelsPath)
		if err != nil {
			return nil, err
		}
		pal.Labels = labels
	}

	if cfg.PlotNamesPath != "" {
		names, err := ReadPlotNames(cfg.PlotNamesPath)
		if err != nil {
			return nil, err
		}
		pal.Colors.AddPlotNames(names)
	}

	if cfg.MassDictPath != "" {
		masses, err := ReadMassDict(cfg.MassDictPath)
		if err != nil {
			return nil, err
		}
		pal.Colors.AddSignalMasses(masses)
	}

	return pal, nil
}

// Color returns the color of process, black when it has none.
func (pal *Palette) Color(process string) color.Color {
	if c, ok := pal.Colors[process]; ok {
		return c
	}
	return color.NRGBA{A: 255}
}

// LegendLabel returns the legend text of process, the name itself when no
// label is defined.
func (pal *Palette) LegendLabel(process string) string {
	if l, ok := pal.Labels.Legend[process]; ok {
		return l
	}
	return process
}

// XLabel returns the x-axis title of variable, the name itself when no
// label is defined.
func (pal *Palette) XLabel(variable string) string {
	if l, ok := pal.Labels.XAxis[variable]; ok {
		return l
	}
	return variable
}

// ReadPlotNames reads one plot name per line, ignoring blank lines.
func ReadPlotNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open plot names: %w", err)
	}
	defer f.Close()

	var names []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		name := strings.TrimSpace(sc.Text())
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("could not read plot names %q: %w", path, err)
	}
	return names, nil
}

// ReadMassDict reads the "plots" section of a model configuration file.
func ReadMassDict(path string) (MassDict, error) {
	var doc struct {
		Plots MassDict `yaml:"plots"`
	}
	if err := readYAML(path, &doc); err != nil {
		return MassDict{}, err
	}
	return doc.Plots, nil
}

// ReadLabels reads the legend and axis labels file.
func ReadLabels(path string) (Labels, error) {
	var labels Labels
	if err := readYAML(path, &labels); err != nil {
		return Labels{}, err
	}
	return labels, nil
}

func readYAML(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("could not decode %q: %w", path, err)
	}
	return nil
}
