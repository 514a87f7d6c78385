package styles

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ColorTable maps process names to their plotting color.
type ColorTable map[string]color.Color

// SignalColors are cycled through by AddSignalMasses.
var SignalColors = []string{"#8B008B", "#008a8a", "#8a0022", "#22008a", "#8a8a00"}

// NewColorTable returns the colors of the analysis processes.
func NewColorTable() ColorTable {
	hex := func(s string) color.Color {
		c, err := ParseColor(s)
		if err != nil {
			panic(err)
		}
		return c
	}
	rgb := func(r, g, b uint8) color.Color {
		return color.NRGBA{R: r, G: g, B: b, A: 255}
	}

	return ColorTable{
		"data":        rgb(0, 0, 0),
		"ggH":         hex("#fed766"),
		"qqH":         hex("#2ab7ca"),
		"ggH125":      hex("#BF2229"),
		"qqH125":      hex("#00A88F"),
		"HTT":         hex("#00A88F"),
		"VH":          hex("#001EFF"),
		"WH":          hex("#001EFF"),
		"ZH":          hex("#001EFF"),
		"ttH":         hex("#FF00FF"),
		"HWW":         hex("#FF8C00"),
		"ggH_hww":     hex("#FF8C00"),
		"qqH_hww":     hex("#FF8C00"),
		"dummy":       rgb(254, 74, 73),
		"inclusive":   rgb(254, 74, 73),
		"ZTT":         rgb(248, 206, 104),
		"EMB":         rgb(248, 206, 104),
		"ZLL":         rgb(100, 192, 232),
		"ZL":          rgb(100, 192, 232),
		"ZJ":          hex("#64DE6A"),
		"TT":          rgb(155, 152, 204),
		"TTT":         rgb(155, 152, 204),
		"TTL":         rgb(155, 152, 204),
		"TTJ":         rgb(215, 130, 204),
		"W":           rgb(222, 90, 106),
		"WT":          rgb(222, 90, 106),
		"WL":          rgb(222, 150, 80),
		"VV":          hex("#6F2D35"),
		"VVT":         hex("#6F2D35"),
		"VVJ":         hex("#c38a91"),
		"VVL":         hex("#6F2D35"),
		"ST":          hex("#d0f0c1"),
		"STT":         hex("#d0f0c1"),
		"STL":         hex("#d0f0c1"),
		"QCD":         rgb(250, 202, 255),
		"QCDEMB":      rgb(250, 202, 255),
		"EWK":         hex("#E1F5A9"),
		"EWKT":        hex("#E1F5A9"),
		"EWKL":        hex("#E1F5A9"),
		"EWKJ":        hex("#E1F5A9"),
		"EWKZ":        hex("#E1F5A9"),
		"jetFakes":    rgb(192, 232, 100),
		"jetFakesW":   rgb(222, 90, 106),
		"jetFakesQCD": rgb(250, 202, 255),
		"jetFakesTT":  rgb(155, 152, 204),
		"jetFakesEMB": rgb(192, 232, 100),
		"jetFakesCMB": rgb(250, 202, 255),
		"TotalBkg":    rgb(211, 211, 211),
		"REST":        hex("#B0C4DE"),
		"unc":         Transparent(RootColor(12), 0.4),
	}
}

// AddPlotNames gives every plot name its own color, ramping from red
// towards blue and green on alternating entries. Lists starting with "data"
// are left alone.
func (ct ColorTable) AddPlotNames(names []string) {
	if len(names) == 0 || names[0] == "data" {
		return
	}

	n := float64(len(names))
	for i, name := range names {
		frac := float64(i+1) / n
		c := color.NRGBA{
			R: uint8(int(255.0 - 255.0*frac)),
			A: 255,
		}
		if (i+1)%2 == 1 {
			c.B = uint8(int(255.0 * frac))
		} else {
			c.G = uint8(int(255.0 * frac))
			c.B = 20
		}
		ct[name] = c
	}
}

// AddSignalMasses assigns the signal colors cyclically to every
// NMSSM_{heavy}_125_{light} mass point of m. Points where the light scalar
// plus the 125 GeV Higgs boson do not fit below the heavy mass are skipped.
func (ct ColorTable) AddSignalMasses(m MassDict) {
	next := 0
	for _, heavy := range m.HeavyMass {
		lights := m.LightMassFine
		if heavy > 1001 {
			lights = m.LightMassCoarse
		}
		for _, light := range lights {
			if light+125 >= heavy {
				continue
			}
			c, err := ParseColor(SignalColors[next%len(SignalColors)])
			if err != nil {
				panic(err)
			}
			ct[SignalName(heavy, light)] = c
			next++
		}
	}
}

// SignalName returns the process name of an NMSSM mass point.
func SignalName(heavy, light float64) string {
	return fmt.Sprintf("NMSSM_%s_125_%s", formatMass(heavy), formatMass(light))
}

func formatMass(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseColor parses a "#rrggbb" color.
func ParseColor(s string) (color.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return nil, fmt.Errorf("styles: invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("styles: invalid color %q: %w", s, err)
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, nil
}

// Transparent returns c with the given opacity in [0, 1].
func Transparent(c color.Color, alpha float64) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(alpha*255 + 0.5)
	return n
}
