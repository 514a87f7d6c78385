package shapes

import "fmt"

// SUSYggHMasses are the mass points of the generated MSSM gluon-fusion
// signal templates.
var SUSYggHMasses = []int{
	80, 90, 100, 110, 120, 130, 140, 160, 180, 200, 250, 300, 350, 400, 450,
	500, 600, 700, 800, 900, 1000, 1200, 1400, 1500, 1600, 1800, 2000, 2300,
	2600, 2900, 3200,
}

var (
	susyBosons        = []string{"A", "H", "h"}
	susyContributions = []string{"t", "b", "i"}
)

// DatasetMap translates a process name into the dataset prefix of the
// histogram key.
var DatasetMap = map[string]string{
	"data":        "data",
	"ZTT":         "DY",
	"ZL":          "DY",
	"ZJ":          "DY",
	"TTT":         "TT",
	"TTL":         "TT",
	"TTJ":         "TT",
	"VVT":         "VV",
	"VVL":         "VV",
	"VVJ":         "VV",
	"W":           "W",
	"EMB":         "EMB",
	"QCDEMB":      "QCD",
	"QCD":         "QCDMC",
	"jetFakesEMB": "jetFakes",
	"jetFakes":    "jetFakesMC",
	"ggH125":      "ggH",
	"qqH125":      "qqH",
	"wFakes":      "wFakes",
}

// ProcessMap translates a process name into the process segment of the
// histogram key.
var ProcessMap = map[string]string{
	"data":        "data",
	"ZTT":         "DY-ZTT",
	"ZL":          "DY-ZL",
	"ZJ":          "DY-ZJ",
	"TTT":         "TT-TTT",
	"TTL":         "TT-TTL",
	"TTJ":         "TT-TTJ",
	"VVT":         "VV-VVT",
	"VVL":         "VV-VVL",
	"VVJ":         "VV-VVJ",
	"W":           "W",
	"EMB":         "Embedded",
	"QCDEMB":      "QCD",
	"QCD":         "QCDMC",
	"jetFakesEMB": "jetFakes",
	"jetFakes":    "jetFakesMC",
	"ggH125":      "ggH125",
	"qqH125":      "qqH125",
	"wFakes":      "wFakes",
}

func init() {
	for _, boson := range susyBosons {
		for _, mass := range SUSYggHMasses {
			for _, contrib := range susyContributions {
				name := fmt.Sprintf("gg%s_%s_%d", boson, contrib, mass)
				dataset := fmt.Sprintf("susyggH_%d", mass)
				process := fmt.Sprintf("SUSYggH-gg%s_%s", boson, contrib)

				DatasetMap[name] = dataset
				ProcessMap[name] = process

				DatasetMap[name+"_fraction"] = dataset
				ProcessMap[name+"_fraction"] = fmt.Sprintf("%s-gg%s_%s_fraction", process, boson, contrib)
			}
		}
	}
}

// IsKnown reports whether process has an entry in both mapping tables.
func IsKnown(process string) bool {
	_, okD := DatasetMap[process]
	_, okP := ProcessMap[process]
	return okD && okP
}
