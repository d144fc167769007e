package status

import "perc/internal/config"

// Band is the tier a metric value falls into.
type Band int

const (
	Nominal Band = iota
	Warning
	Critical
)

// Palette names used for each band, plus the muted and value colors.
const (
	ColorNominal  = "green"
	ColorWarning  = "gold"
	ColorCritical = "red"
	ColorMuted    = "grey"
	ColorValue    = "white"
)

// Color returns the palette name of the band.
func (b Band) Color() string {
	switch b {
	case Critical:
		return ColorCritical
	case Warning:
		return ColorWarning
	default:
		return ColorNominal
	}
}

func (b Band) String() string {
	switch b {
	case Critical:
		return "critical"
	case Warning:
		return "warning"
	default:
		return "nominal"
	}
}

// Classify bands a value where higher is worse:
// Critical if p > Crit, Warning if Warn < p <= Crit, Nominal otherwise.
func Classify(p int, t config.Thresholds) Band {
	switch {
	case p > t.Crit:
		return Critical
	case p > t.Warn:
		return Warning
	default:
		return Nominal
	}
}

// ClassifyInverse bands a value where lower is worse (battery charge):
// Nominal if p > Crit, Warning if Warn < p <= Crit, Critical otherwise.
func ClassifyInverse(p int, t config.Thresholds) Band {
	switch {
	case p > t.Crit:
		return Nominal
	case p > t.Warn:
		return Warning
	default:
		return Critical
	}
}
