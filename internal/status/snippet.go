// Package status builds the one-line status-bar snippets.
//
// Gathering a metric (Source), turning it into a Snippet (the builders in this
// file) and rendering the Snippet as markup (Renderer) are separate steps, so
// the builders are pure functions of their inputs.
package status

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ncruces/go-strftime"

	"perc/internal/config"
	"perc/internal/probe"
)

// Snippet is one colored label followed by a value.
type Snippet struct {
	Label      string // Text of the colored label, e.g. "MEM"
	LabelColor string // Palette name of the label color
	Value      string // Formatted value, may be empty
	ValueColor string // Palette name of the value color, empty for the default color
}

// Device labels of the volume snippet.
const (
	DeviceHeadphone = "HEADPHONE"
	DeviceSpeaker   = "SPEAKER"
)

func percent(p int) string {
	return fmt.Sprintf("%3d%%", p)
}

// Memory builds the memory load snippet.
func Memory(p int, t config.Thresholds) Snippet {
	return Snippet{Label: "MEM", LabelColor: Classify(p, t).Color(), Value: percent(p), ValueColor: ColorValue}
}

// CPU builds the processor load snippet.
func CPU(p int, t config.Thresholds) Snippet {
	return Snippet{Label: "CPU", LabelColor: Classify(p, t).Color(), Value: percent(p), ValueColor: ColorValue}
}

// Disk builds the disk usage snippet; free is in bytes.
func Disk(p int, free uint64, t config.Thresholds) Snippet {
	return Snippet{
		Label:      "DSK",
		LabelColor: Classify(p, t).Color(),
		Value:      fmt.Sprintf("%s (%s)", percent(p), humanize.Bytes(free)),
		ValueColor: ColorValue,
	}
}

// Volume builds the audio snippet. The label names the active output device;
// a muted master drops the percentage and uses the muted color.
func Volume(master probe.Mixer, headphone bool, t config.Thresholds) Snippet {
	device := DeviceSpeaker
	if headphone {
		device = DeviceHeadphone
	}
	if !master.On {
		return Snippet{Label: device, LabelColor: ColorMuted, Value: " mute"}
	}
	return Snippet{Label: device, LabelColor: Classify(master.Percent, t).Color(), Value: percent(master.Percent)}
}

// Battery builds the battery snippet. Charge is banded with low being bad;
// any state other than discharging is shown in the nominal color.
func Battery(b probe.Battery, t config.Thresholds) Snippet {
	color := ClassifyInverse(b.Percent, t).Color()
	if b.State != probe.StateDischarging {
		color = ColorNominal
	}

	value := percent(b.Percent)
	if b.HasTime() {
		value += fmt.Sprintf(" (%s:%s)", b.Hours, b.Minutes)
	}
	return Snippet{Label: "BAT", LabelColor: color, Value: value}
}

// Keyboard builds the layout snippet; the home layout is nominal, any other warns.
func Keyboard(l probe.Layout, home string) Snippet {
	color := ColorNominal
	if !strings.EqualFold(l.Layout, home) {
		color = ColorWarning
	}
	return Snippet{Label: strings.ToUpper(l.Layout), LabelColor: color}
}

// Clock formats t with a strftime layout such as "%H:%M".
func Clock(layout string, t time.Time) string {
	return strftime.Format(layout, t)
}
