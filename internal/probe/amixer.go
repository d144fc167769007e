package probe

import (
	"regexp"
	"strconv"
)

// Mixer is the state of one amixer control.
type Mixer struct {
	Percent int  // Playback volume, 0-100
	On      bool // False when the control is muted
}

var (
	monoPattern  = regexp.MustCompile(`Mono: [A-Za-z0-9\s]*\[(\d+)%\].*\[(on|off)\]`)
	frontPattern = regexp.MustCompile(`Front Left: [A-Za-z0-9\s]*\[(\d+)%\].*\[(on|off)\]`)
)

// ParseAmixer parses the output of `amixer get <control>`.
// Mono controls (Master) are tried first, then the front-left channel
// reported by stereo controls (Headphone).
func ParseAmixer(out string) (Mixer, error) {
	m := monoPattern.FindStringSubmatch(out)
	if m == nil {
		m = frontPattern.FindStringSubmatch(out)
	}
	if m == nil {
		return Mixer{}, noMatch("amixer")
	}

	pct, err := strconv.Atoi(m[1])
	if err != nil {
		return Mixer{}, noMatch("amixer")
	}
	return Mixer{Percent: pct, On: m[2] == "on"}, nil
}
