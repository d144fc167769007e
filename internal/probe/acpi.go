package probe

import (
	"regexp"
	"strconv"
)

// StateDischarging is the acpi state of a battery running the machine.
const StateDischarging = "Discharging"

// Battery is the first battery reported by `acpi -b`.
type Battery struct {
	State   string // Discharging, Charging, Full, Unknown, ...
	Percent int
	Hours   string // Two digits, empty when acpi reports no estimate
	Minutes string // Two digits, empty when acpi reports no estimate
}

// HasTime reports whether acpi gave a remaining or until-charged estimate.
func (b Battery) HasTime() bool {
	return b.Hours != ""
}

var acpiPattern = regexp.MustCompile(
	`Battery \d+: (?P<state>[\w ]+?), (?P<percent>\d+)%(?:, (?P<hour>\d\d):(?P<min>\d\d):\d\d)?`,
)

// ParseAcpi parses the output of `acpi -b`.
// Only the first battery line is considered.
func ParseAcpi(out string) (Battery, error) {
	m := acpiPattern.FindStringSubmatch(out)
	if m == nil {
		return Battery{}, noMatch("acpi")
	}

	pct, err := strconv.Atoi(m[acpiPattern.SubexpIndex("percent")])
	if err != nil {
		return Battery{}, noMatch("acpi")
	}
	return Battery{
		State:   m[acpiPattern.SubexpIndex("state")],
		Percent: pct,
		Hours:   m[acpiPattern.SubexpIndex("hour")],
		Minutes: m[acpiPattern.SubexpIndex("min")],
	}, nil
}
