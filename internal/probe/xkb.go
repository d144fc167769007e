package probe

import (
	"bufio"
	"strings"
)

// Layout is the active keyboard layout reported by `setxkbmap -query`.
type Layout struct {
	Layout  string // First configured layout, e.g. "us"
	Variant string // Matching variant, may be empty
}

// ParseXkbLayout parses the output of `setxkbmap -query`.
// When several layouts are configured ("us,fr") the first one is returned.
func ParseXkbLayout(out string) (Layout, error) {
	fields := map[string]string{}
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		fields[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	layouts := fields["layout"]
	if layouts == "" {
		return Layout{}, noMatch("setxkbmap")
	}
	layout, _, _ := strings.Cut(layouts, ",")
	variant, _, _ := strings.Cut(fields["variant"], ",")
	return Layout{Layout: layout, Variant: variant}, nil
}
