package probe

import (
	"regexp"
	"strings"
)

// ParseDatabaseList parses `psql -l -t -A` output (pipe separated) and
// returns the database names in the order psql listed them.
// Continuation lines of the access-privileges column are skipped.
func ParseDatabaseList(out string) []string {
	var names []string
	for _, line := range strings.Split(out, "\n") {
		name, _, ok := strings.Cut(line, "|")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" || strings.Contains(name, "=") {
			continue
		}
		names = append(names, name)
	}
	return names
}

// versionPattern extracts "<major>.<minor>" with an optional saas marker.
var versionPattern = regexp.MustCompile(`^\s*((?:saas~)?\d+\.\d+)`)

// legacySaasPattern matches the older "<major>.saas~<n>.<build>" form, where
// only the saas number identifies the release.
var legacySaasPattern = regexp.MustCompile(`^\s*\d+\.saas~(\d+)`)

// ParseVersion normalizes a raw application version string into a version
// token: the internal "~" separator becomes "-" and build suffixes are
// dropped ("saas~11.3.1.3" -> "saas-11.3", "9.0.1.3" -> "9.0",
// "8.saas~6.1.3" -> "saas-6").
func ParseVersion(raw string) (string, error) {
	if m := legacySaasPattern.FindStringSubmatch(raw); m != nil {
		return "saas-" + m[1], nil
	}
	m := versionPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", noMatch("version")
	}
	return strings.ReplaceAll(m[1], "~", "-"), nil
}

// ParseLines splits single-column psql output into trimmed non-empty lines.
func ParseLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
