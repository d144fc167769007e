// Package probe turns the text output of external tools into typed values.
//
// There is one parser per tool. Each parser is a pure function over the raw
// output and fails with an error wrapping ErrNoMatch when the expected
// pattern is absent, so a change in a tool's output format stays contained
// in a single function here.
package probe

import (
	"github.com/pkg/errors"
)

// ErrNoMatch is returned when a tool's output does not contain the expected pattern.
var ErrNoMatch = errors.New("unexpected tool output")

func noMatch(tool string) error {
	return errors.Wrapf(ErrNoMatch, "parse %s", tool)
}
