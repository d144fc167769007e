package support

import (
	"context"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/pkg/errors"

	"perc/internal/probe"
	"perc/internal/runner"
)

// ErrDatabaseNotFound is returned when neither the prefixed nor the raw name
// of a requested database exists on the server.
var ErrDatabaseNotFound = errors.New("database does not exist")

// NotFoundError carries the requested token and the closest existing name.
type NotFoundError struct {
	Token      string
	Suggestion string
}

func (e *NotFoundError) Error() string {
	if e.Suggestion == "" {
		return fmt.Sprintf("%s: %s", e.Token, ErrDatabaseNotFound)
	}
	return fmt.Sprintf("%s: %s (did you mean %s?)", e.Token, ErrDatabaseNotFound, e.Suggestion)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrDatabaseNotFound
}

// ListDatabases asks the server for the names of all databases.
func ListDatabases(ctx context.Context, r runner.Runner) ([]string, error) {
	out, err := r.Output(ctx, "psql", "-l", "-t", "-A")
	if err != nil {
		return nil, errors.Wrap(err, "failed to list databases")
	}
	return probe.ParseDatabaseList(string(out)), nil
}

// Resolve maps a short token onto a database name from names.
//
// The prefixed form wins over the raw token. A token already carrying the
// prefix is used as-is, so resolving a resolved name returns it unchanged.
func Resolve(names []string, prefix, token string) (string, error) {
	exists := make(map[string]bool, len(names))
	for _, n := range names {
		exists[n] = true
	}

	if !strings.HasPrefix(token, prefix) && exists[prefix+token] {
		return prefix + token, nil
	}
	if exists[token] {
		return token, nil
	}
	return "", &NotFoundError{Token: token, Suggestion: closest(names, prefix, token)}
}

// Prefixed returns token with prefix prepended, unless it already carries it.
func Prefixed(prefix, token string) string {
	if strings.HasPrefix(token, prefix) {
		return token
	}
	return prefix + token
}

// closest returns the name nearest to token by edit distance, ignoring the
// prefix. Names further away than half the token length are not suggested.
func closest(names []string, prefix, token string) string {
	token = strings.TrimPrefix(token, prefix)
	best, bestDist := "", len(token)/2+1
	for _, n := range names {
		d := levenshtein.ComputeDistance(token, strings.TrimPrefix(n, prefix))
		if d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}

// Filter returns the names carrying prefix, with the prefix stripped, that
// contain the substring filter.
func Filter(names []string, prefix, filter string) []string {
	var out []string
	for _, n := range names {
		short, ok := strings.CutPrefix(n, prefix)
		if !ok || !strings.Contains(short, filter) {
			continue
		}
		out = append(out, short)
	}
	return out
}
