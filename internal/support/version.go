package support

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"perc/internal/probe"
	"perc/internal/runner"
)

var (
	// ErrVersionUnavailable is returned when the version query could not run
	// against the database, typically because it does not exist.
	ErrVersionUnavailable = errors.New("version unavailable")

	// ErrUnknownVersion is returned for version tokens with no known series.
	ErrUnknownVersion = errors.New("unknown version")
)

const versionQuery = "SELECT latest_version FROM ir_module_module WHERE name = 'base'"

// Series cut-offs selecting launcher script, port flag and admin user id.
const (
	launcherCutoff = 10
	portFlagCutoff = 11
	adminIDCutoff  = 12
)

// SeriesTable resolves version tokens to their numeric series.
type SeriesTable interface {
	Series(token string) (float64, bool)
}

// psqlQuery runs a single read-only query and returns the raw tuples-only output.
func psqlQuery(ctx context.Context, r runner.Runner, db, query string) (string, error) {
	out, err := r.Output(ctx, "psql", "-d", db, "-t", "-A", "-c", query)
	return string(out), err
}

// QueryVersion reads the installed base module version of db and normalizes it.
func QueryVersion(ctx context.Context, r runner.Runner, db string) (string, error) {
	out, err := psqlQuery(ctx, r, db, versionQuery)
	if err != nil {
		if runner.IsExitError(err) {
			return "", errors.Wrapf(ErrVersionUnavailable, "%s: %v", db, err)
		}
		return "", errors.Wrap(err, "failed to query version")
	}
	return probe.ParseVersion(out)
}

// Series returns the numeric series of token: the table entry when present,
// otherwise the number following an optional "saas-" marker.
func Series(table SeriesTable, token string) (float64, error) {
	if s, ok := table.Series(token); ok {
		return s, nil
	}
	s, err := strconv.ParseFloat(strings.TrimPrefix(token, "saas-"), 64)
	if err != nil {
		return 0, errors.Wrapf(ErrUnknownVersion, "%q", token)
	}
	return s, nil
}

// Launcher returns the server script name for a series.
func Launcher(series float64) string {
	if series < launcherCutoff {
		return "openerp-server"
	}
	return "odoo-bin"
}

// AdminID returns the database id of the administrator user for a series.
func AdminID(series float64) int {
	if series < adminIDCutoff {
		return 1
	}
	return 2
}

func portFlag(series float64) string {
	if series < portFlagCutoff {
		return "--xmlrpc-port"
	}
	return "--http-port"
}

func adminQuery(series float64) string {
	return fmt.Sprintf("SELECT login FROM res_users WHERE id = %d", AdminID(series))
}

const loginsQuery = "SELECT login FROM res_users WHERE active ORDER BY login"
