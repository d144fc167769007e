package support

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"perc/internal/config"
)

// LaunchOptions are the switches shaping the server command line.
type LaunchOptions struct {
	Update      bool // Pass the migration flag updating every module
	DebugAttach bool // Run under debugpy and wait for a debugger
	Quiet       bool // Only log warnings and errors
	Shell       bool // Start an interactive shell instead of the HTTP server
	Port        int  // HTTP port; zero keeps the configured default
}

// Command is an executable with its argument list.
type Command struct {
	Name string
	Args []string
}

// String renders the command for display or pasting into a shell.
// Arguments that a shell would interpret are single-quoted.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, shellQuote(c.Name))
	for _, a := range c.Args {
		parts = append(parts, shellQuote(a))
	}
	return strings.Join(parts, " ")
}

var shellSafe = regexp.MustCompile(`^[A-Za-z0-9_@%+=:,./-]+$`)

func shellQuote(s string) string {
	if shellSafe.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Checkout returns the source directory of a version token.
func Checkout(s config.Support, token string) string {
	return filepath.Join(s.SourceRoot, token)
}

// Interpreter returns the python interpreter matching a version token.
func Interpreter(s config.Support, token string) string {
	return filepath.Join(s.VenvRoot, token, "bin", "python")
}

// AddonsPath joins the configured addons directories, resolving relative
// entries against the checkout of token.
func AddonsPath(s config.Support, token string) string {
	dirs := make([]string, 0, len(s.Addons))
	for _, a := range s.Addons {
		if !filepath.IsAbs(a) {
			a = filepath.Join(Checkout(s, token), a)
		}
		dirs = append(dirs, a)
	}
	return strings.Join(dirs, ",")
}

// port returns the effective HTTP port.
func (o LaunchOptions) port(s config.Support) int {
	if o.Port > 0 {
		return o.Port
	}
	return s.Port
}

// Assemble builds the server command line for db running version token.
func Assemble(s config.Support, token string, series float64, db string, o LaunchOptions) Command {
	var args []string
	if o.DebugAttach {
		args = append(args, "-m", "debugpy", "--listen", strconv.Itoa(s.DebugPort), "--wait-for-client")
	}

	args = append(args, filepath.Join(Checkout(s, token), Launcher(series)))
	if o.Shell {
		args = append(args, "shell")
	}
	args = append(args, "--addons-path="+AddonsPath(s, token))
	if !o.Shell {
		args = append(args,
			portFlag(series)+"="+strconv.Itoa(o.port(s)),
			"--max-cron-threads="+strconv.Itoa(s.CronThreads),
		)
	}
	args = append(args, "-d", db, "--db-filter=^"+regexp.QuoteMeta(db)+"$")
	if o.Update {
		args = append(args, "-u", "all")
	}
	if o.Quiet {
		args = append(args, "--log-level=warn")
	}

	return Command{Name: Interpreter(s, token), Args: args}
}
