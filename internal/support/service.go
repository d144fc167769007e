// Package support drives the local development workflow: it resolves short
// names to databases, infers the application version installed in them,
// assembles the matching server command line and launches it together with
// a browser once the server is accepting connections.
package support

import (
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"perc/internal/config"
	"perc/internal/dump"
	"perc/internal/logger"
	"perc/internal/probe"
	"perc/internal/runner"
)

// Verbs understood by the external support script.
const (
	VerbFetch       = "fetch"
	VerbRestore     = "restore"
	VerbRestoreDump = "restore-dump"
	VerbInfo        = "info"
)

// Service runs the support workflow against one configuration.
type Service struct {
	cfg   *config.Config
	run   runner.Runner
	out   io.Writer
	ready func(ctx context.Context, addr string) error
}

// NewService wires a Service. Command output is written to out.
func NewService(cfg *config.Config, r runner.Runner, out io.Writer) *Service {
	return &Service{cfg: cfg, run: r, out: out, ready: WaitReady}
}

// WithReadiness replaces the probe used to wait for the server.
func (s *Service) WithReadiness(ready func(ctx context.Context, addr string) error) *Service {
	s.ready = ready
	return s
}

// StartOptions select what Start does besides launching the server.
type StartOptions struct {
	LaunchOptions
	Fetch     bool   // Only fetch the dump through the support script
	Restore   bool   // Restore the database through the support script before starting
	As        string // Version token to use instead of querying the database
	Copy      bool   // Copy the command line to the clipboard instead of running it
	NoBrowser bool   // Do not open a browser once the server is up
}

// Target is a database resolved for launching.
type Target struct {
	Database string
	Version  string
	Series   float64
}

// List returns the prefixed databases matching filter, prefix stripped.
func (s *Service) List(ctx context.Context, filter string) ([]string, error) {
	names, err := ListDatabases(ctx, s.run)
	if err != nil {
		return nil, err
	}
	return Filter(names, s.cfg.Support().Prefix, filter), nil
}

// Resolve maps token onto a live database name.
func (s *Service) Resolve(ctx context.Context, token string) (string, error) {
	names, err := ListDatabases(ctx, s.run)
	if err != nil {
		return "", err
	}
	db, err := Resolve(names, s.cfg.Support().Prefix, token)
	if err != nil {
		return "", err
	}
	logger.Debug("[DEBUG] Resolved %s to database %s\n", token, db)
	return db, nil
}

// Target resolves token and determines the version installed in it.
// A non-empty as skips the version query; the database may then not exist
// yet, in which case the server initializes it under the prefixed name.
func (s *Service) Target(ctx context.Context, token, as string) (Target, error) {
	db, err := s.Resolve(ctx, token)
	switch {
	case err == nil:
	case as != "" && errors.Is(err, ErrDatabaseNotFound):
		db = Prefixed(s.cfg.Support().Prefix, token)
		logger.Info("[INFO] Database %s does not exist, initializing it as %s\n", db, as)
	default:
		return Target{}, err
	}

	version := as
	if version == "" {
		if version, err = QueryVersion(ctx, s.run, db); err != nil {
			return Target{}, err
		}
	}

	series, err := Series(s.cfg, version)
	if err != nil {
		return Target{}, err
	}
	logger.Debug("[DEBUG] Database %s runs version %s (series %g)\n", db, version, series)
	return Target{Database: db, Version: version, Series: series}, nil
}

// Script runs the external support script with a verb and its arguments.
func (s *Service) Script(ctx context.Context, verb string, args ...string) error {
	script := s.cfg.Support().Script
	logger.Info("[INFO] %s %s %s\n", script, verb, strings.Join(args, " "))
	if err := s.run.Attach(ctx, script, append([]string{verb}, args...)...); err != nil {
		return errors.Wrapf(err, "support %s failed", verb)
	}
	return nil
}

// Start runs the full launch sequence for token.
//
// The server is started first; the browser is only opened once the server
// port accepts connections. The admin login is then copied to the clipboard
// and Start returns when the server exits.
func (s *Service) Start(ctx context.Context, token string, o StartOptions) error {
	if o.Fetch {
		return s.Script(ctx, VerbFetch, token)
	}
	switch {
	case o.Restore && o.Copy:
		logger.Warn("[WARN] Not restoring %s: the command line is only copied\n", token)
	case o.Restore:
		if err := s.Script(ctx, VerbRestore, token); err != nil {
			return err
		}
	}

	t, err := s.Target(ctx, token, o.As)
	if err != nil {
		return err
	}

	sup := s.cfg.Support()
	cmd := Assemble(sup, t.Version, t.Series, t.Database, o.LaunchOptions)

	if o.Copy {
		if err := runner.CopyToClipboard(ctx, s.run, sup.Clipboard, cmd.String()); err != nil {
			return err
		}
		fmt.Fprintln(s.out, cmd.String())
		return nil
	}

	if o.Shell {
		return s.run.Attach(ctx, cmd.Name, cmd.Args...)
	}

	logger.Info("[INFO] Starting %s (%s) on port %d\n", t.Database, t.Version, o.port(sup))
	proc, err := s.run.Start(ctx, cmd.Name, cmd.Args...)
	if err != nil {
		return err
	}

	if !o.NoBrowser {
		s.openBrowser(ctx, sup, o.port(sup))
	}
	if login, err := s.copyAdmin(ctx, t); err != nil {
		logger.Warn("[WARN] Could not copy admin login: %v\n", err)
	} else {
		logger.Info("[INFO] Admin login %q copied to clipboard\n", login)
	}

	return proc.Wait()
}

func (s *Service) openBrowser(ctx context.Context, sup config.Support, port int) {
	addr := net.JoinHostPort("localhost", strconv.Itoa(port))

	readyCtx, cancel := context.WithTimeout(ctx, sup.ReadyTimeout)
	defer cancel()
	if err := s.ready(readyCtx, addr); err != nil {
		logger.Warn("[WARN] Server not ready after %s, not opening browser: %v\n", sup.ReadyTimeout, err)
		return
	}

	url := "http://" + addr + "/web/login"
	if _, err := s.run.Output(ctx, sup.Browser, url); err != nil {
		logger.Warn("[WARN] Failed to open %s: %v\n", url, err)
	}
}

func (s *Service) copyAdmin(ctx context.Context, t Target) (string, error) {
	login, err := s.adminLogin(ctx, t)
	if err != nil {
		return "", err
	}
	return login, runner.CopyToClipboard(ctx, s.run, s.cfg.Support().Clipboard, login)
}

func (s *Service) adminLogin(ctx context.Context, t Target) (string, error) {
	out, err := psqlQuery(ctx, s.run, t.Database, adminQuery(t.Series))
	if err != nil {
		return "", errors.Wrap(err, "failed to query admin login")
	}
	lines := probe.ParseLines(out)
	if len(lines) == 0 {
		return "", errors.Errorf("no admin user (id %d) in %s", AdminID(t.Series), t.Database)
	}
	return lines[0], nil
}

// Logins prints the logins of all active users of the database behind token.
func (s *Service) Logins(ctx context.Context, token string) error {
	db, err := s.Resolve(ctx, token)
	if err != nil {
		return err
	}
	out, err := psqlQuery(ctx, s.run, db, loginsQuery)
	if err != nil {
		return errors.Wrap(err, "failed to query logins")
	}
	for _, login := range probe.ParseLines(out) {
		fmt.Fprintln(s.out, login)
	}
	return nil
}

// Admin prints the admin login of the database behind token and, when clip
// is set, also copies it to the clipboard.
func (s *Service) Admin(ctx context.Context, token string, clip bool) error {
	t, err := s.Target(ctx, token, "")
	if err != nil {
		return err
	}
	login, err := s.adminLogin(ctx, t)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, login)
	if !clip {
		return nil
	}
	return runner.CopyToClipboard(ctx, s.run, s.cfg.Support().Clipboard, login)
}

// Info prints what perc knows about the database behind token, then hands
// over to the support script's own info verb.
func (s *Service) Info(ctx context.Context, token string) error {
	t, err := s.Target(ctx, token, "")
	if err != nil {
		return err
	}
	sup := s.cfg.Support()
	fmt.Fprintf(s.out, "database:    %s\n", t.Database)
	fmt.Fprintf(s.out, "version:     %s\n", t.Version)
	fmt.Fprintf(s.out, "series:      %g\n", t.Series)
	fmt.Fprintf(s.out, "launcher:    %s\n", Launcher(t.Series))
	fmt.Fprintf(s.out, "interpreter: %s\n", Interpreter(sup, t.Version))
	fmt.Fprintf(s.out, "admin id:    %d\n", AdminID(t.Series))
	return s.Script(ctx, VerbInfo, t.Database)
}

// RestoreDump restores token from a local dump, archive or URL.
// Archives and downloads are unpacked in a temporary directory first.
func (s *Service) RestoreDump(ctx context.Context, token, source string) error {
	file, cleanup, err := dump.Prepare(ctx, source)
	if err != nil {
		return err
	}
	defer cleanup()

	return s.Script(ctx, VerbRestoreDump, token, file)
}
