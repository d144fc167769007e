// Package runner executes external programs. Every invocation takes an
// explicit argument list; nothing is ever passed through a shell.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"

	"perc/internal/logger"
)

// Runner runs external programs on behalf of the commands.
// Tests substitute a fake; production code uses Exec.
type Runner interface {
	// Output runs the program to completion and returns its stdout.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// Pipe runs the program to completion with stdin fed from input.
	Pipe(ctx context.Context, input string, name string, args ...string) error
	// Attach runs the program to completion attached to the terminal.
	Attach(ctx context.Context, name string, args ...string) error
	// Start launches the program without waiting for it.
	Start(ctx context.Context, name string, args ...string) (Process, error)
}

// Process is a started child process.
type Process interface {
	Wait() error
	Kill() error
}

// ExitError reports a program that ran but exited unsuccessfully.
type ExitError struct {
	Command string // Command line, space-joined for display only
	Code    int    // Exit status
	Stderr  string // Captured standard error, trimmed
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s: exit status %d", e.Command, e.Code)
	}
	return fmt.Sprintf("%s: exit status %d: %s", e.Command, e.Code, e.Stderr)
}

// IsExitError reports whether err wraps an *ExitError.
func IsExitError(err error) bool {
	var ee *ExitError
	return errors.As(err, &ee)
}

// Exec is the Runner backed by os/exec.
type Exec struct{}

// New returns the os/exec backed runner.
func New() *Exec { return &Exec{} }

// Output runs name with args and returns its standard output.
func (Exec) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	logger.Debug("[DEBUG] Running command: %s\n", strings.Join(cmd.Args, " "))

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return out, wrap(cmd, err, stderr.String())
	}
	return out, nil
}

// Pipe runs name with args, feeding input on stdin.
func (Exec) Pipe(ctx context.Context, input string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	logger.Debug("[DEBUG] Running command: %s (stdin %d bytes)\n", strings.Join(cmd.Args, " "), len(input))

	var stderr bytes.Buffer
	cmd.Stdin = strings.NewReader(input)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return wrap(cmd, err, stderr.String())
	}
	return nil
}

// Attach runs name with args using the current process' standard streams.
func (Exec) Attach(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	logger.Debug("[DEBUG] Running command: %s\n", strings.Join(cmd.Args, " "))

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return wrap(cmd, err, "")
	}
	return nil
}

// Start launches name with args. Its output goes to the current stderr so
// the caller's stdout stays clean.
func (Exec) Start(ctx context.Context, name string, args ...string) (Process, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	logger.Debug("[DEBUG] Starting command: %s\n", strings.Join(cmd.Args, " "))

	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, "failed to start %s", name)
	}
	return &process{cmd: cmd}, nil
}

type process struct {
	cmd *exec.Cmd
}

func (p *process) Wait() error {
	if err := p.cmd.Wait(); err != nil {
		return wrap(p.cmd, err, "")
	}
	return nil
}

func (p *process) Kill() error {
	if p.cmd.Process == nil {
		return nil
	}
	return p.cmd.Process.Kill()
}

func wrap(cmd *exec.Cmd, err error, stderr string) error {
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return &ExitError{
			Command: strings.Join(cmd.Args, " "),
			Code:    ee.ExitCode(),
			Stderr:  strings.TrimSpace(stderr),
		}
	}
	return errors.Wrapf(err, "failed to run %s", cmd.Path)
}

// CopyToClipboard feeds text to the clipboard program described by argv.
func CopyToClipboard(ctx context.Context, r Runner, argv []string, text string) error {
	if len(argv) == 0 {
		return errors.New("no clipboard program configured")
	}
	if err := r.Pipe(ctx, text, argv[0], argv[1:]...); err != nil {
		return errors.Wrap(err, "failed to copy to clipboard")
	}
	return nil
}
