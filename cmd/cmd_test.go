package cmd

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"perc/internal/probe"
	"perc/internal/runner"
	"perc/internal/status"
	"perc/internal/support"
)

type stubSource struct{}

func (stubSource) Now() time.Time {
	return time.Date(2026, time.October, 15, 9, 5, 0, 0, time.UTC)
}

func (stubSource) Memory(context.Context) (float64, error) { return 85, nil }

func (stubSource) CPU(context.Context) (float64, error) { return 3, nil }

func (stubSource) Disk(context.Context, string) (status.DiskUsage, error) {
	return status.DiskUsage{Percent: 50, Free: 5_000_000_000}, nil
}

func (stubSource) Mixer(_ context.Context, control string) (probe.Mixer, error) {
	if control == status.ControlMaster {
		return probe.Mixer{Percent: 70, On: false}, nil
	}
	return probe.Mixer{}, probe.ErrNoMatch
}

func (stubSource) Battery(context.Context) (probe.Battery, error) {
	return probe.Battery{State: probe.StateDischarging, Percent: 55, Hours: "01", Minutes: "23"}, nil
}

func (stubSource) Layout(context.Context) (probe.Layout, error) {
	return probe.Layout{Layout: "fr"}, nil
}

type stubRunner struct {
	runner.Exec
	outputs map[string]string
}

func (s *stubRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	line := strings.Join(append([]string{name}, args...), " ")
	out, ok := s.outputs[line]
	if !ok {
		return nil, fmt.Errorf("unexpected command %q", line)
	}
	return []byte(out), nil
}

// resetFlags puts every flag of the command tree back to its default, so each
// execution only sees the flags it was given.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Setenv("PERC_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	source = stubSource{}
	run = &stubRunner{outputs: map[string]string{
		"psql -l -t -A": "oe_support_acme|odoo|UTF8|C|C|\noe_support_globex|odoo|UTF8|C|C|\npostgres|postgres|UTF8|C|C|\n",
	}}

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSnippetCommands(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"mem"}, "<span color='#e71d36'>MEM</span><span color='#fdfffc'> 85%</span>\n"},
		{[]string{"cpu"}, "<span color='#2ec4b6'>CPU</span><span color='#fdfffc'>  3%</span>\n"},
		{[]string{"disk"}, "<span color='#2ec4b6'>DSK</span><span color='#fdfffc'> 50% (5.0 GB)</span>\n"},
		{[]string{"volume"}, "<span color='#7c7c7c'>SPEAKER</span> mute\n"},
		{[]string{"battery"}, "<span color='#efc88b'>BAT</span> 55% (01:23)\n"},
		{[]string{"kbd"}, "<span color='#efc88b'>FR</span>\n"},
		{[]string{"time"}, "09:05\n"},
		{[]string{"date", "%d/%m"}, "15/10\n"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := execute(t, append(tt.args, "--render", "pango")...)
			require.NoError(t, err)
			require.Equal(t, tt.want, out)
		})
	}
}

func TestThresholdOverride(t *testing.T) {
	out, err := execute(t, "mem", "--render", "pango", "--warn", "90", "--crit", "95")
	require.NoError(t, err)
	require.Equal(t, "<span color='#2ec4b6'>MEM</span><span color='#fdfffc'> 85%</span>\n", out)
}

func TestFlagsDoNotLeakBetweenRuns(t *testing.T) {
	_, err := execute(t, "mem", "--render", "pango", "--warn", "90", "--crit", "95")
	require.NoError(t, err)

	out, err := execute(t, "mem", "--render", "pango")
	require.NoError(t, err)
	require.Equal(t, "<span color='#e71d36'>MEM</span><span color='#fdfffc'> 85%</span>\n", out)

	_, err = execute(t, "support", "start", "acme", "--fetch", "--restore", "--render", "html")
	require.Error(t, err)
	resetFlags(rootCmd)
	require.Equal(t, renderAuto, renderMode)
	require.False(t, startOpts.Fetch)
	require.False(t, startOpts.Restore)
}

func TestUnknownRenderMode(t *testing.T) {
	_, err := execute(t, "cpu", "--render", "html")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown render mode")
}

func TestHello(t *testing.T) {
	out, err := execute(t, "hello", "--name", "perc")
	require.NoError(t, err)
	require.Equal(t, "Hello perc!\n", out)
}

func TestSupportList(t *testing.T) {
	out, err := execute(t, "support", "list", "--render", "pango")
	require.NoError(t, err)
	require.Equal(t, "acme\nglobex\n", out)

	out, err = execute(t, "support", "list", "glo")
	require.NoError(t, err)
	require.Equal(t, "globex\n", out)
}

func TestSupportStartRejectsConflictingVerbs(t *testing.T) {
	_, err := execute(t, "support", "start", "acme", "--fetch", "--restore")
	require.Error(t, err)
	require.Contains(t, err.Error(), "fetch")
	require.Contains(t, err.Error(), "restore")
}

func TestSupportStartRejectsRestoreWithCopy(t *testing.T) {
	_, err := execute(t, "support", "start", "acme", "--restore", "--copy")
	require.Error(t, err)
	require.Contains(t, err.Error(), "restore")
	require.Contains(t, err.Error(), "copy")
}

func TestExitCode(t *testing.T) {
	require.Equal(t, 0, exitCode(nil))
	require.Equal(t, 0, exitCode(errors.Wrap(support.ErrVersionUnavailable, "oe_support_gone")))
	require.Equal(t, 1, exitCode(support.ErrDatabaseNotFound))
	require.Equal(t, 1, exitCode(errors.New("boom")))
}
