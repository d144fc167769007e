package status

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"

	"perc/internal/probe"
	"perc/internal/runner"
)

// DiskUsage is the usage of one mounted filesystem.
type DiskUsage struct {
	Percent float64
	Free    uint64
}

// Source gathers the raw metrics behind the snippets.
type Source interface {
	Now() time.Time
	Memory(ctx context.Context) (float64, error)
	CPU(ctx context.Context) (float64, error)
	Disk(ctx context.Context, path string) (DiskUsage, error)
	Mixer(ctx context.Context, control string) (probe.Mixer, error)
	Battery(ctx context.Context) (probe.Battery, error)
	Layout(ctx context.Context) (probe.Layout, error)
}

// CPUInterval is the sampling window of the CPU load measurement.
const CPUInterval = time.Second

// System reads metrics from the OS counters and the usual desktop tools.
type System struct {
	run runner.Runner
}

// NewSystem returns a Source backed by gopsutil and the given runner.
func NewSystem(r runner.Runner) *System {
	return &System{run: r}
}

func (s *System) Now() time.Time { return time.Now() }

func (s *System) Memory(ctx context.Context) (float64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to read memory usage")
	}
	return vm.UsedPercent, nil
}

func (s *System) CPU(ctx context.Context) (float64, error) {
	pcts, err := cpu.PercentWithContext(ctx, CPUInterval, false)
	if err != nil {
		return 0, errors.Wrap(err, "failed to read cpu usage")
	}
	if len(pcts) == 0 {
		return 0, errors.New("no cpu usage reported")
	}
	return pcts[0], nil
}

func (s *System) Disk(ctx context.Context, path string) (DiskUsage, error) {
	u, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return DiskUsage{}, errors.Wrapf(err, "failed to read disk usage of %s", path)
	}
	return DiskUsage{Percent: u.UsedPercent, Free: u.Free}, nil
}

func (s *System) Mixer(ctx context.Context, control string) (probe.Mixer, error) {
	out, err := s.run.Output(ctx, "amixer", "get", control)
	if err != nil {
		return probe.Mixer{}, err
	}
	return probe.ParseAmixer(string(out))
}

func (s *System) Battery(ctx context.Context) (probe.Battery, error) {
	out, err := s.run.Output(ctx, "acpi", "-b")
	if err != nil {
		return probe.Battery{}, err
	}
	return probe.ParseAcpi(string(out))
}

func (s *System) Layout(ctx context.Context) (probe.Layout, error) {
	out, err := s.run.Output(ctx, "setxkbmap", "-query")
	if err != nil {
		return probe.Layout{}, err
	}
	return probe.ParseXkbLayout(string(out))
}
