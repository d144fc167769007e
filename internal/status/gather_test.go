package status_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"perc/internal/config"
	"perc/internal/probe"
	. "perc/internal/status"

	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	now     time.Time
	mem     float64
	cpu     float64
	disk    DiskUsage
	mixers  map[string]probe.Mixer
	battery probe.Battery
	layout  probe.Layout
	err     error
}

func (f *fakeSource) Now() time.Time { return f.now }

func (f *fakeSource) Memory(context.Context) (float64, error) { return f.mem, f.err }

func (f *fakeSource) CPU(context.Context) (float64, error) { return f.cpu, f.err }

func (f *fakeSource) Disk(context.Context, string) (DiskUsage, error) { return f.disk, f.err }

func (f *fakeSource) Mixer(_ context.Context, control string) (probe.Mixer, error) {
	m, ok := f.mixers[control]
	if !ok {
		return probe.Mixer{}, probe.ErrNoMatch
	}
	return m, f.err
}

func (f *fakeSource) Battery(context.Context) (probe.Battery, error) { return f.battery, f.err }

func (f *fakeSource) Layout(context.Context) (probe.Layout, error) { return f.layout, f.err }

func TestGather(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{
		mem:     85.7,
		cpu:     12.2,
		disk:    DiskUsage{Percent: 91.5, Free: 2_000_000_000},
		battery: probe.Battery{State: probe.StateDischarging, Percent: 55, Hours: "01", Minutes: "10"},
		layout:  probe.Layout{Layout: "us"},
		mixers: map[string]probe.Mixer{
			ControlMaster:    {Percent: 60, On: true},
			ControlHeadphone: {Percent: 0, On: true},
		},
	}

	s, err := GatherMemory(ctx, src, th(config.MetricMemory))
	require.NoError(t, err)
	require.Equal(t, " 85%", s.Value)
	require.Equal(t, ColorCritical, s.LabelColor)

	s, err = GatherCPU(ctx, src, th(config.MetricCPU))
	require.NoError(t, err)
	require.Equal(t, " 12%", s.Value)
	require.Equal(t, ColorNominal, s.LabelColor)

	s, err = GatherDisk(ctx, src, "/", th(config.MetricDisk))
	require.NoError(t, err)
	require.Equal(t, " 91% (2.0 GB)", s.Value)
	require.Equal(t, ColorCritical, s.LabelColor)

	s, err = GatherVolume(ctx, src, th(config.MetricVolume))
	require.NoError(t, err)
	require.Equal(t, DeviceHeadphone, s.Label)
	require.Equal(t, ColorWarning, s.LabelColor)

	s, err = GatherBattery(ctx, src, th(config.MetricBattery))
	require.NoError(t, err)
	require.Equal(t, " 55% (01:10)", s.Value)

	s, err = GatherKeyboard(ctx, src, "us")
	require.NoError(t, err)
	require.Equal(t, "US", s.Label)
}

func TestGatherVolumeWithoutHeadphoneControl(t *testing.T) {
	src := &fakeSource{mixers: map[string]probe.Mixer{ControlMaster: {Percent: 30, On: true}}}

	s, err := GatherVolume(context.Background(), src, th(config.MetricVolume))
	require.NoError(t, err)
	require.Equal(t, DeviceSpeaker, s.Label)
	require.Equal(t, " 30%", s.Value)
}

func TestGatherPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	src := &fakeSource{err: boom, mixers: map[string]probe.Mixer{ControlMaster: {}}}
	ctx := context.Background()

	_, err := GatherMemory(ctx, src, th(config.MetricMemory))
	require.ErrorIs(t, err, boom)
	_, err = GatherVolume(ctx, src, th(config.MetricVolume))
	require.ErrorIs(t, err, boom)
	_, err = GatherBattery(ctx, src, th(config.MetricBattery))
	require.ErrorIs(t, err, boom)
	_, err = GatherKeyboard(ctx, src, "us")
	require.ErrorIs(t, err, boom)
}
