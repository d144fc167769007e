package status_test

import (
	"strings"
	"testing"
	"time"

	"perc/internal/config"
	"perc/internal/probe"
	. "perc/internal/status"

	"github.com/stretchr/testify/require"
)

func th(metric string) config.Thresholds {
	return config.Default().Threshold(metric)
}

func TestSnippetsRenderAsPango(t *testing.T) {
	pango := NewPango(config.Default())

	tests := []struct {
		name    string
		snippet Snippet
		want    string
	}{
		{
			name:    "memory critical",
			snippet: Memory(85, th(config.MetricMemory)),
			want:    "<span color='#e71d36'>MEM</span><span color='#fdfffc'> 85%</span>",
		},
		{
			name:    "memory at warning boundary stays warning",
			snippet: Memory(80, th(config.MetricMemory)),
			want:    "<span color='#efc88b'>MEM</span><span color='#fdfffc'> 80%</span>",
		},
		{
			name:    "cpu nominal",
			snippet: CPU(7, th(config.MetricCPU)),
			want:    "<span color='#2ec4b6'>CPU</span><span color='#fdfffc'>  7%</span>",
		},
		{
			name:    "battery discharging",
			snippet: Battery(probe.Battery{State: probe.StateDischarging, Percent: 55, Hours: "01", Minutes: "23"}, th(config.MetricBattery)),
			want:    "<span color='#efc88b'>BAT</span> 55% (01:23)",
		},
		{
			name:    "battery low",
			snippet: Battery(probe.Battery{State: probe.StateDischarging, Percent: 12, Hours: "00", Minutes: "20"}, th(config.MetricBattery)),
			want:    "<span color='#e71d36'>BAT</span> 12% (00:20)",
		},
		{
			name:    "battery charging is forced green",
			snippet: Battery(probe.Battery{State: "Charging", Percent: 10, Hours: "02", Minutes: "05"}, th(config.MetricBattery)),
			want:    "<span color='#2ec4b6'>BAT</span> 10% (02:05)",
		},
		{
			name:    "battery full without estimate",
			snippet: Battery(probe.Battery{State: "Full", Percent: 100}, th(config.MetricBattery)),
			want:    "<span color='#2ec4b6'>BAT</span>100%",
		},
		{
			name:    "volume muted",
			snippet: Volume(probe.Mixer{Percent: 95, On: false}, false, th(config.MetricVolume)),
			want:    "<span color='#7c7c7c'>SPEAKER</span> mute",
		},
		{
			name:    "volume loud on headphone",
			snippet: Volume(probe.Mixer{Percent: 95, On: true}, true, th(config.MetricVolume)),
			want:    "<span color='#e71d36'>HEADPHONE</span> 95%",
		},
		{
			name:    "disk",
			snippet: Disk(80, 120_000_000_000, th(config.MetricDisk)),
			want:    "<span color='#efc88b'>DSK</span><span color='#fdfffc'> 80% (120 GB)</span>",
		},
		{
			name:    "keyboard home layout",
			snippet: Keyboard(probe.Layout{Layout: "us"}, "us"),
			want:    "<span color='#2ec4b6'>US</span>",
		},
		{
			name:    "keyboard foreign layout",
			snippet: Keyboard(probe.Layout{Layout: "fr", Variant: "bepo"}, "us"),
			want:    "<span color='#efc88b'>FR</span>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, pango.Render(tt.snippet))
		})
	}
}

func TestMutedVolumeOmitsPercentage(t *testing.T) {
	s := Volume(probe.Mixer{Percent: 42, On: false}, true, th(config.MetricVolume))
	require.Equal(t, ColorMuted, s.LabelColor)
	require.NotContains(t, s.Value, "42")
}

func TestTermRender(t *testing.T) {
	out := Term{}.Render(Memory(85, th(config.MetricMemory)))
	require.Contains(t, out, "MEM")
	require.Contains(t, out, " 85%")
	require.Contains(t, out, "\x1b[")

	plain := Term{}.Render(Snippet{Label: "X", LabelColor: "nope", Value: "1"})
	require.Equal(t, "X1", plain)
}

func TestClock(t *testing.T) {
	now := time.Date(2026, time.October, 15, 9, 5, 30, 0, time.UTC)

	require.Equal(t, "09:05", Clock("%H:%M", now))
	require.Equal(t, "2026-10-15", Clock("%Y-%m-%d", now))
	require.True(t, strings.HasPrefix(Clock("%H:%M:%S", now), "09:05:30"))
}
