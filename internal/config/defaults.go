package config

import "time"

// Metric names used as keys of the thresholds table.
const (
	MetricMemory  = "mem"
	MetricCPU     = "cpu"
	MetricVolume  = "volume"
	MetricBattery = "battery"
	MetricDisk    = "disk"
)

// defaults returns a freshly allocated configuration holding the built-in values.
func defaults() fileConfig {
	return fileConfig{
		Palette: map[string]string{
			"black":  "#011627",
			"blue":   "#05668d",
			"white":  "#fdfffc",
			"green":  "#2ec4b6",
			"red":    "#e71d36",
			"yellow": "#ff9f1c",
			"grey":   "#7c7c7c",
			"gold":   "#efc88b",
		},
		Thresholds: map[string]Thresholds{
			MetricMemory:  {Warn: 40, Crit: 80},
			MetricCPU:     {Warn: 40, Crit: 80},
			MetricVolume:  {Warn: 50, Crit: 90},
			MetricBattery: {Warn: 50, Crit: 80},
			MetricDisk:    {Warn: 75, Crit: 90},
		},
		Versions: map[string]float64{
			"7.0":       7,
			"8.0":       8,
			"9.0":       9,
			"saas-6":    6.5,
			"saas-11":   10.5,
			"10.0":      10,
			"saas-11.3": 11.3,
			"11.0":      11,
			"saas-12.3": 12.3,
			"12.0":      12,
			"13.0":      13,
			"14.0":      14,
			"15.0":      15,
			"16.0":      16,
			"17.0":      17,
		},
		Support: Support{
			Prefix:       "oe_support_",
			Script:       "oe-support",
			SourceRoot:   "~/src",
			VenvRoot:     "~/.venvs",
			Addons:       []string{"enterprise", "addons"},
			Port:         8069,
			CronThreads:  0,
			DebugPort:    5678,
			ReadyTimeout: 30 * time.Second,
			Browser:      "xdg-open",
			Clipboard:    []string{"xclip", "-selection", "clipboard"},
		},
		Keyboard:  Keyboard{Home: "us"},
		Wallpaper: Wallpaper{Dir: "~/Pictures/wallpapers", Tool: "betterlockscreen"},
		Disk:      Disk{Path: "/"},
	}
}
