package config_test

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	. "perc/internal/config"

	"github.com/stretchr/testify/require"
)

//go:embed testdata/perc.yaml
var testConfigYAML string

func TestLoadConfig(t *testing.T) {
	t.Run("overrides", func(t *testing.T) {
		cfg, err := LoadConfig(strings.NewReader(testConfigYAML))
		require.NoError(t, err)

		require.Equal(t, "#ff0000", cfg.Color("red"))
		require.Equal(t, "#efc88b", cfg.Color("gold"))
		require.Equal(t, Thresholds{Warn: 30, Crit: 70}, cfg.Threshold(MetricMemory))
		require.Equal(t, Thresholds{Warn: 40, Crit: 80}, cfg.Threshold(MetricCPU))

		series, ok := cfg.Series("18.0")
		require.True(t, ok)
		require.Equal(t, 18.0, series)
		series, ok = cfg.Series("saas-11.3")
		require.True(t, ok)
		require.Equal(t, 11.3, series)

		s := cfg.Support()
		require.Equal(t, "sup_", s.Prefix)
		require.Equal(t, 8070, s.Port)
		require.Equal(t, 5*time.Second, s.ReadyTimeout)
		require.Equal(t, []string{"/opt/addons", "addons"}, s.Addons)
		require.Equal(t, "oe-support", s.Script)
		require.Equal(t, "fr", cfg.Keyboard().Home)
	})

	t.Run("empty document yields defaults", func(t *testing.T) {
		cfg, err := LoadConfig(strings.NewReader(""))
		require.NoError(t, err)
		require.Equal(t, Default().Support(), cfg.Support())
		require.Equal(t, "us", cfg.Keyboard().Home)
		require.Equal(t, "/", cfg.Disk().Path)
	})

	t.Run("partial threshold keeps the other bound", func(t *testing.T) {
		cfg, err := LoadConfig(strings.NewReader("thresholds:\n  mem:\n    warn: 50\n  disk:\n    crit: 95\n  swap:\n    warn: 10\n    crit: 20\n"))
		require.NoError(t, err)
		require.Equal(t, Thresholds{Warn: 50, Crit: 80}, cfg.Threshold(MetricMemory))
		require.Equal(t, Thresholds{Warn: 75, Crit: 95}, cfg.Threshold(MetricDisk))
		require.Equal(t, Thresholds{Warn: 40, Crit: 80}, cfg.Threshold(MetricCPU))
		require.Equal(t, Thresholds{Warn: 10, Crit: 20}, cfg.Threshold("swap"))
	})

	t.Run("invalid thresholds", func(t *testing.T) {
		_, err := LoadConfig(strings.NewReader("thresholds:\n  mem: high\n"))
		require.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		cfg, err := LoadConfig(strings.NewReader("palette: ["))
		require.Error(t, err)
		require.Nil(t, cfg)
		require.Contains(t, err.Error(), "failed to unmarshal config")
	})
}

func TestLoadConfigFile(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		cfg, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		require.Equal(t, "#e71d36", cfg.Color("red"))
	})

	t.Run("existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "perc.yaml")
		require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0o644))

		cfg, err := LoadConfigFile(path)
		require.NoError(t, err)
		require.Equal(t, "fr", cfg.Keyboard().Home)
	})
}

func TestConfigIsImmutable(t *testing.T) {
	cfg := Default()

	s := cfg.Support()
	s.Addons[0] = "mutated"
	s.Clipboard = append(s.Clipboard[:0], "cat")

	require.Equal(t, []string{"enterprise", "addons"}, cfg.Support().Addons)
	require.Equal(t, "xclip", cfg.Support().Clipboard[0])
}

func TestColorFallsBackToLiteral(t *testing.T) {
	require.Equal(t, "#123456", Default().Color("#123456"))
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	require.Equal(t, "/home/tester/src", ExpandHome("~/src"))
	require.Equal(t, "/home/tester", ExpandHome("~"))
	require.Equal(t, "/abs/path", ExpandHome("/abs/path"))
	require.Equal(t, "~user/x", ExpandHome("~user/x"))
}

func TestDefaultPath(t *testing.T) {
	t.Setenv(EnvConfig, "/tmp/custom.yaml")
	require.Equal(t, "/tmp/custom.yaml", DefaultPath())
}
