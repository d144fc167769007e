package config

import (
	"time"

	"gopkg.in/yaml.v3"
)

// Thresholds holds the two boundaries of a three-tier color band.
// A value strictly above Crit is critical, strictly above Warn is a warning,
// anything else is nominal. Battery inverts the meaning (low is bad).
type Thresholds struct {
	Warn int `yaml:"warn"` // Lower boundary, exclusive
	Crit int `yaml:"crit"` // Upper boundary, exclusive
}

// Support describes the local development workflow: where application
// sources and interpreters live and how the server is launched.
type Support struct {
	Prefix       string        `yaml:"prefix"`        // Conventional database name prefix, e.g. "oe_support_"
	Script       string        `yaml:"script"`        // External support launcher script invoked with verbs
	SourceRoot   string        `yaml:"source_root"`   // Directory holding one checkout per version token
	VenvRoot     string        `yaml:"venv_root"`     // Directory holding one virtualenv per version token
	Addons       []string      `yaml:"addons"`        // Addons directories, relative to the checkout unless absolute
	Port         int           `yaml:"port"`          // Default HTTP port of the server
	CronThreads  int           `yaml:"cron_threads"`  // Value passed as --max-cron-threads
	DebugPort    int           `yaml:"debug_port"`    // debugpy listen port for --debug-attach
	ReadyTimeout time.Duration `yaml:"ready_timeout"` // How long to wait for the server port before skipping the browser
	Browser      string        `yaml:"browser"`       // Program used to open URLs
	Clipboard    []string      `yaml:"clipboard"`     // Program and arguments reading the clipboard content on stdin
}

// Keyboard configures the keyboard layout snippet.
type Keyboard struct {
	Home string `yaml:"home"` // Layout shown in the nominal color
}

// Wallpaper configures the lock-screen wallpaper command.
type Wallpaper struct {
	Dir  string `yaml:"dir"`  // Directory scanned for images
	Tool string `yaml:"tool"` // Lock-screen tool, invoked as "<tool> -u <image>"
}

// Disk configures the disk usage snippet.
type Disk struct {
	Path string `yaml:"path"` // Mount point to report on
}

// fileConfig mirrors the YAML layout of the configuration file.
// It is only used while loading; the rest of the program sees *Config.
type fileConfig struct {
	Palette    map[string]string  `yaml:"palette"`
	Thresholds thresholdTable     `yaml:"thresholds"`
	Versions   map[string]float64 `yaml:"versions"`
	Support    Support            `yaml:"support"`
	Keyboard   Keyboard           `yaml:"keyboard"`
	Wallpaper  Wallpaper          `yaml:"wallpaper"`
	Disk       Disk               `yaml:"disk"`
}

// thresholdTable decodes each metric entry over the value already present, so
// a document setting only "warn" keeps the default "crit" of that metric.
type thresholdTable map[string]Thresholds

func (t *thresholdTable) UnmarshalYAML(value *yaml.Node) error {
	var entries map[string]yaml.Node
	if err := value.Decode(&entries); err != nil {
		return err
	}
	if *t == nil {
		*t = thresholdTable{}
	}
	for metric, node := range entries {
		th := (*t)[metric]
		if err := node.Decode(&th); err != nil {
			return err
		}
		(*t)[metric] = th
	}
	return nil
}
