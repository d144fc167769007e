package logger

import (
	"github.com/fatih/color" // Import the fatih/color package for colored console output
)

// Leveled printing functions built on fatih/color.
// They behave like fmt.Printf but write to stderr (color.Error), since stdout
// is reserved for the snippet or command output consumed by the status bar.

// Info logs informational messages in green color.
var Info = printfTo(color.New(color.FgGreen))

// Warn logs warning messages in bright magenta color.
var Warn = printfTo(color.New(color.FgHiMagenta))

// Error logs error messages in red color.
var Error = printfTo(color.New(color.FgRed))

// Debug logs debug messages in cyan color if enabled, otherwise is a no-op.
// It is assigned during Init based on the --debug flag.
var Debug = func(format string, a ...any) {}

// Init enables or disables debug logging.
// When disabled, Debug silently ignores its arguments.
func Init(enableDebug bool) {
	if enableDebug {
		Debug = printfTo(color.New(color.FgCyan))
	} else {
		Debug = func(format string, a ...any) {}
	}
}

func printfTo(c *color.Color) func(format string, a ...any) {
	return func(format string, a ...any) {
		_, _ = c.Fprintf(color.Error, format, a...)
	}
}
