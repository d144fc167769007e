package main

import (
	"perc/cmd" // Import the cmd package which contains the CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// perc is a personal command-line utility with two halves:
//   - Status snippets: one colored markup line per metric (time, date, memory, cpu,
//     volume, battery, disk, keyboard layout) for a status bar such as i3blocks
//   - Support workflow: resolves a short name to a local database, reads the
//     application version installed in it, and starts the matching
//     interpreter/server pair, opening a browser once the server listens
//
// Error handling strategy:
//   - External tools (psql, amixer, acpi, setxkbmap, xclip, the support script)
//     are run with explicit argument lists and their failures are reported as errors
//   - A database whose version cannot be read ends the invocation with a neutral exit status
//   - Any other failure is logged on stderr and exits with a non-zero status
func main() {
	cmd.Execute()
}
