// Package format holds display helpers shared by the CLI, the REPL and the
// TUI: durations, byte sizes, digit grouping and progress bars.
package format
