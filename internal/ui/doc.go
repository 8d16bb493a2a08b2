// Package ui holds the color themes shared by the CLI, the usage text and
// the TUI. Colors are disabled by --no-color or the NO_COLOR environment
// variable.
package ui
