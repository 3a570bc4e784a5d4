// Package ui provides theme and color support for the application's user interface.
// It defines color schemes shared by the CLI and TUI presentation layers so
// business logic stays decoupled from styling concerns.
package ui
