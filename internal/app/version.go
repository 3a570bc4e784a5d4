package app

import (
	"fmt"
	"io"
)

// Version is the application version. Overridden at build time via
// -ldflags "-X github.com/mlemay/eventfind/internal/app.Version=...".
var Version = "dev"

// HasVersionFlag reports whether the arguments request the version.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--version", "-version", "-V":
			return true
		}
	}
	return false
}

// PrintVersion writes the version line.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "eventfind %s\n", Version)
}
