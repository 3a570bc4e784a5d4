// Package cli implements the one-shot command line mode: run a single event
// search, print the outcome and exit with a code describing how it ended.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mlemay/eventfind/internal/config"
	apperrors "github.com/mlemay/eventfind/internal/errors"
	"github.com/mlemay/eventfind/internal/query"
	"github.com/mlemay/eventfind/internal/ui"
)

// Submitter runs one query through its full lifecycle and returns the
// outcome. Satisfied by query.Orchestrator.
type Submitter interface {
	Submit(ctx context.Context, interest, location string) query.Outcome
}

// Run executes a single event search in one-shot mode. A spinner animates on
// errOut while the request is in flight and is stopped before anything is
// printed, whatever the outcome. The returned exit code follows the
// apperrors mapping.
func Run(ctx context.Context, submitter Submitter, interest, location string, out, errOut io.Writer) int {
	sp := newSpinner(errOut)
	shownLocation := strings.TrimSpace(location)
	if shownLocation == "" {
		shownLocation = config.DefaultLocation
	}
	sp.UpdateSuffix(fmt.Sprintf(" Searching for events near %s...", shownLocation))

	stopped := false
	stop := func() {
		if !stopped {
			sp.Stop()
			stopped = true
		}
	}
	defer stop()

	sp.Start()
	outcome := submitter.Submit(ctx, interest, location)
	stop()

	RenderOutcome(out, outcome)
	return apperrors.ExitCodeFor(outcome.Err)
}

// RenderOutcome prints a terminal outcome to w using the active color theme.
// Success results are printed verbatim under a header; the other endings are
// printed as a single colored message.
func RenderOutcome(w io.Writer, outcome query.Outcome) {
	theme := ui.GetCurrentTheme()

	switch outcome.Kind {
	case query.OutcomeSuccess:
		fmt.Fprintf(w, "%s%sEvents near %s%s\n\n", theme.Bold, theme.Primary,
			outcome.Query.Location, theme.Reset)
		fmt.Fprintln(w, outcome.Results)
	case query.OutcomeNoResults:
		fmt.Fprintf(w, "%s%s%s\n", theme.Warning, outcome.Message, theme.Reset)
	default:
		fmt.Fprintf(w, "%s%s%s\n", theme.Error, outcome.Message, theme.Reset)
	}
}
