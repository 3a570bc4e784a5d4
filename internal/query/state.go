// Package query implements the submission lifecycle of an event search:
// validation, dispatch to the backend, classification of the response and
// the guaranteed restoration of the interface afterwards.
package query

// Phase identifies where a submission is in its lifecycle. Exactly one phase
// is active at a time and the presentation layer renders exactly one panel
// per phase.
type Phase int

const (
	// PhaseIdle means no submission is active and the form accepts input.
	PhaseIdle Phase = iota
	// PhaseValidating means the input is being checked before any I/O.
	PhaseValidating
	// PhaseSearching means a request is in flight.
	PhaseSearching
	// PhaseSuccess means the backend returned displayable results.
	PhaseSuccess
	// PhaseNoResults means the search completed but matched nothing.
	PhaseNoResults
	// PhaseError means the submission failed at some layer.
	PhaseError
)

// String returns the phase name for logs and debugging.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseValidating:
		return "validating"
	case PhaseSearching:
		return "searching"
	case PhaseSuccess:
		return "success"
	case PhaseNoResults:
		return "no_results"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase ends a submission. Once a terminal
// phase is reached the form must be re-enabled for the next query.
func (p Phase) Terminal() bool {
	switch p {
	case PhaseSuccess, PhaseNoResults, PhaseError:
		return true
	}
	return false
}

// Query is a single event search request as entered by the user.
type Query struct {
	// Interest describes the kind of events the user is looking for.
	Interest string
	// Location is the area to search in.
	Location string
}

// State is one point in a submission's lifecycle. Payload fields are only
// meaningful for the phases noted on each.
type State struct {
	// Phase is the active lifecycle phase.
	Phase Phase
	// Query is the submission being processed. Zero-valued in PhaseIdle.
	Query Query
	// Results holds the backend's results text verbatim in PhaseSuccess.
	Results string
	// Message holds the user-facing text in PhaseNoResults and PhaseError.
	Message string
	// Generation tags the submission this state belongs to so stale
	// notifications can be dropped.
	Generation uint64
}
