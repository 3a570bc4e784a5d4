package query

import (
	"regexp"
	"strings"

	apperrors "github.com/mlemay/eventfind/internal/errors"
)

// InterestRequiredMessage is shown when the interest field is empty or
// contains only whitespace.
const InterestRequiredMessage = "Please enter a description of the events you are interested in."

// CanceledMessage is shown when a submission is interrupted before the
// backend answers.
const CanceledMessage = "The search was canceled before it completed."

// noResultsPattern recognizes the backend's prose for an empty search. The
// backend phrases it as "No specific events matching '<interest>' were
// found ..."; the match is case-insensitive and tolerant of the interest
// text in between.
var noResultsPattern = regexp.MustCompile(`(?is)no specific events matching\b.*\bwere found`)

// OutcomeKind classifies how a submission ended.
type OutcomeKind int

const (
	// OutcomeSuccess means displayable results arrived.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeNoResults means the search completed but matched nothing.
	OutcomeNoResults
	// OutcomeError means the submission failed at some layer.
	OutcomeError
	// OutcomeInvalid means validation rejected the input before any I/O.
	OutcomeInvalid
)

// MetricLabel returns the Prometheus outcome label for the kind.
func (k OutcomeKind) MetricLabel() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeNoResults:
		return "no_results"
	case OutcomeInvalid:
		return "invalid"
	default:
		return "error"
	}
}

// Outcome is the terminal result of one submission, unified across the
// success, no-results, error and invalid-input endings so every caller
// handles exactly one shape.
type Outcome struct {
	// Kind classifies the ending.
	Kind OutcomeKind
	// Query is the submission that produced this outcome, with the
	// normalization applied before dispatch.
	Query Query
	// Results holds the backend's results text verbatim for OutcomeSuccess.
	Results string
	// Message holds the user-facing text for the other kinds.
	Message string
	// Err is the underlying error for OutcomeError and OutcomeInvalid.
	Err error
	// Generation tags the submission this outcome belongs to.
	Generation uint64
}

// State converts the outcome into the matching terminal lifecycle state.
func (o Outcome) State() State {
	s := State{Query: o.Query, Generation: o.Generation}
	switch o.Kind {
	case OutcomeSuccess:
		s.Phase = PhaseSuccess
		s.Results = o.Results
	case OutcomeNoResults:
		s.Phase = PhaseNoResults
		s.Message = o.Message
	default:
		s.Phase = PhaseError
		s.Message = o.Message
	}
	return s
}

// ValidateInterest checks the interest text before any request is made.
// Whitespace-only input is rejected with the exact message the interface
// displays.
func ValidateInterest(interest string) error {
	if strings.TrimSpace(interest) == "" {
		return apperrors.ValidationError{Field: "interest", Message: InterestRequiredMessage}
	}
	return nil
}

// ClassifyResults maps a successful backend response onto its outcome. The
// no-results ending is recognized two ways: a results text that is empty
// after trimming, or one that carries the backend's no-match prose. Anything
// else is a success and the text is preserved verbatim.
func ClassifyResults(resultsText string) (OutcomeKind, string) {
	trimmed := strings.TrimSpace(resultsText)
	if trimmed == "" {
		return OutcomeNoResults, "No events were found for your search."
	}
	if noResultsPattern.MatchString(resultsText) {
		return OutcomeNoResults, trimmed
	}
	return OutcomeSuccess, resultsText
}

// ClassifyError maps a submission error onto its user-facing message. A
// canceled submission gets its own wording; everything else surfaces the
// error text produced by the layer that failed.
func ClassifyError(err error) string {
	if apperrors.IsContextError(err) {
		return CanceledMessage
	}
	return err.Error()
}
