package query

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mlemay/eventfind/internal/config"
	"github.com/mlemay/eventfind/internal/logging"
	"github.com/mlemay/eventfind/internal/metrics"
)

//go:generate mockgen -source=orchestrator.go -destination=mocks/mock_finder.go -package=mocks

// Finder performs an event search and returns the backend's results text.
// This interface decouples the submission lifecycle from the HTTP layer so
// tests can substitute a controlled implementation.
type Finder interface {
	// FindEvents searches for events matching interest near location.
	FindEvents(ctx context.Context, interest, location string) (string, error)
}

// Listener receives lifecycle states in submission order. Implementations
// must be fast; they are called synchronously from Submit.
type Listener func(State)

// Orchestrator runs the full submission lifecycle: validate, dispatch,
// classify, and restore. Every submission ends in exactly one terminal
// state, including submissions that panic inside the Finder.
type Orchestrator struct {
	finder   Finder
	metrics  *metrics.Metrics
	logger   logging.Logger
	tracer   trace.Tracer
	listener Listener

	// generation increases once per submission. Listener notifications
	// from a superseded submission are dropped.
	generation atomic.Uint64
}

// NewOrchestrator creates an Orchestrator around the given Finder. The
// metrics and listener may be nil; a nil logger is replaced by a silent one.
func NewOrchestrator(finder Finder, m *metrics.Metrics, logger logging.Logger, listener Listener) *Orchestrator {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Orchestrator{
		finder:   finder,
		metrics:  m,
		logger:   logger,
		tracer:   otel.Tracer("eventfind/query"),
		listener: listener,
	}
}

// Generation returns the identifier of the most recent submission.
func (o *Orchestrator) Generation() uint64 {
	return o.generation.Load()
}

// Submit runs one query through the full lifecycle and returns its outcome.
//
// The sequence is fixed: validate the interest text, normalize a blank
// location to the default, dispatch through the Finder, classify the
// response. Whatever happens on the way, the deferred epilogue records the
// metrics, ends the trace span and notifies the listener with the terminal
// state exactly once. A Finder that panics is converted into an error
// outcome rather than unwinding into the caller.
func (o *Orchestrator) Submit(ctx context.Context, interest, location string) (outcome Outcome) {
	gen := o.generation.Add(1)
	start := time.Now()

	ctx, span := o.tracer.Start(ctx, "query.submit")

	if o.metrics != nil {
		o.metrics.IncInFlight()
	}

	var q Query

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("event search failed unexpectedly: %v", r)
			o.logger.Error("recovered from panic during submission", err,
				logging.Uint64("generation", gen))
			outcome = Outcome{
				Kind:       OutcomeError,
				Query:      q,
				Message:    "Something went wrong while searching. Please try again.",
				Err:        err,
				Generation: gen,
			}
		}

		if o.metrics != nil {
			o.metrics.DecInFlight()
			o.metrics.ObserveQuery(outcome.Kind.MetricLabel(), time.Since(start))
		}

		span.SetAttributes(attribute.String("query.outcome", outcome.Kind.MetricLabel()))
		if outcome.Err != nil {
			span.RecordError(outcome.Err)
			span.SetStatus(codes.Error, outcome.Kind.MetricLabel())
		}
		span.End()

		o.notify(outcome.State())
	}()

	q = Query{
		Interest: strings.TrimSpace(interest),
		Location: strings.TrimSpace(location),
	}
	if q.Location == "" {
		q.Location = config.DefaultLocation
	}

	o.notify(State{Phase: PhaseValidating, Query: q, Generation: gen})

	if err := ValidateInterest(q.Interest); err != nil {
		return Outcome{
			Kind:       OutcomeInvalid,
			Query:      q,
			Message:    err.Error(),
			Err:        err,
			Generation: gen,
		}
	}

	span.SetAttributes(
		attribute.Int("query.interest_length", len(q.Interest)),
		attribute.String("query.location", q.Location),
	)

	o.notify(State{Phase: PhaseSearching, Query: q, Generation: gen})
	o.logger.Info("submitting query",
		logging.String("interest", q.Interest),
		logging.String("location", q.Location),
		logging.Uint64("generation", gen))

	resultsText, err := o.finder.FindEvents(ctx, q.Interest, q.Location)
	if err != nil {
		o.logger.Error("query failed", err, logging.Uint64("generation", gen))
		return Outcome{
			Kind:       OutcomeError,
			Query:      q,
			Message:    ClassifyError(err),
			Err:        err,
			Generation: gen,
		}
	}

	kind, message := ClassifyResults(resultsText)
	o.logger.Info("query completed",
		logging.String("outcome", kind.MetricLabel()),
		logging.Float64("elapsed_seconds", time.Since(start).Seconds()),
		logging.Uint64("generation", gen))

	out := Outcome{Kind: kind, Query: q, Generation: gen}
	if kind == OutcomeSuccess {
		out.Results = resultsText
	} else {
		out.Message = message
	}
	return out
}

// notify forwards a state to the listener unless a newer submission has
// started since.
func (o *Orchestrator) notify(s State) {
	if o.listener == nil {
		return
	}
	if s.Generation != 0 && s.Generation != o.generation.Load() {
		o.logger.Debug("dropping stale state notification",
			logging.Uint64("generation", s.Generation),
			logging.String("phase", s.Phase.String()))
		return
	}
	o.listener(s)
}
