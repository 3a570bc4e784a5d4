package query

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/mlemay/eventfind/internal/config"
	apperrors "github.com/mlemay/eventfind/internal/errors"
	"github.com/mlemay/eventfind/internal/metrics"
	"github.com/mlemay/eventfind/internal/query/mocks"
)

// finderFunc adapts a function to the Finder interface for tests that do not
// need call expectations.
type finderFunc func(ctx context.Context, interest, location string) (string, error)

func (f finderFunc) FindEvents(ctx context.Context, interest, location string) (string, error) {
	return f(ctx, interest, location)
}

// stateRecorder collects listener notifications in order.
type stateRecorder struct {
	states []State
}

func (r *stateRecorder) listen(s State) {
	r.states = append(r.states, s)
}

func (r *stateRecorder) phases() []Phase {
	out := make([]Phase, len(r.states))
	for i, s := range r.states {
		out[i] = s.Phase
	}
	return out
}

func TestSubmit_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	const resultsText = "Here are some events:\n- Open mic at the Hive, Thursday 8pm"

	finder := mocks.NewMockFinder(ctrl)
	finder.EXPECT().
		FindEvents(gomock.Any(), "open mic nights", "Blaine, MN").
		Return(resultsText, nil)

	rec := &stateRecorder{}
	o := NewOrchestrator(finder, metrics.NewMetrics(), nil, rec.listen)

	outcome := o.Submit(context.Background(), "open mic nights", "Blaine, MN")

	if outcome.Kind != OutcomeSuccess {
		t.Fatalf("Kind = %v, want OutcomeSuccess", outcome.Kind)
	}
	if outcome.Results != resultsText {
		t.Errorf("Results = %q, want the backend text verbatim", outcome.Results)
	}

	want := []Phase{PhaseValidating, PhaseSearching, PhaseSuccess}
	got := rec.phases()
	if len(got) != len(want) {
		t.Fatalf("phases = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("phase[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if !rec.states[len(rec.states)-1].Phase.Terminal() {
		t.Error("last notified state must be terminal")
	}
}

func TestSubmit_WhitespaceInterestSkipsFinder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No EXPECT: any FindEvents call fails the test.
	finder := mocks.NewMockFinder(ctrl)

	rec := &stateRecorder{}
	o := NewOrchestrator(finder, nil, nil, rec.listen)

	outcome := o.Submit(context.Background(), "   \t\n  ", "Blaine, MN")

	if outcome.Kind != OutcomeInvalid {
		t.Fatalf("Kind = %v, want OutcomeInvalid", outcome.Kind)
	}
	if outcome.Message != InterestRequiredMessage {
		t.Errorf("Message = %q, want %q", outcome.Message, InterestRequiredMessage)
	}

	var validationErr apperrors.ValidationError
	if !errors.As(outcome.Err, &validationErr) {
		t.Fatalf("Err = %T, want ValidationError", outcome.Err)
	}
	if validationErr.Field != "interest" {
		t.Errorf("Field = %q, want interest", validationErr.Field)
	}

	last := rec.states[len(rec.states)-1]
	if !last.Phase.Terminal() {
		t.Error("last notified state must be terminal even when validation fails")
	}
}

func TestSubmit_BlankLocationUsesDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	finder := mocks.NewMockFinder(ctrl)
	finder.EXPECT().
		FindEvents(gomock.Any(), "farmers markets", config.DefaultLocation).
		Return("results", nil)

	o := NewOrchestrator(finder, nil, nil, nil)
	outcome := o.Submit(context.Background(), "farmers markets", "   ")

	if outcome.Query.Location != config.DefaultLocation {
		t.Errorf("Location = %q, want %q", outcome.Query.Location, config.DefaultLocation)
	}
}

func TestSubmit_NoResults(t *testing.T) {
	tests := []struct {
		name        string
		resultsText string
	}{
		{"sentinel prose", "No specific events matching 'underwater basket weaving' were found in Blaine, MN for the coming week."},
		{"sentinel prose lowercase", "no specific events matching 'x' were found nearby."},
		{"empty text", ""},
		{"whitespace only", "  \n\t  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOrchestrator(finderFunc(func(context.Context, string, string) (string, error) {
				return tt.resultsText, nil
			}), nil, nil, nil)

			outcome := o.Submit(context.Background(), "anything", "Blaine, MN")
			if outcome.Kind != OutcomeNoResults {
				t.Fatalf("Kind = %v, want OutcomeNoResults", outcome.Kind)
			}
			if outcome.Message == "" {
				t.Error("no-results outcome must carry a user-facing message")
			}
		})
	}
}

func TestSubmit_ErrorClassification(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantMessage string
	}{
		{
			name:        "transport",
			err:         apperrors.TransportError{Cause: errors.New("dial tcp: connection refused")},
			wantMessage: "could not reach the event search service: dial tcp: connection refused",
		},
		{
			name:        "protocol",
			err:         apperrors.ProtocolError{StatusCode: 503, Message: "upstream model overloaded"},
			wantMessage: "upstream model overloaded",
		},
		{
			name:        "logical",
			err:         apperrors.LogicalError{Message: "The search service is temporarily unavailable."},
			wantMessage: "The search service is temporarily unavailable.",
		},
		{
			name:        "canceled",
			err:         apperrors.TransportError{Cause: context.Canceled},
			wantMessage: CanceledMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &stateRecorder{}
			o := NewOrchestrator(finderFunc(func(context.Context, string, string) (string, error) {
				return "", tt.err
			}), nil, nil, rec.listen)

			outcome := o.Submit(context.Background(), "anything", "Blaine, MN")
			if outcome.Kind != OutcomeError {
				t.Fatalf("Kind = %v, want OutcomeError", outcome.Kind)
			}
			if outcome.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", outcome.Message, tt.wantMessage)
			}
			if !errors.Is(outcome.Err, tt.err) {
				t.Errorf("Err chain should retain the original error")
			}
			if last := rec.states[len(rec.states)-1]; last.Phase != PhaseError {
				t.Errorf("last phase = %v, want PhaseError", last.Phase)
			}
		})
	}
}

func TestSubmit_PanicInFinder(t *testing.T) {
	rec := &stateRecorder{}
	o := NewOrchestrator(finderFunc(func(context.Context, string, string) (string, error) {
		panic("finder exploded")
	}), metrics.NewMetrics(), nil, rec.listen)

	outcome := o.Submit(context.Background(), "anything", "Blaine, MN")

	if outcome.Kind != OutcomeError {
		t.Fatalf("Kind = %v, want OutcomeError after panic", outcome.Kind)
	}
	if outcome.Err == nil {
		t.Error("panic outcome must carry an error")
	}
	if len(rec.states) == 0 || !rec.states[len(rec.states)-1].Phase.Terminal() {
		t.Error("listener must still receive a terminal state after a panic")
	}
}

func TestSubmit_GenerationIncreases(t *testing.T) {
	o := NewOrchestrator(finderFunc(func(context.Context, string, string) (string, error) {
		return "results", nil
	}), nil, nil, nil)

	first := o.Submit(context.Background(), "a", "")
	second := o.Submit(context.Background(), "b", "")

	if second.Generation <= first.Generation {
		t.Errorf("generations = %d then %d, want strictly increasing",
			first.Generation, second.Generation)
	}
	if o.Generation() != second.Generation {
		t.Errorf("Generation() = %d, want %d", o.Generation(), second.Generation)
	}
}

func TestClassifyResults(t *testing.T) {
	tests := []struct {
		name string
		text string
		want OutcomeKind
	}{
		{"plain results", "Here are some events for you.", OutcomeSuccess},
		{"mentions found but not sentinel", "We found three concerts.", OutcomeSuccess},
		{"sentinel", "No specific events matching 'x' were found.", OutcomeNoResults},
		{"sentinel across lines", "No specific events matching\n'x' were found.", OutcomeNoResults},
		{"empty", "", OutcomeNoResults},
		{"blank", "   ", OutcomeNoResults},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, _ := ClassifyResults(tt.text)
			if kind != tt.want {
				t.Errorf("ClassifyResults(%q) = %v, want %v", tt.text, kind, tt.want)
			}
		})
	}
}

func TestPhase_Strings(t *testing.T) {
	phases := map[Phase]string{
		PhaseIdle:       "idle",
		PhaseValidating: "validating",
		PhaseSearching:  "searching",
		PhaseSuccess:    "success",
		PhaseNoResults:  "no_results",
		PhaseError:      "error",
	}
	for p, want := range phases {
		if p.String() != want {
			t.Errorf("%d.String() = %q, want %q", p, p.String(), want)
		}
	}
	if PhaseSearching.Terminal() {
		t.Error("searching must not be terminal")
	}
	if !PhaseNoResults.Terminal() {
		t.Error("no-results must be terminal")
	}
}
