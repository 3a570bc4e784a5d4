package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// TestNewMetrics tests the Metrics constructor.
func TestNewMetrics(t *testing.T) {
	m := NewMetrics()

	if m == nil {
		t.Fatal("NewMetrics returned nil")
	}
	if m.handler == nil {
		t.Error("Metrics.handler should be initialized")
	}
}

// TestMetrics_InFlight tests the in-flight gauge methods.
func TestMetrics_InFlight(t *testing.T) {
	m := NewMetrics()

	t.Run("IncInFlight does not panic", func(t *testing.T) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("IncInFlight panicked: %v", r)
			}
		}()
		m.IncInFlight()
	})

	t.Run("DecInFlight does not panic", func(t *testing.T) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("DecInFlight panicked: %v", r)
			}
		}()
		m.DecInFlight()
	})
}

// TestMetrics_WritePrometheus tests the Prometheus metrics endpoint.
func TestMetrics_WritePrometheus(t *testing.T) {
	m := NewMetrics()

	m.ObserveQuery("success", 250*time.Millisecond)
	m.ObserveQuery("no_results", 100*time.Millisecond)
	m.ObserveQuery("error", 10*time.Millisecond)
	m.IncInFlight()
	defer m.DecInFlight()

	req := httptest.NewRequest("GET", "/metrics", http.NoBody)
	rec := httptest.NewRecorder()

	m.WritePrometheus(rec, req)

	body := rec.Body.String()

	t.Run("Contains queries total metric", func(t *testing.T) {
		if !strings.Contains(body, "eventfind_queries_total") {
			t.Error("metrics output should contain eventfind_queries_total")
		}
	})

	t.Run("Contains outcome labels", func(t *testing.T) {
		for _, outcome := range []string{"success", "no_results", "error"} {
			if !strings.Contains(body, `outcome="`+outcome+`"`) {
				t.Errorf("metrics output should contain outcome label %q", outcome)
			}
		}
	})

	t.Run("Contains in-flight gauge", func(t *testing.T) {
		if !strings.Contains(body, "eventfind_queries_in_flight") {
			t.Error("metrics output should contain eventfind_queries_in_flight")
		}
	})

	t.Run("Contains duration histogram", func(t *testing.T) {
		if !strings.Contains(body, "eventfind_query_duration_seconds") {
			t.Error("metrics output should contain eventfind_query_duration_seconds")
		}
	})

	t.Run("Contains Go runtime metrics", func(t *testing.T) {
		if !strings.Contains(body, "go_") {
			t.Error("metrics output should contain Go runtime metrics")
		}
	})
}

// TestMetrics_IsolatedRegistries verifies two instances do not share state.
func TestMetrics_IsolatedRegistries(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.ObserveQuery("success", time.Millisecond)

	req := httptest.NewRequest("GET", "/metrics", http.NoBody)
	rec := httptest.NewRecorder()
	b.WritePrometheus(rec, req)

	if strings.Contains(rec.Body.String(), `outcome="success"`) {
		t.Error("second registry should not see observations from the first")
	}
}
