package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	kit "verdian/internal/platform/testkit"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters_Increment(t *testing.T) {
	before := testutil.ToFloat64(LLMCalls.WithLabelValues("metrics-test", OutcomeAccepted))
	LLMCalls.WithLabelValues("metrics-test", OutcomeAccepted).Inc()
	after := testutil.ToFloat64(LLMCalls.WithLabelValues("metrics-test", OutcomeAccepted))
	if after-before != 1 {
		t.Fatalf("expected +1, got %v -> %v", before, after)
	}
}

func TestHandler_Exposes(t *testing.T) {
	PayloadRejected.WithLabelValues("metrics-test").Inc()
	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	kit.MustContain(t, rr.Body.String(), `verdian_payload_rejected_total{service="metrics-test"}`)
}
