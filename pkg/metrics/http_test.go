package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestObserveRequestAndHandler(t *testing.T) {
	m := NewHTTPMetrics()
	m.ObserveRequest("POST", "/api/account/login", 200, 25*time.Millisecond)
	m.ObserveRequest("POST", "/api/account/login", 401, 5*time.Millisecond)
	m.ObserveRequest("GET", "", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	m.Handler().ServeHTTP(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, `http_requests_total{method="POST",route="/api/account/login",status="200"} 1`) {
		t.Fatalf("missing 200 counter in output:\n%s", body)
	}
	if !strings.Contains(body, `http_requests_total{method="POST",route="/api/account/login",status="401"} 1`) {
		t.Fatalf("missing 401 counter in output:\n%s", body)
	}
	if !strings.Contains(body, `route="unknown"`) {
		t.Fatalf("expected empty route normalized to unknown:\n%s", body)
	}
	if !strings.Contains(body, "http_request_duration_seconds_bucket") {
		t.Fatalf("missing duration histogram:\n%s", body)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *HTTPMetrics
	m.ObserveRequest("GET", "/ping", 200, time.Millisecond)
	if m.Handler() == nil {
		t.Fatal("expected fallback handler")
	}
}
