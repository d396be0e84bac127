package observability

import (
	"testing"
	"time"
)

func TestMetricsStatusClasses(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/repair/v1/auth/login", "POST", 200, 5*time.Millisecond)
	m.RecordRequest("/repair/v1/auth/login", "POST", 401, 3*time.Millisecond)
	m.RecordRequest("/repair/v1/auth/login", "POST", 401, 3*time.Millisecond)
	m.RecordRequest("/repair/v1/workspaces", "GET", 500, time.Millisecond)

	classes := m.RequestsByClass()
	if classes["2xx"] != 1 {
		t.Errorf("2xx = %d, want 1", classes["2xx"])
	}
	if classes["4xx"] != 2 {
		t.Errorf("4xx = %d, want 2", classes["4xx"])
	}
	if classes["5xx"] != 1 {
		t.Errorf("5xx = %d, want 1", classes["5xx"])
	}
}

func TestMetricsNilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/x", "GET", 200, time.Millisecond)
	m.RecordError("/x", "GET", "INTERNAL_ERROR")
}
