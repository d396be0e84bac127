package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters and latency sums.
type Metrics struct {
	mu            sync.Mutex
	requestCount  map[string]int64
	requestsClass map[string]int64
	latencySum    map[string]time.Duration
	errorCount    map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount:  make(map[string]int64),
		requestsClass: make(map[string]int64),
		latencySum:    make(map[string]time.Duration),
		errorCount:    make(map[string]int64),
	}
}

// RecordRequest increments per-route and per-status-class counters and
// accumulates route latency.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	routeKey := path + "|" + method
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[routeKey+"|"+strconv.Itoa(status)]++
	m.requestsClass[statusClass(status)]++
	m.latencySum[routeKey] += duration
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RequestsByClass returns a copy of the per-status-class counters.
func (m *Metrics) RequestsByClass() map[string]int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int64, len(m.requestsClass))
	for k, v := range m.requestsClass {
		out[k] = v
	}
	return out
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
