package observability

import (
	"sync"
	"time"
)

type routeKey struct {
	path   string
	method string
}

type routeStats struct {
	requests      int64
	totalDuration time.Duration
	byStatus      map[int]int64
}

// Metrics keeps in-memory request and error counters per route.
type Metrics struct {
	mu     sync.Mutex
	routes map[routeKey]*routeStats
	errors map[routeKey]map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		routes: make(map[routeKey]*routeStats),
		errors: make(map[routeKey]map[string]int64),
	}
}

// RecordRequest counts a served request against its route and status.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := routeKey{path: path, method: method}
	m.mu.Lock()
	defer m.mu.Unlock()
	stats, ok := m.routes[key]
	if !ok {
		stats = &routeStats{byStatus: make(map[int]int64)}
		m.routes[key] = stats
	}
	stats.requests++
	stats.totalDuration += duration
	stats.byStatus[status]++
}

// RecordError counts a failed request against its route and error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := routeKey{path: path, method: method}
	m.mu.Lock()
	defer m.mu.Unlock()
	codes, ok := m.errors[key]
	if !ok {
		codes = make(map[string]int64)
		m.errors[key] = codes
	}
	codes[code]++
}
