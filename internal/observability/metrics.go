package observability

import (
	"strconv"
	"sync"
	"time"
)

// RequestStat aggregates observations for one route/method/status triple.
type RequestStat struct {
	Count         int64
	TotalDuration time.Duration
}

// Metrics keeps in-process request and error counters. The request logger
// middleware feeds it; there is no external metrics backend.
type Metrics struct {
	mu       sync.Mutex
	requests map[string]*RequestStat
	errors   map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[string]*RequestStat),
		errors:   make(map[string]int64),
	}
}

// RecordRequest accumulates a completed request.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := requestKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	stat, ok := m.requests[key]
	if !ok {
		stat = &RequestStat{}
		m.requests[key] = stat
	}
	stat.Count++
	stat.TotalDuration += duration
}

// RecordError counts a request that resolved to a domain error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[path+"|"+method+"|"+code]++
}

// RequestSnapshot copies the accumulated request stats.
func (m *Metrics) RequestSnapshot() map[string]RequestStat {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]RequestStat, len(m.requests))
	for k, v := range m.requests {
		out[k] = *v
	}
	return out
}

// ErrorSnapshot copies the accumulated error counters.
func (m *Metrics) ErrorSnapshot() map[string]int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int64, len(m.errors))
	for k, v := range m.errors {
		out[k] = v
	}
	return out
}

func requestKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
