package dispatcher

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/dshills/tierline/internal/dispatcher/handler"
)

// Metrics counts dispatches per action. It is enabled with
// Config.EnableMetrics.
type Metrics struct {
	mu      sync.Mutex
	actions map[string]*ActionStats

	dispatches uint64
	errors     uint64
	panics     uint64
}

// ActionStats summarises the dispatches of one action.
type ActionStats struct {
	Name   string
	Count  uint64
	Errors uint64
	Total  time.Duration
	Max    time.Duration
	// Last is the status of the most recent dispatch.
	Last handler.ResultStatus
}

// Mean returns the average handling time.
func (s ActionStats) Mean() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// NewMetrics creates an empty collector.
func NewMetrics() *Metrics {
	return &Metrics{actions: make(map[string]*ActionStats)}
}

// Record counts one dispatch of name.
func (m *Metrics) Record(name string, took time.Duration, status handler.ResultStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.actions[name]
	if s == nil {
		s = &ActionStats{Name: name}
		m.actions[name] = s
	}
	s.Count++
	s.Total += took
	s.Max = max(s.Max, took)
	s.Last = status

	m.dispatches++
	if status == handler.StatusError {
		s.Errors++
		m.errors++
	}
}

// RecordPanic counts a handler panic that was recovered.
func (m *Metrics) RecordPanic() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panics++
}

// Totals returns the dispatch, error and recovered panic counts.
func (m *Metrics) Totals() (dispatches, errors, panics uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dispatches, m.errors, m.panics
}

// Stats returns the counters for one action.
func (m *Metrics) Stats(name string) (ActionStats, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s := m.actions[name]; s != nil {
		return *s, true
	}
	return ActionStats{}, false
}

// Top returns up to n actions, most dispatched first. Ties sort by name.
func (m *Metrics) Top(n int) []ActionStats {
	m.mu.Lock()
	out := make([]ActionStats, 0, len(m.actions))
	for _, s := range m.actions {
		out = append(out, *s)
	}
	m.mu.Unlock()

	slices.SortFunc(out, func(a, b ActionStats) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out[:min(n, len(out))]
}
