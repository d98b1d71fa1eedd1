package app

import (
	"sync/atomic"
	"time"
)

// Metrics tracks session timing.
type Metrics struct {
	// Frame timing
	frameCount   atomic.Uint64
	frameTotalNs atomic.Int64
	frameMaxNs   atomic.Int64

	// Input handling
	inputCount   atomic.Uint64
	inputTotalNs atomic.Int64
	inputDropped atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordFrame records how long one frame took to paint.
func (m *Metrics) RecordFrame(duration time.Duration) {
	ns := duration.Nanoseconds()
	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)

	for {
		old := m.frameMaxNs.Load()
		if ns <= old || m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordInput records how long one event took to handle.
func (m *Metrics) RecordInput(duration time.Duration) {
	m.inputCount.Add(1)
	m.inputTotalNs.Add(duration.Nanoseconds())
}

// RecordInputDropped records an event dropped because the queue was full.
func (m *Metrics) RecordInputDropped() {
	m.inputDropped.Add(1)
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Uptime:       time.Since(m.startTime),
		FrameCount:   m.frameCount.Load(),
		MaxFrame:     time.Duration(m.frameMaxNs.Load()),
		InputCount:   m.inputCount.Load(),
		InputDropped: m.inputDropped.Load(),
	}
	if s.FrameCount > 0 {
		s.AvgFrame = time.Duration(m.frameTotalNs.Load() / int64(s.FrameCount))
	}
	if s.InputCount > 0 {
		s.AvgInput = time.Duration(m.inputTotalNs.Load() / int64(s.InputCount))
	}
	return s
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime       time.Duration
	FrameCount   uint64
	AvgFrame     time.Duration
	MaxFrame     time.Duration
	InputCount   uint64
	AvgInput     time.Duration
	InputDropped uint64
}
