package app

import (
	"sync/atomic"
	"time"

	"github.com/dshills/tuikit/internal/codeview"
	"github.com/dshills/tuikit/internal/syntax"
)

// Metrics counts frames and highlight settles. All methods are safe for
// concurrent use.
type Metrics struct {
	frameCount   atomic.Uint64
	frameTotalNs atomic.Int64
	frameMaxNs   atomic.Int64
	lastFrameNs  atomic.Int64

	eventCount atomic.Uint64

	applied   atomic.Uint64
	stale     atomic.Uint64
	failed    atomic.Uint64
	warnings  atomic.Uint64
	destroyed atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordFrame records how long a draw took.
func (m *Metrics) RecordFrame(duration time.Duration) {
	ns := duration.Nanoseconds()

	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)
	m.lastFrameNs.Store(ns)

	for {
		old := m.frameMaxNs.Load()
		if ns <= old {
			break
		}
		if m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordEvent records a handled terminal event.
func (m *Metrics) RecordEvent() {
	m.eventCount.Add(1)
}

// RecordSettle records a finished highlight request. It has the signature
// of a controller settle hook.
func (m *Metrics) RecordSettle(ev codeview.SettleEvent) {
	switch {
	case ev.Destroyed:
		m.destroyed.Add(1)
	case !ev.Applied:
		m.stale.Add(1)
	case ev.Outcome.Kind() == syntax.KindFailure:
		m.failed.Add(1)
	case ev.Outcome.Kind() == syntax.KindWarning:
		m.warnings.Add(1)
		m.applied.Add(1)
	default:
		m.applied.Add(1)
	}
}

// Snapshot returns the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	frames := m.frameCount.Load()
	var avg time.Duration
	if frames > 0 {
		avg = time.Duration(m.frameTotalNs.Load() / int64(frames))
	}
	return MetricsSnapshot{
		Uptime:       time.Since(m.startTime),
		Frames:       frames,
		AvgFrameTime: avg,
		MaxFrameTime: time.Duration(m.frameMaxNs.Load()),
		LastFrame:    time.Duration(m.lastFrameNs.Load()),
		Events:       m.eventCount.Load(),
		Applied:      m.applied.Load(),
		Stale:        m.stale.Load(),
		Failed:       m.failed.Load(),
		Warnings:     m.warnings.Load(),
		Destroyed:    m.destroyed.Load(),
	}
}

// MetricsSnapshot is a point-in-time view of Metrics.
type MetricsSnapshot struct {
	Uptime       time.Duration
	Frames       uint64
	AvgFrameTime time.Duration
	MaxFrameTime time.Duration
	LastFrame    time.Duration
	Events       uint64

	// Settles by result. Warnings are also counted in Applied.
	Applied   uint64
	Stale     uint64
	Failed    uint64
	Warnings  uint64
	Destroyed uint64
}

// Settles returns the total number of settled requests.
func (s MetricsSnapshot) Settles() uint64 {
	return s.Applied + s.Stale + s.Failed + s.Destroyed
}

// StaleRate returns the percentage of settles that were discarded as
// stale.
func (s MetricsSnapshot) StaleRate() float64 {
	total := s.Settles()
	if total == 0 {
		return 0
	}
	return float64(s.Stale) / float64(total) * 100
}
