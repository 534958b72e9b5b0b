package app

import (
	"sync/atomic"
	"time"

	"github.com/rivo/uniseg"

	"github.com/dshills/styledtext/internal/styled"
)

// Metrics tracks processing totals.
type Metrics struct {
	lines     atomic.Uint64
	runes     atomic.Uint64
	graphemes atomic.Uint64
	bytesOut  atomic.Uint64
	totalNs   atomic.Int64
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// LineStats describes one processed line.
type LineStats struct {
	Line      int
	Runes     int
	Graphemes int
}

// RecordLine records one processed line and returns its stats.
func (m *Metrics) RecordLine(line int, s *styled.String, duration time.Duration) LineStats {
	st := LineStats{
		Line:      line,
		Runes:     s.Len(),
		Graphemes: uniseg.GraphemeClusterCount(s.Text()),
	}
	m.lines.Add(1)
	m.runes.Add(uint64(st.Runes))
	m.graphemes.Add(uint64(st.Graphemes))
	m.totalNs.Add(duration.Nanoseconds())
	return st
}

// RecordOutput records bytes written.
func (m *Metrics) RecordOutput(n int64) {
	if n > 0 {
		m.bytesOut.Add(uint64(n))
	}
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	lines := m.lines.Load()
	var avg time.Duration
	if lines > 0 {
		avg = time.Duration(m.totalNs.Load() / int64(lines))
	}
	return MetricsSnapshot{
		Lines:        lines,
		Runes:        m.runes.Load(),
		Graphemes:    m.graphemes.Load(),
		BytesOut:     m.bytesOut.Load(),
		AvgLineTime:  avg,
		ProcessTotal: time.Duration(m.totalNs.Load()),
	}
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.lines.Store(0)
	m.runes.Store(0)
	m.graphemes.Store(0)
	m.bytesOut.Store(0)
	m.totalNs.Store(0)
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Lines        uint64
	Runes        uint64
	Graphemes    uint64
	BytesOut     uint64
	AvgLineTime  time.Duration
	ProcessTotal time.Duration
}
