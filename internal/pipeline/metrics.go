package pipeline

import "sync/atomic"

// Metrics tracks pipeline run counters.
type Metrics struct {
	runsStarted   int64
	runsCompleted int64
	runsFailed    int64
	runsStale     int64
}

var globalMetrics = &Metrics{}

// GetMetrics returns the current metrics snapshot.
func GetMetrics() Metrics {
	return Metrics{
		runsStarted:   atomic.LoadInt64(&globalMetrics.runsStarted),
		runsCompleted: atomic.LoadInt64(&globalMetrics.runsCompleted),
		runsFailed:    atomic.LoadInt64(&globalMetrics.runsFailed),
		runsStale:     atomic.LoadInt64(&globalMetrics.runsStale),
	}
}

// ResetMetrics resets all counters (useful for testing).
func ResetMetrics() {
	atomic.StoreInt64(&globalMetrics.runsStarted, 0)
	atomic.StoreInt64(&globalMetrics.runsCompleted, 0)
	atomic.StoreInt64(&globalMetrics.runsFailed, 0)
	atomic.StoreInt64(&globalMetrics.runsStale, 0)
}

func (m Metrics) RunsStarted() int64   { return m.runsStarted }
func (m Metrics) RunsCompleted() int64 { return m.runsCompleted }
func (m Metrics) RunsFailed() int64    { return m.runsFailed }
func (m Metrics) RunsStale() int64     { return m.runsStale }

func recordRunStarted()   { atomic.AddInt64(&globalMetrics.runsStarted, 1) }
func recordRunCompleted() { atomic.AddInt64(&globalMetrics.runsCompleted, 1) }
func recordRunFailed()    { atomic.AddInt64(&globalMetrics.runsFailed, 1) }
func recordRunStale()     { atomic.AddInt64(&globalMetrics.runsStale, 1) }
