// Package metrics provides the reference measurement sink: an HDR
// histogram backed aggregator fed by the measurement wrapper.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/salvolabs/salvo/internal/run"
)

// Histogram bounds in milliseconds: 1 ms to 1 hour, 3 significant figures.
const (
	histMinMillis = 1
	histMaxMillis = 3600000
	histSigFigs   = 3
)

// Engine aggregates measurement records from arbitrarily many concurrent
// virtual users. It implements run.Sink.
//
// Latencies go into HDR histograms, one overall and one per step; outcome
// counters use atomics. A reset-iteration measurement (an empty failure
// substituted by the wrapper) is counted on its own, not as a failure.
type Engine struct {
	latencyHist   *hdrhistogram.Histogram
	latencyHistMu sync.Mutex

	stepHists   map[string]*hdrhistogram.Histogram
	stepHistsMu sync.Mutex

	total     atomic.Int64
	ok        atomic.Int64
	failed    atomic.Int64
	timeouts  atomic.Int64
	unhandled atomic.Int64
	resets    atomic.Int64
}

// NewEngine creates an empty aggregation engine.
func NewEngine() *Engine {
	return &Engine{
		latencyHist: hdrhistogram.New(histMinMillis, histMaxMillis, histSigFigs),
		stepHists:   make(map[string]*hdrhistogram.Histogram),
	}
}

// Publish records one measurement. Safe for concurrent producers.
func (e *Engine) Publish(m run.MeasurementResult) {
	latency := m.LatencyMillis
	if latency < histMinMillis {
		latency = histMinMillis
	}
	if latency > histMaxMillis {
		latency = histMaxMillis
	}

	e.latencyHistMu.Lock()
	e.latencyHist.RecordValue(latency)
	e.latencyHistMu.Unlock()

	if m.StepName != "" {
		e.recordStep(m.StepName, latency)
	}

	e.total.Add(1)
	switch {
	case m.Response.Kind == run.OutcomeOK:
		e.ok.Add(1)
	case isReset(m.Response):
		e.resets.Add(1)
	case m.Response.StatusCode == run.StatusCodeTimeout:
		e.failed.Add(1)
		e.timeouts.Add(1)
	case m.Response.StatusCode == run.StatusCodeUnhandled:
		e.failed.Add(1)
		e.unhandled.Add(1)
	default:
		e.failed.Add(1)
	}
}

// isReset matches the substitution the measurement wrapper makes for the
// reset-iteration signal: a failure with no message, no status code and
// no captured fault.
func isReset(r run.Response) bool {
	return r.Kind == run.OutcomeFail && r.Message == "" && r.StatusCode == 0 && r.Err == nil
}

// recordStep records a latency in the per-step histogram.
// NOTE: hdrhistogram RecordValue is not thread-safe, hold the lock.
func (e *Engine) recordStep(name string, latencyMillis int64) {
	e.stepHistsMu.Lock()
	defer e.stepHistsMu.Unlock()

	hist, ok := e.stepHists[name]
	if !ok {
		hist = hdrhistogram.New(histMinMillis, histMaxMillis, histSigFigs)
		e.stepHists[name] = hist
	}
	hist.RecordValue(latencyMillis)
}

// LatencyStats summarizes a latency distribution.
type LatencyStats struct {
	Min    time.Duration `json:"min"`
	Max    time.Duration `json:"max"`
	Mean   time.Duration `json:"mean"`
	StdDev time.Duration `json:"stdDev"`
	P50    time.Duration `json:"p50"`
	P90    time.Duration `json:"p90"`
	P95    time.Duration `json:"p95"`
	P99    time.Duration `json:"p99"`
	Count  int64         `json:"count"`
}

// Snapshot is a point-in-time view of everything recorded so far.
type Snapshot struct {
	Total     int64                   `json:"total"`
	OK        int64                   `json:"ok"`
	Failed    int64                   `json:"failed"`
	Timeouts  int64                   `json:"timeouts"`
	Unhandled int64                   `json:"unhandled"`
	Resets    int64                   `json:"resets"`
	Latency   LatencyStats            `json:"latency"`
	Steps     map[string]LatencyStats `json:"steps,omitempty"`
}

// Snapshot returns a consistent-enough copy for reporting; counters and
// histograms are read independently, which is fine for statistics that
// are only rendered after publishers have gone quiet.
func (e *Engine) Snapshot() Snapshot {
	e.latencyHistMu.Lock()
	latency := statsFrom(e.latencyHist)
	e.latencyHistMu.Unlock()

	e.stepHistsMu.Lock()
	steps := make(map[string]LatencyStats, len(e.stepHists))
	for name, hist := range e.stepHists {
		steps[name] = statsFrom(hist)
	}
	e.stepHistsMu.Unlock()

	return Snapshot{
		Total:     e.total.Load(),
		OK:        e.ok.Load(),
		Failed:    e.failed.Load(),
		Timeouts:  e.timeouts.Load(),
		Unhandled: e.unhandled.Load(),
		Resets:    e.resets.Load(),
		Latency:   latency,
		Steps:     steps,
	}
}

func statsFrom(hist *hdrhistogram.Histogram) LatencyStats {
	return LatencyStats{
		Min:    time.Duration(hist.Min()) * time.Millisecond,
		Max:    time.Duration(hist.Max()) * time.Millisecond,
		Mean:   time.Duration(hist.Mean()) * time.Millisecond,
		StdDev: time.Duration(hist.StdDev()) * time.Millisecond,
		P50:    time.Duration(hist.ValueAtQuantile(50)) * time.Millisecond,
		P90:    time.Duration(hist.ValueAtQuantile(90)) * time.Millisecond,
		P95:    time.Duration(hist.ValueAtQuantile(95)) * time.Millisecond,
		P99:    time.Duration(hist.ValueAtQuantile(99)) * time.Millisecond,
		Count:  hist.TotalCount(),
	}
}
