package metrics

import (
	"sync"
	"time"
)

type sourceKey struct {
	source   string
	resource string
}

type sourceStats struct {
	calls           int
	errors          int
	lastCallLatency time.Duration
}

type runStats struct {
	runs           int
	runErrors      int
	regionFailures int
	rowsEmitted    int
	lastDuration   time.Duration
}

// Recorder captures lightweight, in-memory metrics about a run and mirrors
// them to OpenTelemetry instruments when configured.
type Recorder struct {
	mu    sync.Mutex
	stats map[sourceKey]*sourceStats
	run   runStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[sourceKey]*sourceStats),
		otel:  otel,
	}
}

// RecordSourceCall increments counters for an upstream call and stores the last observed latency.
func (r *Recorder) RecordSourceCall(source, resource string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	key := sourceKey{source: source, resource: resource}
	stats, ok := r.stats[key]
	if !ok {
		stats = &sourceStats{}
		r.stats[key] = stats
	}
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordSourceCall(source, resource, duration, err)
	}
}

// RecordRegionFailure tracks a region whose report was dropped from the run.
func (r *Recorder) RecordRegionFailure(region string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.run.regionFailures++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRegionFailure(region)
	}
}

// RecordRun tracks one fetch-compute cycle and the number of rows it produced.
func (r *Recorder) RecordRun(duration time.Duration, rows int, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.run.runs++
	r.run.lastDuration = duration
	r.run.rowsEmitted += rows
	if err != nil {
		r.run.runErrors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRun(duration, rows, err)
	}
}

// Snapshot returns a copy of the current stats for a source/resource pair.
type Snapshot struct {
	Calls           int
	Errors          int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(source, resource string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[sourceKey{source: source, resource: resource}]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RunSnapshot summarizes recorded runs.
type RunSnapshot struct {
	Runs           int
	RunErrors      int
	RegionFailures int
	RowsEmitted    int
	LastDuration   time.Duration
}

func (r *Recorder) RunSnapshot() RunSnapshot {
	if r == nil {
		return RunSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return RunSnapshot{
		Runs:           r.run.runs,
		RunErrors:      r.run.runErrors,
		RegionFailures: r.run.regionFailures,
		RowsEmitted:    r.run.rowsEmitted,
		LastDuration:   r.run.lastDuration,
	}
}
