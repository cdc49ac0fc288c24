// Package prom exports scope lifecycle metrics through Prometheus
// collectors.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/NetPo4ki/go-coscope/scope"
)

// Observer implements the scope.Observer interface on top of
// Prometheus collectors. One Observer may be shared by any number of
// scopes; all collectors are safe for concurrent use.
type Observer struct {
	scopesCreated   prometheus.Counter
	scopesCancelled prometheus.Counter
	scopesCompleted prometheus.Counter
	advanceCycles   prometheus.Histogram

	jobsSpawned   prometheus.Counter
	jobsFinished  prometheus.Counter
	jobsDiscarded prometheus.Counter
	jobsActive    prometheus.Gauge
	jobSteps      prometheus.Histogram
}

var _ scope.Observer = (*Observer)(nil)

// New returns an Observer with its collectors registered on reg. A nil
// reg leaves the collectors unregistered, which is convenient for
// tests that only read them directly.
func New(reg prometheus.Registerer) *Observer {
	o := &Observer{
		scopesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "coscope",
			Name:      "scopes_created_total",
			Help:      "Number of scope drivers created.",
		}),
		scopesCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "coscope",
			Name:      "scopes_cancelled_total",
			Help:      "Number of scopes that completed via cancellation.",
		}),
		scopesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "coscope",
			Name:      "scopes_completed_total",
			Help:      "Number of scopes that reported a result.",
		}),
		advanceCycles: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "coscope",
			Name:      "scope_advance_cycles",
			Help:      "Advance cycles per completed scope.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		jobsSpawned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "coscope",
			Name:      "jobs_spawned_total",
			Help:      "Number of jobs admitted into a scope.",
		}),
		jobsFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "coscope",
			Name:      "jobs_finished_total",
			Help:      "Number of jobs that produced a value.",
		}),
		jobsDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "coscope",
			Name:      "jobs_discarded_total",
			Help:      "Number of jobs discarded by cancellation or fault.",
		}),
		jobsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "coscope",
			Name:      "jobs_active",
			Help:      "Jobs currently held by a live scope.",
		}),
		jobSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "coscope",
			Name:      "job_steps",
			Help:      "Advance steps per finished job.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
	if reg != nil {
		reg.MustRegister(
			o.scopesCreated, o.scopesCancelled, o.scopesCompleted,
			o.advanceCycles,
			o.jobsSpawned, o.jobsFinished, o.jobsDiscarded,
			o.jobsActive, o.jobSteps,
		)
	}
	return o
}

func (o *Observer) ScopeCreated()   { o.scopesCreated.Inc() }
func (o *Observer) ScopeCancelled() { o.scopesCancelled.Inc() }

func (o *Observer) ScopeCompleted(advances int) {
	o.scopesCompleted.Inc()
	o.advanceCycles.Observe(float64(advances))
}

func (o *Observer) JobSpawned(uint64) {
	o.jobsSpawned.Inc()
	o.jobsActive.Inc()
}

func (o *Observer) JobFinished(_ uint64, steps int) {
	o.jobsFinished.Inc()
	o.jobsActive.Dec()
	o.jobSteps.Observe(float64(steps))
}

func (o *Observer) JobDiscarded(uint64) {
	o.jobsDiscarded.Inc()
	o.jobsActive.Dec()
}
