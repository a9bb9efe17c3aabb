// Copyright 2026 The Places Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/placesapp/placesweb/router"
)

// DefaultBootBuckets are histogram boundaries for the readiness wait in
// seconds. Initial resolution is in-process, so most boots land in the
// first buckets.
var DefaultBootBuckets = []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

// Boot outcomes.
const (
	OutcomeReady  = "ready"
	OutcomeFailed = "failed"
)

// unmatchedRoute labels navigations whose matched sequence is empty.
const unmatchedRoute = "(none)"

// Recorder counts navigations, boots and shell builds on its own registry
// so several recorders can coexist in one process.
type Recorder struct {
	registry *prometheus.Registry

	navigations  *prometheus.CounterVec
	hookPanics   prometheus.Counter
	boots        *prometheus.CounterVec
	bootDuration prometheus.Histogram
	shellBytes   *prometheus.GaugeVec
}

// Option configures a [Recorder].
type Option func(*options)

type options struct {
	namespace   string
	bootBuckets []float64
}

// WithNamespace prefixes every metric name (default "placesweb").
func WithNamespace(ns string) Option {
	return func(o *options) { o.namespace = ns }
}

// WithBootBuckets overrides [DefaultBootBuckets].
func WithBootBuckets(buckets ...float64) Option {
	return func(o *options) { o.bootBuckets = buckets }
}

// New creates a Recorder with its metrics registered.
func New(opts ...Option) (*Recorder, error) {
	o := &options{namespace: "placesweb", bootBuckets: DefaultBootBuckets}
	for _, opt := range opts {
		opt(o)
	}
	if !slices.IsSorted(o.bootBuckets) || len(o.bootBuckets) == 0 {
		return nil, fmt.Errorf("metrics: boot buckets must be non-empty and sorted: %v", o.bootBuckets)
	}

	r := &Recorder{
		registry: prometheus.NewRegistry(),
		navigations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "navigations_total",
			Help:      "Completed navigations by route and mode.",
		}, []string{"route", "mode"}),
		hookPanics: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "navigation_hook_panics_total",
			Help:      "Navigation hooks that panicked and were recovered.",
		}),
		boots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "boots_total",
			Help:      "Application boots by outcome.",
		}, []string{"outcome"}),
		bootDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Name:      "boot_duration_seconds",
			Help:      "Time from Run until the UI root was mounted or boot failed.",
			Buckets:   o.bootBuckets,
		}),
		shellBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: o.namespace,
			Name:      "shell_artifact_bytes",
			Help:      "Size of the last built shell artifact by encoding.",
		}, []string{"encoding"}),
	}

	for _, c := range []prometheus.Collector{r.navigations, r.hookPanics, r.boots, r.bootDuration, r.shellBytes} {
		if err := r.registry.Register(c); err != nil {
			return nil, fmt.Errorf("metrics: register: %w", err)
		}
	}

	return r, nil
}

// MustNew is like [New] but panics on error.
func MustNew(opts ...Option) *Recorder {
	r, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Registry exposes the underlying registry, e.g. for promhttp in an
// embedding process.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveNavigation is a [router.NavigationHook]; register it with
// [router.Router.AfterEach].
func (r *Recorder) ObserveNavigation(_ context.Context, nav *router.Navigation) {
	route := unmatchedRoute
	if nav.To != nil && nav.To.IsMatched() {
		route = nav.To.Name
	}
	r.navigations.WithLabelValues(route, navigationMode(nav)).Inc()
}

func navigationMode(nav *router.Navigation) string {
	switch {
	case nav.Initial:
		return "initial"
	case nav.Replace:
		return "replace"
	case nav.Traversal:
		return "traverse"
	default:
		return "push"
	}
}

// OnDiagnostic implements [router.DiagnosticHandler]; it counts recovered
// hook panics.
func (r *Recorder) OnDiagnostic(_ context.Context, e router.DiagnosticEvent) {
	if e.Kind == router.DiagHookPanic {
		r.hookPanics.Inc()
	}
}

// ObserveBoot records one boot attempt.
func (r *Recorder) ObserveBoot(outcome string, took time.Duration) {
	r.boots.WithLabelValues(outcome).Inc()
	r.bootDuration.Observe(took.Seconds())
}

// ObserveShellArtifact records the size of a built artifact. encoding is
// "identity", "br" or "gzip".
func (r *Recorder) ObserveShellArtifact(encoding string, size int) {
	r.shellBytes.WithLabelValues(encoding).Set(float64(size))
}

// Snapshot gathers counter and gauge values keyed as name{label="value",...}
// and histogram sample counts keyed as name_count. It is meant for CLI
// summaries and tests, not for scraping.
func (r *Recorder) Snapshot() (map[string]float64, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return nil, err
	}

	out := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			key := mf.GetName()
			if len(labels) > 0 {
				key += "{" + strings.Join(labels, ",") + "}"
			}

			switch {
			case m.GetCounter() != nil:
				out[key] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				out[key] = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				out[mf.GetName()+"_count"] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return out, nil
}
