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

package tracing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Provider selects where spans go.
type Provider string

const (
	// NoopProvider records nothing.
	NoopProvider Provider = "noop"
	// StdoutProvider writes finished spans as JSON.
	StdoutProvider Provider = "stdout"
)

// ErrNilWriter indicates that [WithStdout] was given a nil writer.
var ErrNilWriter = errors.New("stdout provider needs a writer")

// Tracer owns a tracer provider and its shutdown.
type Tracer struct {
	provider       Provider
	serviceName    string
	serviceVersion string
	sampleRate     float64
	output         io.Writer
	prettyPrint    bool

	tracerProvider trace.TracerProvider
	sdkProvider    *sdktrace.TracerProvider // nil for noop

	shutdownOnce sync.Once
	shutdownErr  error
}

// Option configures a [Tracer].
type Option func(*Tracer)

// WithServiceName sets the service.name resource attribute.
func WithServiceName(name string) Option {
	return func(t *Tracer) {
		t.serviceName = name
	}
}

// WithServiceVersion sets the service.version resource attribute.
func WithServiceVersion(version string) Option {
	return func(t *Tracer) {
		t.serviceVersion = version
	}
}

// WithNoop selects [NoopProvider].
func WithNoop() Option {
	return func(t *Tracer) {
		t.provider = NoopProvider
		t.output = nil
	}
}

// WithStdout selects [StdoutProvider] writing to w.
func WithStdout(w io.Writer) Option {
	return func(t *Tracer) {
		t.provider = StdoutProvider
		t.output = w
	}
}

// WithPrettyPrint indents the JSON written by [StdoutProvider].
func WithPrettyPrint() Option {
	return func(t *Tracer) {
		t.prettyPrint = true
	}
}

// WithSampleRate sets the fraction of traces sampled, clamped to [0, 1].
// Child spans follow their parent's decision.
func WithSampleRate(rate float64) Option {
	return func(t *Tracer) {
		t.sampleRate = min(max(rate, 0), 1)
	}
}

// New creates a Tracer. The default is a noop provider.
func New(opts ...Option) (*Tracer, error) {
	t := &Tracer{
		provider:    NoopProvider,
		serviceName: "placesweb",
		sampleRate:  1,
	}
	for _, opt := range opts {
		opt(t)
	}

	switch t.provider {
	case NoopProvider:
		t.tracerProvider = noop.NewTracerProvider()
	case StdoutProvider:
		if err := t.initStdout(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("tracing: unsupported provider %q", t.provider)
	}
	return t, nil
}

// MustNew is like [New] but panics on error.
func MustNew(opts ...Option) *Tracer {
	t, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Tracer) initStdout() error {
	if t.output == nil {
		return ErrNilWriter
	}

	exporterOpts := []stdouttrace.Option{stdouttrace.WithWriter(t.output)}
	if t.prettyPrint {
		exporterOpts = append(exporterOpts, stdouttrace.WithPrettyPrint())
	}
	exporter, err := stdouttrace.New(exporterOpts...)
	if err != nil {
		return fmt.Errorf("tracing: create stdout exporter: %w", err)
	}

	// Syncer keeps span output ordered with the log lines around it.
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(t.resource()),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(t.sampleRate))),
	)
	t.sdkProvider = tp
	t.tracerProvider = tp
	return nil
}

func (t *Tracer) resource() *resource.Resource {
	attrs := []attribute.KeyValue{attribute.String("service.name", t.serviceName)}
	if t.serviceVersion != "" {
		attrs = append(attrs, attribute.String("service.version", t.serviceVersion))
	}
	return resource.NewSchemaless(attrs...)
}

// Provider reports the configured provider.
func (t *Tracer) Provider() Provider {
	return t.provider
}

// TracerProvider returns the provider to hand to the app and the router.
func (t *Tracer) TracerProvider() trace.TracerProvider {
	return t.tracerProvider
}

// Tracer returns a named tracer from the provider.
func (t *Tracer) Tracer(name string) trace.Tracer {
	return t.tracerProvider.Tracer(name)
}

// Shutdown flushes and stops the exporter. It is safe to call more than once.
func (t *Tracer) Shutdown(ctx context.Context) error {
	t.shutdownOnce.Do(func() {
		if t.sdkProvider != nil {
			t.shutdownErr = t.sdkProvider.Shutdown(ctx)
		}
	})
	return t.shutdownErr
}
