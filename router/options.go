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

package router

import (
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// Option configures a [Router].
type Option func(*Router)

// WithHistory sets the history the router reads its initial location from
// and writes navigations to. The default is a [MemoryHistory] at "/".
//
// Example:
//
//	r := router.MustNew(table, router.WithHistory(router.NewMemoryHistory("/catalog")))
func WithHistory(h History) Option {
	return func(r *Router) {
		r.history = h
	}
}

// WithBase sets a path prefix that is stripped from history locations before
// resolution and prepended when writing to the history.
//
// Example:
//
//	// history holds "/places/catalog", the table sees "/catalog"
//	r := router.MustNew(table, router.WithBase("/places"))
func WithBase(base string) Option {
	return func(r *Router) {
		r.base = normalizeBase(base)
	}
}

// WithDiagnostics sets a diagnostic handler for the router.
//
// Example:
//
//	handler := router.DiagnosticHandlerFunc(func(ctx context.Context, e router.DiagnosticEvent) {
//	    logger.InfoContext(ctx, e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	r := router.MustNew(table, router.WithDiagnostics(handler))
func WithDiagnostics(handler DiagnosticHandler) Option {
	return func(r *Router) {
		r.diagnostics = handler
	}
}

// WithIDGenerator overrides how navigation IDs are generated.
// Mostly useful in tests that need deterministic IDs.
func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(r *Router) {
		if fn != nil {
			r.newID = fn
		}
	}
}

// WithTracer traces every navigation as a "router.navigate" span.
// The default tracer records nothing.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Router) {
		if tracer != nil {
			r.tracer = tracer
		}
	}
}

// normalizeBase turns "places/", "/places/" and "/places" into "/places".
// The root base "/" becomes "".
func normalizeBase(base string) string {
	base = strings.Trim(strings.TrimSpace(base), "/")
	if base == "" {
		return ""
	}
	return "/" + base
}
