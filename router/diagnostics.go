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

import "context"

// DiagnosticEvent represents a navigation diagnostic.
//
// Diagnostic events are optional - the router functions correctly whether
// they are collected or not. They replace console output with structured
// events that can be logged, counted or asserted on in tests.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any // Structured context
}

// DiagnosticKind categorizes diagnostic events.
type DiagnosticKind string

const (
	// Navigation diagnostics
	DiagNavigationStart    DiagnosticKind = "navigation_start"
	DiagNavigationComplete DiagnosticKind = "navigation_complete"
	DiagNoMatch            DiagnosticKind = "navigation_no_match"

	// Lifecycle diagnostics
	DiagRouterReady DiagnosticKind = "router_ready"
	DiagHookPanic   DiagnosticKind = "hook_panic"
)

// DiagnosticHandler receives diagnostic events from the router.
// Implementations may log, emit metrics, or ignore them.
//
// Example with logging:
//
//	handler := router.DiagnosticHandlerFunc(func(ctx context.Context, e router.DiagnosticEvent) {
//	    slog.InfoContext(ctx, e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	r := router.MustNew(table, router.WithDiagnostics(handler))
type DiagnosticHandler interface {
	// OnDiagnostic is called synchronously for each event. ctx is the
	// context of the navigation that produced it, carrying its span.
	OnDiagnostic(ctx context.Context, e DiagnosticEvent)
}

// DiagnosticHandlerFunc is a function adapter for DiagnosticHandler.
type DiagnosticHandlerFunc func(context.Context, DiagnosticEvent)

// OnDiagnostic calls f(ctx, e).
func (f DiagnosticHandlerFunc) OnDiagnostic(ctx context.Context, e DiagnosticEvent) {
	f(ctx, e)
}

// MultiDiagnostics fans events out to several handlers in order.
// Nil handlers are skipped.
func MultiDiagnostics(handlers ...DiagnosticHandler) DiagnosticHandler {
	return DiagnosticHandlerFunc(func(ctx context.Context, e DiagnosticEvent) {
		for _, h := range handlers {
			if h != nil {
				h.OnDiagnostic(ctx, e)
			}
		}
	})
}

// emit sends an event if a handler is configured.
func (r *Router) emit(ctx context.Context, kind DiagnosticKind, msg string, fields map[string]any) {
	if r.diagnostics == nil {
		return
	}
	r.diagnostics.OnDiagnostic(ctx, DiagnosticEvent{Kind: kind, Message: msg, Fields: fields})
}
