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

package logging

import (
	"context"
	"log/slog"
	"maps"
	"slices"
)

// EventLogger is the logEvent(kind, fields) capability handed to components
// that report diagnostics without owning a logger.
type EventLogger interface {
	LogEvent(ctx context.Context, level Level, kind, msg string, fields map[string]any)
}

// EventLoggerFunc adapts a function to [EventLogger].
type EventLoggerFunc func(ctx context.Context, level Level, kind, msg string, fields map[string]any)

// LogEvent calls f(ctx, level, kind, msg, fields).
func (f EventLoggerFunc) LogEvent(ctx context.Context, level Level, kind, msg string, fields map[string]any) {
	f(ctx, level, kind, msg, fields)
}

// Discard drops every event.
var Discard EventLogger = EventLoggerFunc(func(context.Context, Level, string, string, map[string]any) {})

// LogEvent writes msg with a "kind" attribute followed by fields in key order.
// Trace IDs from ctx are added the way [ContextLogger] adds them.
func (l *Logger) LogEvent(ctx context.Context, level Level, kind, msg string, fields map[string]any) {
	if ctx == nil {
		ctx = context.Background()
	}

	args := make([]any, 0, 2*len(fields)+2)
	args = append(args, slog.String("kind", kind))
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		args = append(args, slog.Any(k, fields[k]))
	}

	cl := NewContextLogger(ctx, l)
	if l.isShuttingDown.Load() || !cl.logger.Enabled(ctx, level) {
		return
	}
	cl.logger.Log(ctx, level, msg, args...)
}
