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

// Package logging provides structured logging on top of [log/slog].
//
// # Basic Usage
//
//	logger := logging.MustNew(logging.WithConsoleHandler())
//	defer logger.Shutdown(context.Background())
//	logger.Info("shell built", "out", "dist/index.html")
//
// # Handlers
//
// Three handlers are available: JSON (default), text and console. The console
// handler colors its output with lipgloss when writing to a terminal and
// falls back to plain text otherwise.
//
// # Redaction
//
// Attributes named like credentials (password, token, secret, api_key,
// apikey, authorization, geocoder_api_key, ymaps_api_key) are replaced with
// "***REDACTED***" by every handler.
//
// # Events
//
// [Logger.LogEvent] writes a diagnostic with a "kind" attribute and sorted
// fields. It is the [EventLogger] capability the application hands to the
// router diagnostics bridge:
//
//	logger.LogEvent(ctx, logging.LevelInfo, "navigation_complete",
//	    "Transition complete: /catalog", map[string]any{"route": "Catalog"})
//
// # Trace Correlation
//
// [ContextLogger] and [Logger.LogEvent] add trace_id and span_id when the
// context carries a valid OpenTelemetry span context.
//
// # Testing
//
// [NewTestHelper] returns a logger writing JSON into a concurrency-safe
// buffer along with helpers to inspect the parsed entries.
package logging
