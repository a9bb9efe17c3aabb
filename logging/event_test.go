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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func spanContext(t *testing.T) context.Context {
	t.Helper()

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	return trace.ContextWithSpanContext(t.Context(), sc)
}

func TestLogEvent(t *testing.T) {
	t.Parallel()

	th := NewTestHelper(t)
	th.Logger.LogEvent(t.Context(), LevelInfo, "navigation_complete", "Transition complete: /place/42", map[string]any{
		"route": "PlaceDetails",
		"to":    "/place/42",
	})

	th.AssertLog(t, "INFO", "Transition complete: /place/42", map[string]any{
		"kind":  "navigation_complete",
		"route": "PlaceDetails",
		"to":    "/place/42",
	})
	assert.Equal(t, []string{"Transition complete: /place/42"}, th.Messages("navigation_complete"))

	// fields are written in key order after kind
	assert.Regexp(t, `"kind":"navigation_complete","route":"PlaceDetails","to":"/place/42"`, th.Buffer.String())
}

func TestLogEvent_RespectsLevelAndShutdown(t *testing.T) {
	t.Parallel()

	th := NewTestHelper(t, WithLevel(LevelInfo))
	th.Logger.LogEvent(t.Context(), LevelDebug, "k", "hidden", nil)
	require.NoError(t, th.Logger.Shutdown(t.Context()))
	th.Logger.LogEvent(t.Context(), LevelError, "k", "dropped", nil)

	assert.Empty(t, th.Buffer.String())
}

func TestLogEvent_TraceCorrelation(t *testing.T) {
	t.Parallel()

	th := NewTestHelper(t)
	th.Logger.LogEvent(spanContext(t), LevelError, "bootstrap_failed", "router readiness rejected", nil)

	th.AssertLog(t, "ERROR", "router readiness rejected", map[string]any{
		"trace_id": "4bf92f3577b34da6a3ce929d0e0e4736",
		"span_id":  "00f067aa0ba902b7",
	})
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	th := NewTestHelper(t)

	cl := NewContextLogger(spanContext(t), th.Logger)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", cl.TraceID())
	assert.Equal(t, "00f067aa0ba902b7", cl.SpanID())
	cl.Info("with trace")

	plain := NewContextLogger(t.Context(), th.Logger)
	assert.Empty(t, plain.TraceID())
	plain.Warn("without trace")

	entries, err := th.Logs()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", entries[0].Attrs["trace_id"])
	assert.NotContains(t, entries[1].Attrs, "trace_id")
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		Discard.LogEvent(context.Background(), LevelError, "k", "m", nil)
	})
}
