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

package app

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/placesapp/placesweb/logging"
	"github.com/placesapp/placesweb/metrics"
	"github.com/placesapp/placesweb/router"
)

func testTable() *router.Table {
	text := func(s string) router.View {
		return router.ViewFunc(func(w io.Writer, loc *router.Location) error {
			_, err := io.WriteString(w, s+loc.Param("id"))
			return err
		})
	}
	return router.MustNewTable(
		router.Route{Path: "/", Name: "Auth", View: text("auth")},
		router.Route{Path: "/catalog", Name: "Catalog", View: text("catalog")},
		router.Route{Path: "/favorites", Name: "Favorites", View: text("favorites")},
		router.Route{Path: "/place/:id", Name: "PlaceDetails", View: text("place:")},
	)
}

// newTestApp returns an app whose history starts at initial, logging to th.
func newTestApp(t *testing.T, initial string, opts ...Option) (*App, *logging.TestHelper, *MemoryHost) {
	t.Helper()

	th := logging.NewTestHelper(t)
	host := NewMemoryHost()
	base := []Option{
		WithRoutes(testTable()),
		WithRouterOptions(router.WithHistory(router.NewMemoryHistory(initial))),
		WithLogger(th.Logger),
		WithHost(host),
	}
	return MustNew(append(base, opts...)...), th, host
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	a, err := New(WithRoutes(testTable()))
	require.NoError(t, err)

	assert.Equal(t, StateInitializing, a.State())
	assert.Equal(t, DefaultSelector, a.Selector())
	assert.Equal(t, "placesweb", a.ServiceName())
	assert.Equal(t, EnvironmentDevelopment, a.Environment())
	assert.IsType(t, &MemoryHost{}, a.Host())
	assert.NotNil(t, a.Logger())
	assert.False(t, a.Mounted())
	assert.Nil(t, a.Router().Current(), "nothing navigates before Run")

	plugins := a.Plugins()
	require.Len(t, plugins, 1)
	assert.Equal(t, "router", plugins[0].Name())
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	_, err := New(
		WithRoutes(testTable()),
		WithServiceName(""),
		WithEnvironment("staging"),
		WithSelector(""),
		WithMaps(MapsSettings{Enabled: true}),
	)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Errors, 4)
	assert.Equal(t, "serviceName", verr.Errors[0].Field)
	assert.Equal(t, "environment", verr.Errors[1].Field)
	assert.Equal(t, "selector", verr.Errors[2].Field)
	assert.Equal(t, "maps.apikey", verr.Errors[3].Field)
	assert.Contains(t, err.Error(), "validation errors (4)")

	_, err = New(WithRoutes(testTable()), WithHost(nil))
	require.ErrorIs(t, err, ErrNilHost)

	_, err = New()
	require.ErrorIs(t, err, router.ErrNilTable)

	assert.Panics(t, func() { MustNew(WithServiceVersion("")) })
}

func TestRun_MountsMatchedLocation(t *testing.T) {
	t.Parallel()

	a, th, host := newTestApp(t, "/place/42")
	require.NoError(t, a.Run(t.Context()))

	assert.Equal(t, StateReady, a.State())
	assert.True(t, a.Mounted())
	assert.Equal(t, 1, host.MountCount(DefaultSelector))

	root, ok := host.Root(DefaultSelector)
	require.True(t, ok)
	html, err := root.HTML()
	require.NoError(t, err)
	assert.Equal(t, "place:42", html)

	assert.Equal(t, []string{"Navigation: (start) -> /place/42"}, th.Messages(string(router.DiagNavigationStart)))
	assert.Equal(t, []string{"Transition complete: /place/42"}, th.Messages(string(router.DiagNavigationComplete)))
	th.AssertLog(t, "INFO", "Transition complete: /place/42", map[string]any{"route": "PlaceDetails"})
	assert.Zero(t, th.CountLevel("ERROR"))
}

func TestRun_RedirectsUnmatchedToRoot(t *testing.T) {
	t.Parallel()

	a, th, host := newTestApp(t, "/nowhere")
	require.NoError(t, a.Run(t.Context()))

	cur := a.Router().Current()
	require.NotNil(t, cur)
	assert.Equal(t, "Auth", cur.Name)
	assert.Equal(t, []string{"/"}, a.Router().History().(*router.MemoryHistory).Entries())
	assert.Equal(t, 1, host.MountCount(DefaultSelector))

	assert.Equal(t, []string{
		"Navigation: (start) -> /nowhere",
		"Navigation: /nowhere -> /",
	}, th.Messages(string(router.DiagNavigationStart)))
	assert.Len(t, th.Messages(string(router.DiagNoMatch)), 1)
	assert.Equal(t, 1, th.CountLevel("WARN"))
}

func TestRun_RejectedReadinessNeverMounts(t *testing.T) {
	t.Parallel()

	a, th, host := newTestApp(t, "/place/%zz")
	err := a.Run(t.Context())
	require.ErrorIs(t, err, ErrRouterNotReady)
	require.ErrorIs(t, err, router.ErrInitialNavigation)
	assert.True(t, IsRouterNotReady(err))

	assert.Equal(t, StateInitializing, a.State())
	assert.False(t, a.Mounted())
	assert.Zero(t, host.MountCount(DefaultSelector))

	assert.Equal(t, 1, th.CountLevel("ERROR"))
	assert.Equal(t, []string{"Router failed to become ready"}, th.Messages("router_not_ready"))
}

func TestRun_CancelledWait(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	a, th, host := newTestApp(t, "/")
	err := a.Run(ctx)
	require.ErrorIs(t, err, ErrRouterNotReady)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, host.MountCount(DefaultSelector))
	assert.Equal(t, 1, th.CountLevel("ERROR"))
}

func TestRun_OnlyOnce(t *testing.T) {
	t.Parallel()

	a, _, host := newTestApp(t, "/catalog")
	require.NoError(t, a.Run(t.Context()))
	require.ErrorIs(t, a.Run(t.Context()), ErrAlreadyRunning)
	require.ErrorIs(t, a.Mount(), ErrAlreadyMounted)
	assert.Equal(t, 1, host.MountCount(DefaultSelector))
}

type failingHost struct{ *MemoryHost }

func (failingHost) Mount(string, *Root) error { return errors.New("no #app element") }

func TestRun_MountError(t *testing.T) {
	t.Parallel()

	rec := metrics.MustNew()
	a, _, _ := newTestApp(t, "/", WithHost(failingHost{NewMemoryHost()}), WithMetrics(rec))

	err := a.Run(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no #app element")
	assert.False(t, a.Mounted())

	snap, err := rec.Snapshot()
	require.NoError(t, err)
	assert.InDelta(t, 1, snap[`placesweb_boots_total{outcome="failed"}`], 0)
}

func TestRun_PluginsInOrder(t *testing.T) {
	t.Parallel()

	var order []string
	record := func(name string, err error) Plugin {
		return PluginFunc{PluginName: name, Fn: func(context.Context, *App) error {
			order = append(order, name)
			return err
		}}
	}

	a, _, _ := newTestApp(t, "/", WithPlugins(record("first", nil), record("second", nil)))
	require.NoError(t, a.Run(t.Context()))
	assert.Equal(t, []string{"first", "second"}, order)

	boom := errors.New("boom")
	b, _, host := newTestApp(t, "/", WithPlugins(record("broken", boom)))
	err := b.Run(t.Context())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `install plugin "broken"`)
	assert.Zero(t, host.MountCount(DefaultSelector))
}

func TestRun_MapsPlugin(t *testing.T) {
	t.Parallel()

	maps := DefaultMapsSettings()
	maps.Enabled = true
	maps.APIKey = "k-123"

	a, th, _ := newTestApp(t, "/", WithMaps(maps))
	require.Len(t, a.Plugins(), 2)
	assert.Equal(t, "maps", a.Plugins()[1].Name())

	_, ok := a.Maps()
	assert.False(t, ok, "not installed before Run")

	require.NoError(t, a.Run(t.Context()))
	got, ok := a.Maps()
	require.True(t, ok)
	assert.Equal(t, "k-123", got.APIKey)
	assert.Equal(t, []string{"Map integration enabled"}, th.Messages("maps_enabled"))
	assert.NotContains(t, th.Buffer.String(), "k-123")

	disabled, _, _ := newTestApp(t, "/")
	require.NoError(t, disabled.Run(t.Context()))
	_, ok = disabled.Maps()
	assert.False(t, ok)

	err := MapsPlugin{}.Install(t.Context(), disabled)
	require.Error(t, err)
}

func TestRun_MetricsAndEventLogger(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		kinds []string
	)
	events := logging.EventLoggerFunc(func(_ context.Context, _ logging.Level, kind, _ string, _ map[string]any) {
		mu.Lock()
		defer mu.Unlock()
		kinds = append(kinds, kind)
	})
	rec := metrics.MustNew()

	a, th, _ := newTestApp(t, "/unknown", WithEventLogger(events), WithMetrics(rec))
	require.NoError(t, a.Run(t.Context()))

	mu.Lock()
	assert.Equal(t, []string{
		"navigation_start", "navigation_no_match", "navigation_complete", "router_ready",
		"navigation_start", "navigation_complete",
	}, kinds)
	mu.Unlock()
	assert.Empty(t, th.Buffer.String(), "events bypass the logger")

	snap, err := rec.Snapshot()
	require.NoError(t, err)
	assert.InDelta(t, 1, snap[`placesweb_navigations_total{mode="initial",route="(none)"}`], 0)
	assert.InDelta(t, 1, snap[`placesweb_navigations_total{mode="replace",route="Auth"}`], 0)
	assert.InDelta(t, 1, snap[`placesweb_boots_total{outcome="ready"}`], 0)
	assert.InDelta(t, 1, snap["placesweb_boot_duration_seconds_count"], 0)
}

func recordingTracer(t *testing.T) (*sdktrace.TracerProvider, *tracetest.SpanRecorder) {
	t.Helper()

	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return tp, spans
}

func TestRun_CorrelatesNavigationLogsWithTrace(t *testing.T) {
	t.Parallel()

	tp, spans := recordingTracer(t)
	a, th, _ := newTestApp(t, "/nowhere", WithTracerProvider(tp))
	require.NoError(t, a.Run(t.Context()))

	ended := spans.Ended()
	require.Len(t, ended, 3)
	run := ended[2]
	assert.Equal(t, "app.run", run.Name())
	assert.Contains(t, run.Attributes(), attribute.String("app.state", "ready"))
	for _, nav := range ended[:2] {
		assert.Equal(t, "router.navigate", nav.Name())
		assert.Equal(t, run.SpanContext().SpanID(), nav.Parent().SpanID())
	}

	logs, err := th.Logs()
	require.NoError(t, err)
	traceID := run.SpanContext().TraceID().String()
	for _, kind := range []string{"navigation_start", "navigation_no_match", "navigation_complete", "router_ready"} {
		var seen int
		for _, e := range logs {
			if e.Kind() == kind {
				seen++
				assert.Equal(t, traceID, e.Attrs["trace_id"], kind)
			}
		}
		assert.Positive(t, seen, kind)
	}
}

func TestRun_RejectionMarksSpanFailed(t *testing.T) {
	t.Parallel()

	tp, spans := recordingTracer(t)
	a, th, _ := newTestApp(t, "/place/%zz", WithTracerProvider(tp))
	require.ErrorIs(t, a.Run(t.Context()), ErrRouterNotReady)

	ended := spans.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "app.run", ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Contains(t, ended[0].Attributes(), attribute.String("app.state", "initializing"))

	logs, err := th.Logs()
	require.NoError(t, err)
	var failures []logging.LogEntry
	for _, e := range logs {
		if e.Kind() == "router_not_ready" {
			failures = append(failures, e)
		}
	}
	require.Len(t, failures, 1)
	assert.Equal(t, ended[0].SpanContext().TraceID().String(), failures[0].Attrs["trace_id"])
}
