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
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/placesapp/placesweb/logging"
	"github.com/placesapp/placesweb/metrics"
	"github.com/placesapp/placesweb/router"
)

// State is the bootstrapper state.
type State int32

const (
	// StateInitializing lasts until the router signals readiness. A boot
	// whose readiness wait is rejected stays here.
	StateInitializing State = iota
	// StateReady is entered once the router is ready.
	StateReady
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// fallbackPath is where an unmatched initial location is redirected.
const fallbackPath = "/"

// Instrumentation scope names of the app and router tracers.
const (
	appTracerName    = "github.com/placesapp/placesweb/app"
	routerTracerName = "github.com/placesapp/placesweb/router"
)

// App is the application root. It owns the router, the UI root and the
// plugins, and boots them in order with [App.Run].
type App struct {
	config  *appConfig
	router  *router.Router
	root    *Root
	host    Host
	logger  *logging.Logger
	events  logging.EventLogger
	metrics *metrics.Recorder
	plugins []Plugin
	hooks   *Hooks
	tracer  trace.Tracer

	state         atomic.Int32
	running       atomic.Bool
	mounted       atomic.Bool
	mapsInstalled atomic.Pointer[MapsSettings]
}

// New creates an App. The router is created here but not started; nothing
// navigates before [App.Run].
//
// Errors:
//   - [*ValidationError] if service metadata, selector or maps settings are invalid
//   - [ErrNilHost] if [WithHost] was given nil
//   - [router.ErrNilTable] if no table was given with [WithRoutes]
func New(opts ...Option) (*App, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.hostSet && cfg.host == nil {
		return nil, ErrNilHost
	}

	a := &App{
		config:  cfg,
		logger:  cfg.logger,
		events:  cfg.events,
		metrics: cfg.metrics,
		host:    cfg.host,
		hooks:   &Hooks{},
	}

	tp := cfg.tracerProvider
	if tp == nil {
		tp = noop.NewTracerProvider()
	}
	a.tracer = tp.Tracer(appTracerName)

	if a.logger == nil {
		l, err := logging.New(
			logging.WithConsoleHandler(),
			logging.WithOutput(os.Stderr),
			logging.WithServiceName(cfg.serviceName),
			logging.WithServiceVersion(cfg.serviceVersion),
			logging.WithEnvironment(cfg.environment),
		)
		if err != nil {
			return nil, fmt.Errorf("create logger: %w", err)
		}
		a.logger = l
	}
	if a.events == nil {
		a.events = a.logger
	}
	if a.host == nil {
		a.host = NewMemoryHost()
	}

	handlers := []router.DiagnosticHandler{a.diagnosticsBridge()}
	if a.metrics != nil {
		handlers = append(handlers, a.metrics)
	}
	handlers = append(handlers, cfg.diagnostics...)

	routerOpts := append([]router.Option{router.WithTracer(tp.Tracer(routerTracerName))}, cfg.routerOptions...)
	routerOpts = append(routerOpts, router.WithDiagnostics(router.MultiDiagnostics(handlers...)))
	r, err := router.New(cfg.table, routerOpts...)
	if err != nil {
		return nil, fmt.Errorf("create router: %w", err)
	}
	a.router = r
	a.root = &Root{router: r}

	a.plugins = append(a.plugins, RouterPlugin{})
	if cfg.maps.Enabled {
		a.plugins = append(a.plugins, MapsPlugin{Settings: cfg.maps})
	}
	a.plugins = append(a.plugins, cfg.plugins...)

	return a, nil
}

// MustNew creates a new App instance or panics on error.
// MustNew is useful in main() where configuration errors should abort startup.
func MustNew(opts ...Option) *App {
	a, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("app: %v", err))
	}
	return a
}

// Run boots the app:
//
//  1. install plugins (router first, maps only when enabled)
//  2. run OnStart hooks
//  3. wait for router readiness; ctx bounds the wait, the app adds no timeout
//  4. on rejection log one error, mount nothing and return [ErrRouterNotReady]
//  5. otherwise enter [StateReady], replace an unmatched location with "/",
//     mount the UI root and run OnReady hooks
//
// The boot is traced as an "app.run" span; the initial navigation and the
// fallback are its children, so their log events share its trace id.
//
// Run may be called once; later calls return [ErrAlreadyRunning].
func (a *App) Run(ctx context.Context) (err error) {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	started := time.Now()

	ctx, span := a.tracer.Start(ctx, "app.run", trace.WithAttributes(
		attribute.String("service.name", a.config.serviceName),
		attribute.String("app.selector", a.config.selector),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.SetAttributes(attribute.String("app.state", a.State().String()))
		span.End()
	}()

	if err := a.installPlugins(ctx); err != nil {
		a.observeBoot(metrics.OutcomeFailed, started)
		return err
	}
	if err := a.executeStartHooks(ctx); err != nil {
		a.observeBoot(metrics.OutcomeFailed, started)
		return err
	}

	if err := a.router.Ready(ctx); err != nil {
		a.events.LogEvent(ctx, slog.LevelError, "router_not_ready", "Router failed to become ready", map[string]any{
			"error": err.Error(),
		})
		a.observeBoot(metrics.OutcomeFailed, started)
		return fmt.Errorf("%w: %w", ErrRouterNotReady, err)
	}
	a.state.Store(int32(StateReady))

	if cur := a.router.Current(); cur == nil || !cur.IsMatched() {
		if _, err := a.router.Replace(ctx, fallbackPath); err != nil {
			a.observeBoot(metrics.OutcomeFailed, started)
			return fmt.Errorf("fallback navigation: %w", err)
		}
	}

	if err := a.Mount(); err != nil {
		a.observeBoot(metrics.OutcomeFailed, started)
		return err
	}
	a.observeBoot(metrics.OutcomeReady, started)

	if a.config.bannerOutput != nil {
		a.PrintBanner(a.config.bannerOutput)
	}
	a.executeReadyHooks(ctx)

	return nil
}

// Mount attaches the UI root to the host at the configured selector.
// [App.Run] calls it; a second call returns [ErrAlreadyMounted].
func (a *App) Mount() error {
	if !a.mounted.CompareAndSwap(false, true) {
		return ErrAlreadyMounted
	}
	if err := a.host.Mount(a.config.selector, a.root); err != nil {
		a.mounted.Store(false)
		return fmt.Errorf("mount %s: %w", a.config.selector, err)
	}
	return nil
}

// Shutdown runs OnShutdown hooks in reverse order and unmounts the root.
func (a *App) Shutdown(ctx context.Context) error {
	a.executeShutdownHooks(ctx)

	if !a.mounted.CompareAndSwap(true, false) {
		return nil
	}
	if err := a.host.Unmount(a.config.selector); err != nil {
		return fmt.Errorf("unmount %s: %w", a.config.selector, err)
	}
	return nil
}

func (a *App) observeBoot(outcome string, started time.Time) {
	if a.metrics != nil {
		a.metrics.ObserveBoot(outcome, time.Since(started))
	}
}

// State returns the current bootstrapper state.
func (a *App) State() State {
	return State(a.state.Load())
}

// Mounted reports whether the UI root is mounted.
func (a *App) Mounted() bool {
	return a.mounted.Load()
}

// Router returns the app's router.
func (a *App) Router() *router.Router {
	return a.router
}

// Root returns the UI root component.
func (a *App) Root() *Root {
	return a.root
}

// Host returns the mount host.
func (a *App) Host() Host {
	return a.host
}

// Selector returns the mount selector.
func (a *App) Selector() string {
	return a.config.selector
}

// Logger returns the app logger.
func (a *App) Logger() *logging.Logger {
	return a.logger
}

// Plugins returns the plugins in install order.
func (a *App) Plugins() []Plugin {
	return append([]Plugin(nil), a.plugins...)
}

// Maps returns the map settings installed by [MapsPlugin]. ok is false when
// the integration is disabled or the app has not run.
func (a *App) Maps() (settings MapsSettings, ok bool) {
	if m := a.mapsInstalled.Load(); m != nil {
		return *m, true
	}
	return MapsSettings{}, false
}

// ServiceName returns the configured service name.
func (a *App) ServiceName() string {
	return a.config.serviceName
}

// ServiceVersion returns the configured service version.
func (a *App) ServiceVersion() string {
	return a.config.serviceVersion
}

// Environment returns the environment mode.
func (a *App) Environment() string {
	return a.config.environment
}

// IsRouterNotReady reports whether err came from a rejected readiness wait.
func IsRouterNotReady(err error) bool {
	return errors.Is(err, ErrRouterNotReady)
}
