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
	"io"

	"go.opentelemetry.io/otel/trace"

	"github.com/placesapp/placesweb/logging"
	"github.com/placesapp/placesweb/metrics"
	"github.com/placesapp/placesweb/router"
)

// Environment modes accepted by [WithEnvironment].
const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

// DefaultSelector is where the UI root is mounted.
const DefaultSelector = "#app"

// Option defines functional options for app configuration.
type Option func(*appConfig)

// appConfig holds everything [New] needs before the app is assembled.
type appConfig struct {
	serviceName    string
	serviceVersion string
	environment    string

	table         *router.Table
	routerOptions []router.Option
	diagnostics   []router.DiagnosticHandler

	logger  *logging.Logger
	events  logging.EventLogger
	metrics *metrics.Recorder

	host     Host
	hostSet  bool
	selector string

	maps    MapsSettings
	plugins []Plugin

	bannerOutput   io.Writer
	tracerProvider trace.TracerProvider
}

func defaultConfig() *appConfig {
	return &appConfig{
		serviceName:    "placesweb",
		serviceVersion: "dev",
		environment:    EnvironmentDevelopment,
		selector:       DefaultSelector,
		maps:           DefaultMapsSettings(),
	}
}

// WithServiceName sets the service name shown in the banner and logs.
// An empty name causes validation to fail during [New].
func WithServiceName(name string) Option {
	return func(c *appConfig) {
		c.serviceName = name
	}
}

// WithServiceVersion sets the service version.
// An empty version causes validation to fail during [New].
func WithServiceVersion(version string) Option {
	return func(c *appConfig) {
		c.serviceVersion = version
	}
}

// WithEnvironment sets the environment mode.
// Valid values are "development" or "production". Production strips ANSI
// sequences from the banner and omits the route table from it.
func WithEnvironment(env string) Option {
	return func(c *appConfig) {
		c.environment = env
	}
}

// WithRoutes sets the route table the app navigates over. It is required.
//
// Example:
//
//	app.New(app.WithRoutes(places.MustRoutes()))
func WithRoutes(table *router.Table) Option {
	return func(c *appConfig) {
		c.table = table
	}
}

// WithRouterOptions passes options through to [router.New], e.g. a history
// or a base prefix. Diagnostics are wired by the app; use [WithDiagnostics]
// to add handlers.
func WithRouterOptions(opts ...router.Option) Option {
	return func(c *appConfig) {
		c.routerOptions = append(c.routerOptions, opts...)
	}
}

// WithDiagnostics adds router diagnostic handlers. They receive every event
// after it was written to the event logger.
func WithDiagnostics(handlers ...router.DiagnosticHandler) Option {
	return func(c *appConfig) {
		c.diagnostics = append(c.diagnostics, handlers...)
	}
}

// WithLogger sets the logger. Without it a console logger on stderr is used.
func WithLogger(l *logging.Logger) Option {
	return func(c *appConfig) {
		c.logger = l
	}
}

// WithEventLogger replaces the sink for router diagnostics and boot events.
// By default they go to the app logger.
func WithEventLogger(events logging.EventLogger) Option {
	return func(c *appConfig) {
		c.events = events
	}
}

// WithMetrics records navigations and boots on rec.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(c *appConfig) {
		c.metrics = rec
	}
}

// WithHost sets where the UI root is mounted. Defaults to a [MemoryHost].
func WithHost(h Host) Option {
	return func(c *appConfig) {
		c.host = h
		c.hostSet = true
	}
}

// WithSelector sets the mount selector (default [DefaultSelector]).
func WithSelector(selector string) Option {
	return func(c *appConfig) {
		c.selector = selector
	}
}

// WithMaps sets the map integration settings. The maps plugin is installed
// only when settings.Enabled is true.
func WithMaps(settings MapsSettings) Option {
	return func(c *appConfig) {
		c.maps = settings
	}
}

// WithPlugins appends plugins installed after the built-in ones.
func WithPlugins(plugins ...Plugin) Option {
	return func(c *appConfig) {
		c.plugins = append(c.plugins, plugins...)
	}
}

// WithBannerOutput makes [App.Run] print the startup banner to w.
func WithBannerOutput(w io.Writer) Option {
	return func(c *appConfig) {
		c.bannerOutput = w
	}
}

// WithTracerProvider traces [App.Run] and every navigation with tp.
// The default records nothing.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *appConfig) {
		c.tracerProvider = tp
	}
}

// WithSettings applies loaded [Settings]: service metadata, maps and the
// router base.
func WithSettings(s *Settings) Option {
	return func(c *appConfig) {
		if s == nil {
			return
		}
		c.serviceName = s.Service.Name
		c.serviceVersion = s.Service.Version
		c.environment = s.Service.Environment
		c.maps = s.Maps
		if s.Router.Base != "" {
			c.routerOptions = append(c.routerOptions, router.WithBase(s.Router.Base))
		}
	}
}

// validate checks if the configuration is valid and returns structured errors.
// validate collects all validation errors before returning them.
func (c *appConfig) validate() error {
	var errs ValidationError

	if c.serviceName == "" {
		errs.Add(newEmptyFieldError("serviceName"))
	}

	if c.serviceVersion == "" {
		errs.Add(newEmptyFieldError("serviceVersion"))
	}

	if c.environment != EnvironmentDevelopment && c.environment != EnvironmentProduction {
		errs.Add(newInvalidEnumError("environment", c.environment,
			[]string{EnvironmentDevelopment, EnvironmentProduction}))
	}

	if c.selector == "" {
		errs.Add(newEmptyFieldError("selector"))
	}

	if c.maps.Enabled && c.maps.APIKey == "" {
		errs.Add(newFieldError("maps.apikey", nil, "is required when map integration is enabled", "required_if"))
	}

	return errs.ToError()
}
