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

// Package app boots the places shell: it owns the router, installs plugins,
// waits for the router to become ready and mounts the UI root.
//
// # Boot sequence
//
// [App.Run] installs plugins ([RouterPlugin] first, [MapsPlugin] when map
// integration is enabled), runs OnStart hooks and waits for the router's
// initial navigation. A rejected wait is logged once as a
// "router_not_ready" event and returned wrapped in [ErrRouterNotReady]; the
// root is never mounted in that case. Otherwise the app enters
// [StateReady], replaces an unmatched location with "/", mounts the
// [Root] at "#app" exactly once and runs OnReady hooks.
//
// # Constructor Pattern
//
//   - New() returns (*App, error) because option validation and router
//     construction can fail.
//   - MustNew() panics on error and is meant for main().
//
// # Diagnostics
//
// Router diagnostics are written to a [logging.EventLogger], the app's
// logger by default. Tests can substitute their own with [WithEventLogger].
//
// # Example
//
//	a := app.MustNew(
//	    app.WithRoutes(places.MustRoutes()),
//	    app.WithRouterOptions(router.WithHistory(router.NewMemoryHistory("/catalog"))),
//	)
//	if err := a.Run(ctx); err != nil {
//	    return err
//	}
//	defer a.Shutdown(ctx)
//
// # Configuration
//
// [LoadSettings] reads [Settings] from files and the environment; the
// GEOCODER_API_KEY variable fills maps.apikey. Pass the result to
// [WithSettings].
package app
