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

// Package router provides client-side routing for the places web shell.
//
// The package has two layers:
//
//   - [Table]: an ordered, immutable list of path patterns bound to named
//     views. It resolves a path to zero or one matched records.
//   - [Router]: an explicitly constructed navigation context that owns a
//     [History], tracks the current [Location] and reports every transition
//     through diagnostics and hooks.
//
// # Route Table
//
// Routes are declared once and compiled by [NewTable]. Names must be unique;
// duplicates are rejected at construction:
//
//	table := router.MustNewTable(
//	    router.Route{Path: "/", Name: "Auth", View: authView},
//	    router.Route{Path: "/catalog", Name: "Catalog", View: placesView},
//	    router.Route{Path: "/place/:id", Name: "PlaceDetails", View: detailsView},
//	)
//
// Patterns are matched in declaration order and the first structural match
// wins. A segment starting with ":" binds a parameter of the same name.
// An unmatched path yields an empty matched sequence; no fallback is applied
// at this layer.
//
// # Navigation
//
// A [Router] is created per application and passed by reference; there is no
// package-level instance:
//
//	r := router.MustNew(table,
//	    router.WithHistory(router.NewMemoryHistory("/place/42")),
//	    router.WithDiagnostics(handler),
//	)
//	r.Start(ctx)
//	if err := r.Ready(ctx); err != nil {
//	    // initial resolution failed
//	}
//
// Before each navigation the router emits a [DiagNavigationStart] event
// ("Navigation: <from> -> <to>"), and after it a [DiagNavigationComplete]
// event ("Transition complete: <to>") carrying the resolved route name.
// Hooks registered with [Router.BeforeEach] and [Router.AfterEach] observe
// navigations; they cannot cancel or redirect them.
package router
