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

import "errors"

var (
	// ErrDuplicateRouteName indicates that two routes were declared with the same name.
	ErrDuplicateRouteName = errors.New("duplicate route name")

	// ErrInvalidRoute indicates that a route declaration failed validation.
	ErrInvalidRoute = errors.New("invalid route")

	// ErrInvalidPattern indicates that a route path pattern could not be compiled.
	ErrInvalidPattern = errors.New("invalid route pattern")

	// ErrInvalidPath indicates that a location could not be parsed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrRouteNotFound indicates that the specified route could not be found.
	ErrRouteNotFound = errors.New("route not found")

	// ErrMissingRouteParameter indicates that a required route parameter is missing.
	ErrMissingRouteParameter = errors.New("missing required parameter")

	// ErrNilTable indicates that a router was created without a route table.
	ErrNilTable = errors.New("route table is nil")

	// ErrNilHistory indicates that a nil history was supplied to [WithHistory].
	ErrNilHistory = errors.New("history is nil")

	// ErrNotStarted indicates that [Router.Ready] was called before [Router.Start].
	ErrNotStarted = errors.New("router not started")

	// ErrInitialNavigation indicates that the initial location could not be resolved.
	ErrInitialNavigation = errors.New("initial navigation failed")

	// ErrNoHistoryEntry indicates that the history has no entry in the
	// requested direction, or cannot traverse at all.
	ErrNoHistoryEntry = errors.New("no history entry")
)
