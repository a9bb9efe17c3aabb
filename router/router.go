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

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// startLabel names the origin of the initial navigation in diagnostics.
const startLabel = "(start)"

// Navigation describes a single transition between locations.
// It is created for every path change, handed to hooks and then discarded.
type Navigation struct {
	ID uuid.UUID
	// From is the previous location, nil for the initial navigation.
	From *Location
	To   *Location
	// Matched is the matched sequence of To; empty when nothing matched.
	Matched []*Record
	Initial bool
	Replace bool
	// Traversal is set when the history moved back or forward.
	Traversal bool
}

// NavigationHook observes a navigation. Hooks cannot cancel or redirect.
type NavigationHook func(ctx context.Context, nav *Navigation)

type navigationMode int

const (
	modeInitial navigationMode = iota
	modePush
	modeReplace
	modeTraverse
)

func (m navigationMode) String() string {
	switch m {
	case modeInitial:
		return "initial"
	case modeReplace:
		return "replace"
	case modeTraverse:
		return "traverse"
	default:
		return "push"
	}
}

// Router is a navigation context over a [Table].
//
// A Router is created explicitly and owned by the application root; it is
// safe for concurrent use. Navigations are serialized.
type Router struct {
	table       *Table
	history     History
	base        string
	diagnostics DiagnosticHandler
	newID       func() uuid.UUID
	tracer      trace.Tracer

	hooksMu sync.RWMutex
	before  []NavigationHook
	after   []NavigationHook

	navMu   sync.Mutex
	current atomic.Pointer[Location]

	startOnce sync.Once
	started   atomic.Bool
	ready     chan struct{}
	readyErr  error // written before ready is closed
}

// New creates a Router over table.
//
// Errors:
//   - [ErrNilTable] if table is nil
//   - [ErrNilHistory] if [WithHistory] was given nil
func New(table *Table, opts ...Option) (*Router, error) {
	if table == nil {
		return nil, ErrNilTable
	}

	r := &Router{
		table:   table,
		history: NewMemoryHistory("/"),
		newID:   uuid.New,
		tracer:  noop.NewTracerProvider().Tracer(""),
		ready:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.history == nil {
		return nil, ErrNilHistory
	}

	return r, nil
}

// MustNew is like [New] but panics on error.
func MustNew(table *Table, opts ...Option) *Router {
	r, err := New(table, opts...)
	if err != nil {
		panic(fmt.Sprintf("router: %v", err))
	}
	return r
}

// Table returns the route table.
func (r *Router) Table() *Table {
	return r.table
}

// History returns the history the router writes to.
func (r *Router) History() History {
	return r.history
}

// Base returns the normalized base prefix ("" when unset).
func (r *Router) Base() string {
	return r.base
}

// BeforeEach registers a hook that runs before every navigation,
// after the start diagnostic is emitted.
func (r *Router) BeforeEach(hook NavigationHook) {
	r.hooksMu.Lock()
	defer r.hooksMu.Unlock()
	r.before = append(r.before, hook)
}

// AfterEach registers a hook that runs after every completed navigation.
func (r *Router) AfterEach(hook NavigationHook) {
	r.hooksMu.Lock()
	defer r.hooksMu.Unlock()
	r.after = append(r.after, hook)
}

// Start begins resolving the initial location read from the history.
// Resolution runs asynchronously; use [Router.Ready] to wait for it.
// Calling Start more than once has no effect.
func (r *Router) Start(ctx context.Context) {
	r.startOnce.Do(func() {
		r.started.Store(true)
		go func() {
			defer close(r.ready)
			r.readyErr = r.initialNavigation(ctx)
		}()
	})
}

// Ready blocks until the initial navigation has completed and returns its
// outcome. It applies no timeout of its own; ctx cancellation ends the wait.
//
// Errors:
//   - [ErrNotStarted] if [Router.Start] was not called
//   - [ErrInitialNavigation] if the initial location could not be resolved
//   - ctx.Err() if ctx is done first
func (r *Router) Ready(ctx context.Context) error {
	if !r.started.Load() {
		return ErrNotStarted
	}

	select {
	case <-r.ready:
		return r.readyErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Current returns the current location, or nil before the initial navigation.
func (r *Router) Current() *Location {
	return r.current.Load()
}

// Resolve resolves a path against the route table without navigating.
func (r *Router) Resolve(to string) (*Location, error) {
	return r.table.Resolve(to)
}

// URLFor builds the path of a named route.
func (r *Router) URLFor(name string, params map[string]string, query url.Values) (string, error) {
	return r.table.URLFor(name, params, query)
}

// Push navigates to a path and adds a history entry.
func (r *Router) Push(ctx context.Context, to string) (*Location, error) {
	return r.navigate(ctx, to, modePush)
}

// Replace navigates to a path and replaces the current history entry.
func (r *Router) Replace(ctx context.Context, to string) (*Location, error) {
	return r.navigate(ctx, to, modeReplace)
}

// Back moves the history one entry back and navigates to it.
//
// Errors:
//   - [ErrNoHistoryEntry] at the first entry or when the history is not a [Traverser]
func (r *Router) Back(ctx context.Context) (*Location, error) {
	return r.traverse(ctx, Traverser.Back)
}

// Forward moves the history one entry forward and navigates to it.
//
// Errors:
//   - [ErrNoHistoryEntry] at the last entry or when the history is not a [Traverser]
func (r *Router) Forward(ctx context.Context) (*Location, error) {
	return r.traverse(ctx, Traverser.Forward)
}

func (r *Router) traverse(ctx context.Context, step func(Traverser) bool) (*Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, ok := r.history.(Traverser)
	if !ok {
		return nil, ErrNoHistoryEntry
	}

	r.navMu.Lock()
	defer r.navMu.Unlock()

	if !step(t) {
		return nil, ErrNoHistoryEntry
	}
	loc, err := r.table.Resolve(r.stripBase(r.history.Location()))
	if err != nil {
		return nil, err
	}
	return r.transitionLocked(ctx, loc, modeTraverse)
}

func (r *Router) navigate(ctx context.Context, to string, mode navigationMode) (*Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	loc, err := r.table.Resolve(to)
	if err != nil {
		return nil, err
	}

	return r.transition(ctx, loc, mode)
}

func (r *Router) initialNavigation(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrInitialNavigation, err)
	}

	raw := r.stripBase(r.history.Location())
	loc, err := r.table.Resolve(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInitialNavigation, err)
	}

	if _, err = r.transition(ctx, loc, modeInitial); err != nil {
		return fmt.Errorf("%w: %w", ErrInitialNavigation, err)
	}

	r.emit(ctx, DiagRouterReady, "Router ready", map[string]any{
		"path":    loc.FullPath,
		"matched": len(loc.Matched),
	})

	return nil
}

// transition runs a navigation to an already resolved location.
// The start and complete diagnostics are observability only.
func (r *Router) transition(ctx context.Context, to *Location, mode navigationMode) (*Location, error) {
	r.navMu.Lock()
	defer r.navMu.Unlock()
	return r.transitionLocked(ctx, to, mode)
}

// transitionLocked must be called with navMu held.
func (r *Router) transitionLocked(ctx context.Context, to *Location, mode navigationMode) (*Location, error) {
	from := r.current.Load()
	nav := &Navigation{
		ID:        r.newID(),
		From:      from,
		To:        to,
		Matched:   to.Matched,
		Initial:   mode == modeInitial,
		Replace:   mode == modeReplace,
		Traversal: mode == modeTraverse,
	}

	fromLabel := startLabel
	if from != nil {
		fromLabel = from.FullPath
	}

	ctx, span := r.tracer.Start(ctx, "router.navigate", trace.WithAttributes(
		attribute.String("navigation.id", nav.ID.String()),
		attribute.String("navigation.mode", mode.String()),
		attribute.String("navigation.from", fromLabel),
		attribute.String("navigation.to", to.FullPath),
	))
	defer span.End()

	r.emit(ctx, DiagNavigationStart, fmt.Sprintf("Navigation: %s -> %s", fromLabel, to.FullPath), map[string]any{
		"navigation_id": nav.ID.String(),
		"from":          fromLabel,
		"to":            to.FullPath,
	})

	r.hooksMu.RLock()
	before := append([]NavigationHook(nil), r.before...)
	after := append([]NavigationHook(nil), r.after...)
	r.hooksMu.RUnlock()

	r.runHooks(ctx, "before", before, nav)

	var err error
	switch mode {
	case modePush:
		err = r.history.Push(r.withBase(to.FullPath))
	case modeReplace:
		err = r.history.Replace(r.withBase(to.FullPath))
	case modeInitial, modeTraverse:
		// the history already holds the location
	}
	if err != nil {
		err = fmt.Errorf("history write for %q: %w", to.FullPath, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	r.current.Store(to)

	if !to.IsMatched() {
		r.emit(ctx, DiagNoMatch, fmt.Sprintf("No match found for location with path %q", to.Path), map[string]any{
			"navigation_id": nav.ID.String(),
			"path":          to.Path,
		})
	}

	span.SetAttributes(attribute.String("navigation.route", to.Name), attribute.Int("navigation.matched", len(to.Matched)))
	r.emit(ctx, DiagNavigationComplete, "Transition complete: "+to.FullPath, map[string]any{
		"navigation_id": nav.ID.String(),
		"to":            to.FullPath,
		"route":         to.Name,
	})

	r.runHooks(ctx, "after", after, nav)

	return to, nil
}

// runHooks calls each hook, recovering panics so an observer cannot break
// a navigation.
func (r *Router) runHooks(ctx context.Context, stage string, hooks []NavigationHook, nav *Navigation) {
	for i, hook := range hooks {
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					r.emit(ctx, DiagHookPanic, "navigation hook panic", map[string]any{
						"stage":         stage,
						"hook":          i,
						"navigation_id": nav.ID.String(),
						"error":         fmt.Sprint(rec),
					})
				}
			}()
			hook(ctx, nav)
		}()
	}
}

func (r *Router) stripBase(p string) string {
	if r.base == "" {
		return p
	}
	rest, ok := strings.CutPrefix(p, r.base)
	if !ok {
		return p
	}
	if rest == "" || rest[0] == '?' || rest[0] == '#' {
		return "/" + rest
	}
	if rest[0] != '/' {
		// "/placesx" does not live under "/places"
		return p
	}
	return rest
}

func (r *Router) withBase(p string) string {
	if r.base == "" {
		return p
	}
	if p == "/" {
		return r.base
	}
	if strings.HasPrefix(p, "/?") || strings.HasPrefix(p, "/#") {
		return r.base + p[1:]
	}
	return r.base + p
}
