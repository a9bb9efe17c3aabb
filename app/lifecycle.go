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
	"fmt"
	"log/slog"
	"sync"
)

// Hooks manages application lifecycle hooks.
type Hooks struct {
	onStart    []func(context.Context) error // Sequential, stops on first error
	onReady    []func()                      // After mount, panics recovered
	onShutdown []func(context.Context)       // LIFO order
	mu         sync.Mutex                    // Protects hook slices
}

// OnStart registers a hook that runs after plugins are installed and before
// the readiness wait. Hooks run sequentially, and if any hook returns an
// error, the boot is aborted and nothing is mounted.
//
// Example:
//
//	a.OnStart(func(ctx context.Context) error {
//	    return catalog.Warm(ctx)
//	})
func (a *App) OnStart(fn func(context.Context) error) {
	a.hooks.mu.Lock()
	defer a.hooks.mu.Unlock()
	a.hooks.onStart = append(a.hooks.onStart, fn)
}

// OnReady registers a hook that runs once the UI root is mounted.
// A panicking hook is logged and does not affect the mounted root.
func (a *App) OnReady(fn func()) {
	a.hooks.mu.Lock()
	defer a.hooks.mu.Unlock()
	a.hooks.onReady = append(a.hooks.onReady, fn)
}

// OnShutdown registers a hook that runs during [App.Shutdown].
// Hooks run in reverse order (LIFO) before the root is unmounted.
func (a *App) OnShutdown(fn func(context.Context)) {
	a.hooks.mu.Lock()
	defer a.hooks.mu.Unlock()
	a.hooks.onShutdown = append(a.hooks.onShutdown, fn)
}

// executeStartHooks runs all OnStart hooks sequentially.
// It returns an error if any hook fails.
func (a *App) executeStartHooks(ctx context.Context) error {
	a.hooks.mu.Lock()
	hooks := make([]func(context.Context) error, len(a.hooks.onStart))
	copy(hooks, a.hooks.onStart)
	a.hooks.mu.Unlock()

	for i, hook := range hooks {
		if err := hook(ctx); err != nil {
			return fmt.Errorf("OnStart hook %d failed: %w", i, err)
		}
	}
	return nil
}

// executeReadyHooks runs all OnReady hooks in registration order.
func (a *App) executeReadyHooks(ctx context.Context) {
	a.hooks.mu.Lock()
	hooks := make([]func(), len(a.hooks.onReady))
	copy(hooks, a.hooks.onReady)
	a.hooks.mu.Unlock()

	for i, hook := range hooks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					a.events.LogEvent(ctx, slog.LevelError, "ready_hook_panic", "OnReady hook panic",
						map[string]any{"hook": i, "error": fmt.Sprint(r)})
				}
			}()
			hook()
		}()
	}
}

// executeShutdownHooks runs all OnShutdown hooks in reverse order (LIFO).
func (a *App) executeShutdownHooks(ctx context.Context) {
	a.hooks.mu.Lock()
	hooks := make([]func(context.Context), len(a.hooks.onShutdown))
	copy(hooks, a.hooks.onShutdown)
	a.hooks.mu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i](ctx)
	}
}
