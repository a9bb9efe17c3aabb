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
	"log/slog"

	"github.com/placesapp/placesweb/logging"
	"github.com/placesapp/placesweb/router"
)

// diagnosticLevels maps router diagnostics to log levels. Unknown kinds log
// at debug.
var diagnosticLevels = map[router.DiagnosticKind]logging.Level{
	router.DiagNavigationStart:    slog.LevelInfo,
	router.DiagNavigationComplete: slog.LevelInfo,
	router.DiagRouterReady:        slog.LevelInfo,
	router.DiagNoMatch:            slog.LevelWarn,
	router.DiagHookPanic:          slog.LevelError,
}

// diagnosticsBridge forwards router diagnostics to the event logger.
func (a *App) diagnosticsBridge() router.DiagnosticHandler {
	return router.DiagnosticHandlerFunc(func(ctx context.Context, e router.DiagnosticEvent) {
		level, ok := diagnosticLevels[e.Kind]
		if !ok {
			level = slog.LevelDebug
		}
		a.events.LogEvent(ctx, level, string(e.Kind), e.Message, e.Fields)
	})
}
