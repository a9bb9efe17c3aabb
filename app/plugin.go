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
)

// Plugin extends the app before it boots. Plugins are installed in order by
// [App.Run]; an install error aborts the boot.
type Plugin interface {
	Name() string
	Install(ctx context.Context, a *App) error
}

// PluginFunc adapts a function to [Plugin].
type PluginFunc struct {
	PluginName string
	Fn         func(ctx context.Context, a *App) error
}

// Name returns the plugin name.
func (p PluginFunc) Name() string { return p.PluginName }

// Install calls Fn.
func (p PluginFunc) Install(ctx context.Context, a *App) error { return p.Fn(ctx, a) }

// RouterPlugin attaches the router to the app: it wires navigation metrics
// and starts the initial navigation. It is always installed first.
type RouterPlugin struct{}

// Name returns "router".
func (RouterPlugin) Name() string { return "router" }

// Install starts the router. The initial navigation runs in the background;
// [App.Run] waits for it afterwards.
func (RouterPlugin) Install(ctx context.Context, a *App) error {
	if a.metrics != nil {
		a.router.AfterEach(a.metrics.ObserveNavigation)
	}
	a.router.Start(ctx)
	return nil
}

// MapsSettings configures the Yandex Maps integration.
type MapsSettings struct {
	// Enabled is the enableMapIntegration flag.
	Enabled    bool   `config:"enabled"`
	APIKey     string `config:"apikey" validate:"required_if=Enabled true"`
	Lang       string `config:"lang" default:"ru_RU" validate:"required"`
	CoordOrder string `config:"coordorder" default:"latlong" validate:"oneof=latlong longlat"`
	Version    string `config:"version" default:"2.1" validate:"required"`
}

// DefaultMapsSettings returns disabled maps with the defaults the shell uses.
func DefaultMapsSettings() MapsSettings {
	return MapsSettings{Lang: "ru_RU", CoordOrder: "latlong", Version: "2.1"}
}

// MapsPlugin exposes the map settings to the app. It is installed only
// when the integration is enabled.
type MapsPlugin struct {
	Settings MapsSettings
}

// Name returns "maps".
func (MapsPlugin) Name() string { return "maps" }

// Install validates the settings and makes them available via [App.Maps].
func (p MapsPlugin) Install(ctx context.Context, a *App) error {
	if p.Settings.APIKey == "" {
		return errors.New("maps: api key is empty")
	}
	settings := p.Settings
	a.mapsInstalled.Store(&settings)
	a.events.LogEvent(ctx, slog.LevelInfo, "maps_enabled", "Map integration enabled", map[string]any{
		"lang":       settings.Lang,
		"coordorder": settings.CoordOrder,
		"version":    settings.Version,
	})
	return nil
}

func (a *App) installPlugins(ctx context.Context) error {
	for _, p := range a.plugins {
		if err := p.Install(ctx, a); err != nil {
			return fmt.Errorf("install plugin %q: %w", p.Name(), err)
		}
	}
	return nil
}
