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

package shell

import (
	"errors"
	"log/slog"

	"github.com/placesapp/placesweb/app"
	"github.com/placesapp/placesweb/logging"
	"github.com/placesapp/placesweb/metrics"
)

var (
	// ErrUnknownEncoding indicates a precompression encoding other than br or gzip.
	ErrUnknownEncoding = errors.New("unknown encoding")

	// ErrInvalidSelector indicates a mount selector that is not an id selector.
	ErrInvalidSelector = errors.New("mount selector must be an id selector")

	// ErrNoElement indicates a mount at a selector the document does not have.
	ErrNoElement = errors.New("no element matches selector")
)

// Encodings accepted by [WithPrecompress].
const (
	EncodingBrotli = "br"
	EncodingGzip   = "gzip"
)

// Option configures a [Shell].
type Option func(*config)

type config struct {
	title       string
	lang        string
	version     string
	base        string
	selector    string
	maps        app.MapsSettings
	precompress []string
	gzipLevel   int
	brotliLevel int
	logger      *logging.Logger
	metrics     *metrics.Recorder
}

func defaultConfig() *config {
	return &config{
		title:       "Places",
		lang:        "ru",
		version:     "dev",
		selector:    app.DefaultSelector,
		maps:        app.DefaultMapsSettings(),
		gzipLevel:   9,
		brotliLevel: 11,
	}
}

// WithTitle sets the document title.
func WithTitle(title string) Option {
	return func(c *config) { c.title = title }
}

// WithLang sets the html lang attribute.
func WithLang(lang string) Option {
	return func(c *config) { c.lang = lang }
}

// WithVersion sets the version written to the generator meta tag.
func WithVersion(version string) Option {
	return func(c *config) { c.version = version }
}

// WithBase sets the public path the app is served under.
func WithBase(base string) Option {
	return func(c *config) { c.base = base }
}

// WithSelector sets the mount selector; it must have the form "#id".
func WithSelector(selector string) Option {
	return func(c *config) { c.selector = selector }
}

// WithMaps sets the map integration settings. The loader script is emitted
// only when they are enabled.
func WithMaps(m app.MapsSettings) Option {
	return func(c *config) { c.maps = m }
}

// WithPrecompress makes [Shell.Build] also write compressed artifacts.
// Valid encodings are [EncodingBrotli] and [EncodingGzip].
func WithPrecompress(encodings ...string) Option {
	return func(c *config) { c.precompress = encodings }
}

// WithGzipLevel sets the gzip compression level.
// Valid values: 0 (no compression) to 9 (best compression). Default: 9,
// since artifacts are compressed once at build time.
func WithGzipLevel(level int) Option {
	return func(c *config) { c.gzipLevel = max(0, min(level, 9)) }
}

// WithBrotliLevel sets the Brotli compression level.
// Valid values: 0 (no compression) to 11 (best compression). Default: 11.
func WithBrotliLevel(level int) Option {
	return func(c *config) { c.brotliLevel = max(0, min(level, 11)) }
}

// WithLogger logs written artifacts.
func WithLogger(l *logging.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithMetrics records artifact sizes.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(c *config) { c.metrics = rec }
}

// WithSettings applies the shell, maps, service and router sections of s.
func WithSettings(s *app.Settings) Option {
	return func(c *config) {
		if s == nil {
			return
		}
		c.title = s.Shell.Title
		c.lang = s.Shell.Lang
		c.version = s.Service.Version
		c.base = s.Router.Base
		c.maps = s.Maps
		c.precompress = s.Shell.Precompress
	}
}

func (c *config) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger.Logger()
}
