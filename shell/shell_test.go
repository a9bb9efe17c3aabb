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
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placesapp/placesweb/app"
	"github.com/placesapp/placesweb/logging"
	"github.com/placesapp/placesweb/metrics"
	"github.com/placesapp/placesweb/places"
	"github.com/placesapp/placesweb/router"
)

func enabledMaps(key string) app.MapsSettings {
	m := app.DefaultMapsSettings()
	m.Enabled = true
	m.APIKey = key
	return m
}

func renderString(t *testing.T, s *Shell) string {
	t.Helper()

	var b strings.Builder
	require.NoError(t, s.Render(&b))
	return b.String()
}

func TestRender_Defaults(t *testing.T) {
	t.Parallel()

	out := renderString(t, MustNew())
	assert.Contains(t, out, `<html lang="ru">`)
	assert.Contains(t, out, "<title>Places</title>")
	assert.Contains(t, out, `<base href="/">`)
	assert.Contains(t, out, `<div id="app"></div>`)
	assert.NotContains(t, out, "api-maps.yandex.ru", "maps are disabled by default")
}

func TestRender_InjectsMapsAPIKey(t *testing.T) {
	t.Parallel()

	out := renderString(t, MustNew(
		WithMaps(enabledMaps("99aa-key")),
		WithTitle("Места"),
		WithBase("/places/"),
		WithVersion("1.0.0"),
	))
	assert.Contains(t, out, `src="https://api-maps.yandex.ru/2.1/?apikey=99aa-key&amp;lang=ru_RU&amp;coordorder=latlong"`)
	assert.Contains(t, out, "<title>Места</title>")
	assert.Contains(t, out, `<base href="/places/">`)
	assert.Contains(t, out, `content="placesweb 1.0.0"`)
}

func TestRender_EscapesAPIKey(t *testing.T) {
	t.Parallel()

	out := renderString(t, MustNew(WithMaps(enabledMaps(`"><script>x</script>`))))
	assert.NotContains(t, out, "<script>x</script>")
	assert.Contains(t, out, "apikey=%22%3e%3cscript%3ex%3c%2fscript%3e")
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	_, err := New(WithSelector("app"))
	require.ErrorIs(t, err, ErrInvalidSelector)
	_, err = New(WithSelector("#"))
	require.ErrorIs(t, err, ErrInvalidSelector)
	_, err = New(WithPrecompress("zstd"))
	require.ErrorIs(t, err, ErrUnknownEncoding)
	assert.Panics(t, func() { MustNew(WithSelector(".app")) })
}

func TestWithSettings(t *testing.T) {
	t.Parallel()

	s := &app.Settings{
		Service: app.ServiceSettings{Version: "2.0.0"},
		Maps:    enabledMaps("from-settings"),
		Shell:   app.ShellSettings{Title: "Catalog", Lang: "en", Precompress: []string{"gzip"}},
		Router:  app.RouterSettings{Base: "/p"},
	}
	sh := MustNew(WithSettings(s), WithSettings(nil))
	out := renderString(t, sh)
	assert.Contains(t, out, `<html lang="en">`)
	assert.Contains(t, out, `<base href="/p/">`)
	assert.Contains(t, out, "apikey=from-settings")
	assert.Equal(t, []string{"gzip"}, sh.config.precompress)
}

func TestBuild(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "dist")
	rec := metrics.MustNew()
	logger, logs := logging.NewTestLogger()

	sh := MustNew(
		WithMaps(enabledMaps("k")),
		WithPrecompress(EncodingBrotli, EncodingGzip, EncodingGzip),
		WithGzipLevel(42),
		WithBrotliLevel(-1),
		WithMetrics(rec),
		WithLogger(logger),
	)
	artifacts, err := sh.Build(t.Context(), dir)
	require.NoError(t, err)
	require.Len(t, artifacts, 3)

	page, err := os.ReadFile(filepath.Join(dir, IndexFile))
	require.NoError(t, err)
	assert.Equal(t, "identity", artifacts[0].Encoding)
	assert.Equal(t, len(page), artifacts[0].Size)
	assert.Contains(t, string(page), "apikey=k")

	br, err := os.ReadFile(filepath.Join(dir, IndexFile+".br"))
	require.NoError(t, err)
	plain, err := io.ReadAll(brotli.NewReader(bytes.NewReader(br)))
	require.NoError(t, err)
	assert.Equal(t, page, plain)

	gz, err := os.ReadFile(filepath.Join(dir, IndexFile+".gz"))
	require.NoError(t, err)
	zr, err := gzip.NewReader(bytes.NewReader(gz))
	require.NoError(t, err)
	plain, err = io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, page, plain)

	snap, err := rec.Snapshot()
	require.NoError(t, err)
	assert.InDelta(t, float64(len(page)), snap[`placesweb_shell_artifact_bytes{encoding="identity"}`], 0)
	assert.InDelta(t, float64(len(gz)), snap[`placesweb_shell_artifact_bytes{encoding="gzip"}`], 0)

	entries, err := logging.ParseJSONLogEntries(logs.Bytes())
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestBuild_DeduplicatesEncodings(t *testing.T) {
	t.Parallel()

	rec := metrics.MustNew()
	sh := MustNew(
		WithPrecompress(EncodingBrotli, EncodingGzip, EncodingBrotli, EncodingGzip),
		WithMetrics(rec),
	)
	artifacts, err := sh.Build(t.Context(), t.TempDir())
	require.NoError(t, err)

	encodings := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		encodings = append(encodings, a.Encoding)
	}
	assert.Equal(t, []string{"identity", EncodingBrotli, EncodingGzip}, encodings)
	assert.Equal(t, []string{EncodingBrotli, EncodingGzip, EncodingBrotli, EncodingGzip}, sh.config.precompress)
}

func TestUniqueEncodings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"empty", nil, []string{}},
		{"adjacent", []string{"br", "br", "gzip"}, []string{"br", "gzip"}},
		{"apart", []string{"gzip", "br", "gzip"}, []string{"gzip", "br"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, uniqueEncodings(tt.in))
		})
	}
}

func TestBuild_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	artifacts, err := MustNew(WithPrecompress(EncodingBrotli)).Build(ctx, t.TempDir())
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, artifacts, 1, "index.html is written before compression starts")
}

func TestDocument_HostsApp(t *testing.T) {
	t.Parallel()

	doc := MustNew().Document()
	a := app.MustNew(
		app.WithRoutes(places.MustRoutes()),
		app.WithRouterOptions(router.WithHistory(router.NewMemoryHistory("/place/42"))),
		app.WithLogger(logging.MustNew(logging.WithOutput(io.Discard))),
		app.WithHost(doc),
	)
	require.NoError(t, a.Run(t.Context()))
	assert.True(t, doc.Mounted())
	require.ErrorIs(t, doc.Mount(app.DefaultSelector, a.Root()), app.ErrAlreadyMounted)

	var b strings.Builder
	require.NoError(t, doc.Render(&b))
	assert.Contains(t, b.String(), `<div id="app"><article class="place" data-view="PlaceDetails" data-id="42">`)

	_, err := a.Router().Push(t.Context(), "/favorites")
	require.NoError(t, err)
	b.Reset()
	require.NoError(t, doc.Render(&b))
	assert.Contains(t, b.String(), `data-context="favorites"`)

	artifacts, err := doc.Prerender(t.Context(), t.TempDir())
	require.NoError(t, err)
	require.Len(t, artifacts, 1)

	require.NoError(t, a.Shutdown(t.Context()))
	assert.False(t, doc.Mounted())
}

func TestDocument_UnknownSelector(t *testing.T) {
	t.Parallel()

	doc := MustNew().Document()
	require.ErrorIs(t, doc.Mount("#root", nil), ErrNoElement)
	require.ErrorIs(t, doc.Unmount("#root"), ErrNoElement)
}
