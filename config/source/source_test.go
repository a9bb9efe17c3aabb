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

package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placesapp/placesweb/config/codec"
)

func TestFile_Load(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "placesweb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("maps:\n  enabled: true\n  lang: ru_RU\n"), 0o600))

	conf, err := NewFile(path, codec.YAMLCodec{}).Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"enabled": true, "lang": "ru_RU"}, conf["maps"])
}

func TestFile_LoadErrors(t *testing.T) {
	t.Parallel()

	_, err := NewFile(filepath.Join(t.TempDir(), "missing.json"), codec.JSONCodec{}).Load(t.Context())
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = NewFileContent([]byte("{"), codec.JSONCodec{}).Load(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode content")
}

func TestFileContent_TOML(t *testing.T) {
	t.Parallel()

	conf, err := NewFileContent([]byte("[shell]\ntitle = \"Places\"\n"), codec.TOMLCodec{}).Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"title": "Places"}, conf["shell"])
}

func TestEnvVar_Load(t *testing.T) {
	t.Parallel()

	src := NewEnvVar("PLACES_", []string{
		"PLACES_MAPS_ENABLED=true",
		"PLACES_LOG_LEVEL=debug",
		"HOME=/root",
		"PLACESX=1",
	})

	conf, err := src.Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"maps": map[string]any{"enabled": "true"},
		"log":  map[string]any{"level": "debug"},
	}, conf)
}

func TestOSEnvVar_Load(t *testing.T) {
	t.Setenv("PLACESTEST_SHELL_TITLE", "From env")

	conf, err := NewOSEnvVar("PLACESTEST_").Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"title": "From env"}, conf["shell"])
}

func TestEnvMap_Load(t *testing.T) {
	t.Parallel()

	env := map[string]string{"GEOCODER_API_KEY": "k-123", "EMPTY": ""}
	lookup := func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}

	src := NewEnvMap(map[string]string{
		"GEOCODER_API_KEY": "maps.apikey",
		"EMPTY":            "Shell.Title",
		"UNSET":            "maps.lang",
	}, lookup)

	conf, err := src.Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"maps":  map[string]any{"apikey": "k-123"},
		"shell": map[string]any{"title": ""},
	}, conf)
}
