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

package places

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placesapp/placesweb/router"
)

func render(t *testing.T, table *router.Table, path string) string {
	t.Helper()

	loc, err := table.Resolve(path)
	require.NoError(t, err)
	require.True(t, loc.IsMatched(), "no match for %s", path)

	var b strings.Builder
	require.NoError(t, loc.Route().View().Render(&b, loc))
	return b.String()
}

func TestRoutes_EveryPathMatchesItsName(t *testing.T) {
	t.Parallel()

	table, err := Routes()
	require.NoError(t, err)
	require.Equal(t, 4, table.Len())

	tests := []struct {
		path string
		name string
	}{
		{"/", RouteAuth},
		{"/catalog", RouteCatalog},
		{"/favorites", RouteFavorites},
		{"/place/1", RoutePlaceDetails},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			loc, err := table.Resolve(tt.path)
			require.NoError(t, err)
			require.Len(t, loc.Matched, 1)
			assert.Equal(t, tt.name, loc.Name)
		})
	}
}

func TestRoutes_PlaceID(t *testing.T) {
	t.Parallel()

	table := MustRoutes()
	loc, err := table.Resolve("/place/42")
	require.NoError(t, err)
	assert.Equal(t, RoutePlaceDetails, loc.Name)
	assert.Equal(t, "42", loc.Param("id"))

	url, err := table.URLFor(RoutePlaceDetails, map[string]string{"id": "42"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "/place/42", url)
}

func TestRoutes_Unmatched(t *testing.T) {
	t.Parallel()

	table := MustRoutes()
	for _, path := range []string{"/place", "/place/1/photos", "/settings"} {
		loc, err := table.Resolve(path)
		require.NoError(t, err)
		assert.Empty(t, loc.Matched, path)
	}
}

func TestViews(t *testing.T) {
	t.Parallel()

	table := MustRoutes()

	auth := render(t, table, "/")
	assert.Contains(t, auth, `data-view="Auth"`)
	assert.Contains(t, auth, "<h1>Sign in</h1>")

	catalog := render(t, table, "/catalog")
	assert.Contains(t, catalog, `data-context="catalog"`)
	favorites := render(t, table, "/favorites")
	assert.Contains(t, favorites, `data-context="favorites"`)
	assert.Contains(t, favorites, "<h1>Favorites</h1>")

	place := render(t, table, "/place/42")
	assert.Contains(t, place, `data-id="42"`)
	assert.Contains(t, place, `id="place-map-42"`)
}

func TestViews_EscapeParameters(t *testing.T) {
	t.Parallel()

	out := render(t, MustRoutes(), `/place/%22%3E%3Cscript%3E`)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&#34;&gt;&lt;script&gt;")
}
