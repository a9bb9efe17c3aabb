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
	"bytes"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placesRoutes() []Route {
	return []Route{
		{Path: "/", Name: "Auth"},
		{Path: "/catalog", Name: "Catalog"},
		{Path: "/favorites", Name: "Favorites"},
		{Path: "/place/:id", Name: "PlaceDetails"},
	}
}

func TestNewTable_CompilesInDeclarationOrder(t *testing.T) {
	t.Parallel()

	table, err := NewTable(placesRoutes()...)
	require.NoError(t, err)
	require.Equal(t, 4, table.Len())

	routes := table.Routes()
	names := make([]string, 0, len(routes))
	for i, rec := range routes {
		assert.Equal(t, i, rec.Index())
		names = append(names, rec.Name())
	}
	assert.Equal(t, []string{"Auth", "Catalog", "Favorites", "PlaceDetails"}, names)

	details, ok := table.Route("PlaceDetails")
	require.True(t, ok)
	assert.Equal(t, []string{"id"}, details.ParamNames())
	assert.Equal(t, []Segment{{Static: true, Value: "place"}, {Value: "id"}}, details.Segments())
}

func TestNewTable_DuplicateName(t *testing.T) {
	t.Parallel()

	_, err := NewTable(
		Route{Path: "/catalog", Name: "Places"},
		Route{Path: "/favorites", Name: "Places"},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateRouteName)
	assert.Contains(t, err.Error(), `"Places" declared at 0 and 1`)
}

func TestNewTable_InvalidDeclarations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		route Route
		want  error
	}{
		{name: "missing name", route: Route{Path: "/catalog"}, want: ErrInvalidRoute},
		{name: "missing path", route: Route{Name: "Catalog"}, want: ErrInvalidRoute},
		{name: "relative path", route: Route{Path: "catalog", Name: "Catalog"}, want: ErrInvalidRoute},
		{name: "unnamed parameter", route: Route{Path: "/place/:", Name: "Place"}, want: ErrInvalidPattern},
		{name: "repeated parameter", route: Route{Path: "/a/:id/b/:id", Name: "AB"}, want: ErrInvalidPattern},
		{name: "empty segment", route: Route{Path: "/a//b", Name: "AB"}, want: ErrInvalidPattern},
		{name: "wildcard", route: Route{Path: "/files/*", Name: "Files"}, want: ErrInvalidPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewTable(tt.route)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewTable_ReportsEveryProblem(t *testing.T) {
	t.Parallel()

	_, err := NewTable(
		Route{Path: "/", Name: ""},
		Route{Path: "/x", Name: "X"},
		Route{Path: "/y", Name: "X"},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRoute)
	assert.ErrorIs(t, err, ErrDuplicateRouteName)
}

func TestNewTable_ShadowedPattern(t *testing.T) {
	t.Parallel()

	_, err := NewTable(
		Route{Path: "/place/:id", Name: "PlaceDetails"},
		Route{Path: "/place/:slug", Name: "PlaceBySlug"},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPattern)
	assert.Contains(t, err.Error(), `shadowed by route "PlaceDetails"`)
}

func TestMustNewTable_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		MustNewTable(Route{Path: "/", Name: "A"}, Route{Path: "/b", Name: "A"})
	})
	assert.NotPanics(t, func() {
		MustNewTable(placesRoutes()...)
	})
}

func TestTable_ResolveDeclaredPaths(t *testing.T) {
	t.Parallel()

	table := MustNewTable(placesRoutes()...)

	tests := []struct {
		path string
		want string
	}{
		{"/", "Auth"},
		{"/catalog", "Catalog"},
		{"/favorites", "Favorites"},
		{"/place/:id", "PlaceDetails"}, // ":id" is a literal value here
		{"/catalog/", "Catalog"},
		{"", "Auth"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			loc, err := table.Resolve(tt.path)
			require.NoError(t, err)
			require.Len(t, loc.Matched, 1)
			assert.Equal(t, tt.want, loc.Matched[0].Name())
			assert.Equal(t, tt.want, loc.Name)
			assert.True(t, loc.IsMatched())
		})
	}
}

func TestTable_ResolvePlaceDetailsBindsID(t *testing.T) {
	t.Parallel()

	table := MustNewTable(placesRoutes()...)

	loc, err := table.Resolve("/place/42")
	require.NoError(t, err)
	require.Len(t, loc.Matched, 1)
	assert.Equal(t, "PlaceDetails", loc.Route().Name())
	assert.Equal(t, "42", loc.Param("id"))
	assert.Equal(t, Params{"id": "42"}, loc.Params)
	assert.Equal(t, "/place/42", loc.Path)
}

func TestTable_ResolveUnescapesParameters(t *testing.T) {
	t.Parallel()

	table := MustNewTable(placesRoutes()...)

	loc, err := table.Resolve("/place/caf%C3%A9%20noir")
	require.NoError(t, err)
	assert.Equal(t, "café noir", loc.Param("id"))
}

func TestTable_ResolveUndeclaredPath(t *testing.T) {
	t.Parallel()

	table := MustNewTable(placesRoutes()...)

	for _, p := range []string{"/nope", "/place", "/place/42/edit", "/catalog/extra", "/place//"} {
		loc, err := table.Resolve(p)
		require.NoError(t, err, p)
		assert.Empty(t, loc.Matched, p)
		assert.Empty(t, loc.Name, p)
		assert.False(t, loc.IsMatched(), p)
		assert.Nil(t, loc.Route(), p)
	}
}

func TestTable_ResolveQueryAndHash(t *testing.T) {
	t.Parallel()

	table := MustNewTable(placesRoutes()...)

	loc, err := table.Resolve("/catalog/?city=Kazan&sort=rating#top")
	require.NoError(t, err)
	assert.Equal(t, "/catalog", loc.Path)
	assert.Equal(t, "/catalog?city=Kazan&sort=rating#top", loc.FullPath)
	assert.Equal(t, "Kazan", loc.Query.Get("city"))
	assert.Equal(t, "#top", loc.Hash)
	assert.Equal(t, "Catalog", loc.Name)
}

func TestTable_ResolveMalformedPath(t *testing.T) {
	t.Parallel()

	table := MustNewTable(placesRoutes()...)

	for _, p := range []string{"/place/%zz", "https://example.com/catalog", "//host/catalog"} {
		_, err := table.Resolve(p)
		require.Error(t, err, p)
		assert.ErrorIs(t, err, ErrInvalidPath, p)
	}
}

func TestTable_FirstDeclaredMatchWins(t *testing.T) {
	t.Parallel()

	table := MustNewTable(
		Route{Path: "/place/new", Name: "NewPlace"},
		Route{Path: "/place/:id", Name: "PlaceDetails"},
	)

	loc, err := table.Resolve("/place/new")
	require.NoError(t, err)
	assert.Equal(t, "NewPlace", loc.Name)
	assert.Empty(t, loc.Params)

	reversed := MustNewTable(
		Route{Path: "/place/:id", Name: "PlaceDetails"},
		Route{Path: "/place/new", Name: "NewPlace"},
	)

	loc, err = reversed.Resolve("/place/new")
	require.NoError(t, err)
	assert.Equal(t, "PlaceDetails", loc.Name)
	assert.Equal(t, "new", loc.Param("id"))
}

func TestTable_URLFor(t *testing.T) {
	t.Parallel()

	table := MustNewTable(placesRoutes()...)

	u, err := table.URLFor("PlaceDetails", map[string]string{"id": "a b"}, url.Values{"tab": {"photos"}})
	require.NoError(t, err)
	assert.Equal(t, "/place/a%20b?tab=photos", u)

	u, err = table.URLFor("Auth", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "/", u)

	_, err = table.URLFor("PlaceDetails", nil, nil)
	require.ErrorIs(t, err, ErrMissingRouteParameter)

	_, err = table.URLFor("Missing", nil, nil)
	require.ErrorIs(t, err, ErrRouteNotFound)

	assert.Equal(t, "/favorites", table.MustURLFor("Favorites", nil, nil))
	assert.Panics(t, func() { table.MustURLFor("Missing", nil, nil) })
}

func TestRecord_NilViewRendersPlaceholder(t *testing.T) {
	t.Parallel()

	table := MustNewTable(Route{Path: "/", Name: "Auth", Meta: map[string]any{"title": "Sign in"}})
	rec, ok := table.Route("Auth")
	require.True(t, ok)

	var buf bytes.Buffer
	require.NoError(t, rec.View().Render(&buf, nil))
	assert.Equal(t, "<div></div>", buf.String())

	title, ok := rec.Meta("title")
	require.True(t, ok)
	assert.Equal(t, "Sign in", title)
}

func TestTable_Match(t *testing.T) {
	t.Parallel()

	table := MustNewTable(placesRoutes()...)

	rec, params := table.Match("/place/9")
	require.NotNil(t, rec)
	assert.Equal(t, "PlaceDetails", rec.Name())
	assert.Equal(t, "9", params.Get("id"))

	rec, params = table.Match("/missing")
	assert.Nil(t, rec)
	assert.Nil(t, params)

	rec, _ = table.Match("/%zz")
	assert.Nil(t, rec)
}
