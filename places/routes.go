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
	"github.com/placesapp/placesweb/router"
)

// Route names.
const (
	RouteAuth         = "Auth"
	RouteCatalog      = "Catalog"
	RouteFavorites    = "Favorites"
	RoutePlaceDetails = "PlaceDetails"
)

// Listing contexts stored under the "context" route meta.
const (
	ContextCatalog   = "catalog"
	ContextFavorites = "favorites"
)

// Declarations returns the route declarations in match order.
func Declarations() []router.Route {
	return []router.Route{
		{
			Path: "/",
			Name: RouteAuth,
			View: AuthView,
			Meta: map[string]any{"title": "Sign in"},
		},
		{
			Path: "/catalog",
			Name: RouteCatalog,
			View: PlacesView,
			Meta: map[string]any{"title": "Catalog", "context": ContextCatalog},
		},
		{
			Path: "/favorites",
			Name: RouteFavorites,
			View: PlacesView,
			Meta: map[string]any{"title": "Favorites", "context": ContextFavorites},
		},
		{
			Path: "/place/:id",
			Name: RoutePlaceDetails,
			View: PlaceDetailsView,
			Meta: map[string]any{"title": "Place"},
		},
	}
}

// Routes compiles [Declarations] into a table.
func Routes() (*router.Table, error) {
	return router.NewTable(Declarations()...)
}

// MustRoutes is like [Routes] but panics on error.
func MustRoutes() *router.Table {
	return router.MustNewTable(Declarations()...)
}
