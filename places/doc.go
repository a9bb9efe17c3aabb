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

// Package places declares the route table of the places shell and the views
// bound to it.
//
// Routes are matched in declaration order and the first match wins:
//
//	/            Auth
//	/catalog     Catalog
//	/favorites   Favorites
//	/place/:id   PlaceDetails
//
// Catalog and Favorites share [PlacesView]; the route's "context" meta
// tells them apart.
package places
