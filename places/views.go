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
	"html/template"
	"io"

	"github.com/placesapp/placesweb/router"
)

var views = template.Must(template.New("views").Parse(`
{{- define "auth" -}}
<section class="auth" data-view="{{.Name}}">
  <h1>{{.Title}}</h1>
  <form class="auth-form" method="post" action="#">
    <input type="email" name="email" autocomplete="email" required>
    <input type="password" name="password" autocomplete="current-password" required>
    <button type="submit">{{.Title}}</button>
  </form>
  <nav><a href="/catalog">Catalog</a> <a href="/favorites">Favorites</a></nav>
</section>
{{- end -}}
{{- define "places" -}}
<section class="places" data-view="{{.Name}}" data-context="{{.Context}}">
  <h1>{{.Title}}</h1>
  <ul class="places-list"></ul>
</section>
{{- end -}}
{{- define "place" -}}
<article class="place" data-view="{{.Name}}" data-id="{{.ID}}">
  <a class="back" href="/catalog">Catalog</a>
  <div class="place-map" id="place-map-{{.ID}}"></div>
</article>
{{- end -}}
`))

// viewData is what the templates see.
type viewData struct {
	Name    string
	Title   string
	Context string
	ID      string
}

func newViewData(loc *router.Location) viewData {
	d := viewData{Name: loc.Name, ID: loc.Param("id")}
	if rec := loc.Route(); rec != nil {
		if v, ok := rec.Meta("title"); ok {
			d.Title, _ = v.(string)
		}
		if v, ok := rec.Meta("context"); ok {
			d.Context, _ = v.(string)
		}
	}
	return d
}

func templateView(name string) router.View {
	return router.ViewFunc(func(w io.Writer, loc *router.Location) error {
		return views.ExecuteTemplate(w, name, newViewData(loc))
	})
}

var (
	// AuthView is the authentication landing page.
	AuthView = templateView("auth")
	// PlacesView lists places; the route's "context" meta selects catalog
	// or favorites.
	PlacesView = templateView("places")
	// PlaceDetailsView shows a single place identified by the id parameter.
	PlaceDetailsView = templateView("place")
)
