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
	"fmt"
	"io"
	"maps"
	"net/url"
	"strings"
)

// View is an opaque UI component bound to a route.
// The router never inspects a view; it only hands it to whoever renders
// the current location.
type View interface {
	Render(w io.Writer, loc *Location) error
}

// ViewFunc is a function adapter for [View].
type ViewFunc func(w io.Writer, loc *Location) error

// Render calls f(w, loc).
func (f ViewFunc) Render(w io.Writer, loc *Location) error {
	return f(w, loc)
}

// EmptyView is the placeholder view used for routes declared without one.
var EmptyView View = ViewFunc(func(w io.Writer, _ *Location) error {
	_, err := io.WriteString(w, "<div></div>")
	return err
})

// Route declares a navigable path bound to a named view.
type Route struct {
	// Path is the pattern, e.g. "/place/:id".
	Path string `validate:"required,startswith=/"`
	// Name is the unique symbolic identifier of the route.
	Name string `validate:"required,printascii"`
	// View is rendered when the route is matched. Nil means [EmptyView].
	View View
	// Meta carries arbitrary per-route data (page title, context flags).
	Meta map[string]any
}

// Segment represents a segment in a route path.
type Segment struct {
	Static bool   // true if static text, false if parameter
	Value  string // static text or parameter name
}

// Record is a compiled, immutable route held by a [Table].
type Record struct {
	path     string
	name     string
	view     View
	meta     map[string]any
	index    int
	segments []Segment
	params   []string
}

// compileRecord parses a route pattern into segments.
// Example: "/place/:id" -> [{static:"place"}, {param:"id"}]
func compileRecord(index int, rt Route) (*Record, error) {
	rec := &Record{
		path:  rt.Path,
		name:  rt.Name,
		view:  rt.View,
		meta:  maps.Clone(rt.Meta),
		index: index,
	}
	if rec.view == nil {
		rec.view = EmptyView
	}

	trimmed := strings.Trim(rt.Path, "/")
	if trimmed == "" {
		return rec, nil
	}

	seen := make(map[string]struct{})
	for part := range strings.SplitSeq(trimmed, "/") {
		switch {
		case part == "":
			return nil, fmt.Errorf("%w: empty segment in %q", ErrInvalidPattern, rt.Path)
		case strings.HasPrefix(part, ":"):
			name := part[1:]
			if name == "" {
				return nil, fmt.Errorf("%w: unnamed parameter in %q", ErrInvalidPattern, rt.Path)
			}
			if _, dup := seen[name]; dup {
				return nil, fmt.Errorf("%w: parameter %q repeated in %q", ErrInvalidPattern, name, rt.Path)
			}
			seen[name] = struct{}{}
			rec.segments = append(rec.segments, Segment{Value: name})
			rec.params = append(rec.params, name)
		case strings.ContainsAny(part, "*?"):
			return nil, fmt.Errorf("%w: wildcard segment %q is not supported", ErrInvalidPattern, part)
		default:
			rec.segments = append(rec.segments, Segment{Static: true, Value: part})
		}
	}

	return rec, nil
}

// Name returns the route name.
func (r *Record) Name() string { return r.name }

// Path returns the declared pattern.
func (r *Record) Path() string { return r.path }

// View returns the bound view.
func (r *Record) View() View { return r.view }

// Index returns the declaration position of the route.
func (r *Record) Index() int { return r.index }

// ParamNames returns the parameter names in pattern order.
func (r *Record) ParamNames() []string {
	return append([]string(nil), r.params...)
}

// Segments returns a copy of the compiled segments.
func (r *Record) Segments() []Segment {
	return append([]Segment(nil), r.segments...)
}

// Meta returns the value stored under key in the route metadata.
func (r *Record) Meta(key string) (any, bool) {
	v, ok := r.meta[key]
	return v, ok
}

// match compares decoded path segments against the pattern.
// Parameters never bind an empty segment.
func (r *Record) match(parts []string) (Params, bool) {
	if len(parts) != len(r.segments) {
		return nil, false
	}

	var params Params
	for i, seg := range r.segments {
		if seg.Static {
			if parts[i] != seg.Value {
				return nil, false
			}
			continue
		}
		if parts[i] == "" {
			return nil, false
		}
		if params == nil {
			params = make(Params, len(r.params))
		}
		params[seg.Value] = parts[i]
	}

	return params, true
}

// BuildURL builds a path from the pattern and parameters.
func (r *Record) BuildURL(params map[string]string, query url.Values) (string, error) {
	var buf strings.Builder
	buf.WriteByte('/')

	for i, seg := range r.segments {
		if i > 0 {
			buf.WriteByte('/')
		}

		if seg.Static {
			buf.WriteString(seg.Value)
			continue
		}
		val, ok := params[seg.Value]
		if !ok || val == "" {
			return "", fmt.Errorf("%w: %s", ErrMissingRouteParameter, seg.Value)
		}
		buf.WriteString(url.PathEscape(val))
	}

	if len(query) > 0 {
		buf.WriteByte('?')
		buf.WriteString(query.Encode())
	}

	return buf.String(), nil
}

// String returns "name path".
func (r *Record) String() string {
	return r.name + " " + r.path
}
