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
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate checks route declarations. validator.Validate is safe for
// concurrent use once created.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Table is an ordered, immutable set of compiled routes.
// A Table is safe for concurrent use by multiple goroutines.
type Table struct {
	records []*Record
	byName  map[string]*Record
}

// NewTable compiles routes in declaration order.
//
// All declarations are checked before returning; the returned error joins
// every problem found:
//   - [ErrInvalidRoute] when a declaration fails validation
//   - [ErrInvalidPattern] when a path cannot be compiled or is unreachable
//     because an earlier route has the identical shape
//   - [ErrDuplicateRouteName] when a name is declared twice
func NewTable(routes ...Route) (*Table, error) {
	t := &Table{
		records: make([]*Record, 0, len(routes)),
		byName:  make(map[string]*Record, len(routes)),
	}

	var errs []error
	shapes := make(map[string]string, len(routes))

	for i, rt := range routes {
		if err := validate.Struct(rt); err != nil {
			errs = append(errs, fmt.Errorf("%w: route[%d] %q: %w", ErrInvalidRoute, i, rt.Name, err))
			continue
		}

		rec, err := compileRecord(i, rt)
		if err != nil {
			errs = append(errs, fmt.Errorf("route[%d] %q: %w", i, rt.Name, err))
			continue
		}

		if prev, dup := t.byName[rt.Name]; dup {
			errs = append(errs, fmt.Errorf("%w: %q declared at %d and %d", ErrDuplicateRouteName, rt.Name, prev.index, i))
			continue
		}

		shape := rec.shape()
		if earlier, taken := shapes[shape]; taken {
			errs = append(errs, fmt.Errorf("%w: %q is shadowed by route %q", ErrInvalidPattern, rt.Path, earlier))
			continue
		}
		shapes[shape] = rt.Name

		t.byName[rt.Name] = rec
		t.records = append(t.records, rec)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return t, nil
}

// MustNewTable is like [NewTable] but panics on error.
// Use it for route tables declared in code, where an error is a programming mistake.
func MustNewTable(routes ...Route) *Table {
	t, err := NewTable(routes...)
	if err != nil {
		panic(fmt.Sprintf("router: invalid route table: %v", err))
	}
	return t
}

// shape returns a key identifying the structure of the pattern.
// Two routes with the same shape match exactly the same paths.
func (r *Record) shape() string {
	var b strings.Builder
	for _, seg := range r.segments {
		b.WriteByte('/')
		if seg.Static {
			b.WriteString(seg.Value)
		} else {
			b.WriteByte(':')
		}
	}
	return b.String()
}

// Len returns the number of routes.
func (t *Table) Len() int {
	return len(t.records)
}

// Routes returns the compiled routes in declaration order.
func (t *Table) Routes() []*Record {
	out := make([]*Record, len(t.records))
	copy(out, t.records)
	return out
}

// Route returns the route with the given name.
func (t *Table) Route(name string) (*Record, bool) {
	rec, ok := t.byName[name]
	return rec, ok
}

// Resolve resolves a raw path (with optional query and hash) against the table.
// The first route in declaration order whose pattern structurally matches wins.
// When nothing matches, the returned Location has an empty Matched sequence.
// Resolve only fails when the path itself is malformed ([ErrInvalidPath]).
func (t *Table) Resolve(raw string) (*Location, error) {
	p, err := parsePath(raw)
	if err != nil {
		return nil, err
	}

	loc := &Location{
		Path:     p.path,
		FullPath: p.fullPath,
		Query:    p.query,
		Hash:     p.hash,
		Params:   Params{},
		Matched:  []*Record{},
	}

	for _, rec := range t.records {
		params, ok := rec.match(p.parts)
		if !ok {
			continue
		}
		loc.Name = rec.name
		loc.Matched = append(loc.Matched, rec)
		if params != nil {
			loc.Params = params
		}
		break
	}

	return loc, nil
}

// URLFor builds the path of a named route from its parameters.
func (t *Table) URLFor(name string, params map[string]string, query url.Values) (string, error) {
	rec, ok := t.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrRouteNotFound, name)
	}
	return rec.BuildURL(params, query)
}

// MustURLFor is like [Table.URLFor] but panics on error.
func (t *Table) MustURLFor(name string, params map[string]string, query url.Values) string {
	u, err := t.URLFor(name, params, query)
	if err != nil {
		panic(fmt.Sprintf("MustURLFor failed: %v", err))
	}
	return u
}

// Match returns the first record matching path in declaration order along
// with its bound parameters. It returns nil when nothing matches or the path
// is malformed.
func (t *Table) Match(path string) (*Record, Params) {
	loc, err := t.Resolve(path)
	if err != nil || !loc.IsMatched() {
		return nil, nil
	}
	return loc.Route(), loc.Params
}
