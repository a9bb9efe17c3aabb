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
	"net/url"
	"strings"
)

// Params holds the parameters bound by a matched route.
type Params map[string]string

// Get returns the value of the named parameter, or "" if it is not bound.
func (p Params) Get(name string) string {
	return p[name]
}

// Location is a resolved navigation target.
type Location struct {
	// Path is the normalized path without query or hash.
	Path string
	// FullPath is Path followed by the raw query and hash, if any.
	FullPath string
	Query    url.Values
	Hash     string
	// Name is the name of the matched route, or "" when nothing matched.
	Name   string
	Params Params
	// Matched holds zero or one record, in declaration order.
	Matched []*Record
}

// Route returns the matched record, or nil.
func (l *Location) Route() *Record {
	if l == nil || len(l.Matched) == 0 {
		return nil
	}
	return l.Matched[len(l.Matched)-1]
}

// IsMatched reports whether any route matched the location.
func (l *Location) IsMatched() bool {
	return l != nil && len(l.Matched) > 0
}

// Param returns the named parameter value.
func (l *Location) Param(name string) string {
	if l == nil {
		return ""
	}
	return l.Params.Get(name)
}

// String returns the full path.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	return l.FullPath
}

// parsedPath is a raw location split into its parts.
type parsedPath struct {
	path     string
	fullPath string
	parts    []string
	query    url.Values
	hash     string
}

// parsePath splits a raw path into decoded segments, query and hash.
// Trailing slashes are dropped so "/catalog/" and "/catalog" are equivalent.
func parsePath(raw string) (*parsedPath, error) {
	if raw == "" {
		raw = "/"
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}
	if u.Scheme != "" || u.Host != "" || u.Opaque != "" {
		return nil, fmt.Errorf("%w: %q is not a path", ErrInvalidPath, raw)
	}

	trimmed := strings.Trim(u.EscapedPath(), "/")
	p := &parsedPath{
		path:  "/" + trimmed,
		query: u.Query(),
	}

	if trimmed != "" {
		for seg := range strings.SplitSeq(trimmed, "/") {
			decoded, err := url.PathUnescape(seg)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidPath, err)
			}
			p.parts = append(p.parts, decoded)
		}
	}

	p.fullPath = p.path
	if u.RawQuery != "" {
		p.fullPath += "?" + u.RawQuery
	}
	if u.Fragment != "" {
		p.hash = "#" + u.EscapedFragment()
		p.fullPath += p.hash
	}

	return p, nil
}
