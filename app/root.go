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

package app

import (
	"io"
	"strings"
	"sync"

	"github.com/placesapp/placesweb/router"
)

// Root is the UI root component. It renders the view bound to the router's
// current location, or nothing when no route matched.
type Root struct {
	router *router.Router
}

// Router returns the router the root renders from.
func (r *Root) Router() *router.Router {
	return r.router
}

// Render writes the current view to w.
func (r *Root) Render(w io.Writer) error {
	loc := r.router.Current()
	if loc == nil || !loc.IsMatched() {
		return nil
	}
	return loc.Route().View().Render(w, loc)
}

// HTML renders the current view to a string.
func (r *Root) HTML() (string, error) {
	var b strings.Builder
	if err := r.Render(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Host is the document the UI root is mounted into.
type Host interface {
	Mount(selector string, root *Root) error
	Unmount(selector string) error
}

// MemoryHost is an in-process [Host] that records mounts.
type MemoryHost struct {
	mu     sync.Mutex
	roots  map[string]*Root
	mounts map[string]int
}

// NewMemoryHost returns an empty host.
func NewMemoryHost() *MemoryHost {
	return &MemoryHost{roots: make(map[string]*Root), mounts: make(map[string]int)}
}

// Mount attaches root at selector.
func (h *MemoryHost) Mount(selector string, root *Root) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.roots[selector]; ok {
		return ErrAlreadyMounted
	}
	h.roots[selector] = root
	h.mounts[selector]++
	return nil
}

// Unmount detaches whatever is mounted at selector.
func (h *MemoryHost) Unmount(selector string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.roots, selector)
	return nil
}

// Root returns the root mounted at selector.
func (h *MemoryHost) Root(selector string) (*Root, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.roots[selector]
	return r, ok
}

// MountCount reports how many times something was mounted at selector.
func (h *MemoryHost) MountCount(selector string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.mounts[selector]
}
