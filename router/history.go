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

import "sync"

// History stores the navigation stack the router reads and writes.
// Paths are full paths (path, query and hash) including any base prefix.
//
// Implementations must be safe for concurrent use.
type History interface {
	// Location returns the current entry.
	Location() string
	// Push appends an entry and makes it current.
	Push(path string) error
	// Replace overwrites the current entry.
	Replace(path string) error
}

// Traverser is implemented by histories that can move between entries.
// Both methods report false when there is no entry in that direction.
type Traverser interface {
	Back() bool
	Forward() bool
}

// MemoryHistory is an in-process [History].
// It keeps every entry so callers can go back and forward.
type MemoryHistory struct {
	mu      sync.RWMutex
	entries []string
	pos     int
}

// NewMemoryHistory creates a history whose only entry is initial.
// An empty initial location means "/".
func NewMemoryHistory(initial string) *MemoryHistory {
	if initial == "" {
		initial = "/"
	}
	return &MemoryHistory{entries: []string{initial}}
}

// Location returns the current entry.
func (h *MemoryHistory) Location() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.entries[h.pos]
}

// Push drops any forward entries and appends path.
func (h *MemoryHistory) Push(path string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.pos+1], path)
	h.pos = len(h.entries) - 1
	return nil
}

// Replace overwrites the current entry.
func (h *MemoryHistory) Replace(path string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[h.pos] = path
	return nil
}

// Back moves one entry back. It reports false at the first entry.
func (h *MemoryHistory) Back() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pos == 0 {
		return false
	}
	h.pos--
	return true
}

// Forward moves one entry forward. It reports false at the last entry.
func (h *MemoryHistory) Forward() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pos >= len(h.entries)-1 {
		return false
	}
	h.pos++
	return true
}

// Entries returns a copy of the stack, oldest first.
func (h *MemoryHistory) Entries() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]string(nil), h.entries...)
}
