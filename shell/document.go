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

package shell

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"sync"

	"github.com/placesapp/placesweb/app"
)

// Document is the rendered shell acting as an [app.Host]. The mounted root
// is rendered inside the mount element on every [Document.Render].
type Document struct {
	shell *Shell

	mu   sync.Mutex
	root *app.Root
}

// Document returns a new, empty document for s.
func (s *Shell) Document() *Document {
	return &Document{shell: s}
}

// Mount attaches root to the mount element. Only the shell's own selector
// exists in the document.
func (d *Document) Mount(selector string, root *app.Root) error {
	if selector != "#"+d.shell.mountID {
		return fmt.Errorf("%w: %q", ErrNoElement, selector)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.root != nil {
		return app.ErrAlreadyMounted
	}
	d.root = root
	return nil
}

// Unmount detaches the root.
func (d *Document) Unmount(selector string) error {
	if selector != "#"+d.shell.mountID {
		return fmt.Errorf("%w: %q", ErrNoElement, selector)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.root = nil
	return nil
}

// Mounted reports whether a root is attached.
func (d *Document) Mounted() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.root != nil
}

// Render writes the document with the mounted root's current view inside
// the mount element.
func (d *Document) Render(w io.Writer) error {
	d.mu.Lock()
	root := d.root
	d.mu.Unlock()

	var content bytes.Buffer
	if root != nil {
		if err := root.Render(&content); err != nil {
			return fmt.Errorf("render root: %w", err)
		}
	}
	// views are html/template output and already escaped
	return d.shell.render(w, template.HTML(content.String())) //nolint:gosec // trusted view output
}

// Prerender writes the document as currently mounted to outDir, with the
// same precompression as [Shell.Build].
func (d *Document) Prerender(ctx context.Context, outDir string) ([]Artifact, error) {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return nil, err
	}
	return d.shell.write(ctx, outDir, buf.Bytes())
}
