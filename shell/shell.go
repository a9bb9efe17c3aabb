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
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
)

//go:embed templates/index.html
var templates embed.FS

var indexTemplate = template.Must(template.ParseFS(templates, "templates/index.html"))

// IndexFile is the name of the rendered document.
const IndexFile = "index.html"

// Shell renders the HTML document.
type Shell struct {
	config  *config
	mountID string
}

// New creates a Shell.
//
// Errors:
//   - [ErrInvalidSelector] if the selector is not "#id"
//   - [ErrUnknownEncoding] if a precompression encoding is not br or gzip
func New(opts ...Option) (*Shell, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	id, ok := strings.CutPrefix(cfg.selector, "#")
	if !ok || id == "" || strings.ContainsAny(id, " .#[]>:") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSelector, cfg.selector)
	}
	for _, enc := range cfg.precompress {
		if enc != EncodingBrotli && enc != EncodingGzip {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, enc)
		}
	}

	return &Shell{config: cfg, mountID: id}, nil
}

// MustNew is like [New] but panics on error.
func MustNew(opts ...Option) *Shell {
	s, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("shell: %v", err))
	}
	return s
}

// templateData is the data the index template sees.
type templateData struct {
	Title       string
	Lang        string
	Version     string
	BaseHref    string
	MountID     string
	YmapsAPIKey string
	Maps        mapsData
	Content     template.HTML
}

type mapsData struct {
	Enabled    bool
	Lang       string
	CoordOrder string
	Version    string
}

func (s *Shell) data(content template.HTML) templateData {
	c := s.config
	base := strings.TrimSuffix(c.base, "/") + "/"
	return templateData{
		Title:       c.title,
		Lang:        c.lang,
		Version:     c.version,
		BaseHref:    base,
		MountID:     s.mountID,
		YmapsAPIKey: c.maps.APIKey,
		Maps: mapsData{
			Enabled:    c.maps.Enabled,
			Lang:       c.maps.Lang,
			CoordOrder: c.maps.CoordOrder,
			Version:    c.maps.Version,
		},
		Content: content,
	}
}

// Render writes the document with an empty mount element, the form a
// client-side app boots from.
func (s *Shell) Render(w io.Writer) error {
	return s.render(w, "")
}

func (s *Shell) render(w io.Writer, content template.HTML) error {
	if err := indexTemplate.Execute(w, s.data(content)); err != nil {
		return fmt.Errorf("render %s: %w", IndexFile, err)
	}
	return nil
}

// Artifact is one file written by [Shell.Build].
type Artifact struct {
	Path     string
	Encoding string // "identity", "br" or "gzip"
	Size     int
}

// Build renders the document into outDir/index.html and writes one
// compressed sibling per configured encoding. outDir is created if needed.
func (s *Shell) Build(ctx context.Context, outDir string) ([]Artifact, error) {
	var buf bytes.Buffer
	if err := s.Render(&buf); err != nil {
		return nil, err
	}
	return s.write(ctx, outDir, buf.Bytes())
}

func (s *Shell) write(ctx context.Context, outDir string, page []byte) ([]Artifact, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", outDir, err)
	}

	artifacts := make([]Artifact, 0, 1+len(s.config.precompress))
	emit := func(name, encoding string, data []byte) error {
		path := filepath.Join(outDir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		artifacts = append(artifacts, Artifact{Path: path, Encoding: encoding, Size: len(data)})
		if s.config.metrics != nil {
			s.config.metrics.ObserveShellArtifact(encoding, len(data))
		}
		s.config.log().InfoContext(ctx, "shell artifact written", "path", path, "encoding", encoding, "bytes", len(data))
		return nil
	}

	if err := emit(IndexFile, "identity", page); err != nil {
		return nil, err
	}

	for _, enc := range uniqueEncodings(s.config.precompress) {
		if err := ctx.Err(); err != nil {
			return artifacts, err
		}
		compressed, err := s.compress(enc, page)
		if err != nil {
			return artifacts, err
		}
		if err = emit(IndexFile+extension(enc), enc, compressed); err != nil {
			return artifacts, err
		}
	}

	return artifacts, nil
}

// uniqueEncodings drops repeated encodings, keeping first-seen order.
func uniqueEncodings(encodings []string) []string {
	seen := make(map[string]struct{}, len(encodings))
	out := make([]string, 0, len(encodings))
	for _, enc := range encodings {
		if _, ok := seen[enc]; ok {
			continue
		}
		seen[enc] = struct{}{}
		out = append(out, enc)
	}
	return out
}
