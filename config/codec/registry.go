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

package codec

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrUnknownType is returned when no codec is registered for a [Type].
var ErrUnknownType = errors.New("codec not registered")

// Registry maps codec types to encoders and decoders.
type Registry struct {
	mu       sync.RWMutex
	encoders map[Type]Encoder
	decoders map[Type]Decoder
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		encoders: make(map[Type]Encoder),
		decoders: make(map[Type]Decoder),
	}
}

// Default is the process-wide registry the built-in codecs register with.
var Default = NewRegistry()

// Register adds c as both encoder and decoder for name.
func (r *Registry) Register(name Type, c Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.encoders[name] = c
	r.decoders[name] = c
}

// RegisterDecoder adds a decode-only codec.
func (r *Registry) RegisterDecoder(name Type, d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decoders[name] = d
}

// Encoder returns the encoder registered for name.
func (r *Registry) Encoder(name Type) (Encoder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.encoders[name]
	if !ok {
		return nil, fmt.Errorf("%w: encoder %q", ErrUnknownType, name)
	}
	return e, nil
}

// Decoder returns the decoder registered for name.
func (r *Registry) Decoder(name Type) (Decoder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.decoders[name]
	if !ok {
		return nil, fmt.Errorf("%w: decoder %q", ErrUnknownType, name)
	}
	return d, nil
}

// Types lists the types that can be decoded, sorted.
func (r *Registry) Types() []Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Type, 0, len(r.decoders))
	for t := range r.decoders {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// GetEncoder looks name up in [Default].
func GetEncoder(name Type) (Encoder, error) {
	return Default.Encoder(name)
}

// GetDecoder looks name up in [Default].
func GetDecoder(name Type) (Decoder, error) {
	return Default.Decoder(name)
}
