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

// Package codec holds the encoders and decoders used by config sources.
//
// JSON, YAML (goccy/go-yaml) and TOML (BurntSushi/toml) codecs register
// themselves with [Default] at init; the env_var codec is decode-only.
// Look codecs up with [GetDecoder] and [GetEncoder]:
//
//	dec, err := codec.GetDecoder(codec.TypeYAML)
package codec
