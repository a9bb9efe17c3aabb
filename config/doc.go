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

// Package config loads layered configuration.
//
// Sources are read in order and merged with mergo, later sources overriding
// earlier ones. Keys are case-insensitive and addressed with dots
// ("maps.apikey"). The merged map can be validated with a JSON schema
// (santhosh-tekuri/jsonschema), checked by custom validators and bound to a
// struct with mapstructure, after which `default` tags fill zero fields and
// a [Validator] implementation runs.
//
//	var settings Settings
//	cfg := config.MustNew(
//	    config.WithOptionalFile("placesweb.yaml"),
//	    config.WithEnv("PLACES_"),
//	    config.WithEnvBindings(map[string]string{"GEOCODER_API_KEY": "maps.apikey"}),
//	    config.WithBinding(&settings),
//	)
//	if err := cfg.Load(ctx); err != nil {
//	    return err
//	}
//
// [Config.BoundValues] returns the effective settings as a map, and
// [Lookup] reads a dotted key from it:
//
//	values, err := cfg.BoundValues()
//	lang := config.Lookup(values, "maps.lang")
package config
