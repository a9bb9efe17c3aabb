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

package source

import (
	"context"
	"os"
	"strings"

	"github.com/placesapp/placesweb/config/codec"
)

// EnvMap loads individually named variables into dotted keys. It carries
// conventional variables that do not follow the prefix scheme, such as
// GEOCODER_API_KEY for maps.apikey. Unset variables are skipped; set but
// empty ones are kept.
type EnvMap struct {
	bindings map[string]string
	lookup   func(string) (string, bool)
}

// NewEnvMap binds variable names to dotted keys. A nil lookup reads the
// process environment.
func NewEnvMap(bindings map[string]string, lookup func(string) (string, bool)) *EnvMap {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &EnvMap{bindings: bindings, lookup: lookup}
}

// Load implements config.Source.
func (e *EnvMap) Load(context.Context) (map[string]any, error) {
	conf := make(map[string]any)
	for name, key := range e.bindings {
		value, ok := e.lookup(name)
		if !ok {
			continue
		}
		codec.SetPath(conf, strings.Split(strings.ToLower(key), "."), value)
	}
	return conf, nil
}
