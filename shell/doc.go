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

// Package shell renders the HTML document the places UI is mounted into.
//
// The document is an embedded html/template. Build configuration is
// injected into it at build time; most notably the Yandex Maps API key,
// read from GEOCODER_API_KEY, becomes the ymapsApiKey template field.
// [Shell.Build] writes index.html and, optionally, precompressed .br and .gz
// siblings for static hosting.
//
// [Document] is an [app.Host]: mounting an [app.Root] at "#app" renders the
// current view inside the mount element.
package shell
