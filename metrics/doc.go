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

// Package metrics records navigation, boot and shell build metrics with the
// Prometheus client.
//
// A [Recorder] owns a private registry. Wire it into a router as an
// after-navigation hook and a diagnostics handler:
//
//	rec := metrics.MustNew()
//	r := router.MustNew(table, router.WithDiagnostics(rec))
//	r.AfterEach(rec.ObserveNavigation)
//
// The shell does not serve HTTP; an embedding process that does can expose
// [Recorder.Registry] through promhttp.
package metrics
