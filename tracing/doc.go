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

// Package tracing builds the OpenTelemetry tracer provider the app and the
// router record spans with.
//
// Two providers are supported. [NoopProvider] records nothing and is the
// default. [StdoutProvider] exports finished spans as JSON to a writer,
// which is how `placesweb render -trace` shows a boot:
//
//	tr, err := tracing.New(
//	    tracing.WithServiceName("placesweb"),
//	    tracing.WithStdout(os.Stderr),
//	)
//	if err != nil {
//	    return err
//	}
//	defer tr.Shutdown(context.Background())
//
//	a := app.MustNew(app.WithRoutes(table), app.WithTracerProvider(tr.TracerProvider()))
//
// The provider is never registered globally, so several can coexist.
package tracing
