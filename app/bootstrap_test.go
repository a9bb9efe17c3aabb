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

package app_test

import (
	"context"
	"io"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/placesapp/placesweb/app"
	"github.com/placesapp/placesweb/logging"
	"github.com/placesapp/placesweb/router"
)

var placesTable = router.MustNewTable(
	router.Route{Path: "/", Name: "Auth"},
	router.Route{Path: "/catalog", Name: "Catalog"},
	router.Route{Path: "/favorites", Name: "Favorites"},
	router.Route{
		Path: "/place/:id",
		Name: "PlaceDetails",
		View: router.ViewFunc(func(w io.Writer, loc *router.Location) error {
			_, err := io.WriteString(w, `<article data-id="`+loc.Param("id")+`"></article>`)
			return err
		}),
	},
)

// stallingHistory never finishes resolving until release is closed.
type stallingHistory struct {
	*router.MemoryHistory
	release chan struct{}
}

func (h stallingHistory) Location() string {
	<-h.release
	return h.MemoryHistory.Location()
}

var _ = Describe("Application bootstrap", func() {
	var (
		logger *logging.Logger
		buf    *logging.SyncBuffer
		host   *app.MemoryHost
	)

	BeforeEach(func() {
		logger, buf = logging.NewTestLogger()
		host = app.NewMemoryHost()
	})

	entries := func() []logging.LogEntry {
		out, err := logging.ParseJSONLogEntries(buf.Bytes())
		Expect(err).NotTo(HaveOccurred())
		return out
	}

	errorCount := func() int {
		n := 0
		for _, e := range entries() {
			if e.Level == "ERROR" {
				n++
			}
		}
		return n
	}

	boot := func(ctx context.Context, h router.History) (*app.App, error) {
		a := app.MustNew(
			app.WithRoutes(placesTable),
			app.WithRouterOptions(router.WithHistory(h)),
			app.WithLogger(logger),
			app.WithHost(host),
		)
		return a, a.Run(ctx)
	}

	DescribeTable("mounts every declared route exactly once",
		func(path, name string) {
			a, err := boot(context.Background(), router.NewMemoryHistory(path))
			Expect(err).NotTo(HaveOccurred())
			Expect(a.State()).To(Equal(app.StateReady))
			Expect(a.Router().Current().Name).To(Equal(name))
			Expect(host.MountCount(app.DefaultSelector)).To(Equal(1))
		},
		Entry("auth", "/", "Auth"),
		Entry("catalog", "/catalog", "Catalog"),
		Entry("favorites", "/favorites/", "Favorites"),
		Entry("place details", "/place/42", "PlaceDetails"),
	)

	It("binds the place id and renders its view", func() {
		a, err := boot(context.Background(), router.NewMemoryHistory("/place/42?tab=photos"))
		Expect(err).NotTo(HaveOccurred())

		loc := a.Router().Current()
		Expect(loc.Params).To(HaveKeyWithValue("id", "42"))
		Expect(loc.Query.Get("tab")).To(Equal("photos"))
		Expect(a.Root().HTML()).To(Equal(`<article data-id="42"></article>`))
	})

	It("redirects an undeclared path to the landing route before mounting", func() {
		a, err := boot(context.Background(), router.NewMemoryHistory("/does/not/exist"))
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Router().Current().Name).To(Equal("Auth"))
		Expect(a.Router().Current().Path).To(Equal("/"))
		Expect(host.MountCount(app.DefaultSelector)).To(Equal(1))
		Expect(errorCount()).To(BeZero())
	})

	It("never mounts and logs one error when readiness is rejected", func() {
		a, err := boot(context.Background(), router.NewMemoryHistory("/place/%zz"))
		Expect(err).To(MatchError(app.ErrRouterNotReady))
		Expect(a.State()).To(Equal(app.StateInitializing))
		Expect(a.Mounted()).To(BeFalse())
		Expect(host.MountCount(app.DefaultSelector)).To(BeZero())
		Expect(errorCount()).To(Equal(1))
	})

	It("waits for readiness without a timeout of its own", func() {
		h := stallingHistory{MemoryHistory: router.NewMemoryHistory("/catalog"), release: make(chan struct{})}
		done := make(chan error, 1)
		a := app.MustNew(
			app.WithRoutes(placesTable),
			app.WithRouterOptions(router.WithHistory(h)),
			app.WithLogger(logger),
			app.WithHost(host),
		)
		go func() { done <- a.Run(context.Background()) }()

		Consistently(done, 50*time.Millisecond).ShouldNot(Receive())
		Expect(a.State()).To(Equal(app.StateInitializing))
		Expect(host.MountCount(app.DefaultSelector)).To(BeZero())

		close(h.release)
		Eventually(done).Should(Receive(BeNil()))
		Expect(a.State()).To(Equal(app.StateReady))
		Expect(host.MountCount(app.DefaultSelector)).To(Equal(1))
	})

	It("logs navigation diagnostics around each transition", func() {
		a, err := boot(context.Background(), router.NewMemoryHistory("/catalog"))
		Expect(err).NotTo(HaveOccurred())
		_, err = a.Router().Push(context.Background(), "/place/7")
		Expect(err).NotTo(HaveOccurred())

		var messages []string
		for _, e := range entries() {
			if e.Kind() == string(router.DiagNavigationStart) || e.Kind() == string(router.DiagNavigationComplete) {
				messages = append(messages, e.Message)
			}
		}
		Expect(messages).To(Equal([]string{
			"Navigation: (start) -> /catalog",
			"Transition complete: /catalog",
			"Navigation: /catalog -> /place/7",
			"Transition complete: /place/7",
		}))
	})
})
