package fetcher_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jonmartinstorm/statsnusern/internal/cache"
	"github.com/jonmartinstorm/statsnusern/internal/fetcher"
	"github.com/jonmartinstorm/statsnusern/internal/logger"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

var _ = Describe("GitHubClient", func() {
	var (
		ctx   context.Context
		store *cache.Cache
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		store, err = cache.New(GinkgoT().TempDir(), time.Hour)
		Expect(err).NotTo(HaveOccurred())
	})

	newClient := func(ts *httptest.Server, maxConcurrent int) *fetcher.GitHubClient {
		return fetcher.NewGitHubClient(fetcher.ClientOptions{
			Token:         "hemmelig",
			MaxConcurrent: maxConcurrent,
			GraphQLURL:    ts.URL + "/graphql",
			RESTBaseURL:   ts.URL,
			RetryDelay:    time.Millisecond,
			MaxRetries:    10,
			HTTPClient:    ts.Client(),
		}, store)
	}

	Describe("GraphQL", func() {
		It("sender spørringen med Bearer-token", func() {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				defer GinkgoRecover()
				Expect(r.Method).To(Equal(http.MethodPost))
				Expect(r.Header.Get("Authorization")).To(Equal("Bearer hemmelig"))
				Expect(r.Header.Get("Content-Type")).To(Equal("application/json"))

				var body map[string]string
				Expect(json.NewDecoder(r.Body).Decode(&body)).To(Succeed())
				Expect(body["query"]).To(Equal("{ viewer { login } }"))

				_, _ = fmt.Fprint(w, `{"data": {"viewer": {"login": "ola"}}}`)
			}))
			defer ts.Close()

			raw, err := newClient(ts, 2).GraphQL(ctx, "{ viewer { login } }")
			Expect(err).NotTo(HaveOccurred())
			Expect(string(raw)).To(MatchJSON(`{"data":{"viewer":{"login":"ola"}}}`))
		})

		It("feiler uten nye forsøk når status ikke er 2xx", func() {
			var calls atomic.Int32
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(http.StatusBadGateway)
				_, _ = fmt.Fprint(w, `{"message":"oops"}`)
			}))
			defer ts.Close()

			_, err := newClient(ts, 2).GraphQL(ctx, "{ viewer { login } }")
			Expect(err).To(HaveOccurred())

			var statusErr *fetcher.StatusError
			Expect(errors.As(err, &statusErr)).To(BeTrue())
			Expect(statusErr.StatusCode).To(Equal(http.StatusBadGateway))
			Expect(err.Error()).To(ContainSubstring("oops"))
			Expect(calls.Load()).To(Equal(int32(1)))
		})

		It("returnerer data selv om svaret inneholder GraphQL-feil", func() {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = fmt.Fprint(w, `{"data": {"viewer": null}, "errors": [{"message": "delvis"}]}`)
			}))
			defer ts.Close()

			raw, err := newClient(ts, 2).GraphQL(ctx, "{}")
			Expect(err).NotTo(HaveOccurred())
			Expect(string(raw)).To(ContainSubstring("delvis"))
		})
	})

	Describe("RestGet", func() {
		It("bruker token-header og cacher svaret", func() {
			var calls atomic.Int32
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				defer GinkgoRecover()
				calls.Add(1)
				Expect(r.Method).To(Equal(http.MethodGet))
				Expect(r.URL.Path).To(Equal("/repos/ola/prosjekt/traffic/views"))
				Expect(r.Header.Get("Authorization")).To(Equal("token hemmelig"))
				_, _ = fmt.Fprint(w, `{"views": [{"count": 7}]}`)
			}))
			defer ts.Close()

			client := newClient(ts, 2)
			for range 3 {
				raw, err := client.RestGet(ctx, "/repos/ola/prosjekt/traffic/views")
				Expect(err).NotTo(HaveOccurred())
				Expect(string(raw)).To(MatchJSON(`{"views":[{"count":7}]}`))
			}
			Expect(calls.Load()).To(Equal(int32(1)))

			cached, ok := store.Get("rest:/repos/ola/prosjekt/traffic/views")
			Expect(ok).To(BeTrue())
			Expect(string(cached)).To(MatchJSON(`{"views":[{"count":7}]}`))
		})

		It("godtar stier uten ledende skråstrek", func() {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				defer GinkgoRecover()
				Expect(r.URL.Path).To(Equal("/repos/a/b/stats/contributors"))
				_, _ = fmt.Fprint(w, `[]`)
			}))
			defer ts.Close()

			_, err := newClient(ts, 1).RestGet(ctx, "repos/a/b/stats/contributors")
			Expect(err).NotTo(HaveOccurred())
		})

		It("prøver på nytt ved 202 og lykkes til slutt", func() {
			var calls atomic.Int32
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if calls.Add(1) <= 3 {
					w.WriteHeader(http.StatusAccepted)
					_, _ = fmt.Fprint(w, `{}`)
					return
				}
				_, _ = fmt.Fprint(w, `[{"author": {"login": "ola"}, "weeks": [{"a": 5, "d": 1}]}]`)
			}))
			defer ts.Close()

			raw, err := newClient(ts, 1).RestGet(ctx, "/repos/ola/x/stats/contributors")
			Expect(err).NotTo(HaveOccurred())
			Expect(string(raw)).To(ContainSubstring(`"ola"`))
			Expect(calls.Load()).To(Equal(int32(4)))

			_, ok := store.Get("rest:/repos/ola/x/stats/contributors")
			Expect(ok).To(BeTrue())
		})

		It("gir opp etter maks antall 202-svar og navngir stien", func() {
			var calls atomic.Int32
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(http.StatusAccepted)
			}))
			defer ts.Close()

			_, err := newClient(ts, 1).RestGet(ctx, "/repos/ola/treg/stats/contributors")
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, fetcher.ErrStillComputing)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("/repos/ola/treg/stats/contributors"))
			Expect(calls.Load()).To(Equal(int32(11)))

			_, ok := store.Get("rest:/repos/ola/treg/stats/contributors")
			Expect(ok).To(BeFalse())
		})

		It("logger at den venter ved halvveis og siste forsøk", func() {
			previous := slog.Default()
			DeferCleanup(func() { slog.SetDefault(previous) })
			var buf bytes.Buffer
			logger.SetupLogger(&buf)

			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusAccepted)
			}))
			defer ts.Close()

			_, err := newClient(ts, 1).RestGet(ctx, "/repos/ola/treg/stats/contributors")
			Expect(errors.Is(err, fetcher.ErrStillComputing)).To(BeTrue())

			var attempts []float64
			for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
				var record map[string]any
				Expect(json.Unmarshal(line, &record)).To(Succeed())
				if record["msg"] == "Venter fortsatt på statistikk" {
					Expect(record["path"]).To(Equal("/repos/ola/treg/stats/contributors"))
					attempts = append(attempts, record["forsøk"].(float64))
				}
			}
			Expect(attempts).To(Equal([]float64{5, 10}))
		})

		It("feiler straks ved annen status og cacher ikke", func() {
			var calls atomic.Int32
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(http.StatusForbidden)
				_, _ = fmt.Fprint(w, `{"message":"access denied"}`)
			}))
			defer ts.Close()

			_, err := newClient(ts, 1).RestGet(ctx, "/repos/a/b/traffic/views")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("GitHub API-feil"))
			Expect(err.Error()).To(ContainSubstring("403"))
			Expect(err.Error()).To(ContainSubstring("access denied"))
			Expect(calls.Load()).To(Equal(int32(1)))

			_, ok := store.Get("rest:/repos/a/b/traffic/views")
			Expect(ok).To(BeFalse())
		})

		It("lagrer tomt 204-svar som null", func() {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			}))
			defer ts.Close()

			raw, err := newClient(ts, 1).RestGet(ctx, "/repos/a/tom/stats/contributors")
			Expect(err).NotTo(HaveOccurred())
			Expect(string(raw)).To(Equal("null"))
		})

		It("svarer fra cache uten å vente på semaforen", func() {
			release := make(chan struct{})
			entered := make(chan struct{})
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				close(entered)
				<-release
				_, _ = fmt.Fprint(w, `{}`)
			}))
			defer ts.Close()

			Expect(store.Set("rest:/repos/a/cached/traffic/views", json.RawMessage(`{"views": []}`))).To(Succeed())
			client := newClient(ts, 1)

			done := make(chan error, 1)
			go func() {
				_, err := client.RestGet(ctx, "/repos/a/slow/traffic/views")
				done <- err
			}()
			Eventually(entered).Should(BeClosed())

			raw, err := client.RestGet(ctx, "/repos/a/cached/traffic/views")
			Expect(err).NotTo(HaveOccurred())
			Expect(string(raw)).To(MatchJSON(`{"views":[]}`))

			close(release)
			Eventually(done).Should(Receive(BeNil()))
		})

		It("avbryter ventingen når context kanselleres", func() {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusAccepted)
			}))
			defer ts.Close()

			client := fetcher.NewGitHubClient(fetcher.ClientOptions{
				RESTBaseURL: ts.URL,
				RetryDelay:  time.Hour,
				HTTPClient:  ts.Client(),
			}, store)

			cctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
			defer cancel()

			_, err := client.RestGet(cctx, "/repos/a/b/stats/contributors")
			Expect(errors.Is(err, context.DeadlineExceeded)).To(BeTrue())
		})

		It("deler én forespørsel mellom samtidige kall på samme sti", func() {
			var calls atomic.Int32
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				time.Sleep(50 * time.Millisecond)
				_, _ = fmt.Fprint(w, `[]`)
			}))
			defer ts.Close()

			client := newClient(ts, 4)
			var wg sync.WaitGroup
			for range 4 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					defer GinkgoRecover()
					_, err := client.RestGet(ctx, "/repos/a/b/stats/contributors")
					Expect(err).NotTo(HaveOccurred())
				}()
			}
			wg.Wait()
			Expect(calls.Load()).To(Equal(int32(1)))
		})

		It("lar en kaller med kort frist gi opp uten å felle de andre som venter", func() {
			var calls atomic.Int32
			entered := make(chan struct{})
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if calls.Add(1) == 1 {
					close(entered)
				}
				time.Sleep(100 * time.Millisecond)
				_, _ = fmt.Fprint(w, `[]`)
			}))
			defer ts.Close()

			client := newClient(ts, 2)
			path := "/repos/a/b/stats/contributors"

			short, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
			defer cancel()
			shortDone := make(chan error, 1)
			go func() {
				_, err := client.RestGet(short, path)
				shortDone <- err
			}()
			Eventually(entered).Should(BeClosed())

			raw, err := client.RestGet(ctx, path)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(raw)).To(Equal("[]"))
			Expect(calls.Load()).To(Equal(int32(1)))

			var shortErr error
			Eventually(shortDone).Should(Receive(&shortErr))
			Expect(errors.Is(shortErr, context.DeadlineExceeded)).To(BeTrue())
		})
	})

	Describe("RestGetBatch", func() {
		It("isolerer feil per sti", func() {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if strings.Contains(r.URL.Path, "/B/") {
					w.WriteHeader(http.StatusInternalServerError)
					return
				}
				_, _ = fmt.Fprintf(w, `{"path": %q}`, r.URL.Path)
			}))
			defer ts.Close()

			paths := []string{"/repos/o/A/traffic/views", "/repos/o/B/traffic/views", "/repos/o/C/traffic/views"}
			results := newClient(ts, 2).RestGetBatch(ctx, paths)
			Expect(results).To(HaveLen(3))

			byPath := map[string]fetcher.BatchResult{}
			for _, r := range results {
				byPath[r.Path] = r
			}
			Expect(byPath[paths[0]].Err).NotTo(HaveOccurred())
			Expect(string(byPath[paths[0]].Data)).To(ContainSubstring("/repos/o/A"))
			Expect(byPath[paths[1]].Err).To(HaveOccurred())
			Expect(byPath[paths[2]].Err).NotTo(HaveOccurred())
			Expect(string(byPath[paths[2]].Data)).To(ContainSubstring("/repos/o/C"))
		})

		It("holder seg innenfor taket for samtidige forespørsler", func() {
			var inFlight, peak atomic.Int32
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := inFlight.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(20 * time.Millisecond)
				inFlight.Add(-1)
				_, _ = fmt.Fprint(w, `[]`)
			}))
			defer ts.Close()

			var paths []string
			for i := range 12 {
				paths = append(paths, fmt.Sprintf("/repos/o/r%d/stats/contributors", i))
			}

			results := newClient(ts, 3).RestGetBatch(ctx, paths)
			Expect(results).To(HaveLen(12))
			Expect(peak.Load()).To(BeNumerically("<=", 3))
			Expect(peak.Load()).To(BeNumerically(">=", 1))
		})

		It("dropper oppgaver som krasjer", func() {
			transport := roundTripFunc(func(r *http.Request) (*http.Response, error) {
				if strings.Contains(r.URL.Path, "boom") {
					panic("transport eksploderte")
				}
				return &http.Response{
					StatusCode: http.StatusOK,
					Header:     http.Header{},
					Body:       io.NopCloser(strings.NewReader(`{"views": []}`)),
					Request:    r,
				}, nil
			})

			client := fetcher.NewGitHubClient(fetcher.ClientOptions{
				MaxConcurrent: 1,
				RESTBaseURL:   "http://github.invalid",
				HTTPClient:    &http.Client{Transport: transport},
			}, store)

			results := client.RestGetBatch(ctx, []string{"/repos/o/ok/traffic/views", "/repos/o/boom/traffic/views"})
			Expect(results).To(HaveLen(1))
			Expect(results[0].Path).To(Equal("/repos/o/ok/traffic/views"))
			Expect(results[0].Err).NotTo(HaveOccurred())

			// Plassen i semaforen skal være sluppet selv om forsøket krasjet.
			cctx, cancel := context.WithTimeout(ctx, time.Second)
			defer cancel()
			_, err := client.RestGet(cctx, "/repos/o/etterpaa/traffic/views")
			Expect(err).NotTo(HaveOccurred())
		})

		It("returnerer tom liste for ingen stier", func() {
			client := fetcher.NewGitHubClient(fetcher.ClientOptions{}, store)
			Expect(client.RestGetBatch(ctx, nil)).To(BeEmpty())
		})
	})
})
