package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultGraphQLURL    = "https://api.github.com/graphql"
	DefaultRESTBaseURL   = "https://api.github.com"
	DefaultMaxConcurrent = 10
	DefaultMaxRetries    = 10
	DefaultRetryDelay    = time.Second
	DefaultTimeout       = 30 * time.Second

	userAgent = "statsnusern"
	restKey   = "rest:"
)

// ErrStillComputing returneres når GitHub fortsatt svarer 202 etter maks antall forsøk.
var ErrStillComputing = errors.New("GitHub beregner fortsatt statistikken")

type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GitHub API-feil: status %d – %s", e.StatusCode, e.Body)
}

type ClientOptions struct {
	Token         string
	MaxConcurrent int
	GraphQLURL    string
	RESTBaseURL   string
	Timeout       time.Duration
	RetryDelay    time.Duration
	MaxRetries    int
	HTTPClient    *http.Client
}

// GitHubClient er eneste kontaktpunkt mot GitHub. Alle forespørsler går
// gjennom en felles semafor, og REST-svar caches.
type GitHubClient struct {
	http        *http.Client
	token       string
	graphqlURL  string
	restBaseURL string
	retryDelay  time.Duration
	maxRetries  int
	gate        *semaphore.Weighted
	cache       ResponseCache
	inflight    singleflight.Group
}

func NewGitHubClient(opts ClientOptions, cache ResponseCache) *GitHubClient {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = DefaultMaxConcurrent
	}
	if opts.GraphQLURL == "" {
		opts.GraphQLURL = DefaultGraphQLURL
	}
	if opts.RESTBaseURL == "" {
		opts.RESTBaseURL = DefaultRESTBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultRetryDelay
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = DefaultMaxRetries
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &GitHubClient{
		http:        httpClient,
		token:       opts.Token,
		graphqlURL:  opts.GraphQLURL,
		restBaseURL: strings.TrimRight(opts.RESTBaseURL, "/"),
		retryDelay:  opts.RetryDelay,
		maxRetries:  opts.MaxRetries,
		gate:        semaphore.NewWeighted(int64(opts.MaxConcurrent)),
		cache:       cache,
	}
}

// GraphQL sender én spørring. GraphQL-svar caches ikke, og feil prøves ikke på nytt.
func (c *GitHubClient) GraphQL(ctx context.Context, query string) (json.RawMessage, error) {
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("kunne ikke serialisere GraphQL-request: %w", err)
	}

	if err := c.gate.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer c.gate.Release(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	status, raw, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("GraphQL-kall feilet: %w", err)
	}
	if status < 200 || status >= 300 {
		slog.Error("GitHub-feil", "status", status, "body", string(raw))
		return nil, &StatusError{StatusCode: status, Body: string(raw)}
	}
	if !json.Valid(raw) {
		return nil, errors.New("ugyldig JSON i GraphQL-svar")
	}

	var envelope struct {
		Errors json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Errors) > 0 && string(envelope.Errors) != "null" {
		slog.Warn("GraphQL-resultat har feil", "errors", string(envelope.Errors))
	}

	return raw, nil
}

// RestGet henter path fra REST-API-et, via cachen. Cache-treff bruker ikke
// noen plass i semaforen. Samtidige kall på samme sti deler én forespørsel,
// men hver kaller venter bare så lenge dens egen context tillater.
func (c *GitHubClient) RestGet(ctx context.Context, path string) (json.RawMessage, error) {
	key := restKey + path

	if c.cache != nil {
		if cached, ok := c.cache.Get(key); ok {
			slog.Debug("Cache-treff", "path", path)
			return cached, nil
		}
	}

	// Den delte forespørselen skal ikke arve fristen til den som startet den.
	shared := context.WithoutCancel(ctx)
	ch := c.inflight.DoChan(key, func() (v any, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &fetchPanic{value: r}
			}
		}()
		return c.fetchREST(shared, path, key)
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("REST-kall mot %s avbrutt: %w", path, ctx.Err())
	case res := <-ch:
		if res.Shared {
			slog.Debug("Delte svar med samtidig forespørsel", "path", path)
		}
		var p *fetchPanic
		if errors.As(res.Err, &p) {
			panic(p.value)
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(json.RawMessage), nil
	}
}

// fetchPanic bærer en panikk fra den delte forespørselen tilbake til hver
// kaller, som så krasjer i sin egen goroutine.
type fetchPanic struct {
	value any
}

func (p *fetchPanic) Error() string {
	return fmt.Sprintf("REST-kall krasjet: %v", p.value)
}

// RestGetBatch henter alle stier samtidig. Semaforen gjelder fortsatt per
// forespørsel. En feil på én sti påvirker ikke de andre, og oppgaver som
// krasjer utelates fra resultatet.
func (c *GitHubClient) RestGetBatch(ctx context.Context, paths []string) []BatchResult {
	slots := make([]*BatchResult, len(paths))

	var g errgroup.Group
	for i, path := range paths {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("REST-oppgave krasjet – hopper over", "path", path, "panic", r)
				}
			}()

			data, err := c.RestGet(ctx, path)
			slots[i] = &BatchResult{Path: path, Data: data, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	results := make([]BatchResult, 0, len(paths))
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}
	return results
}

type requestState int

const (
	statePending requestState = iota
	stateAcquiring
	stateInFlight
	stateSuccess
	stateRetryable
	stateFatal
)

// fetchREST kjører én REST-forespørsel som en liten tilstandsmaskin.
// Plassen i semaforen slippes etter hvert forsøk, før eventuell venting.
func (c *GitHubClient) fetchREST(ctx context.Context, path, key string) (json.RawMessage, error) {
	url := c.restURL(path)

	var (
		state   = statePending
		retries int
		body    []byte
		err     error
	)

	for {
		switch state {
		case statePending:
			slog.Debug("Henter URL", "url", url)
			state = stateAcquiring

		case stateAcquiring:
			if err = c.gate.Acquire(ctx, 1); err != nil {
				state = stateFatal
				continue
			}
			state = stateInFlight

		case stateInFlight:
			var status int
			status, body, err = c.attempt(ctx, url)

			switch {
			case err != nil:
				err = fmt.Errorf("REST-kall mot %s feilet: %w", path, err)
				state = stateFatal
			case status == http.StatusAccepted:
				state = stateRetryable
			case status >= 200 && status < 300:
				state = stateSuccess
			default:
				slog.Debug("GitHub-feil", "path", path, "status", status, "body", string(body))
				err = &StatusError{StatusCode: status, Body: string(body)}
				state = stateFatal
			}

		case stateRetryable:
			retries++
			if retries > c.maxRetries {
				err = fmt.Errorf("for mange forsøk for %s: %w", path, ErrStillComputing)
				state = stateFatal
				continue
			}
			if retries == c.maxRetries/2 || retries == c.maxRetries {
				slog.Info("Venter fortsatt på statistikk", "path", path, "forsøk", retries, "maks", c.maxRetries)
			}
			if err = sleep(ctx, c.retryDelay); err != nil {
				state = stateFatal
				continue
			}
			state = stateAcquiring

		case stateSuccess:
			if len(bytes.TrimSpace(body)) == 0 {
				body = []byte("null")
			}
			if !json.Valid(body) {
				return nil, fmt.Errorf("ugyldig JSON fra %s", path)
			}
			if c.cache != nil {
				if err := c.cache.Set(key, body); err != nil {
					slog.Warn("Klarte ikke å lagre svar i cache", "path", path, "error", err)
				}
			}
			return json.RawMessage(body), nil

		case stateFatal:
			return nil, err
		}
	}
}

// attempt kjører ett forsøk og slipper plassen i semaforen etterpå, også ved panikk.
func (c *GitHubClient) attempt(ctx context.Context, url string) (int, []byte, error) {
	defer c.gate.Release(1)
	return c.get(ctx, url)
}

func (c *GitHubClient) get(ctx context.Context, url string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "token "+c.token)
	return c.do(req)
}

func (c *GitHubClient) do(req *http.Request) (int, []byte, error) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Warn("Klarte ikke å lukke body", "error", err)
		}
	}()

	if rl := resp.Header.Get("X-RateLimit-Remaining"); rl == "0" {
		slog.Warn("Rate limit nådd", "url", req.URL.String(), "reset", resp.Header.Get("X-RateLimit-Reset"))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("kunne ikke lese body: %w", err)
	}
	return resp.StatusCode, raw, nil
}

func (c *GitHubClient) restURL(path string) string {
	if strings.HasPrefix(path, "/") {
		return c.restBaseURL + path
	}
	return c.restBaseURL + "/" + path
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
