package schema

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/vburojevic/mdmdefaults/internal/value"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultBaseURL is where Apple publishes the profile schemas.
	DefaultBaseURL = "https://raw.githubusercontent.com/apple/device-management/release/mdm/profiles/"

	// DefaultTimeout bounds a single schema retrieval.
	DefaultTimeout = 10 * time.Second

	maxSchemaSize = 4 << 20
)

// Options configures a Fetcher. Zero values fall back to the defaults above,
// a no-op logger and the wall clock.
type Options struct {
	BaseURL string
	Timeout time.Duration

	// CacheFailures makes a failed fetch stick for the lifetime of the
	// Fetcher. When false, every lookup of a failed domain retries.
	CacheFailures bool

	HTTPClient *http.Client
	Logger     *zap.Logger
	Clock      clock.Clock
}

// Stats summarizes the work a Fetcher has done.
type Stats struct {
	Requests  int
	Failures  int
	CacheHits int
	Elapsed   time.Duration
}

type cacheEntry struct {
	schema *Schema
	err    error
}

// Fetcher retrieves schemas by domain and caches them for its own lifetime.
// It is safe for concurrent use; concurrent lookups of the same domain share
// one request.
type Fetcher struct {
	baseURL       string
	timeout       time.Duration
	cacheFailures bool
	client        *http.Client
	log           *zap.Logger
	clock         clock.Clock

	group singleflight.Group

	mu    sync.Mutex
	cache map[string]cacheEntry
	stats Stats
}

// NewFetcher creates a Fetcher with an empty cache.
func NewFetcher(opts Options) *Fetcher {
	f := &Fetcher{
		baseURL:       opts.BaseURL,
		timeout:       opts.Timeout,
		cacheFailures: opts.CacheFailures,
		client:        opts.HTTPClient,
		log:           opts.Logger,
		clock:         opts.Clock,
		cache:         make(map[string]cacheEntry),
	}
	if f.baseURL == "" {
		f.baseURL = DefaultBaseURL
	}
	if f.timeout <= 0 {
		f.timeout = DefaultTimeout
	}
	if f.client == nil {
		f.client = &http.Client{Timeout: f.timeout}
	}
	if f.log == nil {
		f.log = zap.NewNop()
	}
	if f.clock == nil {
		f.clock = clock.New()
	}
	return f
}

// URL returns the location of the schema document for domain.
func (f *Fetcher) URL(domain string) string {
	return strings.TrimSuffix(f.baseURL, "/") + "/" + url.PathEscape(domain) + ".yaml"
}

// Fetch returns the schema for domain, retrieving it on first use. Errors
// are *FetchError or *ParseError.
func (f *Fetcher) Fetch(ctx context.Context, domain string) (*Schema, error) {
	if e, ok := f.lookupCache(domain, true); ok {
		return e.schema, e.err
	}

	v, err, _ := f.group.Do(domain, func() (interface{}, error) {
		// Another caller may have filled the cache while we waited.
		if e, ok := f.lookupCache(domain, false); ok {
			return e.schema, e.err
		}

		start := f.clock.Now()
		s, err := f.retrieve(ctx, domain)
		elapsed := f.clock.Since(start)

		f.mu.Lock()
		f.stats.Requests++
		f.stats.Elapsed += elapsed
		if err != nil {
			f.stats.Failures++
		}
		if err == nil || f.cacheFailures {
			f.cache[domain] = cacheEntry{schema: s, err: err}
		}
		f.mu.Unlock()

		if err != nil {
			f.log.Warn("could not fetch schema", zap.String("domain", domain), zap.Duration("elapsed", elapsed), zap.Error(err))
		} else {
			f.log.Debug("fetched schema", zap.String("domain", domain), zap.Duration("elapsed", elapsed), zap.Int("keys", len(s.PayloadKeys)))
		}
		return s, err
	})

	s, _ := v.(*Schema)
	return s, err
}

// Lookup is Fetch with failures folded into "no schema".
func (f *Fetcher) Lookup(ctx context.Context, domain string) (*Schema, bool) {
	s, err := f.Fetch(ctx, domain)
	if err != nil || s == nil {
		return nil, false
	}
	return s, true
}

// DefaultFor returns the documented default for key in domain. Any fetch or
// parse failure reads as "undocumented".
func (f *Fetcher) DefaultFor(ctx context.Context, domain, key string) (value.Value, bool) {
	s, _ := f.Lookup(ctx, domain)
	return Default(s, key)
}

// Prefetch warms the cache for domains using at most limit concurrent
// requests. Individual failures are left in the cache according to the
// failure policy and are not returned.
func (f *Fetcher) Prefetch(ctx context.Context, domains []string, limit int) error {
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, d := range domains {
		d := d
		g.Go(func() error {
			_, _ = f.Fetch(gctx, d)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Stats returns a snapshot of request counters.
func (f *Fetcher) Stats() Stats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats
}

func (f *Fetcher) lookupCache(domain string, countHit bool) (cacheEntry, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.cache[domain]
	if ok && countHit {
		f.stats.CacheHits++
	}
	return e, ok
}

func (f *Fetcher) retrieve(ctx context.Context, domain string) (*Schema, error) {
	u := f.URL(domain)
	if strings.TrimSpace(domain) == "" {
		return nil, &FetchError{Domain: domain, URL: u, Err: errors.New("empty domain")}
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &FetchError{Domain: domain, URL: u, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{Domain: domain, URL: u, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Domain: domain, URL: u, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSchemaSize+1))
	if err != nil {
		return nil, &FetchError{Domain: domain, URL: u, Err: fmt.Errorf("read body: %w", err)}
	}
	if len(data) > maxSchemaSize {
		return nil, &FetchError{Domain: domain, URL: u, Err: fmt.Errorf("schema exceeds %d bytes", maxSchemaSize)}
	}

	return Parse(domain, data)
}
