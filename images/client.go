package images

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	UserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"
	DataURIPrefix  = "data:image/png;base64,"
	DefaultTimeout = 10 * time.Second
	// Images larger than this are treated as missing.
	MaxImageSize = 5 << 20

	// Maximum number of images fetched at the same time by ResolveAll.
	maxParallelFetches = 8
)

// Resolver turns image URLs from the dataset into data URIs that can be
// embedded straight into a page.
type Resolver interface {
	// Resolve returns the data URI for the image at url, and false if the image
	// could not be fetched. Results, including failures, are cached for the
	// lifetime of the Resolver so a url is fetched at most once.
	Resolve(ctx context.Context, url string) (string, bool)
	// ResolveAll resolves all of the urls and returns the data URIs of the
	// ones that could be fetched, keyed by url.
	ResolveAll(ctx context.Context, urls []string) map[string]string
	Stats() Stats
}

type Stats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Fetches int64 `json:"fetches"`
	Entries int   `json:"entries"`
}

type Options struct {
	Timeout time.Duration
	// MaxEntries caps the number of cached urls. Zero means no limit and no
	// entry is ever evicted.
	MaxEntries int
}

type client struct {
	httpClient *http.Client
	maxBytes   int64
	cache      cache
	group      singleflight.Group

	hits    atomic.Int64
	misses  atomic.Int64
	fetches atomic.Int64
}

func New(opts Options) (Resolver, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxEntries < 0 {
		return nil, fmt.Errorf("invalid max entries: %d", opts.MaxEntries)
	}

	c, err := newCache(opts.MaxEntries)
	if err != nil {
		return nil, err
	}

	return &client{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		maxBytes: MaxImageSize,
		cache:    c,
	}, nil
}

// NewForTest returns a Resolver that uses httpClient as is.
func NewForTest(httpClient *http.Client) Resolver {
	c, _ := newCache(0)
	return &client{httpClient: httpClient, maxBytes: MaxImageSize, cache: c}
}

func (c *client) Resolve(ctx context.Context, rawURL string) (string, bool) {
	if !isImageURL(rawURL) {
		return "", false
	}

	if e, found := c.cache.get(rawURL); found {
		c.hits.Add(1)
		return e.dataURI, e.ok
	}
	c.misses.Add(1)

	// Concurrent misses for the same url share a single fetch.
	ch := c.group.DoChan(rawURL, func() (any, error) {
		if e, found := c.cache.get(rawURL); found {
			return e, nil
		}
		e := c.fetch(context.WithoutCancel(ctx), rawURL)
		c.cache.add(rawURL, e)
		return e, nil
	})

	select {
	case res := <-ch:
		e := res.Val.(entry)
		return e.dataURI, e.ok
	case <-ctx.Done():
		// The fetch keeps running and its result is still cached.
		return "", false
	}
}

func (c *client) ResolveAll(ctx context.Context, urls []string) map[string]string {
	result := make(map[string]string, len(urls))
	mu := &sync.Mutex{}

	g := &errgroup.Group{}
	g.SetLimit(maxParallelFetches)

	seen := make(map[string]bool, len(urls))
	for _, u := range urls {
		if seen[u] {
			continue
		}
		seen[u] = true

		g.Go(func() error {
			if uri, ok := c.Resolve(ctx, u); ok {
				mu.Lock()
				result[u] = uri
				mu.Unlock()
			}
			return nil
		})
	}
	g.Wait()

	return result
}

func (c *client) Stats() Stats {
	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Fetches: c.fetches.Load(),
		Entries: c.cache.len(),
	}
}

// fetch makes a single attempt to download the image. Every failure is
// reported as an absent entry. ctx must not be the request context: a
// cancelled page render would otherwise cache a failure for everybody.
func (c *client) fetch(ctx context.Context, rawURL string) entry {
	c.fetches.Add(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		log.Printf("error creating image request for %s: %v", rawURL, err)
		return entry{}
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("error fetching image %s: %v", rawURL, err)
		return entry{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		log.Printf("unexpected status code fetching image %s: %d", rawURL, resp.StatusCode)
		return entry{}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		log.Printf("error reading image %s: %v", rawURL, err)
		return entry{}
	}
	if int64(len(body)) > c.maxBytes {
		log.Printf("image %s is larger than %d bytes", rawURL, c.maxBytes)
		return entry{}
	}

	// Always labelled as PNG, whatever the real format is.
	return entry{
		dataURI: DataURIPrefix + base64.StdEncoding.EncodeToString(body),
		ok:      true,
	}
}

// isImageURL is true for absolute http and https urls with a host.
func isImageURL(rawURL string) bool {
	if rawURL == "" {
		return false
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// entry is a cached result. ok is false when the fetch failed.
type entry struct {
	dataURI string
	ok      bool
}

type cache interface {
	get(key string) (entry, bool)
	add(key string, e entry)
	len() int
}

func newCache(maxEntries int) (cache, error) {
	if maxEntries == 0 {
		return &mapCache{entries: make(map[string]entry)}, nil
	}

	l, err := lru.New[string, entry](maxEntries)
	if err != nil {
		return nil, fmt.Errorf("error creating image cache: %w", err)
	}
	return &lruCache{l: l}, nil
}

type mapCache struct {
	mu      sync.RWMutex
	entries map[string]entry
}

func (m *mapCache) get(key string) (entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, found := m.entries[key]
	return e, found
}

func (m *mapCache) add(key string, e entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = e
}

func (m *mapCache) len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// lruCache is safe for concurrent use, the lru package does its own locking.
type lruCache struct {
	l *lru.Cache[string, entry]
}

func (c *lruCache) get(key string) (entry, bool) {
	return c.l.Get(key)
}

func (c *lruCache) add(key string, e entry) {
	c.l.Add(key, e)
}

func (c *lruCache) len() int {
	return c.l.Len()
}
