package gateway

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/MrJamesThe3rd/pennywise/internal/cache"
)

// Response is a buffered copy of an HTTP response that can be replayed any
// number of times.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func snapshot(resp *http.Response, body []byte) *Response {
	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header.Clone(),
		Body:       body,
	}
}

// HTTP builds a fresh *http.Response for req from the snapshot.
func (r *Response) HTTP(req *http.Request) *http.Response {
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", r.StatusCode, http.StatusText(r.StatusCode)),
		StatusCode:    r.StatusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        r.Header.Clone(),
		Body:          io.NopCloser(bytes.NewReader(r.Body)),
		ContentLength: int64(len(r.Body)),
		Request:       req,
	}
}

// Cache is one named response cache keyed by request URL.
type Cache struct {
	entries *cache.LRU[*Response]
}

func (c *Cache) Match(req *http.Request) (*Response, bool) {
	return c.entries.Get(key(req))
}

func (c *Cache) Put(req *http.Request, resp *Response) {
	c.entries.Set(key(req), resp)
}

func (c *Cache) Len() int {
	return c.entries.Len()
}

func key(req *http.Request) string {
	u := *req.URL
	u.Fragment = ""

	return u.String()
}

// Storage holds every named cache. It outlives individual gateways so a
// newer gateway can find and remove the caches of older ones.
type Storage struct {
	maxEntries int
	maxAge     time.Duration

	mu     sync.Mutex
	caches map[string]*Cache
}

// NewStorage bounds each cache to maxEntries and drops entries older than
// maxAge. Zero disables either limit.
func NewStorage(maxEntries int, maxAge time.Duration) *Storage {
	return &Storage{maxEntries: maxEntries, maxAge: maxAge, caches: make(map[string]*Cache)}
}

// Open returns the named cache, creating it when missing.
func (s *Storage) Open(name string) *Cache {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.caches[name]
	if !ok {
		c = &Cache{entries: cache.NewLRU[*Response](s.maxEntries, s.maxAge)}
		s.caches[name] = c
	}

	return c
}

// Keys returns the cache names in sorted order.
func (s *Storage) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.caches))
	for name := range s.caches {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

func (s *Storage) Delete(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.caches[name]
	delete(s.caches, name)

	return ok
}

// Sweep drops expired entries from every cache and returns how many went.
func (s *Storage) Sweep() int {
	s.mu.Lock()
	caches := make([]*Cache, 0, len(s.caches))
	for _, c := range s.caches {
		caches = append(caches, c)
	}
	s.mu.Unlock()

	removed := 0
	for _, c := range caches {
		removed += c.entries.CleanExpired()
	}

	return removed
}
