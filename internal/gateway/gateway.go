// Package gateway serves same-origin GET requests cache-first, with an
// install step that pre-fetches a fixed manifest of assets.
package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

var ErrNetworkUnavailable = errors.New("network unavailable")

// DefaultManifest is the application shell.
var DefaultManifest = []string{"/", "/index.html", "/style.css", "/app.js", "/manifest.json", "/icon.svg"}

// DefaultBypass keeps live data out of the cache.
var DefaultBypass = []string{"/api/"}

type Config struct {
	CacheName string
	Origin    *url.URL
	Manifest  []string
	// Bypass lists path prefixes that always go to the network.
	Bypass []string
}

type Gateway struct {
	cfg     Config
	storage *Storage
	next    http.RoundTripper
	logger  *slog.Logger

	active  atomic.Bool
	pending sync.WaitGroup
}

// New returns an inactive gateway. next performs real network requests and
// defaults to http.DefaultTransport.
func New(cfg Config, storage *Storage, next http.RoundTripper) *Gateway {
	if next == nil {
		next = http.DefaultTransport
	}

	if cfg.Manifest == nil {
		cfg.Manifest = DefaultManifest
	}

	if cfg.Bypass == nil {
		cfg.Bypass = DefaultBypass
	}

	return &Gateway{
		cfg:     cfg,
		storage: storage,
		next:    next,
		logger:  slog.With("component", "gateway", "cache", cfg.CacheName),
	}
}

// Install fetches every manifest asset and stores them in the gateway's
// cache. Either all assets are stored or none are.
func (g *Gateway) Install(ctx context.Context) error {
	var (
		reqs  = make([]*http.Request, len(g.cfg.Manifest))
		resps = make([]*Response, len(g.cfg.Manifest))
	)

	eg, ctx := errgroup.WithContext(ctx)

	for i, path := range g.cfg.Manifest {
		eg.Go(func() error {
			target := g.cfg.Origin.ResolveReference(&url.URL{Path: path})

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
			if err != nil {
				return fmt.Errorf("building request for %s: %w", path, err)
			}

			resp, body, err := g.roundTrip(req)
			if err != nil {
				return err
			}

			if resp.StatusCode < 200 || resp.StatusCode > 299 {
				return fmt.Errorf("fetching %s: unexpected status %d", path, resp.StatusCode)
			}

			reqs[i], resps[i] = req, snapshot(resp, body)

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return fmt.Errorf("installing %s: %w", g.cfg.CacheName, err)
	}

	c := g.storage.Open(g.cfg.CacheName)
	for i := range reqs {
		c.Put(reqs[i], resps[i])
	}

	g.logger.Info("installed", "assets", len(reqs))

	return nil
}

// Activate removes caches left by other versions and starts intercepting.
func (g *Gateway) Activate() {
	for _, name := range g.storage.Keys() {
		if name == g.cfg.CacheName {
			continue
		}

		g.storage.Delete(name)
		g.logger.Info("deleted old cache", "old", name)
	}

	g.active.Store(true)
}

func (g *Gateway) Active() bool {
	return g.active.Load()
}

// Fetch answers same-origin GETs from the cache, falling back to the network
// and caching successful responses in the background. Bypassed paths and
// everything else go to the network untouched.
//
// Two concurrent misses for one URL both reach the network and both write
// the cache; the last write wins.
func (g *Gateway) Fetch(req *http.Request) (*http.Response, error) {
	if !g.Active() || req.Method != http.MethodGet || !g.sameOrigin(req.URL) || g.bypassed(req.URL) {
		return g.next.RoundTrip(req)
	}

	c := g.storage.Open(g.cfg.CacheName)

	if cached, ok := c.Match(req); ok {
		return cached.HTTP(req), nil
	}

	resp, body, err := g.roundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		clone := snapshot(resp, body)

		g.pending.Add(1)

		go func() {
			defer g.pending.Done()
			c.Put(req, clone)
		}()
	}

	return resp, nil
}

// RoundTrip makes the gateway usable as an http.Client transport.
func (g *Gateway) RoundTrip(req *http.Request) (*http.Response, error) {
	return g.Fetch(req)
}

// Wait blocks until background cache writes have finished.
func (g *Gateway) Wait() {
	g.pending.Wait()
}

// Handler proxies every request to the origin through Fetch.
func (g *Gateway) Handler() http.Handler {
	proxy := httputil.NewSingleHostReverseProxy(g.cfg.Origin)
	proxy.Transport = g
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		g.logger.Warn("fetch failed", "path", r.URL.Path, "error", err)

		status := http.StatusBadGateway
		if errors.Is(err, ErrNetworkUnavailable) {
			status = http.StatusServiceUnavailable
		}

		http.Error(w, http.StatusText(status), status)
	}

	return proxy
}

// roundTrip performs req on the network and buffers the body so it can be
// both returned and cached.
func (g *Gateway) roundTrip(req *http.Request) (*http.Response, []byte, error) {
	resp, err := g.next.RoundTrip(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrNetworkUnavailable, req.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: reading %s: %w", ErrNetworkUnavailable, req.URL, err)
	}

	resp.Body = io.NopCloser(bytes.NewReader(body))

	return resp, body, nil
}

func (g *Gateway) bypassed(u *url.URL) bool {
	return slices.ContainsFunc(g.cfg.Bypass, func(prefix string) bool {
		return strings.HasPrefix(u.Path, prefix)
	})
}

func (g *Gateway) sameOrigin(u *url.URL) bool {
	return u.Scheme == g.cfg.Origin.Scheme && u.Host == g.cfg.Origin.Host
}
