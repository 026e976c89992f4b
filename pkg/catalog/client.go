// Package catalog is the client for the remote creature catalog API.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/pokedex-cli/pokedex/pkg/cache"
	"github.com/pokedex-cli/pokedex/pkg/metrics"
	"github.com/pokedex-cli/pokedex/pkg/models"
)

const (
	endpointRead = "read"
	endpointList = "list"
)

// Client fetches records from the catalog, consulting its cache first.
type Client struct {
	baseURL        string
	http           *http.Client
	cache          cache.Store
	log            *zap.Logger
	metrics        *metrics.Metrics
	maxConcurrency int
	flight         singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithMaxConcurrency bounds the number of in-flight resolutions of a batch.
// Zero or less means unbounded.
func WithMaxConcurrency(n int) Option {
	return func(c *Client) { c.maxConcurrency = n }
}

// New creates a Client for the read endpoint at baseURL,
// e.g. "https://pokeapi.co/api/v2/pokemon/".
func New(baseURL string, store cache.Store, opts ...Option) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	c := &Client{
		baseURL: baseURL,
		http:    http.DefaultClient,
		cache:   store,
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Normalize returns the request key for query.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// FetchOne returns the record for a name (any case) or numeric id.
// Cached records are returned without network access. Concurrent misses for
// one key share a single request.
func (c *Client) FetchOne(ctx context.Context, query string) (models.Pokemon, error) {
	key := Normalize(query)
	if key == "" {
		return models.Pokemon{}, ErrEmptyQuery
	}

	if p, ok := c.cache.Get(key); ok {
		c.metrics.CacheLookup(true)
		c.log.Debug("cache hit", zap.String("key", key))
		return p, nil
	}
	c.metrics.CacheLookup(false)

	v, err, _ := c.flight.Do(key, func() (any, error) {
		p, err := c.fetchRecord(ctx, key, query)
		if err != nil {
			return models.Pokemon{}, err
		}
		if err := c.cache.Put(key, p); err != nil {
			c.log.Warn("cache put failed", zap.String("key", key), zap.Error(err))
		}
		return p, nil
	})
	if err != nil {
		// Callers joining a flight see the leader's error; NotFound must
		// carry each caller's own query.
		var nf *NotFoundError
		if errors.As(err, &nf) && nf.Query != query {
			err = &NotFoundError{Query: query, Status: nf.Status}
		}
		return models.Pokemon{}, err
	}
	return v.(models.Pokemon), nil
}

// FetchMany lists one page of the catalog and resolves every entry.
// The result has the listing's order; any failed resolution fails the call.
func (c *Client) FetchMany(ctx context.Context, limit, offset int) ([]models.Pokemon, error) {
	page, err := c.fetchList(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(page.Results))
	for _, r := range page.Results {
		names = append(names, r.Name)
	}
	return c.FetchEach(ctx, names)
}

// FetchEach resolves every query concurrently and returns the records in
// input order. The first failure cancels the rest and no partial list is
// returned.
func (c *Client) FetchEach(ctx context.Context, queries []string) ([]models.Pokemon, error) {
	out := make([]models.Pokemon, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	if c.maxConcurrency > 0 {
		g.SetLimit(c.maxConcurrency)
	}
	for i, q := range queries {
		g.Go(func() error {
			p, err := c.FetchOne(gctx, q)
			if err != nil {
				return err
			}
			out[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) fetchRecord(ctx context.Context, key, query string) (models.Pokemon, error) {
	start := time.Now()
	u := c.baseURL + url.PathEscape(key)

	resp, err := c.get(ctx, u)
	if err != nil {
		c.metrics.ObserveRequest(endpointRead, metrics.OutcomeError, start)
		return models.Pokemon{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.metrics.ObserveRequest(endpointRead, metrics.OutcomeNotFound, start)
		c.log.Debug("record not found", zap.String("query", query), zap.Int("status", resp.StatusCode))
		return models.Pokemon{}, &NotFoundError{Query: query, Status: resp.StatusCode}
	}

	var p models.Pokemon
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		c.metrics.ObserveRequest(endpointRead, metrics.OutcomeError, start)
		return models.Pokemon{}, fmt.Errorf("%w: decode %s: %v", ErrNetworkOrParse, key, err)
	}
	if p.ID <= 0 {
		c.metrics.ObserveRequest(endpointRead, metrics.OutcomeError, start)
		return models.Pokemon{}, fmt.Errorf("%w: record %s has no id", ErrNetworkOrParse, key)
	}

	c.metrics.ObserveRequest(endpointRead, metrics.OutcomeOK, start)
	c.log.Debug("record fetched", zap.String("key", key), zap.Int("id", p.ID),
		zap.Duration("latency", time.Since(start)))
	return p, nil
}

func (c *Client) fetchList(ctx context.Context, limit, offset int) (models.ListPage, error) {
	start := time.Now()
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	u := strings.TrimRight(c.baseURL, "/") + "?" + q.Encode()

	resp, err := c.get(ctx, u)
	if err != nil {
		c.metrics.ObserveRequest(endpointList, metrics.OutcomeError, start)
		return models.ListPage{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.metrics.ObserveRequest(endpointList, metrics.OutcomeError, start)
		return models.ListPage{}, fmt.Errorf("%w: list status=%d", ErrNetworkOrParse, resp.StatusCode)
	}

	var page models.ListPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		c.metrics.ObserveRequest(endpointList, metrics.OutcomeError, start)
		return models.ListPage{}, fmt.Errorf("%w: decode list: %v", ErrNetworkOrParse, err)
	}

	c.metrics.ObserveRequest(endpointList, metrics.OutcomeOK, start)
	return page, nil
}

func (c *Client) get(ctx context.Context, u string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrNetworkOrParse, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrNetworkOrParse, err)
	}
	return resp, nil
}
