package catalog

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokedex-cli/pokedex/pkg/cache/memory"
	"github.com/pokedex-cli/pokedex/pkg/catalog/catalogtest"
	"github.com/pokedex-cli/pokedex/pkg/metrics"
)

func newTestClient(t *testing.T, srv *catalogtest.Server, opts ...Option) *Client {
	t.Helper()
	return New(srv.BaseURL(), memory.New(), opts...)
}

func TestFetchOneNormalizesQuery(t *testing.T) {
	srv := catalogtest.NewServer(t, catalogtest.Record(25, "pikachu"))
	c := newTestClient(t, srv)

	p, err := c.FetchOne(context.Background(), "  PiKaChU ")
	require.NoError(t, err)
	assert.Equal(t, 25, p.ID)
	assert.Equal(t, 1, srv.Reads("pikachu"))
}

func TestFetchOneCachesByNormalizedKey(t *testing.T) {
	srv := catalogtest.NewServer(t, catalogtest.Record(25, "pikachu"))
	c := newTestClient(t, srv)
	ctx := context.Background()

	first, err := c.FetchOne(ctx, "Pikachu")
	require.NoError(t, err)
	second, err := c.FetchOne(ctx, "pikachu")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, srv.TotalRequests())

	// A numeric id is its own request key.
	_, err = c.FetchOne(ctx, "25")
	require.NoError(t, err)
	assert.Equal(t, 2, srv.TotalRequests())
}

func TestFetchOneNotFound(t *testing.T) {
	srv := catalogtest.NewServer(t)
	c := newTestClient(t, srv)

	_, err := c.FetchOne(context.Background(), "MissingNo")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "MissingNo", nf.Query)
	assert.Equal(t, "pokemon not found: MissingNo", err.Error())
}

func TestFetchOneNonSuccessStatusIsNotFound(t *testing.T) {
	srv := catalogtest.NewServer(t, catalogtest.Record(1, "bulbasaur"))
	srv.FailWith("bulbasaur", http.StatusInternalServerError)
	c := newTestClient(t, srv)

	_, err := c.FetchOne(context.Background(), "bulbasaur")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchOneFailuresAreNotCached(t *testing.T) {
	srv := catalogtest.NewServer(t)
	c := newTestClient(t, srv)
	ctx := context.Background()

	_, _ = c.FetchOne(ctx, "ghost")
	_, _ = c.FetchOne(ctx, "ghost")
	assert.Equal(t, 2, srv.Reads("ghost"))
}

func TestFetchOneMalformedBody(t *testing.T) {
	srv := catalogtest.NewServer(t, catalogtest.Record(1, "bulbasaur"))
	srv.Garble("bulbasaur")
	c := newTestClient(t, srv)

	_, err := c.FetchOne(context.Background(), "bulbasaur")
	assert.ErrorIs(t, err, ErrNetworkOrParse)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestFetchOneTransportFailure(t *testing.T) {
	srv := catalogtest.NewServer(t)
	base := srv.BaseURL()
	srv.Close()

	c := New(base, memory.New())
	_, err := c.FetchOne(context.Background(), "pikachu")
	assert.ErrorIs(t, err, ErrNetworkOrParse)
}

func TestFetchOneEmptyQuery(t *testing.T) {
	srv := catalogtest.NewServer(t)
	c := newTestClient(t, srv)

	_, err := c.FetchOne(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.Equal(t, 0, srv.TotalRequests())
}

func TestFetchOneConcurrentMissesShareRequest(t *testing.T) {
	srv := catalogtest.NewServer(t, catalogtest.Record(150, "mewtwo"))
	c := newTestClient(t, srv)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := c.FetchOne(context.Background(), "mewtwo")
			assert.NoError(t, err)
			assert.Equal(t, 150, p.ID)
		}()
	}
	wg.Wait()

	// Late arrivals hit the cache; overlapping ones share the flight.
	assert.LessOrEqual(t, srv.Reads("mewtwo"), 8)
	assert.GreaterOrEqual(t, srv.Reads("mewtwo"), 1)
}

func TestFetchOneSharedNotFoundKeepsEachQuery(t *testing.T) {
	srv := catalogtest.NewServer(t)
	srv.Delay(100 * time.Millisecond)
	c := newTestClient(t, srv)

	queries := []string{"MissingNo", "MISSINGNO", "missingno"}
	errs := make([]error, len(queries))
	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = c.FetchOne(context.Background(), q)
		}()
	}
	wg.Wait()

	for i, q := range queries {
		var nf *NotFoundError
		require.True(t, errors.As(errs[i], &nf), "query %q: %v", q, errs[i])
		assert.Equal(t, q, nf.Query)
		assert.Equal(t, http.StatusNotFound, nf.Status)
	}
	assert.LessOrEqual(t, srv.Reads("missingno"), len(queries))
}

func TestFetchManyPreservesListingOrder(t *testing.T) {
	srv := catalogtest.NewServer(t, catalogtest.Generate(30)...)
	c := newTestClient(t, srv)

	got, err := c.FetchMany(context.Background(), 20, 0)
	require.NoError(t, err)
	require.Len(t, got, 20)
	for i, p := range got {
		assert.Equal(t, i+1, p.ID)
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Stats)
	}

	page2, err := c.FetchMany(context.Background(), 5, 20)
	require.NoError(t, err)
	require.Len(t, page2, 5)
	assert.Equal(t, 21, page2[0].ID)
}

func TestFetchManyFailsAsAWhole(t *testing.T) {
	srv := catalogtest.NewServer(t, catalogtest.Generate(20)...)
	srv.FailWith("mon13", http.StatusNotFound)
	c := newTestClient(t, srv)

	got, err := c.FetchMany(context.Background(), 20, 0)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchManyListFailure(t *testing.T) {
	srv := catalogtest.NewServer(t, catalogtest.Generate(3)...)
	srv.ListDown()
	c := newTestClient(t, srv)

	_, err := c.FetchMany(context.Background(), 20, 0)
	assert.ErrorIs(t, err, ErrNetworkOrParse)
}

func TestFetchEachWithConcurrencyLimit(t *testing.T) {
	srv := catalogtest.NewServer(t, catalogtest.Generate(10)...)
	c := newTestClient(t, srv, WithMaxConcurrency(2))

	got, err := c.FetchEach(context.Background(), []string{"7", "3", "mon9"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int{7, 3, 9}, []int{got[0].ID, got[1].ID, got[2].ID})
}

func TestFetchRecordsMetrics(t *testing.T) {
	srv := catalogtest.NewServer(t, catalogtest.Record(4, "charmander"))
	m := metrics.New(prometheus.NewRegistry())
	c := newTestClient(t, srv, WithMetrics(m))
	ctx := context.Background()

	_, _ = c.FetchOne(ctx, "charmander")
	_, _ = c.FetchOne(ctx, "charmander")
	_, _ = c.FetchOne(ctx, "squirtle")

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.CacheLookups.WithLabelValues("miss")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Requests.WithLabelValues(endpointRead, metrics.OutcomeOK)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Requests.WithLabelValues(endpointRead, metrics.OutcomeNotFound)))
}
