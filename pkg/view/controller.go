// Package view implements the view controller: the grid/detail/favorites
// state machine that drives the catalog client, the favorites store, and a
// display.
package view

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/pokedex-cli/pokedex/pkg/catalog"
	"github.com/pokedex-cli/pokedex/pkg/metrics"
	"github.com/pokedex-cli/pokedex/pkg/models"
	"github.com/pokedex-cli/pokedex/pkg/render"
)

var (
	// ErrNotInView is returned when a record to open is not in the displayed list.
	ErrNotInView = errors.New("record is not in the displayed list")
	// ErrInvalidTransition is returned when a transition is not allowed from the current view.
	ErrInvalidTransition = errors.New("invalid view transition")
	// ErrSuperseded is returned when a later transition replaced this one's result.
	ErrSuperseded = errors.New("superseded by a later transition")
)

// Catalog resolves records.
type Catalog interface {
	FetchOne(ctx context.Context, query string) (models.Pokemon, error)
	FetchMany(ctx context.Context, limit, offset int) ([]models.Pokemon, error)
	FetchEach(ctx context.Context, queries []string) ([]models.Pokemon, error)
}

// Favorites is the persisted favorites set.
type Favorites interface {
	Toggle(id int) (bool, error)
	Contains(id int) bool
	IDs() []int
	Len() int
}

// Display shows views and notifications. Calls are serialized by the controller.
type Display interface {
	ShowLoading()
	HideLoading()
	ShowGrid(cards []render.Card)
	ShowEmpty()
	ShowDetail(d render.Detail)
	UpdateCard(id int, favorite bool)
	Notify(n render.Notice, err error)
}

// Controller owns the view state. Every network transition takes a new
// generation; a result arriving after a newer transition started is dropped.
type Controller struct {
	catalog      Catalog
	favorites    Favorites
	display      Display
	log          *zap.Logger
	metrics      *metrics.Metrics
	initialLimit int

	mu         sync.Mutex
	state      models.ViewState
	generation uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) { c.metrics = m }
}

// WithInitialLimit sets the page size of LoadInitial.
func WithInitialLimit(n int) Option {
	return func(c *Controller) { c.initialLimit = n }
}

// New creates a Controller in the empty grid state.
func New(cat Catalog, favs Favorites, d Display, opts ...Option) *Controller {
	c := &Controller{
		catalog:      cat,
		favorites:    favs,
		display:      d,
		log:          zap.NewNop(),
		initialLimit: 20,
		state:        models.ViewState{View: models.ViewGrid},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// State returns a snapshot of the current view state.
func (c *Controller) State() models.ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	s.List = slices.Clone(c.state.List)
	if c.state.Current != nil {
		cur := *c.state.Current
		s.Current = &cur
	}
	return s
}

// Search looks up one record by name or id and shows its detail.
// On failure the error is shown and the view is left unchanged.
func (c *Controller) Search(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		c.mu.Lock()
		c.display.Notify(render.NoticeEmptyQuery, catalog.ErrEmptyQuery)
		c.mu.Unlock()
		return catalog.ErrEmptyQuery
	}

	gen := c.begin()
	defer c.end()

	p, err := c.catalog.FetchOne(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stale(gen, "search") {
		return ErrSuperseded
	}
	if err != nil {
		c.fail("search", render.NoticeSearchFailed, err)
		return err
	}
	c.enterDetail(p)
	c.metrics.Transition("search", metrics.OutcomeOK)
	return nil
}

// LoadInitial shows the first page of the catalog as a grid.
func (c *Controller) LoadInitial(ctx context.Context) error {
	gen := c.begin()
	defer c.end()

	list, err := c.catalog.FetchMany(ctx, c.initialLimit, 0)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stale(gen, "load") {
		return ErrSuperseded
	}
	if err != nil {
		c.fail("load", render.NoticeLoadFailed, err)
		return err
	}
	c.enterList(models.ViewGrid, list)
	c.metrics.Transition("load", metrics.OutcomeOK)
	return nil
}

// OpenDetail shows the detail of a record from the displayed grid or
// favorites list.
func (c *Controller) OpenDetail(id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.View.IsList() {
		return ErrInvalidTransition
	}
	idx := slices.IndexFunc(c.state.List, func(p models.Pokemon) bool { return p.ID == id })
	if idx < 0 {
		c.display.Notify(render.NoticeNotInView, ErrNotInView)
		return ErrNotInView
	}

	// Opening a card replaces whatever a pending load would have shown.
	c.generation++
	c.enterDetail(c.state.List[idx])
	c.metrics.Transition("open", metrics.OutcomeOK)
	return nil
}

// ToggleFavorite flips the favorite status of id. The detail view of id is
// redrawn; in a list only the affected card changes.
func (c *Controller) ToggleFavorite(id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	fav, err := c.favorites.Toggle(id)
	if err != nil {
		c.fail("toggle", render.NoticeSaveFailed, err)
		return err
	}

	switch {
	case c.state.View == models.ViewDetail && c.state.Current != nil && c.state.Current.ID == id:
		c.display.ShowDetail(render.NewDetail(*c.state.Current, fav))
	case c.state.View.IsList():
		if slices.ContainsFunc(c.state.List, func(p models.Pokemon) bool { return p.ID == id }) {
			c.display.UpdateCard(id, fav)
		}
	}
	c.metrics.Transition("toggle", metrics.OutcomeOK)
	return nil
}

// ShowFavorites resolves every favorite and shows them as a list. With no
// favorites it shows the empty indicator without any network call.
func (c *Controller) ShowFavorites(ctx context.Context) error {
	c.mu.Lock()
	if c.favorites.Len() == 0 {
		c.generation++
		c.state = models.ViewState{View: models.ViewFavorites, Loaded: true}
		c.display.ShowEmpty()
		c.mu.Unlock()
		c.metrics.Transition("favorites", metrics.OutcomeOK)
		return nil
	}
	ids := c.favorites.IDs()
	c.mu.Unlock()

	queries := make([]string, 0, len(ids))
	for _, id := range ids {
		queries = append(queries, strconv.Itoa(id))
	}

	gen := c.begin()
	defer c.end()

	list, err := c.catalog.FetchEach(ctx, queries)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stale(gen, "favorites") {
		return ErrSuperseded
	}
	if err != nil {
		c.fail("favorites", render.NoticeFavoritesFailed, err)
		return err
	}
	c.enterList(models.ViewFavorites, list)
	c.metrics.Transition("favorites", metrics.OutcomeOK)
	return nil
}

// begin starts a network transition: it takes a new generation and shows
// the loading indicator.
func (c *Controller) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.display.ShowLoading()
	return c.generation
}

// end clears the loading indicator. It runs exactly once per begin.
func (c *Controller) end() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.display.HideLoading()
}

// stale reports whether gen was superseded. Callers hold c.mu.
func (c *Controller) stale(gen uint64, transition string) bool {
	if gen == c.generation {
		return false
	}
	c.log.Debug("dropping superseded result", zap.String("transition", transition),
		zap.Uint64("generation", gen), zap.Uint64("current", c.generation))
	c.metrics.Transition(transition, metrics.OutcomeStale)
	return true
}

// fail reports err to the user. Callers hold c.mu.
func (c *Controller) fail(transition string, n render.Notice, err error) {
	outcome := metrics.OutcomeError
	if errors.Is(err, catalog.ErrNotFound) {
		outcome = metrics.OutcomeNotFound
	}
	c.log.Info("transition failed", zap.String("transition", transition),
		zap.String("view", c.state.View.String()), zap.Error(err))
	c.metrics.Transition(transition, outcome)
	c.display.Notify(n, err)
}

// enterDetail switches to the detail view of p. Callers hold c.mu.
func (c *Controller) enterDetail(p models.Pokemon) {
	c.state = models.ViewState{View: models.ViewDetail, Current: &p, Loaded: true}
	c.display.ShowDetail(render.NewDetail(p, c.favorites.Contains(p.ID)))
}

// enterList switches to a list view. Callers hold c.mu.
func (c *Controller) enterList(v models.View, list []models.Pokemon) {
	c.state = models.ViewState{View: v, List: list, Loaded: true}
	c.display.ShowGrid(render.Cards(list, c.favorites.Contains))
}
