package paging

import (
	"context"
	"sync"

	"github.com/Astemirdum/library-view/view/internal/model"
)

// FetchFunc is any (skip, limit, query) -> {items, total} endpoint.
type FetchFunc[T any] func(ctx context.Context, q model.Query) (model.Page[T], error)

// State is a snapshot of a controller.
type State[T any] struct {
	Items      []T    `json:"items"`
	SearchTerm string `json:"search_term,omitempty"`
	Pager      Pager  `json:"pagination"`
	Loading    bool   `json:"loading"`
	Err        error  `json:"-"`
}

// Controller drives one paged list view. Changing the search term resets the
// page to 1; a Load issued while a load under the same page and term is
// running is dropped.
type Controller[T any] struct {
	fetch        FetchFunc[T]
	itemsPerPage int

	mu          sync.Mutex
	currentPage int
	searchTerm  string
	items       []T
	totalItems  int
	err         error
	inflight    map[model.Query]struct{}
}

func NewController[T any](fetch FetchFunc[T], itemsPerPage int) *Controller[T] {
	return &Controller[T]{
		fetch:        fetch,
		itemsPerPage: itemsPerPage,
		currentPage:  1,
		items:        []T{},
		inflight:     make(map[model.Query]struct{}),
	}
}

// SetPage stores p as is; the backend decides what an out of range page holds.
func (c *Controller[T]) SetPage(p int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentPage = p
}

// SetSearch reports whether the term changed, in which case the page is back to 1.
func (c *Controller[T]) SetSearch(term string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if term == c.searchTerm {
		return false
	}
	c.searchTerm = term
	c.currentPage = 1
	return true
}

func (c *Controller[T]) query() model.Query {
	return model.Query{
		Skip:   (c.currentPage - 1) * c.itemsPerPage,
		Limit:  c.itemsPerPage,
		Search: c.searchTerm,
	}
}

// Load fetches the current page. The second result is false when the call
// was dropped because an identical load is already running. A failed load
// empties the list; the error is reported on the state.
func (c *Controller[T]) Load(ctx context.Context) (State[T], bool) {
	c.mu.Lock()
	q := c.query()
	if _, busy := c.inflight[q]; busy {
		st := c.snapshot()
		c.mu.Unlock()
		return st, false
	}
	c.inflight[q] = struct{}{}
	c.mu.Unlock()

	page, err := c.fetch(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, q)
	// a load for a page or term that is no longer current is discarded
	if q != c.query() {
		return c.snapshot(), true
	}
	if err != nil {
		c.items = []T{}
		c.totalItems = 0
		c.err = err
	} else {
		c.items = page.Items
		if c.items == nil {
			c.items = []T{}
		}
		c.totalItems = page.Total
		c.err = nil
	}
	return c.snapshot(), true
}

func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Controller[T]) snapshot() State[T] {
	items := make([]T, len(c.items))
	copy(items, c.items)
	_, loading := c.inflight[c.query()]
	return State[T]{
		Items:      items,
		SearchTerm: c.searchTerm,
		Pager:      NewPager(c.currentPage, c.itemsPerPage, c.totalItems),
		Loading:    loading,
		Err:        c.err,
	}
}

// Reset forgets page, term and items, e.g. after logout.
func (c *Controller[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentPage = 1
	c.searchTerm = ""
	c.items = []T{}
	c.totalItems = 0
	c.err = nil
}
