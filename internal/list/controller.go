// Package list keeps the paginated, sorted, searched order list consistent
// with user actions. It owns the query state, debounces free-text search,
// and enforces last-request-wins on the asynchronous refetches so a slow
// stale response can never overwrite a newer one.
package list

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"orderdesk/internal/model"
	"orderdesk/internal/query"
)

// Fetcher reads one page of the order collection.
type Fetcher interface {
	ListOrders(ctx context.Context, d query.Descriptor) (model.OrderPage, error)
}

// Snapshot is the observable list state handed to renderers. Orders and
// the error message are mutually exclusive: a failed fetch leaves an
// explicit empty list, never stale or sample rows.
type Snapshot struct {
	Orders        []model.OrderSummary
	TotalElements int
	Loading       bool
	ErrorMessage  string

	Page          int
	PageSize      int
	SortField     query.SortField
	SortDirection query.SortDirection
	SearchTerm    string
}

// Controller drives the order list. All exported methods are safe for
// concurrent use; fetches run asynchronously and only the most recently
// issued request may commit its result.
type Controller struct {
	mu       sync.Mutex
	ctx      context.Context
	fetcher  Fetcher
	params   *query.Params
	debounce *Debouncer
	logger   zerolog.Logger

	orders  []model.OrderSummary
	total   int
	loading bool
	errMsg  string

	seq      uint64
	onChange func()
}

// NewController creates a list controller. The context bounds the lifetime
// of all fetches the controller issues; cancel it on teardown along with
// calling Close.
func NewController(ctx context.Context, fetcher Fetcher, pageSize int, allowedSizes []int, debounce time.Duration, logger zerolog.Logger) *Controller {
	c := &Controller{
		ctx:     ctx,
		fetcher: fetcher,
		params:  query.New(pageSize, allowedSizes),
		logger:  logger.With().Str("component", "order-list").Logger(),
	}
	c.debounce = NewDebouncer(debounce, c.applySearch)
	return c
}

// OnChange registers a callback invoked after every visible state change.
// It runs on the goroutine that caused the change.
func (c *Controller) OnChange(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// Snapshot returns a copy of the current observable state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	orders := make([]model.OrderSummary, len(c.orders))
	copy(orders, c.orders)

	return Snapshot{
		Orders:        orders,
		TotalElements: c.total,
		Loading:       c.loading,
		ErrorMessage:  c.errMsg,
		Page:          c.params.Page(),
		PageSize:      c.params.PageSize(),
		SortField:     c.params.SortField(),
		SortDirection: c.params.SortDirection(),
		SearchTerm:    c.params.SearchTerm(),
	}
}

// Find returns the listed order with the given identifier.
func (c *Controller) Find(orderID string) (model.OrderSummary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, order := range c.orders {
		if order.ID == orderID {
			return order, true
		}
	}
	return model.OrderSummary{}, false
}

// Search feeds a raw search string through the debounce coordinator. The
// list refetches once the input settles.
func (c *Controller) Search(term string) {
	c.debounce.Update(term)
}

// applySearch is the debounce sink: commit the settled term and refetch.
func (c *Controller) applySearch(term string) {
	c.mu.Lock()
	c.params.SetSearchTerm(term)
	c.fetchLocked()
	c.mu.Unlock()
	c.notify()
}

// SetPage moves to another page and refetches.
func (c *Controller) SetPage(page int) {
	c.mu.Lock()
	c.params.SetPage(page)
	c.fetchLocked()
	c.mu.Unlock()
	c.notify()
}

// SetPageSize changes the page size, resets to the first page, and
// refetches.
func (c *Controller) SetPageSize(size int) {
	c.mu.Lock()
	c.params.SetPageSize(size)
	c.fetchLocked()
	c.mu.Unlock()
	c.notify()
}

// ToggleSort selects a sort column (flipping direction on the active
// ascending column), resets to the first page, and refetches.
func (c *Controller) ToggleSort(field query.SortField) {
	c.mu.Lock()
	c.params.ToggleSort(field)
	c.fetchLocked()
	c.mu.Unlock()
	c.notify()
}

// Refresh refetches the list with the current query state.
func (c *Controller) Refresh() {
	c.mu.Lock()
	c.fetchLocked()
	c.mu.Unlock()
	c.notify()
}

// ApplySaved patches a single order in place by identifier, leaving every
// other row untouched. No refetch is issued. It reports whether a row with
// that identifier was present.
func (c *Controller) ApplySaved(updated model.OrderSummary) bool {
	c.mu.Lock()
	found := false
	for i := range c.orders {
		if c.orders[i].ID == updated.ID {
			c.orders[i] = updated
			found = true
			break
		}
	}
	c.mu.Unlock()

	if found {
		c.notify()
	}
	return found
}

// Close cancels any pending debounced search. In-flight fetches are not
// aborted; their results are discarded by the sequence check.
func (c *Controller) Close() {
	c.debounce.Stop()
}

// fetchLocked issues an asynchronous fetch for the current query state.
// Caller must hold c.mu. Each fetch gets a sequence number; only the
// response matching the latest sequence may commit, so out-of-order
// completions after rapid pagination or search changes are discarded.
func (c *Controller) fetchLocked() {
	c.seq++
	seq := c.seq
	c.loading = true
	descriptor := c.params.Descriptor()

	go func() {
		page, err := c.fetcher.ListOrders(c.ctx, descriptor)

		c.mu.Lock()
		if seq != c.seq {
			c.mu.Unlock()
			c.logger.Debug().
				Uint64("seq", seq).
				Uint64("latest", c.seq).
				Msg("stale list response discarded")
			return
		}

		c.loading = false
		if err != nil {
			c.orders = nil
			c.total = 0
			c.errMsg = "Failed to load orders: " + err.Error()
			c.mu.Unlock()
			c.logger.Warn().Err(err).Msg("order list fetch failed")
			c.notify()
			return
		}

		c.orders = page.Orders
		c.total = page.TotalElements
		c.errMsg = ""
		c.mu.Unlock()
		c.notify()
	}()
}

// notify invokes the change callback outside the state lock.
func (c *Controller) notify() {
	c.mu.Lock()
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn()
	}
}
