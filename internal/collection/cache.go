// Package collection holds the last-fetched page of items and derives the
// incomplete/complete partition shown to the user.
package collection

import (
	"context"
	"fmt"
	"log"
	"sync"

	"itemsync/internal/logging"
	"itemsync/internal/service"
)

// View is an ordered snapshot of one fetched page.
type View struct {
	Items    []service.Item
	Page     int
	PageSize int
}

// Partition returns the view's items split by completion.
func (v View) Partition() (incomplete, complete []service.Item) {
	return Partition(v.Items)
}

// Cache holds the most recent View. Every successful refresh replaces the
// whole snapshot; a failed refresh leaves it untouched.
//
// Loading and error state are tracked separately: a cache that has never
// loaded reports Loaded()==false with a nil Err().
type Cache struct {
	svc    service.Service
	logger *log.Logger

	mu       sync.Mutex
	view     View
	loaded   bool
	inFlight int
	err      error
	issued   uint64 // refresh generation counter
	applied  uint64 // generation of the snapshot in view

	page     int
	pageSize int
}

// New creates an empty cache over svc.
func New(svc service.Service, logger *log.Logger) *Cache {
	return &Cache{
		svc:      svc,
		logger:   logging.OrDiscard(logger),
		page:     service.DefaultPage,
		pageSize: service.DefaultPageSize,
	}
}

// WithPage sets the page parameters Reload uses before any Refresh.
func (c *Cache) WithPage(page, pageSize int) *Cache {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page, c.pageSize = page, pageSize
	return c
}

// Refresh fetches the given page and replaces the snapshot with it.
// When refreshes overlap, the most recently issued one that succeeds wins.
func (c *Cache) Refresh(ctx context.Context, page, pageSize int) (View, error) {
	c.mu.Lock()
	c.issued++
	gen := c.issued
	c.inFlight++
	c.page, c.pageSize = page, pageSize
	c.mu.Unlock()

	items, err := c.svc.List(ctx, page, pageSize)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight--

	if err != nil {
		if gen > c.applied {
			c.err = err
		}
		c.logger.Printf("collection refresh page=%d size=%d failed: %v", page, pageSize, err)
		return c.snapshotLocked(), fmt.Errorf("refresh collection: %w", err)
	}

	fresh := View{Items: cloneItems(items), Page: page, PageSize: pageSize}
	if gen > c.applied {
		c.view = fresh
		c.applied = gen
		c.loaded = true
		c.err = nil
	}
	c.logger.Printf("collection refresh page=%d size=%d items=%d", page, pageSize, len(items))
	return View{Items: cloneItems(fresh.Items), Page: page, PageSize: pageSize}, nil
}

// Reload refreshes using the page parameters of the last refresh, or the
// defaults when there has been none.
func (c *Cache) Reload(ctx context.Context) (View, error) {
	c.mu.Lock()
	page, pageSize := c.page, c.pageSize
	c.mu.Unlock()
	return c.Refresh(ctx, page, pageSize)
}

// View returns a copy of the current snapshot and whether one has loaded.
func (c *Cache) View() (View, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked(), c.loaded
}

// Loaded reports whether any refresh has succeeded.
func (c *Cache) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Loading reports whether a refresh is in flight.
func (c *Cache) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight > 0
}

// Err returns the error of the last refresh, or nil if it succeeded.
func (c *Cache) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Partition splits the current snapshot by completion.
func (c *Cache) Partition() (incomplete, complete []service.Item) {
	v, _ := c.View()
	return v.Partition()
}

func (c *Cache) snapshotLocked() View {
	return View{Items: cloneItems(c.view.Items), Page: c.view.Page, PageSize: c.view.PageSize}
}

func cloneItems(items []service.Item) []service.Item {
	if items == nil {
		return nil
	}
	out := make([]service.Item, len(items))
	copy(out, items)
	return out
}
