// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"itemsync/internal/service"
)

// DefaultTenant is the tenant id stamped on items created by the fake.
const DefaultTenant = "test-tenant"

// Calls counts invocations of each FakeService operation.
type Calls struct {
	List, Get, Create, Update, Delete, Upload int
}

// Total returns the number of remote calls of any kind.
func (c Calls) Total() int {
	return c.List + c.Get + c.Create + c.Update + c.Delete + c.Upload
}

// FakeService is an in-memory implementation of service.Service for testing.
// Missing ids fail the way the real server does: a 404 *service.ApplicationError.
type FakeService struct {
	mu     sync.Mutex
	items  []service.Item
	nextID int64
	calls  Calls

	// Updates records every patch sent to Update, in order.
	Updates []service.Patch

	// Error injection for testing
	ListErr   error
	GetErr    error
	CreateErr error
	UpdateErr error
	DeleteErr error
	UploadErr error

	// UpdateHook, when set, rewrites the stored item after a patch is applied,
	// to simulate fields the server derives differently than proposed.
	UpdateHook func(service.Item) service.Item

	// BeforeUpdate, when set, runs at the start of Update without the lock
	// held. Tests use it to hold a commit in flight.
	BeforeUpdate func()

	// ListSummaries strips memo and imageUrl from List results, the way
	// the real list endpoint may return item summaries.
	ListSummaries bool

	// UploadURL is returned by UploadBinary. Defaults to a fixed fake URL.
	UploadURL string
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		nextID:    1,
		UploadURL: "https://images.example.test/upload.png",
	}
}

// AddItem stores an item directly and returns its assigned id.
func (f *FakeService) AddItem(name string, completed bool) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.items = append(f.items, service.Item{
		ID:          id,
		TenantID:    DefaultTenant,
		Name:        name,
		IsCompleted: completed,
	})
	return id
}

// SetItem replaces a stored item by id. Panics if absent.
func (f *FakeService) SetItem(item service.Item) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.indexLocked(item.ID)
	if i < 0 {
		panic(fmt.Sprintf("testutil: no item %d", item.ID))
	}
	f.items[i] = item
}

// Item returns a stored item by id.
func (f *FakeService) Item(id int64) (service.Item, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.indexLocked(id)
	if i < 0 {
		return service.Item{}, false
	}
	return f.items[i], true
}

// Calls returns a snapshot of the call counters.
func (f *FakeService) Calls() Calls {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// ResetCalls zeroes the call counters and recorded updates.
func (f *FakeService) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = Calls{}
	f.Updates = nil
}

// List implements service.Service.
func (f *FakeService) List(ctx context.Context, page, pageSize int) ([]service.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls.List++
	if f.ListErr != nil {
		return nil, f.ListErr
	}

	start := (page - 1) * pageSize
	if start < 0 || start >= len(f.items) {
		return []service.Item{}, nil
	}
	end := start + pageSize
	if end > len(f.items) {
		end = len(f.items)
	}
	result := make([]service.Item, end-start)
	copy(result, f.items[start:end])
	if f.ListSummaries {
		for i := range result {
			result[i].Memo = ""
			result[i].ImageURL = ""
		}
	}
	return result, nil
}

// Get implements service.Service.
func (f *FakeService) Get(ctx context.Context, id int64) (service.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls.Get++
	if f.GetErr != nil {
		return service.Item{}, f.GetErr
	}
	i := f.indexLocked(id)
	if i < 0 {
		return service.Item{}, notFound("get")
	}
	return f.items[i], nil
}

// Create implements service.Service.
func (f *FakeService) Create(ctx context.Context, name string) (service.Item, error) {
	if err := service.ValidateName(name); err != nil {
		return service.Item{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls.Create++
	if f.CreateErr != nil {
		return service.Item{}, f.CreateErr
	}
	item := service.Item{ID: f.nextID, TenantID: DefaultTenant, Name: name}
	f.nextID++
	f.items = append(f.items, item)
	return item, nil
}

// Update implements service.Service.
func (f *FakeService) Update(ctx context.Context, id int64, patch service.Patch) (service.Item, error) {
	if f.BeforeUpdate != nil {
		f.BeforeUpdate()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls.Update++
	f.Updates = append(f.Updates, patch)
	if f.UpdateErr != nil {
		return service.Item{}, f.UpdateErr
	}
	i := f.indexLocked(id)
	if i < 0 {
		return service.Item{}, notFound("update")
	}
	item := patch.Apply(f.items[i])
	if f.UpdateHook != nil {
		item = f.UpdateHook(item)
	}
	f.items[i] = item
	return item, nil
}

// Delete implements service.Service.
func (f *FakeService) Delete(ctx context.Context, id int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls.Delete++
	if f.DeleteErr != nil {
		return "", f.DeleteErr
	}
	i := f.indexLocked(id)
	if i < 0 {
		return "", notFound("delete")
	}
	f.items = append(f.items[:i], f.items[i+1:]...)
	return "Successfully deleted", nil
}

// UploadBinary implements service.Service.
func (f *FakeService) UploadBinary(ctx context.Context, data []byte, filename string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls.Upload++
	if f.UploadErr != nil {
		return "", &service.UploadError{Err: f.UploadErr}
	}
	return f.UploadURL, nil
}

func (f *FakeService) indexLocked(id int64) int {
	for i, item := range f.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func notFound(op string) error {
	return &service.ApplicationError{Op: op, Status: http.StatusNotFound, Body: "Not Found"}
}
