package collection_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"itemsync/internal/collection"
	"itemsync/internal/service"
	"itemsync/internal/testutil"
)

func TestPartition(t *testing.T) {
	items := []service.Item{
		{ID: 1, IsCompleted: false},
		{ID: 2, IsCompleted: true},
	}

	incomplete, complete := collection.Partition(items)
	if diff := cmp.Diff([]service.Item{{ID: 1}}, incomplete); diff != "" {
		t.Errorf("incomplete mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]service.Item{{ID: 2, IsCompleted: true}}, complete); diff != "" {
		t.Errorf("complete mismatch (-want +got):\n%s", diff)
	}
}

func TestPartition_PreservesOrderAndCovers(t *testing.T) {
	items := []service.Item{
		{ID: 5, IsCompleted: true},
		{ID: 3},
		{ID: 9, IsCompleted: true},
		{ID: 1},
		{ID: 7},
	}

	incomplete, complete := collection.Partition(items)

	var gotIncomplete, gotComplete []int64
	for _, it := range incomplete {
		gotIncomplete = append(gotIncomplete, it.ID)
	}
	for _, it := range complete {
		gotComplete = append(gotComplete, it.ID)
	}
	if diff := cmp.Diff([]int64{3, 1, 7}, gotIncomplete); diff != "" {
		t.Errorf("incomplete order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int64{5, 9}, gotComplete); diff != "" {
		t.Errorf("complete order (-want +got):\n%s", diff)
	}
	if len(incomplete)+len(complete) != len(items) {
		t.Errorf("partition does not cover input")
	}
}

func TestPartition_Empty(t *testing.T) {
	incomplete, complete := collection.Partition(nil)
	if len(incomplete) != 0 || len(complete) != 0 {
		t.Errorf("expected empty groups, got %v / %v", incomplete, complete)
	}
}

func TestCache_InitialState(t *testing.T) {
	cache := collection.New(testutil.NewFakeService(), nil)

	if cache.Loaded() {
		t.Error("expected not loaded")
	}
	if cache.Loading() {
		t.Error("expected not loading")
	}
	if cache.Err() != nil {
		t.Errorf("expected no error before any fetch, got %v", cache.Err())
	}
}

func TestCache_RefreshReplacesSnapshot(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddItem("one", false)
	svc.AddItem("two", true)
	cache := collection.New(svc, nil)
	ctx := context.Background()

	view, err := cache.Refresh(ctx, 1, 10)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if len(view.Items) != 2 || view.Page != 1 || view.PageSize != 10 {
		t.Errorf("unexpected view %+v", view)
	}

	svc.AddItem("three", false)
	if _, err := cache.Reload(ctx); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	got, loaded := cache.View()
	if !loaded || len(got.Items) != 3 {
		t.Errorf("expected 3 items after reload, got %d", len(got.Items))
	}

	incomplete, complete := cache.Partition()
	if len(incomplete) != 2 || len(complete) != 1 {
		t.Errorf("expected 2/1 partition, got %d/%d", len(incomplete), len(complete))
	}
}

func TestCache_ViewIsACopy(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddItem("one", false)
	cache := collection.New(svc, nil)

	if _, err := cache.Refresh(context.Background(), 1, 10); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	v, _ := cache.View()
	v.Items[0].Name = "mutated"

	again, _ := cache.View()
	if again.Items[0].Name != "one" {
		t.Errorf("cache snapshot was mutated through a view")
	}
}

func TestCache_FailedRefreshKeepsSnapshot(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddItem("one", false)
	cache := collection.New(svc, nil)
	ctx := context.Background()

	if _, err := cache.Refresh(ctx, 1, 10); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	before, _ := cache.View()

	svc.ListErr = &service.NetworkError{Op: "list", Err: errors.New("offline")}
	if _, err := cache.Reload(ctx); !service.IsRetryable(err) {
		t.Fatalf("expected network error, got %v", err)
	}

	after, loaded := cache.View()
	if !loaded {
		t.Error("expected still loaded")
	}
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("snapshot changed on failure (-before +after):\n%s", diff)
	}
	if cache.Err() == nil {
		t.Error("expected error recorded")
	}

	svc.ListErr = nil
	if _, err := cache.Reload(ctx); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if cache.Err() != nil {
		t.Errorf("expected error cleared, got %v", cache.Err())
	}
}

func TestCache_FailureBeforeFirstLoad(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListErr = &service.ApplicationError{Op: "list", Status: 503}
	cache := collection.New(svc, nil)

	if _, err := cache.Refresh(context.Background(), 1, 10); err == nil {
		t.Fatal("expected error")
	}
	if cache.Loaded() {
		t.Error("failed fetch must not count as loaded")
	}
	if cache.Err() == nil {
		t.Error("expected error recorded")
	}
}
