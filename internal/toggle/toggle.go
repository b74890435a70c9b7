// Package toggle flips an item's completion flag and rebuilds the collection
// from the server's response rather than patching it locally.
package toggle

import (
	"context"
	"fmt"
	"log"

	"itemsync/internal/collection"
	"itemsync/internal/logging"
	"itemsync/internal/service"
)

// Syncer issues completion updates and refreshes the cache after each one.
type Syncer struct {
	svc    service.Service
	cache  *collection.Cache
	logger *log.Logger
}

// New creates a Syncer that refreshes cache after every toggle.
func New(svc service.Service, cache *collection.Cache, logger *log.Logger) *Syncer {
	return &Syncer{svc: svc, cache: cache, logger: logging.OrDiscard(logger)}
}

// Toggle sets the item's completion to !currentCompleted, then reloads the
// whole collection. No local flip is applied: the returned view is derived
// from the server. If the update fails, no refresh is issued and the cache
// is left exactly as it was.
func (s *Syncer) Toggle(ctx context.Context, id int64, currentCompleted bool) (collection.View, error) {
	patch := service.Patch{IsCompleted: service.Bool(!currentCompleted)}
	if _, err := s.svc.Update(ctx, id, patch); err != nil {
		s.logger.Printf("toggle %d: update failed: %v", id, err)
		return collection.View{}, fmt.Errorf("toggle item %d: %w", id, err)
	}

	view, err := s.cache.Reload(ctx)
	if err != nil {
		return collection.View{}, fmt.Errorf("toggle item %d: %w", id, err)
	}
	s.logger.Printf("toggle %d: completed=%t", id, !currentCompleted)
	return view, nil
}
