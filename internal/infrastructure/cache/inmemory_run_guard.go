package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/catalogsync/backend/internal/domain/integration"
)

// InMemorySyncRunGuard implements SyncRunGuard for a single instance.
// Expired locks are swept by go-cache's janitor.
type InMemorySyncRunGuard struct {
	// mu makes the owner check and delete in Release atomic
	mu    sync.Mutex
	locks *gocache.Cache
}

// NewInMemorySyncRunGuard creates a guard whose janitor runs every cleanupInterval
func NewInMemorySyncRunGuard(cleanupInterval time.Duration) *InMemorySyncRunGuard {
	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}
	return &InMemorySyncRunGuard{
		locks: gocache.New(gocache.NoExpiration, cleanupInterval),
	}
}

// Acquire returns false when a live lock for storeID exists
func (g *InMemorySyncRunGuard) Acquire(_ context.Context, storeID int64, runID string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	// Add fails while an unexpired item is present
	if err := g.locks.Add(strconv.FormatInt(storeID, 10), runID, ttl); err != nil {
		return false, nil
	}
	return true, nil
}

// Release drops the lock for storeID when runID owns it
func (g *InMemorySyncRunGuard) Release(_ context.Context, storeID int64, runID string) error {
	key := strconv.FormatInt(storeID, 10)
	g.mu.Lock()
	defer g.mu.Unlock()
	if owner, found := g.locks.Get(key); found && owner == runID {
		g.locks.Delete(key)
	}
	return nil
}

// Held reports the number of live locks
func (g *InMemorySyncRunGuard) Held() int {
	return g.locks.ItemCount()
}

var _ integration.SyncRunGuard = (*InMemorySyncRunGuard)(nil)
