package store

import (
	"context"
	"sync"
	"time"

	"accessexplorer/internal/timelock/models"
	"accessexplorer/pkg/platform/sentinel"
)

type cachedEntry struct {
	value    any
	storedAt time.Time
}

// InMemoryCache is a process-local cache with TTL expiration.
type InMemoryCache struct {
	mu       sync.RWMutex
	entries  map[string]cachedEntry
	cacheTTL time.Duration
	now      func() time.Time
}

// NewInMemoryCache creates a new in-memory cache with the specified TTL.
func NewInMemoryCache(cacheTTL time.Duration) *InMemoryCache {
	return &InMemoryCache{
		entries:  make(map[string]cachedEntry),
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

func (c *InMemoryCache) save(key Key, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key.String()] = cachedEntry{value: value, storedAt: c.now()}
}

func (c *InMemoryCache) find(key Key) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cached, ok := c.entries[key.String()]
	if !ok || c.now().Sub(cached.storedAt) >= c.cacheTTL {
		return nil, false
	}
	return cached.value, true
}

func (c *InMemoryCache) SaveOperations(_ context.Context, chainID int64, lists models.OperationLists) error {
	c.save(OperationsKey(chainID), lists)
	return nil
}

// FindOperations returns sentinel.ErrNotFound when missing or expired.
func (c *InMemoryCache) FindOperations(_ context.Context, chainID int64) (models.OperationLists, error) {
	if v, ok := c.find(OperationsKey(chainID)); ok {
		return v.(models.OperationLists), nil
	}
	return models.OperationLists{}, sentinel.ErrNotFound
}

func (c *InMemoryCache) SaveRoleEvents(_ context.Context, chainID int64, lists models.RoleEventLists) error {
	c.save(RoleEventsKey(chainID), lists)
	return nil
}

// FindRoleEvents returns sentinel.ErrNotFound when missing or expired.
func (c *InMemoryCache) FindRoleEvents(_ context.Context, chainID int64) (models.RoleEventLists, error) {
	if v, ok := c.find(RoleEventsKey(chainID)); ok {
		return v.(models.RoleEventLists), nil
	}
	return models.RoleEventLists{}, sentinel.ErrNotFound
}

func (c *InMemoryCache) SaveController(_ context.Context, chainID int64, info models.ControllerInfo) error {
	c.save(ControllerKey(chainID, info.Address), info)
	return nil
}

// FindController returns sentinel.ErrNotFound when missing or expired.
func (c *InMemoryCache) FindController(_ context.Context, chainID int64, address string) (models.ControllerInfo, error) {
	if v, ok := c.find(ControllerKey(chainID, address)); ok {
		return v.(models.ControllerInfo), nil
	}
	return models.ControllerInfo{}, sentinel.ErrNotFound
}
