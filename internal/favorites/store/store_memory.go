package store

import (
	"context"
	"slices"
	"strings"
	"sync"

	"accessexplorer/internal/favorites/models"
	"accessexplorer/pkg/platform/sentinel"
)

// InMemoryStore keeps favorites in process memory.
type InMemoryStore struct {
	mu        sync.RWMutex
	favorites map[models.Key]*models.Favorite
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{favorites: make(map[models.Key]*models.Favorite)}
}

// Add stores f. It returns sentinel.ErrConflict when the key already exists.
func (s *InMemoryStore) Add(_ context.Context, f *models.Favorite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := f.Key()
	if _, ok := s.favorites[key]; ok {
		return sentinel.ErrConflict
	}
	cp := *f
	s.favorites[key] = &cp
	return nil
}

// Remove deletes the favorite at key. A missing key is sentinel.ErrNotFound.
func (s *InMemoryStore) Remove(_ context.Context, key models.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.favorites[key]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.favorites, key)
	return nil
}

func (s *InMemoryStore) Find(_ context.Context, key models.Key) (*models.Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.favorites[key]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *f
	return &cp, nil
}

// ListByOwner returns the owner's favorites, oldest first.
func (s *InMemoryStore) ListByOwner(_ context.Context, owner string) ([]*models.Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Favorite
	for key, f := range s.favorites {
		if key.Owner == owner {
			cp := *f
			out = append(out, &cp)
		}
	}
	slices.SortFunc(out, func(a, b *models.Favorite) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return out, nil
}
