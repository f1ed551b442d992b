package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessexplorer/internal/favorites/models"
	"accessexplorer/pkg/domain"
	"accessexplorer/pkg/platform/sentinel"
)

func key(owner, addr string) models.Key {
	return models.Key{Owner: owner, Entity: domain.EntityTimelockController, Address: domain.Address(addr)}
}

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("add then find", func(t *testing.T) {
		s := NewInMemoryStore()
		f := models.NewFavorite(key("alice", "0x01"), "treasury", now)
		require.NoError(t, s.Add(ctx, f))

		got, err := s.Find(ctx, f.Key())
		require.NoError(t, err)
		assert.Equal(t, f.ID, got.ID)
		assert.Equal(t, "treasury", got.Label)
	})

	t.Run("duplicate add conflicts", func(t *testing.T) {
		s := NewInMemoryStore()
		require.NoError(t, s.Add(ctx, models.NewFavorite(key("alice", "0x01"), "", now)))
		err := s.Add(ctx, models.NewFavorite(key("alice", "0x01"), "", now))
		assert.ErrorIs(t, err, sentinel.ErrConflict)
	})

	t.Run("remove missing is not found", func(t *testing.T) {
		s := NewInMemoryStore()
		assert.ErrorIs(t, s.Remove(ctx, key("alice", "0x01")), sentinel.ErrNotFound)
	})

	t.Run("list is scoped to owner and ordered by creation", func(t *testing.T) {
		s := NewInMemoryStore()
		require.NoError(t, s.Add(ctx, models.NewFavorite(key("alice", "0x02"), "", now.Add(time.Minute))))
		require.NoError(t, s.Add(ctx, models.NewFavorite(key("alice", "0x01"), "", now)))
		require.NoError(t, s.Add(ctx, models.NewFavorite(key("bob", "0x03"), "", now)))

		list, err := s.ListByOwner(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, domain.Address("0x01"), list[0].Address)
		assert.Equal(t, domain.Address("0x02"), list[1].Address)
	})

	t.Run("returned favorites are copies", func(t *testing.T) {
		s := NewInMemoryStore()
		f := models.NewFavorite(key("alice", "0x01"), "a", now)
		require.NoError(t, s.Add(ctx, f))
		got, err := s.Find(ctx, f.Key())
		require.NoError(t, err)
		got.Label = "mutated"

		again, err := s.Find(ctx, f.Key())
		require.NoError(t, err)
		assert.Equal(t, "a", again.Label)
	})
}
