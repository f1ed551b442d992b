package models

import (
	"time"

	"github.com/google/uuid"

	"accessexplorer/pkg/domain"
)

// Favorite is an entity an owner pinned in the explorer.
//
// Invariants:
//   - (Owner, Entity, Address) is unique
//   - Address is lower-cased
type Favorite struct {
	ID        uuid.UUID         `json:"id"`
	Owner     string            `json:"-"`
	Entity    domain.EntityType `json:"entity"`
	Address   domain.Address    `json:"address"`
	Label     string            `json:"label,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// Key identifies a favorite within an owner's set.
type Key struct {
	Owner   string
	Entity  domain.EntityType
	Address domain.Address
}

// NewFavorite creates a favorite with a fresh id.
func NewFavorite(key Key, label string, now time.Time) *Favorite {
	return &Favorite{
		ID:        uuid.New(),
		Owner:     key.Owner,
		Entity:    key.Entity,
		Address:   key.Address,
		Label:     label,
		CreatedAt: now,
	}
}

// Key returns the identity of f.
func (f *Favorite) Key() Key {
	return Key{Owner: f.Owner, Entity: f.Entity, Address: f.Address}
}
