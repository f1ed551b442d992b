package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,Emitter

import (
	"context"
	"errors"
	"log/slog"

	"accessexplorer/internal/analytics"
	"accessexplorer/internal/favorites/models"
	"accessexplorer/internal/platform/logger"
	"accessexplorer/pkg/domain"
	dErrors "accessexplorer/pkg/domain-errors"
	"accessexplorer/pkg/platform/sentinel"
	"accessexplorer/pkg/requestcontext"
)

// Store persists favorites.
type Store interface {
	Add(ctx context.Context, f *models.Favorite) error
	Remove(ctx context.Context, key models.Key) error
	Find(ctx context.Context, key models.Key) (*models.Favorite, error)
	ListByOwner(ctx context.Context, owner string) ([]*models.Favorite, error)
}

// Emitter records analytics events.
type Emitter interface {
	Emit(ctx context.Context, e analytics.Event)
}

// Service manages an owner's favorites.
type Service struct {
	store  Store
	events Emitter
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithEmitter(e Emitter) Option {
	return func(s *Service) {
		s.events = e
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func parseKey(owner, entity, address string) (models.Key, error) {
	if owner == "" {
		return models.Key{}, dErrors.New(dErrors.CodeUnauthorized, "missing subject")
	}
	et, err := domain.ParseEntityType(entity)
	if err != nil {
		return models.Key{}, err
	}
	addr, err := domain.ParseAddress(address)
	if err != nil {
		return models.Key{}, err
	}
	return models.Key{Owner: owner, Entity: et, Address: addr}, nil
}

// Add pins an entity. Adding an existing favorite returns it unchanged.
func (s *Service) Add(ctx context.Context, owner, entity, address, label string) (*models.Favorite, error) {
	key, err := parseKey(owner, entity, address)
	if err != nil {
		return nil, err
	}
	f := models.NewFavorite(key, label, requestcontext.Now(ctx).UTC())
	if err := s.store.Add(ctx, f); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return s.find(ctx, key)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save favorite")
	}
	s.emit(ctx, key, "add")
	return f, nil
}

// Remove unpins an entity.
func (s *Service) Remove(ctx context.Context, owner, entity, address string) error {
	key, err := parseKey(owner, entity, address)
	if err != nil {
		return err
	}
	if err := s.store.Remove(ctx, key); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "favorite not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to remove favorite")
	}
	s.emit(ctx, key, "remove")
	return nil
}

// Toggle adds the entity when absent and removes it otherwise. It reports
// whether the entity is a favorite afterwards.
func (s *Service) Toggle(ctx context.Context, owner, entity, address string) (bool, error) {
	ok, err := s.IsFavorite(ctx, owner, entity, address)
	if err != nil {
		return false, err
	}
	if ok {
		if err := s.Remove(ctx, owner, entity, address); err != nil && !dErrors.HasCode(err, dErrors.CodeNotFound) {
			return false, err
		}
		return false, nil
	}
	if _, err := s.Add(ctx, owner, entity, address, ""); err != nil {
		return false, err
	}
	return true, nil
}

// IsFavorite reports whether the entity is pinned by owner.
func (s *Service) IsFavorite(ctx context.Context, owner, entity, address string) (bool, error) {
	key, err := parseKey(owner, entity, address)
	if err != nil {
		return false, err
	}
	_, err = s.store.Find(ctx, key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, sentinel.ErrNotFound):
		return false, nil
	default:
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read favorite")
	}
}

// List returns owner's favorites grouped by entity type.
func (s *Service) List(ctx context.Context, owner string) (map[domain.EntityType][]*models.Favorite, error) {
	if owner == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "missing subject")
	}
	all, err := s.store.ListByOwner(ctx, owner)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list favorites")
	}
	out := make(map[domain.EntityType][]*models.Favorite)
	for _, f := range all {
		out[f.Entity] = append(out[f.Entity], f)
	}
	return out, nil
}

func (s *Service) find(ctx context.Context, key models.Key) (*models.Favorite, error) {
	f, err := s.store.Find(ctx, key)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read favorite")
	}
	return f, nil
}

func (s *Service) emit(ctx context.Context, key models.Key, action string) {
	s.logger.InfoContext(ctx, "favorite "+action,
		"request_id", requestcontext.RequestID(ctx),
		"entity", key.Entity,
		"address", key.Address,
	)
	if s.events == nil {
		return
	}
	e := analytics.NewEvent(ctx, analytics.EventFavorite, "")
	e.Account = key.Address.String()
	e.Action = action
	s.events.Emit(ctx, e)
}
