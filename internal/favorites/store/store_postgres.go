package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"accessexplorer/internal/favorites/models"
	"accessexplorer/pkg/domain"
	"accessexplorer/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

// PostgresStore persists favorites in the favorites table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Add(ctx context.Context, f *models.Favorite) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO favorites (id, owner, entity_type, address, label, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, f.ID, f.Owner, string(f.Entity), string(f.Address), f.Label, f.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert favorite: %w", err)
	}
	return nil
}

func (s *PostgresStore) Remove(ctx context.Context, key models.Key) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM favorites WHERE owner = $1 AND entity_type = $2 AND address = $3
	`, key.Owner, string(key.Entity), string(key.Address))
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Find(ctx context.Context, key models.Key) (*models.Favorite, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, owner, entity_type, address, label, created_at
		FROM favorites WHERE owner = $1 AND entity_type = $2 AND address = $3
	`, key.Owner, string(key.Entity), string(key.Address))
	f, err := scanFavorite(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find favorite: %w", err)
	}
	return f, nil
}

func (s *PostgresStore) ListByOwner(ctx context.Context, owner string) ([]*models.Favorite, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, owner, entity_type, address, label, created_at
		FROM favorites WHERE owner = $1 ORDER BY created_at, id
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	var out []*models.Favorite
	for rows.Next() {
		f, err := scanFavorite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return out, nil
}

func scanFavorite(row pgx.Row) (*models.Favorite, error) {
	var (
		f       models.Favorite
		entity  string
		address string
	)
	if err := row.Scan(&f.ID, &f.Owner, &entity, &address, &f.Label, &f.CreatedAt); err != nil {
		return nil, err
	}
	f.Entity = domain.EntityType(entity)
	f.Address = domain.Address(address)
	return &f, nil
}
