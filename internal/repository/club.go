// Package repository implements the service ports on Postgres via wbf's dbpg
// wrapper. Reads go through bounded retry strategies; writes that must be
// atomic run inside a transaction.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"

	"github.com/alr63095/ClubConnect/internal/domain"
)

func defaultStrategy() retry.Strategy {
	return retry.Strategy{
		Attempts: 3,
		Delay:    500 * time.Millisecond,
		Backoff:  2,
	}
}

type ClubRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewClubRepo(db *dbpg.DB) *ClubRepository {
	return &ClubRepository{db: db, strategy: defaultStrategy()}
}

func (r *ClubRepository) Create(ctx context.Context, club *domain.Club) error {
	query := `INSERT INTO clubs (id, name, sports, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecWithRetry(
		ctx, r.strategy, query,
		club.ID, club.Name, pq.Array(club.Sports), club.CreatedAt, club.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert club: %w", err)
	}
	return nil
}

func (r *ClubRepository) Get(ctx context.Context, id string) (*domain.Club, error) {
	query := `SELECT id, name, sports, created_at, updated_at
			  FROM clubs
			  WHERE id = $1`
	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, id)
	if err != nil {
		return nil, fmt.Errorf("get club: %w", err)
	}

	var c domain.Club
	if err = row.Scan(&c.ID, &c.Name, pq.Array(&c.Sports), &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrClubNotFound
		}
		return nil, fmt.Errorf("scan club: %w", err)
	}

	return &c, nil
}

func (r *ClubRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Club, error) {
	query := `SELECT id, name, sports, created_at, updated_at
			  FROM clubs
			  WHERE id = ANY($1)
			  ORDER BY name`
	return r.listClubs(ctx, query, pq.Array(ids))
}

func (r *ClubRepository) ListAll(ctx context.Context) ([]*domain.Club, error) {
	query := `SELECT id, name, sports, created_at, updated_at
			  FROM clubs
			  ORDER BY name`
	return r.listClubs(ctx, query)
}

func (r *ClubRepository) Update(ctx context.Context, club *domain.Club) error {
	query := `UPDATE clubs
			  SET name = $2, sports = $3, updated_at = now()
			  WHERE id = $1`
	res, err := r.db.ExecWithRetry(ctx, r.strategy, query, club.ID, club.Name, pq.Array(club.Sports))
	if err != nil {
		return fmt.Errorf("update club: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("club rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrClubNotFound
	}
	return nil
}

func (r *ClubRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecWithRetry(ctx, r.strategy, `DELETE FROM clubs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete club: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("club rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrClubNotFound
	}
	return nil
}

func (r *ClubRepository) listClubs(ctx context.Context, query string, args ...any) ([]*domain.Club, error) {
	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	defer rows.Close()

	var res []*domain.Club
	for rows.Next() {
		var c domain.Club
		if err = rows.Scan(&c.ID, &c.Name, pq.Array(&c.Sports), &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan club: %w", err)
		}
		res = append(res, &c)
	}

	return res, rows.Err()
}
