package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"

	"github.com/alr63095/ClubConnect/internal/domain"
)

type CourtRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewCourtRepo(db *dbpg.DB) *CourtRepository {
	return &CourtRepository{db: db, strategy: defaultStrategy()}
}

const courtColumns = `id, club_id, name, sport, features, opening_time, closing_time,
					  default_price, slot_prices, created_at, updated_at`

func (r *CourtRepository) Get(ctx context.Context, id string) (*domain.Court, error) {
	query := `SELECT ` + courtColumns + `
			  FROM courts
			  WHERE id = $1`
	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, id)
	if err != nil {
		return nil, fmt.Errorf("get court: %w", err)
	}

	court, err := scanCourt(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCourtNotFound
		}
		return nil, err
	}
	return court, nil
}

func (r *CourtRepository) ListByClub(ctx context.Context, clubID string) ([]*domain.Court, error) {
	query := `SELECT ` + courtColumns + `
			  FROM courts
			  WHERE club_id = $1
			  ORDER BY name`
	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query, clubID)
	if err != nil {
		return nil, fmt.Errorf("list courts: %w", err)
	}
	defer rows.Close()

	var res []*domain.Court
	for rows.Next() {
		court, err := scanCourt(rows.Scan)
		if err != nil {
			return nil, err
		}
		res = append(res, court)
	}

	return res, rows.Err()
}

func (r *CourtRepository) Upsert(ctx context.Context, court *domain.Court) error {
	prices, err := json.Marshal(court.SlotPrices)
	if err != nil {
		return fmt.Errorf("marshal slot prices: %w", err)
	}

	query := `INSERT INTO courts (id, club_id, name, sport, features, opening_time, closing_time,
								  default_price, slot_prices, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			  ON CONFLICT (id) DO UPDATE SET
				  name = EXCLUDED.name,
				  sport = EXCLUDED.sport,
				  features = EXCLUDED.features,
				  opening_time = EXCLUDED.opening_time,
				  closing_time = EXCLUDED.closing_time,
				  default_price = EXCLUDED.default_price,
				  slot_prices = EXCLUDED.slot_prices,
				  updated_at = EXCLUDED.updated_at`
	_, err = r.db.ExecWithRetry(
		ctx, r.strategy, query,
		court.ID, court.ClubID, court.Name, court.Sport, pq.Array(court.Features),
		court.OpeningTime, court.ClosingTime, court.DefaultPrice, prices,
		court.CreatedAt, court.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert court: %w", err)
	}
	return nil
}

func (r *CourtRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecWithRetry(ctx, r.strategy, `DELETE FROM courts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete court: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("court rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrCourtNotFound
	}
	return nil
}

func (r *CourtRepository) DeleteByClub(ctx context.Context, clubID string) error {
	_, err := r.db.ExecWithRetry(ctx, r.strategy, `DELETE FROM courts WHERE club_id = $1`, clubID)
	if err != nil {
		return fmt.Errorf("delete courts by club: %w", err)
	}
	return nil
}

func scanCourt(scan func(dest ...any) error) (*domain.Court, error) {
	var c domain.Court
	var prices []byte
	if err := scan(
		&c.ID, &c.ClubID, &c.Name, &c.Sport, pq.Array(&c.Features),
		&c.OpeningTime, &c.ClosingTime, &c.DefaultPrice, &prices,
		&c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan court: %w", err)
	}

	if len(prices) > 0 {
		if err := json.Unmarshal(prices, &c.SlotPrices); err != nil {
			return nil, fmt.Errorf("unmarshal slot prices: %w", err)
		}
	}
	return &c, nil
}
