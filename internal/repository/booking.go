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
	"github.com/alr63095/ClubConnect/internal/service/ports"
)

type BookingRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewBookingRepo(db *dbpg.DB) *BookingRepository {
	return &BookingRepository{db: db, strategy: defaultStrategy()}
}

const bookingColumns = `id, user_id, court_id, club_id, start_time, end_time, total_price, status,
						players_needed, skill_level, joined_player_ids, pending_player_ids,
						created_at, updated_at`

// InsertIfNoOverlap locks the court row, re-checks for overlapping active
// bookings, and inserts, all in one transaction. A concurrent insert on the
// same court serializes on the row lock, so exactly one of two overlapping
// attempts succeeds.
func (r *BookingRepository) InsertIfNoOverlap(ctx context.Context, b *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	lockQuery := `SELECT id FROM courts WHERE id = $1 FOR UPDATE`
	var courtID string
	if err = tx.QueryRowContext(ctx, lockQuery, b.CourtID).Scan(&courtID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrCourtNotFound
		}
		return fmt.Errorf("lock court: %w", err)
	}

	overlapQuery := `SELECT COUNT(*) FROM bookings
					 WHERE court_id = $1
					   AND status = ANY($2)
					   AND start_time < $3
					   AND end_time > $4`
	var overlapping int
	if err = tx.QueryRowContext(
		ctx, overlapQuery, b.CourtID,
		pq.Array(domain.ActiveStatuses), b.EndTime, b.StartTime,
	).Scan(&overlapping); err != nil {
		return fmt.Errorf("count overlaps: %w", err)
	}

	if overlapping > 0 {
		return domain.ErrSlotTaken
	}

	insertQuery := `INSERT INTO bookings (` + bookingColumns + `)
				    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	if _, err = tx.ExecContext(
		ctx, insertQuery,
		b.ID, b.UserID, b.CourtID, b.ClubID, b.StartTime, b.EndTime, b.TotalPrice, b.Status,
		b.PlayersNeeded, b.SkillLevel, pq.Array(b.JoinedPlayerIDs), pq.Array(b.PendingPlayerIDs),
		b.CreatedAt, b.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}

	return tx.Commit()
}

func (r *BookingRepository) Get(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + `
			  FROM bookings
			  WHERE id = $1`
	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}

	b, err := scanBooking(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *BookingRepository) ListByCourtAndDate(ctx context.Context, courtID string, date time.Time) ([]*domain.Booking, error) {
	from, to := dayBounds(date)
	query := `SELECT ` + bookingColumns + `
			  FROM bookings
			  WHERE court_id = $1 AND start_time >= $2 AND start_time < $3
			  ORDER BY start_time`
	return r.listBookings(ctx, query, courtID, from, to)
}

func (r *BookingRepository) ListByClubAndDate(ctx context.Context, clubID string, date time.Time) ([]*domain.Booking, error) {
	from, to := dayBounds(date)
	query := `SELECT ` + bookingColumns + `
			  FROM bookings
			  WHERE club_id = $1 AND start_time >= $2 AND start_time < $3
			  ORDER BY start_time`
	return r.listBookings(ctx, query, clubID, from, to)
}

func (r *BookingRepository) ListByClub(ctx context.Context, clubID string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + `
			  FROM bookings
			  WHERE club_id = $1
			  ORDER BY start_time`
	return r.listBookings(ctx, query, clubID)
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + `
			  FROM bookings
			  WHERE user_id = $1
			  ORDER BY start_time DESC`
	return r.listBookings(ctx, query, userID)
}

func (r *BookingRepository) ListByStatus(ctx context.Context, status domain.BookingStatus) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + `
			  FROM bookings
			  WHERE status = $1
			  ORDER BY start_time`
	return r.listBookings(ctx, query, status)
}

func (r *BookingRepository) ListStartingBetween(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + `
			  FROM bookings
			  WHERE start_time >= $1 AND start_time < $2
			  ORDER BY start_time`
	return r.listBookings(ctx, query, from, to)
}

func (r *BookingRepository) ListPublished(ctx context.Context, after time.Time) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + `
			  FROM bookings
			  WHERE status = $1 AND players_needed > 0 AND start_time > $2
			  ORDER BY start_time`
	return r.listBookings(ctx, query, domain.BookingStatusConfirmed, after)
}

// UpdateStatus is a guarded UPDATE: zero rows affected means the booking is
// missing or not in the expected status.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) error {
	query := `UPDATE bookings
			  SET status = $3, updated_at = now()
			  WHERE id = $1 AND status = $2`
	res, err := r.db.ExecWithRetry(ctx, r.strategy, query, id, from, to)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("booking rows affected: %w", err)
	}
	if rows == 0 {
		var exists bool
		checkQuery := `SELECT EXISTS (SELECT 1 FROM bookings WHERE id = $1)`
		row, checkErr := r.db.QueryRowWithRetry(ctx, r.strategy, checkQuery, id)
		if checkErr != nil || row.Scan(&exists) != nil || !exists {
			return domain.ErrBookingNotFound
		}
		return domain.ErrInvalidStatus
	}

	return nil
}

// MutateForum loads the booking FOR UPDATE, applies the mutation, and writes
// the forum fields back inside one transaction, making the mutation atomic
// per booking.
func (r *BookingRepository) MutateForum(ctx context.Context, id string, fn ports.ForumMutation) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `SELECT ` + bookingColumns + `
			  FROM bookings
			  WHERE id = $1
			  FOR UPDATE`
	row := tx.QueryRowContext(ctx, query, id)

	b, err := scanBooking(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}

	if err = fn(b); err != nil {
		return nil, err
	}
	b.UpdatedAt = time.Now().UTC()

	updateQuery := `UPDATE bookings
				    SET players_needed = $2, skill_level = $3,
					    joined_player_ids = $4, pending_player_ids = $5,
					    updated_at = $6
				    WHERE id = $1`
	if _, err = tx.ExecContext(
		ctx, updateQuery,
		b.ID, b.PlayersNeeded, b.SkillLevel,
		pq.Array(b.JoinedPlayerIDs), pq.Array(b.PendingPlayerIDs), b.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("update forum fields: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return b, nil
}

func (r *BookingRepository) CancelFutureByCourt(ctx context.Context, courtID string, now time.Time) (int, error) {
	query := `UPDATE bookings
			  SET status = $3, updated_at = now()
			  WHERE court_id = $1 AND start_time > $2 AND status = ANY($4)`
	return r.cancel(ctx, query, courtID, now)
}

func (r *BookingRepository) CancelFutureByClub(ctx context.Context, clubID string, now time.Time) (int, error) {
	query := `UPDATE bookings
			  SET status = $3, updated_at = now()
			  WHERE club_id = $1 AND start_time > $2 AND status = ANY($4)`
	return r.cancel(ctx, query, clubID, now)
}

func (r *BookingRepository) cancel(ctx context.Context, query, scopeID string, now time.Time) (int, error) {
	res, err := r.db.ExecWithRetry(
		ctx, r.strategy, query,
		scopeID, now, domain.BookingStatusCancelled, pq.Array(domain.ActiveStatuses),
	)
	if err != nil {
		return 0, fmt.Errorf("cancel future bookings: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("booking rows affected: %w", err)
	}
	return int(rows), nil
}

func (r *BookingRepository) listBookings(ctx context.Context, query string, args ...any) ([]*domain.Booking, error) {
	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var res []*domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, err
		}
		res = append(res, b)
	}

	return res, rows.Err()
}

func scanBooking(scan func(dest ...any) error) (*domain.Booking, error) {
	var b domain.Booking
	if err := scan(
		&b.ID, &b.UserID, &b.CourtID, &b.ClubID, &b.StartTime, &b.EndTime, &b.TotalPrice, &b.Status,
		&b.PlayersNeeded, &b.SkillLevel, pq.Array(&b.JoinedPlayerIDs), pq.Array(&b.PendingPlayerIDs),
		&b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan booking: %w", err)
	}
	return &b, nil
}

func dayBounds(date time.Time) (time.Time, time.Time) {
	y, m, d := date.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	return from, from.Add(24 * time.Hour)
}
