package ports

import (
	"context"
	"time"

	"github.com/alr63095/ClubConnect/internal/domain"
)

// ForumMutation is applied to a booking under the repository's per-booking
// lock, so its checks and writes are one atomic step.
type ForumMutation func(b *domain.Booking) error

type BookingRepo interface {
	// InsertIfNoOverlap persists the booking unless an active booking on the
	// same court overlaps its interval; returns domain.ErrSlotTaken then.
	// This re-check at write time is the sole authority against
	// double-booking.
	InsertIfNoOverlap(ctx context.Context, b *domain.Booking) error

	Get(ctx context.Context, id string) (*domain.Booking, error)
	ListByCourtAndDate(ctx context.Context, courtID string, date time.Time) ([]*domain.Booking, error)
	ListByClubAndDate(ctx context.Context, clubID string, date time.Time) ([]*domain.Booking, error)
	ListByClub(ctx context.Context, clubID string) ([]*domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Booking, error)
	ListByStatus(ctx context.Context, status domain.BookingStatus) ([]*domain.Booking, error)
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
	// ListPublished returns CONFIRMED published games starting after the
	// given instant.
	ListPublished(ctx context.Context, after time.Time) ([]*domain.Booking, error)

	// UpdateStatus transitions the booking from one status to another as a
	// single compare-and-swap. Returns domain.ErrInvalidStatus when the
	// booking is not in the expected status.
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) error
	// MutateForum applies fn to the booking atomically and returns the
	// updated booking.
	MutateForum(ctx context.Context, id string, fn ForumMutation) (*domain.Booking, error)

	CancelFutureByCourt(ctx context.Context, courtID string, now time.Time) (int, error)
	CancelFutureByClub(ctx context.Context, clubID string, now time.Time) (int, error)
}
