package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/alr63095/ClubConnect/internal/domain"
	"github.com/alr63095/ClubConnect/internal/service/ports"
)

// BookingRepository guards all bookings with a single mutex, which makes the
// overlap check-and-insert, status compare-and-swap, and forum mutations
// naturally atomic across concurrent callers.
type BookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]domain.Booking
}

func NewBookingRepo() *BookingRepository {
	return &BookingRepository{bookings: make(map[string]domain.Booking)}
}

func (r *BookingRepository) InsertIfNoOverlap(_ context.Context, b *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.bookings {
		if existing.CourtID != b.CourtID || !existing.IsActive() {
			continue
		}
		if domain.Overlaps(b.StartTime, b.EndTime, existing.StartTime, existing.EndTime) {
			return domain.ErrSlotTaken
		}
	}

	r.bookings[b.ID] = cloneBooking(*b)
	return nil
}

func (r *BookingRepository) Get(_ context.Context, id string) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	b = cloneBooking(b)
	return &b, nil
}

func (r *BookingRepository) ListByCourtAndDate(_ context.Context, courtID string, date time.Time) ([]*domain.Booking, error) {
	return r.list(func(b *domain.Booking) bool {
		return b.CourtID == courtID && domain.SameDay(date, b.StartTime)
	}, byStartAsc), nil
}

func (r *BookingRepository) ListByClubAndDate(_ context.Context, clubID string, date time.Time) ([]*domain.Booking, error) {
	return r.list(func(b *domain.Booking) bool {
		return b.ClubID == clubID && domain.SameDay(date, b.StartTime)
	}, byStartAsc), nil
}

func (r *BookingRepository) ListByClub(_ context.Context, clubID string) ([]*domain.Booking, error) {
	return r.list(func(b *domain.Booking) bool {
		return b.ClubID == clubID
	}, byStartAsc), nil
}

func (r *BookingRepository) ListByUser(_ context.Context, userID string) ([]*domain.Booking, error) {
	return r.list(func(b *domain.Booking) bool {
		return b.UserID == userID
	}, byStartDesc), nil
}

func (r *BookingRepository) ListByStatus(_ context.Context, status domain.BookingStatus) ([]*domain.Booking, error) {
	return r.list(func(b *domain.Booking) bool {
		return b.Status == status
	}, byStartAsc), nil
}

func (r *BookingRepository) ListStartingBetween(_ context.Context, from, to time.Time) ([]*domain.Booking, error) {
	return r.list(func(b *domain.Booking) bool {
		return !b.StartTime.Before(from) && b.StartTime.Before(to)
	}, byStartAsc), nil
}

func (r *BookingRepository) ListPublished(_ context.Context, after time.Time) ([]*domain.Booking, error) {
	return r.list(func(b *domain.Booking) bool {
		return b.Status == domain.BookingStatusConfirmed && b.IsPublished() && b.StartTime.After(after)
	}, byStartAsc), nil
}

func (r *BookingRepository) UpdateStatus(_ context.Context, id string, from, to domain.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return domain.ErrBookingNotFound
	}
	if b.Status != from {
		return domain.ErrInvalidStatus
	}

	b.Status = to
	b.UpdatedAt = time.Now().UTC()
	r.bookings[id] = b
	return nil
}

func (r *BookingRepository) MutateForum(_ context.Context, id string, fn ports.ForumMutation) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}

	mutated := cloneBooking(b)
	if err := fn(&mutated); err != nil {
		return nil, err
	}

	mutated.UpdatedAt = time.Now().UTC()
	r.bookings[id] = cloneBooking(mutated)
	return &mutated, nil
}

func (r *BookingRepository) CancelFutureByCourt(_ context.Context, courtID string, now time.Time) (int, error) {
	return r.cancelFuture(func(b *domain.Booking) bool { return b.CourtID == courtID }, now), nil
}

func (r *BookingRepository) CancelFutureByClub(_ context.Context, clubID string, now time.Time) (int, error) {
	return r.cancelFuture(func(b *domain.Booking) bool { return b.ClubID == clubID }, now), nil
}

func (r *BookingRepository) cancelFuture(match func(*domain.Booking) bool, now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cancelled := 0
	for id, b := range r.bookings {
		if !match(&b) || !b.IsActive() || !b.StartTime.After(now) {
			continue
		}
		b.Status = domain.BookingStatusCancelled
		b.UpdatedAt = time.Now().UTC()
		r.bookings[id] = b
		cancelled++
	}
	return cancelled
}

func (r *BookingRepository) list(match func(*domain.Booking) bool, less func(a, b *domain.Booking) bool) []*domain.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var res []*domain.Booking
	for _, b := range r.bookings {
		if match(&b) {
			b := cloneBooking(b)
			res = append(res, &b)
		}
	}
	sort.Slice(res, func(i, j int) bool { return less(res[i], res[j]) })
	return res
}

func byStartAsc(a, b *domain.Booking) bool  { return a.StartTime.Before(b.StartTime) }
func byStartDesc(a, b *domain.Booking) bool { return b.StartTime.Before(a.StartTime) }

func cloneBooking(b domain.Booking) domain.Booking {
	b.JoinedPlayerIDs = append([]string(nil), b.JoinedPlayerIDs...)
	b.PendingPlayerIDs = append([]string(nil), b.PendingPlayerIDs...)
	return b
}
