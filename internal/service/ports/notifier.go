package ports

import (
	"context"

	"github.com/alr63095/ClubConnect/internal/domain"
)

// Notifier delivers advisory messages. Implementations log and swallow their
// own failures; callers never block on delivery.
type Notifier interface {
	NotifyBookingConfirmed(ctx context.Context, user *domain.User, court *domain.Court, b *domain.Booking)
	NotifyBookingCancelled(ctx context.Context, user *domain.User, b *domain.Booking)
	NotifyUpcomingBooking(ctx context.Context, user *domain.User, club *domain.Club, b *domain.Booking)
	NotifyJoinRequest(ctx context.Context, owner, requester *domain.User, sport string, b *domain.Booking)
	NotifyPendingCancellation(ctx context.Context, admin, requester *domain.User, b *domain.Booking)
}
