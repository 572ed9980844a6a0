// Package scheduler runs the polled notification scanner: a fixed-interval
// loop that looks for upcoming bookings, fresh join requests, and pending
// cancellations, and emits each notification at most once per process
// lifetime. Scan failures are logged and swallowed; bookings never wait for
// notifications.
package scheduler

import (
	"context"
	"time"

	"github.com/alr63095/ClubConnect/internal/domain"
	"github.com/alr63095/ClubConnect/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

const (
	// Reminder window around the 24h mark: bookings starting in [23h, 25h).
	reminderFrom = 23 * time.Hour
	reminderTo   = 25 * time.Hour

	// maxSeen caps each de-duplication set. Dropping the set on overflow can
	// re-send old advisory notifications, which is acceptable.
	maxSeen = 4096
)

type Scanner struct {
	bookingRepo ports.BookingRepo
	courtRepo   ports.CourtRepo
	clubRepo    ports.ClubRepo
	userRepo    ports.UserRepo
	notifier    ports.Notifier
	interval    time.Duration
	logger      logger.Logger
	now         func() time.Time

	seenUpcoming      map[string]struct{}
	seenJoinRequests  map[string]struct{}
	seenCancellations map[string]struct{}
}

func New(
	bookingRepo ports.BookingRepo,
	courtRepo ports.CourtRepo,
	clubRepo ports.ClubRepo,
	userRepo ports.UserRepo,
	notifier ports.Notifier,
	interval time.Duration,
	logger logger.Logger,
) *Scanner {
	return &Scanner{
		bookingRepo:       bookingRepo,
		courtRepo:         courtRepo,
		clubRepo:          clubRepo,
		userRepo:          userRepo,
		notifier:          notifier,
		interval:          interval,
		logger:            logger,
		now:               time.Now,
		seenUpcoming:      make(map[string]struct{}),
		seenJoinRequests:  make(map[string]struct{}),
		seenCancellations: make(map[string]struct{}),
	}
}

func (s *Scanner) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("notification scanner started",
		logger.Duration("interval", s.interval),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("notification scanner stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scanner) tick(ctx context.Context) {
	s.scanUpcoming(ctx)
	s.scanJoinRequests(ctx)
	s.scanPendingCancellations(ctx)
}

// scanUpcoming reminds each booking owner once, roughly a day before start.
func (s *Scanner) scanUpcoming(ctx context.Context) {
	now := s.now()
	bookings, err := s.bookingRepo.ListStartingBetween(ctx, now.Add(reminderFrom), now.Add(reminderTo))
	if err != nil {
		s.logger.Error("failed to scan upcoming bookings",
			logger.String("error", err.Error()),
		)
		return
	}

	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if _, done := s.seenUpcoming[b.ID]; done {
			continue
		}

		user, err := s.userRepo.Get(ctx, b.UserID)
		if err != nil {
			s.logger.Error("failed to get user for reminder",
				logger.String("user_id", b.UserID),
				logger.String("error", err.Error()),
			)
			continue
		}
		club, err := s.clubRepo.Get(ctx, b.ClubID)
		if err != nil {
			s.logger.Error("failed to get club for reminder",
				logger.String("club_id", b.ClubID),
				logger.String("error", err.Error()),
			)
			continue
		}

		s.notifier.NotifyUpcomingBooking(ctx, user, club, b)
		s.remember(s.seenUpcoming, b.ID)
	}
}

// scanJoinRequests notifies game owners once per (booking, requester) pair.
func (s *Scanner) scanJoinRequests(ctx context.Context) {
	games, err := s.bookingRepo.ListPublished(ctx, s.now())
	if err != nil {
		s.logger.Error("failed to scan published games",
			logger.String("error", err.Error()),
		)
		return
	}

	for _, b := range games {
		if len(b.PendingPlayerIDs) == 0 {
			continue
		}

		owner, err := s.userRepo.Get(ctx, b.UserID)
		if err != nil {
			s.logger.Error("failed to get owner for join notification",
				logger.String("user_id", b.UserID),
				logger.String("error", err.Error()),
			)
			continue
		}

		sport := ""
		if court, err := s.courtRepo.Get(ctx, b.CourtID); err == nil {
			sport = court.Sport
		}

		for _, requesterID := range b.PendingPlayerIDs {
			key := b.ID + ":" + requesterID
			if _, done := s.seenJoinRequests[key]; done {
				continue
			}

			requester, err := s.userRepo.Get(ctx, requesterID)
			if err != nil {
				s.logger.Error("failed to get requester for join notification",
					logger.String("user_id", requesterID),
					logger.String("error", err.Error()),
				)
				continue
			}

			s.notifier.NotifyJoinRequest(ctx, owner, requester, sport, b)
			s.remember(s.seenJoinRequests, key)
		}
	}
}

// scanPendingCancellations alerts club admins once per pending booking.
func (s *Scanner) scanPendingCancellations(ctx context.Context) {
	pending, err := s.bookingRepo.ListByStatus(ctx, domain.BookingStatusPendingCancellation)
	if err != nil {
		s.logger.Error("failed to scan pending cancellations",
			logger.String("error", err.Error()),
		)
		return
	}

	for _, b := range pending {
		if _, done := s.seenCancellations[b.ID]; done {
			continue
		}

		admins, err := s.userRepo.ListAdminsByClub(ctx, b.ClubID)
		if err != nil {
			s.logger.Error("failed to list admins for cancellation notification",
				logger.String("club_id", b.ClubID),
				logger.String("error", err.Error()),
			)
			continue
		}

		requester, err := s.userRepo.Get(ctx, b.UserID)
		if err != nil {
			s.logger.Error("failed to get requester for cancellation notification",
				logger.String("user_id", b.UserID),
				logger.String("error", err.Error()),
			)
			continue
		}

		for _, admin := range admins {
			s.notifier.NotifyPendingCancellation(ctx, admin, requester, b)
		}
		s.remember(s.seenCancellations, b.ID)
	}
}

func (s *Scanner) remember(seen map[string]struct{}, key string) {
	if len(seen) >= maxSeen {
		clear(seen)
	}
	seen[key] = struct{}{}
}
