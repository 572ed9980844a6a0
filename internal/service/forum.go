package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/alr63095/ClubConnect/internal/domain"
	"github.com/alr63095/ClubConnect/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

// OpenGameFilters narrows the forum listing. Zero values mean "no filter".
type OpenGameFilters struct {
	Sport      string
	Date       *time.Time
	SkillLevel int
}

func (f OpenGameFilters) active() bool {
	return f.Sport != "" || f.Date != nil || f.SkillLevel != 0
}

type ForumService struct {
	bookingRepo ports.BookingRepo
	courtRepo   ports.CourtRepo
	clubRepo    ports.ClubRepo
	userRepo    ports.UserRepo
	logger      logger.Logger
	now         func() time.Time
}

func NewForumService(
	bookingRepo ports.BookingRepo,
	courtRepo ports.CourtRepo,
	clubRepo ports.ClubRepo,
	userRepo ports.UserRepo,
	logger logger.Logger,
) *ForumService {
	return &ForumService{
		bookingRepo: bookingRepo,
		courtRepo:   courtRepo,
		clubRepo:    clubRepo,
		userRepo:    userRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// Publish opens a confirmed future booking to extra players.
func (s *ForumService) Publish(ctx context.Context, bookingID, ownerID string, playersNeeded, skillLevel int) (*domain.Booking, error) {
	booking, err := s.bookingRepo.MutateForum(ctx, bookingID, func(b *domain.Booking) error {
		return b.Publish(ownerID, playersNeeded, skillLevel, s.now())
	})
	if err != nil {
		return nil, fmt.Errorf("publish booking: %w", err)
	}

	s.logger.Info("booking published to forum",
		logger.String("booking_id", bookingID),
		logger.Int("players_needed", playersNeeded),
		logger.Int("skill_level", skillLevel),
	)

	return booking, nil
}

// RequestToJoin files a join request. The capacity check and the append run
// under the repository's per-booking lock: when one spot remains, two
// concurrent requests yield one success and one ErrGameFull.
func (s *ForumService) RequestToJoin(ctx context.Context, bookingID, userID string) (*domain.Booking, error) {
	if _, err := s.userRepo.Get(ctx, userID); err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}

	booking, err := s.bookingRepo.MutateForum(ctx, bookingID, func(b *domain.Booking) error {
		return b.RequestJoin(userID, s.now())
	})
	if err != nil {
		return nil, fmt.Errorf("request to join: %w", err)
	}

	s.logger.Info("join request filed",
		logger.String("booking_id", bookingID),
		logger.String("user_id", userID),
	)

	return booking, nil
}

// AcceptJoin moves a pending requester into the joined players.
func (s *ForumService) AcceptJoin(ctx context.Context, bookingID, ownerID, userID string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.MutateForum(ctx, bookingID, func(b *domain.Booking) error {
		return b.AcceptJoin(ownerID, userID, s.now())
	})
	if err != nil {
		return nil, fmt.Errorf("accept join: %w", err)
	}

	s.logger.Info("join request accepted",
		logger.String("booking_id", bookingID),
		logger.String("user_id", userID),
	)

	return booking, nil
}

// RejectJoin drops a pending join request.
func (s *ForumService) RejectJoin(ctx context.Context, bookingID, ownerID, userID string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.MutateForum(ctx, bookingID, func(b *domain.Booking) error {
		return b.RejectJoin(ownerID, userID, s.now())
	})
	if err != nil {
		return nil, fmt.Errorf("reject join: %w", err)
	}

	s.logger.Info("join request rejected",
		logger.String("booking_id", bookingID),
		logger.String("user_id", userID),
	)

	return booking, nil
}

// ListOpenGames returns future published games joined with their court and
// club. Unfiltered listings sort by sport name then start time; any active
// filter switches to chronological order.
func (s *ForumService) ListOpenGames(ctx context.Context, filters OpenGameFilters) ([]domain.OpenGame, error) {
	bookings, err := s.bookingRepo.ListPublished(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("list published: %w", err)
	}

	games := make([]domain.OpenGame, 0, len(bookings))
	for _, b := range bookings {
		court, err := s.courtRepo.Get(ctx, b.CourtID)
		if err != nil {
			return nil, fmt.Errorf("court %s: %w", b.CourtID, err)
		}
		club, err := s.clubRepo.Get(ctx, b.ClubID)
		if err != nil {
			return nil, fmt.Errorf("club %s: %w", b.ClubID, err)
		}

		if filters.Sport != "" && court.Sport != filters.Sport {
			continue
		}
		if filters.Date != nil && !domain.SameDay(*filters.Date, b.StartTime) {
			continue
		}
		if filters.SkillLevel != 0 && b.SkillLevel != filters.SkillLevel {
			continue
		}

		games = append(games, domain.OpenGame{Booking: *b, Court: *court, Club: *club})
	}

	if filters.active() {
		sort.Slice(games, func(i, j int) bool {
			return games[i].Booking.StartTime.Before(games[j].Booking.StartTime)
		})
	} else {
		sort.Slice(games, func(i, j int) bool {
			if games[i].Court.Sport != games[j].Court.Sport {
				return games[i].Court.Sport < games[j].Court.Sport
			}
			return games[i].Booking.StartTime.Before(games[j].Booking.StartTime)
		})
	}

	return games, nil
}
