package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alr63095/ClubConnect/internal/domain"
	"github.com/alr63095/ClubConnect/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

type ClubService struct {
	clubRepo    ports.ClubRepo
	courtRepo   ports.CourtRepo
	bookingRepo ports.BookingRepo
	logger      logger.Logger
	now         func() time.Time
}

func NewClubService(
	clubRepo ports.ClubRepo,
	courtRepo ports.CourtRepo,
	bookingRepo ports.BookingRepo,
	logger logger.Logger,
) *ClubService {
	return &ClubService{
		clubRepo:    clubRepo,
		courtRepo:   courtRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *ClubService) Create(ctx context.Context, input domain.CreateClubInput) (*domain.Club, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	now := s.now().UTC()
	club := &domain.Club{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Sports:    input.Sports,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.clubRepo.Create(ctx, club); err != nil {
		return nil, fmt.Errorf("create club: %w", err)
	}

	s.logger.Info("club created", logger.String("club_id", club.ID))
	return club, nil
}

func (s *ClubService) Get(ctx context.Context, id string) (*domain.Club, error) {
	return s.clubRepo.Get(ctx, id)
}

func (s *ClubService) List(ctx context.Context) ([]*domain.Club, error) {
	return s.clubRepo.ListAll(ctx)
}

func (s *ClubService) ListByIDs(ctx context.Context, ids []string) ([]*domain.Club, error) {
	return s.clubRepo.ListByIDs(ctx, ids)
}

// Delete removes a club, its courts, and cancels the club's future active
// bookings.
func (s *ClubService) Delete(ctx context.Context, id string) error {
	if _, err := s.clubRepo.Get(ctx, id); err != nil {
		return fmt.Errorf("check club: %w", err)
	}

	cancelled, err := s.bookingRepo.CancelFutureByClub(ctx, id, s.now())
	if err != nil {
		return fmt.Errorf("cancel future bookings: %w", err)
	}

	if err := s.courtRepo.DeleteByClub(ctx, id); err != nil {
		return fmt.Errorf("delete courts: %w", err)
	}

	if err := s.clubRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete club: %w", err)
	}

	s.logger.Info("club deleted",
		logger.String("club_id", id),
		logger.Int("bookings_cancelled", cancelled),
	)

	return nil
}
