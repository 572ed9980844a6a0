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

type CourtService struct {
	courtRepo   ports.CourtRepo
	clubRepo    ports.ClubRepo
	bookingRepo ports.BookingRepo
	logger      logger.Logger
	now         func() time.Time
}

func NewCourtService(
	courtRepo ports.CourtRepo,
	clubRepo ports.ClubRepo,
	bookingRepo ports.BookingRepo,
	logger logger.Logger,
) *CourtService {
	return &CourtService{
		courtRepo:   courtRepo,
		clubRepo:    clubRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *CourtService) Get(ctx context.Context, id string) (*domain.Court, error) {
	return s.courtRepo.Get(ctx, id)
}

func (s *CourtService) ListByClub(ctx context.Context, clubID string) ([]*domain.Court, error) {
	if _, err := s.clubRepo.Get(ctx, clubID); err != nil {
		return nil, fmt.Errorf("check club: %w", err)
	}
	return s.courtRepo.ListByClub(ctx, clubID)
}

// Upsert creates or updates a court. A court introducing a sport the club
// does not list yet extends the club's sport set.
func (s *CourtService) Upsert(ctx context.Context, input domain.UpsertCourtInput) (*domain.Court, error) {
	if err := validateCourtInput(input); err != nil {
		return nil, err
	}

	club, err := s.clubRepo.Get(ctx, input.ClubID)
	if err != nil {
		return nil, fmt.Errorf("check club: %w", err)
	}

	now := s.now().UTC()
	court := &domain.Court{
		ID:           input.ID,
		ClubID:       input.ClubID,
		Name:         input.Name,
		Sport:        input.Sport,
		Features:     input.Features,
		OpeningTime:  input.OpeningTime,
		ClosingTime:  input.ClosingTime,
		DefaultPrice: input.DefaultPrice,
		SlotPrices:   input.SlotPrices,
		UpdatedAt:    now,
	}
	if court.ID == "" {
		court.ID = uuid.New().String()
		court.CreatedAt = now
	} else {
		existing, err := s.courtRepo.Get(ctx, court.ID)
		if err != nil {
			return nil, fmt.Errorf("check court: %w", err)
		}
		if existing.ClubID != input.ClubID {
			return nil, fmt.Errorf("%w: court belongs to another club", domain.ErrValidation)
		}
		court.CreatedAt = existing.CreatedAt
	}

	if err := s.courtRepo.Upsert(ctx, court); err != nil {
		return nil, fmt.Errorf("upsert court: %w", err)
	}

	if club.AddSport(court.Sport) {
		if err := s.clubRepo.Update(ctx, club); err != nil {
			return nil, fmt.Errorf("update club sports: %w", err)
		}
	}

	s.logger.Info("court upserted",
		logger.String("court_id", court.ID),
		logger.String("club_id", court.ClubID),
		logger.String("sport", court.Sport),
	)

	return court, nil
}

// Delete removes a court and cancels its future active bookings.
func (s *CourtService) Delete(ctx context.Context, id string) error {
	if _, err := s.courtRepo.Get(ctx, id); err != nil {
		return fmt.Errorf("check court: %w", err)
	}

	cancelled, err := s.bookingRepo.CancelFutureByCourt(ctx, id, s.now())
	if err != nil {
		return fmt.Errorf("cancel future bookings: %w", err)
	}

	if err := s.courtRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete court: %w", err)
	}

	s.logger.Info("court deleted",
		logger.String("court_id", id),
		logger.Int("bookings_cancelled", cancelled),
	)

	return nil
}

func validateCourtInput(input domain.UpsertCourtInput) error {
	if input.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if input.Sport == "" {
		return fmt.Errorf("%w: sport is required", domain.ErrValidation)
	}
	if input.DefaultPrice < 0 {
		return fmt.Errorf("%w: default_price must not be negative", domain.ErrValidation)
	}

	open, err := domain.ParseTimeOfDay(input.OpeningTime)
	if err != nil {
		return err
	}
	close, err := domain.ParseTimeOfDay(input.ClosingTime)
	if err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(input.SlotPrices))
	for _, sp := range input.SlotPrices {
		t, err := domain.ParseTimeOfDay(sp.Time)
		if err != nil {
			return err
		}
		if t < open || t >= close {
			return fmt.Errorf("%w: slot price %s outside operating hours", domain.ErrValidation, sp.Time)
		}
		if sp.Price < 0 {
			return fmt.Errorf("%w: slot price %s must not be negative", domain.ErrValidation, sp.Time)
		}
		if _, dup := seen[sp.Time]; dup {
			return fmt.Errorf("%w: duplicate slot price for %s", domain.ErrValidation, sp.Time)
		}
		seen[sp.Time] = struct{}{}
	}

	return nil
}
