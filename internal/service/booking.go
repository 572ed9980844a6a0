package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/alr63095/ClubConnect/internal/domain"
	"github.com/alr63095/ClubConnect/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

// cancellationWindow separates free cancellations from ones needing club
// approval.
const cancellationWindow = 24 * time.Hour

// CancellationResult reports the outcome of a cancellation request.
type CancellationResult struct {
	Status  domain.BookingStatus `json:"status"`
	Message string               `json:"message"`
}

type BookingService struct {
	bookingRepo ports.BookingRepo
	courtRepo   ports.CourtRepo
	userRepo    ports.UserRepo
	notifier    ports.Notifier
	logger      logger.Logger
	now         func() time.Time
}

func NewBookingService(
	bookingRepo ports.BookingRepo,
	courtRepo ports.CourtRepo,
	userRepo ports.UserRepo,
	notifier ports.Notifier,
	logger logger.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		courtRepo:   courtRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		logger:      logger,
		now:         time.Now,
	}
}

// Create books a set of contiguous half-hour slots on one court. Prices are
// snapshotted at booking time; the overlap check happens at write time inside
// the repository, so a stale availability read cannot cause a double booking.
func (s *BookingService) Create(ctx context.Context, userID, courtID string, date time.Time, slotTimes []string) (*domain.Booking, error) {
	slots, err := validateContiguous(slotTimes)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}

	court, err := s.courtRepo.Get(ctx, courtID)
	if err != nil {
		return nil, fmt.Errorf("check court: %w", err)
	}
	if err := s.validateWithinHours(court, slots); err != nil {
		return nil, err
	}

	startTime, err := domain.AtTime(date, slots[0])
	if err != nil {
		return nil, err
	}
	endTime, err := domain.AtTime(date, slots[len(slots)-1])
	if err != nil {
		return nil, err
	}
	endTime = endTime.Add(domain.SlotStep)

	var totalPrice float64
	for _, t := range slots {
		totalPrice += court.PriceFor(t)
	}

	now := s.now().UTC()
	booking := &domain.Booking{
		ID:         uuid.New().String(),
		UserID:     userID,
		CourtID:    court.ID,
		ClubID:     court.ClubID,
		StartTime:  startTime,
		EndTime:    endTime,
		TotalPrice: totalPrice,
		Status:     domain.BookingStatusConfirmed,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.bookingRepo.InsertIfNoOverlap(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.logger.Info("booking created",
		logger.String("booking_id", booking.ID),
		logger.String("court_id", court.ID),
		logger.String("user_id", userID),
		logger.Any("total_price", totalPrice),
	)

	go s.notifier.NotifyBookingConfirmed(context.WithoutCancel(ctx), user, court, booking)

	return booking, nil
}

// RequestCancellation applies the time-based policy: more than 24 hours
// before start the booking is cancelled outright, otherwise it waits for an
// admin decision. Bookings already started fall in the second bucket too.
func (s *BookingService) RequestCancellation(ctx context.Context, bookingID string) (*CancellationResult, error) {
	booking, err := s.bookingRepo.Get(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking.Status != domain.BookingStatusConfirmed {
		return nil, fmt.Errorf("%w: booking is %s", domain.ErrInvalidStatus, booking.Status)
	}

	target := domain.BookingStatusPendingCancellation
	message := "cancellation request sent to the club for approval"
	if booking.StartTime.Sub(s.now()) > cancellationWindow {
		target = domain.BookingStatusCancelled
		message = "booking cancelled"
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.BookingStatusConfirmed, target); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	s.logger.Info("cancellation requested",
		logger.String("booking_id", bookingID),
		logger.String("status", string(target)),
	)

	if target == domain.BookingStatusCancelled {
		s.notifyCancelled(ctx, booking)
	}

	return &CancellationResult{Status: target, Message: message}, nil
}

// ApproveCancellation finalizes a pending cancellation.
func (s *BookingService) ApproveCancellation(ctx context.Context, bookingID string) error {
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID,
		domain.BookingStatusPendingCancellation, domain.BookingStatusCancelled); err != nil {
		return fmt.Errorf("approve cancellation: %w", err)
	}

	s.logger.Info("cancellation approved", logger.String("booking_id", bookingID))

	if booking, err := s.bookingRepo.Get(ctx, bookingID); err == nil {
		s.notifyCancelled(ctx, booking)
	}

	return nil
}

// RejectCancellation puts a pending cancellation back to CONFIRMED.
func (s *BookingService) RejectCancellation(ctx context.Context, bookingID string) error {
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID,
		domain.BookingStatusPendingCancellation, domain.BookingStatusConfirmed); err != nil {
		return fmt.Errorf("reject cancellation: %w", err)
	}

	s.logger.Info("cancellation rejected", logger.String("booking_id", bookingID))
	return nil
}

func (s *BookingService) Get(ctx context.Context, id string) (*domain.Booking, error) {
	return s.bookingRepo.Get(ctx, id)
}

// ListByUser returns the user's bookings, newest first.
func (s *BookingService) ListByUser(ctx context.Context, userID string) ([]*domain.Booking, error) {
	return s.bookingRepo.ListByUser(ctx, userID)
}

// ListByClub returns the club's bookings in chronological order, for the
// admin dashboard.
func (s *BookingService) ListByClub(ctx context.Context, clubID string) ([]*domain.Booking, error) {
	return s.bookingRepo.ListByClub(ctx, clubID)
}

func (s *BookingService) notifyCancelled(ctx context.Context, booking *domain.Booking) {
	user, err := s.userRepo.Get(ctx, booking.UserID)
	if err != nil {
		s.logger.Error("failed to get user for cancel notification",
			logger.String("user_id", booking.UserID),
			logger.String("error", err.Error()),
		)
		return
	}
	go s.notifier.NotifyBookingCancelled(context.WithoutCancel(ctx), user, booking)
}

// validateContiguous checks the selection forms an unbroken chain at the grid
// step and returns it sorted.
func validateContiguous(slotTimes []string) ([]string, error) {
	if len(slotTimes) == 0 {
		return nil, fmt.Errorf("%w: no slots selected", domain.ErrValidation)
	}

	slots := make([]string, len(slotTimes))
	copy(slots, slotTimes)
	sort.Strings(slots)

	prev, err := domain.ParseTimeOfDay(slots[0])
	if err != nil {
		return nil, err
	}
	step := int(domain.SlotStep / time.Minute)
	for _, t := range slots[1:] {
		cur, err := domain.ParseTimeOfDay(t)
		if err != nil {
			return nil, err
		}
		if cur-prev != step {
			return nil, fmt.Errorf("%w: slots must be contiguous", domain.ErrValidation)
		}
		prev = cur
	}

	return slots, nil
}

// validateWithinHours checks every selected slot against the court's actual
// grid, so off-grid times that would spill past closing cannot slip through.
func (s *BookingService) validateWithinHours(court *domain.Court, slots []string) error {
	grid, err := court.SlotTimes()
	if err != nil {
		return err
	}

	bookable := make(map[string]struct{}, len(grid))
	for _, t := range grid {
		bookable[t] = struct{}{}
	}
	for _, t := range slots {
		if _, ok := bookable[t]; !ok {
			return fmt.Errorf("%w: slot %s is not bookable on this court", domain.ErrValidation, t)
		}
	}
	return nil
}
