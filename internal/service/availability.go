package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/alr63095/ClubConnect/internal/domain"
	"github.com/alr63095/ClubConnect/internal/service/ports"
	"github.com/wb-go/wbf/logger"
	"golang.org/x/sync/errgroup"
)

// globalFanout bounds how many clubs are queried concurrently by the global
// availability search.
const globalFanout = 4

type AvailabilityService struct {
	clubRepo    ports.ClubRepo
	courtRepo   ports.CourtRepo
	bookingRepo ports.BookingRepo
	logger      logger.Logger
	now         func() time.Time
}

func NewAvailabilityService(
	clubRepo ports.ClubRepo,
	courtRepo ports.CourtRepo,
	bookingRepo ports.BookingRepo,
	logger logger.Logger,
) *AvailabilityService {
	return &AvailabilityService{
		clubRepo:    clubRepo,
		courtRepo:   courtRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// ClubAvailability builds the bookable grid of every court of the club that
// matches the sport, for one calendar date. Read-only and idempotent; the
// result may be stale relative to concurrent writes, booking creation is the
// authority.
func (s *AvailabilityService) ClubAvailability(ctx context.Context, clubID, sport string, date time.Time) ([]domain.CourtAvailability, error) {
	if _, err := s.clubRepo.Get(ctx, clubID); err != nil {
		return nil, fmt.Errorf("check club: %w", err)
	}

	courts, err := s.courtRepo.ListByClub(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("list courts: %w", err)
	}

	bookings, err := s.bookingRepo.ListByClubAndDate(ctx, clubID, date)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	byCourt := make(map[string][]*domain.Booking)
	for _, b := range bookings {
		if b.IsActive() {
			byCourt[b.CourtID] = append(byCourt[b.CourtID], b)
		}
	}

	now := s.now()
	res := make([]domain.CourtAvailability, 0, len(courts))
	for _, court := range courts {
		if court.Sport != sport {
			continue
		}
		slots, err := s.courtSlots(court, date, byCourt[court.ID], now)
		if err != nil {
			return nil, fmt.Errorf("court %s: %w", court.ID, err)
		}
		res = append(res, domain.CourtAvailability{Court: *court, Slots: slots})
	}

	return res, nil
}

// GlobalAvailability repeats the club query for every club supporting the
// sport and aggregates the non-empty results, ordered by club name.
func (s *AvailabilityService) GlobalAvailability(ctx context.Context, sport string, date time.Time) ([]domain.ClubAvailability, error) {
	clubs, err := s.clubRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}

	var matching []*domain.Club
	for _, c := range clubs {
		if c.HasSport(sport) {
			matching = append(matching, c)
		}
	}

	results := make([][]domain.CourtAvailability, len(matching))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(globalFanout)
	for i, club := range matching {
		g.Go(func() error {
			courts, err := s.ClubAvailability(gctx, club.ID, sport, date)
			if err != nil {
				return fmt.Errorf("club %s: %w", club.ID, err)
			}
			results[i] = courts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := make([]domain.ClubAvailability, 0, len(matching))
	for i, club := range matching {
		if len(results[i]) == 0 {
			continue
		}
		res = append(res, domain.ClubAvailability{Club: *club, Courts: results[i]})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Club.Name < res[j].Club.Name })

	return res, nil
}

// courtSlots walks the court's grid marking each slot unavailable when it
// strictly overlaps an active booking, or when it already started on the
// current day.
func (s *AvailabilityService) courtSlots(court *domain.Court, date time.Time, bookings []*domain.Booking, now time.Time) ([]domain.TimeSlot, error) {
	times, err := court.SlotTimes()
	if err != nil {
		return nil, err
	}

	today := domain.SameDay(now, date)

	slots := make([]domain.TimeSlot, 0, len(times))
	for _, t := range times {
		slotStart, err := domain.AtTime(date, t)
		if err != nil {
			return nil, err
		}
		slotEnd := slotStart.Add(domain.SlotStep)

		available := true
		if today && slotStart.Before(now) {
			available = false
		}
		for _, b := range bookings {
			if domain.Overlaps(slotStart, slotEnd, b.StartTime, b.EndTime) {
				available = false
				break
			}
		}

		slots = append(slots, domain.TimeSlot{
			Time:      t,
			Available: available,
			Price:     court.PriceFor(t),
		})
	}

	return slots, nil
}
