package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/alr63095/ClubConnect/internal/domain"
	"github.com/alr63095/ClubConnect/internal/repository/memory"
	"github.com/wb-go/wbf/logger"
)

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.InitLogger("slog", "test", "test", logger.WithLevel(logger.ErrorLevel))
	if err != nil {
		t.Fatalf("init test logger: %v", err)
	}
	return log
}

// captureNotifier counts deliveries per kind; safe for the async notify
// goroutines.
type captureNotifier struct {
	mu        sync.Mutex
	confirmed int
	cancelled int
	upcoming  int
	joins     int
	pending   int
}

func (n *captureNotifier) NotifyBookingConfirmed(_ context.Context, _ *domain.User, _ *domain.Court, _ *domain.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmed++
}

func (n *captureNotifier) NotifyBookingCancelled(_ context.Context, _ *domain.User, _ *domain.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancelled++
}

func (n *captureNotifier) NotifyUpcomingBooking(_ context.Context, _ *domain.User, _ *domain.Club, _ *domain.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.upcoming++
}

func (n *captureNotifier) NotifyJoinRequest(_ context.Context, _, _ *domain.User, _ string, _ *domain.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.joins++
}

func (n *captureNotifier) NotifyPendingCancellation(_ context.Context, _, _ *domain.User, _ *domain.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending++
}

type fixtures struct {
	clubs    *memory.ClubRepository
	courts   *memory.CourtRepository
	bookings *memory.BookingRepository
	users    *memory.UserRepository
	notifier *captureNotifier
}

func newFixtures() *fixtures {
	return &fixtures{
		clubs:    memory.NewClubRepo(),
		courts:   memory.NewCourtRepo(),
		bookings: memory.NewBookingRepo(),
		users:    memory.NewUserRepo(),
		notifier: &captureNotifier{},
	}
}

func (f *fixtures) seedClub(t *testing.T, name string, sports ...string) *domain.Club {
	t.Helper()
	club := &domain.Club{ID: uuid.New().String(), Name: name, Sports: sports}
	if err := f.clubs.Create(context.Background(), club); err != nil {
		t.Fatalf("seed club: %v", err)
	}
	return club
}

func (f *fixtures) seedCourt(t *testing.T, clubID, name, sport string, prices ...domain.SlotPrice) *domain.Court {
	t.Helper()
	court := &domain.Court{
		ID:           uuid.New().String(),
		ClubID:       clubID,
		Name:         name,
		Sport:        sport,
		OpeningTime:  "09:00",
		ClosingTime:  "23:00",
		DefaultPrice: 20,
		SlotPrices:   prices,
	}
	if err := f.courts.Upsert(context.Background(), court); err != nil {
		t.Fatalf("seed court: %v", err)
	}
	return court
}

func (f *fixtures) seedUser(t *testing.T, name string) *domain.User {
	t.Helper()
	user := &domain.User{
		ID:    uuid.New().String(),
		Name:  name,
		Email: name + "@example.com",
		Role:  domain.RolePlayer,
	}
	if err := f.users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func (f *fixtures) seedBooking(t *testing.T, userID string, court *domain.Court, start time.Time, d time.Duration) *domain.Booking {
	t.Helper()
	b := &domain.Booking{
		ID:        uuid.New().String(),
		UserID:    userID,
		CourtID:   court.ID,
		ClubID:    court.ClubID,
		StartTime: start,
		EndTime:   start.Add(d),
		Status:    domain.BookingStatusConfirmed,
	}
	if err := f.bookings.InsertIfNoOverlap(context.Background(), b); err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	return b
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
}
