package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

type recordingNotifier struct {
	mu            sync.Mutex
	upcoming      []string
	joinRequests  []string
	cancellations []string
}

func (n *recordingNotifier) NotifyBookingConfirmed(context.Context, *domain.User, *domain.Court, *domain.Booking) {
}

func (n *recordingNotifier) NotifyBookingCancelled(context.Context, *domain.User, *domain.Booking) {}

func (n *recordingNotifier) NotifyUpcomingBooking(_ context.Context, _ *domain.User, _ *domain.Club, b *domain.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.upcoming = append(n.upcoming, b.ID)
}

func (n *recordingNotifier) NotifyJoinRequest(_ context.Context, _, requester *domain.User, _ string, b *domain.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.joinRequests = append(n.joinRequests, b.ID+":"+requester.ID)
}

func (n *recordingNotifier) NotifyPendingCancellation(_ context.Context, admin, _ *domain.User, b *domain.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancellations = append(n.cancellations, b.ID+":"+admin.ID)
}

type scannerFixture struct {
	scanner  *Scanner
	clubs    *memory.ClubRepository
	courts   *memory.CourtRepository
	bookings *memory.BookingRepository
	users    *memory.UserRepository
	notifier *recordingNotifier
	now      time.Time
}

func newScannerFixture(t *testing.T) *scannerFixture {
	t.Helper()
	f := &scannerFixture{
		clubs:    memory.NewClubRepo(),
		courts:   memory.NewCourtRepo(),
		bookings: memory.NewBookingRepo(),
		users:    memory.NewUserRepo(),
		notifier: &recordingNotifier{},
		now:      time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}
	f.scanner = New(f.bookings, f.courts, f.clubs, f.users, f.notifier, time.Minute, newTestLogger(t))
	f.scanner.now = func() time.Time { return f.now }
	return f
}

func (f *scannerFixture) seedUser(t *testing.T, name string, role domain.UserRole, clubIDs ...string) *domain.User {
	t.Helper()
	u := &domain.User{
		ID:      uuid.New().String(),
		Name:    name,
		Email:   name + "@example.com",
		Role:    role,
		ClubIDs: clubIDs,
	}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *scannerFixture) seedBooking(t *testing.T, userID string, start time.Time, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	club := &domain.Club{ID: uuid.New().String(), Name: "Club"}
	require.NoError(t, f.clubs.Create(context.Background(), club))
	court := &domain.Court{
		ID: uuid.New().String(), ClubID: club.ID, Name: "Court 1", Sport: "padel",
		OpeningTime: "09:00", ClosingTime: "23:00",
	}
	require.NoError(t, f.courts.Upsert(context.Background(), court))

	b := &domain.Booking{
		ID:        uuid.New().String(),
		UserID:    userID,
		CourtID:   court.ID,
		ClubID:    club.ID,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    domain.BookingStatusConfirmed,
	}
	require.NoError(t, f.bookings.InsertIfNoOverlap(context.Background(), b))
	if status != domain.BookingStatusConfirmed {
		require.NoError(t, f.bookings.UpdateStatus(context.Background(), b.ID, domain.BookingStatusConfirmed, status))
		b.Status = status
	}
	return b
}

func TestScanner_UpcomingReminder_OncePerBooking(t *testing.T) {
	f := newScannerFixture(t)
	user := f.seedUser(t, "alice", domain.RolePlayer)
	inWindow := f.seedBooking(t, user.ID, f.now.Add(24*time.Hour), domain.BookingStatusConfirmed)
	f.seedBooking(t, user.ID, f.now.Add(48*time.Hour), domain.BookingStatusConfirmed)

	f.scanner.tick(context.Background())
	f.scanner.tick(context.Background())

	assert.Equal(t, []string{inWindow.ID}, f.notifier.upcoming)
}

func TestScanner_UpcomingReminder_WindowBounds(t *testing.T) {
	f := newScannerFixture(t)
	user := f.seedUser(t, "alice", domain.RolePlayer)
	tooSoon := f.seedBooking(t, user.ID, f.now.Add(22*time.Hour), domain.BookingStatusConfirmed)
	lower := f.seedBooking(t, user.ID, f.now.Add(23*time.Hour), domain.BookingStatusConfirmed)
	upper := f.seedBooking(t, user.ID, f.now.Add(25*time.Hour), domain.BookingStatusConfirmed)

	f.scanner.tick(context.Background())

	assert.NotContains(t, f.notifier.upcoming, tooSoon.ID)
	assert.Contains(t, f.notifier.upcoming, lower.ID)
	// the 25h bound is exclusive
	assert.NotContains(t, f.notifier.upcoming, upper.ID)
}

func TestScanner_UpcomingReminder_SkipsCancelled(t *testing.T) {
	f := newScannerFixture(t)
	user := f.seedUser(t, "alice", domain.RolePlayer)
	cancelled := f.seedBooking(t, user.ID, f.now.Add(24*time.Hour), domain.BookingStatusCancelled)

	f.scanner.tick(context.Background())

	assert.NotContains(t, f.notifier.upcoming, cancelled.ID)
}

func TestScanner_JoinRequests_OncePerRequester(t *testing.T) {
	f := newScannerFixture(t)
	owner := f.seedUser(t, "owner", domain.RolePlayer)
	alice := f.seedUser(t, "alice", domain.RolePlayer)
	bob := f.seedUser(t, "bob", domain.RolePlayer)
	b := f.seedBooking(t, owner.ID, f.now.Add(48*time.Hour), domain.BookingStatusConfirmed)

	_, err := f.bookings.MutateForum(context.Background(), b.ID, func(bk *domain.Booking) error {
		return bk.Publish(owner.ID, 3, 3, f.now)
	})
	require.NoError(t, err)
	_, err = f.bookings.MutateForum(context.Background(), b.ID, func(bk *domain.Booking) error {
		return bk.RequestJoin(alice.ID, f.now)
	})
	require.NoError(t, err)

	f.scanner.tick(context.Background())
	f.scanner.tick(context.Background())

	assert.Equal(t, []string{b.ID + ":" + alice.ID}, f.notifier.joinRequests)

	// a new requester on the same booking triggers a fresh notification
	_, err = f.bookings.MutateForum(context.Background(), b.ID, func(bk *domain.Booking) error {
		return bk.RequestJoin(bob.ID, f.now)
	})
	require.NoError(t, err)

	f.scanner.tick(context.Background())

	assert.Equal(t, []string{b.ID + ":" + alice.ID, b.ID + ":" + bob.ID}, f.notifier.joinRequests)
}

func TestScanner_PendingCancellations_NotifiesClubAdmins(t *testing.T) {
	f := newScannerFixture(t)
	user := f.seedUser(t, "alice", domain.RolePlayer)
	b := f.seedBooking(t, user.ID, f.now.Add(10*time.Hour), domain.BookingStatusPendingCancellation)
	admin := f.seedUser(t, "admin", domain.RoleAdmin, b.ClubID)
	f.seedUser(t, "other-admin", domain.RoleAdmin, uuid.New().String())

	f.scanner.tick(context.Background())
	f.scanner.tick(context.Background())

	assert.Equal(t, []string{b.ID + ":" + admin.ID}, f.notifier.cancellations)
}

func TestScanner_StartStopsOnContextCancel(t *testing.T) {
	f := newScannerFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.scanner.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scanner did not stop")
	}
}
