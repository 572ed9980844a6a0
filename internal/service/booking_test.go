package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alr63095/ClubConnect/internal/domain"
)

func newBookingService(f *fixtures, t *testing.T) *BookingService {
	svc := NewBookingService(f.bookings, f.courts, f.users, f.notifier, newTestLogger(t))
	svc.now = fixedNow
	return svc
}

func TestBookingService_Create(t *testing.T) {
	f := newFixtures()
	club := f.seedClub(t, "Padel Hub", "padel")
	court := f.seedCourt(t, club.ID, "Court 1", "padel", domain.SlotPrice{Time: "10:00", Price: 35})
	user := f.seedUser(t, "alice")
	svc := newBookingService(f, t)

	date := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	booking, err := svc.Create(context.Background(), user.ID, court.ID, date, []string{"09:30", "10:00", "10:30"})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, time.Date(2026, 3, 20, 9, 30, 0, 0, time.UTC), booking.StartTime)
	assert.Equal(t, time.Date(2026, 3, 20, 11, 0, 0, 0, time.UTC), booking.EndTime)
	// 20 + 35 + 20, one slot carries an override
	assert.Equal(t, 75.0, booking.TotalPrice)
	assert.NotEmpty(t, booking.ID)

	time.Sleep(50 * time.Millisecond) // goroutine notify
}

func TestBookingService_Create_UnsortedInputAccepted(t *testing.T) {
	f := newFixtures()
	club := f.seedClub(t, "Padel Hub", "padel")
	court := f.seedCourt(t, club.ID, "Court 1", "padel")
	user := f.seedUser(t, "alice")
	svc := newBookingService(f, t)

	date := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	booking, err := svc.Create(context.Background(), user.ID, court.ID, date, []string{"10:00", "09:30"})

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 20, 9, 30, 0, 0, time.UTC), booking.StartTime)
	assert.Equal(t, time.Date(2026, 3, 20, 10, 30, 0, 0, time.UTC), booking.EndTime)

	time.Sleep(50 * time.Millisecond)
}

func TestBookingService_Create_NonContiguousRejected(t *testing.T) {
	f := newFixtures()
	club := f.seedClub(t, "Padel Hub", "padel")
	court := f.seedCourt(t, club.ID, "Court 1", "padel")
	user := f.seedUser(t, "alice")
	svc := newBookingService(f, t)

	date := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), user.ID, court.ID, date, []string{"09:00", "10:00"})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBookingService_Create_EmptySlots(t *testing.T) {
	f := newFixtures()
	svc := newBookingService(f, t)

	_, err := svc.Create(context.Background(), "u1", "c1",
		time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), nil)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBookingService_Create_OutsideOperatingHours(t *testing.T) {
	f := newFixtures()
	club := f.seedClub(t, "Padel Hub", "padel")
	court := f.seedCourt(t, club.ID, "Court 1", "padel")
	user := f.seedUser(t, "alice")
	svc := newBookingService(f, t)

	date := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	_, err := svc.Create(context.Background(), user.ID, court.ID, date, []string{"08:30", "09:00"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// closing boundary itself is not a slot
	_, err = svc.Create(context.Background(), user.ID, court.ID, date, []string{"22:30", "23:00"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBookingService_Create_OffGridSlotRejected(t *testing.T) {
	f := newFixtures()
	club := f.seedClub(t, "Padel Hub", "padel")
	court := f.seedCourt(t, club.ID, "Court 1", "padel")
	user := f.seedUser(t, "alice")
	svc := newBookingService(f, t)

	date := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	// last grid slot is 22:30; 22:45 would run past closing
	_, err := svc.Create(context.Background(), user.ID, court.ID, date, []string{"22:45"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// contiguous but offset from the grid
	_, err = svc.Create(context.Background(), user.ID, court.ID, date, []string{"10:15", "10:45"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBookingService_Create_OverlapRejected(t *testing.T) {
	f := newFixtures()
	club := f.seedClub(t, "Padel Hub", "padel")
	court := f.seedCourt(t, club.ID, "Court 1", "padel")
	alice := f.seedUser(t, "alice")
	bob := f.seedUser(t, "bob")
	svc := newBookingService(f, t)

	date := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), alice.ID, court.ID, date, []string{"10:00", "10:30"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), bob.ID, court.ID, date, []string{"10:30", "11:00"})
	assert.ErrorIs(t, err, domain.ErrSlotTaken)

	// touching booking right after is fine
	_, err = svc.Create(context.Background(), bob.ID, court.ID, date, []string{"11:00", "11:30"})
	assert.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
}

func TestBookingService_Create_Concurrent(t *testing.T) {
	f := newFixtures()
	club := f.seedClub(t, "Padel Hub", "padel")
	court := f.seedCourt(t, club.ID, "Court 1", "padel")
	alice := f.seedUser(t, "alice")
	bob := f.seedUser(t, "bob")
	svc := newBookingService(f, t)

	date := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	users := []string{alice.ID, bob.ID}
	errs := make([]error, 2)

	var wg sync.WaitGroup
	for i := range users {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.Create(context.Background(), users[i], court.ID, date, []string{"10:00", "10:30"})
		}()
	}
	wg.Wait()

	success := 0
	for _, err := range errs {
		if err == nil {
			success++
		} else {
			assert.ErrorIs(t, err, domain.ErrSlotTaken)
		}
	}
	assert.Equal(t, 1, success)

	time.Sleep(50 * time.Millisecond)
}

func TestBookingService_Create_UserNotFound(t *testing.T) {
	f := newFixtures()
	club := f.seedClub(t, "Padel Hub", "padel")
	court := f.seedCourt(t, club.ID, "Court 1", "padel")
	svc := newBookingService(f, t)

	_, err := svc.Create(context.Background(), "11111111-1111-1111-1111-111111111111", court.ID,
		time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), []string{"10:00"})

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestBookingService_RequestCancellation_OutsideWindow(t *testing.T) {
	f := newFixtures()
	club := f.seedClub(t, "Padel Hub", "padel")
	court := f.seedCourt(t, club.ID, "Court 1", "padel")
	user := f.seedUser(t, "alice")
	svc := newBookingService(f, t)

	// 30 hours ahead of fixedNow
	b := f.seedBooking(t, user.ID, court, fixedNow().Add(30*time.Hour), time.Hour)

	res, err := svc.RequestCancellation(context.Background(), b.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, res.Status)

	stored, err := f.bookings.Get(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, stored.Status)

	time.Sleep(50 * time.Millisecond)
}

func TestBookingService_RequestCancellation_InsideWindow(t *testing.T) {
	f := newFixtures()
	club := f.seedClub(t, "Padel Hub", "padel")
	court := f.seedCourt(t, club.ID, "Court 1", "padel")
	user := f.seedUser(t, "alice")
	svc := newBookingService(f, t)

	b := f.seedBooking(t, user.ID, court, fixedNow().Add(10*time.Hour), time.Hour)

	res, err := svc.RequestCancellation(context.Background(), b.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusPendingCancellation, res.Status)
}

func TestBookingService_RequestCancellation_AlreadyStarted(t *testing.T) {
	f := newFixtures()
	club := f.seedClub(t, "Padel Hub", "padel")
	court := f.seedCourt(t, club.ID, "Court 1", "padel")
	user := f.seedUser(t, "alice")
	svc := newBookingService(f, t)

	// negative time-to-start still goes through the approval path
	b := f.seedBooking(t, user.ID, court, fixedNow().Add(-2*time.Hour), time.Hour)

	res, err := svc.RequestCancellation(context.Background(), b.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusPendingCancellation, res.Status)
}

func TestBookingService_RequestCancellation_NotConfirmed(t *testing.T) {
	f := newFixtures()
	club := f.seedClub(t, "Padel Hub", "padel")
	court := f.seedCourt(t, club.ID, "Court 1", "padel")
	user := f.seedUser(t, "alice")
	svc := newBookingService(f, t)

	b := f.seedBooking(t, user.ID, court, fixedNow().Add(30*time.Hour), time.Hour)
	_, err := svc.RequestCancellation(context.Background(), b.ID)
	require.NoError(t, err)

	_, err = svc.RequestCancellation(context.Background(), b.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	time.Sleep(50 * time.Millisecond)
}

func TestBookingService_ApproveCancellation(t *testing.T) {
	f := newFixtures()
	club := f.seedClub(t, "Padel Hub", "padel")
	court := f.seedCourt(t, club.ID, "Court 1", "padel")
	user := f.seedUser(t, "alice")
	svc := newBookingService(f, t)

	b := f.seedBooking(t, user.ID, court, fixedNow().Add(10*time.Hour), time.Hour)
	_, err := svc.RequestCancellation(context.Background(), b.ID)
	require.NoError(t, err)

	require.NoError(t, svc.ApproveCancellation(context.Background(), b.ID))

	stored, err := f.bookings.Get(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, stored.Status)

	time.Sleep(50 * time.Millisecond)
}

func TestBookingService_RejectCancellation(t *testing.T) {
	f := newFixtures()
	club := f.seedClub(t, "Padel Hub", "padel")
	court := f.seedCourt(t, club.ID, "Court 1", "padel")
	user := f.seedUser(t, "alice")
	svc := newBookingService(f, t)

	b := f.seedBooking(t, user.ID, court, fixedNow().Add(10*time.Hour), time.Hour)
	_, err := svc.RequestCancellation(context.Background(), b.ID)
	require.NoError(t, err)

	require.NoError(t, svc.RejectCancellation(context.Background(), b.ID))

	stored, err := f.bookings.Get(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, stored.Status)
}

func TestBookingService_ApproveCancellation_WrongState(t *testing.T) {
	f := newFixtures()
	club := f.seedClub(t, "Padel Hub", "padel")
	court := f.seedCourt(t, club.ID, "Court 1", "padel")
	user := f.seedUser(t, "alice")
	svc := newBookingService(f, t)

	b := f.seedBooking(t, user.ID, court, fixedNow().Add(10*time.Hour), time.Hour)

	err := svc.ApproveCancellation(context.Background(), b.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	err = svc.ApproveCancellation(context.Background(), "33333333-3333-3333-3333-333333333333")
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}
