package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alr63095/ClubConnect/internal/domain"
)

func newCourtService(f *fixtures, t *testing.T) *CourtService {
	svc := NewCourtService(f.courts, f.clubs, f.bookings, newTestLogger(t))
	svc.now = fixedNow
	return svc
}

func TestCourtService_Upsert_Create(t *testing.T) {
	f := newFixtures()
	club := f.seedClub(t, "Padel Hub", "padel")
	svc := newCourtService(f, t)

	court, err := svc.Upsert(context.Background(), domain.UpsertCourtInput{
		ClubID:       club.ID,
		Name:         "Center Court",
		Sport:        "padel",
		OpeningTime:  "08:00",
		ClosingTime:  "22:00",
		DefaultPrice: 25,
		SlotPrices:   []domain.SlotPrice{{Time: "18:00", Price: 40}},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, court.ID)
	assert.Equal(t, 40.0, court.PriceFor("18:00"))
	assert.Equal(t, 25.0, court.PriceFor("09:00"))
}

func TestCourtService_Upsert_NewSportExtendsClub(t *testing.T) {
	f := newFixtures()
	club := f.seedClub(t, "Padel Hub", "padel")
	svc := newCourtService(f, t)

	_, err := svc.Upsert(context.Background(), domain.UpsertCourtInput{
		ClubID:      club.ID,
		Name:        "Tennis 1",
		Sport:       "tennis",
		OpeningTime: "08:00",
		ClosingTime: "22:00",
	})
	require.NoError(t, err)

	updated, err := f.clubs.Get(context.Background(), club.ID)
	require.NoError(t, err)
	assert.True(t, updated.HasSport("tennis"))
	assert.True(t, updated.HasSport("padel"))
}

func TestCourtService_Upsert_Update(t *testing.T) {
	f := newFixtures()
	club := f.seedClub(t, "Padel Hub", "padel")
	court := f.seedCourt(t, club.ID, "Court 1", "padel")
	svc := newCourtService(f, t)

	updated, err := svc.Upsert(context.Background(), domain.UpsertCourtInput{
		ID:           court.ID,
		ClubID:       club.ID,
		Name:         "Court 1 Renovated",
		Sport:        "padel",
		OpeningTime:  "07:00",
		ClosingTime:  "23:00",
		DefaultPrice: 30,
	})

	require.NoError(t, err)
	assert.Equal(t, court.ID, updated.ID)
	assert.Equal(t, "Court 1 Renovated", updated.Name)
	assert.Equal(t, 30.0, updated.DefaultPrice)
}

func TestCourtService_Upsert_WrongClub(t *testing.T) {
	f := newFixtures()
	clubA := f.seedClub(t, "Club A", "padel")
	clubB := f.seedClub(t, "Club B", "padel")
	court := f.seedCourt(t, clubA.ID, "Court 1", "padel")
	svc := newCourtService(f, t)

	_, err := svc.Upsert(context.Background(), domain.UpsertCourtInput{
		ID:          court.ID,
		ClubID:      clubB.ID,
		Name:        "Court 1",
		Sport:       "padel",
		OpeningTime: "09:00",
		ClosingTime: "23:00",
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCourtService_Upsert_InvalidInput(t *testing.T) {
	f := newFixtures()
	club := f.seedClub(t, "Padel Hub", "padel")
	svc := newCourtService(f, t)

	cases := []struct {
		name  string
		input domain.UpsertCourtInput
	}{
		{"missing name", domain.UpsertCourtInput{ClubID: club.ID, Sport: "padel", OpeningTime: "09:00", ClosingTime: "23:00"}},
		{"missing sport", domain.UpsertCourtInput{ClubID: club.ID, Name: "C", OpeningTime: "09:00", ClosingTime: "23:00"}},
		{"bad opening time", domain.UpsertCourtInput{ClubID: club.ID, Name: "C", Sport: "padel", OpeningTime: "9am", ClosingTime: "23:00"}},
		{"negative default price", domain.UpsertCourtInput{ClubID: club.ID, Name: "C", Sport: "padel", OpeningTime: "09:00", ClosingTime: "23:00", DefaultPrice: -1}},
		{"slot price outside hours", domain.UpsertCourtInput{ClubID: club.ID, Name: "C", Sport: "padel", OpeningTime: "09:00", ClosingTime: "23:00",
			SlotPrices: []domain.SlotPrice{{Time: "23:00", Price: 10}}}},
		{"duplicate slot price", domain.UpsertCourtInput{ClubID: club.ID, Name: "C", Sport: "padel", OpeningTime: "09:00", ClosingTime: "23:00",
			SlotPrices: []domain.SlotPrice{{Time: "10:00", Price: 10}, {Time: "10:00", Price: 12}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Upsert(context.Background(), tc.input)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestCourtService_Delete_CancelsFutureBookings(t *testing.T) {
	f := newFixtures()
	club := f.seedClub(t, "Padel Hub", "padel")
	court := f.seedCourt(t, club.ID, "Court 1", "padel")
	user := f.seedUser(t, "alice")
	svc := newCourtService(f, t)

	future := f.seedBooking(t, user.ID, court, fixedNow().Add(24*time.Hour), time.Hour)
	past := f.seedBooking(t, user.ID, court, fixedNow().Add(-24*time.Hour), time.Hour)

	require.NoError(t, svc.Delete(context.Background(), court.ID))

	_, err := f.courts.Get(context.Background(), court.ID)
	assert.ErrorIs(t, err, domain.ErrCourtNotFound)

	futureStored, err := f.bookings.Get(context.Background(), future.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, futureStored.Status)

	pastStored, err := f.bookings.Get(context.Background(), past.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, pastStored.Status)
}
