package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotTimes_FullDay(t *testing.T) {
	times, err := SlotTimes("09:00", "23:00", SlotStep)

	require.NoError(t, err)
	assert.Len(t, times, 28)
	assert.Equal(t, "09:00", times[0])
	assert.Equal(t, "22:30", times[len(times)-1])
}

func TestSlotTimes_ClosingBoundaryExcluded(t *testing.T) {
	times, err := SlotTimes("10:00", "11:00", SlotStep)

	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "10:30"}, times)
}

func TestSlotTimes_OpeningAtClosing(t *testing.T) {
	times, err := SlotTimes("10:00", "10:00", SlotStep)

	require.NoError(t, err)
	assert.Empty(t, times)
}

func TestSlotTimes_InvalidTime(t *testing.T) {
	_, err := SlotTimes("25:00", "23:00", SlotStep)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseTimeOfDay(t *testing.T) {
	minutes, err := ParseTimeOfDay("14:30")
	require.NoError(t, err)
	assert.Equal(t, 14*60+30, minutes)

	_, err = ParseTimeOfDay("9:00")
	assert.Error(t, err)

	_, err = ParseTimeOfDay("09:60")
	assert.Error(t, err)
}

func TestFormatTimeOfDay(t *testing.T) {
	assert.Equal(t, "09:00", FormatTimeOfDay(9*60))
	assert.Equal(t, "22:30", FormatTimeOfDay(22*60+30))
	assert.Equal(t, "00:00", FormatTimeOfDay(0))
}

func TestOverlaps_TouchingEndpointsDoNotOverlap(t *testing.T) {
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	// [10:00, 11:00) against [11:00, 12:00)
	assert.False(t, Overlaps(base, base.Add(time.Hour), base.Add(time.Hour), base.Add(2*time.Hour)))
	// [11:00, 12:00) against [10:00, 11:00)
	assert.False(t, Overlaps(base.Add(time.Hour), base.Add(2*time.Hour), base, base.Add(time.Hour)))
}

func TestOverlaps_PartialAndContained(t *testing.T) {
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	assert.True(t, Overlaps(base, base.Add(time.Hour), base.Add(30*time.Minute), base.Add(90*time.Minute)))
	assert.True(t, Overlaps(base, base.Add(2*time.Hour), base.Add(30*time.Minute), base.Add(time.Hour)))
	assert.True(t, Overlaps(base, base.Add(time.Hour), base, base.Add(time.Hour)))
}

func TestAtTime(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	got, err := AtTime(date, "14:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 14, 30, 0, 0, time.UTC), got)
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)
	b := time.Date(2026, 3, 14, 0, 1, 0, 0, time.UTC)
	c := time.Date(2026, 3, 15, 0, 1, 0, 0, time.UTC)

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, c))
}
