package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotreminder/backend/internal/apperrors"
	"github.com/hotreminder/backend/internal/domain"
)

// week of 2025-01-20: Monday through Sunday.
func weekDate(offset int) time.Time {
	return time.Date(2025, 1, 20+offset, 12, 0, 0, 0, time.UTC)
}

func TestWeekdayIndex(t *testing.T) {
	assert.Equal(t, 0, WeekdayIndex(weekDate(0))) // Monday
	assert.Equal(t, 1, WeekdayIndex(weekDate(1)))
	assert.Equal(t, 4, WeekdayIndex(weekDate(4))) // Friday
	assert.Equal(t, 5, WeekdayIndex(weekDate(5))) // Saturday
	assert.Equal(t, 6, WeekdayIndex(weekDate(6))) // Sunday
}

func TestIsDueOn_Disabled(t *testing.T) {
	reminder := &domain.Reminder{RepeatMode: domain.RepeatDaily, Enabled: false}
	due, err := IsDueOn(reminder, weekDate(0))
	require.NoError(t, err)
	assert.False(t, due)
}

func TestIsDueOn_Daily(t *testing.T) {
	reminder := &domain.Reminder{RepeatMode: domain.RepeatDaily, Enabled: true}
	for offset := 0; offset < 7; offset++ {
		due, err := IsDueOn(reminder, weekDate(offset))
		require.NoError(t, err)
		assert.True(t, due)
	}
}

func TestIsDueOn_Weekdays(t *testing.T) {
	reminder := &domain.Reminder{RepeatMode: domain.RepeatWeekdays, Enabled: true}
	for offset := 0; offset < 7; offset++ {
		due, err := IsDueOn(reminder, weekDate(offset))
		require.NoError(t, err)
		assert.Equal(t, offset <= 4, due, "offset %d", offset)
	}
}

func TestIsDueOn_CustomDays(t *testing.T) {
	reminder := &domain.Reminder{
		RepeatMode: domain.RepeatCustom,
		CustomDays: domain.IntList{0, 2, 4}, // Mon, Wed, Fri
		Enabled:    true,
	}
	want := map[int]bool{0: true, 1: false, 2: true, 3: false, 4: true, 5: false, 6: false}
	for offset, expected := range want {
		due, err := IsDueOn(reminder, weekDate(offset))
		require.NoError(t, err)
		assert.Equal(t, expected, due, "offset %d", offset)
	}
}

func TestIsDueOn_CustomWithoutDays(t *testing.T) {
	reminder := &domain.Reminder{RepeatMode: domain.RepeatCustom, Enabled: true}
	_, err := IsDueOn(reminder, weekDate(0))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeRecurrence))
}

func TestIsDueOn_CustomDayOutOfRange(t *testing.T) {
	reminder := &domain.Reminder{
		RepeatMode: domain.RepeatCustom,
		CustomDays: domain.IntList{0, 7},
		Enabled:    true,
	}
	_, err := IsDueOn(reminder, weekDate(0))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeRecurrence))
}

func TestIsDueOn_Once(t *testing.T) {
	reminder := &domain.Reminder{RepeatMode: domain.RepeatOnce, Enabled: true}
	due, err := IsDueOn(reminder, weekDate(3))
	require.NoError(t, err)
	assert.True(t, due)
}

func TestIsDueOn_UnknownMode(t *testing.T) {
	reminder := &domain.Reminder{RepeatMode: domain.RepeatMode("fortnightly"), Enabled: true}
	_, err := IsDueOn(reminder, weekDate(0))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeRecurrence))
}

func TestDueOn_PreservesOrder(t *testing.T) {
	reminders := []domain.Reminder{
		{MedicineName: "a", RepeatMode: domain.RepeatDaily, Enabled: true},
		{MedicineName: "b", RepeatMode: domain.RepeatCustom, CustomDays: domain.IntList{5}, Enabled: true},
		{MedicineName: "c", RepeatMode: domain.RepeatDaily, Enabled: true},
		{MedicineName: "d", RepeatMode: domain.RepeatDaily, Enabled: false},
	}

	due, err := DueOn(reminders, weekDate(0)) // Monday: "b" and "d" drop out
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, "a", due[0].MedicineName)
	assert.Equal(t, "c", due[1].MedicineName)
}

func TestDueOn_PropagatesError(t *testing.T) {
	reminders := []domain.Reminder{
		{MedicineName: "a", RepeatMode: domain.RepeatDaily, Enabled: true},
		{MedicineName: "b", RepeatMode: domain.RepeatMode("bogus"), Enabled: true},
	}
	_, err := DueOn(reminders, weekDate(0))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeRecurrence))
}
