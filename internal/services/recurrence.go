package services

import (
	"fmt"
	"time"

	"github.com/hotreminder/backend/internal/apperrors"
	"github.com/hotreminder/backend/internal/domain"
)

// WeekdayIndex returns the weekday of date with Monday = 0 .. Sunday = 6,
// the indexing custom day sets are stored in.
func WeekdayIndex(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// IsDueOn decides whether a reminder is active on the given calendar date.
// Disabled reminders are never due. A malformed or unrecognized recurrence
// descriptor is an error, never a silent exclusion.
func IsDueOn(reminder *domain.Reminder, date time.Time) (bool, error) {
	if !reminder.Enabled {
		return false, nil
	}

	switch reminder.RepeatMode {
	case domain.RepeatDaily:
		return true, nil

	case domain.RepeatWeekdays:
		return WeekdayIndex(date) <= 4, nil

	case domain.RepeatCustom:
		if len(reminder.CustomDays) == 0 {
			return false, apperrors.NewRecurrenceError("custom reminder has no selected weekdays").
				WithContext("reminder_id", reminder.ID)
		}
		idx := WeekdayIndex(date)
		due := false
		for _, d := range reminder.CustomDays {
			if d < 0 || d > 6 {
				return false, apperrors.NewRecurrenceError(fmt.Sprintf("weekday index %d out of range", d)).
					WithContext("reminder_id", reminder.ID)
			}
			if d == idx {
				due = true
			}
		}
		return due, nil

	case domain.RepeatOnce:
		// One-shot reminders fire whenever "today" is queried; disabling or
		// deleting them after the dose is the caller's job.
		return true, nil

	default:
		return false, apperrors.NewRecurrenceError(fmt.Sprintf("unknown repeat mode %q", reminder.RepeatMode)).
			WithContext("reminder_id", reminder.ID)
	}
}

// DueOn filters reminders through IsDueOn, preserving input order.
func DueOn(reminders []domain.Reminder, date time.Time) ([]domain.Reminder, error) {
	due := make([]domain.Reminder, 0, len(reminders))
	for i := range reminders {
		ok, err := IsDueOn(&reminders[i], date)
		if err != nil {
			return nil, err
		}
		if ok {
			due = append(due, reminders[i])
		}
	}
	return due, nil
}
