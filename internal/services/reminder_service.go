package services

import (
	"context"
	"fmt"
	"time"

	"github.com/hotreminder/backend/internal/apperrors"
	"github.com/hotreminder/backend/internal/domain"
	"github.com/hotreminder/backend/internal/repository"
	"github.com/hotreminder/backend/internal/utils"
)

// ReminderService handles reminder records and the "due today" schedule
// query. Mutations are owner-gated.
type ReminderService struct {
	reminders repository.ReminderRepository
	resolver  domain.IdentityResolver
	now       func() time.Time
}

func NewReminderService(reminders repository.ReminderRepository, resolver domain.IdentityResolver) *ReminderService {
	return &ReminderService{
		reminders: reminders,
		resolver:  resolver,
		now:       time.Now,
	}
}

func (s *ReminderService) List(ctx context.Context, externalID string) ([]domain.Reminder, error) {
	owner, err := s.resolver.Resolve(ctx, externalID)
	if err != nil {
		return nil, err
	}
	return s.reminders.ListByOwner(ctx, owner)
}

// ListDueToday returns the caller's enabled reminders active on the current
// date, in insertion order.
func (s *ReminderService) ListDueToday(ctx context.Context, externalID string) ([]domain.Reminder, error) {
	owner, err := s.resolver.Resolve(ctx, externalID)
	if err != nil {
		return nil, err
	}
	enabled, err := s.reminders.ListEnabledByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	return DueOn(enabled, s.now())
}

func (s *ReminderService) Create(ctx context.Context, externalID string, input domain.ReminderInput) (*domain.Reminder, error) {
	owner, err := s.resolver.Resolve(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if err := validateReminderInput(input); err != nil {
		return nil, err
	}

	times := append([]string(nil), input.Times...)
	utils.SortTimes(times)

	reminder := &domain.Reminder{
		UserID:        owner,
		MedicineID:    input.MedicineID,
		MedicineName:  input.MedicineName,
		Description:   input.Description,
		RepeatEnabled: input.RepeatEnabled,
		RepeatMode:    input.RepeatMode,
		CustomDays:    domain.IntList(input.CustomDays),
		Times:         domain.StringList(times),
		Enabled:       input.Enabled,
		SelectedDate:  input.SelectedDate,
	}
	if err := s.reminders.Create(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

func (s *ReminderService) Update(ctx context.Context, externalID string, id uint, input domain.ReminderInput) error {
	owner, err := s.resolver.Resolve(ctx, externalID)
	if err != nil {
		return err
	}
	reminder, err := s.reminders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := Authorize(owner, reminder); err != nil {
		return err
	}
	if err := validateReminderInput(input); err != nil {
		return err
	}

	times := append([]string(nil), input.Times...)
	utils.SortTimes(times)

	return s.reminders.Update(ctx, id, map[string]interface{}{
		"medicine_id":    input.MedicineID,
		"medicine_name":  input.MedicineName,
		"description":    input.Description,
		"repeat_enabled": input.RepeatEnabled,
		"repeat_mode":    input.RepeatMode,
		"custom_days":    domain.IntList(input.CustomDays),
		"times":          domain.StringList(times),
		"enabled":        input.Enabled,
		"selected_date":  input.SelectedDate,
	})
}

func (s *ReminderService) Delete(ctx context.Context, externalID string, id uint) error {
	owner, err := s.resolver.Resolve(ctx, externalID)
	if err != nil {
		return err
	}
	reminder, err := s.reminders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := Authorize(owner, reminder); err != nil {
		return err
	}
	return s.reminders.Delete(ctx, id)
}

// Toggle flips the enabled flag and returns the new state.
func (s *ReminderService) Toggle(ctx context.Context, externalID string, id uint) (bool, error) {
	owner, err := s.resolver.Resolve(ctx, externalID)
	if err != nil {
		return false, err
	}
	reminder, err := s.reminders.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if err := Authorize(owner, reminder); err != nil {
		return false, err
	}

	newState := !reminder.Enabled
	if err := s.reminders.Update(ctx, id, map[string]interface{}{"enabled": newState}); err != nil {
		return false, err
	}
	return newState, nil
}

func validateReminderInput(input domain.ReminderInput) error {
	if input.MedicineName == "" {
		return apperrors.NewValidationError("medicine name is required")
	}
	if len(input.Times) == 0 {
		return apperrors.NewValidationError("at least one time of day is required")
	}
	for _, t := range input.Times {
		if !utils.ValidTimeOfDay(t) {
			return apperrors.NewValidationError(fmt.Sprintf("invalid time of day %q", t))
		}
	}

	switch input.RepeatMode {
	case domain.RepeatDaily, domain.RepeatWeekdays, domain.RepeatOnce:
	case domain.RepeatCustom:
		if len(input.CustomDays) == 0 {
			return apperrors.NewValidationError("custom repeat requires at least one weekday")
		}
		for _, d := range input.CustomDays {
			if d < 0 || d > 6 {
				return apperrors.NewValidationError(fmt.Sprintf("weekday index %d out of range", d))
			}
		}
	default:
		return apperrors.NewValidationError(fmt.Sprintf("unknown repeat mode %q", input.RepeatMode))
	}
	return nil
}

// compile-time interface check
var _ domain.ReminderService = (*ReminderService)(nil)
