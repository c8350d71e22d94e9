package services

import (
	"context"
	"sort"
	"time"

	"github.com/hotreminder/backend/internal/apperrors"
	"github.com/hotreminder/backend/internal/domain"
	"github.com/hotreminder/backend/internal/repository"
)

// HistoryService handles the append-only dose ledger and the adherence
// statistics derived from it.
type HistoryService struct {
	history  repository.HistoryRepository
	resolver domain.IdentityResolver
	now      func() time.Time
}

func NewHistoryService(history repository.HistoryRepository, resolver domain.IdentityResolver) *HistoryService {
	return &HistoryService{
		history:  history,
		resolver: resolver,
		now:      time.Now,
	}
}

// Add appends one dose event. A missing timestamp defaults to now, in UTC so
// the stored string sorts chronologically.
func (s *HistoryService) Add(ctx context.Context, externalID string, input domain.HistoryInput) (*domain.HistoryEvent, error) {
	owner, err := s.resolver.Resolve(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if input.MedicineName == "" {
		return nil, apperrors.NewValidationError("medicine name is required")
	}
	if input.Status == "" {
		return nil, apperrors.NewValidationError("status is required")
	}

	timestamp := input.Timestamp
	if timestamp == "" {
		timestamp = s.now().UTC().Format(time.RFC3339)
	}

	event := &domain.HistoryEvent{
		UserID:        owner,
		ReminderID:    input.ReminderID,
		MedicineName:  input.MedicineName,
		ScheduledTime: input.ScheduledTime,
		Status:        input.Status,
		Timestamp:     timestamp,
	}
	if err := s.history.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// List returns the caller's events inside the window, newest first. The sort
// is stable so events sharing a timestamp keep their insertion order.
func (s *HistoryService) List(ctx context.Context, externalID string, window domain.Window) ([]domain.HistoryEvent, error) {
	owner, err := s.resolver.Resolve(ctx, externalID)
	if err != nil {
		return nil, err
	}
	all, err := s.history.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	events := make([]domain.HistoryEvent, 0, len(all))
	for _, event := range all {
		if window.Contains(event.Timestamp) {
			events = append(events, event)
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp > events[j].Timestamp
	})
	return events, nil
}

// Stats aggregates the caller's events inside the window.
func (s *HistoryService) Stats(ctx context.Context, externalID string, window domain.Window) (domain.Stats, error) {
	owner, err := s.resolver.Resolve(ctx, externalID)
	if err != nil {
		return domain.Stats{}, err
	}
	events, err := s.history.ListByOwner(ctx, owner)
	if err != nil {
		return domain.Stats{}, err
	}
	return Aggregate(events, window), nil
}

func (s *HistoryService) Delete(ctx context.Context, externalID string, id uint) error {
	owner, err := s.resolver.Resolve(ctx, externalID)
	if err != nil {
		return err
	}
	event, err := s.history.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := Authorize(owner, event); err != nil {
		return err
	}
	return s.history.Delete(ctx, id)
}

// compile-time interface check
var _ domain.HistoryService = (*HistoryService)(nil)
