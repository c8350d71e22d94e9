package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotreminder/backend/internal/apperrors"
	"github.com/hotreminder/backend/internal/domain"
)

func TestHistoryAdd_DefaultsTimestampToNowUTC(t *testing.T) {
	var created *domain.HistoryEvent
	repo := &mockHistoryRepo{
		createFn: func(ctx context.Context, event *domain.HistoryEvent) error {
			created = event
			return nil
		},
	}

	svc := NewHistoryService(repo, &fixedResolver{id: 42})
	svc.now = func() time.Time {
		return time.Date(2025, 3, 1, 10, 30, 0, 0, time.FixedZone("CET", 3600))
	}

	event, err := svc.Add(context.Background(), "ext-1", domain.HistoryInput{
		MedicineName: "Metformin",
		Status:       domain.StatusTaken,
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "2025-03-01T09:30:00Z", event.Timestamp)
	assert.Equal(t, domain.UserID(42), event.UserID)
}

func TestHistoryAdd_KeepsExplicitTimestamp(t *testing.T) {
	repo := &mockHistoryRepo{}
	svc := NewHistoryService(repo, &fixedResolver{id: 42})

	event, err := svc.Add(context.Background(), "ext-1", domain.HistoryInput{
		MedicineName: "Metformin",
		Status:       domain.StatusMissed,
		Timestamp:    "2025-02-14T08:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-02-14T08:00:00Z", event.Timestamp)
}

func TestHistoryAdd_Validation(t *testing.T) {
	svc := NewHistoryService(&mockHistoryRepo{}, &fixedResolver{id: 42})

	_, err := svc.Add(context.Background(), "ext-1", domain.HistoryInput{Status: domain.StatusTaken})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = svc.Add(context.Background(), "ext-1", domain.HistoryInput{MedicineName: "Metformin"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestHistoryList_NewestFirstStable(t *testing.T) {
	repo := &mockHistoryRepo{
		listByOwnerFn: func(ctx context.Context, owner domain.UserID) ([]domain.HistoryEvent, error) {
			return []domain.HistoryEvent{
				{MedicineName: "a", Timestamp: "2025-03-01T08:00:00Z"},
				{MedicineName: "b", Timestamp: "2025-03-02T08:00:00Z"},
				{MedicineName: "c", Timestamp: "2025-03-02T08:00:00Z"},
				{MedicineName: "d", Timestamp: "2025-03-03T08:00:00Z"},
			}, nil
		},
	}

	svc := NewHistoryService(repo, &fixedResolver{id: 42})
	events, err := svc.List(context.Background(), "ext-1", domain.Window{})
	require.NoError(t, err)
	require.Len(t, events, 4)
	assert.Equal(t, "d", events[0].MedicineName)
	// ties keep insertion order
	assert.Equal(t, "b", events[1].MedicineName)
	assert.Equal(t, "c", events[2].MedicineName)
	assert.Equal(t, "a", events[3].MedicineName)
}

func TestHistoryList_WindowFilters(t *testing.T) {
	repo := &mockHistoryRepo{
		listByOwnerFn: func(ctx context.Context, owner domain.UserID) ([]domain.HistoryEvent, error) {
			return []domain.HistoryEvent{
				{MedicineName: "old", Timestamp: "2025-01-01T08:00:00Z"},
				{MedicineName: "in", Timestamp: "2025-03-01T08:00:00Z"},
				{MedicineName: "new", Timestamp: "2025-04-01T08:00:00Z"},
			}, nil
		},
	}

	svc := NewHistoryService(repo, &fixedResolver{id: 42})
	events, err := svc.List(context.Background(), "ext-1", domain.Window{
		Start: "2025-02-01",
		End:   "2025-03-15",
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "in", events[0].MedicineName)
}

func TestHistoryStats_Aggregates(t *testing.T) {
	repo := &mockHistoryRepo{
		listByOwnerFn: func(ctx context.Context, owner domain.UserID) ([]domain.HistoryEvent, error) {
			return []domain.HistoryEvent{
				{Status: domain.StatusTaken, Timestamp: "2025-03-01T08:00:00Z"},
				{Status: domain.StatusTaken, Timestamp: "2025-03-02T08:00:00Z"},
				{Status: domain.StatusRejected, Timestamp: "2025-03-03T08:00:00Z"},
				{Status: domain.StatusMissed, Timestamp: "2025-03-04T08:00:00Z"},
			}, nil
		},
	}

	svc := NewHistoryService(repo, &fixedResolver{id: 42})
	stats, err := svc.Stats(context.Background(), "ext-1", domain.Window{})
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 50.0, stats.AdherenceRate)
}

func TestHistoryDelete_DeniesForeignRecord(t *testing.T) {
	repo := &mockHistoryRepo{
		getByIDFn: func(ctx context.Context, id uint) (*domain.HistoryEvent, error) {
			return &domain.HistoryEvent{UserID: 7}, nil
		},
		deleteFn: func(ctx context.Context, id uint) error {
			t.Fatal("Delete must not run after an authorization failure")
			return nil
		},
	}

	svc := NewHistoryService(repo, &fixedResolver{id: 42})
	err := svc.Delete(context.Background(), "ext-1", 1)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypePermission))
}

func TestHistoryDelete_ResolverFailureShortCircuits(t *testing.T) {
	repo := &mockHistoryRepo{
		getByIDFn: func(ctx context.Context, id uint) (*domain.HistoryEvent, error) {
			t.Fatal("GetByID must not run when resolution fails")
			return nil, nil
		},
	}

	svc := NewHistoryService(repo, &fixedResolver{err: apperrors.NewNotFoundError("user")})
	err := svc.Delete(context.Background(), "ext-1", 1)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}
