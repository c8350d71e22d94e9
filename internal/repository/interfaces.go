package repository

import (
	"context"

	"github.com/hotreminder/backend/internal/domain"
)

// UserRepository handles account records keyed by external id.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByExternalID(ctx context.Context, externalID string) (*domain.User, error)
	GetByNumericID(ctx context.Context, id domain.UserID) (*domain.User, error)
	// SetNumericID assigns the numeric id only if none is assigned yet.
	// Returns true when this call performed the assignment, false when another
	// writer got there first.
	SetNumericID(ctx context.Context, externalID string, id domain.UserID) (bool, error)
	UpdateAvatar(ctx context.Context, externalID, avatarURL string) error
}

// MedicineRepository handles medicine records.
type MedicineRepository interface {
	GetByID(ctx context.Context, id uint) (*domain.Medicine, error)
	ListByOwner(ctx context.Context, owner domain.UserID) ([]domain.Medicine, error)
	Create(ctx context.Context, medicine *domain.Medicine) error
	Update(ctx context.Context, id uint, patch map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

// ReminderRepository handles reminder records.
type ReminderRepository interface {
	GetByID(ctx context.Context, id uint) (*domain.Reminder, error)
	ListByOwner(ctx context.Context, owner domain.UserID) ([]domain.Reminder, error)
	ListEnabledByOwner(ctx context.Context, owner domain.UserID) ([]domain.Reminder, error)
	Create(ctx context.Context, reminder *domain.Reminder) error
	Update(ctx context.Context, id uint, patch map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

// HistoryRepository handles the append-only dose ledger.
type HistoryRepository interface {
	GetByID(ctx context.Context, id uint) (*domain.HistoryEvent, error)
	ListByOwner(ctx context.Context, owner domain.UserID) ([]domain.HistoryEvent, error)
	Create(ctx context.Context, event *domain.HistoryEvent) error
	Delete(ctx context.Context, id uint) error
}
