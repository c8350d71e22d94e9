package repository

import (
	"context"
	"errors"

	"github.com/hotreminder/backend/internal/apperrors"
	"github.com/hotreminder/backend/internal/domain"
	"gorm.io/gorm"
)

// GormReminderRepository handles reminder data operations
type GormReminderRepository struct {
	db *gorm.DB
}

// NewReminderRepository creates a new reminder repository
func NewReminderRepository(db *gorm.DB) *GormReminderRepository {
	return &GormReminderRepository{db: db}
}

func (r *GormReminderRepository) GetByID(ctx context.Context, id uint) (*domain.Reminder, error) {
	var reminder domain.Reminder
	err := r.db.WithContext(ctx).First(&reminder, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFoundError("reminder").WithContext("id", id)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return &reminder, nil
}

func (r *GormReminderRepository) ListByOwner(ctx context.Context, owner domain.UserID) ([]domain.Reminder, error) {
	var reminders []domain.Reminder
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", owner).
		Order("created_at DESC").
		Find(&reminders).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return reminders, nil
}

// ListEnabledByOwner returns enabled reminders in insertion order, which is
// the order schedule queries must preserve.
func (r *GormReminderRepository) ListEnabledByOwner(ctx context.Context, owner domain.UserID) ([]domain.Reminder, error) {
	var reminders []domain.Reminder
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND enabled = ?", owner, true).
		Order("id ASC").
		Find(&reminders).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return reminders, nil
}

func (r *GormReminderRepository) Create(ctx context.Context, reminder *domain.Reminder) error {
	if err := r.db.WithContext(ctx).Create(reminder).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

func (r *GormReminderRepository) Update(ctx context.Context, id uint, patch map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Reminder{}).
		Where("id = ?", id).
		Updates(patch)
	if result.Error != nil {
		return apperrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("reminder").WithContext("id", id)
	}
	return nil
}

func (r *GormReminderRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Reminder{}, id)
	if result.Error != nil {
		return apperrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("reminder").WithContext("id", id)
	}
	return nil
}

// compile-time interface check
var _ ReminderRepository = (*GormReminderRepository)(nil)
