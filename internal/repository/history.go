package repository

import (
	"context"
	"errors"

	"github.com/hotreminder/backend/internal/apperrors"
	"github.com/hotreminder/backend/internal/domain"
	"gorm.io/gorm"
)

// GormHistoryRepository handles dose ledger data operations. The ledger is
// append-only: there is deliberately no update method.
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

func (r *GormHistoryRepository) GetByID(ctx context.Context, id uint) (*domain.HistoryEvent, error) {
	var event domain.HistoryEvent
	err := r.db.WithContext(ctx).First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFoundError("history event").WithContext("id", id)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return &event, nil
}

// ListByOwner returns all events in insertion order; window filtering and the
// timestamp sort happen in the service so ties keep their insertion order.
func (r *GormHistoryRepository) ListByOwner(ctx context.Context, owner domain.UserID) ([]domain.HistoryEvent, error) {
	var events []domain.HistoryEvent
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", owner).
		Order("id ASC").
		Find(&events).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return events, nil
}

func (r *GormHistoryRepository) Create(ctx context.Context, event *domain.HistoryEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

func (r *GormHistoryRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.HistoryEvent{}, id)
	if result.Error != nil {
		return apperrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("history event").WithContext("id", id)
	}
	return nil
}

// compile-time interface check
var _ HistoryRepository = (*GormHistoryRepository)(nil)
