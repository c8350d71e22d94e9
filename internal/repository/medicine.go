package repository

import (
	"context"
	"errors"

	"github.com/hotreminder/backend/internal/apperrors"
	"github.com/hotreminder/backend/internal/domain"
	"gorm.io/gorm"
)

// GormMedicineRepository handles medicine data operations
type GormMedicineRepository struct {
	db *gorm.DB
}

// NewMedicineRepository creates a new medicine repository
func NewMedicineRepository(db *gorm.DB) *GormMedicineRepository {
	return &GormMedicineRepository{db: db}
}

func (r *GormMedicineRepository) GetByID(ctx context.Context, id uint) (*domain.Medicine, error) {
	var medicine domain.Medicine
	err := r.db.WithContext(ctx).First(&medicine, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFoundError("medicine").WithContext("id", id)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return &medicine, nil
}

func (r *GormMedicineRepository) ListByOwner(ctx context.Context, owner domain.UserID) ([]domain.Medicine, error) {
	var medicines []domain.Medicine
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", owner).
		Order("name ASC").
		Find(&medicines).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return medicines, nil
}

func (r *GormMedicineRepository) Create(ctx context.Context, medicine *domain.Medicine) error {
	if err := r.db.WithContext(ctx).Create(medicine).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

func (r *GormMedicineRepository) Update(ctx context.Context, id uint, patch map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Medicine{}).
		Where("id = ?", id).
		Updates(patch)
	if result.Error != nil {
		return apperrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("medicine").WithContext("id", id)
	}
	return nil
}

func (r *GormMedicineRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Medicine{}, id)
	if result.Error != nil {
		return apperrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("medicine").WithContext("id", id)
	}
	return nil
}

// compile-time interface check
var _ MedicineRepository = (*GormMedicineRepository)(nil)
