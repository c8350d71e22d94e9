package repository

import (
	"context"
	"errors"

	"github.com/hotreminder/backend/internal/apperrors"
	"github.com/hotreminder/backend/internal/domain"
	"gorm.io/gorm"
)

// GormUserRepository handles user data operations
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

func (r *GormUserRepository) GetByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFoundError("user").WithContext("external_id", externalID)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return &user, nil
}

func (r *GormUserRepository) GetByNumericID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("numeric_id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFoundError("user").WithContext("numeric_id", id)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return &user, nil
}

// SetNumericID is a conditional write: the numeric id is assigned only while
// the zero sentinel is still in place, so two racing resolvers cannot both
// win. The loser observes RowsAffected == 0 and re-reads.
func (r *GormUserRepository) SetNumericID(ctx context.Context, externalID string, id domain.UserID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("external_id = ? AND numeric_id = 0", externalID).
		Update("numeric_id", id)
	if result.Error != nil {
		return false, apperrors.NewDatabaseError(result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *GormUserRepository) UpdateAvatar(ctx context.Context, externalID, avatarURL string) error {
	result := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("external_id = ?", externalID).
		Update("avatar_url", avatarURL)
	if result.Error != nil {
		return apperrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("user").WithContext("external_id", externalID)
	}
	return nil
}

// compile-time interface check
var _ UserRepository = (*GormUserRepository)(nil)
