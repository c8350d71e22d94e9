package services

import (
	"context"

	"github.com/hotreminder/backend/internal/apperrors"
	"github.com/hotreminder/backend/internal/domain"
	"github.com/hotreminder/backend/internal/logger"
	"github.com/hotreminder/backend/internal/repository"
)

const defaultAvatar = "preset_0"

// UserService handles account records. The identity provider owns credentials
// and token verification; this service only maintains the profile record and
// its numeric id.
type UserService struct {
	users    repository.UserRepository
	identity *IdentityService
}

func NewUserService(users repository.UserRepository, identity *IdentityService) *UserService {
	return &UserService{users: users, identity: identity}
}

// Register creates the account record for an external id, assigning its
// numeric id up front. Registering an already-known external id returns the
// existing record unchanged.
func (s *UserService) Register(ctx context.Context, externalID, username, email string) (*domain.User, error) {
	if externalID == "" {
		return nil, apperrors.NewValidationError("external id is required")
	}
	if username == "" {
		return nil, apperrors.NewValidationError("username is required")
	}

	existing, err := s.users.GetByExternalID(ctx, externalID)
	if err == nil {
		return existing, nil
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return nil, err
	}

	numericID, err := s.identity.chooseNumericID(ctx, externalID)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ExternalID: externalID,
		NumericID:  numericID,
		Username:   username,
		Email:      email,
		AvatarURL:  defaultAvatar,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("User registered", "external_id", externalID, "numeric_id", numericID)
	return user, nil
}

func (s *UserService) GetByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	if externalID == "" {
		return nil, apperrors.NewValidationError("external id is required")
	}
	return s.users.GetByExternalID(ctx, externalID)
}

func (s *UserService) UpdateAvatar(ctx context.Context, externalID, avatarURL string) error {
	if externalID == "" {
		return apperrors.NewValidationError("external id is required")
	}
	if avatarURL == "" {
		return apperrors.NewValidationError("avatar url is required")
	}
	return s.users.UpdateAvatar(ctx, externalID, avatarURL)
}

// compile-time interface check
var _ domain.UserService = (*UserService)(nil)
