package services

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/hotreminder/backend/internal/apperrors"
	"github.com/hotreminder/backend/internal/domain"
	"github.com/hotreminder/backend/internal/logger"
	"github.com/hotreminder/backend/internal/repository"
)

// IdentityService maps external account ids to numeric ids. Numeric ids are
// assigned lazily on first resolution and persisted with a conditional write,
// so concurrent first-time resolutions converge on a single value.
type IdentityService struct {
	users repository.UserRepository
}

func NewIdentityService(users repository.UserRepository) *IdentityService {
	return &IdentityService{users: users}
}

// Resolve returns the numeric id for the given external id, assigning one if
// the account does not have one yet. The user record must already exist;
// accounts are created through the registration flow, never here.
func (s *IdentityService) Resolve(ctx context.Context, externalID string) (domain.UserID, error) {
	user, err := s.users.GetByExternalID(ctx, externalID)
	if err != nil {
		return 0, err
	}
	if user.NumericID != 0 {
		return user.NumericID, nil
	}

	id, err := s.chooseNumericID(ctx, externalID)
	if err != nil {
		return 0, err
	}

	assigned, err := s.users.SetNumericID(ctx, externalID, id)
	if err != nil {
		return 0, err
	}
	if assigned {
		logger.Info("Assigned numeric id", "external_id", externalID, "numeric_id", id)
		return id, nil
	}

	// Lost the conditional write to a concurrent resolution; its value is the
	// one on record now.
	user, err = s.users.GetByExternalID(ctx, externalID)
	if err != nil {
		return 0, err
	}
	return user.NumericID, nil
}

// chooseNumericID derives the hash-based id, falling back to a timestamp id
// when another account already holds the derived value.
func (s *IdentityService) chooseNumericID(ctx context.Context, externalID string) (domain.UserID, error) {
	id := DeriveNumericID(externalID)
	existing, err := s.users.GetByNumericID(ctx, id)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return id, nil
		}
		return 0, err
	}
	if existing.ExternalID == externalID {
		return id, nil
	}
	return FreshNumericID(), nil
}

// DeriveNumericID folds a 32-bit FNV-1a hash of the external id into a
// non-negative numeric id. Deterministic: the same external id always derives
// the same value.
func DeriveNumericID(externalID string) domain.UserID {
	h := fnv.New32a()
	h.Write([]byte(externalID))
	v := int64(int32(h.Sum32()))
	if v < 0 {
		v = -v
	}
	if v == 0 {
		// zero is the unassigned sentinel
		v = 1
	}
	return domain.UserID(v)
}

// FreshNumericID returns a numeric id derived from the current time,
// truncated to nine digits. Used when the hash-derived id is already taken.
func FreshNumericID() domain.UserID {
	return domain.UserID(time.Now().UnixNano() % 1_000_000_000)
}

// compile-time interface check
var _ domain.IdentityResolver = (*IdentityService)(nil)
