package services

import (
	"github.com/hotreminder/backend/internal/apperrors"
	"github.com/hotreminder/backend/internal/domain"
)

// Authorize allows an operation only when the record belongs to the caller.
// Both sides are numeric ids; external provider ids never reach this point.
// Every mutating service operation must call this before touching the store.
func Authorize(owner domain.UserID, record domain.Owned) error {
	if record.Owner() != owner {
		return apperrors.NewPermissionError("caller does not own this record").
			WithContext("record_owner", record.Owner()).
			WithContext("caller", owner)
	}
	return nil
}
