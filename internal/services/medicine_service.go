package services

import (
	"context"

	"github.com/hotreminder/backend/internal/apperrors"
	"github.com/hotreminder/backend/internal/domain"
	"github.com/hotreminder/backend/internal/repository"
)

// MedicineService handles medicine records. Every mutation resolves the
// caller's numeric id first and authorizes against the stored owner before
// anything is written.
type MedicineService struct {
	medicines repository.MedicineRepository
	resolver  domain.IdentityResolver
}

func NewMedicineService(medicines repository.MedicineRepository, resolver domain.IdentityResolver) *MedicineService {
	return &MedicineService{medicines: medicines, resolver: resolver}
}

func (s *MedicineService) List(ctx context.Context, externalID string) ([]domain.Medicine, error) {
	owner, err := s.resolver.Resolve(ctx, externalID)
	if err != nil {
		return nil, err
	}
	return s.medicines.ListByOwner(ctx, owner)
}

func (s *MedicineService) Create(ctx context.Context, externalID string, input domain.MedicineInput) (*domain.Medicine, error) {
	owner, err := s.resolver.Resolve(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if err := validateMedicineInput(input); err != nil {
		return nil, err
	}

	medicine := &domain.Medicine{
		UserID:      owner,
		Name:        input.Name,
		Description: input.Description,
		Usage:       input.Usage,
		StartDate:   input.StartDate,
		ExpiryDate:  input.ExpiryDate,
	}
	if err := s.medicines.Create(ctx, medicine); err != nil {
		return nil, err
	}
	return medicine, nil
}

func (s *MedicineService) Update(ctx context.Context, externalID string, id uint, input domain.MedicineInput) error {
	owner, err := s.resolver.Resolve(ctx, externalID)
	if err != nil {
		return err
	}
	medicine, err := s.medicines.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := Authorize(owner, medicine); err != nil {
		return err
	}
	if err := validateMedicineInput(input); err != nil {
		return err
	}

	return s.medicines.Update(ctx, id, map[string]interface{}{
		"name":        input.Name,
		"description": input.Description,
		"usage":       input.Usage,
		"start_date":  input.StartDate,
		"expiry_date": input.ExpiryDate,
	})
}

func (s *MedicineService) Delete(ctx context.Context, externalID string, id uint) error {
	owner, err := s.resolver.Resolve(ctx, externalID)
	if err != nil {
		return err
	}
	medicine, err := s.medicines.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := Authorize(owner, medicine); err != nil {
		return err
	}
	return s.medicines.Delete(ctx, id)
}

func validateMedicineInput(input domain.MedicineInput) error {
	if input.Name == "" {
		return apperrors.NewValidationError("medicine name is required")
	}
	if input.StartDate == "" {
		return apperrors.NewValidationError("start date is required")
	}
	if input.ExpiryDate == "" {
		return apperrors.NewValidationError("expiry date is required")
	}
	return nil
}

// compile-time interface check
var _ domain.MedicineService = (*MedicineService)(nil)
