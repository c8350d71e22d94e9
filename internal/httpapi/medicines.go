package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hotreminder/backend/internal/apperrors"
	"github.com/hotreminder/backend/internal/domain"
)

// MedicineHandler serves the /api/medicines routes.
type MedicineHandler struct {
	medicines domain.MedicineService
}

func NewMedicineHandler(medicines domain.MedicineService) *MedicineHandler {
	return &MedicineHandler{medicines: medicines}
}

type medicineRequest struct {
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Usage       string `json:"usage"`
	StartDate   string `json:"startDate"`
	ExpiryDate  string `json:"expiryDate"`
}

func (r medicineRequest) input() domain.MedicineInput {
	return domain.MedicineInput{
		Name:        r.Name,
		Description: r.Description,
		Usage:       r.Usage,
		StartDate:   r.StartDate,
		ExpiryDate:  r.ExpiryDate,
	}
}

func (h *MedicineHandler) List(w http.ResponseWriter, r *http.Request) {
	externalID := chi.URLParam(r, "userId")
	medicines, err := h.medicines.List(r.Context(), externalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", envelope{"medicines": medicinesJSON(medicines)})
}

func (h *MedicineHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req medicineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.NewValidationError("invalid request body"))
		return
	}
	if req.UserID == "" {
		writeError(w, apperrors.NewValidationError("userId is required"))
		return
	}

	medicine, err := h.medicines.Create(r.Context(), req.UserID, req.input())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Medicine created", envelope{"medicine": medicineJSON(medicine)})
}

func (h *MedicineHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	var req medicineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.NewValidationError("invalid request body"))
		return
	}
	if req.UserID == "" {
		writeError(w, apperrors.NewValidationError("userId is required"))
		return
	}

	if err := h.medicines.Update(r.Context(), req.UserID, id, req.input()); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Medicine updated", nil)
}

func (h *MedicineHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	// Owner verification is mandatory: a delete without userId is rejected,
	// never waved through.
	externalID := r.URL.Query().Get("userId")
	if externalID == "" {
		writeError(w, apperrors.NewValidationError("userId is required"))
		return
	}

	if err := h.medicines.Delete(r.Context(), externalID, id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Medicine deleted", nil)
}

func parseID(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid record id")
	}
	return uint(v), nil
}
