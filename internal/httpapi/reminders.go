package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hotreminder/backend/internal/apperrors"
	"github.com/hotreminder/backend/internal/domain"
)

// ReminderHandler serves the /api/reminders routes.
type ReminderHandler struct {
	reminders domain.ReminderService
}

func NewReminderHandler(reminders domain.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminders: reminders}
}

type reminderRequest struct {
	UserID        string            `json:"userId"`
	MedicineID    *uint             `json:"medicineId"`
	MedicineName  string            `json:"medicineName"`
	Description   string            `json:"description"`
	RepeatEnabled bool              `json:"isRepeatEnabled"`
	RepeatMode    domain.RepeatMode `json:"repeatMode"`
	CustomDays    []int             `json:"customDays"`
	Times         []string          `json:"times"`
	Enabled       bool              `json:"isEnabled"`
	SelectedDate  string            `json:"selectedDate"`
}

func (r reminderRequest) input() domain.ReminderInput {
	return domain.ReminderInput{
		MedicineID:    r.MedicineID,
		MedicineName:  r.MedicineName,
		Description:   r.Description,
		RepeatEnabled: r.RepeatEnabled,
		RepeatMode:    r.RepeatMode,
		CustomDays:    r.CustomDays,
		Times:         r.Times,
		Enabled:       r.Enabled,
		SelectedDate:  r.SelectedDate,
	}
}

func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	externalID := chi.URLParam(r, "userId")
	reminders, err := h.reminders.List(r.Context(), externalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", envelope{"reminders": remindersJSON(reminders)})
}

func (h *ReminderHandler) ListToday(w http.ResponseWriter, r *http.Request) {
	externalID := chi.URLParam(r, "userId")
	reminders, err := h.reminders.ListDueToday(r.Context(), externalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", envelope{"reminders": remindersJSON(reminders)})
}

func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req reminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.NewValidationError("invalid request body"))
		return
	}
	if req.UserID == "" {
		writeError(w, apperrors.NewValidationError("userId is required"))
		return
	}

	reminder, err := h.reminders.Create(r.Context(), req.UserID, req.input())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Reminder created", envelope{"reminder": reminderJSON(reminder)})
}

func (h *ReminderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	var req reminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.NewValidationError("invalid request body"))
		return
	}
	if req.UserID == "" {
		writeError(w, apperrors.NewValidationError("userId is required"))
		return
	}

	if err := h.reminders.Update(r.Context(), req.UserID, id, req.input()); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Reminder updated", nil)
}

func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	externalID := r.URL.Query().Get("userId")
	if externalID == "" {
		writeError(w, apperrors.NewValidationError("userId is required"))
		return
	}

	if err := h.reminders.Delete(r.Context(), externalID, id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Reminder deleted", nil)
}

type toggleRequest struct {
	UserID string `json:"userId"`
}

func (h *ReminderHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.NewValidationError("invalid request body"))
		return
	}
	if req.UserID == "" {
		writeError(w, apperrors.NewValidationError("userId is required"))
		return
	}

	enabled, err := h.reminders.Toggle(r.Context(), req.UserID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Reminder state updated", envelope{"isEnabled": enabled})
}
