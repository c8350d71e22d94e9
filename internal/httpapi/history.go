package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hotreminder/backend/internal/apperrors"
	"github.com/hotreminder/backend/internal/domain"
)

// HistoryHandler serves the /api/history routes.
type HistoryHandler struct {
	history domain.HistoryService
}

func NewHistoryHandler(history domain.HistoryService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

func windowFromQuery(r *http.Request) domain.Window {
	return domain.Window{
		Start: r.URL.Query().Get("startDate"),
		End:   r.URL.Query().Get("endDate"),
	}
}

func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	externalID := chi.URLParam(r, "userId")
	events, err := h.history.List(r.Context(), externalID, windowFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", envelope{"history": historiesJSON(events)})
}

type historyRequest struct {
	UserID       string        `json:"userId"`
	ReminderID   *uint         `json:"reminderId"`
	MedicineName string        `json:"medicineName"`
	Time         string        `json:"time"`
	Status       domain.Status `json:"status"`
	Timestamp    string        `json:"timestamp"`
}

func (h *HistoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req historyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.NewValidationError("invalid request body"))
		return
	}
	if req.UserID == "" {
		writeError(w, apperrors.NewValidationError("userId is required"))
		return
	}

	event, err := h.history.Add(r.Context(), req.UserID, domain.HistoryInput{
		ReminderID:    req.ReminderID,
		MedicineName:  req.MedicineName,
		ScheduledTime: req.Time,
		Status:        req.Status,
		Timestamp:     req.Timestamp,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "History recorded", envelope{"history": historyJSON(event)})
}

func (h *HistoryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	externalID := chi.URLParam(r, "userId")
	stats, err := h.history.Stats(r.Context(), externalID, windowFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", envelope{"stats": stats})
}

func (h *HistoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.history.Delete(r.Context(), externalID, id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "History deleted", nil)
}
