package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/hotreminder/backend/internal/apperrors"
	"github.com/hotreminder/backend/internal/domain"
	"github.com/hotreminder/backend/internal/logger"
)

type envelope map[string]interface{}

func writeJSON(w http.ResponseWriter, status int, payload envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeSuccess(w http.ResponseWriter, status int, message string, extra envelope) {
	payload := envelope{"success": true}
	if message != "" {
		payload["message"] = message
	}
	for k, v := range extra {
		payload[k] = v
	}
	writeJSON(w, status, payload)
}

// writeError translates a typed error into an HTTP status. The JSON envelope
// never carries internal error detail.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeValidation:
		status = http.StatusBadRequest
	case apperrors.ErrorTypeNotFound:
		status = http.StatusNotFound
	case apperrors.ErrorTypePermission:
		status = http.StatusForbidden
	case apperrors.ErrorTypeRecurrence:
		status = http.StatusUnprocessableEntity
	case apperrors.ErrorTypeDatabase:
		status = http.StatusInternalServerError
	}

	if appErr, ok := err.(*apperrors.AppError); ok && status != http.StatusInternalServerError {
		message = appErr.Message
	}
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
	}

	writeJSON(w, status, envelope{"success": false, "message": message})
}

func userJSON(u *domain.User) envelope {
	return envelope{
		"uid":             u.ExternalID,
		"username":        u.Username,
		"email":           u.Email,
		"numeric_user_id": u.NumericID,
		"avatar_url":      u.AvatarURL,
		"created_at":      u.CreatedAt,
	}
}

func medicineJSON(m *domain.Medicine) envelope {
	return envelope{
		"id":          m.ID,
		"user_id":     m.UserID,
		"name":        m.Name,
		"description": m.Description,
		"usage":       m.Usage,
		"start_date":  m.StartDate,
		"expiry_date": m.ExpiryDate,
		"created_at":  m.CreatedAt,
	}
}

func medicinesJSON(medicines []domain.Medicine) []envelope {
	out := make([]envelope, len(medicines))
	for i := range medicines {
		out[i] = medicineJSON(&medicines[i])
	}
	return out
}

func reminderJSON(r *domain.Reminder) envelope {
	return envelope{
		"id":                r.ID,
		"user_id":           r.UserID,
		"medicine_id":       r.MedicineID,
		"medicine_name":     r.MedicineName,
		"description":       r.Description,
		"is_repeat_enabled": r.RepeatEnabled,
		"repeat_mode":       r.RepeatMode,
		"custom_days":       []int(r.CustomDays),
		"times":             []string(r.Times),
		"is_enabled":        r.Enabled,
		"selected_date":     r.SelectedDate,
		"created_at":        r.CreatedAt,
	}
}

func remindersJSON(reminders []domain.Reminder) []envelope {
	out := make([]envelope, len(reminders))
	for i := range reminders {
		out[i] = reminderJSON(&reminders[i])
	}
	return out
}

func historyJSON(h *domain.HistoryEvent) envelope {
	return envelope{
		"id":             h.ID,
		"user_id":        h.UserID,
		"reminder_id":    h.ReminderID,
		"medicine_name":  h.MedicineName,
		"scheduled_time": h.ScheduledTime,
		"status":         h.Status,
		"timestamp":      h.Timestamp,
		"created_at":     h.CreatedAt,
	}
}

func historiesJSON(events []domain.HistoryEvent) []envelope {
	out := make([]envelope, len(events))
	for i := range events {
		out[i] = historyJSON(&events[i])
	}
	return out
}
