package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotreminder/backend/internal/apperrors"
	"github.com/hotreminder/backend/internal/domain"
)

func newTestRouter(deps *RouterDeps) http.Handler {
	if deps.Users == nil {
		deps.Users = &mockUserService{}
	}
	if deps.Medicines == nil {
		deps.Medicines = &mockMedicineService{}
	}
	if deps.Reminders == nil {
		deps.Reminders = &mockReminderService{}
	}
	if deps.History == nil {
		deps.History = &mockHistoryService{}
	}
	return NewRouter(deps)
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&RouterDeps{})
	rec := doRequest(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "OK", payload["status"])
}

func TestSignup(t *testing.T) {
	users := &mockUserService{
		registerFn: func(ctx context.Context, externalID, username, email string) (*domain.User, error) {
			return &domain.User{ExternalID: externalID, NumericID: 123, Username: username, AvatarURL: "preset_0"}, nil
		},
	}
	router := newTestRouter(&RouterDeps{Users: users})

	rec := doRequest(t, router, http.MethodPost, "/api/auth/signup",
		`{"externalId":"ext-1","username":"alice","email":"a@example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	payload := decodeBody(t, rec)
	user := payload["user"].(map[string]interface{})
	assert.Equal(t, "ext-1", user["uid"])
	assert.Equal(t, float64(123), user["numeric_user_id"])
}

func TestSignup_InvalidBody(t *testing.T) {
	router := newTestRouter(&RouterDeps{})
	rec := doRequest(t, router, http.MethodPost, "/api/auth/signup", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUser_NotFound(t *testing.T) {
	router := newTestRouter(&RouterDeps{})
	rec := doRequest(t, router, http.MethodGet, "/api/auth/user/ext-1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	payload := decodeBody(t, rec)
	assert.Equal(t, false, payload["success"])
}

func TestMedicineCreate_RequiresUserID(t *testing.T) {
	router := newTestRouter(&RouterDeps{})
	rec := doRequest(t, router, http.MethodPost, "/api/medicines/",
		`{"name":"Metformin","startDate":"2025-01-01","expiryDate":"2026-01-01"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMedicineDelete_RequiresUserID(t *testing.T) {
	router := newTestRouter(&RouterDeps{})
	rec := doRequest(t, router, http.MethodDelete, "/api/medicines/5", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMedicineDelete_ForeignRecordIsForbidden(t *testing.T) {
	medicines := &mockMedicineService{
		deleteFn: func(ctx context.Context, externalID string, id uint) error {
			return apperrors.NewPermissionError("caller does not own this record")
		},
	}
	router := newTestRouter(&RouterDeps{Medicines: medicines})

	rec := doRequest(t, router, http.MethodDelete, "/api/medicines/5?userId=ext-1", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	payload := decodeBody(t, rec)
	assert.Equal(t, "caller does not own this record", payload["message"])
}

func TestMedicineUpdate_InvalidID(t *testing.T) {
	router := newTestRouter(&RouterDeps{})
	rec := doRequest(t, router, http.MethodPut, "/api/medicines/not-a-number",
		`{"userId":"ext-1","name":"x","startDate":"a","expiryDate":"b"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemindersToday_RecurrenceErrorIsUnprocessable(t *testing.T) {
	reminders := &mockReminderService{
		listDueTodayFn: func(ctx context.Context, externalID string) ([]domain.Reminder, error) {
			return nil, apperrors.NewRecurrenceError("unknown repeat mode")
		},
	}
	router := newTestRouter(&RouterDeps{Reminders: reminders})

	rec := doRequest(t, router, http.MethodGet, "/api/reminders/user/ext-1/today", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestReminderToggle(t *testing.T) {
	reminders := &mockReminderService{
		toggleFn: func(ctx context.Context, externalID string, id uint) (bool, error) {
			return true, nil
		},
	}
	router := newTestRouter(&RouterDeps{Reminders: reminders})

	rec := doRequest(t, router, http.MethodPut, "/api/reminders/7/toggle", `{"userId":"ext-1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	assert.Equal(t, true, payload["isEnabled"])
}

func TestHistoryStats_WindowFromQuery(t *testing.T) {
	var gotWindow domain.Window
	history := &mockHistoryService{
		statsFn: func(ctx context.Context, externalID string, window domain.Window) (domain.Stats, error) {
			gotWindow = window
			return domain.Stats{Total: 4, Taken: 3, Rejected: 1, AdherenceRate: 75.0}, nil
		},
	}
	router := newTestRouter(&RouterDeps{History: history})

	rec := doRequest(t, router, http.MethodGet,
		"/api/history/user/ext-1/stats?startDate=2025-03-01&endDate=2025-03-31", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.Window{Start: "2025-03-01", End: "2025-03-31"}, gotWindow)

	payload := decodeBody(t, rec)
	stats := payload["stats"].(map[string]interface{})
	assert.Equal(t, float64(75), stats["adherenceRate"])
	assert.Equal(t, float64(4), stats["total"])
}

func TestHistoryCreate(t *testing.T) {
	var gotInput domain.HistoryInput
	history := &mockHistoryService{
		addFn: func(ctx context.Context, externalID string, input domain.HistoryInput) (*domain.HistoryEvent, error) {
			gotInput = input
			return &domain.HistoryEvent{
				MedicineName: input.MedicineName,
				Status:       input.Status,
				Timestamp:    "2025-03-01T08:00:00Z",
			}, nil
		},
	}
	router := newTestRouter(&RouterDeps{History: history})

	rec := doRequest(t, router, http.MethodPost, "/api/history/",
		`{"userId":"ext-1","medicineName":"Metformin","time":"08:00","status":"taken"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "08:00", gotInput.ScheduledTime)
	assert.Equal(t, domain.StatusTaken, gotInput.Status)
}

func TestDatabaseErrorHidesDetail(t *testing.T) {
	medicines := &mockMedicineService{
		listFn: func(ctx context.Context, externalID string) ([]domain.Medicine, error) {
			return nil, apperrors.NewDatabaseError(errors.New("pq: connection refused"))
		},
	}
	router := newTestRouter(&RouterDeps{Medicines: medicines})

	rec := doRequest(t, router, http.MethodGet, "/api/medicines/user/ext-1", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	payload := decodeBody(t, rec)
	assert.Equal(t, "Internal server error", payload["message"])
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestRateLimiter_Blocks(t *testing.T) {
	limiter := NewRateLimiter(2)
	defer limiter.Stop()
	router := newTestRouter(&RouterDeps{RateLimiter: limiter})

	var lastCode int
	for i := 0; i < 10; i++ {
		rec := doRequest(t, router, http.MethodGet, "/health", "")
		lastCode = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}
