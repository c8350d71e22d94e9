package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hotreminder/backend/internal/apperrors"
	"github.com/hotreminder/backend/internal/domain"
)

// UserHandler serves the /api/auth routes. Credential checks and token
// verification belong to the identity provider; these routes only maintain
// the profile record.
type UserHandler struct {
	users domain.UserService
}

func NewUserHandler(users domain.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type signupRequest struct {
	ExternalID string `json:"externalId"`
	Username   string `json:"username"`
	Email      string `json:"email"`
}

// Signup creates the account record for an externally-authenticated user.
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.NewValidationError("invalid request body"))
		return
	}

	user, err := h.users.Register(r.Context(), req.ExternalID, req.Username, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Signup successful", envelope{"user": userJSON(user)})
}

// GetUser returns the profile for an external id.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	externalID := chi.URLParam(r, "userId")
	user, err := h.users.GetByExternalID(r.Context(), externalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", envelope{"user": userJSON(user)})
}

type avatarRequest struct {
	AvatarURL string `json:"avatarUrl"`
}

// UpdateAvatar changes the avatar reference for an external id.
func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	externalID := chi.URLParam(r, "userId")
	var req avatarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.NewValidationError("invalid request body"))
		return
	}

	if err := h.users.UpdateAvatar(r.Context(), externalID, req.AvatarURL); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Avatar updated", nil)
}
