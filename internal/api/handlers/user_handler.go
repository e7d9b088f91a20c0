package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/apython1998/ultistats/internal/auth"
	"github.com/apython1998/ultistats/internal/services"
	"github.com/rs/zerolog/log"
)

// UserHandler handles HTTP requests for accounts and sessions.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserPayload carries a partial profile update. Absent fields are left
// untouched.
type UpdateUserPayload struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

// Register handles new user registration. This is the only user route that
// runs without authentication.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.Username == "" || payload.Email == "" || payload.Password == "" {
		respondError(w, http.StatusBadRequest, "must include username, email and password fields")
		return
	}

	user, err := h.service.CreateUser(payload.Username, payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) || errors.Is(err, services.ErrEmailTaken) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Msg("Failed to register user")
		respondError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/v1/users/%d", user.ID))
	respondJSON(w, http.StatusCreated, user)
}

// Login issues a bearer token for the basic-authenticated caller.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	token, err := h.service.IssueToken(user.ID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to issue token")
		respondError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Logout revokes the caller's token.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.service.RevokeToken(user.ID); err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to revoke token")
		respondError(w, http.StatusInternalServerError, "failed to revoke token")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get returns a user's public representation, which excludes the email.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}

	user, err := h.service.GetUserByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Error().Err(err).Int64("user_id", id).Msg("Failed to get user")
		respondError(w, http.StatusInternalServerError, "failed to get user")
		return
	}

	user.Email = ""
	respondJSON(w, http.StatusOK, user)
}

// Update applies a partial profile update and returns the owner
// representation, email included.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}

	var payload UpdateUserPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.service.UpdateUser(id, payload.Username, payload.Email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			respondError(w, http.StatusNotFound, "user not found")
		case errors.Is(err, services.ErrUsernameTaken), errors.Is(err, services.ErrEmailTaken):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			log.Error().Err(err).Int64("user_id", id).Msg("Failed to update user")
			respondError(w, http.StatusInternalServerError, "failed to update user")
		}
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// Delete removes an account. Only self-deletion is permitted; the active
// token is revoked as part of the same operation.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}

	current, ok := auth.UserFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if current.ID != id {
		respondError(w, http.StatusBadRequest, "cannot delete other users")
		return
	}

	if err := h.service.RevokeToken(id); err != nil {
		log.Error().Err(err).Int64("user_id", id).Msg("Failed to revoke token before delete")
		respondError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}
	if err := h.service.DeleteUser(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Error().Err(err).Int64("user_id", id).Msg("Failed to delete user")
		respondError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
