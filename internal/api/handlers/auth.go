package handlers

import (
	"context"
	"distance-service/internal/api/dto"
	"distance-service/internal/auth"
	"distance-service/internal/domain"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
)

type AccountManager interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
}

type AuthHandler struct {
	Service AccountManager
}

func userResponse(u *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := h.Service.Register(r.Context(), req.Username, req.Email, req.Password)
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest,
			"username must be 3-50 characters, email must be valid and password 8-72 characters")
		return
	case errors.Is(err, domain.ErrEmailTaken):
		writeError(w, r, http.StatusConflict, "email already registered")
		return
	case err != nil:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("register failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, userResponse(u))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, u, err := h.Service.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, r, http.StatusUnauthorized, "invalid email or password")
		return
	case err != nil:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("login failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.LoginResponse{Token: token, UserID: u.ID})
}

// CurrentUser returns the account behind the bearer token.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	u, err := h.Service.Me(r.Context(), auth.UserIDFromContext(r.Context()))
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, r, http.StatusNotFound, "user not found")
		return
	case err != nil:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("load current user failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, userResponse(u))
}
