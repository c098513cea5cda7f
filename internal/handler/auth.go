package handler

import (
	"errors"
	"net/http"

	"github.com/krmu/lostfound-api/internal/model"
	"github.com/krmu/lostfound-api/internal/payload"
	"github.com/krmu/lostfound-api/internal/usecase"
	"github.com/krmu/lostfound-api/shared/utilities"
	"github.com/krmu/lostfound-api/shared/validation"
)

// Register creates a new account. The password is hashed before anything is
// stored; no token is issued at registration.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		utilities.WriteMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		if validation.FailedOn(err, "oneof") {
			utilities.WriteMessage(w, http.StatusBadRequest, "Invalid role value")
			return
		}
		utilities.WriteMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}

	_, err := h.uc.Auth.Register(r.Context(), usecase.RegisterParams{
		Username: req.Username,
		Password: req.Password,
		Role:     model.Role(req.Role),
	})
	if err != nil {
		if errors.Is(err, usecase.ErrUsernameTaken) {
			utilities.WriteMessage(w, http.StatusConflict, "Username already exists")
			return
		}

		h.logger.Error().Err(err).Msg("failed to register user")
		utilities.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	utilities.WriteMessage(w, http.StatusCreated, "User registered successfully")
}

// Login checks credentials and issues a 24-hour token. The failure message
// is uniform so the response never reveals whether the username exists.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		utilities.WriteMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		utilities.WriteMessage(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	result, err := h.uc.Auth.Login(r.Context(), usecase.LoginParams{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			utilities.WriteMessage(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		h.logger.Error().Err(err).Msg("failed to log in user")
		utilities.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	utilities.WriteJSON(w, http.StatusOK, payload.LoginResponse{
		Token: result.Token,
		User: payload.UserInfo{
			ID:       result.User.ID,
			Username: result.User.Username,
			Role:     result.User.Role,
		},
	})
}
