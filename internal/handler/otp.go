package handler

import (
	"errors"
	"net/http"

	"github.com/krmu/lostfound-api/internal/otp"
	"github.com/krmu/lostfound-api/internal/payload"
	"github.com/krmu/lostfound-api/shared/utilities"
)

// SendOTP generates and emails a fresh login code. Sending again for the
// same email replaces the outstanding code.
func (h *Handler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req payload.SendOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		utilities.WriteMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		utilities.WriteMessage(w, http.StatusBadRequest, "Email required")
		return
	}

	if err := h.uc.OTP.SendCode(r.Context(), req.Email); err != nil {
		h.logger.Error().Err(err).Msg("failed to send OTP")
		utilities.WriteMessage(w, http.StatusInternalServerError, "Failed to send OTP")
		return
	}

	utilities.WriteMessage(w, http.StatusOK, "OTP sent to email")
}

// VerifyOTP consumes the outstanding code for the email. Success and expiry
// both purge the record; a wrong code leaves it in place.
func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req payload.VerifyOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		utilities.WriteMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		utilities.WriteMessage(w, http.StatusBadRequest, "Email and OTP required")
		return
	}

	if err := h.uc.OTP.VerifyCode(r.Context(), req.Email, req.OTP); err != nil {
		switch {
		case errors.Is(err, otp.ErrNotFound):
			utilities.WriteMessage(w, http.StatusBadRequest, "No OTP found for this email")
		case errors.Is(err, otp.ErrExpired):
			utilities.WriteMessage(w, http.StatusBadRequest, "OTP expired")
		case errors.Is(err, otp.ErrMismatch):
			utilities.WriteMessage(w, http.StatusBadRequest, "Invalid OTP")
		default:
			h.logger.Error().Err(err).Msg("failed to verify OTP")
			utilities.WriteMessage(w, http.StatusInternalServerError, "Verification failed")
		}
		return
	}

	utilities.WriteMessage(w, http.StatusOK, "OTP verified successfully")
}
