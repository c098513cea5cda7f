package handler

import (
	"errors"
	"net/http"

	"github.com/krmu/lostfound-api/internal/payload"
	"github.com/krmu/lostfound-api/internal/usecase"
	"github.com/krmu/lostfound-api/shared/utilities"
)

// SendEmail dispatches one ad-hoc HTML email on behalf of an administrator.
func (h *Handler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req payload.SendEmailRequest
	if err := decodeJSON(r, &req); err != nil {
		utilities.WriteJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Invalid JSON body",
		})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		utilities.WriteJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "to, subject and html are required",
		})
		return
	}

	messageID, err := h.uc.Notify.SendEmail(r.Context(), req.To, req.Subject, req.HTML)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to send email")
		utilities.WriteJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Failed to send email",
			"error":   err.Error(),
		})
		return
	}

	utilities.WriteJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   "Email sent successfully",
		"messageId": messageID,
	})
}

// SubmitClaim triggers the two claim notifications. Server-side
// configuration gaps are a 500, reported before the mailer is touched; a
// send failure reports which of the two emails got out.
func (h *Handler) SubmitClaim(w http.ResponseWriter, r *http.Request) {
	var req payload.ClaimRequest
	if err := decodeJSON(r, &req); err != nil {
		utilities.WriteJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Invalid JSON body",
		})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		utilities.WriteJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "studentEmail, itemName and imageUrl are required",
		})
		return
	}

	result, err := h.uc.Notify.SubmitClaim(r.Context(), usecase.ClaimParams{
		StudentEmail: req.StudentEmail,
		ItemName:     req.ItemName,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrSMTPNotConfigured):
			utilities.WriteJSON(w, http.StatusInternalServerError, map[string]any{
				"success": false,
				"message": "SMTP configuration missing",
			})
		case errors.Is(err, usecase.ErrAdminEmailNotConfigured):
			utilities.WriteJSON(w, http.StatusInternalServerError, map[string]any{
				"success": false,
				"message": "ADMIN_EMAIL not configured",
			})
		default:
			h.logger.Error().Err(err).Msg("failed to submit claim")
			body := map[string]any{
				"success": false,
				"message": "Failed to submit claim",
				"error":   err.Error(),
			}
			var sendErr *usecase.ClaimSendError
			if errors.As(err, &sendErr) && sendErr.StudentMessageID != "" {
				body["studentMessageId"] = sendErr.StudentMessageID
			}
			utilities.WriteJSON(w, http.StatusInternalServerError, body)
		}
		return
	}

	utilities.WriteJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"message":          "Claim emails sent successfully",
		"studentMessageId": result.StudentMessageID,
		"adminMessageId":   result.AdminMessageID,
	})
}
