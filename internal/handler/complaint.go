package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/krmu/lostfound-api/internal/model"
	"github.com/krmu/lostfound-api/internal/payload"
	"github.com/krmu/lostfound-api/internal/usecase"
	"github.com/krmu/lostfound-api/shared/utilities"
)

// CreateComplaint files a lost-item report from a multipart form. The photo
// is optional; when present it is uploaded before the document is created,
// and an upload failure aborts the whole operation.
func (h *Handler) CreateComplaint(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utilities.WriteError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	form := payload.CreateComplaintForm{
		ProductType:   r.FormValue("productType"),
		DateLost:      r.FormValue("dateLost"),
		LastKnownSpot: r.FormValue("lastKnownSpot"),
		Description:   r.FormValue("description"),
		Student:       r.FormValue("student"),
	}
	if err := h.validator.Struct(form); err != nil {
		utilities.WriteError(w, http.StatusBadRequest, "All required fields must be provided")
		return
	}

	dateLost, err := parseDate(form.DateLost)
	if err != nil {
		utilities.WriteError(w, http.StatusBadRequest, "Invalid dateLost value")
		return
	}

	photo, err := readFormFile(r, "photo")
	if err != nil {
		utilities.WriteError(w, http.StatusBadRequest, "Invalid photo upload")
		return
	}

	complaint, err := h.uc.Complaints.CreateComplaint(r.Context(), usecase.CreateComplaintParams{
		ProductType:   form.ProductType,
		DateLost:      dateLost,
		LastKnownSpot: form.LastKnownSpot,
		Description:   form.Description,
		StudentID:     form.Student,
		Photo:         photo,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidStudentID) || errors.Is(err, usecase.ErrStudentNotFound) {
			utilities.WriteError(w, http.StatusBadRequest, "Invalid student ID")
			return
		}

		h.logger.Error().Err(err).Msg("failed to create complaint")
		utilities.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utilities.WriteJSON(w, http.StatusCreated, complaint)
}

// ListComplaints returns every report, newest first, with the student
// reference expanded to a reduced projection.
func (h *Handler) ListComplaints(w http.ResponseWriter, r *http.Request) {
	complaints, err := h.uc.Complaints.ListComplaints(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list complaints")
		utilities.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utilities.WriteJSON(w, http.StatusOK, complaints)
}

func (h *Handler) GetComplaint(w http.ResponseWriter, r *http.Request) {
	complaint, err := h.uc.Complaints.GetComplaint(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, usecase.ErrComplaintNotFound) {
			utilities.WriteError(w, http.StatusNotFound, "Complaint not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to get complaint")
		utilities.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utilities.WriteJSON(w, http.StatusOK, complaint)
}

// UpdateComplaintStatus moves a report through its review states. Values
// outside the closed status set are rejected before any write.
func (h *Handler) UpdateComplaintStatus(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		utilities.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	complaint, err := h.uc.Complaints.UpdateComplaintStatus(
		r.Context(),
		chi.URLParam(r, "id"),
		model.ComplaintStatus(req.Status),
	)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidStatus):
			utilities.WriteError(w, http.StatusBadRequest, "Invalid status value")
		case errors.Is(err, usecase.ErrComplaintNotFound):
			utilities.WriteError(w, http.StatusNotFound, "Complaint not found")
		default:
			h.logger.Error().Err(err).Msg("failed to update complaint status")
			utilities.WriteError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	utilities.WriteJSON(w, http.StatusOK, complaint)
}

// DeleteComplaint removes a report and returns its prior state.
func (h *Handler) DeleteComplaint(w http.ResponseWriter, r *http.Request) {
	complaint, err := h.uc.Complaints.DeleteComplaint(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, usecase.ErrComplaintNotFound) {
			utilities.WriteJSON(w, http.StatusNotFound, map[string]any{
				"success": false,
				"message": "Complaint not found",
			})
			return
		}

		h.logger.Error().Err(err).Msg("failed to delete complaint")
		utilities.WriteJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Error deleting complaint",
			"error":   err.Error(),
		})
		return
	}

	utilities.WriteJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"message":          "Complaint deleted successfully",
		"deletedComplaint": complaint,
	})
}

// parseDate accepts the date-only form the frontend submits, with RFC 3339
// as a fallback.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}

	return time.Parse(time.RFC3339, value)
}

// readFormFile reads an optional multipart file part. A missing part
// returns nil bytes and no error.
func readFormFile(r *http.Request, field string) ([]byte, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}

		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}
