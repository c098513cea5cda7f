package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/krmu/lostfound-api/internal/payload"
	"github.com/krmu/lostfound-api/internal/usecase"
	"github.com/krmu/lostfound-api/shared/utilities"
)

// CreateFoundItem logs a recovered item from a multipart form. The image is
// mandatory and its absence is rejected before any field validation or
// network call.
func (h *Handler) CreateFoundItem(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utilities.WriteError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	image, err := readFormFile(r, "image")
	if err != nil {
		utilities.WriteError(w, http.StatusBadRequest, "Invalid image upload")
		return
	}
	if len(image) == 0 {
		utilities.WriteError(w, http.StatusBadRequest, "Image file is required")
		return
	}

	form := payload.CreateFoundItemForm{
		ItemType:      r.FormValue("itemType"),
		Description:   r.FormValue("description"),
		DateFound:     r.FormValue("dateFound"),
		LocationFound: r.FormValue("locationFound"),
		Admin:         r.FormValue("admin"),
	}
	if err := h.validator.Struct(form); err != nil {
		utilities.WriteError(w, http.StatusBadRequest, h.validator.FirstError(err))
		return
	}

	dateFound, err := parseDate(form.DateFound)
	if err != nil {
		utilities.WriteError(w, http.StatusBadRequest, "Invalid dateFound value")
		return
	}

	item, err := h.uc.FoundItems.CreateFoundItem(r.Context(), usecase.CreateFoundItemParams{
		ItemType:      form.ItemType,
		Description:   form.Description,
		DateFound:     dateFound,
		LocationFound: form.LocationFound,
		AdminID:       form.Admin,
		Image:         image,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrImageRequired):
			utilities.WriteError(w, http.StatusBadRequest, "Image file is required")
		case errors.Is(err, usecase.ErrInvalidAdminID), errors.Is(err, usecase.ErrAdminNotFound):
			utilities.WriteError(w, http.StatusBadRequest, "Invalid admin ID")
		default:
			h.logger.Error().Err(err).Msg("failed to create found item")
			utilities.WriteError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	utilities.WriteJSON(w, http.StatusCreated, item)
}

// ListFoundItems returns every found item with the admin reference expanded.
func (h *Handler) ListFoundItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.FoundItems.ListFoundItems(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list found items")
		utilities.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utilities.WriteJSON(w, http.StatusOK, items)
}

// MarkFoundItemReturned flips is_returned to true for the item.
func (h *Handler) MarkFoundItemReturned(w http.ResponseWriter, r *http.Request) {
	item, err := h.uc.FoundItems.MarkFoundItemReturned(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, usecase.ErrFoundItemNotFound) {
			utilities.WriteError(w, http.StatusNotFound, "Found item not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to mark found item returned")
		utilities.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utilities.WriteJSON(w, http.StatusOK, item)
}

// DeleteFoundItem removes a found item and returns its prior state.
func (h *Handler) DeleteFoundItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.uc.FoundItems.DeleteFoundItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, usecase.ErrFoundItemNotFound) {
			utilities.WriteJSON(w, http.StatusNotFound, map[string]any{
				"success": false,
				"message": "Found item not found",
			})
			return
		}

		h.logger.Error().Err(err).Msg("failed to delete found item")
		utilities.WriteJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Error deleting found item",
			"error":   err.Error(),
		})
		return
	}

	utilities.WriteJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"message":     "Found item deleted successfully",
		"deletedItem": item,
	})
}
