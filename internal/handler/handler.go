package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/krmu/lostfound-api/internal/usecase"
	"github.com/krmu/lostfound-api/shared/utilities"
	"github.com/krmu/lostfound-api/shared/validation"
)

// maxUploadBytes bounds the multipart form memory for photo uploads.
const maxUploadBytes = 10 << 20

// Usecases bundles the use cases the router dispatches to.
type Usecases struct {
	Auth       usecase.AuthUsecase
	Complaints usecase.ComplaintUsecase
	FoundItems usecase.FoundItemUsecase
	OTP        usecase.OTPUsecase
	Notify     usecase.NotifyUsecase
}

// Handler holds the dependencies shared by all request handlers.
type Handler struct {
	logger    *zerolog.Logger
	validator *validation.Validator
	uc        Usecases
}

// NewRouter builds the HTTP router: every use case is reachable through
// exactly one route under /api, mirroring the portal's public surface.
func NewRouter(
	logger *zerolog.Logger,
	validator *validation.Validator,
	uc Usecases,
	corsAllowedOrigins []string,
) http.Handler {
	h := &Handler{
		logger:    logger,
		validator: validator,
		uc:        uc,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(requestLogger(logger))

	if len(corsAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsAllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Authorization", "Accept"},
			AllowCredentials: true,
		}))
	}

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		utilities.WriteJSON(w, http.StatusOK, map[string]string{"status": "Lost & Found API is running"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
		})

		r.Route("/otp", func(r chi.Router) {
			r.Post("/send-otp", h.SendOTP)
			r.Post("/verify-otp", h.VerifyOTP)
		})

		r.Route("/complaints", func(r chi.Router) {
			r.Post("/", h.CreateComplaint)
			r.Get("/{id}", h.GetComplaint)
		})

		r.Route("/found-items", func(r chi.Router) {
			r.Post("/", h.CreateFoundItem)
			r.Post("/claim", h.SubmitClaim)
		})

		r.Route("/data", func(r chi.Router) {
			r.Get("/complaints", h.ListComplaints)
			r.Patch("/complaints/{id}/status", h.UpdateComplaintStatus)
			r.Get("/found-items", h.ListFoundItems)
			r.Patch("/found-items/{id}/return", h.MarkFoundItemReturned)
		})

		r.Route("/delete", func(r chi.Router) {
			r.Delete("/complaint/{id}", h.DeleteComplaint)
			r.Delete("/found-item/{id}", h.DeleteFoundItem)
		})

		r.Post("/email/send-email", h.SendEmail)
	})

	return r
}

// decodeJSON decodes the request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
