// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the REST handlers behind /api.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ozpolat-cms/internal/auth"
	"github.com/olegiv/ozpolat-cms/internal/middleware"
	"github.com/olegiv/ozpolat-cms/internal/service"
	"github.com/olegiv/ozpolat-cms/internal/session"
	"github.com/olegiv/ozpolat-cms/internal/store"
)

// Error codes returned in API error bodies.
const (
	CodeBadRequest = "bad_request"
	CodeValidation = "validation_error"
	CodeNotFound   = "not_found"
	CodeConflict   = "conflict"
	CodeUpload     = "upload_rejected"
	CodeInternal   = "internal_error"
)

// maxJSONBody bounds JSON request bodies.
const maxJSONBody = 1 << 20

// CountryResolver maps a client IP to an ISO country code.
type CountryResolver interface {
	Country(ip string) string
}

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	svc      *service.Services
	auth     *auth.Authenticator
	sessions *session.Manager
	geo      CountryResolver
	logger   *slog.Logger
}

// NewHandler creates a new API handler. geo may be nil.
func NewHandler(svc *service.Services, a *auth.Authenticator, sessions *session.Manager, geo CountryResolver, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, auth: a, sessions: sessions, geo: geo, logger: logger}
}

// RouterOptions carries the middleware the API routes are wrapped in.
// Nil limiters and a nil cache are skipped.
type RouterOptions struct {
	Gate           *middleware.AdminAuth
	ContactLimiter *middleware.RateLimiter
	LoginLimiter   *middleware.RateLimiter
	Cache          *middleware.ResponseCache
}

// Routes returns the /api router. It must run inside the session
// manager's LoadAndSave.
func (h *Handler) Routes(opts RouterOptions) chi.Router {
	r := chi.NewRouter()
	r.Use(opts.Gate.Detect)
	if opts.Cache != nil {
		r.Use(opts.Cache.Middleware)
	}
	admin := opts.Gate.Require

	r.Route("/auth", func(r chi.Router) {
		r.With(limit(opts.LoginLimiter)).Post("/login", h.Login)
		r.Get("/check", h.Check)
		r.Post("/logout", h.Logout)
		r.Delete("/", h.Logout)
	})

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", h.ListProjects)
		r.Get("/{id}", h.GetProject)
		r.With(admin).Post("/", h.CreateProject)
		r.With(admin).Put("/{id}", h.UpdateProject)
		r.With(admin).Delete("/{id}", h.DeleteProject)
	})

	r.Route("/news", func(r chi.Router) {
		r.Get("/", h.ListNews)
		r.Get("/{id}", h.GetNews)
		r.With(admin).Post("/", h.CreateNews)
		r.With(admin).Put("/{id}", h.UpdateNews)
		r.With(admin).Delete("/{id}", h.DeleteNews)
	})

	r.Route("/careers", func(r chi.Router) {
		r.Get("/", h.ListCareers)
		r.Get("/{id}", h.GetCareer)
		r.With(admin).Post("/", h.CreateCareer)
		r.With(admin).Put("/{id}", h.UpdateCareer)
		r.With(admin).Delete("/{id}", h.DeleteCareer)
	})

	r.Route("/gallery", func(r chi.Router) {
		r.Get("/", h.ListGallery)
		r.Get("/{id}", h.GetGalleryItem)
		r.With(admin).Post("/", h.CreateGalleryItem)
		r.With(admin).Post("/upload", h.UploadGalleryItem)
		r.With(admin).Post("/upload/multiple", h.UploadGalleryItems)
		r.With(admin).Delete("/bulk", h.BulkDeleteGallery)
		r.With(admin).Put("/{id}", h.UpdateGalleryItem)
		r.With(admin).Delete("/{id}", h.DeleteGalleryItem)
	})

	r.Route("/references", func(r chi.Router) {
		r.Get("/", h.ListReferences)
		r.With(admin).Put("/reorder", h.ReorderReferences)
		r.Get("/{id}", h.GetReference)
		r.With(admin).Post("/", h.CreateReference)
		r.With(admin).Put("/{id}", h.UpdateReference)
		r.With(admin).Delete("/{id}", h.DeleteReference)
	})

	r.Route("/contact", func(r chi.Router) {
		r.With(limit(opts.ContactLimiter)).Post("/", h.CreateContact)
		r.Group(func(r chi.Router) {
			r.Use(admin)
			r.Get("/", h.ListContacts)
			r.Get("/unread-count", h.UnreadCount)
			r.Get("/{id}", h.GetContact)
			r.Put("/{id}", h.UpdateContact)
			r.Put("/{id}/read", h.MarkContactRead)
			r.Put("/{id}/replied", h.MarkContactReplied)
			r.Delete("/{id}", h.DeleteContact)
		})
	})

	r.Route("/settings", func(r chi.Router) {
		r.Get("/", h.GetSettings)
		r.With(admin).Put("/", h.UpdateSettings)
		r.With(admin).Post("/hero-slide", h.AddHeroSlide)
		r.With(admin).Put("/hero-slide/{id}", h.UpdateHeroSlide)
		r.With(admin).Delete("/hero-slide/{id}", h.DeleteHeroSlide)
	})

	r.Route("/upload", func(r chi.Router) {
		r.Use(admin)
		r.Post("/", h.Upload)
		r.Post("/multiple", h.UploadMultiple)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteAPIError(w, http.StatusNotFound, CodeNotFound, "Endpoint not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteAPIError(w, http.StatusMethodNotAllowed, CodeBadRequest, "Method not allowed", nil)
	})

	return r
}

func limit(rl *middleware.RateLimiter) func(http.Handler) http.Handler {
	if rl == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return rl.Middleware
}

// WriteJSON writes data as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// successResponse acknowledges a mutation without returning a record.
type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func writeSuccess(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusOK, successResponse{Success: true, Message: message})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	middleware.WriteAPIError(w, http.StatusBadRequest, CodeBadRequest, message, nil)
}

// writeError maps a service error to its status code. Unexpected errors
// are logged and reported with a generic message.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		notFound   *service.NotFoundError
		validation *service.ValidationError
		upload     *service.UploadError
		tooLarge   *http.MaxBytesError
	)

	switch {
	case errors.As(err, &notFound):
		middleware.WriteAPIError(w, http.StatusNotFound, CodeNotFound, notFound.Error(), nil)
	case errors.Is(err, store.ErrNotFound):
		middleware.WriteAPIError(w, http.StatusNotFound, CodeNotFound, "Not found", nil)
	case errors.As(err, &validation):
		middleware.WriteAPIError(w, http.StatusBadRequest, CodeValidation, "Validation failed", validation.Fields)
	case errors.As(err, &upload):
		middleware.WriteAPIError(w, upload.Status, CodeUpload, upload.Message, nil)
	case errors.As(err, &tooLarge):
		middleware.WriteAPIError(w, http.StatusRequestEntityTooLarge, CodeUpload, "Request body too large", nil)
	case errors.Is(err, store.ErrConflict):
		middleware.WriteAPIError(w, http.StatusConflict, CodeConflict, "The content was changed by another request, please retry", nil)
	default:
		h.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		middleware.WriteAPIError(w, http.StatusInternalServerError, CodeInternal, "Internal server error", nil)
	}
}

// decodeJSON reads a JSON body into dst, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.WriteAPIError(w, http.StatusRequestEntityTooLarge, CodeBadRequest, "Request body too large", nil)
			return false
		}
		writeBadRequest(w, "Invalid JSON body")
		return false
	}
	return true
}
