// Package rest provides HTTP handlers for user-profile operations.
// Unlike the other resources, every response body is wrapped in an Envelope
// carrying a success flag and a human-readable message.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	uerrors "github.com/mkravets/resource-api/internal/user/errors"
	"github.com/mkravets/resource-api/internal/user/service"
	"github.com/mkravets/resource-api/internal/user/store"
	"github.com/mkravets/resource-api/pkg/web"
)

// Envelope is the uniform response wrapper for the user-profile resource.
// Data holds the entity, a list, or null.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type Handler struct {
	service service.UserService
	logger  *slog.Logger
}

// NewHandler creates a new instance of the user-profile API with the provided service.
func NewHandler(service service.UserService, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With("component", "user_rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the user-profile resource.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/users", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)
		r.Get("/search/username", h.SearchByUsername)
		r.Get("/country/{country}", h.FindByCountry)
		r.Get("/age-range", h.FindByAgeRange)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Put("/", h.Update)
			r.Patch("/activate", h.Activate)
			r.Patch("/deactivate", h.Deactivate)
			r.Delete("/", h.DeleteByID)
		})
	})
}

// FindAll retrieves all user profiles.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	users := h.service.FindAll(r.Context())
	h.respond(w, mLogger, http.StatusOK, "Users retrieved successfully", users)
}

// FindByID retrieves a user profile by ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		h.respondUserError(w, r, mLogger, id, err, "retrieve")
		return
	}
	h.respond(w, mLogger, http.StatusOK, "User retrieved successfully", found)
}

// SearchByUsername retrieves a single user profile by username.
func (h *Handler) SearchByUsername(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	username, ok := web.ParseString(r, w, mLogger, "username")
	if !ok {
		return
	}

	found, err := h.service.FindByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, uerrors.ErrUserNotFound) {
			mLogger.WarnContext(r.Context(), "User not found by username", "username", username)
			h.respondFailure(w, mLogger, http.StatusNotFound, fmt.Sprintf("User with username %s not found", username))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error searching user by username", "username", username, "error", err)
		h.respondFailure(w, mLogger, http.StatusInternalServerError, "Failed to search users")
		return
	}
	h.respond(w, mLogger, http.StatusOK, "User found", found)
}

// FindByCountry retrieves user profiles from the given country.
func (h *Handler) FindByCountry(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	country := r.PathValue("country")

	users := h.service.FindByCountry(r.Context(), country)
	if len(users) == 0 {
		h.respondFailure(w, mLogger, http.StatusNotFound, fmt.Sprintf("No users found in %s", country))
		return
	}
	h.respond(w, mLogger, http.StatusOK, fmt.Sprintf("Users from %s retrieved successfully", country), users)
}

// FindByAgeRange retrieves user profiles aged within [minAge, maxAge].
func (h *Handler) FindByAgeRange(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	minAge, ok := web.ParseValidateGte(r, w, mLogger, "minAge", 0)
	if !ok {
		return
	}
	maxAge, ok := web.ParseValidateGte(r, w, mLogger, "maxAge", 0)
	if !ok {
		return
	}

	users := h.service.FindByAgeRange(r.Context(), int(minAge), int(maxAge))
	if len(users) == 0 {
		h.respondFailure(w, mLogger, http.StatusNotFound, fmt.Sprintf("No users found in age range %d-%d", minAge, maxAge))
		return
	}
	h.respond(w, mLogger, http.StatusOK, "Users in age range retrieved successfully", users)
}

// Create creates a new user profile. The profile starts active.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var user store.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		h.respondFailure(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	created := h.service.Create(r.Context(), user)
	mLogger.InfoContext(r.Context(), "User profile created successfully", "ID", created.ID)
	h.respond(w, mLogger, http.StatusCreated, "User profile created successfully", created)
}

// Update overwrites every mutable field of an existing profile except the
// active flag.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	var user store.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		h.respondFailure(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.Update(r.Context(), id, user)
	if err != nil {
		h.respondUserError(w, r, mLogger, id, err, "update")
		return
	}
	mLogger.InfoContext(r.Context(), "User profile updated successfully", "ID", updated.ID)
	h.respond(w, mLogger, http.StatusOK, "User profile updated successfully", updated)
}

// Activate marks a user profile as active.
func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	updated, err := h.service.SetActive(r.Context(), id, true)
	if err != nil {
		h.respondUserError(w, r, mLogger, id, err, "activate")
		return
	}
	mLogger.InfoContext(r.Context(), "User profile activated", "ID", updated.ID)
	h.respond(w, mLogger, http.StatusOK, "User profile activated successfully", updated)
}

// Deactivate marks a user profile as inactive.
func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	updated, err := h.service.SetActive(r.Context(), id, false)
	if err != nil {
		h.respondUserError(w, r, mLogger, id, err, "deactivate")
		return
	}
	mLogger.InfoContext(r.Context(), "User profile deactivated", "ID", updated.ID)
	h.respond(w, mLogger, http.StatusOK, "User profile deactivated successfully", updated)
}

// DeleteByID deletes a user profile by ID.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	if err := h.service.DeleteByID(r.Context(), id); err != nil {
		h.respondUserError(w, r, mLogger, id, err, "delete")
		return
	}
	mLogger.InfoContext(r.Context(), "User profile deleted successfully", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respond(w http.ResponseWriter, logger *slog.Logger, status int, message string, data any) {
	web.RespondJSON(w, logger, status, Envelope{Success: true, Message: message, Data: data})
}

func (h *Handler) respondFailure(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	web.RespondJSON(w, logger, status, Envelope{Success: false, Message: message, Data: nil})
}

func (h *Handler) respondUserError(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, id int64, err error, action string) {
	if errors.Is(err, uerrors.ErrUserNotFound) {
		mLogger.WarnContext(r.Context(), "User not found", "ID", id)
		h.respondFailure(w, mLogger, http.StatusNotFound, fmt.Sprintf("User with ID %d not found", id))
		return
	}
	mLogger.ErrorContext(r.Context(), "Error handling user profile", "ID", id, "action", action, "error", err)
	h.respondFailure(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to %s user with ID %d", action, id))
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	return h.logger.With("request_id", web.RequestIDFrom(r.Context()))
}
