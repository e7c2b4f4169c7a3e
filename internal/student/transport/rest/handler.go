// Package rest provides HTTP handlers for student-related operations.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	serrors "github.com/mkravets/resource-api/internal/student/errors"
	"github.com/mkravets/resource-api/internal/student/service"
	"github.com/mkravets/resource-api/internal/student/store"
	"github.com/mkravets/resource-api/pkg/web"
)

type Handler struct {
	service service.StudentService
	logger  *slog.Logger
}

// NewHandler creates a new instance of the student API with the provided service.
func NewHandler(service service.StudentService, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With("component", "student_rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the student resource.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/students", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Register)
		r.Get("/filter", h.FilterByGpa)
		r.Get("/major/{major}", h.FindByMajor)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Put("/", h.Update)
			r.Delete("/", h.DeleteByID)
		})
	})
}

// FindAll retrieves all students.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	web.RespondJSON(w, mLogger, http.StatusOK, h.service.FindAll(r.Context()))
}

// FindByID retrieves a student by ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, serrors.ErrStudentNotFound) {
			mLogger.WarnContext(r.Context(), "Student not found", "ID", id)
			web.RespondJSON(w, mLogger, http.StatusNotFound, fmt.Sprintf("Student with ID %d not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving student", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve student with ID %d", id))
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// FindByMajor retrieves students with the given major.
func (h *Handler) FindByMajor(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	major := r.PathValue("major")

	list := h.service.FindByMajor(r.Context(), major)
	h.respondList(w, mLogger, list)
}

// FilterByGpa retrieves students whose GPA is at least the gpa query parameter.
func (h *Handler) FilterByGpa(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	gpa, ok := web.ParseFloat(r, w, mLogger, "gpa")
	if !ok {
		return
	}

	list := h.service.FilterByGpa(r.Context(), gpa)
	h.respondList(w, mLogger, list)
}

// Register creates a new student.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var student store.Student
	if err := json.NewDecoder(r.Body).Decode(&student); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	created := h.service.Register(r.Context(), student)
	mLogger.InfoContext(r.Context(), "Student registered successfully", "ID", created.ID)
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

// Update overwrites every mutable field of an existing student.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	var student store.Student
	if err := json.NewDecoder(r.Body).Decode(&student); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.Update(r.Context(), id, student)
	if err != nil {
		if errors.Is(err, serrors.ErrStudentNotFound) {
			mLogger.WarnContext(r.Context(), "Student not found for update", "ID", id)
			web.RespondJSON(w, mLogger, http.StatusNotFound, fmt.Sprintf("Student with ID %d not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error updating student", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to update student with ID %d", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Student updated successfully", "ID", updated.ID)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// DeleteByID deletes a student by ID.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	if err := h.service.DeleteByID(r.Context(), id); err != nil {
		if errors.Is(err, serrors.ErrStudentNotFound) {
			mLogger.WarnContext(r.Context(), "Student not found for deletion", "ID", id)
			web.RespondJSON(w, mLogger, http.StatusNotFound, fmt.Sprintf("Student with ID %d not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error deleting student", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to delete student with ID %d", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Student deleted successfully", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}

// respondList mirrors an empty result back with a 404 status, matching the
// collection-endpoint contract for this resource.
func (h *Handler) respondList(w http.ResponseWriter, logger *slog.Logger, list []store.Student) {
	if len(list) == 0 {
		web.RespondJSON(w, logger, http.StatusNotFound, list)
		return
	}
	web.RespondJSON(w, logger, http.StatusOK, list)
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	return h.logger.With("request_id", web.RequestIDFrom(r.Context()))
}
