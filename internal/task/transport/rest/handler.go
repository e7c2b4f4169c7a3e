// Package rest provides HTTP handlers for task-related operations.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	terrors "github.com/mkravets/resource-api/internal/task/errors"
	"github.com/mkravets/resource-api/internal/task/service"
	"github.com/mkravets/resource-api/internal/task/store"
	"github.com/mkravets/resource-api/pkg/web"
)

type Handler struct {
	service service.TaskService
	logger  *slog.Logger
}

// NewHandler creates a new instance of the task API with the provided service.
func NewHandler(service service.TaskService, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With("component", "task_rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the task resource.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/tasks", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)
		r.Get("/status", h.FindByStatus)
		r.Get("/priority/{priority}", h.FindByPriority)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Put("/", h.Update)
			r.Patch("/complete", h.Complete)
			r.Delete("/", h.DeleteByID)
		})
	})
}

// FindAll retrieves all tasks.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	web.RespondJSON(w, mLogger, http.StatusOK, h.service.FindAll(r.Context()))
}

// FindByID retrieves a task by ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, terrors.ErrTaskNotFound) {
			mLogger.WarnContext(r.Context(), "Task not found", "ID", id)
			web.RespondJSON(w, mLogger, http.StatusNotFound, fmt.Sprintf("Task with ID %d not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving task", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve task with ID %d", id))
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// FindByStatus retrieves tasks by completion state.
func (h *Handler) FindByStatus(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	completed, ok := web.ParseBool(r, w, mLogger, "completed")
	if !ok {
		return
	}

	list := h.service.FindByStatus(r.Context(), completed)
	h.respondList(w, mLogger, list)
}

// FindByPriority retrieves tasks with the given priority.
func (h *Handler) FindByPriority(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	priority := r.PathValue("priority")

	list := h.service.FindByPriority(r.Context(), priority)
	h.respondList(w, mLogger, list)
}

// Create creates a new task.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var task store.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	created := h.service.Create(r.Context(), task)
	mLogger.InfoContext(r.Context(), "Task created successfully", "ID", created.ID)
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

// Update overwrites every mutable field of an existing task.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	var task store.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.Update(r.Context(), id, task)
	if err != nil {
		if errors.Is(err, terrors.ErrTaskNotFound) {
			mLogger.WarnContext(r.Context(), "Task not found for update", "ID", id)
			web.RespondJSON(w, mLogger, http.StatusNotFound, fmt.Sprintf("Task with ID %d not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error updating task", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to update task with ID %d", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Task updated successfully", "ID", updated.ID)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// Complete marks a task as completed.
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	updated, err := h.service.Complete(r.Context(), id)
	if err != nil {
		if errors.Is(err, terrors.ErrTaskNotFound) {
			mLogger.WarnContext(r.Context(), "Task not found for completion", "ID", id)
			web.RespondJSON(w, mLogger, http.StatusNotFound, fmt.Sprintf("Task with ID %d not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error completing task", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to complete task with ID %d", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Task marked as completed", "ID", updated.ID)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// DeleteByID deletes a task by ID.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	if err := h.service.DeleteByID(r.Context(), id); err != nil {
		if errors.Is(err, terrors.ErrTaskNotFound) {
			mLogger.WarnContext(r.Context(), "Task not found for deletion", "ID", id)
			web.RespondJSON(w, mLogger, http.StatusNotFound, fmt.Sprintf("Task with ID %d not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error deleting task", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to delete task with ID %d", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Task deleted successfully", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}

// respondList mirrors an empty result back with a 404 status, matching the
// collection-endpoint contract for this resource.
func (h *Handler) respondList(w http.ResponseWriter, logger *slog.Logger, list []store.Task) {
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
