// Package service provides task-related business logic.
package service

import (
	"context"
	"strings"

	"github.com/mkravets/resource-api/internal/task/store"
)

// TaskService defines the methods for managing tasks.
type TaskService interface {
	// FindAll returns all tasks in insertion order.
	FindAll(ctx context.Context) []store.Task

	// FindByID retrieves a task by ID.
	// Returns ErrTaskNotFound if no task exists with the given ID.
	FindByID(ctx context.Context, id int64) (*store.Task, error)

	// FindByStatus returns tasks with the given completion state.
	FindByStatus(ctx context.Context, completed bool) []store.Task

	// FindByPriority returns tasks with the given priority, matched
	// case-insensitively, in insertion order.
	FindByPriority(ctx context.Context, priority string) []store.Task

	// Create assigns the next identifier and adds the task.
	Create(ctx context.Context, t store.Task) store.Task

	// Update overwrites every mutable field of the task with the given ID.
	// Returns ErrTaskNotFound if no task exists with the given ID.
	Update(ctx context.Context, id int64, t store.Task) (*store.Task, error)

	// Complete marks the task with the given ID as completed, leaving all
	// other fields untouched.
	// Returns ErrTaskNotFound if no task exists with the given ID.
	Complete(ctx context.Context, id int64) (*store.Task, error)

	// DeleteByID removes a task by ID.
	// Returns ErrTaskNotFound if no task exists with the given ID.
	DeleteByID(ctx context.Context, id int64) error
}

// Service implements TaskService.
type Service struct {
	repository store.TaskStore
}

// NewService creates a new TaskService with the provided store.
func NewService(repo store.TaskStore) *Service {
	return &Service{repository: repo}
}

func (s *Service) FindAll(_ context.Context) []store.Task {
	return s.repository.FindAll()
}

func (s *Service) FindByID(_ context.Context, id int64) (*store.Task, error) {
	return s.repository.FindByID(id)
}

func (s *Service) FindByStatus(_ context.Context, completed bool) []store.Task {
	return s.repository.Filter(func(t store.Task) bool {
		return t.Completed == completed
	})
}

func (s *Service) FindByPriority(_ context.Context, priority string) []store.Task {
	return s.repository.Filter(func(t store.Task) bool {
		return strings.EqualFold(t.Priority, priority)
	})
}

func (s *Service) Create(_ context.Context, task store.Task) store.Task {
	return s.repository.Create(task)
}

// Update overwrites every field except the identifier.
func (s *Service) Update(_ context.Context, id int64, task store.Task) (*store.Task, error) {
	return s.repository.Update(id, func(t *store.Task) {
		t.Title = task.Title
		t.Description = task.Description
		t.Completed = task.Completed
		t.Priority = task.Priority
		t.DueDate = task.DueDate
	})
}

func (s *Service) Complete(_ context.Context, id int64) (*store.Task, error) {
	return s.repository.Update(id, func(t *store.Task) {
		t.Completed = true
	})
}

func (s *Service) DeleteByID(_ context.Context, id int64) error {
	return s.repository.DeleteByID(id)
}
