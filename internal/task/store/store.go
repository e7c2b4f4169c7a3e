// Package store holds the in-memory task collection.
package store

import (
	"github.com/mkravets/resource-api/internal/memstore"
	terrors "github.com/mkravets/resource-api/internal/task/errors"
)

// Task represents a task record. DueDate is an ISO date string; the resource
// does not interpret it.
type Task struct {
	ID          int64  `json:"taskId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate"`
}

// TaskStore is an interface for task storage operations.
type TaskStore interface {
	// FindAll returns all tasks in insertion order.
	FindAll() []Task

	// FindByID retrieves a task by ID.
	// Returns ErrTaskNotFound if no task exists with the given ID.
	FindByID(id int64) (*Task, error)

	// Filter returns all tasks matching the predicate, in insertion order.
	Filter(pred func(Task) bool) []Task

	// Create assigns the next identifier and appends the task.
	Create(t Task) Task

	// Update mutates the task with the given ID in place.
	// Returns ErrTaskNotFound if no task exists with the given ID.
	Update(id int64, fn func(*Task)) (*Task, error)

	// DeleteByID removes a task by ID.
	// Returns ErrTaskNotFound if no task exists with the given ID.
	DeleteByID(id int64) error
}

type memStore struct {
	tasks *memstore.Store[Task]
}

// NewMemoryStore creates a task store preloaded with the given tasks.
func NewMemoryStore(seed ...Task) TaskStore {
	s := memstore.New(
		func(t Task) int64 { return t.ID },
		func(t *Task, id int64) { t.ID = id },
	)
	s.Seed(seed...)
	return &memStore{tasks: s}
}

// SeedData returns the tasks the process starts with.
func SeedData() []Task {
	return []Task{
		{ID: 1, Title: "Complete Project", Description: "Finish the backend project", Completed: false, Priority: "HIGH", DueDate: "2026-02-15"},
		{ID: 2, Title: "Review Code", Description: "Review team's code changes", Completed: false, Priority: "MEDIUM", DueDate: "2026-02-12"},
		{ID: 3, Title: "Update Documentation", Description: "Update API documentation", Completed: true, Priority: "LOW", DueDate: "2026-02-10"},
		{ID: 4, Title: "Fix Bugs", Description: "Fix reported bugs in the application", Completed: false, Priority: "HIGH", DueDate: "2026-02-14"},
		{ID: 5, Title: "Team Meeting", Description: "Attend weekly team meeting", Completed: false, Priority: "MEDIUM", DueDate: "2026-02-11"},
	}
}

func (s *memStore) FindAll() []Task {
	return s.tasks.List()
}

func (s *memStore) FindByID(id int64) (*Task, error) {
	t, ok := s.tasks.FindByID(id)
	if !ok {
		return nil, terrors.ErrTaskNotFound
	}
	return &t, nil
}

func (s *memStore) Filter(pred func(Task) bool) []Task {
	return s.tasks.Filter(pred)
}

func (s *memStore) Create(t Task) Task {
	return s.tasks.Create(t)
}

func (s *memStore) Update(id int64, fn func(*Task)) (*Task, error) {
	updated, ok := s.tasks.Update(id, fn)
	if !ok {
		return nil, terrors.ErrTaskNotFound
	}
	return &updated, nil
}

func (s *memStore) DeleteByID(id int64) error {
	if !s.tasks.DeleteByID(id) {
		return terrors.ErrTaskNotFound
	}
	return nil
}
