// Package store holds the in-memory student collection.
package store

import (
	"github.com/mkravets/resource-api/internal/memstore"
	serrors "github.com/mkravets/resource-api/internal/student/errors"
)

// Student represents a student record.
type Student struct {
	ID        int64   `json:"studentId"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Major     string  `json:"major"`
	GPA       float64 `json:"gpa"`
}

// StudentStore is an interface for student storage operations.
type StudentStore interface {
	// FindAll returns all students in insertion order.
	FindAll() []Student

	// FindByID retrieves a student by ID.
	// Returns ErrStudentNotFound if no student exists with the given ID.
	FindByID(id int64) (*Student, error)

	// Filter returns all students matching the predicate, in insertion order.
	Filter(pred func(Student) bool) []Student

	// Create assigns the next identifier and appends the student.
	Create(s Student) Student

	// Update mutates the student with the given ID in place.
	// Returns ErrStudentNotFound if no student exists with the given ID.
	Update(id int64, fn func(*Student)) (*Student, error)

	// DeleteByID removes a student by ID.
	// Returns ErrStudentNotFound if no student exists with the given ID.
	DeleteByID(id int64) error
}

// memStore implements StudentStore on top of a memstore collection.
type memStore struct {
	students *memstore.Store[Student]
}

// NewMemoryStore creates a student store preloaded with the given students.
func NewMemoryStore(seed ...Student) StudentStore {
	s := memstore.New(
		func(st Student) int64 { return st.ID },
		func(st *Student, id int64) { st.ID = id },
	)
	s.Seed(seed...)
	return &memStore{students: s}
}

// SeedData returns the students the process starts with.
func SeedData() []Student {
	return []Student{
		{ID: 1, FirstName: "John", LastName: "Doe", Email: "john@example.com", Major: "Computer Science", GPA: 3.8},
		{ID: 2, FirstName: "Jane", LastName: "Smith", Email: "jane@example.com", Major: "Computer Science", GPA: 3.9},
		{ID: 3, FirstName: "Bob", LastName: "Johnson", Email: "bob@example.com", Major: "Mathematics", GPA: 3.5},
		{ID: 4, FirstName: "Alice", LastName: "Brown", Email: "alice@example.com", Major: "Physics", GPA: 3.6},
		{ID: 5, FirstName: "Charlie", LastName: "Davis", Email: "charlie@example.com", Major: "Computer Science", GPA: 3.4},
	}
}

func (s *memStore) FindAll() []Student {
	return s.students.List()
}

func (s *memStore) FindByID(id int64) (*Student, error) {
	st, ok := s.students.FindByID(id)
	if !ok {
		return nil, serrors.ErrStudentNotFound
	}
	return &st, nil
}

func (s *memStore) Filter(pred func(Student) bool) []Student {
	return s.students.Filter(pred)
}

func (s *memStore) Create(st Student) Student {
	return s.students.Create(st)
}

func (s *memStore) Update(id int64, fn func(*Student)) (*Student, error) {
	updated, ok := s.students.Update(id, fn)
	if !ok {
		return nil, serrors.ErrStudentNotFound
	}
	return &updated, nil
}

func (s *memStore) DeleteByID(id int64) error {
	if !s.students.DeleteByID(id) {
		return serrors.ErrStudentNotFound
	}
	return nil
}
