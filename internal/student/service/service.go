// Package service provides student-related business logic.
package service

import (
	"context"
	"strings"

	"github.com/mkravets/resource-api/internal/student/store"
)

// StudentService defines the methods for managing students.
type StudentService interface {
	// FindAll returns all students in insertion order.
	FindAll(ctx context.Context) []store.Student

	// FindByID retrieves a student by ID.
	// Returns ErrStudentNotFound if no student exists with the given ID.
	FindByID(ctx context.Context, id int64) (*store.Student, error)

	// FindByMajor returns students with the given major, matched
	// case-insensitively, in insertion order.
	FindByMajor(ctx context.Context, major string) []store.Student

	// FilterByGpa returns students whose GPA is at least the given threshold.
	FilterByGpa(ctx context.Context, minGpa float64) []store.Student

	// Register assigns the next identifier and adds the student.
	Register(ctx context.Context, s store.Student) store.Student

	// Update overwrites every mutable field of the student with the given ID.
	// Returns ErrStudentNotFound if no student exists with the given ID.
	Update(ctx context.Context, id int64, s store.Student) (*store.Student, error)

	// DeleteByID removes a student by ID.
	// Returns ErrStudentNotFound if no student exists with the given ID.
	DeleteByID(ctx context.Context, id int64) error
}

// Service implements StudentService.
type Service struct {
	repository store.StudentStore
}

// NewService creates a new StudentService with the provided store.
func NewService(repo store.StudentStore) *Service {
	return &Service{repository: repo}
}

func (s *Service) FindAll(_ context.Context) []store.Student {
	return s.repository.FindAll()
}

func (s *Service) FindByID(_ context.Context, id int64) (*store.Student, error) {
	return s.repository.FindByID(id)
}

func (s *Service) FindByMajor(_ context.Context, major string) []store.Student {
	return s.repository.Filter(func(st store.Student) bool {
		return strings.EqualFold(st.Major, major)
	})
}

// FilterByGpa returns students with GPA greater than or equal to the threshold.
func (s *Service) FilterByGpa(_ context.Context, minGpa float64) []store.Student {
	return s.repository.Filter(func(st store.Student) bool {
		return st.GPA >= minGpa
	})
}

func (s *Service) Register(_ context.Context, student store.Student) store.Student {
	return s.repository.Create(student)
}

// Update overwrites every field except the identifier, even when the new
// values repeat the current ones.
func (s *Service) Update(_ context.Context, id int64, student store.Student) (*store.Student, error) {
	return s.repository.Update(id, func(st *store.Student) {
		st.FirstName = student.FirstName
		st.LastName = student.LastName
		st.Email = student.Email
		st.Major = student.Major
		st.GPA = student.GPA
	})
}

func (s *Service) DeleteByID(_ context.Context, id int64) error {
	return s.repository.DeleteByID(id)
}
