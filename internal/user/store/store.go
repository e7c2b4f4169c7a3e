// Package store holds the in-memory user-profile collection.
package store

import (
	"github.com/mkravets/resource-api/internal/memstore"
	uerrors "github.com/mkravets/resource-api/internal/user/errors"
)

// UserProfile represents a user profile record.
type UserProfile struct {
	ID       int64  `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Age      int    `json:"age"`
	Country  string `json:"country"`
	Bio      string `json:"bio"`
	Active   bool   `json:"active"`
}

// UserStore is an interface for user-profile storage operations.
type UserStore interface {
	// FindAll returns all profiles in insertion order.
	FindAll() []UserProfile

	// FindByID retrieves a profile by ID.
	// Returns ErrUserNotFound if no profile exists with the given ID.
	FindByID(id int64) (*UserProfile, error)

	// Filter returns all profiles matching the predicate, in insertion order.
	Filter(pred func(UserProfile) bool) []UserProfile

	// Create assigns the next identifier and appends the profile.
	Create(u UserProfile) UserProfile

	// Update mutates the profile with the given ID in place.
	// Returns ErrUserNotFound if no profile exists with the given ID.
	Update(id int64, fn func(*UserProfile)) (*UserProfile, error)

	// DeleteByID removes a profile by ID.
	// Returns ErrUserNotFound if no profile exists with the given ID.
	DeleteByID(id int64) error
}

type memStore struct {
	users *memstore.Store[UserProfile]
}

// NewMemoryStore creates a user store preloaded with the given profiles.
func NewMemoryStore(seed ...UserProfile) UserStore {
	s := memstore.New(
		func(u UserProfile) int64 { return u.ID },
		func(u *UserProfile, id int64) { u.ID = id },
	)
	s.Seed(seed...)
	return &memStore{users: s}
}

// SeedData returns the user profiles the process starts with.
func SeedData() []UserProfile {
	return []UserProfile{
		{ID: 1, Username: "john_doe", Email: "john@example.com", FullName: "John Doe", Age: 28, Country: "USA", Bio: "Software Developer passionate about coding", Active: true},
		{ID: 2, Username: "jane_smith", Email: "jane@example.com", FullName: "Jane Smith", Age: 32, Country: "Canada", Bio: "Data Scientist and AI enthusiast", Active: true},
		{ID: 3, Username: "bob_wilson", Email: "bob@example.com", FullName: "Bob Wilson", Age: 45, Country: "USA", Bio: "Project Manager with 15 years experience", Active: true},
		{ID: 4, Username: "alice_brown", Email: "alice@example.com", FullName: "Alice Brown", Age: 26, Country: "UK", Bio: "Full-stack developer", Active: false},
		{ID: 5, Username: "charlie_davis", Email: "charlie@example.com", FullName: "Charlie Davis", Age: 35, Country: "Australia", Bio: "DevOps Engineer", Active: true},
	}
}

func (s *memStore) FindAll() []UserProfile {
	return s.users.List()
}

func (s *memStore) FindByID(id int64) (*UserProfile, error) {
	u, ok := s.users.FindByID(id)
	if !ok {
		return nil, uerrors.ErrUserNotFound
	}
	return &u, nil
}

func (s *memStore) Filter(pred func(UserProfile) bool) []UserProfile {
	return s.users.Filter(pred)
}

func (s *memStore) Create(u UserProfile) UserProfile {
	return s.users.Create(u)
}

func (s *memStore) Update(id int64, fn func(*UserProfile)) (*UserProfile, error) {
	updated, ok := s.users.Update(id, fn)
	if !ok {
		return nil, uerrors.ErrUserNotFound
	}
	return &updated, nil
}

func (s *memStore) DeleteByID(id int64) error {
	if !s.users.DeleteByID(id) {
		return uerrors.ErrUserNotFound
	}
	return nil
}
