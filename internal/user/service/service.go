// Package service provides user-profile business logic.
package service

import (
	"context"
	"strings"

	uerrors "github.com/mkravets/resource-api/internal/user/errors"
	"github.com/mkravets/resource-api/internal/user/store"
)

// UserService defines the methods for managing user profiles.
type UserService interface {
	// FindAll returns all profiles in insertion order.
	FindAll(ctx context.Context) []store.UserProfile

	// FindByID retrieves a profile by ID.
	// Returns ErrUserNotFound if no profile exists with the given ID.
	FindByID(ctx context.Context, id int64) (*store.UserProfile, error)

	// FindByUsername retrieves the first profile with the given username,
	// matched case-insensitively.
	// Returns ErrUserNotFound if no profile matches.
	FindByUsername(ctx context.Context, username string) (*store.UserProfile, error)

	// FindByCountry returns profiles from the given country, matched
	// case-insensitively, in insertion order.
	FindByCountry(ctx context.Context, country string) []store.UserProfile

	// FindByAgeRange returns profiles aged within [minAge, maxAge], inclusive.
	FindByAgeRange(ctx context.Context, minAge, maxAge int) []store.UserProfile

	// Create assigns the next identifier and adds the profile.
	// New profiles are always created active.
	Create(ctx context.Context, u store.UserProfile) store.UserProfile

	// Update overwrites every mutable field except the active flag.
	// Returns ErrUserNotFound if no profile exists with the given ID.
	Update(ctx context.Context, id int64, u store.UserProfile) (*store.UserProfile, error)

	// SetActive overwrites only the active flag.
	// Returns ErrUserNotFound if no profile exists with the given ID.
	SetActive(ctx context.Context, id int64, active bool) (*store.UserProfile, error)

	// DeleteByID removes a profile by ID.
	// Returns ErrUserNotFound if no profile exists with the given ID.
	DeleteByID(ctx context.Context, id int64) error
}

// Service implements UserService.
type Service struct {
	repository store.UserStore
}

// NewService creates a new UserService with the provided store.
func NewService(repo store.UserStore) *Service {
	return &Service{repository: repo}
}

func (s *Service) FindAll(_ context.Context) []store.UserProfile {
	return s.repository.FindAll()
}

func (s *Service) FindByID(_ context.Context, id int64) (*store.UserProfile, error) {
	return s.repository.FindByID(id)
}

func (s *Service) FindByUsername(_ context.Context, username string) (*store.UserProfile, error) {
	matches := s.repository.Filter(func(u store.UserProfile) bool {
		return strings.EqualFold(u.Username, username)
	})
	if len(matches) == 0 {
		return nil, uerrors.ErrUserNotFound
	}
	return &matches[0], nil
}

func (s *Service) FindByCountry(_ context.Context, country string) []store.UserProfile {
	return s.repository.Filter(func(u store.UserProfile) bool {
		return strings.EqualFold(u.Country, country)
	})
}

// FindByAgeRange treats both bounds as inclusive.
func (s *Service) FindByAgeRange(_ context.Context, minAge, maxAge int) []store.UserProfile {
	return s.repository.Filter(func(u store.UserProfile) bool {
		return u.Age >= minAge && u.Age <= maxAge
	})
}

// Create adds a new profile. The active flag defaults to true regardless of
// the submitted value.
func (s *Service) Create(_ context.Context, user store.UserProfile) store.UserProfile {
	user.Active = true
	return s.repository.Create(user)
}

// Update overwrites every field except the identifier and the active flag;
// activation state changes only through SetActive.
func (s *Service) Update(_ context.Context, id int64, user store.UserProfile) (*store.UserProfile, error) {
	return s.repository.Update(id, func(u *store.UserProfile) {
		u.Username = user.Username
		u.Email = user.Email
		u.FullName = user.FullName
		u.Age = user.Age
		u.Country = user.Country
		u.Bio = user.Bio
	})
}

func (s *Service) SetActive(_ context.Context, id int64, active bool) (*store.UserProfile, error) {
	return s.repository.Update(id, func(u *store.UserProfile) {
		u.Active = active
	})
}

func (s *Service) DeleteByID(_ context.Context, id int64) error {
	return s.repository.DeleteByID(id)
}
