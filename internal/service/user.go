package service

import (
	"context"
	"errors"

	"github.com/perfpulse/perfpulse-go/internal/crypto"
	"github.com/perfpulse/perfpulse-go/internal/model"
	"github.com/perfpulse/perfpulse-go/internal/repository"
)

// UserService handles profile reads and updates.
type UserService struct {
	users repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Get retrieves a user profile by ID.
func (s *UserService) Get(ctx context.Context, id int64) (model.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}
	return user.Response(), nil
}

// Update applies a partial profile update. Empty request fields are left
// untouched. Changing the email to one already registered fails with
// ErrEmailTaken.
func (s *UserService) Update(ctx context.Context, id int64, req model.UpdateUserRequest) (model.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	if req.Email != "" && req.Email != user.Email {
		if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
			return model.UserResponse{}, ErrEmailTaken
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, err
		}
		user.Email = req.Email
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Department != "" {
		user.Department = req.Department
	}
	if req.Position != "" {
		user.Position = req.Position
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Password != "" {
		hash, err := crypto.HashPassword(req.Password)
		if err != nil {
			return model.UserResponse{}, err
		}
		user.AuthHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.UserResponse{}, ErrEmailTaken
		}
		return model.UserResponse{}, err
	}

	return user.Response(), nil
}
