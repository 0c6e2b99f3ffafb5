package service

import (
	"context"
	"errors"

	"karmafeed/internal/models"
	"karmafeed/internal/repository"

	"gorm.io/gorm"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, err
	}
	return user, nil
}

// ResolveByUsername looks up the demo identity for a session login.
// Unknown usernames are a not-found condition, not a signup.
func (s *UserService) ResolveByUsername(ctx context.Context, username string) (*models.User, error) {
	if username == "" {
		return nil, models.NewValidationError("Username is required")
	}
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.AppError{Code: "NOT_FOUND", Message: "User not found"}
		}
		return nil, err
	}
	return user, nil
}
