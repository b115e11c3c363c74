package services

import (
	"giftcerts/internal/models"
	"giftcerts/internal/query"
	"giftcerts/internal/repositories"
)

// UserService handles user listings and reads. Registration and login live
// in AuthService.
type UserService struct {
	repo   repositories.UserRepository
	engine *query.Engine
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{
		repo:   repo,
		engine: query.NewEngine(query.UserTable()),
	}
}

// ListUsers retrieves one page of users.
func (s *UserService) ListUsers(raw query.Params) (*Page[models.User], error) {
	c, err := s.engine.BuildListing(raw)
	if err != nil {
		return nil, err
	}
	users, err := s.repo.FindPage(c)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(c)
	if err != nil {
		return nil, err
	}
	return newPage(users, total, c.Window), nil
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id int64) (*models.User, error) {
	return s.repo.FindByID(id)
}
