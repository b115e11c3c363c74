package repositories

import (
	"giftcerts/internal/models"
	"giftcerts/internal/query"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	FindPage(c query.Criteria) ([]models.User, error)
	Count(c query.Criteria) (int64, error)
	FindByID(id int64) (*models.User, error)
	// FindByUsername resolves a user by exact username. Absence is
	// (nil, nil), not an error.
	FindByUsername(username string) (*models.User, error)
	Create(user *models.User) error
	// EnsureRole returns the role with the given name, creating it if absent.
	EnsureRole(name string) (*models.Role, error)
}
