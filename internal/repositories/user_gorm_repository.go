package repositories

import (
	"errors"
	"fmt"

	"giftcerts/internal/apperr"
	"giftcerts/internal/models"
	"giftcerts/internal/query"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// FindPage retrieves one page of users in id order.
func (r *GORMUserRepository) FindPage(c query.Criteria) ([]models.User, error) {
	var users []models.User
	db := applyPredicates(r.db.Model(&models.User{}), c.Predicates)
	db = applyWindow(applyOrdering(db, c.Sort), c.Window)
	if err := db.Preload("Role").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Count counts all users matching the criteria's predicate set.
func (r *GORMUserRepository) Count(c query.Criteria) (int64, error) {
	var total int64
	db := applyPredicates(r.db.Model(&models.User{}), c.Predicates)
	if err := db.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return total, nil
}

// FindByID retrieves a user by their ID.
func (r *GORMUserRepository) FindByID(id int64) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Role").First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("user", id)
		}
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return &user, nil
}

// FindByUsername retrieves a user by their username. Returns (nil, nil) when
// absent.
func (r *GORMUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Role").First(&user, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by username %s: %w", username, err)
	}
	return &user, nil
}

// Create inserts a new user. A unique-constraint violation on the username
// surfaces as a duplicated-name conflict.
func (r *GORMUserRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.NewConflict(apperr.CodeDuplicatedUserName, user.Username)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// EnsureRole returns the role with the given name, creating it if absent.
func (r *GORMUserRepository) EnsureRole(name string) (*models.Role, error) {
	var role models.Role
	err := r.db.Where(models.Role{Name: name}).FirstOrCreate(&role).Error
	if err != nil {
		return nil, fmt.Errorf("failed to ensure role %s: %w", name, err)
	}
	return &role, nil
}
