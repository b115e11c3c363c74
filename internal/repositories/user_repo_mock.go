package repositories

import (
	"sort"
	"sync"

	"giftcerts/internal/apperr"
	"giftcerts/internal/models"
	"giftcerts/internal/query"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users      map[int64]models.User
	roles      map[string]models.Role
	nextID     int64
	nextRoleID int64
	mu         sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:      make(map[int64]models.User),
		roles:      make(map[string]models.Role),
		nextID:     1,
		nextRoleID: 1,
	}
}

// FindPage returns one page of users in id order.
func (r *MockUserRepository) FindPage(c query.Criteria) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]models.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	offset := c.Window.Offset()
	if offset >= len(users) {
		return []models.User{}, nil
	}
	end := offset + c.Window.Limit
	if end > len(users) {
		end = len(users)
	}
	return users[offset:end], nil
}

// Count counts all users.
func (r *MockUserRepository) Count(c query.Criteria) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

// FindByID returns a user by their ID.
func (r *MockUserRepository) FindByID(id int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, apperr.NewNotFound("user", id)
	}
	return &user, nil
}

// FindByUsername returns a user by their username, (nil, nil) when absent.
func (r *MockUserRepository) FindByUsername(username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Username == username {
			found := user
			return &found, nil
		}
	}
	return nil, nil
}

// Create adds a new user.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == user.Username {
			return apperr.NewConflict(apperr.CodeDuplicatedUserName, user.Username)
		}
	}
	if user.ID == 0 {
		user.ID = r.nextID
		r.nextID++
	}
	r.users[user.ID] = *user
	return nil
}

// EnsureRole returns the role with the given name, creating it if absent.
func (r *MockUserRepository) EnsureRole(name string) (*models.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if role, ok := r.roles[name]; ok {
		return &role, nil
	}
	role := models.Role{ID: r.nextRoleID, Name: name}
	r.nextRoleID++
	r.roles[name] = role
	return &role, nil
}
