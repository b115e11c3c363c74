package repositories

import (
	"sort"
	"strings"
	"sync"

	"giftcerts/internal/apperr"
	"giftcerts/internal/models"
	"giftcerts/internal/query"
)

// MockTagRepository is an in-memory implementation of TagRepository.
type MockTagRepository struct {
	tags   map[int64]models.Tag
	nextID int64
	mu     sync.RWMutex
}

// NewMockTagRepository creates a new instance of MockTagRepository.
func NewMockTagRepository() *MockTagRepository {
	return &MockTagRepository{
		tags:   make(map[int64]models.Tag),
		nextID: 1,
	}
}

// FindPage returns one page of tags in id order.
func (r *MockTagRepository) FindPage(c query.Criteria) ([]models.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := r.filtered(c.Predicates)
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	offset := c.Window.Offset()
	if offset >= len(matched) {
		return []models.Tag{}, nil
	}
	end := offset + c.Window.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

// Count counts tags matching the criteria's predicate set.
func (r *MockTagRepository) Count(c query.Criteria) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.filtered(c.Predicates))), nil
}

func (r *MockTagRepository) filtered(predicates []query.Predicate) []models.Tag {
	matched := make([]models.Tag, 0, len(r.tags))
	for _, tag := range r.tags {
		excluded := false
		for _, p := range predicates {
			if p.Kind == query.KindNotDeleted && tag.IsDeleted {
				excluded = true
				break
			}
		}
		if !excluded {
			matched = append(matched, tag)
		}
	}
	return matched
}

// FindByID returns a live tag by its ID.
func (r *MockTagRepository) FindByID(id int64) (*models.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tag, ok := r.tags[id]
	if !ok || tag.IsDeleted {
		return nil, apperr.NewNotFound("tag", id)
	}
	return &tag, nil
}

// FindByNameIncludingDeleted resolves a tag by case-insensitive name,
// soft-deleted rows included.
func (r *MockTagRepository) FindByNameIncludingDeleted(name string) (*models.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, tag := range r.tags {
		if strings.EqualFold(tag.Name, name) {
			found := tag
			return &found, nil
		}
	}
	return nil, nil
}

// Create adds a new tag, rejecting names that collide case-insensitively.
func (r *MockTagRepository) Create(tag *models.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.tags {
		if strings.EqualFold(existing.Name, tag.Name) {
			return apperr.NewConflict(apperr.CodeDuplicatedTagName, tag.Name)
		}
	}
	if tag.ID == 0 {
		tag.ID = r.nextID
		r.nextID++
	}
	r.tags[tag.ID] = *tag
	return nil
}

// Restore clears the soft-delete flag.
func (r *MockTagRepository) Restore(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tag, ok := r.tags[id]
	if !ok {
		return apperr.NewNotFound("tag", id)
	}
	tag.IsDeleted = false
	r.tags[id] = tag
	return nil
}

// Delete soft-deletes a tag.
func (r *MockTagRepository) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tag, ok := r.tags[id]
	if !ok || tag.IsDeleted {
		return apperr.NewNotFound("tag", id)
	}
	tag.IsDeleted = true
	r.tags[id] = tag
	return nil
}
