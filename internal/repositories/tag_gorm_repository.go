package repositories

import (
	"errors"
	"fmt"
	"strings"

	"giftcerts/internal/apperr"
	"giftcerts/internal/models"
	"giftcerts/internal/query"

	"gorm.io/gorm"
)

// GORMTagRepository is a GORM implementation of TagRepository.
type GORMTagRepository struct {
	db *gorm.DB
}

// NewGORMTagRepository creates a new instance of GORMTagRepository.
func NewGORMTagRepository(db *gorm.DB) *GORMTagRepository {
	return &GORMTagRepository{
		db: db,
	}
}

// FindPage retrieves one page of tags matching the criteria.
func (r *GORMTagRepository) FindPage(c query.Criteria) ([]models.Tag, error) {
	var tags []models.Tag
	db := applyPredicates(r.db.Model(&models.Tag{}), c.Predicates)
	db = applyWindow(applyOrdering(db, c.Sort), c.Window)
	if err := db.Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// Count counts all tags matching the criteria's predicate set.
func (r *GORMTagRepository) Count(c query.Criteria) (int64, error) {
	var total int64
	db := applyPredicates(r.db.Model(&models.Tag{}), c.Predicates)
	if err := db.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count tags: %w", err)
	}
	return total, nil
}

// FindByID retrieves a live tag by its ID.
func (r *GORMTagRepository) FindByID(id int64) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.First(&tag, "id = ? AND is_deleted = ?", id, false).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("tag", id)
		}
		return nil, fmt.Errorf("failed to get tag by ID %d: %w", id, err)
	}
	return &tag, nil
}

// FindByNameIncludingDeleted resolves a tag by case-insensitive name,
// soft-deleted rows included. Returns (nil, nil) when absent.
func (r *GORMTagRepository) FindByNameIncludingDeleted(name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.First(&tag, "LOWER(name) = ?", strings.ToLower(name)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tag by name %q: %w", name, err)
	}
	return &tag, nil
}

// Create inserts a new tag. A unique-constraint violation on the name
// surfaces as a duplicated-name conflict.
func (r *GORMTagRepository) Create(tag *models.Tag) error {
	if err := r.db.Create(tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.NewConflict(apperr.CodeDuplicatedTagName, tag.Name)
		}
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return nil
}

// Restore clears the soft-delete flag. Restoring an already-active tag is a
// no-op.
func (r *GORMTagRepository) Restore(id int64) error {
	err := r.db.Model(&models.Tag{}).Where("id = ?", id).
		Update("is_deleted", false).Error
	if err != nil {
		return fmt.Errorf("failed to restore tag %d: %w", id, err)
	}
	return nil
}

// Delete soft-deletes a tag by setting its flag.
func (r *GORMTagRepository) Delete(id int64) error {
	res := r.db.Model(&models.Tag{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return fmt.Errorf("failed to delete tag %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NewNotFound("tag", id)
	}
	return nil
}
