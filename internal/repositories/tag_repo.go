package repositories

import (
	"giftcerts/internal/models"
	"giftcerts/internal/query"
)

// TagRepository defines the interface for tag data access. Name lookups are
// case-insensitive and include soft-deleted rows so reconciliation can
// restore them instead of duplicating.
type TagRepository interface {
	FindPage(c query.Criteria) ([]models.Tag, error)
	Count(c query.Criteria) (int64, error)
	// FindByID resolves a live (non-deleted) tag.
	FindByID(id int64) (*models.Tag, error)
	// FindByNameIncludingDeleted resolves a tag by case-insensitive name,
	// soft-deleted rows included. Absence is (nil, nil), not an error.
	FindByNameIncludingDeleted(name string) (*models.Tag, error)
	Create(tag *models.Tag) error
	// Restore clears the soft-delete flag.
	Restore(id int64) error
	Delete(id int64) error
}
