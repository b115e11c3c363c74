package services

import (
	"errors"

	"giftcerts/internal/apperr"
	"giftcerts/internal/models"
	"giftcerts/internal/query"
	"giftcerts/internal/repositories"
	"giftcerts/internal/validation"

	"github.com/sirupsen/logrus"
)

// TagService handles tag listings, tag CRUD and the reconciliation of tag
// names referenced by incoming certificates.
type TagService struct {
	repo   repositories.TagRepository
	engine *query.Engine
}

// NewTagService creates a new TagService.
func NewTagService(repo repositories.TagRepository) *TagService {
	return &TagService{
		repo:   repo,
		engine: query.NewEngine(query.TagTable()),
	}
}

// ListTags retrieves one page of live tags.
func (s *TagService) ListTags(raw query.Params) (*Page[models.Tag], error) {
	c, err := s.engine.BuildListing(raw)
	if err != nil {
		return nil, err
	}
	tags, err := s.repo.FindPage(c)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(c)
	if err != nil {
		return nil, err
	}
	return newPage(tags, total, c.Window), nil
}

// GetTagByID retrieves a single live tag by its ID.
func (s *TagService) GetTagByID(id int64) (*models.Tag, error) {
	return s.repo.FindByID(id)
}

// CreateTag validates and persists a standalone tag.
func (s *TagService) CreateTag(tag *models.Tag) error {
	tag.Name = validation.NormalizeWhitespace(tag.Name)
	if !validation.LengthInRange(tag.Name, validation.TagRules.NameMinLen, validation.TagRules.NameMaxLen) {
		return apperr.NewValidation(apperr.CodeInvalidTagName, tag.Name)
	}
	if err := s.repo.Create(tag); err != nil {
		var conflict *apperr.ConflictError
		if errors.As(err, &conflict) {
			return conflict.AsValidation()
		}
		return err
	}
	return nil
}

// DeleteTag soft-deletes a tag by its ID.
func (s *TagService) DeleteTag(id int64) error {
	return s.repo.Delete(id)
}

// Reconcile resolves a certificate's proposed tag entries (name only, id
// ignored) into canonical persisted tag identities. Proposals deduplicate by
// exact normalized name and, after resolution, by tag identity, so case
// variants of one tag collapse to a single entry. Lookups are
// case-insensitive and include soft-deleted tags, which get restored instead
// of duplicated. New names are validated before being persisted; the full
// violation map aborts the enclosing create/update.
func (s *TagService) Reconcile(proposed []models.Tag) ([]models.Tag, error) {
	violations := apperr.Violations{}
	seen := make(map[string]bool, len(proposed))
	resolvedIDs := make(map[int64]bool, len(proposed))
	resolved := make([]models.Tag, 0, len(proposed))

	for _, proposal := range proposed {
		name := validation.NormalizeWhitespace(proposal.Name)
		if seen[name] {
			continue
		}
		seen[name] = true

		tag, err := s.repo.FindByNameIncludingDeleted(name)
		if err != nil {
			return nil, err
		}

		if tag == nil {
			if !validation.LengthInRange(name, validation.TagRules.NameMinLen, validation.TagRules.NameMaxLen) {
				violations.Add(apperr.CodeInvalidTagName, name)
				continue
			}
			created := models.Tag{Name: name}
			if err := s.repo.Create(&created); err == nil {
				resolvedIDs[created.ID] = true
				resolved = append(resolved, created)
				continue
			} else {
				var conflict *apperr.ConflictError
				if !errors.As(err, &conflict) {
					return nil, err
				}
				// Lost the race against a concurrent creation; re-read and
				// treat the winner as the existing tag.
				logrus.Infof("tag %q created concurrently, reusing existing row", name)
				tag, err = s.repo.FindByNameIncludingDeleted(name)
				if err != nil {
					return nil, err
				}
				if tag == nil {
					return nil, conflict
				}
			}
		}

		if resolvedIDs[tag.ID] {
			continue
		}
		resolvedIDs[tag.ID] = true

		if tag.IsDeleted {
			if err := s.repo.Restore(tag.ID); err != nil {
				return nil, err
			}
			tag.IsDeleted = false
		}
		resolved = append(resolved, *tag)
	}

	if !violations.Empty() {
		return nil, apperr.NewValidationMap(violations)
	}
	return resolved, nil
}
