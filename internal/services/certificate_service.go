package services

import (
	"errors"
	"strconv"

	"giftcerts/internal/apperr"
	"giftcerts/internal/models"
	"giftcerts/internal/query"
	"giftcerts/internal/repositories"
	"giftcerts/internal/validation"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// CertificateService handles business logic related to gift certificates:
// the listing pipeline, create/update flows with aggregated field validation
// and tag reconciliation, and soft deletion.
type CertificateService struct {
	repo   repositories.CertificateRepository
	tags   *TagService
	engine *query.Engine
}

// NewCertificateService creates a new CertificateService.
func NewCertificateService(repo repositories.CertificateRepository, tags *TagService) *CertificateService {
	return &CertificateService{
		repo:   repo,
		tags:   tags,
		engine: query.NewEngine(query.CertificateTable()),
	}
}

// ListCertificates runs the raw parameters through normalization, pagination
// resolution and criteria building, then issues the page and count queries
// over the identical predicate set.
func (s *CertificateService) ListCertificates(raw query.Params) (*Page[models.Certificate], error) {
	c, err := s.engine.BuildListing(raw)
	if err != nil {
		return nil, err
	}
	certificates, err := s.repo.FindPage(c)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(c)
	if err != nil {
		return nil, err
	}
	return newPage(certificates, total, c.Window), nil
}

// GetCertificateByID retrieves a single live certificate.
func (s *CertificateService) GetCertificateByID(id int64) (*models.Certificate, error) {
	return s.repo.FindByID(id)
}

// CreateCertificate validates all fields at once, reconciles the proposed
// tags and persists the certificate. Any violation aborts the whole create;
// nothing is saved partially.
func (s *CertificateService) CreateCertificate(certificate *models.Certificate) error {
	certificate.Name = validation.NormalizeWhitespace(certificate.Name)
	certificate.Description = validation.NormalizeWhitespace(certificate.Description)

	if violations := validateCertificateFields(certificate); !violations.Empty() {
		return apperr.NewValidationMap(violations)
	}

	tags, err := s.tags.Reconcile(certificate.Tags)
	if err != nil {
		return err
	}
	certificate.Tags = tags

	if err := s.repo.Create(certificate); err != nil {
		var conflict *apperr.ConflictError
		if errors.As(err, &conflict) {
			return conflict.AsValidation()
		}
		return err
	}
	logrus.Infof("created certificate %d (%s)", certificate.ID, certificate.Name)
	return nil
}

// UpdateCertificate replaces all mutable fields of an existing certificate.
func (s *CertificateService) UpdateCertificate(id int64, payload *models.Certificate) (*models.Certificate, error) {
	existing, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	payload.Name = validation.NormalizeWhitespace(payload.Name)
	payload.Description = validation.NormalizeWhitespace(payload.Description)
	if violations := validateCertificateFields(payload); !violations.Empty() {
		return nil, apperr.NewValidationMap(violations)
	}

	tags, err := s.tags.Reconcile(payload.Tags)
	if err != nil {
		return nil, err
	}

	existing.Name = payload.Name
	existing.Description = payload.Description
	existing.Price = payload.Price
	existing.Duration = payload.Duration
	existing.Tags = tags

	if err := s.saveExisting(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// CertificatePatch carries the fields of a partial update; nil fields stay
// untouched. A nil Tags slice leaves the tag set alone, an empty one clears
// it.
type CertificatePatch struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Duration    *int             `json:"duration"`
	Tags        []models.Tag     `json:"tags"`
}

// PatchCertificate applies a partial update. Only supplied fields are
// validated, with all their violations aggregated before anything is saved.
func (s *CertificateService) PatchCertificate(id int64, patch CertificatePatch) (*models.Certificate, error) {
	existing, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	violations := apperr.Violations{}
	if patch.Name != nil {
		name := validation.NormalizeWhitespace(*patch.Name)
		if !validation.LengthInRange(name, validation.CertificateRules.NameMinLen, validation.CertificateRules.NameMaxLen) {
			violations.Add(apperr.CodeInvalidCertificateName, name)
		} else {
			existing.Name = name
		}
	}
	if patch.Description != nil {
		description := validation.NormalizeWhitespace(*patch.Description)
		if !validation.LengthInRange(description, validation.CertificateRules.DescMinLen, validation.CertificateRules.DescMaxLen) {
			violations.Add(apperr.CodeInvalidCertificateDescription, description)
		} else {
			existing.Description = description
		}
	}
	if patch.Price != nil {
		if !priceValid(*patch.Price) {
			violations.Add(apperr.CodeInvalidCertificatePrice, patch.Price.String())
		} else {
			existing.Price = *patch.Price
		}
	}
	if patch.Duration != nil {
		if !validation.IntInRange(*patch.Duration, validation.CertificateRules.DurationMin, validation.CertificateRules.DurationMax) {
			violations.Add(apperr.CodeInvalidCertificateDuration, strconv.Itoa(*patch.Duration))
		} else {
			existing.Duration = *patch.Duration
		}
	}
	if !violations.Empty() {
		return nil, apperr.NewValidationMap(violations)
	}

	if patch.Tags != nil {
		tags, err := s.tags.Reconcile(patch.Tags)
		if err != nil {
			return nil, err
		}
		existing.Tags = tags
	}

	if err := s.saveExisting(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteCertificate soft-deletes a certificate by its ID.
func (s *CertificateService) DeleteCertificate(id int64) error {
	return s.repo.Delete(id)
}

func (s *CertificateService) saveExisting(certificate *models.Certificate) error {
	if err := s.repo.Update(certificate); err != nil {
		var conflict *apperr.ConflictError
		if errors.As(err, &conflict) {
			return conflict.AsValidation()
		}
		return err
	}
	return nil
}

// validateCertificateFields runs every field check and aggregates the
// failures; callers never see only the first problem.
func validateCertificateFields(c *models.Certificate) apperr.Violations {
	rules := validation.CertificateRules
	violations := apperr.Violations{}

	if !validation.LengthInRange(c.Name, rules.NameMinLen, rules.NameMaxLen) {
		violations.Add(apperr.CodeInvalidCertificateName, c.Name)
	}
	if !validation.LengthInRange(c.Description, rules.DescMinLen, rules.DescMaxLen) {
		violations.Add(apperr.CodeInvalidCertificateDescription, c.Description)
	}
	if !priceValid(c.Price) {
		violations.Add(apperr.CodeInvalidCertificatePrice, c.Price.String())
	}
	if !validation.IntInRange(c.Duration, rules.DurationMin, rules.DurationMax) {
		violations.Add(apperr.CodeInvalidCertificateDuration, strconv.Itoa(c.Duration))
	}
	return violations
}

func priceValid(price decimal.Decimal) bool {
	rules := validation.CertificateRules
	return validation.PriceScaleValid(price) &&
		validation.PriceInRange(price, rules.PriceMin, rules.PriceMax)
}
