package repositories

import (
	"errors"
	"fmt"

	"giftcerts/internal/apperr"
	"giftcerts/internal/models"
	"giftcerts/internal/query"

	"gorm.io/gorm"
)

// GORMCertificateRepository is a GORM implementation of
// CertificateRepository.
type GORMCertificateRepository struct {
	db *gorm.DB
}

// NewGORMCertificateRepository creates a new instance of
// GORMCertificateRepository.
func NewGORMCertificateRepository(db *gorm.DB) *GORMCertificateRepository {
	return &GORMCertificateRepository{
		db: db,
	}
}

// FindPage retrieves one page of certificates matching the criteria.
func (r *GORMCertificateRepository) FindPage(c query.Criteria) ([]models.Certificate, error) {
	var certificates []models.Certificate
	db := applyPredicates(r.db.Model(&models.Certificate{}), c.Predicates)
	db = applyWindow(applyOrdering(db, c.Sort), c.Window)
	if err := db.Preload("Tags", "is_deleted = ?", false).Find(&certificates).Error; err != nil {
		return nil, fmt.Errorf("failed to list certificates: %w", err)
	}
	return certificates, nil
}

// Count counts all certificates matching the criteria's predicate set,
// ignoring its ordering and window.
func (r *GORMCertificateRepository) Count(c query.Criteria) (int64, error) {
	var total int64
	db := applyPredicates(r.db.Model(&models.Certificate{}), c.Predicates)
	if err := db.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count certificates: %w", err)
	}
	return total, nil
}

// FindByID retrieves a live certificate by its ID.
func (r *GORMCertificateRepository) FindByID(id int64) (*models.Certificate, error) {
	var certificate models.Certificate
	err := r.db.Preload("Tags", "is_deleted = ?", false).
		First(&certificate, "id = ? AND is_deleted = ?", id, false).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("certificate", id)
		}
		return nil, fmt.Errorf("failed to get certificate by ID %d: %w", id, err)
	}
	return &certificate, nil
}

// ExistsByID reports whether a live certificate with the ID exists.
func (r *GORMCertificateRepository) ExistsByID(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Certificate{}).
		Where("id = ? AND is_deleted = ?", id, false).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check certificate %d: %w", id, err)
	}
	return count > 0, nil
}

// Create inserts a new certificate. A unique-constraint violation on the
// name surfaces as a duplicated-name conflict.
func (r *GORMCertificateRepository) Create(certificate *models.Certificate) error {
	if err := r.db.Create(certificate).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.NewConflict(apperr.CodeDuplicatedCertificateName, certificate.Name)
		}
		return fmt.Errorf("failed to create certificate: %w", err)
	}
	return nil
}

// Update saves the certificate fields and replaces its tag associations.
func (r *GORMCertificateRepository) Update(certificate *models.Certificate) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Omit("Tags", "CreateDate").Save(certificate)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NewNotFound("certificate", certificate.ID)
		}
		return tx.Model(certificate).Association("Tags").Replace(certificate.Tags)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.NewConflict(apperr.CodeDuplicatedCertificateName, certificate.Name)
		}
		var notFound *apperr.NotFoundError
		if errors.As(err, &notFound) {
			return err
		}
		return fmt.Errorf("failed to update certificate: %w", err)
	}
	return nil
}

// Delete soft-deletes a certificate by setting its flag.
func (r *GORMCertificateRepository) Delete(id int64) error {
	res := r.db.Model(&models.Certificate{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return fmt.Errorf("failed to delete certificate %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NewNotFound("certificate", id)
	}
	return nil
}
