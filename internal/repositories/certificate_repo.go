package repositories

import (
	"giftcerts/internal/models"
	"giftcerts/internal/query"
)

// CertificateRepository defines the interface for certificate data access.
// FindPage and Count consume the same criteria; implementations must apply
// the identical predicate set to both so the returned total always agrees
// with the filtered set.
type CertificateRepository interface {
	FindPage(c query.Criteria) ([]models.Certificate, error)
	Count(c query.Criteria) (int64, error)
	// FindByID resolves a live (non-deleted) certificate.
	FindByID(id int64) (*models.Certificate, error)
	// ExistsByID reports whether a live certificate with the id exists.
	ExistsByID(id int64) (bool, error)
	Create(certificate *models.Certificate) error
	Update(certificate *models.Certificate) error
	// Delete soft-deletes; the row stays reachable by id internally.
	Delete(id int64) error
}
