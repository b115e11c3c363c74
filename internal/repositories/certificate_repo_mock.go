package repositories

import (
	"sort"
	"strings"
	"sync"

	"giftcerts/internal/apperr"
	"giftcerts/internal/models"
	"giftcerts/internal/query"
)

// MockCertificateRepository is an in-memory implementation of
// CertificateRepository. It evaluates the same criteria semantics as the
// GORM implementation, so listings produce identical results regardless of
// the storage engine behind them.
type MockCertificateRepository struct {
	certificates map[int64]models.Certificate
	nextID       int64
	mu           sync.RWMutex
}

// NewMockCertificateRepository creates a new instance of
// MockCertificateRepository.
func NewMockCertificateRepository() *MockCertificateRepository {
	return &MockCertificateRepository{
		certificates: make(map[int64]models.Certificate),
		nextID:       1,
	}
}

// FindPage returns one page of certificates matching the criteria.
func (r *MockCertificateRepository) FindPage(c query.Criteria) ([]models.Certificate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := r.filtered(c.Predicates)
	sortCertificates(matched, c.Sort)

	offset := c.Window.Offset()
	if offset >= len(matched) {
		return []models.Certificate{}, nil
	}
	end := offset + c.Window.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

// Count counts certificates matching the criteria's predicate set.
func (r *MockCertificateRepository) Count(c query.Criteria) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.filtered(c.Predicates))), nil
}

// filtered applies the predicate set; FindPage and Count share it.
func (r *MockCertificateRepository) filtered(predicates []query.Predicate) []models.Certificate {
	matched := make([]models.Certificate, 0, len(r.certificates))
	for _, certificate := range r.certificates {
		if matchesPredicates(certificate, predicates) {
			matched = append(matched, certificate)
		}
	}
	return matched
}

func matchesPredicates(c models.Certificate, predicates []query.Predicate) bool {
	for _, p := range predicates {
		switch p.Kind {
		case query.KindNotDeleted:
			if c.IsDeleted {
				return false
			}
		case query.KindHasTag:
			if !hasTag(c, p.Value) {
				return false
			}
		case query.KindSearch:
			needle := strings.ToLower(p.Value)
			if !strings.Contains(strings.ToLower(c.Name), needle) &&
				!strings.Contains(strings.ToLower(c.Description), needle) {
				return false
			}
		}
	}
	return true
}

func hasTag(c models.Certificate, name string) bool {
	for _, tag := range c.Tags {
		if strings.EqualFold(tag.Name, name) && !tag.IsDeleted {
			return true
		}
	}
	return false
}

func sortCertificates(certificates []models.Certificate, keys []query.SortKey) {
	sort.SliceStable(certificates, func(i, j int) bool {
		a, b := certificates[i], certificates[j]
		for _, key := range keys {
			cmp := compareField(a, b, key.Field)
			if cmp == 0 {
				continue
			}
			if key.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return a.ID < b.ID
	})
}

func compareField(a, b models.Certificate, field string) int {
	switch field {
	case "name":
		return strings.Compare(a.Name, b.Name)
	case "price":
		return a.Price.Cmp(b.Price)
	case "create_date":
		switch {
		case a.CreateDate.Before(b.CreateDate):
			return -1
		case a.CreateDate.After(b.CreateDate):
			return 1
		}
	}
	return 0
}

// FindByID returns a live certificate by its ID.
func (r *MockCertificateRepository) FindByID(id int64) (*models.Certificate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	certificate, ok := r.certificates[id]
	if !ok || certificate.IsDeleted {
		return nil, apperr.NewNotFound("certificate", id)
	}
	return &certificate, nil
}

// ExistsByID reports whether a live certificate with the ID exists.
func (r *MockCertificateRepository) ExistsByID(id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	certificate, ok := r.certificates[id]
	return ok && !certificate.IsDeleted, nil
}

// Create adds a new certificate, rejecting duplicated names the way the
// unique index would.
func (r *MockCertificateRepository) Create(certificate *models.Certificate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.certificates {
		if existing.Name == certificate.Name {
			return apperr.NewConflict(apperr.CodeDuplicatedCertificateName, certificate.Name)
		}
	}
	if certificate.ID == 0 {
		certificate.ID = r.nextID
		r.nextID++
	}
	r.certificates[certificate.ID] = *certificate
	return nil
}

// Update modifies an existing certificate.
func (r *MockCertificateRepository) Update(certificate *models.Certificate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.certificates[certificate.ID]; !ok {
		return apperr.NewNotFound("certificate", certificate.ID)
	}
	for id, existing := range r.certificates {
		if id != certificate.ID && existing.Name == certificate.Name {
			return apperr.NewConflict(apperr.CodeDuplicatedCertificateName, certificate.Name)
		}
	}
	r.certificates[certificate.ID] = *certificate
	return nil
}

// Delete soft-deletes a certificate.
func (r *MockCertificateRepository) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	certificate, ok := r.certificates[id]
	if !ok || certificate.IsDeleted {
		return apperr.NewNotFound("certificate", id)
	}
	certificate.IsDeleted = true
	r.certificates[id] = certificate
	return nil
}
