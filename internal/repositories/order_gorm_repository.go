package repositories

import (
	"errors"
	"fmt"

	"giftcerts/internal/apperr"
	"giftcerts/internal/models"
	"giftcerts/internal/query"

	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// FindPage retrieves one page of orders in id order.
func (r *GORMOrderRepository) FindPage(c query.Criteria) ([]models.Order, error) {
	return r.findPage(r.db, c)
}

// Count counts all orders matching the criteria's predicate set.
func (r *GORMOrderRepository) Count(c query.Criteria) (int64, error) {
	return r.count(r.db, c)
}

// FindPageByUser retrieves one page of a single user's orders.
func (r *GORMOrderRepository) FindPageByUser(userID int64, c query.Criteria) ([]models.Order, error) {
	return r.findPage(r.db.Where("user_id = ?", userID), c)
}

// CountByUser counts a single user's orders under the same predicate set.
func (r *GORMOrderRepository) CountByUser(userID int64, c query.Criteria) (int64, error) {
	return r.count(r.db.Where("user_id = ?", userID), c)
}

func (r *GORMOrderRepository) findPage(db *gorm.DB, c query.Criteria) ([]models.Order, error) {
	var orders []models.Order
	db = applyPredicates(db.Model(&models.Order{}), c.Predicates)
	db = applyWindow(applyOrdering(db, c.Sort), c.Window)
	if err := db.Preload("Lines.Certificate").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (r *GORMOrderRepository) count(db *gorm.DB, c query.Criteria) (int64, error) {
	var total int64
	db = applyPredicates(db.Model(&models.Order{}), c.Predicates)
	if err := db.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return total, nil
}

// FindByID retrieves an order with its lines and their certificates.
func (r *GORMOrderRepository) FindByID(id int64) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Lines.Certificate").First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("order", id)
		}
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, err)
	}
	return &order, nil
}

// Create inserts the order together with its merged lines.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}
