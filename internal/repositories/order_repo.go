package repositories

import (
	"giftcerts/internal/models"
	"giftcerts/internal/query"
)

// OrderRepository defines the interface for order data access. Orders are
// never deleted; listings are windowed in id order.
type OrderRepository interface {
	FindPage(c query.Criteria) ([]models.Order, error)
	Count(c query.Criteria) (int64, error)
	FindPageByUser(userID int64, c query.Criteria) ([]models.Order, error)
	CountByUser(userID int64, c query.Criteria) (int64, error)
	FindByID(id int64) (*models.Order, error)
	Create(order *models.Order) error
}
