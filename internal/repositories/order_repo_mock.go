package repositories

import (
	"sort"
	"sync"
	"time"

	"giftcerts/internal/apperr"
	"giftcerts/internal/models"
	"giftcerts/internal/query"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[int64]models.Order
	nextID int64
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[int64]models.Order),
		nextID: 1,
	}
}

// FindPage returns one page of orders in id order.
func (r *MockOrderRepository) FindPage(c query.Criteria) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return windowOrders(r.all(0), c.Window), nil
}

// Count counts all orders.
func (r *MockOrderRepository) Count(c query.Criteria) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.all(0))), nil
}

// FindPageByUser returns one page of a single user's orders.
func (r *MockOrderRepository) FindPageByUser(userID int64, c query.Criteria) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return windowOrders(r.all(userID), c.Window), nil
}

// CountByUser counts a single user's orders.
func (r *MockOrderRepository) CountByUser(userID int64, c query.Criteria) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.all(userID))), nil
}

// all returns orders sorted by id, optionally restricted to one user.
func (r *MockOrderRepository) all(userID int64) []models.Order {
	orders := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if userID == 0 || order.UserID == userID {
			orders = append(orders, order)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders
}

func windowOrders(orders []models.Order, w query.Window) []models.Order {
	offset := w.Offset()
	if offset >= len(orders) {
		return []models.Order{}
	}
	end := offset + w.Limit
	if end > len(orders) {
		end = len(orders)
	}
	return orders[offset:end]
}

// FindByID returns an order by its ID.
func (r *MockOrderRepository) FindByID(id int64) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, apperr.NewNotFound("order", id)
	}
	return &order, nil
}

// Create adds a new order.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == 0 {
		order.ID = r.nextID
		r.nextID++
	}
	if order.Date.IsZero() {
		order.Date = time.Now()
	}
	for i := range order.Lines {
		order.Lines[i].OrderID = order.ID
	}
	r.orders[order.ID] = *order
	return nil
}
