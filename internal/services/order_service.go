package services

import (
	"errors"
	"strconv"
	"time"

	"giftcerts/internal/apperr"
	"giftcerts/internal/models"
	"giftcerts/internal/query"
	"giftcerts/internal/repositories"
	"giftcerts/internal/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// OrderEventPublisher publishes order lifecycle events to the message
// broker. Satisfied by *rabbitmq.Client.
type OrderEventPublisher interface {
	PublishOrderCreated(event map[string]interface{}) error
}

// OrderService handles business logic related to orders: aggregation of
// incoming line proposals, cost computation and order listings.
type OrderService struct {
	orderRepo repositories.OrderRepository
	certRepo  repositories.CertificateRepository
	userRepo  repositories.UserRepository
	publisher OrderEventPublisher
	engine    *query.Engine
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	certRepo repositories.CertificateRepository,
	userRepo repositories.UserRepository,
	publisher OrderEventPublisher,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		certRepo:  certRepo,
		userRepo:  userRepo,
		publisher: publisher,
		engine:    query.NewEngine(query.OrderTable()),
	}
}

// OrderLineProposal is one incoming (certificate, quantity) entry of an
// order submission, before merging.
type OrderLineProposal struct {
	CertificateID int64 `json:"certificateId"`
	Quantity      int   `json:"certificateAmount"`
}

// ListOrders retrieves one page of all orders.
func (s *OrderService) ListOrders(raw query.Params) (*Page[models.Order], error) {
	c, err := s.engine.BuildListing(raw)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.FindPage(c)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(c)
	if err != nil {
		return nil, err
	}
	return newPage(orders, total, c.Window), nil
}

// ListUserOrders retrieves one page of a single user's orders.
func (s *OrderService) ListUserOrders(userID int64, raw query.Params) (*Page[models.Order], error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, err
	}
	c, err := s.engine.BuildListing(raw)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.FindPageByUser(userID, c)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.CountByUser(userID, c)
	if err != nil {
		return nil, err
	}
	return newPage(orders, total, c.Window), nil
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id int64) (*models.Order, error) {
	return s.orderRepo.FindByID(id)
}

// CreateOrder merges the line proposals by certificate identity, validates
// every line (collecting all violations before raising), computes the total
// cost from current certificate prices in exact decimal arithmetic, and
// persists the order. An order.created event is published on success.
func (s *OrderService) CreateOrder(userID int64, proposals []OrderLineProposal) (*models.Order, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, err
	}
	if len(proposals) == 0 {
		return nil, apperr.NewValidation(apperr.CodeNoOrderCertificatesFound, "")
	}

	merged := mergeProposals(proposals)

	violations := apperr.Violations{}
	if len(merged) > validation.OrderRules.MaxUniqueCertificates {
		violations.Add(apperr.CodeInvalidOrderUniqueCertificatesAmount, strconv.Itoa(len(merged)))
	}

	lines := make([]models.OrderLine, 0, len(merged))
	cost := decimal.Zero
	for _, proposal := range merged {
		if !validation.IntInRange(proposal.Quantity, validation.OrderRules.QuantityMin, validation.OrderRules.QuantityMax) {
			violations.Add(apperr.CodeInvalidOrderCertificateAmount, strconv.Itoa(proposal.Quantity))
		}
		// Id format comes before existence: a non-positive id is rejected
		// without a lookup.
		if proposal.CertificateID <= 0 {
			violations.Add(apperr.CodeInvalidCertificateID, strconv.FormatInt(proposal.CertificateID, 10))
			continue
		}
		certificate, err := s.certRepo.FindByID(proposal.CertificateID)
		if err != nil {
			var notFound *apperr.NotFoundError
			if errors.As(err, &notFound) {
				violations.Add(apperr.CodeNoCertificateFound, strconv.FormatInt(proposal.CertificateID, 10))
				continue
			}
			return nil, err
		}
		lines = append(lines, models.OrderLine{
			CertificateID: certificate.ID,
			Quantity:      proposal.Quantity,
			UnitPrice:     certificate.Price,
		})
		cost = cost.Add(certificate.Price.Mul(decimal.NewFromInt(int64(proposal.Quantity))))
	}
	if !violations.Empty() {
		return nil, apperr.NewValidationMap(violations)
	}

	order := &models.Order{
		UserID: userID,
		Cost:   cost.Round(2),
		Date:   time.Now(),
		Lines:  lines,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	s.publishOrderCreated(order)
	return order, nil
}

// mergeProposals collapses repeated certificate ids into single lines,
// summing their quantities and preserving first-seen order.
func mergeProposals(proposals []OrderLineProposal) []OrderLineProposal {
	index := make(map[int64]int, len(proposals))
	merged := make([]OrderLineProposal, 0, len(proposals))
	for _, p := range proposals {
		if at, ok := index[p.CertificateID]; ok {
			merged[at].Quantity += p.Quantity
			continue
		}
		index[p.CertificateID] = len(merged)
		merged = append(merged, p)
	}
	return merged
}

func (s *OrderService) publishOrderCreated(order *models.Order) {
	if s.publisher == nil {
		logrus.Debug("order event publisher not configured, skipping publication")
		return
	}
	event := map[string]interface{}{
		"eventId": uuid.New().String(),
		"orderId": order.ID,
		"userId":  order.UserID,
		"cost":    order.Cost.String(),
		"date":    order.Date.Format(time.RFC3339),
	}
	if err := s.publisher.PublishOrderCreated(event); err != nil {
		// Event delivery must not fail the already-persisted order.
		logrus.Warnf("failed to publish order created event for order %d: %v", order.ID, err)
		return
	}
	logrus.Infof("published order created event for order %d", order.ID)
}
