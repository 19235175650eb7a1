package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/naturevita/naturevita-backend/internal/modules/cart"
)

// Service defines the order management business logic.
type Service interface {
	// Checkout builds an order from the session's cart lines. Lines and the
	// total are copied server-side; the request only supplies the customer.
	Checkout(ctx context.Context, req CheckoutRequest, lines []cart.CartLine) (*Order, error)

	// GetOrder retrieves an order by UUID.
	GetOrder(ctx context.Context, id string) (*Order, error)

	// ListOrders returns all orders, optionally filtered by status.
	ListOrders(ctx context.Context, status string) ([]*Order, error)

	// UpdateStatus advances an order to a new lifecycle status.
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error)
}

var validate = validator.New()

type service struct{ repo Repository }

// NewService creates a new order service.
func NewService(repo Repository) Service { return &service{repo: repo} }

// validTransitions defines the allowed status state machine. Delivered and
// cancelled are terminal.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

func (s *service) Checkout(ctx context.Context, req CheckoutRequest, lines []cart.CartLine) (*Order, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("order must contain at least one item")
	}

	products := make([]OrderProduct, 0, len(lines))
	var total int64
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("invalid quantity for product %d", line.ProductID)
		}
		products = append(products, OrderProduct{
			ID:       line.ProductID,
			Name:     line.Name,
			Quantity: line.Quantity,
			Price:    line.UnitPrice,
		})
		total += line.UnitPrice * int64(line.Quantity)
	}

	o := &Order{
		ID:              uuid.New(),
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		Products:        products,
		Total:           total,
		Status:          StatusPending,
		ShippingAddress: req.ShippingAddress,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}
	return o, nil
}

func (s *service) GetOrder(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListOrders(ctx context.Context, status string) ([]*Order, error) {
	return s.repo.List(ctx, status)
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newStatus := OrderStatus(strings.ToLower(req.Status))
	valid := false
	for _, allowed := range validTransitions[o.Status] {
		if allowed == newStatus {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("cannot transition order from %s to %s", o.Status, newStatus)
	}

	if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}
	o.Status = newStatus
	return o, nil
}
