package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/events"
	"github.com/spec-kit/inventory-service/internal/repository"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

// OrderService coordinates order creation and fulfillment transitions.
type OrderService struct {
	orders     repository.OrderRepository
	customers  repository.CustomerRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewOrderService builds the service.
func NewOrderService(orders repository.OrderRepository, customers repository.CustomerRepository, dispatcher events.Dispatcher, logger *zap.Logger) *OrderService {
	return &OrderService{orders: orders, customers: customers, dispatcher: dispatcher, logger: logger}
}

// NewOrderItem is one requested product line.
type NewOrderItem struct {
	ProductID int64
	Quantity  int
}

// Create registers a pending order for the customer and emits an
// order-created event.
func (s *OrderService) Create(ctx context.Context, createdBy, customerID int64, items []NewOrderItem) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, apperrors.NewValidationError("Order must contain at least one item", nil)
	}

	if _, err := s.customers.GetByID(ctx, customerID); err != nil {
		return nil, apperrors.MapError(err)
	}

	order := &domain.Order{
		OrderNumber: newOrderNumber(),
		CreatedBy:   createdBy,
		CustomerID:  customerID,
		Status:      domain.OrderStatusPending,
	}
	for _, item := range items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventOrderCreated,
		ActorID:   createdBy,
		Timestamp: time.Now(),
		Payload: events.OrderCreatedPayload{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			CustomerID:  order.CustomerID,
			ItemCount:   len(order.Items),
		},
	})
	return order, nil
}

// SetStatus moves an order along pending → prepared → delivered, stamping
// deliveredAt on the final transition.
func (s *OrderService) SetStatus(ctx context.Context, actorID, orderID int64, status domain.OrderStatus) (*domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, apperrors.NewValidationError("Invalid status value", nil)
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	oldStatus := order.Status
	var deliveredAt *time.Time
	if status == domain.OrderStatusDelivered {
		now := time.Now()
		deliveredAt = &now
	}

	if err := s.orders.SetStatus(ctx, orderID, status, deliveredAt); err != nil {
		return nil, apperrors.MapError(err)
	}
	order.Status = status
	order.DeliveredAt = deliveredAt

	if oldStatus != status {
		s.publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventOrderStatusChanged,
			ActorID:   actorID,
			Timestamp: time.Now(),
			Payload: events.OrderStatusChangedPayload{
				OrderID:   orderID,
				OldStatus: oldStatus,
				NewStatus: status,
			},
		})
	}
	return order, nil
}

func (s *OrderService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event publish failed", zap.String("type", string(event.Type)), zap.Error(err))
	}
}

func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}
