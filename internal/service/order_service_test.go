package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/events"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

type fakeOrderRepo struct {
	orders map[int64]*domain.Order
	nextID int64
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	f.nextID++
	order.ID = f.nextID
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return order, nil
}

func (f *fakeOrderRepo) List(_ context.Context, _, _ int) ([]domain.Order, error) { return nil, nil }

func (f *fakeOrderRepo) SetStatus(_ context.Context, id int64, status domain.OrderStatus, deliveredAt *time.Time) error {
	order, ok := f.orders[id]
	if !ok {
		return pgx.ErrNoRows
	}
	order.Status = status
	order.DeliveredAt = deliveredAt
	return nil
}

func (f *fakeOrderRepo) Delete(_ context.Context, id int64) error {
	delete(f.orders, id)
	return nil
}

type fakeCustomerRepo struct {
	ids map[int64]bool
}

func (f *fakeCustomerRepo) Create(_ context.Context, c *domain.Customer) error { return nil }
func (f *fakeCustomerRepo) Update(_ context.Context, c *domain.Customer) error { return nil }
func (f *fakeCustomerRepo) Delete(_ context.Context, id int64) error           { return nil }

func (f *fakeCustomerRepo) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	if !f.ids[id] {
		return nil, pgx.ErrNoRows
	}
	return &domain.Customer{ID: id}, nil
}

func (f *fakeCustomerRepo) List(_ context.Context, _, _ int) ([]domain.Customer, error) {
	return nil, nil
}

func testOrderService(dispatcher events.Dispatcher) (*OrderService, *fakeOrderRepo) {
	orders := &fakeOrderRepo{orders: make(map[int64]*domain.Order)}
	customers := &fakeCustomerRepo{ids: map[int64]bool{5: true}}
	return NewOrderService(orders, customers, dispatcher, zap.NewNop()), orders
}

func TestOrderCreate(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	svc, _ := testOrderService(dispatcher)

	order, err := svc.Create(context.Background(), 1, 5, []NewOrderItem{
		{ProductID: 10, Quantity: 2},
		{ProductID: 11, Quantity: 1},
	})
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^ORD-[0-9A-F-]{8}$`), order.OrderNumber)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Len(t, order.Items, 2)

	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventOrderCreated, dispatcher.published[0].Type)
	payload, ok := dispatcher.published[0].Payload.(events.OrderCreatedPayload)
	require.True(t, ok)
	assert.Equal(t, order.OrderNumber, payload.OrderNumber)
	assert.Equal(t, 2, payload.ItemCount)
}

func TestOrderCreateValidation(t *testing.T) {
	svc, _ := testOrderService(nil)

	t.Run("empty item list", func(t *testing.T) {
		_, err := svc.Create(context.Background(), 1, 5, nil)
		require.Error(t, err)
		assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
	})

	t.Run("unknown customer", func(t *testing.T) {
		_, err := svc.Create(context.Background(), 1, 999, []NewOrderItem{{ProductID: 10, Quantity: 1}})
		require.Error(t, err)
		assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
	})
}

func TestOrderSetStatus(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	svc, repo := testOrderService(dispatcher)

	order, err := svc.Create(context.Background(), 1, 5, []NewOrderItem{{ProductID: 10, Quantity: 1}})
	require.NoError(t, err)
	dispatcher.published = nil

	updated, err := svc.SetStatus(context.Background(), 2, order.ID, domain.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDelivered, updated.Status)
	require.NotNil(t, updated.DeliveredAt)
	assert.WithinDuration(t, time.Now(), *updated.DeliveredAt, 2*time.Second)
	assert.NotNil(t, repo.orders[order.ID].DeliveredAt)

	require.Len(t, dispatcher.published, 1)
	payload, ok := dispatcher.published[0].Payload.(events.OrderStatusChangedPayload)
	require.True(t, ok)
	assert.Equal(t, domain.OrderStatusPending, payload.OldStatus)
	assert.Equal(t, domain.OrderStatusDelivered, payload.NewStatus)
}

func TestOrderSetStatusNoEventWhenUnchanged(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	svc, _ := testOrderService(dispatcher)

	order, err := svc.Create(context.Background(), 1, 5, []NewOrderItem{{ProductID: 10, Quantity: 1}})
	require.NoError(t, err)
	dispatcher.published = nil

	_, err = svc.SetStatus(context.Background(), 2, order.ID, domain.OrderStatusPending)
	require.NoError(t, err)
	assert.Empty(t, dispatcher.published)
}

func TestOrderSetStatusRejectsUnknownValue(t *testing.T) {
	svc, _ := testOrderService(nil)

	_, err := svc.SetStatus(context.Background(), 1, 1, domain.OrderStatus("teleported"))
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
}
