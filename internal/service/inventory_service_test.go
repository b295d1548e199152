package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/events"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

type fakeInventoryRepo struct {
	rows map[int64]*domain.Inventory
}

func (f *fakeInventoryRepo) Create(_ context.Context, inv *domain.Inventory) error {
	f.rows[inv.ID] = inv
	return nil
}

func (f *fakeInventoryRepo) Update(_ context.Context, inv *domain.Inventory) error {
	f.rows[inv.ID] = inv
	return nil
}

func (f *fakeInventoryRepo) Delete(_ context.Context, id int64) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeInventoryRepo) GetByID(_ context.Context, id int64) (*domain.Inventory, error) {
	inv, ok := f.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return inv, nil
}

func (f *fakeInventoryRepo) List(_ context.Context, _, _ int) ([]domain.Inventory, error) {
	return nil, nil
}

// AdjustStock mirrors the SQL guard: a delta that would drive stock negative
// reports no rows, same as a missing id.
func (f *fakeInventoryRepo) AdjustStock(_ context.Context, id int64, delta int) (*domain.Inventory, error) {
	inv, ok := f.rows[id]
	if !ok || inv.QuantityInStock+delta < 0 {
		return nil, pgx.ErrNoRows
	}
	inv.QuantityInStock += delta
	return inv, nil
}

type recordingDispatcher struct {
	published []events.Event
}

func (r *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	r.published = append(r.published, event)
	return nil
}

func (r *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func TestAdjustStockAppliesDelta(t *testing.T) {
	repo := &fakeInventoryRepo{rows: map[int64]*domain.Inventory{
		1: {ID: 1, ProductID: 10, WarehouseID: 20, QuantityInStock: 50, LowStockThreshold: 5},
	}}
	dispatcher := &recordingDispatcher{}
	svc := NewInventoryService(repo, dispatcher, zap.NewNop())

	inv, err := svc.AdjustStock(context.Background(), 1, 1, -30)
	require.NoError(t, err)
	assert.Equal(t, 20, inv.QuantityInStock)
	assert.Empty(t, dispatcher.published)
}

func TestAdjustStockEmitsLowStockEvent(t *testing.T) {
	repo := &fakeInventoryRepo{rows: map[int64]*domain.Inventory{
		1: {ID: 1, ProductID: 10, WarehouseID: 20, QuantityInStock: 8, LowStockThreshold: 5},
	}}
	dispatcher := &recordingDispatcher{}
	svc := NewInventoryService(repo, dispatcher, zap.NewNop())

	inv, err := svc.AdjustStock(context.Background(), 7, 1, -4)
	require.NoError(t, err)
	assert.Equal(t, 4, inv.QuantityInStock)

	require.Len(t, dispatcher.published, 1)
	event := dispatcher.published[0]
	assert.Equal(t, events.EventInventoryLowStock, event.Type)
	assert.Equal(t, int64(7), event.ActorID)

	payload, ok := event.Payload.(events.InventoryLowStockPayload)
	require.True(t, ok)
	assert.Equal(t, int64(1), payload.InventoryID)
	assert.Equal(t, 4, payload.Quantity)
	assert.Equal(t, 5, payload.Threshold)
}

func TestAdjustStockRejectsNegativeResult(t *testing.T) {
	repo := &fakeInventoryRepo{rows: map[int64]*domain.Inventory{
		1: {ID: 1, QuantityInStock: 3, LowStockThreshold: 0},
	}}
	svc := NewInventoryService(repo, nil, zap.NewNop())

	_, err := svc.AdjustStock(context.Background(), 1, 1, -10)
	require.Error(t, err)
	assert.Equal(t, 409, apperrors.ToDomainError(err).HTTPStatus)

	// The failed adjustment left stock untouched.
	assert.Equal(t, 3, repo.rows[1].QuantityInStock)
}

func TestAdjustStockUnknownInventory(t *testing.T) {
	repo := &fakeInventoryRepo{rows: map[int64]*domain.Inventory{}}
	svc := NewInventoryService(repo, nil, zap.NewNop())

	_, err := svc.AdjustStock(context.Background(), 1, 42, 5)
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}
