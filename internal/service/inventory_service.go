package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/events"
	"github.com/spec-kit/inventory-service/internal/repository"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

// InventoryService coordinates stock movements and low-stock signaling.
type InventoryService struct {
	inventories repository.InventoryRepository
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// NewInventoryService builds the service.
func NewInventoryService(inventories repository.InventoryRepository, dispatcher events.Dispatcher, logger *zap.Logger) *InventoryService {
	return &InventoryService{inventories: inventories, dispatcher: dispatcher, logger: logger}
}

// AdjustStock applies a delta to an inventory row. Negative results are
// rejected as a conflict; crossing the low-stock threshold emits an event.
func (s *InventoryService) AdjustStock(ctx context.Context, actorID, inventoryID int64, delta int) (*domain.Inventory, error) {
	inventory, err := s.inventories.AdjustStock(ctx, inventoryID, delta)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either the row is missing or the delta would drive stock
			// negative; disambiguate with a plain lookup.
			if _, lookupErr := s.inventories.GetByID(ctx, inventoryID); lookupErr == nil {
				return nil, apperrors.NewConflict("Insufficient stock for adjustment", nil)
			}
			return nil, apperrors.NewNotFound("inventory not found")
		}
		return nil, apperrors.MapError(err)
	}

	if inventory.LowStock() {
		s.publishLowStock(ctx, actorID, inventory)
	}
	return inventory, nil
}

func (s *InventoryService) publishLowStock(ctx context.Context, actorID int64, inventory *domain.Inventory) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventInventoryLowStock,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload: events.InventoryLowStockPayload{
			InventoryID: inventory.ID,
			ProductID:   inventory.ProductID,
			WarehouseID: inventory.WarehouseID,
			Quantity:    inventory.QuantityInStock,
			Threshold:   inventory.LowStockThreshold,
		},
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event publish failed", zap.String("type", string(event.Type)), zap.Error(err))
	}
}
