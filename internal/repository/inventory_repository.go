package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/inventory-service/internal/domain"
)

// InventoryRepository encapsulates stock persistence.
type InventoryRepository interface {
	Create(ctx context.Context, inventory *domain.Inventory) error
	Update(ctx context.Context, inventory *domain.Inventory) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Inventory, error)
	List(ctx context.Context, limit, offset int) ([]domain.Inventory, error)
	AdjustStock(ctx context.Context, id int64, delta int) (*domain.Inventory, error)
}

type inventoryRepository struct {
	db DB
}

// NewInventoryRepository instantiates repository.
func NewInventoryRepository(db DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

const inventoryColumns = `id, product_id, warehouse_id, quantity_in_stock, low_stock_threshold, created_at, updated_at`

func (r *inventoryRepository) Create(ctx context.Context, inventory *domain.Inventory) error {
	const query = `
        INSERT INTO inventories (product_id, warehouse_id, quantity_in_stock, low_stock_threshold)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRow(ctx, query,
		inventory.ProductID,
		inventory.WarehouseID,
		inventory.QuantityInStock,
		inventory.LowStockThreshold,
	).Scan(&inventory.ID, &inventory.CreatedAt, &inventory.UpdatedAt)
}

func (r *inventoryRepository) Update(ctx context.Context, inventory *domain.Inventory) error {
	const query = `
        UPDATE inventories SET product_id=$1, warehouse_id=$2, quantity_in_stock=$3,
            low_stock_threshold=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.db.Exec(ctx, query,
		inventory.ProductID,
		inventory.WarehouseID,
		inventory.QuantityInStock,
		inventory.LowStockThreshold,
		inventory.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *inventoryRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM inventories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *inventoryRepository) GetByID(ctx context.Context, id int64) (*domain.Inventory, error) {
	const query = `SELECT ` + inventoryColumns + ` FROM inventories WHERE id=$1`
	return r.scanInventory(r.db.QueryRow(ctx, query, id))
}

func (r *inventoryRepository) List(ctx context.Context, limit, offset int) ([]domain.Inventory, error) {
	const query = `SELECT ` + inventoryColumns + ` FROM inventories ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inventories []domain.Inventory
	for rows.Next() {
		var inventory domain.Inventory
		if err := rows.Scan(
			&inventory.ID,
			&inventory.ProductID,
			&inventory.WarehouseID,
			&inventory.QuantityInStock,
			&inventory.LowStockThreshold,
			&inventory.CreatedAt,
			&inventory.UpdatedAt,
		); err != nil {
			return nil, err
		}
		inventories = append(inventories, inventory)
	}
	return inventories, rows.Err()
}

// AdjustStock atomically applies a delta to on-hand quantity and returns the
// updated row. The quantity check keeps stock from going negative.
func (r *inventoryRepository) AdjustStock(ctx context.Context, id int64, delta int) (*domain.Inventory, error) {
	const query = `
        UPDATE inventories SET quantity_in_stock = quantity_in_stock + $1, updated_at=NOW()
        WHERE id=$2 AND quantity_in_stock + $1 >= 0
        RETURNING ` + inventoryColumns

	return r.scanInventory(r.db.QueryRow(ctx, query, delta, id))
}

func (r *inventoryRepository) scanInventory(row pgx.Row) (*domain.Inventory, error) {
	var inventory domain.Inventory
	if err := row.Scan(
		&inventory.ID,
		&inventory.ProductID,
		&inventory.WarehouseID,
		&inventory.QuantityInStock,
		&inventory.LowStockThreshold,
		&inventory.CreatedAt,
		&inventory.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &inventory, nil
}
