package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/inventory-service/internal/domain"
)

// WarehouseRepository encapsulates warehouse persistence.
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *domain.Warehouse) error
	Update(ctx context.Context, warehouse *domain.Warehouse) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Warehouse, error)
	List(ctx context.Context, limit, offset int) ([]domain.Warehouse, error)
}

type warehouseRepository struct {
	db DB
}

// NewWarehouseRepository instantiates repository.
func NewWarehouseRepository(db DB) WarehouseRepository {
	return &warehouseRepository{db: db}
}

func (r *warehouseRepository) Create(ctx context.Context, warehouse *domain.Warehouse) error {
	const query = `
        INSERT INTO warehouses (name, address, city)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRow(ctx, query,
		warehouse.Name,
		warehouse.Address,
		warehouse.City,
	).Scan(&warehouse.ID, &warehouse.CreatedAt, &warehouse.UpdatedAt)
}

func (r *warehouseRepository) Update(ctx context.Context, warehouse *domain.Warehouse) error {
	const query = `
        UPDATE warehouses SET name=$1, address=$2, city=$3, updated_at=NOW()
        WHERE id=$4`

	cmd, err := r.db.Exec(ctx, query,
		warehouse.Name,
		warehouse.Address,
		warehouse.City,
		warehouse.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *warehouseRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM warehouses WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *warehouseRepository) GetByID(ctx context.Context, id int64) (*domain.Warehouse, error) {
	const query = `
        SELECT id, name, address, city, created_at, updated_at
        FROM warehouses WHERE id=$1`

	var warehouse domain.Warehouse
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&warehouse.ID,
		&warehouse.Name,
		&warehouse.Address,
		&warehouse.City,
		&warehouse.CreatedAt,
		&warehouse.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &warehouse, nil
}

func (r *warehouseRepository) List(ctx context.Context, limit, offset int) ([]domain.Warehouse, error) {
	const query = `
        SELECT id, name, address, city, created_at, updated_at
        FROM warehouses ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var warehouses []domain.Warehouse
	for rows.Next() {
		var warehouse domain.Warehouse
		if err := rows.Scan(
			&warehouse.ID,
			&warehouse.Name,
			&warehouse.Address,
			&warehouse.City,
			&warehouse.CreatedAt,
			&warehouse.UpdatedAt,
		); err != nil {
			return nil, err
		}
		warehouses = append(warehouses, warehouse)
	}
	return warehouses, rows.Err()
}
