package domain

import "time"

// Inventory tracks stock of a product at a warehouse.
type Inventory struct {
	ID                int64     `json:"id"`
	ProductID         int64     `json:"productId"`
	WarehouseID       int64     `json:"warehouseId"`
	QuantityInStock   int       `json:"quantityInStock"`
	LowStockThreshold int       `json:"lowStockThreshold"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// LowStock reports whether the on-hand quantity has fallen to or below the
// configured threshold.
func (i *Inventory) LowStock() bool {
	return i.QuantityInStock <= i.LowStockThreshold
}
