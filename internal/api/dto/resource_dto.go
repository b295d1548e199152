package dto

// CustomerRequest payload for creating or updating a customer.
type CustomerRequest struct {
	Name    string  `json:"name" validate:"required"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	Phone   *string `json:"phone" validate:"omitempty,ma_phone"`
}

// CategoryRequest payload for creating or updating a category.
type CategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`
}

// ProductRequest payload for creating or updating a product.
type ProductRequest struct {
	SKU         string  `json:"sku" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,url,max=500"`
	Price       string  `json:"price" validate:"required"`
	CategoryID  *int64  `json:"categoryId"`
	Status      *string `json:"status" validate:"omitempty,oneof=draft published stopped archived"`
}

// WarehouseRequest payload for creating or updating a warehouse.
type WarehouseRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
}

// InventoryRequest payload for creating or updating an inventory row.
type InventoryRequest struct {
	ProductID         int64 `json:"productId" validate:"required,gt=0"`
	WarehouseID       int64 `json:"warehouseId" validate:"required,gt=0"`
	QuantityInStock   int   `json:"quantityInStock" validate:"gte=0"`
	LowStockThreshold *int  `json:"lowStockThreshold" validate:"omitempty,gte=0"`
}

// AdjustStockRequest payload for applying a stock delta.
type AdjustStockRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// OrderItemRequest is one product line on an order creation request.
type OrderItemRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderRequest payload for registering an order.
type CreateOrderRequest struct {
	CustomerID int64              `json:"customerId" validate:"required,gt=0"`
	Items      []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// OrderStatusRequest payload for fulfillment transitions.
type OrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending prepared delivered"`
}
