package domain

import "time"

// OrderStatus represents fulfillment states for an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPrepared  OrderStatus = "prepared"
	OrderStatusDelivered OrderStatus = "delivered"
)

// ValidOrderStatus reports whether the value is a known status.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusPrepared, OrderStatusDelivered:
		return true
	}
	return false
}

// Order is a customer order created by a staff user.
type Order struct {
	ID          int64       `json:"id"`
	OrderNumber string      `json:"orderNumber"`
	CreatedBy   int64       `json:"createdBy"`
	CustomerID  int64       `json:"customerId"`
	Status      OrderStatus `json:"status"`
	DeliveredAt *time.Time  `json:"deliveredAt"`
	Items       []OrderItem `json:"items,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// OrderItem is a single product line on an order.
type OrderItem struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"orderId"`
	ProductID int64     `json:"productId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
