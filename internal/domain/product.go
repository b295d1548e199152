package domain

import "time"

// ProductStatus represents lifecycle states for a product.
type ProductStatus string

const (
	ProductStatusDraft     ProductStatus = "draft"
	ProductStatusPublished ProductStatus = "published"
	ProductStatusStopped   ProductStatus = "stopped"
	ProductStatusArchived  ProductStatus = "archived"
)

// ValidProductStatus reports whether the value is a known status.
func ValidProductStatus(s ProductStatus) bool {
	switch s {
	case ProductStatusDraft, ProductStatusPublished, ProductStatusStopped, ProductStatusArchived:
		return true
	}
	return false
}

// Product is a sellable item identified by a unique SKU. Price is kept as a
// decimal string to avoid float rounding in money math.
type Product struct {
	ID          int64         `json:"id"`
	SKU         string        `json:"sku"`
	Name        string        `json:"name"`
	Description *string       `json:"description"`
	ImageURL    *string       `json:"imageUrl"`
	Price       string        `json:"price"`
	CategoryID  *int64        `json:"categoryId"`
	Status      ProductStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}
