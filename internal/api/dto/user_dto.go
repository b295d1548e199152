package dto

// CreateUserRequest payload for provisioning a staff account.
type CreateUserRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Email       *string `json:"email" validate:"omitempty,email"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,ma_phone"`
	Role        string  `json:"role" validate:"required,oneof=super_admin admin sales_agent delivery_staff"`
}

// UpdateUserRequest payload for updating account fields.
type UpdateUserRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Email       *string `json:"email" validate:"omitempty,email"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,ma_phone"`
	IsActive    *bool   `json:"isActive"`
}
