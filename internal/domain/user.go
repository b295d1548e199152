package domain

import "time"

// UserRole enumerates the fixed set of account roles.
type UserRole string

const (
	RoleSuperAdmin    UserRole = "super_admin"
	RoleAdmin         UserRole = "admin"
	RoleSalesAgent    UserRole = "sales_agent"
	RoleDeliveryStaff UserRole = "delivery_staff"
)

// ValidRole reports whether the value is one of the enumerated roles.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleSalesAgent, RoleDeliveryStaff:
		return true
	}
	return false
}

// User is the domain model for staff accounts. At least one of Email or
// PhoneNumber is always set; both serve as login identifiers.
type User struct {
	ID             int64
	Name           string
	Email          *string
	PhoneNumber    *string
	Role           UserRole
	PasswordHash   string
	IsPasswordTemp bool
	IsActive       bool
	CreatedBy      *int64
	LastLoginAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PublicUser is the client-safe projection of a User. It never carries the
// password hash.
type PublicUser struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Email          *string    `json:"email"`
	PhoneNumber    *string    `json:"phoneNumber"`
	Role           UserRole   `json:"role"`
	IsPasswordTemp bool       `json:"isPasswordTemp"`
	IsActive       bool       `json:"isActive"`
	CreatedBy      *int64     `json:"createdBy"`
	LastLoginAt    *time.Time `json:"lastLoginAt"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Public strips credential material from the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		PhoneNumber:    u.PhoneNumber,
		Role:           u.Role,
		IsPasswordTemp: u.IsPasswordTemp,
		IsActive:       u.IsActive,
		CreatedBy:      u.CreatedBy,
		LastLoginAt:    u.LastLoginAt,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
