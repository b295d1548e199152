package dto

// LoginRequest carries credentials for the login flow. Identifier may be an
// email address or a Moroccan phone number.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required,min=8,max=64"`
}

// MessageResponse is the uniform body for auth flow outcomes. Token material
// never appears here; tokens travel only in cookies.
type MessageResponse struct {
	Message string `json:"message"`
}

// ChangePasswordRequest carries a password rotation for the current user.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=64"`
}
