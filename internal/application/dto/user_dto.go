package dto

// CreateUserRequest entrada para registrar un cliente.
type CreateUserRequest struct {
	Email   string `json:"email" validate:"required,email,max=254"`
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Phone   string `json:"phone" validate:"omitempty,max=30"`
	Address string `json:"address" validate:"omitempty,max=500"`
}

// UpdateUserRequest actualización parcial; los campos ausentes no se tocan.
type UpdateUserRequest struct {
	Email   *string `json:"email" validate:"omitempty,email,max=254"`
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Phone   *string `json:"phone" validate:"omitempty,max=30"`
	Address *string `json:"address" validate:"omitempty,max=500"`
}
