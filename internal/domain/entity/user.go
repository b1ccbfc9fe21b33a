package entity

import "time"

// User cliente de la tienda. El email es único solo por consulta previa (no hay índice único en el store).
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserUpdate campos opcionales para una actualización parcial. nil = no tocar.
type UserUpdate struct {
	Email   *string `json:"email,omitempty"`
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// IsEmpty indica si la actualización no modifica ningún campo.
func (u UserUpdate) IsEmpty() bool {
	return u.Email == nil && u.Name == nil && u.Phone == nil && u.Address == nil
}
