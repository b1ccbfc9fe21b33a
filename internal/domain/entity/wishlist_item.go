package entity

import "time"

// WishlistItem producto guardado por un usuario. Como máximo uno por par (UserID, ProductID).
type WishlistItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ProductID string    `json:"productId"`
	CreatedAt time.Time `json:"createdAt"`
}
