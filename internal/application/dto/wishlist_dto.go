package dto

// AddToWishlistRequest entrada de POST /api/wishlist/:userId.
type AddToWishlistRequest struct {
	ProductID string `json:"productId" validate:"required"`
}
