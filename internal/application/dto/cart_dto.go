package dto

// AddToCartRequest entrada de POST /api/cart/:userId. Quantity 0 se toma como 1.
type AddToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=0,max=999"`
}

// UpdateCartItemRequest entrada de PUT /api/cart/:userId/:cartItemId. Puntero para
// distinguir "ausente" de cero; un valor no numérico hace fallar el parseo.
type UpdateCartItemRequest struct {
	Quantity *float64 `json:"quantity"`
}
