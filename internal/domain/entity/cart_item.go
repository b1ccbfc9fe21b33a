package entity

// CartItem línea del carrito. Como máximo una por par (UserID, ProductID); se garantiza
// leyendo antes de escribir, no con un índice único.
type CartItem struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
