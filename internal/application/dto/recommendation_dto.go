package dto

import "github.com/jhoicas/pakurmart-api/internal/domain/entity"

// RecommendationInput lo que se envía al modelo: historial de compras (items de cada
// pedido) y el catálogo disponible.
type RecommendationInput struct {
	UserID            string
	TimeSlot          entity.TimeSlot
	PurchaseHistory   [][]entity.OrderItem
	AvailableProducts []*entity.Product
}

// RecommendationResult salida normalizada del modelo: solo productos del catálogo.
type RecommendationResult struct {
	Items   []entity.RecommendedItem `json:"items"`
	Summary string                   `json:"summary,omitempty"`
}
