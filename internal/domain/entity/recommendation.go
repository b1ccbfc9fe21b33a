package entity

import "time"

// RecommendedItem producto sugerido por el modelo.
type RecommendedItem struct {
	ProductID string  `json:"productId"`
	Reason    string  `json:"reason,omitempty"`
	Score     float64 `json:"score"`
}

// Recommendation resultado de recomendación guardado por usuario. Efímero: se puede limpiar.
type Recommendation struct {
	ID        string            `json:"id"`
	UserID    string            `json:"userId"`
	TimeSlot  TimeSlot          `json:"timeSlot,omitempty"`
	Items     []RecommendedItem `json:"items"`
	Summary   string            `json:"summary,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}
