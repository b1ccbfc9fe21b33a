package ports

import (
	"context"

	"github.com/jhoicas/pakurmart-api/internal/application/dto"
)

// RecommendationGenerator puerto de salida hacia el modelo generativo que sugiere productos.
// Cualquier adaptador (Gemini, Anthropic, mock) implementa esta interfaz; la aplicación no
// conoce el proveedor concreto.
type RecommendationGenerator interface {
	// GenerateRecommendations devuelve productos sugeridos para la franja dada. Solo se
	// devuelven IDs presentes en input.AvailableProducts. El contexto debe llevar timeout.
	GenerateRecommendations(ctx context.Context, input dto.RecommendationInput) (*dto.RecommendationResult, error)
}
