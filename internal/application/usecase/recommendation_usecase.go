package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pakurmart-api/internal/application/dto"
	"github.com/jhoicas/pakurmart-api/internal/application/ports"
	"github.com/jhoicas/pakurmart-api/internal/application/storage"
	"github.com/jhoicas/pakurmart-api/internal/domain"
	"github.com/jhoicas/pakurmart-api/internal/domain/entity"
	"github.com/jhoicas/pakurmart-api/pkg/logger"
)

// recommendTimeout límite para la llamada al modelo; los LLM pueden demorar varios segundos.
const recommendTimeout = 15 * time.Second

// RecommendationStore subconjunto de la fachada que usa el caso de uso.
type RecommendationStore interface {
	GetOrders(ctx context.Context, userID string) ([]*entity.Order, error)
	GetProducts(ctx context.Context) ([]*entity.Product, error)
	SaveRecommendation(ctx context.Context, rec *entity.Recommendation) (*entity.Recommendation, error)
	GetRecommendations(ctx context.Context, userID string) ([]*entity.Recommendation, error)
	ClearRecommendations(ctx context.Context, userID string) (storage.RemovalResult, error)
}

// RecommendationUseCase reúne historial y catálogo, delega al generador y guarda el resultado.
type RecommendationUseCase struct {
	store     RecommendationStore
	generator ports.RecommendationGenerator
	log       *logger.Logger
	now       func() time.Time
}

// NewRecommendationUseCase construye el caso de uso inyectando el puerto del modelo.
func NewRecommendationUseCase(store RecommendationStore, generator ports.RecommendationGenerator, log *logger.Logger) *RecommendationUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RecommendationUseCase{
		store:     store,
		generator: generator,
		log:       log.Component("recommendations"),
		now:       time.Now,
	}
}

// Recommend genera recomendaciones para el usuario en la franja dada. Si guardar el
// resultado falla se registra en el log y se devuelve igual lo generado.
func (uc *RecommendationUseCase) Recommend(ctx context.Context, userID string, slot entity.TimeSlot) (*entity.Recommendation, error) {
	if userID == "" || slot == "" {
		return nil, domain.ErrInvalidInput
	}

	orders, err := uc.store.GetOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("historial de compras: %w", err)
	}
	history := make([][]entity.OrderItem, 0, len(orders))
	for _, o := range orders {
		history = append(history, o.Items)
	}
	products, err := uc.store.GetProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("catálogo: %w", err)
	}

	genCtx, cancel := context.WithTimeout(ctx, recommendTimeout)
	defer cancel()

	result, err := uc.generator.GenerateRecommendations(genCtx, dto.RecommendationInput{
		UserID:            userID,
		TimeSlot:          slot,
		PurchaseHistory:   history,
		AvailableProducts: products,
	})
	if err != nil {
		return nil, fmt.Errorf("generar recomendaciones: %w", err)
	}

	rec := &entity.Recommendation{
		UserID:    userID,
		TimeSlot:  slot,
		Items:     result.Items,
		Summary:   result.Summary,
		CreatedAt: uc.now().UTC(),
	}
	if rec.Items == nil {
		rec.Items = []entity.RecommendedItem{}
	}
	saved, err := uc.store.SaveRecommendation(ctx, rec)
	if err != nil {
		uc.log.Error().Err(err).Str("userId", userID).Msg("no se pudo guardar la recomendación")
		return rec, nil
	}
	return saved, nil
}

// History recomendaciones guardadas, más reciente primero.
func (uc *RecommendationUseCase) History(ctx context.Context, userID string) ([]*entity.Recommendation, error) {
	return uc.store.GetRecommendations(ctx, userID)
}

// Clear borra las recomendaciones guardadas del usuario.
func (uc *RecommendationUseCase) Clear(ctx context.Context, userID string) (storage.RemovalResult, error) {
	return uc.store.ClearRecommendations(ctx, userID)
}
