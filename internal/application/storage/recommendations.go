package storage

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/pakurmart-api/internal/domain"
	"github.com/jhoicas/pakurmart-api/internal/domain/entity"
	"github.com/jhoicas/pakurmart-api/internal/domain/repository"
)

func recommendationQuery(userID string) repository.Query {
	return repository.Query{Collection: ColRecommendations}.Where("userId", userID)
}

// GetRecommendations recomendaciones guardadas del usuario, más reciente primero.
// Se ordena en memoria para no requerir índice compuesto en Firestore.
func (s *Storage) GetRecommendations(ctx context.Context, userID string) ([]*entity.Recommendation, error) {
	snaps, err := s.store.Find(ctx, recommendationQuery(userID))
	if err != nil {
		return nil, fmt.Errorf("listar recomendaciones: %w", err)
	}
	recs, err := decodeAll(snaps, decodeRecommendation)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
	return recs, nil
}

// SaveRecommendation inserta y relee. createdAt se completa si viene vacío.
func (s *Storage) SaveRecommendation(ctx context.Context, rec *entity.Recommendation) (*entity.Recommendation, error) {
	if rec.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.timestamp()
	}
	snap, err := s.insert(ctx, ColRecommendations, encodeRecommendation(rec))
	if err != nil {
		return nil, fmt.Errorf("guardar recomendación: %w", err)
	}
	return decodeRecommendation(snap)
}

// ClearRecommendations borra una a una las recomendaciones del usuario.
func (s *Storage) ClearRecommendations(ctx context.Context, userID string) (RemovalResult, error) {
	snaps, err := s.store.Find(ctx, recommendationQuery(userID))
	if err != nil {
		return RemovalResult{}, fmt.Errorf("listar recomendaciones: %w", err)
	}
	res, err := s.deleteAll(ctx, ColRecommendations, snaps)
	if err != nil {
		return res, fmt.Errorf("limpiar recomendaciones: %w", err)
	}
	return res, nil
}
