package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/pakurmart-api/internal/domain"
	"github.com/jhoicas/pakurmart-api/internal/domain/entity"
	"github.com/jhoicas/pakurmart-api/internal/domain/repository"
)

func wishlistQuery(userID string) repository.Query {
	return repository.Query{Collection: ColWishlists}.Where("userId", userID)
}

// GetWishlistItems productos guardados por el usuario.
func (s *Storage) GetWishlistItems(ctx context.Context, userID string) ([]*entity.WishlistItem, error) {
	snaps, err := s.store.Find(ctx, wishlistQuery(userID))
	if err != nil {
		return nil, fmt.Errorf("listar wishlist: %w", err)
	}
	return decodeAll(snaps, decodeWishlistItem)
}

// AddToWishlist es idempotente: si el par (usuario, producto) ya existe devuelve ese documento.
func (s *Storage) AddToWishlist(ctx context.Context, item *entity.WishlistItem) (*entity.WishlistItem, error) {
	if item.UserID == "" || item.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	q := wishlistQuery(item.UserID).Where("productId", item.ProductID)
	snaps, err := s.store.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("buscar en wishlist: %w", err)
	}
	if len(snaps) > 0 {
		return decodeWishlistItem(&snaps[0])
	}

	createdAt := item.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.timestamp()
	}
	snap, err := s.insert(ctx, ColWishlists, repository.Document{
		"userId":    item.UserID,
		"productId": item.ProductID,
		"createdAt": formatTime(createdAt),
	})
	if err != nil {
		return nil, fmt.Errorf("insertar en wishlist: %w", err)
	}
	return decodeWishlistItem(snap)
}

// RemoveFromWishlist borra todas las coincidencias del par (normalmente cero o una).
func (s *Storage) RemoveFromWishlist(ctx context.Context, userID, productID string) (RemovalResult, error) {
	q := wishlistQuery(userID).Where("productId", productID)
	snaps, err := s.store.Find(ctx, q)
	if err != nil {
		return RemovalResult{}, fmt.Errorf("buscar en wishlist: %w", err)
	}
	res, err := s.deleteAll(ctx, ColWishlists, snaps)
	if err != nil {
		return res, fmt.Errorf("quitar de wishlist: %w", err)
	}
	return res, nil
}

// ClearWishlist borra todos los productos guardados del usuario.
func (s *Storage) ClearWishlist(ctx context.Context, userID string) (RemovalResult, error) {
	snaps, err := s.store.Find(ctx, wishlistQuery(userID))
	if err != nil {
		return RemovalResult{}, fmt.Errorf("listar wishlist: %w", err)
	}
	res, err := s.deleteAll(ctx, ColWishlists, snaps)
	if err != nil {
		return res, fmt.Errorf("vaciar wishlist: %w", err)
	}
	return res, nil
}

// GetWishlistProducts resuelve los productos referenciados por la wishlist. Las referencias
// a productos borrados se omiten.
func (s *Storage) GetWishlistProducts(ctx context.Context, userID string) ([]*entity.Product, error) {
	items, err := s.GetWishlistItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	products := make([]*entity.Product, 0, len(items))
	for _, it := range items {
		p, err := s.GetProduct(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			s.log.Debug().
				Str("userId", userID).
				Str("productId", it.ProductID).
				Msg("wishlist apunta a un producto inexistente")
			continue
		}
		products = append(products, p)
	}
	return products, nil
}
