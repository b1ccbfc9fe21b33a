package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/pakurmart-api/internal/domain"
	"github.com/jhoicas/pakurmart-api/internal/domain/entity"
	"github.com/jhoicas/pakurmart-api/internal/domain/repository"
)

// GetCartItems líneas del carrito de un usuario.
func (s *Storage) GetCartItems(ctx context.Context, userID string) ([]*entity.CartItem, error) {
	q := repository.Query{Collection: ColCart}.Where("userId", userID)
	snaps, err := s.store.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listar carrito: %w", err)
	}
	return decodeAll(snaps, decodeCartItem)
}

// GetCartItem obtiene una línea por ID; (nil, nil) si no existe.
func (s *Storage) GetCartItem(ctx context.Context, id string) (*entity.CartItem, error) {
	snap, err := s.get(ctx, ColCart, id)
	if err != nil || snap == nil {
		return nil, err
	}
	return decodeCartItem(snap)
}

// AddToCart suma la cantidad a la línea existente del par (usuario, producto) o inserta una
// nueva. Cantidad <= 0 cuenta como 1. La consulta y la escritura no son atómicas.
func (s *Storage) AddToCart(ctx context.Context, item *entity.CartItem) (*entity.CartItem, error) {
	if item.UserID == "" || item.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	quantity := item.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	q := repository.Query{Collection: ColCart}.
		Where("userId", item.UserID).
		Where("productId", item.ProductID)
	snaps, err := s.store.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("buscar línea de carrito: %w", err)
	}

	if len(snaps) > 0 {
		existing, err := decodeCartItem(&snaps[0])
		if err != nil {
			return nil, err
		}
		snap, err := s.merge(ctx, ColCart, existing.ID, repository.Document{
			"quantity": existing.Quantity + quantity,
		})
		if err != nil {
			return nil, fmt.Errorf("actualizar línea de carrito: %w", err)
		}
		return decodeCartItem(snap)
	}

	snap, err := s.insert(ctx, ColCart, repository.Document{
		"userId":    item.UserID,
		"productId": item.ProductID,
		"quantity":  quantity,
	})
	if err != nil {
		return nil, fmt.Errorf("insertar línea de carrito: %w", err)
	}
	return decodeCartItem(snap)
}

// UpdateCartItem fija la cantidad. Cantidad <= 0 borra la línea y devuelve (nil, nil).
// domain.ErrNotFound si la línea no existe.
func (s *Storage) UpdateCartItem(ctx context.Context, id string, quantity int) (*entity.CartItem, error) {
	if quantity <= 0 {
		if err := s.store.Delete(ctx, ColCart, id); err != nil {
			if errors.Is(err, repository.ErrDocumentNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("borrar línea de carrito: %w", err)
		}
		return nil, nil
	}
	snap, err := s.merge(ctx, ColCart, id, repository.Document{"quantity": quantity})
	if err != nil {
		return nil, err
	}
	return decodeCartItem(snap)
}

// RemoveFromCart borra una línea. Removed == 0 si no existía.
func (s *Storage) RemoveFromCart(ctx context.Context, id string) (RemovalResult, error) {
	if id == "" {
		return RemovalResult{}, nil
	}
	if err := s.store.Delete(ctx, ColCart, id); err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return RemovalResult{}, nil
		}
		return RemovalResult{}, fmt.Errorf("borrar línea de carrito: %w", err)
	}
	return RemovalResult{Removed: 1}, nil
}

// ClearCart borra una a una todas las líneas del usuario.
func (s *Storage) ClearCart(ctx context.Context, userID string) (RemovalResult, error) {
	q := repository.Query{Collection: ColCart}.Where("userId", userID)
	snaps, err := s.store.Find(ctx, q)
	if err != nil {
		return RemovalResult{}, fmt.Errorf("listar carrito: %w", err)
	}
	res, err := s.deleteAll(ctx, ColCart, snaps)
	if err != nil {
		return res, fmt.Errorf("vaciar carrito: %w", err)
	}
	return res, nil
}
