package storage

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"

	"github.com/jhoicas/pakurmart-api/internal/domain"
	"github.com/jhoicas/pakurmart-api/internal/domain/entity"
	"github.com/jhoicas/pakurmart-api/internal/domain/repository"
)

// GetCategories todas las categorías por sortOrder ascendente.
func (s *Storage) GetCategories(ctx context.Context) ([]*entity.Category, error) {
	q := repository.Query{Collection: ColCategories}.Sort("sortOrder", false)
	snaps, err := s.store.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listar categorías: %w", err)
	}
	return decodeAll(snaps, decodeCategory)
}

// GetCategoriesByTimeSlot trae las categorías activas y filtra en memoria por franja.
// Evita exigir un índice de pertenencia a arreglo en el store; el costo es O(categorías activas).
func (s *Storage) GetCategoriesByTimeSlot(ctx context.Context, slot entity.TimeSlot) ([]*entity.Category, error) {
	q := repository.Query{Collection: ColCategories}.Where("isActive", true)
	snaps, err := s.store.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listar categorías activas: %w", err)
	}
	all, err := decodeAll(snaps, decodeCategory)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Category, 0, len(all))
	for _, c := range all {
		if c.HasTimeSlot(slot) {
			out = append(out, c)
		}
	}
	return out, nil
}

// GetCategory obtiene una categoría por ID; (nil, nil) si no existe.
func (s *Storage) GetCategory(ctx context.Context, id string) (*entity.Category, error) {
	snap, err := s.get(ctx, ColCategories, id)
	if err != nil || snap == nil {
		return nil, err
	}
	return decodeCategory(snap)
}

// CreateCategory inserta y relee.
func (s *Storage) CreateCategory(ctx context.Context, c *entity.Category) (*entity.Category, error) {
	if strings.TrimSpace(c.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	snap, err := s.insert(ctx, ColCategories, encodeCategory(c))
	if err != nil {
		return nil, fmt.Errorf("crear categoría: %w", err)
	}
	return decodeCategory(snap)
}

// GetProducts productos activos.
func (s *Storage) GetProducts(ctx context.Context) ([]*entity.Product, error) {
	q := repository.Query{Collection: ColProducts}.Where("isActive", true)
	snaps, err := s.store.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	return decodeAll(snaps, decodeProduct)
}

// GetProductsByCategory productos activos de una categoría.
func (s *Storage) GetProductsByCategory(ctx context.Context, categoryID string) ([]*entity.Product, error) {
	q := repository.Query{Collection: ColProducts}.
		Where("categoryId", categoryID).
		Where("isActive", true)
	snaps, err := s.store.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listar productos de categoría %s: %w", categoryID, err)
	}
	return decodeAll(snaps, decodeProduct)
}

// GetProductsByTimeSlot resuelve las categorías de la franja y consulta los productos de
// cada una en paralelo (como máximo FanOut consultas a la vez). El resultado se concatena
// en el orden de resolución de categorías, sin orden global.
func (s *Storage) GetProductsByTimeSlot(ctx context.Context, slot entity.TimeSlot) ([]*entity.Product, error) {
	categories, err := s.GetCategoriesByTimeSlot(ctx, slot)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return []*entity.Product{}, nil
	}

	perCategory := make([][]*entity.Product, len(categories))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanOut)
	for i, c := range categories {
		i, categoryID := i, c.ID
		g.Go(func() error {
			products, err := s.GetProductsByCategory(gctx, categoryID)
			if err != nil {
				return err
			}
			perCategory[i] = products
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*entity.Product, 0)
	for _, products := range perCategory {
		out = append(out, products...)
	}
	return out, nil
}

// GetProduct obtiene un producto por ID; (nil, nil) si no existe.
func (s *Storage) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	snap, err := s.get(ctx, ColProducts, id)
	if err != nil || snap == nil {
		return nil, err
	}
	return decodeProduct(snap)
}

// SearchProducts trae todos los productos activos y devuelve los que contienen el texto
// en nombre o descripción, sin distinguir mayúsculas. Sin índice ni ranking.
func (s *Storage) SearchProducts(ctx context.Context, text string) ([]*entity.Product, error) {
	all, err := s.GetProducts(ctx)
	if err != nil {
		return nil, err
	}
	fold := cases.Fold()
	needle := fold.String(text)
	out := make([]*entity.Product, 0)
	for _, p := range all {
		if strings.Contains(fold.String(p.Name), needle) ||
			strings.Contains(fold.String(p.Description), needle) {
			out = append(out, p)
		}
	}
	return out, nil
}

// CreateProduct inserta y relee. CategoryID no se valida (referencia débil).
func (s *Storage) CreateProduct(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	if strings.TrimSpace(p.Name) == "" || p.CategoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	snap, err := s.insert(ctx, ColProducts, encodeProduct(p))
	if err != nil {
		return nil, fmt.Errorf("crear producto: %w", err)
	}
	return decodeProduct(snap)
}
