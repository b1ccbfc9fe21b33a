// Package storage es la fachada de acceso a datos de la tienda: el único punto de contacto
// entre los handlers y el store de documentos. Expone operaciones por entidad (usuarios,
// catálogo, carrito, pedidos, wishlist, recomendaciones) y contiene la única lógica de
// decisión del sistema: la fusión de cantidades del carrito y las notificaciones que
// dispara un cambio de estado de pedido.
//
// Todas las escrituras siguen el patrón insertar-y-releer: el store asigna el ID y la
// fachada vuelve a leer el documento para devolver exactamente lo persistido. Las
// secuencias leer-luego-escribir (AddToCart, AddToWishlist) no son atómicas; dos
// llamadas concurrentes sobre el mismo par (usuario, producto) pueden duplicar el documento.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/pakurmart-api/internal/domain"
	"github.com/jhoicas/pakurmart-api/internal/domain/repository"
	"github.com/jhoicas/pakurmart-api/pkg/logger"
)

// Colecciones del store.
const (
	ColUsers           = "users"
	ColCategories      = "categories"
	ColProducts        = "products"
	ColCart            = "cart"
	ColOrders          = "orders"
	ColWishlists       = "wishlists"
	ColRecommendations = "recommendations"
	ColNotifications   = "notifications"
)

const defaultFanOut = 4

// Options ajustes opcionales de la fachada.
type Options struct {
	// FanOut consultas concurrentes máximas en GetProductsByTimeSlot (por defecto 4).
	FanOut int
	// Now reloj inyectable; por defecto time.Now.
	Now func() time.Time
}

// Storage fachada sobre repository.DocumentStore.
type Storage struct {
	store  repository.DocumentStore
	log    *logger.Logger
	fanOut int
	now    func() time.Time
}

// New construye la fachada con el store inyectado.
func New(store repository.DocumentStore, log *logger.Logger, opts Options) *Storage {
	if log == nil {
		log = logger.Nop()
	}
	if opts.FanOut <= 0 {
		opts.FanOut = defaultFanOut
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Storage{
		store:  store,
		log:    log.Component("storage"),
		fanOut: opts.FanOut,
		now:    opts.Now,
	}
}

// RemovalResult resultado de un borrado. Removed == 0 significa que no había nada que
// borrar, lo cual no es un error; los fallos del store se devuelven como error aparte.
type RemovalResult struct {
	Removed int `json:"removed"`
}

// Nothing indica que no se borró ningún documento.
func (r RemovalResult) Nothing() bool { return r.Removed == 0 }

// get lee un documento; (nil, nil) si no existe.
func (s *Storage) get(ctx context.Context, collection, id string) (*repository.Snapshot, error) {
	if id == "" {
		return nil, nil
	}
	snap, err := s.store.Get(ctx, collection, id)
	if err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return snap, nil
}

// insert agrega el documento y lo vuelve a leer.
func (s *Storage) insert(ctx context.Context, collection string, data repository.Document) (*repository.Snapshot, error) {
	id, err := s.store.Add(ctx, collection, data)
	if err != nil {
		return nil, err
	}
	snap, err := s.store.Get(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// merge actualiza parcialmente y vuelve a leer; domain.ErrNotFound si el ID no existe.
func (s *Storage) merge(ctx context.Context, collection, id string, fields repository.Document) (*repository.Snapshot, error) {
	if id == "" {
		return nil, domain.ErrNotFound
	}
	if err := s.store.Update(ctx, collection, id, fields); err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	snap, err := s.store.Get(ctx, collection, id)
	if err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return snap, nil
}

// deleteAll borra uno a uno los documentos dados. No es atómico: un fallo a mitad deja
// la colección parcialmente limpia y se devuelve lo borrado hasta ese punto.
func (s *Storage) deleteAll(ctx context.Context, collection string, snaps []repository.Snapshot) (RemovalResult, error) {
	var res RemovalResult
	for _, snap := range snaps {
		if err := s.store.Delete(ctx, collection, snap.ID); err != nil {
			if errors.Is(err, repository.ErrDocumentNotFound) {
				continue
			}
			return res, err
		}
		res.Removed++
	}
	return res, nil
}

func (s *Storage) timestamp() time.Time {
	return s.now().UTC()
}
