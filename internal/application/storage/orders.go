package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pakurmart-api/internal/domain"
	"github.com/jhoicas/pakurmart-api/internal/domain/entity"
	"github.com/jhoicas/pakurmart-api/internal/domain/repository"
)

// GetOrders pedidos del usuario, más reciente primero.
func (s *Storage) GetOrders(ctx context.Context, userID string) ([]*entity.Order, error) {
	q := repository.Query{Collection: ColOrders}.
		Where("userId", userID).
		Sort("createdAt", true)
	snaps, err := s.store.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listar pedidos: %w", err)
	}
	return decodeAll(snaps, decodeOrder)
}

// GetOrder obtiene un pedido por ID; (nil, nil) si no existe.
func (s *Storage) GetOrder(ctx context.Context, id string) (*entity.Order, error) {
	snap, err := s.get(ctx, ColOrders, id)
	if err != nil || snap == nil {
		return nil, err
	}
	return decodeOrder(snap)
}

// CreateOrder inserta y relee. No valida stock ni recalcula precios: total e items se
// guardan tal cual. Completa createdAt, status (pending) y orderNumber si faltan.
func (s *Storage) CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	if order.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = s.timestamp()
	}
	if order.Status == "" {
		order.Status = entity.OrderStatusPending
	}
	if order.OrderNumber == "" {
		order.OrderNumber = "PM-" + strings.ToUpper(uuid.New().String()[:8])
	}
	snap, err := s.insert(ctx, ColOrders, encodeOrder(order))
	if err != nil {
		return nil, fmt.Errorf("crear pedido: %w", err)
	}
	return decodeOrder(snap)
}

// UpdateOrderStatus valida que el pedido guardado decodifique, escribe el nuevo estado, relee el pedido y, si el estado es
// confirmed, out_for_delivery o delivered, crea una notificación para el cliente.
// La notificación es un efecto secundario: si falla se registra en el log y el pedido
// actualizado se devuelve igual. El disparo depende solo del estado nuevo, así que
// repetir el mismo estado vuelve a notificar.
func (s *Storage) UpdateOrderStatus(ctx context.Context, id string, status entity.OrderStatus) (*entity.Order, error) {
	if strings.TrimSpace(string(status)) == "" {
		return nil, domain.ErrInvalidInput
	}
	// Un pedido que no decodifica no se actualiza.
	current, err := s.get(ctx, ColOrders, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	if _, err := decodeOrder(current); err != nil {
		return nil, err
	}

	snap, err := s.merge(ctx, ColOrders, id, repository.Document{"status": string(status)})
	if err != nil {
		return nil, err
	}
	order, err := decodeOrder(snap)
	if err != nil {
		s.log.Error().Err(err).
			Str("orderId", id).
			Str("persistedStatus", string(status)).
			Msg("estado guardado pero el pedido releído es inválido; no se notifica")
		return nil, err
	}

	s.log.Info().
		Str("orderId", id).
		Str("orderNumber", order.OrderNumber).
		Str("status", string(status)).
		Msg("estado de pedido actualizado")

	if _, notify := orderStatusTemplates[status]; notify {
		if _, err := s.notifyOrderStatus(ctx, order, status); err != nil {
			s.log.Error().Err(err).
				Str("orderId", id).
				Str("status", string(status)).
				Msg("no se pudo crear la notificación del pedido")
		}
	}
	return order, nil
}

// GetOrderSummary cuenta los pedidos del usuario y suma sus totales. Si el store sabe
// sumar en el servidor (repository.NumericSummer) se delega; si no, se suman los
// pedidos decodificados.
func (s *Storage) GetOrderSummary(ctx context.Context, userID string) (*entity.OrderSummary, error) {
	q := repository.Query{Collection: ColOrders}.Where("userId", userID)
	if summer, ok := s.store.(repository.NumericSummer); ok {
		total, count, err := summer.SumNumeric(ctx, q, "total")
		if err != nil {
			return nil, fmt.Errorf("sumar pedidos: %w", err)
		}
		return &entity.OrderSummary{UserID: userID, Orders: count, Total: total}, nil
	}

	snaps, err := s.store.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listar pedidos: %w", err)
	}
	orders, err := decodeAll(snaps, decodeOrder)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Total)
	}
	return &entity.OrderSummary{UserID: userID, Orders: len(orders), Total: total}, nil
}
