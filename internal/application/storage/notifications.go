package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/pakurmart-api/internal/domain/entity"
	"github.com/jhoicas/pakurmart-api/internal/domain/repository"
)

type notificationTemplate struct {
	title   string
	message string // %s = orderNumber
}

// orderStatusTemplates estados que notifican al cliente. Cualquier otro estado no notifica.
var orderStatusTemplates = map[entity.OrderStatus]notificationTemplate{
	entity.OrderStatusConfirmed: {
		title:   "Order Confirmed! ✅",
		message: "Your order %s has been confirmed and is being prepared.",
	},
	entity.OrderStatusOutForDelivery: {
		title:   "Out for Delivery 🚚",
		message: "Your order %s is out for delivery. It will reach you soon!",
	},
	entity.OrderStatusDelivered: {
		title:   "Order Delivered! 📦",
		message: "Your order %s has been delivered. Enjoy!",
	},
}

// notifyOrderStatus inserta la notificación del estado dado. Devuelve el ID creado.
func (s *Storage) notifyOrderStatus(ctx context.Context, order *entity.Order, status entity.OrderStatus) (string, error) {
	tpl, ok := orderStatusTemplates[status]
	if !ok {
		return "", nil
	}
	recipient := order.RecipientID()
	if recipient == "" {
		s.log.Error().
			Str("orderId", order.ID).
			Str("orderNumber", order.OrderNumber).
			Msg("pedido sin customerId ni userId; la notificación queda sin destinatario")
	}

	id, err := s.store.Add(ctx, ColNotifications, repository.Document{
		"type":           "customer_order_" + string(status),
		"title":          tpl.title,
		"message":        fmt.Sprintf(tpl.message, order.OrderNumber),
		"orderId":        order.ID,
		"orderNumber":    order.OrderNumber,
		"customerId":     recipient,
		"total":          moneyValue(order.Total),
		"isRead":         false,
		"targetAudience": "customer",
		"createdAt":      formatTime(s.timestamp()),
		"priority":       "normal",
	})
	if err != nil {
		return "", fmt.Errorf("insertar notificación: %w", err)
	}
	s.log.Info().
		Str("notificationId", id).
		Str("orderNumber", order.OrderNumber).
		Str("customerId", recipient).
		Msg("notificación de pedido creada")
	return id, nil
}

// GetNotifications notificaciones de un cliente, más reciente primero.
func (s *Storage) GetNotifications(ctx context.Context, customerID string) ([]*entity.Notification, error) {
	q := repository.Query{Collection: ColNotifications}.
		Where("customerId", customerID).
		Sort("createdAt", true)
	snaps, err := s.store.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listar notificaciones: %w", err)
	}
	return decodeAll(snaps, decodeNotification)
}
