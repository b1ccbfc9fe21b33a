package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de un pedido. No hay grafo de transiciones: cualquier valor puede
// sobrescribir al anterior.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// OrderItem línea de un pedido; precio y nombre se copian del catálogo al momento de la compra.
type OrderItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Subtotal precio * cantidad.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order pedido. Total e Items se confían tal cual los envía el cliente.
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	CustomerID      string          `json:"customerId,omitempty"`
	OrderNumber     string          `json:"orderNumber"`
	Items           []OrderItem     `json:"items"`
	Status          OrderStatus     `json:"status"`
	Total           decimal.Decimal `json:"total"`
	DeliveryAddress string          `json:"deliveryAddress,omitempty"`
	TimeSlot        TimeSlot        `json:"timeSlot,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// RecipientID cliente destinatario de las notificaciones: CustomerID y, si falta, UserID.
func (o *Order) RecipientID() string {
	if o.CustomerID != "" {
		return o.CustomerID
	}
	return o.UserID
}

// OrderSummary cantidad de pedidos de un usuario y suma de sus totales.
type OrderSummary struct {
	UserID string          `json:"userId"`
	Orders int             `json:"orders"`
	Total  decimal.Decimal `json:"total"`
}
