package dto

import "github.com/shopspring/decimal"

// OrderItemRequest línea de pedido tal como la envía el cliente.
type OrderItemRequest struct {
	ProductID string          `json:"productId" validate:"required"`
	Name      string          `json:"name" validate:"omitempty,max=200"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
}

// CreateOrderRequest entrada para crear un pedido. Total e items se guardan tal cual.
type CreateOrderRequest struct {
	UserID          string             `json:"userId" validate:"required"`
	CustomerID      string             `json:"customerId"`
	OrderNumber     string             `json:"orderNumber" validate:"omitempty,max=40"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	Total           decimal.Decimal    `json:"total"`
	DeliveryAddress string             `json:"deliveryAddress" validate:"omitempty,max=500"`
	TimeSlot        string             `json:"timeSlot" validate:"omitempty,oneof=morning afternoon evening night"`
}

// UpdateOrderStatusRequest entrada de PATCH /api/orders/:id/status. Cualquier estado no vacío es válido.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,max=40"`
}
