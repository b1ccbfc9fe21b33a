package entity

import "github.com/shopspring/decimal"

// Notification registro derivado de un cambio de estado de pedido. Lo consumen otros sistemas.
type Notification struct {
	ID             string          `json:"id"`
	Type           string          `json:"type"`
	Title          string          `json:"title"`
	Message        string          `json:"message"`
	OrderID        string          `json:"orderId"`
	OrderNumber    string          `json:"orderNumber"`
	CustomerID     string          `json:"customerId"`
	Total          decimal.Decimal `json:"total"`
	IsRead         bool            `json:"isRead"`
	TargetAudience string          `json:"targetAudience"`
	CreatedAt      string          `json:"createdAt"` // ISO-8601
	Priority       string          `json:"priority"`
}
