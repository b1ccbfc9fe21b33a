package ports

import "github.com/jhoicas/pakurmart-api/internal/domain/entity"

// ReceiptRenderer genera el comprobante PDF de un pedido.
type ReceiptRenderer interface {
	RenderReceipt(order *entity.Order) ([]byte, error)
}
