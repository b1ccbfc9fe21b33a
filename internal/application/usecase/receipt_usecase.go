package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/pakurmart-api/internal/application/ports"
	"github.com/jhoicas/pakurmart-api/internal/domain"
	"github.com/jhoicas/pakurmart-api/internal/domain/entity"
)

// OrderReader lectura de un pedido por ID; (nil, nil) si no existe.
type OrderReader interface {
	GetOrder(ctx context.Context, id string) (*entity.Order, error)
}

// ReceiptUseCase genera el comprobante PDF de un pedido.
type ReceiptUseCase struct {
	orders   OrderReader
	renderer ports.ReceiptRenderer
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(orders OrderReader, renderer ports.ReceiptRenderer) *ReceiptUseCase {
	return &ReceiptUseCase{orders: orders, renderer: renderer}
}

// Render devuelve los bytes del PDF y el número de pedido (para el nombre del archivo).
func (uc *ReceiptUseCase) Render(ctx context.Context, orderID string) ([]byte, string, error) {
	order, err := uc.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, "", err
	}
	if order == nil {
		return nil, "", domain.ErrNotFound
	}
	pdf, err := uc.renderer.RenderReceipt(order)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante %s: %w", order.OrderNumber, err)
	}
	return pdf, order.OrderNumber, nil
}
