package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pakurmart-api/internal/domain/entity"
)

// ItemsTotal suma precio * cantidad de cada línea (servicio de dominio).
// Las cantidades <= 0 no suman.
func ItemsTotal(items []entity.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		total = total.Add(it.Subtotal())
	}
	return total
}

// Adjustment diferencia entre el total declarado del pedido y la suma de sus líneas
// (domicilio, descuentos). El total declarado no se recalcula: se confía tal cual.
func Adjustment(order *entity.Order) decimal.Decimal {
	return order.Total.Sub(ItemsTotal(order.Items))
}
