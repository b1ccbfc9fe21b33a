package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pakurmart-api/internal/application/dto"
	"github.com/jhoicas/pakurmart-api/internal/application/storage"
	"github.com/jhoicas/pakurmart-api/internal/application/usecase"
	"github.com/jhoicas/pakurmart-api/internal/domain/entity"
	"github.com/jhoicas/pakurmart-api/pkg/logger"
)

// OrderHandler pedidos, cambio de estado y comprobante PDF.
type OrderHandler struct {
	store    *storage.Storage
	receipts *usecase.ReceiptUseCase
	log      *logger.Logger
}

// NewOrderHandler construye el handler.
func NewOrderHandler(store *storage.Storage, receipts *usecase.ReceiptUseCase, log *logger.Logger) *OrderHandler {
	return &OrderHandler{store: store, receipts: receipts, log: log}
}

// Create godoc
// @Summary      Crear pedido
// @Description  Total e items se guardan tal cual; no se valida stock ni se recalculan precios.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Pedido"
// @Success      201   {object}  entity.Order
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	if in.Total.IsNegative() {
		return badRequest(c, "VALIDATION", "total no puede ser negativo")
	}
	items := make([]entity.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, entity.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}
	out, err := h.store.CreateOrder(c.UserContext(), &entity.Order{
		UserID:          in.UserID,
		CustomerID:      in.CustomerID,
		OrderNumber:     in.OrderNumber,
		Items:           items,
		Total:           in.Total,
		DeliveryAddress: in.DeliveryAddress,
		TimeSlot:        entity.TimeSlot(in.TimeSlot),
	})
	if err != nil {
		return writeError(c, h.log, "no se pudo crear el pedido", err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener pedido por ID
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  entity.Order
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.store.GetOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return internalError(c, h.log, "no se pudo leer el pedido", err)
	}
	if out == nil {
		return notFound(c, "pedido no encontrado")
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del pedido
// @Description  confirmed, out_for_delivery y delivered generan una notificación al cliente.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  entity.Order
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.store.UpdateOrderStatus(c.UserContext(), c.Params("id"), entity.OrderStatus(in.Status))
	if err != nil {
		return writeError(c, h.log, "no se pudo actualizar el estado del pedido", err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante PDF del pedido
// @Tags         orders
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receipt [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	pdf, number, err := h.receipts.Render(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, "no se pudo generar el comprobante", err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", "pedido-"+number+".pdf"))
	return c.Send(pdf)
}
