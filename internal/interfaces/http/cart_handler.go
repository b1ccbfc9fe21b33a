package http

import (
	"encoding/json"
	"errors"
	"math"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pakurmart-api/internal/application/dto"
	"github.com/jhoicas/pakurmart-api/internal/application/storage"
	"github.com/jhoicas/pakurmart-api/internal/domain/entity"
	"github.com/jhoicas/pakurmart-api/pkg/logger"
)

// CartHandler carrito por usuario. Los mensajes de error son parte del contrato con el
// frontend y no se traducen.
type CartHandler struct {
	store *storage.Storage
	log   *logger.Logger
}

// NewCartHandler construye el handler.
func NewCartHandler(store *storage.Storage, log *logger.Logger) *CartHandler {
	return &CartHandler{store: store, log: log}
}

// Get godoc
// @Summary      Líneas del carrito
// @Tags         cart
// @Produce      json
// @Param        userId  path  string  true  "ID del usuario"
// @Success      200     {array}   entity.CartItem
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /api/cart/{userId} [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	userID := strings.TrimSpace(c.Params("userId"))
	if userID == "" {
		return badRequest(c, "INVALID_PARAMS", "Invalid userId")
	}
	out, err := h.store.GetCartItems(c.UserContext(), userID)
	if err != nil {
		return internalError(c, h.log, "Failed to fetch cart", err)
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Agregar producto al carrito
// @Description  Si el producto ya está en el carrito suma la cantidad. Cantidad ausente o 0 cuenta como 1.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        userId  path  string                true  "ID del usuario"
// @Param        body    body  dto.AddToCartRequest  true  "Producto y cantidad"
// @Success      200     {object}  entity.CartItem
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/cart/{userId} [post]
func (h *CartHandler) Add(c *fiber.Ctx) error {
	userID := strings.TrimSpace(c.Params("userId"))
	if userID == "" {
		return badRequest(c, "INVALID_PARAMS", "Invalid userId")
	}
	var in dto.AddToCartRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.store.AddToCart(c.UserContext(), &entity.CartItem{
		UserID:    userID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
	})
	if err != nil {
		return writeError(c, h.log, "Failed to add cart item", err)
	}
	return c.JSON(out)
}

// Clear godoc
// @Summary      Vaciar carrito
// @Tags         cart
// @Produce      json
// @Param        userId  path  string  true  "ID del usuario"
// @Success      200     {object}  dto.MessageResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /api/cart/{userId} [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	userID := strings.TrimSpace(c.Params("userId"))
	if userID == "" {
		return badRequest(c, "INVALID_PARAMS", "Invalid userId")
	}
	if _, err := h.store.ClearCart(c.UserContext(), userID); err != nil {
		return internalError(c, h.log, "Failed to clear cart", err)
	}
	return c.JSON(dto.MessageResponse{Message: "Cart cleared"})
}

// UpdateItem godoc
// @Summary      Cambiar cantidad de una línea
// @Description  Cantidad <= 0 elimina la línea. Devuelve el carrito actualizado.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        userId      path  string                      true  "ID del usuario"
// @Param        cartItemId  path  string                      true  "ID de la línea"
// @Param        body        body  dto.UpdateCartItemRequest   true  "Nueva cantidad"
// @Success      200         {array}   entity.CartItem
// @Failure      400         {object}  dto.ErrorResponse
// @Failure      404         {object}  dto.ErrorResponse
// @Router       /api/cart/{userId}/{cartItemId} [put]
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	userID, itemID := strings.TrimSpace(c.Params("userId")), strings.TrimSpace(c.Params("cartItemId"))
	if userID == "" || itemID == "" {
		return badRequest(c, "INVALID_PARAMS", "Invalid parameters")
	}
	quantity, err := parseQuantity(c.Body())
	switch {
	case errors.Is(err, errQuantityRange):
		return badRequest(c, "QUANTITY_OUT_OF_RANGE", "Quantity out of range")
	case err != nil:
		return badRequest(c, "INVALID_QUANTITY", "Quantity must be a number")
	}

	ctx := c.UserContext()
	if found, err := h.ownedItem(c, userID, itemID); !found {
		return err
	}
	if _, err := h.store.UpdateCartItem(ctx, itemID, quantity); err != nil {
		return writeError(c, h.log, "Failed to update cart item", err)
	}
	out, err := h.store.GetCartItems(ctx, userID)
	if err != nil {
		return internalError(c, h.log, "Failed to update cart item", err)
	}
	return c.JSON(out)
}

// RemoveItem godoc
// @Summary      Eliminar una línea del carrito
// @Tags         cart
// @Produce      json
// @Param        userId      path  string  true  "ID del usuario"
// @Param        cartItemId  path  string  true  "ID de la línea"
// @Success      200         {array}   entity.CartItem
// @Failure      400         {object}  dto.ErrorResponse
// @Failure      404         {object}  dto.ErrorResponse
// @Router       /api/cart/{userId}/{cartItemId} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	userID, itemID := strings.TrimSpace(c.Params("userId")), strings.TrimSpace(c.Params("cartItemId"))
	if userID == "" || itemID == "" {
		return badRequest(c, "INVALID_PARAMS", "Invalid parameters")
	}

	ctx := c.UserContext()
	if found, err := h.ownedItem(c, userID, itemID); !found {
		return err
	}
	res, err := h.store.RemoveFromCart(ctx, itemID)
	if err != nil {
		return internalError(c, h.log, "Failed to remove cart item", err)
	}
	if res.Nothing() {
		return notFound(c, "Cart item not found")
	}
	out, err := h.store.GetCartItems(ctx, userID)
	if err != nil {
		return internalError(c, h.log, "Failed to remove cart item", err)
	}
	return c.JSON(out)
}

// ownedItem verifica que la línea exista y sea del usuario. Si no, ya escribió la respuesta.
func (h *CartHandler) ownedItem(c *fiber.Ctx, userID, itemID string) (bool, error) {
	item, err := h.store.GetCartItem(c.UserContext(), itemID)
	if err != nil {
		return false, internalError(c, h.log, "Failed to fetch cart", err)
	}
	if item == nil || item.UserID != userID {
		return false, notFound(c, "Cart item not found")
	}
	return true, nil
}

var (
	errQuantityNaN   = errors.New("quantity no es un número entero")
	errQuantityRange = errors.New("quantity fuera de rango")
)

// parseQuantity exige un número JSON entero en el campo quantity, dentro de int32.
func parseQuantity(body []byte) (int, error) {
	var in dto.UpdateCartItemRequest
	if err := json.Unmarshal(body, &in); err != nil || in.Quantity == nil {
		return 0, errQuantityNaN
	}
	n := *in.Quantity
	if n != math.Trunc(n) {
		return 0, errQuantityNaN
	}
	if math.Abs(n) > math.MaxInt32 {
		return 0, errQuantityRange
	}
	return int(n), nil
}
