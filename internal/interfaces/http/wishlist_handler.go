package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pakurmart-api/internal/application/dto"
	"github.com/jhoicas/pakurmart-api/internal/application/storage"
	"github.com/jhoicas/pakurmart-api/internal/domain/entity"
	"github.com/jhoicas/pakurmart-api/pkg/logger"
)

// WishlistHandler productos guardados por el usuario.
type WishlistHandler struct {
	store *storage.Storage
	log   *logger.Logger
}

// NewWishlistHandler construye el handler.
func NewWishlistHandler(store *storage.Storage, log *logger.Logger) *WishlistHandler {
	return &WishlistHandler{store: store, log: log}
}

// List godoc
// @Summary      Wishlist del usuario
// @Tags         wishlist
// @Produce      json
// @Param        userId  path  string  true  "ID del usuario"
// @Success      200     {array}   entity.WishlistItem
// @Router       /api/wishlist/{userId} [get]
func (h *WishlistHandler) List(c *fiber.Ctx) error {
	out, err := h.store.GetWishlistItems(c.UserContext(), c.Params("userId"))
	if err != nil {
		return internalError(c, h.log, "no se pudo leer la wishlist", err)
	}
	return c.JSON(out)
}

// Products godoc
// @Summary      Productos de la wishlist
// @Description  Resuelve cada referencia; los productos que ya no existen se omiten.
// @Tags         wishlist
// @Produce      json
// @Param        userId  path  string  true  "ID del usuario"
// @Success      200     {array}   entity.Product
// @Router       /api/wishlist/{userId}/products [get]
func (h *WishlistHandler) Products(c *fiber.Ctx) error {
	out, err := h.store.GetWishlistProducts(c.UserContext(), c.Params("userId"))
	if err != nil {
		return internalError(c, h.log, "no se pudieron resolver los productos de la wishlist", err)
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Guardar producto en la wishlist (idempotente)
// @Tags         wishlist
// @Accept       json
// @Produce      json
// @Param        userId  path  string                    true  "ID del usuario"
// @Param        body    body  dto.AddToWishlistRequest  true  "Producto"
// @Success      200     {object}  entity.WishlistItem
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/wishlist/{userId} [post]
func (h *WishlistHandler) Add(c *fiber.Ctx) error {
	var in dto.AddToWishlistRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.store.AddToWishlist(c.UserContext(), &entity.WishlistItem{
		UserID:    c.Params("userId"),
		ProductID: in.ProductID,
	})
	if err != nil {
		return writeError(c, h.log, "no se pudo guardar en la wishlist", err)
	}
	return c.JSON(out)
}

// Remove godoc
// @Summary      Quitar producto de la wishlist
// @Tags         wishlist
// @Produce      json
// @Param        userId     path  string  true  "ID del usuario"
// @Param        productId  path  string  true  "ID del producto"
// @Success      200        {object}  dto.MessageResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/wishlist/{userId}/{productId} [delete]
func (h *WishlistHandler) Remove(c *fiber.Ctx) error {
	res, err := h.store.RemoveFromWishlist(c.UserContext(), c.Params("userId"), c.Params("productId"))
	if err != nil {
		return internalError(c, h.log, "no se pudo quitar de la wishlist", err)
	}
	if res.Nothing() {
		return notFound(c, "el producto no está en la wishlist")
	}
	return c.JSON(dto.MessageResponse{Message: "Removed from wishlist"})
}

// Clear godoc
// @Summary      Vaciar wishlist
// @Tags         wishlist
// @Produce      json
// @Param        userId  path  string  true  "ID del usuario"
// @Success      200     {object}  dto.MessageResponse
// @Router       /api/wishlist/{userId} [delete]
func (h *WishlistHandler) Clear(c *fiber.Ctx) error {
	if _, err := h.store.ClearWishlist(c.UserContext(), c.Params("userId")); err != nil {
		return internalError(c, h.log, "no se pudo vaciar la wishlist", err)
	}
	return c.JSON(dto.MessageResponse{Message: "Wishlist cleared"})
}
