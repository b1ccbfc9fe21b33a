package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pakurmart-api/internal/application/dto"
	"github.com/jhoicas/pakurmart-api/internal/application/storage"
	"github.com/jhoicas/pakurmart-api/internal/domain/entity"
	"github.com/jhoicas/pakurmart-api/pkg/logger"
)

// UserHandler perfiles de cliente y sus lecturas derivadas (pedidos, notificaciones).
type UserHandler struct {
	store *storage.Storage
	log   *logger.Logger
}

// NewUserHandler construye el handler.
func NewUserHandler(store *storage.Storage, log *logger.Logger) *UserHandler {
	return &UserHandler{store: store, log: log}
}

// Create godoc
// @Summary      Registrar cliente
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "Datos del cliente"
// @Success      201   {object}  entity.User
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.store.CreateUser(c.UserContext(), &entity.User{
		Email:   strings.TrimSpace(in.Email),
		Name:    in.Name,
		Phone:   in.Phone,
		Address: in.Address,
	})
	if err != nil {
		return writeError(c, h.log, "no se pudo crear el usuario", err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener cliente por ID
// @Tags         users
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  entity.User
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.store.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return internalError(c, h.log, "no se pudo leer el usuario", err)
	}
	if out == nil {
		return notFound(c, "usuario no encontrado")
	}
	return c.JSON(out)
}

// GetByEmail godoc
// @Summary      Buscar cliente por email
// @Tags         users
// @Produce      json
// @Param        email  query  string  true  "Email"
// @Success      200    {object}  entity.User
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/users [get]
func (h *UserHandler) GetByEmail(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		return badRequest(c, "MISSING_EMAIL", "email es requerido")
	}
	out, err := h.store.GetUserByEmail(c.UserContext(), email)
	if err != nil {
		return internalError(c, h.log, "no se pudo buscar el usuario", err)
	}
	if out == nil {
		return notFound(c, "usuario no encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cliente (parcial)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del cliente"
// @Param        body  body  dto.UpdateUserRequest  true  "Campos a modificar"
// @Success      200   {object}  entity.User
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [patch]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	upd := entity.UserUpdate{Email: in.Email, Name: in.Name, Phone: in.Phone, Address: in.Address}
	out, err := h.store.UpdateUser(c.UserContext(), c.Params("id"), upd)
	if err != nil {
		return writeError(c, h.log, "no se pudo actualizar el usuario", err)
	}
	return c.JSON(out)
}

// Orders godoc
// @Summary      Historial de pedidos del cliente (más reciente primero)
// @Tags         users
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {array}   entity.Order
// @Router       /api/users/{id}/orders [get]
func (h *UserHandler) Orders(c *fiber.Ctx) error {
	out, err := h.store.GetOrders(c.UserContext(), c.Params("id"))
	if err != nil {
		return internalError(c, h.log, "no se pudo leer el historial de pedidos", err)
	}
	return c.JSON(out)
}

// OrderSummary godoc
// @Summary      Cantidad de pedidos del cliente y suma de sus totales
// @Tags         users
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  entity.OrderSummary
// @Router       /api/users/{id}/orders/summary [get]
func (h *UserHandler) OrderSummary(c *fiber.Ctx) error {
	out, err := h.store.GetOrderSummary(c.UserContext(), c.Params("id"))
	if err != nil {
		return internalError(c, h.log, "no se pudo calcular el resumen de pedidos", err)
	}
	return c.JSON(out)
}

// Notifications godoc
// @Summary      Notificaciones del cliente (más reciente primero)
// @Tags         users
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {array}   entity.Notification
// @Router       /api/users/{id}/notifications [get]
func (h *UserHandler) Notifications(c *fiber.Ctx) error {
	out, err := h.store.GetNotifications(c.UserContext(), c.Params("id"))
	if err != nil {
		return internalError(c, h.log, "no se pudieron leer las notificaciones", err)
	}
	return c.JSON(out)
}
