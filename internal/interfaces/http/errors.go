package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pakurmart-api/internal/application/dto"
	"github.com/jhoicas/pakurmart-api/internal/domain"
	"github.com/jhoicas/pakurmart-api/pkg/logger"
)

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: msg})
}

// internalError registra la causa y responde 500 con un mensaje genérico.
func internalError(c *fiber.Ctx, log *logger.Logger, msg string, err error) error {
	log.Error().Err(err).Str("route", c.Route().Path).Str("method", c.Method()).Msg(msg)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: msg})
}

// writeError traduce los errores de dominio conocidos; el resto es 500 con fallback.
func writeError(c *fiber.Ctx, log *logger.Logger, fallback string, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return notFound(c, "recurso no encontrado")
	case errors.Is(err, domain.ErrInvalidInput):
		return badRequest(c, "VALIDATION", "parámetros inválidos")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el email ya está registrado"})
	}
	return internalError(c, log, fallback, err)
}
