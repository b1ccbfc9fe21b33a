package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pakurmart-api/internal/application/dto"
	"github.com/jhoicas/pakurmart-api/internal/application/usecase"
	"github.com/jhoicas/pakurmart-api/internal/domain/entity"
	"github.com/jhoicas/pakurmart-api/pkg/logger"
)

// RecommendationHandler recomendaciones generadas por el modelo.
type RecommendationHandler struct {
	uc  *usecase.RecommendationUseCase
	log *logger.Logger
}

// NewRecommendationHandler construye el handler.
func NewRecommendationHandler(uc *usecase.RecommendationUseCase, log *logger.Logger) *RecommendationHandler {
	return &RecommendationHandler{uc: uc, log: log}
}

// Recommend godoc
// @Summary      Recomendar productos para la franja horaria
// @Description  Envía al modelo el historial de compras y el catálogo activo; guarda el resultado.
// @Tags         recommendations
// @Produce      json
// @Param        userId    query  string  true  "ID del usuario"
// @Param        timeSlot  query  string  true  "morning | afternoon | evening | night"
// @Success      200       {object}  entity.Recommendation
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      500       {object}  dto.ErrorResponse
// @Router       /api/recommendations [get]
func (h *RecommendationHandler) Recommend(c *fiber.Ctx) error {
	userID := strings.TrimSpace(c.Query("userId"))
	rawSlot := strings.TrimSpace(c.Query("timeSlot"))
	if userID == "" || rawSlot == "" {
		return badRequest(c, "MISSING_PARAMS", "Missing required parameters: userId and timeSlot")
	}
	slot, err := entity.ParseTimeSlot(rawSlot)
	if err != nil {
		return badRequest(c, "INVALID_TIME_SLOT", err.Error())
	}
	out, err := h.uc.Recommend(c.UserContext(), userID, slot)
	if err != nil {
		return internalError(c, h.log, "Failed to get recommendations", err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Recomendaciones guardadas del usuario
// @Tags         recommendations
// @Produce      json
// @Param        userId  path  string  true  "ID del usuario"
// @Success      200     {array}   entity.Recommendation
// @Router       /api/recommendations/{userId}/history [get]
func (h *RecommendationHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.UserContext(), c.Params("userId"))
	if err != nil {
		return internalError(c, h.log, "no se pudo leer el historial de recomendaciones", err)
	}
	return c.JSON(out)
}

// Clear godoc
// @Summary      Borrar recomendaciones guardadas
// @Tags         recommendations
// @Produce      json
// @Param        userId  path  string  true  "ID del usuario"
// @Success      200     {object}  dto.MessageResponse
// @Router       /api/recommendations/{userId} [delete]
func (h *RecommendationHandler) Clear(c *fiber.Ctx) error {
	if _, err := h.uc.Clear(c.UserContext(), c.Params("userId")); err != nil {
		return internalError(c, h.log, "no se pudieron borrar las recomendaciones", err)
	}
	return c.JSON(dto.MessageResponse{Message: "Recommendations cleared"})
}
