package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pakurmart-api/internal/application/dto"
	"github.com/jhoicas/pakurmart-api/internal/application/storage"
	"github.com/jhoicas/pakurmart-api/internal/domain/entity"
	"github.com/jhoicas/pakurmart-api/pkg/logger"
)

// CatalogHandler categorías y productos.
type CatalogHandler struct {
	store *storage.Storage
	log   *logger.Logger
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(store *storage.Storage, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{store: store, log: log}
}

// ListCategories godoc
// @Summary      Listar categorías (opcionalmente por franja horaria)
// @Tags         categories
// @Produce      json
// @Param        timeSlot  query  string  false  "morning | afternoon | evening | night"
// @Success      200       {array}   entity.Category
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /api/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if raw := c.Query("timeSlot"); raw != "" {
		slot, err := entity.ParseTimeSlot(raw)
		if err != nil {
			return badRequest(c, "INVALID_TIME_SLOT", err.Error())
		}
		out, err := h.store.GetCategoriesByTimeSlot(ctx, slot)
		if err != nil {
			return internalError(c, h.log, "no se pudieron listar las categorías", err)
		}
		return c.JSON(out)
	}
	out, err := h.store.GetCategories(ctx)
	if err != nil {
		return internalError(c, h.log, "no se pudieron listar las categorías", err)
	}
	return c.JSON(out)
}

// GetCategory godoc
// @Summary      Obtener categoría por ID
// @Tags         categories
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  entity.Category
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	out, err := h.store.GetCategory(c.UserContext(), c.Params("id"))
	if err != nil {
		return internalError(c, h.log, "no se pudo leer la categoría", err)
	}
	if out == nil {
		return notFound(c, "categoría no encontrada")
	}
	return c.JSON(out)
}

// CreateCategory godoc
// @Summary      Crear categoría
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Datos de la categoría"
// @Success      201   {object}  entity.Category
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	slots := make([]entity.TimeSlot, 0, len(in.TimeSlots))
	for _, s := range in.TimeSlots {
		slots = append(slots, entity.TimeSlot(s))
	}
	out, err := h.store.CreateCategory(c.UserContext(), &entity.Category{
		Name:        in.Name,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		SortOrder:   in.SortOrder,
		IsActive:    in.IsActive == nil || *in.IsActive,
		TimeSlots:   slots,
	})
	if err != nil {
		return writeError(c, h.log, "no se pudo crear la categoría", err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListProducts godoc
// @Summary      Listar productos activos
// @Description  Filtros excluyentes, en este orden: categoryId, timeSlot, q (búsqueda por texto).
// @Tags         products
// @Produce      json
// @Param        categoryId  query  string  false  "ID de categoría"
// @Param        timeSlot    query  string  false  "Franja horaria"
// @Param        q           query  string  false  "Texto a buscar en nombre o descripción"
// @Success      200         {array}   entity.Product
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	var (
		out []*entity.Product
		err error
	)
	switch {
	case c.Query("categoryId") != "":
		out, err = h.store.GetProductsByCategory(ctx, c.Query("categoryId"))
	case c.Query("timeSlot") != "":
		slot, perr := entity.ParseTimeSlot(c.Query("timeSlot"))
		if perr != nil {
			return badRequest(c, "INVALID_TIME_SLOT", perr.Error())
		}
		out, err = h.store.GetProductsByTimeSlot(ctx, slot)
	case strings.TrimSpace(c.Query("q")) != "":
		out, err = h.store.SearchProducts(ctx, strings.TrimSpace(c.Query("q")))
	default:
		out, err = h.store.GetProducts(ctx)
	}
	if err != nil {
		return internalError(c, h.log, "no se pudieron listar los productos", err)
	}
	return c.JSON(out)
}

// GetProduct godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  entity.Product
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	out, err := h.store.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return internalError(c, h.log, "no se pudo leer el producto", err)
	}
	if out == nil {
		return notFound(c, "producto no encontrado")
	}
	return c.JSON(out)
}

// CreateProduct godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  entity.Product
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	if in.Price.IsNegative() {
		return badRequest(c, "VALIDATION", "price no puede ser negativo")
	}
	out, err := h.store.CreateProduct(c.UserContext(), &entity.Product{
		Name:        in.Name,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		Price:       in.Price,
		Unit:        in.Unit,
		ImageURL:    in.ImageURL,
		IsActive:    in.IsActive == nil || *in.IsActive,
	})
	if err != nil {
		return writeError(c, h.log, "no se pudo crear el producto", err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
