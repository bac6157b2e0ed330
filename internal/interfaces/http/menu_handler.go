package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/resto-pos/internal/application/dto"
	"github.com/tu-usuario/resto-pos/internal/application/menu"
)

// MenuHandler maneja las peticiones HTTP del menú (protegido).
type MenuHandler struct {
	uc *menu.UseCase
}

// NewMenuHandler construye el handler.
func NewMenuHandler(uc *menu.UseCase) *MenuHandler {
	return &MenuHandler{uc: uc}
}

// Create godoc
// @Summary      Crear plato
// @Tags         menu
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MenuItemRequest  true  "Datos del plato"
// @Success      201   {object}  dto.MenuItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/menu-items [post]
func (h *MenuHandler) Create(c *fiber.Ctx) error {
	var in dto.MenuItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetRestaurantID(c), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar platos disponibles
// @Tags         menu
// @Security     Bearer
// @Produce      json
// @Param        search    query  string  false  "Búsqueda por nombre"
// @Param        category  query  string  false  "Categoría (o all)"
// @Success      200       {object}  dto.MenuListResponse
// @Router       /api/menu-items [get]
func (h *MenuHandler) List(c *fiber.Ctx) error {
	var in dto.MenuListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	out, err := h.uc.List(c.Context(), GetRestaurantID(c), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener plato por ID
// @Tags         menu
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del plato"
// @Success      200  {object}  dto.MenuItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menu-items/{id} [get]
func (h *MenuHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetRestaurantID(c), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar plato
// @Tags         menu
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del plato"
// @Param        body  body  dto.MenuItemRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.MenuItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/menu-items/{id} [put]
func (h *MenuHandler) Update(c *fiber.Ctx) error {
	var in dto.MenuItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetRestaurantID(c), c.Params("id"), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Retirar plato del menú (borrado lógico)
// @Tags         menu
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del plato"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menu-items/{id} [delete]
func (h *MenuHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetRestaurantID(c), c.Params("id")); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
